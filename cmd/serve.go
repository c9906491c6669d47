package cmd

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/theirongolddev/stakesim/internal/server"
	"github.com/theirongolddev/stakesim/internal/store"

	"github.com/spf13/cobra"
)

var (
	flagServeAddr   string
	flagServeEvents int
	flagServeDebug  bool
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve simulations over a local HTTP API",
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().StringVar(&flagServeAddr, "addr", "", "HTTP listen address (default from config)")
	serveCmd.Flags().IntVar(&flagServeEvents, "events-buffer", 200, "Max in-memory events retained")
	serveCmd.Flags().BoolVar(&flagServeDebug, "debug", false, "Log at debug level")
	rootCmd.AddCommand(serveCmd)
}

func runServe(_ *cobra.Command, _ []string) error {
	cfg := loadConfig()

	level := slog.LevelInfo
	if flagServeDebug {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	hist, err := store.Open(cfg.HistoryPath())
	if err != nil {
		logger.Warn("history disabled", "path", cfg.HistoryPath(), "err", err)
	} else {
		defer func() { _ = hist.Close() }()
	}

	addr := flagServeAddr
	if addr == "" {
		addr = cfg.Server.Addr
	}

	svc := server.New(cfg, server.Options{
		Addr:         addr,
		EventsBuffer: flagServeEvents,
		Logger:       logger,
		History:      hist,
	})

	if !flagQuiet {
		fmt.Printf("  stakesim listening on http://%s\n", addr)
		fmt.Printf("  Try: curl 'http://%s/v1/simulate?compute=hetzner&blob=aws-s3'\n", addr)
		fmt.Printf("  Chart: http://%s/chart\n", addr)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := svc.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}

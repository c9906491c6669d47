// Package store provides a SQLite-backed history of simulation runs.
package store

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/theirongolddev/stakesim/internal/model"

	_ "modernc.org/sqlite" // register sqlite driver
)

// ErrRunNotFound is returned when a run ID does not exist.
var ErrRunNotFound = errors.New("run not found")

// History stores saved runs.
type History struct {
	db *sql.DB
}

// Run is one saved simulation with its inputs and weekly output.
type Run struct {
	ID        int64
	Name      string
	Compute   string
	Blob      string
	Scenario  model.Scenario
	Weeks     []model.WeekProjection
	FinalNet  float64
	CreatedAt time.Time
}

// Open opens or creates the history database at the given path.
func Open(dbPath string) (*History, error) {
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return nil, fmt.Errorf("creating history dir: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(wal)&_pragma=synchronous(normal)&_pragma=foreign_keys(on)")
	if err != nil {
		return nil, fmt.Errorf("opening history db: %w", err)
	}

	if _, err := db.Exec(schemaSQL); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}

	return &History{db: db}, nil
}

// Close closes the history database.
func (h *History) Close() error {
	return h.db.Close()
}

// SaveRun stores a run and its weeks, returning the new run ID.
// CreatedAt defaults to now when zero.
func (h *History) SaveRun(r Run) (int64, error) {
	tx, err := h.db.Begin()
	if err != nil {
		return 0, err
	}
	defer func() { _ = tx.Rollback() }()

	created := r.CreatedAt
	if created.IsZero() {
		created = time.Now()
	}

	sc := r.Scenario
	a := sc.Assumptions
	res, err := tx.Exec(`INSERT INTO runs
		(name, compute, blob, compute_monthly, storage_per_gb, egress_per_gb,
		 token_price, stake, storage_gb, egress_gb, annual_reward_rate, week_count,
		 final_net, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		r.Name, r.Compute, r.Blob, sc.ComputeBaseMonthlyCost, sc.StoragePerGBMonthly, sc.EgressPerGBMonthly,
		sc.TokenPrice, sc.StakeAmount, a.StorageGB, a.EgressGB, a.AnnualRewardRate, a.WeekCount,
		finalNet(r), created.UTC().Format(time.RFC3339Nano),
	)
	if err != nil {
		return 0, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}

	for _, w := range r.Weeks {
		_, err = tx.Exec(`INSERT INTO run_weeks
			(run_id, week, earnings, infra_cost, net, cumulative_net)
			VALUES (?, ?, ?, ?, ?, ?)`,
			id, w.Week, w.WeeklyEarningsUSD, w.WeeklyInfraCostUSD, w.NetUSD, w.CumulativeNetUSD,
		)
		if err != nil {
			return 0, err
		}
	}

	return id, tx.Commit()
}

func finalNet(r Run) float64 {
	if len(r.Weeks) == 0 {
		return r.FinalNet
	}
	return r.Weeks[len(r.Weeks)-1].CumulativeNetUSD
}

const runColumns = `id, name, compute, blob, compute_monthly, storage_per_gb, egress_per_gb,
	token_price, stake, storage_gb, egress_gb, annual_reward_rate, week_count,
	final_net, created_at`

type scanner interface {
	Scan(dest ...any) error
}

func scanRun(s scanner) (Run, error) {
	var r Run
	var created string
	sc := &r.Scenario
	a := &sc.Assumptions
	err := s.Scan(
		&r.ID, &r.Name, &r.Compute, &r.Blob,
		&sc.ComputeBaseMonthlyCost, &sc.StoragePerGBMonthly, &sc.EgressPerGBMonthly,
		&sc.TokenPrice, &sc.StakeAmount,
		&a.StorageGB, &a.EgressGB, &a.AnnualRewardRate, &a.WeekCount,
		&r.FinalNet, &created,
	)
	if err != nil {
		return r, err
	}
	r.CreatedAt, _ = time.Parse(time.RFC3339Nano, created)
	return r, nil
}

// ListRuns returns all runs without their weeks, newest first.
func (h *History) ListRuns() ([]Run, error) {
	rows, err := h.db.Query("SELECT " + runColumns + " FROM runs ORDER BY created_at DESC, id DESC")
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var runs []Run
	for rows.Next() {
		r, err := scanRun(rows)
		if err != nil {
			return nil, err
		}
		runs = append(runs, r)
	}
	return runs, rows.Err()
}

// LoadRun returns a run with its weeks in order.
func (h *History) LoadRun(id int64) (Run, error) {
	r, err := scanRun(h.db.QueryRow("SELECT "+runColumns+" FROM runs WHERE id = ?", id))
	if errors.Is(err, sql.ErrNoRows) {
		return r, fmt.Errorf("run %d: %w", id, ErrRunNotFound)
	}
	if err != nil {
		return r, err
	}

	rows, err := h.db.Query(`SELECT week, earnings, infra_cost, net, cumulative_net
		FROM run_weeks WHERE run_id = ? ORDER BY week`, id)
	if err != nil {
		return r, err
	}
	defer func() { _ = rows.Close() }()

	for rows.Next() {
		var w model.WeekProjection
		if err := rows.Scan(&w.Week, &w.WeeklyEarningsUSD, &w.WeeklyInfraCostUSD, &w.NetUSD, &w.CumulativeNetUSD); err != nil {
			return r, err
		}
		r.Weeks = append(r.Weeks, w)
	}
	return r, rows.Err()
}

// DeleteRun removes a run and its weeks.
func (h *History) DeleteRun(id int64) error {
	res, err := h.db.Exec("DELETE FROM runs WHERE id = ?", id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("run %d: %w", id, ErrRunNotFound)
	}
	return nil
}

// RunCount returns the number of saved runs.
func (h *History) RunCount() (int, error) {
	var count int
	err := h.db.QueryRow("SELECT COUNT(*) FROM runs").Scan(&count)
	return count, err
}

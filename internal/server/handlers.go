package server

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/theirongolddev/stakesim/internal/chart"
	"github.com/theirongolddev/stakesim/internal/config"
	"github.com/theirongolddev/stakesim/internal/model"
	"github.com/theirongolddev/stakesim/internal/scenario"
	"github.com/theirongolddev/stakesim/internal/sim"
	"github.com/theirongolddev/stakesim/internal/store"
)

// maxWeeks bounds the horizon a single request may ask for.
const maxWeeks = 520

// simulateRequest is accepted as query parameters on GET and as a JSON
// body on POST. Unset fields fall back to the configured defaults.
type simulateRequest struct {
	Compute    string   `form:"compute" json:"compute"`
	Blob       string   `form:"blob" json:"blob"`
	TokenPrice *float64 `form:"price" json:"token_price"`
	Stake      *float64 `form:"stake" json:"stake"`
	Weeks      *int     `form:"weeks" json:"week_count"`
}

func (r simulateRequest) file() scenario.File {
	f := scenario.File{
		Compute:    r.Compute,
		Blob:       r.Blob,
		TokenPrice: r.TokenPrice,
		Stake:      r.Stake,
	}
	if r.Weeks != nil {
		f.Assumptions = &scenario.AssumptionsSection{WeekCount: r.Weeks}
	}
	return f
}

type simulateResponse struct {
	Compute  string                 `json:"compute"`
	Blob     string                 `json:"blob"`
	Scenario model.Scenario         `json:"scenario"`
	Weeks    []model.WeekProjection `json:"weeks"`
	Summary  model.Summary          `json:"summary"`
}

type compareResponse struct {
	TokenPrice float64               `json:"token_price"`
	Stake      float64               `json:"stake"`
	Rows       []model.ComparisonRow `json:"rows"`
}

type providersResponse struct {
	Compute []config.ComputeProvider `json:"compute"`
	Blob    []config.BlobProvider    `json:"blob"`
}

func (s *Server) handleHealth(c *gin.Context) {
	c.String(http.StatusOK, "ok\n")
}

func (s *Server) handleStatus(c *gin.Context) {
	c.JSON(http.StatusOK, s.status())
}

func (s *Server) handleProviders(c *gin.Context) {
	c.JSON(http.StatusOK, providersResponse{
		Compute: s.settings.ComputeProviders(),
		Blob:    s.settings.BlobProviders(),
	})
}

// bindSelection reads a simulateRequest from c and resolves it. On
// failure it has already written the error response.
func (s *Server) bindSelection(c *gin.Context) (scenario.Selection, bool) {
	var req simulateRequest
	var err error
	if c.Request.Method == http.MethodPost {
		err = c.ShouldBindJSON(&req)
		if errors.Is(err, io.EOF) {
			err = nil
		}
	} else {
		err = c.ShouldBindQuery(&req)
	}
	if err != nil {
		writeError(c, http.StatusBadRequest, "INVALID_REQUEST", err.Error())
		return scenario.Selection{}, false
	}
	if req.Weeks != nil && *req.Weeks > maxWeeks {
		writeError(c, http.StatusBadRequest, "INVALID_REQUEST", fmt.Sprintf("weeks must be at most %d", maxWeeks))
		return scenario.Selection{}, false
	}

	sel, err := req.file().Resolve(s.settings)
	if err != nil {
		code := "INVALID_REQUEST"
		if errors.Is(err, config.ErrUnknownProvider) {
			code = "UNKNOWN_PROVIDER"
		}
		writeError(c, http.StatusBadRequest, code, err.Error())
		return scenario.Selection{}, false
	}
	return sel, true
}

func (s *Server) simulate(sel scenario.Selection) simulateResponse {
	weeks := sim.Simulate(sel.Scenario)
	summary := sim.Summarize(weeks)

	s.mu.Lock()
	s.simCount++
	s.mu.Unlock()

	s.publishEvent(Event{
		Type:          "simulation",
		Compute:       sel.Compute,
		Blob:          sel.Blob,
		TokenPrice:    sel.Scenario.TokenPrice,
		Stake:         sel.Scenario.StakeAmount,
		FinalNetUSD:   summary.FinalCumulativeNetUSD,
		BreakEvenWeek: summary.BreakEvenWeek,
	})

	return simulateResponse{
		Compute:  sel.Compute,
		Blob:     sel.Blob,
		Scenario: sel.Scenario,
		Weeks:    weeks,
		Summary:  summary,
	}
}

func (s *Server) handleSimulate(c *gin.Context) {
	sel, ok := s.bindSelection(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, s.simulate(sel))
}

func (s *Server) handleCompare(c *gin.Context) {
	sel, ok := s.bindSelection(c)
	if !ok {
		return
	}

	rows := sim.Compare(sel.Scenario, s.settings.CompareOptions())
	if raw := c.Query("top"); raw != "" {
		top, err := strconv.Atoi(raw)
		if err != nil || top < 0 {
			writeError(c, http.StatusBadRequest, "INVALID_REQUEST", "top must be a non-negative integer")
			return
		}
		if top > 0 && top < len(rows) {
			rows = rows[:top]
		}
	}

	c.JSON(http.StatusOK, compareResponse{
		TokenPrice: sel.Scenario.TokenPrice,
		Stake:      sel.Scenario.StakeAmount,
		Rows:       rows,
	})
}

func (s *Server) handleChart(c *gin.Context) {
	sel, ok := s.bindSelection(c)
	if !ok {
		return
	}
	resp := s.simulate(sel)

	var rows []model.ComparisonRow
	if c.Query("compare") == "1" {
		rows = sim.Compare(sel.Scenario, s.settings.CompareOptions())
	}

	subtitle := fmt.Sprintf("%s / %s, stake %.0f at $%.4g", sel.Compute, sel.Blob, sel.Scenario.StakeAmount, sel.Scenario.TokenPrice)
	c.Header("Content-Type", "text/html; charset=utf-8")
	c.Status(http.StatusOK)
	if err := chart.Render(c.Writer, "Validator economics", subtitle, resp.Weeks, rows); err != nil {
		s.log.Error("chart render failed", "err", err)
	}
}

type runResponse struct {
	ID        int64                  `json:"id"`
	Name      string                 `json:"name"`
	Compute   string                 `json:"compute"`
	Blob      string                 `json:"blob"`
	Scenario  model.Scenario         `json:"scenario"`
	FinalNet  float64                `json:"final_net_usd"`
	CreatedAt string                 `json:"created_at"`
	Weeks     []model.WeekProjection `json:"weeks,omitempty"`
}

func toRunResponse(r store.Run) runResponse {
	return runResponse{
		ID:        r.ID,
		Name:      r.Name,
		Compute:   r.Compute,
		Blob:      r.Blob,
		Scenario:  r.Scenario,
		FinalNet:  r.FinalNet,
		CreatedAt: r.CreatedAt.UTC().Format(time.RFC3339),
		Weeks:     r.Weeks,
	}
}

func (s *Server) handleListRuns(c *gin.Context) {
	runs, err := s.opts.History.ListRuns()
	if err != nil {
		s.log.Error("listing runs", "err", err)
		writeError(c, http.StatusInternalServerError, "INTERNAL_ERROR", "could not list runs")
		return
	}
	out := make([]runResponse, 0, len(runs))
	for _, r := range runs {
		out = append(out, toRunResponse(r))
	}
	c.JSON(http.StatusOK, out)
}

func (s *Server) handleGetRun(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		writeError(c, http.StatusBadRequest, "INVALID_REQUEST", "run id must be an integer")
		return
	}
	run, err := s.opts.History.LoadRun(id)
	if errors.Is(err, store.ErrRunNotFound) {
		writeError(c, http.StatusNotFound, "RUN_NOT_FOUND", err.Error())
		return
	}
	if err != nil {
		s.log.Error("loading run", "id", id, "err", err)
		writeError(c, http.StatusInternalServerError, "INTERNAL_ERROR", "could not load run")
		return
	}
	c.JSON(http.StatusOK, toRunResponse(run))
}

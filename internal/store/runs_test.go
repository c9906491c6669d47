package store

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/theirongolddev/stakesim/internal/model"
	"github.com/theirongolddev/stakesim/internal/sim"
)

func openTemp(t *testing.T) *History {
	t.Helper()
	h, err := Open(filepath.Join(t.TempDir(), "sub", "history.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = h.Close() })
	return h
}

func sampleRun(name string) Run {
	sc := model.Scenario{
		ComputeBaseMonthlyCost: 80,
		StoragePerGBMonthly:    0.023,
		EgressPerGBMonthly:     0.09,
		TokenPrice:             0.27,
		StakeAmount:            2_000_000,
		Assumptions:            model.DefaultAssumptions(),
	}
	return Run{
		Name:     name,
		Compute:  "hetzner",
		Blob:     "aws-s3",
		Scenario: sc,
		Weeks:    sim.Simulate(sc),
	}
}

func TestSaveAndLoadRun(t *testing.T) {
	h := openTemp(t)
	run := sampleRun("baseline")

	id, err := h.SaveRun(run)
	require.NoError(t, err)
	assert.Positive(t, id)

	got, err := h.LoadRun(id)
	require.NoError(t, err)
	assert.Equal(t, id, got.ID)
	assert.Equal(t, "baseline", got.Name)
	assert.Equal(t, "hetzner", got.Compute)
	assert.Equal(t, run.Scenario, got.Scenario)
	assert.Equal(t, run.Weeks, got.Weeks)
	assert.Equal(t, run.Weeks[len(run.Weeks)-1].CumulativeNetUSD, got.FinalNet)
	assert.False(t, got.CreatedAt.IsZero())
}

func TestListRuns_NewestFirst(t *testing.T) {
	h := openTemp(t)
	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	for i, name := range []string{"first", "second", "third"} {
		r := sampleRun(name)
		r.CreatedAt = base.Add(time.Duration(i) * time.Hour)
		_, err := h.SaveRun(r)
		require.NoError(t, err)
	}

	runs, err := h.ListRuns()
	require.NoError(t, err)
	require.Len(t, runs, 3)
	assert.Equal(t, "third", runs[0].Name)
	assert.Equal(t, "first", runs[2].Name)
	assert.Empty(t, runs[0].Weeks, "list does not load weeks")
	assert.True(t, runs[0].CreatedAt.Equal(base.Add(2*time.Hour)))
}

func TestDeleteRun_CascadesWeeks(t *testing.T) {
	h := openTemp(t)
	id, err := h.SaveRun(sampleRun("doomed"))
	require.NoError(t, err)

	require.NoError(t, h.DeleteRun(id))

	_, err = h.LoadRun(id)
	assert.ErrorIs(t, err, ErrRunNotFound)

	var orphans int
	require.NoError(t, h.db.QueryRow("SELECT COUNT(*) FROM run_weeks").Scan(&orphans))
	assert.Zero(t, orphans)

	count, err := h.RunCount()
	require.NoError(t, err)
	assert.Zero(t, count)
}

func TestMissingRun(t *testing.T) {
	h := openTemp(t)

	_, err := h.LoadRun(42)
	assert.ErrorIs(t, err, ErrRunNotFound)
	assert.ErrorIs(t, h.DeleteRun(42), ErrRunNotFound)
}

func TestSaveRun_NoWeeks(t *testing.T) {
	h := openTemp(t)
	r := sampleRun("empty")
	r.Weeks = nil
	r.Scenario.Assumptions.WeekCount = 0

	id, err := h.SaveRun(r)
	require.NoError(t, err)

	got, err := h.LoadRun(id)
	require.NoError(t, err)
	assert.Empty(t, got.Weeks)
	assert.Zero(t, got.FinalNet)
}

func TestOpen_Reopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "history.db")

	h, err := Open(path)
	require.NoError(t, err)
	_, err = h.SaveRun(sampleRun("kept"))
	require.NoError(t, err)
	require.NoError(t, h.Close())

	h, err = Open(path)
	require.NoError(t, err)
	defer func() { _ = h.Close() }()

	runs, err := h.ListRuns()
	require.NoError(t, err)
	require.Len(t, runs, 1)
	assert.Equal(t, "kept", runs[0].Name)
}

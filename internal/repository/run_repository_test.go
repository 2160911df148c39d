package repository

import (
	"math"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/abelzeko/dino-velocity/internal/entities"
)

func newTestRepo(t *testing.T) *SQLiteRunRepository {
	t.Helper()
	repo, err := NewSQLiteRunRepository(filepath.Join(t.TempDir(), "runs.db"), zap.NewNop())
	require.NoError(t, err)
	t.Cleanup(func() { _ = repo.Close() })
	return repo
}

func TestSaveRunAndGetRun(t *testing.T) {
	repo := newTestRepo(t)

	ranking := []entities.Dinosaur{
		dino("Tyrannosaurus Rex", "bipedal", 2.5, 5.76),
		entities.NewDinosaur(entities.Text("Deinonychus"), entities.NullFloat{}, entities.NullString{}, entities.Float(1.21), entities.Text("bipedal")),
	}
	started := time.Date(2026, time.October, 19, 8, 0, 0, 0, time.UTC)

	id, err := repo.SaveRun(entities.RunRecord{
		StartedAt:  started,
		JoinMode:   "outer",
		Stance:     "bipedal",
		OutputPath: "output.txt",
		Ranking:    ranking,
	})
	require.NoError(t, err)
	assert.Positive(t, id)

	run, err := repo.GetRun(id)
	require.NoError(t, err)
	assert.Equal(t, id, run.ID)
	assert.True(t, started.Equal(run.StartedAt), "expected %v, got %v", started, run.StartedAt)
	assert.Equal(t, "outer", run.JoinMode)
	assert.Equal(t, "bipedal", run.Stance)
	assert.Equal(t, "output.txt", run.OutputPath)

	got := run.Ranking
	require.Len(t, got, 2)
	assert.Equal(t, ranking[0], got[0])
	assert.Equal(t, "Deinonychus", got[1].Name().String)
	assert.False(t, got[1].LegLength().Valid)
	assert.False(t, got[1].Diet().Valid)
	assert.False(t, got[1].Velocity().Valid)
}

func TestGetLastRun(t *testing.T) {
	repo := newTestRepo(t)

	base := time.Date(2026, time.October, 19, 8, 0, 0, 0, time.UTC)
	later, err := repo.SaveRun(entities.RunRecord{StartedAt: base.Add(time.Hour), JoinMode: "inner", Stance: "bipedal", OutputPath: "b.txt"})
	require.NoError(t, err)
	_, err = repo.SaveRun(entities.RunRecord{StartedAt: base, JoinMode: "outer", Stance: "bipedal", OutputPath: "a.txt"})
	require.NoError(t, err)

	last, err := repo.GetLastRun()
	require.NoError(t, err)
	assert.Equal(t, later, last.ID)
	assert.Equal(t, "b.txt", last.OutputPath)
	assert.Empty(t, last.Ranking)
}

func TestSaveRunNaNVelocity(t *testing.T) {
	repo := newTestRepo(t)

	d := dino("Zero", "bipedal", 0, 1.5)
	require.True(t, math.IsNaN(d.Velocity().Float64))

	id, err := repo.SaveRun(entities.RunRecord{StartedAt: time.Now(), JoinMode: "inner", Stance: "bipedal", OutputPath: "o.txt", Ranking: []entities.Dinosaur{d}})
	require.NoError(t, err)

	run, err := repo.GetRun(id)
	require.NoError(t, err)
	require.Len(t, run.Ranking, 1)
	assert.True(t, math.IsNaN(run.Ranking[0].Velocity().Float64), "velocity is re-derived from the stored lengths")
}

func TestGetLastRunEmpty(t *testing.T) {
	repo := newTestRepo(t)

	last, err := repo.GetLastRun()
	require.NoError(t, err)
	assert.Zero(t, last.ID)
}

func TestGetRunUnknown(t *testing.T) {
	repo := newTestRepo(t)

	_, err := repo.GetRun(99)
	require.Error(t, err)
	assert.True(t, entities.IsKind(err, entities.KindInvalidArgument))
}

func TestNewRepositoryRequiresPath(t *testing.T) {
	_, err := NewSQLiteRunRepository("", zap.NewNop())
	require.Error(t, err)
	assert.True(t, entities.IsKind(err, entities.KindInvalidArgument))
}

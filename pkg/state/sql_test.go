package state

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/cfoust/courtelo/pkg/ratings"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestMain(m *testing.M) {
	zerolog.SetGlobalLevel(zerolog.WarnLevel)
	os.Exit(m.Run())
}

func TestSaveRun(t *testing.T) {
	ctx := context.Background()

	store, err := Open(filepath.Join(t.TempDir(), "runs.db"))
	require.NoError(t, err)
	defer store.Close()

	day := time.Date(2021, time.February, 8, 0, 0, 0, 0, time.UTC)
	matches := []ratings.Match{
		{PlayerA: "Osaka", PlayerB: "Williams", Surface: "Hard", Date: day, AWon: true},
		{PlayerA: "Brady", PlayerB: "Osaka", Surface: "Hard", Date: day.AddDate(0, 0, 2), AWon: false},
	}

	settings := ratings.DefaultSettings()
	engine := ratings.NewEngine(settings)
	rated, err := engine.Process(matches)
	require.NoError(t, err)

	saved, err := store.SaveRun(ctx, "abc", settings, rated, engine.Standings())
	require.NoError(t, err)
	require.NotZero(t, saved.ID)

	run, err := store.LoadRun(ctx, saved.ID)
	require.NoError(t, err)
	assert.Equal(t, "abc", run.Fingerprint)
	assert.Equal(t, settings.K, run.K)
	assert.Equal(t, settings.DecayRate, run.DecayRate)

	require.Len(t, run.Matches, 2)
	for i, match := range run.Matches {
		assert.Equal(t, i, match.Position)
		assert.Equal(t, rated[i].PlayerA, match.PlayerA)
		assert.Equal(t, rated[i].AElo, match.AElo)
		assert.Equal(t, rated[i].SurfaceEloPrediction, match.SurfaceEloPrediction)
		assert.True(t, rated[i].Date.Equal(match.Date))
	}

	require.Len(t, run.Standings, 3)
	assert.Equal(t, "Osaka", run.Standings[0].Player)
	assert.Equal(t, uint(2), run.Standings[0].Wins)
	require.Len(t, run.Standings[0].Surfaces, 1)
	assert.Equal(t, "Hard", run.Standings[0].Surfaces[0].Surface)

	_, err = store.SaveRun(ctx, "abc", settings, rated, engine.Standings())
	require.NoError(t, err)

	runs, err := store.Runs(ctx, "abc")
	require.NoError(t, err)
	require.Len(t, runs, 2)
	assert.Greater(t, runs[0].ID, runs[1].ID)
	assert.Empty(t, runs[0].Matches)

	_, err = store.LoadRun(ctx, 999)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

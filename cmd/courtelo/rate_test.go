package main

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/cfoust/courtelo/pkg/cache"
	"github.com/cfoust/courtelo/pkg/config"
	"github.com/cfoust/courtelo/pkg/ratings"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	zerolog.SetGlobalLevel(zerolog.WarnLevel)
	os.Exit(m.Run())
}

func TestRateUsesCache(t *testing.T) {
	ctx := context.Background()

	cfg, err := config.Process([]string{})
	require.NoError(t, err)
	cfg.Cache.Directory = t.TempDir()

	day := time.Date(2022, time.January, 17, 0, 0, 0, 0, time.UTC)
	input := []ratings.Match{
		{PlayerA: "Barty", PlayerB: "Collins", Surface: "Hard", Date: day, AWon: true},
	}
	key := cache.Fingerprint(cfg.Rating, input)

	entry, err := rate(ctx, cfg, key, input)
	require.NoError(t, err)
	require.Len(t, entry.Matches, 1)
	assert.Equal(t, 0.5, entry.Matches[0].EloPrediction)

	_, err = os.Stat(filepath.Join(cfg.Cache.Directory, key))
	require.NoError(t, err)

	// A hit is returned without touching the input
	cached, err := rate(ctx, cfg, key, nil)
	require.NoError(t, err)
	require.Len(t, cached.Matches, 1)
	assert.Equal(t, "Barty", cached.Standings[0].Player)
}

func TestRateRejectsUnorderedInput(t *testing.T) {
	cfg, err := config.Process([]string{})
	require.NoError(t, err)

	day := time.Date(2022, time.January, 17, 0, 0, 0, 0, time.UTC)
	input := []ratings.Match{
		{PlayerA: "Barty", PlayerB: "Collins", Surface: "Hard", Date: day, AWon: true},
		{PlayerA: "Barty", PlayerB: "Keys", Surface: "Hard", Date: day.AddDate(0, 0, -3), AWon: true},
	}

	_, err = rate(context.Background(), cfg, cache.Fingerprint(cfg.Rating, input), input)
	assert.ErrorIs(t, err, ratings.ErrOutOfOrder)
}

func TestRateMemoryCache(t *testing.T) {
	cfg, err := config.Process([]string{})
	require.NoError(t, err)
	cfg.Cache.Memory = true

	day := time.Date(2022, time.January, 17, 0, 0, 0, 0, time.UTC)
	input := []ratings.Match{
		{PlayerA: "Barty", PlayerB: "Collins", Surface: "Hard", Date: day, AWon: false},
	}

	entry, err := rate(context.Background(), cfg, cache.Fingerprint(cfg.Rating, input), input)
	require.NoError(t, err)
	assert.Equal(t, "Collins", entry.Standings[0].Player)
}

func TestRateCommandRejectsFormatBeforeWriting(t *testing.T) {
	saved := CLI.Rate
	defer func() { CLI.Rate = saved }()

	dir := t.TempDir()
	input := filepath.Join(dir, "matches.csv")
	require.NoError(t, os.WriteFile(input, []byte(
		"Date,Player A,Player B,Surface,A Won\n2022-01-17,Barty,Collins,Hard,true\n",
	), 0644))

	output := filepath.Join(dir, "rated.csv")
	require.NoError(t, os.WriteFile(output, []byte("previous results"), 0644))

	CLI.Rate.Input = input
	CLI.Rate.Output = output
	CLI.Rate.Format = "parquet"

	err := rateCommand(nil)
	assert.ErrorIs(t, err, config.ErrUnknownFormat)

	data, err := os.ReadFile(output)
	require.NoError(t, err)
	assert.Equal(t, "previous results", string(data))

	// A valid format goes through and replaces the file
	CLI.Rate.Format = "json"
	require.NoError(t, rateCommand(nil))
	data, err = os.ReadFile(output)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"Elo_Prediction": 0.5`)
}

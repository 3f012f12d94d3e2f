package main

import (
	"bytes"
	"context"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/cfoust/courtelo/pkg/ratings"
	"github.com/cfoust/courtelo/pkg/state"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRuns(t *testing.T) {
	ctx := context.Background()

	store, err := state.Open(filepath.Join(t.TempDir(), "runs.db"))
	require.NoError(t, err)
	defer store.Close()

	day := time.Date(2023, time.July, 3, 0, 0, 0, 0, time.UTC)
	settings := ratings.DefaultSettings()
	engine := ratings.NewEngine(settings)
	rated, err := engine.Process([]ratings.Match{
		{PlayerA: "Alcaraz", PlayerB: "Djokovic", Surface: "Grass", Date: day, AWon: true},
		{PlayerA: "Sinner", PlayerB: "Alcaraz", Surface: "Hard", Date: day.AddDate(0, 0, 30), AWon: false},
	})
	require.NoError(t, err)

	first, err := store.SaveRun(ctx, "aaaa", settings, rated, engine.Standings())
	require.NoError(t, err)
	second, err := store.SaveRun(ctx, "bbbb", settings, rated, engine.Standings())
	require.NoError(t, err)

	var out bytes.Buffer
	require.NoError(t, listRuns(ctx, store, &out, ""))
	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	require.Len(t, lines, 2)
	assert.True(t, strings.HasPrefix(lines[0], "2\t"))
	assert.Contains(t, lines[1], "aaaa")
	assert.Contains(t, lines[1], "k=32")

	out.Reset()
	require.NoError(t, listRuns(ctx, store, &out, "aaaa"))
	assert.Equal(t, 1, strings.Count(out.String(), "\n"))

	out.Reset()
	require.NoError(t, showRun(ctx, store, &out, second.ID, 1))
	lines = strings.Split(strings.TrimSpace(out.String()), "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, "run 2 (bbbb): 2 matches, 3 players", lines[0])
	assert.True(t, strings.HasPrefix(lines[1], "1\tAlcaraz\t"))
	assert.Contains(t, lines[1], "2-0")
	assert.Contains(t, lines[1], "Grass=1516.0 Hard=1516.0")

	assert.Error(t, showRun(ctx, store, &out, first.ID+10, 5))
}

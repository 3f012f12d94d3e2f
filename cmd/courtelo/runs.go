package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/cfoust/courtelo/pkg/config"
	"github.com/cfoust/courtelo/pkg/state"
)

func listRuns(ctx context.Context, store *state.Store, out io.Writer, fingerprint string) error {
	runs, err := store.Runs(ctx, fingerprint)
	if err != nil {
		return err
	}

	for _, run := range runs {
		_, err = fmt.Fprintf(
			out,
			"%d\t%s\t%s\tk=%g\tdecayRate=%g\n",
			run.ID,
			run.Created.Format("2006-01-02 15:04:05"),
			run.Fingerprint,
			run.K,
			run.DecayRate,
		)
		if err != nil {
			return err
		}
	}

	return nil
}

func showRun(ctx context.Context, store *state.Store, out io.Writer, id uint, top int) error {
	run, err := store.LoadRun(ctx, id)
	if err != nil {
		return fmt.Errorf("could not load run %d: %w", id, err)
	}

	_, err = fmt.Fprintf(out, "run %d (%s): %d matches, %d players\n", run.ID, run.Fingerprint, len(run.Matches), len(run.Standings))
	if err != nil {
		return err
	}

	for i, standing := range run.Standings {
		if i >= top {
			break
		}

		surfaces := make([]string, 0, len(standing.Surfaces))
		for _, surface := range standing.Surfaces {
			surfaces = append(surfaces, fmt.Sprintf("%s=%.1f", surface.Surface, surface.Rating))
		}
		sort.Strings(surfaces)

		_, err = fmt.Fprintf(
			out,
			"%d\t%s\t%.1f\t%d-%d\t%s\n",
			i+1,
			standing.Player,
			standing.Rating,
			standing.Wins,
			standing.Losses,
			strings.Join(surfaces, " "),
		)
		if err != nil {
			return err
		}
	}

	return nil
}

func runsCommand(configs []string) error {
	cfg, err := config.Process(configs)
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	if cfg.Database.Path == "" {
		return fmt.Errorf("no database configured, set database.path")
	}

	store, err := state.Open(cfg.Database.Path)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer store.Close()

	ctx := context.Background()
	if CLI.Runs.ID != 0 {
		return showRun(ctx, store, os.Stdout, CLI.Runs.ID, CLI.Runs.Top)
	}

	return listRuns(ctx, store, os.Stdout, CLI.Runs.Fingerprint)
}

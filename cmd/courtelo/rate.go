package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/cfoust/courtelo/pkg/cache"
	"github.com/cfoust/courtelo/pkg/config"
	"github.com/cfoust/courtelo/pkg/matches"
	"github.com/cfoust/courtelo/pkg/ratings"
	"github.com/cfoust/courtelo/pkg/report"
	"github.com/cfoust/courtelo/pkg/state"

	"github.com/rs/zerolog/log"
)

func readMatches(reader *matches.Reader, path string) ([]ratings.Match, error) {
	if path == "-" {
		return reader.Read(os.Stdin)
	}

	return reader.ReadFile(path)
}

func openOutput(path string) (io.WriteCloser, error) {
	if path == "-" {
		return os.Stdout, nil
	}

	return os.Create(path)
}

// rate runs the engine, or reuses a cached result for the same input and
// settings when a cache is configured.
func rate(ctx context.Context, cfg *config.Config, key string, input []ratings.Match) (*cache.Entry, error) {
	var results *cache.Cache
	if store := cache.NewStore(cfg.Cache); store != nil {
		defer func() {
			if err := cache.Close(store); err != nil {
				log.Warn().Err(err).Msg("could not close ratings cache")
			}
		}()

		var err error
		results, err = cache.New(store)
		if err != nil {
			return nil, err
		}

		entry, err := results.Get(ctx, key)
		if err == nil {
			log.Info().Str("fingerprint", key).Msg("using cached ratings")
			return entry, nil
		}

		if !errors.Is(err, cache.Missing) {
			log.Warn().Err(err).Msg("could not read ratings cache")
		}
	}

	engine := ratings.NewEngine(cfg.Rating)
	rated, err := engine.Process(input)
	if err != nil {
		return nil, err
	}

	entry := &cache.Entry{
		Matches:   rated,
		Standings: engine.Standings(),
	}

	if results != nil {
		err = results.Set(ctx, key, entry)
		if err != nil {
			log.Warn().Err(err).Msg("could not write ratings cache")
		}
	}

	return entry, nil
}

func rateCommand(configs []string) error {
	cfg, err := config.Process(configs)
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	if CLI.Rate.Format != "" {
		cfg.Output.Format = config.OutputFormat(CLI.Rate.Format)
	}

	// Fail before the output file is created and truncated
	err = cfg.Output.Format.Validate()
	if err != nil {
		return err
	}

	ctx := context.Background()

	input, err := readMatches(matches.NewReader(cfg.Input), CLI.Rate.Input)
	if err != nil {
		return fmt.Errorf("failed to read matches: %w", err)
	}

	key := cache.Fingerprint(cfg.Rating, input)
	log.Debug().
		Str("fingerprint", key).
		Float64("k", cfg.Rating.K).
		Float64("decayRate", cfg.Rating.DecayRate).
		Msg("rating matches")

	entry, err := rate(ctx, cfg, key, input)
	if err != nil {
		return err
	}

	summary := report.Evaluate(entry.Matches)
	log.Info().Object("overall", summary.Overall).Object("surface", summary.Surface).Msg("prediction quality")

	for i, standing := range entry.Standings {
		if i >= CLI.Rate.Top {
			break
		}
		log.Info().
			Int("rank", i+1).
			Uint("wins", standing.Wins).
			Uint("losses", standing.Losses).
			Msgf("%s %.1f", standing.Player, standing.Rating)
	}

	out, err := openOutput(CLI.Rate.Output)
	if err != nil {
		return err
	}

	writer := matches.NewWriter(cfg.Output.Format, cfg.Input)
	err = writer.Write(out, entry.Matches)
	if out != os.Stdout {
		closeErr := out.Close()
		if err == nil {
			err = closeErr
		}
	}
	if err != nil {
		return fmt.Errorf("failed to write ratings: %w", err)
	}

	if cfg.Database.Path == "" {
		return nil
	}

	store, err := state.Open(cfg.Database.Path)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer store.Close()

	_, err = store.SaveRun(ctx, key, cfg.Rating, entry.Matches, entry.Standings)
	return err
}

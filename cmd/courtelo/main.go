package main

import (
	"fmt"
	"os"
	"time"

	"github.com/cfoust/courtelo/pkg/config"
	"github.com/cfoust/courtelo/pkg/version"

	"github.com/alecthomas/kong"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

var CLI struct {
	Version kong.VersionFlag `help:"Print version information and exit." short:"v"`
	Debug   bool             `help:"Whether to enable debug logging."`

	Rate struct {
		Configs []string `arg:"" optional:"" name:"configs" help:"Configuration files, merged in order." type:"existingfile"`
		Input   string   `help:"CSV table of matches sorted by date, or - for standard input." short:"i" default:"-"`
		Output  string   `help:"Where to write rated matches, or - for standard output." short:"o" default:"-"`
		Format  string   `help:"Override the configured output format (csv, json, cbor)."`
		Top     int      `help:"Log the top N players once the pass finishes." default:"10"`
	} `cmd:"" help:"Rate a chronological table of matches."`

	Runs struct {
		Configs     []string `arg:"" optional:"" name:"configs" help:"Configuration files, merged in order." type:"existingfile"`
		ID          uint     `help:"Show the standings of one run instead of listing runs." name:"id"`
		Fingerprint string   `help:"Only list runs of this input and settings fingerprint."`
		Top         int      `help:"How many players to show for a run." default:"10"`
	} `cmd:"" help:"List runs stored in the configured database."`

	Config struct {
		Configs []string `arg:"" optional:"" name:"configs" help:"Configuration files, merged in order." type:"existingfile"`
	} `cmd:"" help:"Write the effective configuration to standard output."`
}

func writeError(err error) {
	fmt.Fprintf(os.Stderr, "%s\n", err)
	os.Exit(1)
}

func main() {
	// Standard output carries results, so logs go to stderr
	consoleWriter := zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}
	log.Logger = log.Output(consoleWriter)

	zerolog.SetGlobalLevel(zerolog.InfoLevel)

	ctx := kong.Parse(&CLI,
		kong.Name("courtelo"),
		kong.Description("time-decayed overall and surface Elo ratings for tennis matches"),
		kong.UsageOnError(),
		kong.Vars{
			"version": fmt.Sprintf(
				"courtelo %s (commit %s)\nbuilt %s",
				version.Version,
				version.GitCommit,
				version.BuildTime,
			),
		},
		kong.ConfigureHelp(kong.HelpOptions{
			Compact: true,
			Summary: true,
		}))

	if CLI.Debug {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
		log.Warn().Msg("debug logging enabled")
	}

	switch ctx.Command() {
	case "rate":
		fallthrough
	case "rate <configs>":
		err := rateCommand(CLI.Rate.Configs)
		if err != nil {
			writeError(err)
		}
	case "runs":
		fallthrough
	case "runs <configs>":
		err := runsCommand(CLI.Runs.Configs)
		if err != nil {
			writeError(err)
		}
	case "config":
		fallthrough
	case "config <configs>":
		err := configCommand(CLI.Config.Configs)
		if err != nil {
			writeError(err)
		}
	}
}

func configCommand(configs []string) error {
	cfg, err := config.Process(configs)
	if err != nil {
		return err
	}

	data, err := config.Render(cfg)
	if err != nil {
		return err
	}

	_, err = os.Stdout.Write(data)
	return err
}

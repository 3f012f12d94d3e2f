package ratings

import (
	"github.com/rs/zerolog/log"

	"github.com/cfoust/courtelo/pkg/mmr"
)

// Settings are the rating parameters held constant for a whole pass.
type Settings struct {
	K         float64 `json:"k" yaml:"k"`
	DecayRate float64 `json:"decayRate" yaml:"decayRate"`
	Baseline  float64 `json:"baseline" yaml:"baseline"`
	Deviation float64 `json:"deviation" yaml:"deviation"`
}

func DefaultSettings() Settings {
	return Settings{
		K:         mmr.K,
		DecayRate: mmr.DecayRate,
		Baseline:  mmr.Baseline,
		Deviation: mmr.D,
	}
}

// Engine computes time-decayed overall and per-surface Elo ratings over a
// chronological sequence of matches.
type Engine struct {
	elo   *mmr.Elo
	decay mmr.Decay
	state *State
}

func NewEngine(settings Settings) *Engine {
	return &Engine{
		elo:   mmr.NewEloWithFactors(settings.K, settings.Deviation),
		decay: mmr.Decay{Baseline: settings.Baseline, Rate: settings.DecayRate},
		state: NewState(),
	}
}

// Process rates every match in order and returns one RatedMatch per input,
// in the same order. Matches must be sorted by date ascending; the whole
// sequence is validated before any rating is touched, so an error means
// nothing was computed. Each call starts from empty state.
func (e *Engine) Process(matches []Match) ([]RatedMatch, error) {
	err := Validate(matches)
	if err != nil {
		return nil, err
	}

	e.state = NewState()

	rated := make([]RatedMatch, len(matches))
	for i, match := range matches {
		rated[i] = e.step(match)
	}

	log.Info().
		Int("matches", len(matches)).
		Int("players", len(e.state.overall.ratings)).
		Msg("rated matches")

	return rated, nil
}

func (e *Engine) step(match Match) RatedMatch {
	state := e.state
	date := Day(match.Date)
	playerA, playerB := match.PlayerA, match.PlayerB
	surfaceA := SurfaceKey{playerA, match.Surface}
	surfaceB := SurfaceKey{playerB, match.Surface}

	eloA := state.overall.prepare(playerA, date, e.decay)
	eloB := state.overall.prepare(playerB, date, e.decay)
	surfaceEloA := state.surface.prepare(surfaceA, date, e.decay)
	surfaceEloB := state.surface.prepare(surfaceB, date, e.decay)

	rated := RatedMatch{
		Match:                match,
		AElo:                 eloA,
		BElo:                 eloB,
		ASurfaceElo:          surfaceEloA,
		BSurfaceElo:          surfaceEloB,
		EloPrediction:        e.elo.ExpectedScore(eloA, eloB),
		SurfaceEloPrediction: e.elo.ExpectedScore(surfaceEloA, surfaceEloB),
	}

	score := match.Score()
	overallA, overallB := e.elo.Outcome(eloA, eloB, score)
	surfaceOutcomeA, surfaceOutcomeB := e.elo.Outcome(surfaceEloA, surfaceEloB, score)

	state.overall.settle(playerA, overallA.Rating, date)
	state.overall.settle(playerB, overallB.Rating, date)
	state.surface.settle(surfaceA, surfaceOutcomeA.Rating, date)
	state.surface.settle(surfaceB, surfaceOutcomeB.Rating, date)

	winner, loser := playerA, playerB
	if !match.AWon {
		winner, loser = playerB, playerA
	}
	state.record(winner).Wins++
	state.record(loser).Losses++

	log.Debug().
		Str("a", playerA).
		Str("b", playerB).
		Str("surface", match.Surface).
		Time("date", date).
		Float64("prediction", rated.EloPrediction).
		Msgf("%s %s, %s %s", playerA, overallA.String(), playerB, overallB.String())

	return rated
}

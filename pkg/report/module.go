package report

import (
	"math"

	"github.com/cfoust/courtelo/pkg/ratings"

	"github.com/rs/zerolog"
)

// Probabilities are clamped this far from 0 and 1 before taking logs.
const epsilon = 1e-15

// Summary scores one model's pre-match predictions against results.
type Summary struct {
	Count    int
	Correct  int
	Accuracy float64
	Brier    float64
	LogLoss  float64
}

type Report struct {
	Overall Summary
	Surface Summary
}

type accumulator struct {
	count   int
	correct int
	brier   float64
	logLoss float64
}

func (a *accumulator) add(prediction, actual float64) {
	a.count++

	// A coin flip is never counted as a correct call
	if (prediction > 0.5 && actual == 1) || (prediction < 0.5 && actual == 0) {
		a.correct++
	}

	a.brier += (prediction - actual) * (prediction - actual)

	p := math.Min(math.Max(prediction, epsilon), 1-epsilon)
	a.logLoss -= actual*math.Log(p) + (1-actual)*math.Log(1-p)
}

func (a *accumulator) summary() Summary {
	if a.count == 0 {
		return Summary{}
	}

	n := float64(a.count)
	return Summary{
		Count:    a.count,
		Correct:  a.correct,
		Accuracy: float64(a.correct) / n,
		Brier:    a.brier / n,
		LogLoss:  a.logLoss / n,
	}
}

// Evaluate scores both prediction columns of a rated sequence.
func Evaluate(rated []ratings.RatedMatch) Report {
	var overall, surface accumulator
	for _, match := range rated {
		actual := match.Score()
		overall.add(match.EloPrediction, actual)
		surface.add(match.SurfaceEloPrediction, actual)
	}

	return Report{
		Overall: overall.summary(),
		Surface: surface.summary(),
	}
}

func (s Summary) MarshalZerologObject(e *zerolog.Event) {
	e.Int("count", s.Count).
		Float64("accuracy", s.Accuracy).
		Float64("brier", s.Brier).
		Float64("logLoss", s.LogLoss)
}

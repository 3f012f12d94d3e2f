package ratings

import (
	"time"
)

// Match is a single two-player result. Dates are compared at day granularity.
type Match struct {
	PlayerA string
	PlayerB string
	Surface string
	Date    time.Time
	AWon    bool
}

// RatedMatch is a Match together with the ratings both players carried into
// it and the win probability the model gave player A.
type RatedMatch struct {
	Match

	AElo                 float64
	BElo                 float64
	ASurfaceElo          float64
	BSurfaceElo          float64
	EloPrediction        float64
	SurfaceEloPrediction float64
}

// Score is player A's result as used by the update rule.
func (m Match) Score() float64 {
	if m.AWon {
		return 1
	}
	return 0
}

// Day truncates t to midnight UTC of its calendar date.
func Day(t time.Time) time.Time {
	year, month, day := t.Date()
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

// Days is the number of whole calendar days from one date to another.
func Days(from, to time.Time) int {
	return int(Day(to).Sub(Day(from)) / (24 * time.Hour))
}

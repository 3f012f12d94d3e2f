package mmr

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExpectedScore(t *testing.T) {
	e := NewElo()

	assert.Equal(t, 0.5, e.ExpectedScore(1500, 1500))

	// 400 points is a factor of ten in odds
	assert.InDelta(t, 10.0/11.0, e.ExpectedScore(1900, 1500), 1e-12)
	assert.InDelta(t, 1.0/11.0, e.ExpectedScore(1500, 1900), 1e-12)

	for _, diff := range []float64{-3000, -400, -1, 0, 1, 400, 3000} {
		p := e.ExpectedScore(1500+diff, 1500)
		assert.Greater(t, p, 0.0)
		assert.Less(t, p, 1.0)
		assert.InDelta(t, 1.0, p+e.ExpectedScore(1500, 1500+diff), 1e-12)
	}
}

func TestOutcome(t *testing.T) {
	e := NewElo()

	a, b := e.Outcome(1500, 1500, 1)
	assert.Equal(t, 16.0, a.Delta)
	assert.Equal(t, 1516.0, a.Rating)
	assert.Equal(t, -16.0, b.Delta)
	assert.Equal(t, 1484.0, b.Rating)
	assert.Equal(t, "1516.00 (+16.00)", a.String())

	assert.Equal(t, 1516.0, e.Rating(1500, 1500, 1))
	assert.Equal(t, 1484.0, e.Rating(1500, 1500, 0))
	assert.Equal(t, e.Rating(1623.5, 1411.25, 1), 1623.5+e.RatingDelta(1623.5, 1411.25, 1))

	a, b = NewEloWithFactors(10, 400).Outcome(1623.5, 1411.25, 0)
	assert.Equal(t, a.Delta, -b.Delta)
	assert.Less(t, a.Delta, 0.0)
	assert.Greater(t, a.Delta, -10.0)
}

func TestDecay(t *testing.T) {
	d := NewDecay()

	assert.Equal(t, 1516.0, d.Apply(1516, 0))
	assert.Equal(t, 1516.123456789, d.Apply(1516.123456789, 0))
	assert.Equal(t, 1500.0, d.Apply(1500, 365))

	expected := 1500 + 16*math.Exp(-0.00025*100)
	assert.InDelta(t, expected, d.Apply(1516, 100), 1e-9)

	// Distance to the baseline shrinks strictly as the gap grows
	previous := math.Abs(d.Apply(1320, 1) - Baseline)
	for _, days := range []int{2, 10, 100, 1000, 10000} {
		distance := math.Abs(d.Apply(1320, days) - Baseline)
		assert.Less(t, distance, previous)
		previous = distance
	}

	assert.Equal(t, 1700.0, Decay{Baseline: 1500, Rate: 0}.Apply(1700, 1000))
}

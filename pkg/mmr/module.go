// https://github.com/kortemy/elo-go
//MIT License

//Copyright (c) 2017 Dusan Lilic

//Permission is hereby granted, free of charge, to any person obtaining a copy
//of this software and associated documentation files (the "Software"), to deal
//in the Software without restriction, including without limitation the rights
//to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
//copies of the Software, and to permit persons to whom the Software is
//furnished to do so, subject to the following conditions:

//The above copyright notice and this permission notice shall be included in all
//copies or substantial portions of the Software.

// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
// IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
// FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
// AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
// LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
// OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
// SOFTWARE.
package mmr

import (
	"fmt"
	"math"
)

const (
	// K is the default K-Factor
	K = 32
	// D is the default deviation
	D = 400
	// Baseline is the rating given to a player on first appearance
	Baseline = 1500
	// DecayRate is the default per-day decay constant
	DecayRate = 0.00025
)

// Elo calculates Elo rating changes based on the configured factors.
type Elo struct {
	K float64
	D float64
}

// Outcome is a match result data for a single player.
type Outcome struct {
	Delta  float64
	Rating float64
}

func (o *Outcome) String() string {
	return fmt.Sprintf("%.2f (%+.2f)", o.Rating, o.Delta)
}

// NewElo instantiates the Elo object with default factors.
// Default K-Factor is 32
// Default deviation is 400
func NewElo() *Elo {
	return &Elo{K, D}
}

// NewEloWithFactors instantiates the Elo object with custom factor values.
func NewEloWithFactors(k, d float64) *Elo {
	return &Elo{k, d}
}

// ExpectedScore gives the expected chance that the first player wins
func (e *Elo) ExpectedScore(ratingA, ratingB float64) float64 {
	return 1 / (1 + math.Pow(10, (ratingB-ratingA)/e.D))
}

// RatingDelta gives the ratings change for the first player for the given score
func (e *Elo) RatingDelta(ratingA, ratingB, score float64) float64 {
	return e.K * (score - e.ExpectedScore(ratingA, ratingB))
}

// Rating gives the new rating for the first player for the given score
func (e *Elo) Rating(ratingA, ratingB, score float64) float64 {
	return ratingA + e.RatingDelta(ratingA, ratingB, score)
}

// Outcome gives an Outcome object for each player for the given score. The
// second player always moves by exactly the negated delta of the first.
func (e *Elo) Outcome(ratingA, ratingB, score float64) (Outcome, Outcome) {
	rating := e.Rating(ratingA, ratingB, score)
	delta := rating - ratingA
	return Outcome{delta, rating}, Outcome{-delta, ratingB - delta}
}

// Decay pulls ratings toward Baseline as days pass without a match.
type Decay struct {
	Baseline float64
	Rate     float64
}

// NewDecay instantiates a Decay with the default baseline and rate.
func NewDecay() Decay {
	return Decay{Baseline, DecayRate}
}

// Factor is the multiplier applied to a rating's deviation from the baseline
// after the given number of days.
func (d Decay) Factor(days int) float64 {
	return math.Exp(-d.Rate * float64(days))
}

// Apply decays the rating over the given number of days. A zero (or negative)
// gap returns the rating untouched.
func (d Decay) Apply(rating float64, days int) float64 {
	if days <= 0 || d.Rate == 0 {
		return rating
	}

	return d.Baseline + (rating-d.Baseline)*d.Factor(days)
}

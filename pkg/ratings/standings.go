package ratings

import (
	"sort"
	"time"
)

// Standing is a player's position at the end of a pass. Ratings are as of the
// player's last match and are not decayed any further.
type Standing struct {
	Player   string
	Rating   float64
	Surfaces map[string]float64
	Wins     uint
	Losses   uint
	LastSeen time.Time
}

// Standings lists every player seen by the last call to Process, highest
// overall rating first. The result does not alias engine state.
func (e *Engine) Standings() []Standing {
	state := e.state

	standings := make([]Standing, 0, len(state.overall.ratings))
	index := make(map[string]int, len(state.overall.ratings))
	for player, rating := range state.overall.ratings {
		record := state.record(player)
		index[player] = len(standings)
		standings = append(standings, Standing{
			Player:   player,
			Rating:   rating,
			Surfaces: make(map[string]float64),
			Wins:     record.Wins,
			Losses:   record.Losses,
			LastSeen: state.overall.lastSeen[player],
		})
	}

	for key, rating := range state.surface.ratings {
		standings[index[key.Player]].Surfaces[key.Surface] = rating
	}

	sort.Slice(standings, func(i, j int) bool {
		if standings[i].Rating != standings[j].Rating {
			return standings[i].Rating > standings[j].Rating
		}
		return standings[i].Player < standings[j].Player
	})

	return standings
}

package ratings

import (
	"time"

	"github.com/repeale/fp-go/option"

	"github.com/cfoust/courtelo/pkg/mmr"
)

// SurfaceKey identifies a player's rating on one surface.
type SurfaceKey struct {
	Player  string
	Surface string
}

// track holds one dimension of rating state: a rating per key and the date
// that key last played.
type track[K comparable] struct {
	ratings  map[K]float64
	lastSeen map[K]time.Time
}

func newTrack[K comparable]() track[K] {
	return track[K]{
		ratings:  make(map[K]float64),
		lastSeen: make(map[K]time.Time),
	}
}

func (t *track[K]) LastSeen(key K) opt.Option[time.Time] {
	date, ok := t.lastSeen[key]
	if !ok {
		return opt.None[time.Time]()
	}

	return opt.Some(date)
}

// prepare returns the rating key carries into a match on date, creating it at
// the baseline on first appearance and otherwise decaying it for the days
// since it last played.
func (t *track[K]) prepare(key K, date time.Time, decay mmr.Decay) float64 {
	rating, ok := t.ratings[key]
	if !ok {
		t.ratings[key] = decay.Baseline
		return decay.Baseline
	}

	seen := t.LastSeen(key)
	if opt.IsNone(seen) {
		return rating
	}

	rating = decay.Apply(rating, Days(seen.Value, date))
	t.ratings[key] = rating
	return rating
}

func (t *track[K]) settle(key K, rating float64, date time.Time) {
	t.ratings[key] = rating
	t.lastSeen[key] = date
}

// Record is a player's win/loss tally.
type Record struct {
	Wins   uint
	Losses uint
}

// State is everything the engine knows during one pass. It is rebuilt from
// scratch for every call to Process.
type State struct {
	overall track[string]
	surface track[SurfaceKey]
	records map[string]*Record
}

func NewState() *State {
	return &State{
		overall: newTrack[string](),
		surface: newTrack[SurfaceKey](),
		records: make(map[string]*Record),
	}
}

func (s *State) record(player string) *Record {
	record, ok := s.records[player]
	if !ok {
		record = &Record{}
		s.records[player] = record
	}
	return record
}

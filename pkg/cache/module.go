package cache

import (
	"context"
	"fmt"
	"strconv"

	"github.com/cfoust/courtelo/pkg/ratings"

	"github.com/cespare/xxhash/v2"
	"github.com/fxamacker/cbor/v2"
	"github.com/rs/zerolog/log"
)

// Entry is everything a pass produces.
type Entry struct {
	Matches   []ratings.RatedMatch
	Standings []ratings.Standing
}

// Fingerprint identifies a pass by its settings and input. Two passes with
// the same fingerprint produce the same Entry.
func Fingerprint(settings ratings.Settings, matches []ratings.Match) string {
	digest := xxhash.New()

	writeFloat := func(value float64) {
		digest.WriteString(strconv.FormatFloat(value, 'g', -1, 64))
		digest.WriteString("\x00")
	}
	writeFloat(settings.K)
	writeFloat(settings.DecayRate)
	writeFloat(settings.Baseline)
	writeFloat(settings.Deviation)

	for _, match := range matches {
		digest.WriteString(match.PlayerA)
		digest.WriteString("\x00")
		digest.WriteString(match.PlayerB)
		digest.WriteString("\x00")
		digest.WriteString(match.Surface)
		digest.WriteString("\x00")
		digest.WriteString(ratings.Day(match.Date).Format("2006-01-02"))
		digest.WriteString("\x00")
		digest.WriteString(strconv.FormatBool(match.AWon))
		digest.WriteString("\n")
	}

	return fmt.Sprintf("%016x", digest.Sum64())
}

// Cache stores the output of rating passes by fingerprint.
type Cache struct {
	store Store
	mode  cbor.EncMode
}

func New(store Store) (*Cache, error) {
	mode, err := cbor.EncOptions{Time: cbor.TimeRFC3339Nano}.EncMode()
	if err != nil {
		return nil, err
	}

	return &Cache{
		store: store,
		mode:  mode,
	}, nil
}

func (c *Cache) Get(ctx context.Context, key string) (*Entry, error) {
	data, err := c.store.Get(ctx, key)
	if err != nil {
		return nil, err
	}

	var entry Entry
	err = cbor.Unmarshal(data, &entry)
	if err != nil {
		return nil, fmt.Errorf("corrupt cache entry %s: %w", key, err)
	}

	log.Debug().Str("key", key).Int("matches", len(entry.Matches)).Msg("cache hit")
	return &entry, nil
}

func (c *Cache) Set(ctx context.Context, key string, entry *Entry) error {
	data, err := c.mode.Marshal(entry)
	if err != nil {
		return err
	}

	return c.store.Set(ctx, key, data)
}

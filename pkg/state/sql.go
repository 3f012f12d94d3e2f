package state

import (
	"context"
	"time"

	"github.com/cfoust/courtelo/pkg/ratings"

	"github.com/rs/zerolog/log"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type Entity struct {
	ID uint `gorm:"primaryKey"`
}

// A single invocation of the rating pass
type Run struct {
	Entity
	Created time.Time

	// Identifies the (settings, input) pair that produced the run
	Fingerprint string `gorm:"size:16;index"`

	K         float64
	DecayRate float64
	Baseline  float64
	Deviation float64

	Matches   []*RatedMatch
	Standings []*Standing
}

type RatedMatch struct {
	Entity
	RunID    uint `gorm:"not null;index"`
	Position int  `gorm:"not null"`

	PlayerA string `gorm:"size:64;not null"`
	PlayerB string `gorm:"size:64;not null"`
	Surface string `gorm:"size:32;not null"`
	Date    time.Time
	AWon    bool

	AElo                 float64
	BElo                 float64
	ASurfaceElo          float64
	BSurfaceElo          float64
	EloPrediction        float64
	SurfaceEloPrediction float64
}

type Standing struct {
	Entity
	RunID    uint   `gorm:"not null;index"`
	Player   string `gorm:"size:64;not null"`
	Rating   float64
	Wins     uint
	Losses   uint
	LastSeen time.Time

	Surfaces []*SurfaceRating
}

type SurfaceRating struct {
	Entity
	StandingID uint   `gorm:"not null;index"`
	Surface    string `gorm:"size:32;not null"`
	Rating     float64
}

func InitDB(path string) (*gorm.DB, error) {
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		CreateBatchSize: 500,
		Logger:          logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		return nil, err
	}

	err = db.AutoMigrate(
		&Run{},
		&RatedMatch{},
		&Standing{},
		&SurfaceRating{},
	)
	if err != nil {
		return nil, err
	}

	return db, nil
}

// Store records the results of rating passes. Rating state is never read
// back from it.
type Store struct {
	db *gorm.DB
}

func NewStore(db *gorm.DB) *Store {
	return &Store{db: db}
}

func Open(path string) (*Store, error) {
	db, err := InitDB(path)
	if err != nil {
		return nil, err
	}

	return NewStore(db), nil
}

func (s *Store) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}

	return sqlDB.Close()
}

func newRun(fingerprint string, settings ratings.Settings, rated []ratings.RatedMatch, standings []ratings.Standing) *Run {
	run := Run{
		Created:     time.Now(),
		Fingerprint: fingerprint,
		K:           settings.K,
		DecayRate:   settings.DecayRate,
		Baseline:    settings.Baseline,
		Deviation:   settings.Deviation,
		Matches:     make([]*RatedMatch, 0, len(rated)),
		Standings:   make([]*Standing, 0, len(standings)),
	}

	for i, match := range rated {
		run.Matches = append(run.Matches, &RatedMatch{
			Position:             i,
			PlayerA:              match.PlayerA,
			PlayerB:              match.PlayerB,
			Surface:              match.Surface,
			Date:                 match.Date,
			AWon:                 match.AWon,
			AElo:                 match.AElo,
			BElo:                 match.BElo,
			ASurfaceElo:          match.ASurfaceElo,
			BSurfaceElo:          match.BSurfaceElo,
			EloPrediction:        match.EloPrediction,
			SurfaceEloPrediction: match.SurfaceEloPrediction,
		})
	}

	for _, standing := range standings {
		row := Standing{
			Player:   standing.Player,
			Rating:   standing.Rating,
			Wins:     standing.Wins,
			Losses:   standing.Losses,
			LastSeen: standing.LastSeen,
		}
		for surface, rating := range standing.Surfaces {
			row.Surfaces = append(row.Surfaces, &SurfaceRating{
				Surface: surface,
				Rating:  rating,
			})
		}
		run.Standings = append(run.Standings, &row)
	}

	return &run
}

// SaveRun stores a finished pass and everything it produced in one
// transaction.
func (s *Store) SaveRun(
	ctx context.Context,
	fingerprint string,
	settings ratings.Settings,
	rated []ratings.RatedMatch,
	standings []ratings.Standing,
) (*Run, error) {
	run := newRun(fingerprint, settings, rated, standings)

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.Create(run).Error
	})
	if err != nil {
		return nil, err
	}

	log.Info().
		Uint("run", run.ID).
		Int("matches", len(run.Matches)).
		Int("players", len(run.Standings)).
		Msg("saved run")

	return run, nil
}

// LoadRun fetches a run with its matches in their original order and its
// standings highest rating first.
func (s *Store) LoadRun(ctx context.Context, id uint) (*Run, error) {
	var run Run
	err := s.db.WithContext(ctx).
		Preload("Matches", func(db *gorm.DB) *gorm.DB {
			return db.Order("position")
		}).
		Preload("Standings", func(db *gorm.DB) *gorm.DB {
			return db.Order("rating desc, player")
		}).
		Preload("Standings.Surfaces").
		First(&run, id).Error
	if err != nil {
		return nil, err
	}

	return &run, nil
}

// Runs lists stored runs newest first, without their matches. An empty
// fingerprint lists every run.
func (s *Store) Runs(ctx context.Context, fingerprint string) ([]Run, error) {
	var runs []Run
	err := s.db.WithContext(ctx).
		Where(Run{Fingerprint: fingerprint}).
		Order("id desc").
		Find(&runs).Error
	return runs, err
}

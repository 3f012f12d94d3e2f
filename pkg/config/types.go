package config

import (
	"fmt"

	"github.com/cfoust/courtelo/pkg/ratings"
)

type OutputFormat string

const (
	OutputFormatCSV  = "csv"
	OutputFormatJSON = "json"
	OutputFormatCBOR = "cbor"
)

var ErrUnknownFormat = fmt.Errorf("unknown output format")

// Validate rejects formats the writer cannot produce.
func (f OutputFormat) Validate() error {
	switch f {
	case OutputFormatCSV, OutputFormatJSON, OutputFormatCBOR:
		return nil
	}
	return fmt.Errorf("%w %q", ErrUnknownFormat, string(f))
}

// Columns names the input table's header for each match field.
type Columns struct {
	PlayerA string `json:"playerA" yaml:"playerA"`
	PlayerB string `json:"playerB" yaml:"playerB"`
	Surface string `json:"surface" yaml:"surface"`
	Date    string `json:"date" yaml:"date"`
	AWon    string `json:"aWon" yaml:"aWon"`
}

type InputSettings struct {
	Columns    Columns `json:"columns" yaml:"columns"`
	DateLayout string  `json:"dateLayout" yaml:"dateLayout"`
}

type OutputSettings struct {
	Format OutputFormat `json:"format" yaml:"format"`
}

type DatabaseSettings struct {
	Path string `json:"path" yaml:"path"`
}

type RedisSettings struct {
	Address  string `json:"address" yaml:"address"`
	Password string `json:"password" yaml:"password"`
	DB       int    `json:"db" yaml:"db"`
}

type CacheSettings struct {
	// Keep results in process memory, in front of any other backend
	Memory    bool          `json:"memory" yaml:"memory"`
	Directory string        `json:"directory" yaml:"directory"`
	Redis     RedisSettings `json:"redis" yaml:"redis"`
}

type Config struct {
	Rating   ratings.Settings `json:"rating" yaml:"rating"`
	Input    InputSettings    `json:"input" yaml:"input"`
	Output   OutputSettings   `json:"output" yaml:"output"`
	Database DatabaseSettings `json:"database" yaml:"database"`
	Cache    CacheSettings    `json:"cache" yaml:"cache"`
}

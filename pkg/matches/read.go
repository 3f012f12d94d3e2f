package matches

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/cfoust/courtelo/pkg/config"
	"github.com/cfoust/courtelo/pkg/ratings"

	"github.com/rs/zerolog/log"
)

// Reader turns a CSV table with a header row into matches.
type Reader struct {
	columns config.Columns
	layout  string
}

func NewReader(settings config.InputSettings) *Reader {
	return &Reader{
		columns: settings.Columns,
		layout:  settings.DateLayout,
	}
}

type columnIndex struct {
	playerA int
	playerB int
	surface int
	date    int
	aWon    int
}

func (r *Reader) index(header []string) (*columnIndex, error) {
	positions := make(map[string]int, len(header))
	for i, name := range header {
		positions[strings.TrimSpace(name)] = i
	}

	find := func(name string) (int, error) {
		position, ok := positions[name]
		if !ok {
			return 0, fmt.Errorf("missing column %q", name)
		}
		return position, nil
	}

	var (
		index columnIndex
		err   error
	)
	if index.playerA, err = find(r.columns.PlayerA); err != nil {
		return nil, err
	}
	if index.playerB, err = find(r.columns.PlayerB); err != nil {
		return nil, err
	}
	if index.surface, err = find(r.columns.Surface); err != nil {
		return nil, err
	}
	if index.date, err = find(r.columns.Date); err != nil {
		return nil, err
	}
	if index.aWon, err = find(r.columns.AWon); err != nil {
		return nil, err
	}

	return &index, nil
}

// Read parses every row. The first malformed row aborts the read.
func (r *Reader) Read(in io.Reader) ([]ratings.Match, error) {
	table := csv.NewReader(in)
	table.ReuseRecord = true

	header, err := table.Read()
	if err == io.EOF {
		return nil, fmt.Errorf("empty input")
	}
	if err != nil {
		return nil, err
	}

	index, err := r.index(header)
	if err != nil {
		return nil, err
	}

	matches := make([]ratings.Match, 0)
	for row := 1; ; row++ {
		record, err := table.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}

		match, err := r.parse(index, record)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", row, err)
		}

		matches = append(matches, match)
	}

	log.Debug().Int("rows", len(matches)).Msg("read matches")
	return matches, nil
}

func (r *Reader) parse(index *columnIndex, record []string) (ratings.Match, error) {
	field := func(position int, name string) (string, error) {
		value := strings.TrimSpace(record[position])
		if value == "" {
			return "", fmt.Errorf("empty %s", name)
		}
		return value, nil
	}

	var match ratings.Match
	var err error

	if match.PlayerA, err = field(index.playerA, r.columns.PlayerA); err != nil {
		return match, err
	}
	if match.PlayerB, err = field(index.playerB, r.columns.PlayerB); err != nil {
		return match, err
	}
	if match.Surface, err = field(index.surface, r.columns.Surface); err != nil {
		return match, err
	}

	date, err := field(index.date, r.columns.Date)
	if err != nil {
		return match, err
	}
	match.Date, err = time.Parse(r.layout, date)
	if err != nil {
		return match, fmt.Errorf("invalid %s: %w", r.columns.Date, err)
	}

	won, err := field(index.aWon, r.columns.AWon)
	if err != nil {
		return match, err
	}
	match.AWon, err = strconv.ParseBool(won)
	if err != nil {
		return match, fmt.Errorf("invalid %s: %w", r.columns.AWon, err)
	}

	return match, nil
}

func (r *Reader) ReadFile(path string) ([]ratings.Match, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	return r.Read(file)
}

package ratings

import (
	"fmt"
)

var (
	ErrMissingPlayer  = fmt.Errorf("missing player")
	ErrMissingSurface = fmt.Errorf("missing surface")
	ErrMissingDate    = fmt.Errorf("missing date")
	ErrSelfMatch      = fmt.Errorf("player cannot face themselves")
	ErrOutOfOrder     = fmt.Errorf("match is dated before the previous one")
)

// MatchError reports which record of a sequence was rejected.
type MatchError struct {
	Index int
	Err   error
}

func (e *MatchError) Error() string {
	return fmt.Sprintf("match %d: %v", e.Index, e.Err)
}

func (e *MatchError) Unwrap() error {
	return e.Err
}

// Validate checks that a single match has every field the engine reads.
func (m Match) Validate() error {
	if m.PlayerA == "" || m.PlayerB == "" {
		return ErrMissingPlayer
	}

	if m.PlayerA == m.PlayerB {
		return fmt.Errorf("%w: %s", ErrSelfMatch, m.PlayerA)
	}

	if m.Surface == "" {
		return ErrMissingSurface
	}

	if m.Date.IsZero() {
		return ErrMissingDate
	}

	return nil
}

// Validate checks every match and that dates never go backwards.
func Validate(matches []Match) error {
	for i, match := range matches {
		err := match.Validate()
		if err != nil {
			return &MatchError{i, err}
		}

		if i == 0 {
			continue
		}

		previous := Day(matches[i-1].Date)
		if Day(match.Date).Before(previous) {
			return &MatchError{i, fmt.Errorf(
				"%w: %s < %s",
				ErrOutOfOrder,
				Day(match.Date).Format("2006-01-02"),
				previous.Format("2006-01-02"),
			)}
		}
	}

	return nil
}

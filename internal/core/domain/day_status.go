package domain

import (
	"encoding/json"
	"errors"
	"fmt"
)

var (
	ErrInvalidDayStatus = errors.New("invalid day status (must be pending, completed, or qaza)")
	ErrDayOutOfRange    = errors.New("day index out of range (must be 0-29)")
)

// DaysInMonth is the fixed length of the tracked observance period.
const DaysInMonth = 30

type DayStatus uint8

const (
	StatusPending DayStatus = iota
	StatusCompleted
	StatusQaza
)

const (
	statusPendingText   = "pending"
	statusCompletedText = "completed"
	statusQazaText      = "qaza"
)

func ParseDayStatus(s string) (DayStatus, error) {
	switch s {
	case statusPendingText:
		return StatusPending, nil
	case statusCompletedText:
		return StatusCompleted, nil
	case statusQazaText:
		return StatusQaza, nil
	default:
		return StatusPending, fmt.Errorf("%w: %q", ErrInvalidDayStatus, s)
	}
}

func (s DayStatus) String() string {
	switch s {
	case StatusCompleted:
		return statusCompletedText
	case StatusQaza:
		return statusQazaText
	default:
		return statusPendingText
	}
}

func (s DayStatus) Valid() bool {
	return s <= StatusQaza
}

func (s DayStatus) MarshalJSON() ([]byte, error) {
	if !s.Valid() {
		return nil, ErrInvalidDayStatus
	}
	return json.Marshal(s.String())
}

func (s *DayStatus) UnmarshalJSON(data []byte) error {
	var text string
	if err := json.Unmarshal(data, &text); err != nil {
		return fmt.Errorf("%w: %s", ErrInvalidDayStatus, data)
	}
	parsed, err := ParseDayStatus(text)
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}

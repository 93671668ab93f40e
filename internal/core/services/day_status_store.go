package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/comitanigiacomo/ramadan-tracker/internal/core/domain"
)

type HistorySaver interface {
	Save(ctx context.Context, history domain.History) error
}

// DayStatusStore is the in-memory authority for every year's record.
// It is not safe for concurrent use; Tracker serializes access.
type DayStatusStore struct {
	saver   HistorySaver
	history domain.History
	logger  *slog.Logger
}

func NewDayStatusStore(saver HistorySaver, history domain.History, logger *slog.Logger) *DayStatusStore {
	if history == nil {
		history = domain.NewHistory()
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &DayStatusStore{
		saver:   saver,
		history: history,
		logger:  logger.With("component", "day_status_store"),
	}
}

// Get returns a copy of the year's record, creating and persisting an
// all-Pending record on first access.
func (s *DayStatusStore) Get(ctx context.Context, year int) domain.YearRecord {
	return *s.ensure(ctx, year)
}

// Ensure reports whether the year's record had to be created.
func (s *DayStatusStore) Ensure(ctx context.Context, year int) bool {
	if _, ok := s.history[year]; ok {
		return false
	}
	s.ensure(ctx, year)
	return true
}

// Set changes one day and persists the history. When persisting fails the
// change is undone and an error wrapping domain.ErrPersistFailed is returned.
func (s *DayStatusStore) Set(ctx context.Context, year, index int, status domain.DayStatus) error {
	if !domain.ValidDayIndex(index) {
		return domain.ErrDayOutOfRange
	}
	if !status.Valid() {
		return domain.ErrInvalidDayStatus
	}

	record, existed := s.history[year]
	if !existed {
		record = domain.NewYearRecord()
		s.history[year] = record
	}
	previous := record[index]
	record[index] = status

	if err := s.save(ctx); err != nil {
		if existed {
			record[index] = previous
		} else {
			delete(s.history, year)
		}
		return fmt.Errorf("%w: %w", domain.ErrPersistFailed, err)
	}
	return nil
}

func (s *DayStatusStore) Years() []int {
	return s.history.Years()
}

// Each returns a copy of every known record, keyed by year.
func (s *DayStatusStore) Each(fn func(year int, record domain.YearRecord)) {
	for _, year := range s.history.Years() {
		fn(year, *s.history[year])
	}
}

func (s *DayStatusStore) ensure(ctx context.Context, year int) *domain.YearRecord {
	record, ok := s.history[year]
	if ok {
		return record
	}

	record = domain.NewYearRecord()
	s.history[year] = record
	s.logger.Debug("created year record", "year", year)
	s.persist(ctx)
	return record
}

func (s *DayStatusStore) persist(ctx context.Context) {
	if err := s.save(ctx); err != nil {
		s.logger.Warn("persisting history failed", "error", err)
	}
}

func (s *DayStatusStore) save(ctx context.Context) error {
	if s.saver == nil {
		return nil
	}
	return s.saver.Save(ctx, s.history)
}

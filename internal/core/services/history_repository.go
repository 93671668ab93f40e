package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"sync"

	"github.com/comitanigiacomo/ramadan-tracker/internal/core/domain"
)

const (
	HistoryKey       = "shere_ramadan_ul_moazam_history_v2"
	LegacyHistoryKey = "shere_ramadan_ul_moazam_state_v1"
)

// HistoryRepository loads, validates and saves the whole year history as a
// single JSON blob, and migrates the single-year legacy format once.
//
// Entries whose key is not a canonical year ("01446", "latest") are not part
// of the History but are written back unchanged on every Save.
type HistoryRepository struct {
	store       domain.KeyValueStore
	currentYear int
	logger      *slog.Logger

	mu     sync.Mutex
	extras map[string]*domain.YearRecord
}

func NewHistoryRepository(store domain.KeyValueStore, currentYear int, logger *slog.Logger) *HistoryRepository {
	if logger == nil {
		logger = slog.Default()
	}
	return &HistoryRepository{
		store:       store,
		currentYear: currentYear,
		logger:      logger.With("component", "history_repository"),
	}
}

// Load never fails: unreadable or malformed data yields an empty history and
// malformed years are reset to all-Pending.
func (r *HistoryRepository) Load(ctx context.Context) domain.History {
	history := r.read(ctx)
	r.migrateLegacy(ctx, history)
	return history
}

// Save overwrites the persisted blob with the full history.
func (r *HistoryRepository) Save(ctx context.Context, history domain.History) error {
	r.mu.Lock()
	payload := make(map[string]*domain.YearRecord, len(history)+len(r.extras))
	for key, record := range r.extras {
		payload[key] = record
	}
	r.mu.Unlock()

	for year, record := range history {
		payload[strconv.Itoa(year)] = record
	}

	data, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("history: encode failed: %w", err)
	}

	if err := r.store.Set(ctx, HistoryKey, string(data)); err != nil {
		return fmt.Errorf("history: save failed: %w", err)
	}
	return nil
}

func (r *HistoryRepository) read(ctx context.Context) domain.History {
	history := domain.NewHistory()

	r.mu.Lock()
	r.extras = nil
	r.mu.Unlock()

	raw, err := r.store.Get(ctx, HistoryKey)
	if err != nil {
		if !errors.Is(err, domain.ErrKeyNotFound) {
			r.logger.Warn("history read failed, starting empty", "error", err)
		}
		return history
	}
	if raw == "" {
		return history
	}

	var entries map[string]json.RawMessage
	if err := json.Unmarshal([]byte(raw), &entries); err != nil {
		r.logger.Warn("history is not a JSON object, starting empty", "error", err)
		return history
	}

	extras := make(map[string]*domain.YearRecord)
	for key, value := range entries {
		record, ok := decodeYearRecord(value)
		if !ok {
			r.logger.Warn("resetting malformed year record", "key", key)
		}

		year, err := strconv.Atoi(key)
		if err != nil || strconv.Itoa(year) != key {
			r.logger.Warn("keeping history entry with non-canonical year aside", "key", key)
			extras[key] = record
			continue
		}
		history[year] = record
	}

	r.mu.Lock()
	r.extras = extras
	r.mu.Unlock()

	return history
}

func (r *HistoryRepository) migrateLegacy(ctx context.Context, history domain.History) {
	raw, err := r.store.Get(ctx, LegacyHistoryKey)
	if err != nil {
		if !errors.Is(err, domain.ErrKeyNotFound) {
			r.logger.Warn("legacy read failed", "error", err)
		}
		return
	}
	if raw == "" {
		return
	}

	// A corrupt legacy value aborts the migration and stays in place.
	var legacy any
	if err := json.Unmarshal([]byte(raw), &legacy); err != nil {
		r.logger.Debug("legacy value is not valid JSON, skipping migration", "error", err)
		return
	}

	if _, exists := history[r.currentYear]; !exists {
		if days, ok := legacy.([]any); ok && len(days) == domain.DaysInMonth {
			record, valid := decodeYearRecord(json.RawMessage(raw))
			if !valid {
				r.logger.Warn("legacy record malformed, adopting as all-pending", "year", r.currentYear)
			}
			history[r.currentYear] = record

			if err := r.Save(ctx, history); err != nil {
				r.logger.Warn("legacy migration could not persist, keeping legacy key", "error", err)
				return
			}
			r.logger.Info("migrated legacy record", "year", r.currentYear)
		}
	}

	if err := r.store.Delete(ctx, LegacyHistoryKey); err != nil {
		r.logger.Warn("legacy key cleanup failed", "error", err)
	}
}

// decodeYearRecord accepts only an array of exactly 30 known statuses.
// Anything else is replaced as a whole by an all-Pending record.
func decodeYearRecord(raw json.RawMessage) (*domain.YearRecord, bool) {
	var days []domain.DayStatus
	if err := json.Unmarshal(raw, &days); err != nil || len(days) != domain.DaysInMonth {
		return domain.NewYearRecord(), false
	}

	record := domain.NewYearRecord()
	copy(record[:], days)
	return record, true
}

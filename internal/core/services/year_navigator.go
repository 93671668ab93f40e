package services

import (
	"context"
	"log/slog"

	"github.com/comitanigiacomo/ramadan-tracker/internal/core/domain"
)

// ResolveCurrentDate asks the provider for today's Hijri date and silently
// falls back to domain.FallbackHijriDate on any failure.
func ResolveCurrentDate(provider domain.CalendarProvider, logger *slog.Logger) domain.HijriDate {
	if logger == nil {
		logger = slog.Default()
	}
	if provider == nil {
		return domain.FallbackHijriDate
	}

	date, err := provider.CurrentDate()
	if err != nil {
		logger.Debug("calendar provider failed, using fallback date", "component", "year_navigator", "error", err)
		return domain.FallbackHijriDate
	}
	return date
}

// YearNavigator holds the selected year. Its range is deliberately unbounded.
type YearNavigator struct {
	store    *DayStatusStore
	today    domain.HijriDate
	selected int
}

func NewYearNavigator(store *DayStatusStore, today domain.HijriDate) *YearNavigator {
	return &YearNavigator{
		store:    store,
		today:    today,
		selected: today.Year,
	}
}

func (n *YearNavigator) Selected() int {
	return n.selected
}

func (n *YearNavigator) CurrentYear() int {
	return n.today.Year
}

func (n *YearNavigator) Today() domain.HijriDate {
	return n.today
}

func (n *YearNavigator) IsCurrentYear() bool {
	return n.selected == n.today.Year
}

// Shift moves the selection by delta and makes sure the target year has a
// record.
func (n *YearNavigator) Shift(ctx context.Context, delta int) int {
	n.selected += delta
	n.store.Ensure(ctx, n.selected)
	return n.selected
}

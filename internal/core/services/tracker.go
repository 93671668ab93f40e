package services

import (
	"context"
	"log/slog"
	"sync"

	"github.com/comitanigiacomo/ramadan-tracker/internal/core/domain"
	"github.com/comitanigiacomo/ramadan-tracker/internal/core/gesture"
)

type TrackerDependencies struct {
	Store     domain.KeyValueStore
	Calendar  domain.CalendarProvider
	Sink      domain.RenderSink
	Scheduler gesture.Scheduler
	Logger    *slog.Logger
}

// Tracker is the application context: it owns the selected year, the history
// and one gesture classifier per day cell plus one for the year switcher.
// Every mutation runs under mu and ends with a snapshot pushed to the sink.
type Tracker struct {
	mu        sync.Mutex
	store     *DayStatusStore
	navigator *YearNavigator
	sink      domain.RenderSink
	days      [domain.DaysInMonth]*gesture.Classifier
	switcher  *gesture.SwipeClassifier
	logger    *slog.Logger
}

// NewTracker loads and migrates the persisted history, selects the current
// Hijri year and pushes the initial snapshot.
func NewTracker(ctx context.Context, deps TrackerDependencies) *Tracker {
	logger := deps.Logger
	if logger == nil {
		logger = slog.Default()
	}

	today := ResolveCurrentDate(deps.Calendar, logger)
	repo := NewHistoryRepository(deps.Store, today.Year, logger)
	store := NewDayStatusStore(repo, repo.Load(ctx), logger)

	t := &Tracker{
		store:     store,
		navigator: NewYearNavigator(store, today),
		sink:      deps.Sink,
		switcher:  gesture.NewSwipeClassifier(),
		logger:    logger.With("component", "tracker"),
	}

	for i := range t.days {
		index := i
		t.days[i] = gesture.NewClassifier(deps.Scheduler, func() {
			t.onLongPress(index)
		})
	}

	t.mu.Lock()
	defer t.mu.Unlock()
	t.store.Ensure(ctx, t.navigator.Selected())
	t.refresh(ctx, true, nil)

	return t
}

// HandleDayPointer feeds one pointer event of a day cell to its classifier
// and applies the resulting intent to the selected year. The returned
// snapshot is the one pushed to the sink, or the current state when the
// intent changed nothing.
func (t *Tracker) HandleDayPointer(ctx context.Context, index int, ev domain.PointerEvent) (domain.Intent, domain.Snapshot, error) {
	if !domain.ValidDayIndex(index) {
		return domain.IntentNone, domain.Snapshot{}, domain.ErrDayOutOfRange
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	intent := t.days[index].Handle(ev)
	return intent, t.applyDayIntent(ctx, index, intent), nil
}

// HandleYearPointer feeds one pointer event of the year switcher.
func (t *Tracker) HandleYearPointer(ctx context.Context, ev domain.PointerEvent) (domain.Intent, domain.Snapshot) {
	t.mu.Lock()
	defer t.mu.Unlock()

	intent := t.switcher.Handle(ev)
	return intent, t.applyYearIntent(ctx, intent)
}

func (t *Tracker) ApplyDayIntent(ctx context.Context, index int, intent domain.Intent) (domain.Snapshot, error) {
	if !domain.ValidDayIndex(index) {
		return domain.Snapshot{}, domain.ErrDayOutOfRange
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	return t.applyDayIntent(ctx, index, intent), nil
}

func (t *Tracker) ApplyYearIntent(ctx context.Context, intent domain.Intent) domain.Snapshot {
	t.mu.Lock()
	defer t.mu.Unlock()

	return t.applyYearIntent(ctx, intent)
}

// ShiftYear moves the selected year by delta, as the previous/next buttons do.
func (t *Tracker) ShiftYear(ctx context.Context, delta int) domain.Snapshot {
	t.mu.Lock()
	defer t.mu.Unlock()

	return t.shiftYear(ctx, delta)
}

func (t *Tracker) Snapshot(ctx context.Context) domain.Snapshot {
	t.mu.Lock()
	defer t.mu.Unlock()

	return t.snapshot(ctx, false, nil)
}

func (t *Tracker) Years() []int {
	t.mu.Lock()
	defer t.mu.Unlock()

	return t.store.Years()
}

// Overview summarises every year that has a record.
func (t *Tracker) Overview() []domain.YearStats {
	t.mu.Lock()
	defer t.mu.Unlock()

	var stats []domain.YearStats
	t.store.Each(func(year int, record domain.YearRecord) {
		stats = append(stats, domain.YearStats{Year: year, Summary: Summarize(record)})
	})
	return stats
}

func (t *Tracker) onLongPress(index int) {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.applyDayIntent(context.Background(), index, domain.IntentLongPress)
}

func (t *Tracker) applyDayIntent(ctx context.Context, index int, intent domain.Intent) domain.Snapshot {
	year := t.navigator.Selected()

	var next domain.DayStatus
	switch intent {
	case domain.IntentTap:
		// Qaza is treated like Pending here and becomes Completed.
		next = domain.StatusCompleted
		if t.store.Get(ctx, year)[index] == domain.StatusCompleted {
			next = domain.StatusPending
		}
	case domain.IntentLongPress:
		next = domain.StatusQaza
	case domain.IntentSwipeRight:
		next = domain.StatusCompleted
	case domain.IntentSwipeLeft:
		next = domain.StatusPending
	default:
		return t.snapshot(ctx, false, nil)
	}

	if err := t.store.Set(ctx, year, index, next); err != nil {
		t.logger.Error("applying day intent failed", "year", year, "index", index, "intent", intent.String(), "error", err)
		return t.snapshot(ctx, false, nil)
	}

	t.logger.Debug("day status changed", "year", year, "day", index+1, "intent", intent.String(), "status", next.String())
	return t.refresh(ctx, true, &index)
}

func (t *Tracker) applyYearIntent(ctx context.Context, intent domain.Intent) domain.Snapshot {
	switch intent {
	case domain.IntentSwipeLeft:
		return t.shiftYear(ctx, 1)
	case domain.IntentSwipeRight:
		return t.shiftYear(ctx, -1)
	default:
		return t.snapshot(ctx, false, nil)
	}
}

func (t *Tracker) shiftYear(ctx context.Context, delta int) domain.Snapshot {
	year := t.navigator.Shift(ctx, delta)
	t.logger.Debug("selected year changed", "year", year, "delta", delta)
	return t.refresh(ctx, true, nil)
}

func (t *Tracker) refresh(ctx context.Context, animate bool, changed *int) domain.Snapshot {
	snap := t.snapshot(ctx, animate, changed)
	if t.sink != nil {
		t.sink.Refresh(snap)
	}
	return snap
}

func (t *Tracker) snapshot(ctx context.Context, animate bool, changed *int) domain.Snapshot {
	year := t.navigator.Selected()
	record := t.store.Get(ctx, year)

	days := make([]domain.DayStatus, len(record))
	copy(days, record[:])

	var changedIndex *int
	if changed != nil {
		idx := *changed
		changedIndex = &idx
	}

	return domain.Snapshot{
		Year:          year,
		CurrentYear:   t.navigator.CurrentYear(),
		IsCurrentYear: t.navigator.IsCurrentYear(),
		Today:         t.navigator.Today(),
		Days:          days,
		Summary:       Summarize(record),
		Animate:       animate,
		ChangedIndex:  changedIndex,
	}
}

package workers

import (
	"context"
	"log/slog"
	"sync"

	"github.com/google/uuid"

	"github.com/comitanigiacomo/ramadan-tracker/internal/core/domain"
)

var _ domain.RenderSink = (*RefreshBroadcaster)(nil)

const (
	queueSize            = 100
	subscriberBufferSize = 16
)

// RefreshBroadcaster is a RenderSink that fans snapshots out to subscribers.
// Refresh never blocks: when the queue or a subscriber buffer is full the
// snapshot is dropped for that consumer.
type RefreshBroadcaster struct {
	jobs   chan domain.Snapshot
	logger *slog.Logger

	mu          sync.RWMutex
	subscribers map[string]chan domain.Snapshot
	last        *domain.Snapshot
}

func NewRefreshBroadcaster(logger *slog.Logger) *RefreshBroadcaster {
	if logger == nil {
		logger = slog.Default()
	}
	return &RefreshBroadcaster{
		jobs:        make(chan domain.Snapshot, queueSize),
		logger:      logger.With("component", "refresh_broadcaster"),
		subscribers: make(map[string]chan domain.Snapshot),
	}
}

// Start runs the fan-out loop until ctx is cancelled, then closes every
// subscriber channel.
func (b *RefreshBroadcaster) Start(ctx context.Context) <-chan struct{} {
	done := make(chan struct{})
	go func() {
		defer close(done)
		b.logger.Info("refresh broadcaster started")
		for {
			select {
			case snap := <-b.jobs:
				b.publish(snap)
			case <-ctx.Done():
				b.closeAll()
				b.logger.Info("refresh broadcaster shutting down")
				return
			}
		}
	}()
	return done
}

func (b *RefreshBroadcaster) Refresh(snapshot domain.Snapshot) {
	select {
	case b.jobs <- snapshot:
	default:
		b.logger.Warn("refresh queue full, dropping snapshot", "year", snapshot.Year)
	}
}

// Subscribe registers a consumer. The latest snapshot, if any, is delivered
// first. Call the returned function to unsubscribe.
func (b *RefreshBroadcaster) Subscribe() (string, <-chan domain.Snapshot, func()) {
	id := uuid.NewString()
	ch := make(chan domain.Snapshot, subscriberBufferSize)

	b.mu.Lock()
	if b.last != nil {
		ch <- *b.last
	}
	b.subscribers[id] = ch
	b.mu.Unlock()

	b.logger.Debug("subscriber added", "subscriber_id", id)

	var once sync.Once
	return id, ch, func() {
		once.Do(func() { b.unsubscribe(id) })
	}
}

func (b *RefreshBroadcaster) Subscribers() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.subscribers)
}

func (b *RefreshBroadcaster) publish(snap domain.Snapshot) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.last = &snap
	for id, ch := range b.subscribers {
		select {
		case ch <- snap:
		default:
			b.logger.Warn("subscriber buffer full, dropping snapshot", "subscriber_id", id)
		}
	}
}

func (b *RefreshBroadcaster) unsubscribe(id string) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if ch, ok := b.subscribers[id]; ok {
		delete(b.subscribers, id)
		close(ch)
	}
}

func (b *RefreshBroadcaster) closeAll() {
	b.mu.Lock()
	defer b.mu.Unlock()

	for id, ch := range b.subscribers {
		delete(b.subscribers, id)
		close(ch)
	}
}

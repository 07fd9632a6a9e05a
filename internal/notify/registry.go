// Package notify holds the process-wide registry of ephemeral user-facing
// notifications. Entries are insertion-ordered and evicted automatically
// after a fixed delay by a single coordinator goroutine draining a min-heap
// of deadlines.
package notify

import (
	"container/heap"
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"xelar/internal/clock"
	"xelar/internal/domain"
)

// DefaultTTL is how long a notification stays alive before eviction. The UI
// fades entries slightly earlier; the registry is the one that removes them.
const DefaultTTL = 3500 * time.Millisecond

type Config struct {
	TTL    time.Duration
	Clock  clock.Clock
	Logger *logrus.Logger
}

// Registry owns the ordered collection of live notifications.
type Registry struct {
	cfg Config

	mu    sync.Mutex
	items []domain.Notification
	exp   expiryHeap

	wake   chan struct{}
	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

func NewRegistry(cfg Config) *Registry {
	if cfg.TTL <= 0 {
		cfg.TTL = DefaultTTL
	}
	if cfg.Clock == nil {
		cfg.Clock = clock.New()
	}
	if cfg.Logger == nil {
		cfg.Logger = logrus.New()
	}
	return &Registry{
		cfg:  cfg,
		wake: make(chan struct{}, 1),
	}
}

// Start launches the eviction coordinator.
func (r *Registry) Start(ctx context.Context) error {
	r.ctx, r.cancel = context.WithCancel(ctx)
	r.wg.Add(1)
	go r.run()
	return nil
}

// Shutdown stops the coordinator and waits for it to exit.
func (r *Registry) Shutdown() {
	if r.cancel != nil {
		r.cancel()
	}
	r.wg.Wait()
}

// Add appends a notification and schedules its eviction. An empty kind
// defaults to success. Ties between same-instant additions keep call order.
func (r *Registry) Add(message string, kind domain.NotificationKind) {
	if kind == "" {
		kind = domain.NotifySuccess
	}
	now := r.cfg.Clock.Now()
	n := domain.Notification{
		ID:        uuid.NewString(),
		Message:   message,
		Kind:      kind,
		CreatedAt: now,
	}

	r.mu.Lock()
	r.items = append(r.items, n)
	heap.Push(&r.exp, expiry{at: now.Add(r.cfg.TTL), id: n.ID})
	r.mu.Unlock()

	select {
	case r.wake <- struct{}{}:
	default:
	}
}

// List returns the live notifications in insertion order.
func (r *Registry) List() []domain.Notification {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]domain.Notification, len(r.items))
	copy(out, r.items)
	return out
}

func (r *Registry) run() {
	defer r.wg.Done()

	for {
		r.mu.Lock()
		now := r.cfg.Clock.Now()
		for r.exp.Len() > 0 && !r.exp[0].at.After(now) {
			e := heap.Pop(&r.exp).(expiry)
			r.removeLocked(e.id)
		}
		var timer clock.Timer
		if r.exp.Len() > 0 {
			timer = r.cfg.Clock.NewTimer(r.exp[0].at.Sub(now))
		}
		r.mu.Unlock()

		if timer == nil {
			select {
			case <-r.ctx.Done():
				return
			case <-r.wake:
			}
			continue
		}

		select {
		case <-r.ctx.Done():
			timer.Stop()
			return
		case <-r.wake:
			timer.Stop()
		case <-timer.C():
		}
	}
}

// removeLocked drops the notification by id; it is a no-op when the entry is
// already gone. Caller must hold the lock.
func (r *Registry) removeLocked(id string) {
	for i := range r.items {
		if r.items[i].ID == id {
			r.items = append(r.items[:i], r.items[i+1:]...)
			return
		}
	}
}

type expiry struct {
	at time.Time
	id string
}

type expiryHeap []expiry

func (h expiryHeap) Len() int            { return len(h) }
func (h expiryHeap) Less(i, j int) bool  { return h[i].at.Before(h[j].at) }
func (h expiryHeap) Swap(i, j int)       { h[i], h[j] = h[j], h[i] }
func (h *expiryHeap) Push(x any)         { *h = append(*h, x.(expiry)) }
func (h *expiryHeap) Pop() any {
	old := *h
	n := len(old)
	e := old[n-1]
	*h = old[:n-1]
	return e
}

package worker

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/polkiloo/drinkshop/internal/adapter/airtable"
	"github.com/polkiloo/drinkshop/internal/domain/model"
)

// StorefrontFacade exposes the subset of application functionality required by the worker.
type StorefrontFacade interface {
	OpenOwners() []string
	RefreshOrders(ctx context.Context, owner string) error
	HandleOrderEvent(ctx context.Context, event model.OrderEvent) error
}

// EventSource delivers order change notifications.
type EventSource interface {
	Subscribe() (<-chan model.OrderEvent, func())
}

type job struct {
	owner string
	event *model.OrderEvent
}

// OrderRefresher keeps open order boards in sync with the backend using a worker pool.
// Boards are refreshed on every tick and whenever an order event arrives.
type OrderRefresher struct {
	facade   StorefrontFacade
	events   EventSource
	interval time.Duration
	workers  int
	logger   *slog.Logger

	jobs   chan job
	wg     sync.WaitGroup
	cancel context.CancelFunc
	mu     sync.Mutex
}

// NewOrderRefresher constructs the refresher. A non-positive interval disables periodic refreshes.
func NewOrderRefresher(facade StorefrontFacade, events EventSource, interval time.Duration, workers int, logger *slog.Logger) *OrderRefresher {
	if workers <= 0 {
		workers = 1
	}
	return &OrderRefresher{
		facade:   facade,
		events:   events,
		interval: interval,
		workers:  workers,
		logger:   logger,
		jobs:     make(chan job, workers*4),
	}
}

// Start launches background processing.
func (r *OrderRefresher) Start(ctx context.Context) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.cancel != nil {
		return
	}

	runCtx, cancel := context.WithCancel(ctx)
	r.cancel = cancel

	for i := 0; i < r.workers; i++ {
		r.wg.Add(1)
		go r.worker(runCtx)
	}

	events, unsubscribe := r.events.Subscribe()
	r.wg.Add(1)
	go r.dispatch(runCtx, events, unsubscribe)
}

// Stop waits for all workers to finish.
func (r *OrderRefresher) Stop() {
	r.mu.Lock()
	if r.cancel != nil {
		r.cancel()
		r.cancel = nil
	}
	r.mu.Unlock()

	r.wg.Wait()
}

func (r *OrderRefresher) dispatch(ctx context.Context, events <-chan model.OrderEvent, unsubscribe func()) {
	defer r.wg.Done()
	defer close(r.jobs)
	defer unsubscribe()

	var tick <-chan time.Time
	if r.interval > 0 {
		ticker := time.NewTicker(r.interval)
		defer ticker.Stop()
		tick = ticker.C
	}

	for {
		select {
		case <-ctx.Done():
			return
		case <-tick:
			for _, owner := range r.facade.OpenOwners() {
				if !r.enqueue(ctx, job{owner: owner}) {
					return
				}
			}
		case event, ok := <-events:
			if !ok {
				events = nil
				continue
			}
			if !r.enqueue(ctx, job{owner: event.Owner, event: &event}) {
				return
			}
		}
	}
}

func (r *OrderRefresher) enqueue(ctx context.Context, j job) bool {
	select {
	case <-ctx.Done():
		return false
	case r.jobs <- j:
		return true
	}
}

func (r *OrderRefresher) worker(ctx context.Context) {
	defer r.wg.Done()
	for {
		select {
		case <-ctx.Done():
			return
		case j, ok := <-r.jobs:
			if !ok {
				return
			}
			r.handle(ctx, j)
		}
	}
}

func (r *OrderRefresher) handle(ctx context.Context, j job) {
	var err error
	if j.event != nil {
		err = r.facade.HandleOrderEvent(ctx, *j.event)
	} else {
		err = r.facade.RefreshOrders(ctx, j.owner)
	}
	if err == nil || errors.Is(err, context.Canceled) {
		return
	}

	var limited airtable.TooManyRequestsError
	if errors.As(err, &limited) {
		r.logger.Warn("airtable rate limited", slog.Duration("retry_after", limited.RetryAfter))
		select {
		case <-ctx.Done():
		case <-time.After(limited.RetryAfter):
		}
		return
	}
	r.logger.Error("order refresh failed", slog.String("owner", j.owner), slog.String("error", err.Error()))
}

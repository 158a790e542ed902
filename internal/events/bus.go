package events

import (
	"context"
	"log/slog"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/polkiloo/drinkshop/internal/domain/model"
)

var (
	eventsPublished = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "order_events_published_total",
			Help: "Total number of order events published",
		},
		[]string{"kind"},
	)

	eventsDropped = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "order_events_dropped_total",
			Help: "Order events dropped because a subscriber buffer was full",
		},
	)
)

// Sink receives every published event synchronously.
type Sink interface {
	Handle(ctx context.Context, event model.OrderEvent) error
}

// SinkFunc adapts a function to Sink.
type SinkFunc func(ctx context.Context, event model.OrderEvent) error

func (f SinkFunc) Handle(ctx context.Context, event model.OrderEvent) error {
	return f(ctx, event)
}

type namedSink struct {
	name string
	sink Sink
}

// Bus fans order events out to sinks and channel subscribers.
type Bus struct {
	mu          sync.RWMutex
	sinks       []namedSink
	subscribers map[int]chan model.OrderEvent
	nextID      int
	buffer      int
	closed      bool
	logger      *slog.Logger
}

func NewBus(buffer int, logger *slog.Logger) *Bus {
	if buffer <= 0 {
		buffer = 1
	}
	return &Bus{
		subscribers: make(map[int]chan model.OrderEvent),
		buffer:      buffer,
		logger:      logger,
	}
}

// AddSink registers a synchronous consumer.
func (b *Bus) AddSink(name string, sink Sink) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.sinks = append(b.sinks, namedSink{name: name, sink: sink})
}

// Subscribe returns a buffered event channel and a function that cancels the subscription.
func (b *Bus) Subscribe() (<-chan model.OrderEvent, func()) {
	b.mu.Lock()
	defer b.mu.Unlock()

	ch := make(chan model.OrderEvent, b.buffer)
	if b.closed {
		close(ch)
		return ch, func() {}
	}

	id := b.nextID
	b.nextID++
	b.subscribers[id] = ch

	var once sync.Once
	return ch, func() {
		once.Do(func() {
			b.mu.Lock()
			defer b.mu.Unlock()
			if sub, ok := b.subscribers[id]; ok {
				delete(b.subscribers, id)
				close(sub)
			}
		})
	}
}

// Publish hands the event to every sink, then to subscribers without blocking.
func (b *Bus) Publish(ctx context.Context, event model.OrderEvent) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	if b.closed {
		return
	}
	eventsPublished.WithLabelValues(string(event.Kind)).Inc()

	for _, s := range b.sinks {
		if err := s.sink.Handle(ctx, event); err != nil {
			b.logger.Error("order event sink failed",
				slog.String("sink", s.name),
				slog.String("kind", string(event.Kind)),
				slog.String("order_id", event.OrderID),
				slog.String("error", err.Error()),
			)
		}
	}

	for _, ch := range b.subscribers {
		select {
		case ch <- event:
		default:
			eventsDropped.Inc()
			b.logger.Warn("order event dropped, subscriber is busy",
				slog.String("kind", string(event.Kind)),
				slog.String("owner", event.Owner),
			)
		}
	}
}

// Close ends all subscriptions. Later publishes are ignored.
func (b *Bus) Close() {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.closed {
		return
	}
	b.closed = true
	for id, ch := range b.subscribers {
		delete(b.subscribers, id)
		close(ch)
	}
}

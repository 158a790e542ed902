package model

import (
	"time"

	"github.com/google/uuid"
)

// OrderEventKind tells subscribers what happened to an order.
type OrderEventKind string

const (
	OrderCreated OrderEventKind = "created"
	OrderUpdated OrderEventKind = "updated"
	OrderDeleted OrderEventKind = "deleted"
)

// OrderEvent is published after a successful order mutation.
type OrderEvent struct {
	ID         uuid.UUID
	Kind       OrderEventKind
	OrderID    string
	Owner      string
	OccurredAt time.Time
}

// NewOrderEvent stamps a new event with a random id and the current time.
func NewOrderEvent(kind OrderEventKind, orderID, owner string) OrderEvent {
	return OrderEvent{
		ID:         uuid.New(),
		Kind:       kind,
		OrderID:    orderID,
		Owner:      owner,
		OccurredAt: time.Now().UTC(),
	}
}

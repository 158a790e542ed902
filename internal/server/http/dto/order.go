package dto

import "time"

// OrderResponse describes a placed order.
type OrderResponse struct {
	ID           string   `json:"id"`
	DrinkName    string   `json:"drinkName"`
	Size         string   `json:"size"`
	Ice          string   `json:"ice"`
	Sugar        string   `json:"sugar"`
	AddOns       []string `json:"addOns"`
	Price        int      `json:"price"`
	NumberOfCups int      `json:"numberOfCups"`
	ImageURL     string   `json:"imageUrl,omitempty"`
}

// OrderListResponse is the cart with its aggregates.
type OrderListResponse struct {
	Orders       []OrderResponse `json:"orders"`
	TotalPrice   int             `json:"totalPrice"`
	NumberOfCups int             `json:"numberOfCups"`
	Badge        string          `json:"badge"`
}

// ChangeQuantityRequest updates the cup count. Price defaults to unit price times cups.
type ChangeQuantityRequest struct {
	NumberOfCups int  `json:"numberOfCups"`
	Price        *int `json:"price"`
}

// OrderEventResponse is a journal entry.
type OrderEventResponse struct {
	ID         string    `json:"id"`
	Kind       string    `json:"kind"`
	OrderID    string    `json:"orderId"`
	OccurredAt time.Time `json:"occurredAt"`
}

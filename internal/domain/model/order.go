package model

import "strconv"

// Order is a persisted drink order.
type Order struct {
	ID           string
	DrinkName    string
	Size         Size
	Ice          Temperature
	Sugar        Sugar
	AddOns       []AddOn
	Price        int
	NumberOfCups int
	ImageURL     string
	OrderName    string
}

// OrderFields is the write shape sent to the backend on create and update.
type OrderFields struct {
	DrinkName    string
	Size         Size
	Ice          Temperature
	Sugar        Sugar
	AddOns       []AddOn
	Price        int
	NumberOfCups int
	ImageURL     string
	OrderName    string
}

// UpdateFields returns the subset of order fields patched on update.
func (o Order) UpdateFields(numberOfCups, price int) OrderFields {
	return OrderFields{
		Size:         o.Size,
		Ice:          o.Ice,
		Sugar:        o.Sugar,
		AddOns:       append([]AddOn(nil), o.AddOns...),
		Price:        price,
		NumberOfCups: numberOfCups,
	}
}

// OrderSummary aggregates the order list.
type OrderSummary struct {
	TotalPrice   int
	NumberOfCups int
}

// Badge returns the cup count shown on the cart tab, empty when there are no orders.
func (s OrderSummary) Badge() string {
	if s.NumberOfCups == 0 {
		return ""
	}
	return strconv.Itoa(s.NumberOfCups)
}

// Summarize sums price and quantity over orders.
func Summarize(orders []Order) OrderSummary {
	var s OrderSummary
	for _, o := range orders {
		s.TotalPrice += o.Price
		s.NumberOfCups += o.NumberOfCups
	}
	return s
}

package handlers

import (
	"context"

	"github.com/polkiloo/drinkshop/internal/domain/model"
	"github.com/polkiloo/drinkshop/internal/pkg/auth"
	"github.com/polkiloo/drinkshop/internal/usecase"
)

// MenuFacade serves the public catalog.
type MenuFacade interface {
	Menu(ctx context.Context, category model.Category) ([]model.Drink, error)
	Categories(ctx context.Context) ([]model.Category, error)
	Drink(ctx context.Context, id string) (model.Drink, error)
	Options() model.OptionSets
}

// SessionFacade covers the auth gate.
type SessionFacade interface {
	Authenticate(ctx context.Context, token string) (*auth.Identity, error)
	SignOut(ctx context.Context, identity *auth.Identity) error
}

// OrderFacade encapsulates order list operations exposed via HTTP.
type OrderFacade interface {
	Orders(ctx context.Context, owner string) (usecase.BoardView, error)
	DeleteOrder(ctx context.Context, owner, id string) error
	ChangeQuantity(ctx context.Context, owner, id string, numberOfCups int, price *int) (*model.Order, error)
	OrderHistory(ctx context.Context, owner string) ([]model.OrderEvent, error)
}

// CustomizationFacade drives customization forms.
type CustomizationFacade interface {
	OpenCustomization(ctx context.Context, owner, drinkID string) (usecase.SessionView, error)
	EditOrder(ctx context.Context, owner, orderID string) (usecase.SessionView, error)
	Customization(owner, id string) (usecase.SessionView, error)
	SelectOption(owner, id, category, choice string) (usecase.SessionView, error)
	ToggleAddOn(owner, id, name string) (usecase.SessionView, error)
	CancelCustomization(owner, id string) error
	SubmitCustomization(ctx context.Context, owner, id, idempotencyKey string) (*model.Order, error)
}

// StorefrontFacade aggregates the full set of operations used across handlers.
type StorefrontFacade interface {
	MenuFacade
	SessionFacade
	OrderFacade
	CustomizationFacade
}

package app

import (
	"context"

	"github.com/polkiloo/drinkshop/internal/domain/model"
	"github.com/polkiloo/drinkshop/internal/pkg/auth"
	"github.com/polkiloo/drinkshop/internal/usecase"
)

type StorefrontFacade struct {
	menu           *usecase.MenuUseCase
	orders         *usecase.OrderUseCase
	customizations *usecase.CustomizationUseCase
	sessions       *usecase.SessionUseCase
}

func NewStorefrontFacade(menu *usecase.MenuUseCase, orders *usecase.OrderUseCase, customizations *usecase.CustomizationUseCase, sessions *usecase.SessionUseCase) *StorefrontFacade {
	return &StorefrontFacade{menu: menu, orders: orders, customizations: customizations, sessions: sessions}
}

func (f *StorefrontFacade) Menu(ctx context.Context, category model.Category) ([]model.Drink, error) {
	return f.menu.Drinks(ctx, category)
}

func (f *StorefrontFacade) Categories(ctx context.Context) ([]model.Category, error) {
	return f.menu.Categories(ctx)
}

func (f *StorefrontFacade) Drink(ctx context.Context, id string) (model.Drink, error) {
	return f.menu.Drink(ctx, id)
}

func (f *StorefrontFacade) Options() model.OptionSets {
	return model.AllOptions()
}

func (f *StorefrontFacade) Authenticate(ctx context.Context, token string) (*auth.Identity, error) {
	return f.sessions.Authenticate(ctx, token)
}

func (f *StorefrontFacade) SignOut(ctx context.Context, identity *auth.Identity) error {
	return f.sessions.SignOut(ctx, identity)
}

func (f *StorefrontFacade) Orders(ctx context.Context, owner string) (usecase.BoardView, error) {
	return f.orders.List(ctx, owner)
}

func (f *StorefrontFacade) DeleteOrder(ctx context.Context, owner, id string) error {
	return f.orders.Delete(ctx, owner, id)
}

func (f *StorefrontFacade) ChangeQuantity(ctx context.Context, owner, id string, numberOfCups int, price *int) (*model.Order, error) {
	return f.orders.ChangeQuantity(ctx, owner, id, numberOfCups, price)
}

func (f *StorefrontFacade) OrderHistory(ctx context.Context, owner string) ([]model.OrderEvent, error) {
	return f.orders.History(ctx, owner)
}

func (f *StorefrontFacade) OpenCustomization(ctx context.Context, owner, drinkID string) (usecase.SessionView, error) {
	return f.customizations.Open(ctx, owner, drinkID)
}

func (f *StorefrontFacade) EditOrder(ctx context.Context, owner, orderID string) (usecase.SessionView, error) {
	return f.customizations.OpenForOrder(ctx, owner, orderID)
}

func (f *StorefrontFacade) Customization(owner, id string) (usecase.SessionView, error) {
	return f.customizations.Get(owner, id)
}

// SelectOption parses the category name before applying the choice.
func (f *StorefrontFacade) SelectOption(owner, id, category, choice string) (usecase.SessionView, error) {
	c, err := model.ParseOptionCategory(category)
	if err != nil {
		return usecase.SessionView{}, err
	}
	return f.customizations.SelectOption(owner, id, c, choice)
}

func (f *StorefrontFacade) ToggleAddOn(owner, id, name string) (usecase.SessionView, error) {
	return f.customizations.ToggleAddOn(owner, id, name)
}

func (f *StorefrontFacade) CancelCustomization(owner, id string) error {
	return f.customizations.Cancel(owner, id)
}

func (f *StorefrontFacade) SubmitCustomization(ctx context.Context, owner, id, idempotencyKey string) (*model.Order, error) {
	return f.customizations.Submit(ctx, owner, id, idempotencyKey)
}

// OpenOwners lists owners with a live order board.
func (f *StorefrontFacade) OpenOwners() []string {
	boards := f.orders.Boards()
	owners := make([]string, 0, len(boards))
	for _, b := range boards {
		owners = append(owners, b.Owner())
	}
	return owners
}

// RefreshOrders refreshes an open board. Owners who signed out are skipped.
func (f *StorefrontFacade) RefreshOrders(ctx context.Context, owner string) error {
	board, ok := f.orders.Lookup(owner)
	if !ok {
		return nil
	}
	err := board.Refresh(ctx)
	if board.Closed() {
		return nil
	}
	return err
}

func (f *StorefrontFacade) HandleOrderEvent(ctx context.Context, event model.OrderEvent) error {
	return f.orders.HandleEvent(ctx, event)
}

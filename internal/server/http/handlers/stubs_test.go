package handlers

import (
	"context"

	"github.com/polkiloo/drinkshop/internal/domain/model"
	"github.com/polkiloo/drinkshop/internal/pkg/auth"
	"github.com/polkiloo/drinkshop/internal/usecase"
)

type menuFacadeStub struct {
	MenuFn       func(context.Context, model.Category) ([]model.Drink, error)
	CategoriesFn func(context.Context) ([]model.Category, error)
	DrinkFn      func(context.Context, string) (model.Drink, error)
}

func (s menuFacadeStub) Menu(ctx context.Context, category model.Category) ([]model.Drink, error) {
	if s.MenuFn != nil {
		return s.MenuFn(ctx, category)
	}
	return nil, nil
}

func (s menuFacadeStub) Categories(ctx context.Context) ([]model.Category, error) {
	if s.CategoriesFn != nil {
		return s.CategoriesFn(ctx)
	}
	return []model.Category{model.CategorySeasonal}, nil
}

func (s menuFacadeStub) Drink(ctx context.Context, id string) (model.Drink, error) {
	if s.DrinkFn != nil {
		return s.DrinkFn(ctx, id)
	}
	return model.Drink{ID: id}, nil
}

func (s menuFacadeStub) Options() model.OptionSets {
	return model.AllOptions()
}

type sessionFacadeStub struct {
	SignOutFn func(context.Context, *auth.Identity) error
}

func (s sessionFacadeStub) Authenticate(context.Context, string) (*auth.Identity, error) {
	return &auth.Identity{Subject: "uid-1", Name: "amy"}, nil
}

func (s sessionFacadeStub) SignOut(ctx context.Context, identity *auth.Identity) error {
	if s.SignOutFn != nil {
		return s.SignOutFn(ctx, identity)
	}
	return nil
}

type orderFacadeStub struct {
	OrdersFn  func(context.Context, string) (usecase.BoardView, error)
	DeleteFn  func(context.Context, string, string) error
	ChangeFn  func(context.Context, string, string, int, *int) (*model.Order, error)
	HistoryFn func(context.Context, string) ([]model.OrderEvent, error)
}

func (s orderFacadeStub) Orders(ctx context.Context, owner string) (usecase.BoardView, error) {
	if s.OrdersFn != nil {
		return s.OrdersFn(ctx, owner)
	}
	return usecase.BoardView{Loaded: true}, nil
}

func (s orderFacadeStub) DeleteOrder(ctx context.Context, owner, id string) error {
	if s.DeleteFn != nil {
		return s.DeleteFn(ctx, owner, id)
	}
	return nil
}

func (s orderFacadeStub) ChangeQuantity(ctx context.Context, owner, id string, numberOfCups int, price *int) (*model.Order, error) {
	if s.ChangeFn != nil {
		return s.ChangeFn(ctx, owner, id, numberOfCups, price)
	}
	return &model.Order{ID: id, NumberOfCups: numberOfCups}, nil
}

func (s orderFacadeStub) OrderHistory(ctx context.Context, owner string) ([]model.OrderEvent, error) {
	if s.HistoryFn != nil {
		return s.HistoryFn(ctx, owner)
	}
	return nil, nil
}

type customizationFacadeStub struct {
	OpenFn   func(context.Context, string, string) (usecase.SessionView, error)
	EditFn   func(context.Context, string, string) (usecase.SessionView, error)
	GetFn    func(string, string) (usecase.SessionView, error)
	SelectFn func(string, string, string, string) (usecase.SessionView, error)
	ToggleFn func(string, string, string) (usecase.SessionView, error)
	CancelFn func(string, string) error
	SubmitFn func(context.Context, string, string, string) (*model.Order, error)
}

func (s customizationFacadeStub) OpenCustomization(ctx context.Context, owner, drinkID string) (usecase.SessionView, error) {
	if s.OpenFn != nil {
		return s.OpenFn(ctx, owner, drinkID)
	}
	return usecase.SessionView{ID: "s1", Owner: owner, Drink: model.Drink{ID: drinkID}}, nil
}

func (s customizationFacadeStub) EditOrder(ctx context.Context, owner, orderID string) (usecase.SessionView, error) {
	if s.EditFn != nil {
		return s.EditFn(ctx, owner, orderID)
	}
	return usecase.SessionView{ID: "s2", Owner: owner, OrderID: orderID}, nil
}

func (s customizationFacadeStub) Customization(owner, id string) (usecase.SessionView, error) {
	if s.GetFn != nil {
		return s.GetFn(owner, id)
	}
	return usecase.SessionView{ID: id, Owner: owner}, nil
}

func (s customizationFacadeStub) SelectOption(owner, id, category, choice string) (usecase.SessionView, error) {
	if s.SelectFn != nil {
		return s.SelectFn(owner, id, category, choice)
	}
	return usecase.SessionView{ID: id, Owner: owner}, nil
}

func (s customizationFacadeStub) ToggleAddOn(owner, id, name string) (usecase.SessionView, error) {
	if s.ToggleFn != nil {
		return s.ToggleFn(owner, id, name)
	}
	return usecase.SessionView{ID: id, Owner: owner}, nil
}

func (s customizationFacadeStub) CancelCustomization(owner, id string) error {
	if s.CancelFn != nil {
		return s.CancelFn(owner, id)
	}
	return nil
}

func (s customizationFacadeStub) SubmitCustomization(ctx context.Context, owner, id, key string) (*model.Order, error) {
	if s.SubmitFn != nil {
		return s.SubmitFn(ctx, owner, id, key)
	}
	return &model.Order{ID: "recNew", OrderName: owner}, nil
}

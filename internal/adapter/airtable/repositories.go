package airtable

import (
	"context"
	"net/http"
	"net/url"

	"github.com/polkiloo/drinkshop/internal/domain/model"
)

func (r *catalogRepository) ListDrinks(ctx context.Context) ([]model.Drink, error) {
	records, err := listAll[drinkRecord](ctx, r.client, r.client.drinkTable, nil)
	if err != nil {
		return nil, err
	}
	drinks := make([]model.Drink, 0, len(records))
	for _, rec := range records {
		drinks = append(drinks, rec.toModel())
	}
	return drinks, nil
}

func (r *orderRepository) ListByOwner(ctx context.Context, owner string) ([]model.Order, error) {
	query := url.Values{}
	query.Set("filterByFormula", ownerFormula(owner))

	records, err := listAll[orderRecord](ctx, r.client, r.client.orderTable, query)
	if err != nil {
		return nil, err
	}
	orders := make([]model.Order, 0, len(records))
	for _, rec := range records {
		orders = append(orders, rec.toModel())
	}
	return orders, nil
}

func (r *orderRepository) Create(ctx context.Context, fields model.OrderFields) (*model.Order, error) {
	body, err := r.client.do(ctx, request{
		method: http.MethodPost,
		table:  r.client.orderTable,
		body:   writeRequest{Records: []orderRecord{{Fields: fromFields(fields)}}},
	})
	if err != nil {
		return nil, err
	}
	records, err := decodeRecords(body)
	if err != nil {
		return nil, err
	}
	order := records[0].toModel()
	return &order, nil
}

func (r *orderRepository) Update(ctx context.Context, id string, fields model.OrderFields) (*model.Order, error) {
	body, err := r.client.do(ctx, request{
		method: http.MethodPatch,
		table:  r.client.orderTable,
		body:   writeRequest{Records: []orderRecord{{ID: id, Fields: fromFields(fields)}}},
	})
	if err != nil {
		return nil, err
	}
	records, err := decodeRecords(body)
	if err != nil {
		return nil, err
	}
	order := records[0].toModel()
	return &order, nil
}

func (r *orderRepository) Delete(ctx context.Context, id string) error {
	body, err := r.client.do(ctx, request{
		method: http.MethodDelete,
		table:  r.client.orderTable,
		id:     id,
	})
	if err != nil {
		return err
	}
	if len(body) == 0 {
		return ErrEmptyDelete
	}
	return nil
}

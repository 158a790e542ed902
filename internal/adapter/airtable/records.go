package airtable

import (
	"github.com/polkiloo/drinkshop/internal/domain/model"
)

type listResponse[T any] struct {
	Records []T    `json:"records"`
	Offset  string `json:"offset,omitempty"`
}

type attachment struct {
	URL string `json:"url"`
}

type drinkRecord struct {
	ID     string      `json:"id"`
	Fields drinkFields `json:"fields"`
}

type drinkFields struct {
	Name        string       `json:"name"`
	Description string       `json:"description"`
	Category    string       `json:"category"`
	Medium      int          `json:"medium"`
	Large       int          `json:"large"`
	Image       []attachment `json:"image"`
}

type orderRecord struct {
	ID     string      `json:"id,omitempty"`
	Fields orderFields `json:"fields"`
}

type orderFields struct {
	DrinkName    string   `json:"drinkName,omitempty"`
	Size         string   `json:"size"`
	Ice          string   `json:"ice"`
	Sugar        string   `json:"sugar"`
	AddOns       []string `json:"addOns"`
	Price        int      `json:"price"`
	NumberOfCups int      `json:"numberOfCups"`
	ImageURL     string   `json:"imageUrl,omitempty"`
	OrderName    string   `json:"orderName,omitempty"`
}

type writeRequest struct {
	Records []orderRecord `json:"records"`
}

type writeResponse struct {
	Records []orderRecord `json:"records"`
}

func (r drinkRecord) toModel() model.Drink {
	d := model.Drink{
		ID:          r.ID,
		Name:        r.Fields.Name,
		Description: r.Fields.Description,
		Category:    model.Category(r.Fields.Category),
		MediumPrice: r.Fields.Medium,
		LargePrice:  r.Fields.Large,
	}
	if len(r.Fields.Image) > 0 {
		d.ImageURL = r.Fields.Image[0].URL
	}
	return d
}

func (r orderRecord) toModel() model.Order {
	addOns := make([]model.AddOn, 0, len(r.Fields.AddOns))
	for _, a := range r.Fields.AddOns {
		addOns = append(addOns, model.AddOn(a))
	}
	return model.Order{
		ID:           r.ID,
		DrinkName:    r.Fields.DrinkName,
		Size:         model.Size(r.Fields.Size),
		Ice:          model.Temperature(r.Fields.Ice),
		Sugar:        model.Sugar(r.Fields.Sugar),
		AddOns:       addOns,
		Price:        r.Fields.Price,
		NumberOfCups: r.Fields.NumberOfCups,
		ImageURL:     r.Fields.ImageURL,
		OrderName:    r.Fields.OrderName,
	}
}

func fromFields(f model.OrderFields) orderFields {
	addOns := make([]string, 0, len(f.AddOns))
	for _, a := range f.AddOns {
		addOns = append(addOns, string(a))
	}
	return orderFields{
		DrinkName:    f.DrinkName,
		Size:         string(f.Size),
		Ice:          string(f.Ice),
		Sugar:        string(f.Sugar),
		AddOns:       addOns,
		Price:        f.Price,
		NumberOfCups: f.NumberOfCups,
		ImageURL:     f.ImageURL,
		OrderName:    f.OrderName,
	}
}

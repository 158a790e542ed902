package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/polkiloo/drinkshop/internal/domain/model"
	"github.com/polkiloo/drinkshop/internal/server/http/dto"
)

// MenuHandler serves the public catalog endpoints.
type MenuHandler struct {
	facade MenuFacade
}

// NewMenuHandler constructs MenuHandler.
func NewMenuHandler(facade MenuFacade) *MenuHandler {
	return &MenuHandler{facade: facade}
}

// List handles GET /api/menu?category=.
func (h *MenuHandler) List(c *gin.Context) {
	category := model.Category(c.Query("category"))
	if category == "" {
		category = model.DefaultCategory
	}

	drinks, err := h.facade.Menu(c.Request.Context(), category)
	if err != nil {
		respondError(c, err)
		return
	}

	resp := dto.MenuResponse{Category: string(category), Drinks: make([]dto.DrinkResponse, 0, len(drinks))}
	for _, d := range drinks {
		resp.Drinks = append(resp.Drinks, toDrinkResponse(d))
	}
	c.JSON(http.StatusOK, resp)
}

// Categories handles GET /api/menu/categories.
func (h *MenuHandler) Categories(c *gin.Context) {
	categories, err := h.facade.Categories(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	resp := make([]string, 0, len(categories))
	for _, category := range categories {
		resp = append(resp, string(category))
	}
	c.JSON(http.StatusOK, resp)
}

// Drink handles GET /api/menu/drinks/:id.
func (h *MenuHandler) Drink(c *gin.Context) {
	drink, err := h.facade.Drink(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, toDrinkResponse(drink))
}

// Options handles GET /api/menu/options.
func (h *MenuHandler) Options(c *gin.Context) {
	sets := h.facade.Options()
	resp := dto.OptionsResponse{
		Sizes:          labels(sets.Sizes),
		Temperatures:   labels(sets.Temperatures),
		Sugars:         labels(sets.Sugars),
		AddOns:         labels(sets.AddOns),
		AddOnSurcharge: model.AddOnSurcharge,
	}
	c.JSON(http.StatusOK, resp)
}

func toDrinkResponse(d model.Drink) dto.DrinkResponse {
	return dto.DrinkResponse{
		ID:          d.ID,
		Name:        d.Name,
		Description: d.Description,
		Category:    string(d.Category),
		MediumPrice: d.MediumPrice,
		LargePrice:  d.LargePrice,
		ImageURL:    d.ImageURL,
	}
}

func labels[T ~string](values []T) []string {
	result := make([]string, 0, len(values))
	for _, v := range values {
		result = append(result, string(v))
	}
	return result
}

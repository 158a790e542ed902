package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/polkiloo/drinkshop/internal/domain/model"
	"github.com/polkiloo/drinkshop/internal/server/http/dto"
)

// OrderHandler manages order list endpoints.
type OrderHandler struct {
	facade OrderFacade
}

// NewOrderHandler constructs OrderHandler.
func NewOrderHandler(facade OrderFacade) *OrderHandler {
	return &OrderHandler{facade: facade}
}

// List handles GET /api/user/orders.
func (h *OrderHandler) List(c *gin.Context) {
	view, err := h.facade.Orders(c.Request.Context(), CurrentOwner(c))
	if err != nil {
		respondError(c, err)
		return
	}

	resp := dto.OrderListResponse{
		Orders:       make([]dto.OrderResponse, 0, len(view.Orders)),
		TotalPrice:   view.Summary.TotalPrice,
		NumberOfCups: view.Summary.NumberOfCups,
		Badge:        view.Badge,
	}
	for _, o := range view.Orders {
		resp.Orders = append(resp.Orders, toOrderResponse(o))
	}
	c.JSON(http.StatusOK, resp)
}

// ChangeQuantity handles PATCH /api/user/orders/:id.
func (h *OrderHandler) ChangeQuantity(c *gin.Context) {
	var req dto.ChangeQuantityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Status(http.StatusBadRequest)
		return
	}

	order, err := h.facade.ChangeQuantity(c.Request.Context(), CurrentOwner(c), c.Param("id"), req.NumberOfCups, req.Price)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, toOrderResponse(*order))
}

// Delete handles DELETE /api/user/orders/:id.
func (h *OrderHandler) Delete(c *gin.Context) {
	if err := h.facade.DeleteOrder(c.Request.Context(), CurrentOwner(c), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// History handles GET /api/user/orders/history.
func (h *OrderHandler) History(c *gin.Context) {
	events, err := h.facade.OrderHistory(c.Request.Context(), CurrentOwner(c))
	if err != nil {
		respondError(c, err)
		return
	}
	if len(events) == 0 {
		c.Status(http.StatusNoContent)
		return
	}

	resp := make([]dto.OrderEventResponse, 0, len(events))
	for _, e := range events {
		resp = append(resp, dto.OrderEventResponse{
			ID:         e.ID.String(),
			Kind:       string(e.Kind),
			OrderID:    e.OrderID,
			OccurredAt: e.OccurredAt,
		})
	}
	c.JSON(http.StatusOK, resp)
}

func toOrderResponse(o model.Order) dto.OrderResponse {
	return dto.OrderResponse{
		ID:           o.ID,
		DrinkName:    o.DrinkName,
		Size:         string(o.Size),
		Ice:          string(o.Ice),
		Sugar:        string(o.Sugar),
		AddOns:       labels(o.AddOns),
		Price:        o.Price,
		NumberOfCups: o.NumberOfCups,
		ImageURL:     o.ImageURL,
	}
}

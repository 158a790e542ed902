package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/polkiloo/drinkshop/internal/server/http/dto"
	"github.com/polkiloo/drinkshop/internal/usecase"
)

// IdempotencyKeyHeader carries the client generated key guarding double submits.
const IdempotencyKeyHeader = "X-Idempotency-Key"

// CustomizationHandler manages customization form endpoints.
type CustomizationHandler struct {
	facade CustomizationFacade
}

// NewCustomizationHandler constructs CustomizationHandler.
func NewCustomizationHandler(facade CustomizationFacade) *CustomizationHandler {
	return &CustomizationHandler{facade: facade}
}

// Open handles POST /api/user/customizations.
func (h *CustomizationHandler) Open(c *gin.Context) {
	var req dto.OpenCustomizationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Status(http.StatusBadRequest)
		return
	}
	if (req.DrinkID == "") == (req.OrderID == "") {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "exactly one of drinkId and orderId must be set"})
		return
	}

	owner := CurrentOwner(c)
	var (
		view usecase.SessionView
		err  error
	)
	if req.OrderID != "" {
		view, err = h.facade.EditOrder(c.Request.Context(), owner, req.OrderID)
	} else {
		view, err = h.facade.OpenCustomization(c.Request.Context(), owner, req.DrinkID)
	}
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, toCustomizationResponse(view))
}

// Get handles GET /api/user/customizations/:id.
func (h *CustomizationHandler) Get(c *gin.Context) {
	view, err := h.facade.Customization(CurrentOwner(c), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, toCustomizationResponse(view))
}

// SelectOption handles PUT /api/user/customizations/:id/options.
func (h *CustomizationHandler) SelectOption(c *gin.Context) {
	var req dto.SelectOptionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Status(http.StatusBadRequest)
		return
	}
	view, err := h.facade.SelectOption(CurrentOwner(c), c.Param("id"), req.Category, req.Choice)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, toCustomizationResponse(view))
}

// ToggleAddOn handles POST /api/user/customizations/:id/addons.
func (h *CustomizationHandler) ToggleAddOn(c *gin.Context) {
	var req dto.AddOnRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Status(http.StatusBadRequest)
		return
	}
	view, err := h.facade.ToggleAddOn(CurrentOwner(c), c.Param("id"), req.Name)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, toCustomizationResponse(view))
}

// Submit handles POST /api/user/customizations/:id/submit.
func (h *CustomizationHandler) Submit(c *gin.Context) {
	key := strings.TrimSpace(c.GetHeader(IdempotencyKeyHeader))
	order, err := h.facade.SubmitCustomization(c.Request.Context(), CurrentOwner(c), c.Param("id"), key)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, toOrderResponse(*order))
}

// Cancel handles DELETE /api/user/customizations/:id.
func (h *CustomizationHandler) Cancel(c *gin.Context) {
	if err := h.facade.CancelCustomization(CurrentOwner(c), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func toCustomizationResponse(v usecase.SessionView) dto.CustomizationResponse {
	return dto.CustomizationResponse{
		ID:           v.ID,
		Drink:        toDrinkResponse(v.Drink),
		OrderID:      v.OrderID,
		EditMode:     v.EditMode(),
		NumberOfCups: v.NumberOfCups,
		Size:         string(v.Size),
		Temperature:  string(v.Temperature),
		Sugar:        string(v.Sugar),
		AddOns:       labels(v.AddOns),
		Total:        v.Total,
		Summary:      v.Summary,
		State:        v.State.String(),
		Missing:      labels(v.Missing),
	}
}

package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	domainErrors "github.com/polkiloo/drinkshop/internal/domain/errors"
	"github.com/polkiloo/drinkshop/internal/domain/model"
	"github.com/polkiloo/drinkshop/internal/pkg/auth"
	"github.com/polkiloo/drinkshop/internal/server/http/dto"
	"github.com/polkiloo/drinkshop/internal/server/http/middleware"
)

// CurrentIdentity extracts the authenticated identity from context.
func CurrentIdentity(c *gin.Context) *auth.Identity {
	val, ok := c.Get(middleware.IdentityContextKey)
	if !ok {
		return nil
	}
	identity, _ := val.(*auth.Identity)
	return identity
}

// CurrentOwner returns the orderName value of the signed-in user, which is the identity subject.
func CurrentOwner(c *gin.Context) string {
	if identity := CurrentIdentity(c); identity != nil {
		return identity.Owner()
	}
	return ""
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, domainErrors.ErrMissingOptions),
		errors.Is(err, domainErrors.ErrInvalidQuantity),
		errors.Is(err, domainErrors.ErrInvalidPrice):
		return http.StatusUnprocessableEntity
	case errors.Is(err, domainErrors.ErrInvalidOption):
		return http.StatusBadRequest
	case errors.Is(err, domainErrors.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, domainErrors.ErrDuplicateSubmit),
		errors.Is(err, domainErrors.ErrSessionClosed):
		return http.StatusConflict
	case errors.Is(err, domainErrors.ErrUnauthenticated):
		return http.StatusUnauthorized
	case errors.Is(err, domainErrors.ErrBackendFailure):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

// respondError maps a domain error to its status. Missing options carry the categories and prompts.
func respondError(c *gin.Context, err error) {
	c.Error(err)

	var missing *domainErrors.MissingOptionsError
	if errors.As(err, &missing) {
		resp := dto.MissingOptionsResponse{Missing: missing.Categories, Prompts: make([]string, 0, len(missing.Categories))}
		for _, category := range missing.Categories {
			resp.Prompts = append(resp.Prompts, model.OptionCategory(category).Prompt())
		}
		c.JSON(http.StatusUnprocessableEntity, resp)
		return
	}

	status := statusFor(err)
	switch status {
	case http.StatusBadRequest, http.StatusUnprocessableEntity, http.StatusConflict:
		c.JSON(status, dto.ErrorResponse{Error: err.Error()})
	default:
		c.Status(status)
	}
}

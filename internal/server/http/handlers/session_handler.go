package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/polkiloo/drinkshop/internal/server/http/dto"
)

// SessionHandler answers "is signed in" and performs sign out.
type SessionHandler struct {
	facade SessionFacade
}

// NewSessionHandler constructs SessionHandler.
func NewSessionHandler(facade SessionFacade) *SessionHandler {
	return &SessionHandler{facade: facade}
}

// Current handles GET /api/user/session.
func (h *SessionHandler) Current(c *gin.Context) {
	identity := CurrentIdentity(c)
	if identity == nil {
		c.Status(http.StatusUnauthorized)
		return
	}
	c.JSON(http.StatusOK, dto.SessionResponse{
		Subject:   identity.Subject,
		Name:      identity.Name,
		Owner:     identity.Owner(),
		ExpiresAt: identity.ExpiresAt,
	})
}

// SignOut handles POST /api/user/session/signout.
func (h *SessionHandler) SignOut(c *gin.Context) {
	identity := CurrentIdentity(c)
	if identity == nil {
		c.Status(http.StatusUnauthorized)
		return
	}
	if err := h.facade.SignOut(c.Request.Context(), identity); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

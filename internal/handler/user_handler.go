package handler

import (
	"net/http"

	"relay-chat/internal/services"
	"relay-chat/internal/transport/httpdto"

	"github.com/gin-gonic/gin"
)

type UserHandler struct {
	presence *services.PresenceService
}

func NewUserHandler(presence *services.PresenceService) *UserHandler {
	return &UserHandler{presence: presence}
}

// ListConnected handles GET /users
func (h *UserHandler) ListConnected(c *gin.Context) {
	users, err := h.presence.ListOnline(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusServiceUnavailable, httpdto.NewErrorResponse(err.Error(), "STORE_UNAVAILABLE"))
		return
	}

	c.JSON(http.StatusOK, httpdto.NewSuccessResponse(httpdto.ListUsersResponse{
		Users: httpdto.FromUserSlice(users),
	}))
}

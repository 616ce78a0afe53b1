package handler

import (
	"net/http"

	"relay-chat/internal/services"
	"relay-chat/internal/transport/httpdto"

	"github.com/gin-gonic/gin"
)

type MessageHandler struct {
	relay *services.RelayService
}

func NewMessageHandler(relay *services.RelayService) *MessageHandler {
	return &MessageHandler{relay: relay}
}

// History handles GET /messages/:senderId/:recipientId
func (h *MessageHandler) History(c *gin.Context) {
	senderID := c.Param("senderId")
	recipientID := c.Param("recipientId")
	if senderID == "" || recipientID == "" {
		c.JSON(http.StatusBadRequest, httpdto.NewErrorResponse("senderId and recipientId are required", "INVALID_REQUEST"))
		return
	}

	messages, err := h.relay.History(c.Request.Context(), senderID, recipientID)
	if err != nil {
		c.JSON(http.StatusServiceUnavailable, httpdto.NewErrorResponse(err.Error(), "STORE_UNAVAILABLE"))
		return
	}

	c.JSON(http.StatusOK, httpdto.NewSuccessResponse(httpdto.HistoryResponse{
		Messages: httpdto.FromChatMessageSlice(messages),
	}))
}

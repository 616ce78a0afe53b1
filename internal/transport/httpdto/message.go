package httpdto

import (
	"time"

	"relay-chat/internal/domain"
)

// ChatMessageDTO represents a persisted message in API responses
type ChatMessageDTO struct {
	ID          string `json:"id"`
	ChatID      string `json:"chatId"`
	SenderID    string `json:"senderId"`
	RecipientID string `json:"recipientId"`
	Content     string `json:"content"`
	CreatedAt   string `json:"createdAt"`
}

// HistoryResponse is returned for a conversation thread lookup
type HistoryResponse struct {
	Messages []ChatMessageDTO `json:"messages"`
}

// FromChatMessage converts a domain message to ChatMessageDTO
func FromChatMessage(m domain.ChatMessage) ChatMessageDTO {
	return ChatMessageDTO{
		ID:          m.ID.String(),
		ChatID:      m.ChatID,
		SenderID:    m.SenderID,
		RecipientID: m.RecipientID,
		Content:     m.Content,
		CreatedAt:   m.CreatedAt.Format(time.RFC3339Nano),
	}
}

// FromChatMessageSlice converts a slice of domain messages to DTO slice
func FromChatMessageSlice(messages []domain.ChatMessage) []ChatMessageDTO {
	dtos := make([]ChatMessageDTO, len(messages))
	for i, m := range messages {
		dtos[i] = FromChatMessage(m)
	}
	return dtos
}

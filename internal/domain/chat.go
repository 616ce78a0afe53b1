package domain

import (
	"time"

	"github.com/google/uuid"
)

// ChatMessage is immutable once persisted. ChatID links the message to the
// room shared by the sender/recipient pair; CreatedAt is assigned by the
// store and fixes insertion order within the room.
type ChatMessage struct {
	ID          uuid.UUID `json:"id"`
	ChatID      string    `json:"chatId"`
	SenderID    string    `json:"senderId"`
	RecipientID string    `json:"recipientId"`
	Content     string    `json:"content"`
	CreatedAt   time.Time `json:"createdAt"`
}

// ChatNotification is the transient projection of a persisted message that
// is pushed to the recipient's queue. It is never stored.
type ChatNotification struct {
	ID          uuid.UUID `json:"id"`
	SenderID    string    `json:"senderId"`
	RecipientID string    `json:"recipientId"`
	Content     string    `json:"content"`
}

// ChatRoom records one direction of a conversation. Both directions of a
// pair share the same ChatID, so history lookups are symmetric.
type ChatRoom struct {
	ChatID      string `json:"chatId"`
	SenderID    string `json:"senderId"`
	RecipientID string `json:"recipientId"`
}

// NotificationFrom projects a persisted message into its notification.
func NotificationFrom(m ChatMessage) ChatNotification {
	return ChatNotification{
		ID:          m.ID,
		SenderID:    m.SenderID,
		RecipientID: m.RecipientID,
		Content:     m.Content,
	}
}

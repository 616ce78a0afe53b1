package repository

import (
	"context"

	"relay-chat/internal/domain"
)

type UserRepository interface {
	// Save is an insert-or-replace keyed by nickname.
	Save(ctx context.Context, u domain.User) error
	// FindByNickName returns ErrNotFound when no record exists.
	FindByNickName(ctx context.Context, nickName string) (domain.User, error)
	FindAllByStatus(ctx context.Context, status domain.Status) ([]domain.User, error)
}

type MessageRepository interface {
	// Create persists the message and fills in CreatedAt as assigned by
	// the store. The caller is responsible for the message ID.
	Create(ctx context.Context, m *domain.ChatMessage) error
	// FindByChatID returns messages in insertion order (created_at, id).
	FindByChatID(ctx context.Context, chatID string) ([]domain.ChatMessage, error)
}

type RoomRepository interface {
	// GetChatID resolves the chat id shared by the pair, ErrNotFound when
	// no room exists yet.
	GetChatID(ctx context.Context, senderID, recipientID string) (string, error)
	// GetOrCreateChatID resolves the pair's chat id, creating the room
	// records for both directions on first contact.
	GetOrCreateChatID(ctx context.Context, senderID, recipientID string) (string, error)
}

package services

import (
	"context"
	"errors"

	"relay-chat/internal/domain"
	"relay-chat/internal/repository"
	relay_errors "relay-chat/pkg/errors"

	"github.com/google/uuid"
)

// RelayService persists messages and derives their notifications. Delivery
// is fire-and-forget: the relay does not check whether the recipient is
// connected, and a message persisted while the recipient is offline stays
// in history for later retrieval.
type RelayService struct {
	messages repository.MessageRepository
	rooms    repository.RoomRepository
}

func NewRelayService(messages repository.MessageRepository, rooms repository.RoomRepository) *RelayService {
	return &RelayService{messages: messages, rooms: rooms}
}

// Deliver persists the message verbatim, assigning an id if absent, and
// returns the notification projected from the persisted record. On store
// failure nothing is delivered and no notification is produced.
func (s *RelayService) Deliver(ctx context.Context, m domain.ChatMessage) (domain.ChatNotification, error) {
	if m.SenderID == "" || m.RecipientID == "" {
		return domain.ChatNotification{}, relay_errors.ErrInvalidInput
	}

	chatID, err := s.rooms.GetOrCreateChatID(ctx, m.SenderID, m.RecipientID)
	if err != nil {
		return domain.ChatNotification{}, err
	}
	m.ChatID = chatID

	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	if err := s.messages.Create(ctx, &m); err != nil {
		return domain.ChatNotification{}, err
	}
	return domain.NotificationFrom(m), nil
}

// History returns the conversation between the pair in insertion order.
// Both argument orders resolve to the same chat id, so the result is
// pair-symmetric. A pair that never exchanged messages yields an empty
// sequence, not an error.
func (s *RelayService) History(ctx context.Context, senderID, recipientID string) ([]domain.ChatMessage, error) {
	chatID, err := s.rooms.GetChatID(ctx, senderID, recipientID)
	if errors.Is(err, relay_errors.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return s.messages.FindByChatID(ctx, chatID)
}

package services

import (
	"context"
	"errors"

	"relay-chat/internal/domain"
	"relay-chat/internal/repository"
	relay_errors "relay-chat/pkg/errors"
)

// PresenceService drives the per-user ONLINE/OFFLINE state machine. The
// transitions are externally driven; there is no liveness timeout, so an
// OFFLINE transition only happens through Disconnect.
type PresenceService struct {
	users repository.UserRepository
}

func NewPresenceService(users repository.UserRepository) *PresenceService {
	return &PresenceService{users: users}
}

// Connect marks the user ONLINE and upserts the record keyed by nickname.
func (s *PresenceService) Connect(ctx context.Context, u domain.User) (domain.User, error) {
	if u.NickName == "" {
		return domain.User{}, relay_errors.ErrInvalidInput
	}
	u.Status = domain.StatusOnline
	if err := s.users.Save(ctx, u); err != nil {
		return domain.User{}, err
	}
	return u, nil
}

// Disconnect marks a known user OFFLINE. Unknown users are a no-op, which
// makes the operation idempotent.
func (s *PresenceService) Disconnect(ctx context.Context, u domain.User) error {
	stored, err := s.users.FindByNickName(ctx, u.NickName)
	if errors.Is(err, relay_errors.ErrNotFound) {
		return nil
	}
	if err != nil {
		return err
	}
	stored.Status = domain.StatusOffline
	return s.users.Save(ctx, stored)
}

// ListOnline returns every user currently ONLINE, in no particular order.
func (s *PresenceService) ListOnline(ctx context.Context) ([]domain.User, error) {
	return s.users.FindAllByStatus(ctx, domain.StatusOnline)
}

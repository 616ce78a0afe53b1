package services

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"relay-chat/internal/domain"
	relay_errors "relay-chat/pkg/errors"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

type fakeMessageRepo struct {
	mu         sync.Mutex
	messages   []domain.ChatMessage
	failCreate bool
}

func (f *fakeMessageRepo) Create(ctx context.Context, m *domain.ChatMessage) error {
	if f.failCreate {
		return relay_errors.ErrStoreUnavailable
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	m.CreatedAt = time.Unix(0, int64(len(f.messages))*int64(time.Millisecond)).UTC()
	f.messages = append(f.messages, *m)
	return nil
}

func (f *fakeMessageRepo) FindByChatID(ctx context.Context, chatID string) ([]domain.ChatMessage, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []domain.ChatMessage
	for _, m := range f.messages {
		if m.ChatID == chatID {
			out = append(out, m)
		}
	}
	return out, nil
}

type fakeRoomRepo struct {
	mu    sync.Mutex
	rooms map[[2]string]string
}

func newFakeRoomRepo() *fakeRoomRepo {
	return &fakeRoomRepo{rooms: make(map[[2]string]string)}
}

func (f *fakeRoomRepo) GetChatID(ctx context.Context, senderID, recipientID string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	chatID, ok := f.rooms[[2]string{senderID, recipientID}]
	if !ok {
		return "", relay_errors.ErrNotFound
	}
	return chatID, nil
}

func (f *fakeRoomRepo) GetOrCreateChatID(ctx context.Context, senderID, recipientID string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if chatID, ok := f.rooms[[2]string{senderID, recipientID}]; ok {
		return chatID, nil
	}
	chatID := fmt.Sprintf("%s_%s", senderID, recipientID)
	f.rooms[[2]string{senderID, recipientID}] = chatID
	f.rooms[[2]string{recipientID, senderID}] = chatID
	return chatID, nil
}

func newRelayForTest() (*RelayService, *fakeMessageRepo, *fakeRoomRepo) {
	messages := &fakeMessageRepo{}
	rooms := newFakeRoomRepo()
	return NewRelayService(messages, rooms), messages, rooms
}

func Test_Deliver_Assigns_ID_And_Returns_Notification(t *testing.T) {
	req := require.New(t)
	svc, _, _ := newRelayForTest()

	notification, err := svc.Deliver(context.Background(), domain.ChatMessage{
		SenderID:    "alice",
		RecipientID: "bob",
		Content:     "hi",
	})
	req.NoError(err)
	req.NotEqual(uuid.Nil, notification.ID)
	req.Equal("alice", notification.SenderID)
	req.Equal("bob", notification.RecipientID)
	req.Equal("hi", notification.Content)
}

func Test_Deliver_Preserves_Existing_ID(t *testing.T) {
	req := require.New(t)
	svc, _, _ := newRelayForTest()

	id := uuid.New()
	notification, err := svc.Deliver(context.Background(), domain.ChatMessage{
		ID:          id,
		SenderID:    "alice",
		RecipientID: "bob",
		Content:     "hi",
	})
	req.NoError(err)
	req.Equal(id, notification.ID)
}

func Test_Deliver_Then_History_Includes_Message(t *testing.T) {
	req := require.New(t)
	svc, _, _ := newRelayForTest()
	ctx := context.Background()

	notification, err := svc.Deliver(ctx, domain.ChatMessage{
		SenderID:    "alice",
		RecipientID: "bob",
		Content:     "hi",
	})
	req.NoError(err)

	history, err := svc.History(ctx, "alice", "bob")
	req.NoError(err)
	req.Len(history, 1)
	req.Equal(notification.ID, history[0].ID)
	req.Equal("alice", history[0].SenderID)
	req.Equal("bob", history[0].RecipientID)
	req.Equal("hi", history[0].Content)
}

func Test_History_Is_Pair_Symmetric(t *testing.T) {
	req := require.New(t)
	svc, _, _ := newRelayForTest()
	ctx := context.Background()

	_, err := svc.Deliver(ctx, domain.ChatMessage{SenderID: "alice", RecipientID: "bob", Content: "hi bob"})
	req.NoError(err)
	_, err = svc.Deliver(ctx, domain.ChatMessage{SenderID: "bob", RecipientID: "alice", Content: "hi alice"})
	req.NoError(err)

	forward, err := svc.History(ctx, "alice", "bob")
	req.NoError(err)
	backward, err := svc.History(ctx, "bob", "alice")
	req.NoError(err)

	req.Len(forward, 2)
	req.Equal(forward, backward)
}

func Test_History_Chronological_Order(t *testing.T) {
	req := require.New(t)
	svc, _, _ := newRelayForTest()
	ctx := context.Background()

	contents := []string{"first", "second", "third"}
	for _, content := range contents {
		_, err := svc.Deliver(ctx, domain.ChatMessage{SenderID: "alice", RecipientID: "bob", Content: content})
		req.NoError(err)
	}

	history, err := svc.History(ctx, "alice", "bob")
	req.NoError(err)
	req.Len(history, len(contents))
	for i, content := range contents {
		req.Equal(content, history[i].Content)
	}
}

func Test_History_Empty_For_Unknown_Pair(t *testing.T) {
	req := require.New(t)
	svc, _, _ := newRelayForTest()

	history, err := svc.History(context.Background(), "alice", "stranger")
	req.NoError(err)
	req.Empty(history)
}

func Test_Deliver_Store_Failure_Produces_No_Notification(t *testing.T) {
	req := require.New(t)
	svc, messages, _ := newRelayForTest()
	messages.failCreate = true
	ctx := context.Background()

	notification, err := svc.Deliver(ctx, domain.ChatMessage{
		SenderID:    "alice",
		RecipientID: "bob",
		Content:     "hi",
	})
	req.ErrorIs(err, relay_errors.ErrStoreUnavailable)
	req.Equal(domain.ChatNotification{}, notification)

	messages.failCreate = false
	history, err := svc.History(ctx, "alice", "bob")
	req.NoError(err)
	req.Empty(history)
}

func Test_Deliver_Missing_Participants_Rejected(t *testing.T) {
	req := require.New(t)
	svc, _, _ := newRelayForTest()
	ctx := context.Background()

	_, err := svc.Deliver(ctx, domain.ChatMessage{RecipientID: "bob", Content: "hi"})
	req.ErrorIs(err, relay_errors.ErrInvalidInput)

	_, err = svc.Deliver(ctx, domain.ChatMessage{SenderID: "alice", Content: "hi"})
	req.ErrorIs(err, relay_errors.ErrInvalidInput)
}

// Full flow from the clients' perspective: presence registration, delivery,
// history and disconnect.
func Test_Connect_Deliver_History_Disconnect_Scenario(t *testing.T) {
	req := require.New(t)
	ctx := context.Background()

	presence := NewPresenceService(newFakeUserRepo())
	relay, _, _ := newRelayForTest()

	_, err := presence.Connect(ctx, domain.User{NickName: "alice", FullName: "Alice"})
	req.NoError(err)

	online, err := presence.ListOnline(ctx)
	req.NoError(err)
	req.Len(online, 1)
	req.Equal("alice", online[0].NickName)
	req.Equal(domain.StatusOnline, online[0].Status)

	notification, err := relay.Deliver(ctx, domain.ChatMessage{
		SenderID:    "alice",
		RecipientID: "bob",
		Content:     "hi",
	})
	req.NoError(err)
	req.NotEqual(uuid.Nil, notification.ID)
	req.Equal("alice", notification.SenderID)
	req.Equal("bob", notification.RecipientID)
	req.Equal("hi", notification.Content)

	history, err := relay.History(ctx, "alice", "bob")
	req.NoError(err)
	req.Len(history, 1)
	req.Equal(notification.ID, history[0].ID)

	req.NoError(presence.Disconnect(ctx, domain.User{NickName: "alice"}))
	online, err = presence.ListOnline(ctx)
	req.NoError(err)
	req.Empty(online)
}

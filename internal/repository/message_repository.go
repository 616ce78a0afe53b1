package repository

import (
	"context"

	"relay-chat/internal/domain"

	"github.com/jackc/pgx/v5/pgxpool"
)

type PostgresMessageRepository struct {
	db *pgxpool.Pool
}

func NewMessageRepository(db *pgxpool.Pool) MessageRepository {
	return &PostgresMessageRepository{db: db}
}

func (r *PostgresMessageRepository) Create(ctx context.Context, m *domain.ChatMessage) error {
	err := r.db.QueryRow(ctx, `
		INSERT INTO chat_messages (id, chat_id, sender_id, recipient_id, content)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING created_at
	`, m.ID, m.ChatID, m.SenderID, m.RecipientID, m.Content).Scan(&m.CreatedAt)
	if err != nil {
		return storeError("create message", err)
	}
	return nil
}

func (r *PostgresMessageRepository) FindByChatID(ctx context.Context, chatID string) ([]domain.ChatMessage, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id, chat_id, sender_id, recipient_id, content, created_at
		FROM chat_messages
		WHERE chat_id = $1
		ORDER BY created_at, id
	`, chatID)
	if err != nil {
		return nil, storeError("find messages", err)
	}
	defer rows.Close()

	var messages []domain.ChatMessage
	for rows.Next() {
		var m domain.ChatMessage
		if err := rows.Scan(&m.ID, &m.ChatID, &m.SenderID, &m.RecipientID, &m.Content, &m.CreatedAt); err != nil {
			return nil, storeError("scan message", err)
		}
		messages = append(messages, m)
	}
	if err := rows.Err(); err != nil {
		return nil, storeError("find messages", err)
	}
	return messages, nil
}

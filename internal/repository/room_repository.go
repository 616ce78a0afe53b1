package repository

import (
	"context"
	"errors"
	"fmt"

	relay_errors "relay-chat/pkg/errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PostgresRoomRepository struct {
	db *pgxpool.Pool
}

func NewRoomRepository(db *pgxpool.Pool) RoomRepository {
	return &PostgresRoomRepository{db: db}
}

func (r *PostgresRoomRepository) GetChatID(ctx context.Context, senderID, recipientID string) (string, error) {
	var chatID string
	err := r.db.QueryRow(ctx, `
		SELECT chat_id FROM chat_rooms
		WHERE sender_id = $1 AND recipient_id = $2
	`, senderID, recipientID).Scan(&chatID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", relay_errors.ErrNotFound
		}
		return "", storeError("find chat room", err)
	}
	return chatID, nil
}

func (r *PostgresRoomRepository) GetOrCreateChatID(ctx context.Context, senderID, recipientID string) (string, error) {
	chatID, err := r.GetChatID(ctx, senderID, recipientID)
	if err == nil {
		return chatID, nil
	}
	if !errors.Is(err, relay_errors.ErrNotFound) {
		return "", err
	}

	chatID = fmt.Sprintf("%s_%s", senderID, recipientID)
	if err := r.createPair(ctx, chatID, senderID, recipientID); err != nil {
		if isUniqueViolation(err) {
			// Lost the race with the opposite direction; the room exists now.
			return r.GetChatID(ctx, senderID, recipientID)
		}
		return "", storeError("create chat room", err)
	}
	return chatID, nil
}

// createPair records both directions in one transaction so the pair always
// shares a single chat id.
func (r *PostgresRoomRepository) createPair(ctx context.Context, chatID, senderID, recipientID string) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	const insert = `
		INSERT INTO chat_rooms (chat_id, sender_id, recipient_id)
		VALUES ($1, $2, $3)
	`
	if _, err := tx.Exec(ctx, insert, chatID, senderID, recipientID); err != nil {
		return err
	}
	if senderID != recipientID {
		if _, err := tx.Exec(ctx, insert, chatID, recipientID, senderID); err != nil {
			return err
		}
	}
	return tx.Commit(ctx)
}

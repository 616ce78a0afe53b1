package repository

import (
	"context"
	"errors"

	"relay-chat/internal/domain"
	relay_errors "relay-chat/pkg/errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PostgresUserRepository struct {
	db *pgxpool.Pool
}

func NewUserRepository(db *pgxpool.Pool) UserRepository {
	return &PostgresUserRepository{db: db}
}

func (r *PostgresUserRepository) Save(ctx context.Context, u domain.User) error {
	_, err := r.db.Exec(ctx, `
		INSERT INTO users (nick_name, full_name, status)
		VALUES ($1, $2, $3)
		ON CONFLICT (nick_name) DO UPDATE
		SET full_name = EXCLUDED.full_name, status = EXCLUDED.status
	`, u.NickName, u.FullName, u.Status)
	if err != nil {
		return storeError("save user", err)
	}
	return nil
}

func (r *PostgresUserRepository) FindByNickName(ctx context.Context, nickName string) (domain.User, error) {
	var u domain.User
	err := r.db.QueryRow(ctx, `
		SELECT nick_name, full_name, status
		FROM users
		WHERE nick_name = $1
	`, nickName).Scan(&u.NickName, &u.FullName, &u.Status)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.User{}, relay_errors.ErrNotFound
		}
		return domain.User{}, storeError("find user", err)
	}
	return u, nil
}

func (r *PostgresUserRepository) FindAllByStatus(ctx context.Context, status domain.Status) ([]domain.User, error) {
	rows, err := r.db.Query(ctx, `
		SELECT nick_name, full_name, status
		FROM users
		WHERE status = $1
	`, status)
	if err != nil {
		return nil, storeError("list users by status", err)
	}
	defer rows.Close()

	var users []domain.User
	for rows.Next() {
		var u domain.User
		if err := rows.Scan(&u.NickName, &u.FullName, &u.Status); err != nil {
			return nil, storeError("scan user", err)
		}
		users = append(users, u)
	}
	if err := rows.Err(); err != nil {
		return nil, storeError("list users by status", err)
	}
	return users, nil
}

package store

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/QuliyevMSH/gubre-evi-main/internal/domain"
	"github.com/QuliyevMSH/gubre-evi-main/internal/notify"
)

const uniqueViolation = "23505"

func (s *Postgres) CreateUser(ctx context.Context, u *domain.User) error {
	if u.CreatedAt.IsZero() {
		u.CreatedAt = time.Now()
	}

	query := `INSERT INTO users (id, email, password_hash, is_admin, created_at)
	          VALUES ($1, $2, $3, $4, $5)`

	_, err := s.db.ExecContext(ctx, query, u.ID, u.Email, u.PasswordHash, u.IsAdmin, u.CreatedAt)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == uniqueViolation {
			return ErrEmailTaken
		}
		return writeErr("create user", err)
	}

	s.publish(ctx, TableUsers, notify.OpInsert, u.ID.String())
	return nil
}

func (s *Postgres) GetUser(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	query := `SELECT id, email, password_hash, is_admin, created_at
	          FROM users WHERE id = $1`

	var u domain.User
	err := s.db.QueryRowContext(ctx, query, id).
		Scan(&u.ID, &u.Email, &u.PasswordHash, &u.IsAdmin, &u.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, readErr("get user", err)
	}

	return &u, nil
}

func (s *Postgres) GetUserByEmail(ctx context.Context, email string) (*domain.User, error) {
	query := `SELECT id, email, password_hash, is_admin, created_at
	          FROM users WHERE email = $1`

	var u domain.User
	err := s.db.QueryRowContext(ctx, query, email).
		Scan(&u.ID, &u.Email, &u.PasswordHash, &u.IsAdmin, &u.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, readErr("get user by email", err)
	}

	return &u, nil
}

func (s *Postgres) ListUsers(ctx context.Context) ([]domain.User, error) {
	query := `SELECT id, email, password_hash, is_admin, created_at
	          FROM users ORDER BY created_at, id`

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, readErr("list users", err)
	}
	defer rows.Close()

	var users []domain.User
	for rows.Next() {
		var u domain.User
		if err := rows.Scan(&u.ID, &u.Email, &u.PasswordHash, &u.IsAdmin, &u.CreatedAt); err != nil {
			return nil, readErr("scan user", err)
		}
		users = append(users, u)
	}
	if err := rows.Err(); err != nil {
		return nil, readErr("iterate users", err)
	}

	return users, nil
}

func (s *Postgres) DeleteUser(ctx context.Context, id uuid.UUID) error {
	result, err := s.db.ExecContext(ctx, `DELETE FROM users WHERE id = $1`, id)
	if err != nil {
		return writeErr("delete user", err)
	}
	if affected, _ := result.RowsAffected(); affected == 0 {
		return ErrUserNotFound
	}

	s.publish(ctx, TableUsers, notify.OpDelete, id.String())
	return nil
}

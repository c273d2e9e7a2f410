package store

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/QuliyevMSH/gubre-evi-main/internal/domain"
	"github.com/QuliyevMSH/gubre-evi-main/internal/notify"
)

func (s *Postgres) GetProfile(ctx context.Context, id uuid.UUID) (*domain.Profile, error) {
	query := `SELECT id, first_name, last_name, avatar_url, updated_at
	          FROM profiles WHERE id = $1`

	var p domain.Profile
	err := s.db.QueryRowContext(ctx, query, id).
		Scan(&p.ID, &p.FirstName, &p.LastName, &p.AvatarURL, &p.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrProfileNotFound
	}
	if err != nil {
		return nil, readErr("get profile", err)
	}

	return &p, nil
}

func (s *Postgres) UpsertProfile(ctx context.Context, p *domain.Profile) error {
	p.UpdatedAt = time.Now()

	query := `INSERT INTO profiles (id, first_name, last_name, avatar_url, updated_at)
	          VALUES ($1, $2, $3, $4, $5)
	          ON CONFLICT (id)
	          DO UPDATE SET first_name = EXCLUDED.first_name,
	                        last_name  = EXCLUDED.last_name,
	                        avatar_url = EXCLUDED.avatar_url,
	                        updated_at = EXCLUDED.updated_at`

	if _, err := s.db.ExecContext(ctx, query, p.ID, p.FirstName, p.LastName, p.AvatarURL, p.UpdatedAt); err != nil {
		return writeErr("upsert profile", err)
	}

	s.publish(ctx, TableProfiles, notify.OpUpdate, p.ID.String())
	return nil
}

func (s *Postgres) DeleteProfile(ctx context.Context, id uuid.UUID) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM profiles WHERE id = $1`, id); err != nil {
		return writeErr("delete profile", err)
	}

	s.publish(ctx, TableProfiles, notify.OpDelete, id.String())
	return nil
}

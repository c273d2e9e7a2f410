package profile

import (
	"context"
	"errors"
	"fmt"
	"path"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/QuliyevMSH/gubre-evi-main/internal/domain"
	"github.com/QuliyevMSH/gubre-evi-main/internal/storage"
	"github.com/QuliyevMSH/gubre-evi-main/internal/store"
)

// ErrNoFile is returned when an avatar upload arrives without content.
// It short-circuits before any remote call.
var ErrNoFile = errors.New("no file provided")

type Service struct {
	profiles store.ProfileStore
	bucket   storage.Bucket
	log      *logrus.Logger
}

func NewService(profiles store.ProfileStore, bucket storage.Bucket, log *logrus.Logger) *Service {
	return &Service{profiles: profiles, bucket: bucket, log: log}
}

// Get returns the user's profile, or a zero-value profile when none has
// been written yet. Rows appear on first write.
func (s *Service) Get(ctx context.Context, userID uuid.UUID) (*domain.Profile, error) {
	p, err := s.profiles.GetProfile(ctx, userID)
	if errors.Is(err, store.ErrProfileNotFound) {
		return &domain.Profile{ID: userID}, nil
	}
	if err != nil {
		return nil, err
	}
	return p, nil
}

func (s *Service) Update(ctx context.Context, userID uuid.UUID, firstName, lastName string) (*domain.Profile, error) {
	p, err := s.Get(ctx, userID)
	if err != nil {
		return nil, err
	}

	p.FirstName = firstName
	p.LastName = lastName
	if err := s.profiles.UpsertProfile(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

// UploadAvatar stores a new avatar and points the profile at its public
// URL. The previous object is removed best-effort first; a failed
// removal is logged and never blocks the upload or the profile update.
func (s *Service) UploadAvatar(ctx context.Context, userID uuid.UUID, filename, contentType string, data []byte) (*domain.Profile, error) {
	if len(data) == 0 {
		return nil, ErrNoFile
	}

	p, err := s.Get(ctx, userID)
	if err != nil {
		return nil, err
	}

	if p.AvatarURL != "" {
		if key := storage.KeyFromURL(p.AvatarURL); key != "" {
			if err := s.bucket.Remove(ctx, key); err != nil {
				s.log.WithError(err).WithField("key", key).Warn("old avatar removal failed")
			}
		}
	}

	key := fmt.Sprintf("%s-%s%s", userID, uuid.NewString(), path.Ext(filename))
	url, err := s.bucket.Upload(ctx, key, contentType, data)
	if err != nil {
		return nil, fmt.Errorf("upload avatar: %w", err)
	}

	p.AvatarURL = url
	if err := s.profiles.UpsertProfile(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

// Package admin implements the administrative surface: product
// create/update/delete with the cascading basket sweep, and user
// management.
package admin

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/QuliyevMSH/gubre-evi-main/internal/domain"
	"github.com/QuliyevMSH/gubre-evi-main/internal/storage"
	"github.com/QuliyevMSH/gubre-evi-main/internal/store"
)

var (
	ErrInvalidPrice = errors.New("price is not a valid number")
	ErrEmptyName    = errors.New("product name is required")
)

// CatalogInvalidator drops any cached catalog state after a write.
type CatalogInvalidator interface {
	Invalidate(ctx context.Context)
}

type Service struct {
	store   store.Store
	catalog CatalogInvalidator
	bucket  storage.Bucket
	log     *logrus.Logger
}

func NewService(st store.Store, catalog CatalogInvalidator, bucket storage.Bucket, log *logrus.Logger) *Service {
	return &Service{store: st, catalog: catalog, bucket: bucket, log: log}
}

// ProductInput carries user-entered product fields. Price arrives as
// text and is parsed here; the column type enforces the rest.
type ProductInput struct {
	Name        string `json:"name"`
	Price       string `json:"price"`
	Description string `json:"description"`
	Image       string `json:"image"`
	Category    string `json:"category"`
}

func (in ProductInput) toProduct() (*domain.Product, error) {
	if strings.TrimSpace(in.Name) == "" {
		return nil, ErrEmptyName
	}
	price, err := strconv.ParseFloat(strings.TrimSpace(in.Price), 64)
	if err != nil {
		return nil, fmt.Errorf("%w: %q", ErrInvalidPrice, in.Price)
	}
	if price < 0 {
		return nil, fmt.Errorf("%w: negative", ErrInvalidPrice)
	}
	return &domain.Product{
		Name:        in.Name,
		Price:       price,
		Description: in.Description,
		Image:       in.Image,
		Category:    in.Category,
	}, nil
}

func (s *Service) AddProduct(ctx context.Context, in ProductInput) (*domain.Product, error) {
	p, err := in.toProduct()
	if err != nil {
		return nil, err
	}

	if err := s.store.InsertProduct(ctx, p); err != nil {
		return nil, err
	}

	s.catalog.Invalidate(ctx)
	return p, nil
}

func (s *Service) UpdateProduct(ctx context.Context, id int64, in ProductInput) (*domain.Product, error) {
	p, err := in.toProduct()
	if err != nil {
		return nil, err
	}
	p.ID = id

	if err := s.store.UpdateProduct(ctx, p); err != nil {
		return nil, err
	}

	s.catalog.Invalidate(ctx)
	return p, nil
}

// DeleteProduct removes the product and every basket entry referencing
// it. The basket sweep runs first; if it fails the product delete must
// not execute, so no basket entry is ever left pointing at a missing
// product. The store offers no cross-statement atomicity here: a failed
// product delete after a successful sweep leaves orphan-free baskets
// and a still-existing product, which is the acceptable direction.
func (s *Service) DeleteProduct(ctx context.Context, id int64) error {
	if err := s.store.DeleteBasketByProduct(ctx, id); err != nil {
		return fmt.Errorf("cascade basket sweep: %w", err)
	}

	if err := s.store.DeleteProduct(ctx, id); err != nil {
		return err
	}

	s.catalog.Invalidate(ctx)
	return nil
}

// UserSummary is one row of the admin user list.
type UserSummary struct {
	ID        uuid.UUID `json:"id"`
	Email     string    `json:"email"`
	FirstName string    `json:"first_name"`
	LastName  string    `json:"last_name"`
	IsAdmin   bool      `json:"is_admin"`
}

func (s *Service) ListUsers(ctx context.Context) ([]UserSummary, error) {
	users, err := s.store.ListUsers(ctx)
	if err != nil {
		return nil, err
	}

	summaries := make([]UserSummary, 0, len(users))
	for _, u := range users {
		summary := UserSummary{ID: u.ID, Email: u.Email, IsAdmin: u.IsAdmin}
		p, err := s.store.GetProfile(ctx, u.ID)
		if err == nil {
			summary.FirstName = p.FirstName
			summary.LastName = p.LastName
		} else if !errors.Is(err, store.ErrProfileNotFound) {
			return nil, err
		}
		summaries = append(summaries, summary)
	}

	return summaries, nil
}

// DeleteUser removes the user's basket, profile, and account in that
// order, stopping at the first failure. The avatar object is removed
// best-effort.
func (s *Service) DeleteUser(ctx context.Context, id uuid.UUID) error {
	if err := s.store.DeleteBasketByUser(ctx, id); err != nil {
		return fmt.Errorf("delete user basket: %w", err)
	}

	p, err := s.store.GetProfile(ctx, id)
	if err == nil && p.AvatarURL != "" {
		if key := storage.KeyFromURL(p.AvatarURL); key != "" {
			if rmErr := s.bucket.Remove(ctx, key); rmErr != nil {
				s.log.WithError(rmErr).WithField("key", key).Warn("avatar removal failed")
			}
		}
	} else if err != nil && !errors.Is(err, store.ErrProfileNotFound) {
		return err
	}

	if err := s.store.DeleteProfile(ctx, id); err != nil {
		return fmt.Errorf("delete user profile: %w", err)
	}

	if err := s.store.DeleteUser(ctx, id); err != nil {
		return err
	}
	return nil
}

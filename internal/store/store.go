package store

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/QuliyevMSH/gubre-evi-main/internal/domain"
)

// Table names, also used as change-feed subjects.
const (
	TableProducts = "products"
	TableBasket   = "basket"
	TableProfiles = "profiles"
	TableUsers    = "users"
)

var (
	ErrProductNotFound = errors.New("product not found")
	ErrEntryNotFound   = errors.New("basket entry not found")
	ErrProfileNotFound = errors.New("profile not found")
	ErrUserNotFound    = errors.New("user not found")
	ErrEmailTaken      = errors.New("email already registered")
)

// ProductStore covers catalog reads plus the administrative writes.
// Consumers define this interface, not the Postgres implementation.
type ProductStore interface {
	ListProducts(ctx context.Context) ([]domain.Product, error)
	GetProduct(ctx context.Context, id int64) (*domain.Product, error)
	InsertProduct(ctx context.Context, p *domain.Product) error
	UpdateProduct(ctx context.Context, p *domain.Product) error
	DeleteProduct(ctx context.Context, id int64) error
	// DeleteBasketByProduct removes every basket entry referencing the
	// product, across all users. It is the first half of the cascade
	// that keeps basket entries resolving to existing products.
	DeleteBasketByProduct(ctx context.Context, productID int64) error
}

type BasketStore interface {
	// ListBasketLines returns the user's basket joined with product
	// data, ordered by insertion.
	ListBasketLines(ctx context.Context, userID uuid.UUID) ([]domain.BasketLine, error)
	// UpsertBasketIncrement atomically adds delta to the quantity of
	// the (user, product) line, creating the line when absent.
	UpsertBasketIncrement(ctx context.Context, userID uuid.UUID, productID int64, delta int) error
	SetBasketQuantity(ctx context.Context, entryID, userID uuid.UUID, quantity int) error
	DeleteBasketEntry(ctx context.Context, entryID, userID uuid.UUID) error
	DeleteBasketByUser(ctx context.Context, userID uuid.UUID) error
}

type ProfileStore interface {
	GetProfile(ctx context.Context, id uuid.UUID) (*domain.Profile, error)
	// UpsertProfile inserts or updates the row keyed by profile id.
	UpsertProfile(ctx context.Context, p *domain.Profile) error
	DeleteProfile(ctx context.Context, id uuid.UUID) error
}

type UserStore interface {
	CreateUser(ctx context.Context, u *domain.User) error
	GetUser(ctx context.Context, id uuid.UUID) (*domain.User, error)
	GetUserByEmail(ctx context.Context, email string) (*domain.User, error)
	ListUsers(ctx context.Context) ([]domain.User, error)
	DeleteUser(ctx context.Context, id uuid.UUID) error
}

// Store is the full catalog store boundary.
type Store interface {
	ProductStore
	BasketStore
	ProfileStore
	UserStore
}

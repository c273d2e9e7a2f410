package catalog

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/singleflight"

	"github.com/QuliyevMSH/gubre-evi-main/internal/domain"
	"github.com/QuliyevMSH/gubre-evi-main/internal/store"
)

// Service serves the product catalog through a cache. Cache failures
// are logged and fallen through to the store, never surfaced.
type Service struct {
	store store.ProductStore
	cache Cache
	log   *logrus.Logger
	sfg   singleflight.Group // prevents cache stampede
}

func NewService(st store.ProductStore, cache Cache, log *logrus.Logger) *Service {
	return &Service{store: st, cache: cache, log: log}
}

func (s *Service) List(ctx context.Context) ([]domain.Product, error) {
	v, err, _ := s.sfg.Do("products", func() (interface{}, error) {
		products, err := s.cache.Get(ctx)
		if err == nil {
			return products, nil
		}
		if !errors.Is(err, ErrCacheMiss) {
			s.log.WithError(err).Warn("catalog cache get failed")
		}

		products, err = s.store.ListProducts(ctx)
		if err != nil {
			return nil, err
		}

		go func() {
			cctx, cancel := context.WithTimeout(context.Background(), time.Second)
			defer cancel()
			if errSet := s.cache.Set(cctx, products); errSet != nil {
				s.log.WithError(errSet).Warn("catalog cache set failed")
			}
		}()

		return products, nil
	})
	if err != nil {
		return nil, err
	}

	return v.([]domain.Product), nil
}

// Search filters the listed catalog by case-insensitive name substring.
// An empty query returns the whole catalog.
func (s *Service) Search(ctx context.Context, query string) ([]domain.Product, error) {
	products, err := s.List(ctx)
	if err != nil {
		return nil, err
	}

	query = strings.TrimSpace(query)
	if query == "" {
		return products, nil
	}

	needle := strings.ToLower(query)
	var matched []domain.Product
	for _, p := range products {
		if strings.Contains(strings.ToLower(p.Name), needle) {
			matched = append(matched, p)
		}
	}
	return matched, nil
}

func (s *Service) Get(ctx context.Context, id int64) (*domain.Product, error) {
	return s.store.GetProduct(ctx, id)
}

// Invalidate drops the cached catalog. Called after administrative
// writes; a failed drop only delays convergence by one TTL.
func (s *Service) Invalidate(ctx context.Context) {
	if err := s.cache.Delete(ctx); err != nil {
		s.log.WithError(err).Warn("catalog cache invalidate failed")
	}
}

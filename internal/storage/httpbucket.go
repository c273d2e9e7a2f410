package storage

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/sony/gobreaker/v2"
)

// HTTPBucket talks to an object storage service with a Supabase-style
// REST surface: objects are written at /object/{bucket}/{key} and
// publicly readable at /object/public/{bucket}/{key}. Calls go through
// a circuit breaker so a degraded storage backend fails fast instead of
// tying up request handlers.
type HTTPBucket struct {
	base    string
	bucket  string
	token   string
	client  *http.Client
	breaker *gobreaker.CircuitBreaker[struct{}]
}

func NewHTTPBucket(baseURL, bucket, token string) *HTTPBucket {
	settings := gobreaker.Settings{
		Name:    "object-storage",
		Timeout: 30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures > 5
		},
		// A 404 is an answer, not a backend failure.
		IsSuccessful: func(err error) bool {
			return err == nil || errors.Is(err, ErrObjectNotFound)
		},
	}
	return &HTTPBucket{
		base:    baseURL,
		bucket:  bucket,
		token:   token,
		client:  &http.Client{Timeout: 15 * time.Second},
		breaker: gobreaker.NewCircuitBreaker[struct{}](settings),
	}
}

func (b *HTTPBucket) objectURL(key string) string {
	return fmt.Sprintf("%s/object/%s/%s", b.base, b.bucket, key)
}

// PublicURL returns the unauthenticated read URL for a key.
func (b *HTTPBucket) PublicURL(key string) string {
	return fmt.Sprintf("%s/object/public/%s/%s", b.base, b.bucket, key)
}

func (b *HTTPBucket) Upload(ctx context.Context, key, contentType string, data []byte) (string, error) {
	err := b.do(ctx, http.MethodPost, b.objectURL(key), contentType, data)
	if err != nil {
		return "", fmt.Errorf("upload object %s: %w", key, err)
	}
	return b.PublicURL(key), nil
}

func (b *HTTPBucket) Remove(ctx context.Context, key string) error {
	if err := b.do(ctx, http.MethodDelete, b.objectURL(key), "", nil); err != nil {
		return fmt.Errorf("remove object %s: %w", key, err)
	}
	return nil
}

func (b *HTTPBucket) do(ctx context.Context, method, url, contentType string, body []byte) error {
	_, err := b.breaker.Execute(func() (struct{}, error) {
		var reader io.Reader
		if body != nil {
			reader = bytes.NewReader(body)
		}
		req, err := http.NewRequestWithContext(ctx, method, url, reader)
		if err != nil {
			return struct{}{}, err
		}
		if b.token != "" {
			req.Header.Set("Authorization", "Bearer "+b.token)
		}
		if contentType != "" {
			req.Header.Set("Content-Type", contentType)
		}

		resp, err := b.client.Do(req)
		if err != nil {
			return struct{}{}, err
		}
		defer resp.Body.Close()
		io.Copy(io.Discard, resp.Body)

		if resp.StatusCode == http.StatusNotFound {
			return struct{}{}, ErrObjectNotFound
		}
		if resp.StatusCode < 200 || resp.StatusCode > 299 {
			return struct{}{}, fmt.Errorf("storage responded %d", resp.StatusCode)
		}
		return struct{}{}, nil
	})
	return err
}

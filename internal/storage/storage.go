// Package storage holds publicly readable objects, currently only user
// avatars. Objects are keyed by name and reachable at a stable public
// URL.
package storage

import (
	"context"
	"errors"
	"strings"
)

var ErrObjectNotFound = errors.New("object not found")

type Bucket interface {
	// Upload stores the object and returns its public URL.
	Upload(ctx context.Context, key, contentType string, data []byte) (string, error)
	Remove(ctx context.Context, key string) error
}

// KeyFromURL extracts the object key from a public URL: the last path
// segment. Returns "" when the URL has no usable segment.
func KeyFromURL(u string) string {
	u = strings.TrimRight(u, "/")
	idx := strings.LastIndex(u, "/")
	if idx < 0 || idx == len(u)-1 {
		return ""
	}
	return u[idx+1:]
}

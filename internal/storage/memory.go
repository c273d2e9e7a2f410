package storage

import (
	"context"
	"sort"
	"sync"
)

// MemoryBucket keeps objects in process memory. Used for single-node
// deployments without an object storage backend, and in tests.
type MemoryBucket struct {
	baseURL string

	mu      sync.Mutex
	objects map[string][]byte
}

func NewMemoryBucket(baseURL string) *MemoryBucket {
	return &MemoryBucket{
		baseURL: baseURL,
		objects: make(map[string][]byte),
	}
}

func (b *MemoryBucket) Upload(_ context.Context, key, _ string, data []byte) (string, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	stored := make([]byte, len(data))
	copy(stored, data)
	b.objects[key] = stored
	return b.baseURL + "/" + key, nil
}

func (b *MemoryBucket) Remove(_ context.Context, key string) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if _, ok := b.objects[key]; !ok {
		return ErrObjectNotFound
	}
	delete(b.objects, key)
	return nil
}

// Get returns a stored object by key.
func (b *MemoryBucket) Get(key string) ([]byte, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	data, ok := b.objects[key]
	return data, ok
}

func (b *MemoryBucket) Keys() []string {
	b.mu.Lock()
	defer b.mu.Unlock()
	keys := make([]string, 0, len(b.objects))
	for k := range b.objects {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

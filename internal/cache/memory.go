package cache

import (
	"context"
	"encoding/json"
	"sync"

	"vendorhub/internal/wizard"
)

// MemoryCache is an in-process snapshot store for development and
// tests. Snapshots round-trip through JSON so it exercises the same
// serialization as the Redis cache.
type MemoryCache struct {
	mu        sync.RWMutex
	snapshots map[string][]byte
}

func NewMemoryCache() *MemoryCache {
	return &MemoryCache{snapshots: make(map[string][]byte)}
}

func (c *MemoryCache) Get(ctx context.Context, draftID string) (*wizard.Snapshot, error) {
	c.mu.RLock()
	data, ok := c.snapshots[draftID]
	c.mu.RUnlock()
	if !ok {
		return nil, nil
	}
	var snap wizard.Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return nil, err
	}
	return &snap, nil
}

func (c *MemoryCache) Put(ctx context.Context, draftID string, snap *wizard.Snapshot) error {
	data, err := json.Marshal(snap)
	if err != nil {
		return err
	}
	c.mu.Lock()
	c.snapshots[draftID] = data
	c.mu.Unlock()
	return nil
}

func (c *MemoryCache) Delete(ctx context.Context, draftID string) error {
	c.mu.Lock()
	delete(c.snapshots, draftID)
	c.mu.Unlock()
	return nil
}

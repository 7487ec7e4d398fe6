package generator

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"sync"

	"github.com/Lumos-Labs-HQ/seedly/internal/types"
)

// Cache memoizes generated values for the lifetime of the process. It has
// no eviction.
type Cache struct {
	mu      sync.RWMutex
	entries map[string][]types.Value
}

func NewCache() *Cache {
	return &Cache{entries: make(map[string][]types.Value)}
}

// CacheKey hashes every input that shapes the prompt, so two columns that
// share a name but differ in type, enum values or domain never collide.
func CacheKey(col types.Column, count int, domain types.Domain) string {
	payload, _ := json.Marshal(struct {
		Name   string       `json:"name"`
		Type   string       `json:"type"`
		Enum   []string     `json:"enum"`
		Count  int          `json:"count"`
		Domain types.Domain `json:"domain"`
	}{col.Name, col.Type, col.EnumValues, count, domain})

	sum := sha256.Sum256(payload)
	return hex.EncodeToString(sum[:])
}

func (c *Cache) Get(key string) ([]types.Value, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	values, ok := c.entries[key]
	if !ok {
		return nil, false
	}
	return append([]types.Value(nil), values...), true
}

func (c *Cache) Put(key string, values []types.Value) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[key] = append([]types.Value(nil), values...)
}

func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

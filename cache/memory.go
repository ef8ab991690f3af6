package cache

import (
	"context"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
)

// Memory is an in-process Cache bounded by entry count and age.
type Memory struct {
	lru *expirable.LRU[string, []byte]
}

var _ Cache = (*Memory)(nil)

// NewMemory creates a cache holding at most size entries, each expiring ttl
// after it was stored. A non-positive ttl keeps entries until evicted.
func NewMemory(size int, ttl time.Duration) *Memory {
	if size <= 0 {
		size = 1024
	}
	if ttl < 0 {
		ttl = 0
	}
	return &Memory{lru: expirable.NewLRU[string, []byte](size, nil, ttl)}
}

// Get returns a copy of the stored value.
func (m *Memory) Get(_ context.Context, key string) ([]byte, bool, error) {
	v, ok := m.lru.Get(key)
	if !ok {
		return nil, false, nil
	}
	return append([]byte(nil), v...), true, nil
}

// Set stores a copy of value.
func (m *Memory) Set(_ context.Context, key string, value []byte) error {
	m.lru.Add(key, append([]byte(nil), value...))
	return nil
}

// Len returns the number of live entries.
func (m *Memory) Len() int {
	return m.lru.Len()
}

func (m *Memory) Ping(context.Context) error {
	return nil
}

// Close drops every entry.
func (m *Memory) Close() error {
	m.lru.Purge()
	return nil
}

package store

import (
	"context"
	"fmt"
	"maps"
	"sync"
)

// Memory is an in-process Blobs implementation. It backs tests and the
// --ephemeral flag, where nothing should touch disk.
type Memory struct {
	mu    sync.Mutex
	blobs map[Key][]byte
}

var _ Blobs = (*Memory)(nil)

// NewMemory returns an empty Memory store.
func NewMemory() *Memory {
	return &Memory{blobs: make(map[Key][]byte)}
}

func (m *Memory) Get(_ context.Context, key Key) ([]byte, error) {
	if !key.valid() {
		return nil, fmt.Errorf("get %q: %w", key, ErrUnknownKey)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	return cloneBytes(m.blobs[key]), nil
}

func (m *Memory) Set(_ context.Context, key Key, value []byte) error {
	if !key.valid() {
		return fmt.Errorf("set %q: %w", key, ErrUnknownKey)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.blobs == nil {
		m.blobs = make(map[Key][]byte)
	}
	m.blobs[key] = cloneBytes(value)
	return nil
}

func (m *Memory) Delete(_ context.Context, key Key) error {
	if !key.valid() {
		return fmt.Errorf("delete %q: %w", key, ErrUnknownKey)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.blobs, key)
	return nil
}

// Atomic runs fn against a private copy and swaps it in when fn succeeds.
func (m *Memory) Atomic(ctx context.Context, fn func(kv KV) error) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	staged := &Memory{blobs: maps.Clone(m.blobs)}
	if staged.blobs == nil {
		staged.blobs = make(map[Key][]byte)
	}
	if err := fn(staged); err != nil {
		return err
	}
	m.blobs = staged.blobs
	return nil
}

func cloneBytes(b []byte) []byte {
	if b == nil {
		return nil
	}
	return append([]byte(nil), b...)
}

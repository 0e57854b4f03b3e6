package recordstore

import (
	"context"
	"sync"

	"github.com/google/uuid"
)

// partition is one account's slice of one container.
type partition struct {
	container Container
	account   string
}

// Memory is an in-process store. Bodies are copied on the way in and out
// so callers never share backing arrays with the store.
type Memory struct {
	mu         sync.RWMutex
	partitions map[partition]map[uuid.UUID][]byte
}

// NewMemory creates an empty in-memory store.
func NewMemory() *Memory {
	return &Memory{partitions: map[partition]map[uuid.UUID][]byte{}}
}

func (m *Memory) Get(_ context.Context, container Container, account string, id uuid.UUID) ([]byte, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	body, ok := m.partitions[partition{container, account}][id]
	if !ok {
		return nil, ErrNotFound(container)
	}
	return clone(body), nil
}

func (m *Memory) Save(_ context.Context, container Container, account string, id uuid.UUID, body []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.put(container, account, id, body)
	return nil
}

func (m *Memory) Delete(_ context.Context, container Container, account string, id uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	key := partition{container, account}
	if _, ok := m.partitions[key][id]; !ok {
		return ErrNotFound(container)
	}
	delete(m.partitions[key], id)
	return nil
}

func (m *Memory) List(_ context.Context, container Container, account string) ([][]byte, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	records := m.partitions[partition{container, account}]
	out := make([][]byte, 0, len(records))
	for _, body := range records {
		out = append(out, clone(body))
	}
	return out, nil
}

func (m *Memory) Count(_ context.Context, container Container, account string) (int, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.partitions[partition{container, account}]), nil
}

func (m *Memory) SaveMany(_ context.Context, container Container, account string, records map[uuid.UUID][]byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for id, body := range records {
		m.put(container, account, id, body)
	}
	return nil
}

func (m *Memory) Close() error { return nil }

func (m *Memory) put(container Container, account string, id uuid.UUID, body []byte) {
	key := partition{container, account}
	records, ok := m.partitions[key]
	if !ok {
		records = map[uuid.UUID][]byte{}
		m.partitions[key] = records
	}
	records[id] = clone(body)
}

func clone(b []byte) []byte {
	out := make([]byte, len(b))
	copy(out, b)
	return out
}

package config

import (
	"sync"
)

// MemStore is an in-memory Store for tests that never writes to disk.
type MemStore struct {
	mu  sync.Mutex
	doc Document
}

// NewMemStore returns an empty in-memory store.
func NewMemStore() *MemStore {
	return &MemStore{doc: make(Document)}
}

// Load returns a copy of the stored preferences, or empty tables.
func (m *MemStore) Load(controllerID string) (*ControllerPreferences, error) {
	if err := checkControllerID(controllerID); err != nil {
		return nil, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.doc[controllerID]
	if !ok {
		return NewControllerPreferences(), nil
	}
	return p.Clone(), nil
}

// Save stores a deep copy of p.
func (m *MemStore) Save(controllerID string, p *ControllerPreferences) error {
	if err := checkSave(controllerID, p); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.doc[controllerID] = p.Clone()
	return nil
}

// Controllers returns the number of controllers with stored preferences.
func (m *MemStore) Controllers() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.doc)
}

// Path returns ":memory:" to indicate this is an in-memory store.
func (m *MemStore) Path() string { return ":memory:" }

// Flush is a no-op for in-memory stores.
func (m *MemStore) Flush() error { return nil }

// Close is a no-op for in-memory stores.
func (m *MemStore) Close() error { return nil }

var _ Store = (*MemStore)(nil)

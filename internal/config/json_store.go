package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"time"
)

const (
	preferencesFileName = "preferences.json"
	debounceDelay       = 500 * time.Millisecond
)

// JSONStore keeps every controller's preferences in one JSON file, written
// atomically after a debounce.
//
// Without pending writes, every Load and Save re-reads the file, so a second
// process (the CLI next to a running watcher) sees the other's changes.
type JSONStore struct {
	mu    sync.Mutex
	path  string
	doc   Document
	dirty bool
	timer *time.Timer
}

// NewJSONStore creates a JSON store in the given directory.
func NewJSONStore(dir string) *JSONStore {
	return &JSONStore{
		path: filepath.Join(dir, preferencesFileName),
	}
}

// Path returns the file path used by this store.
func (s *JSONStore) Path() string { return s.path }

// Load returns the preferences stored for controllerID. A missing file or
// controller yields empty tables; an unreadable or corrupt file is an error.
func (s *JSONStore) Load(controllerID string) (*ControllerPreferences, error) {
	if err := checkControllerID(controllerID); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.refreshLocked(); err != nil {
		return nil, err
	}
	p, ok := s.doc[controllerID]
	if !ok {
		return NewControllerPreferences(), nil
	}
	return p.Clone(), nil
}

// Save records p for controllerID and schedules a debounced write.
// The actual write happens after 500ms of no further Save calls.
func (s *JSONStore) Save(controllerID string, p *ControllerPreferences) error {
	if err := checkSave(controllerID, p); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	// Refuse to merge into a document we could not read, rather than
	// replacing it with only this controller's subtree.
	if err := s.refreshLocked(); err != nil {
		return err
	}
	s.doc[controllerID] = p.Clone()
	s.dirty = true

	if s.timer != nil {
		s.timer.Stop()
	}
	s.timer = time.AfterFunc(debounceDelay, func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		if err := s.writeLocked(); err != nil {
			slog.Error("config: failed to write preferences", "path", s.path, "err", err)
		}
	})
	return nil
}

// Flush forces an immediate write of any pending save.
func (s *JSONStore) Flush() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
	return s.writeLocked()
}

// Close flushes pending writes.
func (s *JSONStore) Close() error { return s.Flush() }

// refreshLocked re-reads the file unless unwritten changes are held in memory.
func (s *JSONStore) refreshLocked() error {
	if s.dirty && s.doc != nil {
		return nil
	}
	doc, err := s.read()
	if err != nil {
		return err
	}
	s.doc = doc
	return nil
}

func (s *JSONStore) read() (Document, error) {
	unlock, err := lockFile(s.path, false)
	if err != nil {
		return nil, fmt.Errorf("config: lock %s: %w", s.path, err)
	}
	defer unlock()

	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return make(Document), nil
		}
		return nil, fmt.Errorf("config: read %s: %w", s.path, err)
	}

	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("config: parse %s: %w", s.path, err)
	}
	if doc == nil {
		doc = make(Document)
	}
	migrateDocument(doc)
	return doc, nil
}

func (s *JSONStore) writeLocked() error {
	if !s.dirty {
		return nil
	}
	data, err := json.MarshalIndent(s.doc, "", "  ")
	if err != nil {
		return err
	}

	unlock, err := lockFile(s.path, true)
	if err != nil {
		return fmt.Errorf("config: lock %s: %w", s.path, err)
	}
	defer unlock()

	// Write to temp file, then rename (atomic on Linux)
	tmpPath := s.path + ".tmp"
	if err := os.WriteFile(tmpPath, data, 0644); err != nil {
		return err
	}
	if err := os.Rename(tmpPath, s.path); err != nil {
		return err
	}
	s.dirty = false
	return nil
}

var _ Store = (*JSONStore)(nil)

// Package jsonfile persists the complaint collection as a single indented
// JSON document. The file stays hand-editable: keys keep collection order
// and every mutation rewrites the whole document atomically.
package jsonfile

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"go.uber.org/zap"

	"reklamapp/internal/domain"
	"reklamapp/internal/repository"
)

// Store is the JSON-document implementation of repository.Store. An RWMutex
// guards the collection because the HTTP layer serves requests concurrently.
type Store struct {
	path string
	log  *zap.Logger

	mu  sync.RWMutex
	col *domain.Collection
}

// New creates a store over the given document path. The parent directory is
// created if needed; the document itself is only read by Load.
func New(path string, log *zap.Logger) (*Store, error) {
	if path == "" {
		return nil, fmt.Errorf("data file path is empty")
	}
	if log == nil {
		log = zap.NewNop()
	}
	clean := filepath.Clean(path)
	if dir := filepath.Dir(clean); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create data directory: %w", err)
		}
	}
	return &Store{
		path: clean,
		log:  log,
		col:  domain.NewCollection(),
	}, nil
}

// Path returns the document path.
func (s *Store) Path() string {
	return s.path
}

// Load reads the persisted document. A missing, unreadable or corrupt file
// yields an empty collection: the application must always start, and the
// problem is logged rather than surfaced.
func (s *Store) Load() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := os.ReadFile(s.path)
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			s.log.Warn("data file unreadable, starting with empty collection",
				zap.String("path", s.path),
				zap.Error(err))
		}
		s.col = domain.NewCollection()
		return nil
	}

	col := domain.NewCollection()
	if err := json.Unmarshal(data, col); err != nil {
		s.log.Warn("data file corrupt, starting with empty collection",
			zap.String("path", s.path),
			zap.Error(err))
		s.col = domain.NewCollection()
		return nil
	}

	s.col = col
	s.log.Info("complaints loaded",
		zap.String("path", s.path),
		zap.Int("count", col.Len()))
	return nil
}

// Save persists the current collection.
func (s *Store) Save() error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.saveLocked()
}

// saveLocked writes the document atomically: the new content goes to a temp
// file in the same directory and replaces the document with a rename, so a
// crash mid-write never leaves a half-written file behind.
func (s *Store) saveLocked() error {
	data, err := json.MarshalIndent(s.col, "", "    ")
	if err != nil {
		return fmt.Errorf("encode complaints: %w", err)
	}

	dir := filepath.Dir(s.path)
	tmp, err := os.CreateTemp(dir, ".complaints-*.json")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("write temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("close temp file: %w", err)
	}
	if err := os.Rename(tmpName, s.path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("replace data file: %w", err)
	}
	return nil
}

// Create adds a new complaint and persists the collection.
func (s *Store) Create(id string, c *domain.Complaint) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.col.Has(id) {
		return repository.ErrDuplicateID
	}
	s.col.Put(id, c.Clone())
	if err := s.saveLocked(); err != nil {
		s.col.Remove(id)
		return err
	}
	return nil
}

// Get returns a copy of the complaint.
func (s *Store) Get(id string) (*domain.Complaint, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	c, ok := s.col.Get(id)
	if !ok {
		return nil, repository.ErrNotFound
	}
	return c.Clone(), nil
}

// Update applies the mutator to the stored complaint and persists the
// collection. A mutator error leaves the stored record untouched.
func (s *Store) Update(id string, mutate func(*domain.Complaint) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	current, ok := s.col.Get(id)
	if !ok {
		return repository.ErrNotFound
	}
	updated := current.Clone()
	if err := mutate(updated); err != nil {
		return err
	}
	s.col.Put(id, updated)
	if err := s.saveLocked(); err != nil {
		s.col.Put(id, current)
		return err
	}
	return nil
}

// Delete removes the complaint, persists the collection and returns the
// removed record.
func (s *Store) Delete(id string) (*domain.Complaint, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	removed, ok := s.col.Remove(id)
	if !ok {
		return nil, repository.ErrNotFound
	}
	if err := s.saveLocked(); err != nil {
		s.col.Put(id, removed)
		return nil, err
	}
	return removed, nil
}

// Snapshot returns copies of all complaints in collection order.
func (s *Store) Snapshot() []domain.Entry {
	s.mu.RLock()
	defer s.mu.RUnlock()

	entries := s.col.Entries()
	copies := make([]domain.Entry, len(entries))
	for i, e := range entries {
		copies[i] = domain.Entry{ID: e.ID, Complaint: e.Complaint.Clone()}
	}
	return copies
}

// Len returns the number of complaints.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.col.Len()
}

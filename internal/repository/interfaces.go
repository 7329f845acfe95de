// Package repository defines the persistence contract for the complaint
// collection.
package repository

import (
	"errors"

	"reklamapp/internal/domain"
)

// Sentinel errors returned by store implementations.
var (
	// ErrNotFound is returned when the referenced complaint number does
	// not exist.
	ErrNotFound = errors.New("complaint not found")
	// ErrDuplicateID is returned when creating a complaint whose number
	// already exists.
	ErrDuplicateID = errors.New("complaint number already exists")
)

// Store owns the complaint collection and its persisted document. Every
// mutation persists the whole collection before returning.
type Store interface {
	// Load reads the persisted document into memory. A missing or
	// unreadable document yields an empty collection rather than an error.
	Load() error
	// Save persists the current collection.
	Save() error
	// Create adds a new complaint under the given number.
	Create(id string, c *domain.Complaint) error
	// Get returns a copy of the complaint.
	Get(id string) (*domain.Complaint, error)
	// Update applies the mutator to the stored complaint and persists the
	// result. If the mutator returns an error nothing is persisted.
	Update(id string, mutate func(*domain.Complaint) error) error
	// Delete removes the complaint and returns the removed record.
	Delete(id string) (*domain.Complaint, error)
	// Snapshot returns copies of all complaints in collection order.
	Snapshot() []domain.Entry
	// Len returns the number of complaints.
	Len() int
}

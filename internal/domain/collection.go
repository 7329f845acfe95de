package domain

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Entry pairs a complaint with its identifier for ordered iteration.
type Entry struct {
	ID        string
	Complaint *Complaint
}

// Collection is the whole in-memory set of complaints keyed by complaint
// number. Iteration order and the key order of the persisted document both
// follow insertion order.
type Collection struct {
	order []string
	items map[string]*Complaint
}

// NewCollection returns an empty collection.
func NewCollection() *Collection {
	return &Collection{items: make(map[string]*Complaint)}
}

// Len returns the number of complaints.
func (c *Collection) Len() int {
	return len(c.order)
}

// Has reports whether the id exists.
func (c *Collection) Has(id string) bool {
	_, ok := c.items[id]
	return ok
}

// Get returns the stored complaint for the id.
func (c *Collection) Get(id string) (*Complaint, bool) {
	comp, ok := c.items[id]
	return comp, ok
}

// Put inserts or replaces a complaint. A replaced complaint keeps its
// original position in the order.
func (c *Collection) Put(id string, comp *Complaint) {
	if _, ok := c.items[id]; !ok {
		c.order = append(c.order, id)
	}
	c.items[id] = comp
}

// Remove deletes a complaint and returns it.
func (c *Collection) Remove(id string) (*Complaint, bool) {
	comp, ok := c.items[id]
	if !ok {
		return nil, false
	}
	delete(c.items, id)
	for i, existing := range c.order {
		if existing == id {
			c.order = append(c.order[:i], c.order[i+1:]...)
			break
		}
	}
	return comp, true
}

// IDs returns the ids in collection order.
func (c *Collection) IDs() []string {
	return append([]string(nil), c.order...)
}

// Entries returns the complaints in collection order. The complaints are the
// stored instances, not copies.
func (c *Collection) Entries() []Entry {
	entries := make([]Entry, 0, len(c.order))
	for _, id := range c.order {
		entries = append(entries, Entry{ID: id, Complaint: c.items[id]})
	}
	return entries
}

// Clone returns a deep copy of the collection.
func (c *Collection) Clone() *Collection {
	dup := NewCollection()
	for _, id := range c.order {
		dup.Put(id, c.items[id].Clone())
	}
	return dup
}

// MarshalJSON encodes the collection as one JSON object whose key order is
// the collection order. encoding/json re-compacts (and MarshalIndent
// re-indents) this output without reordering keys.
func (c *Collection) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, id := range c.order {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(id)
		if err != nil {
			return nil, fmt.Errorf("encode complaint id %q: %w", id, err)
		}
		buf.Write(key)
		buf.WriteByte(':')
		value, err := json.Marshal(c.items[id])
		if err != nil {
			return nil, fmt.Errorf("encode complaint %q: %w", id, err)
		}
		buf.Write(value)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON decodes a complaint document, preserving the key order of
// the file as the collection order.
func (c *Collection) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	tok, err := dec.Token()
	if err != nil {
		return fmt.Errorf("read complaint document: %w", err)
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return fmt.Errorf("complaint document: expected top-level object, got %v", tok)
	}

	c.order = nil
	c.items = make(map[string]*Complaint)
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return fmt.Errorf("read complaint id: %w", err)
		}
		id, ok := keyTok.(string)
		if !ok {
			return fmt.Errorf("complaint document: non-string key %v", keyTok)
		}
		comp := &Complaint{}
		if err := dec.Decode(comp); err != nil {
			return fmt.Errorf("decode complaint %q: %w", id, err)
		}
		c.Put(id, comp)
	}
	if _, err := dec.Token(); err != nil {
		return fmt.Errorf("read complaint document: %w", err)
	}
	return nil
}

package jsonfile

import (
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"reklamapp/internal/domain"
	"reklamapp/internal/repository"
)

var _ repository.Store = (*Store)(nil)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := New(filepath.Join(t.TempDir(), "complaints_data.json"), zap.NewNop())
	require.NoError(t, err)
	require.NoError(t, s.Load())
	return s
}

func sampleComplaint(customer string) *domain.Complaint {
	c := domain.New("Tempur")
	c.Customer = customer
	c.StartDate = "2024-03-01"
	c.DeadlineDays = "30"
	return c
}

func TestLoadMissingFileStartsEmpty(t *testing.T) {
	s := newTestStore(t)
	assert.Equal(t, 0, s.Len())
}

func TestLoadCorruptFileStartsEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "complaints_data.json")
	require.NoError(t, os.WriteFile(path, []byte("{ nem json"), 0o644))

	s, err := New(path, zap.NewNop())
	require.NoError(t, err)
	require.NoError(t, s.Load())
	assert.Equal(t, 0, s.Len())
}

func TestCreatePersistsAndRejectsDuplicates(t *testing.T) {
	s := newTestStore(t)

	require.NoError(t, s.Create("R-1", sampleComplaint("Kiss Béla")))
	err := s.Create("R-1", sampleComplaint("Nagy Anna"))
	assert.ErrorIs(t, err, repository.ErrDuplicateID)

	// A fresh store over the same file sees the created record.
	reloaded, err := New(s.Path(), zap.NewNop())
	require.NoError(t, err)
	require.NoError(t, reloaded.Load())
	got, err := reloaded.Get("R-1")
	require.NoError(t, err)
	assert.Equal(t, "Kiss Béla", got.Customer)
}

func TestGetReturnsCopy(t *testing.T) {
	s := newTestStore(t)
	require.NoError(t, s.Create("R-1", sampleComplaint("Kiss Béla")))

	got, err := s.Get("R-1")
	require.NoError(t, err)
	got.Customer = "más"

	again, err := s.Get("R-1")
	require.NoError(t, err)
	assert.Equal(t, "Kiss Béla", again.Customer)

	_, err = s.Get("nincs")
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestUpdateMutatesAndPersists(t *testing.T) {
	s := newTestStore(t)
	require.NoError(t, s.Create("R-1", sampleComplaint("Kiss Béla")))

	err := s.Update("R-1", func(c *domain.Complaint) error {
		c.Status = domain.StatusClosed
		c.AddNote("lezárva")
		return nil
	})
	require.NoError(t, err)

	got, err := s.Get("R-1")
	require.NoError(t, err)
	assert.Equal(t, domain.StatusClosed, got.Status)
	assert.Equal(t, []string{"lezárva"}, got.AdditionalInfo)

	err = s.Update("nincs", func(*domain.Complaint) error { return nil })
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestUpdateMutatorErrorLeavesRecordUntouched(t *testing.T) {
	s := newTestStore(t)
	require.NoError(t, s.Create("R-1", sampleComplaint("Kiss Béla")))

	boom := errors.New("mégsem")
	err := s.Update("R-1", func(c *domain.Complaint) error {
		c.Customer = "más"
		return boom
	})
	assert.ErrorIs(t, err, boom)

	got, err := s.Get("R-1")
	require.NoError(t, err)
	assert.Equal(t, "Kiss Béla", got.Customer)
}

func TestDelete(t *testing.T) {
	s := newTestStore(t)
	require.NoError(t, s.Create("R-1", sampleComplaint("Kiss Béla")))
	require.NoError(t, s.Create("R-2", sampleComplaint("Nagy Anna")))

	removed, err := s.Delete("R-1")
	require.NoError(t, err)
	assert.Equal(t, "Kiss Béla", removed.Customer)
	assert.Equal(t, 1, s.Len())

	_, err = s.Delete("R-1")
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestSnapshotPreservesOrderAndIsolation(t *testing.T) {
	s := newTestStore(t)
	require.NoError(t, s.Create("R-3", sampleComplaint("Kiss Béla")))
	require.NoError(t, s.Create("R-1", sampleComplaint("Nagy Anna")))

	snap := s.Snapshot()
	require.Len(t, snap, 2)
	assert.Equal(t, "R-3", snap[0].ID)
	assert.Equal(t, "R-1", snap[1].ID)

	snap[0].Complaint.Customer = "más"
	got, err := s.Get("R-3")
	require.NoError(t, err)
	assert.Equal(t, "Kiss Béla", got.Customer)
}

func TestDocumentIsIndentedAndOrdered(t *testing.T) {
	s := newTestStore(t)
	require.NoError(t, s.Create("R-2", sampleComplaint("Kiss Béla")))
	require.NoError(t, s.Create("R-1", sampleComplaint("Nagy Anna")))

	data, err := os.ReadFile(s.Path())
	require.NoError(t, err)

	// Hand-editable: 4-space indented, collection-ordered keys.
	assert.Contains(t, string(data), "\n    \"R-2\"")
	assert.Less(t,
		indexOf(t, data, `"R-2"`),
		indexOf(t, data, `"R-1"`))

	col := domain.NewCollection()
	require.NoError(t, json.Unmarshal(data, col))
	assert.Equal(t, []string{"R-2", "R-1"}, col.IDs())
}

func indexOf(t *testing.T, data []byte, sub string) int {
	t.Helper()
	idx := bytes.Index(data, []byte(sub))
	require.GreaterOrEqual(t, idx, 0)
	return idx
}

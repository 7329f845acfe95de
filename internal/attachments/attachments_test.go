package attachments

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestManager(t *testing.T) *Manager {
	t.Helper()
	m, err := NewManager(filepath.Join(t.TempDir(), "photos"), zap.NewNop())
	require.NoError(t, err)
	return m
}

func uploadTime() time.Time {
	return time.Date(2024, 3, 10, 14, 30, 45, 0, time.UTC)
}

func TestFileName(t *testing.T) {
	assert.Equal(t, "R-1_20240310_143045.jpg", FileName("R-1", "kép.jpg", uploadTime()))
	assert.Equal(t, "R-1_20240310_143045.PDF", FileName("R-1", "számla.PDF", uploadTime()))
	assert.Equal(t, "R-1_20240310_143045", FileName("R-1", "kiterjesztés nélkül", uploadTime()))
}

func TestSaveAndPath(t *testing.T) {
	m := newTestManager(t)

	name, err := m.Save("R-1", "fotó.jpg", uploadTime(), strings.NewReader("képadat"))
	require.NoError(t, err)
	assert.Equal(t, "R-1_20240310_143045.jpg", name)

	path, err := m.Path(name)
	require.NoError(t, err)
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "képadat", string(data))
}

func TestPathRejectsTraversal(t *testing.T) {
	m := newTestManager(t)

	for _, name := range []string{"", "../secret", "a/../../b", "..", "foo/../.."} {
		_, err := m.Path(name)
		assert.Error(t, err, "name %q should be rejected", name)
	}
}

func TestRemove(t *testing.T) {
	m := newTestManager(t)
	name, err := m.Save("R-1", "fotó.jpg", uploadTime(), strings.NewReader("x"))
	require.NoError(t, err)

	require.NoError(t, m.Remove(name))
	assert.Error(t, m.Remove(name))
}

func TestRemoveAllIsBestEffort(t *testing.T) {
	m := newTestManager(t)
	name, err := m.Save("R-1", "fotó.jpg", uploadTime(), strings.NewReader("x"))
	require.NoError(t, err)

	// A missing file must not stop the cleanup of the rest.
	m.RemoveAll([]string{"nincs_ilyen.jpg", name})

	path, err := m.Path(name)
	require.NoError(t, err)
	_, statErr := os.Stat(path)
	assert.True(t, os.IsNotExist(statErr))
}

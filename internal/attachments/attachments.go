// Package attachments manages the shared directory of files attached to
// complaints. Stored names carry the complaint number and an upload
// timestamp so the files stay traceable without the database.
package attachments

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"go.uber.org/zap"
)

const timestampLayout = "20060102_150405"

// Manager owns one attachments directory.
type Manager struct {
	dir string
	log *zap.Logger
}

// NewManager creates the attachments directory if needed.
func NewManager(dir string, log *zap.Logger) (*Manager, error) {
	if dir == "" {
		return nil, fmt.Errorf("attachments directory is empty")
	}
	if log == nil {
		log = zap.NewNop()
	}
	clean := filepath.Clean(dir)
	if err := os.MkdirAll(clean, 0o755); err != nil {
		return nil, fmt.Errorf("create attachments directory: %w", err)
	}
	return &Manager{dir: clean, log: log}, nil
}

// Dir returns the attachments directory.
func (m *Manager) Dir() string {
	return m.dir
}

// FileName derives the stored name for a new attachment of a complaint:
// {id}_{YYYYMMDD_HHMMSS}{ext}. The extension is taken from the original
// file name.
func FileName(id, original string, now time.Time) string {
	return fmt.Sprintf("%s_%s%s", id, now.Format(timestampLayout), filepath.Ext(original))
}

// Save copies the content into the attachments directory under the derived
// name and returns that name.
func (m *Manager) Save(id, original string, now time.Time, r io.Reader) (string, error) {
	name := FileName(id, original, now)
	path := filepath.Join(m.dir, name)

	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return "", fmt.Errorf("create attachment %s: %w", name, err)
	}
	if _, err := io.Copy(f, r); err != nil {
		f.Close()
		os.Remove(path)
		return "", fmt.Errorf("write attachment %s: %w", name, err)
	}
	if err := f.Close(); err != nil {
		os.Remove(path)
		return "", fmt.Errorf("close attachment %s: %w", name, err)
	}
	return name, nil
}

// Path resolves a stored attachment name to its path inside the attachments
// directory, rejecting names that would escape it.
func (m *Manager) Path(name string) (string, error) {
	if name == "" || strings.Contains(name, "..") {
		return "", fmt.Errorf("invalid attachment name: %q", name)
	}
	path := filepath.Join(m.dir, filepath.Clean("/"+name))
	rel, err := filepath.Rel(m.dir, path)
	if err != nil || strings.HasPrefix(rel, "..") {
		return "", fmt.Errorf("invalid attachment name: %q", name)
	}
	return path, nil
}

// Remove deletes one attachment file.
func (m *Manager) Remove(name string) error {
	path, err := m.Path(name)
	if err != nil {
		return err
	}
	if err := os.Remove(path); err != nil {
		return fmt.Errorf("remove attachment %s: %w", name, err)
	}
	return nil
}

// RemoveAll deletes every named attachment best-effort: failures are logged
// and skipped. Used when a complaint is deleted, where losing an orphan file
// beats failing the deletion.
func (m *Manager) RemoveAll(names []string) {
	for _, name := range names {
		if err := m.Remove(name); err != nil {
			m.log.Warn("attachment cleanup failed",
				zap.String("file", name),
				zap.Error(err))
		}
	}
}

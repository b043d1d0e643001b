package position

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// Store reads and writes the persisted window position. The record is
// read once at startup and written by the debounced save path; writes
// are fire-and-forget.
type Store interface {
	Read() (Position, error)
	Write(Position) error
}

// DefaultPath returns the standard location of the position file.
func DefaultPath(appDir string) (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(homeDir, ".config", appDir, "position.json"), nil
}

// FileStore persists the position as a JSON file.
type FileStore struct {
	path string
}

var _ Store = (*FileStore)(nil)

// NewFileStore creates a store backed by the given file path.
func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

// Read loads the saved position. A missing file yields the zero
// Position, which resolves to the default geometry downstream.
func (s *FileStore) Read() (Position, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return Position{}, nil
		}
		return Position{}, fmt.Errorf("failed to read position file: %w", err)
	}
	var pos Position
	if err := json.Unmarshal(data, &pos); err != nil {
		return Position{}, fmt.Errorf("failed to parse position file: %w", err)
	}
	return pos, nil
}

// Write stores the position, creating parent directories as needed.
func (s *FileStore) Write(pos Position) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0755); err != nil {
		return fmt.Errorf("failed to create position directory: %w", err)
	}
	data, err := json.MarshalIndent(pos, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode position: %w", err)
	}
	if err := os.WriteFile(s.path, append(data, '\n'), 0644); err != nil {
		return fmt.Errorf("failed to write position file: %w", err)
	}
	return nil
}

package client

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

// Storage is a key/value blob store for client state.
// Load returns nil data and no error for a missing key.
type Storage interface {
	Load(key string) ([]byte, error)
	Save(key string, data []byte) error
}

type MemoryStorage struct {
	mu    sync.Mutex
	items map[string][]byte
}

func NewMemoryStorage() *MemoryStorage {
	return &MemoryStorage{items: map[string][]byte{}}
}

func (m *MemoryStorage) Load(key string) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	data, ok := m.items[key]
	if !ok {
		return nil, nil
	}
	return append([]byte(nil), data...), nil
}

func (m *MemoryStorage) Save(key string, data []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.items[key] = append([]byte(nil), data...)
	return nil
}

// FileStorage keeps every key in one JSON object on disk.
type FileStorage struct {
	mu   sync.Mutex
	path string
}

func NewFileStorage(path string) *FileStorage {
	return &FileStorage{path: path}
}

// DefaultStatePath is the state file under the user's config directory.
func DefaultStatePath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "catalog", "state.json"), nil
}

func (f *FileStorage) Load(key string) ([]byte, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	items, err := f.read()
	if err != nil {
		return nil, err
	}
	if raw, ok := items[key]; ok {
		return raw, nil
	}
	return nil, nil
}

func (f *FileStorage) Save(key string, data []byte) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	items, err := f.read()
	if err != nil {
		// a corrupt file is replaced rather than blocking saves
		items = map[string]json.RawMessage{}
	}
	if !json.Valid(data) {
		return fmt.Errorf("refusing to store invalid JSON under %q", key)
	}
	items[key] = data

	raw, err := json.MarshalIndent(items, "", "  ")
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(f.path), 0o755); err != nil {
		return fmt.Errorf("failed to create state directory: %w", err)
	}
	return os.WriteFile(f.path, raw, 0o600)
}

func (f *FileStorage) read() (map[string]json.RawMessage, error) {
	items := map[string]json.RawMessage{}
	raw, err := os.ReadFile(f.path)
	if errors.Is(err, os.ErrNotExist) {
		return items, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read state file: %w", err)
	}
	if err := json.Unmarshal(raw, &items); err != nil {
		return nil, fmt.Errorf("failed to parse state file: %w", err)
	}
	return items, nil
}

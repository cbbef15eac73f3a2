package storage

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"
)

// SchemaVersion is written into every record. Records carrying another
// version are reported as ErrSchemaMismatch.
const SchemaVersion = 1

var (
	// ErrSchemaMismatch means a record was written by an incompatible version
	ErrSchemaMismatch = errors.New("schema version mismatch")
	// ErrCorrupt means a record could not be decoded
	ErrCorrupt = errors.New("corrupt record")
	// ErrInvalidKey means a key cannot be used as a file name
	ErrInvalidKey = errors.New("invalid key")
)

var keyPattern = regexp.MustCompile(`^[a-z0-9][a-z0-9_-]*$`)

// Store is a persistent key-value store of JSON values
type Store interface {
	Get(key string, v interface{}) (bool, error)
	Set(key string, v interface{}) error
	Delete(key string) error
	Keys() ([]string, error)
}

// record is the on-disk envelope of a value
type record struct {
	Version int             `json:"version"`
	Value   json.RawMessage `json:"value"`
}

// Storage handles the persistence of data, one JSON file per key
type Storage struct {
	dataDir string
}

// DefaultDir returns the default data directory (~/.monobar)
func DefaultDir() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get user home directory: %w", err)
	}
	return filepath.Join(homeDir, ".monobar"), nil
}

// New creates a new Storage instance rooted at dataDir
func New(dataDir string) (*Storage, error) {
	if dataDir == "" {
		dir, err := DefaultDir()
		if err != nil {
			return nil, err
		}
		dataDir = dir
	}

	if err := os.MkdirAll(dataDir, 0700); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}

	return &Storage{dataDir: dataDir}, nil
}

// Dir returns the data directory
func (s *Storage) Dir() string {
	return s.dataDir
}

func (s *Storage) path(key string) (string, error) {
	if !keyPattern.MatchString(key) {
		return "", fmt.Errorf("%w: %q", ErrInvalidKey, key)
	}
	return filepath.Join(s.dataDir, key+".json"), nil
}

// Get loads the value stored under key into v. It reports false when
// nothing is stored.
func (s *Storage) Get(key string, v interface{}) (bool, error) {
	path, err := s.path(key)
	if err != nil {
		return false, err
	}

	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to read %s: %w", key, err)
	}

	var rec record
	if err := json.Unmarshal(data, &rec); err != nil {
		return true, fmt.Errorf("%w: %s: %v", ErrCorrupt, key, err)
	}
	if rec.Version != SchemaVersion {
		return true, fmt.Errorf("%w: %s has version %d, want %d", ErrSchemaMismatch, key, rec.Version, SchemaVersion)
	}
	if err := json.Unmarshal(rec.Value, v); err != nil {
		return true, fmt.Errorf("%w: %s: %v", ErrCorrupt, key, err)
	}
	return true, nil
}

// Raw returns the stored envelope of key as indented JSON
func (s *Storage) Raw(key string) ([]byte, error) {
	path, err := s.path(key)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", key, err)
	}
	return data, nil
}

// Set replaces the value stored under key
func (s *Storage) Set(key string, v interface{}) error {
	path, err := s.path(key)
	if err != nil {
		return err
	}

	value, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("failed to marshal %s: %w", key, err)
	}
	data, err := json.MarshalIndent(record{Version: SchemaVersion, Value: value}, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal %s: %w", key, err)
	}

	// Write then rename so a crash never leaves a half-written record
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0600); err != nil {
		return fmt.Errorf("failed to write %s: %w", key, err)
	}
	if err := os.Rename(tmp, path); err != nil {
		return fmt.Errorf("failed to write %s: %w", key, err)
	}
	return nil
}

// Delete removes key. Deleting a missing key is not an error.
func (s *Storage) Delete(key string) error {
	path, err := s.path(key)
	if err != nil {
		return err
	}
	if err := os.Remove(path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("failed to delete %s: %w", key, err)
	}
	return nil
}

// Keys lists every stored key in name order
func (s *Storage) Keys() ([]string, error) {
	entries, err := os.ReadDir(s.dataDir)
	if err != nil {
		return nil, fmt.Errorf("failed to list data directory: %w", err)
	}

	keys := make([]string, 0, len(entries))
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || !strings.HasSuffix(name, ".json") {
			continue
		}
		key := strings.TrimSuffix(name, ".json")
		if keyPattern.MatchString(key) {
			keys = append(keys, key)
		}
	}
	sort.Strings(keys)
	return keys, nil
}

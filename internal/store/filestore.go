/**
 * @description
 * File-backed snapshot store: one JSON file per key under a data directory.
 * This is the local, self-contained equivalent of the browser storage the
 * dashboard originally persisted to. Writes go through a temp file and
 * rename so a crash mid-write never leaves a torn snapshot behind.
 */
package store

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
)

// FileStore persists snapshots as JSON files in dir.
type FileStore struct {
	dir    string
	logger *slog.Logger
}

// NewFileStore creates the data directory if needed and returns the store.
func NewFileStore(dir string, logger *slog.Logger) (*FileStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create data dir: %w", err)
	}
	return &FileStore{dir: dir, logger: logger}, nil
}

func (s *FileStore) path(key string) string {
	return filepath.Join(s.dir, key+".json")
}

// Load reads and decodes the snapshot for key. A missing file or a file
// that no longer parses is treated as absent so the caller can re-seed.
func (s *FileStore) Load(ctx context.Context, key string, into any) (bool, error) {
	data, err := os.ReadFile(s.path(key))
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, fmt.Errorf("read snapshot %s: %w", key, err)
	}
	if err := json.Unmarshal(data, into); err != nil {
		s.logger.Warn("discarding malformed snapshot", "key", key, "error", err)
		return false, nil
	}
	return true, nil
}

// Save rewrites the full snapshot for key atomically.
func (s *FileStore) Save(ctx context.Context, key string, value any) error {
	data, err := json.MarshalIndent(value, "", "  ")
	if err != nil {
		return fmt.Errorf("encode snapshot %s: %w", key, err)
	}
	tmp, err := os.CreateTemp(s.dir, key+"-*.tmp")
	if err != nil {
		return fmt.Errorf("create temp snapshot %s: %w", key, err)
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("write snapshot %s: %w", key, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("close snapshot %s: %w", key, err)
	}
	if err := os.Rename(tmpName, s.path(key)); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("replace snapshot %s: %w", key, err)
	}
	return nil
}

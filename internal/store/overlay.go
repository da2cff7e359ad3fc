package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/rodcoppi/ls-lisktransactions-sub002/internal/model"
)

// OverlayStore holds incremental snapshot updates on a writable tier. Saves
// are full-snapshot overwrites through a temp-file-then-rename swap, so no
// reader ever observes a partially written structure.
type OverlayStore struct {
	path string
}

// NewOverlayStore builds an OverlayStore over the given file path, creating
// the parent directory if needed.
func NewOverlayStore(path string) (*OverlayStore, error) {
	if path == "" {
		return nil, errors.New("overlay path is required")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create overlay dir: %w", err)
	}
	return &OverlayStore{path: path}, nil
}

// Load decodes the overlay snapshot, or ErrSnapshotMissing when none exists.
func (s *OverlayStore) Load(_ context.Context) (*model.Snapshot, error) {
	return loadFile(s.path)
}

// Save writes the full snapshot atomically.
func (s *OverlayStore) Save(_ context.Context, snapshot *model.Snapshot) error {
	data, err := json.MarshalIndent(snapshot, "", "  ")
	if err != nil {
		return fmt.Errorf("encode snapshot: %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(s.path), filepath.Base(s.path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("create temp snapshot: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
		return fmt.Errorf("write temp snapshot: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
		return fmt.Errorf("sync temp snapshot: %w", err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("close temp snapshot: %w", err)
	}

	if err := os.Rename(tmpName, s.path); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("swap snapshot into place: %w", err)
	}
	return nil
}

package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/rodcoppi/ls-lisktransactions-sub002/internal/model"
)

// SeedStore reads the baseline snapshot bundled with the deployment. It
// never writes.
type SeedStore struct {
	path string
}

// NewSeedStore builds a SeedStore over the given file path.
func NewSeedStore(path string) (*SeedStore, error) {
	if path == "" {
		return nil, errors.New("seed path is required")
	}
	return &SeedStore{path: path}, nil
}

// Load decodes the seed snapshot.
func (s *SeedStore) Load(_ context.Context) (*model.Snapshot, error) {
	return loadFile(s.path)
}

// Save always fails: the seed tier is baseline truth and read-only.
func (s *SeedStore) Save(_ context.Context, _ *model.Snapshot) error {
	return fmt.Errorf("seed store %s is read-only", s.path)
}

func loadFile(path string) (*model.Snapshot, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrSnapshotMissing, path)
		}
		return nil, fmt.Errorf("read snapshot %s: %w", path, err)
	}

	var snapshot model.Snapshot
	if err := json.Unmarshal(data, &snapshot); err != nil {
		return nil, fmt.Errorf("decode snapshot %s: %w", path, err)
	}
	snapshot.Normalize()
	return &snapshot, nil
}

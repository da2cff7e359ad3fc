package store

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/rodcoppi/ls-lisktransactions-sub002/internal/model"
)

// TieredStore prefers the overlay tier and falls back to the seed, which
// guarantees non-empty data even if the writable tier is wiped. Saves go to
// the overlay only. The storage strategy is selected once at construction;
// there is no environment branching at runtime.
type TieredStore struct {
	seed    Store
	overlay Store
	logger  *zap.Logger
}

// NewTieredStore combines a seed and an overlay store. The overlay may be
// nil on read-only runtimes, in which case loads come from the seed and
// saves fail.
func NewTieredStore(seed, overlay Store, logger *zap.Logger) (*TieredStore, error) {
	if seed == nil {
		return nil, errors.New("seed store is required")
	}
	return &TieredStore{seed: seed, overlay: overlay, logger: logger}, nil
}

// Load returns the overlay snapshot if present, else the seed snapshot.
// ErrSnapshotMissing from both tiers surfaces to the caller, where it is
// fatal at startup.
func (s *TieredStore) Load(ctx context.Context) (*model.Snapshot, error) {
	if s.overlay != nil {
		snapshot, err := s.overlay.Load(ctx)
		if err == nil {
			return snapshot, nil
		}
		if !errors.Is(err, ErrSnapshotMissing) {
			// A corrupt overlay must not mask the seed baseline.
			s.logger.Warn("overlay snapshot unreadable; falling back to seed", zap.Error(err))
		}
	}
	return s.seed.Load(ctx)
}

// Save persists the full snapshot to the overlay tier.
func (s *TieredStore) Save(ctx context.Context, snapshot *model.Snapshot) error {
	if s.overlay == nil {
		return fmt.Errorf("no writable overlay tier configured")
	}
	return s.overlay.Save(ctx, snapshot)
}

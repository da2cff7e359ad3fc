// Package store persists the cache snapshot across two file tiers: a
// read-only seed bundled with the deployment and a writable overlay for
// incremental updates.
package store

import (
	"context"
	"errors"

	"github.com/rodcoppi/ls-lisktransactions-sub002/internal/model"
)

// ErrSnapshotMissing is returned when a tier has no snapshot to load.
// From the tiered store it means neither overlay nor seed exists, which is
// fatal at startup: there is no valid fallback.
var ErrSnapshotMissing = errors.New("snapshot not found")

// Store loads and saves the full cache snapshot.
type Store interface {
	Load(ctx context.Context) (*model.Snapshot, error)
	Save(ctx context.Context, snapshot *model.Snapshot) error
}

package engine

import (
	"context"
	"time"

	"github.com/rodcoppi/ls-lisktransactions-sub002/internal/explorer"
	"github.com/rodcoppi/ls-lisktransactions-sub002/internal/model"
)

// Mode identifies which update path a cycle took after rotation.
type Mode string

const (
	// ModeColdStart is a full paginated fetch from scratch.
	ModeColdStart Mode = "cold_start"
	// ModeIncremental is a bounded fetch of blocks newer than the last
	// known block number.
	ModeIncremental Mode = "incremental"
)

type (
	// PageSource retrieves one page of the upstream transaction listing.
	PageSource interface {
		FetchPage(ctx context.Context, cursor string, fromBlock uint64) (explorer.Page, error)
	}

	// SnapshotStore loads and persists the cache snapshot.
	SnapshotStore interface {
		Load(ctx context.Context) (*model.Snapshot, error)
		Save(ctx context.Context, snapshot *model.Snapshot) error
	}

	// Metrics records update-cycle outcomes.
	Metrics interface {
		ObserveCycle(mode Mode, err error, started time.Time)
		ObserveFetch(mode Mode, pages, transactions int)
		ObserveIntegrityMismatch(dateKey string)
		ObserveMissingDays(count int)
		ObservePersist(err error, started time.Time)
	}
)

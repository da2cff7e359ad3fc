// Package engine implements the incremental cache/aggregation engine: merge,
// bucket aggregation, integrity validation and the update-cycle state machine.
package engine

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/rodcoppi/ls-lisktransactions-sub002/internal/analytics"
	"github.com/rodcoppi/ls-lisktransactions-sub002/internal/clock"
	"github.com/rodcoppi/ls-lisktransactions-sub002/internal/model"
)

const defaultMaxPages = 10

// Engine owns the in-memory snapshot and exposes the update cycle as a
// single idempotent operation. One instance is constructed per process and
// passed explicitly to every consumer.
type Engine struct {
	store   SnapshotStore
	fetcher *fetcher
	metrics Metrics
	logger  *zap.Logger
	now     func() time.Time

	// updateMu serializes update cycles: merge -> rotate -> persist is not
	// safe to interleave, so overlapping triggers coalesce.
	updateMu sync.Mutex

	// snapMu guards the snapshot readers see. Cycles mutate a clone and swap
	// it in only after a successful persist.
	snapMu  sync.RWMutex
	current *model.Snapshot
}

// Opts configures an Engine.
type Opts struct {
	// MaxPages bounds per-cycle external calls in incremental mode.
	MaxPages int
	// Now overrides the time source, for tests.
	Now func() time.Time
}

// New builds an Engine over the given store and page source.
func New(store SnapshotStore, source PageSource, metrics Metrics, logger *zap.Logger, opts Opts) (*Engine, error) {
	if store == nil {
		return nil, errors.New("snapshot store is required")
	}
	if source == nil {
		return nil, errors.New("page source is required")
	}
	if metrics == nil {
		return nil, errors.New("engine metrics is required")
	}
	if opts.MaxPages <= 0 {
		opts.MaxPages = defaultMaxPages
	}
	if opts.Now == nil {
		opts.Now = clock.UTCNow
	}
	return &Engine{
		store: store,
		fetcher: &fetcher{
			source:   source,
			maxPages: opts.MaxPages,
			logger:   logger.Named("fetcher"),
		},
		metrics: metrics,
		logger:  logger,
		now:     opts.Now,
	}, nil
}

// Start loads the persisted snapshot into memory. A missing snapshot in both
// tiers is fatal: serving empty analytics silently is never acceptable.
func (e *Engine) Start(ctx context.Context) error {
	snapshot, err := e.store.Load(ctx)
	if err != nil {
		return fmt.Errorf("load snapshot: %w", err)
	}
	snapshot.Normalize()

	// Foreign seeds can carry mismatched days; surface them before any
	// cycle touches or rotates them away.
	e.validateDays(snapshot, trackedDays(snapshot), e.now().UTC())

	e.snapMu.Lock()
	e.current = snapshot
	e.snapMu.Unlock()

	e.logger.Info("snapshot loaded",
		zap.Uint64("last_block", snapshot.LastBlockNumber),
		zap.Int("total_transactions", snapshot.TotalTransactions),
		zap.Int("days_active", snapshot.TotalDaysActive),
	)
	return nil
}

// Snapshot returns a deep copy of the current snapshot for read-only
// consumers, and whether the engine is ready to serve.
func (e *Engine) Snapshot() (*model.Snapshot, bool) {
	e.snapMu.RLock()
	defer e.snapMu.RUnlock()
	if e.current == nil {
		return nil, false
	}
	return e.current.Clone(), true
}

// ForceUpdate runs one update cycle: rotate hot buckets, fetch new
// transactions (cold start or incremental), merge, aggregate, validate and
// persist. Concurrent calls coalesce: if a cycle is already in progress the
// call returns immediately without error. Safe to invoke from any trigger
// adapter; it never panics outward.
func (e *Engine) ForceUpdate(ctx context.Context) (err error) {
	if !e.updateMu.TryLock() {
		e.logger.Debug("update cycle already in progress; coalescing trigger")
		return nil
	}
	defer e.updateMu.Unlock()

	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("update cycle panic: %v", r)
			e.logger.Error("update cycle panicked", zap.Any("panic", r))
		}
	}()

	return e.runCycle(ctx)
}

func (e *Engine) runCycle(ctx context.Context) error {
	started := e.now()
	now := started.UTC()

	// Work on a clone: a failed cycle must leave both the persisted and the
	// in-memory snapshot untouched.
	e.snapMu.RLock()
	working := e.current.Clone()
	e.snapMu.RUnlock()

	mode := ModeIncremental
	if working == nil || working.LastBlockNumber == 0 {
		mode = ModeColdStart
		if working == nil {
			working = model.NewSnapshot()
		}
	}

	// Rotation strips hourly evidence, so cross-check every tracked day
	// first; days whose buckets disagree with their total get reported even
	// when no new transaction touches them again.
	e.validateDays(working, trackedDays(working), now)

	rotated := Rotate(working, now)
	if len(rotated) > 0 {
		e.logger.Info("rotated hourly buckets", zap.Strings("dates", rotated))
	}

	var (
		idx   *Index
		pages int
		err   error
	)
	switch mode {
	case ModeColdStart:
		e.logger.Info("cold start: full paginated fetch")
		idx, pages, err = e.fetcher.fetchAll(ctx)
	default:
		idx, pages, err = e.fetcher.fetchSince(ctx, working.LastBlockNumber)
	}
	if err != nil {
		e.metrics.ObserveCycle(mode, err, started)
		e.logger.Error("fetch failed; keeping previous snapshot",
			zap.String("mode", string(mode)), zap.Error(err))
		return err
	}
	e.metrics.ObserveFetch(mode, pages, idx.Len())

	txs := idx.Ordered()
	touched := Fold(working, txs, now)
	e.validateDays(working, touched, now)
	working.LastUpdate = now

	// The fetch bound is the block anchor, so closed days the upstream never
	// returned stay invisible to pagination. Report the gap for backfill.
	if missing := analytics.MissingDays(working, now); len(missing) > 0 {
		e.metrics.ObserveMissingDays(len(missing))
		e.logger.Warn("closed days without recorded totals; backfill needed",
			zap.Strings("dates", missing))
	} else {
		e.metrics.ObserveMissingDays(0)
	}

	persistStarted := e.now()
	if saveErr := e.store.Save(ctx, working); saveErr != nil {
		// Prior on-disk state remains valid. The refreshed snapshot still
		// serves from memory until the next successful persist.
		e.metrics.ObservePersist(saveErr, persistStarted)
		e.logger.Error("persist snapshot failed; serving refreshed data from memory",
			zap.Error(saveErr))
	} else {
		e.metrics.ObservePersist(nil, persistStarted)
	}

	e.snapMu.Lock()
	e.current = working
	e.snapMu.Unlock()

	e.metrics.ObserveCycle(mode, nil, started)
	e.logger.Info("update cycle finished",
		zap.String("mode", string(mode)),
		zap.Int("pages", pages),
		zap.Int("new_transactions", len(txs)),
		zap.Uint64("last_block", working.LastBlockNumber),
	)
	return nil
}

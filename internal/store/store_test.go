package store

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/rodcoppi/ls-lisktransactions-sub002/internal/model"
)

func writeSnapshotFile(t *testing.T, path string, s *model.Snapshot) {
	t.Helper()
	data, err := json.Marshal(s)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(path, data, 0o644))
}

func testSnapshot(lastBlock uint64) *model.Snapshot {
	s := model.NewSnapshot()
	s.DailyTotals["2025-08-10"] = 500
	s.LastBlockNumber = lastBlock
	s.TotalTransactions = 500
	s.LastUpdate = time.Date(2025, 8, 11, 0, 0, 0, 0, time.UTC)
	return s
}

func TestSeedStore_LoadAndReadOnly(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, "seed.json")
	writeSnapshotFile(t, path, testSnapshot(100))

	seed, err := NewSeedStore(path)
	require.NoError(t, err)

	got, err := seed.Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, uint64(100), got.LastBlockNumber)
	assert.Equal(t, 500, got.DailyTotals["2025-08-10"])

	assert.Error(t, seed.Save(context.Background(), got), "seed tier must be read-only")
}

func TestSeedStore_MissingFile(t *testing.T) {
	t.Parallel()

	seed, err := NewSeedStore(filepath.Join(t.TempDir(), "absent.json"))
	require.NoError(t, err)

	_, err = seed.Load(context.Background())
	assert.ErrorIs(t, err, ErrSnapshotMissing)
}

func TestOverlayStore_SaveLoadRoundtrip(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "nested", "overlay.json")
	overlay, err := NewOverlayStore(path)
	require.NoError(t, err)

	want := testSnapshot(250)
	require.NoError(t, overlay.Save(context.Background(), want))

	got, err := overlay.Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, want.LastBlockNumber, got.LastBlockNumber)
	assert.Equal(t, want.DailyTotals, got.DailyTotals)

	// No temp files left behind after the atomic swap.
	entries, err := os.ReadDir(filepath.Dir(path))
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}

func TestOverlayStore_SaveOverwritesFully(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "overlay.json")
	overlay, err := NewOverlayStore(path)
	require.NoError(t, err)

	require.NoError(t, overlay.Save(context.Background(), testSnapshot(100)))
	require.NoError(t, overlay.Save(context.Background(), testSnapshot(300)))

	got, err := overlay.Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, uint64(300), got.LastBlockNumber)
}

func TestTieredStore_PrefersOverlay(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	seedPath := filepath.Join(dir, "seed.json")
	overlayPath := filepath.Join(dir, "overlay.json")
	writeSnapshotFile(t, seedPath, testSnapshot(100))
	writeSnapshotFile(t, overlayPath, testSnapshot(900))

	seed, err := NewSeedStore(seedPath)
	require.NoError(t, err)
	overlay, err := NewOverlayStore(overlayPath)
	require.NoError(t, err)
	tiered, err := NewTieredStore(seed, overlay, zap.NewNop())
	require.NoError(t, err)

	got, err := tiered.Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, uint64(900), got.LastBlockNumber)
}

func TestTieredStore_FallsBackToSeed(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	seedPath := filepath.Join(dir, "seed.json")
	writeSnapshotFile(t, seedPath, testSnapshot(100))

	seed, err := NewSeedStore(seedPath)
	require.NoError(t, err)
	overlay, err := NewOverlayStore(filepath.Join(dir, "overlay.json"))
	require.NoError(t, err)
	tiered, err := NewTieredStore(seed, overlay, zap.NewNop())
	require.NoError(t, err)

	got, err := tiered.Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, uint64(100), got.LastBlockNumber)
}

func TestTieredStore_CorruptOverlayFallsBackToSeed(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	seedPath := filepath.Join(dir, "seed.json")
	overlayPath := filepath.Join(dir, "overlay.json")
	writeSnapshotFile(t, seedPath, testSnapshot(100))
	require.NoError(t, os.WriteFile(overlayPath, []byte("{not json"), 0o644))

	seed, err := NewSeedStore(seedPath)
	require.NoError(t, err)
	overlay, err := NewOverlayStore(overlayPath)
	require.NoError(t, err)
	tiered, err := NewTieredStore(seed, overlay, zap.NewNop())
	require.NoError(t, err)

	got, err := tiered.Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, uint64(100), got.LastBlockNumber)
}

func TestTieredStore_BothMissingIsFatal(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	seed, err := NewSeedStore(filepath.Join(dir, "seed.json"))
	require.NoError(t, err)
	overlay, err := NewOverlayStore(filepath.Join(dir, "overlay.json"))
	require.NoError(t, err)
	tiered, err := NewTieredStore(seed, overlay, zap.NewNop())
	require.NoError(t, err)

	_, err = tiered.Load(context.Background())
	assert.ErrorIs(t, err, ErrSnapshotMissing)
}

func TestTieredStore_SaveWithoutOverlayFails(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	seedPath := filepath.Join(dir, "seed.json")
	writeSnapshotFile(t, seedPath, testSnapshot(100))

	seed, err := NewSeedStore(seedPath)
	require.NoError(t, err)
	tiered, err := NewTieredStore(seed, nil, zap.NewNop())
	require.NoError(t, err)

	assert.Error(t, tiered.Save(context.Background(), testSnapshot(1)))
}

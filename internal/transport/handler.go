package transport

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"github.com/rodcoppi/ls-lisktransactions-sub002/internal/clock"
	"github.com/rodcoppi/ls-lisktransactions-sub002/internal/model"
)

type (
	// SnapshotSource hands out consistent snapshot copies for reads.
	SnapshotSource interface {
		Snapshot() (*model.Snapshot, bool)
	}

	// Engine is the surface the HTTP handlers need from the update engine.
	Engine interface {
		ForceUpdate(ctx context.Context) error
	}
)

// Handler serves the stats contract and the external update trigger.
type Handler struct {
	snapshots SnapshotSource
	engine    Engine
	now       func() time.Time
	logger    *zap.Logger
}

// NewHandler builds a Handler.
func NewHandler(snapshots SnapshotSource, engine Engine, logger *zap.Logger) (*Handler, error) {
	if snapshots == nil {
		return nil, errors.New("snapshot source is required")
	}
	if engine == nil {
		return nil, errors.New("engine is required")
	}
	return &Handler{
		snapshots: snapshots,
		engine:    engine,
		now:       clock.UTCNow,
		logger:    logger,
	}, nil
}

// Routes registers all endpoints on the router.
func (h *Handler) Routes(r *mux.Router) {
	r.HandleFunc("/api/stats", h.Stats).Methods(http.MethodGet)
	r.HandleFunc("/api/force-update", h.ForceUpdate).Methods(http.MethodPost)
	r.HandleFunc("/healthz", h.Health).Methods(http.MethodGet)
	r.HandleFunc("/readyz", h.Ready).Methods(http.MethodGet)
}

// Stats serves the outbound data contract, or an explicit not-ready signal
// when no snapshot has been loaded yet. It never serves a partially merged
// aggregate.
func (h *Handler) Stats(w http.ResponseWriter, _ *http.Request) {
	snapshot, ok := h.snapshots.Snapshot()
	if !ok {
		writeJSON(w, http.StatusServiceUnavailable, map[string]string{"error": "snapshot not ready"})
		return
	}
	writeJSON(w, http.StatusOK, BuildStats(snapshot, h.now()))
}

// ForceUpdate triggers one update cycle. Concurrent triggers coalesce inside
// the engine, so this is safe to call repeatedly.
func (h *Handler) ForceUpdate(w http.ResponseWriter, r *http.Request) {
	if err := h.engine.ForceUpdate(r.Context()); err != nil {
		h.logger.Error("forced update cycle failed", zap.Error(err))
		writeJSON(w, http.StatusBadGateway, map[string]string{"error": err.Error()})
		return
	}
	writeJSON(w, http.StatusAccepted, map[string]string{"status": "update triggered"})
}

// Health reports process liveness.
func (h *Handler) Health(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
}

// Ready reports whether a snapshot is loaded and servable.
func (h *Handler) Ready(w http.ResponseWriter, _ *http.Request) {
	if _, ok := h.snapshots.Snapshot(); !ok {
		w.WriteHeader(http.StatusServiceUnavailable)
		return
	}
	w.WriteHeader(http.StatusOK)
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

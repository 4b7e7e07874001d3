package api

import (
	"context"
	"net/http"
	"time"

	"github.com/tokenagents/character-registry/internal/api/respond"
	"github.com/tokenagents/character-registry/internal/store"
)

const probeTimeout = 2 * time.Second

// HealthHandler reports liveness and store connectivity.
type HealthHandler struct {
	store store.Store
}

func NewHealthHandler(s store.Store) *HealthHandler { return &HealthHandler{store: s} }

// CheckHealth GET /api/health
// Always returns 200; the body reports healthy/unhealthy.
func (h *HealthHandler) CheckHealth(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), probeTimeout)
	defer cancel()

	status := "healthy"
	if err := h.store.HealthPing(ctx); err != nil {
		status = "unhealthy"
	}
	respond.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"status":    status,
		"timestamp": time.Now().Format(time.RFC3339),
	})
}

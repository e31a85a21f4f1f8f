package api

import (
	"context"
	"net/http"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
)

const probeTimeout = time.Second

// HealthHandler serves the liveness and readiness probes. Liveness
// only reports the process; readiness pings each backing store with a
// short per-probe timeout. Redis alone being down degrades readiness
// without failing it, since only sign-out depends on it.
type HealthHandler struct {
	pgPool  *pgxpool.Pool
	redis   *redis.Client
	env     string
	version string
}

func NewHealthHandler(pgPool *pgxpool.Pool, redis *redis.Client, env, version string) *HealthHandler {
	return &HealthHandler{
		pgPool:  pgPool,
		redis:   redis,
		env:     env,
		version: version,
	}
}

type HealthResponse struct {
	Status       string            `json:"status"`
	Version      string            `json:"version,omitempty"`
	Env          string            `json:"env,omitempty"`
	Dependencies map[string]string `json:"dependencies,omitempty"`
}

func (h *HealthHandler) Liveness(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, HealthResponse{
		Status:  "ok",
		Version: h.version,
		Env:     h.env,
	})
}

func (h *HealthHandler) Readiness(w http.ResponseWriter, r *http.Request) {
	deps := map[string]string{
		"postgres": probe(r.Context(), h.pgPool.Ping),
		"redis": probe(r.Context(), func(ctx context.Context) error {
			return h.redis.Ping(ctx).Err()
		}),
	}

	status := "ok"
	httpStatus := http.StatusOK
	switch {
	case deps["postgres"] == "down":
		status = "error"
		httpStatus = http.StatusServiceUnavailable
	case deps["redis"] == "down":
		status = "degraded"
	}

	writeJSON(w, httpStatus, HealthResponse{
		Status:       status,
		Version:      h.version,
		Env:          h.env,
		Dependencies: deps,
	})
}

func probe(ctx context.Context, ping func(context.Context) error) string {
	probeCtx, cancel := context.WithTimeout(ctx, probeTimeout)
	defer cancel()
	if err := ping(probeCtx); err != nil {
		return "down"
	}
	return "ok"
}

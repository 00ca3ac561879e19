// Package health serves the liveness, readiness and status probes.
package health

import (
	"context"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"golang.org/x/sync/errgroup"

	"coursecred/pkg/platform/httputil"
)

// Version is set at build time via ldflags.
var Version = "dev"

const (
	statusUp   = "up"
	statusDown = "down: "
)

// CheckFunc returns nil while the dependency it probes is usable.
type CheckFunc func(ctx context.Context) error

type check struct {
	name string
	fn   CheckFunc
}

type Handler struct {
	environment  string
	started      time.Time
	checkTimeout time.Duration

	mu     sync.RWMutex
	checks []check
}

func New(environment string) *Handler {
	return &Handler{
		environment:  environment,
		started:      time.Now(),
		checkTimeout: 2 * time.Second,
	}
}

// RegisterCheck adds a readiness dependency. Registering a name again
// replaces the earlier check.
func (h *Handler) RegisterCheck(name string, fn CheckFunc) {
	h.mu.Lock()
	defer h.mu.Unlock()
	for i := range h.checks {
		if h.checks[i].name == name {
			h.checks[i].fn = fn
			return
		}
	}
	h.checks = append(h.checks, check{name: name, fn: fn})
}

func (h *Handler) Register(r chi.Router) {
	r.Get("/health", h.HandleStatus)
	r.Get("/health/live", h.HandleLiveness)
	r.Get("/health/ready", h.HandleReadiness)
}

type LivenessResponse struct {
	Status string `json:"status"`
}

func (h *Handler) HandleLiveness(w http.ResponseWriter, _ *http.Request) {
	httputil.WriteJSON(w, http.StatusOK, LivenessResponse{Status: "alive"})
}

type ReadinessResponse struct {
	Status string            `json:"status"`
	Checks map[string]string `json:"checks,omitempty"`
}

// run probes every dependency in parallel under one shared deadline.
func (h *Handler) run(ctx context.Context) (map[string]string, bool) {
	h.mu.RLock()
	checks := append([]check(nil), h.checks...)
	h.mu.RUnlock()

	ctx, cancel := context.WithTimeout(ctx, h.checkTimeout)
	defer cancel()

	statuses := make([]string, len(checks))
	var g errgroup.Group
	for i, c := range checks {
		g.Go(func() error {
			statuses[i] = statusUp
			if err := c.fn(ctx); err != nil {
				statuses[i] = statusDown + err.Error()
			}
			return nil
		})
	}
	_ = g.Wait()

	results := make(map[string]string, len(checks))
	ready := true
	for i, c := range checks {
		results[c.name] = statuses[i]
		ready = ready && statuses[i] == statusUp
	}
	return results, ready
}

// HandleReadiness answers 503 while any registered dependency is down.
func (h *Handler) HandleReadiness(w http.ResponseWriter, r *http.Request) {
	results, ready := h.run(r.Context())
	if !ready {
		httputil.WriteJSON(w, http.StatusServiceUnavailable, ReadinessResponse{Status: "not_ready", Checks: results})
		return
	}
	httputil.WriteJSON(w, http.StatusOK, ReadinessResponse{Status: "ready", Checks: results})
}

type StatusResponse struct {
	Status        string `json:"status"`
	Version       string `json:"version"`
	Environment   string `json:"environment"`
	UptimeSeconds int64  `json:"uptime_seconds"`
	Timestamp     string `json:"timestamp"`
}

func (h *Handler) HandleStatus(w http.ResponseWriter, _ *http.Request) {
	now := time.Now()
	httputil.WriteJSON(w, http.StatusOK, StatusResponse{
		Status:        "healthy",
		Version:       Version,
		Environment:   h.environment,
		UptimeSeconds: int64(now.Sub(h.started).Seconds()),
		Timestamp:     now.UTC().Format(time.RFC3339),
	})
}

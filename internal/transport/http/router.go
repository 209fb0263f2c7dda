// Package httptransport assembles the HTTP surface of the licensing service.
package httptransport

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"licensing/internal/platform/middleware"
)

const DefaultRequestTimeout = 30 * time.Second

// Routes is implemented by every feature handler.
type Routes interface {
	Register(r chi.Router)
}

// AuthenticatedRoutes is implemented by handlers with routes behind a session.
type AuthenticatedRoutes interface {
	RegisterAuthenticated(r chi.Router)
}

// Deps carries everything the router mounts. Public and Authenticated may
// name the same handler.
type Deps struct {
	Logger         *zap.Logger
	Latency        middleware.LatencyObserver
	Metrics        http.Handler
	Sessions       middleware.SessionValidator
	SessionChecker middleware.SessionChecker
	RequestTimeout time.Duration

	Public        []Routes
	Authenticated []AuthenticatedRoutes
}

// NewRouter wires all endpoints with the shared middleware stack.
func NewRouter(d Deps) http.Handler {
	timeout := d.RequestTimeout
	if timeout <= 0 {
		timeout = DefaultRequestTimeout
	}

	r := chi.NewRouter()
	r.Use(middleware.Recovery(d.Logger))
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger(d.Logger, d.Latency))
	r.Use(middleware.Timeout(timeout))
	r.Use(middleware.ContentTypeJSON)

	if d.Metrics != nil {
		r.Method(http.MethodGet, "/metrics", d.Metrics)
	}
	for _, h := range d.Public {
		h.Register(r)
	}

	if len(d.Authenticated) > 0 {
		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireSession(d.Sessions, d.SessionChecker, d.Logger))
			for _, h := range d.Authenticated {
				h.RegisterAuthenticated(r)
			}
		})
	}

	return r
}

package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"go.uber.org/zap"

	"github.com/neuroautomation/neuro-backend/internal/api/middleware"
	"github.com/neuroautomation/neuro-backend/internal/core"
)

const (
	ServiceMessage = "🚀 Neuro Automation Backend is LIVE!"
	ServiceVersion = "1.0.0"
)

// StateReader exposes the current database connectivity.
type StateReader interface {
	Load() core.ConnectivityState
}

type API struct {
	state          StateReader
	allowedOrigins []string
	log            *zap.Logger
	now            func() time.Time
}

func NewAPI(state StateReader, cfg Config, log *zap.Logger) *API {
	return &API{
		state:          state,
		allowedOrigins: cfg.AllowedOrigins,
		log:            log,
		now:            time.Now,
	}
}

func (a *API) Router() chi.Router {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.Metrics)
	r.Use(middleware.Recoverer(a.log))
	r.Use(middleware.Logger)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:     a.allowedOrigins,
		AllowedMethods:     []string{"GET", "HEAD", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:     []string{"*"},
		ExposedHeaders:     []string{middleware.RequestIDHeader},
		MaxAge:             300,
		OptionsPassthrough: true,
	}))
	r.Use(middleware.NoContentOptions)
	r.Use(chiMiddleware.StripSlashes)
	r.Use(chiMiddleware.GetHead)

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		WriteError(w, core.NewAppError(core.ErrNotFound, "route not found"))
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		WriteError(w, core.NewAppError(core.ErrMethodNotAllowed, "method not allowed"))
	})

	r.Get("/", a.RootHandler)

	// Health endpoints
	r.Get("/api/health", a.StatusHandler)
	r.Get("/health", a.HealthHandler)

	return r
}

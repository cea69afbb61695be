package httpapi

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"go.uber.org/zap"

	"github.com/hamed0406/pinglight/internal/config"
	apimw "github.com/hamed0406/pinglight/internal/httpapi/middleware"
	"github.com/hamed0406/pinglight/internal/repo"
)

// Configurer is the part of the poller the API drives.
type Configurer interface {
	Config() config.Config
	ApplyConfig(ctx context.Context, cfg config.Config) bool
}

type Server struct {
	Logger  *zap.Logger
	Signals repo.SignalStore
	Poller  Configurer
}

func NewServer(l *zap.Logger, signals repo.SignalStore, p Configurer) *Server {
	return &Server{Logger: l, Signals: signals, Poller: p}
}

// Router builds the API. allowedOrigins empty means any origin.
func (s *Server) Router(keys apimw.Keys, allowedOrigins []string, reqPerMin, burst int) http.Handler {
	r := chi.NewRouter()
	if len(allowedOrigins) == 0 {
		r.Use(cors.AllowAll().Handler)
	} else {
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins: allowedOrigins,
			AllowedMethods: []string{http.MethodGet, http.MethodPut, http.MethodOptions},
			AllowedHeaders: []string{"Authorization", "Content-Type", "X-API-Key"},
		}))
	}

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	r.Group(func(r chi.Router) {
		r.Use(apimw.RateLimit(reqPerMin, burst))
		r.Use(apimw.RequireAny(keys))
		r.Get("/api/signal", s.handleLatest)
		r.Get("/api/signal/stream", s.handleStream)
		r.Get("/api/config", s.handleGetConfig)
	})

	r.Group(func(r chi.Router) {
		r.Use(apimw.RateLimit(reqPerMin, burst))
		r.Use(apimw.RequireAdmin(keys))
		r.Put("/api/config", s.handlePutConfig)
	})

	return r
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

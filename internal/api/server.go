package api

import (
	"context"
	"crypto/tls"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/org/floodgate/internal/auth"
	"github.com/org/floodgate/internal/fsguard"
	"github.com/org/floodgate/internal/history"
	"github.com/org/floodgate/internal/notify"
	"github.com/org/floodgate/internal/settings"
	"github.com/org/floodgate/internal/storage"
	"github.com/org/floodgate/internal/torrents"
	"github.com/rs/zerolog/log"
)

// Content routes share one fixed-window budget per client key.
const (
	contentRateLimit  = 100
	contentRateWindow = 5 * time.Minute
)

// Config holds server configuration.
type Config struct {
	ListenAddr  string
	TLSCertFile string
	TLSKeyFile  string
	SessionTTL  time.Duration
}

// Server is the API server. Every collaborator is a required
// constructor dependency: a missing one is a startup wiring error, not
// a per-request no-op.
type Server struct {
	store      storage.Backend
	signer     *auth.Signer
	capability *auth.CapabilityValidator
	users      *auth.UserService
	guard      *fsguard.Guard
	client     torrents.ClientAdapter
	settings   *settings.Service
	notify     *notify.Service
	history    *history.Service
	limiter    *rateLimiter
	cfg        Config
	httpSrv    *http.Server
}

// NewServer creates a fully wired Server.
func NewServer(store storage.Backend, signer *auth.Signer, guard *fsguard.Guard, client torrents.ClientAdapter, cfg Config) *Server {
	return &Server{
		store:      store,
		signer:     signer,
		capability: auth.NewCapabilityValidator(signer),
		users:      auth.NewUserService(store),
		guard:      guard,
		client:     client,
		settings:   settings.NewService(store),
		notify:     notify.NewService(store),
		history:    history.NewService(store),
		limiter:    newRateLimiter(contentRateLimit, contentRateWindow),
		cfg:        cfg,
	}
}

// BuildRouter wires up all routes and returns a chi router. Route
// classification is fixed here, at startup: public, content
// (bypass-eligible) and protected groups each get their own middleware
// chain.
func (s *Server) BuildRouter() http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(chimiddleware.Recoverer)
	r.Use(requestIDMiddleware)
	r.Use(metricsMiddleware)
	r.Use(accessLogMiddleware)

	// Prometheus metrics (unauthenticated)
	r.Handle("/metrics", MetricsHandler())

	// Public routes (no auth required)
	r.Group(func(r chi.Router) {
		r.Get("/health", s.HealthHandler)
		r.Post("/api/auth/authenticate", s.AuthenticateHandler)
		r.Post("/api/auth/register", s.RegisterHandler)
		r.Get("/api/auth/logout", s.LogoutHandler)
	})

	// Content routes: rate limit, then the capability short circuit,
	// then the same mandatory session verification as everything else.
	r.Group(func(r chi.Router) {
		r.Use(s.limiter.middleware)
		r.Use(capabilityMiddleware(s.capability))
		r.Use(sessionMiddleware(s.signer))

		r.Get("/api/torrents/{hash}/contents/{indices}/data", s.ContentDataHandler)
		r.Get("/api/torrents/{hash}/contents/{indices}/subtitles", s.ContentSubtitlesHandler)
	})

	// Protected routes (the default)
	r.Group(func(r chi.Router) {
		r.Use(sessionMiddleware(s.signer))

		r.Get("/api/auth/verify", s.VerifyHandler)
		r.Get("/api/directory-list", s.DirectoryListHandler)
		r.Get("/api/settings", s.SettingsGetHandler)
		r.Patch("/api/settings", s.SettingsSetHandler)
		r.Get("/api/notifications", s.NotificationsHandler)
		r.Delete("/api/notifications", s.NotificationsClearHandler)
		r.Get("/api/history", s.HistoryHandler)
	})

	return r
}

// HealthHandler handles GET /health
func (s *Server) HealthHandler(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"status": "ok"})
}

// Start begins listening on the configured address.
func (s *Server) Start() error {
	handler := s.BuildRouter()

	s.httpSrv = &http.Server{
		Addr:         s.cfg.ListenAddr,
		Handler:      handler,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	if s.cfg.TLSCertFile != "" && s.cfg.TLSKeyFile != "" {
		tlsCfg := &tls.Config{
			MinVersion: tls.VersionTLS12,
			CurvePreferences: []tls.CurveID{
				tls.CurveP256,
				tls.X25519,
			},
		}
		s.httpSrv.TLSConfig = tlsCfg
		log.Info().Str("addr", s.cfg.ListenAddr).Msg("starting HTTPS server")
		return s.httpSrv.ListenAndServeTLS(s.cfg.TLSCertFile, s.cfg.TLSKeyFile)
	}

	log.Info().Str("addr", s.cfg.ListenAddr).Msg("starting HTTP server")
	return s.httpSrv.ListenAndServe()
}

// Shutdown gracefully stops the server, releasing in-flight requests.
func (s *Server) Shutdown(ctx context.Context) error {
	if s.httpSrv == nil {
		return nil
	}
	return s.httpSrv.Shutdown(ctx)
}

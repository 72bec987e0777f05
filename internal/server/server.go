package server

import (
	"context"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/alexedwards/scs/v2"
	"gorm.io/gorm"

	"brewkit/internal/app"
	"brewkit/internal/handlers"
	applog "brewkit/internal/log"
)

const (
	defaultSessionLifetime = 12 * time.Hour
	defaultCookieName      = "brewkit_session"
	readHeaderTimeout      = 5 * time.Second
	shutdownTimeout        = 5 * time.Second
)

// Config captures the runtime configuration for the HTTP server.
type Config struct {
	Addr     string
	Session  SessionConfig
	Database *gorm.DB
	// App supplies the default display options and the log destination.
	// Without one the handlers render with built-in defaults.
	App *app.App
}

// SessionConfig controls the cookie session that holds each visitor's
// display preferences.
type SessionConfig struct {
	Lifetime     time.Duration
	CookieName   string
	CookieDomain string
	CookieSecure bool
}

// Server serves the hop API and the hop sheet.
type Server struct {
	config     Config
	logger     *slog.Logger
	httpServer *http.Server
}

// New builds a Server, wiring the session store, database and application
// context into the handlers.
func New(cfg Config) (*Server, error) {
	logger := applog.Logger()
	if cfg.App != nil {
		logger = cfg.App.Logger()
	}
	ctx := context.Background()

	sessionCfg := withSessionDefaults(ctx, logger, cfg.Session)
	sessionManager := newSessionManager(sessionCfg)
	logger.DebugContext(ctx, "session manager configured",
		"cookieName", sessionCfg.CookieName,
		"cookieDomain", sessionCfg.CookieDomain,
		"cookieSecure", sessionCfg.CookieSecure,
		"lifetime", sessionCfg.Lifetime.String(),
	)

	handlers.Configure(sessionManager, cfg.Database, cfg.App)
	logApplication(ctx, logger, cfg)

	return &Server{
		config: cfg,
		logger: logger,
		httpServer: &http.Server{
			Addr:              cfg.Addr,
			Handler:           sessionManager.LoadAndSave(newRouter()),
			ReadHeaderTimeout: readHeaderTimeout,
		},
	}, nil
}

func withSessionDefaults(ctx context.Context, logger *slog.Logger, cfg SessionConfig) SessionConfig {
	if cfg.Lifetime <= 0 {
		logger.DebugContext(ctx, "session lifetime not provided, using default")
		cfg.Lifetime = defaultSessionLifetime
	}
	if strings.TrimSpace(cfg.CookieName) == "" {
		logger.DebugContext(ctx, "session cookie name not provided, using default")
		cfg.CookieName = defaultCookieName
	}
	return cfg
}

func newSessionManager(cfg SessionConfig) *scs.SessionManager {
	sm := scs.New()
	sm.Lifetime = cfg.Lifetime
	sm.Cookie.Name = cfg.CookieName
	sm.Cookie.Domain = cfg.CookieDomain
	sm.Cookie.HttpOnly = true
	sm.Cookie.Persist = true
	sm.Cookie.SameSite = http.SameSiteLaxMode
	sm.Cookie.Secure = cfg.CookieSecure
	return sm
}

// logApplication records what the handlers will render with.
func logApplication(ctx context.Context, logger *slog.Logger, cfg Config) {
	if cfg.App == nil {
		logger.WarnContext(ctx, "no application context, hop sheet uses default display options")
		return
	}
	dirs := cfg.App.Dirs()
	opts := cfg.App.Options()
	logger.InfoContext(ctx, "server configured",
		"addr", cfg.Addr,
		"database", cfg.Database != nil,
		"language", cfg.App.Language(),
		"weight_system", opts.WeightSystem,
		"temperature_scale", opts.TempScale,
		"user_data_dir", dirs.UserDataDir,
	)
}

// Start serves HTTP traffic until Stop is called.
func (s *Server) Start() error {
	s.logger.Info("server listening", "addr", s.httpServer.Addr)
	return s.httpServer.ListenAndServe()
}

// Stop gracefully shuts down the HTTP server.
func (s *Server) Stop() error {
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	s.logger.DebugContext(ctx, "server initiating graceful shutdown")
	return s.httpServer.Shutdown(ctx)
}

// Handler exposes the configured HTTP handler, enabling integration tests.
func (s *Server) Handler() http.Handler {
	return s.httpServer.Handler
}

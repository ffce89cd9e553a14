package http

import (
	"context"
	"embed"
	"fmt"
	"io/fs"
	"net"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog/log"

	sessioncontext "watchlist/frontend/shared/context"
	"watchlist/frontend/watchlist"
	"watchlist/infrastructure/cache"
	sessioncookie "watchlist/infrastructure/session"
)

//go:embed assets/*
var assets embed.FS

var ShutdownTimeout = 2 * time.Second

// Server bundles dependencies and route wiring.
type Server struct {
	Addr   string
	ln     net.Listener
	server *http.Server
	router *chi.Mux

	Sessions *cache.PageSessionCache[*watchlist.PageSession]
	Quotes   watchlist.QuoteFetcher
	Renderer watchlist.Renderer
	Options  watchlist.Options
}

// NewServer creates a new http server.
func NewServer(addr string, quotes watchlist.QuoteFetcher, sessions *cache.PageSessionCache[*watchlist.PageSession], opts watchlist.Options) *Server {
	s := &Server{
		Addr:     addr,
		router:   chi.NewRouter(),
		Sessions: sessions,
		Quotes:   quotes,
		Renderer: watchlist.HTMLRenderer{},
		Options:  opts,
		server: &http.Server{
			MaxHeaderBytes:    1 << 20,
			ReadHeaderTimeout: 10 * time.Second,
		},
	}
	s.Sessions.OnEvict(func(ps *watchlist.PageSession) {
		ps.Close()
		log.Debug().Str("session_id", ps.ID).Msg("page session evicted")
	})

	// Secure headers first.
	s.router.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Referrer-Policy", "strict-origin-when-cross-origin")
			w.Header().Set("X-Content-Type-Options", "nosniff")
			w.Header().Set("X-Frame-Options", "DENY")
			next.ServeHTTP(w, r)
		})
	})

	s.router.Use(middleware.RequestID)
	s.router.Use(RequestLogger(LoggingConfig{SkipPaths: []string{"/health"}}))
	s.router.Use(middleware.Recoverer)
	s.router.Use(middleware.Compress(5))
	s.router.Use(s.CSRFMiddleware)

	s.router.Get("/", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, watchlist.PagePath, http.StatusSeeOther)
	})

	s.router.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	// Serve assets from embedded FS.
	var assetsFS fs.FS = assets
	if sub, err := fs.Sub(assets, "assets"); err == nil {
		assetsFS = sub
	} else {
		log.Error().Err(err).Msg("assets subfs init failed; serving fallback fs")
	}
	s.router.Handle("/assets/*", http.StripPrefix("/assets/", http.FileServer(http.FS(assetsFS))))

	s.router.Route(watchlist.PagePath, func(r chi.Router) {
		r.Use(s.PageSessionMiddleware)
		s.RegisterWatchlistRoutes(r)
	})

	s.server.Handler = s.router
	return s
}

// PageSessionMiddleware resolves the page session from its cookie, starting an empty one when needed.
func (s *Server) PageSessionMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if c, err := r.Cookie(sessioncookie.CookieName); err == nil && sessioncookie.ValidToken(c.Value) {
			if ps, ok := s.Sessions.FindSessionBySessionToken(c.Value); ok {
				next.ServeHTTP(w, r.WithContext(sessioncontext.NewContextWithSession(r.Context(), ps)))
				return
			}
		}

		token := sessioncookie.NewToken()
		ps := watchlist.NewPageSession(token, s.Quotes, s.Options)
		s.Sessions.AddSession(token, ps)
		http.SetCookie(w, sessioncookie.SessionCookie(token))
		log.Debug().
			Str("session_id", token).
			Str("request_id", middleware.GetReqID(r.Context())).
			Msg("page session started")

		next.ServeHTTP(w, r.WithContext(sessioncontext.NewContextWithSession(r.Context(), ps)))
	})
}

// Start starts the HTTP server.
func (s *Server) Start() error {
	var err error
	if s.ln, err = net.Listen("tcp", s.Addr); err != nil {
		return err
	}
	go func() {
		if err := s.server.Serve(s.ln); err != nil && err != http.ErrServerClosed {
			log.Error().Err(err).Msg("http server stopped")
		}
	}()
	return nil
}

// Stop gracefully shuts down the server.
func (s *Server) Stop() error {
	if s.ln == nil {
		return fmt.Errorf("HTTP server has not been started or is already stopped")
	}
	ctx, cancel := context.WithTimeout(context.Background(), ShutdownTimeout)
	defer cancel()
	if err := s.server.Shutdown(ctx); err != nil {
		return fmt.Errorf("failed to shutdown HTTP server: %v", err)
	}
	s.ln = nil
	return nil
}

// ListenAddr returns the bound address once started.
func (s *Server) ListenAddr() string {
	if s.ln == nil {
		return s.Addr
	}
	return s.ln.Addr().String()
}

// Package site serves the lesson pages and a JSON API over the same stores
// the terminal UI uses.
package site

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"go.uber.org/zap"

	"github.com/weblearn/weblearn/internal/assistant"
	"github.com/weblearn/weblearn/internal/bookmarks"
	"github.com/weblearn/weblearn/internal/config"
	"github.com/weblearn/weblearn/internal/progress"
	"github.com/weblearn/weblearn/internal/quizbank"
	"github.com/weblearn/weblearn/internal/search"
	"github.com/weblearn/weblearn/internal/store"
)

// Services are the backends behind the routes. Nil services disable the
// routes that need them with 503.
type Services struct {
	Bank      *quizbank.Bank
	Tracker   *progress.Tracker
	Assistant *assistant.Assistant
	Search    *search.Index
	Shelf     *bookmarks.Shelf
	Prefs     store.KV
	Log       *zap.Logger
}

// Server is the WebLearn HTTP server.
type Server struct {
	cfg        config.ServerConfig
	svc        Services
	log        *zap.Logger
	metrics    *metrics
	router     chi.Router
	httpServer *http.Server
	now        func() time.Time
}

// New creates a server. Routes are registered immediately; Start listens.
func New(cfg config.ServerConfig, svc Services) *Server {
	if svc.Log == nil {
		svc.Log = zap.NewNop()
	}
	if svc.Search == nil {
		svc.Search = search.Default()
	}
	if svc.Bank == nil {
		svc.Bank = quizbank.Default()
	}
	s := &Server{
		cfg:     cfg,
		svc:     svc,
		log:     svc.Log.Named("site"),
		metrics: newMetrics(),
		now:     time.Now,
	}
	s.router = s.buildRouter()
	return s
}

func (s *Server) buildRouter() chi.Router {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(s.requestLogger)
	r.Use(middleware.Recoverer)
	r.Use(s.metrics.middleware)

	origins := s.cfg.AllowedOrigins
	if len(origins) == 0 {
		origins = []string{"http://localhost:*", "http://127.0.0.1:*"}
	}
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
		MaxAge:         300,
	}))

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	r.Handle("/metrics", s.metrics.handler())

	s.registerPages(r)
	s.registerAPI(r)
	return r
}

// Handler returns the root handler, for tests and embedding.
func (s *Server) Handler() http.Handler { return s.router }

// Start listens on the configured address until Shutdown.
func (s *Server) Start() error {
	s.httpServer = &http.Server{
		Addr:              s.cfg.Addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       s.cfg.ReadTimeout,
		WriteTimeout:      s.cfg.WriteTimeout,
		IdleTimeout:       120 * time.Second,
	}

	s.log.Info("listening", zap.String("addr", s.cfg.Addr))
	err := s.httpServer.ListenAndServe()
	if errors.Is(err, http.ErrServerClosed) {
		return nil
	}
	return err
}

// Shutdown gracefully stops the server.
func (s *Server) Shutdown(ctx context.Context) error {
	if s.httpServer != nil {
		return s.httpServer.Shutdown(ctx)
	}
	return nil
}

func (s *Server) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		s.log.Debug("request",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Int("status", ww.Status()),
			zap.Duration("duration", time.Since(start)),
			zap.String("request_id", middleware.GetReqID(r.Context())),
		)
	})
}

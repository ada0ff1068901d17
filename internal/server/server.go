// Package server serves the documentation browser over HTTP: the page shell,
// one websocket session per open tab, and a small JSON API.
package server

import (
	"context"
	"fmt"
	"html/template"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"go.uber.org/multierr"
	"go.uber.org/zap"

	"github.com/ziadkadry99/docview/internal/fetch"
	"github.com/ziadkadry99/docview/internal/markdown"
	"github.com/ziadkadry99/docview/internal/toc"
	"github.com/ziadkadry99/docview/internal/viewer"
)

// Config holds server configuration.
type Config struct {
	Port        int
	TOCPath     string
	NarrowWidth int
	Title       string
	AllowAll    bool // allow all CORS origins (dev mode)
}

// Server is the docview HTTP server.
type Server struct {
	cfg         Config
	fetcher     fetch.Fetcher
	converter   markdown.Converter
	highlighter markdown.Highlighter
	logger      *zap.Logger
	page        *template.Template
	router      chi.Router
	httpServer  *http.Server

	// sessions is canceled on Shutdown; hijacked websocket connections are
	// not tracked by http.Server.
	sessions       context.Context
	cancelSessions context.CancelFunc
	wg             sync.WaitGroup
}

// New creates a server that reads documents through fetcher.
func New(cfg Config, fetcher fetch.Fetcher, converter markdown.Converter, highlighter markdown.Highlighter, logger *zap.Logger) *Server {
	if cfg.TOCPath == "" {
		cfg.TOCPath = toc.DefaultPath
	}
	if cfg.NarrowWidth <= 0 {
		cfg.NarrowWidth = viewer.DefaultNarrowWidth
	}
	if cfg.Title == "" {
		cfg.Title = "Documentation"
	}
	if converter == nil {
		converter = markdown.NewConverter(markdown.ConverterOptions{})
	}
	if highlighter == nil {
		highlighter = markdown.NopHighlighter{}
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	s := &Server{
		cfg:         cfg,
		fetcher:     fetcher,
		converter:   converter,
		highlighter: highlighter,
		logger:      logger.Named("server"),
		page:        pageTemplate,
	}
	s.sessions, s.cancelSessions = context.WithCancel(context.Background())
	s.router = s.buildRouter()
	return s
}

// buildRouter creates and configures the chi router with all routes.
func (s *Server) buildRouter() chi.Router {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(requestLogger(s.logger))
	r.Use(middleware.Recoverer)

	corsOpts := cors.Options{
		AllowedOrigins:   []string{"http://localhost:*", "http://127.0.0.1:*"},
		AllowedMethods:   []string{"GET", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           300,
	}
	if s.cfg.AllowAll {
		corsOpts.AllowedOrigins = []string{"*"}
	}
	r.Use(cors.Handler(corsOpts))

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	// Long-lived; must stay outside the timeout group.
	r.Get("/ws", s.handleWebSocket)

	r.Group(func(r chi.Router) {
		r.Use(middleware.Timeout(60 * time.Second))

		r.Get("/", s.handleIndex)
		r.Route("/api", func(r chi.Router) {
			r.Get("/toc", s.handleTOC)
			r.Get("/search", s.handleSearch)
			r.Get("/doc", s.handleDoc)
		})

		if df, ok := fetch.AsDir(s.fetcher); ok {
			r.Handle("/raw/*", http.StripPrefix("/raw/", http.FileServer(http.FS(df.FS()))))
		}
	})

	return r
}

// Router returns the chi router.
func (s *Server) Router() chi.Router { return s.router }

// Start begins listening on the configured port. It returns
// http.ErrServerClosed after Shutdown.
func (s *Server) Start() error {
	addr := fmt.Sprintf(":%d", s.cfg.Port)
	s.httpServer = &http.Server{
		Addr:              addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	s.logger.Info("docview listening", zap.String("addr", addr))
	return s.httpServer.ListenAndServe()
}

// Shutdown stops accepting requests, closes live sessions and waits for
// in-flight requests to finish.
func (s *Server) Shutdown(ctx context.Context) error {
	s.cancelSessions()

	var err error
	if s.httpServer != nil {
		err = s.httpServer.Shutdown(ctx)
	}

	done := make(chan struct{})
	go func() {
		s.wg.Wait()
		close(done)
	}()
	select {
	case <-done:
	case <-ctx.Done():
		err = multierr.Append(err, ctx.Err())
	}
	return err
}

// requestLogger logs one line per request through zap.
func requestLogger(logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			defer func() {
				logger.Debug("request",
					zap.String("method", r.Method),
					zap.String("path", r.URL.Path),
					zap.Int("status", ww.Status()),
					zap.Int("bytes", ww.BytesWritten()),
					zap.Duration("duration", time.Since(start)),
					zap.String("request_id", middleware.GetReqID(r.Context())),
				)
			}()
			next.ServeHTTP(ww, r)
		})
	}
}

// Package server provides the importable HTTP layer of the library catalog
// application. E2E and handler tests can start/stop it programmatically
// without going through main().
package server

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/httplog"
	"go.uber.org/zap"

	"libshelf/pkg/catalog"
	"libshelf/pkg/catalog/sqlite"
)

// Config holds server configuration options, populated from the environment.
type Config struct {
	Addr         string        `env:"LIBSHELF_ADDR" envDefault:":5000"`
	DBPath       string        `env:"LIBSHELF_DB" envDefault:"library.db"`
	ReadTimeout  time.Duration `env:"LIBSHELF_READ_TIMEOUT" envDefault:"30s"`
	WriteTimeout time.Duration `env:"LIBSHELF_WRITE_TIMEOUT" envDefault:"30s"`
}

// ConfigFromEnv parses Config from environment variables.
func ConfigFromEnv() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}
	return cfg, nil
}

// DefaultConfig returns a configuration suitable for testing.
// Uses ":0" to bind to a random available port and an in-place test database.
func DefaultConfig() Config {
	return Config{
		Addr:         ":0",
		DBPath:       "library.db",
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
	}
}

// Server is the library catalog HTTP server.
type Server struct {
	httpServer *http.Server
	store      *sqlite.Store
	log        *zap.Logger
	listener   net.Listener
	addr       string
	mu         sync.Mutex
	running    bool
}

// NewServer opens the catalog database and wires up the HTTP routes.
// The server is not started until Start() is called.
func NewServer(cfg Config, log *zap.Logger) (*Server, error) {
	if log == nil {
		log = zap.NewNop()
	}

	store, err := sqlite.Open(cfg.DBPath)
	if err != nil {
		return nil, fmt.Errorf("open catalog store: %w", err)
	}
	log.Info("catalog store opened", zap.String("path", cfg.DBPath))

	h := &handlers{
		svc: catalog.NewService(store),
		log: log,
	}

	r := chi.NewRouter()
	r.Use(httplog.RequestLogger(httplog.NewLogger("libraryd", httplog.Options{
		Concise: true,
	})))
	r.Get("/", h.home)
	r.Get("/catalog", h.showCatalog)
	r.Get("/add_book", h.showAddBookForm)
	r.Post("/add_book", h.addBook)
	r.Post("/borrow/{bookID}", h.borrowBook)

	httpServer := &http.Server{
		Addr:         cfg.Addr,
		Handler:      r,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}

	return &Server{
		httpServer: httpServer,
		store:      store,
		log:        log,
	}, nil
}

// Start begins listening and serving HTTP requests.
// Returns the actual address the server is listening on (useful when port is 0).
// This method is non-blocking - the server runs in a goroutine.
func (s *Server) Start() (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.running {
		return s.addr, nil
	}

	ln, err := net.Listen("tcp", s.httpServer.Addr)
	if err != nil {
		return "", fmt.Errorf("failed to listen: %w", err)
	}

	s.listener = ln
	s.addr = ln.Addr().String()
	s.running = true

	go func() {
		if err := s.httpServer.Serve(ln); err != nil && err != http.ErrServerClosed {
			s.log.Error("serve error", zap.Error(err))
		}
	}()

	s.log.Info("listening", zap.String("addr", s.addr))
	return s.addr, nil
}

// Shutdown gracefully shuts down the server and closes the store.
func (s *Server) Shutdown(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.running {
		return nil
	}
	s.running = false

	err := s.httpServer.Shutdown(ctx)
	if closeErr := s.store.Close(); err == nil {
		err = closeErr
	}
	return err
}

// Addr returns the address the server is listening on.
// Returns empty string if server is not running.
func (s *Server) Addr() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.addr
}

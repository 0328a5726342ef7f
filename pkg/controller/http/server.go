package http

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/m-mizutani/shipnote/pkg/controller/hook"
)

// config holds internal HTTP server configuration
type config struct {
	addr         string
	hookSecret   string
	maxBodyBytes int64
}

// Option is a functional option for Server configuration
type Option func(*config)

// WithAddr sets the server address
func WithAddr(addr string) Option {
	return func(c *config) {
		c.addr = addr
	}
}

// WithHookSecret sets the secret used to verify hook request signatures
func WithHookSecret(secret string) Option {
	return func(c *config) {
		c.hookSecret = secret
	}
}

// WithMaxBodyBytes limits the size of a release context
func WithMaxBodyBytes(n int64) Option {
	return func(c *config) {
		c.maxBodyBytes = n
	}
}

// Server represents the HTTP server
type Server struct {
	*http.Server
	hooks *HookHandler
}

// Shutdown stops accepting requests, then waits for success hooks that were
// already accepted
func (s *Server) Shutdown(ctx context.Context) error {
	if err := s.Server.Shutdown(ctx); err != nil {
		return err
	}
	return s.hooks.Wait(ctx)
}

// NewServer creates a new HTTP server
func NewServer(
	ctx context.Context,
	decoder *hook.Decoder,
	processor *hook.Processor,
	opts ...Option,
) (*Server, error) {
	cfg := &config{
		addr:         "localhost:8080",
		maxBodyBytes: 10 << 20,
	}
	for _, opt := range opts {
		opt(cfg)
	}

	router := chi.NewRouter()

	router.Use(middleware.RequestID)
	router.Use(middleware.RealIP)
	router.Use(LoggingMiddleware(ctx))
	router.Use(middleware.Recoverer)

	router.Get("/health", handleHealth(time.Now()))

	hookHandler := NewHookHandler(cfg.hookSecret, decoder, processor, cfg.maxBodyBytes)
	router.Post("/hooks/success", hookHandler.Handle)

	return &Server{
		Server: &http.Server{
			Addr:              cfg.addr,
			Handler:           router,
			ReadHeaderTimeout: 15 * time.Second,
		},
		hooks: hookHandler,
	}, nil
}

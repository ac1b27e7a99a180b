package http

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"go.uber.org/zap"
)

// ServerConfig configures the HTTP server.
type ServerConfig struct {
	Port           int
	Timeout        time.Duration
	MaxRequestSize int64
	AllowedOrigins []string
}

// DefaultServerConfig returns sane defaults.
func DefaultServerConfig() ServerConfig {
	return ServerConfig{
		Port:           8000,
		Timeout:        30 * time.Second,
		MaxRequestSize: 1 << 20,
		AllowedOrigins: []string{"*"},
	}
}

// Server is the HTTP front of the prediction service.
type Server struct {
	server *http.Server
	logger *zap.Logger
}

// NewServer builds the server with the middleware chain around the API routes.
func NewServer(config ServerConfig, api *API, logger *zap.Logger) *Server {
	if config.Port == 0 {
		config.Port = DefaultServerConfig().Port
	}
	if config.Timeout == 0 {
		config.Timeout = DefaultServerConfig().Timeout
	}
	if config.MaxRequestSize == 0 {
		config.MaxRequestSize = DefaultServerConfig().MaxRequestSize
	}
	if len(config.AllowedOrigins) == 0 {
		config.AllowedOrigins = DefaultServerConfig().AllowedOrigins
	}

	mux := http.NewServeMux()
	api.Register(mux)

	chain := Chain(
		RecoveryMiddleware(logger),
		LoggerMiddleware(logger),
		SecurityHeadersMiddleware,
		CORSMiddleware(config.AllowedOrigins),
		TimeoutMiddleware(config.Timeout),
		RequestSizeMiddleware(config.MaxRequestSize),
	)

	return &Server{
		server: &http.Server{
			Addr:         fmt.Sprintf(":%d", config.Port),
			Handler:      chain(mux),
			ReadTimeout:  config.Timeout,
			WriteTimeout: config.Timeout,
			IdleTimeout:  120 * time.Second,
		},
		logger: logger,
	}
}

// Start serves until Stop or a listener error.
func (s *Server) Start() error {
	s.logger.Info("starting HTTP server", zap.String("addr", s.server.Addr))
	if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("server failed: %w", err)
	}
	return nil
}

// Stop shuts the server down gracefully.
func (s *Server) Stop() error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	s.logger.Info("shutting down HTTP server")
	if err := s.server.Shutdown(ctx); err != nil {
		return fmt.Errorf("server forced to shutdown: %w", err)
	}
	return nil
}

// Addr returns the listen address.
func (s *Server) Addr() string {
	return s.server.Addr
}

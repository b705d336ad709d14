package server

import (
	"context"
	"errors"
	"log/slog"

	"github.com/viant/jsonrpc/transport"
	"github.com/viant/mcp-protocol/schema"
	mcptransport "github.com/viant/mcpx/transport"
)

// ErrNoHandler is returned when a transport needs an MCP handler factory and none was configured.
var ErrNoHandler = errors.New("server: no handler factory specified")

// NewHandler creates the jsonrpc handler serving one transport connection.
type NewHandler func(ctx context.Context, transport transport.Transport) transport.Handler

// Server exposes a host supplied MCP handler over stdio or HTTP.
type Server struct {
	info       schema.Implementation
	newHandler NewHandler
	descriptor *mcptransport.Descriptor
	logger     *slog.Logger

	stdioServer
	httpServer
}

// NewHandler creates a new handler instance
func (s *Server) NewHandler(ctx context.Context, transport transport.Transport) transport.Handler {
	return s.newHandler(ctx, transport)
}

// Info returns the server implementation info.
func (s *Server) Info() schema.Implementation {
	return s.info
}

// Transport returns the configured transport descriptor.
func (s *Server) Transport() *mcptransport.Descriptor {
	return s.descriptor
}

// ListenAndServe serves the configured transport until it fails.
func (s *Server) ListenAndServe(ctx context.Context) error {
	if s.descriptor.IsHTTP() {
		srv := s.HTTP(ctx, s.descriptor.Addr())
		s.logger.Info("starting http server", "name", s.info.Name, "version", s.info.Version, "addr", srv.Addr)
		return srv.ListenAndServe()
	}
	srv, err := s.Stdio(ctx)
	if err != nil {
		return err
	}
	s.logger.Info("starting stdio server", "name", s.info.Name, "version", s.info.Version)
	return srv.ListenAndServe()
}

// New creates a new Server instance
func New(options ...Option) (*Server, error) {
	s := &Server{
		info: schema.Implementation{
			Name:    "MCP",
			Version: "0.1",
		},
		descriptor: &mcptransport.Descriptor{Type: mcptransport.Stdio},
		logger:     slog.Default(),
	}
	for _, option := range options {
		if err := option(s); err != nil {
			return nil, err
		}
	}
	if err := s.descriptor.Validate(); err != nil {
		return nil, err
	}
	if s.descriptor.IsStdio() && s.newHandler == nil {
		return nil, ErrNoHandler
	}
	return s, nil
}

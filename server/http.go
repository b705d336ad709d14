package server

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/viant/jsonrpc/transport/server/http/sse"
	"github.com/viant/jsonrpc/transport/server/http/streamable"
	"github.com/viant/mcpx/storage"
)

type httpServer struct {
	sseHandler         *sse.Handler
	streamingHandler   *streamable.Handler
	useStreamableHTTP  bool
	addr               string
	customHTTPHandlers map[string]http.Handler
	sseURI             string
	sseMessageURI      string
	streamableURI      string
	healthURI          string
	rootRedirect       bool

	files       *storage.Service
	filesPrefix string
	fileOptions []storage.HandlerOption
	corsConfig  *Cors
	corsHandler Middleware
	middlewares []Middleware
}

// UseStreamableHTTP sets whether to use streamableHTTP or SSE for the HTTP handler.
func (s *Server) UseStreamableHTTP(flag bool) {
	s.useStreamableHTTP = flag
}

// HTTP builds the HTTP server: MCP transports (when a handler factory is set),
// the stored-file endpoint, custom handlers and a health route.
func (s *Server) HTTP(_ context.Context, addr string) *http.Server {
	if addr == "" {
		addr = s.addr
	}
	if addr == "" {
		// Default bind only to localhost to reduce DNS rebinding risk
		addr = "127.0.0.1:5000"
	}
	return &http.Server{
		Addr:    addr,
		Handler: s.Handler(),
	}
}

// Handler returns the HTTP routes wrapped with the configured middleware.
func (s *Server) Handler() http.Handler {
	s.applyHTTPDefaults()
	mux := http.NewServeMux()
	for path, handler := range s.customHTTPHandlers {
		mux.Handle(path, handler)
	}
	if s.files != nil {
		storage.Mount(mux, s.filesPrefix, s.files.Handler(s.fileOptions...))
	}
	mux.HandleFunc("GET "+s.healthURI, s.health)

	if s.newHandler != nil {
		s.sseHandler = sse.New(s.NewHandler,
			sse.WithURI(s.sseURI),
			sse.WithMessageURI(s.sseMessageURI),
		)
		s.streamingHandler = streamable.New(s.NewHandler,
			streamable.WithURI(s.streamableURI),
		)
		mux.Handle(s.sseURI, s.sseHandler)
		mux.Handle(s.sseMessageURI, s.sseHandler)
		mux.Handle(s.streamableURI, s.streamingHandler)
		if s.rootRedirect {
			mux.HandleFunc("/{$}", func(w http.ResponseWriter, r *http.Request) {
				target := s.sseURI
				if s.useStreamableHTTP {
					target = s.streamableURI
				}
				http.Redirect(w, r, target, http.StatusTemporaryRedirect)
			})
		}
	}

	middlewareHandlers := []Middleware{InjectLogger(s.logger), AccessLog}
	if s.corsHandler != nil {
		middlewareHandlers = append(middlewareHandlers, s.corsHandler)
	}
	// Validate Origin on all requests (uses configured CORS allowlist)
	if s.corsConfig != nil {
		middlewareHandlers = append(middlewareHandlers, originValidationMiddleware(s.corsConfig.AllowOrigins))
	}
	middlewareHandlers = append(middlewareHandlers, s.middlewares...)
	return ChainMiddlewareHandlers(mux, middlewareHandlers...)
}

func (s *Server) applyHTTPDefaults() {
	if s.sseURI == "" {
		s.sseURI = "/sse"
	}
	if s.sseMessageURI == "" {
		s.sseMessageURI = "/message"
	}
	if s.streamableURI == "" {
		s.streamableURI = "/mcp"
	}
	if s.healthURI == "" {
		s.healthURI = "/healthz"
	}
}

func (s *Server) health(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(s.info)
}

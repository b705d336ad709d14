package server

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/viant/jsonrpc/transport/server/stdio"
	"github.com/viant/mcp-protocol/schema"
	"github.com/viant/mcpx/storage"
	mcptransport "github.com/viant/mcpx/transport"
)

// Option is a function that configures the server.
type Option func(s *Server) error

// WithNewHandler sets the MCP handler factory supplied by the hosting application.
func WithNewHandler(newHandler NewHandler) Option {
	return func(s *Server) error {
		s.newHandler = newHandler
		return nil
	}
}

// WithImplementation sets the server implementation.
func WithImplementation(implementation schema.Implementation) Option {
	return func(s *Server) error {
		s.info = implementation
		return nil
	}
}

// WithTransport selects the transport; HTTP descriptors also set the listen address.
func WithTransport(descriptor *mcptransport.Descriptor) Option {
	return func(s *Server) error {
		if descriptor == nil {
			return nil
		}
		if err := descriptor.Validate(); err != nil {
			return err
		}
		s.descriptor = descriptor
		if descriptor.HasPort() {
			s.addr = descriptor.Addr()
		}
		s.useStreamableHTTP = descriptor.Streamable()
		return nil
	}
}

// WithEndpointAddress sets the HTTP listen address.
func WithEndpointAddress(addr string) Option {
	return func(s *Server) error {
		s.addr = addr
		return nil
	}
}

// WithSSEURI sets the SSE endpoint URI.
func WithSSEURI(URI string) Option {
	return func(s *Server) error {
		s.sseURI = URI
		return nil
	}
}

// WithSSEMessageURI sets the SSE message endpoint URI.
func WithSSEMessageURI(URI string) Option {
	return func(s *Server) error {
		s.sseMessageURI = URI
		return nil
	}
}

// WithStreamableURI sets the streamable HTTP endpoint URI.
func WithStreamableURI(URI string) Option {
	return func(s *Server) error {
		s.streamableURI = URI
		return nil
	}
}

// WithRootRedirect redirects "/" to the active MCP transport endpoint.
func WithRootRedirect(flag bool) Option {
	return func(s *Server) error {
		s.rootRedirect = flag
		return nil
	}
}

// WithCORS adds CORS headers and Origin validation to every HTTP route.
func WithCORS(cors *Cors) Option {
	return func(s *Server) error {
		if cors == nil {
			return nil
		}
		s.corsConfig = cors
		s.corsHandler = cors.Middleware
		return nil
	}
}

// WithCustomHTTPHandler mounts an extra HTTP handler on pattern.
func WithCustomHTTPHandler(pattern string, handler http.Handler) Option {
	return func(s *Server) error {
		if handler == nil {
			return fmt.Errorf("server: custom handler for %v was nil", pattern)
		}
		if s.customHTTPHandlers == nil {
			s.customHTTPHandlers = map[string]http.Handler{}
		}
		s.customHTTPHandlers[pattern] = handler
		return nil
	}
}

// WithFileStore mounts the stored-file retrieval endpoint under prefix
// (storage.DefaultEndpoint when empty).
func WithFileStore(files *storage.Service, prefix string, options ...storage.HandlerOption) Option {
	return func(s *Server) error {
		if files == nil {
			return fmt.Errorf("server: file store was nil")
		}
		if _, err := files.Location(); err != nil {
			return err
		}
		if prefix == "" {
			prefix = files.Config().Endpoint
		}
		s.files = files
		s.filesPrefix = prefix
		s.fileOptions = options
		return nil
	}
}

// WithMiddleware appends HTTP middleware, e.g. an authorizer; the first one is outermost.
func WithMiddleware(middlewares ...Middleware) Option {
	return func(s *Server) error {
		s.middlewares = append(s.middlewares, middlewares...)
		return nil
	}
}

// WithLogger sets the server logger; it is also injected into HTTP request contexts.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) error {
		if logger != nil {
			s.logger = logger
		}
		return nil
	}
}

// WithStdioOptions passes options to the jsonrpc stdio server.
func WithStdioOptions(options ...stdio.Option) Option {
	return func(s *Server) error {
		s.stdioServerOption = append(s.stdioServerOption, options...)
		return nil
	}
}

package mcpx

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/viant/mcp-protocol/schema"
	"github.com/viant/mcpx/server"
	"github.com/viant/mcpx/storage"
	"github.com/viant/mcpx/transport"
)

// ServerOptions defines options for configuring an MCP server.
type ServerOptions struct {
	Name       string              `yaml:"name" json:"name"`
	Version    string              `yaml:"version" json:"version"`
	Transport  *ServerTransport    `yaml:"transport" json:"transport"`
	Storage    *StorageOptions     `yaml:"storage" json:"storage"`
	Logger     *slog.Logger        `yaml:"-" json:"-"`
	Middleware []server.Middleware `yaml:"-" json:"-"`
}

// ServerTransport selects the transport and its HTTP settings.
type ServerTransport struct {
	transport.Options `yaml:",inline" json:",inline"`

	StreamableURI  string                  `yaml:"streamableURI" json:"streamableURI"`
	SSEURI         string                  `yaml:"sseURI" json:"sseURI"`
	SSEMessageURI  string                  `yaml:"sseMessageURI" json:"sseMessageURI"`
	RootRedirect   bool                    `yaml:"rootRedirect" json:"rootRedirect"`
	Cors           *server.Cors            `yaml:"cors" json:"cors"`
	CustomHandlers map[string]http.Handler `yaml:"-" json:"-"`
}

// StorageOptions configures the named-file store and its retrieval endpoint.
type StorageOptions struct {
	storage.Config `yaml:",inline" json:",inline"`

	// Disposition is attachment (default) or inline.
	Disposition string `yaml:"disposition,omitempty" json:"disposition,omitempty"`
	// ContentType fixes the response content type; empty guesses by extension.
	ContentType string `yaml:"contentType,omitempty" json:"contentType,omitempty"`
}

// HandlerOptions converts the options into retrieval handler options.
func (o *StorageOptions) HandlerOptions(files *storage.Service) []storage.HandlerOption {
	var ret []storage.HandlerOption
	if o.Disposition != "" {
		ret = append(ret, storage.WithDisposition(o.Disposition))
	}
	if o.ContentType != "" {
		ret = append(ret, storage.WithContentType(o.ContentType))
	} else {
		ret = append(ret, storage.WithContentTypeFunc(files.ContentTypeByExtension))
	}
	return ret
}

// Descriptor returns the transport descriptor, stdio when no transport is configured.
func (o *ServerOptions) Descriptor() (*transport.Descriptor, error) {
	if o == nil || o.Transport == nil {
		return transport.NewDescriptor(transport.Stdio, 0)
	}
	return o.Transport.Descriptor()
}

// NewServer creates an MCP server for newHandler and, when storage is configured,
// the file store whose retrieval endpoint is mounted on HTTP transports.
// newHandler may be nil for HTTP servers that only serve files.
func NewServer(newHandler server.NewHandler, options *ServerOptions) (*server.Server, *storage.Service, error) {
	descriptor, err := options.Descriptor()
	if err != nil {
		return nil, nil, err
	}
	serverOptions := []server.Option{server.WithTransport(descriptor)}
	if newHandler != nil {
		serverOptions = append(serverOptions, server.WithNewHandler(newHandler))
	}
	var files *storage.Service
	if options != nil {
		if options.Name != "" || options.Version != "" {
			serverOptions = append(serverOptions, server.WithImplementation(schema.Implementation{
				Name:    options.Name,
				Version: options.Version,
			}))
		}
		if options.Logger != nil {
			serverOptions = append(serverOptions, server.WithLogger(options.Logger))
		}
		if len(options.Middleware) > 0 {
			serverOptions = append(serverOptions, server.WithMiddleware(options.Middleware...))
		}
		if transportOptions := options.Transport; transportOptions != nil {
			if transportOptions.StreamableURI != "" {
				serverOptions = append(serverOptions, server.WithStreamableURI(transportOptions.StreamableURI))
			}
			if transportOptions.SSEURI != "" {
				serverOptions = append(serverOptions, server.WithSSEURI(transportOptions.SSEURI))
			}
			if transportOptions.SSEMessageURI != "" {
				serverOptions = append(serverOptions, server.WithSSEMessageURI(transportOptions.SSEMessageURI))
			}
			if transportOptions.RootRedirect {
				serverOptions = append(serverOptions, server.WithRootRedirect(true))
			}
			if transportOptions.Cors != nil {
				serverOptions = append(serverOptions, server.WithCORS(transportOptions.Cors))
			}
			for pattern, handler := range transportOptions.CustomHandlers {
				serverOptions = append(serverOptions, server.WithCustomHTTPHandler(pattern, handler))
			}
		}
		if storageOptions := options.Storage; storageOptions != nil {
			if err = storageOptions.Validate(); err != nil {
				return nil, nil, fmt.Errorf("invalid storage options: %w", err)
			}
			files = storage.New(&storageOptions.Config)
			if descriptor.IsHTTP() {
				// the base URL must be resolvable before any URI is published
				if _, err = files.URI("probe", descriptor); err != nil {
					return nil, nil, err
				}
				serverOptions = append(serverOptions, server.WithFileStore(files, "", storageOptions.HandlerOptions(files)...))
			}
		}
	}
	srv, err := server.New(serverOptions...)
	if err != nil {
		return nil, nil, err
	}
	return srv, files, nil
}

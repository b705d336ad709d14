package storage

import (
	"fmt"
	"net/url"
	"path/filepath"

	"github.com/viant/mcpx/transport"
)

// URIConfig holds the inputs needed to build a client-facing URI.
type URIConfig struct {
	Location string
	BaseURL  string
	Endpoint string
}

// URI returns the URI a client uses to fetch storedName over the given transport.
func (s *Service) URI(storedName string, descriptor *transport.Descriptor) (string, error) {
	return ResolveURI(storedName, descriptor, s.config.URIConfig())
}

// ResolveURI returns a file:// URI for stdio (or a nil descriptor) and
// {base}{endpoint}/{storedName} for HTTP, with the stored name path-escaped.
// HTTP requires either an explicit
// base URL or a port.
func ResolveURI(storedName string, descriptor *transport.Descriptor, config *URIConfig) (string, error) {
	if config == nil {
		config = &URIConfig{}
	}
	switch {
	case descriptor.IsStdio():
		dir, err := ResolveLocation(config.Location)
		if err != nil {
			return "", err
		}
		location := &url.URL{Scheme: "file", Path: filepath.ToSlash(filepath.Join(dir, storedName))}
		return location.String(), nil
	case descriptor.IsHTTP():
		base := config.BaseURL
		if base == "" {
			if !descriptor.HasPort() {
				return "", configurationErrorf("http transport requires a base URL or a port to build file URIs")
			}
			base = fmt.Sprintf("http://localhost:%d", descriptor.Port)
		}
		endpoint := config.Endpoint
		if endpoint == "" {
			endpoint = DefaultEndpoint
		}
		return base + endpoint + "/" + storedName, nil
	}
	return "", configurationErrorf("unsupported transport %q", descriptor.Type)
}

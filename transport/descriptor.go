package transport

import (
	"errors"
	"fmt"
	"strings"
)

const (
	// Stdio identifies the line-oriented local stream transport.
	Stdio = "stdio"
	// HTTP identifies the HTTP transport.
	HTTP = "http"

	// FlavorSSE selects the SSE HTTP flavor.
	FlavorSSE = "sse"
	// FlavorStreamable selects the streamable HTTP flavor.
	FlavorStreamable = "streamable"

	maxPort = 65535
)

// ErrUnsupportedType is returned for transport types other than stdio or http.
var ErrUnsupportedType = errors.New("transport: unsupported type")

// Descriptor identifies the transport used by a hosting server.
type Descriptor struct {
	Type   string `yaml:"type" json:"type"`
	Port   int    `yaml:"port,omitempty" json:"port,omitempty"`
	Flavor string `yaml:"flavor,omitempty" json:"flavor,omitempty"`
}

// IsStdio returns true for a nil descriptor or a stdio one.
func (d *Descriptor) IsStdio() bool {
	return d == nil || d.Type == "" || d.Type == Stdio
}

// IsHTTP returns true when the descriptor selects the HTTP transport.
func (d *Descriptor) IsHTTP() bool {
	return d != nil && d.Type == HTTP
}

// HasPort returns true when an HTTP port was provided.
func (d *Descriptor) HasPort() bool {
	return d != nil && d.Port > 0
}

// Addr returns the listen address for HTTP descriptors.
func (d *Descriptor) Addr() string {
	if !d.HasPort() {
		return ""
	}
	return fmt.Sprintf(":%d", d.Port)
}

// Streamable returns true when the streamable HTTP flavor is selected.
func (d *Descriptor) Streamable() bool {
	return d.IsHTTP() && d.Flavor == FlavorStreamable
}

// Validate checks type, flavor and port ranges.
func (d *Descriptor) Validate() error {
	if d == nil {
		return nil
	}
	switch d.Type {
	case "", Stdio:
		if d.Port != 0 {
			return fmt.Errorf("transport: port %d is not supported for %v", d.Port, Stdio)
		}
	case HTTP:
		if d.Port < 0 || d.Port > maxPort {
			return fmt.Errorf("transport: invalid port %d", d.Port)
		}
		switch d.Flavor {
		case "", FlavorSSE, FlavorStreamable:
		default:
			return fmt.Errorf("transport: unsupported http flavor %q", d.Flavor)
		}
	default:
		return fmt.Errorf("%w: %q", ErrUnsupportedType, d.Type)
	}
	return nil
}

// NewDescriptor normalizes a transport type and port into a Descriptor.
// The "sse" and "streamable" type aliases resolve to HTTP with the matching flavor;
// a port given together with stdio is dropped.
func NewDescriptor(kind string, port int) (*Descriptor, error) {
	ret := &Descriptor{Type: strings.ToLower(strings.TrimSpace(kind)), Port: port}
	switch ret.Type {
	case "", Stdio:
		ret.Type = Stdio
		ret.Port = 0
	case FlavorSSE, FlavorStreamable:
		ret.Flavor = ret.Type
		ret.Type = HTTP
	}
	if err := ret.Validate(); err != nil {
		return nil, err
	}
	return ret, nil
}

package transport

import (
	"github.com/jessevdk/go-flags"
)

// Options carries the transport command line flags. It can be embedded in a
// larger go-flags option struct.
type Options struct {
	Type string `yaml:"type" json:"type" short:"T" long:"transport" env:"MCP_TRANSPORT" description:"mcp transport type" choice:"stdio" choice:"http" choice:"sse" choice:"streamable" default:"stdio"`
	Port int    `yaml:"port" json:"port" short:"p" long:"port" env:"MCP_PORT" description:"http port"`
}

// Descriptor converts options into a validated Descriptor.
func (o *Options) Descriptor() (*Descriptor, error) {
	if o == nil {
		return NewDescriptor(Stdio, 0)
	}
	return NewDescriptor(o.Type, o.Port)
}

// Parse parses transport flags (and their environment fallbacks) from args.
// Unknown flags are ignored and returned with the remaining arguments so the
// hosting application can parse them itself.
func Parse(args []string) (*Descriptor, []string, error) {
	options := &Options{}
	parser := flags.NewParser(options, flags.IgnoreUnknown)
	rest, err := parser.ParseArgs(args)
	if err != nil {
		return nil, nil, err
	}
	descriptor, err := options.Descriptor()
	if err != nil {
		return nil, nil, err
	}
	return descriptor, rest, nil
}

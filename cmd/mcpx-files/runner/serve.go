package runner

import (
	"context"
	"fmt"

	"github.com/viant/mcpx"
	"github.com/viant/mcpx/server"
	"github.com/viant/mcpx/transport"
)

// ServeCommand serves stored files over HTTP.
type ServeCommand struct {
	StoreOptions
	Cors bool `long:"cors" description:"allow cross origin downloads"`

	options *Options
}

// Execute runs the command.
func (c *ServeCommand) Execute(_ []string) error {
	srv, err := c.server(context.Background())
	if err != nil {
		return err
	}
	return srv.ListenAndServe(context.Background())
}

func (c *ServeCommand) server(ctx context.Context) (*server.Server, error) {
	serverOptions, err := c.serverOptions(ctx)
	if err != nil {
		return nil, err
	}
	if serverOptions.Transport.Type == "" || serverOptions.Transport.Type == transport.Stdio {
		serverOptions.Transport.Type = transport.HTTP
	}
	if serverOptions.Transport.Port == 0 {
		return nil, fmt.Errorf("serve requires --port")
	}
	if c.Cors && serverOptions.Transport.Cors == nil {
		serverOptions.Transport.Cors = server.DefaultCors()
	}
	if serverOptions.Name == "" {
		serverOptions.Name = "mcpx-files"
	}
	serverOptions.Logger = c.options.logger
	srv, _, err := mcpx.NewServer(nil, serverOptions)
	return srv, err
}

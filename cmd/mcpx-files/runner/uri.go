package runner

import (
	"context"
	"fmt"

	"github.com/viant/mcpx/storage"
)

// URICommand prints the URI of a stored file for the selected transport.
type URICommand struct {
	StoreOptions
	Args struct {
		StoredName string `positional-arg-name:"stored-name"`
	} `positional-args:"yes" required:"yes"`

	options *Options
}

// Execute runs the command.
func (c *URICommand) Execute(_ []string) error {
	serverOptions, err := c.serverOptions(context.Background())
	if err != nil {
		return err
	}
	descriptor, err := serverOptions.Descriptor()
	if err != nil {
		return err
	}
	config := serverOptions.Storage.Config
	config.Init()
	URI, err := storage.ResolveURI(c.Args.StoredName, descriptor, config.URIConfig())
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(c.options.out, URI)
	return err
}

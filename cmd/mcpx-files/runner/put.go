package runner

import (
	"context"
	"fmt"
	"io"
	"os"
	"path"

	"github.com/viant/afs"
	"github.com/viant/mcpx/storage"
)

// PutCommand stores a local (or any afs URL) file in the store.
type PutCommand struct {
	StoreOptions
	Name string `short:"n" long:"name" description:"original filename, defaults to the source base name"`
	Args struct {
		Source string `positional-arg-name:"source" description:"file path, afs URL or - for stdin"`
	} `positional-args:"yes" required:"yes"`

	options *Options
}

// Execute runs the command.
func (c *PutCommand) Execute(_ []string) error {
	ctx := context.Background()
	serverOptions, err := c.serverOptions(ctx)
	if err != nil {
		return err
	}
	data, err := c.read(ctx)
	if err != nil {
		return err
	}
	name := c.Name
	if name == "" {
		name = path.Base(c.Args.Source)
	}
	files := storage.New(&serverOptions.Storage.Config)
	descriptor, err := serverOptions.Descriptor()
	if err != nil {
		return err
	}
	// resolve the URI first so a bad transport setup does not leave an orphaned file
	if _, err = files.URI(storage.FormatName("probe", name, files.Config().Delimiter), descriptor); err != nil {
		return err
	}
	reservation, err := files.Write(ctx, name, data)
	if err != nil {
		return err
	}
	URI, err := files.URI(reservation.StoredName, descriptor)
	if err != nil {
		return err
	}
	c.options.logger.Debug("stored file", "name", name, "path", reservation.Path, "bytes", len(data))
	_, err = fmt.Fprintf(c.options.out, "%s\t%s\n", reservation.StoredName, URI)
	return err
}

func (c *PutCommand) read(ctx context.Context) ([]byte, error) {
	if c.Args.Source == "-" {
		if c.Name == "" {
			return nil, fmt.Errorf("--name is required when reading from stdin")
		}
		return io.ReadAll(os.Stdin)
	}
	return afs.New().DownloadWithURL(ctx, c.Args.Source)
}

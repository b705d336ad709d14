package runner

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/viant/afs"
	"github.com/viant/mcpx"
	"github.com/viant/mcpx/logging"
	"github.com/viant/mcpx/storage"
	"github.com/viant/mcpx/transport"
	"gopkg.in/yaml.v3"
)

// Options is the mcpx-files command line.
type Options struct {
	LogLevel string `long:"log-level" env:"MCP_LOG_LEVEL" description:"log level" choice:"debug" choice:"info" choice:"warn" choice:"error" default:"info"`

	Put   *PutCommand   `command:"put" description:"store a file and print its stored name and URI"`
	URI   *URICommand   `command:"uri" description:"print the URI of a stored file"`
	Serve *ServeCommand `command:"serve" description:"serve stored files over HTTP"`

	out    io.Writer
	logger *slog.Logger
}

func (o *Options) init() error {
	level, err := logging.ParseLevel(o.LogLevel)
	if err != nil {
		return err
	}
	o.logger = logging.New(logging.Config{Level: level})
	return nil
}

// StoreOptions are shared by all commands.
type StoreOptions struct {
	storage.Config
	transport.Options
	ConfigURL string `short:"c" long:"config" description:"YAML server options (any afs URL)"`
}

// serverOptions loads the optional YAML file and overlays command line values.
func (s *StoreOptions) serverOptions(ctx context.Context) (*mcpx.ServerOptions, error) {
	ret := &mcpx.ServerOptions{}
	if s.ConfigURL != "" {
		data, err := afs.New().DownloadWithURL(ctx, s.ConfigURL)
		if err != nil {
			return nil, fmt.Errorf("failed to load config %v: %w", s.ConfigURL, err)
		}
		if err = yaml.Unmarshal(data, ret); err != nil {
			return nil, fmt.Errorf("invalid config %v: %w", s.ConfigURL, err)
		}
	}
	if ret.Transport == nil {
		ret.Transport = &mcpx.ServerTransport{}
	}
	if ret.Storage == nil {
		ret.Storage = &mcpx.StorageOptions{}
	}
	// --transport defaults to stdio, so it only overrides a config file when set otherwise
	if s.Options.Type != "" && (s.ConfigURL == "" || s.Options.Type != transport.Stdio) {
		ret.Transport.Type = s.Options.Type
	}
	if s.Options.Port != 0 {
		ret.Transport.Port = s.Options.Port
	}
	overlay(&ret.Storage.Location, s.Location)
	overlay(&ret.Storage.Delimiter, s.Delimiter)
	overlay(&ret.Storage.BaseURL, s.BaseURL)
	overlay(&ret.Storage.Endpoint, s.Endpoint)
	return ret, nil
}

func overlay(target *string, value string) {
	if value != "" {
		*target = value
	}
}

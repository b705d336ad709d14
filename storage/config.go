package storage

import (
	"github.com/google/uuid"
)

const (
	// DefaultDelimiter separates the identifier from the original filename.
	DefaultDelimiter = "~"
	// DefaultEndpoint is the path the retrieval handler is mounted on.
	DefaultEndpoint = "/files"
	// MaxGenerateAttempts bounds identifier generation retries.
	MaxGenerateAttempts = 100
)

// IDGenerator produces a fresh identifier for each stored file.
type IDGenerator func() string

// DefaultIDGenerator returns a random UUID.
func DefaultIDGenerator() string {
	return uuid.NewString()
}

// Config represents file store settings.
type Config struct {
	// Location is a directory path or file:// URI.
	Location  string `yaml:"location" json:"location" short:"s" long:"store" env:"MCP_FILE_STORE" description:"file store location (path or file:// URI)"`
	Delimiter string `yaml:"delimiter,omitempty" json:"delimiter,omitempty" long:"delimiter" description:"stored name delimiter"`
	// BaseURL overrides http://localhost:{port} in HTTP URIs.
	BaseURL string `yaml:"baseURL,omitempty" json:"baseURL,omitempty" long:"base-url" env:"MCP_FILE_BASE_URL" description:"public base URL for stored files"`
	// Endpoint is the path prefix the retrieval handler is mounted on.
	Endpoint    string      `yaml:"endpoint,omitempty" json:"endpoint,omitempty" long:"files-endpoint" description:"retrieval endpoint path"`
	IDGenerator IDGenerator `yaml:"-" json:"-" no-flag:"true"`
}

// Init applies defaults.
func (c *Config) Init() {
	if c.Delimiter == "" {
		c.Delimiter = DefaultDelimiter
	}
	if c.Endpoint == "" {
		c.Endpoint = DefaultEndpoint
	}
	if c.IDGenerator == nil {
		c.IDGenerator = DefaultIDGenerator
	}
}

// Validate checks that the location resolves.
func (c *Config) Validate() error {
	_, err := ResolveLocation(c.Location)
	return err
}

// URIConfig returns the URI resolution part of the config.
func (c *Config) URIConfig() *URIConfig {
	return &URIConfig{Location: c.Location, BaseURL: c.BaseURL, Endpoint: c.Endpoint}
}

package storage

import (
	"github.com/viant/afs"
)

// Service reserves, writes, resolves and serves named files.
// It keeps no per-file state and is safe for concurrent use.
type Service struct {
	config Config
	fs     afs.Service
}

// Config returns a copy of the effective configuration.
func (s *Service) Config() Config {
	return s.config
}

// Location resolves the configured store location.
func (s *Service) Location() (string, error) {
	return ResolveLocation(s.config.Location)
}

// New creates a Service; a nil config is treated as empty and fails on first use.
func New(config *Config) *Service {
	var cfg Config
	if config != nil {
		cfg = *config
	}
	cfg.Init()
	return &Service{config: cfg, fs: afs.New()}
}

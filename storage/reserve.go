package storage

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

const dirMode = 0o755

// Reservation describes where a file is to be stored. Nothing is written by
// reserving; the caller places bytes at Path.
type Reservation struct {
	ID         string `json:"id"`
	StoredName string `json:"storedName"`
	Path       string `json:"path"`
}

// Reserve allocates an identifier and destination path for filename, creating
// the store directory when needed.
func (s *Service) Reserve(ctx context.Context, filename string) (*Reservation, error) {
	if err := validateFilename(filename); err != nil {
		return nil, err
	}
	dir, err := ResolveLocation(s.config.Location)
	if err != nil {
		return nil, err
	}
	if err = os.MkdirAll(dir, dirMode); err != nil {
		return nil, err
	}
	id, err := generateID(s.config.IDGenerator, s.config.Delimiter)
	if err != nil {
		return nil, err
	}
	storedName := FormatName(id, filename, s.config.Delimiter)
	return &Reservation{
		ID:         id,
		StoredName: storedName,
		Path:       filepath.Join(dir, storedName),
	}, nil
}

func generateID(generator IDGenerator, delimiter string) (string, error) {
	for attempt := 0; attempt < MaxGenerateAttempts; attempt++ {
		id := generator()
		if validID(id, delimiter) {
			return id, nil
		}
	}
	return "", &GenerationError{Delimiter: delimiter, Attempts: MaxGenerateAttempts}
}

// validID reports whether id can prefix a stored name without introducing the
// delimiter or leaving the store directory.
func validID(id, delimiter string) bool {
	if id == "" || id == "." || id == ".." || strings.ContainsAny(id, `/\`) {
		return false
	}
	return delimiter == "" || !strings.Contains(id, delimiter)
}

// validateFilename rejects names that would not land directly in the store directory.
func validateFilename(filename string) error {
	if filename == "" || filename == "." || filename == ".." || strings.ContainsAny(filename, `/\`) {
		return fmt.Errorf("%w: %q", ErrInvalidFilename, filename)
	}
	return nil
}

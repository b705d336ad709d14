package storage

import (
	"errors"
	"fmt"
)

// ErrInvalidFilename is returned when an original filename is empty or contains a path separator.
var ErrInvalidFilename = errors.New("storage: invalid filename")

// ConfigurationError reports an invalid or incomplete storage setup.
type ConfigurationError struct {
	Reason string
}

func (e *ConfigurationError) Error() string {
	return "storage configuration: " + e.Reason
}

// GenerationError reports that the identifier generator kept producing
// values containing the delimiter.
type GenerationError struct {
	Delimiter string
	Attempts  int
}

func (e *GenerationError) Error() string {
	return fmt.Sprintf("storage: failed to generate identifier without delimiter %q after %d attempts, use a different delimiter or identifier generator", e.Delimiter, e.Attempts)
}

// IsConfigurationError returns true if err is or wraps a ConfigurationError.
func IsConfigurationError(err error) bool {
	var target *ConfigurationError
	return errors.As(err, &target)
}

// IsGenerationError returns true if err is or wraps a GenerationError.
func IsGenerationError(err error) bool {
	var target *GenerationError
	return errors.As(err, &target)
}

func configurationErrorf(format string, args ...interface{}) error {
	return &ConfigurationError{Reason: fmt.Sprintf(format, args...)}
}

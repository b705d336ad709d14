package storage

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
)

const (
	tempSuffix = ".part"
	fileMode   = 0o644
)

// Write reserves a location for filename and stores data there. The content is
// uploaded under a temporary name first and renamed into place, so the stored
// name never refers to a partially written file.
func (s *Service) Write(ctx context.Context, filename string, data []byte) (*Reservation, error) {
	reservation, err := s.Reserve(ctx, filename)
	if err != nil {
		return nil, err
	}
	// the temporary name is built from the identifier only so it is URL safe
	tempPath := filepath.Join(filepath.Dir(reservation.Path), "."+reservation.ID+tempSuffix)
	tempURL := fileURL(tempPath)
	if err = s.fs.Upload(ctx, tempURL, fileMode, bytes.NewReader(data)); err != nil {
		_ = s.fs.Delete(ctx, tempURL)
		return nil, err
	}
	if err = os.Rename(tempPath, reservation.Path); err != nil {
		_ = s.fs.Delete(ctx, tempURL)
		return nil, err
	}
	return reservation, nil
}

func fileURL(path string) string {
	return fileSchemePrefix + filepath.ToSlash(path)
}

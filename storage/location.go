package storage

import (
	"path/filepath"
	"regexp"
	"strings"

	"github.com/viant/afs/file"
)

const fileSchemePrefix = file.Scheme + "://"

var schemePattern = regexp.MustCompile(`^[a-zA-Z][a-zA-Z0-9+.\-]*://`)

// ResolveLocation converts a store location (bare path or file:// URI) into an
// absolute directory path. It does not check that the directory exists.
func ResolveLocation(location string) (string, error) {
	location = strings.TrimSpace(location)
	if location == "" {
		return "", configurationErrorf("store location is required")
	}
	if strings.HasPrefix(location, fileSchemePrefix) {
		location = location[len(fileSchemePrefix):]
		if location == "" {
			return "", configurationErrorf("store location is required")
		}
	} else if scheme := schemePattern.FindString(location); scheme != "" {
		return "", configurationErrorf("unsupported store location scheme %q, expected a path or %v", strings.TrimSuffix(scheme, "://"), fileSchemePrefix)
	}
	return filepath.Abs(location)
}

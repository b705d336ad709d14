package storage

import (
	"context"
	"encoding/base64"
	"fmt"
	"mime"
	"os"
	"path/filepath"

	"github.com/viant/mcp-protocol/schema"
	"github.com/viant/mcpx/transport"
)

// Read returns the content of a stored file straight from disk. Names
// resolving outside the store are rejected with ErrInvalidFilename.
func (s *Service) Read(ctx context.Context, storedName string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	dir, err := ResolveLocation(s.config.Location)
	if err != nil {
		return nil, err
	}
	location, ok := containedPath(dir, storedName)
	if !ok {
		return nil, fmt.Errorf("%w: %q is outside the store", ErrInvalidFilename, storedName)
	}
	return os.ReadFile(location)
}

// Resource returns MCP resource metadata pointing at a stored file; the
// resource name is the original filename.
func (s *Service) Resource(storedName string, descriptor *transport.Descriptor) (*schema.Resource, error) {
	URI, err := s.URI(storedName, descriptor)
	if err != nil {
		return nil, err
	}
	_, original := ParseName(storedName, s.config.Delimiter)
	mimeType := MimeType(original)
	return &schema.Resource{
		Name:     original,
		Uri:      URI,
		MimeType: &mimeType,
	}, nil
}

// ReadResource reads a stored file into an MCP read-resource result. Binary
// content is returned base64 encoded as a blob, anything else as text.
func (s *Service) ReadResource(ctx context.Context, storedName string, descriptor *transport.Descriptor) (*schema.ReadResourceResult, error) {
	data, err := s.Read(ctx, storedName)
	if err != nil {
		return nil, err
	}
	resource, err := s.Resource(storedName, descriptor)
	if err != nil {
		return nil, err
	}
	var text, blob string
	if isBinary(data) {
		blob = base64.StdEncoding.EncodeToString(data)
	} else {
		text = string(data)
	}
	result := &schema.ReadResourceResult{}
	result.Contents = append(result.Contents, schema.ReadResourceResultContentsElem{
		MimeType: resource.MimeType,
		Uri:      resource.Uri,
		Blob:     blob,
		Text:     text,
	})
	return result, nil
}

// MimeType guesses a MIME type from a filename extension.
func MimeType(filename string) string {
	if mimeType := mime.TypeByExtension(filepath.Ext(filename)); mimeType != "" {
		return mimeType
	}
	return DefaultContentType
}

// ContentTypeByExtension is a ContentTypeFunc using the original filename's extension.
func (s *Service) ContentTypeByExtension(storedName string) string {
	_, original := ParseName(storedName, s.config.Delimiter)
	return MimeType(original)
}

// isBinary returns true if more than 30% of the leading bytes are non-printable.
func isBinary(data []byte) bool {
	const maxBytes = 8000
	n := min(maxBytes, len(data))
	if n == 0 {
		return false
	}
	nonPrintable := 0
	for i := 0; i < n; i++ {
		b := data[i]
		if (b < 32 || b > 126) && b != '\n' && b != '\r' && b != '\t' {
			nonPrintable++
		}
	}
	return float64(nonPrintable)/float64(n) > 0.3
}

package storage

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/viant/mcpx/logging"
)

const (
	// DispositionAttachment asks clients to download the file.
	DispositionAttachment = "attachment"
	// DispositionInline asks clients to display the file.
	DispositionInline = "inline"
	// DefaultContentType is used when no content type is configured.
	DefaultContentType = "application/octet-stream"
	// PathParameter is the path wildcard name holding the stored name.
	PathParameter = "filename"
)

// ContentTypeFunc computes a content type from a stored name.
type ContentTypeFunc func(storedName string) string

// HandlerOption customizes the retrieval handler.
type HandlerOption func(h *Handler)

// WithContentType sets a fixed response content type.
func WithContentType(contentType string) HandlerOption {
	return func(h *Handler) {
		h.contentType = func(string) string { return contentType }
	}
}

// WithContentTypeFunc computes the response content type per stored name.
func WithContentTypeFunc(fn ContentTypeFunc) HandlerOption {
	return func(h *Handler) {
		h.contentType = fn
	}
}

// WithDisposition sets the Content-Disposition type (attachment or inline).
func WithDisposition(disposition string) HandlerOption {
	return func(h *Handler) {
		h.disposition = disposition
	}
}

// WithLogger sets the logger used for failed requests.
func WithLogger(logger *slog.Logger) HandlerOption {
	return func(h *Handler) {
		h.logger = logger
	}
}

// WithPrefix sets the mount prefix stripped from the request path when the
// router does not provide the filename path value.
func WithPrefix(prefix string) HandlerOption {
	return func(h *Handler) {
		h.prefix = prefix
	}
}

// Handler serves stored files by stored name.
type Handler struct {
	service     *Service
	contentType ContentTypeFunc
	disposition string
	logger      *slog.Logger
	prefix      string
}

// Handler returns an http.Handler serving files from the store.
func (s *Service) Handler(options ...HandlerOption) *Handler {
	ret := &Handler{service: s, disposition: DispositionAttachment}
	for _, option := range options {
		option(ret)
	}
	if ret.contentType == nil {
		ret.contentType = func(string) string { return DefaultContentType }
	}
	return ret
}

// ServeHTTP checks, in order: filename present (400), path confined to the
// store directory (403), file exists (404). Any other failure is a 500.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	logger := h.logger
	if logger == nil {
		logger = logging.FromContext(r.Context())
	}
	name := h.filename(r)
	if name == "" {
		http.Error(w, "filename is required", http.StatusBadRequest)
		return
	}
	dir, err := ResolveLocation(h.service.config.Location)
	if err != nil {
		h.internalError(w, r, logger, err)
		return
	}
	location, ok := containedPath(dir, name)
	if !ok {
		logger.Warn("rejected file request outside store", "filename", name, "remote", r.RemoteAddr)
		http.Error(w, "forbidden", http.StatusForbidden)
		return
	}
	if _, err = os.Stat(location); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			http.Error(w, "file not found", http.StatusNotFound)
			return
		}
		h.internalError(w, r, logger, err)
		return
	}
	data, err := os.ReadFile(location)
	if err != nil {
		h.internalError(w, r, logger, err)
		return
	}
	storedName := filepath.Base(location)
	_, original := ParseName(storedName, h.service.config.Delimiter)
	header := w.Header()
	header.Set("Content-Type", h.contentType(storedName))
	header.Set("Content-Disposition", contentDisposition(h.disposition, original))
	header.Set("Content-Length", strconv.Itoa(len(data)))
	w.WriteHeader(http.StatusOK)
	if r.Method == http.MethodHead {
		return
	}
	if _, err = w.Write(data); err != nil {
		logger.Debug("failed to write file response", "filename", name, "error", err)
	}
}

// filename returns the requested stored name. Without a router path value the
// name is taken from the URL path only when it sits under the configured prefix.
func (h *Handler) filename(r *http.Request) string {
	if name := r.PathValue(PathParameter); name != "" {
		return name
	}
	prefix := strings.TrimSuffix(h.prefix, "/")
	if prefix == "" || !strings.HasPrefix(r.URL.Path, prefix+"/") {
		return ""
	}
	return strings.TrimPrefix(r.URL.Path, prefix+"/")
}

func (h *Handler) internalError(w http.ResponseWriter, r *http.Request, logger *slog.Logger, err error) {
	logger.Error("failed to serve stored file", "path", r.URL.Path, "error", err)
	http.Error(w, "internal server error", http.StatusInternalServerError)
}

// containedPath resolves name against dir and reports whether the result lies
// strictly inside dir, both lexically and after following symlinks. Absolute
// names are taken as-is. A name that does not exist yet is judged lexically.
func containedPath(dir, name string) (string, bool) {
	var candidate string
	if filepath.IsAbs(name) {
		candidate = filepath.Clean(name)
	} else {
		candidate = filepath.Join(dir, name)
	}
	if !isWithin(dir, candidate) {
		return "", false
	}
	resolved, err := filepath.EvalSymlinks(candidate)
	if err != nil {
		return candidate, true
	}
	root, err := filepath.EvalSymlinks(dir)
	if err != nil || !isWithin(root, resolved) {
		return "", false
	}
	return candidate, true
}

func isWithin(dir, candidate string) bool {
	rel, err := filepath.Rel(dir, candidate)
	if err != nil {
		return false
	}
	return rel != "." && rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator)) && !filepath.IsAbs(rel)
}

// contentDisposition percent-encodes every reserved character of filename.
func contentDisposition(disposition, filename string) string {
	if disposition == "" {
		disposition = DispositionAttachment
	}
	encoded := strings.ReplaceAll(url.QueryEscape(filename), "+", "%20")
	return fmt.Sprintf("%s; filename=\"%s\"", disposition, encoded)
}

// Mount registers handler on mux under GET {prefix}/{filename}. A request for
// the bare {prefix}/ reaches the handler too and is answered with 400.
func Mount(mux *http.ServeMux, prefix string, handler http.Handler) {
	prefix = strings.TrimSuffix(prefix, "/")
	mux.Handle("GET "+prefix+"/{"+PathParameter+"}", handler)
	mux.Handle("GET "+prefix+"/{$}", handler)
}

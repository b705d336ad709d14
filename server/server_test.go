package server

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/viant/mcp-protocol/schema"
	"github.com/viant/mcpx/logging"
	"github.com/viant/mcpx/storage"
	"github.com/viant/mcpx/transport"
)

func httpTransport(port int) *transport.Descriptor {
	return &transport.Descriptor{Type: transport.HTTP, Port: port}
}

func TestNew(t *testing.T) {
	_, err := New()
	assert.ErrorIs(t, err, ErrNoHandler)

	_, err = New(WithTransport(&transport.Descriptor{Type: "pipe"}))
	assert.ErrorIs(t, err, transport.ErrUnsupportedType)

	srv, err := New(WithTransport(httpTransport(3000)))
	require.NoError(t, err)
	assert.Equal(t, ":3000", srv.HTTP(context.Background(), "").Addr)
	assert.Equal(t, "127.0.0.1:9000", srv.HTTP(context.Background(), "127.0.0.1:9000").Addr)

	_, err = srv.Stdio(context.Background())
	assert.ErrorIs(t, err, ErrNoHandler)

	srv, err = New(WithTransport(&transport.Descriptor{Type: transport.HTTP}))
	require.NoError(t, err)
	assert.Equal(t, "127.0.0.1:5000", srv.HTTP(context.Background(), "").Addr)
}

func TestServer_FileStore(t *testing.T) {
	files := storage.New(&storage.Config{Location: t.TempDir()})
	reservation, err := files.Write(context.Background(), "a b.txt", []byte("hello"))
	require.NoError(t, err)

	var logs bytes.Buffer
	srv, err := New(
		WithTransport(httpTransport(3000)),
		WithImplementation(schema.Implementation{Name: "files", Version: "1.2"}),
		WithFileStore(files, ""),
		WithLogger(logging.New(logging.Config{Output: &logs})),
	)
	require.NoError(t, err)
	handler := srv.HTTP(context.Background(), "").Handler

	URI, err := files.URI(reservation.StoredName, srv.Transport())
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:3000/files/"+reservation.StoredName, URI)

	recorder := httptest.NewRecorder()
	handler.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/files/"+url.PathEscape(reservation.StoredName), nil))
	assert.Equal(t, http.StatusOK, recorder.Code)
	assert.Equal(t, "hello", recorder.Body.String())
	assert.Equal(t, `attachment; filename="a%20b.txt"`, recorder.Header().Get("Content-Disposition"))

	recorder = httptest.NewRecorder()
	handler.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/files/missing", nil))
	assert.Equal(t, http.StatusNotFound, recorder.Code)

	recorder = httptest.NewRecorder()
	handler.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	assert.Equal(t, http.StatusOK, recorder.Code)
	info := schema.Implementation{}
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &info))
	assert.Equal(t, "files", info.Name)
	assert.Equal(t, "1.2", info.Version)
}

func TestServer_FileStoreOptions(t *testing.T) {
	files := storage.New(&storage.Config{Location: t.TempDir()})
	reservation, err := files.Write(context.Background(), "chart.png", []byte("png"))
	require.NoError(t, err)

	srv, err := New(
		WithTransport(httpTransport(3000)),
		WithFileStore(files, "/download", storage.WithDisposition(storage.DispositionInline), storage.WithContentTypeFunc(files.ContentTypeByExtension)),
	)
	require.NoError(t, err)

	recorder := httptest.NewRecorder()
	srv.Handler().ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/download/"+url.PathEscape(reservation.StoredName), nil))
	assert.Equal(t, http.StatusOK, recorder.Code)
	assert.Equal(t, "image/png", recorder.Header().Get("Content-Type"))
	assert.Equal(t, `inline; filename="chart.png"`, recorder.Header().Get("Content-Disposition"))

	_, err = New(WithTransport(httpTransport(3000)), WithFileStore(storage.New(&storage.Config{Location: "s3://x"}), ""))
	assert.True(t, storage.IsConfigurationError(err))
	_, err = New(WithTransport(httpTransport(3000)), WithFileStore(nil, ""))
	assert.Error(t, err)
}

func TestServer_CORS(t *testing.T) {
	srv, err := New(
		WithTransport(httpTransport(3000)),
		WithCORS(&Cors{AllowOrigins: []string{"https://app.example.com"}, ExposeHeaders: []string{"*"}}),
	)
	require.NoError(t, err)
	handler := srv.Handler()

	request := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	request.Header.Set("Origin", "https://app.example.com")
	recorder := httptest.NewRecorder()
	handler.ServeHTTP(recorder, request)
	assert.Equal(t, http.StatusOK, recorder.Code)
	assert.Equal(t, "https://app.example.com", recorder.Header().Get(AllowOriginHeader))
	assert.Contains(t, recorder.Header().Get(ExposeHeadersHeader), "Content-Disposition")

	request = httptest.NewRequest(http.MethodGet, "/healthz", nil)
	request.Header.Set("Origin", "https://evil.example.com")
	recorder = httptest.NewRecorder()
	handler.ServeHTTP(recorder, request)
	assert.Equal(t, http.StatusForbidden, recorder.Code)

	recorder = httptest.NewRecorder()
	handler.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	assert.Equal(t, http.StatusOK, recorder.Code)
}

func TestServer_CustomHandlerAndMiddleware(t *testing.T) {
	var order []string
	trace := func(name string) Middleware {
		return func(next http.Handler) http.Handler {
			return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				order = append(order, name)
				next.ServeHTTP(w, r)
			})
		}
	}
	srv, err := New(
		WithTransport(httpTransport(3000)),
		WithCustomHTTPHandler("GET /ping", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.NotNil(t, LoggerFromContext(r.Context()))
			_, _ = w.Write([]byte("pong"))
		})),
		WithMiddleware(trace("first"), trace("second")),
	)
	require.NoError(t, err)

	recorder := httptest.NewRecorder()
	srv.Handler().ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/ping", nil))
	assert.Equal(t, "pong", recorder.Body.String())
	assert.Equal(t, []string{"first", "second"}, order)

	_, err = New(WithTransport(httpTransport(3000)), WithCustomHTTPHandler("/x", nil))
	assert.Error(t, err)
}

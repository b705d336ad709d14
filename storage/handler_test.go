package storage

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/viant/mcpx/logging"
)

func newRequest(filename string) *http.Request {
	request := httptest.NewRequest(http.MethodGet, "/files/x", nil)
	request.SetPathValue(PathParameter, filename)
	return request
}

func TestHandler_EndToEnd(t *testing.T) {
	service := New(&Config{Location: t.TempDir()})
	reservation, err := service.Write(context.Background(), "a b.txt", []byte("hello"))
	require.NoError(t, err)

	recorder := httptest.NewRecorder()
	service.Handler().ServeHTTP(recorder, newRequest(reservation.StoredName))

	assert.Equal(t, http.StatusOK, recorder.Code)
	assert.Equal(t, "hello", recorder.Body.String())
	assert.Equal(t, DefaultContentType, recorder.Header().Get("Content-Type"))
	assert.Equal(t, `attachment; filename="a%20b.txt"`, recorder.Header().Get("Content-Disposition"))
	assert.Equal(t, "5", recorder.Header().Get("Content-Length"))
}

func TestHandler_Options(t *testing.T) {
	service := New(&Config{Location: t.TempDir(), Delimiter: "__"})
	reservation, err := service.Write(context.Background(), "chart__v1.png", []byte("png"))
	require.NoError(t, err)

	testCases := []struct {
		description       string
		options           []HandlerOption
		expectType        string
		expectDisposition string
	}{
		{
			description:       "fixed content type inline",
			options:           []HandlerOption{WithContentType("text/plain"), WithDisposition(DispositionInline)},
			expectType:        "text/plain",
			expectDisposition: `inline; filename="chart__v1.png"`,
		},
		{
			description:       "content type by extension",
			options:           []HandlerOption{WithContentTypeFunc(service.ContentTypeByExtension)},
			expectType:        "image/png",
			expectDisposition: `attachment; filename="chart__v1.png"`,
		},
		{
			description: "content type function receives stored name",
			options: []HandlerOption{WithContentTypeFunc(func(storedName string) string {
				return "x/" + storedName
			})},
			expectType:        "x/" + reservation.StoredName,
			expectDisposition: `attachment; filename="chart__v1.png"`,
		},
	}

	for _, testCase := range testCases {
		recorder := httptest.NewRecorder()
		service.Handler(testCase.options...).ServeHTTP(recorder, newRequest(reservation.StoredName))
		assert.Equal(t, http.StatusOK, recorder.Code, testCase.description)
		assert.Equal(t, testCase.expectType, recorder.Header().Get("Content-Type"), testCase.description)
		assert.Equal(t, testCase.expectDisposition, recorder.Header().Get("Content-Disposition"), testCase.description)
	}
}

func TestHandler_StatusChain(t *testing.T) {
	root := t.TempDir()
	dir := filepath.Join(root, "store")
	require.NoError(t, os.MkdirAll(dir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(root, "secret.txt"), []byte("secret"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "id~ok.txt"), []byte("ok"), 0o644))
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "id~folder"), 0o755))
	require.NoError(t, os.Symlink(filepath.Join("..", "secret.txt"), filepath.Join(dir, "id~link")))
	require.NoError(t, os.Symlink("id~ok.txt", filepath.Join(dir, "id~alias.txt")))

	service := New(&Config{Location: dir})
	handler := service.Handler(WithLogger(logging.NewDiscard()))

	testCases := []struct {
		description string
		filename    string
		expect      int
	}{
		{description: "missing filename", filename: "", expect: http.StatusBadRequest},
		{description: "existing file", filename: "id~ok.txt", expect: http.StatusOK},
		{description: "existing file by absolute path", filename: filepath.Join(dir, "id~ok.txt"), expect: http.StatusOK},
		{description: "unknown file", filename: "id~missing.txt", expect: http.StatusNotFound},
		{description: "existing sibling traversal", filename: "../secret.txt", expect: http.StatusForbidden},
		{description: "missing traversal", filename: "../../etc/passwd", expect: http.StatusForbidden},
		{description: "absolute outside", filename: "/etc/passwd", expect: http.StatusForbidden},
		{description: "absolute existing outside", filename: filepath.Join(root, "secret.txt"), expect: http.StatusForbidden},
		{description: "store directory itself", filename: ".", expect: http.StatusForbidden},
		{description: "parent directory", filename: "..", expect: http.StatusForbidden},
		{description: "inner traversal back inside", filename: "x/../id~ok.txt", expect: http.StatusOK},
		{description: "encoded traversal stays literal", filename: "%2e%2e%2fsecret.txt", expect: http.StatusNotFound},
		{description: "dot dot prefixed name", filename: "..id~ok.txt", expect: http.StatusNotFound},
		{description: "directory read fails", filename: "id~folder", expect: http.StatusInternalServerError},
		{description: "symlink leaving store", filename: "id~link", expect: http.StatusForbidden},
		{description: "symlink within store", filename: "id~alias.txt", expect: http.StatusOK},
	}

	for _, testCase := range testCases {
		recorder := httptest.NewRecorder()
		handler.ServeHTTP(recorder, newRequest(testCase.filename))
		assert.Equal(t, testCase.expect, recorder.Code, testCase.description)
		if testCase.expect != http.StatusOK {
			assert.NotContains(t, recorder.Body.String(), "secret", testCase.description)
		}
	}
}

func TestHandler_Containment(t *testing.T) {
	dir := t.TempDir()
	service := New(&Config{Location: dir})
	handler := service.Handler(WithLogger(logging.NewDiscard()))
	for _, filename := range []string{
		"../../etc/passwd",
		"../" + filepath.Base(dir) + "/../../etc/passwd",
		"/etc/passwd",
		"/",
		"./../x",
		"..%2f..%2fetc%2fpasswd",
		"%2e%2e/%2e%2e/etc/passwd",
	} {
		recorder := httptest.NewRecorder()
		handler.ServeHTTP(recorder, newRequest(filename))
		assert.Contains(t, []int{http.StatusForbidden, http.StatusNotFound}, recorder.Code, filename)
	}
}

func TestHandler_InternalErrorHidesDetail(t *testing.T) {
	service := New(&Config{Location: "s3://bucket/private"})
	recorder := httptest.NewRecorder()
	service.Handler(WithLogger(logging.NewDiscard())).ServeHTTP(recorder, newRequest("id~a.txt"))
	assert.Equal(t, http.StatusInternalServerError, recorder.Code)
	assert.NotContains(t, recorder.Body.String(), "bucket")
}

func TestMount(t *testing.T) {
	service := New(&Config{Location: t.TempDir()})
	reservation, err := service.Write(context.Background(), "report.csv", []byte("a,b\n1,2\n"))
	require.NoError(t, err)

	mux := http.NewServeMux()
	Mount(mux, "/files/", service.Handler())
	server := httptest.NewServer(mux)
	defer server.Close()

	URI, err := service.URI(reservation.StoredName, nil)
	require.NoError(t, err)
	assert.Contains(t, URI, reservation.StoredName)

	response, err := http.Get(server.URL + "/files/" + reservation.StoredName)
	require.NoError(t, err)
	defer response.Body.Close()
	assert.Equal(t, http.StatusOK, response.StatusCode)
	assert.Equal(t, `attachment; filename="report.csv"`, response.Header.Get("Content-Disposition"))

	missing, err := http.Get(server.URL + "/files/nope")
	require.NoError(t, err)
	defer missing.Body.Close()
	assert.Equal(t, http.StatusNotFound, missing.StatusCode)

	empty, err := http.Get(server.URL + "/files/")
	require.NoError(t, err)
	defer empty.Body.Close()
	assert.Equal(t, http.StatusBadRequest, empty.StatusCode)
}

func TestContentDisposition(t *testing.T) {
	testCases := []struct {
		description string
		disposition string
		filename    string
		expect      string
	}{
		{description: "plain", disposition: DispositionInline, filename: "report.csv", expect: `inline; filename="report.csv"`},
		{description: "space", disposition: DispositionAttachment, filename: "a b.txt", expect: `attachment; filename="a%20b.txt"`},
		{description: "reserved characters", disposition: DispositionAttachment, filename: "a&b+c=d:e@f$.txt", expect: `attachment; filename="a%26b%2Bc%3Dd%3Ae%40f%24.txt"`},
		{description: "quote", disposition: "", filename: `say "hi".txt`, expect: `attachment; filename="say%20%22hi%22.txt"`},
	}
	for _, testCase := range testCases {
		assert.Equal(t, testCase.expect, contentDisposition(testCase.disposition, testCase.filename), testCase.description)
	}
}

func TestHandler_PrefixFallback(t *testing.T) {
	service := New(&Config{Location: t.TempDir()})
	reservation, err := service.Write(context.Background(), "a.txt", []byte("abc"))
	require.NoError(t, err)

	handler := service.Handler(WithPrefix("/download"))
	recorder := httptest.NewRecorder()
	handler.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/download/"+reservation.StoredName, nil))
	assert.Equal(t, http.StatusOK, recorder.Code)
	assert.Equal(t, "abc", recorder.Body.String())

	recorder = httptest.NewRecorder()
	handler.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/download/", nil))
	assert.Equal(t, http.StatusBadRequest, recorder.Code)

	recorder = httptest.NewRecorder()
	service.Handler().ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/download/"+reservation.StoredName, nil))
	assert.Equal(t, http.StatusBadRequest, recorder.Code, "no prefix and no path value")
}

package imagefetch

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/promptfinder/core/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestFetcher(t *testing.T, handler http.HandlerFunc, maxSize int64) (*Fetcher, string) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	u, err := url.Parse(srv.URL)
	require.NoError(t, err)

	f := New(config.FetcherConfig{
		AllowedHosts:      []string{u.Hostname()},
		MaxImageSizeBytes: maxSize,
		TimeoutSeconds:    5,
	})
	return f, srv.URL
}

func TestFetchSuccess(t *testing.T) {
	payload := []byte("\x89PNG fake image bytes")
	f, base := newTestFetcher(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "image/png")
		w.Write(payload)
	}, 1024)

	img, err := f.Fetch(context.Background(), base+"/art/test.png")
	require.NoError(t, err)
	assert.Equal(t, payload, img.Data)
	assert.Equal(t, "image/png", img.MIMEType)
}

func TestFetchRejectsDisallowedHost(t *testing.T) {
	f := New(config.FetcherConfig{AllowedHosts: []string{"cdn.example.com"}})

	_, err := f.Fetch(context.Background(), "https://evil.example.org/a.png")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not allowlisted")
}

func TestFetchAllowsSubdomainOfAllowlistedHost(t *testing.T) {
	f := New(config.FetcherConfig{AllowedHosts: []string{"example.com"}})

	// No server behind it, but host validation happens before the request.
	_, err := f.Fetch(context.Background(), "ftp://media.example.com/a.png")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "scheme")
}

func TestFetchRejectsNonHTTPScheme(t *testing.T) {
	f := New(config.FetcherConfig{AllowedHosts: []string{"example.com"}})

	_, err := f.Fetch(context.Background(), "file:///etc/passwd")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "scheme")
}

func TestFetchRejectsOversizedBody(t *testing.T) {
	f, base := newTestFetcher(t, func(w http.ResponseWriter, r *http.Request) {
		// No Content-Length so the streamed cap has to catch it.
		w.Header().Set("Content-Type", "image/jpeg")
		flusher := w.(http.Flusher)
		w.Write([]byte(strings.Repeat("x", 600)))
		flusher.Flush()
	}, 512)

	_, err := f.Fetch(context.Background(), base+"/big.jpg")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "too large")
}

func TestFetchRejectsOversizedContentLength(t *testing.T) {
	f, base := newTestFetcher(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "image/jpeg")
		w.Write([]byte(strings.Repeat("x", 600)))
	}, 512)

	_, err := f.Fetch(context.Background(), base+"/big.jpg")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "too large")
}

func TestFetchRejectsNonImageContentType(t *testing.T) {
	f, base := newTestFetcher(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		w.Write([]byte("<html>not an image</html>"))
	}, 1024)

	_, err := f.Fetch(context.Background(), base+"/page")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "content type")
}

func TestFetchRejectsErrorStatus(t *testing.T) {
	f, base := newTestFetcher(t, func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}, 1024)

	_, err := f.Fetch(context.Background(), base+"/missing.png")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "status 404")
}

func TestMIMEResolution(t *testing.T) {
	assert.Equal(t, "image/webp", mimeFor("/a/b.webp", ""))
	assert.Equal(t, "image/gif", mimeFor("/x.GIF", ""))
	assert.Equal(t, "image/jpeg", mimeFor("/x.jpeg", ""))
	assert.Equal(t, "image/png", mimeFor("/noext", "image/png; charset=binary"))
	assert.Equal(t, "image/jpeg", mimeFor("/noext", ""))
}

func TestMIMEClampsUnsupportedImageTypes(t *testing.T) {
	assert.Equal(t, "image/jpeg", mimeFor("/noext", "image/svg+xml"))
	assert.Equal(t, "image/jpeg", mimeFor("/logo.svg", "image/svg+xml"))
	assert.Equal(t, "image/jpeg", mimeFor("/pic.bmp", "image/bmp"))
	assert.Equal(t, "image/jpeg", mimeFor("/raw.tiff", "image/tiff; charset=binary"))
}

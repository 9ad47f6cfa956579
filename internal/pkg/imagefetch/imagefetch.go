// Package imagefetch downloads media for vision analysis. Every failure is
// terminal for the caller: a URL that cannot be fetched safely yields an
// error, never a partial or substitute image.
package imagefetch

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"path"
	"strings"
	"time"

	"github.com/promptfinder/core/internal/config"
)

// Image is a downloaded media payload ready for base64 embedding.
type Image struct {
	Data     []byte
	MIMEType string
}

// Fetcher downloads and validates images from allowlisted hosts.
type Fetcher struct {
	client  *http.Client
	hosts   []string
	maxSize int64
}

func New(cfg config.FetcherConfig) *Fetcher {
	timeout := time.Duration(cfg.TimeoutSeconds) * time.Second
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	maxSize := cfg.MaxImageSizeBytes
	if maxSize <= 0 {
		maxSize = 5 * 1024 * 1024
	}
	return &Fetcher{
		client:  &http.Client{Timeout: timeout},
		hosts:   cfg.AllowedHosts,
		maxSize: maxSize,
	}
}

// Fetch downloads the image at rawURL after validating scheme, host, and
// size limits. The response body is capped during streaming so a lying
// Content-Length header cannot exceed the configured maximum.
func (f *Fetcher) Fetch(ctx context.Context, rawURL string) (*Image, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return nil, fmt.Errorf("invalid media url: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("unsupported url scheme %q", u.Scheme)
	}
	if !f.hostAllowed(u.Hostname()) {
		return nil, fmt.Errorf("host %q is not allowlisted", u.Hostname())
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, err
	}

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch media: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetch media: unexpected status %d", resp.StatusCode)
	}
	if resp.ContentLength > f.maxSize {
		return nil, fmt.Errorf("media too large: %d bytes (limit %d)", resp.ContentLength, f.maxSize)
	}

	ct := strings.ToLower(resp.Header.Get("Content-Type"))
	if ct != "" && !strings.HasPrefix(ct, "image/") {
		return nil, fmt.Errorf("unexpected content type %q", ct)
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, f.maxSize+1))
	if err != nil {
		return nil, fmt.Errorf("read media body: %w", err)
	}
	if int64(len(data)) > f.maxSize {
		return nil, fmt.Errorf("media too large: exceeds %d bytes", f.maxSize)
	}
	if len(data) == 0 {
		return nil, fmt.Errorf("empty media body")
	}

	return &Image{Data: data, MIMEType: mimeFor(u.Path, ct)}, nil
}

func (f *Fetcher) hostAllowed(host string) bool {
	host = strings.ToLower(host)
	for _, allowed := range f.hosts {
		if host == allowed || strings.HasSuffix(host, "."+allowed) {
			return true
		}
	}
	return false
}

// mimeFor resolves the image MIME type from the URL extension, falling back
// to the response Content-Type. Vision providers only accept png, webp, gif
// and jpeg, so anything else clamps to JPEG.
func mimeFor(urlPath, contentType string) string {
	switch strings.ToLower(path.Ext(urlPath)) {
	case ".png":
		return "image/png"
	case ".webp":
		return "image/webp"
	case ".gif":
		return "image/gif"
	case ".jpg", ".jpeg":
		return "image/jpeg"
	}
	mt, _, _ := strings.Cut(contentType, ";")
	switch strings.TrimSpace(mt) {
	case "image/png", "image/webp", "image/gif":
		return strings.TrimSpace(mt)
	}
	return "image/jpeg"
}

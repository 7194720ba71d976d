// SPDX-License-Identifier: EPL-2.0

package loader

import (
	"context"
	"fmt"
	"io"
	"io/fs"
	"net/http"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"strings"
)

// Fetcher retrieves the raw bytes behind a URL.
type Fetcher interface {
	Fetch(ctx context.Context, url string) ([]byte, error)
}

// FetcherFunc adapts a function to Fetcher.
type FetcherFunc func(ctx context.Context, url string) ([]byte, error)

func (f FetcherFunc) Fetch(ctx context.Context, url string) ([]byte, error) {
	return f(ctx, url)
}

// HTTPFetcher issues GET requests. Any status outside 2xx is a StatusError.
type HTTPFetcher struct {
	// Client defaults to http.DefaultClient.
	Client *http.Client
	// MaxBytes caps the body size when positive. A longer body fails with
	// ErrBodyTooLarge rather than being cut short.
	MaxBytes int64
}

func (h HTTPFetcher) Fetch(ctx context.Context, rawURL string) ([]byte, error) {
	client := h.Client
	if client == nil {
		client = http.DefaultClient
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, fmt.Errorf("building request: %w", err)
	}

	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &StatusError{URL: rawURL, Code: resp.StatusCode}
	}

	if h.MaxBytes <= 0 {
		data, err := io.ReadAll(resp.Body)
		if err != nil {
			return nil, fmt.Errorf("reading body: %w", err)
		}
		return data, nil
	}

	if resp.ContentLength > h.MaxBytes {
		return nil, fmt.Errorf("%w: %d > %d bytes", ErrBodyTooLarge, resp.ContentLength, h.MaxBytes)
	}
	// one byte past the cap tells a full body from an oversized one
	data, err := io.ReadAll(io.LimitReader(resp.Body, h.MaxBytes+1))
	if err != nil {
		return nil, fmt.Errorf("reading body: %w", err)
	}
	if int64(len(data)) > h.MaxBytes {
		return nil, fmt.Errorf("%w: more than %d bytes", ErrBodyTooLarge, h.MaxBytes)
	}
	return data, nil
}

// FSFetcher reads URLs as slash separated paths inside FS. A leading slash
// is ignored.
type FSFetcher struct {
	FS fs.FS
}

func (f FSFetcher) Fetch(ctx context.Context, name string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	name = path.Clean(strings.TrimPrefix(name, "/"))
	data, err := fs.ReadFile(f.FS, name)
	if err != nil {
		return nil, fmt.Errorf("%w", err)
	}
	return data, nil
}

// FileFetcher reads local files given as paths or file:// URLs. Relative
// paths resolve against Root.
type FileFetcher struct {
	Root string
}

func (f FileFetcher) Fetch(ctx context.Context, rawURL string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	p := rawURL
	if strings.HasPrefix(rawURL, "file:") {
		u, err := url.Parse(rawURL)
		if err != nil {
			return nil, fmt.Errorf("%w", err)
		}
		p = u.Path
	}
	p = filepath.FromSlash(p)
	if !filepath.IsAbs(p) && f.Root != "" {
		p = filepath.Join(f.Root, p)
	}

	data, err := os.ReadFile(p)
	if err != nil {
		return nil, fmt.Errorf("%w", err)
	}
	return data, nil
}

// MuxFetcher picks a fetcher by URL scheme. The "" key serves URLs without
// a scheme.
type MuxFetcher map[string]Fetcher

// DefaultFetcher serves http, https, file and bare paths.
func DefaultFetcher() MuxFetcher {
	return MuxFetcher{
		"http":  HTTPFetcher{},
		"https": HTTPFetcher{},
		"file":  FileFetcher{},
		"":      FileFetcher{},
	}
}

func (m MuxFetcher) Fetch(ctx context.Context, rawURL string) ([]byte, error) {
	if rawURL == "" {
		return nil, ErrEmptyURL
	}

	u, err := url.Parse(rawURL)
	if err != nil {
		return nil, fmt.Errorf("%w", err)
	}

	scheme := strings.ToLower(u.Scheme)
	// drive letters parse as one-letter schemes
	if len(scheme) == 1 {
		scheme = ""
	}

	f, ok := m[scheme]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedScheme, scheme)
	}
	return f.Fetch(ctx, rawURL)
}

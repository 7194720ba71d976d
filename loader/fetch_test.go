// SPDX-License-Identifier: EPL-2.0

package loader

import (
	"context"
	"errors"
	"io/fs"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"testing/fstest"
)

func TestHTTPFetcher(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/ok.wav":
			_, _ = w.Write([]byte("RIFF-data"))
		default:
			http.NotFound(w, r)
		}
	}))
	t.Cleanup(srv.Close)

	f := HTTPFetcher{Client: srv.Client()}

	data, err := f.Fetch(context.Background(), srv.URL+"/ok.wav")
	if err != nil {
		t.Fatalf("Fetch() error = %v", err)
	}
	if string(data) != "RIFF-data" {
		t.Errorf("Fetch() = %q, want RIFF-data", data)
	}

	_, err = f.Fetch(context.Background(), srv.URL+"/missing.wav")
	var se *StatusError
	if !errors.As(err, &se) || se.Code != http.StatusNotFound {
		t.Errorf("Fetch() error = %v, want StatusError 404", err)
	}
}

func TestHTTPFetcher_MaxBytes(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/chunked" {
			// no Content-Length, so only the read can catch the overflow
			w.(http.Flusher).Flush()
		}
		_, _ = w.Write([]byte("0123456789"))
	}))
	t.Cleanup(srv.Close)

	tests := []struct {
		name    string
		path    string
		max     int64
		want    string
		wantErr error
	}{
		{"over cap", "/", 4, "", ErrBodyTooLarge},
		{"over cap streamed", "/chunked", 9, "", ErrBodyTooLarge},
		{"exactly cap", "/", 10, "0123456789", nil},
		{"exactly cap streamed", "/chunked", 10, "0123456789", nil},
		{"no cap", "/", 0, "0123456789", nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			data, err := HTTPFetcher{Client: srv.Client(), MaxBytes: tt.max}.Fetch(context.Background(), srv.URL+tt.path)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("Fetch() error = %v, want %v", err, tt.wantErr)
			}
			if string(data) != tt.want {
				t.Errorf("Fetch() = %q, want %q", data, tt.want)
			}
		})
	}
}

func TestFSFetcher(t *testing.T) {
	t.Parallel()

	f := FSFetcher{FS: fstest.MapFS{"sfx/hit.wav": {Data: []byte("hit")}}}

	for _, name := range []string{"sfx/hit.wav", "/sfx/hit.wav", "sfx/../sfx/hit.wav"} {
		data, err := f.Fetch(context.Background(), name)
		if err != nil || string(data) != "hit" {
			t.Errorf("Fetch(%q) = (%q, %v), want (hit, nil)", name, data, err)
		}
	}

	if _, err := f.Fetch(context.Background(), "nope.wav"); !errors.Is(err, fs.ErrNotExist) {
		t.Errorf("Fetch() error = %v, want fs.ErrNotExist", err)
	}
}

func TestFileFetcher(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "a.wav"), []byte("local"), 0o600); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name string
		f    FileFetcher
		url  string
	}{
		{"absolute path", FileFetcher{}, filepath.Join(dir, "a.wav")},
		{"relative to root", FileFetcher{Root: dir}, "a.wav"},
		{"file url", FileFetcher{}, "file://" + filepath.ToSlash(filepath.Join(dir, "a.wav"))},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			data, err := tt.f.Fetch(context.Background(), tt.url)
			if err != nil || string(data) != "local" {
				t.Errorf("Fetch(%q) = (%q, %v), want (local, nil)", tt.url, data, err)
			}
		})
	}
}

func TestMuxFetcher(t *testing.T) {
	t.Parallel()

	echo := func(tag string) Fetcher {
		return FetcherFunc(func(_ context.Context, url string) ([]byte, error) {
			return []byte(tag + ":" + url), nil
		})
	}
	m := MuxFetcher{"https": echo("web"), "": echo("local")}

	tests := []struct {
		url  string
		want string
		err  error
	}{
		{"https://cdn.example/a.mp3", "web:https://cdn.example/a.mp3", nil},
		{"HTTPS://cdn.example/a.mp3", "web:HTTPS://cdn.example/a.mp3", nil},
		{"sounds/a.wav", "local:sounds/a.wav", nil},
		{"ftp://old.example/a.wav", "", ErrUnsupportedScheme},
		{"", "", ErrEmptyURL},
	}

	for _, tt := range tests {
		got, err := m.Fetch(context.Background(), tt.url)
		if !errors.Is(err, tt.err) {
			t.Errorf("Fetch(%q) error = %v, want %v", tt.url, err, tt.err)
			continue
		}
		if string(got) != tt.want {
			t.Errorf("Fetch(%q) = %q, want %q", tt.url, got, tt.want)
		}
	}
}

func TestDefaultFetcher_Schemes(t *testing.T) {
	t.Parallel()

	m := DefaultFetcher()
	for _, scheme := range []string{"http", "https", "file", ""} {
		if _, ok := m[scheme]; !ok {
			t.Errorf("DefaultFetcher() lacks scheme %q", scheme)
		}
	}
}

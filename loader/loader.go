// SPDX-License-Identifier: EPL-2.0

package loader

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/ik5/audpool/engine"
)

// BufferDecoder turns encoded bytes into a playable buffer.
// *engine.Context implements it.
type BufferDecoder interface {
	DecodeAudioData(ctx context.Context, data []byte) (*engine.Buffer, error)
}

// Status of a Result.
type Status int

const (
	Loading Status = iota
	Ready
	Failed
)

func (s Status) String() string {
	switch s {
	case Loading:
		return "loading"
	case Ready:
		return "ready"
	case Failed:
		return "failed"
	}
	return fmt.Sprintf("Status(%d)", int(s))
}

// Result is the outcome of one load. It settles exactly once, to either a
// buffer or a *LoadFailure.
type Result struct {
	url  string
	done chan struct{}

	buf *engine.Buffer
	err error
}

func newResult(url string) *Result {
	return &Result{url: url, done: make(chan struct{})}
}

func (r *Result) settle(buf *engine.Buffer, err error) {
	r.buf, r.err = buf, err
	close(r.done)
}

func (r *Result) URL() string { return r.url }

// Done is closed once the load settles.
func (r *Result) Done() <-chan struct{} { return r.done }

func (r *Result) Status() Status {
	select {
	case <-r.done:
		if r.err != nil {
			return Failed
		}
		return Ready
	default:
		return Loading
	}
}

// Buffer is the decoded audio, or nil while loading or after a failure.
func (r *Result) Buffer() *engine.Buffer {
	if r.Status() != Ready {
		return nil
	}
	return r.buf
}

// Err is the *LoadFailure of a failed load, nil otherwise.
func (r *Result) Err() error {
	if r.Status() != Failed {
		return nil
	}
	return r.err
}

// Wait blocks until the load settles or ctx ends. Giving up on ctx does not
// cancel the load.
func (r *Result) Wait(ctx context.Context) (*engine.Buffer, error) {
	select {
	case <-r.done:
		return r.buf, r.err
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// Loader fetches and decodes assets in the background.
type Loader struct {
	fetcher Fetcher
	decoder BufferDecoder
	log     *slog.Logger
}

// New returns a Loader. A nil fetcher means DefaultFetcher, a nil logger
// slog.Default.
func New(f Fetcher, d BufferDecoder, log *slog.Logger) *Loader {
	if f == nil {
		f = DefaultFetcher()
	}
	if log == nil {
		log = slog.Default()
	}
	return &Loader{fetcher: f, decoder: d, log: log.With("component", "loader")}
}

// Load starts fetching url and returns at once. The load runs until it
// succeeds or fails; only ctx can cut it short.
func (l *Loader) Load(ctx context.Context, url string) *Result {
	r := newResult(url)
	go l.run(ctx, r)
	return r
}

func (l *Loader) run(ctx context.Context, r *Result) {
	start := time.Now()

	data, err := l.fetcher.Fetch(ctx, r.url)
	if err != nil {
		l.log.Warn("fetch failed", "url", r.url, "error", err)
		r.settle(nil, &LoadFailure{URL: r.url, Stage: StageFetch, Err: err})
		return
	}

	buf, err := l.decoder.DecodeAudioData(ctx, data)
	if err != nil {
		l.log.Warn("decode failed", "url", r.url, "bytes", len(data), "error", err)
		r.settle(nil, &LoadFailure{URL: r.url, Stage: StageDecode, Err: err})
		return
	}

	l.log.Debug("loaded", "url", r.url, "frames", buf.Frames(), "took", time.Since(start))
	r.settle(buf, nil)
}

// SPDX-License-Identifier: EPL-2.0

package audpool

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/ik5/audpool/engine"
	"github.com/ik5/audpool/loader"
)

// Sound is one registered, addressable sound. It is created by a Mixer,
// loads in the background and becomes playable once its voice pool is
// built. Until then, and after Close, every playback call is a no-op.
//
// Sound is safe for concurrent use.
type Sound struct {
	mixer *Mixer
	name  string
	index int
	kind  Kind
	url   string
	opts  Options
	log   *slog.Logger

	settled chan struct{}

	mu      sync.Mutex
	status  loader.Status
	err     error
	closed  bool
	buffer  *engine.Buffer
	pool    *VoicePool
	spatial *Spatializer
}

func newSound(m *Mixer, kind Kind, name string, index int, url string, opts Options) *Sound {
	s := &Sound{
		mixer:   m,
		name:    name,
		index:   index,
		kind:    kind,
		url:     url,
		opts:    opts,
		log:     m.log.With("sound", name),
		settled: make(chan struct{}),
		status:  loader.Loading,
		pool:    NewVoicePool(m.ctx, m.master),
	}
	if kind == Spatial {
		s.spatial = &Spatializer{s: s}
		if opts.Position != nil {
			s.spatial.pos, s.spatial.set = *opts.Position, true
		}
	}
	return s
}

// Name is the registered name, or the registration index in decimal when
// none was given.
func (s *Sound) Name() string { return s.name }

// Index is the sound's position in its mixer's registry.
func (s *Sound) Index() int { return s.index }

func (s *Sound) Kind() Kind { return s.kind }

// URL is the source chosen for this sound, "" when none was playable.
func (s *Sound) URL() string { return s.url }

func (s *Sound) Options() Options { return s.opts }

func (s *Sound) Status() loader.Status {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.status
}

// Err explains a Failed status: ErrFormatUnsupported, a *loader.LoadFailure
// or a pool build error.
func (s *Sound) Err() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.err
}

// Ready reports whether the sound is loaded and not closed.
func (s *Sound) Ready() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.status == loader.Ready && !s.closed
}

// Buffer is the decoded audio, nil until loaded.
func (s *Sound) Buffer() *engine.Buffer {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.buffer
}

// Settled is closed once loading finished, either way.
func (s *Sound) Settled() <-chan struct{} { return s.settled }

// Wait blocks until the sound settles and returns its failure, if any.
func (s *Sound) Wait(ctx context.Context) error {
	select {
	case <-s.settled:
		return s.Err()
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Spatial returns the spatial controls of a Spatial sound.
func (s *Sound) Spatial() (*Spatializer, bool) {
	return s.spatial, s.spatial != nil
}

// Inspect runs fn with the voice pool held, for tests and meters. fn must
// not call back into s.
func (s *Sound) Inspect(fn func(*VoicePool)) {
	s.mu.Lock()
	defer s.mu.Unlock()

	fn(s.pool)
}

// Play starts the next voice in the pool.
func (s *Sound) Play() {
	s.withPool("play", func(p *VoicePool) {
		if err := p.Play(); err != nil {
			s.log.Warn("play failed", "error", err)
		}
	})
}

// Stop silences every playing voice.
func (s *Sound) Stop() {
	s.withPool("stop", (*VoicePool).StopAll)
}

// SetVolume sets every voice's gain to v at once.
func (s *Sound) SetVolume(v float64) {
	s.withPool("set volume", func(p *VoicePool) { p.SetVolume(v) })
}

// FadeVolume ramps every voice's gain to target over d.
func (s *Sound) FadeVolume(target float64, d time.Duration) {
	s.withPool("fade volume", func(p *VoicePool) { p.FadeVolume(target, d) })
}

// Close stops and disconnects every voice. The sound stays registered but
// is silent from then on. Closing twice is a no-op.
func (s *Sound) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return
	}
	s.closed = true
	s.pool.Close()
	s.log.Debug("sound closed")
}

// withPool runs fn if the pool is usable and reports a NotReady diagnostic
// otherwise.
func (s *Sound) withPool(op string, fn func(*VoicePool)) {
	s.mu.Lock()
	var err error
	switch {
	case s.closed:
		err = ErrSoundClosed
	case s.status != loader.Ready:
		err = ErrNotReady
	default:
		fn(s.pool)
	}
	s.mu.Unlock()

	if err != nil {
		s.mixer.diagnose(Diagnostic{Kind: NotReady, Sound: s.name, URL: s.url, Err: err})
		s.log.Debug("ignored "+op, "reason", err)
	}
}

func (s *Sound) await(res *loader.Result) {
	defer close(s.settled)

	<-res.Done()
	if err := res.Err(); err != nil {
		s.fail(err)
		if s.isClosed() {
			return
		}

		kind := FetchFailure
		var lf *loader.LoadFailure
		if errors.As(err, &lf) && lf.Stage == loader.StageDecode {
			kind = DecodeFailure
		}
		s.mixer.diagnose(Diagnostic{Kind: kind, Sound: s.name, URL: s.url, Err: err})
		return
	}

	if s.build(res.Buffer()) && s.opts.AutoPlay {
		s.Play()
	}
}

func (s *Sound) build(buf *engine.Buffer) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return false
	}

	var panner *engine.PannerOptions
	if s.kind == Spatial {
		o := SpatialPannerOptions()
		panner = &o
	}
	if err := s.pool.Build(buf, s.opts.poolSize(), s.opts.Loop, panner); err != nil {
		s.status, s.err = loader.Failed, err
		s.log.Error("building voice pool", "error", err)
		return false
	}

	if s.opts.Volume != nil {
		s.pool.SetVolume(*s.opts.Volume)
	}
	if s.spatial != nil && s.spatial.set {
		s.pool.SetPosition(s.spatial.pos)
	}

	s.buffer = buf
	s.status = loader.Ready
	s.log.Debug("sound ready", "voices", s.pool.Len(), "duration", buf.Duration())
	return true
}

func (s *Sound) fail(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.status, s.err = loader.Failed, err
}

func (s *Sound) isClosed() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.closed
}

// SPDX-License-Identifier: EPL-2.0

package audpool

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"sync"
	"time"

	"github.com/ik5/audpool/engine"
	"github.com/ik5/audpool/loader"
)

// Config sets up a Mixer. Every field is optional.
type Config struct {
	// Context is the shared output context. When nil the mixer creates one
	// from Engine and closes it on Close.
	Context *engine.Context
	Engine  engine.Options

	// Fetcher retrieves asset bytes; nil means loader.DefaultFetcher.
	Fetcher loader.Fetcher

	// OnReady is called once the shared context is confirmed running.
	OnReady func()
	// OnDiagnostic receives every absorbed misuse or failure. It may be
	// called from loader goroutines.
	OnDiagnostic func(Diagnostic)

	Logger *slog.Logger
}

// Ref addresses a registered sound: Name or Index.
type Ref interface {
	find(sounds []*Sound) (*Sound, bool)
	String() string
}

// Name matches the first sound registered under that name.
type Name string

// Index is a position in registration order.
type Index int

func (n Name) find(sounds []*Sound) (*Sound, bool) {
	for _, s := range sounds {
		if s.name == string(n) {
			return s, true
		}
	}
	return nil, false
}

func (n Name) String() string { return string(n) }

func (i Index) find(sounds []*Sound) (*Sound, bool) {
	if i < 0 || int(i) >= len(sounds) {
		return nil, false
	}
	return sounds[i], true
}

func (i Index) String() string { return "#" + strconv.Itoa(int(i)) }

// Mixer owns the shared context, the master gain every voice routes
// through, and the registry of sounds. Sounds never fail the mixer: a sound
// that cannot load just stays silent, and misuse is reported through
// diagnostics.
//
// Mixer is safe for concurrent use.
type Mixer struct {
	ctx     *engine.Context
	ownsCtx bool
	master  *engine.Gain
	loader  *loader.Loader
	log     *slog.Logger

	onReady      func()
	onDiagnostic func(Diagnostic)
	running      chan struct{}

	lifetime context.Context
	cancel   context.CancelFunc

	mu     sync.Mutex
	sounds []*Sound
	closed bool
}

// NewMixer wires the master gain into the context's destination and starts
// resuming the context in the background.
func NewMixer(cfg Config) (*Mixer, error) {
	log := cfg.Logger
	if log == nil {
		log = slog.Default()
	}

	ctx, owns := cfg.Context, false
	if ctx == nil {
		if cfg.Engine.Logger == nil {
			cfg.Engine.Logger = log
		}
		c, err := engine.NewContext(cfg.Engine)
		if err != nil {
			return nil, fmt.Errorf("creating audio context: %w", err)
		}
		ctx, owns = c, true
	}

	master := ctx.NewGain()
	if err := master.Connect(ctx.Destination()); err != nil {
		return nil, fmt.Errorf("wiring master gain: %w", err)
	}

	lifetime, cancel := context.WithCancel(context.Background())
	m := &Mixer{
		ctx:          ctx,
		ownsCtx:      owns,
		master:       master,
		loader:       loader.New(cfg.Fetcher, ctx, log),
		log:          log.With("component", "mixer"),
		onReady:      cfg.OnReady,
		onDiagnostic: cfg.OnDiagnostic,
		running:      make(chan struct{}),
		lifetime:     lifetime,
		cancel:       cancel,
	}

	go m.resume()
	return m, nil
}

// resume brings the context out of suspension. Failure is logged and
// reported, never fatal.
func (m *Mixer) resume() {
	if m.ctx.State() == engine.Suspended {
		if err := m.ctx.Resume(m.lifetime); err != nil {
			if m.lifetime.Err() == nil {
				m.diagnose(Diagnostic{Kind: ResumeFailed, Err: err})
			}
			return
		}
	}
	if m.ctx.State() != engine.Running {
		return
	}

	close(m.running)
	m.log.Debug("context running", "sample_rate", m.ctx.SampleRate(), "channels", m.ctx.Channels())
	if m.onReady != nil {
		m.onReady()
	}
}

func (m *Mixer) Context() *engine.Context { return m.ctx }
func (m *Mixer) Master() *engine.Gain     { return m.master }

// Running is closed once the shared context is confirmed running. It stays
// open forever if resuming failed.
func (m *Mixer) Running() <-chan struct{} { return m.running }

// RegisterSound adds a plain sound. An empty name defaults to the sound's
// index.
func (m *Mixer) RegisterSound(src Src, name string, opts Options) *Sound {
	return m.Register(Plain, src, name, opts)
}

// RegisterSpatialSound adds a sound whose voices carry a panner.
func (m *Mixer) RegisterSpatialSound(src Src, name string, opts Options) *Sound {
	return m.Register(Spatial, src, name, opts)
}

// RegisterMany registers every entry in order, dispatching on its Kind.
func (m *Mixer) RegisterMany(entries []Entry) []*Sound {
	out := make([]*Sound, 0, len(entries))
	for _, e := range entries {
		out = append(out, m.Register(e.Kind, e.Src, e.Name, e.Options))
	}
	return out
}

// Register picks a playable source from src, appends the sound to the
// registry and starts loading it. The returned sound is never nil; check
// its status or Wait on it to learn whether it loaded.
func (m *Mixer) Register(kind Kind, src Src, name string, opts Options) *Sound {
	u, selErr := SelectSupported(src, m.ctx)

	m.mu.Lock()
	index := len(m.sounds)
	if name == "" {
		name = strconv.Itoa(index)
	}
	if m.closed {
		m.mu.Unlock()

		// named as if registered, but kept out of the registry
		s := newSound(m, kind, name, index, u, opts)
		s.fail(ErrMixerClosed)
		close(s.settled)
		return s
	}
	s := newSound(m, kind, name, index, u, opts)
	m.sounds = append(m.sounds, s)
	m.mu.Unlock()

	if selErr != nil {
		s.fail(selErr)
		m.diagnose(Diagnostic{Kind: FormatUnsupported, Sound: name, Err: selErr})
		close(s.settled)
		return s
	}

	go s.await(m.loader.Load(m.lifetime, u))
	return s
}

// Sounds lists the registered sounds in registration order.
func (m *Mixer) Sounds() []*Sound {
	m.mu.Lock()
	defer m.mu.Unlock()

	return append([]*Sound(nil), m.sounds...)
}

// Lookup resolves ref. A miss is reported as a LookupMiss diagnostic.
func (m *Mixer) Lookup(ref Ref) (*Sound, bool) {
	if ref != nil {
		if s, ok := ref.find(m.Sounds()); ok {
			return s, true
		}
	}

	var what string
	if ref != nil {
		what = ref.String()
	}
	m.diagnose(Diagnostic{Kind: LookupMiss, Sound: what})
	return nil, false
}

// PlayAll plays every registered sound once.
func (m *Mixer) PlayAll() {
	for _, s := range m.Sounds() {
		s.Play()
	}
}

// PauseAll stops every voice of every registered sound.
func (m *Mixer) PauseAll() {
	for _, s := range m.Sounds() {
		s.Stop()
	}
}

// SetGlobalVolume sets the master gain at once.
func (m *Mixer) SetGlobalVolume(v float64) {
	m.master.Gain().SetValue(v)
}

// FadeGlobalVolume ramps the master gain to target over d.
func (m *Mixer) FadeGlobalVolume(target float64, d time.Duration) {
	m.master.Gain().LinearRampToValueAtTime(target, m.ctx.CurrentTime()+d.Seconds())
}

// SetSpatialPosition moves the sound ref addresses. Plain sounds are left
// alone and reported as a TypeMismatch.
func (m *Mixer) SetSpatialPosition(ref Ref, x, y, z float64) {
	m.SetSpatialPositionFromPoint(ref, Point{X: x, Y: y, Z: z})
}

func (m *Mixer) SetSpatialPositionFromPoint(ref Ref, p Point) {
	s, ok := m.Lookup(ref)
	if !ok {
		return
	}
	sp, ok := s.Spatial()
	if !ok {
		m.diagnose(Diagnostic{Kind: TypeMismatch, Sound: s.name})
		return
	}
	sp.SetPositionFromPoint(p)
}

// BroadcastPositionFromPoint moves every spatial sound to p. Plain sounds
// are skipped silently.
func (m *Mixer) BroadcastPositionFromPoint(p Point) {
	for _, s := range m.Sounds() {
		if sp, ok := s.Spatial(); ok {
			sp.SetPositionFromPoint(p)
		}
	}
}

// Wait blocks until every sound registered so far has settled. It returns
// the failures of sounds that did not load, joined, or ctx's error.
func (m *Mixer) Wait(ctx context.Context) error {
	var errs []error
	for _, s := range m.Sounds() {
		if err := s.Wait(ctx); err != nil {
			if ctxErr := ctx.Err(); ctxErr != nil {
				return ctxErr
			}
			errs = append(errs, fmt.Errorf("sound %s: %w", s.name, err))
		}
	}
	return errors.Join(errs...)
}

// Close stops loads in flight, closes every sound and disconnects the
// master gain. A context the mixer created is closed too.
func (m *Mixer) Close() error {
	m.mu.Lock()
	if m.closed {
		m.mu.Unlock()
		return nil
	}
	m.closed = true
	sounds := m.sounds
	m.mu.Unlock()

	m.cancel()
	for _, s := range sounds {
		s.Close()
	}
	m.master.Disconnect()
	m.log.Debug("mixer closed", "sounds", len(sounds))

	if m.ownsCtx {
		return m.ctx.Close()
	}
	return nil
}

// SPDX-License-Identifier: EPL-2.0

package engine

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/ik5/audpool/audio"
	"github.com/ik5/audpool/formats"
)

// RenderQuantum is the largest block, in frames, the graph is pulled in.
const RenderQuantum = 128

const (
	DefaultSampleRate = 48000
	DefaultChannels   = 2
)

// State of a Context.
type State int

const (
	Suspended State = iota
	Running
	Closed
)

func (s State) String() string {
	switch s {
	case Suspended:
		return "suspended"
	case Running:
		return "running"
	case Closed:
		return "closed"
	}
	return fmt.Sprintf("State(%d)", int(s))
}

// Options configure a Context. The zero value is a running 48 kHz stereo
// context with the bundled decoders.
type Options struct {
	SampleRate int
	Channels   int

	// StartSuspended leaves the context suspended until Resume, the way
	// browsers hold back audio until a user gesture.
	StartSuspended bool

	// ResumeGate, when set, must succeed before Resume lets the clock run.
	// An output backend that needs time to open the device plugs in here.
	ResumeGate func(context.Context) error

	Registry *audio.Registry
	Logger   *slog.Logger
}

// Context owns an audio graph and its clock. The clock only moves while the
// context is running and something calls Render.
//
// All methods of the context and of its nodes are safe for concurrent use;
// they share one lock with Render.
type Context struct {
	mu sync.Mutex

	rate     int
	channels int
	state    State
	frame    int64
	block    uint64

	gate     func(context.Context) error
	registry *audio.Registry
	log      *slog.Logger

	dest *Destination
}

func NewContext(opts Options) (*Context, error) {
	rate := opts.SampleRate
	if rate == 0 {
		rate = DefaultSampleRate
	}
	if rate < 0 {
		return nil, ErrInvalidSampleRate
	}

	channels := opts.Channels
	if channels == 0 {
		channels = DefaultChannels
	}
	if channels != 1 && channels != 2 {
		return nil, ErrInvalidChannels
	}

	reg := opts.Registry
	if reg == nil {
		reg = formats.NewRegistry()
	}

	log := opts.Logger
	if log == nil {
		log = slog.Default()
	}

	c := &Context{
		rate:     rate,
		channels: channels,
		state:    Running,
		gate:     opts.ResumeGate,
		registry: reg,
		log:      log.With("component", "engine"),
	}
	if opts.StartSuspended {
		c.state = Suspended
	}
	c.dest = &Destination{}
	c.dest.node = newNode(c, c.dest, true, false)

	return c, nil
}

func (c *Context) SampleRate() int { return c.rate }
func (c *Context) Channels() int   { return c.channels }

// Destination is the graph's sink; Render reads from it.
func (c *Context) Destination() *Destination { return c.dest }

func (c *Context) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.state
}

// CurrentTime is the context clock in seconds.
func (c *Context) CurrentTime() float64 {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.timeLocked()
}

func (c *Context) timeLocked() float64 {
	return float64(c.frame) / float64(c.rate)
}

// Resume starts the clock. It waits on the resume gate, if any, without
// holding the context lock.
func (c *Context) Resume(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("resume: %w", err)
	}
	if c.State() == Closed {
		return ErrContextClosed
	}

	if c.gate != nil {
		if err := c.gate(ctx); err != nil {
			return fmt.Errorf("resume: %w", err)
		}
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	switch c.state {
	case Closed:
		return ErrContextClosed
	case Suspended:
		c.state = Running
		c.log.Debug("context resumed", "time", c.timeLocked())
	}
	return nil
}

// Suspend freezes the clock; Render outputs silence until Resume.
func (c *Context) Suspend() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	switch c.state {
	case Closed:
		return ErrContextClosed
	case Running:
		c.state = Suspended
		c.log.Debug("context suspended", "time", c.timeLocked())
	}
	return nil
}

// Close stops the context for good. Closing twice is a no-op.
func (c *Context) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.state != Closed {
		c.state = Closed
		c.log.Debug("context closed", "time", c.timeLocked())
	}
	return nil
}

// Render fills dst with interleaved output and returns the number of
// frames written. len(dst) should be a multiple of Channels; a trailing
// partial frame is left untouched. While suspended, dst is zeroed and the
// clock stands still.
func (c *Context) Render(dst []float32) (int, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	frames := len(dst) / c.channels
	out := dst[:frames*c.channels]

	switch c.state {
	case Closed:
		return 0, ErrContextClosed
	case Suspended:
		clear(out)
		return frames, nil
	}

	for done := 0; done < frames; {
		n := min(RenderQuantum, frames-done)
		c.block++
		buf := c.dest.pull(c.block, c.frame, n)
		copy(out[done*c.channels:], buf)

		c.frame += int64(n)
		done += n
	}
	return frames, nil
}

// CanPlayType reports whether the context can decode mediaType.
func (c *Context) CanPlayType(mediaType string) audio.Support {
	return c.registry.CanPlayType(mediaType)
}

// DecodeAudioData decodes an encoded file into a Buffer at the context's
// rate. On a mono context the result is folded to one channel. The format
// is detected from the data itself.
func (c *Context) DecodeAudioData(ctx context.Context, data []byte) (*Buffer, error) {
	if c.State() == Closed {
		return nil, ErrContextClosed
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	format := audio.Sniff(data)
	if format == "" {
		return nil, ErrUnknownFormat
	}
	dec, ok := c.registry.Get(format)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, format)
	}

	src, err := dec.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decoding %s: %w", format, err)
	}
	defer src.Close()

	samples, channels, err := audio.Collect(src, c.rate, c.channels == 1, src.BufSize())
	if err != nil {
		return nil, fmt.Errorf("decoding %s: %w", format, err)
	}
	if len(samples) == 0 {
		return nil, ErrEmptyAudio
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	c.log.Debug("decoded audio", "format", format, "frames", len(samples)/channels, "channels", channels)

	return &Buffer{samples: samples, channels: channels, rate: c.rate}, nil
}

// Destination is the sink of a Context's graph.
type Destination struct {
	node
}

func (d *Destination) process(_ int64, _ int, in, out []float32) {
	copy(out, in)
}

// SPDX-License-Identifier: EPL-2.0

package engine

type sourceState int

const (
	sourceIdle sourceState = iota
	sourcePlaying
	sourceStopped
	sourceEnded
)

// BufferSource plays a Buffer. Like its Web Audio namesake it fires once:
// after Start it can be stopped but never restarted, so every playback
// needs a new source.
type BufferSource struct {
	node

	buffer *Buffer
	loop   bool

	state sourceState
	start int64 // context frame playback began at
}

// NewBufferSource returns an unstarted source for buf. A nil buffer plays
// silence.
func (c *Context) NewBufferSource(buf *Buffer) *BufferSource {
	s := &BufferSource{buffer: buf}
	s.node = newNode(c, s, false, true)
	return s
}

func (s *BufferSource) Buffer() *Buffer { return s.buffer }

func (s *BufferSource) Loop() bool {
	s.ctx.mu.Lock()
	defer s.ctx.mu.Unlock()

	return s.loop
}

// SetLoop makes playback wrap around instead of ending. It may be changed
// while playing.
func (s *BufferSource) SetLoop(loop bool) {
	s.ctx.mu.Lock()
	defer s.ctx.mu.Unlock()

	s.loop = loop
}

// Start begins playback at the current context time.
func (s *BufferSource) Start() error {
	s.ctx.mu.Lock()
	defer s.ctx.mu.Unlock()

	if s.ctx.state == Closed {
		return ErrContextClosed
	}
	if s.state != sourceIdle {
		return ErrSourceStarted
	}
	s.state = sourcePlaying
	s.start = s.ctx.frame
	return nil
}

// Stop ends playback. Stopping a source that already ended or was stopped
// is a no-op.
func (s *BufferSource) Stop() error {
	s.ctx.mu.Lock()
	defer s.ctx.mu.Unlock()

	switch s.state {
	case sourceIdle:
		return ErrSourceNotStarted
	case sourcePlaying:
		s.state = sourceStopped
	}
	return nil
}

// Playing reports whether the source was started and has neither been
// stopped nor played to its end.
func (s *BufferSource) Playing() bool {
	s.ctx.mu.Lock()
	defer s.ctx.mu.Unlock()

	return s.state == sourcePlaying
}

// Ended reports whether a non-looping source played all of its buffer.
func (s *BufferSource) Ended() bool {
	s.ctx.mu.Lock()
	defer s.ctx.mu.Unlock()

	return s.state == sourceEnded
}

func (s *BufferSource) process(first int64, frames int, _, out []float32) {
	if s.state != sourcePlaying || s.buffer == nil || s.buffer.Frames() == 0 {
		clear(out)
		return
	}

	ch := s.ctx.channels
	length := int64(s.buffer.Frames())
	for f := range frames {
		pos := first + int64(f) - s.start
		if pos >= length {
			if !s.loop {
				clear(out[f*ch:])
				s.state = sourceEnded
				return
			}
			pos %= length
		}
		for c := range ch {
			out[f*ch+c] = s.buffer.At(int(pos), c)
		}
	}
}

// SPDX-License-Identifier: EPL-2.0

package audpool

import (
	"time"

	"github.com/ik5/audpool/engine"
)

// Voice is one independently playable instance of a sound. Its gain, and
// panner if any, live as long as the pool; the source is replaced on every
// play because a buffer source fires only once.
type Voice struct {
	source  *engine.BufferSource
	gain    *engine.Gain
	panner  *engine.Panner
	playing bool
}

func (v *Voice) Source() *engine.BufferSource { return v.source }
func (v *Voice) Gain() *engine.Gain           { return v.gain }

// Panner is nil for plain voices.
func (v *Voice) Panner() *engine.Panner { return v.panner }

// Playing reports whether the voice was triggered and its source is still
// producing sound.
func (v *Voice) Playing() bool {
	return v.playing && v.source.Playing()
}

// input is where the voice's source connects.
func (v *Voice) input() engine.Node {
	if v.panner != nil {
		return v.panner
	}
	return v.gain
}

// VoicePool is a fixed ring of voices for one buffer, played round robin.
// Playing more often than there are voices cuts off the oldest one, which
// bounds how many copies of a sound overlap.
//
// A VoicePool is not safe for concurrent use; Sound serializes access.
type VoicePool struct {
	ctx *engine.Context
	out engine.Node

	buffer *engine.Buffer
	loop   bool
	voices []*Voice
	cursor int
}

// NewVoicePool returns an empty pool whose voices will feed out.
func NewVoicePool(ctx *engine.Context, out engine.Node) *VoicePool {
	return &VoicePool{ctx: ctx, out: out}
}

// Build wires count voices for buf: source -> [panner ->] gain -> out, with
// every gain at unity. A non-nil panner adds a panner per voice. Build may
// only succeed once.
func (p *VoicePool) Build(buf *engine.Buffer, count int, loop bool, panner *engine.PannerOptions) error {
	if p.voices != nil {
		return ErrPoolBuilt
	}
	if count <= 0 {
		return ErrInvalidPoolSize
	}

	voices := make([]*Voice, 0, count)
	for range count {
		v := &Voice{gain: p.ctx.NewGain()}
		if err := v.gain.Connect(p.out); err != nil {
			disconnect(voices)
			return err
		}
		if panner != nil {
			v.panner = p.ctx.NewPanner(*panner)
			if err := v.panner.Connect(v.gain); err != nil {
				v.gain.Disconnect()
				disconnect(voices)
				return err
			}
		}

		v.source = p.ctx.NewBufferSource(buf)
		v.source.SetLoop(loop)
		if err := v.source.Connect(v.input()); err != nil {
			v.gain.Disconnect()
			disconnect(voices)
			return err
		}
		voices = append(voices, v)
	}

	p.buffer = buf
	p.loop = loop
	p.voices = voices
	p.cursor = 0
	return nil
}

func disconnect(voices []*Voice) {
	for _, v := range voices {
		v.source.Disconnect()
		if v.panner != nil {
			v.panner.Disconnect()
		}
		v.gain.Disconnect()
	}
}

func (p *VoicePool) Len() int { return len(p.voices) }

// Built reports whether Build succeeded.
func (p *VoicePool) Built() bool { return p.voices != nil }

// Voice returns voice i, or nil when i is out of range.
func (p *VoicePool) Voice(i int) *Voice {
	if i < 0 || i >= len(p.voices) {
		return nil
	}
	return p.voices[i]
}

// Cursor is the index of the voice the next Play uses.
func (p *VoicePool) Cursor() int { return p.cursor }

// Play triggers the voice under the cursor and advances the cursor. A voice
// still sounding is stopped hard first. Play on an unbuilt pool returns
// ErrNotReady and changes nothing.
func (p *VoicePool) Play() error {
	if len(p.voices) == 0 {
		return ErrNotReady
	}

	v := p.voices[p.cursor]
	if v.playing {
		_ = v.source.Stop()
	}
	v.source.Disconnect()

	src := p.ctx.NewBufferSource(p.buffer)
	src.SetLoop(p.loop)
	if err := src.Connect(v.input()); err != nil {
		return err
	}
	if err := src.Start(); err != nil {
		src.Disconnect()
		return err
	}

	v.source = src
	v.playing = true
	p.cursor = (p.cursor + 1) % len(p.voices)
	return nil
}

// StopAll stops every playing voice. It is idempotent.
func (p *VoicePool) StopAll() {
	for _, v := range p.voices {
		if v.playing {
			_ = v.source.Stop()
			v.playing = false
		}
	}
}

// SetVolume jumps every voice's gain to v, dropping any fade in progress.
func (p *VoicePool) SetVolume(v float64) {
	for _, voice := range p.voices {
		voice.gain.Gain().SetValue(v)
	}
}

// FadeVolume ramps every voice's gain linearly from its current value to
// target, arriving d from now on the context clock. A later fade or
// SetVolume takes over from the moment it is called.
func (p *VoicePool) FadeVolume(target float64, d time.Duration) {
	end := p.ctx.CurrentTime() + d.Seconds()
	for _, voice := range p.voices {
		voice.gain.Gain().LinearRampToValueAtTime(target, end)
	}
}

// SetPosition moves every voice's panner to pos. It reports false for a
// pool without panners.
func (p *VoicePool) SetPosition(pos Point) bool {
	if len(p.voices) == 0 || p.voices[0].panner == nil {
		return false
	}
	for _, v := range p.voices {
		v.panner.SetPosition(pos.X, pos.Y, pos.Z)
	}
	return true
}

// Close stops and disconnects every voice and empties the pool. A closed
// pool cannot be built again.
func (p *VoicePool) Close() {
	p.StopAll()
	disconnect(p.voices)
	if p.voices != nil {
		p.voices = p.voices[:0]
	}
	p.cursor = 0
}

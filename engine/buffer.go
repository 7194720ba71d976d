// SPDX-License-Identifier: EPL-2.0

package engine

import "time"

// Buffer is decoded audio held in memory: interleaved float32 samples at a
// fixed rate. A Buffer is never modified after creation and may be shared
// by any number of sources.
type Buffer struct {
	samples  []float32
	channels int
	rate     int
}

// NewBuffer copies samples into a new Buffer.
func NewBuffer(samples []float32, channels, sampleRate int) (*Buffer, error) {
	if channels <= 0 || len(samples)%channels != 0 {
		return nil, ErrInvalidBuffer
	}
	if sampleRate <= 0 {
		return nil, ErrInvalidSampleRate
	}

	return &Buffer{
		samples:  append([]float32(nil), samples...),
		channels: channels,
		rate:     sampleRate,
	}, nil
}

func (b *Buffer) Channels() int   { return b.channels }
func (b *Buffer) SampleRate() int { return b.rate }
func (b *Buffer) Frames() int     { return len(b.samples) / b.channels }

// Duration of one pass through the buffer.
func (b *Buffer) Duration() time.Duration {
	return time.Duration(b.Frames()) * time.Second / time.Duration(b.rate)
}

// At returns the sample of channel ch at frame. Channels past the last one
// read the last channel, so mono buffers feed every output channel.
func (b *Buffer) At(frame, ch int) float32 {
	ch = min(ch, b.channels-1)
	return b.samples[frame*b.channels+ch]
}

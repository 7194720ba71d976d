// SPDX-License-Identifier: EPL-2.0

package flac

import (
	"errors"
	"fmt"
	"io"

	"github.com/gopxl/beep/v2"
	beepflac "github.com/gopxl/beep/v2/flac"
	"github.com/ik5/audpool/audio"
)

// Format is the registry key of this decoder.
const Format = audio.FormatFLAC

// MediaTypes claimed by this decoder.
var MediaTypes = []string{"audio/flac", "audio/x-flac"}

// ErrNotFlacFile is returned when the stream has no valid fLaC header.
var ErrNotFlacFile = errors.New("not a FLAC file")

// streamer is the part of beep.StreamSeekCloser the source needs.
type streamer interface {
	Stream(samples [][2]float64) (int, bool)
	Err() error
	Len() int
	Close() error
}

// source adapts beep's stereo frame pairs back to the file's own channel
// count. beep duplicates mono into both slots, so mono takes the left one.
type source struct {
	st       streamer
	rate     int
	channels int
	pairs    [][2]float64
}

func (s *source) SampleRate() int { return s.rate }
func (s *source) Channels() int   { return s.channels }
func (s *source) Close() error    { return s.st.Close() }
func (s *source) BufSize() int    { return 4096 }
func (s *source) Frames() int64   { return int64(s.st.Len()) }

func (s *source) ReadSamples(dst []float32) (int, error) {
	frames := len(dst) / s.channels
	if frames == 0 {
		return 0, nil
	}

	if cap(s.pairs) < frames {
		s.pairs = make([][2]float64, frames)
	}
	pairs := s.pairs[:frames]

	n, ok := s.st.Stream(pairs)
	if !ok || n == 0 {
		if err := s.st.Err(); err != nil {
			return 0, fmt.Errorf("%w", err)
		}
		return 0, io.EOF
	}

	if s.channels == 1 {
		for i, p := range pairs[:n] {
			dst[i] = float32(p[0])
		}
		return n, nil
	}
	for i, p := range pairs[:n] {
		dst[2*i] = float32(p[0])
		dst[2*i+1] = float32(p[1])
	}
	return 2 * n, nil
}

// Decoder reads FLAC streams. Files with more than two channels are folded
// to stereo by the underlying decoder.
type Decoder struct{}

func (Decoder) Decode(r io.Reader) (audio.Source, error) {
	st, format, err := beepflac.Decode(r)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrNotFlacFile, err)
	}

	return newSource(st, format)
}

func newSource(st streamer, format beep.Format) (*source, error) {
	if format.SampleRate <= 0 {
		_ = st.Close()
		return nil, audio.ErrInvalidSampleRate
	}

	ch := format.NumChannels
	switch {
	case ch <= 0:
		_ = st.Close()
		return nil, audio.ErrNoChannels
	case ch > 2:
		ch = 2
	}

	return &source{st: st, rate: int(format.SampleRate), channels: ch}, nil
}

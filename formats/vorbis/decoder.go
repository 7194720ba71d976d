// SPDX-License-Identifier: EPL-2.0

package vorbis

import (
	"fmt"
	"io"

	"github.com/ik5/audpool/audio"
	"github.com/jfreymuth/oggvorbis"
)

// Format is the registry key of this decoder.
const Format = audio.FormatVorbis

// MediaTypes claimed by this decoder.
var MediaTypes = []string{"audio/ogg", "audio/vorbis"}

// oggReader is the part of oggvorbis.Reader the source needs.
type oggReader interface {
	SampleRate() int
	Channels() int
	Length() int64
	Read([]float32) (int, error)
}

type source struct {
	dec oggReader
}

func (s *source) SampleRate() int { return s.dec.SampleRate() }
func (s *source) Channels() int   { return s.dec.Channels() }
func (s *source) Close() error    { return nil }
func (s *source) BufSize() int    { return 4096 }
func (s *source) Frames() int64   { return s.dec.Length() }

// ReadSamples reads whole frames straight into dst. oggvorbis already yields
// interleaved float32, so no conversion is needed.
func (s *source) ReadSamples(dst []float32) (int, error) {
	ch := s.dec.Channels()
	usable := len(dst) - len(dst)%ch
	if usable == 0 {
		return 0, nil
	}

	n, err := s.dec.Read(dst[:usable])
	if err == io.EOF {
		if n == 0 {
			return 0, io.EOF
		}
		return n, nil
	}
	if err != nil {
		return n, fmt.Errorf("%w", err)
	}
	return n, nil
}

// Decoder reads Ogg Vorbis streams.
type Decoder struct{}

func (Decoder) Decode(r io.Reader) (audio.Source, error) {
	dec, err := oggvorbis.NewReader(r)
	if err != nil {
		return nil, fmt.Errorf("%w", err)
	}
	if dec.Channels() <= 0 {
		return nil, audio.ErrNoChannels
	}

	return &source{dec: dec}, nil
}

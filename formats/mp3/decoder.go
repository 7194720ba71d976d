// SPDX-License-Identifier: EPL-2.0

package mp3

import (
	"encoding/binary"
	"fmt"
	"io"

	gomp3 "github.com/hajimehoshi/go-mp3"
	"github.com/ik5/audpool/audio"
)

// Format is the registry key of this decoder.
const Format = audio.FormatMP3

// MediaTypes claimed by this decoder.
var MediaTypes = []string{"audio/mpeg", "audio/mp3"}

// go-mp3 always produces 16-bit little-endian stereo.
const (
	channels       = 2
	bytesPerSample = 2
)

// pcmReader is the part of gomp3.Decoder the source needs.
type pcmReader interface {
	Read([]byte) (int, error)
	SampleRate() int
	Length() int64
}

type source struct {
	dec pcmReader
	buf []byte
	// odd trailing byte of the previous Read
	carry    byte
	hasCarry bool
}

func (s *source) SampleRate() int { return s.dec.SampleRate() }
func (s *source) Channels() int   { return channels }
func (s *source) Close() error    { return nil }
func (s *source) BufSize() int    { return cap(s.buf) / bytesPerSample }

func (s *source) Frames() int64 {
	if n := s.dec.Length(); n > 0 {
		return n / (channels * bytesPerSample)
	}
	return 0
}

func (s *source) ReadSamples(dst []float32) (int, error) {
	if len(dst) == 0 {
		return 0, nil
	}

	need := len(dst) * bytesPerSample
	if cap(s.buf) < need {
		s.buf = make([]byte, need)
	}
	s.buf = s.buf[:need]

	off := 0
	if s.hasCarry {
		s.buf[0] = s.carry
		off = 1
		s.hasCarry = false
	}

	n, err := s.dec.Read(s.buf[off:])
	n += off
	if n%bytesPerSample == 1 {
		n--
		s.carry = s.buf[n]
		s.hasCarry = true
	}

	samples := n / bytesPerSample
	for i := range samples {
		dst[i] = float32(int16(binary.LittleEndian.Uint16(s.buf[2*i:]))) / 32768.0
	}

	if err == io.EOF {
		if samples == 0 {
			return 0, io.EOF
		}
		return samples, nil
	}
	if err != nil {
		return samples, fmt.Errorf("%w", err)
	}
	return samples, nil
}

// Decoder reads MPEG-1/2 Layer III streams.
type Decoder struct{}

func (Decoder) Decode(r io.Reader) (audio.Source, error) {
	dec, err := gomp3.NewDecoder(r)
	if err != nil {
		return nil, fmt.Errorf("%w", err)
	}

	return &source{
		dec: dec,
		buf: make([]byte, 8192),
	}, nil
}

// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"fmt"
	"io"
)

// maxEmptyReads bounds consecutive (0, nil) reads before Collect gives up on
// a source that never reports io.EOF.
const maxEmptyReads = 64

// Collect drains src into memory as interleaved float32 samples at
// targetRate. When mono is set, multi-channel input is folded into one
// channel. It returns the samples and their channel count.
//
// The pipeline is src -> Resampler (only if the rates differ) -> MonoMixer
// (only if mono is requested), read in chunks of bufSize samples.
//
// Example:
//
//	src, _ := wav.Decoder{}.Decode(file)
//	samples, channels, err := audio.Collect(src, 48000, false, 4096)
func Collect(src Source, targetRate int, mono bool, bufSize int) ([]float32, int, error) {
	if targetRate <= 0 {
		return nil, 0, ErrInvalidSampleRate
	}
	if src.Channels() <= 0 {
		return nil, 0, ErrNoChannels
	}

	var pipe Source = src
	if src.SampleRate() != targetRate {
		pipe = NewResampler(pipe, targetRate)
	}
	if mono && pipe.Channels() > 1 {
		pipe = NewMonoMixer(pipe)
	}

	channels := pipe.Channels()
	if bufSize < channels {
		bufSize = 4096
	}
	bufSize -= bufSize % channels

	var out []float32
	if s, ok := pipe.(Sized); ok && s.Frames() > 0 {
		out = make([]float32, 0, s.Frames()*int64(channels))
	}

	buf := make([]float32, bufSize)
	empty := 0
	for {
		n, err := pipe.ReadSamples(buf)
		if n > 0 {
			out = append(out, buf[:n]...)
			empty = 0
		}

		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, channels, fmt.Errorf("%w", err)
		}
		if n == 0 {
			empty++
			if empty >= maxEmptyReads {
				break
			}
		}
	}

	return out, channels, nil
}

// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"fmt"
	"io"

	"github.com/ik5/audpool/utils"
)

// Resampler streams src at another sample rate using cubic interpolation.
// Works on interleaved samples; preserves channel count.
// A one-pole low-pass runs over the input when downsampling.
//
// Output frame k sits at source position k*step; edge frames are repeated
// so the first and last output frames interpolate against real data only.
type Resampler struct {
	src      Source
	dstRate  int
	step     float64 // source frames per output frame
	channels int

	// window holds source frames [start, start+frames), interleaved.
	window []float32
	start  int
	frames int
	eof    bool

	scratch []float32
	emitted int64

	lowpass []float32
	alpha   float32
	primed  bool
}

func NewResampler(src Source, dstRate int) *Resampler {
	channels := src.Channels()
	step := float64(src.SampleRate()) / float64(dstRate)

	r := &Resampler{
		src:      src,
		dstRate:  dstRate,
		step:     step,
		channels: channels,
		lowpass:  make([]float32, channels),
	}

	if step > 1.0 {
		// Rough cutoff near the destination Nyquist; not a proper FIR.
		r.alpha = 0.5
	}

	chunk := 4096
	if channels > 0 {
		chunk -= chunk % channels
	}
	r.scratch = make([]float32, chunk)

	return r
}

func (r *Resampler) SampleRate() int { return r.dstRate }
func (r *Resampler) Channels() int   { return r.channels }
func (r *Resampler) BufSize() int    { return r.src.BufSize() }

// Frames estimates the output length when src is Sized.
func (r *Resampler) Frames() int64 {
	s, ok := r.src.(Sized)
	if !ok || s.Frames() <= 0 {
		return 0
	}
	return int64(float64(s.Frames())/r.step + 0.5)
}

func (r *Resampler) Close() error {
	if err := r.src.Close(); err != nil {
		return fmt.Errorf("%w", err)
	}
	return nil
}

// fill reads from src until frame idx is buffered or the source ends.
// Frames before keep are discarded first.
func (r *Resampler) fill(idx, keep int) error {
	if keep > r.start {
		drop := min(keep-r.start, r.frames)
		copy(r.window, r.window[drop*r.channels:r.frames*r.channels])
		r.window = r.window[:(r.frames-drop)*r.channels]
		r.frames -= drop
		r.start += drop
	}

	for !r.eof && r.start+r.frames <= idx {
		n, err := r.src.ReadSamples(r.scratch)
		n -= n % r.channels
		if n > 0 {
			r.push(r.scratch[:n])
		}
		if err == io.EOF {
			r.eof = true
			break
		}
		if err != nil {
			return fmt.Errorf("%w", err)
		}
	}
	return nil
}

func (r *Resampler) push(samples []float32) {
	if r.alpha > 0 {
		if !r.primed {
			copy(r.lowpass, samples[:r.channels])
			r.primed = true
		}
		for i := 0; i < len(samples); i += r.channels {
			for c := range r.channels {
				v := r.alpha*samples[i+c] + (1-r.alpha)*r.lowpass[c]
				r.lowpass[c] = v
				samples[i+c] = v
			}
		}
	}
	r.window = append(r.window, samples...)
	r.frames += len(samples) / r.channels
}

// at returns frame idx clamped to the known source range.
func (r *Resampler) at(idx int) []float32 {
	if idx < r.start {
		idx = r.start
	}
	if last := r.start + r.frames - 1; idx > last {
		idx = last
	}
	off := (idx - r.start) * r.channels
	return r.window[off : off+r.channels]
}

// ReadSamples produces dst samples at the destination rate.
// dst length should be a multiple of the channel count.
func (r *Resampler) ReadSamples(dst []float32) (int, error) {
	if r.channels <= 0 {
		return 0, ErrNoChannels
	}
	if len(dst)%r.channels != 0 {
		return 0, ErrInvalidDstSize
	}

	written := 0
	for written < len(dst) {
		pos := float64(r.emitted) * r.step
		i := int(pos)

		if err := r.fill(i+2, i-1); err != nil {
			return written, err
		}
		if i >= r.start+r.frames {
			// only possible once the source is exhausted
			break
		}

		x := float32(pos - float64(i))
		y0, y1, y2, y3 := r.at(i-1), r.at(i), r.at(i+1), r.at(i+2)
		for c := range r.channels {
			dst[written+c] = utils.CubicInterpolate(y0[c], y1[c], y2[c], y3[c], x)
		}

		written += r.channels
		r.emitted++
	}

	if written == 0 {
		return 0, io.EOF
	}
	return written, nil
}

// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"errors"
	"io"
	"math"
	"testing"

	"github.com/ik5/audpool/internal/audiotest"
)

func drain(t *testing.T, src Source, chunk int) []float32 {
	t.Helper()

	var out []float32
	buf := make([]float32, chunk)
	for {
		n, err := src.ReadSamples(buf)
		out = append(out, buf[:n]...)
		if err == io.EOF {
			return out
		}
		if err != nil {
			t.Fatalf("ReadSamples() error = %v", err)
		}
	}
}

func TestResampler_Metadata(t *testing.T) {
	t.Parallel()

	resampler := NewResampler(audiotest.NewSilentSource(44100, 2, 1000), 8000)

	if resampler.SampleRate() != 8000 {
		t.Errorf("SampleRate() = %d, want 8000", resampler.SampleRate())
	}
	if resampler.Channels() != 2 {
		t.Errorf("Channels() = %d, want 2", resampler.Channels())
	}
	if got := resampler.Frames(); got != 181 {
		t.Errorf("Frames() = %d, want 181", got)
	}
}

func TestResampler_OutputLength(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		srcRate  int
		dstRate  int
		channels int
		frames   int
		want     int // output frames
	}{
		{"same rate", 8000, 8000, 1, 100, 100},
		{"downsample 44k1 to 16k", 44100, 16000, 1, 44100, 16000},
		{"downsample stereo", 48000, 8000, 2, 4800, 800},
		{"upsample 8k to 16k", 8000, 16000, 1, 800, 1600},
		{"upsample 22k05 to 44k1 stereo", 22050, 44100, 2, 2205, 4410},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			src := audiotest.NewSineSource(tt.srcRate, tt.channels, tt.frames, 440)
			out := drain(t, NewResampler(src, tt.dstRate), 512*tt.channels)

			if got := len(out) / tt.channels; got != tt.want {
				t.Errorf("output frames = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestResampler_ConstantSignal(t *testing.T) {
	t.Parallel()

	src := audiotest.NewConstantSource(44100, 2, 4410, 0.5)
	out := drain(t, NewResampler(src, 48000), 1024)

	for i, v := range out {
		if math.Abs(float64(v-0.5)) > 1e-5 {
			t.Fatalf("out[%d] = %v, want 0.5", i, v)
		}
	}
}

func TestResampler_LinearRampStaysOnLine(t *testing.T) {
	t.Parallel()

	// Catmull-Rom reproduces straight lines exactly away from the edges.
	src := audiotest.NewRampSource(1000, 1, 1000)
	out := drain(t, NewResampler(src, 2000), 256)

	for k := 4; k < len(out)-4; k++ {
		want := float32(k) / 2 / 1000
		if math.Abs(float64(out[k]-want)) > 1e-4 {
			t.Fatalf("out[%d] = %v, want %v", k, out[k], want)
		}
	}
}

func TestResampler_InvalidDstSize(t *testing.T) {
	t.Parallel()

	resampler := NewResampler(audiotest.NewSilentSource(8000, 2, 10), 16000)

	if _, err := resampler.ReadSamples(make([]float32, 3)); !errors.Is(err, ErrInvalidDstSize) {
		t.Errorf("ReadSamples() error = %v, want ErrInvalidDstSize", err)
	}
}

func TestResampler_EmptySource(t *testing.T) {
	t.Parallel()

	resampler := NewResampler(audiotest.NewSilentSource(8000, 1, 0), 16000)

	n, err := resampler.ReadSamples(make([]float32, 64))
	if n != 0 || err != io.EOF {
		t.Errorf("ReadSamples() = (%d, %v), want (0, EOF)", n, err)
	}
}

func TestResampler_SourceError(t *testing.T) {
	t.Parallel()

	src := audiotest.NewSilentSource(8000, 1, 100)
	src.Err = errors.New("boom")

	_, err := NewResampler(src, 16000).ReadSamples(make([]float32, 64))
	if err == nil || err == io.EOF {
		t.Fatalf("ReadSamples() error = %v, want source error", err)
	}
	if !errors.Is(err, src.Err) {
		t.Errorf("error %v does not wrap the source error", err)
	}
}

func BenchmarkResampler_44k1To48k(b *testing.B) {
	buf := make([]float32, 4096)

	b.ReportAllocs()
	for b.Loop() {
		r := NewResampler(audiotest.NewSineSource(44100, 2, 44100, 440), 48000)
		for {
			_, err := r.ReadSamples(buf)
			if err != nil {
				break
			}
		}
	}
}

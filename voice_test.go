// SPDX-License-Identifier: EPL-2.0

package audpool

import (
	"errors"
	"math"
	"testing"
	"time"

	"github.com/ik5/audpool/engine"
)

func newPool(t *testing.T, n int, loop bool, panner *engine.PannerOptions) (*engine.Context, *VoicePool) {
	t.Helper()

	c, err := engine.NewContext(engine.Options{SampleRate: 1000, Channels: 2})
	if err != nil {
		t.Fatalf("NewContext() error = %v", err)
	}
	samples := make([]float32, 10000)
	for i := range samples {
		samples[i] = 0.5
	}
	buf, err := engine.NewBuffer(samples, 1, 1000)
	if err != nil {
		t.Fatalf("NewBuffer() error = %v", err)
	}

	p := NewVoicePool(c, c.Destination())
	if err := p.Build(buf, n, loop, panner); err != nil {
		t.Fatalf("Build() error = %v", err)
	}
	return c, p
}

func advance(t *testing.T, c *engine.Context, d time.Duration) {
	t.Helper()

	frames := int(d.Seconds() * float64(c.SampleRate()))
	if _, err := c.Render(make([]float32, frames*c.Channels())); err != nil {
		t.Fatalf("Render() error = %v", err)
	}
}

func TestVoicePool_Build(t *testing.T) {
	t.Parallel()

	_, p := newPool(t, 4, true, nil)
	if p.Len() != 4 || !p.Built() {
		t.Fatalf("Len() = %d, Built() = %v", p.Len(), p.Built())
	}
	for i := range p.Len() {
		v := p.Voice(i)
		if v.Gain().Gain().Value() != 1 {
			t.Errorf("voice %d gain = %v, want 1", i, v.Gain().Gain().Value())
		}
		if v.Panner() != nil {
			t.Errorf("voice %d has a panner in a plain pool", i)
		}
		if v.Playing() {
			t.Errorf("voice %d playing before any Play", i)
		}
		if !v.Source().Loop() {
			t.Errorf("voice %d source not looping", i)
		}
	}
	if p.Voice(-1) != nil || p.Voice(4) != nil {
		t.Error("Voice() out of range not nil")
	}
}

func TestVoicePool_BuildErrors(t *testing.T) {
	t.Parallel()

	c, p := newPool(t, 1, false, nil)
	buf, _ := engine.NewBuffer([]float32{0}, 1, 1000)
	if err := p.Build(buf, 1, false, nil); !errors.Is(err, ErrPoolBuilt) {
		t.Errorf("second Build() error = %v, want ErrPoolBuilt", err)
	}

	empty := NewVoicePool(c, c.Destination())
	if err := empty.Build(buf, 0, false, nil); !errors.Is(err, ErrInvalidPoolSize) {
		t.Errorf("Build(0) error = %v, want ErrInvalidPoolSize", err)
	}
	if err := empty.Play(); !errors.Is(err, ErrNotReady) {
		t.Errorf("Play() on unbuilt pool error = %v, want ErrNotReady", err)
	}
}

func TestVoicePool_RoundRobinRecyclesOldest(t *testing.T) {
	t.Parallel()

	for n := 1; n <= 5; n++ {
		_, p := newPool(t, n, false, nil)

		for range n {
			if err := p.Play(); err != nil {
				t.Fatalf("n=%d: Play() error = %v", n, err)
			}
		}
		first := make([]*engine.BufferSource, n)
		for i := range n {
			first[i] = p.Voice(i).Source()
			if !first[i].Playing() {
				t.Fatalf("n=%d: voice %d not playing after %d plays", n, i, n)
			}
		}
		if p.Cursor() != 0 {
			t.Fatalf("n=%d: Cursor() = %d after a full round, want 0", n, p.Cursor())
		}

		if err := p.Play(); err != nil {
			t.Fatalf("n=%d: Play() error = %v", n, err)
		}

		if first[0].Playing() {
			t.Errorf("n=%d: recycled source still playing", n)
		}
		if p.Voice(0).Source() == first[0] || !p.Voice(0).Playing() {
			t.Errorf("n=%d: voice 0 was not restarted with a fresh source", n)
		}
		for i := 1; i < n; i++ {
			if p.Voice(i).Source() != first[i] || !first[i].Playing() {
				t.Errorf("n=%d: voice %d disturbed by the extra play", n, i)
			}
		}
		if want := 1 % n; p.Cursor() != want {
			t.Errorf("n=%d: Cursor() = %d, want %d", n, p.Cursor(), want)
		}
	}
}

func TestVoicePool_ReplacedSourceKeepsLoop(t *testing.T) {
	t.Parallel()

	_, p := newPool(t, 2, true, nil)
	for range 3 {
		if err := p.Play(); err != nil {
			t.Fatal(err)
		}
	}
	for i := range p.Len() {
		if !p.Voice(i).Source().Loop() {
			t.Errorf("voice %d lost its loop flag", i)
		}
	}
}

func TestVoicePool_StopAll(t *testing.T) {
	t.Parallel()

	_, p := newPool(t, 3, false, nil)
	_ = p.Play()
	_ = p.Play()

	p.StopAll()
	p.StopAll()
	for i := range p.Len() {
		if p.Voice(i).Playing() {
			t.Errorf("voice %d playing after StopAll", i)
		}
	}
}

func TestVoicePool_SetVolumeCancelsFade(t *testing.T) {
	t.Parallel()

	c, p := newPool(t, 3, false, nil)
	p.FadeVolume(0, 2*time.Second)
	advance(t, c, 500*time.Millisecond)

	p.SetVolume(0.4)
	now := c.CurrentTime()
	for i := range p.Len() {
		g := p.Voice(i).Gain().Gain()
		for _, at := range []float64{now, now + 1, now + 5} {
			if got := g.ValueAt(at); got != 0.4 {
				t.Errorf("voice %d ValueAt(%v) = %v, want 0.4", i, at, got)
			}
		}
	}
}

func TestVoicePool_FadeReachesTarget(t *testing.T) {
	t.Parallel()

	c, p := newPool(t, 3, false, nil)
	advance(t, c, time.Second)
	p.SetVolume(0.8)

	start := c.CurrentTime()
	p.FadeVolume(0.2, 3*time.Second)

	for i := range p.Len() {
		g := p.Voice(i).Gain().Gain()
		if got := g.ValueAt(start + 3); math.Abs(got-0.2) > 1e-9 {
			t.Errorf("voice %d at T+d = %v, want 0.2", i, got)
		}
		if got := g.ValueAt(start + 1.5); math.Abs(got-0.5) > 1e-9 {
			t.Errorf("voice %d at T+d/2 = %v, want 0.5", i, got)
		}
		prev := g.ValueAt(start)
		for step := 1; step <= 30; step++ {
			v := g.ValueAt(start + float64(step)*0.1)
			if v > prev {
				t.Fatalf("voice %d fade rises at step %d", i, step)
			}
			prev = v
		}
	}
}

func TestVoicePool_SetPosition(t *testing.T) {
	t.Parallel()

	opts := SpatialPannerOptions()
	_, p := newPool(t, 3, false, &opts)
	if !p.SetPosition(Point{X: 1, Y: 2, Z: 3}) {
		t.Fatal("SetPosition() = false on spatial pool")
	}
	for i := range p.Len() {
		if got := p.Voice(i).Panner().Position(); got != (Point{X: 1, Y: 2, Z: 3}) {
			t.Errorf("voice %d at %+v", i, got)
		}
	}

	_, plain := newPool(t, 2, false, nil)
	if plain.SetPosition(Point{X: 1}) {
		t.Error("SetPosition() = true on plain pool")
	}
}

func TestVoicePool_Close(t *testing.T) {
	t.Parallel()

	c, p := newPool(t, 2, true, nil)
	_ = p.Play()
	src := p.Voice(0).Source()

	p.Close()
	if src.Playing() {
		t.Error("source still playing after Close")
	}
	if p.Len() != 0 {
		t.Errorf("Len() = %d after Close, want 0", p.Len())
	}
	if err := p.Play(); !errors.Is(err, ErrNotReady) {
		t.Errorf("Play() after Close error = %v, want ErrNotReady", err)
	}

	out := make([]float32, 20)
	_, _ = c.Render(out)
	for i, v := range out {
		if v != 0 {
			t.Fatalf("sample %d = %v after Close, want silence", i, v)
		}
	}
}

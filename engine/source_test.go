// SPDX-License-Identifier: EPL-2.0

package engine

import (
	"errors"
	"testing"
)

func TestBufferSource_SingleUse(t *testing.T) {
	t.Parallel()

	c := newTestContext(t, 1000, 1)
	src := c.NewBufferSource(constBuffer(t, c, 10, 1))

	if err := src.Stop(); !errors.Is(err, ErrSourceNotStarted) {
		t.Errorf("Stop() before Start error = %v, want ErrSourceNotStarted", err)
	}
	if err := src.Start(); err != nil {
		t.Fatalf("Start() error = %v", err)
	}
	if !src.Playing() {
		t.Error("Playing() = false after Start")
	}
	if err := src.Start(); !errors.Is(err, ErrSourceStarted) {
		t.Errorf("second Start() error = %v, want ErrSourceStarted", err)
	}

	if err := src.Stop(); err != nil {
		t.Errorf("Stop() error = %v", err)
	}
	if err := src.Stop(); err != nil {
		t.Errorf("second Stop() error = %v, want nil", err)
	}
	if err := src.Start(); !errors.Is(err, ErrSourceStarted) {
		t.Errorf("Start() after Stop error = %v, want ErrSourceStarted", err)
	}
}

func TestBufferSource_StopSilences(t *testing.T) {
	t.Parallel()

	c := newTestContext(t, 1000, 1)
	src := c.NewBufferSource(constBuffer(t, c, 1000, 1))
	_ = src.Connect(c.Destination())
	_ = src.Start()
	render(t, c, 5)

	_ = src.Stop()
	for i, v := range render(t, c, 5) {
		if v != 0 {
			t.Fatalf("sample %d after Stop = %v, want 0", i, v)
		}
	}
	if src.Ended() {
		t.Error("Ended() = true for a stopped source")
	}
}

func TestBufferSource_Loop(t *testing.T) {
	t.Parallel()

	c := newTestContext(t, 1000, 1)
	b, err := NewBuffer([]float32{0.1, 0.2, 0.3}, 1, 1000)
	if err != nil {
		t.Fatal(err)
	}
	src := c.NewBufferSource(b)
	src.SetLoop(true)
	if !src.Loop() {
		t.Fatal("Loop() = false after SetLoop(true)")
	}
	_ = src.Connect(c.Destination())
	_ = src.Start()

	out := render(t, c, 7)
	want := []float32{0.1, 0.2, 0.3, 0.1, 0.2, 0.3, 0.1}
	for i := range want {
		if out[i] != want[i] {
			t.Errorf("out[%d] = %v, want %v", i, out[i], want[i])
		}
	}
	if !src.Playing() {
		t.Error("looping source stopped playing")
	}

	src.SetLoop(false)
	render(t, c, 5)
	if !src.Ended() {
		t.Error("Ended() = false after loop cleared and buffer finished")
	}
}

func TestBufferSource_MonoBufferOnStereo(t *testing.T) {
	t.Parallel()

	c := newTestContext(t, 1000, 2)
	src := c.NewBufferSource(constBuffer(t, c, 4, 0.5))
	_ = src.Connect(c.Destination())
	_ = src.Start()

	out := render(t, c, 2)
	for i, v := range out {
		if v != 0.5 {
			t.Errorf("out[%d] = %v, want 0.5 on both channels", i, v)
		}
	}
}

func TestBufferSource_StartOnClosed(t *testing.T) {
	t.Parallel()

	c := newTestContext(t, 1000, 1)
	src := c.NewBufferSource(nil)
	_ = c.Close()

	if err := src.Start(); !errors.Is(err, ErrContextClosed) {
		t.Errorf("Start() error = %v, want ErrContextClosed", err)
	}
}

// SPDX-License-Identifier: EPL-2.0

package output

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/hajimehoshi/oto/v2"
	"github.com/ik5/audpool/engine"
)

// ErrSpeakerClosed is returned by Play after Close.
var ErrSpeakerClosed = errors.New("speaker closed")

// Speaker plays an engine.Context on the default sound device through oto.
// oto allows one device context per process, so create a single Speaker.
type Speaker struct {
	ctx   *oto.Context
	ready chan struct{}
	log   *slog.Logger

	mu     sync.Mutex
	player oto.Player
	closed bool
}

// NewSpeaker opens the sound device at the given rate and channel count.
// The device may not be usable yet; WaitReady blocks until it is.
func NewSpeaker(sampleRate, channels int, log *slog.Logger) (*Speaker, error) {
	if log == nil {
		log = slog.Default()
	}

	ctx, ready, err := oto.NewContext(sampleRate, channels, oto.FormatSignedInt16LE)
	if err != nil {
		return nil, fmt.Errorf("opening audio device: %w", err)
	}

	return &Speaker{
		ctx:   ctx,
		ready: ready,
		log:   log.With("component", "speaker"),
	}, nil
}

// WaitReady blocks until the device is open. It has the shape of
// engine.Options.ResumeGate, so a context started suspended resumes only
// once sound can actually come out.
func (s *Speaker) WaitReady(ctx context.Context) error {
	select {
	case <-s.ready:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Play starts pulling c into the device. Playing again replaces the
// previous context.
func (s *Speaker) Play(c *engine.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return ErrSpeakerClosed
	}
	if s.player != nil {
		if err := s.player.Close(); err != nil {
			s.log.Warn("closing previous player", "error", err)
		}
	}

	s.player = s.ctx.NewPlayer(NewReader(c))
	s.player.Play()
	s.log.Debug("playing", "sample_rate", c.SampleRate(), "channels", c.Channels())
	return nil
}

// Err reports an asynchronous playback error, if any.
func (s *Speaker) Err() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.ctx.Err(); err != nil {
		return err
	}
	if s.player != nil {
		return s.player.Err()
	}
	return nil
}

// Close stops playback. The device itself stays open until the process
// exits, as oto cannot reopen it.
func (s *Speaker) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return nil
	}
	s.closed = true
	if s.player == nil {
		return nil
	}

	err := s.player.Close()
	s.player = nil
	return err
}

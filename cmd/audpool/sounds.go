// SPDX-License-Identifier: EPL-2.0

package main

import (
	"context"
	"log/slog"

	"github.com/ik5/audpool"
	"github.com/ik5/audpool/engine"
	"github.com/ik5/audpool/internal/config"
)

// setup creates a mixer for cfg, registers its sounds plus an ad hoc one
// made of srcs, and waits for them to load. Sounds that fail are logged
// and left silent.
func setup(ctx context.Context, cfg *config.Config, eo engine.Options, srcs []string) (*audpool.Mixer, error) {
	m, err := audpool.NewMixer(audpool.Config{
		Engine:       eo,
		OnDiagnostic: diagnostics(),
		Logger:       slog.Default(),
	})
	if err != nil {
		return nil, err
	}

	m.SetGlobalVolume(cfg.Master.Volume)
	m.RegisterMany(cfg.Entries())
	if len(srcs) > 0 {
		m.RegisterSound(audpool.Src(srcs), "src", audpool.Options{})
	}

	if err := m.Wait(ctx); err != nil {
		if ctx.Err() != nil {
			_ = m.Close()
			return nil, err
		}
		slog.Warn("some sounds failed to load", slog.Any("error", err))
	}
	return m, nil
}

// trigger plays the named sounds, or every sound when names is empty.
func trigger(m *audpool.Mixer, names []string) {
	if len(names) == 0 {
		m.PlayAll()
		return
	}
	for _, n := range names {
		if s, ok := m.Lookup(audpool.Name(n)); ok {
			s.Play()
		}
	}
}

// SPDX-License-Identifier: EPL-2.0

// Package audpool plays short sounds with a bounded number of overlapping
// voices on a software audio graph.
//
// A Mixer owns one engine.Context and a master gain. Every registered Sound
// picks the first playable URL from its Src list, loads it in the
// background and then builds a VoicePool: a fixed ring of voices, each a
// buffer source feeding a gain (and, for spatial sounds, a panner).
// Playing a sound more often than it has voices cuts off the oldest one.
//
// Nothing a caller does to a sound fails loudly. Playing a sound that has
// not loaded, looking up a name that does not exist or moving a plain
// sound in space are all absorbed and reported as a Diagnostic, both to
// the log and to Config.OnDiagnostic.
//
// # Quick Start
//
//	m, err := audpool.NewMixer(audpool.Config{})
//	if err != nil {
//		return err
//	}
//	defer m.Close()
//
//	hit := m.RegisterSound(audpool.Src{"hit.ogg", "hit.mp3"}, "hit", audpool.Options{PoolSize: 4})
//	steps := m.RegisterSpatialSound(audpool.Src{"steps.wav"}, "steps", audpool.Options{Loop: true})
//
//	_ = m.Wait(ctx)
//	hit.Play()
//	m.SetSpatialPosition(audpool.Name("steps"), 2, 0, -1)
//
// The context is rendered by whoever drives it: output.Speaker for the
// sound card, or Context.Render directly for offline work and tests.
package audpool

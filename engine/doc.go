// SPDX-License-Identifier: EPL-2.0

// Package engine is a small software audio graph modeled on Web Audio.
//
// A Context owns a clock and a Destination. Nodes are created from the
// context and wired with Connect:
//
//	ctx, _ := engine.NewContext(engine.Options{SampleRate: 48000})
//	buf, _ := ctx.DecodeAudioData(context.Background(), data)
//
//	src := ctx.NewBufferSource(buf)
//	gain := ctx.NewGain()
//	_ = src.Connect(gain)
//	_ = gain.Connect(ctx.Destination())
//	_ = src.Start()
//
//	out := make([]float32, 2*1024)
//	ctx.Render(out)
//
// Nothing plays by itself: the clock advances only as Render is called,
// either by an output backend pulling in real time or by a test or an
// offline renderer pulling as fast as it likes. That keeps every schedule,
// such as a gain ramp, deterministic under test.
//
// # Graph
//
// The graph is pulled in blocks of at most RenderQuantum frames. Each node
// sums its inputs, processes them and caches the result for the block, so a
// node feeding several others is rendered once. Cycles are rejected.
//
// Buffers always hold audio at the context rate. Mono buffers feed every
// output channel; on a mono context decoded audio is folded to one channel.
//
// # Spatialization
//
// Panner implements the Web Audio distance models and equal-power panning
// for a single listener at the origin facing -Z.
package engine

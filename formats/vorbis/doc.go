// SPDX-License-Identifier: EPL-2.0

// Package vorbis decodes Ogg Vorbis through github.com/jfreymuth/oggvorbis.
//
// Samples come out interleaved as the decoder produces them:
//
//	[L0, R0, L1, R1, ...]
//
// ReadSamples only fills whole frames, so a destination shorter than one
// frame reads nothing. Ogg files carrying Opus are not handled here.
package vorbis

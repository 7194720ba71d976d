// SPDX-License-Identifier: EPL-2.0

// Package audio provides the sample plumbing underneath the voice pool.
//
// It contains:
//   - the Source and Decoder interfaces every format decoder implements
//   - the Registry, which doubles as the runtime's playability capability
//   - media type helpers used when choosing between encodings of a sound
//   - Sniff, which identifies encoded data by its magic bytes
//   - Resampler and MonoMixer, and Collect which chains them to pull a whole
//     asset into memory at the output context's rate
//
// # Source Interface
//
//	type Source interface {
//	    SampleRate() int
//	    Channels() int
//	    ReadSamples(dst []float32) (int, error)
//	    BufSize() int
//	    Close() error
//	}
//
// Samples are interleaved float32 values in [-1.0, 1.0]. ReadSamples returns
// io.EOF with n == 0 once the stream is finished.
//
// # Playability
//
// A Registry answers CanPlayType the way a browser media element does:
//
//	reg := audio.NewRegistry()
//	reg.Register(audio.FormatMP3, mp3.Decoder{}, "audio/mpeg")
//	reg.CanPlayType("audio/mp3")   // "probably" (alias of audio/mpeg)
//	reg.CanPlayType("audio/flac")  // ""
//
// MediaTypeForExt turns the extension of an asset URL into the media type
// to query.
//
// # Decoding Into Memory
//
// Assets are fully decoded before playback. Collect runs
// src -> Resampler -> MonoMixer and returns everything in one slice:
//
//	samples, channels, err := audio.Collect(src, 48000, false, 4096)
//
// Resampling uses Catmull-Rom cubic interpolation with a one-pole low-pass
// on the input when downsampling.
package audio

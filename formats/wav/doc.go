// SPDX-License-Identifier: EPL-2.0

// Package wav decodes and writes RIFF/WAVE audio.
//
// Decoding goes through github.com/go-audio/wav and accepts integer PCM at
// 16, 24 or 32 bits, any channel count and any sample rate:
//
//	source, err := wav.Decoder{}.Decode(file)
//	if errors.Is(err, wav.ErrNotWavFile) {
//	    // not RIFF/WAVE at all
//	}
//
// The decoder needs to seek; a plain io.Reader is read fully into memory
// first. Sources report their length through audio.Sized.
//
// WriteWAV16 emits interleaved 16-bit PCM with a canonical 44-byte header,
// and WriteFloatWAV16 does the float32 conversion first. Both work on any
// io.Writer, which is what offline rendering uses to bounce a mix to disk.
package wav

// SPDX-License-Identifier: EPL-2.0

// Package aiff decodes integer PCM AIFF through github.com/go-audio/aiff.
//
// AIFF stores big-endian samples and an 80-bit float rate; the decoder
// hides both and yields interleaved float32 in [-1.0, 1.0]:
//
//	src, err := aiff.Decoder{}.Decode(file)
//	if errors.Is(err, aiff.ErrUnsupportedBitDepth) {
//	    // only 8, 16, 24 and 32-bit samples are read
//	}
//
// Input that is not an io.ReadSeeker is buffered in memory first.
package aiff

// SPDX-License-Identifier: EPL-2.0

// Package flac decodes FLAC through github.com/gopxl/beep/v2/flac.
//
// beep hands out stereo float64 pairs; the Source narrows them to float32
// and drops the duplicated channel for mono files.
package flac

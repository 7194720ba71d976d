// SPDX-License-Identifier: EPL-2.0

package engine

import "errors"

var (
	ErrContextClosed     = errors.New("audio context is closed")
	ErrInvalidSampleRate = errors.New("invalid sample rate")
	ErrInvalidChannels   = errors.New("context supports 1 or 2 channels")

	ErrUnknownFormat     = errors.New("unrecognized audio data")
	ErrUnsupportedFormat = errors.New("no decoder registered for format")
	ErrEmptyAudio        = errors.New("decoded audio has no frames")
	ErrInvalidBuffer     = errors.New("sample count is not a multiple of channels")

	ErrSourceStarted    = errors.New("source can only be started once")
	ErrSourceNotStarted = errors.New("source was never started")

	ErrForeignNode  = errors.New("nodes belong to different contexts")
	ErrNoInput      = errors.New("node does not accept input")
	ErrNoOutput     = errors.New("node has no output")
	ErrCycle        = errors.New("connection would create a cycle")
	ErrNotConnected = errors.New("nodes are not connected")
)

// SPDX-License-Identifier: EPL-2.0

package audpool

import "errors"

var (
	ErrNoSource          = errors.New("no source URL given")
	ErrFormatUnsupported = errors.New("none of the source formats is playable")

	ErrNotReady    = errors.New("sound has not finished loading")
	ErrSoundClosed = errors.New("sound is closed")
	ErrMixerClosed = errors.New("mixer is closed")

	ErrPoolBuilt       = errors.New("voice pool already built")
	ErrInvalidPoolSize = errors.New("pool size must be positive")
)

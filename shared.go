// SPDX-License-Identifier: EPL-2.0

package audpool

import "sync"

// Shared hands out one Mixer, created on first use. Keep a Shared at the
// top of the application and pass the Mixer it returns down explicitly.
type Shared struct {
	cfg Config

	once sync.Once
	m    *Mixer
	err  error
}

func NewShared(cfg Config) *Shared {
	return &Shared{cfg: cfg}
}

// Mixer returns the shared mixer, creating it on the first call. A creation
// error is returned on every call.
func (s *Shared) Mixer() (*Mixer, error) {
	s.once.Do(func() {
		s.m, s.err = NewMixer(s.cfg)
	})
	return s.m, s.err
}

// SPDX-License-Identifier: EPL-2.0

package audpool

import (
	"fmt"

	"github.com/ik5/audpool/engine"
)

// DefaultPoolSize is the voice count used when Options.PoolSize is unset.
const DefaultPoolSize = 3

// Point is a position relative to the listener at the origin.
type Point = engine.Point

// Kind selects what a sound can do beyond playback.
type Kind int

const (
	Plain Kind = iota
	// Spatial sounds route every voice through a panner.
	Spatial
)

func (k Kind) String() string {
	switch k {
	case Plain:
		return "plain"
	case Spatial:
		return "spatial"
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// Options tune a registered sound.
type Options struct {
	// Loop makes every voice repeat until stopped.
	Loop bool
	// Volume, when non-nil, is applied to every voice as its initial gain
	// once the pool is built. Nil keeps unity gain. The value is used as
	// given, without clamping.
	Volume *float64
	// PoolSize is the number of voices; zero or less means DefaultPoolSize.
	PoolSize int
	// AutoPlay plays the sound once as soon as it is loaded.
	AutoPlay bool
	// Position is the initial panner position of a Spatial sound.
	Position *Point
}

// Level returns a pointer to v, for Options.Volume.
func Level(v float64) *float64 { return &v }

func (o Options) poolSize() int {
	if o.PoolSize <= 0 {
		return DefaultPoolSize
	}
	return o.PoolSize
}

// SpatialPannerOptions configure the panner of each spatial voice: inverse
// distance falloff from 1 to 10000 units with rolloff 1, direction
// independent.
func SpatialPannerOptions() engine.PannerOptions {
	return engine.PannerOptions{
		PanningModel:  engine.HRTF,
		DistanceModel: engine.Inverse,
		RefDistance:   1,
		MaxDistance:   10000,
		RolloffFactor: 1,
	}
}

// Entry is one sound for Mixer.RegisterMany.
type Entry struct {
	Kind    Kind
	Src     Src
	Name    string
	Options Options
}

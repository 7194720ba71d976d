// SPDX-License-Identifier: EPL-2.0

package engine

import "math"

type PanningModel int

const (
	EqualPower PanningModel = iota
	// HRTF is accepted for compatibility and rendered as EqualPower.
	HRTF
)

type DistanceModel int

const (
	Inverse DistanceModel = iota
	Linear
	Exponential
)

// PannerOptions describe how a Panner attenuates with distance. Sources
// are omnidirectional, so no cone settings exist.
type PannerOptions struct {
	PanningModel  PanningModel
	DistanceModel DistanceModel
	RefDistance   float64
	MaxDistance   float64
	RolloffFactor float64
}

// DefaultPannerOptions matches a freshly created Web Audio PannerNode.
func DefaultPannerOptions() PannerOptions {
	return PannerOptions{
		PanningModel:  EqualPower,
		DistanceModel: Inverse,
		RefDistance:   1,
		MaxDistance:   10000,
		RolloffFactor: 1,
	}
}

// Point is a position in a right-handed coordinate system. The listener
// sits at the origin facing -Z with +Y up.
type Point struct {
	X, Y, Z float64
}

// Panner positions its input in space relative to the listener.
type Panner struct {
	node
	opts PannerOptions
	pos  Point
}

// NewPanner returns a panner at the origin. Non-positive distances in opts
// fall back to the defaults.
func (c *Context) NewPanner(opts PannerOptions) *Panner {
	def := DefaultPannerOptions()
	if opts.RefDistance <= 0 {
		opts.RefDistance = def.RefDistance
	}
	if opts.MaxDistance <= 0 {
		opts.MaxDistance = def.MaxDistance
	}
	if opts.RolloffFactor < 0 {
		opts.RolloffFactor = def.RolloffFactor
	}

	p := &Panner{opts: opts}
	p.node = newNode(c, p, true, true)
	return p
}

func (p *Panner) Options() PannerOptions { return p.opts }

// SetPosition moves the panner at once; there is no interpolation.
func (p *Panner) SetPosition(x, y, z float64) {
	p.ctx.mu.Lock()
	defer p.ctx.mu.Unlock()

	p.pos = Point{X: x, Y: y, Z: z}
}

func (p *Panner) Position() Point {
	p.ctx.mu.Lock()
	defer p.ctx.mu.Unlock()

	return p.pos
}

// DistanceGain is the attenuation at distance d under the panner's model.
func (p *Panner) DistanceGain(d float64) float64 {
	o := p.opts
	switch o.DistanceModel {
	case Linear:
		if o.MaxDistance <= o.RefDistance {
			return 1
		}
		d = min(max(d, o.RefDistance), o.MaxDistance)
		return 1 - min(o.RolloffFactor, 1)*(d-o.RefDistance)/(o.MaxDistance-o.RefDistance)
	case Exponential:
		return math.Pow(max(d, o.RefDistance)/o.RefDistance, -o.RolloffFactor)
	}
	return o.RefDistance / (o.RefDistance + o.RolloffFactor*(max(d, o.RefDistance)-o.RefDistance))
}

// azimuth in degrees: 0 straight ahead, positive to the right, within
// [-180, 180].
func azimuth(pos Point) float64 {
	// horizontal projection, listener up is +Y
	x, z := pos.X, pos.Z
	l := math.Hypot(x, z)
	if l == 0 {
		return 0
	}
	x, z = x/l, z/l

	az := math.Acos(max(-1, min(1, x))) * 180 / math.Pi // angle from +X
	if -z < 0 {
		az = 360 - az
	}
	if az <= 270 {
		az = 90 - az
	} else {
		az = 450 - az
	}
	return az
}

func (p *Panner) process(_ int64, frames int, in, out []float32) {
	pos := p.pos
	d := math.Sqrt(pos.X*pos.X + pos.Y*pos.Y + pos.Z*pos.Z)
	g := float32(p.DistanceGain(d))

	if p.ctx.channels == 1 {
		for i, v := range in {
			out[i] = v * g
		}
		return
	}

	az := azimuth(pos)
	// fold rear positions onto the front hemisphere
	if az < -90 {
		az = -180 - az
	} else if az > 90 {
		az = 180 - az
	}

	var x float64
	if az <= 0 {
		x = (az + 90) / 90
	} else {
		x = az / 90
	}
	cos := float32(math.Cos(x * math.Pi / 2))
	sin := float32(math.Sin(x * math.Pi / 2))

	for f := range frames {
		l, r := in[2*f], in[2*f+1]
		if az <= 0 {
			out[2*f] = (l + r*cos) * g
			out[2*f+1] = r * sin * g
		} else {
			out[2*f] = l * cos * g
			out[2*f+1] = (r + l*sin) * g
		}
	}
}

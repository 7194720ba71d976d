// SPDX-License-Identifier: EPL-2.0

package engine

// Param is an automatable value on the context clock, such as a gain.
//
// At most one linear ramp is scheduled at a time. A new ramp starts from
// the value the param has at the moment it is scheduled and replaces
// whatever was planned after that moment; SetValue drops the ramp.
type Param struct {
	ctx   *Context
	value float64
	ramp  *ramp
}

type ramp struct {
	t0, v0 float64
	t1, v1 float64
}

func newParam(c *Context, v float64) *Param {
	return &Param{ctx: c, value: v}
}

// Value is the param's value at the context's current time.
func (p *Param) Value() float64 {
	p.ctx.mu.Lock()
	defer p.ctx.mu.Unlock()

	return p.valueAt(p.ctx.timeLocked())
}

// ValueAt is the value the param takes at context time t, given what is
// scheduled now.
func (p *Param) ValueAt(t float64) float64 {
	p.ctx.mu.Lock()
	defer p.ctx.mu.Unlock()

	return p.valueAt(t)
}

// SetValue jumps to v immediately and cancels any scheduled ramp.
func (p *Param) SetValue(v float64) {
	p.ctx.mu.Lock()
	defer p.ctx.mu.Unlock()

	p.value = v
	p.ramp = nil
}

// LinearRampToValueAtTime schedules a straight line from the current value
// to v, arriving at context time end. An end at or before now sets v at
// once.
func (p *Param) LinearRampToValueAtTime(v, end float64) {
	p.ctx.mu.Lock()
	defer p.ctx.mu.Unlock()

	now := p.ctx.timeLocked()
	if end <= now {
		p.value = v
		p.ramp = nil
		return
	}

	p.ramp = &ramp{t0: now, v0: p.valueAt(now), t1: end, v1: v}
	p.value = v
}

// Ramping reports whether a ramp is still in progress at the current time.
func (p *Param) Ramping() bool {
	p.ctx.mu.Lock()
	defer p.ctx.mu.Unlock()

	return p.ramp != nil && p.ramp.t1 > p.ctx.timeLocked()
}

func (p *Param) valueAt(t float64) float64 {
	r := p.ramp
	switch {
	case r == nil:
		return p.value
	case t <= r.t0:
		return r.v0
	case t >= r.t1:
		return r.v1
	}
	return r.v0 + (r.v1-r.v0)*(t-r.t0)/(r.t1-r.t0)
}

// constantOver reports whether the param holds one value for the whole
// interval [t0, t1].
func (p *Param) constantOver(t0, t1 float64) bool {
	r := p.ramp
	return r == nil || t0 >= r.t1 || t1 <= r.t0
}

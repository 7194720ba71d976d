// SPDX-License-Identifier: EPL-2.0

package engine

// Gain scales its input by an automatable factor.
type Gain struct {
	node
	gain *Param
}

// NewGain returns a gain node at unity.
func (c *Context) NewGain() *Gain {
	g := &Gain{gain: newParam(c, 1)}
	g.node = newNode(c, g, true, true)
	return g
}

func (g *Gain) Gain() *Param { return g.gain }

func (g *Gain) process(first int64, frames int, in, out []float32) {
	ch := g.ctx.channels
	rate := float64(g.ctx.rate)
	t0 := float64(first) / rate
	t1 := float64(first+int64(frames)) / rate

	if g.gain.constantOver(t0, t1) {
		k := float32(g.gain.valueAt(t0))
		for i, v := range in {
			out[i] = v * k
		}
		return
	}

	for f := range frames {
		k := float32(g.gain.valueAt(float64(first+int64(f)) / rate))
		for c := range ch {
			out[f*ch+c] = in[f*ch+c] * k
		}
	}
}

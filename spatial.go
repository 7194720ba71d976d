// SPDX-License-Identifier: EPL-2.0

package audpool

// Spatializer positions every voice of a Spatial sound at one point. A
// position set before the sound has loaded is kept and applied when the
// voices are built.
type Spatializer struct {
	s   *Sound
	pos Point
	set bool
}

// SetPosition moves all voices to (x, y, z) at once.
func (sp *Spatializer) SetPosition(x, y, z float64) {
	sp.SetPositionFromPoint(Point{X: x, Y: y, Z: z})
}

func (sp *Spatializer) SetPositionFromPoint(p Point) {
	sp.s.mu.Lock()
	defer sp.s.mu.Unlock()

	sp.pos, sp.set = p, true
	if !sp.s.closed {
		sp.s.pool.SetPosition(p)
	}
}

// Position is the last position set; ok is false if none was.
func (sp *Spatializer) Position() (p Point, ok bool) {
	sp.s.mu.Lock()
	defer sp.s.mu.Unlock()

	return sp.pos, sp.set
}

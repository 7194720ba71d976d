// SPDX-License-Identifier: EPL-2.0

package engine

import "slices"

// Node is a vertex of the audio graph. Connections carry audio from a node's
// output to another node's input; a node's input is the sum of everything
// connected to it.
type Node interface {
	Context() *Context
	// Connect routes this node's output into dst. Connecting twice is a no-op.
	Connect(dst Node) error
	// Disconnect removes every outgoing connection.
	Disconnect()
	// DisconnectFrom removes the connection to dst.
	DisconnectFrom(dst Node) error

	core() *node
}

// processor renders one block. in holds the summed input, out receives the
// node's output; both are frames*channels long. first is the absolute index
// of the block's first frame.
type processor interface {
	process(first int64, frames int, in, out []float32)
}

type node struct {
	ctx  *Context
	proc processor

	acceptsInput bool
	hasOutput    bool

	inputs  []*node
	outputs []*node

	// pull cache: a node feeding several others renders once per block
	block uint64
	in    []float32
	out   []float32
}

func newNode(c *Context, p processor, acceptsInput, hasOutput bool) node {
	return node{ctx: c, proc: p, acceptsInput: acceptsInput, hasOutput: hasOutput}
}

func (n *node) core() *node       { return n }
func (n *node) Context() *Context { return n.ctx }

func (n *node) Connect(dst Node) error {
	d := dst.core()
	if d.ctx != n.ctx {
		return ErrForeignNode
	}

	n.ctx.mu.Lock()
	defer n.ctx.mu.Unlock()

	switch {
	case !n.hasOutput:
		return ErrNoOutput
	case !d.acceptsInput:
		return ErrNoInput
	case slices.Contains(n.outputs, d):
		return nil
	case d == n || d.reaches(n):
		return ErrCycle
	}

	n.outputs = append(n.outputs, d)
	d.inputs = append(d.inputs, n)
	return nil
}

func (n *node) Disconnect() {
	n.ctx.mu.Lock()
	defer n.ctx.mu.Unlock()

	n.disconnectAll()
}

func (n *node) disconnectAll() {
	for _, d := range n.outputs {
		d.inputs = slices.DeleteFunc(d.inputs, func(in *node) bool { return in == n })
	}
	n.outputs = nil
}

func (n *node) DisconnectFrom(dst Node) error {
	d := dst.core()

	n.ctx.mu.Lock()
	defer n.ctx.mu.Unlock()

	i := slices.Index(n.outputs, d)
	if i < 0 {
		return ErrNotConnected
	}
	n.outputs = slices.Delete(n.outputs, i, i+1)
	d.inputs = slices.DeleteFunc(d.inputs, func(in *node) bool { return in == n })
	return nil
}

// reaches reports whether target is downstream of n.
func (n *node) reaches(target *node) bool {
	for _, o := range n.outputs {
		if o == target || o.reaches(target) {
			return true
		}
	}
	return false
}

// pull renders the node for the current block. Caller holds ctx.mu.
func (n *node) pull(block uint64, first int64, frames int) []float32 {
	size := frames * n.ctx.channels
	if n.block == block {
		return n.out[:size]
	}
	n.block = block

	n.in = grow(n.in, size)
	clear(n.in)
	for _, up := range n.inputs {
		buf := up.pull(block, first, frames)
		for i, v := range buf {
			n.in[i] += v
		}
	}

	n.out = grow(n.out, size)
	n.proc.process(first, frames, n.in, n.out)
	return n.out
}

func grow(buf []float32, size int) []float32 {
	if cap(buf) < size {
		return make([]float32, size)
	}
	return buf[:size]
}

// SPDX-License-Identifier: EPL-2.0

package output

import (
	"encoding/binary"
	"errors"
	"io"

	"github.com/ik5/audpool/engine"
	"github.com/ik5/audpool/utils"
)

// Renderer is the part of *engine.Context a Reader pulls from.
type Renderer interface {
	Render(dst []float32) (int, error)
	Channels() int
}

// Reader streams a Renderer as signed 16-bit little-endian PCM. Every Read
// advances the render clock by the frames it returns. A closed context
// reads as io.EOF.
type Reader struct {
	r   Renderer
	buf []float32
}

func NewReader(r Renderer) *Reader {
	return &Reader{r: r}
}

func (rd *Reader) Read(p []byte) (int, error) {
	ch := rd.r.Channels()
	frames := len(p) / (2 * ch)
	if frames == 0 {
		return 0, nil
	}

	n := frames * ch
	if cap(rd.buf) < n {
		rd.buf = make([]float32, n)
	}
	buf := rd.buf[:n]

	got, err := rd.r.Render(buf)
	if errors.Is(err, engine.ErrContextClosed) {
		return 0, io.EOF
	}
	if err != nil {
		return 0, err
	}

	for i, v := range buf[:got*ch] {
		binary.LittleEndian.PutUint16(p[2*i:], uint16(utils.Float32ToInt16(v)))
	}
	return 2 * got * ch, nil
}

// Package patterns generates hardware bring-up test frames: walk the strip one
// LED at a time to verify the wiring map, cycle channels to verify color order,
// sweep rows to verify flips and rotation.
package patterns

import (
	"github.com/coreman2200/ledmatrix/codec"
	"github.com/coreman2200/ledmatrix/matrix"
)

type Kind string

const (
	None       Kind = ""
	IndexSweep Kind = "index_sweep"
	RGBTest    Kind = "rgb_channels"
	RowSweep   Kind = "row_sweep"
)

type Runner struct {
	kind Kind
	step int
}

func NewRunner(kind Kind) *Runner { return &Runner{kind: kind} }

func (r *Runner) Kind() Kind { return r.kind }

// Step draws the next frame into m; returns false when the pattern is done.
func (r *Runner) Step(m *matrix.Matrix) bool {
	cfg := m.Config()
	m.Fill(0)

	switch r.kind {
	case IndexSweep:
		i := r.step
		if i >= cfg.Count() {
			return false
		}
		m.SetPixel(i%cfg.Width, i/cfg.Width, codec.New(255, 255, 255))
	case RGBTest:
		var c codec.RGB
		switch r.step % 3 {
		case 0:
			c = codec.New(255, 0, 0)
		case 1:
			c = codec.New(0, 255, 0)
		case 2:
			c = codec.New(0, 0, 255)
		}
		m.Fill(c)
	case RowSweep:
		y := r.step
		if y >= cfg.Height {
			return false
		}
		for x := 0; x < cfg.Width; x++ {
			m.SetPixel(x, y, codec.New(0, 255, 255))
		}
	default:
		return false
	}
	r.step++
	return true
}

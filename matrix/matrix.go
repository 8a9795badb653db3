// Package matrix is the driver core: it owns the logical framebuffer drawing
// code writes into and the wire-ordered transmission buffer the transport
// sends, and translates between the two through the layout mapper and the
// color codec.
package matrix

import (
	"errors"
	"fmt"

	"github.com/coreman2200/ledmatrix/codec"
	"github.com/coreman2200/ledmatrix/layout"
	"github.com/coreman2200/ledmatrix/led"
)

// ErrBounds is returned by Pixel for out-of-range reads. Writes clip instead.
var ErrBounds = errors.New("pixel out of range")

// Matrix maps a logical pixel grid onto a serially-chained LED strip.
// Not safe for concurrent use; one owner per matrix.
type Matrix struct {
	cfg layout.Config
	drv led.Driver

	fb []codec.RGB // logical framebuffer, row-major, pre-rotation space
	tx []byte      // transmission buffer, wiring order, 3 bytes per LED

	dirty  []bool // per logical cell
	ndirty int
}

// New validates cfg eagerly and allocates the buffers. A rejected config
// leaves no partial state behind.
func New(cfg layout.Config, drv led.Driver) (*Matrix, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	n := cfg.Count()
	return &Matrix{
		cfg:   cfg,
		drv:   drv,
		fb:    make([]codec.RGB, n),
		tx:    make([]byte, n*3),
		dirty: make([]bool, n),
	}, nil
}

// Config returns the immutable matrix configuration.
func (m *Matrix) Config() layout.Config { return m.cfg }

func (m *Matrix) inBounds(x, y int) bool {
	return x >= 0 && x < m.cfg.Width && y >= 0 && y < m.cfg.Height
}

// SetPixel writes one logical pixel. Out-of-bounds writes are a no-op so
// drawing primitives can run unclipped.
func (m *Matrix) SetPixel(x, y int, c codec.RGB) {
	if !m.inBounds(x, y) {
		return
	}
	i := y*m.cfg.Width + x
	m.fb[i] = c
	if !m.dirty[i] {
		m.dirty[i] = true
		m.ndirty++
	}
}

// Pixel reads one logical pixel. Out-of-bounds reads indicate a caller bug and
// fail with ErrBounds.
func (m *Matrix) Pixel(x, y int) (codec.RGB, error) {
	if !m.inBounds(x, y) {
		return 0, fmt.Errorf("%w: (%d,%d) in %dx%d", ErrBounds, x, y, m.cfg.Width, m.cfg.Height)
	}
	return m.fb[y*m.cfg.Width+x], nil
}

// Fill sets every cell to c.
func (m *Matrix) Fill(c codec.RGB) {
	for i := range m.fb {
		m.fb[i] = c
		m.dirty[i] = true
	}
	m.ndirty = len(m.fb)
}

// encode projects one logical cell into its transmission slot.
func (m *Matrix) encode(x, y int) {
	idx := m.cfg.Index(x, y)
	b0, b1, b2 := codec.Encode(m.fb[y*m.cfg.Width+x], m.cfg.Order, m.cfg.Brightness)
	m.tx[idx*3] = b0
	m.tx[idx*3+1] = b1
	m.tx[idx*3+2] = b2
}

// Refresh projects the framebuffer into the transmission buffer and hands it
// to the transport. A full refresh re-encodes every cell; a partial one only
// the cells touched since the last successful flush, which yields a buffer
// byte-identical to the full pass. Transport errors surface unchanged and
// leave the dirty markers in place; there is no retry here, the caller decides.
func (m *Matrix) Refresh(full bool) error {
	if full {
		for y := 0; y < m.cfg.Height; y++ {
			for x := 0; x < m.cfg.Width; x++ {
				m.encode(x, y)
			}
		}
	} else if m.ndirty > 0 {
		for i, d := range m.dirty {
			if d {
				m.encode(i%m.cfg.Width, i/m.cfg.Width)
			}
		}
	}
	if m.drv != nil {
		if err := m.drv.Write(m.tx); err != nil {
			return err
		}
	}
	for i := range m.dirty {
		m.dirty[i] = false
	}
	m.ndirty = 0
	return nil
}

// Package codec converts 24-bit logical colors into the bytes an LED part
// expects on the wire: brightness scaling, gamma correction and channel
// reordering. Everything here is pure and deterministic.
package codec

import (
	"math"
	"sync"

	"github.com/coreman2200/ledmatrix/layout"
)

const (
	redOffset   = 16
	greenOffset = 8
	blueOffset  = 0
)

// RGB is a 24-bit logical color, 0xRRGGBB.
type RGB uint32

// New packs three channel bytes into an RGB value.
func New(r, g, b uint8) RGB {
	return RGB(uint32(r)<<redOffset | uint32(g)<<greenOffset | uint32(b)<<blueOffset)
}

func (c RGB) R() uint8 { return uint8(c >> redOffset) }
func (c RGB) G() uint8 { return uint8(c >> greenOffset) }
func (c RGB) B() uint8 { return uint8(c >> blueOffset) }

// From565 expands a packed RGB565 value to 24-bit using bit replication, so
// full-scale 5/6-bit channels reach exactly 0xFF.
func From565(v uint16) RGB {
	r5 := uint8(v >> 11 & 0x1F)
	g6 := uint8(v >> 5 & 0x3F)
	b5 := uint8(v & 0x1F)
	return New(r5<<3|r5>>2, g6<<2|g6>>4, b5<<3|b5>>2)
}

// To565 requantizes a 24-bit color to packed RGB565.
func To565(c RGB) uint16 {
	return uint16(c.R()>>3)<<11 | uint16(c.G()>>2)<<5 | uint16(c.B()>>3)
}

// outputGamma matches the house post-processing default.
const outputGamma = 2.2

var (
	gammaOnce sync.Once
	gammaTab  [256]uint8
)

// Gamma maps a raw intensity to its perceptually corrected value. The table is
// built once and never mutated, so the codec stays pure across instances.
func Gamma(v uint8) uint8 {
	gammaOnce.Do(func() {
		for i := 0; i < 256; i++ {
			gammaTab[i] = uint8(math.Round(255 * math.Pow(float64(i)/255, outputGamma)))
		}
	})
	return gammaTab[v]
}

func scale(v uint8, brightness float64) uint8 {
	s := math.Round(float64(v) * brightness)
	if s < 0 {
		return 0
	}
	if s > 255 {
		return 255
	}
	return uint8(s)
}

// Encode produces the three wire bytes for one pixel: each channel is scaled by
// brightness, gamma corrected, then emitted in the configured order.
func Encode(c RGB, order layout.ColorOrder, brightness float64) (byte, byte, byte) {
	r := Gamma(scale(c.R(), brightness))
	g := Gamma(scale(c.G(), brightness))
	b := Gamma(scale(c.B(), brightness))

	var out [3]byte
	for i := 0; i < 3; i++ {
		switch order[i] {
		case 'R':
			out[i] = r
		case 'G':
			out[i] = g
		default:
			out[i] = b
		}
	}
	return out[0], out[1], out[2]
}

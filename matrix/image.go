package matrix

import (
	"image"
	"image/color"

	"github.com/coreman2200/ledmatrix/codec"
)

// Matrix doubles as a draw.Image so generic drawing libraries can render lines,
// rects and text straight into the logical framebuffer. Coordinates are always
// the unrotated, unflipped logical space.

// ColorModel implements image.Image.
func (m *Matrix) ColorModel() color.Model { return color.NRGBAModel }

// Bounds implements image.Image.
func (m *Matrix) Bounds() image.Rectangle {
	return image.Rect(0, 0, m.cfg.Width, m.cfg.Height)
}

// At implements image.Image. Out-of-bounds reads return black, matching the
// stdlib image convention; use Pixel for strict access.
func (m *Matrix) At(x, y int) color.Color {
	if !m.inBounds(x, y) {
		return color.NRGBA{A: 255}
	}
	c := m.fb[y*m.cfg.Width+x]
	return color.NRGBA{R: c.R(), G: c.G(), B: c.B(), A: 255}
}

// Set implements draw.Image, clipping silently like SetPixel.
func (m *Matrix) Set(x, y int, c color.Color) {
	r, g, b, _ := c.RGBA()
	m.SetPixel(x, y, codec.New(uint8(r>>8), uint8(g>>8), uint8(b>>8)))
}

package led

import (
	"fmt"
	"image"
	"image/color"

	"periph.io/x/conn/v3/display"
	"periph.io/x/extra/devices/screen"
)

// Term renders frames as ANSI colors on stdout, one cell per LED in wiring
// order. Handy when no SPI port is around.
type Term struct {
	drawer display.Drawer
	count  int
}

// NewTerm returns a console preview sink for count LEDs.
func NewTerm(count int) (*Term, error) {
	if count <= 0 {
		return nil, fmt.Errorf("invalid LED count: %d", count)
	}
	return &Term{drawer: screen.New(count), count: count}, nil
}

func (d *Term) Write(rgb []byte) error {
	if len(rgb) != d.count*3 {
		return fmt.Errorf("frame length %d does not match count %d", len(rgb), d.count)
	}
	img := image.NewNRGBA(image.Rect(0, 0, d.count, 1))
	for i := 0; i < d.count; i++ {
		img.SetNRGBA(i, 0, color.NRGBA{R: rgb[i*3], G: rgb[i*3+1], B: rgb[i*3+2], A: 255})
	}
	return d.drawer.Draw(d.drawer.Bounds(), img, image.Point{})
}

func (d *Term) Close() error {
	return d.drawer.Halt()
}

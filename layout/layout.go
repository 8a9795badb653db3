package layout

import (
	"errors"
	"fmt"
)

// ErrConfig is wrapped by every configuration validation failure.
var ErrConfig = errors.New("invalid matrix config")

// Wiring is the physical LED order within the matrix.
type Wiring string

const (
	// WiringRow wires every row left-to-right.
	WiringRow Wiring = "row"
	// WiringSnake alternates direction every row (serpentine).
	WiringSnake Wiring = "snake"
)

// ColorOrder is the per-pixel channel sequence the LED part expects on the wire.
type ColorOrder string

const (
	OrderRGB ColorOrder = "RGB"
	OrderRBG ColorOrder = "RBG"
	OrderGRB ColorOrder = "GRB"
	OrderGBR ColorOrder = "GBR"
	OrderBRG ColorOrder = "BRG"
	OrderBGR ColorOrder = "BGR"
)

// Config describes one matrix. Width/Height are the logical dimensions drawing
// code addresses; rotation and flips compensate for physical mounting and never
// change the logical coordinate space.
type Config struct {
	Width      int
	Height     int
	Wiring     Wiring
	Order      ColorOrder
	Brightness float64
	FlipH      bool
	FlipV      bool
	Rotation   int // 0, 90, 180, 270
}

// Validate checks every field eagerly so a bad config fails at construction
// instead of producing scrambled output later.
func (c Config) Validate() error {
	if c.Width <= 0 || c.Height <= 0 {
		return fmt.Errorf("%w: dimensions %dx%d", ErrConfig, c.Width, c.Height)
	}
	switch c.Wiring {
	case WiringRow, WiringSnake:
	default:
		return fmt.Errorf("%w: wiring %q", ErrConfig, c.Wiring)
	}
	switch c.Order {
	case OrderRGB, OrderRBG, OrderGRB, OrderGBR, OrderBRG, OrderBGR:
	default:
		return fmt.Errorf("%w: color order %q", ErrConfig, c.Order)
	}
	if c.Brightness < 0 || c.Brightness > 1 {
		return fmt.Errorf("%w: brightness %v", ErrConfig, c.Brightness)
	}
	switch c.Rotation {
	case 0, 90, 180, 270:
	default:
		return fmt.Errorf("%w: rotation %d", ErrConfig, c.Rotation)
	}
	return nil
}

// Count returns the physical LED count.
func (c Config) Count() int {
	return c.Width * c.Height
}

// Index maps a logical x,y -> linear LED index (0..N-1).
//
// Rotation is applied first, inside the post-rotation bounding box (90/270 swap
// the physical width/height), then flips against the post-rotation dimensions,
// then the wiring linearization. The result is a bijection over the grid.
func (c Config) Index(x, y int) int {
	px, py, pw, ph := rotate(x, y, c.Width, c.Height, c.Rotation)
	if c.FlipH {
		px = pw - 1 - px
	}
	if c.FlipV {
		py = ph - 1 - py
	}
	if c.Wiring == WiringSnake && py%2 == 1 {
		px = pw - 1 - px
	}
	return py*pw + px
}

// rotate maps logical x,y into the physical box. w,h are the logical
// dimensions; the returned pw,ph are the post-rotation physical dimensions.
func rotate(x, y, w, h, deg int) (px, py, pw, ph int) {
	switch deg {
	case 90:
		return h - 1 - y, x, h, w
	case 180:
		return w - 1 - x, h - 1 - y, w, h
	case 270:
		return y, w - 1 - x, h, w
	default:
		return x, y, w, h
	}
}

package matrix_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/coreman2200/ledmatrix/codec"
	"github.com/coreman2200/ledmatrix/layout"
	"github.com/coreman2200/ledmatrix/led/fake"
	"github.com/coreman2200/ledmatrix/matrix"
)

func snakeGRB(w, h int) layout.Config {
	return layout.Config{
		Width: w, Height: h,
		Wiring: layout.WiringSnake, Order: layout.OrderGRB,
		Brightness: 1,
	}
}

func TestRedPixelOnSnakeGRB(t *testing.T) {
	drv := &fake.Driver{}
	m, err := matrix.New(snakeGRB(8, 8), drv)
	require.NoError(t, err)

	m.SetPixel(0, 0, codec.New(0xFF, 0, 0))
	require.NoError(t, m.Refresh(true))

	require.Len(t, drv.Last, 8*8*3)
	assert.Equal(t, []byte{0x00, 0xFF, 0x00}, drv.Last[0:3])
	for i, b := range drv.Last[3:] {
		if b != 0 {
			t.Fatalf("unexpected lit byte at offset %d", i+3)
		}
	}
}

func TestConstructRejectsBadConfig(t *testing.T) {
	_, err := matrix.New(layout.Config{Width: 0, Height: 8, Wiring: layout.WiringRow, Order: layout.OrderRGB, Brightness: 1}, &fake.Driver{})
	require.Error(t, err)
	assert.True(t, errors.Is(err, layout.ErrConfig))
}

func TestSetPixelClipsSilently(t *testing.T) {
	m, err := matrix.New(snakeGRB(4, 4), &fake.Driver{})
	require.NoError(t, err)

	m.SetPixel(-1, 0, codec.New(1, 2, 3))
	m.SetPixel(4, 0, codec.New(1, 2, 3))
	m.SetPixel(0, 99, codec.New(1, 2, 3))
	for y := 0; y < 4; y++ {
		for x := 0; x < 4; x++ {
			c, err := m.Pixel(x, y)
			require.NoError(t, err)
			assert.Equal(t, codec.RGB(0), c)
		}
	}
}

func TestPixelStrictBounds(t *testing.T) {
	m, err := matrix.New(snakeGRB(4, 4), &fake.Driver{})
	require.NoError(t, err)

	_, err = m.Pixel(4, 0)
	assert.True(t, errors.Is(err, matrix.ErrBounds))
	_, err = m.Pixel(0, -1)
	assert.True(t, errors.Is(err, matrix.ErrBounds))
}

func TestFill(t *testing.T) {
	drv := &fake.Driver{}
	m, err := matrix.New(layout.Config{Width: 3, Height: 2, Wiring: layout.WiringRow, Order: layout.OrderRGB, Brightness: 1}, drv)
	require.NoError(t, err)

	m.Fill(codec.New(255, 255, 255))
	require.NoError(t, m.Refresh(false))
	for i, b := range drv.Last {
		require.Equal(t, byte(255), b, "byte %d", i)
	}
}

func TestFullAndPartialRefreshMatch(t *testing.T) {
	cfg := layout.Config{
		Width: 7, Height: 5,
		Wiring: layout.WiringSnake, Order: layout.OrderBRG,
		Brightness: 0.6, FlipH: true, Rotation: 180,
	}
	writes := []struct {
		x, y int
		c    codec.RGB
	}{
		{0, 0, codec.New(255, 0, 0)},
		{6, 4, codec.New(0, 128, 33)},
		{3, 2, codec.New(17, 94, 200)},
		{0, 0, codec.New(8, 8, 8)}, // overwrite
		{5, 1, codec.New(250, 250, 1)},
	}

	partialDrv := &fake.Driver{}
	partial, err := matrix.New(cfg, partialDrv)
	require.NoError(t, err)
	for i, w := range writes {
		partial.SetPixel(w.x, w.y, w.c)
		if i%2 == 1 {
			require.NoError(t, partial.Refresh(false))
		}
	}
	require.NoError(t, partial.Refresh(false))

	fullDrv := &fake.Driver{}
	full, err := matrix.New(cfg, fullDrv)
	require.NoError(t, err)
	for _, w := range writes {
		full.SetPixel(w.x, w.y, w.c)
	}
	require.NoError(t, full.Refresh(true))

	assert.Equal(t, fullDrv.Last, partialDrv.Last)
}

func TestTransportErrorSurfacesAndDirtyRetained(t *testing.T) {
	boom := errors.New("wire fell out")
	drv := &fake.Driver{Err: boom}
	m, err := matrix.New(snakeGRB(4, 4), drv)
	require.NoError(t, err)

	m.SetPixel(1, 1, codec.New(255, 255, 255))
	err = m.Refresh(false)
	assert.ErrorIs(t, err, boom)
	assert.Zero(t, drv.Frames)

	// markers survive the failed flush, so a later partial pass still sends
	drv.Err = nil
	require.NoError(t, m.Refresh(false))
	idx := m.Config().Index(1, 1)
	assert.Equal(t, byte(255), drv.Last[idx*3])
}

func TestRefreshDoesNotMutateFramebuffer(t *testing.T) {
	m, err := matrix.New(snakeGRB(4, 4), &fake.Driver{})
	require.NoError(t, err)

	m.SetPixel(2, 3, codec.New(10, 20, 30))
	require.NoError(t, m.Refresh(true))

	c, err := m.Pixel(2, 3)
	require.NoError(t, err)
	assert.Equal(t, codec.New(10, 20, 30), c)
}

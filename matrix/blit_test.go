package matrix_test

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/coreman2200/ledmatrix/codec"
	"github.com/coreman2200/ledmatrix/led/fake"
	"github.com/coreman2200/ledmatrix/matrix"
)

func TestBlitOffsetCheckerboard(t *testing.T) {
	m, err := matrix.New(snakeGRB(8, 8), &fake.Driver{})
	require.NoError(t, err)

	// red, green / green, red
	img := matrix.Image{Pixels: []uint16{0xF800, 0x07E0, 0x07E0, 0xF800}, Width: 2}
	require.NoError(t, m.Blit(img, 3, 3))

	red := codec.New(255, 0, 0)
	green := codec.New(0, 255, 0)
	for _, tc := range []struct {
		x, y int
		want codec.RGB
	}{
		{3, 3, red}, {4, 4, red}, {4, 3, green}, {3, 4, green},
		{2, 3, 0}, {5, 4, 0},
	} {
		c, err := m.Pixel(tc.x, tc.y)
		require.NoError(t, err)
		assert.Equal(t, tc.want, c, "pixel (%d,%d)", tc.x, tc.y)
	}
}

func TestBlitRejectsRaggedRecord(t *testing.T) {
	m, err := matrix.New(snakeGRB(8, 8), &fake.Driver{})
	require.NoError(t, err)

	err = m.Blit(matrix.Image{Pixels: make([]uint16, 5), Width: 2}, 0, 0)
	assert.True(t, errors.Is(err, matrix.ErrImage))

	err = m.Blit(matrix.Image{Pixels: make([]uint16, 4), Width: 0}, 0, 0)
	assert.True(t, errors.Is(err, matrix.ErrImage))
}

func TestBlitClipsAtEdges(t *testing.T) {
	m, err := matrix.New(snakeGRB(4, 4), &fake.Driver{})
	require.NoError(t, err)

	img := matrix.Image{Pixels: []uint16{0xFFFF, 0xFFFF, 0xFFFF, 0xFFFF}, Width: 2}
	require.NoError(t, m.Blit(img, 3, 3))
	require.NoError(t, m.Blit(img, -1, -1))

	c, err := m.Pixel(3, 3)
	require.NoError(t, err)
	assert.Equal(t, codec.New(255, 255, 255), c)
	c, err = m.Pixel(0, 0)
	require.NoError(t, err)
	assert.Equal(t, codec.New(255, 255, 255), c)
	c, err = m.Pixel(2, 2)
	require.NoError(t, err)
	assert.Equal(t, codec.RGB(0), c)
}

func TestLoadImage(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sprite.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"pixels":[63488,2016,2016,63488],"width":2}`), 0644))

	img, err := matrix.LoadImage(path)
	require.NoError(t, err)
	assert.Equal(t, 2, img.Width)
	assert.Equal(t, []uint16{0xF800, 0x07E0, 0x07E0, 0xF800}, img.Pixels)

	_, err = matrix.LoadImage(filepath.Join(t.TempDir(), "missing.json"))
	assert.Error(t, err)
}

func TestLoadImageRejectsGarbage(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"pixels":"nope"}`), 0644))
	_, err := matrix.LoadImage(path)
	assert.True(t, errors.Is(err, matrix.ErrImage))
}

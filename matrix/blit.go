package matrix

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/coreman2200/ledmatrix/codec"
)

// ErrImage is wrapped by every malformed image record failure.
var ErrImage = errors.New("malformed image")

// Image is a compact sprite: packed RGB565 pixels in row-major order plus the
// row width. Height is implied by len(Pixels)/Width.
type Image struct {
	Pixels []uint16 `json:"pixels"`
	Width  int      `json:"width"`
}

// Height derives the row count, or an error when the pixel count does not
// divide evenly by the declared width.
func (img Image) Height() (int, error) {
	if img.Width <= 0 {
		return 0, fmt.Errorf("%w: width %d", ErrImage, img.Width)
	}
	if len(img.Pixels)%img.Width != 0 {
		return 0, fmt.Errorf("%w: %d pixels not divisible by width %d", ErrImage, len(img.Pixels), img.Width)
	}
	return len(img.Pixels) / img.Width, nil
}

// LoadImage reads an Image record from a JSON file.
func LoadImage(path string) (Image, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return Image{}, err
	}
	var img Image
	if err := json.Unmarshal(b, &img); err != nil {
		return Image{}, fmt.Errorf("%w: %v", ErrImage, err)
	}
	return img, nil
}

// Blit expands img to 24-bit and writes it at offset dx,dy. Pixels landing
// outside the matrix are skipped, so partially visible placement needs no
// pre-cropping. Only a malformed record is an error.
func (m *Matrix) Blit(img Image, dx, dy int) error {
	h, err := img.Height()
	if err != nil {
		return err
	}
	for sy := 0; sy < h; sy++ {
		for sx := 0; sx < img.Width; sx++ {
			m.SetPixel(dx+sx, dy+sy, codec.From565(img.Pixels[sy*img.Width+sx]))
		}
	}
	return nil
}

package dip

import (
	"fmt"

	"github.com/seudip/dip/internal/imageio"
)

// Load reads an image file and converts it to 8-bit grayscale.
// PNG, JPEG, BMP and TIFF are supported. Errors wrap imageio.ErrLoad.
func Load(path string) (*Gray, error) {
	img, err := imageio.Load(path)
	if err != nil {
		return nil, err
	}
	g := GrayFromImage(img)
	if g.Empty() {
		return nil, fmt.Errorf("%w: %s", ErrEmptyImage, path)
	}
	return g, nil
}

// Save writes the image to path. The encoder is chosen from the file
// extension (.png, .jpg/.jpeg, .bmp, .tif/.tiff).
func (g *Gray) Save(path string) error {
	if g.Empty() {
		return ErrEmptyImage
	}
	return imageio.Save(path, g.ToImage())
}

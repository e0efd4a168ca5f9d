package reference

import (
	"image"

	"github.com/disintegration/imaging"
	"golang.org/x/image/draw"
)

// Resize scales src to w x h with the triangle (bilinear) filter of
// github.com/disintegration/imaging, which samples at pixel centres.
func Resize(src *image.Gray, w, h int) *image.Gray {
	out := imaging.Resize(src, w, h, imaging.Linear)
	dst := image.NewGray(out.Bounds())
	draw.Draw(dst, dst.Bounds(), out, out.Bounds().Min, draw.Src)
	return dst
}

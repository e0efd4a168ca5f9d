package filter

import (
	"fmt"
	"image"
	"image/color"
	"math"

	"github.com/seudip/dip"
)

// HSV is a colour in the 8-bit HSV encoding: H in 0..179 (degrees / 2),
// S and V in 0..255.
type HSV struct {
	H, S, V uint8
}

// HSVRange is an inclusive box in HSV space.
type HSVRange struct {
	Lo, Hi HSV
}

// Contains reports whether c lies inside the box on every channel.
func (r HSVRange) Contains(c HSV) bool {
	return c.H >= r.Lo.H && c.H <= r.Hi.H &&
		c.S >= r.Lo.S && c.S <= r.Hi.S &&
		c.V >= r.Lo.V && c.V <= r.Hi.V
}

// Hue ranges of the strawberry segmentation. Red hue wraps around 0, so it
// takes two boxes.
var (
	RedHSV = []HSVRange{
		{Lo: HSV{0, 120, 70}, Hi: HSV{10, 255, 255}},
		{Lo: HSV{170, 120, 70}, Hi: HSV{179, 255, 255}},
	}
	GreenHSV = []HSVRange{
		{Lo: HSV{20, 130, 0}, Hi: HSV{50, 255, 210}},
	}
)

// Reference colours and L1 radius of the RGB distance segmentation.
var (
	RedRef      = color.RGBA{R: 200, G: 50, B: 50, A: 255}
	GreenRef    = color.RGBA{R: 140, G: 150, B: 40, A: 255}
	RefDistance = 120
)

// Background is the fill for pixels outside a segmentation mask.
var Background = color.RGBA{R: 127, G: 127, B: 127, A: 255}

// ToHSV converts an 8-bit RGB colour. V is the largest channel, S is
// 255*(V-min)/V and H is the hexcone angle halved so it fits a byte.
// Results are rounded half away from zero; gray has H = S = 0.
func ToHSV(c color.RGBA) HSV {
	r, g, b := float64(c.R), float64(c.G), float64(c.B)
	v := math.Max(r, math.Max(g, b))
	diff := v - math.Min(r, math.Min(g, b))
	if v == 0 || diff == 0 {
		return HSV{V: uint8(v)}
	}

	var h float64
	switch v {
	case r:
		h = 30 * (g - b) / diff
	case g:
		h = 60 + 30*(b-r)/diff
	default:
		h = 120 + 30*(r-g)/diff
	}
	h = math.Round(h)
	if h < 0 {
		h += 180
	}
	return HSV{H: uint8(h), S: roundClamp(255 * diff / v), V: uint8(v)}
}

// InRangeHSV returns a mask that is 255 where the pixel's HSV colour lies
// in any of ranges and 0 elsewhere.
func InRangeHSV(img *image.RGBA, ranges ...HSVRange) (*dip.Gray, error) {
	return colorMask(img, func(c color.RGBA) bool {
		hsv := ToHSV(c)
		for _, r := range ranges {
			if r.Contains(hsv) {
				return true
			}
		}
		return false
	})
}

// NearColor returns a mask that is 255 where the L1 distance between the
// pixel and ref is strictly less than radius.
func NearColor(img *image.RGBA, ref color.RGBA, radius int) (*dip.Gray, error) {
	if radius < 0 {
		return nil, fmt.Errorf("%w: radius %d", ErrInvalidParameter, radius)
	}
	return colorMask(img, func(c color.RGBA) bool {
		d := abs(int(c.R)-int(ref.R)) + abs(int(c.G)-int(ref.G)) + abs(int(c.B)-int(ref.B))
		return d < radius
	})
}

func colorMask(img *image.RGBA, keep func(color.RGBA) bool) (*dip.Gray, error) {
	if img == nil || img.Bounds().Empty() {
		return nil, dip.ErrEmptyImage
	}

	b := img.Bounds()
	mask := dip.NewGray(b.Dx(), b.Dy())
	forRows(mask.Height, func(y int) {
		row := mask.Row(y)
		for x := range row {
			if keep(img.RGBAAt(b.Min.X+x, b.Min.Y+y)) {
				row[x] = 255
			}
		}
	})
	return mask, nil
}

// Union returns the pixelwise maximum of masks, which for 0/255 masks is
// their bitwise or.
func Union(masks ...*dip.Gray) (*dip.Gray, error) {
	if len(masks) == 0 || masks[0].Empty() {
		return nil, dip.ErrEmptyImage
	}
	out := masks[0].Clone()
	for _, m := range masks[1:] {
		if m.Empty() || m.Width != out.Width || m.Height != out.Height {
			return nil, fmt.Errorf("%w: mask sizes differ", dip.ErrInvalidSize)
		}
		for i, v := range m.Pix {
			out.Pix[i] = max(out.Pix[i], v)
		}
	}
	return out, nil
}

// KeepMasked returns a copy of img with every pixel where mask is 0
// replaced by fill.
func KeepMasked(img *image.RGBA, mask *dip.Gray, fill color.RGBA) (*image.RGBA, error) {
	if img == nil || mask.Empty() {
		return nil, dip.ErrEmptyImage
	}
	b := img.Bounds()
	if b.Dx() != mask.Width || b.Dy() != mask.Height {
		return nil, fmt.Errorf("%w: mask %dx%d for image %dx%d",
			dip.ErrInvalidSize, mask.Width, mask.Height, b.Dx(), b.Dy())
	}

	out := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	for y := 0; y < mask.Height; y++ {
		for x, m := range mask.Row(y) {
			c := fill
			if m != 0 {
				c = img.RGBAAt(b.Min.X+x, b.Min.Y+y)
			}
			out.SetRGBA(x, y, c)
		}
	}
	return out, nil
}

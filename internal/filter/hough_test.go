package filter

import (
	"errors"
	"testing"

	"github.com/seudip/dip"
)

// disc draws a filled circle of value v on a black w x h image.
func disc(w, h, cx, cy, r int, v uint8) *dip.Gray {
	g := dip.NewGray(w, h)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			if (x-cx)*(x-cx)+(y-cy)*(y-cy) <= r*r {
				g.Set(x, y, v)
			}
		}
	}
	return g
}

func TestHoughCirclesFindsDisc(t *testing.T) {
	tests := []struct {
		name      string
		cx, cy, r int
		value     uint8
	}{
		{"bright", 40, 42, 20, 200},
		{"off-centre", 30, 50, 17, 200},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Only the two rings either side of the step (Sobel ~298)
			// vote; the next ring out is ~236.
			p := DefaultHoughParams()
			p.EdgeThreshold = 270
			circles, err := HoughCircles(disc(80, 90, tt.cx, tt.cy, tt.r, tt.value), p)
			if err != nil {
				t.Fatalf("HoughCircles() error = %v", err)
			}
			best, ok := Strongest(circles)
			if !ok {
				t.Fatal("no circle found")
			}
			if abs(best.R-tt.r) > 1 || abs(best.X-tt.cx) > 1 || abs(best.Y-tt.cy) > 1 {
				t.Errorf("strongest = %+v, want centre (%d, %d) radius %d", best, tt.cx, tt.cy, tt.r)
			}
			for i := 1; i < len(circles); i++ {
				if circles[i].R <= circles[i-1].R {
					t.Fatalf("circles not in radius order: %+v", circles)
				}
			}
		})
	}
}

func TestHoughCirclesFlatImage(t *testing.T) {
	circles, err := HoughCircles(filled(60, 60, 128), DefaultHoughParams())
	if err != nil {
		t.Fatalf("HoughCircles() error = %v", err)
	}
	if len(circles) != 0 {
		t.Errorf("flat image gave %d circles", len(circles))
	}
}

func TestHoughCirclesErrors(t *testing.T) {
	p := DefaultHoughParams()
	if _, err := HoughCircles(nil, p); !errors.Is(err, dip.ErrEmptyImage) {
		t.Errorf("HoughCircles(nil) error = %v, want ErrEmptyImage", err)
	}

	p.MinRadius, p.MaxRadius = 30, 20
	if _, err := HoughCircles(filled(8, 8, 0), p); !errors.Is(err, ErrInvalidParameter) {
		t.Errorf("HoughCircles(min > max) error = %v, want ErrInvalidParameter", err)
	}

	p = DefaultHoughParams()
	p.BlurSize = 4
	if _, err := HoughCircles(filled(8, 8, 0), p); !errors.Is(err, ErrInvalidWindow) {
		t.Errorf("HoughCircles(blur 4) error = %v, want ErrInvalidWindow", err)
	}
}

func TestSobel(t *testing.T) {
	// A vertical step gives a pure horizontal derivative.
	g := fromRows(t,
		[]uint8{0, 0, 10, 10},
		[]uint8{0, 0, 10, 10},
		[]uint8{0, 0, 10, 10},
	)
	gx, gy := Sobel(g)
	if gx[1*4+1] != 40 || gx[1*4+2] != 40 || gx[1*4+0] != 0 {
		t.Errorf("gx row 1 = %v, want [0 40 40 0]", gx[4:8])
	}
	for i, v := range gy {
		if v != 0 {
			t.Fatalf("gy[%d] = %g, want 0", i, v)
		}
	}
}

func TestStrongest(t *testing.T) {
	if _, ok := Strongest(nil); ok {
		t.Error("Strongest(nil) ok = true")
	}
	got, _ := Strongest([]Circle{{R: 20, Votes: 40}, {R: 15, Votes: 90}, {R: 18, Votes: 90}})
	if got.R != 15 {
		t.Errorf("Strongest() = %+v, want the radius 15 circle", got)
	}
}

package filter

import "github.com/seudip/dip"

// Otsu returns the threshold t that maximises the between-class variance
// of the classes [0, t] and (t, 255]. Use it with Threshold.
func Otsu(src *dip.Gray) (int, error) {
	if src.Empty() {
		return 0, dip.ErrEmptyImage
	}
	return otsuHist(Histogram(src)), nil
}

func otsuHist(hist [256]int) int {
	total := 0
	var sum float64
	for i, c := range hist {
		total += c
		sum += float64(i * c)
	}

	var w0, sum0, best float64
	t := 0
	for i, c := range hist {
		w0 += float64(c)
		sum0 += float64(i * c)
		w1 := float64(total) - w0
		if w0 == 0 || w1 == 0 {
			continue
		}
		m0 := sum0 / w0
		m1 := (sum - sum0) / w1
		v := w0 * w1 * (m0 - m1) * (m0 - m1)
		if v > best {
			best = v
			t = i
		}
	}
	return t
}

// MultiOtsu searches every threshold pair 0 < k1 < k2 < 255 for the split
// into [0, k1], (k1, k2], (k2, 255] with the largest between-class variance,
// using prefix sums of the histogram. It returns (0, 0) when no pair leaves
// all three classes populated.
func MultiOtsu(src *dip.Gray) (k1, k2 int, err error) {
	if src.Empty() {
		return 0, 0, dip.ErrEmptyImage
	}
	k1, k2 = multiOtsuHist(Histogram(src))
	return k1, k2, nil
}

func multiOtsuHist(hist [256]int) (int, int) {
	var w, m [256]float64
	w[0] = float64(hist[0])
	for i := 1; i < 256; i++ {
		w[i] = w[i-1] + float64(hist[i])
		m[i] = m[i-1] + float64(i*hist[i])
	}

	best := -1.0
	k1, k2 := 0, 0
	for a := 1; a < 254; a++ {
		for b := a + 1; b < 255; b++ {
			w0, s0 := w[a], m[a]
			w1, s1 := w[b]-w[a], m[b]-m[a]
			w2, s2 := w[255]-w[b], m[255]-m[b]
			if w0 <= 0 || w1 <= 0 || w2 <= 0 {
				continue
			}
			// The total mean and count are constant, so the sum of
			// squared class sums over class sizes ranks the splits.
			v := s0*s0/w0 + s1*s1/w1 + s2*s2/w2
			if v > best {
				best = v
				k1, k2 = a, b
			}
		}
	}
	return k1, k2
}

// Quantize maps pixels <= k1 to 0, pixels <= k2 to 127 and the rest to 255.
func Quantize(src *dip.Gray, k1, k2 int) (*dip.Gray, error) {
	if src.Empty() {
		return nil, dip.ErrEmptyImage
	}
	var l LUT
	for i := range l {
		switch {
		case i <= k1:
			l[i] = 0
		case i <= k2:
			l[i] = 127
		default:
			l[i] = 255
		}
	}
	return l.Apply(src), nil
}

package filter

import (
	"fmt"
	"math"
	"sync"
)

// Kernel is a row-major correlation kernel anchored at its centre
// (Width/2, Height/2).
type Kernel struct {
	Width, Height int
	Data          []float64
}

// NewKernel wraps data as a w x h kernel.
func NewKernel(w, h int, data []float64) (Kernel, error) {
	if w <= 0 || h <= 0 || len(data) != w*h {
		return Kernel{}, fmt.Errorf("%w: kernel %dx%d with %d values", ErrInvalidParameter, w, h, len(data))
	}
	return Kernel{Width: w, Height: h, Data: data}, nil
}

// At returns the weight at column x, row y.
func (k Kernel) At(x, y int) float64 {
	return k.Data[y*k.Width+x]
}

// Sum returns the sum of all weights.
func (k Kernel) Sum() float64 {
	var s float64
	for _, v := range k.Data {
		s += v
	}
	return s
}

// BoxKernel returns an n x n mean kernel. n <= 0 yields the identity.
func BoxKernel(n int) Kernel {
	if n <= 0 {
		n = 1
	}
	data := make([]float64, n*n)
	v := 1 / float64(n*n)
	for i := range data {
		data[i] = v
	}
	return Kernel{Width: n, Height: n, Data: data}
}

// LaplacianKernel returns the 3x3 second derivative kernel with a -4
// centre, or the -8 centre variant that includes the diagonals.
func LaplacianKernel(eight bool) Kernel {
	if eight {
		return Kernel{Width: 3, Height: 3, Data: []float64{
			1, 1, 1,
			1, -8, 1,
			1, 1, 1,
		}}
	}
	return Kernel{Width: 3, Height: 3, Data: []float64{
		0, 1, 0,
		1, -4, 1,
		0, 1, 0,
	}}
}

// GaussianKernel returns the normalised size x size Gaussian kernel, the
// outer product of GaussianKernel1D with itself.
func GaussianKernel(size int, sigma float64) Kernel {
	g := CachedGaussianKernel1D(size, sigma)
	n := len(g)
	data := make([]float64, n*n)
	for y, gy := range g {
		for x, gx := range g {
			data[y*n+x] = gy * gx
		}
	}
	return Kernel{Width: n, Height: n, Data: data}
}

// GaussianKernel1D generates a 1D Gaussian kernel of the given odd size.
// The kernel is normalized so all values sum to 1.0.
//
// A non-positive sigma is derived from the size as
// 0.3*((size-1)*0.5-1) + 0.8. A non-positive size yields [1.0].
func GaussianKernel1D(size int, sigma float64) []float64 {
	if size <= 0 {
		return []float64{1.0}
	}
	if sigma <= 0 {
		sigma = 0.3*(float64(size-1)*0.5-1) + 0.8
	}

	kernel := make([]float64, size)
	half := float64(size-1) / 2
	twoSigmaSq := 2 * sigma * sigma
	sum := 0.0

	for i := range kernel {
		x := float64(i) - half
		kernel[i] = math.Exp(-(x * x) / twoSigmaSq)
		sum += kernel[i]
	}
	for i := range kernel {
		kernel[i] /= sum
	}
	return kernel
}

type kernelKey struct {
	size  int
	sigma float64
}

// kernelCache caches computed Gaussian kernels to avoid recomputation.
type kernelCache struct {
	mu     sync.RWMutex
	cache  map[kernelKey][]float64
	maxLen int
}

var defaultKernelCache = newKernelCache(64)

func newKernelCache(maxLen int) *kernelCache {
	return &kernelCache{
		cache:  make(map[kernelKey][]float64),
		maxLen: maxLen,
	}
}

// get retrieves a kernel from cache or generates and caches it.
func (c *kernelCache) get(size int, sigma float64) []float64 {
	key := kernelKey{size, sigma}

	c.mu.RLock()
	if kernel, ok := c.cache[key]; ok {
		c.mu.RUnlock()
		return kernel
	}
	c.mu.RUnlock()

	kernel := GaussianKernel1D(size, sigma)

	c.mu.Lock()
	if len(c.cache) >= c.maxLen {
		// Drop half the entries; sizes and sigmas come from a short config.
		count := 0
		for k := range c.cache {
			delete(c.cache, k)
			count++
			if count >= c.maxLen/2 {
				break
			}
		}
	}
	c.cache[key] = kernel
	c.mu.Unlock()

	return kernel
}

// CachedGaussianKernel1D returns a shared Gaussian kernel for (size, sigma).
// Callers must not modify the returned slice.
func CachedGaussianKernel1D(size int, sigma float64) []float64 {
	return defaultKernelCache.get(size, sigma)
}

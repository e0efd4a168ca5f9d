// Package config holds the parameters of the exercise commands.
//
// Every command starts from Default, overlays an optional YAML file, then
// its flags and positional arguments. Nothing is compiled into the
// resampling calls themselves.
package config

import (
	"errors"
	"fmt"
	"math"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// ErrInvalid is returned by Validate for out-of-range settings.
var ErrInvalid = errors.New("config: invalid")

// Config is the full set of exercise parameters.
type Config struct {
	Input     string `yaml:"input"`
	OutputDir string `yaml:"output_dir"`
	Workers   int    `yaml:"workers"`
	Verbose   bool   `yaml:"verbose"`

	Move     Move     `yaml:"move"`
	Rotate   Rotate   `yaml:"rotate"`
	Shear    Shear    `yaml:"shear"`
	Resize   Resize   `yaml:"resize"`
	Filter   Filter   `yaml:"filter"`
	Register Register `yaml:"register"`
}

// Move is the translation exercise.
type Move struct {
	DX float64 `yaml:"dx"`
	DY float64 `yaml:"dy"`
}

// Rotate is the rotation exercise. Angle is in degrees, counter-clockwise.
type Rotate struct {
	Angle float64 `yaml:"angle"`
}

// Shear is the shear exercise.
type Shear struct {
	SHX float64 `yaml:"shx"`
	SHY float64 `yaml:"shy"`
}

// Resize is the scaling exercise.
type Resize struct {
	SX float64 `yaml:"sx"`
	SY float64 `yaml:"sy"`
}

// Filter holds the defaults of the filtering exercises.
type Filter struct {
	Gamma           float64 `yaml:"gamma"`
	KernelSize      int     `yaml:"kernel_size"`
	Sigma           float64 `yaml:"sigma"`
	BoostK          float64 `yaml:"boost_k"`
	MaxWindow       int     `yaml:"max_window"`
	MorphSize       int     `yaml:"morph_size"`
	NotchHalfWidth  int     `yaml:"notch_half_width"`
	NotchSkipRadius int     `yaml:"notch_skip_radius"`
	WatermarkAlpha  float64 `yaml:"watermark_alpha"`

	PyramidLevels    int     `yaml:"pyramid_levels"`
	WaveletLevels    int     `yaml:"wavelet_levels"`
	WaveletThreshold float64 `yaml:"wavelet_threshold"`

	HoughMinRadius int     `yaml:"hough_min_radius"`
	HoughMaxRadius int     `yaml:"hough_max_radius"`
	HoughEdge      float64 `yaml:"hough_edge"`
	HoughMinVotes  int     `yaml:"hough_min_votes"`
}

// Register is the feature-based registration exercise. Input is the fixed
// image and Moving is aligned onto it. An empty Matches detects features
// instead of reading them from a file.
type Register struct {
	Moving     string  `yaml:"moving"`
	Matches    string  `yaml:"matches"`
	Threshold  float64 `yaml:"ransac_threshold"`
	Iterations int     `yaml:"ransac_iterations"`
}

// Default returns the parameters the course exercises ship with.
func Default() Config {
	return Config{
		Input:     "../SEU_gray.png",
		OutputDir: ".",
		Workers:   0,
		Move:      Move{DX: 80, DY: 80},
		Rotate:    Rotate{Angle: 45},
		Shear:     Shear{SHX: 0.3, SHY: 0},
		Resize:    Resize{SX: 2, SY: 2},
		Filter: Filter{
			Gamma:           0.5,
			KernelSize:      11,
			Sigma:           5,
			BoostK:          1.5,
			MaxWindow:       7,
			MorphSize:       7,
			NotchHalfWidth:  2,
			NotchSkipRadius: 10,
			WatermarkAlpha:  0.3,

			PyramidLevels:    3,
			WaveletLevels:    4,
			WaveletThreshold: 0.08,

			HoughMinRadius: 15,
			HoughMaxRadius: 35,
			HoughEdge:      100,
			HoughMinVotes:  25,
		},
		Register: Register{
			Moving:     "../2/custom_shear.png",
			Threshold:  3,
			Iterations: 2000,
		},
	}
}

// Load returns Default overlaid with the YAML file at path. Keys missing
// from the file keep their defaults. An empty path returns Default.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return cfg, fmt.Errorf("config: read %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("config: parse %s: %w", path, err)
	}
	return cfg, cfg.Validate()
}

// Validate reports the first out-of-range setting.
func (c Config) Validate() error {
	switch {
	case c.Input == "":
		return fmt.Errorf("%w: input is empty", ErrInvalid)
	case c.Workers < 0:
		return fmt.Errorf("%w: workers %d < 0", ErrInvalid, c.Workers)
	case !positive(c.Resize.SX) || !positive(c.Resize.SY):
		return fmt.Errorf("%w: resize scale (%g, %g) must be positive", ErrInvalid, c.Resize.SX, c.Resize.SY)
	case c.Filter.MaxWindow < 3 || c.Filter.MaxWindow%2 == 0:
		return fmt.Errorf("%w: max_window %d must be odd and at least 3", ErrInvalid, c.Filter.MaxWindow)
	case c.Filter.KernelSize < 1 || c.Filter.KernelSize%2 == 0:
		return fmt.Errorf("%w: kernel_size %d must be odd", ErrInvalid, c.Filter.KernelSize)
	case c.Filter.MorphSize < 1 || c.Filter.MorphSize%2 == 0:
		return fmt.Errorf("%w: morph_size %d must be odd", ErrInvalid, c.Filter.MorphSize)
	case c.Filter.PyramidLevels < 1:
		return fmt.Errorf("%w: pyramid_levels %d < 1", ErrInvalid, c.Filter.PyramidLevels)
	case c.Filter.WaveletLevels < 1 || c.Filter.WaveletLevels > 16:
		return fmt.Errorf("%w: wavelet_levels %d outside 1..16", ErrInvalid, c.Filter.WaveletLevels)
	case c.Filter.WaveletThreshold < 0:
		return fmt.Errorf("%w: wavelet_threshold %g < 0", ErrInvalid, c.Filter.WaveletThreshold)
	case c.Filter.HoughMinRadius < 1 || c.Filter.HoughMaxRadius < c.Filter.HoughMinRadius:
		return fmt.Errorf("%w: hough radius range [%d, %d]", ErrInvalid, c.Filter.HoughMinRadius, c.Filter.HoughMaxRadius)
	case !positive(c.Register.Threshold) || c.Register.Iterations < 1:
		return fmt.Errorf("%w: ransac threshold %g, iterations %d", ErrInvalid, c.Register.Threshold, c.Register.Iterations)
	}
	return nil
}

// OutputPath joins name onto the output directory.
func (c Config) OutputPath(name string) string {
	return filepath.Join(c.OutputDir, name)
}

func positive(v float64) bool {
	return v > 0 && !math.IsInf(v, 0)
}

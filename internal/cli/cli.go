// Package cli is the plumbing shared by the resampling commands: flag and
// config handling, logging setup, and writing each result next to the
// library reference it is compared against.
package cli

import (
	"errors"
	"flag"
	"fmt"
	"image"
	"io"
	"log/slog"
	"os"
	"strconv"

	"github.com/seudip/dip"
	"github.com/seudip/dip/internal/config"
	"github.com/seudip/dip/internal/imageio"
	"github.com/seudip/dip/internal/reference"
)

// ErrUsage is returned for malformed positional arguments.
var ErrUsage = errors.New("cli: usage")

// Flags are the options every resampling command accepts.
type Flags struct {
	Config  string
	Input   string
	Out     string
	Workers int
	Verbose bool
}

// Register defines the common flags on fs.
func Register(fs *flag.FlagSet) *Flags {
	f := &Flags{}
	fs.StringVar(&f.Config, "config", "", "YAML config file")
	fs.StringVar(&f.Input, "input", "", "source image (overrides config)")
	fs.StringVar(&f.Out, "out", "", "output directory (overrides config)")
	fs.IntVar(&f.Workers, "workers", 0, "row-band workers, 0 for GOMAXPROCS")
	fs.BoolVar(&f.Verbose, "v", false, "debug logging")
	return f
}

// Resolve loads the config file named by -config and applies the flags the
// user set explicitly on top of it.
func Resolve(fs *flag.FlagSet, f *Flags) (config.Config, error) {
	cfg, err := config.Load(f.Config)
	if err != nil {
		return cfg, err
	}

	fs.Visit(func(fl *flag.Flag) {
		switch fl.Name {
		case "input":
			cfg.Input = f.Input
		case "out":
			cfg.OutputDir = f.Out
		case "workers":
			cfg.Workers = f.Workers
		case "v":
			cfg.Verbose = f.Verbose
		}
	})
	return cfg, cfg.Validate()
}

// Floats overwrites dst with the parsed positional arguments. No arguments
// keep dst unchanged; otherwise the count must match exactly.
func Floats(args []string, dst ...*float64) error {
	if len(args) == 0 {
		return nil
	}
	if len(args) != len(dst) {
		return fmt.Errorf("%w: want %d numeric arguments, got %d", ErrUsage, len(dst), len(args))
	}

	vals := make([]float64, len(args))
	for i, a := range args {
		v, err := strconv.ParseFloat(a, 64)
		if err != nil {
			return fmt.Errorf("%w: argument %d: %w", ErrUsage, i+1, err)
		}
		vals[i] = v
	}
	for i, v := range vals {
		*dst[i] = v
	}
	return nil
}

// NewLogger returns a text logger on w at Info, or Debug when verbose.
func NewLogger(w io.Writer, verbose bool) *slog.Logger {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

// Session holds the loaded source image and the resolved configuration of
// one command invocation.
type Session struct {
	Config config.Config
	Source *dip.Gray
	Log    *slog.Logger
}

// Open installs the command logger for the library and loads the source.
func Open(cfg config.Config) (*Session, error) {
	logger := NewLogger(os.Stderr, cfg.Verbose)
	dip.SetLogger(logger)

	src, err := dip.Load(cfg.Input)
	if err != nil {
		return nil, err
	}
	if err := os.MkdirAll(cfg.OutputDir, 0o755); err != nil {
		return nil, fmt.Errorf("cli: output dir: %w", err)
	}

	logger.Info("loaded", "input", cfg.Input, "size", fmt.Sprintf("%dx%d", src.Width, src.Height))
	return &Session{Config: cfg, Source: src, Log: logger}, nil
}

// Options returns the resampling options derived from the config.
func (s *Session) Options() []dip.Option {
	return []dip.Option{dip.WithWorkers(s.Config.Workers)}
}

// Save writes g under the output directory.
func (s *Session) Save(name string, g *dip.Gray) error {
	path := s.Config.OutputPath(name)
	if err := g.Save(path); err != nil {
		return fmt.Errorf("cli: save %s: %w", name, err)
	}
	s.Log.Info("wrote", "path", path)
	return nil
}

// SaveImage writes a colour result such as an overlay under the output
// directory.
func (s *Session) SaveImage(name string, img image.Image) error {
	path := s.Config.OutputPath(name)
	if err := imageio.Save(path, img); err != nil {
		return fmt.Errorf("cli: save %s: %w", name, err)
	}
	s.Log.Info("wrote", "path", path)
	return nil
}

// Reference warps src with the library implementation through the forward
// transform t onto a canvas the size of src.
func (s *Session) Reference(src *dip.Gray, t dip.Transform) (*dip.Gray, error) {
	in := src.ToImage()
	img, err := reference.Warp(in, t.Affine(), in.Bounds().Size(), reference.Linear)
	if errors.Is(err, reference.ErrSingular) {
		return nil, fmt.Errorf("cli: %s: %w: %w", reference.Name(), dip.ErrSingularTransform, err)
	}
	if err != nil {
		return nil, fmt.Errorf("cli: %s: %w", reference.Name(), err)
	}
	return dip.GrayFromImage(img), nil
}

// Compare logs how far custom is from the library result.
func (s *Session) Compare(label string, custom, easy *dip.Gray) {
	stats, err := dip.Diff(custom, easy)
	if err != nil {
		s.Log.Warn("compare", "op", label, "err", err)
		return
	}
	s.Log.Info("compare",
		"op", label,
		"reference", reference.Name(),
		"equal", stats.Equal(),
		"mismatched", stats.Mismatched,
		"mean_abs", fmt.Sprintf("%.3f", stats.MeanAbs),
		"max_abs", stats.MaxAbs)
}

// Pair computes the custom result from customSrc and the library reference
// from easySrc for the same forward transform, saves them as
// custom_<name>.png and easy_<name>.png, and logs the comparison. The two
// sources differ only when chaining an inverse onto an earlier pair.
//
// A singular t returns dip.ErrSingularTransform before either image is
// written.
func (s *Session) Pair(name string, customSrc, easySrc *dip.Gray, t dip.Transform,
	custom func(*dip.Gray) (*dip.Gray, error)) (*dip.Gray, *dip.Gray, error) {
	if _, err := t.Invert(); err != nil {
		return nil, nil, fmt.Errorf("%s: %w", name, err)
	}
	easy, err := s.Reference(easySrc, t)
	if err != nil {
		return nil, nil, err
	}
	if err := s.Save("easy_"+name+".png", easy); err != nil {
		return nil, nil, err
	}

	out, err := custom(customSrc)
	if err != nil {
		return nil, easy, fmt.Errorf("%s: %w", name, err)
	}
	if err := s.Save("custom_"+name+".png", out); err != nil {
		return nil, easy, err
	}

	s.Compare(name, out, easy)
	return out, easy, nil
}

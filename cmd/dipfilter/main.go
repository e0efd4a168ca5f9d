// Command dipfilter runs the filtering exercises: point transforms,
// smoothing and sharpening, adaptive median, notch filtering, watermarks,
// morphology and Otsu segmentation, plus the later course work: colour
// segmentation, image pyramids, Hough circles and wavelet denoising.
package main

import (
	"fmt"
	"log"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/seudip/dip"
	"github.com/seudip/dip/internal/cli"
	"github.com/seudip/dip/internal/config"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		log.Fatalf("dipfilter: %v", err)
	}
}

// app carries the resolved configuration into the subcommands.
type app struct {
	configPath string
	input      string
	out        string
	verbose    bool

	cfg config.Config
	log *slog.Logger
}

func newRootCmd() *cobra.Command {
	a := &app{}
	root := &cobra.Command{
		Use:           "dipfilter",
		Short:         "Grayscale filtering exercises",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.resolve(cmd)
		},
	}

	pf := root.PersistentFlags()
	pf.StringVar(&a.configPath, "config", "", "YAML config file")
	pf.StringVarP(&a.input, "input", "i", "", "source image (overrides config)")
	pf.StringVarP(&a.out, "out", "o", "", "output directory (overrides config)")
	pf.BoolVarP(&a.verbose, "verbose", "v", false, "debug logging")

	root.AddCommand(
		a.gammaCmd(),
		a.equalizeCmd(),
		a.smoothCmd(),
		a.laplacianCmd(),
		a.highBoostCmd(),
		a.adaptiveMedianCmd(),
		a.notchCmd(),
		a.watermarkCmd(),
		a.morphCmd(),
		a.otsuCmd(),
		a.colorCmd(),
		a.pyramidCmd(),
		a.houghCmd(),
		a.waveletCmd(),
	)
	return root
}

// resolve applies defaults < YAML < flags and installs the logger.
func (a *app) resolve(cmd *cobra.Command) error {
	cfg, err := config.Load(a.configPath)
	if err != nil {
		return err
	}

	flags := cmd.Flags()
	if flags.Changed("input") {
		cfg.Input = a.input
	}
	if flags.Changed("out") {
		cfg.OutputDir = a.out
	}
	if flags.Changed("verbose") {
		cfg.Verbose = a.verbose
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	if err := os.MkdirAll(cfg.OutputDir, 0o755); err != nil {
		return fmt.Errorf("output dir: %w", err)
	}

	a.cfg = cfg
	a.log = cli.NewLogger(cmd.ErrOrStderr(), cfg.Verbose)
	dip.SetLogger(a.log)
	return nil
}

func (a *app) load() (*dip.Gray, error) {
	src, err := dip.Load(a.cfg.Input)
	if err != nil {
		return nil, err
	}
	a.log.Info("loaded", "input", a.cfg.Input, "size", fmt.Sprintf("%dx%d", src.Width, src.Height))
	return src, nil
}

// save writes each named image under the output directory.
func (a *app) save(images ...named) error {
	for _, n := range images {
		path := a.cfg.OutputPath(n.name)
		if err := n.img.Save(path); err != nil {
			return fmt.Errorf("save %s: %w", n.name, err)
		}
		a.log.Info("wrote", "path", path)
	}
	return nil
}

type named struct {
	name string
	img  *dip.Gray
}

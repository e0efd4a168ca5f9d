package main

import (
	"fmt"
	"image"

	"github.com/spf13/cobra"

	"github.com/seudip/dip"
	"github.com/seudip/dip/internal/filter"
	"github.com/seudip/dip/internal/imageio"
	"github.com/seudip/dip/internal/overlay"
)

// saveImage writes a colour result under the output directory.
func (a *app) saveImage(name string, img image.Image) error {
	path := a.cfg.OutputPath(name)
	if err := imageio.Save(path, img); err != nil {
		return fmt.Errorf("save %s: %w", name, err)
	}
	a.log.Info("wrote", "path", path)
	return nil
}

func (a *app) colorCmd() *cobra.Command {
	return &cobra.Command{
		Use:       "color [rgb|hsv]",
		Short:     "Red and green segmentation by RGB distance or HSV range",
		Args:      cobra.MatchAll(cobra.MaximumNArgs(1), cobra.OnlyValidArgs),
		ValidArgs: []string{"rgb", "hsv"},
		RunE: func(_ *cobra.Command, args []string) error {
			mode := "rgb"
			if len(args) > 0 {
				mode = args[0]
			}
			src, err := imageio.LoadRGBA(a.cfg.Input)
			if err != nil {
				return err
			}
			b := src.Bounds()
			a.log.Info("loaded", "input", a.cfg.Input, "size", fmt.Sprintf("%dx%d", b.Dx(), b.Dy()))

			if mode == "hsv" {
				return a.colorHSV(src)
			}
			return a.colorRGB(src)
		},
	}
}

func (a *app) colorRGB(src *image.RGBA) error {
	red, err := filter.NearColor(src, filter.RedRef, filter.RefDistance)
	if err != nil {
		return err
	}
	green, err := filter.NearColor(src, filter.GreenRef, filter.RefDistance)
	if err != nil {
		return err
	}
	mask, err := filter.Union(red, green)
	if err != nil {
		return err
	}
	seg, err := filter.KeepMasked(src, mask, filter.Background)
	if err != nil {
		return err
	}
	if err := a.saveImage("strawberries_segmented.png", seg); err != nil {
		return err
	}
	return a.save(
		named{"strawberries_red.png", red},
		named{"strawberries_green.png", green},
		named{"strawberries_mask.png", mask},
	)
}

func (a *app) colorHSV(src *image.RGBA) error {
	red, err := filter.InRangeHSV(src, filter.RedHSV...)
	if err != nil {
		return err
	}
	green, err := filter.InRangeHSV(src, filter.GreenHSV...)
	if err != nil {
		return err
	}
	both, err := filter.Union(red, green)
	if err != nil {
		return err
	}

	for _, m := range []struct {
		name string
		mask *dip.Gray
	}{
		{"red_hsv.png", red},
		{"green_hsv.png", green},
		{"red_green_hsv.png", both},
	} {
		kept, err := filter.KeepMasked(src, m.mask, filter.Background)
		if err != nil {
			return err
		}
		if err := a.saveImage(m.name, kept); err != nil {
			return err
		}
	}
	return nil
}

func (a *app) pyramidCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "pyramid [levels]",
		Short: "Gaussian and Laplacian pyramids with reconstruction",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			levels := a.cfg.Filter.PyramidLevels
			if err := intArg(args, 0, &levels); err != nil {
				return err
			}
			src, err := a.load()
			if err != nil {
				return err
			}
			p, err := filter.BuildPyramid(src, levels)
			if err != nil {
				return err
			}

			var out []named
			for i := range p.Gaussian {
				out = append(out,
					named{fmt.Sprintf("gaussian_level_%d.png", i), p.Gaussian[i].Gray()},
					named{fmt.Sprintf("laplacian_level_%d.png", i), p.Laplacian[i].Normalized()})
			}
			rec, err := p.Reconstruct()
			if err != nil {
				return err
			}
			recon := rec.Gray()
			out = append(out, named{"reconstructed_image.png", recon})

			stats, err := dip.Diff(src, recon)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "reconstruction: %d mismatched, max %d\n", stats.Mismatched, stats.MaxAbs)
			return a.save(out...)
		},
	}
}

func (a *app) houghCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "hough",
		Short: "Circle detection with a gradient-voting Hough transform",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			src, err := a.load()
			if err != nil {
				return err
			}
			f := a.cfg.Filter
			p := filter.DefaultHoughParams()
			p.MinRadius, p.MaxRadius = f.HoughMinRadius, f.HoughMaxRadius
			p.EdgeThreshold, p.MinVotes = f.HoughEdge, f.HoughMinVotes

			circles, err := filter.HoughCircles(src, p)
			if err != nil {
				return err
			}
			c := overlay.New(src)
			for _, k := range circles {
				fmt.Fprintf(cmd.OutOrStdout(), "circle: center=(%d,%d) radius=%d votes=%d\n", k.X, k.Y, k.R, k.Votes)
				x, y := float64(k.X), float64(k.Y)
				c.Ring(x, y, float64(k.R), 2, overlay.Red)
				c.Disc(x, y, 2, overlay.Green)
			}
			if len(circles) == 0 {
				a.log.Warn("no circles found", "min_votes", p.MinVotes)
			}
			return a.saveImage("manual_detected_vessel.png", c.Image())
		},
	}
}

func (a *app) waveletCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "wavelet [threshold]",
		Short: "Wavelet soft-threshold denoising next to the adaptive median",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			f := a.cfg.Filter
			threshold := f.WaveletThreshold
			if err := floatArg(args, 0, &threshold); err != nil {
				return err
			}
			src, err := a.load()
			if err != nil {
				return err
			}
			wav, err := filter.WaveletDenoise(src, f.WaveletLevels, threshold)
			if err != nil {
				return err
			}
			med, err := filter.AdaptiveMedian(src, f.MaxWindow)
			if err != nil {
				return err
			}
			return a.save(
				named{"denoised_wavelet.png", wav},
				named{"denoised_adaptive_median.png", med},
			)
		},
	}
}

package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/seudip/dip"
	"github.com/seudip/dip/internal/filter"
)

// floatArg parses the optional positional argument i into dst.
func floatArg(args []string, i int, dst *float64) error {
	if len(args) <= i {
		return nil
	}
	v, err := strconv.ParseFloat(args[i], 64)
	if err != nil {
		return fmt.Errorf("argument %q: %w", args[i], err)
	}
	*dst = v
	return nil
}

func intArg(args []string, i int, dst *int) error {
	if len(args) <= i {
		return nil
	}
	v, err := strconv.Atoi(args[i])
	if err != nil {
		return fmt.Errorf("argument %q: %w", args[i], err)
	}
	*dst = v
	return nil
}

func (a *app) gammaCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "gamma [gamma]",
		Short: "Power-law intensity transform",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			gamma := a.cfg.Filter.Gamma
			if err := floatArg(args, 0, &gamma); err != nil {
				return err
			}
			src, err := a.load()
			if err != nil {
				return err
			}
			dst, err := filter.Gamma(src, gamma)
			if err != nil {
				return err
			}
			return a.save(named{"transed.png", dst})
		},
	}
}

func (a *app) equalizeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "equalize",
		Short: "Histogram equalization with before and after histograms",
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			src, err := a.load()
			if err != nil {
				return err
			}
			dst, err := filter.Equalize(src)
			if err != nil {
				return err
			}
			return a.save(
				named{"equalized.png", dst},
				named{"hist.png", filter.HistogramImage(filter.Histogram(src), 200)},
				named{"hist_eq.png", filter.HistogramImage(filter.Histogram(dst), 200)},
			)
		},
	}
}

func (a *app) smoothCmd() *cobra.Command {
	return &cobra.Command{
		Use:       "smooth box|gaussian|median",
		Short:     "3x3 smoothing with a mirrored border",
		Args:      cobra.ExactArgs(1),
		ValidArgs: []string{"box", "gaussian", "median"},
		RunE: func(_ *cobra.Command, args []string) error {
			src, err := a.load()
			if err != nil {
				return err
			}

			var dst *dip.Gray
			switch args[0] {
			case "box":
				dst, err = filter.Convolve(src, filter.BoxKernel(3), filter.BorderReflect)
			case "gaussian":
				k, _ := filter.NewKernel(3, 3, []float64{
					1.0 / 16, 2.0 / 16, 1.0 / 16,
					2.0 / 16, 4.0 / 16, 2.0 / 16,
					1.0 / 16, 2.0 / 16, 1.0 / 16,
				})
				dst, err = filter.Convolve(src, k, filter.BorderReflect)
			case "median":
				dst, err = filter.Median(src, 3, filter.BorderReflect)
			default:
				return fmt.Errorf("unknown filter %q: choose box, gaussian or median", args[0])
			}
			if err != nil {
				return err
			}
			return a.save(named{args[0] + ".png", dst})
		},
	}
}

func (a *app) laplacianCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "laplacian [4|8]",
		Short: "Second derivative sharpening",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			kind := 4
			if err := intArg(args, 0, &kind); err != nil {
				return err
			}
			if kind != 4 && kind != 8 {
				return fmt.Errorf("kernel type %d: choose 4 or 8", kind)
			}
			src, err := a.load()
			if err != nil {
				return err
			}
			lap, sharp, err := filter.Laplacian(src, kind == 8, 1)
			if err != nil {
				return err
			}
			suffix := strconv.Itoa(kind) + ".png"
			return a.save(named{"laplace" + suffix, lap}, named{"enhanced" + suffix, sharp})
		},
	}
}

func (a *app) highBoostCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "highboost [k]",
		Short: "Unsharp masking with a Gaussian blur",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			f := a.cfg.Filter
			k := f.BoostK
			if err := floatArg(args, 0, &k); err != nil {
				return err
			}
			src, err := a.load()
			if err != nil {
				return err
			}
			smooth, mask, boosted, err := filter.HighBoost(src, k, f.KernelSize, f.Sigma)
			if err != nil {
				return err
			}
			return a.save(named{"smooth.png", smooth}, named{"mask.png", mask}, named{"highboost.png", boosted})
		},
	}
}

func (a *app) adaptiveMedianCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "adaptive-median [smax]",
		Short: "Adaptive median filter for impulse noise",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			smax := a.cfg.Filter.MaxWindow
			if err := intArg(args, 0, &smax); err != nil {
				return err
			}
			src, err := a.load()
			if err != nil {
				return err
			}
			dst, err := filter.AdaptiveMedian(src, smax)
			if err != nil {
				return err
			}
			return a.save(named{fmt.Sprintf("adaptive_median_smax%d.png", smax), dst})
		},
	}
}

func (a *app) notchCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "notch",
		Short: "Vertical notch filter in the frequency domain",
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			src, err := a.load()
			if err != nil {
				return err
			}
			f := a.cfg.Filter
			res, err := filter.NotchFilter(src, f.NotchHalfWidth, f.NotchSkipRadius)
			if err != nil {
				return err
			}
			return a.save(
				named{"fft_result.png", res.Spectrum},
				named{"notch_filter.png", res.Mask},
				named{"fft_filtered_result.png", res.FilteredSpectrum},
				named{"fft_filtered_image.png", res.Filtered},
				named{"extracted_noise.png", res.Noise},
			)
		},
	}
}

func (a *app) watermarkCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "watermark <mark>",
		Short: "Visible and least-significant-bit watermarks",
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			src, err := a.load()
			if err != nil {
				return err
			}
			mark, err := dip.Load(args[0])
			if err != nil {
				return err
			}

			visible, err := filter.VisibleWatermark(src, mark, a.cfg.Filter.WatermarkAlpha)
			if err != nil {
				return err
			}
			hidden, err := filter.EmbedWatermark(src, mark)
			if err != nil {
				return err
			}
			extracted, err := filter.ExtractWatermark(hidden)
			if err != nil {
				return err
			}
			return a.save(
				named{"watermarked.png", visible},
				named{"invisible_watermarked.png", hidden},
				named{"extracted_watermark.png", extracted},
			)
		},
	}
}

func (a *app) morphCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "morph",
		Short: "Binary opening and closing with a square element",
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			src, err := a.load()
			if err != nil {
				return err
			}
			bin, err := filter.Threshold(src, 127)
			if err != nil {
				return err
			}
			size := a.cfg.Filter.MorphSize
			opened, err := filter.Open(bin, size)
			if err != nil {
				return err
			}
			closed, err := filter.Close(bin, size)
			if err != nil {
				return err
			}
			return a.save(named{"res_opening.png", opened}, named{"res_closing.png", closed})
		},
	}
}

func (a *app) otsuCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "otsu",
		Short: "Single and two-threshold Otsu segmentation",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			src, err := a.load()
			if err != nil {
				return err
			}
			blur, err := filter.GaussianBlur(src, 5, 1.5, filter.BorderReflect101)
			if err != nil {
				return err
			}

			t, err := filter.Otsu(blur)
			if err != nil {
				return err
			}
			single, err := filter.Threshold(blur, t)
			if err != nil {
				return err
			}

			k1, k2, err := filter.MultiOtsu(blur)
			if err != nil {
				return err
			}
			multi, err := filter.Quantize(src, k1, k2)
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "otsu: %d\nmulti-otsu: k1=%d k2=%d\n", t, k1, k2)
			return a.save(named{"single_otsu_result.png", single}, named{"multi_otsu_result.png", multi})
		},
	}
}

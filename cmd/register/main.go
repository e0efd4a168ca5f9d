// Command register aligns a moving image onto the input image with an
// affine map fitted by RANSAC, and writes the matches, the aligned pair and
// a 50/50 blend.
//
//	register [-config dip.yaml] [-input fixed] [-out dir] [moving [matches]]
//
// Without a matches file, features are detected with ORB, which needs the
// gocv build tag.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/seudip/dip"
	"github.com/seudip/dip/internal/cli"
	"github.com/seudip/dip/internal/overlay"
	"github.com/seudip/dip/internal/register"
)

func main() {
	f := cli.Register(flag.CommandLine)
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "usage: register [flags] [moving [matches]]\n")
		flag.PrintDefaults()
	}
	flag.Parse()

	cfg, err := cli.Resolve(flag.CommandLine, f)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	args := flag.Args()
	if len(args) > 2 {
		flag.Usage()
		os.Exit(2)
	}
	if len(args) > 0 {
		cfg.Register.Moving = args[0]
	}
	if len(args) > 1 {
		cfg.Register.Matches = args[1]
	}

	s, err := cli.Open(cfg)
	if err != nil {
		log.Fatalf("Failed to open input: %v", err)
	}
	moving, err := dip.Load(cfg.Register.Moving)
	if err != nil {
		log.Fatalf("Failed to open moving image: %v", err)
	}

	matches, err := loadMatches(s, moving)
	if err != nil {
		log.Fatalf("Failed to match features: %v", err)
	}
	t, err := align(s, moving, matches)
	if err != nil {
		log.Fatalf("Failed to register: %v", err)
	}
	m := t.Matrix()
	fmt.Printf("affine:\n%10.5f %10.5f %10.3f\n%10.5f %10.5f %10.3f\n",
		m[0][0], m[0][1], m[0][2], m[1][0], m[1][1], m[1][2])
}

func loadMatches(s *cli.Session, moving *dip.Gray) ([]register.Match, error) {
	path := s.Config.Register.Matches
	if path == "" {
		return register.Detect(s.Source, moving)
	}
	r, err := os.Open(filepath.Clean(path))
	if err != nil {
		return nil, err
	}
	defer r.Close()
	return register.ReadMatches(r)
}

// align fits the moving-to-fixed map and writes matches.png,
// aligned_image.png and overlay.png.
func align(s *cli.Session, moving *dip.Gray, matches []register.Match) (dip.Transform, error) {
	fixed := s.Source
	opt := register.DefaultRANSAC()
	opt.Threshold = s.Config.Register.Threshold
	opt.Iterations = s.Config.Register.Iterations

	t, inliers, err := register.EstimateAffineRANSAC(matches, opt)
	if err != nil {
		return dip.Transform{}, err
	}
	kept := 0
	for _, in := range inliers {
		if in {
			kept++
		}
	}
	s.Log.Info("ransac", "matches", len(matches), "inliers", kept)

	pairs := overlay.SideBySide(fixed, moving)
	for i, mt := range matches {
		col := overlay.Red
		if inliers[i] {
			col = overlay.Green
		}
		pairs.Line(mt.X1, mt.Y1, mt.X2+float64(fixed.Width), mt.Y2, 1, col)
	}
	if err := s.SaveImage("matches.png", pairs.Image()); err != nil {
		return dip.Transform{}, err
	}

	opts := append(s.Options(), dip.WithSize(fixed.Width, fixed.Height))
	aligned, err := dip.Warp(moving, t, opts...)
	if err != nil {
		return dip.Transform{}, err
	}
	if err := s.SaveImage("aligned_image.png", overlay.SideBySide(fixed, aligned).Image()); err != nil {
		return dip.Transform{}, err
	}

	blend, err := register.Blend(fixed, aligned, 0.5)
	if err != nil {
		return dip.Transform{}, err
	}
	if err := s.Save("overlay.png", blend); err != nil {
		return dip.Transform{}, err
	}
	return t, nil
}

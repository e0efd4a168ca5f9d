// Command resize scales an image about the origin on its own canvas, scales
// the result back, and also writes the full-size pixel-centre resize next to
// the library resize.
//
//	resize [-config dip.yaml] [-input img] [-out dir] [sx sy]
package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/seudip/dip"
	"github.com/seudip/dip/internal/cli"
	"github.com/seudip/dip/internal/reference"
)

func main() {
	f := cli.Register(flag.CommandLine)
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "usage: resize [flags] [sx sy]\n")
		flag.PrintDefaults()
	}
	flag.Parse()

	cfg, err := cli.Resolve(flag.CommandLine, f)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	if err := cli.Floats(flag.Args(), &cfg.Resize.SX, &cfg.Resize.SY); err != nil {
		log.Fatalf("%v", err)
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("%v", err)
	}

	s, err := cli.Open(cfg)
	if err != nil {
		log.Fatalf("Failed to open input: %v", err)
	}

	sx, sy := cfg.Resize.SX, cfg.Resize.SY
	scaled, _, err := s.Pair("resize", s.Source, s.Source, dip.Scaling(sx, sy),
		func(g *dip.Gray) (*dip.Gray, error) { return dip.ScaleCanvas(g, sx, sy, s.Options()...) })
	if err != nil {
		log.Fatalf("Failed to resize: %v", err)
	}

	back, err := dip.ScaleCanvas(scaled, 1/sx, 1/sy, s.Options()...)
	if err != nil {
		log.Fatalf("Failed to resize back: %v", err)
	}
	if err := s.Save("custom_resize_inv.png", back); err != nil {
		log.Fatalf("%v", err)
	}

	full, err := dip.Resize(s.Source, sx, sy, s.Options()...)
	if err != nil {
		log.Fatalf("Failed to resize: %v", err)
	}
	if err := s.Save("custom_resize_full.png", full); err != nil {
		log.Fatalf("%v", err)
	}

	easyFull := dip.GrayFromImage(reference.Resize(s.Source.ToImage(), full.Width, full.Height))
	if err := s.Save("easy_resize_full.png", easyFull); err != nil {
		log.Fatalf("%v", err)
	}
	s.Compare("resize_full", full, easyFull)
}

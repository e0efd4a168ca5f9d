// Command rotate turns an image counter-clockwise about its centre and
// writes the result next to the library reference.
//
//	rotate [-config dip.yaml] [-input img] [-out dir] [angle]
package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/seudip/dip"
	"github.com/seudip/dip/internal/cli"
)

func main() {
	f := cli.Register(flag.CommandLine)
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "usage: rotate [flags] [angle]\n")
		flag.PrintDefaults()
	}
	flag.Parse()

	cfg, err := cli.Resolve(flag.CommandLine, f)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	if err := cli.Floats(flag.Args(), &cfg.Rotate.Angle); err != nil {
		log.Fatalf("%v", err)
	}

	s, err := cli.Open(cfg)
	if err != nil {
		log.Fatalf("Failed to open input: %v", err)
	}

	angle := cfg.Rotate.Angle
	cx, cy := float64(s.Source.Width)/2, float64(s.Source.Height)/2
	_, _, err = s.Pair("rotate", s.Source, s.Source, dip.Rotation(cx, cy, angle),
		func(g *dip.Gray) (*dip.Gray, error) { return dip.Rotate(g, angle, s.Options()...) })
	if err != nil {
		log.Fatalf("Failed to rotate: %v", err)
	}
}

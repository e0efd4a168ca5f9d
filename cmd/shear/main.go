// Command shear shears an image by (shx, shy) and undoes it with the
// shear (-shx/det, -shy/det), writing each step next to the library
// reference.
//
//	shear [-config dip.yaml] [-input img] [-out dir] [shx shy]
package main

import (
	"errors"
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
		fmt.Fprintf(os.Stderr, "usage: shear [flags] [shx shy]\n")
		flag.PrintDefaults()
	}
	flag.Parse()

	cfg, err := cli.Resolve(flag.CommandLine, f)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	if err := cli.Floats(flag.Args(), &cfg.Shear.SHX, &cfg.Shear.SHY); err != nil {
		log.Fatalf("%v", err)
	}

	shx, shy := cfg.Shear.SHX, cfg.Shear.SHY
	if _, err := dip.Shear(shx, shy).Invert(); err != nil {
		log.Fatalf("Shear (%g, %g) cannot be applied: %v", shx, shy, err)
	}

	s, err := cli.Open(cfg)
	if err != nil {
		log.Fatalf("Failed to open input: %v", err)
	}

	sheared, easy, err := s.Pair("shear", s.Source, s.Source, dip.Shear(shx, shy),
		func(g *dip.Gray) (*dip.Gray, error) { return dip.ShearImage(g, shx, shy, s.Options()...) })
	if err != nil {
		log.Fatalf("Failed to shear: %v", err)
	}

	det := 1 - shx*shy
	ix, iy := -shx/det, -shy/det
	_, _, err = s.Pair("shear_inv", sheared, easy, dip.Shear(ix, iy),
		func(g *dip.Gray) (*dip.Gray, error) { return dip.ShearImage(g, ix, iy, s.Options()...) })
	switch {
	case errors.Is(err, dip.ErrSingularTransform):
		s.Log.Warn("inverse shear is singular, skipped", "shx", ix, "shy", iy)
	case err != nil:
		log.Fatalf("Failed to undo shear: %v", err)
	}
}

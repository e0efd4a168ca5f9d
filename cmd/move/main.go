// Command move translates an image by (dx, dy), then moves the result back,
// writing each step next to the library reference.
//
//	move [-config dip.yaml] [-input img] [-out dir] [dx dy]
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
		fmt.Fprintf(os.Stderr, "usage: move [flags] [dx dy]\n")
		flag.PrintDefaults()
	}
	flag.Parse()

	cfg, err := cli.Resolve(flag.CommandLine, f)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	if err := cli.Floats(flag.Args(), &cfg.Move.DX, &cfg.Move.DY); err != nil {
		log.Fatalf("%v", err)
	}

	s, err := cli.Open(cfg)
	if err != nil {
		log.Fatalf("Failed to open input: %v", err)
	}

	dx, dy := cfg.Move.DX, cfg.Move.DY
	moved, easy, err := s.Pair("move", s.Source, s.Source, dip.Translation(dx, dy),
		func(g *dip.Gray) (*dip.Gray, error) { return dip.Move(g, dx, dy, s.Options()...) })
	if err != nil {
		log.Fatalf("Failed to move: %v", err)
	}

	_, _, err = s.Pair("move_inv", moved, easy, dip.Translation(-dx, -dy),
		func(g *dip.Gray) (*dip.Gray, error) { return dip.Move(g, -dx, -dy, s.Options()...) })
	if err != nil {
		log.Fatalf("Failed to move back: %v", err)
	}
}

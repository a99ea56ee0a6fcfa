// Command pongsim advances a Pong world headlessly and prints the result as
// a TOML snapshot. With no input snapshot it starts from the serve position.
package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"os"

	"chosenoffset.com/pong/internal/simulation"
)

func main() {
	if err := run(os.Args[1:], os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string, stdout io.Writer) error {
	fs := flag.NewFlagSet("pongsim", flag.ContinueOnError)
	steps := fs.Uint64("steps", 1000, "number of steps to simulate")
	in := fs.String("in", "", "snapshot to start from (default: a fresh world)")
	out := fs.String("o", "", "write the snapshot to this file instead of stdout")
	if err := fs.Parse(args); err != nil {
		return err
	}

	cfg := simulation.DefaultConfig()
	world := simulation.NewWorld(cfg)
	var start uint64

	if *in != "" {
		f, err := os.Open(*in)
		if err != nil {
			return fmt.Errorf("failed to open snapshot: %w", err)
		}
		snap, err := simulation.DecodeSnapshot(f)
		f.Close()
		if err != nil {
			return err
		}
		world, start = snap.World(), snap.Step
		if err := world.Validate(cfg); err != nil {
			return fmt.Errorf("input %s: %w", *in, err)
		}
	}

	stepper := simulation.NewStepper(cfg)
	simulate(stepper, &world, start, *steps)

	if err := world.Validate(cfg); err != nil {
		return err
	}

	w := stdout
	if *out != "" {
		f, err := os.Create(*out)
		if err != nil {
			return fmt.Errorf("failed to create output: %w", err)
		}
		defer f.Close()
		w = f
	}
	return simulation.EncodeSnapshot(w, world.Snapshot(start+*steps))
}

// simulate runs n steps with the paddles left alone and logs every point.
func simulate(s *simulation.Stepper, w *simulation.World, start, n uint64) {
	for i := uint64(1); i <= n; i++ {
		res := s.Step(w)
		if res.Scored != simulation.SideNone {
			log.Printf("Step %d: point for %s", start+i, res.Scored)
		}
	}
}

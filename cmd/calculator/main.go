package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/brenoafb/calculator/pkg/calc"
)

var (
	input   = flag.String("i", "input.txt", "file to read expressions from, one per line")
	output  = flag.String("o", "output.txt", "file to write results to")
	workers = flag.Int("j", 1, "number of lines to evaluate concurrently")
	verbose = flag.Bool("v", false, "trace every expression to stderr")
	dump    = flag.Bool("dump", false, "with -v, also dump the postfix tokens")
	nocolor = flag.Bool("nocolor", false, "disable colors in the trace")
)

func main() {
	flag.Parse()

	in, err := os.Open(*input)
	if err != nil {
		panic(fmt.Errorf("cannot open input file: %w", err))
	}

	defer in.Close()

	out, err := os.Create(*output)
	if err != nil {
		panic(fmt.Errorf("cannot open output file: %w", err))
	}

	opts := calc.Options{Workers: *workers}
	if *verbose {
		opts.Trace = calc.NewTracer(os.Stderr, !*nocolor, *dump)
	}

	c := calc.NewCalculator(out, opts)
	stats, err := c.Run(context.Background(), in)

	if err != nil {
		panic(fmt.Errorf("calculation failed: %w", err))
	}

	if err := out.Close(); err != nil {
		panic(fmt.Errorf("error writing output file: %w", err))
	}

	log.Printf("Calculation complete: %d lines, %d errors. Check %s\n", stats.Lines, stats.Errors, *output)
}

package main

import (
	"bufio"
	"flag"
	"fmt"
	"io"
	"math"
	"os"

	"github.com/brenoafb/calculator/pkg/eval"
	"github.com/brenoafb/calculator/pkg/parser"
)

var (
	input    = flag.String("i", "", "input file (default stdin)")
	evaluate = flag.Bool("e", false, "treat input lines as postfix and evaluate them")
)

func main() {
	flag.Parse()

	var r io.Reader = os.Stdin

	if *input != "" {
		f, err := os.Open(*input)
		if err != nil {
			panic(fmt.Errorf("cannot open input file: %w", err))
		}
		defer f.Close()
		r = f
	}

	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), math.MaxInt)
	c := parser.NewConverter()
	e := eval.NewEvaluator()

	for sc.Scan() {
		if *evaluate {
			x, err := e.EvaluateString(sc.Text())
			if err != nil {
				fmt.Printf("error: %s\n", err)
				continue
			}
			fmt.Println(x)
			continue
		}

		p, err := c.Convert(sc.Text())
		if err != nil {
			fmt.Printf("error: %s\n", err)
			continue
		}
		fmt.Println(p.String())
	}

	if err := sc.Err(); err != nil {
		panic(fmt.Errorf("error reading input: %w", err))
	}
}

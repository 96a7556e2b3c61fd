package calc

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"math"
	"strconv"

	"golang.org/x/sync/errgroup"

	"github.com/brenoafb/calculator/pkg/eval"
	"github.com/brenoafb/calculator/pkg/parser"
)

// ErrorLine is written in place of a result for any line that fails.
const ErrorLine = "Error: Invalid expression or division by zero"

const initialBufSize = 64 * 1024

type Options struct {
	// Workers > 1 evaluates lines concurrently. Output order is preserved.
	Workers int
	// Trace, when set, receives one line per evaluated expression.
	Trace *Tracer
}

type Stats struct {
	Lines  int
	Errors int
}

type Calculator struct {
	W    io.Writer
	opts Options
}

func NewCalculator(w io.Writer, opts Options) *Calculator {
	if opts.Workers < 1 {
		opts.Workers = 1
	}
	return &Calculator{W: w, opts: opts}
}

type result struct {
	n       int
	line    string
	postfix parser.Postfix
	value   int
	err     error
}

// engine holds the private stack pair used for one line at a time.
type engine struct {
	conv *parser.Converter
	ev   *eval.Evaluator
}

func newEngine() *engine {
	return &engine{
		conv: parser.NewConverter(),
		ev:   eval.NewEvaluator(),
	}
}

func (e *engine) eval(n int, line string) result {
	res := result{n: n, line: line}

	res.postfix, res.err = e.conv.Convert(line)
	if res.err != nil {
		return res
	}

	res.value, res.err = e.ev.Evaluate(res.postfix)
	return res
}

// Line converts and evaluates a single infix expression.
func Line(line string) (int, error) {
	res := newEngine().eval(1, line)
	return res.value, res.err
}

// Format renders the output line for a value or error, without newline.
func Format(x int, err error) string {
	if err != nil {
		return ErrorLine
	}
	return strconv.Itoa(x)
}

// Run reads expressions from r, one per line, and writes one result line
// per expression to c.W. Per-line failures are written as ErrorLine; only
// read and write failures are returned.
func (c *Calculator) Run(ctx context.Context, r io.Reader) (Stats, error) {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, initialBufSize), math.MaxInt)

	var (
		stats Stats
		err   error
	)
	if c.opts.Workers == 1 {
		err = c.runSequential(ctx, sc, &stats)
	} else {
		err = c.runParallel(ctx, sc, &stats)
	}

	return stats, err
}

func (c *Calculator) runSequential(ctx context.Context, sc *bufio.Scanner, stats *Stats) error {
	e := newEngine()

	for n := 1; sc.Scan(); n++ {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := c.emit(e.eval(n, sc.Text()), stats); err != nil {
			return err
		}
	}

	if err := sc.Err(); err != nil {
		return fmt.Errorf("error reading input: %w", err)
	}
	return nil
}

type job struct {
	n    int
	line string
	done chan<- result
}

func (c *Calculator) runParallel(ctx context.Context, sc *bufio.Scanner, stats *Stats) error {
	g, ctx := errgroup.WithContext(ctx)

	jobs := make(chan job, c.opts.Workers)
	// results in input order; each slot is filled by whichever worker takes the job
	pending := make(chan chan result, 4*c.opts.Workers)

	g.Go(func() error {
		defer close(jobs)
		defer close(pending)

		for n := 1; sc.Scan(); n++ {
			done := make(chan result, 1)
			select {
			case pending <- done:
			case <-ctx.Done():
				return ctx.Err()
			}
			select {
			case jobs <- job{n: n, line: sc.Text(), done: done}:
			case <-ctx.Done():
				return ctx.Err()
			}
		}

		if err := sc.Err(); err != nil {
			return fmt.Errorf("error reading input: %w", err)
		}
		return nil
	})

	for i := 0; i < c.opts.Workers; i++ {
		g.Go(func() error {
			e := newEngine()
			for j := range jobs {
				j.done <- e.eval(j.n, j.line)
			}
			return nil
		})
	}

	g.Go(func() error {
		for done := range pending {
			select {
			case res := <-done:
				if err := c.emit(res, stats); err != nil {
					return err
				}
			case <-ctx.Done():
				return ctx.Err()
			}
		}
		return nil
	})

	return g.Wait()
}

func (c *Calculator) emit(res result, stats *Stats) error {
	stats.Lines++
	if res.err != nil {
		stats.Errors++
	}

	if c.opts.Trace != nil {
		c.opts.Trace.trace(res)
	}

	_, err := fmt.Fprintln(c.W, Format(res.value, res.err))
	if err != nil {
		return fmt.Errorf("error writing result for line %d: %w", res.n, err)
	}
	return nil
}

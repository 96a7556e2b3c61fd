package calc

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

const input = `3 + 4 * 2
(1 + 2) * 3
8 - 3 - 2
10 / 0
5 +
7 / 2
`

const expected = `11
9
3
Error: Invalid expression or division by zero
Error: Invalid expression or division by zero
3
`

func run(t *testing.T, in string, opts Options) (string, Stats) {
	t.Helper()

	w := &bytes.Buffer{}
	c := NewCalculator(w, opts)
	stats, err := c.Run(context.Background(), strings.NewReader(in))
	require.NoError(t, err)

	return w.String(), stats
}

func TestLine(t *testing.T) {
	tests := []struct {
		code     string
		expected string
	}{
		{code: "3 + 4 * 2", expected: "11"},
		{code: "(1 + 2) * 3", expected: "9"},
		{code: "8 - 3 - 2", expected: "3"},
		{code: "10 / 0", expected: ErrorLine},
		{code: "5 + ", expected: ErrorLine},
		{code: "(1 + 2", expected: ErrorLine},
		{code: "", expected: ErrorLine},
		{code: "99999999999999999999999 + 1", expected: ErrorLine},
		{code: "1 - 10", expected: "-9"},
	}

	for _, tt := range tests {
		t.Run(tt.code, func(t *testing.T) {
			require.Equal(t, tt.expected, Format(Line(tt.code)))
		})
	}
}

func TestRun(t *testing.T) {
	out, stats := run(t, input, Options{})
	require.Equal(t, expected, out)
	require.Equal(t, Stats{Lines: 6, Errors: 2}, stats)
}

func TestRunIdempotent(t *testing.T) {
	first, _ := run(t, input, Options{})
	second, _ := run(t, input, Options{})
	require.Equal(t, first, second)
}

func TestRunIsolation(t *testing.T) {
	in := "1 2 3 0 /\n4 + 5\n((((6\n2 * 3\n"
	out, _ := run(t, in, Options{})
	require.Equal(t, ErrorLine+"\n9\n"+ErrorLine+"\n6\n", out)
}

func TestRunCRLF(t *testing.T) {
	out, _ := run(t, "1 + 1\r\n2 * 2\r\n", Options{})
	require.Equal(t, "2\n4\n", out)
}

func TestRunNoTrailingNewline(t *testing.T) {
	out, _ := run(t, "6 / 3", Options{})
	require.Equal(t, "2\n", out)
}

func TestRunLongLine(t *testing.T) {
	n := 50000
	line := strings.Repeat("(", n) + "1" + strings.Repeat(" + 1)", n)

	out, _ := run(t, line+"\n", Options{})
	require.Equal(t, fmt.Sprintf("%d\n", n+1), out)
}

func TestRunParallel(t *testing.T) {
	var in, want strings.Builder
	for i := 0; i < 1000; i++ {
		if i%7 == 0 {
			fmt.Fprintf(&in, "%d / 0\n", i)
			want.WriteString(ErrorLine + "\n")
			continue
		}
		fmt.Fprintf(&in, "%d * 2 - 1\n", i)
		fmt.Fprintf(&want, "%d\n", i*2-1)
	}

	out, stats := run(t, in.String(), Options{Workers: 8})
	require.Equal(t, want.String(), out)
	require.Equal(t, 1000, stats.Lines)
	require.Equal(t, 143, stats.Errors)

	seq, _ := run(t, in.String(), Options{})
	require.Equal(t, seq, out)
}

func TestRunCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	c := NewCalculator(&bytes.Buffer{}, Options{})
	_, err := c.Run(ctx, strings.NewReader(input))
	require.ErrorIs(t, err, context.Canceled)
}

type failingWriter struct{}

var errWrite = errors.New("disk full")

func (failingWriter) Write(p []byte) (int, error) {
	return 0, errWrite
}

func TestRunWriteError(t *testing.T) {
	for _, workers := range []int{1, 4} {
		t.Run(fmt.Sprintf("workers=%d", workers), func(t *testing.T) {
			c := NewCalculator(failingWriter{}, Options{Workers: workers})
			_, err := c.Run(context.Background(), strings.NewReader(input))
			require.ErrorIs(t, err, errWrite)
		})
	}
}

type failingReader struct{}

var errRead = errors.New("unreadable")

func (failingReader) Read(p []byte) (int, error) {
	return 0, errRead
}

func TestRunReadError(t *testing.T) {
	for _, workers := range []int{1, 4} {
		t.Run(fmt.Sprintf("workers=%d", workers), func(t *testing.T) {
			c := NewCalculator(&bytes.Buffer{}, Options{Workers: workers})
			_, err := c.Run(context.Background(), failingReader{})
			require.ErrorIs(t, err, errRead)
		})
	}
}

func TestTrace(t *testing.T) {
	trace := &bytes.Buffer{}
	out, _ := run(t, "3 + 4 * 2\n1 / 0\n", Options{
		Trace: NewTracer(trace, false, false),
	})
	require.Equal(t, "11\n"+ErrorLine+"\n", out)

	lines := strings.Split(strings.TrimSpace(trace.String()), "\n")
	require.Len(t, lines, 2)
	require.Equal(t, "1: 3 + 4 * 2 => 3 4 2 * + => 11", lines[0])
	require.True(t, strings.HasPrefix(lines[1], "2: 1 / 0 => 1 0 / => "))
	require.Contains(t, lines[1], "division by zero")
}

func TestTraceDump(t *testing.T) {
	trace := &bytes.Buffer{}
	run(t, "1 + 2\n", Options{
		Trace: NewTracer(trace, false, true),
	})
	require.Contains(t, trace.String(), "parser.Postfix")
	require.Contains(t, trace.String(), "Number: (int) 2")
}

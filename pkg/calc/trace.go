package calc

import (
	"fmt"
	"io"
	"strings"

	"github.com/davecgh/go-spew/spew"
	"github.com/logrusorgru/aurora"
)

var dumper = spew.ConfigState{Indent: " ", DisableMethods: true}

// Tracer prints a diagnostic line for every evaluated expression.
type Tracer struct {
	W     io.Writer
	Dump  bool
	color aurora.Aurora
}

func NewTracer(w io.Writer, colors bool, dump bool) *Tracer {
	return &Tracer{
		W:     w,
		Dump:  dump,
		color: aurora.NewAurora(colors),
	}
}

func (t *Tracer) trace(res result) {
	out := fmt.Sprintf("%d: %s => %s", res.n,
		t.color.Cyan(strings.TrimSpace(res.line)),
		t.color.Blue(res.postfix.String()))

	if res.err != nil {
		out += " => " + t.color.Red(res.err.Error()).String()
	} else {
		out += " => " + t.color.Green(res.value).String()
	}

	fmt.Fprintln(t.W, out)

	if t.Dump {
		fmt.Fprint(t.W, dumper.Sdump(res.postfix))
	}
}

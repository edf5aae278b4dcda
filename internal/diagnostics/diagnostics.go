// Package diagnostics prints compiler messages to the terminal, with
// ANSI colors when stderr is an interactive terminal.
package diagnostics

import (
	"fmt"
	"os"

	"github.com/mattn/go-isatty"
)

const (
	colorReset  = "\033[0m"
	colorRed    = "\033[31m"
	colorYellow = "\033[33m"
	colorCyan   = "\033[36m"
)

// Printer writes formatted diagnostics to a stream.
type Printer struct {
	out     *os.File
	colored bool
}

// NewPrinter creates a printer for out, enabling color only when out is
// an interactive terminal.
func NewPrinter(out *os.File) *Printer {
	return &Printer{
		out:     out,
		colored: isatty.IsTerminal(out.Fd()) || isatty.IsCygwinTerminal(out.Fd()),
	}
}

// Default prints to stderr.
func Default() *Printer {
	return NewPrinter(os.Stderr)
}

func (p *Printer) print(color, label, format string, args ...interface{}) {
	msg := fmt.Sprintf(format, args...)
	if p.colored {
		fmt.Fprintf(p.out, "%s%s:%s %s\n", color, label, colorReset, msg)
	} else {
		fmt.Fprintf(p.out, "%s: %s\n", label, msg)
	}
}

// Infof reports progress information.
func (p *Printer) Infof(format string, args ...interface{}) {
	p.print(colorCyan, "info", format, args...)
}

// Warnf reports a condition that does not stop compilation.
func (p *Printer) Warnf(format string, args ...interface{}) {
	p.print(colorYellow, "warning", format, args...)
}

// Errorf reports a failure.
func (p *Printer) Errorf(format string, args ...interface{}) {
	p.print(colorRed, "error", format, args...)
}

// Internalf reports a violated compiler invariant. These indicate a bug
// in the compiler itself, not in the compiled program.
func (p *Printer) Internalf(format string, args ...interface{}) {
	p.print(colorRed, "internal error", format, args...)
}

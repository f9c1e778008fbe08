package ui

import (
	"fmt"
	"io"
	"os"
	"strings"
	"unicode/utf8"

	"golang.org/x/term"
)

// Printer writes the user-facing status lines of the CLI.
type Printer struct {
	out   io.Writer
	color bool
}

// NewPrinter returns a Printer writing to out. Styles are dropped when color is false.
func NewPrinter(out io.Writer, color bool) *Printer {
	return &Printer{out: out, color: color}
}

// Stdout is the Printer used by the commands.
var Stdout = NewPrinter(os.Stdout, ColorEnabled(os.Stdout))

// ColorEnabled reports whether styles should be written to f: it must be a
// terminal and NO_COLOR must be unset.
func ColorEnabled(f *os.File) bool {
	return os.Getenv("NO_COLOR") == "" && term.IsTerminal(int(f.Fd()))
}

func (p *Printer) style(fn func(string) string, s string) string {
	if !p.color {
		return s
	}
	return fn(s)
}

func (p *Printer) line(symbol string, fn func(string) string, format string, args ...any) {
	fmt.Fprintf(p.out, "%s %s\n", p.style(fn, symbol), fmt.Sprintf(format, args...))
}

func (p *Printer) Info(format string, args ...any) {
	p.line("ℹ", Cyan, format, args...)
}

func (p *Printer) Success(format string, args ...any) {
	p.line("✓", Green, format, args...)
}

func (p *Printer) Warn(format string, args ...any) {
	p.line("⚠", Yellow, format, args...)
}

func (p *Printer) Error(format string, args ...any) {
	p.line("✗", Red, format, args...)
}

// Header prints a bold title underlined to its width.
func (p *Printer) Header(title string) {
	fmt.Fprintf(p.out, "\n%s\n%s\n", p.style(Bold, title), strings.Repeat("─", utf8.RuneCountInString(title)))
}

// Println writes a plain line.
func (p *Printer) Println(format string, args ...any) {
	fmt.Fprintf(p.out, format+"\n", args...)
}

// Step starts a "→ msg... " line; finish it with Done or Failed.
func (p *Printer) Step(format string, args ...any) {
	fmt.Fprintf(p.out, "%s %s... ", p.style(Cyan, "→"), fmt.Sprintf(format, args...))
}

// Done ends a Step line. A non-empty detail is shown in parentheses.
func (p *Printer) Done(detail string) {
	if detail != "" {
		fmt.Fprintf(p.out, "done (%s)\n", detail)
		return
	}
	fmt.Fprintln(p.out, "done")
}

func (p *Printer) Failed() {
	fmt.Fprintln(p.out, p.style(Red, "failed"))
}

// Writer exposes the underlying writer for progress bars and tables.
func (p *Printer) Writer() io.Writer {
	return p.out
}

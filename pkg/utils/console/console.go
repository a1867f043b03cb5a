// Package console prints human-facing progress notices.
package console

import (
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
)

// Printer writes one notice per line to its writer
type Printer struct {
	w       io.Writer
	info    *color.Color
	success *color.Color
	warn    *color.Color
}

// New creates a Printer writing to w. A nil w means os.Stdout.
func New(w io.Writer) *Printer {
	if w == nil {
		w = os.Stdout
	}
	return &Printer{
		w:       w,
		info:    color.New(color.FgCyan),
		success: color.New(color.FgGreen),
		warn:    color.New(color.FgYellow),
	}
}

// NoColor disables coloring regardless of terminal detection
func (p *Printer) NoColor() *Printer {
	p.info.DisableColor()
	p.success.DisableColor()
	p.warn.DisableColor()
	return p
}

// Info prints a progress notice
func (p *Printer) Info(format string, args ...any) {
	p.print(p.info, format, args...)
}

// Success prints a completion notice
func (p *Printer) Success(format string, args ...any) {
	p.print(p.success, format, args...)
}

// Warn prints a notice about something that was skipped
func (p *Printer) Warn(format string, args ...any) {
	p.print(p.warn, format, args...)
}

func (p *Printer) print(c *color.Color, format string, args ...any) {
	_, _ = c.Fprintln(p.w, fmt.Sprintf(format, args...))
}

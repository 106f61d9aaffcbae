package output

import (
	"fmt"
	"io"
	"os"

	"github.com/dustin/go-humanize"
	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
)

// Printer handles colored output
type Printer struct {
	out      io.Writer
	err      io.Writer
	useColor bool

	success *color.Color
	failure *color.Color
	warning *color.Color
	info    *color.Color
	step    *color.Color
	detail  *color.Color
}

// NewPrinter creates a new printer with color support
func NewPrinter() *Printer {
	return NewPrinterWithWriters(os.Stdout, os.Stderr, isTerminal())
}

// NewPrinterWithWriters creates a printer with custom writers (for testing)
func NewPrinterWithWriters(out, err io.Writer, useColor bool) *Printer {
	p := &Printer{
		out:      out,
		err:      err,
		useColor: useColor,
		success:  color.New(color.Bold, color.FgGreen),
		failure:  color.New(color.Bold, color.FgRed),
		warning:  color.New(color.Bold, color.FgYellow),
		info:     color.New(color.Bold, color.FgCyan),
		step:     color.New(color.Bold, color.FgBlue),
		detail:   color.New(color.FgHiBlack),
	}
	for _, c := range []*color.Color{p.success, p.failure, p.warning, p.info, p.step, p.detail} {
		if useColor {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}
	return p
}

func (p *Printer) line(w io.Writer, c *color.Color, prefix, format string, args ...interface{}) {
	message := fmt.Sprintf(format, args...)
	_, _ = fmt.Fprintln(w, c.Sprint(prefix+message))
}

// Success prints a success message in green
func (p *Printer) Success(format string, args ...interface{}) {
	p.line(p.out, p.success, "✓ ", format, args...)
}

// Error prints an error message in red
func (p *Printer) Error(format string, args ...interface{}) {
	p.line(p.err, p.failure, "✗ ", format, args...)
}

// Warning prints a warning message in yellow
func (p *Printer) Warning(format string, args ...interface{}) {
	p.line(p.err, p.warning, "⚠ ", format, args...)
}

// Info prints an info message in cyan
func (p *Printer) Info(format string, args ...interface{}) {
	p.line(p.out, p.info, "→ ", format, args...)
}

// Step prints a step message in blue
func (p *Printer) Step(format string, args ...interface{}) {
	p.line(p.out, p.step, "▶ ", format, args...)
}

// Detail prints a detail message in gray
func (p *Printer) Detail(format string, args ...interface{}) {
	p.line(p.out, p.detail, "  ", format, args...)
}

// Saved prints a success line for a written file with its humanized size
func (p *Printer) Saved(label, path string, size int) {
	p.Success("%s: %s (%s)", label, path, humanize.Bytes(uint64(size)))
}

// isTerminal checks if stdout is a terminal
func isTerminal() bool {
	if os.Getenv("NO_COLOR") != "" {
		return false
	}
	fd := os.Stdout.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

package helpers

import (
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
)

var (
	labelColor   = color.New(color.FgCyan, color.Bold)
	successColor = color.New(color.FgGreen)
	errorColor   = color.New(color.FgRed, color.Bold)
	dimColor     = color.New(color.Faint)
)

// IsTerminal reports whether w is an interactive terminal.
func IsTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// SetColorEnabled overrides terminal detection, honouring NO_COLOR via fatih/color.
func SetColorEnabled(enabled bool) {
	color.NoColor = !enabled
}

// Printer writes the user-facing status lines.
type Printer struct {
	Out io.Writer
}

func NewPrinter(out io.Writer) *Printer {
	return &Printer{Out: out}
}

func (p *Printer) Label(label, value string) {
	_, _ = fmt.Fprintf(p.Out, "%s %s\n", labelColor.Sprint(label), value)
}

func (p *Printer) Step(format string, args ...any) {
	_, _ = fmt.Fprintln(p.Out, dimColor.Sprintf(format, args...))
}

func (p *Printer) Success(format string, args ...any) {
	_, _ = fmt.Fprintln(p.Out, successColor.Sprintf(format, args...))
}

// Error formats err the way the CLI reports fatal failures.
func Error(w io.Writer, err error) {
	_, _ = fmt.Fprintf(w, "%s %v\n", errorColor.Sprint("Error:"), err)
}

func FormatBytes(bytes int64) string {
	const (
		KB = 1024
		MB = KB * 1024
		GB = MB * 1024
	)

	switch {
	case bytes >= GB:
		return fmt.Sprintf("%.1f GB", float64(bytes)/float64(GB))
	case bytes >= MB:
		return fmt.Sprintf("%.1f MB", float64(bytes)/float64(MB))
	case bytes >= KB:
		return fmt.Sprintf("%.1f KB", float64(bytes)/float64(KB))
	default:
		return fmt.Sprintf("%d B", bytes)
	}
}

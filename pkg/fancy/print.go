// Package fancy prints coloured, column aligned reports for the terminal.
package fancy

import (
	"fmt"
	"io"
	"strings"

	"github.com/logrusorgru/aurora"
)

var (
	Info    = aurora.White
	Success = aurora.Green
	Warn    = aurora.Yellow
	Error   = aurora.Red
)

type Level = func(arg any) aurora.Value

// LabelWidth is the column at which Field values start.
const LabelWidth = 28

func Fprintln(w io.Writer, level Level, args ...any) {
	_, _ = fmt.Fprintln(w, level(fmt.Sprint(args...)))
}

func Fprintf(w io.Writer, level Level, format string, args ...any) {
	_, _ = fmt.Fprint(w, level(fmt.Sprintf(format, args...)))
}

func Ferrorf(w io.Writer, format string, args ...any) {
	Fprintf(w, Error, format, args...)
}

// Field prints "label.......: value" with the value aligned at LabelWidth.
func Field(w io.Writer, level Level, label string, value any) {
	dots := LabelWidth - len(label)
	if dots < 3 {
		dots = 3
	}
	Fprintln(w, level, label+strings.Repeat(".", dots)+": "+fmt.Sprint(value))
}

// WarnIfNonZero picks Warn for non-zero counts.
func WarnIfNonZero(n int) Level {
	if n != 0 {
		return Warn
	}
	return Info
}

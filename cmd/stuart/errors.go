package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/fatih/color"

	"github.com/stuartgen/stuart/errortypes"
)

var (
	errorLabel = color.New(color.FgRed, color.Bold)
	location   = color.New(color.FgCyan)
	highlight  = color.New(color.FgYellow)
	hintLabel  = color.New(color.FgGreen)
)

// renderError prints an error with, where available, the source location, the
// offending line and a kind-specific hint.
func renderError(err error) {
	var pos = errortypes.ToErrFilePos(err)
	if pos == nil {
		errorLabel.Fprint(os.Stderr, "error: ")
		fmt.Fprintln(os.Stderr, err)
		return
	}

	errorLabel.Fprint(os.Stderr, "error: ")
	fmt.Fprintln(os.Stderr, unwrapped(err))
	location.Fprintf(os.Stderr, "  --> %s:%d:%d\n", pos.File(), pos.Line(), pos.Col())

	if line := sourceLine(pos.File(), pos.Line()); line != "" {
		fmt.Fprintf(os.Stderr, "   |\n%2d | ", pos.Line())
		highlight.Fprintln(os.Stderr, line)
		if pos.Col() > 0 {
			fmt.Fprintf(os.Stderr, "   | %s^\n", strings.Repeat(" ", pos.Col()-1))
		}
	}

	if hint := errortypes.Hint(err); hint != "" {
		hintLabel.Fprint(os.Stderr, "hint: ")
		fmt.Fprintln(os.Stderr, hint)
	}
}

// unwrapped strips the traceback prefix, which is rendered separately.
func unwrapped(err error) string {
	if tb, ok := err.(*errortypes.Traceback); ok {
		return tb.Kind.Error()
	}
	return err.Error()
}

func sourceLine(path string, line int) string {
	if line <= 0 {
		return ""
	}
	var contents, err = os.ReadFile(path)
	if err != nil {
		return ""
	}
	var lines = strings.Split(string(contents), "\n")
	if line > len(lines) {
		return ""
	}
	return strings.TrimRight(lines[line-1], "\r")
}

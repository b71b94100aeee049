// Package view provides output formatting for duplexmd commands.
package view

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"
)

// Renderer writes command output, optionally colorized.
type Renderer struct {
	writer io.Writer
}

// NewRenderer creates a new renderer.
func NewRenderer(noColor bool) *Renderer {
	if noColor {
		color.NoColor = true
	}
	return &Renderer{writer: os.Stdout}
}

// SetWriter sets the output writer.
func (r *Renderer) SetWriter(w io.Writer) {
	r.writer = w
}

// Print writes s followed by a newline unless s already ends with one.
func (r *Renderer) Print(s string) {
	fmt.Fprint(r.writer, s)
	if !strings.HasSuffix(s, "\n") {
		fmt.Fprintln(r.writer)
	}
}

// Successf prints a green status line.
func (r *Renderer) Successf(format string, args ...interface{}) {
	color.New(color.FgGreen).Fprintf(r.writer, format+"\n", args...)
}

// Warnf prints a yellow status line.
func (r *Renderer) Warnf(format string, args ...interface{}) {
	color.New(color.FgYellow).Fprintf(r.writer, format+"\n", args...)
}

// Diff prints a line-by-line comparison of two texts: removed lines in
// red with a '-' prefix, added lines in green with a '+'. Equal lines
// are printed with two leading spaces.
func (r *Renderer) Diff(want, got string) {
	wantLines := strings.Split(want, "\n")
	gotLines := strings.Split(got, "\n")

	red := color.New(color.FgRed)
	green := color.New(color.FgGreen)

	n := len(wantLines)
	if len(gotLines) > n {
		n = len(gotLines)
	}
	for i := 0; i < n; i++ {
		var w, g string
		hasW, hasG := i < len(wantLines), i < len(gotLines)
		if hasW {
			w = wantLines[i]
		}
		if hasG {
			g = gotLines[i]
		}
		switch {
		case hasW && hasG && w == g:
			fmt.Fprintf(r.writer, "  %s\n", w)
		default:
			if hasW {
				red.Fprintf(r.writer, "- %s\n", w)
			}
			if hasG {
				green.Fprintf(r.writer, "+ %s\n", g)
			}
		}
	}
}

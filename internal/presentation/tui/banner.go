package tui

import (
	"fmt"
	"io"

	"github.com/muesli/termenv"
)

// PrintBanner writes the eventgrid banner and version to w.
func PrintBanner(w io.Writer, version string) {
	out := termenv.NewOutput(w)
	p := out.ColorProfile()
	// Teal to indigo, one step per line.
	lines := []struct {
		text  string
		color string
	}{
		{"  ___ __ __ ___ _ __ | |_ __ _ _ __(_) __| |", "#2dd4bf"},
		{" / -_)\\ V // -_) '  \\|  _/ _` | '_|| |/ _` |", "#38bdf8"},
		{" \\___| \\_/ \\___|_||_|\\__\\__, |_|  |_|\\__,_|", "#818cf8"},
		{"                        |___/", "#a78bfa"},
	}

	fmt.Fprintln(w)
	for _, l := range lines {
		fmt.Fprintln(w, out.String(l.text).Foreground(p.Color(l.color)))
	}
	fmt.Fprintf(w, "  %s\n\n", out.String("v"+version).Faint())
}

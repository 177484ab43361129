package tui

import (
	"fmt"
	"io"

	"github.com/muesli/termenv"
)

// PrintBanner writes the fsmgraph banner and version, shown when watch mode starts.
func PrintBanner(w io.Writer, version string) {
	out := termenv.NewOutput(w)
	lines := []struct {
		text  string
		color string
	}{
		{"   __                                 _     ", "#818cf8"},
		{"  / _|___ _ __ ___   __ _ _ __ __ _ _ __ | |__  ", "#a78bfa"},
		{" | |_/ __| '_ ` _ \\ / _` | '__/ _` | '_ \\| '_ \\ ", "#c084fc"},
		{" |  _\\__ \\ | | | | | (_| | | | (_| | |_) | | | |", "#e879f9"},
		{" |_| |___/_| |_| |_|\\__, |_|  \\__,_| .__/|_| |_|", "#f472b6"},
		{"                    |___/          |_|          ", "#fb7185"},
	}

	fmt.Fprintln(w)
	for _, l := range lines {
		fmt.Fprintln(w, out.String(l.text).Foreground(out.Color(l.color)))
	}
	fmt.Fprintln(w, out.String(" "+version).Faint())
	fmt.Fprintln(w)
}

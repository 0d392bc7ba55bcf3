package cli

import (
	"fmt"
	"io"

	"github.com/fatih/color"
)

var (
	green  = color.New(color.FgGreen)
	yellow = color.New(color.FgYellow)
	red    = color.New(color.FgRed, color.Bold)
)

func success(w io.Writer, format string, a ...any) {
	green.Fprintf(w, "✓ %s\n", fmt.Sprintf(format, a...))
}

func warning(w io.Writer, format string, a ...any) {
	yellow.Fprintf(w, "⚠️  %s\n", fmt.Sprintf(format, a...))
}

func failure(w io.Writer, format string, a ...any) {
	red.Fprintf(w, "%s\n", fmt.Sprintf(format, a...))
}

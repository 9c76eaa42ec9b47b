package cli

import (
	"fmt"
	"io"

	"github.com/fatih/color"
)

// printf prints a message with no prefix.
func printf(w io.Writer, format string, a ...interface{}) {
	fmt.Fprintf(w, format+"\n", a...)
}

// infof prints a message prefixed with a bold cyan "Info: ".
func infof(w io.Writer, format string, a ...interface{}) {
	if _, err := color.New(color.Bold, color.FgCyan).Fprint(w, "Info: "); err != nil {
		return
	}
	fmt.Fprintf(w, format+"\n", a...)
}

// warningf prints a message prefixed with a bold yellow "Warning: ".
func warningf(w io.Writer, format string, a ...interface{}) {
	if _, err := color.New(color.Bold, color.FgYellow).Fprint(w, "Warning: "); err != nil {
		return
	}
	fmt.Fprintf(w, format+"\n", a...)
}

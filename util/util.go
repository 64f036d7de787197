// Package util provides a collection of domain-agnostic utility functions and cross-platform helpers.
package util

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/autoskip-cli/autoskip/filesystem"
	"github.com/charmbracelet/lipgloss"
	"golang.org/x/exp/constraints"
	"golang.org/x/term"
)

// Capitalize transforms the first rune of a string to its uppercase equivalent.
func Capitalize(s string) string {
	if len(s) == 0 {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

// Interactive reports whether both stdin and stdout are attached to a terminal.
func Interactive() bool {
	return term.IsTerminal(int(os.Stdin.Fd())) && term.IsTerminal(int(os.Stdout.Fd()))
}

// PrintErasable prints an ephemeral message to the terminal and returns a closure to clear it.
func PrintErasable(msg string) (eraser func()) {
	return PrintErasableTo(os.Stdout, msg)
}

// PrintErasableTo is PrintErasable for an arbitrary writer.
// The eraser covers the visible cell width of msg, so styled text is cleared exactly.
func PrintErasableTo(w io.Writer, msg string) (eraser func()) {
	fmt.Fprintf(w, "\r%s", msg)
	width := lipgloss.Width(msg)
	return func() {
		fmt.Fprintf(w, "\r%s\r", strings.Repeat(" ", width))
	}
}

// Ignore executes a function and explicitly discards its error return value.
func Ignore(f func() error) {
	_ = f()
}

// Clamp limits v to the closed range [lo, hi]. hi wins when lo > hi.
func Clamp[T constraints.Ordered](v, lo, hi T) T {
	if v < lo {
		v = lo
	}
	if v > hi {
		v = hi
	}
	return v
}

// Delete recursively removes a file or directory using the virtualized filesystem API.
func Delete(path string) error {
	fs := filesystem.API()
	stat, err := fs.Stat(path)
	if err != nil {
		return err
	}

	if stat.IsDir() {
		return fs.RemoveAll(path)
	}
	return fs.Remove(path)
}

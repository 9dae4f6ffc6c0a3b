// Package util provides small domain-agnostic helpers shared by the commands and the TUI.
package util

import (
	"fmt"
	"os"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/samber/lo"
	"github.com/tubescribe/tubescribe/filesystem"
	"golang.org/x/term"
)

// Quantify formats count followed by the singular or plural noun.
func Quantify(count int, singular, plural string) string {
	return fmt.Sprintf("%d %s", count, lo.Ternary(count == 1, singular, plural))
}

// Capitalize upper-cases the first rune of s.
func Capitalize(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return s
	}
	return string(unicode.ToUpper(r)) + s[size:]
}

// TerminalSize returns the dimensions of the terminal attached to stdout.
func TerminalSize() (width, height int, err error) {
	return term.GetSize(int(os.Stdout.Fd()))
}

// IsTerminal reports whether f is attached to a terminal.
func IsTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}

// PrintErasable writes msg to stderr without a newline and returns a
// function that blanks the line again. Nothing is printed when stderr is not a terminal.
func PrintErasable(msg string) (eraser func()) {
	if !IsTerminal(os.Stderr) {
		return func() {}
	}

	_, _ = fmt.Fprintf(os.Stderr, "\r%s", msg)
	return func() {
		_, _ = fmt.Fprintf(os.Stderr, "\r%s\r", strings.Repeat(" ", utf8.RuneCountInString(msg)))
	}
}

// Ignore calls f and drops its error. Meant for deferred Close calls.
func Ignore(f func() error) {
	_ = f()
}

// Delete removes path, recursively when it is a directory.
func Delete(path string) error {
	fs := filesystem.API()
	stat, err := fs.Stat(path)
	if err != nil {
		return err
	}

	if !stat.IsDir() {
		return fs.Remove(path)
	}
	return fs.RemoveAll(path)
}

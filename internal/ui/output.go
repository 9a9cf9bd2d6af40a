package ui

import (
	"fmt"
	"io"
	"os"
)

// Stdout and Stderr are swapped out in tests.
var (
	Stdout io.Writer = os.Stdout
	Stderr io.Writer = os.Stderr
)

func OK(msg string) {
	t := Current()
	fmt.Fprintln(Stdout, t.Success.Render(t.SymDone+" "+msg))
}

func Fail(msg string) {
	fmt.Fprintln(Stderr, Current().Error.Render("✖ "+msg))
}

// Hint prints a muted follow-up line under a failure.
func Hint(msg string) {
	fmt.Fprintln(Stderr, Current().Muted.Render(msg))
}

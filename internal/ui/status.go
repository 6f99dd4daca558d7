package ui

import (
	"fmt"
	"io"
)

func OK(w io.Writer, msg string) {
	t := Current()
	fmt.Fprintln(w, t.Success.Render(t.SymOK+" "+msg))
}

func Fail(w io.Writer, msg string) {
	t := Current()
	fmt.Fprintln(w, t.Error.Render(t.SymFail+" "+msg))
}

func Hint(w io.Writer, msg string) {
	fmt.Fprintln(w, Current().Muted.Render("Hint: "+msg))
}

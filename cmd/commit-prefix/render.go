package main

import (
	"errors"
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"

	clierrors "github.com/randalmurphal/commitprefix/errors"
)

type errorStyles struct {
	title      lipgloss.Style
	details    lipgloss.Style
	suggestion lipgloss.Style
}

func newErrorStyles(w io.Writer) errorStyles {
	r := lipgloss.NewRenderer(w)
	return errorStyles{
		title: r.NewStyle().
			Foreground(lipgloss.Color("9")).
			Bold(true),
		details: r.NewStyle().
			Foreground(lipgloss.Color("8")),
		suggestion: r.NewStyle().
			Foreground(lipgloss.Color("11")).
			Italic(true),
	}
}

// renderError writes err to w, styled unless noColor is set.
func renderError(w io.Writer, err error, noColor bool) {
	var cliErr *clierrors.CLIError
	if !errors.As(err, &cliErr) {
		cliErr = &clierrors.CLIError{Err: err, Message: err.Error()}
	}

	if noColor {
		fmt.Fprintf(w, "commit-prefix: %s\n", cliErr.Error())
		return
	}

	styles := newErrorStyles(w)
	fmt.Fprintln(w, styles.title.Render("commit-prefix: "+cliErr.Message))
	if cliErr.Details != "" {
		fmt.Fprintln(w, styles.details.Render(cliErr.Details))
	}
	if cliErr.Suggestion != "" {
		fmt.Fprintln(w)
		fmt.Fprintln(w, styles.suggestion.Render(cliErr.Suggestion))
	}
}

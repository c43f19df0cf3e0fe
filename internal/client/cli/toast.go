package cli

import (
	"fmt"

	"github.com/dmitrijs2005/copyit/internal/client/forms"
	"github.com/fatih/color"
)

var (
	toastTitle       = color.New(color.Bold, color.FgGreen)
	toastTitleDanger = color.New(color.Bold, color.FgRed)
	faint            = color.New(color.Faint)
	bold             = color.New(color.Bold)
	heading          = color.New(color.Bold, color.Underline)
)

// toast prints a notification. Destructive ones are red.
func (a *App) toast(t forms.Toast) {
	title := toastTitle
	if t.Destructive {
		title = toastTitleDanger
	}
	_, _ = title.Fprint(a.out, t.Title)
	if t.Description != "" {
		_, _ = fmt.Fprint(a.out, " ", t.Description)
	}
	_, _ = fmt.Fprintln(a.out)
}

// success is the toast for a completed entry operation. Demo mode says so.
func (a *App) success(demoText, text string) {
	if a.mock {
		a.toast(forms.Toast{Title: "Success (Demo)", Description: demoText})
		return
	}
	a.toast(forms.Toast{Title: "Success", Description: text})
}

func (a *App) failure(description string) {
	a.toast(forms.Toast{Title: "Error", Description: description, Destructive: true})
}

func (a *App) printf(format string, args ...any) {
	_, _ = fmt.Fprintf(a.out, format, args...)
}

func (a *App) println(args ...any) {
	_, _ = fmt.Fprintln(a.out, args...)
}

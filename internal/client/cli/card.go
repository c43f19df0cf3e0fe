package cli

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/dmitrijs2005/copyit/internal/client/models"
	"github.com/gosuri/uitable"
	"github.com/muesli/reflow/truncate"
)

const (
	titleWidth   = 32
	previewWidth = 48
	timeLayout   = "Jan 2, 2006 15:04"
)

// createdLabel is the card's timestamp. The store stamps new entries
// asynchronously, so an unstamped one reads "Just now".
func createdLabel(e models.Entry) string {
	if e.Pending() {
		return "Just now"
	}
	return e.CreatedAt.In(time.Local).Format(timeLayout)
}

func preview(content string) string {
	first, _, more := strings.Cut(content, "\n")
	if more {
		first += " …"
	}
	return truncate.StringWithTail(first, previewWidth, "…")
}

// renderTable prints one row per entry, numbered from 1.
func renderTable(w io.Writer, entries []models.Entry) {
	table := uitable.New()
	table.Separator = "  "
	table.MaxColWidth = previewWidth + 1
	table.AddRow(bold.Sprint("#"), bold.Sprint("Title"), bold.Sprint("Created"), bold.Sprint("Content"))
	for i, e := range entries {
		table.AddRow(i+1, truncate.StringWithTail(e.Title, titleWidth, "…"), createdLabel(e), preview(e.Content))
	}
	fmt.Fprintln(w, table)
}

// renderCard prints a single entry with its content verbatim.
func renderCard(w io.Writer, e models.Entry) {
	fmt.Fprintln(w, heading.Sprint(e.Title))
	fmt.Fprintln(w, faint.Sprint(createdLabel(e)))
	fmt.Fprintln(w)
	fmt.Fprintln(w, e.Content)
}

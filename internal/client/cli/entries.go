package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/atotto/clipboard"
	"github.com/dmitrijs2005/copyit/internal/client/entrylist"
	"github.com/dmitrijs2005/copyit/internal/client/forms"
	"github.com/dmitrijs2005/copyit/internal/client/models"
	"github.com/dmitrijs2005/copyit/internal/client/services"
	"github.com/dmitrijs2005/copyit/internal/filex"
	"github.com/dmitrijs2005/copyit/internal/netx"
	"github.com/manifoldco/promptui"
)

// Test seams.
var (
	writeClipboard  = clipboard.WriteAll
	confirmDelete   = promptConfirmDelete
	selectSortOrder = promptSortOrder
	saveExport      = downloadExport
)

var errNoEntry = errors.New("no such entry")

// cancelInput aborts the editor.
const cancelInput = ":q"

func persistenceMessage(err error) string {
	var pe *services.PersistenceError
	if errors.As(err, &pe) {
		return pe.Message()
	}
	return "Something went wrong."
}

func (a *App) List(context.Context) error {
	if !a.list.Loaded() {
		a.println("Loading entries...")
		return nil
	}

	view := a.list.View()
	if len(view) == 0 {
		if s := a.list.Search(); s != "" {
			a.printf("No results for %q.\n", s)
		} else {
			a.println("Type \"add\" to create your first entry.")
		}
		return nil
	}
	renderTable(a.out, view)
	return nil
}

// entryAt resolves a 1-based position in the last listed view.
func (a *App) entryAt(cmd, arg string) (models.Entry, error) {
	n, err := strconv.Atoi(arg)
	if err != nil {
		a.printf("Usage: %s N\n", cmd)
		return models.Entry{}, errNoEntry
	}
	e, ok := a.list.At(n)
	if !ok {
		a.printf("No entry at position %d. Run \"list\" first.\n", n)
		return models.Entry{}, errNoEntry
	}
	return e, nil
}

func (a *App) Show(_ context.Context, arg string) error {
	e, err := a.entryAt("show", arg)
	if err != nil {
		return err
	}
	renderCard(a.out, e)
	return nil
}

// Search sets the title filter and lists. An empty text clears it.
func (a *App) Search(ctx context.Context, text string) error {
	a.list.SetSearch(text)
	return a.List(ctx)
}

// Sort changes the order and lists. Without an argument a picker is shown.
func (a *App) Sort(ctx context.Context, arg string) error {
	var (
		order entrylist.SortOrder
		err   error
	)
	if arg == "" {
		order, err = selectSortOrder(a.list.Order())
	} else {
		order, err = entrylist.ParseSortOrder(arg)
	}
	if err != nil {
		a.println(err.Error())
		return err
	}

	a.list.SetOrder(order)
	a.printf("Sorted by %s.\n", order.Label())
	return a.List(ctx)
}

func (a *App) Add(ctx context.Context) error {
	return a.edit(ctx, nil)
}

func (a *App) Edit(ctx context.Context, arg string) error {
	e, err := a.entryAt("edit", arg)
	if err != nil {
		return err
	}
	return a.edit(ctx, &e)
}

// edit runs the editor until the input validates or the user cancels.
// Editing keeps a field's value when its input is left empty.
func (a *App) edit(ctx context.Context, target *models.Entry) error {
	store := a.currentStore()
	if store == nil {
		return services.ErrBackendNotConfigured
	}

	ed := forms.NewEditor(target)
	a.println(heading.Sprint(ed.Heading()))
	a.printf("Type %s to cancel.\n", cancelInput)

	for {
		title, err := getSimpleText(a.reader, "Title", a.out)
		if err != nil {
			return err
		}
		if title == cancelInput {
			a.println("Cancelled.")
			return nil
		}
		if title != "" || !ed.Editing() {
			ed.Input.Title = title
		}

		content, err := getMultiline(a.reader, "Content", a.out)
		if err != nil {
			return err
		}
		if content == cancelInput {
			a.println("Cancelled.")
			return nil
		}
		if content != "" || !ed.Editing() {
			ed.Input.Content = content
		}

		err = ed.Submit(ctx, store)
		var verr *forms.ValidationError
		if errors.As(err, &verr) {
			a.failure(verr.Error())
			continue
		}
		if err != nil {
			a.failure(persistenceMessage(err))
			return err
		}

		if ed.Editing() {
			a.success("Entry updated in demo mode.", "Entry updated successfully.")
		} else {
			a.success("Entry added in demo mode.", "Entry added successfully.")
		}
		return nil
	}
}

func (a *App) Copy(ctx context.Context, arg string) error {
	e, err := a.entryAt("copy", arg)
	if err != nil {
		return err
	}
	if err := writeClipboard(e.Content); err != nil {
		a.logger.Warn(ctx, "clipboard write failed", "err", err)
		a.failure("Could not copy to clipboard.")
		return err
	}
	a.toast(forms.Toast{
		Title:       "Copied to clipboard!",
		Description: fmt.Sprintf("%q content has been copied.", e.Title),
	})
	return nil
}

// Delete asks for confirmation before removing the entry.
func (a *App) Delete(ctx context.Context, arg string) error {
	e, err := a.entryAt("delete", arg)
	if err != nil {
		return err
	}
	store := a.currentStore()
	if store == nil {
		return services.ErrBackendNotConfigured
	}

	if !confirmDelete(a.reader, a.out, e) {
		a.println("Cancelled.")
		return nil
	}

	if err := store.Delete(ctx, e.ID); err != nil {
		a.failure(persistenceMessage(err))
		return err
	}
	a.success("Entry deleted in demo mode.", "Entry deleted successfully.")
	return nil
}

// Export uploads all entries and prints a download link.
func (a *App) Export(ctx context.Context) error {
	store := a.currentStore()
	if store == nil {
		return services.ErrBackendNotConfigured
	}

	a.println("Exporting...")
	url, err := store.Export(ctx)
	switch {
	case errors.Is(err, services.ErrBackendNotConfigured):
		a.toast(forms.Toast{
			Title:       "Backend Not Configured",
			Description: "Please provide a server address to export entries.",
			Destructive: true,
		})
		return err
	case err != nil:
		a.failure(persistenceMessage(err))
		return err
	}

	a.toast(forms.Toast{Title: "Export Ready", Description: "Download your entries from:"})
	a.println(url)

	path, err := saveExport(ctx, a.config.ExportDir, url)
	if err != nil {
		a.logger.Warn(ctx, "could not save export locally", "err", err)
		a.println("The file could not be saved locally; use the link above.")
		return nil
	}
	a.printf("Saved a copy to %s\n", path)
	return nil
}

// downloadExport fetches the export into dir under a timestamped name.
func downloadExport(ctx context.Context, dir, url string) (string, error) {
	data, err := netx.DownloadPresignedURL(ctx, url)
	if err != nil {
		return "", err
	}
	name := fmt.Sprintf("copyit-export-%s.json", time.Now().Format("20060102-150405"))
	return filex.WriteFileAtomic(dir, name, data)
}

func promptConfirmDelete(r io.Reader, w io.Writer, e models.Entry) bool {
	p := promptui.Prompt{
		Label:     fmt.Sprintf("Are you sure? This will permanently delete your entry titled %q", e.Title),
		IsConfirm: true,
		Stdin:     io.NopCloser(r),
		Stdout:    nopWriteCloser{w},
	}
	_, err := p.Run()
	return err == nil
}

func promptSortOrder(current entrylist.SortOrder) (entrylist.SortOrder, error) {
	labels := make([]string, len(entrylist.SortOrders))
	cursor := 0
	for i, o := range entrylist.SortOrders {
		labels[i] = o.Label()
		if o == current {
			cursor = i
		}
	}

	s := promptui.Select{Label: "Sort by", Items: labels, CursorPos: cursor}
	i, _, err := s.Run()
	if err != nil {
		return "", err
	}
	return entrylist.SortOrders[i], nil
}

type nopWriteCloser struct{ io.Writer }

func (nopWriteCloser) Close() error { return nil }

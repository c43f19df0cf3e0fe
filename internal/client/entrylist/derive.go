// Package entrylist derives the displayed list from the latest snapshot,
// the search text and the sort order.
package entrylist

import (
	"fmt"
	"slices"
	"strings"

	"github.com/dmitrijs2005/copyit/internal/client/models"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

type SortOrder string

const (
	Latest       SortOrder = "latest"
	Oldest       SortOrder = "oldest"
	Alphabetical SortOrder = "alphabetical"
)

// DefaultSortOrder is used until the user picks one.
const DefaultSortOrder = Oldest

// SortOrders lists the orders in the order the picker shows them.
var SortOrders = []SortOrder{Latest, Oldest, Alphabetical}

func (o SortOrder) Label() string {
	switch o {
	case Latest:
		return "Date: Latest"
	case Oldest:
		return "Date: Oldest"
	case Alphabetical:
		return "Title: A-Z"
	default:
		return string(o)
	}
}

func ParseSortOrder(s string) (SortOrder, error) {
	o := SortOrder(strings.ToLower(strings.TrimSpace(s)))
	if slices.Contains(SortOrders, o) {
		return o, nil
	}
	return "", fmt.Errorf("unknown sort order %q", s)
}

// Derive sorts entries by order and keeps those whose title contains
// search, ignoring case. The sort is stable, so ties keep delivery order.
// A pending entry sorts as the oldest possible. The input is not modified.
func Derive(entries []models.Entry, search string, order SortOrder) []models.Entry {
	sorted := slices.Clone(entries)

	switch order {
	case Alphabetical:
		c := collate.New(language.English)
		slices.SortStableFunc(sorted, func(a, b models.Entry) int {
			return c.CompareString(a.Title, b.Title)
		})
	case Oldest:
		slices.SortStableFunc(sorted, func(a, b models.Entry) int {
			return a.CreatedAt.Compare(b.CreatedAt)
		})
	default:
		slices.SortStableFunc(sorted, func(a, b models.Entry) int {
			return b.CreatedAt.Compare(a.CreatedAt)
		})
	}

	if search == "" {
		return sorted
	}
	needle := strings.ToLower(search)
	return slices.DeleteFunc(sorted, func(e models.Entry) bool {
		return !strings.Contains(strings.ToLower(e.Title), needle)
	})
}

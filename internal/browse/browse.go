// Package browse derives the visible slice of units from the loaded list,
// the search text and the current page.
package browse

import (
	"strings"

	"github.com/HaPhanBaoMinh/ttdmon/internal/domain"
)

const DefaultPageSize = 10

// Filter keeps units whose display name contains query, ignoring case.
// An empty query keeps everything.
func Filter(units []domain.UnitView, query string) []domain.UnitView {
	q := strings.ToLower(query)
	if q == "" {
		return units
	}
	out := make([]domain.UnitView, 0, len(units))
	for _, u := range units {
		if strings.Contains(strings.ToLower(u.DisplayName), q) {
			out = append(out, u)
		}
	}
	return out
}

type Page struct {
	Items   []domain.UnitView
	Number  int // 1-based
	Size    int
	Total   int // filtered items
	Pages   int
	HasPrev bool
	HasNext bool
}

// Paginate returns page number (1-based, clamped into range) of units.
func Paginate(units []domain.UnitView, number, size int) Page {
	if size <= 0 {
		size = DefaultPageSize
	}
	pages := PageCount(len(units), size)
	number = clamp(number, 1, max(1, pages))

	last := number * size
	first := last - size
	end := min(last, len(units))
	var items []domain.UnitView
	if first < end {
		items = units[first:end]
	}
	return Page{
		Items:   items,
		Number:  number,
		Size:    size,
		Total:   len(units),
		Pages:   pages,
		HasPrev: number > 1,
		HasNext: last < len(units),
	}
}

func PageCount(n, size int) int {
	if size <= 0 || n <= 0 {
		return 0
	}
	return (n + size - 1) / size
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

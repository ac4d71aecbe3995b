// ABOUTME: Column allocation for thumbnail insertion slots
// ABOUTME: Reserves one contiguous free column per link to the right of a row's hyperlinks

package links

import (
	"sort"

	"xlthumbs/core/domain"
)

// Allocation pairs one hyperlink with its reserved insertion column.
// A multi-page document assigned to TargetColumn spills its later pages
// into the columns immediately to the right.
type Allocation struct {
	Link         domain.Link
	TargetColumn int
}

// SortByColumn orders a row's links ascending by originating column.
func SortByColumn(links []domain.Link) {
	sort.Slice(links, func(i, j int) bool {
		return links[i].Column < links[j].Column
	})
}

// StartColumn returns the first insertion column for a row: one past the
// rightmost hyperlinked column. The policy assumes no other content sits
// beyond the rightmost hyperlink; it does not probe for it.
func StartColumn(links []domain.Link) int {
	maxCol := 0
	for _, l := range links {
		if l.Column > maxCol {
			maxCol = l.Column
		}
	}
	return maxCol + 1
}

// AllocateRow sorts a row's links by originating column and reserves one
// insertion column per link, contiguous from StartColumn. The reservation
// happens before any worker runs, so no two workers target the same slot.
func AllocateRow(links []domain.Link) []Allocation {
	if len(links) == 0 {
		return nil
	}

	sorted := make([]domain.Link, len(links))
	copy(sorted, links)
	SortByColumn(sorted)

	start := StartColumn(sorted)
	allocs := make([]Allocation, len(sorted))
	for i, l := range sorted {
		allocs[i] = Allocation{Link: l, TargetColumn: start + i}
	}
	return allocs
}

// Plan allocates insertion columns for every row of the document, in
// ascending row order. All allocation is single-threaded and completes
// before any fetch work is dispatched.
func Plan(byRow map[int][]domain.Link) []Allocation {
	rows := make([]int, 0, len(byRow))
	for row := range byRow {
		rows = append(rows, row)
	}
	sort.Ints(rows)

	var plan []Allocation
	for _, row := range rows {
		plan = append(plan, AllocateRow(byRow[row])...)
	}
	return plan
}

package controller

import "math"

const (
	// sortResolution is how many sort steps one tile of height spans.
	sortResolution = 100
	// OccupiedSortOffset is subtracted from an occupied surface's key so
	// whatever stands on it draws above.
	OccupiedSortOffset = 1
)

// SortKey maps a vertical position to a draw order. Entities higher on the
// screen are further back and get lower keys.
func SortKey(y float64, occupied bool) int {
	key := int(math.Round(y * sortResolution))
	if occupied {
		key -= OccupiedSortOffset
	}
	return key
}

package models

import (
	"sort"
	"strings"
)

// sizeOrder is the canonical small-to-large ordering of standard size
// labels. Labels not listed here sort after all known ones, keeping their
// original relative order.
var sizeOrder = []string{"XXS", "XS", "S", "M", "L", "XL", "XXL", "XXXL", "2XL", "3XL", "4XL"}

const unknownSizeIndex = 999

// SizeIndex returns the canonical position of a size label, or a large
// sentinel for unknown labels.
func SizeIndex(size string) int {
	normalized := strings.ToUpper(strings.TrimSpace(size))
	for i, label := range sizeOrder {
		if label == normalized {
			return i
		}
	}
	return unknownSizeIndex
}

// SortSizes orders size labels small to large in place, keeping unknown
// labels stable at the end.
func SortSizes(sizes []string) {
	sort.SliceStable(sizes, func(i, j int) bool {
		return SizeIndex(sizes[i]) < SizeIndex(sizes[j])
	})
}

package utils

import (
	"golang.org/x/exp/constraints"
	"golang.org/x/exp/slices"
)

func FindIndex[T comparable](slice []T, item T) int {
	for i, v := range slice {
		if v == item {
			return i
		}
	}
	return -1
}

// Distinct returns the distinct items of slice in ascending order. Zero
// values are left out.
func Distinct[T constraints.Ordered](slice []T) []T {
	var zero T
	out := make([]T, 0, len(slice))
	for _, v := range slice {
		if v != zero && FindIndex(out, v) < 0 {
			out = append(out, v)
		}
	}
	slices.Sort(out)
	return out
}

// ContainsSorted reports whether a slice sorted in ascending order holds item.
func ContainsSorted[T constraints.Ordered](sorted []T, item T) bool {
	_, found := slices.BinarySearch(sorted, item)
	return found
}

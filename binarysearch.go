package irregex

import (
	"cmp"
	"slices"
)

// BinarySearch searches haystack, which must be sorted in ascending order,
// for needle.
//
// If needle is present, it returns the index of its first occurrence.
// Otherwise it returns the bitwise complement of the index at which needle
// would be inserted, which is always negative. Both cases agree with
// Java's Arrays.binarySearch:
//
//	BinarySearch([]int{0, 1}, 1)   // 1
//	BinarySearch([]int{0, 1}, -1)  // -1 (^0)
//	BinarySearch([]int{0, 1}, 2)   // -3 (^2)
func BinarySearch[T cmp.Ordered](haystack []T, needle T) int {
	i, found := slices.BinarySearch(haystack, needle)
	if found {
		return i
	}
	return ^i
}

// lowerBound returns the index of the first element of haystack that is
// >= needle, or len(haystack).
func lowerBound[T cmp.Ordered](haystack []T, needle T) int {
	i := BinarySearch(haystack, needle)
	if i < 0 {
		return ^i
	}
	return i
}

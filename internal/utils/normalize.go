package utils

import (
	"golang.org/x/exp/slices"
)

// SortRunes returns s with its runes in ascending order.
// Two strings are anagrams of each other iff their sorted forms are equal.
func SortRunes(s string) string {
	runes := []rune(s)
	slices.Sort(runes)
	return string(runes)
}

// RemoveRuneAt returns runes without the element at i as a string.
// Removing one rune from a sorted sequence keeps it sorted.
func RemoveRuneAt(runes []rune, i int) string {
	out := make([]rune, 0, len(runes)-1)
	out = append(out, runes[:i]...)
	out = append(out, runes[i+1:]...)
	return string(out)
}

package utils

import (
	"unicode/utf8"
)

func RuneCount(s string) int {
	return utf8.RuneCountInString(s)
}

// RuneSlice slices s by rune offsets, clamping both bounds into range.
func RuneSlice(s string, start, end int) string {
	if start < 0 {
		start = 0
	}
	r := []rune(s)
	if start > len(r) {
		start = len(r)
	}
	if end < start {
		end = start
	}
	if end > len(r) {
		end = len(r)
	}
	return string(r[start:end])
}

func ClampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

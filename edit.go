package livenumber

import "unicode/utf8"

// The primitives below address strings by rune offset, the unit used for
// caret positions throughout the package.

// InsertAt inserts chars at pos. pos is clamped into [0, len(s)].
func InsertAt(s, chars string, pos int) string {
	if chars == "" {
		return s
	}
	runes := []rune(s)
	pos = clamp(pos, 0, len(runes))
	return string(runes[:pos]) + chars + string(runes[pos:])
}

// DeleteAt removes the runes in [start, end). Out of range or inverted
// positions leave s unchanged.
func DeleteAt(s string, start, end int) string {
	runes := []rune(s)
	if start < 0 || end > len(runes) || start >= end {
		return s
	}
	return string(runes[:start]) + string(runes[end:])
}

// DeleteCharAt removes the single rune at start.
func DeleteCharAt(s string, start int) string {
	return DeleteAt(s, start, start+1)
}

// ReplaceAt replaces the runes in [start, end) with chars. An empty chars
// turns it into a deletion.
func ReplaceAt(s, chars string, start, end int) (string, error) {
	runes := []rune(s)
	if start < 0 || end > len(runes) || start > end {
		return s, ErrInvalidRange
	}
	return string(runes[:start]) + chars + string(runes[end:]), nil
}

func runeLen(s string) int {
	return utf8.RuneCountInString(s)
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

package util

import (
	"strconv"
)

// MustParseUint returns 0 when s is not an unsigned integer.
func MustParseUint(s string) uint {
	id, _ := strconv.ParseUint(s, 10, 32)
	return uint(id)
}

func UintToString(v uint) string {
	return strconv.FormatUint(uint64(v), 10)
}

// Truncate cuts s to at most n runes.
func Truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}

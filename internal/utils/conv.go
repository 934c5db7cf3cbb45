package utils

import (
	"strconv"
)

// ParseID converts a route parameter to a row id; ok is false for anything
// that is not a positive integer.
func ParseID(s string) (uint, bool) {
	i, err := strconv.ParseUint(s, 10, 64)
	if err != nil || i == 0 {
		return 0, false
	}
	return uint(i), true
}

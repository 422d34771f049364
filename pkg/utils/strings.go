package utils

import "strconv"

// ParseInt parses s as a base-10 int, returning defaultVal when s is empty
// or malformed.
func ParseInt(s string, defaultVal int) int {
	if s == "" {
		return defaultVal
	}
	val, err := strconv.Atoi(s)
	if err != nil {
		return defaultVal
	}
	return val
}

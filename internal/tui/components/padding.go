package components

import "strings"

// spaces backs Pad for the widths a terminal realistically needs.
var spaces = strings.Repeat(" ", 256)

// Pad returns a string of n spaces.
func Pad(n int) string {
	switch {
	case n <= 0:
		return ""
	case n <= len(spaces):
		return spaces[:n]
	default:
		return strings.Repeat(" ", n)
	}
}

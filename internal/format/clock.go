// Package format holds presentation helpers for time labels and digits.
package format

import (
	"fmt"
	"math"
)

// Clock formats a position in seconds as mm:ss, or h:mm:ss beyond an hour.
// Zero, negative and non-finite values render as 00:00.
func Clock(seconds float64) string {
	if math.IsNaN(seconds) || math.IsInf(seconds, 0) || seconds <= 0 {
		return "00:00"
	}
	total := int(math.Floor(seconds))
	h := total / 3600
	m := (total % 3600) / 60
	s := total % 60

	if h > 0 {
		return fmt.Sprintf("%d:%02d:%02d", h, m, s)
	}
	return fmt.Sprintf("%02d:%02d", m, s)
}

// Position formats a zero-based playlist index as a "(n/total)" label.
func Position(index, total int) string {
	return fmt.Sprintf("(%d/%d)", index+1, total)
}

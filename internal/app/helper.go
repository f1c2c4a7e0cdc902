// internal/app/helper.go
package app

import (
	"fmt"
	"math"
)

// clamp clamps v into [min, max].
func clamp(v, min, max int) int {
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}

// chartDims sizes a card chart for the available total width.
func chartDims(total int) (width, height int) {
	// card border + padding take 4 columns, body padding 2
	width = clamp(total-6, 20, 100)
	height = 6
	if total < 60 {
		height = 4
	}
	return
}

// bodyHeight is what is left for the card viewport under header, search
// line and the two footer lines.
func bodyHeight(total int) int {
	return clamp(total-5, 3, math.MaxInt32)
}

func fmtValue(v float64, null bool) string {
	if null || math.IsNaN(v) {
		return "NaN"
	}
	if v == math.Trunc(v) && math.Abs(v) < 1e15 {
		return fmt.Sprintf("%.0f", v)
	}
	return fmt.Sprintf("%.2f", v)
}

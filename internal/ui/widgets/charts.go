package widgets

import (
	"math"
	"strings"
)

var blocks = []rune("▁▂▃▄▅▆▇█")

// Spark8 draws vals (expected in 0..1) as a one-line sparkline.
func Spark8(vals []float64, width int) string {
	if len(vals) == 0 || width <= 0 {
		return ""
	}
	var b strings.Builder
	for _, v := range resample(vals, width) {
		level := int(math.Round(clamp01(v) * float64(len(blocks)-1)))
		b.WriteRune(blocks[level])
	}
	return b.String()
}

// Area draws vals as a filled chart of height rows, top row first. Values
// are scaled between their own min and max.
func Area(vals []float64, width, height int) []string {
	if width <= 0 || height <= 0 {
		return nil
	}
	rows := make([][]rune, height)
	for r := range rows {
		rows[r] = []rune(strings.Repeat(" ", width))
	}
	if len(vals) == 0 {
		return join(rows)
	}

	cols := resample(Normalize(vals), width)
	for c, v := range cols {
		// eighths of a cell, at least one so flat series stay visible
		fill := int(math.Round(clamp01(v) * float64(height*8)))
		if fill < 1 {
			fill = 1
		}
		for r := 0; r < height; r++ {
			cell := fill - r*8
			if cell <= 0 {
				break
			}
			if cell > 8 {
				cell = 8
			}
			rows[height-1-r][c] = blocks[cell-1]
		}
	}
	return join(rows)
}

// Axis puts first at the left and last at the right of a width wide line.
func Axis(first, last string, width int) string {
	if width <= 0 {
		return ""
	}
	gap := width - len([]rune(first)) - len([]rune(last))
	if gap < 1 {
		return truncate(first, width)
	}
	return first + strings.Repeat(" ", gap) + last
}

// Normalize scales vals into 0..1 by their min and max; a flat series maps to 0.5.
func Normalize(vals []float64) []float64 {
	out := make([]float64, len(vals))
	if len(vals) == 0 {
		return out
	}
	lo, hi := math.Inf(1), math.Inf(-1)
	for _, v := range vals {
		if math.IsNaN(v) {
			continue
		}
		lo = math.Min(lo, v)
		hi = math.Max(hi, v)
	}
	span := hi - lo
	for i, v := range vals {
		switch {
		case math.IsNaN(v) || math.IsInf(span, 0):
			out[i] = 0
		case span == 0:
			out[i] = 0.5
		default:
			out[i] = (v - lo) / span
		}
	}
	return out
}

func Bar(v float64, width int) string {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		v = 0
	}
	if v < 0 {
		v = 0
	}
	if v > 1 {
		v = 1
	}

	fill := int(math.Round(v * float64(width)))

	if v > 0 && fill == 0 {
		fill = 1
	}

	if fill < 0 {
		fill = 0
	}
	if fill > width {
		fill = width
	}

	return strings.Repeat("█", fill) + strings.Repeat(" ", width-fill)
}

// resample picks width values evenly across vals.
func resample(vals []float64, width int) []float64 {
	out := make([]float64, width)
	step := float64(len(vals)) / float64(width)
	for i := range out {
		idx := int(math.Min(float64(len(vals)-1), math.Floor(float64(i)*step)))
		out[i] = vals[idx]
	}
	return out
}

func join(rows [][]rune) []string {
	out := make([]string, len(rows))
	for i, r := range rows {
		out[i] = string(r)
	}
	return out
}

func truncate(s string, width int) string {
	r := []rune(s)
	if len(r) <= width {
		return s
	}
	return string(r[:width])
}

func clamp01(f float64) float64 {
	if f < 0 {
		return 0
	}
	if f > 1 {
		return 1
	}
	return f
}

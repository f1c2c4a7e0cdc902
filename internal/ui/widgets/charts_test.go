package widgets

import (
	"math"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSpark8(t *testing.T) {
	assert.Equal(t, "", Spark8(nil, 10))
	assert.Equal(t, "▁█", Spark8([]float64{0, 1}, 2))
	assert.Equal(t, 6, utf8.RuneCountInString(Spark8([]float64{0, 0.5, 1}, 6)))
}

func TestNormalize(t *testing.T) {
	assert.Equal(t, []float64{0, 0.5, 1}, Normalize([]float64{10, 15, 20}))
	assert.Equal(t, []float64{0.5, 0.5}, Normalize([]float64{7, 7}))
	got := Normalize([]float64{1, math.NaN(), 3})
	assert.Equal(t, 0.0, got[1])
	assert.Empty(t, Normalize(nil))
}

func TestArea(t *testing.T) {
	rows := Area([]float64{0, 10}, 2, 2)
	require.Len(t, rows, 2)
	// low column keeps a sliver on the bottom row, high column fills both rows
	assert.Equal(t, " █", rows[0])
	assert.Equal(t, "▁█", rows[1])

	empty := Area(nil, 3, 2)
	assert.Equal(t, []string{"   ", "   "}, empty)
	assert.Nil(t, Area([]float64{1}, 0, 2))
}

func TestAxis(t *testing.T) {
	assert.Equal(t, "9:0     21:45", Axis("9:0", "21:45", 13))
	assert.Equal(t, "9:0", Axis("9:0", "21:45", 3))
	assert.Equal(t, "", Axis("a", "b", 0))
}

func TestBar(t *testing.T) {
	assert.Equal(t, "██  ", Bar(0.5, 4))
	assert.Equal(t, "█   ", Bar(0.01, 4))
	assert.Equal(t, "    ", Bar(math.NaN(), 4))
}

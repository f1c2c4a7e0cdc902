package mock

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/HaPhanBaoMinh/ttdmon/internal/domain"
	"github.com/HaPhanBaoMinh/ttdmon/internal/pipeline"
)

func TestMockFeedsPipeline(t *testing.T) {
	r := NewSeeded(1)
	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	p := pipeline.New(r, r, pipeline.Options{
		Lookback: 2 * time.Hour,
		Location: time.UTC,
		Now:      func() time.Time { return now },
	})

	units, err := p.Load(context.Background())
	require.NoError(t, err)
	require.Len(t, units, 12)
	for i, u := range units {
		assert.Equal(t, i, u.ID)
		assert.NotEmpty(t, u.DisplayName)
		assert.NotEmpty(t, u.Rarity)
		// 2h at 15 minute steps, both ends included
		assert.Len(t, u.ChartDatas, 9)
		assert.Len(t, u.Labels, 9)
	}
}

func TestMockUnknownUnit(t *testing.T) {
	_, err := NewSeeded(1).UnitData(context.Background(), "Nope")
	assert.Error(t, err)
}

func TestMockCratesExcluded(t *testing.T) {
	entries, err := NewSeeded(1).ExistCounts(context.Background())
	require.NoError(t, err)
	crates := 0
	for _, e := range entries {
		if domain.IsExcluded(e.Key) {
			crates++
		}
	}
	assert.Equal(t, 3, crates)
}

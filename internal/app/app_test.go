package app

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/HaPhanBaoMinh/ttdmon/internal/domain"
)

type fakeLoader struct {
	units []domain.UnitView
	err   error
	calls int
	ctx   context.Context
}

func (f *fakeLoader) Load(ctx context.Context) ([]domain.UnitView, error) {
	f.calls++
	f.ctx = ctx
	return f.units, f.err
}

func sampleUnits(n int) []domain.UnitView {
	out := make([]domain.UnitView, n)
	for i := range out {
		out[i] = domain.UnitView{
			ID:          i,
			Name:        fmt.Sprintf("Unit%d", i),
			DisplayName: fmt.Sprintf("Unit %d", i),
			Rarity:      "Rare",
			Img:         fmt.Sprintf("img%d", i),
			Labels:      []string{"9:0", "9:15"},
			ChartDatas:  []domain.ChartDatum{{TimestampMillis: 0, Value: 1}, {TimestampMillis: 900000, Value: 3}},
		}
	}
	out[n-1].DisplayName = "Large CameraMan"
	return out
}

func runes(s string) tea.KeyMsg { return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)} }

func step(t *testing.T, m Model, msg tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	mm, ok := next.(Model)
	require.True(t, ok)
	return mm, cmd
}

func loaded(t *testing.T, l *fakeLoader) Model {
	t.Helper()
	m := New(l, Options{PageSize: 10, ThumbnailBaseURL: "https://thumbs.test/", Lookback: 24 * time.Hour})
	require.Equal(t, StateLoading, m.State())
	m, _ = step(t, m, tea.WindowSizeMsg{Width: 100, Height: 40})
	m, _ = step(t, m, m.loadCmd()())
	return m
}

func TestLoadSuccess(t *testing.T) {
	l := &fakeLoader{units: sampleUnits(23)}
	m := loaded(t, l)

	assert.Equal(t, StateLoaded, m.State())
	assert.NoError(t, m.Err())
	pg := m.Visible()
	assert.Equal(t, 1, pg.Number)
	assert.Len(t, pg.Items, 10)
	assert.False(t, pg.HasPrev)
	assert.True(t, pg.HasNext)

	view := m.View()
	assert.Contains(t, view, "Unit 0")
	assert.Contains(t, view, "https://thumbs.test/img0")
}

func TestLoadFailureShowsReason(t *testing.T) {
	l := &fakeLoader{err: errors.New("fetch monitoring: status 502")}
	m := loaded(t, l)

	assert.Equal(t, StateFailed, m.State())
	assert.EqualError(t, m.Err(), "fetch monitoring: status 502")
	assert.Contains(t, m.View(), "load failed: fetch monitoring: status 502")
	assert.Empty(t, m.Visible().Items)
}

func TestPaging(t *testing.T) {
	m := loaded(t, &fakeLoader{units: sampleUnits(23)})

	m, _ = step(t, m, tea.KeyMsg{Type: tea.KeyRight})
	assert.Equal(t, 2, m.Visible().Number)
	m, _ = step(t, m, tea.KeyMsg{Type: tea.KeyRight})
	m, _ = step(t, m, tea.KeyMsg{Type: tea.KeyRight})
	pg := m.Visible()
	assert.Equal(t, 3, pg.Number)
	assert.Len(t, pg.Items, 3)
	assert.False(t, pg.HasNext)

	m, _ = step(t, m, tea.KeyMsg{Type: tea.KeyLeft})
	assert.Equal(t, 2, m.Visible().Number)
}

func TestSearchFiltersAndResetsPage(t *testing.T) {
	m := loaded(t, &fakeLoader{units: sampleUnits(23)})
	m, _ = step(t, m, tea.KeyMsg{Type: tea.KeyRight})
	require.Equal(t, 2, m.Visible().Number)

	m, _ = step(t, m, runes("/"))
	m, _ = step(t, m, runes("CAMERA"))
	pg := m.Visible()
	assert.Equal(t, 1, pg.Number)
	require.Len(t, pg.Items, 1)
	assert.Equal(t, "Large CameraMan", pg.Items[0].DisplayName)

	// typing "q" while searching edits the query instead of quitting
	m, cmd := step(t, m, runes("q"))
	assert.Nil(t, m.ctx.Err())
	_ = cmd
	assert.Empty(t, m.Visible().Items)

	m, _ = step(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	assert.Len(t, m.Visible().Items, 10)
}

func TestReloadStartsNewGeneration(t *testing.T) {
	l := &fakeLoader{units: sampleUnits(3)}
	m := loaded(t, l)
	old := m.loadCmd()

	m, cmd := step(t, m, runes("r"))
	require.NotNil(t, cmd)
	assert.Equal(t, StateLoading, m.State())

	// a result from the previous generation is dropped
	l.units = sampleUnits(5)
	stale := old()
	m, _ = step(t, m, stale)
	assert.Equal(t, StateLoading, m.State())

	m, _ = step(t, m, m.loadCmd()())
	assert.Equal(t, StateLoaded, m.State())
	assert.Equal(t, 5, m.Visible().Total)
}

func TestQuitCancelsLoad(t *testing.T) {
	l := &fakeLoader{units: sampleUnits(3)}
	m := New(l, Options{})
	_ = m.loadCmd()()
	require.NotNil(t, l.ctx)

	m, cmd := step(t, m, runes("q"))
	require.NotNil(t, cmd)
	assert.Error(t, l.ctx.Err())
	assert.Error(t, m.ctx.Err())
}

func TestLoadStateString(t *testing.T) {
	assert.Equal(t, "not loaded", StateNotLoaded.String())
	assert.Equal(t, "loading", StateLoading.String())
	assert.Equal(t, "loaded", StateLoaded.String())
	assert.Equal(t, "failed", StateFailed.String())
}

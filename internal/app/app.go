// internal/app/app.go
package app

import (
	"context"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/paginator"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/sirupsen/logrus"

	"github.com/HaPhanBaoMinh/ttdmon/internal/browse"
	"github.com/HaPhanBaoMinh/ttdmon/internal/domain"
	"github.com/HaPhanBaoMinh/ttdmon/internal/ui/styles"
	"github.com/HaPhanBaoMinh/ttdmon/internal/ui/widgets"
)

// Loader runs one full data load; the pipeline satisfies it.
type Loader interface {
	Load(ctx context.Context) ([]domain.UnitView, error)
}

type LoadState int

const (
	StateNotLoaded LoadState = iota
	StateLoading
	StateLoaded
	StateFailed
)

func (s LoadState) String() string {
	switch s {
	case StateLoading:
		return "loading"
	case StateLoaded:
		return "loaded"
	case StateFailed:
		return "failed"
	default:
		return "not loaded"
	}
}

type Options struct {
	PageSize         int
	ThumbnailBaseURL string
	Lookback         time.Duration
}

type unitsMsg struct {
	seq   int
	units []domain.UnitView
}

type errMsg struct {
	seq int
	error
}

type keyMap struct {
	Search key.Binding
	Prev   key.Binding
	Next   key.Binding
	Reload key.Binding
	Up     key.Binding
	Down   key.Binding
	Quit   key.Binding
}

var keys = keyMap{
	Search: key.NewBinding(key.WithKeys("/"), key.WithHelp("/", "search")),
	Prev:   key.NewBinding(key.WithKeys("left", "h", "pgup"), key.WithHelp("←", "previous")),
	Next:   key.NewBinding(key.WithKeys("right", "l", "pgdown"), key.WithHelp("→", "next")),
	Reload: key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "reload")),
	Up:     key.NewBinding(key.WithKeys("up", "k")),
	Down:   key.NewBinding(key.WithKeys("down", "j")),
	Quit:   key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
}

type Model struct {
	ctx    context.Context
	cancel context.CancelFunc

	loader Loader
	opts   Options
	log    logrus.FieldLogger

	// current load
	state      LoadState
	loadSeq    int
	loadCtx    context.Context
	loadCancel context.CancelFunc
	err        error

	units    []domain.UnitView
	filtered []domain.UnitView
	page     int // 1-based

	search    textinput.Model
	searching bool
	pager     paginator.Model
	spin      spinner.Model
	vp        viewport.Model

	width, height int
}

func New(loader Loader, opts Options) Model {
	ctx, cancel := context.WithCancel(context.Background())
	if opts.PageSize <= 0 {
		opts.PageSize = browse.DefaultPageSize
	}

	ti := textinput.New()
	ti.Prompt = "Search: "
	ti.Placeholder = "Search..."
	ti.CharLimit = 64

	pg := paginator.New()
	pg.Type = paginator.Dots
	pg.PerPage = opts.PageSize
	pg.ActiveDot = styles.TabActive.Render("•")
	pg.InactiveDot = styles.Tab.Render("•")

	sp := spinner.New()
	sp.Spinner = spinner.Dot

	m := Model{
		ctx:    ctx,
		cancel: cancel,
		loader: loader,
		opts:   opts,
		log:    logrus.WithField("component", "app"),
		page:   1,
		search: ti,
		pager:  pg,
		spin:   sp,
		vp:     viewport.New(100, 20),
		width:  100,
		height: 25,
	}
	m.beginLoad()
	return m
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(m.loadCmd(), m.spin.Tick)
}

// beginLoad cancels any in-flight load and starts a new generation.
func (m *Model) beginLoad() {
	if m.loadCancel != nil {
		m.loadCancel()
	}
	m.loadCtx, m.loadCancel = context.WithCancel(m.ctx)
	m.loadSeq++
	m.state = StateLoading
	m.err = nil
}

func (m Model) loadCmd() tea.Cmd {
	ctx, seq, loader := m.loadCtx, m.loadSeq, m.loader
	return func() tea.Msg {
		units, err := loader.Load(ctx)
		if err != nil {
			return errMsg{seq: seq, error: err}
		}
		return unitsMsg{seq: seq, units: units}
	}
}

func (m Model) State() LoadState { return m.state }

func (m Model) Err() error { return m.err }

// Visible is the current page after search filtering.
func (m Model) Visible() browse.Page {
	return browse.Paginate(m.filtered, m.page, m.opts.PageSize)
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {

	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.vp.Width = m.width
		m.vp.Height = bodyHeight(m.height)
		m.search.Width = clamp(m.width-len(m.search.Prompt)-2, 10, 64)
		m.refresh(false)
		return m, nil

	case unitsMsg:
		if msg.seq != m.loadSeq {
			return m, nil
		}
		m.state = StateLoaded
		m.units = msg.units
		m.log.Infof("loaded %d units", len(msg.units))
		m.refresh(true)
		return m, nil

	case errMsg:
		if msg.seq != m.loadSeq {
			return m, nil
		}
		m.state = StateFailed
		m.err = msg.error
		m.log.Errorf("load failed: %v", msg.error)
		return m, nil

	case spinner.TickMsg:
		if m.state != StateLoading {
			return m, nil
		}
		var cmd tea.Cmd
		m.spin, cmd = m.spin.Update(msg)
		return m, cmd

	case tea.KeyMsg:
		if m.searching {
			return m.updateSearch(msg)
		}

		switch {
		case key.Matches(msg, keys.Quit):
			if m.loadCancel != nil {
				m.loadCancel()
			}
			m.cancel()
			return m, tea.Quit

		case msg.String() == "esc":
			if m.search.Value() != "" {
				m.search.SetValue("")
				m.page = 1
				m.refresh(true)
				return m, nil
			}
			m.cancel()
			return m, tea.Quit

		case key.Matches(msg, keys.Search):
			m.searching = true
			return m, m.search.Focus()

		case key.Matches(msg, keys.Prev):
			if pg := m.Visible(); pg.HasPrev {
				m.page = pg.Number - 1
				m.refresh(true)
			}
			return m, nil

		case key.Matches(msg, keys.Next):
			if pg := m.Visible(); pg.HasNext {
				m.page = pg.Number + 1
				m.refresh(true)
			}
			return m, nil

		case key.Matches(msg, keys.Reload):
			if m.state == StateLoading {
				return m, nil
			}
			m.beginLoad()
			return m, tea.Batch(m.loadCmd(), m.spin.Tick)

		case key.Matches(msg, keys.Up), key.Matches(msg, keys.Down):
			var cmd tea.Cmd
			m.vp, cmd = m.vp.Update(msg)
			return m, cmd
		}
	}

	var cmd tea.Cmd
	m.vp, cmd = m.vp.Update(msg)
	return m, cmd
}

func (m Model) updateSearch(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter":
		m.searching = false
		m.search.Blur()
		return m, nil
	case "esc":
		m.searching = false
		m.search.Blur()
		m.search.SetValue("")
		m.page = 1
		m.refresh(true)
		return m, nil
	case "ctrl+c":
		m.cancel()
		return m, tea.Quit
	}

	before := m.search.Value()
	var cmd tea.Cmd
	m.search, cmd = m.search.Update(msg)
	if m.search.Value() != before {
		m.page = 1
		m.refresh(true)
	}
	return m, cmd
}

// refresh re-derives the filtered list, the page and the card content.
func (m *Model) refresh(top bool) {
	m.filtered = browse.Filter(m.units, m.search.Value())
	pg := m.Visible()
	m.page = pg.Number
	m.pager.SetTotalPages(len(m.filtered))
	m.pager.Page = pg.Number - 1
	m.vp.SetContent(m.renderCards(pg.Items))
	if top {
		m.vp.GotoTop()
	}
}

func (m Model) renderCards(units []domain.UnitView) string {
	if len(units) == 0 {
		return ""
	}
	cards := make([]string, 0, len(units))
	for _, u := range units {
		cards = append(cards, m.renderCard(u))
	}
	return lipgloss.JoinVertical(lipgloss.Left, cards...)
}

func (m Model) renderCard(u domain.UnitView) string {
	chartW, chartH := chartDims(m.width)
	vals := u.Values()

	title := lipgloss.JoinHorizontal(lipgloss.Top,
		styles.Title.Render(u.DisplayName), "  ",
		styles.Rarity(u.Rarity).Render(u.Rarity), "  ",
		styles.Faint.Render(u.Name),
	)
	img := styles.Faint.Render(u.ImageURL(m.opts.ThumbnailBaseURL))

	var body []string
	if len(vals) == 0 {
		body = []string{styles.Faint.Render("no samples in window")}
	} else {
		body = append(body, widgets.Area(vals, chartW, chartH)...)
		body = append(body, styles.Faint.Render(widgets.Axis(u.Labels[0], u.Labels[len(u.Labels)-1], chartW)))

		last := u.ChartDatas[len(u.ChartDatas)-1]
		lo, hi := minMax(vals)
		ratio := 0.0
		if hi > 0 {
			ratio = last.Value / hi
		}
		body = append(body, fmt.Sprintf("now %s %s  min %s  max %s  %d samples",
			fmtValue(last.Value, last.Null),
			widgets.Bar(ratio, 10),
			fmtValue(lo, false), fmtValue(hi, false),
			len(vals),
		))
	}

	content := lipgloss.JoinVertical(lipgloss.Left, append([]string{title, img}, body...)...)
	return styles.Card.Width(chartW + 2).Render(content)
}

func (m Model) View() string {
	head := styles.Header.Render(fmt.Sprintf("TTD Monitor  │ window: %s  state: %s  units: %d/%d  [/]search [←/→]page [r]reload [q]quit",
		m.opts.Lookback, m.state, len(m.filtered), len(m.units)))

	searchLine := m.search.View()
	if !m.searching {
		searchLine = styles.Tab.Render(searchLine)
	}

	var body string
	switch m.state {
	case StateLoading:
		body = styles.Warn.Render(m.spin.View() + " loading units...")
	case StateFailed:
		body = styles.Danger.Render("load failed: "+errString(m.err)) + "\n" + styles.Faint.Render("press r to retry")
	case StateLoaded:
		if len(m.filtered) == 0 {
			body = styles.Faint.Render("no units match")
		} else {
			body = m.vp.View()
		}
	default:
		body = styles.Faint.Render("not loaded")
	}

	pg := m.Visible()
	prev, next := styles.Faint.Render("‹ Previous"), styles.Faint.Render("Next ›")
	if pg.HasPrev {
		prev = styles.Good.Render("‹ Previous")
	}
	if pg.HasNext {
		next = styles.Good.Render("Next ›")
	}
	pages := ""
	if pg.Pages > 1 {
		pages = m.pager.View()
	}
	nav := lipgloss.JoinHorizontal(lipgloss.Center, prev, "  ", pages, "  ", next,
		styles.Faint.Render(fmt.Sprintf("  page %d/%d", pg.Number, max(1, pg.Pages))))
	footer := styles.Footer.Render("↑/↓ scroll • [/] search • [enter] done • [esc] clear • [r] reload • [q] quit")

	return lipgloss.JoinVertical(lipgloss.Left, head, searchLine, body, nav, footer)
}

func errString(err error) string {
	if err == nil {
		return "unknown error"
	}
	return strings.TrimSpace(err.Error())
}

func minMax(vals []float64) (lo, hi float64) {
	lo, hi = math.Inf(1), math.Inf(-1)
	for _, v := range vals {
		lo = math.Min(lo, v)
		hi = math.Max(hi, v)
	}
	return
}

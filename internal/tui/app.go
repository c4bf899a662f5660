package tui

import (
	"context"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"

	"styleswipe/internal/api"
	"styleswipe/internal/deck"
	"styleswipe/internal/model"
	"styleswipe/internal/saved"
	"styleswipe/internal/store"
	"styleswipe/internal/trending"
)

type view int

const (
	viewSwipe view = iota
	viewSaved
	viewTrending
)

// Deps is everything the TUI needs from the outside. The session is
// explicit; the TUI never reads ambient identity.
type Deps struct {
	Dir     string
	Client  *api.Client
	Session model.Session
	Log     *zap.Logger
}

type deckChangedMsg struct{}
type deckInitDoneMsg struct{ err error }
type noticeMsg struct{ n deck.Notice }
type savedLoadedMsg struct {
	col model.LikedCollection
	err error
}
type trendingLoadedMsg struct {
	items []model.TrendingItem
	err   error
}

type appModel struct {
	deps Deps

	width  int
	height int
	view   view

	deck *deck.Deck
	disp *deck.Dispatcher
	rec  *saved.Reconciler
	feed *trending.Feed

	banner   banner
	selected int // slot index on the swipe screen

	filterForm *filterForm

	savedTab     store.EntityKind
	itemsList    list.Model
	outfitsList  list.Model
	trendingList list.Model
	savedErr     error
	trendingErr  error
}

func newAppModel(deps Deps, d *deck.Deck, disp *deck.Dispatcher, rec *saved.Reconciler, feed *trending.Feed) appModel {
	m := appModel{
		deps:     deps,
		deck:     d,
		disp:     disp,
		rec:      rec,
		feed:     feed,
		savedTab: store.KindItems,
	}
	m.itemsList = newList("Items")
	m.outfitsList = newList("Outfits")
	m.trendingList = newList("Trending")

	// Best effort: restore the last screen.
	if st, err := store.LoadTUIState(deps.Dir); err == nil {
		switch st.View {
		case "saved":
			m.view = viewSaved
		case "trending":
			m.view = viewTrending
		}
		if st.SavedTab == string(store.KindOutfits) {
			m.savedTab = store.KindOutfits
		}
	}
	return m
}

func newList(title string) list.Model {
	l := list.New([]list.Item{}, list.NewDefaultDelegate(), 0, 0)
	l.Title = title
	l.SetShowHelp(false)
	l.SetShowStatusBar(false)
	return l
}

func (m appModel) Init() tea.Cmd {
	cmds := []tea.Cmd{m.initDeckCmd()}
	switch m.view {
	case viewSaved:
		cmds = append(cmds, m.refreshSavedCmd())
	case viewTrending:
		cmds = append(cmds, m.refreshTrendingCmd())
	}
	return tea.Batch(cmds...)
}

func (m appModel) initDeckCmd() tea.Cmd {
	d := m.deck
	return func() tea.Msg {
		return deckInitDoneMsg{err: d.Initialize(context.Background())}
	}
}

func (m appModel) refreshSavedCmd() tea.Cmd {
	r := m.rec
	return func() tea.Msg {
		col, err := r.Refresh(context.Background())
		return savedLoadedMsg{col: col, err: err}
	}
}

func (m appModel) refreshTrendingCmd() tea.Cmd {
	f := m.feed
	return func() tea.Msg {
		items, err := f.Refresh(context.Background())
		return trendingLoadedMsg{items: items, err: err}
	}
}

func (m appModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.resizeLists()
		return m, nil

	case deckChangedMsg, deckInitDoneMsg:
		// Slot state is read fresh from the deck at render time.
		return m, nil

	case noticeMsg:
		return m, m.banner.show(msg.n)

	case bannerExpiredMsg:
		m.banner.expire(msg)
		return m, nil

	case savedLoadedMsg:
		m.savedErr = msg.err
		if msg.err == nil {
			m.setSavedItems(msg.col)
		}
		return m, nil

	case trendingLoadedMsg:
		m.trendingErr = msg.err
		if msg.err == nil {
			m.setTrendingItems(msg.items)
		}
		return m, nil

	case tea.KeyMsg:
		return m.updateKey(msg)
	}

	return m.updateActiveList(msg)
}

func (m appModel) updateKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// The filter form captures all keys while open.
	if m.filterForm != nil {
		return m.updateFilterForm(msg)
	}

	switch msg.String() {
	case "ctrl+c", "q":
		m.persistTUIState()
		return m, tea.Quit
	case "tab":
		m.view = (m.view + 1) % 3
		return m, m.focusCmd()
	case "1":
		m.view = viewSwipe
		return m, nil
	case "2":
		m.view = viewSaved
		return m, m.refreshSavedCmd()
	case "3":
		m.view = viewTrending
		return m, m.refreshTrendingCmd()
	}

	switch m.view {
	case viewSwipe:
		return m.updateSwipeKey(msg)
	case viewSaved:
		return m.updateSavedKey(msg)
	default:
		return m.updateTrendingKey(msg)
	}
}

// focusCmd re-fetches the data behind the newly focused screen. The saved
// screen reconciles on every focus transition, not on every render.
func (m appModel) focusCmd() tea.Cmd {
	switch m.view {
	case viewSaved:
		return m.refreshSavedCmd()
	case viewTrending:
		return m.refreshTrendingCmd()
	}
	return nil
}

func (m appModel) updateActiveList(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch m.view {
	case viewSaved:
		if m.savedTab == store.KindOutfits {
			m.outfitsList, cmd = m.outfitsList.Update(msg)
		} else {
			m.itemsList, cmd = m.itemsList.Update(msg)
		}
	case viewTrending:
		m.trendingList, cmd = m.trendingList.Update(msg)
	}
	return m, cmd
}

func (m appModel) View() string {
	header := m.renderHeader()

	var body string
	switch {
	case m.filterForm != nil:
		body = m.filterForm.render(m.width)
	case m.view == viewSwipe:
		body = m.renderSwipe()
	case m.view == viewSaved:
		body = m.renderSaved()
	default:
		body = m.renderTrending()
	}

	lines := []string{header}
	if b := m.banner.render(m.width); b != "" {
		lines = append(lines, b)
	} else {
		lines = append(lines, "")
	}
	lines = append(lines, body, m.renderFooter())
	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func (m appModel) renderHeader() string {
	title := lipgloss.NewStyle().Bold(true).Foreground(colorAccent).Render("StyleSwipe")
	who := styleMuted().Render(" " + m.deps.Session.UserName)

	tab := func(label string, v view) string {
		st := styleMuted()
		if m.view == v {
			st = lipgloss.NewStyle().Bold(true).Foreground(colorSurfaceFg)
		}
		return st.Render(label)
	}
	tabs := tab("[1] For You", viewSwipe) + "  " + tab("[2] Your Fits", viewSaved) + "  " + tab("[3] Trending", viewTrending)

	return lipgloss.JoinHorizontal(lipgloss.Top, title, who, "   ", tabs)
}

func (m appModel) renderFooter() string {
	var help string
	switch {
	case m.filterForm != nil:
		help = "up/down: field  space: toggle  enter: apply  esc: cancel"
	case m.view == viewSwipe:
		help = "left/right: slot  x: pass  l: like  o: outfit  f: filters  r: retry  tab: screen  q: quit"
	case m.view == viewSaved:
		help = "i/o: items/outfits  x: remove  r: refresh  tab: screen  q: quit"
	default:
		help = "l: like  r: refresh  tab: screen  q: quit"
	}
	return styleMuted().Render(help)
}

func (m *appModel) resizeLists() {
	h := m.height - 6
	if h < 8 {
		h = 8
	}
	w := m.width
	if w < 40 {
		w = 40
	}
	m.itemsList.SetSize(w, h)
	m.outfitsList.SetSize(w, h)
	m.trendingList.SetSize(w, h)
}

func (m appModel) persistTUIState() {
	st := &store.TUIState{Version: 1, SavedTab: string(m.savedTab)}
	switch m.view {
	case viewSaved:
		st.View = "saved"
	case viewTrending:
		st.View = "trending"
	default:
		st.View = "swipe"
	}
	_ = store.SaveTUIState(m.deps.Dir, st)
}

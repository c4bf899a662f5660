package tui

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"styleswipe/internal/deck"
	"styleswipe/internal/model"
)

var slotTitles = map[model.SlotKind]string{
	model.SlotTop:    "Top",
	model.SlotBottom: "Bottom",
	model.SlotShoes:  "Shoes",
}

func (m appModel) updateSwipeKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "left":
		if m.selected > 0 {
			m.selected--
		}
		return m, nil
	case "right":
		if m.selected < len(model.AllSlotKinds)-1 {
			m.selected++
		}
		return m, nil
	case "x":
		return m, m.advanceCmd(m.selectedKind())
	case "l", "enter":
		return m, m.likeCmd(m.selectedKind())
	case "o":
		return m, m.outfitCmd()
	case "r":
		return m, m.retryCmd(m.selectedKind())
	case "f":
		m.filterForm = newFilterForm(m.deck.Filter())
		return m, nil
	}
	return m, nil
}

func (m appModel) selectedKind() model.SlotKind {
	return model.AllSlotKinds[m.selected]
}

// advanceCmd skips the displayed candidate. Runs off the update loop: the
// advance may degrade to a blocking fetch when the user outran the prefetch.
func (m appModel) advanceCmd(kind model.SlotKind) tea.Cmd {
	d := m.deck
	return func() tea.Msg {
		_ = d.Advance(context.Background(), kind)
		return nil
	}
}

func (m appModel) likeCmd(kind model.SlotKind) tea.Cmd {
	disp := m.disp
	return func() tea.Msg {
		disp.Like(context.Background(), kind)
		return nil
	}
}

func (m appModel) outfitCmd() tea.Cmd {
	disp := m.disp
	return func() tea.Msg {
		disp.CreateOutfit(context.Background())
		return nil
	}
}

func (m appModel) retryCmd(kind model.SlotKind) tea.Cmd {
	d := m.deck
	return func() tea.Msg {
		_ = d.Retry(context.Background(), kind)
		return nil
	}
}

func (m appModel) renderSwipe() string {
	views := m.deck.Snapshot()

	cardW := (m.width - 8) / 3
	if cardW < 18 {
		cardW = 18
	}
	if cardW > 34 {
		cardW = 34
	}

	cards := make([]string, 0, len(views))
	for i, v := range views {
		cards = append(cards, m.renderSlotCard(v, cardW, i == m.selected))
	}
	row := lipgloss.JoinHorizontal(lipgloss.Top, cards...)

	detail := m.renderDetail(views)
	return lipgloss.JoinVertical(lipgloss.Left, row, "", detail)
}

func (m appModel) renderSlotCard(v deck.SlotView, width int, selected bool) string {
	border := colorCardBorder
	if selected {
		border = colorSelectedBorder
	}
	card := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(border).
		Width(width).
		Padding(0, 1)

	title := lipgloss.NewStyle().Bold(true).Render(slotTitles[v.Kind])

	var body string
	switch {
	case v.Loading:
		body = styleMuted().Render("Loading…")
	case v.Err != nil:
		body = lipgloss.NewStyle().Foreground(colorNegative).Render("Couldn't load") +
			"\n" + styleMuted().Render("press r to retry")
	case v.Current == nil:
		body = styleMuted().Render("Nothing here")
	default:
		c := v.Current
		body = ansi.Truncate(c.Name, width-2, "…") +
			"\n" + styleMuted().Render(ansi.Truncate(c.Designer, width-2, "…")) +
			"\n" + lipgloss.NewStyle().Foreground(colorAccent).Render(c.Price)
	}

	return card.Render(title + "\n" + body)
}

// renderDetail shows the selected slot's candidate in full.
func (m appModel) renderDetail(views []deck.SlotView) string {
	v := views[m.selected]
	if v.Current == nil {
		return ""
	}
	c := v.Current
	w := m.width - 4
	if w > 72 {
		w = 72
	}
	return renderMarkdown(candidateMarkdown(c.Name, c.Designer, c.Price, c.ProductURL), w)
}

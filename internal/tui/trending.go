package tui

import (
	"strconv"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"styleswipe/internal/model"
)

type trendingRow struct{ it model.TrendingItem }

func (r trendingRow) Title() string {
	return r.it.Name + "  " + strconv.Itoa(r.it.Count) + " likes"
}
func (r trendingRow) Description() string {
	if r.it.Designer != "" && r.it.Price != "" {
		return r.it.Designer + "  " + r.it.Price
	}
	return r.it.Designer + r.it.Price
}
func (r trendingRow) FilterValue() string { return r.it.Name }

func (m *appModel) setTrendingItems(items []model.TrendingItem) {
	rows := make([]list.Item, 0, len(items))
	for _, it := range items {
		rows = append(rows, trendingRow{it: it})
	}
	m.trendingList.SetItems(rows)
}

func (m appModel) updateTrendingKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "r":
		return m, m.refreshTrendingCmd()
	case "l", "enter":
		row, ok := m.trendingList.SelectedItem().(trendingRow)
		if !ok {
			return m, nil
		}
		// Optimistic bump; the feed reports the like in the background.
		m.feed.Like(row.it.ProductID)
		m.setTrendingItems(m.feed.Items())
		return m, nil
	}
	return m.updateActiveList(msg)
}

func (m appModel) renderTrending() string {
	if m.trendingErr != nil {
		return lipgloss.NewStyle().Foreground(colorNegative).Render("Couldn't load trending") +
			"\n" + styleMuted().Render("press r to retry")
	}
	return m.trendingList.View()
}

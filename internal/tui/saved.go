package tui

import (
	"context"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"styleswipe/internal/model"
	"styleswipe/internal/session"
	"styleswipe/internal/store"
)

type likedItemRow struct{ it model.LikedItem }

func (r likedItemRow) Title() string { return r.it.Name }
func (r likedItemRow) Description() string {
	if r.it.Designer != "" && r.it.Price != "" {
		return r.it.Designer + "  " + r.it.Price
	}
	return r.it.Designer + r.it.Price
}
func (r likedItemRow) FilterValue() string { return r.it.Name }

type likedOutfitRow struct{ o model.LikedOutfit }

func (r likedOutfitRow) Title() string { return "Outfit " + r.o.OutfitID }
func (r likedOutfitRow) Description() string {
	return r.o.Top.Name + " / " + r.o.Bottom.Name + " / " + r.o.Shoes.Name
}
func (r likedOutfitRow) FilterValue() string { return r.Description() }

func (m *appModel) setSavedItems(col model.LikedCollection) {
	items := make([]list.Item, 0, len(col.Items))
	for _, it := range col.Items {
		items = append(items, likedItemRow{it: it})
	}
	outfits := make([]list.Item, 0, len(col.Outfits))
	for _, o := range col.Outfits {
		outfits = append(outfits, likedOutfitRow{o: o})
	}
	m.itemsList.SetItems(items)
	m.outfitsList.SetItems(outfits)
}

func (m appModel) updateSavedKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "i":
		m.savedTab = store.KindItems
		return m, nil
	case "o":
		m.savedTab = store.KindOutfits
		return m, nil
	case "r":
		return m, m.refreshSavedCmd()
	case "x":
		return m, m.removeSavedCmd()
	}
	return m.updateActiveList(msg)
}

// removeSavedCmd hides the selected entry and persists the exclusion, then
// reloads so the list reflects the reconciler's state.
func (m appModel) removeSavedCmd() tea.Cmd {
	var id string
	kind := m.savedTab
	if kind == store.KindOutfits {
		if row, ok := m.outfitsList.SelectedItem().(likedOutfitRow); ok {
			id = row.o.OutfitID
		}
	} else {
		if row, ok := m.itemsList.SelectedItem().(likedItemRow); ok {
			id = row.it.ItemID
		}
	}
	if id == "" {
		return nil
	}
	r := m.rec
	return func() tea.Msg {
		_ = r.Remove(context.Background(), id, kind)
		col, _ := r.Collection()
		return savedLoadedMsg{col: col}
	}
}

func (m appModel) renderSaved() string {
	if m.savedErr != nil {
		if session.IsMissingUser(m.savedErr) {
			return lipgloss.NewStyle().Foreground(colorNegative).
				Render("Sign in to see your fits (styleswipe signin --name <you>)")
		}
		return lipgloss.NewStyle().Foreground(colorNegative).Render("Couldn't load your fits") +
			"\n" + styleMuted().Render("press r to retry")
	}

	tab := func(label string, k store.EntityKind) string {
		if m.savedTab == k {
			return lipgloss.NewStyle().Bold(true).
				Foreground(colorAccentFg).Background(colorAccent).Padding(0, 1).Render(label)
		}
		return styleMuted().Background(colorControlBg).Padding(0, 1).Render(label)
	}
	tabs := tab("Items", store.KindItems) + " " + tab("Outfits", store.KindOutfits)

	var body string
	if m.savedTab == store.KindOutfits {
		body = m.outfitsList.View()
	} else {
		body = m.itemsList.View()
	}
	return lipgloss.JoinVertical(lipgloss.Left, tabs, body)
}

package tui

import (
	"context"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"styleswipe/internal/catalog"
	"styleswipe/internal/model"
	"styleswipe/internal/store"
)

type labelOption struct {
	kind  model.ApparelKind
	label string
	on    bool
}

// filterForm stages filter edits. Nothing touches the deck until apply;
// cancel discards every change. Apply replaces the criteria wholesale.
type filterForm struct {
	min    textinput.Model
	max    textinput.Model
	isNew  bool
	labels []labelOption

	// cursor: 0 min, 1 max, 2 what's-new toggle, 3.. label toggles.
	cursor int
}

func newFilterForm(f model.FilterCriteria) *filterForm {
	ff := &filterForm{isNew: f.IsNew}

	ff.min = textinput.New()
	ff.min.Placeholder = "any"
	ff.min.CharLimit = 8
	ff.min.Width = 10
	ff.min.SetValue(f.MinPrice)
	ff.min.Focus()

	ff.max = textinput.New()
	ff.max.Placeholder = "any"
	ff.max.CharLimit = 8
	ff.max.Width = 10
	ff.max.SetValue(f.MaxPrice)

	ff.labels = buildLabelOptions(f)
	return ff
}

func buildLabelOptions(f model.FilterCriteria) []labelOption {
	var out []labelOption
	for _, kind := range []model.ApparelKind{model.ApparelTops, model.ApparelBottoms, model.ApparelFootwear} {
		selected := map[string]bool{}
		for _, l := range f.Labels(kind) {
			selected[l] = true
		}
		for _, l := range catalog.Labels(kind, f.IsNew) {
			out = append(out, labelOption{kind: kind, label: l, on: selected[l]})
		}
	}
	return out
}

// criteria builds the staged FilterCriteria. No checked labels in a kind
// means no restriction for that kind.
func (ff *filterForm) criteria() model.FilterCriteria {
	f := model.FilterCriteria{
		MinPrice: strings.TrimSpace(ff.min.Value()),
		MaxPrice: strings.TrimSpace(ff.max.Value()),
		IsNew:    ff.isNew,
	}
	for _, o := range ff.labels {
		if !o.on {
			continue
		}
		switch o.kind {
		case model.ApparelTops:
			f.Tops = append(f.Tops, o.label)
		case model.ApparelBottoms:
			f.Bottoms = append(f.Bottoms, o.label)
		case model.ApparelFootwear:
			f.Footwear = append(f.Footwear, o.label)
		}
	}
	return f
}

func (ff *filterForm) moveCursor(delta int) {
	ff.cursor += delta
	max := 2 + len(ff.labels)
	if ff.cursor < 0 {
		ff.cursor = 0
	}
	if ff.cursor > max {
		ff.cursor = max
	}
	if ff.cursor == 0 {
		ff.min.Focus()
	} else {
		ff.min.Blur()
	}
	if ff.cursor == 1 {
		ff.max.Focus()
	} else {
		ff.max.Blur()
	}
}

func (ff *filterForm) toggle() {
	switch {
	case ff.cursor == 2:
		// Switching trees invalidates the label set; selections reset.
		ff.isNew = !ff.isNew
		ff.labels = buildLabelOptions(model.FilterCriteria{IsNew: ff.isNew})
	case ff.cursor >= 3:
		i := ff.cursor - 3
		if i < len(ff.labels) {
			ff.labels[i].on = !ff.labels[i].on
		}
	}
}

func (m appModel) updateFilterForm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	ff := m.filterForm
	switch msg.String() {
	case "esc":
		m.filterForm = nil
		return m, nil
	case "enter":
		f := ff.criteria()
		m.filterForm = nil
		return m, m.applyFilterCmd(f)
	case "up", "shift+tab":
		ff.moveCursor(-1)
		return m, nil
	case "down":
		ff.moveCursor(1)
		return m, nil
	case " ":
		if ff.cursor >= 2 {
			ff.toggle()
			return m, nil
		}
	case "ctrl+c":
		m.persistTUIState()
		return m, tea.Quit
	}

	var cmd tea.Cmd
	switch ff.cursor {
	case 0:
		ff.min, cmd = ff.min.Update(msg)
	case 1:
		ff.max, cmd = ff.max.Update(msg)
	}
	return m, cmd
}

// applyFilterCmd persists the criteria and resets the deck under them. Any
// in-flight fetch from the previous filter resolves into the void.
func (m appModel) applyFilterCmd(f model.FilterCriteria) tea.Cmd {
	d := m.deck
	return func() tea.Msg {
		if cfg, err := store.LoadConfig(); err == nil {
			cfg.Filter = &f
			_ = store.SaveConfig(cfg)
		}
		_ = d.SetFilter(context.Background(), f)
		return nil
	}
}

func (ff *filterForm) render(width int) string {
	mark := func(idx int) string {
		if ff.cursor == idx {
			return lipgloss.NewStyle().Foreground(colorAccent).Render("› ")
		}
		return "  "
	}
	check := func(on bool) string {
		if on {
			return "[x] "
		}
		return "[ ] "
	}

	var b strings.Builder
	b.WriteString(lipgloss.NewStyle().Bold(true).Render("Filters"))
	b.WriteString("\n\n")
	b.WriteString(mark(0) + "Min price  " + ff.min.View() + "\n")
	b.WriteString(mark(1) + "Max price  " + ff.max.View() + "\n")
	b.WriteString(mark(2) + check(ff.isNew) + "Just In only\n")

	var lastKind model.ApparelKind
	for i, o := range ff.labels {
		if o.kind != lastKind {
			lastKind = o.kind
			b.WriteString("\n" + styleMuted().Render(kindHeading(o.kind)) + "\n")
		}
		b.WriteString(mark(3+i) + check(o.on) + o.label + "\n")
	}

	return lipgloss.NewStyle().Padding(0, 1).MaxWidth(width).Render(b.String())
}

func kindHeading(k model.ApparelKind) string {
	s := string(k)
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

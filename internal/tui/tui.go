// Package tui is the interactive swipe client: three apparel slots, a saved
// collection and the trending feed, one bubbletea program.
package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"styleswipe/internal/deck"
	"styleswipe/internal/model"
	"styleswipe/internal/saved"
	"styleswipe/internal/store"
	"styleswipe/internal/trending"
)

// Run wires the state machines to a bubbletea program and blocks until the
// user quits.
func Run(deps Deps) error {
	applyThemeOverride()

	excl := store.OpenExclusions(deps.Dir)

	filter := model.FilterCriteria{}
	if cfg, err := store.LoadConfig(); err == nil && cfg.Filter != nil {
		filter = *cfg.Filter
	}

	d := deck.New(deps.Client, filter, deps.Log)
	rec := saved.NewReconciler(deps.Client, excl, deps.Session, deps.Log)
	feed := trending.NewFeed(deps.Client, deps.Session, deps.Log)

	// The dispatcher and the deck push into the program from goroutines;
	// the pointer is assigned before Run starts pumping messages.
	var prog *tea.Program
	disp := deck.NewDispatcher(d, deps.Client, deps.Session, deps.Log, func(n deck.Notice) {
		if prog != nil {
			prog.Send(noticeMsg{n: n})
		}
	})

	m := newAppModel(deps, d, disp, rec, feed)
	prog = tea.NewProgram(m, tea.WithAltScreen())
	d.SetOnChange(func() {
		prog.Send(deckChangedMsg{})
	})

	_, err := prog.Run()
	return err
}

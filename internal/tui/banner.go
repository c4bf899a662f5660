package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"styleswipe/internal/deck"
)

// bannerDuration is how long a confirmation stays visible. Short enough to
// keep up with rapid swiping.
const bannerDuration = time.Second

type bannerExpiredMsg struct{ seq int }

// banner is the transient confirmation overlay. At most one is visible; a
// new request replaces the current one immediately (no queueing). The seq
// guard makes a superseded banner's expiry tick a no-op, so the replacement
// gets its full duration.
type banner struct {
	text    string
	kind    deck.NoticeKind
	seq     int
	visible bool
}

// show replaces any visible banner and arms its expiry tick.
func (b *banner) show(n deck.Notice) tea.Cmd {
	b.seq++
	b.text = n.Text
	b.kind = n.Kind
	b.visible = true
	seq := b.seq
	return tea.Tick(bannerDuration, func(time.Time) tea.Msg {
		return bannerExpiredMsg{seq: seq}
	})
}

// expire hides the banner if msg belongs to the currently visible one.
func (b *banner) expire(msg bannerExpiredMsg) {
	if msg.seq == b.seq {
		b.visible = false
	}
}

func (b banner) render(width int) string {
	if !b.visible {
		return ""
	}
	fg := colorAccentFg
	bg := colorAccent
	switch b.kind {
	case deck.NoticeFailed, deck.NoticeNotReady:
		bg = colorNegative
	case deck.NoticeLiked, deck.NoticeOutfitCreated:
		bg = colorPositive
	}
	st := lipgloss.NewStyle().
		Foreground(fg).
		Background(bg).
		Bold(true).
		Padding(0, 2)
	return lipgloss.PlaceHorizontal(width, lipgloss.Center, st.Render(b.text))
}

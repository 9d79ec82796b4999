package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/nathoo/nordicgrid/engine"
	"github.com/nathoo/nordicgrid/engine/state"
)

// phaseHint tells the player what the game is waiting for.
func (m Model) phaseHint() string {
	switch {
	case m.finished:
		return "Campaign complete"
	case m.engine().Phase() == engine.AwaitingMoveTarget:
		return "Pick a destination (esc cancels)"
	case m.engine().State.Hand.Len() == 0:
		return "No cards left, /load to retry"
	default:
		return "Play a card"
	}
}

// renderStatusBar produces a full-width inverted status line showing the
// level, what to do next, chests left and the turn count.
func (m Model) renderStatusBar() string {
	s := m.engine().State

	left := fmt.Sprintf(" %d/%d %s | %s",
		m.campaign.Index()+1, len(m.campaign.Levels), s.Level.Name, m.phaseHint())
	right := fmt.Sprintf("Chests: %d | T:%d ", state.ChestsLeft(s), s.TurnCount)

	gap := m.width - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 0 {
		gap = 0
	}

	bar := left + strings.Repeat(" ", gap) + right
	return styleStatusBar.Width(m.width).Render(bar)
}

package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/nathoo/nordicgrid/engine"
	"github.com/nathoo/nordicgrid/engine/explainer"
	"github.com/nathoo/nordicgrid/types"
)

// Screen geometry of the play area. The title is row 0, the column header
// row 1, grid rows start at row 2 and the hand follows the last grid row.
const (
	boardTop   = 2
	cellWidth  = 3
	cardWidth  = 10
	cardStride = cardWidth + 1
)

// cellAt maps a screen position to a grid coordinate.
func cellAt(x, y, size int) (types.Coord, bool) {
	col := x - cellWidth // row labels take the first cell
	row := y - boardTop
	if col < 0 || row < 0 {
		return types.Coord{}, false
	}
	c := types.Coord{X: col / cellWidth, Y: row}
	if c.X >= size || c.Y >= size {
		return types.Coord{}, false
	}
	return c, true
}

// cardAt maps a screen position to a hand index.
func cardAt(x, y, size, handLen int) (int, bool) {
	if y != boardTop+size || x < 0 || x%cardStride >= cardWidth {
		return 0, false
	}
	i := x / cardStride
	if i >= handLen {
		return 0, false
	}
	return i, true
}

// renderBoard draws the grid with axis numbers. The cursor, if any, is the
// cell under the pointer.
func renderBoard(e *engine.Engine, cursor *types.Coord) string {
	size := e.State.Grid.Size()

	var b strings.Builder
	b.WriteString(strings.Repeat(" ", cellWidth))
	for x := 0; x < size; x++ {
		b.WriteString(styleAxis.Render(fmt.Sprintf("%*d", cellWidth, x)))
	}
	lines := []string{b.String()}

	for y := 0; y < size; y++ {
		b.Reset()
		b.WriteString(styleAxis.Render(fmt.Sprintf("%*d", cellWidth, y)))
		for x := 0; x < size; x++ {
			c := types.Coord{X: x, Y: y}
			glyph, style := cellLook(e, c)
			if cursor != nil && *cursor == c && e.IsTarget(c) {
				style = styleCursor
			}
			b.WriteString(strings.Repeat(" ", cellWidth-1))
			b.WriteString(style.Render(string(glyph)))
		}
		lines = append(lines, b.String())
	}
	return strings.Join(lines, "\n")
}

// cellLook picks the glyph and style of a cell. Move targets on trees and
// chests keep their glyph under the target background.
func cellLook(e *engine.Engine, c types.Coord) (rune, lipgloss.Style) {
	glyph := e.Glyph(c)
	var style lipgloss.Style
	switch glyph {
	case engine.GlyphPlayer:
		style = stylePlayer
	case engine.GlyphPlayerOnChest:
		style = stylePlayerOnChest
	case engine.GlyphTree:
		style = styleTree
	case engine.GlyphChest:
		style = styleChest
	case engine.GlyphTarget:
		return glyph, styleTarget
	default:
		style = styleEmpty
	}
	if e.IsTarget(c) {
		style = style.Background(targetBackground)
	}
	return glyph, style
}

// renderHand draws the hand on one row, one fixed-width card per slot.
func renderHand(e *engine.Engine) string {
	cards := e.State.Hand.Cards()
	if len(cards) == 0 {
		return styleHint.Render("Your hand is empty.")
	}
	selected, hasSel := e.State.Hand.Selected()
	pending, hasPending := e.Pending()

	parts := make([]string, len(cards))
	for i, c := range cards {
		style := styleCard
		switch {
		case hasPending && i == pending:
			style = styleCardPending
		case hasSel && i == selected:
			style = styleCardSelected
		}
		parts[i] = style.Width(cardWidth).MaxWidth(cardWidth).Render(fmt.Sprintf(" %d %s", i+1, c))
	}
	return strings.Join(parts, " ")
}

// renderExplainer draws the explanation panel, or "" when none is shown.
func renderExplainer(e *engine.Engine, width int) string {
	card, ok := e.State.Explainer.Current()
	if !ok {
		return ""
	}
	w := width - 4 // border and padding
	if w > 60 {
		w = 60
	}
	if w < 10 {
		w = 10
	}
	body := lipgloss.JoinVertical(lipgloss.Left,
		styleExplainerTitle.Render(explainer.Title(card)),
		wordWrap(explainer.Text(card), w),
		styleHint.Render("press c to close"),
	)
	return styleExplainer.Render(body)
}

package engine

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/nathoo/nordicgrid/types"
)

// Glyphs used by the text board. A move target on a tree or chest keeps the
// terrain glyph and gets GlyphTarget in the padding before it.
const (
	GlyphEmpty         = '.'
	GlyphTree          = 'T'
	GlyphChest         = 'C'
	GlyphPlayer        = '@'
	GlyphPlayerOnChest = '&'
	GlyphTarget        = '*'
)

// Board draws the grid as text, one line per row, with column and row
// numbers. Move targets are marked while a move is pending.
func (e *Engine) Board() []string {
	size := e.State.Grid.Size()

	var b strings.Builder
	b.WriteString("   ")
	for x := 0; x < size; x++ {
		fmt.Fprintf(&b, "%3d", x)
	}
	lines := []string{b.String()}

	for y := 0; y < size; y++ {
		b.Reset()
		fmt.Fprintf(&b, "%3d", y)
		for x := 0; x < size; x++ {
			c := types.Coord{X: x, Y: y}
			g := e.Glyph(c)
			mark := ' '
			if e.IsTarget(c) && g != GlyphTarget {
				mark = GlyphTarget
			}
			fmt.Fprintf(&b, " %c%c", mark, g)
		}
		lines = append(lines, b.String())
	}
	return lines
}

// Glyph returns the board glyph for c: the player (on a chest or not), then
// terrain, then an empty move target.
func (e *Engine) Glyph(c types.Coord) rune {
	t := e.State.Grid.Get(c)
	if c == e.State.Player.Position() {
		if t == types.TileChest {
			return GlyphPlayerOnChest
		}
		return GlyphPlayer
	}
	switch t {
	case types.TileTree:
		return GlyphTree
	case types.TileChest:
		return GlyphChest
	}
	if e.IsTarget(c) {
		return GlyphTarget
	}
	return GlyphEmpty
}

// HandLine lists the hand with 1-based numbers.
func (e *Engine) HandLine() string {
	cards := e.State.Hand.Cards()
	if len(cards) == 0 {
		return "Your hand is empty."
	}
	pending, ok := e.Pending()
	parts := make([]string, len(cards))
	for i, c := range cards {
		parts[i] = fmt.Sprintf("%d) %s", i+1, c)
		if ok && i == pending {
			parts[i] += " (pending)"
		}
	}
	return "Hand: " + strings.Join(parts, "  ")
}

// StatsLine shows the player's resources.
func (e *Engine) StatsLine() string {
	stats := e.State.Player.Stats()
	parts := make([]string, 0, types.NumResources)
	for _, r := range types.AllResources {
		parts = append(parts, r.String()+" "+strconv.FormatFloat(stats[r], 'f', -1, 64))
	}
	return strings.Join(parts, "  ")
}

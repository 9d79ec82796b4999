// Package state owns the mutable game session: the grid, the hand, the
// player and the explainer, built once from a compiled level.
package state

import (
	"github.com/nathoo/nordicgrid/engine/explainer"
	"github.com/nathoo/nordicgrid/engine/grid"
	"github.com/nathoo/nordicgrid/engine/hand"
	"github.com/nathoo/nordicgrid/engine/player"
	"github.com/nathoo/nordicgrid/types"
)

// Session is the complete mutable state of one level being played.
type Session struct {
	Level     *types.LevelDef
	Grid      *grid.Grid
	Hand      *hand.Hand
	Player    *player.Player
	Explainer *explainer.Explainer
	TurnCount int
	Complete  bool
}

// NewSession builds a fresh session from a level. The level's own baseline
// stats win over the given defaults.
func NewSession(def *types.LevelDef, defaults types.Stats) *Session {
	g := grid.New(def.Size)
	for y, row := range def.Terrain {
		for x, t := range row {
			g.Set(types.Coord{X: x, Y: y}, t)
		}
	}

	baseline := defaults
	if def.Baseline != nil {
		baseline = *def.Baseline
	}

	s := &Session{
		Level:     def,
		Grid:      g,
		Hand:      hand.New(def.Cards...),
		Player:    player.New(def.Size, def.Start, baseline),
		Explainer: &explainer.Explainer{},
	}
	if def.HasExplain {
		s.Explainer.Explain(def.Explain)
	}
	return s
}

// ChestsLeft returns the number of unopened chests.
func ChestsLeft(s *Session) int {
	return s.Grid.Count(types.TileChest)
}

// KeyReach returns c and the tiles touching it, in row-major order. A key
// used at c acts on all of them, including a chest the player stands on.
func KeyReach(s *Session, c types.Coord) []types.Coord {
	var result []types.Coord
	for dy := -1; dy <= 1; dy++ {
		for dx := -1; dx <= 1; dx++ {
			n := types.Coord{X: c.X + dx, Y: c.Y + dy}
			if s.Grid.Contains(n) {
				result = append(result, n)
			}
		}
	}
	return result
}

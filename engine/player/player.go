// Package player tracks the player's grid position and resources.
package player

import (
	"fmt"

	"github.com/nathoo/nordicgrid/types"
)

// Player is the player token on a grid of a fixed size.
type Player struct {
	pos      types.Coord
	gridSize int
	stats    types.Stats
}

// New creates a player on a gridSize×gridSize grid at start (clamped) with
// the given starting resources.
func New(gridSize int, start types.Coord, baseline types.Stats) *Player {
	if gridSize <= 0 {
		panic(fmt.Sprintf("player: invalid grid size %d", gridSize))
	}
	p := &Player{gridSize: gridSize, stats: baseline}
	p.SetPosition(start)
	return p
}

// Position returns the player's grid coordinate.
func (p *Player) Position() types.Coord {
	return p.pos
}

// SetPosition moves the player, clamping c into the grid. It never fails.
func (p *Player) SetPosition(c types.Coord) {
	p.pos = types.Coord{
		X: clamp(c.X, 0, p.gridSize-1),
		Y: clamp(c.Y, 0, p.gridSize-1),
	}
}

// Adjust adds delta to resource r and returns the new value.
func (p *Player) Adjust(r types.Resource, delta float64) float64 {
	i := index(r)
	p.stats[i] += delta
	return p.stats[i]
}

// Stat returns the current value of resource r.
func (p *Player) Stat(r types.Resource) float64 {
	return p.stats[index(r)]
}

// Stats returns a copy of all resources.
func (p *Player) Stats() types.Stats {
	return p.stats
}

func index(r types.Resource) int {
	if int(r) >= types.NumResources {
		panic(fmt.Sprintf("player: unknown resource %d", uint8(r)))
	}
	return int(r)
}

func clamp(v, lo, hi int) int {
	return max(lo, min(v, hi))
}

// Package targeting computes where a Move card can take the player.
package targeting

import (
	"cmp"
	"slices"

	"github.com/zyedidia/generic/mapset"

	"github.com/nathoo/nordicgrid/types"
)

// Offsets is the movement reach of a Move card, relative to the player.
// It is a balance constant, not a geometric rule.
var Offsets = [...]types.Coord{
	{X: 0, Y: -2},
	{X: -1, Y: -1}, {X: 0, Y: -1}, {X: 1, Y: -1},
	{X: -2, Y: 0}, {X: -1, Y: 0}, {X: 1, Y: 0}, {X: 2, Y: 0},
	{X: -1, Y: 1}, {X: 0, Y: 1}, {X: 1, Y: 1},
	{X: 0, Y: 2},
}

// Targets is a set of legal destinations.
type Targets = mapset.Set[types.Coord]

// Compute returns every origin+offset that lies inside a size×size grid.
func Compute(origin types.Coord, size int) Targets {
	targets := mapset.New[types.Coord]()
	for _, o := range Offsets {
		c := origin.Add(o)
		if c.X >= 0 && c.X < size && c.Y >= 0 && c.Y < size {
			targets.Put(c)
		}
	}
	return targets
}

// IsValid reports whether candidate is one of targets.
func IsValid(targets Targets, candidate types.Coord) bool {
	return targets.Has(candidate)
}

// Sorted returns the targets in row-major order.
func Sorted(targets Targets) []types.Coord {
	out := make([]types.Coord, 0, targets.Size())
	targets.Each(func(c types.Coord) {
		out = append(out, c)
	})
	slices.SortFunc(out, func(a, b types.Coord) int {
		if n := cmp.Compare(a.Y, b.Y); n != 0 {
			return n
		}
		return cmp.Compare(a.X, b.X)
	})
	return out
}

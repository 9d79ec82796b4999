// Package grid holds the square terrain grid of a level.
package grid

import (
	"fmt"

	"github.com/nathoo/nordicgrid/types"
)

// Grid is a square size×size array of tile states. The zero tile is
// TileEmpty. A Grid is not safe for concurrent use.
type Grid struct {
	size  int
	tiles []types.TileState
}

// New creates an empty grid with the given side length.
func New(size int) *Grid {
	if size <= 0 {
		panic(fmt.Sprintf("grid: invalid size %d", size))
	}
	return &Grid{
		size:  size,
		tiles: make([]types.TileState, size*size),
	}
}

// Size returns the side length of the grid.
func (g *Grid) Size() int {
	return g.size
}

// Contains reports whether c lies inside the grid.
func (g *Grid) Contains(c types.Coord) bool {
	return c.X >= 0 && c.X < g.size && c.Y >= 0 && c.Y < g.size
}

// Set writes the tile state at c. Panics if c is outside the grid.
func (g *Grid) Set(c types.Coord, t types.TileState) {
	g.tiles[g.index(c)] = t
}

// Get returns the tile state at c. Panics if c is outside the grid.
// Callers bounds-check with Contains first.
func (g *Grid) Get(c types.Coord) types.TileState {
	return g.tiles[g.index(c)]
}

// Count returns how many tiles hold t.
func (g *Grid) Count(t types.TileState) int {
	n := 0
	for _, v := range g.tiles {
		if v == t {
			n++
		}
	}
	return n
}

// Find returns the coordinates of every tile holding t, in row-major order.
func (g *Grid) Find(t types.TileState) []types.Coord {
	var result []types.Coord
	for i, v := range g.tiles {
		if v == t {
			result = append(result, types.Coord{X: i % g.size, Y: i / g.size})
		}
	}
	return result
}

// Rows returns a copy of the grid as rows, Rows()[y][x].
func (g *Grid) Rows() [][]types.TileState {
	rows := make([][]types.TileState, g.size)
	for y := range rows {
		rows[y] = make([]types.TileState, g.size)
		copy(rows[y], g.tiles[y*g.size:(y+1)*g.size])
	}
	return rows
}

func (g *Grid) index(c types.Coord) int {
	if !g.Contains(c) {
		panic(fmt.Sprintf("grid: coordinate %s outside %dx%d grid", c, g.size, g.size))
	}
	return c.Y*g.size + c.X
}

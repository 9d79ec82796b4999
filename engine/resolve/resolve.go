// Package resolve maps command arguments to hand indexes and grid
// coordinates.
package resolve

import (
	"fmt"
	"strconv"

	"github.com/nathoo/nordicgrid/engine/hand"
	"github.com/nathoo/nordicgrid/types"
)

// NotFoundError indicates no card matched an argument.
type NotFoundError struct {
	Name string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("you don't hold a %q card", e.Name)
}

// RangeError indicates a number outside the allowed range.
type RangeError struct {
	What  string
	Value int
	Max   int
}

func (e *RangeError) Error() string {
	return fmt.Sprintf("%s %d is out of range (1-%d)", e.What, e.Value, e.Max)
}

// Card resolves a card argument to a hand index. The argument is either a
// 1-based position in the hand or a card name, in which case the first card
// of that type is used.
func Card(h *hand.Hand, arg string) (int, error) {
	if arg == "" {
		return 0, fmt.Errorf("play which card?")
	}
	if n, err := strconv.Atoi(arg); err == nil {
		if n < 1 || n > h.Len() {
			return 0, &RangeError{What: "card", Value: n, Max: h.Len()}
		}
		return n - 1, nil
	}
	c, ok := types.ParseCardType(arg)
	if !ok {
		return 0, &NotFoundError{Name: arg}
	}
	i := h.IndexOf(c)
	if i < 0 {
		return 0, &NotFoundError{Name: arg}
	}
	return i, nil
}

// Coord resolves "x y" arguments to a coordinate inside a size×size grid.
func Coord(args []string, size int) (types.Coord, error) {
	if len(args) != 2 {
		return types.Coord{}, fmt.Errorf("go where? give a column and a row, e.g. \"go 2 3\"")
	}
	x, err := strconv.Atoi(args[0])
	if err != nil {
		return types.Coord{}, fmt.Errorf("%q is not a column number", args[0])
	}
	y, err := strconv.Atoi(args[1])
	if err != nil {
		return types.Coord{}, fmt.Errorf("%q is not a row number", args[1])
	}
	c := types.Coord{X: x, Y: y}
	if x < 0 || x >= size || y < 0 || y >= size {
		return types.Coord{}, fmt.Errorf("%s is outside the %dx%d grid", c, size, size)
	}
	return c, nil
}

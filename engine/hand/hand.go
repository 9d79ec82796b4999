// Package hand holds the player's ordered cards and the current selection.
package hand

import (
	"fmt"

	"github.com/nathoo/nordicgrid/types"
)

// Hand is an ordered sequence of cards. Order is display order only.
// Duplicates are allowed and there is no size limit.
type Hand struct {
	cards    []types.CardType
	selected int // -1 = nothing selected
}

// New creates a hand holding the given cards in order.
func New(cards ...types.CardType) *Hand {
	h := &Hand{selected: -1}
	h.cards = append(h.cards, cards...)
	return h
}

// Add appends a card to the end of the hand.
func (h *Hand) Add(c types.CardType) {
	h.cards = append(h.cards, c)
}

// Len returns the number of cards held.
func (h *Hand) Len() int {
	return len(h.cards)
}

// At returns the card at index i. Panics if i is out of range.
func (h *Hand) At(i int) types.CardType {
	h.check(i)
	return h.cards[i]
}

// RemoveAt removes and returns the card at index i. Panics if i is out of
// range. The selection keeps following the same card; it is cleared when the
// selected card itself is removed.
func (h *Hand) RemoveAt(i int) types.CardType {
	h.check(i)
	c := h.cards[i]
	h.cards = append(h.cards[:i], h.cards[i+1:]...)

	switch {
	case h.selected == i:
		h.selected = -1
	case h.selected > i:
		h.selected--
	}
	return c
}

// Cards returns a copy of the cards in insertion order.
func (h *Hand) Cards() []types.CardType {
	out := make([]types.CardType, len(h.cards))
	copy(out, h.cards)
	return out
}

// IndexOf returns the index of the first card of type c, or -1.
func (h *Hand) IndexOf(c types.CardType) int {
	for i, v := range h.cards {
		if v == c {
			return i
		}
	}
	return -1
}

// Select marks the card at index i as selected. Panics if i is out of range.
func (h *Hand) Select(i int) {
	h.check(i)
	h.selected = i
}

// Selected returns the selected index, if any.
func (h *Hand) Selected() (int, bool) {
	return h.selected, h.selected >= 0
}

// ClearSelection deselects any card.
func (h *Hand) ClearSelection() {
	h.selected = -1
}

func (h *Hand) check(i int) {
	if i < 0 || i >= len(h.cards) {
		panic(fmt.Sprintf("hand: index %d out of range [0,%d)", i, len(h.cards)))
	}
}

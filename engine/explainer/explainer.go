// Package explainer shows a one-time explanation for each card type.
package explainer

import "github.com/nathoo/nordicgrid/types"

var titles = [types.NumCardTypes]string{
	types.CardMove:   "MOVE",
	types.CardArmor:  "ARMOR",
	types.CardHealth: "HEALTH",
	types.CardKey:    "KEY",
}

var texts = [types.NumCardTypes]string{
	types.CardMove:   "The MOVE card moves you to another field in your range. Use it to get closer to a chest.",
	types.CardArmor:  "The ARMOR card raises your armor by one.",
	types.CardHealth: "The HEALTH card restores one point of health.",
	types.CardKey:    "The KEY card opens any chest under or touching the player. Open every chest to advance to the next level.",
}

// Explainer remembers which card types were already explained and which
// explanation, if any, is on screen.
type Explainer struct {
	explained [types.NumCardTypes]bool
	showing   bool
	current   types.CardType
}

// Explain shows the explanation for c unless it was shown before.
// Returns true if it is shown now.
func (x *Explainer) Explain(c types.CardType) bool {
	if x.explained[c] {
		return false
	}
	x.explained[c] = true
	x.current = c
	x.showing = true
	return true
}

// Explained reports whether c has been explained.
func (x *Explainer) Explained(c types.CardType) bool {
	return x.explained[c]
}

// Current returns the explanation on screen.
func (x *Explainer) Current() (types.CardType, bool) {
	return x.current, x.showing
}

// Dismiss closes the explanation on screen.
func (x *Explainer) Dismiss() {
	x.showing = false
}

// MarkExplained records c as explained without showing it. Used on restore.
func (x *Explainer) MarkExplained(c types.CardType) {
	x.explained[c] = true
}

// Title returns the heading for a card type's explanation.
func Title(c types.CardType) string {
	return titles[c]
}

// Text returns the explanation of a card type.
func Text(c types.CardType) string {
	return texts[c]
}

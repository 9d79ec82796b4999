// Package events implements single-pass event handler dispatch.
// Event handlers produce additional effects but do not recurse.
package events

import (
	"fmt"

	"github.com/nathoo/nordicgrid/engine/effects"
	"github.com/nathoo/nordicgrid/engine/state"
	"github.com/nathoo/nordicgrid/types"
)

// Handler reacts to one event type by returning follow-up effects.
type Handler struct {
	EventType string
	Handle    func(ev types.Event, s *state.Session) []types.Effect
}

// Dispatch runs handlers against the emitted events. Single pass,
// no recursion. Returns additional effects produced by matching handlers.
func Dispatch(evts []types.Event, s *state.Session, handlers []Handler) []types.Effect {
	var result []types.Effect

	for _, ev := range evts {
		for _, h := range handlers {
			if h.EventType != ev.Type {
				continue
			}
			result = append(result, h.Handle(ev, s)...)
		}
	}

	return result
}

// Defaults returns the built-in handlers: explain a card type the first
// time it is played, narrate keys, and complete the level once the last
// chest opens.
func Defaults() []Handler {
	return []Handler{
		{EventType: "card_activated", Handle: explainOnFirstUse},
		{EventType: "chest_opened", Handle: narrateChest},
		{EventType: "chest_opened", Handle: completeWhenNoChests},
		{EventType: "key_unused", Handle: narrateUnusedKey},
	}
}

func narrateChest(ev types.Event, _ *state.Session) []types.Effect {
	at, _ := ev.Data["at"].(types.Coord)
	return []types.Effect{effects.Say(fmt.Sprintf("You open the chest at %s.", at))}
}

func narrateUnusedKey(types.Event, *state.Session) []types.Effect {
	return []types.Effect{effects.Say("The key fits no lock here.")}
}

func explainOnFirstUse(ev types.Event, s *state.Session) []types.Effect {
	card, ok := ev.Data["card"].(types.CardType)
	if !ok || s.Explainer.Explained(card) {
		return nil
	}
	return []types.Effect{effects.Explain(card)}
}

func completeWhenNoChests(_ types.Event, s *state.Session) []types.Effect {
	if s.Complete || state.ChestsLeft(s) > 0 {
		return nil
	}
	return []types.Effect{effects.CompleteLevel()}
}

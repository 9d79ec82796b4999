// Package effects implements centralized state mutation via the Apply function.
// Every effect type is one atomic operation. No logic in effects.
package effects

import (
	"fmt"
	"strconv"

	"github.com/nathoo/nordicgrid/engine/explainer"
	"github.com/nathoo/nordicgrid/engine/state"
	"github.com/nathoo/nordicgrid/types"
)

// KeyUser is notified when a Key card is used at the player's position.
type KeyUser interface {
	UseKey(at types.Coord)
}

// Context carries what the effects of one activation need besides the session.
type Context struct {
	Card types.CardType
	Keys KeyUser // may be nil
}

// Effect constructors keep param names in one place.

func Say(text string) types.Effect {
	return types.Effect{Type: "say", Params: map[string]any{"text": text}}
}

func AdjustStat(r types.Resource, delta float64) types.Effect {
	return types.Effect{Type: "adjust_stat", Params: map[string]any{"resource": r, "delta": delta}}
}

func MovePlayer(to types.Coord) types.Effect {
	return types.Effect{Type: "move_player", Params: map[string]any{"to": to}}
}

func RemoveCard(index int) types.Effect {
	return types.Effect{Type: "remove_card", Params: map[string]any{"index": index}}
}

func UseKey() types.Effect {
	return types.Effect{Type: "use_key"}
}

func Explain(c types.CardType) types.Effect {
	return types.Effect{Type: "explain", Params: map[string]any{"card": c}}
}

func CompleteLevel() types.Effect {
	return types.Effect{Type: "complete_level"}
}

// Apply applies a list of effects to the session, mutating it.
// Returns events emitted and output text collected.
func Apply(s *state.Session, effects []types.Effect, ctx Context) ([]types.Event, []string) {
	var events []types.Event
	var output []string

	for _, eff := range effects {
		switch eff.Type {
		case "say":
			text, _ := eff.Params["text"].(string)
			output = append(output, text)

		case "adjust_stat":
			r, _ := eff.Params["resource"].(types.Resource)
			delta, _ := eff.Params["delta"].(float64)
			value := s.Player.Adjust(r, delta)
			events = append(events, types.Event{
				Type: "stat_changed",
				Data: map[string]any{"resource": r, "delta": delta, "value": value},
			})
			output = append(output, fmt.Sprintf("%s is now %s.", r, formatStat(value)))

		case "move_player":
			to, _ := eff.Params["to"].(types.Coord)
			from := s.Player.Position()
			s.Player.SetPosition(to)
			events = append(events, types.Event{
				Type: "player_moved",
				Data: map[string]any{"from": from, "to": s.Player.Position()},
			})
			output = append(output, fmt.Sprintf("You move to %s.", s.Player.Position()))

		case "remove_card":
			index, _ := eff.Params["index"].(int)
			card := s.Hand.RemoveAt(index)
			events = append(events, types.Event{
				Type: "card_removed",
				Data: map[string]any{"card": card, "index": index},
			})

		case "use_key":
			at := s.Player.Position()
			if ctx.Keys != nil {
				ctx.Keys.UseKey(at)
			}
			events = append(events, types.Event{
				Type: "key_used",
				Data: map[string]any{"at": at},
			})

		case "explain":
			card, _ := eff.Params["card"].(types.CardType)
			if s.Explainer.Explain(card) {
				output = append(output, explainer.Title(card)+": "+explainer.Text(card))
				events = append(events, types.Event{
					Type: "card_explained",
					Data: map[string]any{"card": card},
				})
			}

		case "complete_level":
			if s.Complete {
				continue
			}
			s.Complete = true
			events = append(events, types.Event{
				Type: "level_complete",
				Data: map[string]any{"level": s.Level.Name, "turn": s.TurnCount},
			})
			output = append(output, "Every chest is open. Level complete!")

		default:
			panic(fmt.Sprintf("effects: unknown effect type %q", eff.Type))
		}
	}

	return events, output
}

// formatStat prints whole values without a fractional part.
func formatStat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

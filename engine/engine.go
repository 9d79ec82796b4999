// Package engine provides the turn controller that wires together the
// session, move targeting, effects and events into card activations and
// move confirmations.
package engine

import (
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/nathoo/nordicgrid/engine/chest"
	"github.com/nathoo/nordicgrid/engine/effects"
	"github.com/nathoo/nordicgrid/engine/events"
	"github.com/nathoo/nordicgrid/engine/hand"
	"github.com/nathoo/nordicgrid/engine/state"
	"github.com/nathoo/nordicgrid/engine/targeting"
	"github.com/nathoo/nordicgrid/types"
)

// Phase is the state of the turn controller.
type Phase int

const (
	// Idle: no move is pending.
	Idle Phase = iota
	// AwaitingMoveTarget: a Move card was activated and a destination
	// must be confirmed.
	AwaitingMoveTarget
)

func (p Phase) String() string {
	switch p {
	case Idle:
		return "idle"
	case AwaitingMoveTarget:
		return "awaiting move target"
	default:
		return fmt.Sprintf("phase(%d)", int(p))
	}
}

// Bonuses is how much an Armor or Health card raises its resource.
type Bonuses struct {
	Armor  float64
	Health float64
}

// DefaultBaseline is used when neither the level nor the caller sets stats.
var DefaultBaseline = types.Stats{types.Attack: 1, types.Armor: 0, types.Health: 1}

// DefaultBonuses is one point per card.
var DefaultBonuses = Bonuses{Armor: 1, Health: 1}

// Option configures an Engine.
type Option func(*Engine)

// WithLogger sets the structured logger. The default discards everything.
func WithLogger(l *zap.Logger) Option {
	return func(e *Engine) { e.log = l }
}

// WithKeyUser replaces the chest opener as the Key card collaborator.
func WithKeyUser(k effects.KeyUser) Option {
	return func(e *Engine) { e.keys = k }
}

// WithBaseline sets the starting stats for levels that do not define them.
func WithBaseline(s types.Stats) Option {
	return func(e *Engine) { e.baseline = s }
}

// WithBonuses sets the Armor and Health card bonuses.
func WithBonuses(b Bonuses) Option {
	return func(e *Engine) { e.bonuses = b }
}

// WithShuffle deals each level's cards in an order drawn from seed instead
// of the order the level lists them.
func WithShuffle(seed int64) Option {
	return func(e *Engine) { e.rng = NewRNG(seed) }
}

// WithHandlers adds event handlers after the built-in ones.
func WithHandlers(h ...events.Handler) Option {
	return func(e *Engine) { e.extra = append(e.extra, h...) }
}

// Engine holds the session and the pending-move state machine.
// It is driven from a single goroutine.
type Engine struct {
	State *state.Session

	log      *zap.Logger
	keys     effects.KeyUser
	baseline types.Stats
	bonuses  Bonuses
	extra    []events.Handler
	handlers []events.Handler
	rng      *RNG

	phase   Phase
	targets targeting.Targets
	pending int // hand index of the Move card awaiting confirmation

	emitted []types.Event // events reported by the key collaborator
}

// New creates an engine with a fresh session for the level.
func New(def *types.LevelDef, opts ...Option) *Engine {
	e := &Engine{
		log:      zap.NewNop(),
		baseline: DefaultBaseline,
		bonuses:  DefaultBonuses,
		pending:  -1,
	}
	for _, opt := range opts {
		opt(e)
	}
	e.handlers = append(events.Defaults(), e.extra...)
	e.State = state.NewSession(def, e.baseline)
	if e.keys == nil {
		e.keys = chest.NewOpener(e.State, e.collect)
	}
	if e.rng != nil {
		cards := e.State.Hand.Cards()
		e.rng.Shuffle(cards)
		e.State.Hand = hand.New(cards...)
		e.log.Debug("hand shuffled", zap.Int64("seed", e.rng.Seed()))
	}

	e.log.Info("level started",
		zap.String("level", def.Name),
		zap.Int("size", def.Size),
		zap.Int("cards", len(def.Cards)),
		zap.Stringer("start", e.State.Player.Position()),
	)
	return e
}

// Phase returns the current controller state.
func (e *Engine) Phase() Phase {
	return e.phase
}

// Pending returns the hand index of the Move card awaiting confirmation.
func (e *Engine) Pending() (int, bool) {
	return e.pending, e.phase == AwaitingMoveTarget
}

// Targets returns the live move targets in row-major order, or nil when no
// move is pending.
func (e *Engine) Targets() []types.Coord {
	if e.phase != AwaitingMoveTarget {
		return nil
	}
	return targeting.Sorted(e.targets)
}

// IsTarget reports whether c is a legal destination for the pending move.
func (e *Engine) IsTarget(c types.Coord) bool {
	return e.phase == AwaitingMoveTarget && targeting.IsValid(e.targets, c)
}

// Complete reports whether every chest of the level has been opened.
func (e *Engine) Complete() bool {
	return e.State.Complete
}

// Activate plays the card at index. Panics if index is out of range.
//
// A Move card only opens a pending move; the card stays in the hand until a
// destination is confirmed. Activating the pending Move card again changes
// nothing, and another Move card takes over the pending move. Armor, Health
// and Key cards resolve without touching a pending move.
func (e *Engine) Activate(index int) types.Result {
	var result types.Result
	card := e.State.Hand.At(index)

	if e.phase == AwaitingMoveTarget && card == types.CardMove {
		if index == e.pending {
			result.Output = append(result.Output, e.destinationPrompt())
			return result
		}
		cancelled := e.Cancel()
		result.Events = append(result.Events, cancelled.Events...)
		result.Output = append(result.Output, cancelled.Output...)
	}

	e.log.Debug("card activated", zap.Int("index", index), zap.Stringer("card", card))

	activated := types.Event{
		Type: "card_activated",
		Data: map[string]any{"card": card, "index": index},
	}
	ctx := effects.Context{Card: card, Keys: e.keys}

	var effs []types.Effect
	switch card {
	case types.CardMove:
		e.targets = targeting.Compute(e.State.Player.Position(), e.State.Grid.Size())
		e.pending = index
		e.phase = AwaitingMoveTarget
		e.State.Hand.Select(index)
		result.Output = append(result.Output, e.destinationPrompt())
		pending := types.Event{
			Type: "move_pending",
			Data: map[string]any{"index": index, "targets": targeting.Sorted(e.targets)},
		}
		e.apply(&result, nil, ctx, activated, pending)
		return result

	case types.CardArmor:
		effs = []types.Effect{effects.AdjustStat(types.Armor, e.bonuses.Armor), effects.RemoveCard(index)}

	case types.CardHealth:
		effs = []types.Effect{effects.AdjustStat(types.Health, e.bonuses.Health), effects.RemoveCard(index)}

	case types.CardKey:
		effs = []types.Effect{effects.UseKey(), effects.RemoveCard(index)}

	default:
		panic(fmt.Sprintf("engine: unknown card type %d", uint8(card)))
	}

	e.apply(&result, effs, ctx, activated)
	if e.phase == AwaitingMoveTarget && index < e.pending {
		e.pending-- // the removed card sat before the pending Move card
	}
	e.State.TurnCount++
	return result
}

// Confirm chooses the destination of the pending move. A candidate outside
// the target set is ignored and the move stays pending.
func (e *Engine) Confirm(c types.Coord) types.Result {
	var result types.Result

	if e.phase != AwaitingMoveTarget {
		result.Output = append(result.Output, "No move is pending.")
		return result
	}
	if !targeting.IsValid(e.targets, c) {
		e.log.Debug("move target rejected", zap.Stringer("candidate", c))
		result.Output = append(result.Output, fmt.Sprintf("You can't move to %s.", c))
		return result
	}

	index := e.pending
	e.clearPending()
	e.log.Debug("move confirmed", zap.Stringer("to", c), zap.Int("index", index))

	effs := []types.Effect{effects.MovePlayer(c), effects.RemoveCard(index)}
	e.apply(&result, effs, effects.Context{Card: types.CardMove, Keys: e.keys})
	e.State.TurnCount++
	return result
}

// Cancel abandons the pending move. The Move card stays in the hand.
func (e *Engine) Cancel() types.Result {
	var result types.Result

	if e.phase != AwaitingMoveTarget {
		result.Output = append(result.Output, "No move is pending.")
		return result
	}

	index := e.pending
	e.clearPending()
	e.State.Hand.ClearSelection()
	e.log.Debug("move cancelled", zap.Int("index", index))

	result.Events = append(result.Events, types.Event{
		Type: "move_cancelled",
		Data: map[string]any{"index": index},
	})
	result.Output = append(result.Output, "Move cancelled.")
	return result
}

// Reset drops any pending move. Used after the session is replaced by a
// restored save.
func (e *Engine) Reset() {
	e.clearPending()
	e.State.Hand.ClearSelection()
}

// apply runs effects, then dispatches the resulting events once.
func (e *Engine) apply(result *types.Result, effs []types.Effect, ctx effects.Context, pre ...types.Event) {
	e.emitted = nil
	evts, output := effects.Apply(e.State, effs, ctx)
	evts = append(append(pre, evts...), e.drain()...)
	result.Effects = append(result.Effects, effs...)
	result.Events = append(result.Events, evts...)
	result.Output = append(result.Output, output...)

	// Single pass: events from handler effects are not re-dispatched.
	eventEffs := events.Dispatch(evts, e.State, e.handlers)
	if len(eventEffs) > 0 {
		evts2, output2 := effects.Apply(e.State, eventEffs, ctx)
		evts2 = append(evts2, e.drain()...)
		result.Effects = append(result.Effects, eventEffs...)
		result.Events = append(result.Events, evts2...)
		result.Output = append(result.Output, output2...)
	}

	for _, ev := range result.Events {
		if ev.Type == "level_complete" {
			e.log.Info("level complete",
				zap.String("level", e.State.Level.Name),
				zap.Int("turn", e.State.TurnCount),
			)
		}
	}
}

func (e *Engine) collect(ev types.Event) {
	e.emitted = append(e.emitted, ev)
}

func (e *Engine) drain() []types.Event {
	evts := e.emitted
	e.emitted = nil
	return evts
}

func (e *Engine) clearPending() {
	e.phase = Idle
	e.pending = -1
	e.targets = targeting.Targets{}
}

func (e *Engine) destinationPrompt() string {
	targets := targeting.Sorted(e.targets)
	if len(targets) == 0 {
		return "There is nowhere to move. Cancel the move to continue."
	}
	names := make([]string, len(targets))
	for i, c := range targets {
		names[i] = c.String()
	}
	return "Choose a destination: " + strings.Join(names, " ") + "."
}

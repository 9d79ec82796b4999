package engine

import (
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/nathoo/nordicgrid/engine/explainer"
	"github.com/nathoo/nordicgrid/engine/parser"
	"github.com/nathoo/nordicgrid/engine/resolve"
	"github.com/nathoo/nordicgrid/types"
)

// Step runs one text command and returns what happened. Game moves go
// through Activate, Confirm and Cancel; the other verbs only report state.
func (e *Engine) Step(input string) types.Result {
	intent := parser.Parse(input)
	e.log.Debug("command parsed", zap.String("verb", intent.Verb), zap.Strings("args", intent.Args))

	switch intent.Verb {
	case "":
		return say("Type a command, or /help for a list.")

	case "play":
		index, err := resolve.Card(e.State.Hand, firstArg(intent.Args))
		if err != nil {
			return say(sentence(err.Error()))
		}
		return e.Activate(index)

	case "go":
		if e.phase != AwaitingMoveTarget {
			return say("No move is pending. Play a Move card first.")
		}
		c, err := resolve.Coord(intent.Args, e.State.Grid.Size())
		if err != nil {
			return say(sentence(err.Error()))
		}
		return e.Confirm(c)

	case "cancel":
		return e.Cancel()

	case "look":
		return types.Result{Output: append(e.Board(), e.HandLine(), e.StatsLine())}

	case "hand":
		return say(e.HandLine())

	case "targets":
		if e.phase != AwaitingMoveTarget {
			return say("No move is pending.")
		}
		return say(e.destinationPrompt())

	case "stats":
		return say(e.StatsLine())

	case "explain":
		return e.explain(firstArg(intent.Args))

	case "dismiss":
		if _, ok := e.State.Explainer.Current(); !ok {
			return say("Nothing to close.")
		}
		e.State.Explainer.Dismiss()
		return types.Result{}

	default:
		return say(fmt.Sprintf("I don't know how to %q.", intent.Verb))
	}
}

func (e *Engine) explain(arg string) types.Result {
	if arg == "" {
		c, ok := e.State.Explainer.Current()
		if !ok {
			return say("Explain which card? Try \"explain move\".")
		}
		return say(explainer.Title(c) + ": " + explainer.Text(c))
	}
	c, ok := types.ParseCardType(arg)
	if !ok {
		return say(fmt.Sprintf("There is no %q card.", arg))
	}
	return say(explainer.Title(c) + ": " + explainer.Text(c))
}

func say(lines ...string) types.Result {
	return types.Result{Output: lines}
}

func firstArg(args []string) string {
	if len(args) == 0 {
		return ""
	}
	return args[0]
}

// sentence capitalizes an error message for display.
func sentence(s string) string {
	if s == "" {
		return s
	}
	s = strings.ToUpper(s[:1]) + s[1:]
	if strings.HasSuffix(s, "?") {
		return s
	}
	return s + "."
}

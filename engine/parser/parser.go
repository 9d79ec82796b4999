// Package parser converts command strings into Intent structs.
// Intentionally dumb: no NLP, just pattern matching.
package parser

import (
	"strings"

	"github.com/nathoo/nordicgrid/types"
)

var verbAliases = map[string]string{
	// Play a card
	"p":        "play",
	"use":      "play",
	"activate": "play",

	// Confirm a move destination
	"g":       "go",
	"to":      "go",
	"walk":    "go",
	"move":    "go",
	"confirm": "go",

	// Cancel a pending move
	"c":     "cancel",
	"back":  "cancel",
	"abort": "cancel",

	// Views
	"l":      "look",
	"map":    "look",
	"h":      "hand",
	"cards":  "hand",
	"i":      "hand",
	"t":      "targets",
	"range":  "targets",
	"s":      "stats",
	"status": "stats",
	"x":      "explain",
	"what":   "explain",
	"ok":     "dismiss",
	"close":  "dismiss",
}

// Filler words dropped from arguments ("play the move card", "go to 2 3").
var fillers = map[string]bool{
	"the": true, "a": true, "an": true,
	"to": true, "at": true, "card": true,
}

// Parse converts a raw command string into an Intent. Parentheses and
// commas separate arguments, so "go (2,3)" and "go 2 3" are the same.
func Parse(input string) types.Intent {
	input = strings.TrimSpace(input)
	if input == "" {
		return types.Intent{}
	}

	words := strings.FieldsFunc(strings.ToLower(input), func(r rune) bool {
		switch r {
		case ' ', '\t', ',', '(', ')':
			return true
		}
		return false
	})
	if len(words) == 0 {
		return types.Intent{}
	}

	// Apply verb aliases.
	verb := words[0]
	if alias, ok := verbAliases[verb]; ok {
		verb = alias
	}

	return types.Intent{
		Verb: verb,
		Args: stripFillers(words[1:]),
	}
}

// stripFillers removes filler words from the argument list.
func stripFillers(words []string) []string {
	result := make([]string, 0, len(words))
	for _, w := range words {
		if !fillers[w] {
			result = append(result, w)
		}
	}
	if len(result) == 0 {
		return nil
	}
	return result
}

// Package types defines the shared data structures for the Nordic Grid engine.
// Besides the type definitions it only carries the string forms of the
// enumerations, so every other package can name tiles, cards and resources
// the same way.
package types

import (
	"fmt"
	"strings"
)

// Coord is a grid coordinate. X grows to the right, Y grows downwards.
type Coord struct {
	X int
	Y int
}

// Add returns c offset by o.
func (c Coord) Add(o Coord) Coord {
	return Coord{X: c.X + o.X, Y: c.Y + o.Y}
}

func (c Coord) String() string {
	return fmt.Sprintf("(%d,%d)", c.X, c.Y)
}

// TileState is the terrain marker stored in one grid cell.
type TileState uint8

const (
	TileEmpty TileState = iota
	TileTree
	TileChest
)

func (t TileState) String() string {
	switch t {
	case TileEmpty:
		return "empty"
	case TileTree:
		return "tree"
	case TileChest:
		return "chest"
	default:
		return fmt.Sprintf("tile(%d)", uint8(t))
	}
}

// CardType identifies what a card does when activated.
type CardType uint8

const (
	CardMove CardType = iota
	CardArmor
	CardHealth
	CardKey
)

// NumCardTypes is the number of distinct card types.
const NumCardTypes = 4

// AllCardTypes lists every card type in display order.
var AllCardTypes = [NumCardTypes]CardType{CardMove, CardArmor, CardHealth, CardKey}

func (c CardType) String() string {
	switch c {
	case CardMove:
		return "Move"
	case CardArmor:
		return "Armor"
	case CardHealth:
		return "Health"
	case CardKey:
		return "Key"
	default:
		return fmt.Sprintf("card(%d)", uint8(c))
	}
}

// ParseCardType maps a card name to its type, ignoring case.
// Returns false for unrecognized names.
func ParseCardType(name string) (CardType, bool) {
	switch strings.ToUpper(strings.TrimSpace(name)) {
	case "MOVE":
		return CardMove, true
	case "ARMOR":
		return CardArmor, true
	case "HEALTH":
		return CardHealth, true
	case "KEY":
		return CardKey, true
	default:
		return 0, false
	}
}

// Resource is one of the player's numeric stats.
type Resource uint8

const (
	Attack Resource = iota
	Armor
	Health
)

// NumResources is the number of player resources.
const NumResources = 3

// AllResources lists every resource in display order.
var AllResources = [NumResources]Resource{Attack, Armor, Health}

func (r Resource) String() string {
	switch r {
	case Attack:
		return "Attack"
	case Armor:
		return "Armor"
	case Health:
		return "Health"
	default:
		return fmt.Sprintf("resource(%d)", uint8(r))
	}
}

// ParseResource maps a resource name to its value, ignoring case.
func ParseResource(name string) (Resource, bool) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "attack":
		return Attack, true
	case "armor":
		return Armor, true
	case "health":
		return Health, true
	default:
		return 0, false
	}
}

// Stats holds one value per Resource, indexed by Resource.
type Stats [NumResources]float64

// LevelDef is a compiled level, ready to build a session from.
type LevelDef struct {
	Name        string
	Size        int
	Terrain     [][]TileState // Terrain[y][x]
	Start       Coord
	Cards       []CardType
	CardsOnHand int // declared by the level file, not enforced
	Explain     CardType
	HasExplain  bool
	Baseline    *Stats // nil means "use the configured defaults"
}

// Intent is the parsed representation of a player command.
type Intent struct {
	Verb string
	Args []string
}

// Effect is a single atomic state mutation instruction.
type Effect struct {
	Type   string
	Params map[string]any
}

// Event is emitted after effects are applied.
type Event struct {
	Type string
	Data map[string]any
}

// Result is the output of a single activation or confirmation.
type Result struct {
	Effects []Effect
	Events  []Event
	Output  []string
}

// Package save implements JSON serialization and deserialization of a
// game session.
package save

import (
	"encoding/json"
	"fmt"

	"github.com/nathoo/nordicgrid/engine/explainer"
	"github.com/nathoo/nordicgrid/engine/grid"
	"github.com/nathoo/nordicgrid/engine/hand"
	"github.com/nathoo/nordicgrid/engine/player"
	"github.com/nathoo/nordicgrid/engine/state"
	"github.com/nathoo/nordicgrid/types"
)

// FormatVersion is written into every save.
const FormatVersion = "1"

// Tile characters used in saved rows.
const (
	tileEmpty = '.'
	tileTree  = 'T'
	tileChest = 'C'
)

// SaveData is the JSON-serializable save format. A pending move is not
// part of a save.
type SaveData struct {
	Version    string     `json:"version"`
	Level      string     `json:"level"`
	LevelIndex int        `json:"level_index"`
	Turn       int        `json:"turn"`
	Complete   bool       `json:"complete"`
	Rows       []string   `json:"rows"`
	Player     PlayerData `json:"player"`
	Hand       []string   `json:"hand"`
	Explained  []string   `json:"explained"`
}

// PlayerData is the saved player position and resources.
type PlayerData struct {
	X     int                `json:"x"`
	Y     int                `json:"y"`
	Stats map[string]float64 `json:"stats"`
}

// Save serializes the session to JSON bytes.
func Save(s *state.Session, levelIndex int) ([]byte, error) {
	data := SaveData{
		Version:    FormatVersion,
		Level:      s.Level.Name,
		LevelIndex: levelIndex,
		Turn:       s.TurnCount,
		Complete:   s.Complete,
		Rows:       encodeRows(s.Grid),
		Hand:       []string{},
		Explained:  []string{},
	}

	pos := s.Player.Position()
	data.Player = PlayerData{X: pos.X, Y: pos.Y, Stats: map[string]float64{}}
	for _, r := range types.AllResources {
		data.Player.Stats[r.String()] = s.Player.Stat(r)
	}
	for _, c := range s.Hand.Cards() {
		data.Hand = append(data.Hand, c.String())
	}
	for _, c := range types.AllCardTypes {
		if s.Explainer.Explained(c) {
			data.Explained = append(data.Explained, c.String())
		}
	}

	return json.MarshalIndent(data, "", "  ")
}

// Load deserializes JSON bytes into SaveData and checks that it describes a
// square grid, known cards and a player inside the grid.
func Load(data []byte) (*SaveData, error) {
	var sd SaveData
	if err := json.Unmarshal(data, &sd); err != nil {
		return nil, err
	}
	if sd.Version != FormatVersion {
		return nil, fmt.Errorf("unsupported save version %q", sd.Version)
	}
	if _, err := decodeRows(sd.Rows); err != nil {
		return nil, err
	}
	size := len(sd.Rows)
	if sd.Player.X < 0 || sd.Player.X >= size || sd.Player.Y < 0 || sd.Player.Y >= size {
		return nil, fmt.Errorf("player position (%d,%d) outside %dx%d grid", sd.Player.X, sd.Player.Y, size, size)
	}
	for _, name := range append(append([]string{}, sd.Hand...), sd.Explained...) {
		if _, ok := types.ParseCardType(name); !ok {
			return nil, fmt.Errorf("unknown card %q", name)
		}
	}
	for name := range sd.Player.Stats {
		if _, ok := types.ParseResource(name); !ok {
			return nil, fmt.Errorf("unknown resource %q", name)
		}
	}
	if sd.Hand == nil {
		sd.Hand = []string{}
	}
	if sd.Explained == nil {
		sd.Explained = []string{}
	}
	if sd.Player.Stats == nil {
		sd.Player.Stats = map[string]float64{}
	}
	return &sd, nil
}

// ApplySave replaces the session's grid, hand, player and explainer with
// the saved ones. The SaveData must come from Load.
func ApplySave(s *state.Session, sd *SaveData) error {
	g, err := decodeRows(sd.Rows)
	if err != nil {
		return err
	}

	var stats types.Stats
	for name, v := range sd.Player.Stats {
		r, _ := types.ParseResource(name)
		stats[r] = v
	}

	h := hand.New()
	for _, name := range sd.Hand {
		c, _ := types.ParseCardType(name)
		h.Add(c)
	}

	x := &explainer.Explainer{}
	for _, name := range sd.Explained {
		c, _ := types.ParseCardType(name)
		x.MarkExplained(c)
	}

	s.Grid = g
	s.Hand = h
	s.Player = player.New(g.Size(), types.Coord{X: sd.Player.X, Y: sd.Player.Y}, stats)
	s.Explainer = x
	s.TurnCount = sd.Turn
	s.Complete = sd.Complete
	return nil
}

func encodeRows(g *grid.Grid) []string {
	rows := make([]string, 0, g.Size())
	for _, row := range g.Rows() {
		b := make([]byte, len(row))
		for x, t := range row {
			switch t {
			case types.TileEmpty:
				b[x] = tileEmpty
			case types.TileTree:
				b[x] = tileTree
			case types.TileChest:
				b[x] = tileChest
			default:
				panic(fmt.Sprintf("save: unknown tile %d", uint8(t)))
			}
		}
		rows = append(rows, string(b))
	}
	return rows
}

func decodeRows(rows []string) (*grid.Grid, error) {
	size := len(rows)
	if size == 0 {
		return nil, fmt.Errorf("save has no grid rows")
	}
	g := grid.New(size)
	for y, row := range rows {
		if len(row) != size {
			return nil, fmt.Errorf("row %d has %d tiles, want %d", y, len(row), size)
		}
		for x := 0; x < size; x++ {
			var t types.TileState
			switch row[x] {
			case tileEmpty:
				t = types.TileEmpty
			case tileTree:
				t = types.TileTree
			case tileChest:
				t = types.TileChest
			default:
				return nil, fmt.Errorf("row %d: unknown tile %q", y, row[x])
			}
			g.Set(types.Coord{X: x, Y: y}, t)
		}
	}
	return g, nil
}

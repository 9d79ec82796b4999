// Package loader reads level files (JSON or Lua) into LevelDef values.
// Lua levels run in a sandboxed VM that is discarded after loading.
package loader

import (
	"fmt"
	"slices"
	"sort"
	"strings"

	lua "github.com/yuin/gopher-lua"

	"github.com/nathoo/nordicgrid/types"
)

// Terrain codes used in level maps.
const (
	codeEmpty = 0
	codeStart = 1
	codeTree  = 2
	codeChest = 3
)

// rawLevel is the level record as written in the file.
type rawLevel struct {
	Name             string             `json:"name"`
	Map              [][]int            `json:"map"`
	Cards            []string           `json:"cards"`
	CardsOnHand      int                `json:"cards_on_hand"`
	ExplainOnStartup string             `json:"explain_on_startup"`
	Stats            map[string]float64 `json:"stats"`
}

// getString returns a string field from a Lua table, or "" if missing.
func getString(tbl *lua.LTable, key string) string {
	v := tbl.RawGetString(key)
	if s, ok := v.(lua.LString); ok {
		return string(s)
	}
	return ""
}

// getInt returns an int field from a Lua table, or 0 if missing.
func getInt(tbl *lua.LTable, key string) int {
	v := tbl.RawGetString(key)
	if n, ok := v.(lua.LNumber); ok {
		return int(n)
	}
	return 0
}

// getTable returns a table field from a Lua table, or nil if missing.
func getTable(tbl *lua.LTable, key string) *lua.LTable {
	v := tbl.RawGetString(key)
	if t, ok := v.(*lua.LTable); ok {
		return t
	}
	return nil
}

// toGoValue converts a Lua value to a Go value recursively.
func toGoValue(v lua.LValue) any {
	switch val := v.(type) {
	case lua.LBool:
		return bool(val)
	case lua.LNumber:
		f := float64(val)
		if f == float64(int(f)) {
			return int(f)
		}
		return f
	case *lua.LNilType:
		return nil
	case lua.LString:
		return string(val)
	case *lua.LTable:
		// Check if it's an array (sequential integer keys starting at 1).
		maxN := val.MaxN()
		if maxN > 0 {
			arr := make([]any, 0, maxN)
			for i := 1; i <= maxN; i++ {
				arr = append(arr, toGoValue(val.RawGetInt(i)))
			}
			return arr
		}
		// Otherwise treat as map.
		m := map[string]any{}
		val.ForEach(func(k, v lua.LValue) {
			if ks, ok := k.(lua.LString); ok {
				m[string(ks)] = toGoValue(v)
			}
		})
		return m
	default:
		return nil
	}
}

// fromLua converts a Level table into the same record a JSON file produces.
func fromLua(tbl *lua.LTable) (*rawLevel, error) {
	raw := &rawLevel{
		Name:             getString(tbl, "name"),
		CardsOnHand:      getInt(tbl, "cards_on_hand"),
		ExplainOnStartup: getString(tbl, "explain_on_startup"),
	}

	if m := getTable(tbl, "map"); m != nil {
		rows, ok := toGoValue(m).([]any)
		if !ok {
			return nil, fmt.Errorf("map must be a list of rows")
		}
		for y, r := range rows {
			cells, ok := r.([]any)
			if !ok {
				return nil, fmt.Errorf("map row %d must be a list of tile codes", y)
			}
			row := make([]int, len(cells))
			for x, c := range cells {
				n, ok := c.(int)
				if !ok {
					return nil, fmt.Errorf("map[%d][%d] is not an integer tile code", y, x)
				}
				row[x] = n
			}
			raw.Map = append(raw.Map, row)
		}
	}

	if c := getTable(tbl, "cards"); c != nil {
		cards, _ := toGoValue(c).([]any)
		for i, v := range cards {
			s, ok := v.(string)
			if !ok {
				return nil, fmt.Errorf("cards[%d] is not a string", i+1)
			}
			raw.Cards = append(raw.Cards, s)
		}
	}

	if s := getTable(tbl, "stats"); s != nil {
		raw.Stats = map[string]float64{}
		s.ForEach(func(k, v lua.LValue) {
			ks, kok := k.(lua.LString)
			n, nok := v.(lua.LNumber)
			if kok && nok {
				raw.Stats[string(ks)] = float64(n)
			}
		})
	}

	return raw, nil
}

// compile converts a validated record into a LevelDef. Problems that do not
// stop the level from being played come back as warnings.
func compile(raw *rawLevel) (*types.LevelDef, []string) {
	var warnings []string
	size := len(raw.Map)

	def := &types.LevelDef{
		Name:        raw.Name,
		Size:        size,
		Terrain:     make([][]types.TileState, size),
		CardsOnHand: raw.CardsOnHand,
	}

	starts := 0
	for y, row := range raw.Map {
		def.Terrain[y] = make([]types.TileState, size)
		for x, code := range row {
			switch code {
			case codeEmpty:
			case codeStart:
				// Last start marker wins.
				def.Start = types.Coord{X: x, Y: y}
				starts++
			case codeTree:
				def.Terrain[y][x] = types.TileTree
			case codeChest:
				def.Terrain[y][x] = types.TileChest
			default:
				warnings = append(warnings, fmt.Sprintf("map[%d][%d]: unknown tile code %d, treated as empty", y, x, code))
			}
		}
	}
	switch {
	case starts == 0:
		warnings = append(warnings, "map has no player start, using (0,0)")
	case starts > 1:
		warnings = append(warnings, fmt.Sprintf("map has %d player starts, using %s", starts, def.Start))
	}

	for i, name := range raw.Cards {
		c, ok := types.ParseCardType(name)
		if !ok {
			warnings = append(warnings, fmt.Sprintf("cards[%d]: unknown card %q skipped", i, name))
			continue
		}
		def.Cards = append(def.Cards, c)
	}
	if raw.CardsOnHand != len(def.Cards) {
		warnings = append(warnings, fmt.Sprintf("cards_on_hand is %d but the level has %d cards", raw.CardsOnHand, len(def.Cards)))
	}

	if name := strings.TrimSpace(raw.ExplainOnStartup); name != "" {
		if c, ok := types.ParseCardType(name); ok {
			def.Explain = c
			def.HasExplain = true
		} else {
			warnings = append(warnings, fmt.Sprintf("explain_on_startup: unknown card %q ignored", name))
		}
	}

	if len(raw.Stats) > 0 {
		stats, w := compileStats(raw.Stats)
		def.Baseline = &stats
		warnings = append(warnings, w...)
	}

	return def, warnings
}

// compileStats builds a baseline from named values. Resources the level does
// not name start at zero.
func compileStats(m map[string]float64) (types.Stats, []string) {
	var (
		stats    types.Stats
		warnings []string
	)
	names := make([]string, 0, len(m))
	for name := range m {
		names = append(names, name)
	}
	slices.Sort(names)
	for _, name := range names {
		r, ok := types.ParseResource(name)
		if !ok {
			warnings = append(warnings, fmt.Sprintf("stats: unknown resource %q ignored", name))
			continue
		}
		stats[r] = m[name]
	}
	return stats, warnings
}

// sortedLevelFiles returns level file names in campaign order.
func sortedLevelFiles(files []string) []string {
	sorted := append([]string(nil), files...)
	sort.Strings(sorted)
	return sorted
}

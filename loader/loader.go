package loader

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	lua "github.com/yuin/gopher-lua"
	"go.uber.org/zap"

	"github.com/nathoo/nordicgrid/types"
)

// Load reads one level file, compiles it and validates it. The format is
// chosen by extension: .json or .lua. Warnings are logged, errors returned.
func Load(path string, log *zap.Logger) (*types.LevelDef, error) {
	if log == nil {
		log = zap.NewNop()
	}

	var (
		raw *rawLevel
		err error
	)
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		raw, err = readJSON(path)
	case ".lua":
		raw, err = readLua(path)
	default:
		return nil, fmt.Errorf("level %s: unsupported file type (want .json or .lua)", path)
	}
	if err != nil {
		return nil, err
	}
	if raw.Name == "" {
		raw.Name = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}

	ve := validate(raw)
	if len(ve.Errors) > 0 {
		return nil, fmt.Errorf("level %s: %w", path, ve)
	}

	def, warnings := compile(raw)
	warnings = append(ve.Warnings, warnings...)
	for _, w := range warnings {
		log.Warn("level warning", zap.String("file", path), zap.String("warning", w))
	}

	log.Debug("level loaded",
		zap.String("file", path),
		zap.String("name", def.Name),
		zap.Int("size", def.Size),
		zap.Int("cards", len(def.Cards)),
	)
	return def, nil
}

// LoadCampaign loads every level file in dir, ordered by file name.
func LoadCampaign(dir string, log *zap.Logger) ([]*types.LevelDef, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("reading level directory %s: %w", dir, err)
	}

	var files []string
	for _, e := range entries {
		if !e.IsDir() && isLevelFile(e.Name()) {
			files = append(files, e.Name())
		}
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("no .json or .lua level files found in %s", dir)
	}

	files = sortedLevelFiles(files)
	levels := make([]*types.LevelDef, 0, len(files))
	for _, f := range files {
		def, err := Load(filepath.Join(dir, f), log)
		if err != nil {
			return nil, err
		}
		levels = append(levels, def)
	}
	return levels, nil
}

func isLevelFile(name string) bool {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".json", ".lua":
		return true
	}
	return false
}

func readJSON(path string) (*rawLevel, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading level %s: %w", path, err)
	}
	var raw rawLevel
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parsing level %s: %w", path, err)
	}
	return &raw, nil
}

// readLua executes a level script in a sandboxed VM. The VM is discarded
// once the Level table has been converted.
func readLua(path string) (*rawLevel, error) {
	L := lua.NewState(lua.Options{SkipOpenLibs: true})
	defer L.Close()

	// Open safe libs only.
	openSafeLibs(L)

	// Sandbox: remove dangerous globals.
	sandbox(L)

	coll := &collector{}
	registerAPI(L, coll)

	if err := L.DoFile(path); err != nil {
		return nil, fmt.Errorf("executing %s: %w", path, err)
	}
	if coll.level == nil {
		return nil, fmt.Errorf("level %s: no Level { ... } definition", path)
	}
	if coll.calls > 1 {
		return nil, fmt.Errorf("level %s: Level { ... } defined %d times", path, coll.calls)
	}

	raw, err := fromLua(coll.level)
	if err != nil {
		return nil, fmt.Errorf("level %s: %w", path, err)
	}
	return raw, nil
}

// openSafeLibs opens only the safe subset of Lua standard libraries.
func openSafeLibs(L *lua.LState) {
	// Base library (print, type, tostring, tonumber, pairs, ipairs, etc.)
	lua.OpenBase(L)
	// Table library (table.insert, table.sort, etc.)
	lua.OpenTable(L)
	// String library (string.format, string.rep, etc.)
	lua.OpenString(L)
	// Math library (math.floor, math.max, etc.)
	lua.OpenMath(L)
}

// sandbox removes dangerous globals and functions.
func sandbox(L *lua.LState) {
	dangerous := []string{
		"dofile", "loadfile", "load", "loadstring",
		"rawset", "rawget", "rawequal",
		"collectgarbage",
	}
	for _, name := range dangerous {
		L.SetGlobal(name, lua.LNil)
	}

	// Levels must come out the same on every load.
	if mathTbl := L.GetGlobal("math"); mathTbl != lua.LNil {
		if tbl, ok := mathTbl.(*lua.LTable); ok {
			tbl.RawSetString("random", lua.LNil)
			tbl.RawSetString("randomseed", lua.LNil)
		}
	}
}

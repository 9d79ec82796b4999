package loader

import (
	lua "github.com/yuin/gopher-lua"
)

// collector receives the Level table while a script runs.
type collector struct {
	level *lua.LTable
	calls int
}

// Tile code globals, so scripts can write maps with names instead of digits.
var tileGlobals = map[string]int{
	"EMPTY": codeEmpty,
	"START": codeStart,
	"TREE":  codeTree,
	"CHEST": codeChest,
}

// registerAPI registers the Lua constructors and helpers as globals.
func registerAPI(L *lua.LState, coll *collector) {
	// Level { map = {...}, cards = {...}, ... }
	L.SetGlobal("Level", L.NewFunction(func(L *lua.LState) int {
		coll.level = L.CheckTable(1)
		coll.calls++
		return 0
	}))

	for name, code := range tileGlobals {
		L.SetGlobal(name, lua.LNumber(code))
	}

	// Row(n, code) builds a row of n identical tiles.
	L.SetGlobal("Row", L.NewFunction(func(L *lua.LState) int {
		n := L.CheckInt(1)
		code := L.OptInt(2, codeEmpty)
		tbl := L.NewTable()
		for i := 0; i < n; i++ {
			tbl.Append(lua.LNumber(code))
		}
		L.Push(tbl)
		return 1
	}))

	// Cards("MOVE", 3) builds a list of n copies of a card name.
	L.SetGlobal("Cards", L.NewFunction(func(L *lua.LState) int {
		name := L.CheckString(1)
		n := L.OptInt(2, 1)
		tbl := L.NewTable()
		for i := 0; i < n; i++ {
			tbl.Append(lua.LString(name))
		}
		L.Push(tbl)
		return 1
	}))
}

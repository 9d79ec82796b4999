package state

import (
	"testing"

	"github.com/nathoo/nordicgrid/types"
)

func testLevel() *types.LevelDef {
	e, tr, ch := types.TileEmpty, types.TileTree, types.TileChest
	return &types.LevelDef{
		Name: "Test Level",
		Size: 3,
		Terrain: [][]types.TileState{
			{e, e, e},
			{e, e, tr},
			{ch, e, e},
		},
		Start:       types.Coord{X: 1, Y: 0},
		Cards:       []types.CardType{types.CardMove, types.CardHealth},
		CardsOnHand: 2,
	}
}

var defaultStats = types.Stats{types.Attack: 1, types.Armor: 0, types.Health: 1}

func TestNewSession_Terrain(t *testing.T) {
	s := NewSession(testLevel(), defaultStats)

	if got := s.Grid.Get(types.Coord{X: 2, Y: 1}); got != types.TileTree {
		t.Errorf("tile (2,1) = %v, want tree", got)
	}
	if got := s.Grid.Get(types.Coord{X: 0, Y: 2}); got != types.TileChest {
		t.Errorf("tile (0,2) = %v, want chest", got)
	}
	if got := s.Grid.Get(types.Coord{X: 1, Y: 1}); got != types.TileEmpty {
		t.Errorf("tile (1,1) = %v, want empty", got)
	}
}

func TestNewSession_PlayerAndHand(t *testing.T) {
	s := NewSession(testLevel(), defaultStats)

	if got := s.Player.Position(); got != (types.Coord{X: 1, Y: 0}) {
		t.Errorf("player at %s, want (1,0)", got)
	}
	cards := s.Hand.Cards()
	if len(cards) != 2 || cards[0] != types.CardMove || cards[1] != types.CardHealth {
		t.Errorf("hand = %v, want [Move Health]", cards)
	}
	if s.TurnCount != 0 || s.Complete {
		t.Errorf("fresh session should be at turn 0 and incomplete")
	}
}

func TestNewSession_DefaultBaseline(t *testing.T) {
	s := NewSession(testLevel(), defaultStats)

	if got := s.Player.Stat(types.Health); got != 1 {
		t.Errorf("health = %v, want 1", got)
	}
}

func TestNewSession_LevelBaselineWins(t *testing.T) {
	def := testLevel()
	def.Baseline = &types.Stats{types.Attack: 3, types.Armor: 2, types.Health: 5}

	s := NewSession(def, defaultStats)

	if got := s.Player.Stat(types.Health); got != 5 {
		t.Errorf("health = %v, want 5", got)
	}
	if got := s.Player.Stat(types.Armor); got != 2 {
		t.Errorf("armor = %v, want 2", got)
	}
}

func TestNewSession_ExplainOnStartup(t *testing.T) {
	def := testLevel()
	def.Explain = types.CardKey
	def.HasExplain = true

	s := NewSession(def, defaultStats)

	c, ok := s.Explainer.Current()
	if !ok || c != types.CardKey {
		t.Errorf("explainer showing %v (%v), want Key", c, ok)
	}
}

func TestNewSession_NoExplain(t *testing.T) {
	s := NewSession(testLevel(), defaultStats)

	if _, ok := s.Explainer.Current(); ok {
		t.Error("expected no explanation on startup")
	}
}

func TestChestsLeft(t *testing.T) {
	s := NewSession(testLevel(), defaultStats)

	if got := ChestsLeft(s); got != 1 {
		t.Errorf("ChestsLeft = %d, want 1", got)
	}
	s.Grid.Set(types.Coord{X: 0, Y: 2}, types.TileEmpty)
	if got := ChestsLeft(s); got != 0 {
		t.Errorf("ChestsLeft = %d, want 0", got)
	}
}

func TestKeyReach_IncludesOrigin(t *testing.T) {
	s := NewSession(testLevel(), defaultStats)

	got := KeyReach(s, types.Coord{X: 0, Y: 0})
	want := []types.Coord{{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 0, Y: 1}, {X: 1, Y: 1}}
	if len(got) != len(want) {
		t.Fatalf("KeyReach((0,0)) = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("KeyReach((0,0))[%d] = %s, want %s", i, got[i], want[i])
		}
	}
	if n := len(KeyReach(s, types.Coord{X: 1, Y: 1})); n != 9 {
		t.Errorf("KeyReach((1,1)) = %d tiles, want 9", n)
	}
}

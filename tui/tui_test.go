package tui

import (
	"fmt"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/nathoo/nordicgrid/engine"
	"github.com/nathoo/nordicgrid/types"
)

// testLevels returns a two-level campaign: a 3x3 level where the player
// starts at (0,0) with a chest at (2,2), then a 2x2 level whose chest
// touches the start.
func testLevels() []*types.LevelDef {
	e, ch := types.TileEmpty, types.TileChest
	return []*types.LevelDef{
		{
			Name: "First",
			Size: 3,
			Terrain: [][]types.TileState{
				{e, e, e},
				{e, e, e},
				{e, e, ch},
			},
			Cards: []types.CardType{types.CardMove, types.CardKey},
		},
		{
			Name:    "Second",
			Size:    2,
			Terrain: [][]types.TileState{{e, e}, {e, ch}},
			Cards:   []types.CardType{types.CardKey},
		},
	}
}

func newTestModel(t *testing.T) Model {
	t.Helper()
	m := New(engine.NewCampaign(testLevels()), t.TempDir())
	return update(t, m, tea.WindowSizeMsg{Width: 80, Height: 30})
}

func update(t *testing.T, m Model, msg tea.Msg) Model {
	t.Helper()
	next, _ := m.Update(msg)
	return next.(Model)
}

func mouse(x, y int, action tea.MouseAction) tea.MouseMsg {
	button := tea.MouseButtonLeft
	if action == tea.MouseActionMotion {
		button = tea.MouseButtonNone
	}
	return tea.MouseMsg{X: x, Y: y, Action: action, Button: button}
}

func keyRune(r rune) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}
}

func submit(t *testing.T, m Model, input string) Model {
	t.Helper()
	m.input.SetValue(input)
	return update(t, m, tea.KeyMsg{Type: tea.KeyEnter})
}

func logText(m Model) string {
	var lines []string
	for _, rl := range m.log.all() {
		lines = append(lines, rl.text)
	}
	return strings.Join(lines, "\n")
}

// Screen positions for the 3x3 level: the hand is on row 5, card 0 spans
// columns 0-9 and card 1 columns 11-20; cell (x,y) is at column 3+3x, row 2+y.
func cellPos(c types.Coord) (int, int) {
	return cellWidth + cellWidth*c.X + 2, boardTop + c.Y
}

func TestCellAt(t *testing.T) {
	tests := []struct {
		x, y int
		want types.Coord
		ok   bool
	}{
		{3, 2, types.Coord{X: 0, Y: 0}, true},
		{5, 2, types.Coord{X: 0, Y: 0}, true},
		{6, 3, types.Coord{X: 1, Y: 1}, true},
		{11, 4, types.Coord{X: 2, Y: 2}, true},
		{2, 2, types.Coord{}, false},  // row label
		{6, 1, types.Coord{}, false},  // column header
		{12, 2, types.Coord{}, false}, // right of the grid
		{6, 5, types.Coord{}, false},  // hand row
	}
	for _, tt := range tests {
		got, ok := cellAt(tt.x, tt.y, 3)
		if ok != tt.ok || got != tt.want {
			t.Errorf("cellAt(%d,%d) = %s,%v; want %s,%v", tt.x, tt.y, got, ok, tt.want, tt.ok)
		}
	}
}

func TestCardAt(t *testing.T) {
	tests := []struct {
		x, y int
		want int
		ok   bool
	}{
		{0, 5, 0, true},
		{9, 5, 0, true},
		{10, 5, 0, false}, // gap between cards
		{11, 5, 1, true},
		{22, 5, 0, false}, // past the last card
		{3, 4, 0, false},  // grid row
	}
	for _, tt := range tests {
		got, ok := cardAt(tt.x, tt.y, 3, 2)
		if ok != tt.ok || (ok && got != tt.want) {
			t.Errorf("cardAt(%d,%d) = %d,%v; want %d,%v", tt.x, tt.y, got, ok, tt.want, tt.ok)
		}
	}
}

func TestCellLook_TargetsAndChestUnderPlayer(t *testing.T) {
	e, tr, ch := types.TileEmpty, types.TileTree, types.TileChest
	eng := engine.New(&types.LevelDef{
		Name: "Overlay",
		Size: 3,
		Terrain: [][]types.TileState{
			{e, e, e},
			{e, tr, e},
			{ch, e, e},
		},
		Cards: []types.CardType{types.CardMove},
	})
	eng.Activate(0)

	glyph, style := cellLook(eng, types.Coord{X: 1, Y: 1})
	if glyph != engine.GlyphTree || style.GetBackground() != targetBackground {
		t.Errorf("reachable tree = %c with background %v", glyph, style.GetBackground())
	}
	glyph, style = cellLook(eng, types.Coord{X: 2, Y: 2})
	if glyph != engine.GlyphEmpty || style.GetBackground() == targetBackground {
		t.Errorf("unreachable cell = %c with background %v", glyph, style.GetBackground())
	}

	eng.Confirm(types.Coord{X: 0, Y: 2})
	if glyph, _ := cellLook(eng, types.Coord{X: 0, Y: 2}); glyph != engine.GlyphPlayerOnChest {
		t.Errorf("player on chest = %c, want %c", glyph, engine.GlyphPlayerOnChest)
	}
}

func TestMouse_HoverSelectsCard(t *testing.T) {
	m := newTestModel(t)
	m = update(t, m, mouse(12, 5, tea.MouseActionMotion))

	i, ok := m.engine().State.Hand.Selected()
	if !ok || i != 1 {
		t.Errorf("Selected = %d,%v; want 1,true", i, ok)
	}
	if m.engine().Phase() != engine.Idle {
		t.Error("hovering must not activate a card")
	}
}

func TestMouse_PressActivatesAndConfirms(t *testing.T) {
	m := newTestModel(t)

	m = update(t, m, mouse(2, 5, tea.MouseActionPress))
	if m.engine().Phase() != engine.AwaitingMoveTarget {
		t.Fatalf("Phase = %s, want awaiting move target", m.engine().Phase())
	}
	m = update(t, m, mouse(2, 5, tea.MouseActionRelease))

	// While a move is pending, hovering another card keeps the selection.
	m = update(t, m, mouse(12, 5, tea.MouseActionMotion))
	if i, _ := m.engine().State.Hand.Selected(); i != 0 {
		t.Errorf("Selected = %d, want pending card 0", i)
	}

	x, y := cellPos(types.Coord{X: 1, Y: 1})
	m = update(t, m, mouse(x, y, tea.MouseActionPress))

	eng := m.engine()
	if eng.State.Player.Position() != (types.Coord{X: 1, Y: 1}) {
		t.Errorf("Position = %s, want (1,1)", eng.State.Player.Position())
	}
	if eng.Phase() != engine.Idle || eng.State.Hand.Len() != 1 {
		t.Errorf("after confirm: phase %s, %d cards", eng.Phase(), eng.State.Hand.Len())
	}
	if !strings.Contains(logText(m), "> play 1") || !strings.Contains(logText(m), "> go 1 1") {
		t.Errorf("expected clicks echoed as commands:\n%s", logText(m))
	}
}

func TestMouse_PressIsEdgeTriggered(t *testing.T) {
	m := newTestModel(t)
	m = update(t, m, mouse(2, 5, tea.MouseActionPress))

	// Still held: a second press and a drag onto a target do nothing.
	x, y := cellPos(types.Coord{X: 1, Y: 1})
	m = update(t, m, mouse(x, y, tea.MouseActionMotion))
	m = update(t, m, mouse(x, y, tea.MouseActionPress))
	if m.engine().State.Player.Position() != (types.Coord{}) {
		t.Fatal("a held button must not confirm a move")
	}
	if m.engine().Phase() != engine.AwaitingMoveTarget {
		t.Fatal("move should still be pending")
	}

	m = update(t, m, mouse(x, y, tea.MouseActionRelease))
	m = update(t, m, mouse(x, y, tea.MouseActionPress))
	if m.engine().State.Player.Position() != (types.Coord{X: 1, Y: 1}) {
		t.Error("press after release should confirm the move")
	}
}

func TestMouse_InvalidTileKeepsMovePending(t *testing.T) {
	m := newTestModel(t)
	m = update(t, m, mouse(2, 5, tea.MouseActionPress))
	m = update(t, m, mouse(2, 5, tea.MouseActionRelease))

	x, y := cellPos(types.Coord{X: 2, Y: 2})
	m = update(t, m, mouse(x, y, tea.MouseActionPress))

	if m.engine().Phase() != engine.AwaitingMoveTarget {
		t.Error("an invalid tile must leave the move pending")
	}
	if !strings.Contains(logText(m), "You can't move to (2,2).") {
		t.Errorf("expected rejection in log:\n%s", logText(m))
	}
}

func TestMouse_BoardPressWhenIdleDoesNothing(t *testing.T) {
	m := newTestModel(t)
	x, y := cellPos(types.Coord{X: 1, Y: 0})
	m = update(t, m, mouse(x, y, tea.MouseActionPress))

	if m.engine().State.Player.Position() != (types.Coord{}) || m.engine().State.TurnCount != 0 {
		t.Error("clicking the board without a pending move must not change state")
	}
}

func TestKey_CloseExplainer(t *testing.T) {
	m := newTestModel(t)
	m = update(t, m, mouse(2, 5, tea.MouseActionPress))
	if !m.explaining() {
		t.Fatal("first Move should open its explanation")
	}
	if !strings.Contains(m.View(), "press c to close") {
		t.Error("expected explanation panel in view")
	}

	m = update(t, m, keyRune('c'))
	if m.explaining() {
		t.Error("c should close the explanation")
	}
	if m.input.Value() != "" {
		t.Errorf("c must not be typed while closing, input = %q", m.input.Value())
	}

	// With no explanation shown, c is ordinary input.
	m = update(t, m, keyRune('c'))
	if m.input.Value() != "c" {
		t.Errorf("input = %q, want %q", m.input.Value(), "c")
	}
}

func TestKey_CloseOnlyWithEmptyInput(t *testing.T) {
	m := newTestModel(t)
	m = update(t, m, mouse(2, 5, tea.MouseActionPress))
	if !m.explaining() {
		t.Fatal("first Move should open its explanation")
	}

	for _, r := range "go cancel" {
		m = update(t, m, keyRune(r))
	}
	if m.input.Value() != "go cancel" {
		t.Errorf("input = %q, want %q", m.input.Value(), "go cancel")
	}
	if !m.explaining() {
		t.Error("c inside a command must not close the explanation")
	}
}

func TestKey_EscCancelsMove(t *testing.T) {
	m := newTestModel(t)
	m = update(t, m, mouse(2, 5, tea.MouseActionPress))

	// First esc closes the explanation, the second cancels the move.
	m = update(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	if m.explaining() || m.engine().Phase() != engine.AwaitingMoveTarget {
		t.Fatal("esc should close the explanation first")
	}
	m = update(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	if m.engine().Phase() != engine.Idle {
		t.Error("esc should cancel the pending move")
	}
	if m.engine().State.Hand.Len() != 2 {
		t.Error("cancel keeps the Move card")
	}
}

func TestEnter_PlaysThroughCampaign(t *testing.T) {
	m := newTestModel(t)
	m = submit(t, m, "play 1")
	m = submit(t, m, "go 1 1")
	m = submit(t, m, "play key")

	if m.campaign.Index() != 1 {
		t.Fatalf("Index = %d, want second level", m.campaign.Index())
	}
	if !strings.Contains(logText(m), "Level 2/2: Second") {
		t.Errorf("expected second level intro:\n%s", logText(m))
	}

	m = submit(t, m, "play 1")
	if !m.finished {
		t.Fatal("campaign should be finished")
	}
	if m.phaseHint() != "Campaign complete" {
		t.Errorf("phaseHint = %q", m.phaseHint())
	}

	m = submit(t, m, "look")
	if !strings.Contains(logText(m), "The campaign is over.") {
		t.Error("commands after the last level should be refused")
	}
}

func TestEnter_Again(t *testing.T) {
	m := newTestModel(t)
	m = submit(t, m, "again")
	if !strings.Contains(logText(m), "Nothing to repeat.") {
		t.Error("expected 'Nothing to repeat.'")
	}

	m = submit(t, m, "stats")
	m = submit(t, m, "again")
	if strings.Count(logText(m), "Attack 1  Armor 0  Health 1") != 2 {
		t.Errorf("expected stats twice:\n%s", logText(m))
	}
}

func TestView_Layout(t *testing.T) {
	m := newTestModel(t)
	view := m.View()

	for _, want := range []string{"Level 1/2: First", "1 Move", "2 Key", "Attack 1", "Chests: 1", "T:0"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q", want)
		}
	}
	if got := strings.Count(view, "\n") + 1; got > 30 {
		t.Errorf("view is %d rows, terminal has 30", got)
	}
}

func TestView_BeforeResize(t *testing.T) {
	m := New(engine.NewCampaign(testLevels()), t.TempDir())
	if m.View() != "Loading..." {
		t.Errorf("View = %q", m.View())
	}
}

func TestClassifyLine(t *testing.T) {
	tests := []struct {
		line string
		want lineKind
	}{
		{"Level 1/2: First", kindTitle},
		{"You open the chest at (2,2).", kindEvent},
		{"Every chest is open. Level complete!", kindEvent},
		{"MOVE: The MOVE card moves you.", kindExplain},
		{"[Game saved to test.]", kindSystem},
		{"[trace] Effects: 2", kindTrace},
		{"You can't move to (2,2).", kindError},
		{`You don't hold a "key" card.`, kindError},
		{"No move is pending.", kindError},
		{"Card 5 is out of range (1-2).", kindError},
		{"Choose a destination: (0,0) (1,1).", kindNarration},
		{"Hand: 1) Move", kindNarration},
		{"Health is now 2.", kindNarration},
		{"", kindNarration},
	}
	for _, tt := range tests {
		got := classifyLine(tt.line)
		if got != tt.want {
			t.Errorf("classifyLine(%q) = %v, want %v", tt.line, got, tt.want)
		}
	}
}

func TestWordWrap(t *testing.T) {
	tests := []struct {
		text  string
		width int
		want  string
	}{
		{"short", 80, "short"},
		{"hello world", 5, "hello\nworld"},
		{"The great hall stretches before you with its vaulted ceiling.", 30,
			"The great hall stretches\nbefore you with its vaulted\nceiling."},
		{"", 80, ""},
		{"one", 80, "one"},
		{"a b c d e", 3, "a b\nc d\ne"},
	}
	for _, tt := range tests {
		got := wordWrap(tt.text, tt.width)
		if got != tt.want {
			t.Errorf("wordWrap(%q, %d) =\n  %q\nwant:\n  %q", tt.text, tt.width, got, tt.want)
		}
	}
}

func TestHistory_PushAndPrev(t *testing.T) {
	h := NewHistory(5)
	h.Push("look")
	h.Push("play 1")
	h.Push("go 1 1")

	prev, ok := h.Prev()
	if !ok || prev != "go 1 1" {
		t.Errorf("expected 'go 1 1', got %q (ok=%v)", prev, ok)
	}

	prev, ok = h.Prev()
	if !ok || prev != "play 1" {
		t.Errorf("expected 'play 1', got %q (ok=%v)", prev, ok)
	}

	prev, ok = h.Prev()
	if !ok || prev != "look" {
		t.Errorf("expected 'look', got %q (ok=%v)", prev, ok)
	}

	// At oldest, stays there.
	prev, ok = h.Prev()
	if !ok || prev != "look" {
		t.Errorf("expected 'look' at boundary, got %q (ok=%v)", prev, ok)
	}
}

func TestHistory_Next(t *testing.T) {
	h := NewHistory(5)
	h.Push("look")
	h.Push("play 1")

	h.Prev() // "play 1"
	h.Prev() // "look"

	next, ok := h.Next()
	if !ok || next != "play 1" {
		t.Errorf("expected 'play 1', got %q (ok=%v)", next, ok)
	}

	_, ok = h.Next()
	if ok {
		t.Error("expected false when past newest entry")
	}
}

func TestHistory_Empty(t *testing.T) {
	h := NewHistory(5)
	_, ok := h.Prev()
	if ok {
		t.Error("expected false on empty history")
	}
	_, ok = h.Next()
	if ok {
		t.Error("expected false on empty history")
	}
}

func TestHistory_MaxSize(t *testing.T) {
	h := NewHistory(2)
	h.Push("a")
	h.Push("b")
	h.Push("c") // "a" evicted

	prev, _ := h.Prev()
	if prev != "c" {
		t.Errorf("expected 'c', got %q", prev)
	}
	prev, _ = h.Prev()
	if prev != "b" {
		t.Errorf("expected 'b', got %q", prev)
	}
	// "a" is gone.
	prev, _ = h.Prev()
	if prev != "b" {
		t.Errorf("expected 'b' at boundary, got %q", prev)
	}
}

func TestHistory_NoDuplicates(t *testing.T) {
	h := NewHistory(5)
	h.Push("look")
	h.Push("look") // skipped
	h.Push("look") // skipped

	if len(h.entries) != 1 {
		t.Errorf("expected 1 entry, got %d", len(h.entries))
	}
}

func TestHistory_ResetCursor(t *testing.T) {
	h := NewHistory(5)
	h.Push("look")
	h.Push("play 1")

	h.Prev() // "play 1"
	h.ResetCursor()

	// After reset, Prev starts from the end again.
	prev, ok := h.Prev()
	if !ok || prev != "play 1" {
		t.Errorf("expected 'play 1' after reset, got %q", prev)
	}
}

func TestMessageLog_Cap(t *testing.T) {
	l := newMessageLog(3)
	for i := 0; i < 5; i++ {
		l.add(rawLine{text: fmt.Sprint(i)})
	}
	lines := l.all()
	if len(lines) != 3 || lines[0].text != "2" || lines[2].text != "4" {
		t.Errorf("log = %v", lines)
	}
}

func TestHandleMeta_Quit(t *testing.T) {
	m := newTestModel(t)

	_, quit := m.handleMeta("/quit")
	if !quit {
		t.Error("expected quit=true for /quit")
	}

	_, quit = m.handleMeta("/exit")
	if !quit {
		t.Error("expected quit=true for /exit")
	}
}

func TestHandleMeta_SaveAndLoad(t *testing.T) {
	m := newTestModel(t)
	m = submit(t, m, "play 1")
	m = submit(t, m, "go 1 1")

	output, quit := m.handleMeta("/save test")
	if quit {
		t.Error("save should not quit")
	}
	if len(output) == 0 || !strings.Contains(output[0], "Game saved") {
		t.Errorf("expected save confirmation, got %v", output)
	}

	m = submit(t, m, "play key")
	if m.campaign.Index() != 1 {
		t.Fatal("expected to be on the second level")
	}

	output, _ = m.handleMeta("/load test")
	if len(output) == 0 || !strings.Contains(output[0], "Game loaded from test (level 1, turn 1)") {
		t.Errorf("expected load confirmation, got %v", output)
	}
	if m.campaign.Index() != 0 || m.engine().State.Player.Position() != (types.Coord{X: 1, Y: 1}) {
		t.Error("load should restore the first level")
	}
}

func TestHandleMeta_LoadNonexistent(t *testing.T) {
	m := newTestModel(t)

	output, quit := m.handleMeta("/load nonexistent")
	if quit {
		t.Error("load should not quit")
	}
	if len(output) == 0 || !strings.Contains(output[0], "Load failed") {
		t.Errorf("expected load failure, got %v", output)
	}
}

func TestHandleMeta_Help(t *testing.T) {
	m := newTestModel(t)

	output, quit := m.handleMeta("/help")
	if quit {
		t.Error("help should not quit")
	}

	joined := strings.Join(output, "\n")
	for _, expected := range []string{"/save", "/load", "/quit", "play", "Mouse"} {
		if !strings.Contains(joined, expected) {
			t.Errorf("expected %q in help output", expected)
		}
	}
}

func TestHandleMeta_Trace(t *testing.T) {
	m := newTestModel(t)

	output, _ := m.handleMeta("/trace")
	if !m.trace {
		t.Error("expected trace to be enabled")
	}
	if len(output) == 0 || !strings.Contains(output[0], "enabled") {
		t.Errorf("expected enabled message, got %v", output)
	}

	m = submit(t, m, "play 2")
	if !strings.Contains(logText(m), "[trace]   key_unused") {
		t.Errorf("expected trace lines:\n%s", logText(m))
	}

	output, _ = m.handleMeta("/trace")
	if m.trace {
		t.Error("expected trace to be disabled")
	}
	if len(output) == 0 || !strings.Contains(output[0], "disabled") {
		t.Errorf("expected disabled message, got %v", output)
	}
}

func TestHandleMeta_Unknown(t *testing.T) {
	m := newTestModel(t)

	output, quit := m.handleMeta("/bogus")
	if quit {
		t.Error("unknown command should not quit")
	}
	if len(output) == 0 || !strings.Contains(output[0], "Unknown command") {
		t.Errorf("expected unknown command message, got %v", output)
	}
}

func TestHandleMeta_State(t *testing.T) {
	m := newTestModel(t)

	output, quit := m.handleMeta("/state")
	if quit {
		t.Error("state should not quit")
	}

	joined := strings.Join(output, "\n")
	for _, want := range []string{"Level: 1/2 First", "Turn: 0", "Position: (0,0)", "Chests left: 1"} {
		if !strings.Contains(joined, want) {
			t.Errorf("expected %q in state output", want)
		}
	}
}

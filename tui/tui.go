package tui

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/nathoo/nordicgrid/engine"
	"github.com/nathoo/nordicgrid/engine/save"
	"github.com/nathoo/nordicgrid/engine/state"
	"github.com/nathoo/nordicgrid/types"
)

// Model is the Bubble Tea model for the Nordic Grid TUI.
type Model struct {
	campaign *engine.Campaign

	viewport viewport.Model
	input    textinput.Model
	help     help.Model
	keys     keyMap
	history  *History
	log      *messageLog

	cursor    types.Coord // grid cell under the pointer
	hasCursor bool
	pressed   bool // left button is down; a press acts once until released

	width    int
	height   int
	ready    bool
	trace    bool
	finished bool
	quitting bool
	lastCmd  string
	saveDir  string
}

// gameOutputMsg carries output into the Update loop.
type gameOutputMsg struct {
	input    string   // echoed player input (empty for level intros)
	lines    []string // output lines
	isSystem bool     // true for meta-command output
}

type keyMap struct {
	Submit      key.Binding
	Cancel      key.Binding
	Close       key.Binding
	HistoryPrev key.Binding
	HistoryNext key.Binding
	PageUp      key.Binding
	PageDown    key.Binding
	Quit        key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Submit:      key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "run command")),
		Cancel:      key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "cancel move")),
		Close:       key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "close explanation")),
		HistoryPrev: key.NewBinding(key.WithKeys("up"), key.WithHelp("↑", "previous command")),
		HistoryNext: key.NewBinding(key.WithKeys("down"), key.WithHelp("↓", "next command")),
		PageUp:      key.NewBinding(key.WithKeys("pgup"), key.WithHelp("pgup", "scroll up")),
		PageDown:    key.NewBinding(key.WithKeys("pgdown"), key.WithHelp("pgdn", "scroll down")),
		Quit:        key.NewBinding(key.WithKeys("ctrl+c"), key.WithHelp("ctrl+c", "quit")),
	}
}

// ShortHelp implements help.KeyMap.
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Submit, k.Cancel, k.Close, k.PageUp, k.Quit}
}

// FullHelp implements help.KeyMap.
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Submit, k.HistoryPrev, k.HistoryNext},
		{k.Cancel, k.Close},
		{k.PageUp, k.PageDown, k.Quit},
	}
}

// New creates a TUI model wired to the given campaign.
func New(c *engine.Campaign, saveDir string) Model {
	ti := textinput.New()
	ti.Prompt = "> "
	ti.Focus()
	ti.CharLimit = 256
	ti.PromptStyle = styleInputPrompt

	return Model{
		campaign: c,
		input:    ti,
		help:     help.New(),
		keys:     defaultKeyMap(),
		history:  NewHistory(100),
		log:      newMessageLog(500),
		saveDir:  saveDir,
	}
}

// Run starts the Bubble Tea program.
func Run(c *engine.Campaign, saveDir string) error {
	m := New(c, saveDir)
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseAllMotion())
	_, err := p.Run()
	return err
}

func (m Model) engine() *engine.Engine {
	return m.campaign.Current()
}

// Init returns the initial command that introduces the first level.
func (m Model) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, m.initialOutput())
}

func (m Model) initialOutput() tea.Cmd {
	lines := append(m.levelIntro(),
		"Click a card to play it, then click a marked tile to move there.",
		"You can also type commands. Type /help for a list.",
	)
	return func() tea.Msg {
		return gameOutputMsg{lines: lines}
	}
}

func (m Model) levelIntro() []string {
	return []string{fmt.Sprintf("Level %d/%d: %s",
		m.campaign.Index()+1, len(m.campaign.Levels), m.engine().State.Level.Name)}
}

// Update handles messages (keys, mouse, window resize, game output).
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

		if !m.ready {
			m.viewport = viewport.New(m.width, 1)
			m.viewport.KeyMap = viewportKeyMap()
			m.ready = true
		}
		m.help.Width = m.width
		m.refreshViewport()

	case tea.MouseMsg:
		if tea.MouseEvent(msg).IsWheel() {
			var vpCmd tea.Cmd
			m.viewport, vpCmd = m.viewport.Update(msg)
			return m, vpCmd
		}
		return m.handleMouse(msg), nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit

		case key.Matches(msg, m.keys.Close) && m.explaining() && m.input.Value() == "":
			m.engine().State.Explainer.Dismiss()
			m.refreshViewport()
			return m, nil

		case key.Matches(msg, m.keys.Cancel):
			switch {
			case m.explaining():
				m.engine().State.Explainer.Dismiss()
				m.refreshViewport()
			case m.engine().Phase() == engine.AwaitingMoveTarget:
				m = m.runResult("cancel", m.engine().Cancel())
			}
			return m, nil

		case key.Matches(msg, m.keys.Submit):
			return m.handleEnter()

		case key.Matches(msg, m.keys.HistoryPrev):
			if prev, ok := m.history.Prev(); ok {
				m.input.SetValue(prev)
				m.input.CursorEnd()
			}
			return m, nil

		case key.Matches(msg, m.keys.HistoryNext):
			if next, ok := m.history.Next(); ok {
				m.input.SetValue(next)
				m.input.CursorEnd()
			} else {
				m.input.SetValue("")
				m.history.ResetCursor()
			}
			return m, nil

		case key.Matches(msg, m.keys.PageUp, m.keys.PageDown):
			var vpCmd tea.Cmd
			m.viewport, vpCmd = m.viewport.Update(msg)
			return m, vpCmd
		}

	case gameOutputMsg:
		m = m.appendOutput(msg)
	}

	var inputCmd tea.Cmd
	m.input, inputCmd = m.input.Update(msg)
	cmds = append(cmds, inputCmd)

	return m, tea.Batch(cmds...)
}

func (m Model) explaining() bool {
	_, ok := m.engine().State.Explainer.Current()
	return ok
}

// handleMouse tracks the pointer and turns left-button presses into card
// activations and move confirmations. A press acts once; holding the button
// or dragging does nothing more until it is released.
func (m Model) handleMouse(msg tea.MouseMsg) Model {
	if !m.ready || m.finished {
		return m
	}

	switch msg.Action {
	case tea.MouseActionRelease:
		m.pressed = false
		return m

	case tea.MouseActionMotion:
		m.hover(msg.X, msg.Y)
		return m

	case tea.MouseActionPress:
		if msg.Button != tea.MouseButtonLeft || m.pressed {
			return m
		}
		m.pressed = true
		m.hover(msg.X, msg.Y)

		eng := m.engine()
		size := eng.State.Grid.Size()
		if i, ok := cardAt(msg.X, msg.Y, size, eng.State.Hand.Len()); ok {
			return m.runResult(fmt.Sprintf("play %d", i+1), eng.Activate(i))
		}
		if c, ok := cellAt(msg.X, msg.Y, size); ok && eng.Phase() == engine.AwaitingMoveTarget {
			return m.runResult(fmt.Sprintf("go %d %d", c.X, c.Y), eng.Confirm(c))
		}
	}
	return m
}

// hover moves the board cursor and, while no move is pending, selects the
// card under the pointer.
func (m *Model) hover(x, y int) {
	eng := m.engine()
	size := eng.State.Grid.Size()

	m.cursor, m.hasCursor = cellAt(x, y, size)
	if eng.Phase() != engine.Idle {
		return
	}
	if i, ok := cardAt(x, y, size, eng.State.Hand.Len()); ok {
		eng.State.Hand.Select(i)
	}
}

// handleEnter processes the submitted input line.
func (m Model) handleEnter() (tea.Model, tea.Cmd) {
	input := strings.TrimSpace(m.input.Value())
	m.input.SetValue("")

	if input == "" {
		return m, nil
	}

	m.history.Push(input)
	m.history.ResetCursor()

	// Handle "again".
	if strings.EqualFold(input, "again") {
		if m.lastCmd == "" {
			m = m.appendOutput(gameOutputMsg{
				input: input, lines: []string{"Nothing to repeat."}, isSystem: true,
			})
			return m, nil
		}
		input = m.lastCmd
	} else {
		m.lastCmd = input
	}

	// Meta-commands.
	if strings.HasPrefix(input, "/") {
		output, quit := m.handleMeta(input)
		m = m.appendOutput(gameOutputMsg{input: input, lines: output, isSystem: true})
		if quit {
			m.quitting = true
			return m, tea.Quit
		}
		return m, nil
	}

	if m.finished {
		m = m.appendOutput(gameOutputMsg{input: input, lines: []string{"The campaign is over. Press ctrl+c to quit."}})
		return m, nil
	}

	// Game command.
	return m.runResult(input, m.engine().Step(input)), nil
}

// runResult logs a result and moves on to the next level once the current
// one is complete.
func (m Model) runResult(input string, result types.Result) Model {
	output := result.Output
	if m.trace {
		output = append(output, m.formatTrace(result)...)
	}
	m = m.appendOutput(gameOutputMsg{input: input, lines: output})

	if !m.engine().Complete() || m.finished {
		return m
	}
	m.hasCursor = false
	if m.campaign.Advance() {
		return m.appendOutput(gameOutputMsg{lines: m.levelIntro()})
	}
	m.finished = true
	return m.appendOutput(gameOutputMsg{lines: []string{
		"You opened every chest in every level. Well done!",
		"Press ctrl+c to quit.",
	}})
}

// appendOutput adds lines to the log and refreshes the viewport.
func (m Model) appendOutput(msg gameOutputMsg) Model {
	if msg.input != "" {
		m.log.add(rawLine{text: "> " + msg.input, isInput: true})
	}

	for _, line := range msg.lines {
		rl := rawLine{text: line, isSystem: msg.isSystem}
		if !msg.isSystem {
			rl.kind = classifyLine(line)
		}
		m.log.add(rl)
	}

	// Blank line separator between turns.
	m.log.add(rawLine{})

	m.refreshViewport()

	return m
}

// headerHeight is the number of rows above the log: title, board, hand,
// stats and the explanation panel when one is shown.
func (m Model) headerHeight() int {
	h := 1 + 1 + m.engine().State.Grid.Size() + 2
	if panel := renderExplainer(m.engine(), m.width); panel != "" {
		h += lipgloss.Height(panel)
	}
	return h
}

// refreshViewport re-sizes the log to the space left by the header, then
// re-wraps and re-styles all raw lines at the current width.
func (m *Model) refreshViewport() {
	if !m.ready {
		return
	}

	vpHeight := m.height - m.headerHeight() - 3 // status bar, help, input
	if vpHeight < 1 {
		vpHeight = 1
	}
	m.viewport.Width = m.width
	m.viewport.Height = vpHeight

	width := m.width
	if width < 10 {
		width = 10
	}

	var styled []string
	for _, rl := range m.log.all() {
		if rl.text == "" {
			styled = append(styled, "")
			continue
		}

		wrapped := wordWrap(rl.text, width)

		switch {
		case rl.isInput:
			styled = append(styled, stylePlayerInput.Render(wrapped))
		case rl.isSystem:
			styled = append(styled, styledSystemMsg(wrapped))
		default:
			styled = append(styled, renderLineKind(wrapped, rl.kind))
		}
	}

	m.viewport.SetContent(strings.Join(styled, "\n"))
	m.viewport.GotoBottom()
}

// wordWrap wraps text to fit within the given width, breaking at word
// boundaries.
func wordWrap(text string, width int) string {
	if width <= 0 || len(text) <= width {
		return text
	}

	var result strings.Builder
	words := strings.Fields(text)
	lineLen := 0

	for i, word := range words {
		wLen := len(word)

		if i == 0 {
			result.WriteString(word)
			lineLen = wLen
			continue
		}

		if lineLen+1+wLen > width {
			result.WriteString("\n")
			result.WriteString(word)
			lineLen = wLen
		} else {
			result.WriteString(" ")
			result.WriteString(word)
			lineLen += 1 + wLen
		}
	}

	return result.String()
}

// View renders the full layout: title, board, hand, stats, explanation,
// log, status bar, help and input.
func (m Model) View() string {
	if m.quitting {
		return ""
	}
	if !m.ready {
		return "Loading..."
	}

	eng := m.engine()
	var cursor *types.Coord
	if m.hasCursor {
		cursor = &m.cursor
	}

	parts := []string{
		styleTitle.Render(m.levelIntro()[0]),
		renderBoard(eng, cursor),
		renderHand(eng),
		styleStats.Render(eng.StatsLine()),
	}
	if panel := renderExplainer(eng, m.width); panel != "" {
		parts = append(parts, panel)
	}
	parts = append(parts,
		m.viewport.View(),
		m.renderStatusBar(),
		m.help.View(m.keys),
		m.input.View(),
	)
	return strings.Join(parts, "\n")
}

// handleMeta dispatches meta-commands. Returns output lines and quit flag.
func (m *Model) handleMeta(input string) ([]string, bool) {
	parts := strings.Fields(input)
	cmd := parts[0]
	var arg string
	if len(parts) > 1 {
		arg = parts[1]
	}

	switch cmd {
	case "/quit", "/exit":
		return []string{"Goodbye."}, true

	case "/save":
		return m.cmdSave(arg), false

	case "/load":
		return m.cmdLoad(arg), false

	case "/help":
		return m.cmdHelp(), false

	case "/state":
		return m.cmdState(), false

	case "/trace":
		m.trace = !m.trace
		if m.trace {
			return []string{"Trace output enabled."}, false
		}
		return []string{"Trace output disabled."}, false

	default:
		return []string{fmt.Sprintf("Unknown command: %s. Type /help for available commands.", cmd)}, false
	}
}

func (m *Model) cmdSave(name string) []string {
	if name == "" {
		name = "quicksave"
	}

	data, err := m.campaign.Save()
	if err != nil {
		return []string{fmt.Sprintf("Save failed: %v", err)}
	}

	if err := os.MkdirAll(m.saveDir, 0o755); err != nil {
		return []string{fmt.Sprintf("Save failed: %v", err)}
	}

	path := filepath.Join(m.saveDir, name+".json")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return []string{fmt.Sprintf("Save failed: %v", err)}
	}

	return []string{fmt.Sprintf("Game saved to %s.", name)}
}

func (m *Model) cmdLoad(name string) []string {
	if name == "" {
		name = "quicksave"
	}

	path := filepath.Join(m.saveDir, name+".json")
	data, err := os.ReadFile(path)
	if err != nil {
		return []string{fmt.Sprintf("Load failed: %v", err)}
	}

	sd, err := save.Load(data)
	if err != nil {
		return []string{fmt.Sprintf("Load failed: %v", err)}
	}

	if err := m.campaign.Restore(sd); err != nil {
		return []string{fmt.Sprintf("Load failed: %v", err)}
	}
	m.finished = false
	m.hasCursor = false
	m.pressed = false

	return []string{fmt.Sprintf("Game loaded from %s (level %d, turn %d).", name, sd.LevelIndex+1, sd.Turn)}
}

func (m *Model) cmdHelp() []string {
	return []string{
		"System:",
		"  /save [name]  Save game (default: quicksave)",
		"  /load [name]  Load game (default: quicksave)",
		"  /quit         Exit game",
		"  /help         Show this help",
		"  /state        Debug: dump current state",
		"  /trace        Toggle debug trace output",
		"",
		"Mouse: point at a card to select it, click to play it.",
		"After a Move card, click a marked tile (*) to move there.",
		"",
		"Game commands:",
		"  play <n|name> (p)   Play a card by number or name",
		"  go <x> <y> (to)     Confirm the destination of a move",
		"  cancel (esc)        Cancel a pending move",
		"  targets, stats, hand, look, explain [card]",
		"  again               Repeat your last command",
		"",
		"Navigation: PgUp/PgDn to scroll, Up/Down for command history",
	}
}

func (m *Model) cmdState() []string {
	eng := m.engine()
	s := eng.State
	output := []string{
		fmt.Sprintf("Level: %d/%d %s", m.campaign.Index()+1, len(m.campaign.Levels), s.Level.Name),
		fmt.Sprintf("Turn: %d", s.TurnCount),
		fmt.Sprintf("Phase: %s", eng.Phase()),
		fmt.Sprintf("Position: %s", s.Player.Position()),
		fmt.Sprintf("Hand: %v", s.Hand.Cards()),
		fmt.Sprintf("Chests left: %d", state.ChestsLeft(s)),
	}
	if targets := eng.Targets(); len(targets) > 0 {
		output = append(output, fmt.Sprintf("Targets: %v", targets))
	}
	return output
}

func (m *Model) formatTrace(result types.Result) []string {
	var lines []string
	if len(result.Effects) > 0 {
		lines = append(lines, fmt.Sprintf("[trace] Effects: %d", len(result.Effects)))
		for _, e := range result.Effects {
			lines = append(lines, fmt.Sprintf("[trace]   %s %v", e.Type, e.Params))
		}
	}
	if len(result.Events) > 0 {
		lines = append(lines, fmt.Sprintf("[trace] Events: %d", len(result.Events)))
		for _, e := range result.Events {
			lines = append(lines, fmt.Sprintf("[trace]   %s", e.Type))
		}
	}
	return lines
}

// viewportKeyMap returns a viewport keymap with Up/Down disabled
// (we use those for input history).
func viewportKeyMap() viewport.KeyMap {
	return viewport.KeyMap{
		PageDown:     key.NewBinding(key.WithKeys("pgdown")),
		PageUp:       key.NewBinding(key.WithKeys("pgup")),
		HalfPageDown: key.NewBinding(key.WithKeys("ctrl+d")),
		HalfPageUp:   key.NewBinding(key.WithKeys("ctrl+u")),
		Up:           key.NewBinding(key.WithDisabled()),
		Down:         key.NewBinding(key.WithDisabled()),
	}
}

// Package cli provides terminal I/O, output formatting, and meta-command
// dispatch for playing a campaign as plain text.
package cli

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/nathoo/nordicgrid/engine"
	"github.com/nathoo/nordicgrid/engine/explainer"
	"github.com/nathoo/nordicgrid/engine/save"
	"github.com/nathoo/nordicgrid/engine/state"
	"github.com/nathoo/nordicgrid/types"
)

// CLI handles terminal interaction with the player.
type CLI struct {
	Campaign  *engine.Campaign
	In        io.Reader
	Out       io.Writer
	SaveDir   string
	Trace     bool
	EchoInput bool   // echo each input line after the prompt (for script playback)
	lastCmd   string // for "again" repeat
}

// New creates a CLI wired to the given campaign.
func New(c *engine.Campaign, saveDir string) *CLI {
	return &CLI{
		Campaign: c,
		In:       os.Stdin,
		Out:      os.Stdout,
		SaveDir:  saveDir,
	}
}

func (c *CLI) engine() *engine.Engine {
	return c.Campaign.Current()
}

// Run starts the game loop. It introduces the level, then loops:
// prompt → input → dispatch → output. It returns when the input ends,
// the player quits, or the last level is complete.
func (c *CLI) Run() {
	c.startLevel()

	scanner := bufio.NewScanner(c.In)
	for {
		c.print(c.prompt())
		if !scanner.Scan() {
			c.printLine("")
			break
		}
		input := strings.TrimSpace(scanner.Text())
		if input == "" {
			continue
		}
		// Skip comment lines (for script files).
		if strings.HasPrefix(input, "#") {
			continue
		}
		if c.EchoInput {
			c.printLine(input)
		}

		// Meta-commands start with '/'.
		if strings.HasPrefix(input, "/") {
			if c.handleMeta(input) {
				return // /quit
			}
			continue
		}

		// "again" repeats the last game command.
		if strings.EqualFold(input, "again") {
			if c.lastCmd == "" {
				c.printLine("Nothing to repeat.")
				continue
			}
			input = c.lastCmd
		} else {
			c.lastCmd = input
		}

		result := c.engine().Step(input)
		c.printResult(result)

		if c.Trace {
			c.printTrace(result)
		}

		if c.engine().Complete() {
			if !c.Campaign.Advance() {
				c.printLine("")
				c.printLine("You opened every chest in every level. Well done!")
				return
			}
			c.printLine("")
			c.startLevel()
		}
	}
}

// startLevel prints the level header, a pending explanation and the board.
func (c *CLI) startLevel() {
	eng := c.engine()
	c.printLine(fmt.Sprintf("Level %d/%d: %s", c.Campaign.Index()+1, len(c.Campaign.Levels), eng.State.Level.Name))
	c.printExplanation()
	c.printResult(eng.Step("look"))
}

func (c *CLI) prompt() string {
	if c.engine().Phase() == engine.AwaitingMoveTarget {
		return "move> "
	}
	return "> "
}

// handleMeta dispatches meta-commands. Returns true if the game should exit.
func (c *CLI) handleMeta(input string) bool {
	parts := strings.Fields(input)
	cmd := parts[0]
	var arg string
	if len(parts) > 1 {
		arg = parts[1]
	}

	switch cmd {
	case "/quit", "/exit":
		c.printSystem("Goodbye.")
		return true

	case "/save":
		c.cmdSave(arg)

	case "/load":
		c.cmdLoad(arg)

	case "/help":
		c.cmdHelp()

	case "/state":
		c.cmdState()

	case "/trace":
		c.Trace = !c.Trace
		if c.Trace {
			c.printSystem("Trace output enabled.")
		} else {
			c.printSystem("Trace output disabled.")
		}

	default:
		c.printSystem(fmt.Sprintf("Unknown command: %s. Type /help for available commands.", cmd))
	}

	return false
}

func (c *CLI) cmdSave(name string) {
	if name == "" {
		name = "quicksave"
	}

	data, err := c.Campaign.Save()
	if err != nil {
		c.printSystem(fmt.Sprintf("Save failed: %v", err))
		return
	}

	if err := os.MkdirAll(c.SaveDir, 0o755); err != nil {
		c.printSystem(fmt.Sprintf("Save failed: %v", err))
		return
	}

	path := filepath.Join(c.SaveDir, name+".json")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		c.printSystem(fmt.Sprintf("Save failed: %v", err))
		return
	}

	c.printSystem(fmt.Sprintf("Game saved to %s.", name))
}

func (c *CLI) cmdLoad(name string) {
	if name == "" {
		name = "quicksave"
	}

	path := filepath.Join(c.SaveDir, name+".json")
	data, err := os.ReadFile(path)
	if err != nil {
		c.printSystem(fmt.Sprintf("Load failed: %v", err))
		return
	}

	sd, err := save.Load(data)
	if err != nil {
		c.printSystem(fmt.Sprintf("Load failed: %v", err))
		return
	}

	if err := c.Campaign.Restore(sd); err != nil {
		c.printSystem(fmt.Sprintf("Load failed: %v", err))
		return
	}
	c.printSystem(fmt.Sprintf("Game loaded from %s (level %d, turn %d).", name, sd.LevelIndex+1, sd.Turn))

	// Show the board after loading.
	c.printResult(c.engine().Step("look"))
}

func (c *CLI) cmdHelp() {
	help := []string{
		"System:",
		"  /save [name]  Save game (default: quicksave)",
		"  /load [name]  Load game (default: quicksave)",
		"  /quit         Exit game",
		"  /help         Show this help",
		"  /state        Debug: dump current state",
		"  /trace        Toggle debug trace output",
		"",
		"Game commands:",
		"  look (l)              Show the board, hand and stats",
		"  hand (h)              List your cards",
		"  play <n|name> (p)     Play a card by number or name",
		"  go <x> <y> (to)       Confirm the destination of a move",
		"  cancel (c)            Cancel a pending move",
		"  targets (t)           List legal move destinations",
		"  stats (s)             Show attack, armor and health",
		"  explain [card] (x)    Explain a card",
		"  close                 Close the current explanation",
		"  again                 Repeat your last command",
		"",
		"Board: @ you, T tree, C chest, * move target. Columns are x, rows are y.",
	}
	for _, line := range help {
		c.printLine(line)
	}
}

func (c *CLI) cmdState() {
	eng := c.engine()
	s := eng.State
	c.printSystem(fmt.Sprintf("Level: %d/%d %s", c.Campaign.Index()+1, len(c.Campaign.Levels), s.Level.Name))
	c.printSystem(fmt.Sprintf("Turn: %d", s.TurnCount))
	c.printSystem(fmt.Sprintf("Phase: %s", eng.Phase()))
	c.printSystem(fmt.Sprintf("Position: %s", s.Player.Position()))
	c.printSystem(fmt.Sprintf("Stats: %s", eng.StatsLine()))
	c.printSystem(fmt.Sprintf("Hand: %v", s.Hand.Cards()))
	c.printSystem(fmt.Sprintf("Chests left: %d", state.ChestsLeft(s)))
	if targets := eng.Targets(); len(targets) > 0 {
		c.printSystem(fmt.Sprintf("Targets: %v", targets))
	}
}

// printExplanation prints the explanation on screen, then closes it.
// Text mode has no panel to keep open.
func (c *CLI) printExplanation() {
	x := c.engine().State.Explainer
	if card, ok := x.Current(); ok {
		c.printLine(explainer.Title(card) + ": " + explainer.Text(card))
		x.Dismiss()
	}
}

func (c *CLI) printTrace(result types.Result) {
	if len(result.Effects) > 0 {
		c.printSystem(fmt.Sprintf("[trace] Effects: %d", len(result.Effects)))
		for _, e := range result.Effects {
			c.printSystem(fmt.Sprintf("[trace]   %s %v", e.Type, e.Params))
		}
	}
	if len(result.Events) > 0 {
		c.printSystem(fmt.Sprintf("[trace] Events: %d", len(result.Events)))
		for _, e := range result.Events {
			c.printSystem(fmt.Sprintf("[trace]   %s", e.Type))
		}
	}
}

func (c *CLI) printResult(result types.Result) {
	for _, line := range result.Output {
		c.printLine(line)
	}
	// Explanations triggered by the command were printed with the output.
	c.engine().State.Explainer.Dismiss()
}

func (c *CLI) printLine(text string) {
	fmt.Fprintln(c.Out, text)
}

func (c *CLI) print(text string) {
	fmt.Fprint(c.Out, text)
}

func (c *CLI) printSystem(text string) {
	fmt.Fprintf(c.Out, "[%s]\n", text)
}

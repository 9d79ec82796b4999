package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Styles used throughout the TUI.
var (
	styleStatusBar = lipgloss.NewStyle().
			Background(lipgloss.Color("236")).
			Foreground(lipgloss.Color("252")).
			Bold(true)

	styleInputPrompt = lipgloss.NewStyle().
				Foreground(lipgloss.Color("34"))

	styleTitle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("117")).
			Bold(true)

	styleNarration = lipgloss.NewStyle().
			Foreground(lipgloss.Color("255"))

	styleEvent = lipgloss.NewStyle().
			Foreground(lipgloss.Color("220")).
			Bold(true)

	styleExplain = lipgloss.NewStyle().
			Foreground(lipgloss.Color("228"))

	styleSystem = lipgloss.NewStyle().
			Foreground(lipgloss.Color("243"))

	styleError = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196"))

	stylePlayerInput = lipgloss.NewStyle().
				Foreground(lipgloss.Color("34"))

	styleTrace = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240"))
)

// Board and hand styles.
var (
	styleAxis   = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	styleEmpty  = lipgloss.NewStyle().Foreground(lipgloss.Color("238"))
	styleTree   = lipgloss.NewStyle().Foreground(lipgloss.Color("28")).Bold(true)
	styleChest  = lipgloss.NewStyle().Foreground(lipgloss.Color("214")).Bold(true)
	stylePlayer = lipgloss.NewStyle().Foreground(lipgloss.Color("45")).Bold(true)
	styleTarget = lipgloss.NewStyle().Foreground(lipgloss.Color("81"))

	styleCursor = lipgloss.NewStyle().Background(lipgloss.Color("24")).Foreground(lipgloss.Color("255")).Bold(true)

	stylePlayerOnChest = stylePlayer.Background(lipgloss.Color("94"))
	targetBackground   = lipgloss.Color("23")

	styleCard = lipgloss.NewStyle().
			Foreground(lipgloss.Color("252")).
			Background(lipgloss.Color("237"))

	styleCardSelected = lipgloss.NewStyle().
				Foreground(lipgloss.Color("16")).
				Background(lipgloss.Color("117"))

	styleCardPending = lipgloss.NewStyle().
				Foreground(lipgloss.Color("16")).
				Background(lipgloss.Color("220")).
				Bold(true)

	styleStats = lipgloss.NewStyle().Foreground(lipgloss.Color("250"))

	styleExplainer = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("228")).
			Padding(0, 1)

	styleExplainerTitle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("228")).
				Bold(true)

	styleHint = lipgloss.NewStyle().Foreground(lipgloss.Color("243")).Italic(true)
)

// lineKind identifies the type of an output line for styling.
type lineKind int

const (
	kindNarration lineKind = iota
	kindTitle
	kindEvent
	kindExplain
	kindSystem
	kindError
	kindTrace
)

// classifyLine determines what kind of output line this is.
func classifyLine(line string) lineKind {
	switch {
	case strings.HasPrefix(line, "[trace]"):
		return kindTrace
	case strings.HasPrefix(line, "[") && strings.HasSuffix(line, "]"):
		return kindSystem
	case strings.HasPrefix(line, "Level "):
		return kindTitle
	case strings.HasPrefix(line, "You open the chest"),
		strings.HasPrefix(line, "Every chest is open"),
		strings.HasPrefix(line, "You opened every chest"):
		return kindEvent
	case isExplanation(line):
		return kindExplain
	case strings.HasPrefix(line, "You can't"),
		strings.HasPrefix(line, "You don't"),
		strings.HasPrefix(line, "No move is pending"),
		strings.HasPrefix(line, "There is"),
		strings.HasPrefix(line, "I don't know"),
		strings.HasPrefix(line, "Card "):
		return kindError
	default:
		return kindNarration
	}
}

// isExplanation matches "MOVE: The MOVE card ..." lines.
func isExplanation(line string) bool {
	title, _, ok := strings.Cut(line, ": ")
	return ok && title != "" && title == strings.ToUpper(title) && !strings.ContainsAny(title, " [")
}

// renderLineKind applies the style for a given lineKind.
func renderLineKind(line string, kind lineKind) string {
	switch kind {
	case kindTitle:
		return styleTitle.Render(line)
	case kindEvent:
		return styleEvent.Render(line)
	case kindExplain:
		return styleExplain.Render(line)
	case kindSystem:
		return styleSystem.Render(line)
	case kindError:
		return styleError.Render(line)
	case kindTrace:
		return styleTrace.Render(line)
	default:
		return styleNarration.Render(line)
	}
}

// styledSystemMsg renders a system message in gray with brackets.
func styledSystemMsg(text string) string {
	return styleSystem.Render("[" + text + "]")
}

package formatter

import (
	"github.com/alexanderramin/courseadvisor/internal/dialogue"
	"github.com/charmbracelet/lipgloss"
)

const AdvisorName = "Brian"

var (
	styleAdvisor = lipgloss.NewStyle().Foreground(ColorHeader).Bold(true)
	styleUser    = lipgloss.NewStyle().Foreground(ColorBlue).Bold(true)
	styleGesture = lipgloss.NewStyle().Foreground(ColorDim).Italic(true)
)

// AdvisorLine renders one advisor utterance of the chat transcript.
func AdvisorLine(text string) string {
	return styleAdvisor.Render(AdvisorName+":") + " " + StyleFg.Render(text)
}

func UserLine(text string) string {
	if text == "" {
		return styleUser.Render("You:") + " " + Dim("(silence)")
	}
	return styleUser.Render("You:") + " " + text
}

// GestureLine renders a nonverbal cue as a stage direction.
func GestureLine(g dialogue.Gesture) string {
	return styleGesture.Render("*" + GestureVerb(g) + "*")
}

func GestureVerb(g dialogue.Gesture) string {
	switch g {
	case dialogue.GestureSmile:
		return "smiles"
	case dialogue.GestureBigSmile:
		return "grins"
	case dialogue.GestureNod:
		return "nods"
	case dialogue.GestureShake:
		return "shakes head"
	case dialogue.GestureBrowFrown:
		return "frowns"
	case dialogue.GestureSurprise:
		return "looks surprised"
	case dialogue.GestureOh:
		return "oh!"
	default:
		return string(g)
	}
}

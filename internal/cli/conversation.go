package cli

import (
	"fmt"
	"io"

	"github.com/alexanderramin/courseadvisor/internal/cli/formatter"
	"github.com/alexanderramin/courseadvisor/internal/dialogue"
)

// transcriptConversation collects the rendered chat for the TUI.
type transcriptConversation struct {
	lines []string
}

func (c *transcriptConversation) Ask(prompt string) { c.add(formatter.AdvisorLine(prompt)) }
func (c *transcriptConversation) Say(prompt string) { c.add(formatter.AdvisorLine(prompt)) }
func (c *transcriptConversation) Gesture(g dialogue.Gesture) {
	c.add(formatter.GestureLine(g))
}
func (c *transcriptConversation) Listen()          {}
func (c *transcriptConversation) User(text string) { c.add(formatter.UserLine(text)) }

func (c *transcriptConversation) add(line string) {
	c.lines = append(c.lines, line)
}

// printConversation writes the chat to a stream for line mode.
type printConversation struct {
	w io.Writer
}

func (c printConversation) Ask(prompt string) { fmt.Fprintln(c.w, formatter.AdvisorLine(prompt)) }
func (c printConversation) Say(prompt string) { fmt.Fprintln(c.w, formatter.AdvisorLine(prompt)) }
func (c printConversation) Gesture(g dialogue.Gesture) {
	fmt.Fprintln(c.w, formatter.GestureLine(g))
}
func (c printConversation) Listen() { fmt.Fprint(c.w, "> ") }

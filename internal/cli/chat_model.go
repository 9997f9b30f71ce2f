package cli

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/courseadvisor/internal/cli/formatter"
	"github.com/alexanderramin/courseadvisor/internal/dialogue"
	"github.com/alexanderramin/courseadvisor/internal/domain"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
)

type chatKeyMap struct {
	Send       key.Binding
	Quit       key.Binding
	ScrollUp   key.Binding
	ScrollDown key.Binding
}

func defaultChatKeys() chatKeyMap {
	return chatKeyMap{
		Send:       key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "send")),
		Quit:       key.NewBinding(key.WithKeys("ctrl+c"), key.WithHelp("ctrl+c", "quit")),
		ScrollUp:   key.NewBinding(key.WithKeys("pgup"), key.WithHelp("pgup", "scroll up")),
		ScrollDown: key.NewBinding(key.WithKeys("pgdown"), key.WithHelp("pgdn", "scroll down")),
	}
}

// chatStartMsg opens the session once the program runs.
type chatStartMsg struct{}

// waitTimeoutMsg is the Waiting timer firing. Ticks from an older generation
// are stale and ignored.
type waitTimeoutMsg struct{ gen int }

const chatChromeHeight = 5

// chatModel is the bubbletea front end of a chat: a transcript viewport and
// an input line. An empty submission is delivered as silence.
type chatModel struct {
	ctx       context.Context
	rt        *dialogue.Runtime
	conv      *transcriptConversation
	threshold float64

	input    textinput.Model
	viewport viewport.Model
	keys     chatKeyMap
	width    int
	ready    bool

	timerGen int
	quitting bool
	err      error
}

func newChatModel(ctx context.Context, rt *dialogue.Runtime, conv *transcriptConversation, threshold float64) chatModel {
	ti := textinput.New()
	ti.Focus()
	ti.Prompt = ""
	ti.Placeholder = "say something, or press enter to stay silent"
	ti.CharLimit = 300

	return chatModel{
		ctx:       ctx,
		rt:        rt,
		conv:      conv,
		threshold: threshold,
		input:     ti,
		keys:      defaultChatKeys(),
	}
}

// ── bubbletea interface ──────────────────────────────────────────────────────

func (m chatModel) Init() tea.Cmd {
	return tea.Batch(
		textinput.Blink,
		func() tea.Msg { return chatStartMsg{} },
	)
}

func (m chatModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.input.Width = msg.Width - 3
		height := max(msg.Height-chatChromeHeight, 3)
		if !m.ready {
			m.viewport = viewport.New(msg.Width, height)
			m.ready = true
		} else {
			m.viewport.Width = msg.Width
			m.viewport.Height = height
		}
		m.refresh()
		return m, nil

	case chatStartMsg:
		return m, m.deliver(m.rt.Start)

	case waitTimeoutMsg:
		if msg.gen != m.timerGen || m.rt.Machine().State() != dialogue.StateWaiting {
			return m, nil
		}
		return m, m.deliver(m.rt.Timeout)

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit
		case key.Matches(msg, m.keys.Send):
			return m, m.send()
		case key.Matches(msg, m.keys.ScrollUp), key.Matches(msg, m.keys.ScrollDown):
			var cmd tea.Cmd
			m.viewport, cmd = m.viewport.Update(msg)
			return m, cmd
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m chatModel) View() string {
	var b strings.Builder
	b.WriteString(m.header())
	b.WriteString("\n")
	if m.ready {
		b.WriteString(m.viewport.View())
	} else {
		b.WriteString(strings.Join(m.conv.lines, "\n"))
	}
	b.WriteString("\n")

	if m.quitting {
		return b.String() + formatter.Dim("Session closed.") + "\n"
	}
	if m.err != nil {
		b.WriteString(formatter.StyleRed.Render("error: "+m.err.Error()) + "\n")
	}
	b.WriteString(formatter.StylePurple.Render("you") + formatter.Dim("> ") + m.input.View() + "\n")
	b.WriteString(formatter.Dim("enter send · empty enter = silence · pgup/pgdn scroll · ctrl+c quit"))
	return b.String()
}

// ── dialogue plumbing ────────────────────────────────────────────────────────

func (m *chatModel) send() tea.Cmd {
	text := strings.TrimSpace(m.input.Value())
	m.input.Reset()
	m.conv.User(text)
	return m.deliver(func(ctx context.Context) error { return m.rt.Utter(ctx, text) })
}

// deliver runs one runtime step, then re-renders and schedules the Waiting
// timer if the step asked for one.
func (m *chatModel) deliver(step func(context.Context) error) tea.Cmd {
	if err := step(m.ctx); err != nil && !errors.Is(err, dialogue.ErrSessionEnded) {
		m.err = err
	}
	m.refresh()

	if m.rt.Done() {
		m.quitting = true
		return tea.Quit
	}
	if d, ok := m.rt.PendingTimer(); ok {
		m.timerGen++
		gen := m.timerGen
		return tea.Tick(d, func(time.Time) tea.Msg { return waitTimeoutMsg{gen: gen} })
	}
	if m.rt.Machine().State() != dialogue.StateWaiting {
		m.timerGen++
	}
	return nil
}

func (m *chatModel) refresh() {
	if !m.ready {
		return
	}
	m.viewport.SetContent(strings.Join(m.conv.lines, "\n"))
	m.viewport.GotoBottom()
}

func (m chatModel) header() string {
	machine := m.rt.Machine()
	c := machine.Cart()
	summary := fmt.Sprintf("%d courses · %s credits", c.Len(), domain.FormatCredits(c.TotalCredits()))
	return formatter.StyleHeader.Render("COURSE ADVISOR") + "  " +
		formatter.Dim(summary) + "  " + formatter.StyleBlue.Render(machine.State().String())
}

package cli

import (
	"context"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/alexanderramin/bazaar/internal/cli/formatter"
	"github.com/alexanderramin/bazaar/internal/service"
)

type chatReplyMsg struct {
	text string
}

type chatKeys struct {
	Send key.Binding
	Quit key.Binding
}

var defaultChatKeys = chatKeys{
	Send: key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "send")),
	Quit: key.NewBinding(key.WithKeys("esc", "ctrl+c"), key.WithHelp("esc", "quit")),
}

// chatModel is the interactive assistant conversation.
type chatModel struct {
	ctx  context.Context
	chat service.ChatService
	keys chatKeys

	input   textinput.Model
	spinner spinner.Model
	waiting bool

	messages []string
}

func newChatModel(ctx context.Context, chat service.ChatService) *chatModel {
	ti := textinput.New()
	ti.Focus()
	ti.Prompt = ""
	ti.CharLimit = 500
	ti.Placeholder = "I'm looking for wireless earbuds under $100"

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = formatter.StylePurple

	return &chatModel{
		ctx:      ctx,
		chat:     chat,
		keys:     defaultChatKeys,
		input:    ti,
		spinner:  sp,
		messages: []string{formatter.FormatChatWelcome()},
	}
}

func (m *chatModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m *chatModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit
		case key.Matches(msg, m.keys.Send):
			return m.send()
		}
	case chatReplyMsg:
		m.waiting = false
		m.messages = append(m.messages, formatter.FormatAssistantReply(msg.text), "")
		return m, nil
	case spinner.TickMsg:
		if !m.waiting {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m *chatModel) send() (tea.Model, tea.Cmd) {
	if m.waiting {
		return m, nil
	}
	query := strings.TrimSpace(m.input.Value())
	m.input.Reset()
	switch strings.ToLower(query) {
	case "":
		return m, nil
	case "/quit", "/exit", "quit", "exit":
		return m, tea.Quit
	}

	m.messages = append(m.messages, formatter.FormatUserLine(query))
	m.waiting = true
	return m, tea.Batch(m.ask(query), m.spinner.Tick)
}

func (m *chatModel) ask(query string) tea.Cmd {
	return func() tea.Msg {
		return chatReplyMsg{text: m.chat.Answer(m.ctx, query)}
	}
}

func (m *chatModel) View() string {
	var b strings.Builder
	for _, line := range m.messages {
		b.WriteString(line)
		b.WriteString("\n")
	}
	if m.waiting {
		b.WriteString(m.spinner.View() + formatter.Dim(" thinking…"))
		return b.String()
	}
	b.WriteString(formatter.StyleBlue.Render("you") + formatter.Dim("> "))
	b.WriteString(m.input.View())
	b.WriteString("\n" + formatter.Dim(m.keys.Send.Help().Key+" "+m.keys.Send.Help().Desc+" · "+m.keys.Quit.Help().Key+" "+m.keys.Quit.Help().Desc))
	return b.String()
}

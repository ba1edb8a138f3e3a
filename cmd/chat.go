package cmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
	"github.com/vkarev/family-points/internal/application"
)

func newChatCmd(app *app) *cobra.Command {
	return &cobra.Command{
		Use:   "chat",
		Short: "Walk through the points workflow interactively",
		RunE: func(cmd *cobra.Command, _ []string) error {
			session, view, err := app.conversation.Start(cmd.Context())
			if err != nil {
				return err
			}

			program := tea.NewProgram(newChatModel(app.conversation, session, view))
			finalModel, err := program.Run()
			if err != nil {
				return err
			}

			chat, ok := finalModel.(chatModel)
			if !ok {
				return fmt.Errorf("unexpected final chat model type")
			}

			return chat.err
		},
	}
}

type stepResultMsg struct {
	session application.Session
	view    application.View
	err     error
}

type chatStyles struct {
	prompt lipgloss.Style
	notice lipgloss.Style
	choice lipgloss.Style
	picked lipgloss.Style
	help   lipgloss.Style
}

func newChatStyles() chatStyles {
	return chatStyles{
		prompt: lipgloss.NewStyle().Foreground(lipgloss.Color("252")),
		notice: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("203")),
		choice: lipgloss.NewStyle().Foreground(lipgloss.Color("250")),
		picked: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("39")),
		help:   lipgloss.NewStyle().Faint(true),
	}
}

// chatModel is the local transport adapter: it turns terminal input into
// typed conversation actions and renders the views the engine returns. The
// session lives here and nowhere else.
type chatModel struct {
	conversation *application.Conversation
	session      application.Session
	view         application.View
	cursor       int
	input        textinput.Model
	styles       chatStyles
	err          error
	quitting     bool
}

func newChatModel(conversation *application.Conversation, session application.Session, view application.View) chatModel {
	input := textinput.New()
	input.Prompt = "> "
	input.CharLimit = 200
	if view.FreeText {
		input.Focus()
	}

	return chatModel{
		conversation: conversation,
		session:      session,
		view:         view,
		input:        input,
		styles:       newChatStyles(),
	}
}

func (m chatModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m chatModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case stepResultMsg:
		if msg.err != nil {
			m.err = msg.err
			m.quitting = true
			return m, tea.Quit
		}
		m.session = msg.session
		m.view = msg.view
		m.cursor = 0
		m.input.SetValue("")
		if m.view.FreeText {
			m.input.Focus()
		} else {
			m.input.Blur()
		}
		return m, nil
	default:
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}
}

func (m chatModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		m.quitting = true
		return m, tea.Quit
	case "esc":
		return m, m.step(application.CancelAction())
	}

	if m.view.FreeText {
		if msg.String() == "enter" {
			text := strings.TrimSpace(m.input.Value())
			if text == "" {
				return m, nil
			}
			return m, m.step(application.TextAction(text))
		}

		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}

	switch msg.String() {
	case "q":
		m.quitting = true
		return m, tea.Quit
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(m.view.Choices)-1 {
			m.cursor++
		}
	case "enter":
		if len(m.view.Choices) > 0 {
			return m, m.step(application.PickAction(m.view.Choices[m.cursor]))
		}
	}

	return m, nil
}

func (m chatModel) step(action application.Action) tea.Cmd {
	conversation := m.conversation
	session := m.session
	return func() tea.Msg {
		next, view, err := conversation.Step(context.Background(), session, action)
		return stepResultMsg{session: next, view: view, err: err}
	}
}

func (m chatModel) View() string {
	if m.quitting {
		return ""
	}

	lines := make([]string, 0, len(m.view.Choices)+4)
	if m.view.Notice != "" {
		lines = append(lines, m.styles.notice.Render(m.view.Notice), "")
	}
	lines = append(lines, m.styles.prompt.Render(m.view.Text), "")

	if m.view.FreeText {
		lines = append(lines, m.input.View())
		lines = append(lines, "", m.styles.help.Render("enter send · esc cancel · ctrl+c quit"))
		return lipgloss.JoinVertical(lipgloss.Left, lines...)
	}

	for i, choice := range m.view.Choices {
		if i == m.cursor {
			lines = append(lines, m.styles.picked.Render("> "+choice.Label))
		} else {
			lines = append(lines, m.styles.choice.Render("  "+choice.Label))
		}
	}
	lines = append(lines, "", m.styles.help.Render("up/down move · enter select · esc cancel · q quit"))

	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

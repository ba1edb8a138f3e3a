package ledger

import (
	"errors"
	"io"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/vkarev/family-points/internal/domain"
)

var ErrUnexpectedRenderModel = errors.New("unexpected final bubbletea model type")

type renderReadyMsg struct{}

type model struct {
	render func(styles) string
	styles styles
	output string
}

func newModel(render func(styles) string) model {
	return model{
		render: render,
		styles: newStyles(),
	}
}

func (m model) Init() tea.Cmd {
	return func() tea.Msg {
		return renderReadyMsg{}
	}
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg.(type) {
	case renderReadyMsg:
		m.output = m.render(m.styles)
		return m, tea.Quit
	default:
		return m, nil
	}
}

func (m model) View() string {
	return m.output
}

// RenderBalances renders the balances table in fixed roster order.
func RenderBalances(roster domain.Roster, balances domain.Balances) (string, error) {
	return run(func(s styles) string {
		return renderBalancesView(roster, balances, s)
	})
}

// RenderHistory renders the most recent limit entries, newest first.
func RenderHistory(entries []domain.HistoryEntry, limit int) (string, error) {
	return run(func(s styles) string {
		return renderHistoryView(entries, limit, s)
	})
}

func run(render func(styles) string) (string, error) {
	p := tea.NewProgram(
		newModel(render),
		tea.WithInput(nil),
		tea.WithOutput(io.Discard),
	)

	finalModel, err := p.Run()
	if err != nil {
		return "", err
	}

	rendered, ok := finalModel.(model)
	if !ok {
		return "", ErrUnexpectedRenderModel
	}

	return rendered.View(), nil
}

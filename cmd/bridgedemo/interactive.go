package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/hostbridge/hostbridge"
	"github.com/hostbridge/hostbridge/remote"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4")).
			Padding(0, 1)

	actionStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#98FB98"))

	selectedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4"))

	resultStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#90EE90"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF6B6B"))

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#666666"))
)

type demoAction struct {
	name      string
	needsArg  bool
	argPrompt string
}

var demoActions = []demoAction{
	{name: "increment", needsArg: true, argPrompt: "delta"},
	{name: "value"},
	{name: "new counter", needsArg: true, argPrompt: "start"},
}

type demoModel struct {
	err     error
	host    *hostbridge.Session
	close   func()
	counter *remote.Object
	input   textinput.Model
	result  string
	sel     int
	state   demoState
}

type demoState int

const (
	stateSelect demoState = iota
	stateInput
	stateResult
)

type connectedMsg struct {
	err     error
	host    *hostbridge.Session
	close   func()
	counter *remote.Object
}

type actionResultMsg struct {
	err     error
	result  string
	counter *remote.Object
}

func newDemoModel() *demoModel {
	return &demoModel{state: stateSelect}
}

func (m *demoModel) Init() tea.Cmd {
	return m.connect
}

func (m *demoModel) connect() tea.Msg {
	host, closeBridge, err := demoSession()
	if err != nil {
		return connectedMsg{err: err}
	}
	c, err := newCounter(host, 0)
	if err != nil {
		closeBridge()
		return connectedMsg{err: err}
	}
	return connectedMsg{host: host, close: closeBridge, counter: c}
}

func (m *demoModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q":
			if m.counter != nil {
				m.counter.Release()
				m.host.Dispatcher().FlushReleases()
			}
			if m.close != nil {
				m.close()
			}
			return m, tea.Quit

		case "up", "k":
			if m.state == stateSelect && m.sel > 0 {
				m.sel--
			}

		case "down", "j":
			if m.state == stateSelect && m.sel < len(demoActions)-1 {
				m.sel++
			}

		case "enter":
			switch m.state {
			case stateSelect:
				a := demoActions[m.sel]
				if !a.needsArg {
					return m, m.runAction
				}
				m.input = textinput.New()
				m.input.Prompt = a.argPrompt + ": "
				m.input.Placeholder = "u32"
				m.input.Width = 20
				m.input.Focus()
				m.state = stateInput

			case stateInput:
				return m, m.runAction

			case stateResult:
				m.state = stateSelect
				m.result = ""
				m.err = nil
			}

		case "esc":
			if m.state != stateSelect {
				m.state = stateSelect
				m.result = ""
				m.err = nil
			}
		}

	case connectedMsg:
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		m.host = msg.host
		m.close = msg.close
		m.counter = msg.counter

	case actionResultMsg:
		if msg.counter != nil {
			old := m.counter
			m.counter = msg.counter
			old.Release()
		}
		m.result = msg.result
		m.err = msg.err
		m.state = stateResult
	}

	if m.state == stateInput {
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}

	return m, nil
}

func (m *demoModel) runAction() tea.Msg {
	arg64, _ := strconv.ParseUint(m.input.Value(), 10, 32)
	arg := uint32(arg64)

	switch demoActions[m.sel].name {
	case "increment":
		reply, err := m.counter.Invoke("increment", arg)
		if err != nil {
			return actionResultMsg{err: err}
		}
		n, err := reply.U32()
		if err != nil {
			return actionResultMsg{err: err}
		}
		return actionResultMsg{result: fmt.Sprintf("counter is now %d", n)}

	case "value":
		reply, err := m.counter.Get("value")
		if err != nil {
			return actionResultMsg{err: err}
		}
		n, err := reply.U32()
		if err != nil {
			return actionResultMsg{err: err}
		}
		return actionResultMsg{result: fmt.Sprintf("counter holds %d", n)}

	case "new counter":
		// The swap happens in Update; commands run off the model's
		// goroutine and must not touch its fields.
		c, err := newCounter(m.host, arg)
		if err != nil {
			return actionResultMsg{err: err}
		}
		return actionResultMsg{
			result:  fmt.Sprintf("new counter, handle %d", c.Handle()),
			counter: c,
		}
	}

	return actionResultMsg{err: fmt.Errorf("unknown action")}
}

func (m *demoModel) View() string {
	if m.err != nil && m.state != stateResult {
		return errorStyle.Render(fmt.Sprintf("Error: %v\n\nPress q to quit.", m.err))
	}
	if m.host == nil {
		return "Connecting bridge..."
	}

	var b strings.Builder

	b.WriteString(titleStyle.Render("Bridge Demo"))
	b.WriteString(fmt.Sprintf(" counter handle %d, %d exchanges\n\n",
		m.counter.Handle(), m.host.Dispatcher().Exchanges()))

	switch m.state {
	case stateSelect:
		b.WriteString("Select an action:\n\n")
		for i, a := range demoActions {
			cursor := "  "
			if i == m.sel {
				cursor = "> "
				b.WriteString(selectedStyle.Render(cursor + a.name))
			} else {
				b.WriteString(cursor + actionStyle.Render(a.name))
			}
			b.WriteString("\n")
		}
		b.WriteString("\n")
		b.WriteString(helpStyle.Render("↑/↓ select • enter run • q quit"))

	case stateInput:
		b.WriteString(fmt.Sprintf("Running %s\n\n", actionStyle.Render(demoActions[m.sel].name)))
		b.WriteString(m.input.View())
		b.WriteString("\n\n")
		b.WriteString(helpStyle.Render("enter run • esc back"))

	case stateResult:
		b.WriteString(fmt.Sprintf("Result of %s:\n\n", actionStyle.Render(demoActions[m.sel].name)))
		if m.err != nil {
			b.WriteString(errorStyle.Render(fmt.Sprintf("Error: %v", m.err)))
		} else {
			b.WriteString(resultStyle.Render(m.result))
		}
		b.WriteString("\n\n")
		b.WriteString(helpStyle.Render("enter continue • q quit"))
	}

	return b.String()
}

func runInteractive() error {
	p := tea.NewProgram(newDemoModel(), tea.WithAltScreen())
	_, err := p.Run()
	return err
}

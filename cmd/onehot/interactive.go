package main

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"

	"github.com/wippyai/onehot/codec"
	"github.com/wippyai/onehot/schema"
	"github.com/wippyai/onehot/witschema"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4")).
			Padding(0, 1)

	nameStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#98FB98"))

	typeStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#87CEEB"))

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

type interactiveModel struct {
	err      error
	compiler *codec.Compiler
	reg      *witschema.Registry
	report   *report
	filename string
	types    []typeInfo
	inputs   []textinput.Model
	selected int
	focusIdx int
	state    modelState
}

type typeInfo struct {
	schema schema.Type
	name   string
	size   int
}

type modelState int

const (
	stateSelectType modelState = iota
	stateInputValue
	stateShowResult
)

const (
	inputValue = iota
	inputParams
)

func newInteractiveModel(filename string, reg *witschema.Registry, log *zap.Logger) *interactiveModel {
	return &interactiveModel{
		compiler: codec.NewCompilerWithConfig(&codec.Config{Logger: log}),
		reg:      reg,
		filename: filename,
		state:    stateSelectType,
	}
}

type loadedMsg struct {
	err   error
	types []typeInfo
}

type evaluatedMsg struct {
	err    error
	report *report
}

func (m *interactiveModel) Init() tea.Cmd {
	return m.loadTypes
}

func (m *interactiveModel) loadTypes() tea.Msg {
	var types []typeInfo
	for _, name := range m.reg.Names() {
		s, err := m.reg.Lookup(name)
		if err != nil {
			return loadedMsg{err: err}
		}
		size, err := m.compiler.Size(s)
		if err != nil {
			continue
		}
		types = append(types, typeInfo{name: name, schema: s, size: size})
	}
	if len(types) == 0 {
		return loadedMsg{err: fmt.Errorf("%s declares no encodable types", m.filename)}
	}
	return loadedMsg{types: types}
}

func (m *interactiveModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			return m, tea.Quit

		case "q":
			if m.state != stateInputValue {
				return m, tea.Quit
			}

		case "up", "k":
			if m.state == stateSelectType && m.selected > 0 {
				m.selected--
			}

		case "down", "j":
			if m.state == stateSelectType && m.selected < len(m.types)-1 {
				m.selected++
			}

		case "enter":
			switch m.state {
			case stateSelectType:
				m.prepareInputs()
				m.state = stateInputValue

			case stateInputValue:
				return m, m.evaluate

			case stateShowResult:
				m.state = stateInputValue
				m.report = nil
				m.err = nil
			}

		case "tab":
			if m.state == stateInputValue {
				m.inputs[m.focusIdx].Blur()
				m.focusIdx = (m.focusIdx + 1) % len(m.inputs)
				m.inputs[m.focusIdx].Focus()
			}

		case "esc":
			switch m.state {
			case stateInputValue:
				m.state = stateSelectType
				m.inputs = nil
			case stateShowResult:
				m.state = stateSelectType
				m.report = nil
				m.err = nil
			}
		}

	case loadedMsg:
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		m.types = msg.types

	case evaluatedMsg:
		m.report = msg.report
		m.err = msg.err
		m.state = stateShowResult
	}

	if m.state == stateInputValue {
		var cmds []tea.Cmd
		for i := range m.inputs {
			var cmd tea.Cmd
			m.inputs[i], cmd = m.inputs[i].Update(msg)
			cmds = append(cmds, cmd)
		}
		return m, tea.Batch(cmds...)
	}

	return m, nil
}

func (m *interactiveModel) prepareInputs() {
	ti := m.types[m.selected]

	value := textinput.New()
	value.Placeholder = "JSON value, empty for layout only"
	value.Prompt = "value: "
	value.Width = 60
	value.Focus()

	params := textinput.New()
	params.Placeholder = fmt.Sprintf("%d comma-separated parameters", ti.size)
	params.Prompt = "params: "
	params.Width = 60

	m.inputs = []textinput.Model{inputValue: value, inputParams: params}
	m.focusIdx = 0
}

func (m *interactiveModel) evaluate() tea.Msg {
	ti := m.types[m.selected]
	req := request{
		name:   ti.name,
		value:  strings.TrimSpace(m.inputs[inputValue].Value()),
		params: strings.TrimSpace(m.inputs[inputParams].Value()),
	}
	r, err := evaluate(m.compiler, ti.schema, req)
	return evaluatedMsg{report: r, err: err}
}

func (m *interactiveModel) View() string {
	if m.err != nil && m.state != stateShowResult {
		return errorStyle.Render(fmt.Sprintf("Error: %v\n\nPress q to quit.", m.err))
	}

	if len(m.types) == 0 {
		return "Loading types..."
	}

	var b strings.Builder

	b.WriteString(titleStyle.Render("One-Hot Inspector"))
	b.WriteString(" ")
	b.WriteString(m.filename)
	b.WriteString("\n\n")

	switch m.state {
	case stateSelectType:
		b.WriteString("Select a type:\n\n")
		for i, ti := range m.types {
			line := m.formatType(ti)
			if i == m.selected {
				b.WriteString(selectedStyle.Render("> " + line))
			} else {
				b.WriteString("  " + line)
			}
			b.WriteString("\n")
		}
		b.WriteString("\n")
		b.WriteString(helpStyle.Render("↑/↓ select • enter inspect • q quit"))

	case stateInputValue:
		ti := m.types[m.selected]
		b.WriteString(fmt.Sprintf("Encoding %s %s\n\n", nameStyle.Render(ti.name), typeStyle.Render(describe(ti.schema))))
		for _, input := range m.inputs {
			b.WriteString(input.View())
			b.WriteString("\n")
		}
		b.WriteString("\n")
		b.WriteString(helpStyle.Render("tab next field • enter evaluate • esc back"))

	case stateShowResult:
		ti := m.types[m.selected]
		b.WriteString(fmt.Sprintf("Layout of %s:\n\n", nameStyle.Render(ti.name)))
		if m.err != nil {
			b.WriteString(errorStyle.Render(fmt.Sprintf("Error: %v", m.err)))
		} else {
			b.WriteString(renderSlots(m.report.slots, m.report.vec, true))
			if m.report.scored {
				b.WriteString("\n")
				b.WriteString(resultStyle.Render(fmt.Sprintf("Likelihood: %g", m.report.likelihood)))
			}
		}
		b.WriteString("\n\n")
		b.WriteString(helpStyle.Render("enter edit • esc types • q quit"))
	}

	return b.String()
}

func (m *interactiveModel) formatType(ti typeInfo) string {
	return nameStyle.Render(ti.name) + " " + typeStyle.Render(fmt.Sprintf("[%d slots]", ti.size))
}

func runInteractive(filename string, reg *witschema.Registry, log *zap.Logger) error {
	p := tea.NewProgram(newInteractiveModel(filename, reg, log), tea.WithAltScreen())
	_, err := p.Run()
	return err
}

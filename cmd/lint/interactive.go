package main

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/wippyai/module-linking/linking"
)

var (
	selectedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF6B6B"))

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#666666"))
)

type entry struct {
	ty   linking.DefType
	name string
	side string
}

// frame is one level of the type tree: the entries of a module or
// instance type, flattened for selection.
type frame struct {
	label    string
	entries  []entry
	selected int
}

type browserModel struct {
	err      error
	filename string
	st       styles
	stack    []frame
	detail   viewport.Model
	cores    []string
	ready    bool
}

type validatedMsg struct {
	err   error
	mt    linking.ModuleType
	cores []string
}

func newBrowserModel(filename string, cores []string) *browserModel {
	return &browserModel{filename: filename, cores: cores, st: newStyles(true)}
}

func (m *browserModel) Init() tea.Cmd {
	return m.load
}

func (m *browserModel) load() tea.Msg {
	mt, names, err := validate(m.filename, m.cores)
	return validatedMsg{mt: mt, cores: names, err: err}
}

func moduleFrame(label string, mt linking.ModuleType) frame {
	f := frame{label: label}
	for _, name := range sortedNames(mt.Imports) {
		f.entries = append(f.entries, entry{name: name, ty: mt.Imports[name], side: "import"})
	}
	for _, name := range sortedNames(mt.Exports) {
		f.entries = append(f.entries, entry{name: name, ty: mt.Exports[name], side: "export"})
	}
	return f
}

func instanceFrame(label string, it linking.InstanceType) frame {
	f := frame{label: label}
	for _, name := range sortedNames(it.Exports) {
		f.entries = append(f.entries, entry{name: name, ty: it.Exports[name], side: "export"})
	}
	return f
}

func (m *browserModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q":
			return m, tea.Quit

		case "up", "k":
			if f := m.top(); f != nil && f.selected > 0 {
				f.selected--
				m.refreshDetail()
			}

		case "down", "j":
			if f := m.top(); f != nil && f.selected < len(f.entries)-1 {
				f.selected++
				m.refreshDetail()
			}

		case "enter":
			m.descend()

		case "esc", "backspace":
			if len(m.stack) > 1 {
				m.stack = m.stack[:len(m.stack)-1]
				m.refreshDetail()
			}
		}

	case validatedMsg:
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		m.cores = msg.cores
		m.stack = []frame{moduleFrame(m.filename, msg.mt)}
		m.refreshDetail()

	case tea.WindowSizeMsg:
		m.detail = viewport.New(msg.Width, msg.Height/2)
		m.ready = true
		m.refreshDetail()
	}

	var cmd tea.Cmd
	m.detail, cmd = m.detail.Update(msg)
	return m, cmd
}

func (m *browserModel) top() *frame {
	if len(m.stack) == 0 {
		return nil
	}
	return &m.stack[len(m.stack)-1]
}

// descend pushes a new frame when the selected entry is an instance or
// module type; leaves have no children and stay put.
func (m *browserModel) descend() {
	f := m.top()
	if f == nil || len(f.entries) == 0 {
		return
	}
	e := f.entries[f.selected]
	switch t := e.ty.(type) {
	case linking.InstanceType:
		m.stack = append(m.stack, instanceFrame(e.name, t))
		m.refreshDetail()
	case linking.ModuleType:
		m.stack = append(m.stack, moduleFrame(e.name, t))
		m.refreshDetail()
	}
}

func (m *browserModel) refreshDetail() {
	if !m.ready {
		return
	}
	f := m.top()
	if f == nil || len(f.entries) == 0 {
		m.detail.SetContent("")
		return
	}
	e := f.entries[f.selected]
	m.detail.SetContent(formatType(m.st, e.ty, ""))
	m.detail.GotoTop()
}

func (m *browserModel) View() string {
	if m.err != nil {
		return errorStyle.Render(fmt.Sprintf("Error: %v\n\nPress q to quit.", m.err))
	}
	if len(m.stack) == 0 {
		return "Validating..."
	}

	var b strings.Builder

	b.WriteString(m.st.title.Render("Module Linker"))
	b.WriteString(" ")
	b.WriteString(m.breadcrumb())
	b.WriteString("\n\n")

	f := m.top()
	if len(f.entries) == 0 {
		b.WriteString(helpStyle.Render("(no entries)"))
		b.WriteString("\n")
	}
	for i, e := range f.entries {
		line := fmt.Sprintf("%-6s %s: %s", e.side, e.name, e.ty.Kind())
		if i == f.selected {
			b.WriteString(selectedStyle.Render("> " + line))
		} else {
			b.WriteString("  " + line)
		}
		b.WriteString("\n")
	}

	if m.ready && len(f.entries) > 0 {
		b.WriteString("\n")
		b.WriteString(m.detail.View())
	}

	b.WriteString("\n")
	b.WriteString(helpStyle.Render("↑/↓ select • enter descend • esc back • q quit"))
	return b.String()
}

func (m *browserModel) breadcrumb() string {
	parts := make([]string, len(m.stack))
	for i, f := range m.stack {
		parts[i] = f.label
	}
	return strings.Join(parts, " / ")
}

func runInteractive(filename string, cores []string) error {
	p := tea.NewProgram(newBrowserModel(filename, cores), tea.WithAltScreen())
	_, err := p.Run()
	return err
}

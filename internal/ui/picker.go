// Package ui hosts the interactive terminal surfaces built on Bubble Tea.
package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
)

// FixItem is one selectable fix in the picker.
type FixItem struct {
	ID       string
	Title    string
	Location string
	Detail   string
	Safe     bool
}

type pickerKeyMap struct {
	Up     key.Binding
	Down   key.Binding
	Toggle key.Binding
	All    key.Binding
	None   key.Binding
	Apply  key.Binding
	Quit   key.Binding
}

func (k pickerKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Toggle, k.All, k.None, k.Apply, k.Quit}
}

func (k pickerKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Toggle},
		{k.All, k.None, k.Apply, k.Quit},
	}
}

func defaultPickerKeys() pickerKeyMap {
	return pickerKeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "down"),
		),
		Toggle: key.NewBinding(
			key.WithKeys(" ", "x"),
			key.WithHelp("space", "toggle"),
		),
		All: key.NewBinding(
			key.WithKeys("a"),
			key.WithHelp("a", "all"),
		),
		None: key.NewBinding(
			key.WithKeys("n"),
			key.WithHelp("n", "none"),
		),
		Apply: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "apply"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "esc", "ctrl+c"),
			key.WithHelp("q", "cancel"),
		),
	}
}

type pickerModel struct {
	items    []FixItem
	selected []bool
	cursor   int
	keys     pickerKeyMap
	help     help.Model
	width    int
	aborted  bool
	done     bool
}

// NewPickerModel returns a Bubble Tea model that lets the user choose which
// fixes to apply. Safe fixes start selected.
func NewPickerModel(items []FixItem) tea.Model {
	selected := make([]bool, len(items))
	for i, item := range items {
		selected[i] = item.Safe
	}
	return &pickerModel{
		items:    items,
		selected: selected,
		keys:     defaultPickerKeys(),
		help:     help.New(),
		width:    80,
	}
}

func (m *pickerModel) Init() tea.Cmd {
	return nil
}

func (m *pickerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		if msg.Width > 0 {
			m.width = msg.Width
			m.help.Width = msg.Width
		}
		return m, nil
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Up):
			if m.cursor > 0 {
				m.cursor--
			}
		case key.Matches(msg, m.keys.Down):
			if m.cursor < len(m.items)-1 {
				m.cursor++
			}
		case key.Matches(msg, m.keys.Toggle):
			if len(m.items) > 0 {
				m.selected[m.cursor] = !m.selected[m.cursor]
			}
		case key.Matches(msg, m.keys.All):
			for i := range m.selected {
				m.selected[i] = true
			}
		case key.Matches(msg, m.keys.None):
			for i := range m.selected {
				m.selected[i] = false
			}
		case key.Matches(msg, m.keys.Apply):
			m.done = true
			return m, tea.Quit
		case key.Matches(msg, m.keys.Quit):
			m.aborted = true
			return m, tea.Quit
		}
	}
	return m, nil
}

func (m *pickerModel) View() string {
	if m.done || m.aborted {
		return ""
	}
	titleStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("7"))
	cursorStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("6"))
	checkedStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	unsafeStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("3"))
	locStyle := lipgloss.NewStyle().Faint(true)

	var b strings.Builder
	b.WriteString(titleStyle.Render(fmt.Sprintf("select fixes to apply (%d/%d)", m.countSelected(), len(m.items))))
	b.WriteString("\n\n")

	detailWidth := m.width - 6
	if detailWidth < 20 {
		detailWidth = 20
	}
	for i, item := range m.items {
		marker := "[ ]"
		if m.selected[i] {
			marker = checkedStyle.Render("[x]")
		}
		prefix := "  "
		if i == m.cursor {
			prefix = cursorStyle.Render("> ")
		}
		title := item.Title
		if !item.Safe {
			title = unsafeStyle.Render(title + " (unsafe)")
		}
		b.WriteString(fmt.Sprintf("%s%s %s  %s\n", prefix, marker, title, locStyle.Render(item.Location)))
		if i == m.cursor && item.Detail != "" {
			b.WriteString("      " + truncate(item.Detail, detailWidth) + "\n")
		}
	}

	b.WriteString("\n")
	b.WriteString(m.help.View(m.keys))
	b.WriteString("\n")
	return b.String()
}

func (m *pickerModel) countSelected() int {
	n := 0
	for _, s := range m.selected {
		if s {
			n++
		}
	}
	return n
}

// SelectedIDs returns the IDs of the chosen fixes, or nil if the user
// cancelled the picker.
func SelectedIDs(model tea.Model) []string {
	m, ok := model.(*pickerModel)
	if !ok || m.aborted {
		return nil
	}
	ids := make([]string, 0, len(m.items))
	for i, item := range m.items {
		if m.selected[i] {
			ids = append(ids, item.ID)
		}
	}
	return ids
}

func truncate(value string, width int) string {
	if width <= 0 {
		return value
	}
	if runewidth.StringWidth(value) <= width {
		return value
	}
	if width <= 3 {
		return runewidth.Truncate(value, width, "")
	}
	return runewidth.Truncate(value, width-3, "...")
}

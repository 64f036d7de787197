package ui

import (
	"fmt"
	"strings"

	"github.com/autoskip-cli/autoskip/icon"
	"github.com/autoskip-cli/autoskip/settings"
	"github.com/autoskip-cli/autoskip/style"
	"github.com/autoskip-cli/autoskip/util"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/muesli/reflow/wrap"
)

const defaultWidth = 60

// Form is the terminal implementation of settings.Modal.
type Form struct {
	// Interactive reports whether a terminal is attached. Defaults to util.Interactive.
	Interactive func() bool
	// Options are passed to the bubbletea program.
	Options []tea.ProgramOption
}

// Open runs the form until the user closes it.
func (f *Form) Open(title string, fields []settings.Field, onToggle func(settings.Name, bool)) error {
	interactive := f.Interactive
	if interactive == nil {
		interactive = util.Interactive
	}
	if !interactive() {
		return settings.ErrModalUnavailable
	}

	_, err := tea.NewProgram(newModel(title, fields, onToggle), f.Options...).Run()
	if err != nil {
		return fmt.Errorf("settings form: %w", err)
	}
	return nil
}

type model struct {
	title    string
	fields   []settings.Field
	onToggle func(settings.Name, bool)
	cursor   int
	width    int
	keys     keymap
	status   status
}

func newModel(title string, fields []settings.Field, onToggle func(settings.Name, bool)) *model {
	return &model{
		title:    title,
		fields:   append([]settings.Field(nil), fields...),
		onToggle: onToggle,
		width:    defaultWidth,
		keys:     newKeymap(),
	}
}

func (m *model) Init() tea.Cmd {
	return nil
}

func (m *model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		if msg.Width > 0 {
			m.width = msg.Width
		}
		return m, nil
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.forceQuit), key.Matches(msg, m.keys.quit):
			return m, tea.Quit
		case key.Matches(msg, m.keys.up):
			m.cursor = (m.cursor - 1 + len(m.fields)) % max(len(m.fields), 1)
		case key.Matches(msg, m.keys.down):
			m.cursor = (m.cursor + 1) % max(len(m.fields), 1)
		case key.Matches(msg, m.keys.toggle):
			return m, m.toggle()
		}
		return m, nil
	}

	return m, m.status.Update(msg)
}

func (m *model) toggle() tea.Cmd {
	if len(m.fields) == 0 {
		return nil
	}

	field := &m.fields[m.cursor]
	field.Checked = !field.Checked
	if m.onToggle != nil {
		m.onToggle(field.Name, field.Checked)
	}

	state := "off"
	if field.Checked {
		state = "on"
	}
	return setStatus(fmt.Sprintf("%s %s", field.Label, state))
}

func (m *model) View() string {
	var b strings.Builder

	b.WriteString(style.Title(m.title))
	b.WriteString("\n\n")

	for i, field := range m.fields {
		cursor := "  "
		if i == m.cursor {
			cursor = icon.Get(icon.Cursor) + " "
		}

		mark := icon.Get(icon.Unchecked)
		if field.Checked {
			mark = icon.Get(icon.Checked)
		}

		line := fmt.Sprintf("%s%s %s", cursor, mark, field.Label)
		if i == m.cursor {
			line = style.Bold(line)
		}
		b.WriteString(line)
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(style.Faint(wrap.String(m.helpLine(), m.width)))

	return m.status.View(b.String())
}

func (m *model) helpLine() string {
	parts := make([]string, 0, len(m.keys.help()))
	for _, binding := range m.keys.help() {
		h := binding.Help()
		parts = append(parts, h.Key+" "+h.Desc)
	}
	return strings.Join(parts, " • ")
}

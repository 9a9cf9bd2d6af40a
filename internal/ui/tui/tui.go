// Package tui is the interactive task list: a Bubble Tea model that turns
// terminal key presses into key-down/key-up pairs for the task controller.
package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/Makepad-fr/tada/internal/logging"
	"github.com/Makepad-fr/tada/internal/tasks"
	"github.com/Makepad-fr/tada/internal/ui"
)

type keyMap struct {
	Up     key.Binding
	Down   key.Binding
	New    key.Binding
	Remove key.Binding
	Add    key.Binding
	Toggle key.Binding
	Delete key.Binding
	Clear  key.Binding
	Quit   key.Binding
}

func defaultKeys() keyMap {
	return keyMap{
		Up:     key.NewBinding(key.WithKeys("up"), key.WithHelp("↑", "prev")),
		Down:   key.NewBinding(key.WithKeys("down"), key.WithHelp("↓", "next")),
		New:    key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "new task")),
		Remove: key.NewBinding(key.WithKeys("backspace"), key.WithHelp("⌫ on empty", "delete")),
		Add:    key.NewBinding(key.WithKeys("ctrl+n"), key.WithHelp("ctrl+n", "add")),
		Toggle: key.NewBinding(key.WithKeys("ctrl+t"), key.WithHelp("ctrl+t", "done")),
		Delete: key.NewBinding(key.WithKeys("ctrl+d"), key.WithHelp("ctrl+d", "delete")),
		Clear:  key.NewBinding(key.WithKeys("ctrl+x"), key.WithHelp("ctrl+x", "clear completed")),
		Quit:   key.NewBinding(key.WithKeys("esc", "ctrl+c"), key.WithHelp("esc", "save & quit")),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.New, k.Toggle, k.Delete, k.Clear, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.New, k.Remove},
		{k.Add, k.Toggle, k.Delete, k.Clear, k.Quit},
	}
}

// Model implements tea.Model on top of a hydrated controller.
type Model struct {
	ctl      *tasks.Controller
	keys     keyMap
	help     help.Model
	logger   *log.Logger
	quitting bool
}

func New(ctl *tasks.Controller, logger *log.Logger) Model {
	h := help.New()
	h.Styles.ShortKey = ui.Current().Help
	h.Styles.ShortDesc = ui.Current().Help
	if logger == nil {
		logger = logging.Discard()
	}
	return Model{
		ctl:    ctl,
		keys:   defaultKeys(),
		help:   h,
		logger: logger,
	}
}

// Run drives an interactive session and persists the list when it ends.
func Run(ctl *tasks.Controller, logger *log.Logger, opts ...tea.ProgramOption) error {
	opts = append([]tea.ProgramOption{tea.WithAltScreen()}, opts...)
	p := tea.NewProgram(New(ctl, logger), opts...)
	if _, err := p.Run(); err != nil {
		return err
	}
	return ctl.Persist()
}

func (m Model) Init() tea.Cmd { return textinput.Blink }

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.help.Width = msg.Width
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit
		case key.Matches(msg, m.keys.Add):
			m.ctl.AddItem(nil)
			return m, m.ctl.FocusCmd()
		case key.Matches(msg, m.keys.Toggle):
			if r := m.ctl.Focused(); r != nil {
				r.Done().Toggle()
			}
			return m, nil
		case key.Matches(msg, m.keys.Delete):
			if r := m.ctl.Focused(); r != nil {
				r.Delete().Click()
			}
			return m, m.ctl.FocusCmd()
		case key.Matches(msg, m.keys.Clear):
			m.ctl.ClearCompleted()
			return m, m.ctl.FocusCmd()
		}
		return m, tea.Batch(m.press(msg), m.ctl.FocusCmd())
	}

	if r := m.ctl.Focused(); r != nil {
		return m, r.Title().Update(msg)
	}
	return m, nil
}

// press replays a terminal key as key-down, default editing, key-up. The
// key-up goes to whichever title holds focus after the edit.
func (m Model) press(msg tea.KeyMsg) tea.Cmd {
	r := m.ctl.Focused()
	if r == nil {
		return nil
	}
	k := keyOf(msg)
	m.logger.Debug("key", "key", msg.String(), "row", r.ID())

	m.ctl.HandleKey(tasks.KeyEvent{Type: tasks.KeyDown, Key: k, Target: r.Title()})

	var cmd tea.Cmd
	if r.Focused() {
		cmd = r.Title().Update(msg)
	}

	if up := m.ctl.Focused(); up != nil {
		m.ctl.HandleKey(tasks.KeyEvent{Type: tasks.KeyUp, Key: k, Target: up.Title()})
	}
	return cmd
}

func keyOf(msg tea.KeyMsg) tasks.Key {
	switch msg.Type {
	case tea.KeyEnter:
		return tasks.KeyEnter
	case tea.KeyBackspace:
		return tasks.KeyBackspace
	case tea.KeyUp:
		return tasks.KeyArrowUp
	case tea.KeyDown:
		return tasks.KeyArrowDown
	}
	return tasks.KeyOther
}

func (m Model) View() string {
	if m.quitting {
		return ""
	}
	t := ui.Current()
	c := m.ctl.Counts()

	var b strings.Builder
	b.WriteString(ui.Header(c.Done, c.Total))
	b.WriteString("\n")
	b.WriteString(t.Muted.Render(ui.ProgressBar(c.Done, c.Total, 28)))
	b.WriteString("\n\n")

	if m.ctl.Len() == 0 {
		b.WriteString(t.Muted.Render("no tasks, press ctrl+n to add one"))
		b.WriteString("\n")
	}
	for _, r := range m.ctl.Rows() {
		b.WriteString(renderRow(t, r))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(m.help.View(m.keys))
	return ui.Frame(b.String())
}

func renderRow(t ui.Theme, r *tasks.Row) string {
	prefix := strings.Repeat(" ", len([]rune(t.Cursor)))
	if r.Focused() {
		prefix = t.Selected.Render(t.Cursor)
	}

	done := r.Done().Checked()
	box := t.Muted.Render(t.Box(false))
	if done {
		box = t.Success.Render(t.Box(true))
	}

	var title string
	switch v := r.Title().Value(); {
	case r.Focused():
		title = r.Title().View()
	case v == "":
		title = t.Muted.Render(r.Title().Placeholder())
	case done:
		title = t.DoneText.Render(v)
	default:
		title = v
	}
	return fmt.Sprintf("%s%s %s", prefix, box, title)
}

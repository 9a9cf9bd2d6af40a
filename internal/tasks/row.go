package tasks

import (
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/Makepad-fr/tada/internal/model"
)

// Element is anything that sits inside a row: the row itself or one of its
// controls. Row returns nil once the row has been removed.
type Element interface {
	Row() *Row
}

// Template hands out a fresh title input for every new row.
type Template func() textinput.Model

// DefaultTemplate is the stock title field. It sets no character limit so
// long stored titles are editable in full.
func DefaultTemplate() textinput.Model {
	ti := textinput.New()
	ti.Prompt = ""
	ti.Placeholder = "What needs doing?"
	ti.CharLimit = 0
	return ti
}

// editState is the transient keystroke state of one title field.
type editState struct {
	previous string // field value seen at the last Backspace key-down
	recorded bool
}

// Row is the rendered form of one task: a title field, a done checkbox
// and a delete button, all owned by a single controller.
type Row struct {
	ctl   *Controller
	id    int
	title Field
	done  Checkbox
	del   Button
	edit  editState
}

func newRow(ctl *Controller, id int, ti textinput.Model) *Row {
	r := &Row{ctl: ctl, id: id}
	r.title = Field{row: r, input: ti}
	r.done = Checkbox{row: r}
	r.del = Button{row: r}
	return r
}

// Row implements Element.
func (r *Row) Row() *Row {
	if r == nil || r.ctl == nil {
		return nil
	}
	return r
}

// ID is unique within a controller and never reused.
func (r *Row) ID() int { return r.id }

func (r *Row) Title() *Field    { return &r.title }
func (r *Row) Done() *Checkbox  { return &r.done }
func (r *Row) Delete() *Button  { return &r.del }
func (r *Row) Attached() bool   { return r.ctl != nil }
func (r *Row) Focused() bool    { return r.ctl != nil && r.ctl.focus == r }
func (r *Row) Task() model.Task { return model.Task{Title: r.title.Value(), Done: r.done.Checked()} }

// Field is a row's editable title. value is the title as stored; input is
// only the editor and may hold a sanitized or truncated copy of it.
type Field struct {
	row   *Row
	value string
	input textinput.Model
}

func (f *Field) Row() *Row           { return f.row.Row() }
func (f *Field) Value() string       { return f.value }
func (f *Field) Focused() bool       { return f.input.Focused() }
func (f *Field) View() string        { return f.input.View() }
func (f *Field) Placeholder() string { return f.input.Placeholder }

func (f *Field) SetValue(v string) {
	f.value = v
	f.input.SetValue(v)
}

// Update applies default text editing to the field. The title only changes
// when the edit changed the input's text.
func (f *Field) Update(msg tea.Msg) tea.Cmd {
	before := f.input.Value()
	var cmd tea.Cmd
	f.input, cmd = f.input.Update(msg)
	if after := f.input.Value(); after != before {
		f.value = after
	}
	return cmd
}

// Checkbox is a row's done flag. Changing it recomputes the counts.
type Checkbox struct {
	row     *Row
	checked bool
}

func (c *Checkbox) Row() *Row     { return c.row.Row() }
func (c *Checkbox) Checked() bool { return c.checked }

// Toggle flips the flag.
func (c *Checkbox) Toggle() {
	c.SetChecked(!c.checked)
}

func (c *Checkbox) SetChecked(v bool) {
	c.checked = v
	if ctl := c.row.ctl; ctl != nil {
		ctl.UpdateCounts()
	}
}

// Button is a row's delete control.
type Button struct {
	row *Row
}

func (b *Button) Row() *Row { return b.row.Row() }

// Click removes the row. Clicking a removed row's button does nothing.
func (b *Button) Click() {
	if ctl := b.row.ctl; ctl != nil {
		ctl.deleteItem(b.row)
	}
}

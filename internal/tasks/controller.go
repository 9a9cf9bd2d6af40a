// Package tasks holds the task list controller: the ordered rows, input
// focus, done/total counts, the per-row keyboard state machine and the
// load/save contract with a key-value store.
package tasks

import (
	"errors"
	"fmt"
	"io"
	"slices"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/Makepad-fr/tada/internal/model"
	"github.com/Makepad-fr/tada/internal/store"
)

// Counts is what the header displays.
type Counts struct {
	Done  int
	Total int
}

// Pending is the number of rows not flagged done.
func (c Counts) Pending() int { return c.Total - c.Done }

// Controller owns the task rows for one session. It is not safe for
// concurrent use; callers drive it from a single event loop.
type Controller struct {
	store    store.Store
	template Template
	logger   *log.Logger

	rows     []*Row
	focus    *Row
	focusCmd tea.Cmd // returned by the last Focus, not yet handed out
	counts   Counts
	nextID   int
	hydrated bool
	seeded   bool
}

type Option func(*Controller)

// WithTemplate replaces the row template provider.
func WithTemplate(t Template) Option {
	return func(c *Controller) {
		if t != nil {
			c.template = t
		}
	}
}

func WithLogger(l *log.Logger) Option {
	return func(c *Controller) {
		if l != nil {
			c.logger = l
		}
	}
}

// New returns an empty controller backed by st. Call Hydrate to load.
func New(st store.Store, opts ...Option) *Controller {
	c := &Controller{
		store:    st,
		template: DefaultTemplate,
		logger:   log.New(io.Discard),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Hydrate reads the persisted list once. With nothing stored, or with data
// that cannot be parsed, the list starts with one empty task.
func (c *Controller) Hydrate() error {
	if c.hydrated {
		return errors.New("already hydrated")
	}
	c.hydrated = true

	raw, ok, err := c.store.Get(StorageKey)
	if err != nil {
		return fmt.Errorf("load %s: %w", StorageKey, err)
	}
	if !ok {
		c.logger.Debug("nothing stored, seeding one task")
		c.seed()
		return nil
	}

	list, err := Decode(raw)
	if err != nil {
		c.logger.Warn("ignoring stored tasks", "err", err)
		c.seed()
		return nil
	}
	for i := range list {
		c.AddItem(&list[i])
	}
	c.logger.Debug("hydrated", "tasks", len(list))
	return nil
}

func (c *Controller) seed() {
	c.AddItem(nil)
	c.seeded = true
}

// Seeded reports whether Hydrate found nothing usable and started the list
// with one empty task.
func (c *Controller) Seeded() bool { return c.seeded }

// Persist writes the current rows back to the store.
func (c *Controller) Persist() error {
	raw, err := Encode(c.GetData())
	if err != nil {
		return err
	}
	if err := c.store.Set(StorageKey, raw); err != nil {
		return fmt.Errorf("save %s: %w", StorageKey, err)
	}
	c.logger.Debug("persisted", "tasks", len(c.rows))
	return nil
}

// AddItem appends a row, defaulting to an empty not-done task when data is
// nil, and moves focus into its title.
func (c *Controller) AddItem(data *model.Task) *Row {
	d := model.DefaultTask()
	if data != nil {
		d = *data
	}

	c.nextID++
	r := newRow(c, c.nextID, c.template())
	c.rows = append(c.rows, r)

	r.title.SetValue(d.Title)
	r.done.checked = d.Done

	c.UpdateCounts()
	c.FocusTask(r)
	return r
}

// deleteItem is bound to every row's delete button. Focus moves before the
// row goes away, based on its siblings at that moment.
func (c *Controller) deleteItem(r *Row) {
	i := c.indexOf(r)
	if i < 0 {
		return
	}

	if i > 0 {
		c.FocusTask(c.rows[i-1])
	} else if i+1 < len(c.rows) {
		c.FocusTask(c.rows[i+1])
	}
	if c.focus == r {
		r.title.input.Blur()
		c.focus = nil
		c.focusCmd = nil
	}

	c.rows = slices.Delete(c.rows, i, i+1)
	r.ctl = nil
	c.UpdateCounts()
}

// ClearCompleted deletes every row flagged done.
func (c *Controller) ClearCompleted() {
	var done []*Button
	for _, r := range c.rows {
		if r.done.checked {
			done = append(done, &r.del)
		}
	}
	for _, b := range done {
		b.Click()
	}
	if len(done) > 0 {
		c.logger.Debug("cleared completed", "removed", len(done))
	}
}

// FocusTask focuses the title of the row enclosing el. A nil element or a
// removed row leaves focus where it is.
func (c *Controller) FocusTask(el Element) {
	if el == nil {
		return
	}
	r := el.Row()
	if r == nil || r.ctl != c {
		return
	}
	if c.focus == r {
		return
	}
	if c.focus != nil {
		c.focus.title.input.Blur()
	}
	c.focus = r
	c.focusCmd = r.title.input.Focus()
}

// FocusCmd hands out the cursor command of the most recent focus change,
// once. It is nil when focus has not moved since the last call.
func (c *Controller) FocusCmd() tea.Cmd {
	cmd := c.focusCmd
	c.focusCmd = nil
	return cmd
}

// GetData returns the rows as task records in display order.
func (c *Controller) GetData() []model.Task {
	out := make([]model.Task, 0, len(c.rows))
	for _, r := range c.rows {
		out = append(out, r.Task())
	}
	return out
}

// UpdateCounts recomputes the done and total counts.
func (c *Controller) UpdateCounts() {
	done := 0
	for _, r := range c.rows {
		if r.done.checked {
			done++
		}
	}
	c.counts = Counts{Done: done, Total: len(c.rows)}
}

func (c *Controller) Counts() Counts { return c.counts }
func (c *Controller) Len() int       { return len(c.rows) }

// Focused is the row whose title has focus, or nil.
func (c *Controller) Focused() *Row { return c.focus }

// Rows returns a copy of the row order.
func (c *Controller) Rows() []*Row { return slices.Clone(c.rows) }

// Row returns the row at i, or nil when out of range.
func (c *Controller) Row(i int) *Row {
	if i < 0 || i >= len(c.rows) {
		return nil
	}
	return c.rows[i]
}

func (c *Controller) indexOf(r *Row) int {
	if r == nil || r.ctl != c {
		return -1
	}
	return slices.Index(c.rows, r)
}

func (c *Controller) next(r *Row) *Row {
	i := c.indexOf(r)
	if i < 0 || len(c.rows) == 0 {
		return nil
	}
	return c.rows[(i+1)%len(c.rows)]
}

func (c *Controller) prev(r *Row) *Row {
	i := c.indexOf(r)
	if i < 0 || len(c.rows) == 0 {
		return nil
	}
	return c.rows[(i-1+len(c.rows))%len(c.rows)]
}

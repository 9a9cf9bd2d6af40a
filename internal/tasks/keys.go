package tasks

// KeyType distinguishes the press and release halves of a keystroke.
type KeyType int

const (
	KeyDown KeyType = iota
	KeyUp
)

func (t KeyType) String() string {
	if t == KeyUp {
		return "keyup"
	}
	return "keydown"
}

// Key is a key the list reacts to. Everything else is KeyOther.
type Key int

const (
	KeyOther Key = iota
	KeyEnter
	KeyBackspace
	KeyArrowUp
	KeyArrowDown
)

// KeyEvent is a keystroke half aimed at an element.
type KeyEvent struct {
	Type   KeyType
	Key    Key
	Target Element
}

// HandleKey runs the keyboard state machine. Only events aimed at the title
// field of a live row are considered.
func (c *Controller) HandleKey(ev KeyEvent) {
	f, ok := ev.Target.(*Field)
	if !ok || f == nil {
		return
	}
	r := f.Row()
	if r == nil || r.ctl != c {
		return
	}

	switch ev.Type {
	case KeyDown:
		switch ev.Key {
		case KeyBackspace:
			// keyup sees the value after the edit, so remember it now
			r.edit = editState{previous: f.Value(), recorded: true}
		case KeyArrowDown:
			c.FocusTask(c.next(r))
		case KeyArrowUp:
			c.FocusTask(c.prev(r))
		}
	case KeyUp:
		switch ev.Key {
		case KeyEnter:
			c.AddItem(nil)
		case KeyBackspace:
			if r.edit.recorded && r.edit.previous == "" {
				r.del.Click()
			}
		}
	}
}

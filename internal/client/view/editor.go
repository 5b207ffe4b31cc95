package view

// Key identifies the non-text keys the edit state machine reacts to.
type Key int

const (
	// KeyEnter completes an edit, like losing focus.
	KeyEnter Key = iota
	// KeyEscape cancels an edit and restores the stored name.
	KeyEscape
)

type editState int

const (
	stateIdle editState = iota
	stateEditing
)

// editor is the idle→editing→idle machine behind one inline-editable field.
// It owns the displayed text, which may diverge from the record's stored name
// while an edit is in flight.
type editor struct {
	state editState
	text  string
}

// click enters editing mode. Clicking an already-editing field changes nothing.
func (e *editor) click() {
	e.state = stateEditing
}

// editing reports whether the field is in editing mode.
func (e *editor) editing() bool {
	return e.state == stateEditing
}

// typeText replaces the displayed text. Ignored outside editing mode, the way
// a non-editable field swallows keystrokes.
func (e *editor) typeText(text string) {
	if e.state != stateEditing {
		return
	}
	e.text = text
}

// cancel reverts the displayed text to the stored name and leaves editing
// mode.
func (e *editor) cancel(stored string) {
	if e.state != stateEditing {
		return
	}
	e.text = stored
	e.state = stateIdle
}

// complete leaves editing mode keeping the displayed text as typed. emit is
// true when the text differs from the stored name and an edit event should be
// raised with newName.
func (e *editor) complete(stored string) (newName string, emit bool) {
	if e.state != stateEditing {
		return "", false
	}
	e.state = stateIdle
	if e.text != stored {
		return e.text, true
	}
	return "", false
}

// sync overwrites the displayed text, used when the model announces a change.
func (e *editor) sync(text string) {
	e.text = text
}

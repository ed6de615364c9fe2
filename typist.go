package livenumber

import "strings"

// Typist drives a widget the way a browser would: key presses go through
// KeyDown first and only reach BeforeInput, or move the caret, when the widget
// lets the default action happen.
type Typist struct {
	widget    *Widget
	field     Field
	clipboard string
}

// NewTypist returns a typist for w. The widget's own field is used.
func NewTypist(w *Widget) *Typist {
	return &Typist{widget: w, field: w.field}
}

// Clipboard returns the text last copied or cut.
func (t *Typist) Clipboard() string {
	return t.clipboard
}

// Type presses one key per rune of text.
func (t *Typist) Type(text string) {
	for _, r := range text {
		t.Press(KeyEvent{Key: string(r)})
	}
}

// Press delivers a single key press and reports whether its default action
// was allowed.
func (t *Typist) Press(ev KeyEvent) bool {
	if !t.widget.KeyDown(ev) {
		return false
	}

	if ev.IsShortcut() {
		t.shortcut(strings.ToLower(ev.Key))
		return true
	}

	switch ev.Key {
	case KeyBackspace:
		t.widget.BeforeInput(InputEvent{Type: DeleteContentBackward})
	case KeyDelete:
		t.widget.BeforeInput(InputEvent{Type: DeleteContentForward})
	case KeyArrowLeft:
		t.moveHorizontal(-1, ev.Shift)
	case KeyArrowRight:
		t.moveHorizontal(1, ev.Shift)
	case KeyArrowUp:
		t.moveVertical(0, ev.Shift)
	case KeyArrowDown:
		t.moveVertical(runeLen(t.field.Text()), ev.Shift)
	case KeyTab:
	default:
		if runeLen(ev.Key) == 1 {
			t.widget.BeforeInput(InputEvent{Type: InsertText, Data: ev.Key})
		}
	}
	return true
}

// Paste inserts text over the current selection.
func (t *Typist) Paste(text string) bool {
	return t.widget.BeforeInput(InputEvent{Type: InsertFromPaste, Data: text})
}

// Select sets the selection; end before start selects backward.
func (t *Typist) Select(start, end int) {
	dir := DirectionForward
	if end < start {
		start, end = end, start
		dir = DirectionBackward
	}
	if start == end {
		dir = DirectionNone
	}
	t.field.SetSelection(start, end, dir)
}

// Blur leaves the field.
func (t *Typist) Blur() {
	t.widget.Blur()
}

func (t *Typist) shortcut(key string) {
	start, end := t.field.Selection()
	selected := string([]rune(t.field.Text())[start:end])

	switch key {
	case "a":
		t.field.SetSelection(0, runeLen(t.field.Text()), DirectionForward)
	case "c":
		t.clipboard = selected
	case "x":
		t.clipboard = selected
		if start != end {
			t.widget.BeforeInput(InputEvent{Type: DeleteContentBackward})
		}
	case "v":
		if t.clipboard != "" {
			t.Paste(t.clipboard)
		}
	}
}

// direction returns the selection direction of the field, falling back to
// none for fields that do not track it.
func (t *Typist) direction() SelectionDirection {
	if d, ok := t.field.(interface{ Direction() SelectionDirection }); ok {
		return d.Direction()
	}
	return DirectionNone
}

// moveHorizontal mirrors the browser default for Left and Right.
func (t *Typist) moveHorizontal(step int, extend bool) {
	start, end := t.field.Selection()
	n := runeLen(t.field.Text())

	if !extend {
		pos := clamp(end+step, 0, n)
		if start != end {
			pos = end
			if step < 0 {
				pos = start
			}
		}
		t.field.SetSelection(pos, pos, DirectionNone)
		return
	}

	dir := t.direction()
	if start == end {
		dir = DirectionForward
		if step < 0 {
			dir = DirectionBackward
		}
	}
	if dir == DirectionBackward {
		start = clamp(start+step, 0, n)
	} else {
		end = clamp(end+step, 0, n)
	}
	if start > end {
		start, end = end, start
	}
	t.field.SetSelection(start, end, dir)
}

// moveVertical mirrors the browser default for Up and Down in a single line
// field: the caret jumps to target.
func (t *Typist) moveVertical(target int, extend bool) {
	start, end := t.field.Selection()
	if !extend {
		t.field.SetSelection(target, target, DirectionNone)
		return
	}
	if target <= start {
		t.field.SetSelection(target, end, DirectionBackward)
		return
	}
	t.field.SetSelection(start, target, DirectionForward)
}

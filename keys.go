package livenumber

import "strings"

// Key names as reported by browsers.
const (
	KeyArrowLeft  = "ArrowLeft"
	KeyArrowRight = "ArrowRight"
	KeyArrowUp    = "ArrowUp"
	KeyArrowDown  = "ArrowDown"
	KeyBackspace  = "Backspace"
	KeyDelete     = "Delete"
	KeyTab        = "Tab"
)

// KeyEvent is a key-down notification.
type KeyEvent struct {
	Key   string
	Shift bool
	Ctrl  bool
	Meta  bool
}

var shortcutKeys = map[string]bool{"c": true, "v": true, "x": true, "a": true}

// IsShortcut reports whether ev is copy, paste, cut or select-all.
func (ev KeyEvent) IsShortcut() bool {
	return (ev.Ctrl || ev.Meta) && shortcutKeys[strings.ToLower(ev.Key)]
}

func isDigitKey(key string) bool {
	return len(key) == 1 && key[0] >= '0' && key[0] <= '9'
}

// KeyDown filters a key press. A false result tells the host to suppress the
// key's default action. Arrow keys are clamped so the caret never enters the
// prefix; the selection is then set on the field directly.
func (w *Widget) KeyDown(ev KeyEvent) bool {
	if w.destroyed {
		return true
	}
	if ev.IsShortcut() {
		return true
	}

	display := w.field.Text()
	start, end := w.field.Selection()
	multi := start != end
	boundary := w.prefixBoundary(display)
	// a caret inside the prefix; offset 0 is a select-all and gets clamped later
	inPrefix := boundary > 0 && start > 0 && start < boundary

	switch ev.Key {
	case KeyArrowLeft:
		if ev.Shift {
			if boundary == 0 || start > boundary {
				start--
			}
			if !multi {
				w.state.SelectionDirection = DirectionBackward
			}
		} else {
			end = start
			w.state.SelectionDirection = DirectionNone
		}
		if boundary > 0 && start <= boundary {
			w.field.SetSelection(boundary, end, DirectionForward)
			w.state.DefaultPrevented = true
			return false
		}
		return true

	case KeyArrowRight, KeyArrowDown:
		if ev.Shift {
			if w.state.DefaultPrevented {
				w.state.DefaultPrevented = false
				w.field.SetSelection(start, end, DirectionBackward)
			}
			w.state.SelectionDirection = DirectionForward
		} else {
			w.state.DefaultPrevented = false
			w.state.SelectionDirection = DirectionNone
		}
		return true

	case KeyArrowUp:
		from, to := boundary, end
		if ev.Shift {
			if multi {
				if w.state.SelectionDirection == DirectionForward {
					from, to = start, start
					w.state.SelectionDirection = DirectionNone
				}
			} else {
				w.state.SelectionDirection = DirectionBackward
			}
		} else {
			to = from
			w.state.SelectionDirection = DirectionNone
		}
		w.field.SetSelection(from, to, DirectionForward)
		w.state.DefaultPrevented = true
		return false

	case KeyBackspace:
		if boundary > 0 && start < boundary {
			w.field.SetSelection(boundary, max(end, boundary), DirectionNone)
			return true
		}
		return !(boundary > 0 && start == boundary && !multi)

	case KeyDelete, KeyTab:
		return true

	case "-":
		return !inPrefix

	case ".", ",":
		if !w.fractionsAllowed() {
			return false
		}
		rest := DeleteAt(display, clamp(start, boundary, runeLen(display)), clamp(end, boundary, runeLen(display)))
		if w.decimalIndex(rest) >= 0 {
			return false
		}
		return !inPrefix
	}

	if isDigitKey(ev.Key) {
		return !inPrefix
	}
	return false
}

// Blur drops a dangling decimal separator ("12," becomes "12").
func (w *Widget) Blur() {
	if w.destroyed {
		return
	}
	display := w.field.Text()
	if !strings.HasSuffix(display, w.seps.DecimalString()) || w.decimalIndex(display) < 0 {
		return
	}

	trimmed := strings.TrimSuffix(display, w.seps.DecimalString())
	body := string([]rune(trimmed)[w.prefixBoundary(trimmed):])
	res := Format(body, w.settings.formatOptions(w.seps))
	next := w.compose(res)

	w.setState(res, next)
	w.field.SetText(next)
	if next != display {
		w.emit()
	}
}

package livenumber

import (
	"fmt"
	"strings"
	"unicode"

	"go.uber.org/zap"
)

// InputType classifies a host edit notification.
type InputType int

const (
	InputOther InputType = iota
	InsertText
	InsertFromPaste
	DeleteContentForward
	DeleteContentBackward
)

var inputTypeNames = map[InputType]string{
	InputOther:            "other",
	InsertText:            "insertText",
	InsertFromPaste:       "insertFromPaste",
	DeleteContentForward:  "deleteContentForward",
	DeleteContentBackward: "deleteContentBackward",
}

func (t InputType) String() string {
	if name, ok := inputTypeNames[t]; ok {
		return name
	}
	return fmt.Sprintf("InputType(%d)", int(t))
}

// ParseInputType maps a browser inputType name ("insertText") to an InputType.
func ParseInputType(name string) (InputType, error) {
	for t, n := range inputTypeNames {
		if t != InputOther && strings.EqualFold(n, strings.TrimSpace(name)) {
			return t, nil
		}
	}
	return InputOther, fmt.Errorf("%w: %q", ErrUnknownInputType, name)
}

func (t InputType) isDelete() bool {
	return t == DeleteContentForward || t == DeleteContentBackward
}

// InputEvent is an about-to-edit notification. Data is empty for deletions.
type InputEvent struct {
	Type InputType
	Data string
}

// PendingEdit captures the field at the moment an InputEvent arrived.
type PendingEdit struct {
	Type           InputType
	Data           string
	SelectionStart int
	SelectionEnd   int
	Display        string
}

// BeforeInput replaces the host's default handling of ev. The host must always
// suppress its own edit; the result reports whether the widget committed one.
// Every committed edit emits an input event, including one whose result was
// truncated back to the old display. Rejected edits leave field and state
// untouched and emit nothing.
func (w *Widget) BeforeInput(ev InputEvent) bool {
	if w.destroyed {
		return false
	}

	display := w.field.Text()
	start, end := w.editableSelection(display)
	edit := PendingEdit{
		Type:           ev.Type,
		Data:           ev.Data,
		SelectionStart: start,
		SelectionEnd:   end,
		Display:        display,
	}

	token, ok := w.inputToken(edit)
	if !ok {
		return w.reject(edit, "input not numeric")
	}

	var edited string
	if token == "-" {
		if w.state.Value == "" {
			return w.reject(edit, "nothing to negate")
		}
		edited = w.toggleSign(edit)
	} else {
		if strings.Contains(token, w.seps.DecimalString()) {
			if !w.fractionsAllowed() {
				return w.reject(edit, "fractions disabled")
			}
			if w.hasDecimalOutside(edit) {
				return w.reject(edit, "duplicate decimal separator")
			}
		}
		edited, ok = w.applyEdit(&edit, token)
		if !ok {
			return w.reject(edit, "nothing to delete")
		}
	}

	body := w.normalizeEdited(edited)
	res := Format(body, w.settings.formatOptions(w.seps))
	if reason := w.validate(body, res); reason != "" {
		return w.reject(edit, reason)
	}

	w.commit(edit, runeLen(edited), token == w.seps.DecimalString(), res)
	return true
}

func (w *Widget) reject(edit PendingEdit, reason string) bool {
	w.logger.Debug("edit rejected",
		zap.String("reason", reason),
		zap.Stringer("type", edit.Type),
		zap.String("data", edit.Data),
		zap.String("display", edit.Display),
		zap.Int("start", edit.SelectionStart),
		zap.Int("end", edit.SelectionEnd),
	)
	return false
}

// inputToken normalizes the text an edit inserts. Deletions yield "".
func (w *Widget) inputToken(edit PendingEdit) (string, bool) {
	switch edit.Type {
	case DeleteContentForward, DeleteContentBackward:
		return "", true
	case InsertText:
		switch edit.Data {
		case ".", ",":
			return w.seps.DecimalString(), true
		case "-":
			return "-", true
		case "":
			return "", false
		}
		for _, r := range edit.Data {
			if r < '0' || r > '9' {
				return "", false
			}
		}
		return edit.Data, true
	case InsertFromPaste:
		return w.pasteToken(edit)
	default:
		return "", false
	}
}

// pasteToken coerces pasted text into digits written with the locale decimal
// separator. A sign survives only when the paste replaces the whole value.
func (w *Widget) pasteToken(edit PendingEdit) (string, bool) {
	value, err := ParseNumber(edit.Data, nil)
	if err != nil {
		return "", false
	}
	if !w.fractionsAllowed() {
		value = value.Trunc(0)
	}

	plain := value.String()
	if value.IsNeg() {
		boundary := w.prefixBoundary(edit.Display)
		wholeValue := edit.SelectionStart <= boundary && edit.SelectionEnd >= runeLen(edit.Display)
		if !wholeValue {
			plain = strings.TrimPrefix(plain, "-")
		}
	}
	return localizePoint(plain, w.seps), true
}

func (w *Widget) fractionsAllowed() bool {
	return w.settings.AllowComma && w.settings.MaxDecimalPlaces != 0
}

// hasDecimalOutside reports whether the display keeps a decimal separator
// once the selected range is removed.
func (w *Widget) hasDecimalOutside(edit PendingEdit) bool {
	rest := DeleteAt(edit.Display, edit.SelectionStart, edit.SelectionEnd)
	return w.decimalIndex(rest) >= 0
}

// toggleSign flips the sign of the current display right after the prefix.
func (w *Widget) toggleSign(edit PendingEdit) string {
	runes := []rune(edit.Display)
	boundary := w.prefixBoundary(edit.Display)
	head, body := string(runes[:boundary]), string(runes[boundary:])
	if w.state.IsMinus {
		return head + strings.Replace(body, "-", "", 1)
	}
	return head + "-" + body
}

// applyEdit performs the insertion or deletion on the display string. For a
// single rune deletion the selection of edit is moved onto the deleted rune
// when a group separator had to be skipped.
func (w *Widget) applyEdit(edit *PendingEdit, token string) (string, bool) {
	display := edit.Display
	start, end := edit.SelectionStart, edit.SelectionEnd

	if start != end {
		if edit.Type.isDelete() {
			return DeleteAt(display, start, end), true
		}
		out, err := ReplaceAt(display, token, start, end)
		return out, err == nil
	}

	runes := []rune(display)
	if !edit.Type.isDelete() {
		// digits never go in front of the sign
		if start < len(runes) && runes[start] == '-' {
			start++
			edit.SelectionStart, edit.SelectionEnd = start, start
		}
		return InsertAt(display, token, start), true
	}

	boundary := w.prefixBoundary(display)
	pos := start
	step := 1
	if edit.Type == DeleteContentBackward {
		pos--
		step = -1
	}
	if pos < boundary || pos >= len(runes) {
		return display, false
	}

	if w.seps.Group != 0 && runes[pos] == w.seps.Group {
		pos += step
		if pos < boundary || pos >= len(runes) {
			return display, false
		}
		if edit.Type == DeleteContentForward {
			edit.SelectionStart, edit.SelectionEnd = pos, pos
		}
	}
	return DeleteCharAt(display, pos), true
}

// normalizeEdited strips the prefix and completes a leading decimal
// separator with a zero.
func (w *Widget) normalizeEdited(edited string) string {
	if w.prefix != "" {
		edited = strings.TrimPrefix(edited, w.prefix)
	}

	dec := w.seps.DecimalString()
	switch {
	case strings.HasPrefix(edited, dec):
		return "0" + edited
	case strings.HasPrefix(edited, "-"+dec):
		return "-0" + edited[1:]
	}
	return edited
}

// validate returns a rejection reason, or "" when res may be committed.
func (w *Widget) validate(body string, res FormatResult) string {
	if !res.Valid {
		if strings.IndexFunc(body, unicode.IsDigit) >= 0 {
			return "not a number"
		}
		return ""
	}

	s := w.settings
	if s.Min != nil && res.Value.Cmp(*s.Min) < 0 {
		return "below min " + s.Min.String()
	}
	if s.Max != nil && res.Value.Cmp(*s.Max) > 0 {
		return "above max " + s.Max.String()
	}

	length := len(strings.TrimPrefix(res.ValueString(), "-"))
	if s.MinLength > 0 && length < s.MinLength {
		return "too short"
	}
	if s.MaxLength > 0 && length > s.MaxLength {
		return "too long"
	}
	return ""
}

// commit writes res to the field, moves the caret and notifies subscribers.
// editedLen is the length of the edited display before formatting.
func (w *Widget) commit(edit PendingEdit, editedLen int, decimalToken bool, res FormatResult) {
	display := w.compose(res)
	oldLen := runeLen(edit.Display)
	newLen := runeLen(display)
	delta := newLen - oldLen

	var caret int
	switch {
	case decimalToken && w.decimalIndex(display) >= 0:
		caret = w.decimalIndex(display) + 1
	case editedLen <= oldLen:
		caret = edit.SelectionEnd + delta
		if edit.Type == DeleteContentForward && edit.SelectionStart == edit.SelectionEnd {
			caret++
		}
	default:
		caret = edit.SelectionStart + delta
	}
	caret = clamp(caret, w.prefixBoundary(display), newLen)

	w.setState(res, display)
	w.field.SetText(display)
	w.field.SetSelection(caret, caret, DirectionNone)
	w.emit()
}

// compose prepends the prefix to a formatted number.
func (w *Widget) compose(res FormatResult) string {
	if res.Formatted == "" {
		if w.settings.ShowAffixWhenEmpty {
			return w.prefix
		}
		return ""
	}
	return w.prefix + res.Formatted
}

// decimalIndex returns the rune offset of the decimal separator after the
// prefix, or -1.
func (w *Widget) decimalIndex(display string) int {
	runes := []rune(display)
	for i := w.prefixBoundary(display); i < len(runes); i++ {
		if runes[i] == w.seps.Decimal {
			return i
		}
	}
	return -1
}

// prefixBoundary is the rune length of the prefix when display starts with it.
func (w *Widget) prefixBoundary(display string) int {
	if w.prefix == "" || !strings.HasPrefix(display, w.prefix) {
		return 0
	}
	return runeLen(w.prefix)
}

// editableSelection returns the field selection clamped to the editable part
// of display.
func (w *Widget) editableSelection(display string) (int, int) {
	start, end := w.field.Selection()
	if start > end {
		start, end = end, start
	}
	n := runeLen(display)
	boundary := w.prefixBoundary(display)
	start = clamp(start, boundary, n)
	end = clamp(end, start, n)
	return start, end
}

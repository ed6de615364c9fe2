package livenumber

// SelectionDirection tracks which end of a selection moves.
type SelectionDirection int

const (
	DirectionNone SelectionDirection = iota
	DirectionForward
	DirectionBackward
)

func (d SelectionDirection) String() string {
	switch d {
	case DirectionForward:
		return "forward"
	case DirectionBackward:
		return "backward"
	default:
		return "none"
	}
}

// Field is the host text field a Widget formats. Offsets are rune offsets.
type Field interface {
	Text() string
	SetText(text string)
	Selection() (start, end int)
	SetSelection(start, end int, dir SelectionDirection)
	InputMode() string
	SetInputMode(mode string)
}

// EventHandler receives host notifications. Widget implements it.
type EventHandler interface {
	KeyDown(ev KeyEvent) bool
	BeforeInput(ev InputEvent) bool
	Blur()
}

// Attacher is implemented by fields that deliver notifications themselves.
// New attaches the widget and Destroy detaches it.
type Attacher interface {
	Attach(h EventHandler)
	Detach(h EventHandler)
}

// MemoryField is an in-memory Field. It backs the Typist, the replay command
// and tests.
type MemoryField struct {
	text      string
	start     int
	end       int
	direction SelectionDirection
	inputMode string
	handlers  []EventHandler
}

var (
	_ Field    = &MemoryField{}
	_ Attacher = &MemoryField{}
)

// NewMemoryField returns a field holding text with the caret at its end.
func NewMemoryField(text string) *MemoryField {
	n := runeLen(text)
	return &MemoryField{text: text, start: n, end: n, inputMode: "numeric"}
}

func (f *MemoryField) Text() string {
	return f.text
}

// SetText replaces the text and keeps the selection inside it.
func (f *MemoryField) SetText(text string) {
	f.text = text
	n := runeLen(text)
	f.start = clamp(f.start, 0, n)
	f.end = clamp(f.end, f.start, n)
}

func (f *MemoryField) Selection() (int, int) {
	return f.start, f.end
}

// SetSelection clamps the range into the text; an inverted range collapses
// onto start.
func (f *MemoryField) SetSelection(start, end int, dir SelectionDirection) {
	n := runeLen(f.text)
	f.start = clamp(start, 0, n)
	f.end = clamp(end, f.start, n)
	f.direction = dir
}

// Direction returns the direction of the last SetSelection call.
func (f *MemoryField) Direction() SelectionDirection {
	return f.direction
}

func (f *MemoryField) InputMode() string {
	return f.inputMode
}

func (f *MemoryField) SetInputMode(mode string) {
	f.inputMode = mode
}

func (f *MemoryField) Attach(h EventHandler) {
	if h != nil {
		f.handlers = append(f.handlers, h)
	}
}

func (f *MemoryField) Detach(h EventHandler) {
	for i, existing := range f.handlers {
		if existing == h {
			f.handlers = append(f.handlers[:i], f.handlers[i+1:]...)
			return
		}
	}
}

// Handlers returns the attached handlers.
func (f *MemoryField) Handlers() []EventHandler {
	out := make([]EventHandler, len(f.handlers))
	copy(out, f.handlers)
	return out
}

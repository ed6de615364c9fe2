package livenumber

import (
	"fmt"
	"strings"

	"go.uber.org/multierr"
)

// Script is a recorded editing session. It is read from YAML or JSON:
//
//	settings:
//	  locale: de-DE
//	  prefix: "€ "
//	steps:
//	  - type: "1234,5"
//	  - expect: "€ 1.234,5"
//	  - key: Shift+ArrowLeft
//	  - key: Backspace
//	  - expect_value: "1234"
type Script struct {
	Name     string   `yaml:"name"`
	Settings Settings `yaml:"settings"`
	Steps    []Step   `yaml:"steps"`
}

// Step is one action or expectation. Exactly one action field is expected
// per step; expectations may accompany an action and are checked after it.
type Step struct {
	// Key is a key name with optional modifiers: "Ctrl+a", "Shift+ArrowLeft".
	Key      string  `yaml:"key"`
	Type     string  `yaml:"type"`
	Paste    *string `yaml:"paste"`
	Select   []int   `yaml:"select"`
	SetValue *string `yaml:"set_value"`
	Blur     bool    `yaml:"blur"`

	Expect      *string `yaml:"expect"`
	ExpectValue *string `yaml:"expect_value"`
	ExpectCaret *int    `yaml:"expect_caret"`
}

// TranscriptLine records the field after a step.
type TranscriptLine struct {
	Step    int
	Action  string
	Display string
	Value   string
	Caret   int
}

func (l TranscriptLine) String() string {
	return fmt.Sprintf("%3d %-24s %-24q value=%-12q caret=%d", l.Step, l.Action, l.Display, l.Value, l.Caret)
}

// Transcript is the result of running a script.
type Transcript []TranscriptLine

// LoadScript reads a script file. Settings not present in the file keep
// their defaults.
func LoadScript(path string) (*Script, error) {
	s := &Script{Settings: DefaultSettings("")}
	if err := readConfigFile(path, s); err != nil {
		return nil, err
	}
	if s.Name == "" {
		s.Name = path
	}
	return s, nil
}

// ParseKey reads "Ctrl+Shift+ArrowLeft" style key descriptions.
func ParseKey(desc string) KeyEvent {
	var ev KeyEvent
	parts := strings.Split(desc, "+")
	if len(parts) > 1 && parts[len(parts)-1] == "" {
		// a literal plus key
		parts = append(parts[:len(parts)-2], "+")
	}
	for i, part := range parts {
		if i == len(parts)-1 {
			ev.Key = part
			break
		}
		switch strings.ToLower(strings.TrimSpace(part)) {
		case "shift":
			ev.Shift = true
		case "ctrl", "control":
			ev.Ctrl = true
		case "meta", "cmd":
			ev.Meta = true
		}
	}
	return ev
}

// Run replays the script on a fresh MemoryField. Construction errors are
// returned as is; failed expectations are collected into one error and do
// not stop the replay.
func (s *Script) Run(opts ...Option) (Transcript, error) {
	field := NewMemoryField("")
	w, err := New(field, s.Settings, opts...)
	if err != nil {
		return nil, err
	}
	defer w.Destroy()

	typist := NewTypist(w)
	var (
		transcript Transcript
		errs       error
	)

	for i, step := range s.Steps {
		n := i + 1
		action := step.apply(typist, w)
		_, caret := field.Selection()
		if action != "" {
			transcript = append(transcript, TranscriptLine{
				Step:    n,
				Action:  action,
				Display: w.FormattedValue(),
				Value:   w.Value(),
				Caret:   caret,
			})
		}

		if step.Expect != nil && w.FormattedValue() != *step.Expect {
			errs = multierr.Append(errs, fmt.Errorf("step %d: display %q, want %q", n, w.FormattedValue(), *step.Expect))
		}
		if step.ExpectValue != nil && w.Value() != *step.ExpectValue {
			errs = multierr.Append(errs, fmt.Errorf("step %d: value %q, want %q", n, w.Value(), *step.ExpectValue))
		}
		if step.ExpectCaret != nil && caret != *step.ExpectCaret {
			errs = multierr.Append(errs, fmt.Errorf("step %d: caret %d, want %d", n, caret, *step.ExpectCaret))
		}
	}

	return transcript, errs
}

// apply performs the action of the step and describes it.
func (st Step) apply(t *Typist, w *Widget) string {
	switch {
	case st.Key != "":
		t.Press(ParseKey(st.Key))
		return "key " + st.Key
	case st.Type != "":
		t.Type(st.Type)
		return fmt.Sprintf("type %q", st.Type)
	case st.Paste != nil:
		t.Paste(*st.Paste)
		return fmt.Sprintf("paste %q", *st.Paste)
	case len(st.Select) == 2:
		t.Select(st.Select[0], st.Select[1])
		return fmt.Sprintf("select %d..%d", st.Select[0], st.Select[1])
	case len(st.Select) == 1:
		t.Select(st.Select[0], st.Select[0])
		return fmt.Sprintf("caret %d", st.Select[0])
	case st.SetValue != nil:
		w.SetValue(*st.SetValue)
		return fmt.Sprintf("set %q", *st.SetValue)
	case st.Blur:
		t.Blur()
		return "blur"
	}
	return ""
}

package livenumber

import (
	"errors"
	"testing"

	"github.com/govalues/decimal"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest"
)

func newTestWidget(t *testing.T, s Settings) (*Widget, *MemoryField) {
	t.Helper()
	field := NewMemoryField("")
	logger := zaptest.NewLogger(t, zaptest.WrapOptions(zap.AddCaller(), zap.AddCallerSkip(1)))
	w, err := New(field, s, WithLogger(logger))
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	return w, field
}

// recordEvents collects every input event of w.
func recordEvents(w *Widget) *[]ChangeEvent {
	events := &[]ChangeEvent{}
	w.On(EventInput, func(ev ChangeEvent) {
		*events = append(*events, ev)
	})
	return events
}

func TestNewErrors(t *testing.T) {
	if _, err := New(nil, DefaultSettings("de-DE")); !errors.Is(err, ErrMissingElement) {
		t.Fatalf("New(nil) error = %v; want ErrMissingElement", err)
	}
	if _, err := New(NewMemoryField(""), DefaultSettings("")); !errors.Is(err, ErrMissingLocale) {
		t.Fatalf("New without locale error = %v; want ErrMissingLocale", err)
	}
	if _, err := New(NewMemoryField(""), DefaultSettings("en-US"), WithLogger(nil)); err == nil {
		t.Fatalf("New accepted a nil logger")
	}
}

func TestWidgetScenarios(t *testing.T) {
	t.Run("start value with prefix", func(t *testing.T) {
		s := DefaultSettings("de-DE")
		s.Prefix = ">> "
		s.StartValue = "1234.44"
		s.MaxDecimalPlaces = 2
		w, _ := newTestWidget(t, s)

		if got := w.Value(); got != "1234.44" {
			t.Fatalf("Value() = %q; want %q", got, "1234.44")
		}
		if got := w.FormattedValue(); got != ">> 1.234,44" {
			t.Fatalf("FormattedValue() = %q; want %q", got, ">> 1.234,44")
		}
	})

	t.Run("set float value", func(t *testing.T) {
		w, _ := newTestWidget(t, DefaultSettings("de-DE"))
		w.SetValue(19234.41)
		if got := w.FormattedValue(); got != "19.234,41" {
			t.Fatalf("FormattedValue() = %q; want %q", got, "19.234,41")
		}
	})

	t.Run("set unparseable value", func(t *testing.T) {
		w, _ := newTestWidget(t, DefaultSettings("de-DE"))
		w.SetValue(1)
		w.SetValue("-ds3.3441")
		if w.Value() != "" || w.FormattedValue() != "" {
			t.Fatalf("Value() = %q, FormattedValue() = %q; want both empty", w.Value(), w.FormattedValue())
		}
	})

	t.Run("decimal separator on empty field", func(t *testing.T) {
		w, field := newTestWidget(t, DefaultSettings("de-DE"))
		if !w.BeforeInput(InputEvent{Type: InsertText, Data: ","}) {
			t.Fatalf("BeforeInput(,) was rejected")
		}
		if w.FormattedValue() != "0," || w.Value() != "0" {
			t.Fatalf("FormattedValue() = %q, Value() = %q; want %q, %q", w.FormattedValue(), w.Value(), "0,", "0")
		}
		if start, end := field.Selection(); start != 2 || end != 2 {
			t.Fatalf("caret = %d..%d; want 2", start, end)
		}
	})

	t.Run("fractions disabled", func(t *testing.T) {
		s := DefaultSettings("de-DE")
		s.AllowComma = false
		s.StartValue = "1234.56"
		w, _ := newTestWidget(t, s)
		if got := w.Value(); got != "1234" {
			t.Fatalf("Value() = %q; want %q", got, "1234")
		}
	})

	t.Run("affix shown when empty", func(t *testing.T) {
		s := DefaultSettings("de-DE")
		s.ShowAffixWhenEmpty = true
		s.Prefix = ":-)"
		w, _ := newTestWidget(t, s)
		if w.FormattedValue() != ":-)" || w.Value() != "" {
			t.Fatalf("FormattedValue() = %q, Value() = %q; want %q, empty", w.FormattedValue(), w.Value(), ":-)")
		}
	})
}

func TestSetValueTypes(t *testing.T) {
	tests := []struct {
		name  string
		value any
		want  string
	}{
		{name: "int", value: 1234, want: "1,234"},
		{name: "negative int64", value: int64(-42), want: "-42"},
		{name: "uint8", value: uint8(7), want: "7"},
		{name: "float32", value: float32(1.5), want: "1.5"},
		{name: "decimal", value: decimal.MustParse("1234.50"), want: "1,234.50"},
		{name: "decimal pointer", value: new(decimal.Decimal), want: "0"},
		{name: "plain string", value: "1234.5", want: "1,234.5"},
		{name: "string with letters", value: "12a", want: ""},
		{name: "comma string", value: "1,5", want: ""},
		{name: "empty string", value: "", want: ""},
		{name: "nil", value: nil, want: ""},
		{name: "unsupported type", value: []int{1}, want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w, field := newTestWidget(t, DefaultSettings("en-US"))
			w.SetValue(tt.value)
			if got := w.FormattedValue(); got != tt.want {
				t.Fatalf("SetValue(%v) display = %q; want %q", tt.value, got, tt.want)
			}
			if field.Text() != w.FormattedValue() {
				t.Fatalf("field text %q differs from FormattedValue %q", field.Text(), w.FormattedValue())
			}
			if start, _ := field.Selection(); start != runeLen(tt.want) {
				t.Fatalf("caret = %d; want end of %q", start, tt.want)
			}
		})
	}
}

func TestSetValueIgnoresBoundsAndEmits(t *testing.T) {
	upper := decimal.MustParse("10")
	s := DefaultSettings("de-DE")
	s.Max = &upper
	w, _ := newTestWidget(t, s)
	events := recordEvents(w)

	w.SetValue(1234.5)
	if w.Value() != "1234.5" {
		t.Fatalf("Value() = %q; want %q", w.Value(), "1234.5")
	}
	if len(*events) != 1 || (*events)[0] != (ChangeEvent{Value: "1234.5", Formatted: "1.234,5"}) {
		t.Fatalf("events = %+v; want one event for 1234.5", *events)
	}
}

func TestOnOnlyAcceptsInput(t *testing.T) {
	w, _ := newTestWidget(t, DefaultSettings("en-US"))

	if sub := w.On("change", func(ChangeEvent) {}); sub.Valid() {
		t.Fatalf("On(change) = %+v; want zero subscription", sub)
	}

	count := 0
	sub := w.On(EventInput, func(ChangeEvent) { count++ })
	w.SetValue(1)
	w.Off(sub)
	w.SetValue(2)
	if count != 1 {
		t.Fatalf("handler called %d times; want 1", count)
	}
}

func TestUpdateSwapsSeparators(t *testing.T) {
	w, field := newTestWidget(t, DefaultSettings("de-DE"))
	w.SetValue(1234.5)
	events := recordEvents(w)

	if err := w.Update(WithLocale("en-US")); err != nil {
		t.Fatalf("Update returned error: %v", err)
	}
	if w.FormattedValue() != "1,234.5" || field.Text() != "1,234.5" {
		t.Fatalf("FormattedValue() = %q; want %q", w.FormattedValue(), "1,234.5")
	}
	if w.Value() != "1234.5" {
		t.Fatalf("Value() = %q; want %q", w.Value(), "1234.5")
	}
	if w.Separators().Decimal != '.' {
		t.Fatalf("Separators().Decimal = %q; want '.'", w.Separators().Decimal)
	}
	if len(*events) != 1 {
		t.Fatalf("got %d events; want 1", len(*events))
	}
}

func TestSwapSeparators(t *testing.T) {
	if got := swapSeparators("1.234,5", germanSeps, englishSeps); got != "1,234.5" {
		t.Fatalf("swapSeparators = %q; want %q", got, "1,234.5")
	}
	if got := swapSeparators("1,234.5", englishSeps, Separators{Decimal: ','}); got != "1234,5" {
		t.Fatalf("swapSeparators to ungrouped = %q; want %q", got, "1234,5")
	}
}

func TestUpdatePrefixAndFractions(t *testing.T) {
	w, field := newTestWidget(t, DefaultSettings("de-DE"))
	w.SetValue(1234.5)

	if err := w.Update(WithPrefix("€ ")); err != nil {
		t.Fatalf("Update returned error: %v", err)
	}
	if w.FormattedValue() != "€ 1.234,5" {
		t.Fatalf("FormattedValue() = %q; want %q", w.FormattedValue(), "€ 1.234,5")
	}

	if err := w.Update(WithMaxDecimalPlaces(0)); err != nil {
		t.Fatalf("Update returned error: %v", err)
	}
	if w.FormattedValue() != "€ 1.234" || w.Value() != "1234" {
		t.Fatalf("FormattedValue() = %q, Value() = %q; want %q, %q", w.FormattedValue(), w.Value(), "€ 1.234", "1234")
	}
	if start, _ := field.Selection(); start < 2 {
		t.Fatalf("caret %d inside the prefix", start)
	}
}

func TestUpdateRejectsInvalidSettings(t *testing.T) {
	w, _ := newTestWidget(t, DefaultSettings("de-DE"))
	w.SetValue(5)

	if err := w.Update(WithLocale("")); !errors.Is(err, ErrMissingLocale) {
		t.Fatalf("Update(empty locale) error = %v; want ErrMissingLocale", err)
	}

	lower, upper := decimal.MustParse("10"), decimal.MustParse("1")
	if err := w.Update(WithBounds(&lower, &upper)); err == nil {
		t.Fatalf("Update accepted min > max")
	}

	if got := w.Settings(); got.Locale != "de-DE" || got.Min != nil {
		t.Fatalf("Settings() = %+v; want the original settings", got)
	}
	if w.FormattedValue() != "5" {
		t.Fatalf("FormattedValue() = %q; want %q", w.FormattedValue(), "5")
	}
}

func TestCurrencyPrefix(t *testing.T) {
	s := DefaultSettings("en-US")
	s.Currency = "EUR"
	s.StartValue = "12"
	w, _ := newTestWidget(t, s)

	if w.Prefix() != "€ " || w.FormattedValue() != "€ 12" {
		t.Fatalf("Prefix() = %q, FormattedValue() = %q; want %q, %q", w.Prefix(), w.FormattedValue(), "€ ", "€ 12")
	}
}

func TestDestroy(t *testing.T) {
	w, field := newTestWidget(t, DefaultSettings("en-US"))
	if field.InputMode() != InputModeDecimal {
		t.Fatalf("InputMode() = %q; want %q", field.InputMode(), InputModeDecimal)
	}
	if len(field.Handlers()) != 1 {
		t.Fatalf("widget not attached to the field")
	}

	count := 0
	w.On(EventInput, func(ChangeEvent) { count++ })
	w.Destroy()
	w.Destroy()

	if field.InputMode() != "numeric" {
		t.Fatalf("InputMode() after Destroy = %q; want %q", field.InputMode(), "numeric")
	}
	if len(field.Handlers()) != 0 {
		t.Fatalf("widget still attached after Destroy")
	}

	w.SetValue(5)
	if w.BeforeInput(InputEvent{Type: InsertText, Data: "1"}) {
		t.Fatalf("BeforeInput committed after Destroy")
	}
	if sub := w.On(EventInput, func(ChangeEvent) {}); sub.Valid() {
		t.Fatalf("On accepted a subscription after Destroy")
	}
	if count != 0 || field.Text() != "" {
		t.Fatalf("destroyed widget still reacts: %d events, text %q", count, field.Text())
	}
}

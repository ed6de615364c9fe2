package livenumber

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/govalues/decimal"
	"go.uber.org/zap"
)

// InputModeDecimal is the input mode a widget puts its field into.
const InputModeDecimal = "decimal"

var valuePattern = regexp.MustCompile(`^[0-9\-,.]*$`)

// State is the widget state, owned by the commit step.
type State struct {
	// Value is the normalized number, "" for an empty field.
	Value string
	// RawValue is the display without prefix and group separators.
	RawValue           string
	FormattedValue     string
	IsMinus            bool
	SelectionDirection SelectionDirection
	// DefaultPrevented records that the last arrow key was clamped at the
	// prefix boundary.
	DefaultPrevented bool
}

// Widget formats a Field as a live number input. It is not safe for
// concurrent use: the host delivers notifications one at a time.
type Widget struct {
	field             Field
	settings          Settings
	seps              Separators
	prefix            string
	resolver          *SeparatorResolver
	logger            *zap.Logger
	bus               *Bus
	state             State
	originalInputMode string
	destroyed         bool
}

var _ EventHandler = &Widget{}

// Option configures a Widget.
type Option func(*Widget) error

// WithLogger sets the logger used for rejected edits and lifecycle events.
func WithLogger(logger *zap.Logger) Option {
	return func(w *Widget) error {
		if logger == nil {
			return fmt.Errorf("livenumber: nil logger")
		}
		w.logger = logger
		return nil
	}
}

// WithResolver sets the separator resolver. The process wide resolver is
// used by default.
func WithResolver(resolver *SeparatorResolver) Option {
	return func(w *Widget) error {
		if resolver == nil {
			return fmt.Errorf("livenumber: nil resolver")
		}
		w.resolver = resolver
		return nil
	}
}

// New attaches a widget to field. It fails with ErrMissingElement for a nil
// field and with ErrMissingLocale when settings carry no locale.
func New(field Field, settings Settings, opts ...Option) (*Widget, error) {
	if field == nil {
		return nil, ErrMissingElement
	}
	if err := settings.Validate(); err != nil {
		return nil, err
	}

	w := &Widget{
		field:    field,
		settings: settings.Clone(),
		resolver: defaultResolver,
		logger:   zap.NewNop(),
		bus:      NewBus(EventInput),
	}
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		if err := opt(w); err != nil {
			return nil, err
		}
	}

	seps, err := w.resolver.Resolve(w.settings.Locale)
	if err != nil {
		return nil, fmt.Errorf("resolve separators: %w", err)
	}
	w.seps = seps
	w.prefix = w.settings.effectivePrefix()

	w.originalInputMode = field.InputMode()
	field.SetInputMode(InputModeDecimal)

	if w.settings.StartValue != "" {
		w.SetValue(w.settings.StartValue)
	} else {
		w.commitValue("")
	}

	if a, ok := field.(Attacher); ok {
		a.Attach(w)
	}

	w.logger.Debug("widget attached",
		zap.String("locale", w.settings.Locale),
		zap.String("prefix", w.prefix),
		zap.String("decimal", seps.DecimalString()),
		zap.String("group", seps.GroupString()),
	)
	return w, nil
}

// SetValue replaces the value. Strings must consist of digits, '-', ',' and
// '.' and read as a plain number; anything else empties the field. Bounds are
// not enforced.
func (w *Widget) SetValue(v any) {
	if w.destroyed {
		return
	}
	w.commitValue(plainValue(v))
}

// plainValue converts v into a plain number string, or "".
func plainValue(v any) string {
	var text string
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		text = strings.TrimSpace(val)
	case int:
		text = strconv.FormatInt(int64(val), 10)
	case int8:
		text = strconv.FormatInt(int64(val), 10)
	case int16:
		text = strconv.FormatInt(int64(val), 10)
	case int32:
		text = strconv.FormatInt(int64(val), 10)
	case int64:
		text = strconv.FormatInt(val, 10)
	case uint:
		text = strconv.FormatUint(uint64(val), 10)
	case uint8:
		text = strconv.FormatUint(uint64(val), 10)
	case uint16:
		text = strconv.FormatUint(uint64(val), 10)
	case uint32:
		text = strconv.FormatUint(uint64(val), 10)
	case uint64:
		text = strconv.FormatUint(val, 10)
	case float32:
		text = strconv.FormatFloat(float64(val), 'f', -1, 32)
	case float64:
		text = strconv.FormatFloat(val, 'f', -1, 64)
	case decimal.Decimal:
		text = val.String()
	case *decimal.Decimal:
		if val == nil {
			return ""
		}
		text = val.String()
	default:
		return ""
	}

	if text == "" || !valuePattern.MatchString(text) {
		return ""
	}
	d, err := parseDecimal(text)
	if err != nil {
		return ""
	}
	return d.String()
}

// commitValue formats a plain number and writes it with the caret at the end.
func (w *Widget) commitValue(plain string) {
	var res FormatResult
	if plain != "" {
		res = Format(localizePoint(plain, w.seps), w.settings.formatOptions(w.seps))
	}
	display := w.compose(res)

	w.setState(res, display)
	w.field.SetText(display)
	end := runeLen(display)
	w.field.SetSelection(end, end, DirectionNone)
	w.emit()
}

// setState records a committed result.
func (w *Widget) setState(res FormatResult, display string) {
	w.state.Value = res.ValueString()
	w.state.RawValue = stripGroups(res.Formatted, w.seps)
	w.state.FormattedValue = display
	w.state.IsMinus = strings.ContainsRune(string([]rune(display)[w.prefixBoundary(display):]), '-')
}

func stripGroups(formatted string, seps Separators) string {
	if seps.Group == 0 {
		return formatted
	}
	return strings.ReplaceAll(formatted, seps.GroupString(), "")
}

func (w *Widget) emit() {
	w.bus.Publish(EventInput, ChangeEvent{
		Value:     w.state.Value,
		Formatted: w.state.FormattedValue,
	})
}

// Value returns the normalized value ("1234.56") or "".
func (w *Widget) Value() string {
	return w.state.Value
}

// FormattedValue returns the display string including the prefix.
func (w *Widget) FormattedValue() string {
	return w.state.FormattedValue
}

// Settings returns a copy of the active settings.
func (w *Widget) Settings() Settings {
	return w.settings.Clone()
}

// State returns a snapshot of the widget state.
func (w *Widget) State() State {
	return w.state
}

// Separators returns the separators of the active locale.
func (w *Widget) Separators() Separators {
	return w.seps
}

// Prefix returns the prefix in use, which may come from Currency.
func (w *Widget) Prefix() string {
	return w.prefix
}

// Update applies changes to the settings. Invalid results are returned as an
// error and leave the widget untouched. The current value is carried over:
// separators are swapped in place when the locale writes numbers differently,
// the prefix is replaced and the fraction policy reapplied.
func (w *Widget) Update(changes ...SettingFunc) error {
	if w.destroyed {
		return nil
	}

	next := w.settings.Clone()
	for _, change := range changes {
		if change != nil {
			change(&next)
		}
	}
	if err := next.Validate(); err != nil {
		return err
	}
	seps, err := w.resolver.Resolve(next.Locale)
	if err != nil {
		return fmt.Errorf("resolve separators: %w", err)
	}

	oldDisplay := w.field.Text()
	body := string([]rune(oldDisplay)[w.prefixBoundary(oldDisplay):])
	_, caretEnd := w.field.Selection()
	fromEnd := runeLen(oldDisplay) - caretEnd

	if seps != w.seps {
		body = swapSeparators(body, w.seps, seps)
	}

	w.settings = next
	w.seps = seps
	w.prefix = next.effectivePrefix()

	res := Format(body, next.formatOptions(seps))
	display := w.compose(res)
	w.setState(res, display)
	w.field.SetText(display)

	n := runeLen(display)
	caret := clamp(n-fromEnd, w.prefixBoundary(display), n)
	w.field.SetSelection(caret, caret, DirectionNone)

	w.logger.Debug("settings updated",
		zap.String("locale", next.Locale),
		zap.String("display", display),
	)
	if display != oldDisplay {
		w.emit()
	}
	return nil
}

// swapSeparators rewrites a formatted number from one set of separators to
// another, going through a placeholder so the two may trade places.
func swapSeparators(body string, from, to Separators) string {
	const placeholder = '\uFFFF'

	var out strings.Builder
	for _, r := range body {
		switch {
		case r == from.Decimal:
			out.WriteRune(placeholder)
		case from.Group != 0 && r == from.Group:
			if to.Group != 0 {
				out.WriteRune(to.Group)
			}
		default:
			out.WriteRune(r)
		}
	}
	return strings.ReplaceAll(out.String(), string(placeholder), to.DecimalString())
}

// On subscribes h to event. Only EventInput is accepted; other names yield
// the zero Subscription.
func (w *Widget) On(event string, h Handler) Subscription {
	if w.destroyed {
		return Subscription{}
	}
	return w.bus.Subscribe(event, h)
}

// Off removes a subscription.
func (w *Widget) Off(sub Subscription) {
	w.bus.Unsubscribe(sub)
}

// Destroy detaches the widget, restores the original input mode and drops
// all subscribers. Later notifications are ignored.
func (w *Widget) Destroy() {
	if w.destroyed {
		return
	}
	if a, ok := w.field.(Attacher); ok {
		a.Detach(w)
	}
	w.field.SetInputMode(w.originalInputMode)
	w.bus.UnsubscribeAll("")
	w.destroyed = true
	w.logger.Debug("widget destroyed", zap.String("value", w.state.Value))
}

package livenumber

import (
	"errors"
	"fmt"
	"strings"
	"unicode"

	"github.com/go-playground/validator/v10"
	"github.com/govalues/decimal"
	"go.uber.org/multierr"
	"golang.org/x/text/currency"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"gopkg.in/yaml.v3"
)

// Settings configures a Widget. Start from DefaultSettings: the zero value
// disables fractions.
type Settings struct {
	Locale string `yaml:"locale" validate:"required"`
	Prefix string `yaml:"prefix"`
	// Currency is an ISO 4217 code. When Prefix is empty the currency symbol
	// followed by a space is used as prefix.
	Currency string           `yaml:"currency" validate:"omitempty,iso4217"`
	Min      *decimal.Decimal `yaml:"min" validate:"-"`
	Max      *decimal.Decimal `yaml:"max" validate:"-"`
	// MaxDecimalPlaces caps the fraction digits, Unlimited keeps them all.
	MaxDecimalPlaces   int    `yaml:"max_decimal_places" validate:"gte=-1,lte=19"`
	AllowComma         bool   `yaml:"allow_comma"`
	ShowAffixWhenEmpty bool   `yaml:"show_affix_when_empty"`
	StartValue         string `yaml:"start_value"`
	// MinLength and MaxLength bound the length of the normalized value without
	// sign; zero means unbounded. Empty values are never rejected.
	MinLength int `yaml:"min_length" validate:"gte=0"`
	MaxLength int `yaml:"max_length" validate:"gte=0"`
}

// DefaultSettings returns the documented defaults for locale.
func DefaultSettings(locale string) Settings {
	return Settings{
		Locale:           locale,
		MaxDecimalPlaces: Unlimited,
		AllowComma:       true,
	}
}

// LoadSettings reads settings from a JSON or YAML file on top of the defaults
// and validates them.
func LoadSettings(path string) (Settings, error) {
	s := DefaultSettings("")
	if err := readConfigFile(path, &s); err != nil {
		return Settings{}, err
	}
	if err := s.Validate(); err != nil {
		return Settings{}, err
	}
	return s, nil
}

// DumpSettings renders s as YAML in the format LoadSettings reads.
func DumpSettings(s Settings) ([]byte, error) {
	data, err := yaml.Marshal(s)
	if err != nil {
		return nil, fmt.Errorf("livenumber: marshal settings: %w", err)
	}
	return data, nil
}

var settingsValidator = validator.New(validator.WithRequiredStructEnabled())

// Validate checks the settings. A missing locale is reported as
// ErrMissingLocale; all other problems are joined into one error.
func (s Settings) Validate() error {
	if strings.TrimSpace(s.Locale) == "" {
		return ErrMissingLocale
	}

	var err error
	if verr := settingsValidator.Struct(s); verr != nil {
		var fieldErrs validator.ValidationErrors
		if errors.As(verr, &fieldErrs) {
			for _, fe := range fieldErrs {
				err = multierr.Append(err, fmt.Errorf("%s: failed on %q (value %v)", fe.Field(), fe.Tag(), fe.Value()))
			}
		} else {
			err = multierr.Append(err, verr)
		}
	}

	if s.Min != nil && s.Max != nil && s.Min.Cmp(*s.Max) > 0 {
		err = multierr.Append(err, fmt.Errorf("min %s is greater than max %s", s.Min, s.Max))
	}
	if s.MaxLength > 0 && s.MinLength > s.MaxLength {
		err = multierr.Append(err, fmt.Errorf("min_length %d is greater than max_length %d", s.MinLength, s.MaxLength))
	}

	if err != nil {
		return fmt.Errorf("livenumber: invalid settings: %w", err)
	}
	return nil
}

// Clone returns a copy that shares no pointers with s.
func (s Settings) Clone() Settings {
	out := s
	if s.Min != nil {
		v := *s.Min
		out.Min = &v
	}
	if s.Max != nil {
		v := *s.Max
		out.Max = &v
	}
	return out
}

func (s Settings) formatOptions(seps Separators) FormatOptions {
	return FormatOptions{
		Separators:       seps,
		AllowFraction:    s.AllowComma,
		MaxDecimalPlaces: s.MaxDecimalPlaces,
	}
}

// effectivePrefix returns Prefix, or the currency symbol when only Currency
// is set.
func (s Settings) effectivePrefix() string {
	if s.Prefix != "" || s.Currency == "" {
		return s.Prefix
	}
	return currencySymbol(s.Locale, s.Currency) + " "
}

// currencySymbol asks x/text for the symbol of code in locale by formatting
// a zero amount and dropping everything numeric from the result.
func currencySymbol(locale, code string) string {
	unit, err := currency.ParseISO(strings.TrimSpace(code))
	if err != nil {
		return strings.ToUpper(strings.TrimSpace(code))
	}

	printer := message.NewPrinter(language.Make(normalizeLocale(locale)))
	formatted := printer.Sprintf("%v", currency.Symbol(unit.Amount(0)))

	symbol := strings.Map(func(r rune) rune {
		if unicode.IsDigit(r) || unicode.IsSpace(r) || unicode.Is(unicode.Cf, r) || r == '.' || r == ',' {
			return -1
		}
		return r
	}, formatted)
	if symbol == "" {
		return unit.String()
	}
	return symbol
}

// SettingFunc changes one aspect of Settings, see Widget.Update.
type SettingFunc func(*Settings)

// WithLocale switches the locale.
func WithLocale(locale string) SettingFunc {
	return func(s *Settings) {
		s.Locale = locale
	}
}

// WithPrefix sets the non-editable prefix.
func WithPrefix(prefix string) SettingFunc {
	return func(s *Settings) {
		s.Prefix = prefix
	}
}

// WithCurrency sets the currency code used for the prefix.
func WithCurrency(code string) SettingFunc {
	return func(s *Settings) {
		s.Currency = code
	}
}

// WithBounds sets min and max; nil removes a bound.
func WithBounds(lower, upper *decimal.Decimal) SettingFunc {
	return func(s *Settings) {
		s.Min = lower
		s.Max = upper
	}
}

// WithMaxDecimalPlaces sets the fraction cap.
func WithMaxDecimalPlaces(places int) SettingFunc {
	return func(s *Settings) {
		s.MaxDecimalPlaces = places
	}
}

// WithAllowComma enables or disables the fractional part.
func WithAllowComma(allow bool) SettingFunc {
	return func(s *Settings) {
		s.AllowComma = allow
	}
}

// WithShowAffixWhenEmpty controls whether an empty field shows the prefix.
func WithShowAffixWhenEmpty(show bool) SettingFunc {
	return func(s *Settings) {
		s.ShowAffixWhenEmpty = show
	}
}

// WithLength sets the value length bounds.
func WithLength(shortest, longest int) SettingFunc {
	return func(s *Settings) {
		s.MinLength = shortest
		s.MaxLength = longest
	}
}

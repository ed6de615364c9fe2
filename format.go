package livenumber

import (
	"strings"

	"github.com/govalues/decimal"
)

// Unlimited disables the decimal place cap.
const Unlimited = -1

// FormatOptions controls Format.
type FormatOptions struct {
	Separators    Separators
	AllowFraction bool
	// MaxDecimalPlaces caps the fraction digits; Unlimited (or any negative
	// value) keeps all of them.
	MaxDecimalPlaces int
}

// FormatResult is the outcome of Format. Valid is false when the input holds
// no number; Formatted is empty in that case.
type FormatResult struct {
	Value     decimal.Decimal
	Valid     bool
	Formatted string
}

// ValueString returns the normalized value ("1234.56"), or "" when invalid.
func (r FormatResult) ValueString() string {
	if !r.Valid {
		return ""
	}
	return r.Value.Trim(0).String()
}

// Format renders raw, a display string written with the separators in opts,
// as a grouped display string without prefix. Fraction digits beyond
// MaxDecimalPlaces are cut off, never rounded. A trailing decimal separator
// ("12,") is kept so a separator typed a moment ago survives reformatting.
func Format(raw string, opts FormatOptions) FormatResult {
	seps := opts.Separators
	text, ok := numericText(raw, &seps)
	if !ok {
		return FormatResult{}
	}

	sign := ""
	if strings.HasPrefix(text, "-") {
		sign = "-"
		text = text[1:]
	}

	intPart, frac, hasPoint := strings.Cut(text, ".")
	intPart = strings.TrimLeft(intPart, "0")
	if intPart == "" {
		intPart = "0"
	}

	trailing := hasPoint && frac == ""
	switch {
	case !opts.AllowFraction:
		frac, trailing = "", false
	case opts.MaxDecimalPlaces == 0:
		frac, trailing = "", false
	case opts.MaxDecimalPlaces > 0 && len(frac) > opts.MaxDecimalPlaces:
		frac = frac[:opts.MaxDecimalPlaces]
	}

	if len(intPart)+len(frac) > decimal.MaxPrec {
		return FormatResult{}
	}

	plain := sign + intPart
	if frac != "" {
		plain += "." + frac
	}
	value, err := parseDecimal(plain)
	if err != nil {
		return FormatResult{}
	}

	var builder strings.Builder
	builder.WriteString(sign)
	builder.WriteString(groupDigits(intPart, seps))
	if frac != "" || trailing {
		builder.WriteRune(seps.Decimal)
		builder.WriteString(frac)
	}

	return FormatResult{Value: value, Valid: true, Formatted: builder.String()}
}

// FormatNumber formats a plain number ("1234.5") for locale.
func FormatNumber(locale, value string, maxDecimalPlaces int) (string, error) {
	seps, err := ResolveSeparators(locale)
	if err != nil {
		return "", err
	}

	d, err := parseDecimal(value)
	if err != nil {
		return "", err
	}

	res := Format(localizePoint(d.String(), seps), FormatOptions{
		Separators:       seps,
		AllowFraction:    true,
		MaxDecimalPlaces: maxDecimalPlaces,
	})
	return res.Formatted, nil
}

// localizePoint swaps the '.' of a plain number for the locale decimal separator.
func localizePoint(plain string, seps Separators) string {
	return strings.Replace(plain, ".", seps.DecimalString(), 1)
}

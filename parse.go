package livenumber

import (
	"fmt"
	"regexp"
	"strings"
	"unicode"

	"github.com/govalues/decimal"
)

var (
	bareNumberPattern    = regexp.MustCompile(`^\s*-?(\d+\.?\d*|\.\d+)\s*$`)
	leadingNumberPattern = regexp.MustCompile(`^\s*(-?(?:\d+\.?\d*|\.\d+))`)
)

// ParseNumber reads a display string such as "€ 1.234,56" back into a number.
//
// With separators the string is read the way that locale writes numbers. With
// nil separators the role of '.' and ',' is guessed from their position: when
// both occur the rightmost one is the decimal separator; when only one kind
// occurs it is a decimal separator if it appears once and is not followed by
// exactly three digits. The guess is best-effort: "1.234" stays ambiguous.
//
// A bare number ("-1234.5") is returned as is, unless it contains the group
// separator of the given locale: "1.234" reads as 1234 for de-DE.
// Like parseFloat, trailing garbage after a valid number is ignored.
func ParseNumber(display string, seps *Separators) (decimal.Decimal, error) {
	text, ok := numericText(display, seps)
	if !ok {
		return decimal.Decimal{}, ErrNotANumber
	}
	return parseDecimal(text)
}

// numericText extracts the leading number of display in plain notation
// ("-1234.5", "12.", ".5").
func numericText(display string, seps *Separators) (string, bool) {
	if strings.TrimSpace(display) == "" {
		return "", false
	}

	if bareNumberPattern.MatchString(display) && (seps == nil || !strings.ContainsRune(display, seps.Group)) {
		return strings.TrimSpace(display), true
	}

	var normalized string
	if seps != nil {
		normalized = normalizeLocaleDigits(display, *seps)
	} else {
		normalized = normalizeAmbiguousDigits(display)
	}

	match := leadingNumberPattern.FindStringSubmatch(normalized)
	if match == nil {
		return "", false
	}
	return match[1], true
}

// ParseLocaleNumber is ParseNumber with the separators of locale.
func ParseLocaleNumber(display, locale string) (decimal.Decimal, error) {
	seps, err := ResolveSeparators(locale)
	if err != nil {
		return decimal.Decimal{}, err
	}
	return ParseNumber(display, &seps)
}

func parseDecimal(value string) (decimal.Decimal, error) {
	value = strings.TrimSuffix(strings.TrimSpace(value), ".")
	d, err := decimal.Parse(value)
	if err != nil {
		return decimal.Decimal{}, fmt.Errorf("%w: %q: %w", ErrNotANumber, value, err)
	}
	return d, nil
}

// normalizeLocaleDigits keeps digits, '-', the locale separators and
// whitespace, drops grouping and converts the decimal separator to '.'.
func normalizeLocaleDigits(display string, seps Separators) string {
	spaceGroup := seps.Group != 0 && unicode.IsSpace(seps.Group)

	var builder strings.Builder
	for _, r := range display {
		switch {
		case r >= '0' && r <= '9', r == '-':
			builder.WriteRune(r)
		case r == seps.Decimal:
			builder.WriteByte('.')
		case seps.Group != 0 && r == seps.Group:
		case unicode.IsSpace(r):
			if !spaceGroup {
				builder.WriteRune(r)
			}
		}
	}
	return builder.String()
}

// normalizeAmbiguousDigits resolves '.' and ',' without locale knowledge.
func normalizeAmbiguousDigits(display string) string {
	var builder strings.Builder
	for _, r := range display {
		if (r >= '0' && r <= '9') || r == '-' || r == '.' || r == ',' {
			builder.WriteRune(r)
		}
	}
	result := builder.String()

	lastComma := strings.LastIndexByte(result, ',')
	lastDot := strings.LastIndexByte(result, '.')

	switch {
	case lastComma >= 0 && lastDot >= 0:
		if lastComma > lastDot {
			result = strings.ReplaceAll(result, ".", "")
			return strings.Replace(result, ",", ".", 1)
		}
		return strings.ReplaceAll(result, ",", "")
	case lastDot >= 0:
		return resolveSingleSeparator(result, ".")
	case lastComma >= 0:
		return resolveSingleSeparator(result, ",")
	}
	return result
}

func resolveSingleSeparator(value, sep string) string {
	if strings.Count(value, sep) == 1 {
		idx := strings.Index(value, sep)
		if trailingDigits(value[idx+1:]) != 3 {
			return strings.Replace(value, sep, ".", 1)
		}
	}
	return strings.ReplaceAll(value, sep, "")
}

func trailingDigits(value string) int {
	n := 0
	for n < len(value) && value[n] >= '0' && value[n] <= '9' {
		n++
	}
	return n
}

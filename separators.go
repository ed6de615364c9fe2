package livenumber

import (
	"strings"
	"sync"
	"unicode"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

// probeValue is formatted once per locale to learn its separators. Seven
// integer digits expose both the primary and the secondary grouping size.
const probeValue = 1234567.89

// Separators describes how a locale writes numbers.
type Separators struct {
	Decimal rune
	// Group is zero for locales that do not group digits.
	Group              rune
	GroupSize          int
	SecondaryGroupSize int
}

// rootSeparators is used when a locale yields nothing usable.
var rootSeparators = Separators{Decimal: '.', Group: ',', GroupSize: 3, SecondaryGroupSize: 3}

// DecimalString returns the decimal separator as a string.
func (s Separators) DecimalString() string {
	return string(s.Decimal)
}

// GroupString returns the group separator, or "" when the locale does not group.
func (s Separators) GroupString() string {
	if s.Group == 0 {
		return ""
	}
	return string(s.Group)
}

func (s Separators) isSeparator(r rune) bool {
	return r == s.Decimal || (s.Group != 0 && r == s.Group)
}

// SeparatorResolver maps locale tags to Separators. Results are cached for the
// lifetime of the resolver and never evicted. It is safe for concurrent use.
type SeparatorResolver struct {
	mu    sync.RWMutex
	cache map[string]Separators
	table SeparatorTable
}

// ResolverOption configures a SeparatorResolver.
type ResolverOption func(*SeparatorResolver)

// WithSeparatorTable makes the resolver consult table before probing x/text.
func WithSeparatorTable(table SeparatorTable) ResolverOption {
	return func(r *SeparatorResolver) {
		r.table = table
	}
}

// NewSeparatorResolver builds an empty resolver.
func NewSeparatorResolver(opts ...ResolverOption) *SeparatorResolver {
	r := &SeparatorResolver{cache: make(map[string]Separators)}
	for _, opt := range opts {
		if opt != nil {
			opt(r)
		}
	}
	return r
}

var defaultResolver = NewSeparatorResolver()

// ResolveSeparators resolves locale through the process wide resolver.
func ResolveSeparators(locale string) (Separators, error) {
	return defaultResolver.Resolve(locale)
}

// Resolve returns the separators of locale. An empty locale is an error.
func (r *SeparatorResolver) Resolve(locale string) (Separators, error) {
	key := normalizeLocale(locale)
	if key == "" {
		return Separators{}, ErrMissingLocale
	}

	r.mu.RLock()
	seps, ok := r.cache[key]
	r.mu.RUnlock()
	if ok {
		return seps, nil
	}

	seps, ok = r.table.Lookup(key)
	if !ok {
		seps = probeSeparators(key)
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if cached, exists := r.cache[key]; exists {
		return cached, nil
	}
	r.cache[key] = seps
	return seps, nil
}

// probeSeparators formats probeValue with the locale's number printer and
// reads the separators back out of the result.
func probeSeparators(locale string) Separators {
	tag := language.Make(locale)
	printer := message.NewPrinter(tag)
	probe := printer.Sprint(number.Decimal(probeValue, number.MinFractionDigits(2), number.MaxFractionDigits(2)))
	return separatorsFromSample(probe)
}

// separatorsFromSample extracts separators from a formatted probeValue such
// as "1.234.567,89" or "12,34,567.89".
func separatorsFromSample(sample string) Separators {
	runes := make([]rune, 0, len(sample))
	for _, r := range sample {
		// bidi marks and other format characters carry no meaning here
		if unicode.Is(unicode.Cf, r) {
			continue
		}
		runes = append(runes, r)
	}

	decimalAt := -1
	for i := len(runes) - 1; i >= 0; i-- {
		if !unicode.IsDigit(runes[i]) {
			decimalAt = i
			break
		}
	}
	if decimalAt <= 0 {
		return rootSeparators
	}

	seps := Separators{Decimal: runes[decimalAt]}

	var groups []int
	run := 0
	for _, r := range runes[:decimalAt] {
		if unicode.IsDigit(r) {
			run++
			continue
		}
		if seps.Group == 0 {
			seps.Group = r
		}
		groups = append(groups, run)
		run = 0
	}
	if seps.Group == 0 {
		return seps
	}
	groups = append(groups, run)

	seps.GroupSize = groups[len(groups)-1]
	seps.SecondaryGroupSize = seps.GroupSize
	if len(groups) > 2 {
		seps.SecondaryGroupSize = groups[len(groups)-2]
	}
	return seps
}

// groupDigits inserts the group separator into a string of integer digits.
func groupDigits(digits string, seps Separators) string {
	if seps.Group == 0 || seps.GroupSize <= 0 || len(digits) <= seps.GroupSize {
		return digits
	}

	secondary := seps.SecondaryGroupSize
	if secondary <= 0 {
		secondary = seps.GroupSize
	}

	// cut groups from the right: first the primary group, then secondary ones
	var parts []string
	rest := digits
	size := seps.GroupSize
	for len(rest) > size {
		parts = append(parts, rest[len(rest)-size:])
		rest = rest[:len(rest)-size]
		size = secondary
	}
	parts = append(parts, rest)

	var builder strings.Builder
	group := string(seps.Group)
	for i := len(parts) - 1; i >= 0; i-- {
		builder.WriteString(parts[i])
		if i > 0 {
			builder.WriteString(group)
		}
	}
	return builder.String()
}

package livenumber

import (
	"fmt"
	"unicode/utf8"
)

// SeparatorRule is the on-disk form of a locale override.
type SeparatorRule struct {
	Decimal            string `yaml:"decimal"`
	Group              string `yaml:"group"`
	GroupSize          int    `yaml:"group_size"`
	SecondaryGroupSize int    `yaml:"secondary_group_size"`
}

// SeparatorTable holds per locale overrides keyed by locale tag. A lookup for
// "de-CH" falls back to "de" when only the base language is listed.
type SeparatorTable map[string]SeparatorRule

// Lookup returns the separators for locale or its closest listed parent.
func (t SeparatorTable) Lookup(locale string) (Separators, bool) {
	if len(t) == 0 {
		return Separators{}, false
	}

	for _, candidate := range localeCandidates(normalizeLocale(locale)) {
		if rule, ok := t[candidate]; ok {
			seps, err := rule.separators()
			if err != nil {
				return Separators{}, false
			}
			return seps, true
		}
	}
	return Separators{}, false
}

func (r SeparatorRule) separators() (Separators, error) {
	dec, size := utf8.DecodeRuneInString(r.Decimal)
	if size == 0 || size != len(r.Decimal) {
		return Separators{}, fmt.Errorf("decimal separator must be a single character, got %q", r.Decimal)
	}

	seps := Separators{Decimal: dec}
	if r.Group == "" {
		return seps, nil
	}

	group, size := utf8.DecodeRuneInString(r.Group)
	if size != len(r.Group) {
		return Separators{}, fmt.Errorf("group separator must be a single character, got %q", r.Group)
	}
	if group == dec {
		return Separators{}, fmt.Errorf("group and decimal separator are both %q", r.Decimal)
	}

	seps.Group = group
	seps.GroupSize = r.GroupSize
	if seps.GroupSize <= 0 {
		seps.GroupSize = 3
	}
	seps.SecondaryGroupSize = r.SecondaryGroupSize
	if seps.SecondaryGroupSize <= 0 {
		seps.SecondaryGroupSize = seps.GroupSize
	}
	return seps, nil
}

// LoadSeparatorTable reads override files (JSON or YAML, locale -> rule).
// Later files take precedence over earlier ones.
func LoadSeparatorTable(paths ...string) (SeparatorTable, error) {
	table := make(SeparatorTable)

	for _, path := range paths {
		var src map[string]SeparatorRule
		if err := readConfigFile(path, &src); err != nil {
			return nil, err
		}

		for locale, rule := range src {
			key := normalizeLocale(locale)
			if key == "" {
				return nil, fmt.Errorf("livenumber: empty locale in %s", path)
			}
			if _, err := rule.separators(); err != nil {
				return nil, fmt.Errorf("livenumber: %s/%s: %w", path, locale, err)
			}
			table[key] = rule
		}
	}

	return table, nil
}

package livenumber

import (
	"strings"

	"golang.org/x/text/language"
)

// normalizeLocale turns POSIX style identifiers ("de_DE.UTF-8") into the
// BCP 47 form used as cache key ("de-DE").
func normalizeLocale(locale string) string {
	locale = strings.TrimSpace(locale)
	if idx := strings.IndexByte(locale, '.'); idx != -1 {
		locale = locale[:idx]
	}
	return strings.ReplaceAll(locale, "_", "-")
}

// localeCandidates returns the locale followed by its parents, closest first:
// "de-CH" -> ["de-CH", "de"].
func localeCandidates(locale string) []string {
	if locale == "" {
		return nil
	}

	candidates := []string{locale}
	seen := map[string]struct{}{locale: {}}

	add := func(value string) {
		if value == "" || value == "und" {
			return
		}
		if _, ok := seen[value]; ok {
			return
		}
		seen[value] = struct{}{}
		candidates = append(candidates, value)
	}

	if tag, err := language.Parse(locale); err == nil {
		for parent := tag.Parent(); parent != language.Und; parent = parent.Parent() {
			add(parent.String())
		}
	}

	for current := locale; ; {
		idx := strings.LastIndex(current, "-")
		if idx <= 0 {
			break
		}
		current = current[:idx]
		add(current)
	}

	return candidates
}

package livenumber

import (
	"errors"
	"sync"
	"testing"
)

func TestSeparatorsFromSample(t *testing.T) {
	tests := []struct {
		sample string
		want   Separators
	}{
		{sample: "1.234.567,89", want: germanSeps},
		{sample: "1,234,567.89", want: englishSeps},
		{sample: "12,34,567.89", want: indianSeps},
		{sample: "1 234 567,89", want: Separators{Decimal: ',', Group: ' ', GroupSize: 3, SecondaryGroupSize: 3}},
		{sample: "1234567.89", want: Separators{Decimal: '.'}},
		{sample: "\u200e1,234,567.89", want: englishSeps},
		{sample: "", want: rootSeparators},
		{sample: "123", want: rootSeparators},
	}

	for _, tt := range tests {
		t.Run(tt.sample, func(t *testing.T) {
			if got := separatorsFromSample(tt.sample); got != tt.want {
				t.Fatalf("separatorsFromSample(%q) = %+v; want %+v", tt.sample, got, tt.want)
			}
		})
	}
}

func TestGroupDigits(t *testing.T) {
	tests := []struct {
		digits string
		seps   Separators
		want   string
	}{
		{digits: "1234567", seps: englishSeps, want: "1,234,567"},
		{digits: "1234567", seps: indianSeps, want: "12,34,567"},
		{digits: "123", seps: englishSeps, want: "123"},
		{digits: "1234", seps: germanSeps, want: "1.234"},
		{digits: "1234", seps: Separators{Decimal: '.'}, want: "1234"},
	}

	for _, tt := range tests {
		if got := groupDigits(tt.digits, tt.seps); got != tt.want {
			t.Fatalf("groupDigits(%q) = %q; want %q", tt.digits, got, tt.want)
		}
	}
}

func TestResolveSeparators(t *testing.T) {
	tests := []struct {
		locale  string
		decimal rune
		group   rune
	}{
		{locale: "en-US", decimal: '.', group: ','},
		{locale: "de-DE", decimal: ',', group: '.'},
		{locale: "de_DE.UTF-8", decimal: ',', group: '.'},
	}

	for _, tt := range tests {
		t.Run(tt.locale, func(t *testing.T) {
			got, err := ResolveSeparators(tt.locale)
			if err != nil {
				t.Fatalf("ResolveSeparators(%q) returned error: %v", tt.locale, err)
			}
			if got.Decimal != tt.decimal || got.Group != tt.group {
				t.Fatalf("ResolveSeparators(%q) = %q/%q; want %q/%q", tt.locale, got.Decimal, got.Group, tt.decimal, tt.group)
			}
		})
	}

	if _, err := ResolveSeparators("  "); !errors.Is(err, ErrMissingLocale) {
		t.Fatalf("ResolveSeparators(blank) error = %v; want ErrMissingLocale", err)
	}
}

func TestResolverUsesTableWithParentFallback(t *testing.T) {
	resolver := NewSeparatorResolver(WithSeparatorTable(SeparatorTable{
		"de": {Decimal: ",", Group: "'"},
	}))

	got, err := resolver.Resolve("de_CH")
	if err != nil {
		t.Fatalf("Resolve returned error: %v", err)
	}
	want := Separators{Decimal: ',', Group: '\'', GroupSize: 3, SecondaryGroupSize: 3}
	if got != want {
		t.Fatalf("Resolve(de_CH) = %+v; want %+v", got, want)
	}
}

func TestResolverConcurrentAccess(t *testing.T) {
	resolver := NewSeparatorResolver()
	locales := []string{"en-US", "de-DE", "fr-FR", "en-US", "de-DE"}

	var wg sync.WaitGroup
	results := make([]Separators, 40)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			seps, err := resolver.Resolve(locales[i%len(locales)])
			if err != nil {
				t.Errorf("Resolve returned error: %v", err)
				return
			}
			results[i] = seps
		}(i)
	}
	wg.Wait()

	for i, seps := range results {
		first := results[i%len(locales)]
		if seps != first {
			t.Fatalf("Resolve(%q) not stable: %+v vs %+v", locales[i%len(locales)], seps, first)
		}
	}
}

func TestLocaleCandidates(t *testing.T) {
	got := localeCandidates("de-CH")
	if len(got) < 2 || got[0] != "de-CH" || got[len(got)-1] != "de" {
		t.Fatalf("localeCandidates(de-CH) = %v; want [de-CH ... de]", got)
	}
	if got := localeCandidates(""); got != nil {
		t.Fatalf("localeCandidates(\"\") = %v; want nil", got)
	}
	if got := normalizeLocale(" pt_BR.UTF-8 "); got != "pt-BR" {
		t.Fatalf("normalizeLocale = %q; want %q", got, "pt-BR")
	}
}

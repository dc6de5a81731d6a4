package locale

import (
	"math"
	"strconv"
	"strings"

	"github.com/go-playground/locales"
)

// PluralRule maps a number and its count of visible fraction digits to a
// CLDR plural category. It overrides the built-in CLDR rule of a language.
type PluralRule func(n float64, fractionDigits int) string

// Plural category constants as defined by Unicode CLDR.
// Not all languages use all categories.
const (
	PluralZero  = "zero"
	PluralOne   = "one"
	PluralTwo   = "two"
	PluralFew   = "few"
	PluralMany  = "many"
	PluralOther = "other"
)

var pluralOrder = []string{PluralZero, PluralOne, PluralTwo, PluralFew, PluralMany, PluralOther}

// PluralCategory returns the CLDR cardinal (or ordinal) category of n.
// A negative fractionDigits derives the visible digits from n itself,
// so 1.5 has one and 2 has none.
func (l *Locale) PluralCategory(n float64, fractionDigits int, ordinal bool) string {
	if fractionDigits < 0 {
		fractionDigits = visibleDigits(n)
	}

	if ordinal {
		if l.ordinal != nil {
			return l.ordinal(n, fractionDigits)
		}
		return category(l.trans.OrdinalPluralRule(n, uint64(fractionDigits)))
	}
	if l.cardinal != nil {
		return l.cardinal(n, fractionDigits)
	}
	return category(l.trans.CardinalPluralRule(n, uint64(fractionDigits)))
}

// PluralForms lists the categories the locale distinguishes, in CLDR order.
// Custom rules report nothing beyond "other", since their range is unknown.
func (l *Locale) PluralForms(ordinal bool) []string {
	rules := l.trans.PluralsCardinal()
	custom := l.cardinal != nil
	if ordinal {
		rules = l.trans.PluralsOrdinal()
		custom = l.ordinal != nil
	}
	if custom {
		return []string{PluralOther}
	}

	seen := make(map[string]bool, len(rules))
	for _, r := range rules {
		seen[category(r)] = true
	}
	seen[PluralOther] = true

	forms := make([]string, 0, len(seen))
	for _, c := range pluralOrder {
		if seen[c] {
			forms = append(forms, c)
		}
	}
	return forms
}

func category(r locales.PluralRule) string {
	switch r {
	case locales.PluralRuleZero:
		return PluralZero
	case locales.PluralRuleOne:
		return PluralOne
	case locales.PluralRuleTwo:
		return PluralTwo
	case locales.PluralRuleFew:
		return PluralFew
	case locales.PluralRuleMany:
		return PluralMany
	default:
		return PluralOther
	}
}

func visibleDigits(n float64) int {
	if math.IsNaN(n) || math.IsInf(n, 0) {
		return 0
	}
	s := strconv.FormatFloat(n, 'f', -1, 64)
	if i := strings.IndexByte(s, '.'); i >= 0 {
		return len(s) - i - 1
	}
	return 0
}

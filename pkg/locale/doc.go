// Package locale provides CLDR locale services: plural category
// resolution, number, percent and integer formatting, date and time styles,
// locale resolution with BCP 47 fallback and Accept-Language negotiation.
//
// Locale data comes from github.com/go-playground/locales. A Registry holds
// a fixed set of locales and resolves any requested name to the most
// specific one it knows, ending at its fallback:
//
//	reg := locale.Default()
//	de := reg.Lookup("de-AT") // resolves to "de"
//
//	de.PluralCategory(1, 0, false)   // "one"
//	de.FormatNumber(1234.5, "")      // "1.234,5"
//	de.FormatNumber(0.25, "percent") // percent pattern of de
//
// # Plural Rules
//
// PluralCategory takes the number of visible fraction digits so that
// "1" and "1.0" can select different categories, as CLDR requires.
// Pass a negative count to derive it from the value:
//
//	en := reg.Lookup("en")
//	en.PluralCategory(1, 0, false) // "one"
//	en.PluralCategory(1, 1, false) // "other"
//	en.PluralCategory(2, 0, true)  // "two" (2nd)
//
// Rules can be replaced per language:
//
//	reg, err := locale.NewRegistry(
//		locale.WithPluralRule("en", func(n float64, _ int) string {
//			if n == 0 {
//				return locale.PluralZero
//			}
//			return locale.PluralOther
//		}),
//	)
//
// # Negotiation
//
// Negotiate matches an Accept-Language header against a list of names:
//
//	lang := locale.Negotiate(r.Header.Get("Accept-Language"), []string{"en", "de", "pl"})
//
// A Registry and its Locales are immutable and safe for concurrent use.
package locale

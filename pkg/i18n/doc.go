// Package i18n is a catalog of ICU messages keyed by language, namespace
// and key.
//
// Messages are ICU MessageFormat sources. They are compiled once, when the
// catalog is built, and formatted with the locale they were found in:
//
//	catalog, err := i18n.New(
//		i18n.WithDefaultLanguage("en"),
//		i18n.WithMessages("en", "cart", map[string]any{
//			"items": "{count, plural, =0 {Your cart is empty} one {# item} other {# items}}",
//		}),
//		i18n.WithMessages("pl", "cart", map[string]any{
//			"items": "{count, plural, one {# produkt} few {# produkty} many {# produktów} other {# produktu}}",
//		}),
//	)
//	if err != nil {
//		return err // one joined entry per message that failed to compile
//	}
//
//	catalog.T(ctx, "pl", "cart", "items", icu.Values{"count": icu.Int(5)})
//	// "5 produktów"
//
// # Loading
//
// [WithMessages] takes nested maps; [WithJSON] and [WithYAML] take document
// bytes. Nested objects are flattened with dots, so {"buttons": {"save": ...}}
// is the key "buttons.save". The package does no file I/O: embed or read
// files and pass their contents.
//
// # Fallback
//
// A key is looked up in the requested language ("de-AT"), its base language
// ("de"), then the default language. [I18n.T] never fails: a missing key
// or a format error is logged at warn level and the key is returned.
// [I18n.Format] and [Rich] return the error instead.
//
// # Rich text
//
// [Rich] keeps the values returned by tag handlers, for callers that build
// something other than a string:
//
//	r, err := i18n.Rich[template.HTML](catalog, "en", "legal", "terms", icu.Values{
//		"link": markup.Element("a", "href", "/terms"),
//	})
//
// # Shared compilation
//
// [WithStore] compiles through a msgcache store. Pointing several processes
// at one Redis store lets them reuse each other's compilations.
package i18n

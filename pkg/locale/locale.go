package locale

import (
	"fmt"
	"slices"
	"strings"
	"sync"

	"github.com/go-playground/locales"
	"github.com/go-playground/locales/ar"
	"github.com/go-playground/locales/cs"
	"github.com/go-playground/locales/da"
	"github.com/go-playground/locales/de"
	"github.com/go-playground/locales/en"
	"github.com/go-playground/locales/en_GB"
	"github.com/go-playground/locales/es"
	"github.com/go-playground/locales/fi"
	"github.com/go-playground/locales/fr"
	"github.com/go-playground/locales/it"
	"github.com/go-playground/locales/ja"
	"github.com/go-playground/locales/ko"
	"github.com/go-playground/locales/nb"
	"github.com/go-playground/locales/nl"
	"github.com/go-playground/locales/pl"
	"github.com/go-playground/locales/pt"
	"github.com/go-playground/locales/pt_BR"
	"github.com/go-playground/locales/ru"
	"github.com/go-playground/locales/sv"
	"github.com/go-playground/locales/tr"
	"github.com/go-playground/locales/uk"
	"github.com/go-playground/locales/zh"
	ut "github.com/go-playground/universal-translator"
	"golang.org/x/text/language"
)

// DefaultFallback is the locale used when a requested locale is unknown.
const DefaultFallback = "en"

// Locale bundles the CLDR data of one resolved locale.
// It is immutable and safe for concurrent use.
type Locale struct {
	trans    locales.Translator
	cardinal PluralRule
	ordinal  PluralRule
	tag      language.Tag
}

// Name returns the CLDR name of the locale, e.g. "en" or "pt_BR".
func (l *Locale) Name() string {
	return l.trans.Locale()
}

// Tag returns the BCP 47 tag of the locale.
func (l *Locale) Tag() language.Tag {
	return l.tag
}

// Translator exposes the underlying CLDR translator for formatting the
// package does not wrap (currencies, month names).
func (l *Locale) Translator() locales.Translator {
	return l.trans
}

// Registry resolves locale names to Locales. Resolution walks the BCP 47
// parent chain (de-AT, de) and ends at the fallback locale.
// A Registry is immutable after creation.
type Registry struct {
	uni      *ut.UniversalTranslator
	byName   map[string]*Locale
	cardinal map[string]PluralRule
	ordinal  map[string]PluralRule
	extra    []locales.Translator
	fallback string
	names    []string
}

// Option configures a Registry during construction.
type Option func(*Registry) error

// NewRegistry creates a registry with the built-in locales plus any added
// with WithTranslators.
func NewRegistry(opts ...Option) (*Registry, error) {
	r := &Registry{
		cardinal: make(map[string]PluralRule),
		ordinal:  make(map[string]PluralRule),
		fallback: DefaultFallback,
	}

	for _, opt := range opts {
		if err := opt(r); err != nil {
			return nil, fmt.Errorf("failed to apply option: %w", err)
		}
	}

	translators := append(builtin(), r.extra...)

	var fallback locales.Translator
	for _, t := range translators {
		if strings.EqualFold(t.Locale(), r.fallback) {
			fallback = t
		}
	}
	if fallback == nil {
		return nil, fmt.Errorf("%w: fallback %q", ErrUnknownLocale, r.fallback)
	}

	r.uni = ut.New(fallback, translators...)
	r.byName = make(map[string]*Locale, len(translators))
	for _, t := range translators {
		key := normalize(t.Locale())
		r.byName[key] = r.newLocale(t)
	}
	for _, l := range r.byName {
		r.names = append(r.names, l.Name())
	}
	slices.Sort(r.names)

	return r, nil
}

// WithTranslators registers additional CLDR locales, for example
// github.com/go-playground/locales/en_AU.New(). A translator replaces a
// built-in locale with the same name.
func WithTranslators(translators ...locales.Translator) Option {
	return func(r *Registry) error {
		for _, t := range translators {
			if t == nil {
				return ErrNilTranslator
			}
		}
		r.extra = append(r.extra, translators...)
		return nil
	}
}

// WithFallback sets the locale used for unknown names. Default: "en".
func WithFallback(name string) Option {
	return func(r *Registry) error {
		if name == "" {
			return ErrEmptyLanguage
		}
		r.fallback = name
		return nil
	}
}

// WithPluralRule overrides the cardinal rule of a language or locale.
func WithPluralRule(lang string, rule PluralRule) Option {
	return func(r *Registry) error {
		return addRule(r.cardinal, lang, rule)
	}
}

// WithOrdinalRule overrides the ordinal rule of a language or locale.
func WithOrdinalRule(lang string, rule PluralRule) Option {
	return func(r *Registry) error {
		return addRule(r.ordinal, lang, rule)
	}
}

func addRule(rules map[string]PluralRule, lang string, rule PluralRule) error {
	if lang == "" {
		return ErrEmptyLanguage
	}
	if rule == nil {
		return ErrNilPluralRule
	}
	rules[normalize(lang)] = rule
	return nil
}

var defaultRegistry = sync.OnceValue(func() *Registry {
	r, err := NewRegistry()
	if err != nil {
		panic(err)
	}
	return r
})

// Default returns the shared registry of built-in locales.
func Default() *Registry {
	return defaultRegistry()
}

// Lookup resolves name (BCP 47 or CLDR style: "de-AT", "pt_BR") to the most
// specific registered locale. It never returns nil.
func (r *Registry) Lookup(name string) *Locale {
	trans, found := r.uni.FindTranslator(candidates(name)...)
	if !found {
		trans = r.uni.GetFallback()
	}
	if l, ok := r.byName[normalize(trans.Locale())]; ok {
		return l
	}
	return r.Fallback()
}

// Has reports whether name resolves to a registered locale without falling
// back.
func (r *Registry) Has(name string) bool {
	_, found := r.uni.FindTranslator(candidates(name)...)
	return found
}

// Fallback returns the locale used for unknown names.
func (r *Registry) Fallback() *Locale {
	return r.byName[normalize(r.fallback)]
}

// Supported returns the names of all registered locales, sorted.
func (r *Registry) Supported() []string {
	return slices.Clone(r.names)
}

// Negotiate picks the registered locale that best matches an
// Accept-Language header.
func (r *Registry) Negotiate(acceptLanguage string) *Locale {
	return r.Lookup(Negotiate(acceptLanguage, r.names))
}

func (r *Registry) newLocale(t locales.Translator) *Locale {
	name := t.Locale()
	l := &Locale{
		trans: t,
		tag:   language.Make(strings.ReplaceAll(name, "_", "-")),
	}
	l.cardinal = ruleFor(r.cardinal, name)
	l.ordinal = ruleFor(r.ordinal, name)
	return l
}

// ruleFor finds an override for the locale, then for its base language.
func ruleFor(rules map[string]PluralRule, name string) PluralRule {
	key := normalize(name)
	if rule, ok := rules[key]; ok {
		return rule
	}
	base, _, _ := strings.Cut(key, "_")
	return rules[base]
}

// candidates lists the CLDR names to try for a requested locale, most
// specific first: zh-Hant-TW, zh-Hant, zh.
func candidates(name string) []string {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil
	}
	tag, err := language.Parse(strings.ReplaceAll(name, "_", "-"))
	if err != nil {
		return []string{normalize(name)}
	}

	var out []string
	for t := tag; !t.IsRoot(); t = t.Parent() {
		out = append(out, normalize(t.String()))
	}
	if base, conf := tag.Base(); conf != language.No {
		out = append(out, base.String())
	}
	return out
}

func normalize(name string) string {
	return strings.ToLower(strings.ReplaceAll(strings.TrimSpace(name), "-", "_"))
}

func builtin() []locales.Translator {
	return []locales.Translator{
		en.New(),
		en_GB.New(),
		ar.New(),
		cs.New(),
		da.New(),
		de.New(),
		es.New(),
		fi.New(),
		fr.New(),
		it.New(),
		ja.New(),
		ko.New(),
		nb.New(),
		nl.New(),
		pl.New(),
		pt.New(),
		pt_BR.New(),
		ru.New(),
		sv.New(),
		tr.New(),
		uk.New(),
		zh.New(),
	}
}

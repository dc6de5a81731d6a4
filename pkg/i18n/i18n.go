package i18n

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"strings"
	"time"

	"github.com/amannn/next-intl-sub001/pkg/icu"
	"github.com/amannn/next-intl-sub001/pkg/locale"
	"github.com/amannn/next-intl-sub001/pkg/logger"
	"github.com/amannn/next-intl-sub001/pkg/msgcache"
)

// DefaultLang is the default language code used when no default language is specified.
const DefaultLang = "en"

// I18n is a catalog of ICU messages by language, namespace and key.
// Every message is compiled during New; the catalog is immutable afterwards
// and safe for concurrent use.
type I18n struct {
	// Key format: "lang:namespace:key.path"
	messages map[string]icu.Message
	sources  map[string]string

	locales  *locale.Registry
	store    msgcache.Store
	compile  []icu.CompileOption
	timeZone *time.Location
	log      *slog.Logger

	// Called when a key is not found in any language of the chain.
	missingKeyHandler func(lang, namespace, key string)

	defaultLang string
	languages   []string
	explicit    map[string]bool
	seen        map[string]bool
}

// Option configures the I18n instance during construction.
type Option func(*I18n) error

// New creates a catalog and compiles every loaded message. Compile
// failures are joined into the returned error, one entry per message,
// each naming "lang:namespace:key".
func New(opts ...Option) (*I18n, error) {
	i := &I18n{
		messages:    make(map[string]icu.Message),
		sources:     make(map[string]string),
		explicit:    make(map[string]bool),
		seen:        make(map[string]bool),
		defaultLang: DefaultLang,
	}

	for _, opt := range opts {
		if err := opt(i); err != nil {
			return nil, fmt.Errorf("failed to apply option: %w", err)
		}
	}

	if i.defaultLang == "" {
		return nil, ErrEmptyLanguage
	}
	if i.locales == nil {
		i.locales = locale.Default()
	}
	i.log = logger.OrNope(i.log)
	i.languages = i.buildLanguagesList()

	if err := i.compileAll(context.Background()); err != nil {
		return nil, err
	}
	return i, nil
}

// WithDefaultLanguage sets the default/fallback language.
func WithDefaultLanguage(lang string) Option {
	return func(i *I18n) error {
		if lang == "" {
			return ErrEmptyLanguage
		}
		i.defaultLang = lang
		return nil
	}
}

// WithLanguages sets the supported languages. The default language is
// always included and placed first; the rest are sorted.
// Without this option the languages are those that have messages.
func WithLanguages(langs ...string) Option {
	return func(i *I18n) error {
		for _, lang := range langs {
			if lang != "" {
				i.explicit[lang] = true
			}
		}
		return nil
	}
}

// WithMessages loads ICU message sources for a language and namespace.
// Nested maps are flattened with dots: {"buttons": {"save": "Save"}}
// becomes the key "buttons.save".
func WithMessages(lang, namespace string, messages map[string]any) Option {
	return func(i *I18n) error {
		return i.addMessages(lang, namespace, messages)
	}
}

// WithLocales sets the locale registry used for plural rules and number
// and date formatting.
// Default: locale.Default().
func WithLocales(r *locale.Registry) Option {
	return func(i *I18n) error {
		if r == nil {
			return ErrNilLocales
		}
		i.locales = r
		return nil
	}
}

// WithStore compiles messages through a shared message store, so
// processes loading the same catalog reuse each other's compilations.
func WithStore(store msgcache.Store) Option {
	return func(i *I18n) error {
		if store == nil {
			return ErrNilStore
		}
		i.store = store
		return nil
	}
}

// WithCompileOptions sets the options passed to the message compiler.
func WithCompileOptions(opts ...icu.CompileOption) Option {
	return func(i *I18n) error {
		i.compile = append(i.compile, opts...)
		return nil
	}
}

// WithLogger sets the logger used by T to report messages it could not
// produce.
// Default: a discarding logger.
func WithLogger(log *slog.Logger) Option {
	return func(i *I18n) error {
		i.log = log
		return nil
	}
}

// WithMissingKeyHandler sets a handler called when a key is not found in
// any language, including the default.
func WithMissingKeyHandler(handler func(lang, namespace, key string)) Option {
	return func(i *I18n) error {
		i.missingKeyHandler = handler
		return nil
	}
}

// WithTimeZone sets the location date and time arguments are shown in.
func WithTimeZone(loc *time.Location) Option {
	return func(i *I18n) error {
		i.timeZone = loc
		return nil
	}
}

// T formats a message and never fails: when the key is missing or the
// message cannot be formatted it logs a warning and returns the key.
func (i *I18n) T(ctx context.Context, lang, namespace, key string, values icu.Values) string {
	out, err := i.Format(lang, namespace, key, values)
	if err != nil {
		i.log.WarnContext(ctx, "message fell back to key",
			logger.Locale(lang),
			slog.String("namespace", namespace),
			logger.Key(key),
			logger.Err(err),
		)
		return key
	}
	return out
}

// Format formats a message into a string. It returns an error wrapping
// ErrMissingKey when the key is not found, or the *icu.FormatError.
func (i *I18n) Format(lang, namespace, key string, values icu.Values) (string, error) {
	r, err := Rich[string](i, lang, namespace, key, values)
	if err != nil {
		return "", err
	}
	return r.String(), nil
}

// Rich formats a message into chunks, keeping the results of tag handlers
// of type icu.TagHandler[T].
func Rich[T any](i *I18n, lang, namespace, key string, values icu.Values) (icu.Result[T], error) {
	msg, found, ok := i.lookup(lang, namespace, key)
	if !ok {
		if i.missingKeyHandler != nil {
			i.missingKeyHandler(lang, namespace, key)
		}
		return nil, fmt.Errorf("%w: %s:%s:%s", ErrMissingKey, lang, namespace, key)
	}
	return icu.Format[T](msg, found, values, i.formatOptions()...)
}

// Has reports whether the key resolves for lang through the fallback chain.
func (i *I18n) Has(lang, namespace, key string) bool {
	_, _, ok := i.lookup(lang, namespace, key)
	return ok
}

// Message returns the compiled message a key resolves to for lang and the
// language it was found in.
func (i *I18n) Message(lang, namespace, key string) (icu.Message, string, bool) {
	return i.lookup(lang, namespace, key)
}

// Negotiate picks the best supported language for an Accept-Language
// header, falling back to the default language.
func (i *I18n) Negotiate(acceptLanguage string) string {
	if lang := locale.Negotiate(acceptLanguage, i.languages); lang != "" {
		return lang
	}
	return i.defaultLang
}

// Locale returns the formatting locale of lang.
func (i *I18n) Locale(lang string) *locale.Locale {
	return i.locales.Lookup(lang)
}

// Languages returns the list of available languages.
func (i *I18n) Languages() []string {
	return slices.Clone(i.languages)
}

// DefaultLanguage returns the default/fallback language.
func (i *I18n) DefaultLanguage() string {
	return i.defaultLang
}

// lookup walks the chain exact language, base language, default language.
func (i *I18n) lookup(lang, namespace, key string) (icu.Message, string, bool) {
	for _, l := range i.chain(lang) {
		if msg, ok := i.messages[buildKey(l, namespace, key)]; ok {
			return msg, l, true
		}
	}
	return nil, "", false
}

func (i *I18n) chain(lang string) []string {
	chain := make([]string, 0, 3)
	if lang != "" {
		chain = append(chain, lang)
	}
	if base := baseLanguage(lang); base != lang && base != "" {
		chain = append(chain, base)
	}
	if !slices.Contains(chain, i.defaultLang) {
		chain = append(chain, i.defaultLang)
	}
	return chain
}

func (i *I18n) formatOptions() []icu.FormatOption {
	opts := []icu.FormatOption{
		icu.WithLocales(i.locales),
		icu.WithFormatMaxDepth(icu.MaxDepthOf(i.compile...)),
	}
	if i.timeZone != nil {
		opts = append(opts, icu.WithTimeZone(i.timeZone))
	}
	return opts
}

func (i *I18n) compileAll(ctx context.Context) error {
	store := i.store
	if store == nil {
		store = msgcache.NewMemory(msgcache.WithMaxEntries(0))
		defer store.Close()
	}
	compiler := msgcache.NewCompiler(store, msgcache.WithCompileOptions(i.compile...))

	keys := make([]string, 0, len(i.sources))
	for k := range i.sources {
		keys = append(keys, k)
	}
	slices.Sort(keys)

	var errs []error
	for _, k := range keys {
		msg, err := compiler.Compile(ctx, i.sources[k])
		if err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", k, err))
			continue
		}
		i.messages[k] = msg
	}
	i.sources = nil
	return errors.Join(errs...)
}

func (i *I18n) buildLanguagesList() []string {
	set := i.explicit
	if len(set) == 0 {
		set = i.seen
	}

	others := make([]string, 0, len(set))
	for lang := range set {
		if lang != i.defaultLang {
			others = append(others, lang)
		}
	}
	slices.Sort(others)
	return append([]string{i.defaultLang}, others...)
}

func buildKey(lang, namespace, key string) string {
	return lang + ":" + namespace + ":" + key
}

// baseLanguage strips everything after the language subtag ("en-US" and
// "en_US" become "en").
func baseLanguage(lang string) string {
	if i := strings.IndexAny(lang, "-_"); i > 0 {
		return lang[:i]
	}
	return lang
}

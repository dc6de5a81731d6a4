package i18n

import (
	"context"
	"net/http"
	"slices"

	"github.com/amannn/next-intl-sub001/pkg/logger"
)

// LanguageSource resolves a candidate language from a request.
type LanguageSource func(r *http.Request) (string, bool)

// FromCookie reads the language from a cookie.
func FromCookie(name string) LanguageSource {
	return func(r *http.Request) (string, bool) {
		c, err := r.Cookie(name)
		if err != nil || c.Value == "" {
			return "", false
		}
		return c.Value, true
	}
}

// FromQuery reads the language from a query parameter.
func FromQuery(name string) LanguageSource {
	return func(r *http.Request) (string, bool) {
		v := r.URL.Query().Get(name)
		return v, v != ""
	}
}

// FromAcceptLanguage negotiates the Accept-Language header against the
// catalog's languages.
func FromAcceptLanguage(i *I18n) LanguageSource {
	return func(r *http.Request) (string, bool) {
		header := r.Header.Get("Accept-Language")
		if header == "" {
			return "", false
		}
		return i.Negotiate(header), true
	}
}

type middlewareConfig struct {
	namespace string
	sources   []LanguageSource
}

// MiddlewareOption configures Middleware.
type MiddlewareOption func(*middlewareConfig)

// WithNamespace sets the namespace of the request Translator.
func WithNamespace(ns string) MiddlewareOption {
	return func(cfg *middlewareConfig) {
		cfg.namespace = ns
	}
}

// WithLanguageSources replaces the language sources. They are tried in
// order; the first that yields a supported language wins.
// Default: FromCookie("lang"), FromAcceptLanguage.
func WithLanguageSources(sources ...LanguageSource) MiddlewareOption {
	return func(cfg *middlewareConfig) {
		cfg.sources = sources
	}
}

type translatorKey struct{}

// Middleware resolves the request language, then stores a Translator and
// the language in the request context. Unsupported languages are skipped;
// when no source matches the default language is used.
func Middleware(i *I18n, opts ...MiddlewareOption) func(http.Handler) http.Handler {
	cfg := &middlewareConfig{
		sources: []LanguageSource{FromCookie("lang"), FromAcceptLanguage(i)},
	}
	for _, opt := range opts {
		opt(cfg)
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			lang := i.resolve(r, cfg.sources)
			tr := NewTranslator(i, lang, cfg.namespace)

			ctx := context.WithValue(r.Context(), translatorKey{}, tr)
			ctx = logger.WithLocale(ctx, lang)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// FromContext returns the Translator stored by Middleware, or nil.
func FromContext(ctx context.Context) *Translator {
	tr, _ := ctx.Value(translatorKey{}).(*Translator)
	return tr
}

// LanguageFromContext returns the language resolved by Middleware, or "".
func LanguageFromContext(ctx context.Context) string {
	if tr := FromContext(ctx); tr != nil {
		return tr.Language()
	}
	return ""
}

func (i *I18n) resolve(r *http.Request, sources []LanguageSource) string {
	for _, src := range sources {
		if src == nil {
			continue
		}
		lang, ok := src(r)
		if ok && slices.Contains(i.languages, lang) {
			return lang
		}
	}
	return i.defaultLang
}

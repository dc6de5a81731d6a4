package logger

import (
	"context"
	"errors"
	"log/slog"

	"github.com/amannn/next-intl-sub001/pkg/icu"
)

// Locale returns the "locale" attribute.
func Locale(name string) slog.Attr {
	return slog.String("locale", name)
}

// Key returns the "key" attribute for a message identifier, usually
// "namespace.key".
func Key(key string) slog.Attr {
	return slog.String("key", key)
}

// Err returns the "error" attribute. Message errors are expanded into a
// group carrying their code, and the position for compile errors.
func Err(err error) slog.Attr {
	if err == nil {
		return slog.Attr{}
	}

	var ce *icu.CompileError
	if errors.As(err, &ce) {
		return slog.Group("error",
			slog.String("code", string(ce.Code)),
			slog.String("message", ce.Message),
			slog.Int("line", ce.Line),
			slog.Int("column", ce.Column),
		)
	}

	var fe *icu.FormatError
	if errors.As(err, &fe) {
		return slog.Group("error",
			slog.String("code", string(fe.Code)),
			slog.String("message", fe.Message),
		)
	}

	return slog.String("error", err.Error())
}

type localeKey struct{}

// WithLocale stores a locale name in ctx for LocaleExtractor.
func WithLocale(ctx context.Context, name string) context.Context {
	return context.WithValue(ctx, localeKey{}, name)
}

// LocaleExtractor adds the locale stored by WithLocale to every record.
func LocaleExtractor(ctx context.Context) (slog.Attr, bool) {
	name, ok := ctx.Value(localeKey{}).(string)
	if !ok || name == "" {
		return slog.Attr{}, false
	}
	return Locale(name), true
}

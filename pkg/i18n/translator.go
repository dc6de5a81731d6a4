package i18n

import (
	"context"
	"time"

	"github.com/amannn/next-intl-sub001/pkg/icu"
	"github.com/amannn/next-intl-sub001/pkg/locale"
)

// Translator binds a catalog to one language and namespace.
type Translator struct {
	i18n      *I18n
	locale    *locale.Locale
	language  string
	namespace string
}

// NewTranslator creates a Translator. An empty language means the
// catalog's default language.
func NewTranslator(i18n *I18n, language, namespace string) *Translator {
	if i18n == nil {
		panic("i18n: catalog is not provided")
	}
	if language == "" {
		language = i18n.DefaultLanguage()
	}
	return &Translator{
		i18n:      i18n,
		locale:    i18n.Locale(language),
		language:  language,
		namespace: namespace,
	}
}

// T formats a key, falling back to the key itself. See I18n.T.
func (t *Translator) T(ctx context.Context, key string, values icu.Values) string {
	return t.i18n.T(ctx, t.language, t.namespace, key, values)
}

// Format formats a key and reports failures. See I18n.Format.
func (t *Translator) Format(key string, values icu.Values) (string, error) {
	return t.i18n.Format(t.language, t.namespace, key, values)
}

// TranslateMessage formats a key with loosely typed values, converting
// them with icu.Args. Failures fall back to the key.
func (t *Translator) TranslateMessage(key string, values map[string]any) string {
	return t.i18n.T(context.Background(), t.language, t.namespace, key, icu.Args(values))
}

// Has reports whether the key resolves for the translator's language.
func (t *Translator) Has(key string) bool {
	return t.i18n.Has(t.language, t.namespace, key)
}

// FormatNumber formats a number with the translator's locale.
func (t *Translator) FormatNumber(n float64) string {
	return t.locale.FormatNumber(n, "")
}

// FormatPercent formats a ratio as a percentage (0.5 is 50%).
func (t *Translator) FormatPercent(n float64) string {
	return t.locale.FormatNumber(n, locale.StylePercent)
}

// FormatDate formats a date in the medium style.
func (t *Translator) FormatDate(date time.Time) string {
	return t.locale.FormatDate(t.inZone(date), "")
}

// FormatTime formats a time of day in the medium style.
func (t *Translator) FormatTime(tm time.Time) string {
	return t.locale.FormatTime(t.inZone(tm), "")
}

// Language returns the translator's language.
func (t *Translator) Language() string {
	return t.language
}

// Namespace returns the translator's namespace.
func (t *Translator) Namespace() string {
	return t.namespace
}

// Locale returns the formatting locale of the translator's language.
func (t *Translator) Locale() *locale.Locale {
	return t.locale
}

func (t *Translator) inZone(tm time.Time) time.Time {
	if t.i18n.timeZone != nil {
		return tm.In(t.i18n.timeZone)
	}
	return tm
}

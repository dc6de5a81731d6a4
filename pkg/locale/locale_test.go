package locale_test

import (
	"testing"

	"github.com/go-playground/locales/en_AU"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/amannn/next-intl-sub001/pkg/locale"
)

func TestRegistryLookup(t *testing.T) {
	t.Parallel()

	reg := locale.Default()

	tests := []struct {
		name     string
		expected string
	}{
		{"en", "en"},
		{"en-US", "en"},
		{"EN-us", "en"},
		{"en-GB", "en_GB"},
		{"de", "de"},
		{"de-AT", "de"},
		{"pt-BR", "pt_BR"},
		{"pt_BR", "pt_BR"},
		{"pt-PT", "pt"},
		{"zh-TW", "zh"},
		{"pl", "pl"},
		{"xx", "en"},
		{"", "en"},
		{"!!", "en"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.expected, reg.Lookup(tt.name).Name())
		})
	}
}

func TestRegistry(t *testing.T) {
	t.Parallel()

	t.Run("default registry is shared", func(t *testing.T) {
		t.Parallel()
		require.Same(t, locale.Default(), locale.Default())
	})

	t.Run("supported locales are sorted", func(t *testing.T) {
		t.Parallel()
		supported := locale.Default().Supported()
		require.Contains(t, supported, "en")
		require.Contains(t, supported, "pt_BR")
		require.IsIncreasing(t, supported)
	})

	t.Run("has", func(t *testing.T) {
		t.Parallel()
		reg := locale.Default()
		assert.True(t, reg.Has("de-CH"))
		assert.True(t, reg.Has("ru"))
		assert.False(t, reg.Has("xx"))
		assert.False(t, reg.Has(""))
	})

	t.Run("tag", func(t *testing.T) {
		t.Parallel()
		assert.Equal(t, "pt-BR", locale.Default().Lookup("pt_BR").Tag().String())
	})

	t.Run("custom fallback", func(t *testing.T) {
		t.Parallel()
		reg, err := locale.NewRegistry(locale.WithFallback("de"))
		require.NoError(t, err)
		assert.Equal(t, "de", reg.Lookup("xx").Name())
		assert.Equal(t, "de", reg.Fallback().Name())
	})

	t.Run("unknown fallback", func(t *testing.T) {
		t.Parallel()
		_, err := locale.NewRegistry(locale.WithFallback("xx"))
		require.ErrorIs(t, err, locale.ErrUnknownLocale)
	})

	t.Run("additional translators", func(t *testing.T) {
		t.Parallel()
		reg, err := locale.NewRegistry(locale.WithTranslators(en_AU.New()))
		require.NoError(t, err)
		assert.Equal(t, "en_AU", reg.Lookup("en-AU").Name())
		assert.Equal(t, "en", locale.Default().Lookup("en-AU").Name())
	})

	t.Run("option errors", func(t *testing.T) {
		t.Parallel()

		_, err := locale.NewRegistry(locale.WithTranslators(nil))
		require.ErrorIs(t, err, locale.ErrNilTranslator)

		_, err = locale.NewRegistry(locale.WithFallback(""))
		require.ErrorIs(t, err, locale.ErrEmptyLanguage)

		_, err = locale.NewRegistry(locale.WithPluralRule("", func(float64, int) string { return locale.PluralOther }))
		require.ErrorIs(t, err, locale.ErrEmptyLanguage)

		_, err = locale.NewRegistry(locale.WithOrdinalRule("en", nil))
		require.ErrorIs(t, err, locale.ErrNilPluralRule)
	})

	t.Run("negotiate", func(t *testing.T) {
		t.Parallel()
		reg := locale.Default()
		assert.Equal(t, "de", reg.Negotiate("de-CH,de;q=0.9,en;q=0.5").Name())
		assert.Equal(t, "pt_BR", reg.Negotiate("pt-BR").Name())
	})
}

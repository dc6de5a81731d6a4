package i18n_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/amannn/next-intl-sub001/pkg/i18n"
	"github.com/amannn/next-intl-sub001/pkg/icu"
)

const commonJSON = `{
  "hello": "Hello",
  "welcome": "Welcome, {name}!",
  "buttons": {"save": "Save", "cancel": "Cancel"},
  "year": 2024
}`

const commonYAML = `
hello: Cześć
files: >-
  {n, plural,
    one {# plik}
    few {# pliki}
    many {# plików}
    other {# pliku}}
buttons:
  save: Zapisz
enabled: true
`

func TestWithJSON(t *testing.T) {
	t.Parallel()

	t.Run("loads nested messages", func(t *testing.T) {
		t.Parallel()
		inst, err := i18n.New(i18n.WithJSON("en", "common", []byte(commonJSON)))
		require.NoError(t, err)

		ctx := context.Background()
		assert.Equal(t, "Hello", inst.T(ctx, "en", "common", "hello", nil))
		assert.Equal(t, "Welcome, Alice!", inst.T(ctx, "en", "common", "welcome", icu.Values{"name": icu.String("Alice")}))
		assert.Equal(t, "Cancel", inst.T(ctx, "en", "common", "buttons.cancel", nil))
		assert.Equal(t, "2024", inst.T(ctx, "en", "common", "year", nil))
	})

	t.Run("rejects invalid documents", func(t *testing.T) {
		t.Parallel()
		_, err := i18n.New(i18n.WithJSON("en", "common", []byte(`{"hello": `)))
		require.ErrorIs(t, err, i18n.ErrInvalidFile)
	})

	t.Run("rejects empty namespace", func(t *testing.T) {
		t.Parallel()
		_, err := i18n.New(i18n.WithJSON("en", "", []byte(`{}`)))
		require.ErrorIs(t, err, i18n.ErrEmptyNamespace)
	})
}

func TestWithYAML(t *testing.T) {
	t.Parallel()

	t.Run("loads block scalars and scalars", func(t *testing.T) {
		t.Parallel()
		inst, err := i18n.New(
			i18n.WithDefaultLanguage("pl"),
			i18n.WithYAML("pl", "common", []byte(commonYAML)),
		)
		require.NoError(t, err)

		ctx := context.Background()
		assert.Equal(t, "Cześć", inst.T(ctx, "pl", "common", "hello", nil))
		assert.Equal(t, "Zapisz", inst.T(ctx, "pl", "common", "buttons.save", nil))
		assert.Equal(t, "true", inst.T(ctx, "pl", "common", "enabled", nil))
		assert.Equal(t, "22 pliki", inst.T(ctx, "pl", "common", "files", icu.Values{"n": icu.Int(22)}))
		assert.Equal(t, "12 plików", inst.T(ctx, "pl", "common", "files", icu.Values{"n": icu.Int(12)}))
	})

	t.Run("rejects invalid documents", func(t *testing.T) {
		t.Parallel()
		_, err := i18n.New(i18n.WithYAML("pl", "common", []byte("hello: [unclosed")))
		require.ErrorIs(t, err, i18n.ErrInvalidFile)
	})

	t.Run("mixes with other sources", func(t *testing.T) {
		t.Parallel()
		inst, err := i18n.New(
			i18n.WithJSON("en", "common", []byte(commonJSON)),
			i18n.WithYAML("pl", "common", []byte(commonYAML)),
		)
		require.NoError(t, err)

		assert.Equal(t, []string{"en", "pl"}, inst.Languages())
		assert.Equal(t, "Welcome, Jan!", inst.T(context.Background(), "pl", "common", "welcome", icu.Values{"name": icu.String("Jan")}))
	})
}

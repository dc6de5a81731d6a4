package i18n_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/amannn/next-intl-sub001/pkg/i18n"
)

func TestMiddleware(t *testing.T) {
	t.Parallel()

	inst := newCatalog(t)

	serve := func(t *testing.T, req *http.Request, opts ...i18n.MiddlewareOption) string {
		t.Helper()

		var body string
		h := i18n.Middleware(inst, append([]i18n.MiddlewareOption{i18n.WithNamespace("common")}, opts...)...)(
			http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				tr := i18n.FromContext(r.Context())
				require.NotNil(t, tr)
				assert.Equal(t, tr.Language(), i18n.LanguageFromContext(r.Context()))
				body = tr.Language() + ":" + tr.T(r.Context(), "hello", nil)
			}),
		)
		h.ServeHTTP(httptest.NewRecorder(), req)
		return body
	}

	t.Run("accept language", func(t *testing.T) {
		t.Parallel()
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Accept-Language", "de-DE,de;q=0.9")
		assert.Equal(t, "de:Hallo", serve(t, req))
	})

	t.Run("cookie wins over header", func(t *testing.T) {
		t.Parallel()
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Accept-Language", "de")
		req.AddCookie(&http.Cookie{Name: "lang", Value: "de-AT"})
		assert.Equal(t, "de-AT:Servus", serve(t, req))
	})

	t.Run("unsupported cookie is skipped", func(t *testing.T) {
		t.Parallel()
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Accept-Language", "de")
		req.AddCookie(&http.Cookie{Name: "lang", Value: "xx"})
		assert.Equal(t, "de:Hallo", serve(t, req))
	})

	t.Run("default language", func(t *testing.T) {
		t.Parallel()
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		assert.Equal(t, "en:Hello", serve(t, req))
	})

	t.Run("custom sources", func(t *testing.T) {
		t.Parallel()
		req := httptest.NewRequest(http.MethodGet, "/?hl=pl", nil)
		req.Header.Set("Accept-Language", "de")
		got := serve(t, req, i18n.WithLanguageSources(nil, i18n.FromQuery("hl")))
		assert.Equal(t, "pl:Hello", got)
	})
}

func TestFromContext_Empty(t *testing.T) {
	t.Parallel()

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	assert.Nil(t, i18n.FromContext(req.Context()))
	assert.Empty(t, i18n.LanguageFromContext(req.Context()))
}

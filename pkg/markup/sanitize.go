package markup

import (
	"html/template"
	"sync"

	"github.com/microcosm-cc/bluemonday"

	"github.com/amannn/next-intl-sub001/pkg/icu"
)

// DefaultPolicy returns the shared policy used by Format. It allows inline
// formatting, line breaks and links with standard URLs; links get
// rel="nofollow".
var DefaultPolicy = sync.OnceValue(func() *bluemonday.Policy {
	p := bluemonday.NewPolicy()
	p.AllowStandardURLs()
	p.AllowElements(
		"br",
		"strong", "b", "em", "i", "u", "s",
		"small", "sub", "sup", "mark",
		"code", "span",
	)
	p.AllowAttrs("href").OnElements("a")
	p.AllowAttrs("class").OnElements("span", "code")
	p.RequireNoFollowOnLinks(true)
	return p
})

type formatOpts struct {
	policy *bluemonday.Policy
	icu    []icu.FormatOption
}

// Option configures Format.
type Option func(*formatOpts)

// WithPolicy sets the sanitization policy. A nil policy disables
// sanitization.
// Default: DefaultPolicy().
func WithPolicy(p *bluemonday.Policy) Option {
	return func(o *formatOpts) {
		o.policy = p
	}
}

// WithFormatOptions passes options through to icu.Format.
func WithFormatOptions(opts ...icu.FormatOption) Option {
	return func(o *formatOpts) {
		o.icu = append(o.icu, opts...)
	}
}

// Format formats m as HTML and sanitizes the result. Tag handlers must be
// icu.TagHandler[template.HTML], as returned by Element.
func Format(m icu.Message, localeName string, values icu.Values, opts ...Option) (template.HTML, error) {
	o := &formatOpts{policy: DefaultPolicy()}
	for _, opt := range opts {
		opt(o)
	}

	r, err := icu.Format[template.HTML](m, localeName, values, o.icu...)
	if err != nil {
		return "", err
	}
	return Sanitize(Render(r), o.policy), nil
}

// Sanitize applies policy to s. A nil policy returns s unchanged.
func Sanitize(s template.HTML, policy *bluemonday.Policy) template.HTML {
	if policy == nil {
		return s
	}
	return template.HTML(policy.Sanitize(string(s)))
}

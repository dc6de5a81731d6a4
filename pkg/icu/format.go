package icu

import (
	"fmt"
	"reflect"
	"time"

	"github.com/amannn/next-intl-sub001/pkg/locale"
)

type formatOpts struct {
	registry *locale.Registry
	timeZone *time.Location
	maxDepth int
}

// FormatOption configures Format.
type FormatOption func(*formatOpts)

// WithLocales sets the registry used to resolve the locale name.
// Default: locale.Default().
func WithLocales(r *locale.Registry) FormatOption {
	return func(o *formatOpts) {
		o.registry = r
	}
}

// WithTimeZone converts date and time arguments into loc before formatting.
// By default values are formatted in their own location.
func WithTimeZone(loc *time.Location) FormatOption {
	return func(o *formatOpts) {
		o.timeZone = loc
	}
}

// WithFormatMaxDepth bounds the nesting the interpreter will walk.
// Default: DefaultMaxDepth.
func WithFormatMaxDepth(n int) FormatOption {
	return func(o *formatOpts) {
		if n > 0 {
			o.maxDepth = n
		}
	}
}

// Format evaluates m against values for the given locale.
//
// Tag handlers must be TagHandler[T] for the same T. Handler results whose
// dynamic type is string are merged into the surrounding text; other results
// are kept as rich chunks. On the first error Format returns a *FormatError
// and no partial result.
func Format[T any](m Message, localeName string, values Values, opts ...FormatOption) (Result[T], error) {
	o := &formatOpts{maxDepth: DefaultMaxDepth}
	for _, opt := range opts {
		opt(o)
	}
	if o.registry == nil {
		o.registry = locale.Default()
	}

	f := &formatter[T]{
		loc:    o.registry.Lookup(localeName),
		values: values,
		opts:   o,
	}
	var b builder[T]
	if err := f.message(&b, m, nil, 0); err != nil {
		return nil, err
	}
	return Result[T](b.chunks), nil
}

// FormatString formats m into a string. Tag handlers must be
// TagHandler[string].
func FormatString(m Message, localeName string, values Values, opts ...FormatOption) (string, error) {
	r, err := Format[string](m, localeName, values, opts...)
	if err != nil {
		return "", err
	}
	return r.String(), nil
}

// operand is the number substituted for # inside a plural branch.
type operand struct {
	n float64
}

type formatter[T any] struct {
	loc    *locale.Locale
	values Values
	opts   *formatOpts
}

func (f *formatter[T]) message(b *builder[T], m Message, pound *operand, depth int) error {
	if depth > f.opts.maxDepth {
		return formatErrorf(CodeInvalidMessage, "message nesting exceeds %d", f.opts.maxDepth)
	}

	for _, n := range m {
		switch v := n.(type) {
		case Text:
			b.text(string(v))

		case Placeholder:
			val, err := f.lookup(v.Name)
			if err != nil {
				return err
			}
			s, ok := val.text()
			if !ok {
				return formatErrorf(CodeTypeMismatch, "Expected string, number or boolean for %q, got %s", v.Name, val.typeName())
			}
			b.text(s)

		case FormattedArg:
			s, err := f.formatted(v)
			if err != nil {
				return err
			}
			b.text(s)

		case Select:
			val, err := f.lookup(v.Name)
			if err != nil {
				return err
			}
			s, ok := val.text()
			if !ok {
				return formatErrorf(CodeTypeMismatch, "Expected string for %q, got %s", v.Name, val.typeName())
			}
			branch, err := pick(v.Name, v.Branches, s)
			if err != nil {
				return err
			}
			if err := f.message(b, branch, nil, depth+1); err != nil {
				return err
			}

		case Plural:
			val, err := f.lookup(v.Name)
			if err != nil {
				return err
			}
			num, ok := val.Float()
			if !ok {
				return formatErrorf(CodeTypeMismatch, "Expected number for %q, got %s", v.Name, val.typeName())
			}
			label := ExactLabel(num)
			if _, exact := v.Branches[label]; !exact {
				label = f.loc.PluralCategory(num-v.Offset, val.FractionDigits(), v.Ordinal)
			}
			branch, err := pick(v.Name, v.Branches, label)
			if err != nil {
				return err
			}
			if err := f.message(b, branch, &operand{n: num - v.Offset}, depth+1); err != nil {
				return err
			}

		case Pound:
			if pound == nil {
				return formatErrorf(CodeInvalidMessage, "# outside of a plural branch")
			}
			b.text(f.loc.FormatNumber(pound.n, ""))

		case Tag:
			if err := f.tag(b, v, pound, depth); err != nil {
				return err
			}

		default:
			return formatErrorf(CodeInvalidMessage, "unknown node type %T", n)
		}
	}
	return nil
}

func (f *formatter[T]) tag(b *builder[T], t Tag, pound *operand, depth int) error {
	val, err := f.lookup(t.Name)
	if err != nil {
		return err
	}
	if val.kind != KindTag {
		return formatErrorf(CodeInvalidTagHandler, "Expected a tag handler for %q, got %s", t.Name, val.typeName())
	}
	handler, ok := val.tag.(TagHandler[T])
	if !ok {
		return formatErrorf(CodeInvalidTagHandler, "Tag handler for %q does not produce %s", t.Name, reflect.TypeFor[T]())
	}

	var children builder[T]
	if err := f.message(&children, t.Children, pound, depth+1); err != nil {
		return err
	}
	chunks := children.chunks
	if len(chunks) == 0 {
		chunks = []Chunk[T]{{Text: ""}}
	}
	b.value(handler(chunks))
	return nil
}

func (f *formatter[T]) formatted(a FormattedArg) (string, error) {
	val, err := f.lookup(a.Name)
	if err != nil {
		return "", err
	}

	if a.Kind == NumberArg {
		n, ok := val.Float()
		if !ok {
			return "", formatErrorf(CodeTypeMismatch, "Expected number for %q, got %s", a.Name, val.typeName())
		}
		return f.loc.FormatNumber(n, a.Style), nil
	}

	if val.kind != KindDate {
		return "", formatErrorf(CodeTypeMismatch, "Expected date for %q, got %s", a.Name, val.typeName())
	}
	t := val.t
	if f.opts.timeZone != nil {
		t = t.In(f.opts.timeZone)
	}
	switch a.Kind {
	case DateArg:
		return f.loc.FormatDate(t, a.Style), nil
	case TimeArg:
		return f.loc.FormatTime(t, a.Style), nil
	default:
		return "", formatErrorf(CodeInvalidMessage, "unknown argument kind for %q", a.Name)
	}
}

func (f *formatter[T]) lookup(name string) (Value, error) {
	val, ok := f.values[name]
	if !ok {
		return Value{}, formatErrorf(CodeMissingArgument, "The intl string context variable %q was not provided", name)
	}
	return val, nil
}

// pick returns branches[label], falling back to the other branch.
func pick(name string, branches map[string]Message, label string) (Message, error) {
	if m, ok := branches[label]; ok {
		return m, nil
	}
	if m, ok := branches[OtherLabel]; ok {
		return m, nil
	}
	return nil, formatErrorf(CodeInvalidMessage, "argument %q has no other branch", name)
}

func formatErrorf(code ErrorCode, format string, args ...any) *FormatError {
	return &FormatError{Code: code, Message: fmt.Sprintf(format, args...)}
}

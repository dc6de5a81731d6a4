// Package icu compiles ICU MessageFormat strings into an immutable tree and
// formats that tree against runtime values.
//
// Compilation and formatting are separate steps. Compile parses a source
// string once; the resulting Message holds no mutable state and can be
// formatted from any number of goroutines.
//
//	msg, err := icu.Compile("{count, plural, =0 {no items} one {# item} other {# items}}")
//	if err != nil {
//		return err
//	}
//	s, err := icu.FormatString(msg, "en", icu.Values{"count": icu.Int(3)})
//	// s == "3 items"
//
// # Syntax
//
// Supported constructs are plain text, {name} placeholders, typed arguments
// ({n, number}, {n, number, percent}, {n, number, integer}, {d, date, short},
// {d, time}), select, plural and selectordinal with exact (=0) and CLDR
// category selectors, an optional plural offset (offset:1), # inside plural
// branches and rich-text tags (<b>bold</b>, <br/>).
//
// Apostrophes quote syntax characters: '{' is a literal brace, '' is a
// literal apostrophe and an apostrophe before any other character is kept
// as is, so "It's" needs no escaping.
//
// # Values
//
// Arguments are passed as a Values map of tagged Value unions built with
// String, Number, Int, Decimal, Bool, Date and Handler, or converted from a
// loosely typed map with Args:
//
//	values := icu.Args(map[string]any{"name": "Ada", "count": 3})
//
// # Rich Text
//
// Format is generic over the type produced by tag handlers. Handlers that
// return strings are merged into the text; other values are kept as
// separate chunks so callers can build structured output:
//
//	type node struct{ tag, text string }
//
//	res, err := icu.Format[any](msg, "en", icu.Values{
//		"b": icu.Handler(func(chunks []icu.Chunk[any]) any {
//			return node{tag: "b", text: icu.Result[any](chunks).String()}
//		}),
//	})
//	// res.Output() is []any{"Hello ", node{...}, "!"}
//
// # Errors
//
// Compile returns a *CompileError and Format a *FormatError. Both carry a
// stable Code and unwrap to a per-code sentinel:
//
//	if errors.Is(err, icu.ErrMissingArgument) { ... }
//	if icu.Code(err) == icu.CodeTypeMismatch { ... }
//
// # Storage
//
// Compact and Expand convert a Message to and from a compact JSON-compatible
// form; Message implements json.Marshaler and the msgpack custom encoder
// interfaces on top of it. The interpreter always works on the tree.
package icu

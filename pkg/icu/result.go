package icu

import (
	"fmt"
	"strings"
)

// Chunk is one piece of formatted output: plain text, or a value returned by
// a tag handler when Rich is set.
type Chunk[T any] struct {
	Value T
	Text  string
	Rich  bool
}

// Result is the output of Format. Adjacent text is merged, so a message
// without rich tag output is a single text chunk (or none for an empty message).
type Result[T any] []Chunk[T]

// String concatenates the result. Rich chunks are rendered with fmt.Sprint.
func (r Result[T]) String() string {
	if len(r) == 1 && !r[0].Rich {
		return r[0].Text
	}
	var b strings.Builder
	for _, c := range r {
		if c.Rich {
			fmt.Fprint(&b, c.Value)
			continue
		}
		b.WriteString(c.Text)
	}
	return b.String()
}

// IsRich reports whether any chunk was produced by a tag handler returning
// a non-string value.
func (r Result[T]) IsRich() bool {
	for _, c := range r {
		if c.Rich {
			return true
		}
	}
	return false
}

// Output returns the result as a string when it holds text only, otherwise
// as an ordered []any of string and T elements.
func (r Result[T]) Output() any {
	if !r.IsRich() {
		return r.String()
	}
	parts := make([]any, len(r))
	for i, c := range r {
		if c.Rich {
			parts[i] = c.Value
		} else {
			parts[i] = c.Text
		}
	}
	return parts
}

// builder accumulates chunks, merging adjacent text.
type builder[T any] struct {
	chunks []Chunk[T]
}

func (b *builder[T]) text(s string) {
	if s == "" {
		return
	}
	if n := len(b.chunks); n > 0 && !b.chunks[n-1].Rich {
		b.chunks[n-1].Text += s
		return
	}
	b.chunks = append(b.chunks, Chunk[T]{Text: s})
}

// value splices a tag handler result: strings become text, anything else
// stays a rich chunk.
func (b *builder[T]) value(v T) {
	if s, ok := any(v).(string); ok {
		b.text(s)
		return
	}
	b.chunks = append(b.chunks, Chunk[T]{Value: v, Rich: true})
}

package icu

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"
)

// DefaultMaxDepth bounds the nesting of arguments and tags, for both the
// compiler and the interpreter.
const DefaultMaxDepth = 32

type compileOpts struct {
	maxDepth int
}

// CompileOption configures Compile.
type CompileOption func(*compileOpts)

// WithMaxDepth sets the maximum nesting of arguments and tags.
// Deeper input fails with MAX_DEPTH_EXCEEDED.
// Default: DefaultMaxDepth.
func WithMaxDepth(n int) CompileOption {
	return func(o *compileOpts) {
		if n > 0 {
			o.maxDepth = n
		}
	}
}

// MaxDepthOf returns the nesting bound opts configure. Pass it to
// WithFormatMaxDepth so Format accepts every message Compile accepted.
func MaxDepthOf(opts ...CompileOption) int {
	o := &compileOpts{maxDepth: DefaultMaxDepth}
	for _, opt := range opts {
		opt(o)
	}
	return o.maxDepth
}

// Compile parses an ICU message source into a Message.
// It either returns the complete tree or a *CompileError.
func Compile(source string, opts ...CompileOption) (Message, error) {
	p := &parser{src: source, maxDepth: MaxDepthOf(opts...)}
	msg, err := p.message(0, scope{})
	if err != nil {
		return nil, err
	}
	return msg, nil
}

// MustCompile is like Compile but panics on error.
// It is intended for messages embedded in code.
func MustCompile(source string, opts ...CompileOption) Message {
	msg, err := Compile(source, opts...)
	if err != nil {
		panic(err)
	}
	return msg
}

// scope describes where a sub-message sits in the tree.
type scope struct {
	// plural is set inside a plural branch (and tags within it): # is special.
	plural bool
	// branch is set inside a select/plural branch: } ends the message.
	branch bool
	// tag is set directly inside a tag: </ ends the message.
	tag bool
}

type parser struct {
	src      string
	pos      int
	maxDepth int
}

func (p *parser) eof() bool {
	return p.pos >= len(p.src)
}

// at returns the byte at pos+i, or 0 past the end.
func (p *parser) at(i int) byte {
	if p.pos+i < len(p.src) {
		return p.src[p.pos+i]
	}
	return 0
}

func (p *parser) rest() string {
	return p.src[p.pos:]
}

func (p *parser) skipSpace() {
	for !p.eof() {
		r, size := utf8.DecodeRuneInString(p.rest())
		if !unicode.IsSpace(r) {
			return
		}
		p.pos += size
	}
}

func (p *parser) message(depth int, sc scope) (Message, error) {
	var (
		msg  Message
		text strings.Builder
	)
	flush := func() {
		if text.Len() > 0 {
			msg = append(msg, Text(text.String()))
			text.Reset()
		}
	}

	for !p.eof() {
		c := p.src[p.pos]
		switch {
		case c == '\'':
			p.quoted(&text, sc)
		case c == '{':
			flush()
			n, err := p.argument(depth)
			if err != nil {
				return nil, err
			}
			msg = append(msg, n)
		case c == '}' && sc.branch:
			flush()
			return msg, nil
		case c == '#' && sc.plural:
			flush()
			msg = append(msg, Pound{})
			p.pos++
		case c == '<' && p.at(1) == '/':
			if sc.tag {
				flush()
				return msg, nil
			}
			return nil, p.errorf(CodeUnmatchedClosingTag, p.pos, "closing tag without a matching opening tag")
		case c == '<' && isTagStart(p.at(1)):
			flush()
			n, err := p.tag(depth, sc)
			if err != nil {
				return nil, err
			}
			msg = append(msg, n)
		default:
			text.WriteByte(c)
			p.pos++
		}
	}
	flush()
	return msg, nil
}

// quoted consumes an apostrophe sequence starting at p.pos.
// '' is a literal apostrophe; ' followed by a syntax character opens a
// literal run up to the next unpaired '; any other ' is literal.
func (p *parser) quoted(b *strings.Builder, sc scope) {
	switch next := p.at(1); {
	case next == '\'':
		b.WriteByte('\'')
		p.pos += 2
		return
	case next == '{' || next == '}' || next == '<' || next == '>':
	case next == '#' && sc.plural:
	default:
		b.WriteByte('\'')
		p.pos++
		return
	}

	p.pos++
	b.WriteByte(p.src[p.pos])
	p.pos++
	for !p.eof() {
		c := p.src[p.pos]
		if c == '\'' {
			if p.at(1) == '\'' {
				b.WriteByte('\'')
				p.pos += 2
				continue
			}
			p.pos++
			return
		}
		b.WriteByte(c)
		p.pos++
	}
}

func (p *parser) argument(depth int) (Node, error) {
	start := p.pos
	if depth+1 > p.maxDepth {
		return nil, p.errorf(CodeMaxDepthExceeded, start, "nesting deeper than %d", p.maxDepth)
	}
	p.pos++

	p.skipSpace()
	if p.eof() {
		return nil, p.errorf(CodeExpectArgumentClosingBrace, start, "unterminated argument")
	}
	if p.src[p.pos] == '}' {
		return nil, p.errorf(CodeEmptyArgument, start, "argument has no name")
	}

	nameStart := p.pos
	name := p.identifier()
	if name == "" {
		return nil, p.errorf(CodeMalformedArgument, nameStart, "expected an argument name")
	}

	p.skipSpace()
	if p.eof() {
		return nil, p.errorf(CodeExpectArgumentClosingBrace, start, "unterminated argument %s", quote(name))
	}
	switch p.src[p.pos] {
	case '}':
		p.pos++
		return Placeholder{Name: name}, nil
	case ',':
		p.pos++
		return p.argumentType(name, start, depth+1)
	default:
		return nil, p.errorf(CodeMalformedArgument, p.pos, "unexpected character after argument %s", quote(name))
	}
}

func (p *parser) argumentType(name string, start, depth int) (Node, error) {
	p.skipSpace()
	typeStart := p.pos
	typ := p.identifier()
	if typ == "" {
		if p.eof() {
			return nil, p.errorf(CodeExpectArgumentClosingBrace, start, "unterminated argument %s", quote(name))
		}
		return nil, p.errorf(CodeExpectArgumentType, typeStart, "expected an argument type for %s", quote(name))
	}

	switch typ {
	case "number":
		return p.formattedArg(name, NumberArg, start)
	case "date":
		return p.formattedArg(name, DateArg, start)
	case "time":
		return p.formattedArg(name, TimeArg, start)
	case "select", "plural", "selectordinal":
	default:
		return nil, p.errorf(CodeInvalidArgumentType, typeStart, "unknown argument type %s", quote(typ))
	}

	p.skipSpace()
	if p.eof() {
		return nil, p.errorf(CodeExpectArgumentClosingBrace, start, "unterminated argument %s", quote(name))
	}
	if p.src[p.pos] != ',' {
		return nil, p.errorf(CodeExpectArgumentOptions, p.pos, "expected options for %s argument %s", typ, quote(name))
	}
	p.pos++
	p.skipSpace()

	if typ == "select" {
		branches, err := p.branches(name, start, depth, false)
		if err != nil {
			return nil, err
		}
		return Select{Name: name, Branches: branches}, nil
	}

	var offset float64
	if strings.HasPrefix(p.rest(), "offset:") {
		offStart := p.pos
		p.pos += len("offset:")
		p.skipSpace()
		n, ok := p.number()
		if !ok || n < 0 || n != float64(int64(n)) {
			return nil, p.errorf(CodeInvalidOffset, offStart, "offset must be a non-negative integer")
		}
		offset = n
	}

	branches, err := p.branches(name, start, depth, true)
	if err != nil {
		return nil, err
	}
	return Plural{
		Name:     name,
		Branches: branches,
		Ordinal:  typ == "selectordinal",
		Offset:   offset,
	}, nil
}

func (p *parser) formattedArg(name string, kind ArgKind, start int) (Node, error) {
	p.skipSpace()
	if p.eof() {
		return nil, p.errorf(CodeExpectArgumentClosingBrace, start, "unterminated argument %s", quote(name))
	}
	switch p.src[p.pos] {
	case '}':
		p.pos++
		return FormattedArg{Name: name, Kind: kind}, nil
	case ',':
		p.pos++
	default:
		return nil, p.errorf(CodeMalformedArgument, p.pos, "unexpected character in %s argument %s", kind, quote(name))
	}

	styleStart := p.pos
	end := strings.IndexByte(p.rest(), '}')
	if end < 0 {
		return nil, p.errorf(CodeExpectArgumentClosingBrace, start, "unterminated argument %s", quote(name))
	}
	style := strings.TrimSpace(p.src[p.pos : p.pos+end])
	if style == "" {
		return nil, p.errorf(CodeExpectArgumentStyle, styleStart, "expected a style for %s", quote(name))
	}
	p.pos += end + 1
	return FormattedArg{Name: name, Kind: kind, Style: style}, nil
}

func (p *parser) branches(name string, start, depth int, plural bool) (map[string]Message, error) {
	branches := make(map[string]Message)
	sc := scope{branch: true, plural: plural}

	for {
		p.skipSpace()
		if p.eof() {
			return nil, p.errorf(CodeExpectArgumentClosingBrace, start, "unterminated argument %s", quote(name))
		}
		if p.src[p.pos] == '}' {
			p.pos++
			break
		}

		selStart := p.pos
		var label string
		if plural && p.src[p.pos] == '=' {
			p.pos++
			n, ok := p.number()
			if !ok {
				return nil, p.errorf(CodeInvalidSelector, selStart, "invalid exact selector in %s", quote(name))
			}
			label = ExactLabel(n)
		} else {
			label = p.identifier()
			if label == "" {
				return nil, p.errorf(CodeInvalidSelector, selStart, "expected a selector in %s", quote(name))
			}
			if plural && !isPluralCategory(label) {
				return nil, p.errorf(CodeInvalidSelector, selStart, "unknown plural category %s in %s", quote(label), quote(name))
			}
		}

		p.skipSpace()
		if p.eof() || p.src[p.pos] != '{' {
			return nil, p.errorf(CodeExpectOptionFragment, p.pos, "expected { after selector %s", quote(label))
		}
		if _, dup := branches[label]; dup {
			return nil, p.errorf(CodeDuplicateSelector, selStart, "duplicate selector %s in %s", quote(label), quote(name))
		}

		fragStart := p.pos
		p.pos++
		msg, err := p.message(depth, sc)
		if err != nil {
			return nil, err
		}
		if p.eof() {
			return nil, p.errorf(CodeExpectArgumentClosingBrace, fragStart, "unterminated branch %s in %s", quote(label), quote(name))
		}
		p.pos++
		branches[label] = msg
	}

	if _, ok := branches[OtherLabel]; !ok {
		return nil, p.errorf(CodeMissingOtherClause, start, "argument %s has no other branch", quote(name))
	}
	return branches, nil
}

func (p *parser) tag(depth int, sc scope) (Node, error) {
	start := p.pos
	if depth+1 > p.maxDepth {
		return nil, p.errorf(CodeMaxDepthExceeded, start, "nesting deeper than %d", p.maxDepth)
	}
	p.pos++
	name := p.tagName()

	p.skipSpace()
	if strings.HasPrefix(p.rest(), "/>") {
		p.pos += 2
		return Tag{Name: name}, nil
	}
	if p.eof() || p.src[p.pos] != '>' {
		return nil, p.errorf(CodeInvalidTag, start, "malformed opening tag <%s", name)
	}
	p.pos++

	children, err := p.message(depth+1, scope{plural: sc.plural, branch: sc.branch, tag: true})
	if err != nil {
		return nil, err
	}
	if !strings.HasPrefix(p.rest(), "</") {
		return nil, p.errorf(CodeUnclosedTag, start, "tag <%s> is never closed", name)
	}

	closeStart := p.pos
	p.pos += 2
	if closing := p.tagName(); closing != name {
		return nil, p.errorf(CodeUnmatchedClosingTag, closeStart, "</%s> does not match <%s>", closing, name)
	}
	p.skipSpace()
	if p.eof() || p.src[p.pos] != '>' {
		return nil, p.errorf(CodeInvalidTag, closeStart, "malformed closing tag </%s", name)
	}
	p.pos++
	return Tag{Name: name, Children: children}, nil
}

// identifier reads up to the next whitespace or syntax character.
func (p *parser) identifier() string {
	start := p.pos
	for !p.eof() {
		r, size := utf8.DecodeRuneInString(p.rest())
		if unicode.IsSpace(r) || strings.ContainsRune("{}<>,#'", r) {
			break
		}
		p.pos += size
	}
	return p.src[start:p.pos]
}

func (p *parser) tagName() string {
	start := p.pos
	for !p.eof() {
		r, size := utf8.DecodeRuneInString(p.rest())
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) && r != '-' && r != '_' && r != '.' {
			break
		}
		p.pos += size
	}
	return p.src[start:p.pos]
}

// number reads an optionally signed decimal number.
func (p *parser) number() (float64, bool) {
	start := p.pos
	if !p.eof() && p.src[p.pos] == '-' {
		p.pos++
	}
	digits := 0
	for !p.eof() && (isDigit(p.src[p.pos]) || p.src[p.pos] == '.') {
		if p.src[p.pos] != '.' {
			digits++
		}
		p.pos++
	}
	if digits == 0 {
		p.pos = start
		return 0, false
	}
	n, err := strconv.ParseFloat(p.src[start:p.pos], 64)
	if err != nil {
		p.pos = start
		return 0, false
	}
	return n, true
}

func (p *parser) errorf(code ErrorCode, offset int, format string, args ...any) *CompileError {
	line, col := lineCol(p.src, offset)
	return &CompileError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Offset:  offset,
		Line:    line,
		Column:  col,
	}
}

// lineCol converts a byte offset into a 1-based line and rune column.
func lineCol(src string, offset int) (int, int) {
	offset = min(offset, len(src))
	line := 1 + strings.Count(src[:offset], "\n")
	lineStart := strings.LastIndexByte(src[:offset], '\n') + 1
	return line, utf8.RuneCountInString(src[lineStart:offset]) + 1
}

// ExactLabel returns the branch label for an exact-match selector.
func ExactLabel(n float64) string {
	return "=" + strconv.FormatFloat(n, 'f', -1, 64)
}

func isPluralCategory(s string) bool {
	switch s {
	case "zero", "one", "two", "few", "many", OtherLabel:
		return true
	}
	return false
}

func isTagStart(c byte) bool {
	return c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z'
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

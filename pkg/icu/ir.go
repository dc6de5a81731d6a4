package icu

import "fmt"

// Message is a compiled message: an ordered sequence of nodes.
// A Message is immutable once produced by Compile and may be formatted
// concurrently from any number of goroutines.
type Message []Node

// Node is one element of a compiled message.
// The set of implementations is closed: Text, Placeholder, FormattedArg,
// Select, Plural, Pound and Tag.
type Node interface {
	node()
}

// ArgKind is the type of a formatted argument.
type ArgKind int

const (
	NumberArg ArgKind = iota + 1
	DateArg
	TimeArg
)

func (k ArgKind) String() string {
	switch k {
	case NumberArg:
		return "number"
	case DateArg:
		return "date"
	case TimeArg:
		return "time"
	default:
		return "unknown"
	}
}

// OtherLabel is the branch every select and plural must define.
const OtherLabel = "other"

// Text is a literal, already unescaped run of characters.
type Text string

// Placeholder is a bare argument reference: {name}.
type Placeholder struct {
	Name string
}

// FormattedArg is a typed argument: {name, number}, {name, date, short}.
// An empty Style means the locale default.
type FormattedArg struct {
	Name  string
	Kind  ArgKind
	Style string
}

// Select picks a branch by the string value of an argument.
type Select struct {
	Branches map[string]Message
	Name     string
}

// Plural picks a branch by exact value ("=0") or CLDR plural category.
// Ordinal distinguishes selectordinal from plural. Offset is subtracted
// from the operand before category resolution and # substitution.
type Plural struct {
	Branches map[string]Message
	Name     string
	Offset   float64
	Ordinal  bool
}

// Pound is the # marker inside a plural branch.
type Pound struct{}

// Tag is a rich-text element <name>children</name>.
// Children may be empty.
type Tag struct {
	Name     string
	Children Message
}

func (Text) node()         {}
func (Placeholder) node()  {}
func (FormattedArg) node() {}
func (Select) node()       {}
func (Plural) node()       {}
func (Pound) node()        {}
func (Tag) node()          {}

// IsLiteral reports whether the message consists of text only.
func (m Message) IsLiteral() bool {
	for _, n := range m {
		if _, ok := n.(Text); !ok {
			return false
		}
	}
	return true
}

// Validate checks the structural invariants of a message that did not come
// from Compile: every select and plural has an "other" branch, # only appears
// inside a plural branch and nesting stays within maxDepth.
func (m Message) Validate(maxDepth int) error {
	if maxDepth <= 0 {
		maxDepth = DefaultMaxDepth
	}
	return validate(m, false, 0, maxDepth)
}

func validate(m Message, inPlural bool, depth, maxDepth int) error {
	if depth > maxDepth {
		return &CompileError{Code: CodeMaxDepthExceeded, Message: "message nesting is too deep"}
	}
	for _, n := range m {
		switch v := n.(type) {
		case Text, Placeholder:
		case FormattedArg:
			if v.Kind < NumberArg || v.Kind > TimeArg {
				return &CompileError{Code: CodeInvalidArgumentType, Message: "unknown argument kind for " + quote(v.Name)}
			}
		case Pound:
			if !inPlural {
				return &CompileError{Code: CodeMisplacedPound, Message: "# outside of a plural branch"}
			}
		case Select:
			if _, ok := v.Branches[OtherLabel]; !ok {
				return &CompileError{Code: CodeMissingOtherClause, Message: "select " + quote(v.Name) + " has no other branch"}
			}
			for _, b := range v.Branches {
				if err := validate(b, false, depth+1, maxDepth); err != nil {
					return err
				}
			}
		case Plural:
			if _, ok := v.Branches[OtherLabel]; !ok {
				return &CompileError{Code: CodeMissingOtherClause, Message: "plural " + quote(v.Name) + " has no other branch"}
			}
			for _, b := range v.Branches {
				if err := validate(b, true, depth+1, maxDepth); err != nil {
					return err
				}
			}
		case Tag:
			if err := validate(v.Children, inPlural, depth+1, maxDepth); err != nil {
				return err
			}
		default:
			return &CompileError{Code: CodeInvalidNode, Message: fmt.Sprintf("unknown node type %T", n)}
		}
	}
	return nil
}

package icu

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cast"
	"github.com/vmihailenco/msgpack/v5"
)

// Node type codes used by the compact encoding.
const (
	codeSelect        = 1
	codePlural        = 2
	codeSelectOrdinal = 3
	codeNumber        = 4
	codeDate          = 5
	codeTime          = 6
	codeTag           = 7
)

// Compact converts m into its compact, JSON-compatible form:
//
//	""                    empty message
//	"text"                literal-only message
//	node                  message with a single non-text node
//	[node, node, ...]     anything else
//
// Nodes are encoded as "text" (Text), 0 (Pound), [name] (Placeholder),
// [name, code, style?] (FormattedArg), [name, code, {label: message}, offset?]
// (Select and Plural) and [name, 7, message?] (Tag).
func Compact(m Message) any {
	if m.IsLiteral() {
		var b strings.Builder
		for _, n := range m {
			b.WriteString(string(n.(Text)))
		}
		return b.String()
	}
	if len(m) == 1 {
		return compactNode(m[0])
	}
	out := make([]any, len(m))
	for i, n := range m {
		out[i] = compactNode(n)
	}
	return out
}

func compactNode(n Node) any {
	switch v := n.(type) {
	case Text:
		return string(v)
	case Pound:
		return 0
	case Placeholder:
		return []any{v.Name}
	case FormattedArg:
		code := codeNumber
		switch v.Kind {
		case DateArg:
			code = codeDate
		case TimeArg:
			code = codeTime
		}
		if v.Style == "" {
			return []any{v.Name, code}
		}
		return []any{v.Name, code, v.Style}
	case Select:
		return []any{v.Name, codeSelect, compactBranches(v.Branches)}
	case Plural:
		code := codePlural
		if v.Ordinal {
			code = codeSelectOrdinal
		}
		out := []any{v.Name, code, compactBranches(v.Branches)}
		if v.Offset != 0 {
			out = append(out, v.Offset)
		}
		return out
	case Tag:
		if len(v.Children) == 0 {
			return []any{v.Name, codeTag}
		}
		return []any{v.Name, codeTag, Compact(v.Children)}
	default:
		return nil
	}
}

func compactBranches(branches map[string]Message) map[string]any {
	out := make(map[string]any, len(branches))
	for label, m := range branches {
		out[label] = Compact(m)
	}
	return out
}

// Expand reverses Compact. It accepts the generic values produced by
// encoding/json and msgpack decoders and validates the resulting message.
func Expand(v any) (Message, error) {
	m, err := expandMessage(v, 0)
	if err != nil {
		return nil, err
	}
	if err := m.Validate(DefaultMaxDepth); err != nil {
		return nil, err
	}
	return m, nil
}

func expandMessage(v any, depth int) (Message, error) {
	if depth > DefaultMaxDepth {
		return nil, &CompileError{Code: CodeMaxDepthExceeded, Message: "encoded message nesting is too deep"}
	}

	switch x := v.(type) {
	case string:
		if x == "" {
			return nil, nil
		}
		return Message{Text(x)}, nil
	case []any:
		if isEncodedNode(x) {
			n, err := expandNode(x, depth)
			if err != nil {
				return nil, err
			}
			return Message{n}, nil
		}
		m := make(Message, 0, len(x))
		for _, el := range x {
			n, err := expandNode(el, depth)
			if err != nil {
				return nil, err
			}
			m = append(m, n)
		}
		return m, nil
	}

	if isNumber(v) {
		n, err := expandNode(v, depth)
		if err != nil {
			return nil, err
		}
		return Message{n}, nil
	}
	return nil, invalidEncoding("unexpected %T in encoded message", v)
}

func expandNode(v any, depth int) (Node, error) {
	switch x := v.(type) {
	case string:
		return Text(x), nil
	case []any:
		return expandArgument(x, depth)
	}

	if isNumber(v) {
		if cast.ToFloat64(v) != 0 {
			return nil, invalidEncoding("unexpected number %v in encoded message", v)
		}
		return Pound{}, nil
	}
	return nil, invalidEncoding("unexpected %T in encoded message", v)
}

func expandArgument(arr []any, depth int) (Node, error) {
	if len(arr) == 0 {
		return nil, invalidEncoding("empty encoded node")
	}
	name, ok := arr[0].(string)
	if !ok {
		return nil, invalidEncoding("encoded node name is %T, not a string", arr[0])
	}
	if len(arr) == 1 {
		return Placeholder{Name: name}, nil
	}

	code, err := cast.ToIntE(arr[1])
	if err != nil {
		return nil, invalidEncoding("encoded node %s has an invalid type code", quote(name))
	}

	switch code {
	case codeNumber, codeDate, codeTime:
		arg := FormattedArg{Name: name, Kind: NumberArg}
		if code == codeDate {
			arg.Kind = DateArg
		} else if code == codeTime {
			arg.Kind = TimeArg
		}
		if len(arr) > 2 {
			style, ok := arr[2].(string)
			if !ok {
				return nil, invalidEncoding("style of %s is %T, not a string", quote(name), arr[2])
			}
			arg.Style = style
		}
		return arg, nil

	case codeSelect, codePlural, codeSelectOrdinal:
		if len(arr) < 3 {
			return nil, invalidEncoding("encoded node %s has no branches", quote(name))
		}
		branches, err := expandBranches(name, arr[2], depth)
		if err != nil {
			return nil, err
		}
		if code == codeSelect {
			return Select{Name: name, Branches: branches}, nil
		}
		p := Plural{Name: name, Branches: branches, Ordinal: code == codeSelectOrdinal}
		if len(arr) > 3 {
			if p.Offset, err = cast.ToFloat64E(arr[3]); err != nil {
				return nil, invalidEncoding("offset of %s is not a number", quote(name))
			}
		}
		return p, nil

	case codeTag:
		t := Tag{Name: name}
		if len(arr) > 2 {
			children, err := expandMessage(arr[2], depth+1)
			if err != nil {
				return nil, err
			}
			t.Children = children
		}
		return t, nil
	}
	return nil, invalidEncoding("encoded node %s has unknown type code %d", quote(name), code)
}

func expandBranches(name string, v any, depth int) (map[string]Message, error) {
	raw, err := cast.ToStringMapE(v)
	if err != nil {
		return nil, invalidEncoding("branches of %s are %T, not a map", quote(name), v)
	}
	branches := make(map[string]Message, len(raw))
	for label, bv := range raw {
		m, err := expandMessage(bv, depth+1)
		if err != nil {
			return nil, err
		}
		branches[label] = m
	}
	return branches, nil
}

// isEncodedNode tells a single bare node from a message array: a node starts
// with its name and either stands alone or carries a non-zero type code.
func isEncodedNode(arr []any) bool {
	if len(arr) == 0 {
		return false
	}
	if _, ok := arr[0].(string); !ok {
		return false
	}
	if len(arr) == 1 {
		return true
	}
	return isNumber(arr[1]) && cast.ToFloat64(arr[1]) != 0
}

func isNumber(v any) bool {
	switch v.(type) {
	case int, int8, int16, int32, int64,
		uint, uint8, uint16, uint32, uint64,
		float32, float64, json.Number:
		return true
	}
	return false
}

func invalidEncoding(format string, args ...any) *CompileError {
	return &CompileError{Code: CodeInvalidNode, Message: fmt.Sprintf(format, args...)}
}

// MarshalJSON encodes m in its compact form.
func (m Message) MarshalJSON() ([]byte, error) {
	return json.Marshal(Compact(m))
}

// UnmarshalJSON decodes and validates a compact message.
func (m *Message) UnmarshalJSON(data []byte) error {
	var v any
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	msg, err := Expand(v)
	if err != nil {
		return err
	}
	*m = msg
	return nil
}

// EncodeMsgpack encodes m in its compact form.
func (m Message) EncodeMsgpack(enc *msgpack.Encoder) error {
	return enc.Encode(Compact(m))
}

// DecodeMsgpack decodes and validates a compact message.
func (m *Message) DecodeMsgpack(dec *msgpack.Decoder) error {
	v, err := dec.DecodeInterface()
	if err != nil {
		return err
	}
	msg, err := Expand(v)
	if err != nil {
		return err
	}
	*m = msg
	return nil
}

var (
	_ json.Marshaler        = Message(nil)
	_ json.Unmarshaler      = (*Message)(nil)
	_ msgpack.CustomEncoder = Message(nil)
	_ msgpack.CustomDecoder = (*Message)(nil)
)

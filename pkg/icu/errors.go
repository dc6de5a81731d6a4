package icu

import (
	"errors"
	"fmt"
	"strconv"
)

// ErrorCode is a stable, machine-readable error identifier.
type ErrorCode string

// Compile error codes.
const (
	CodeEmptyArgument              ErrorCode = "EMPTY_ARGUMENT"
	CodeExpectArgumentClosingBrace ErrorCode = "EXPECT_ARGUMENT_CLOSING_BRACE"
	CodeUnclosedTag                ErrorCode = "UNCLOSED_TAG"
	CodeMissingOtherClause         ErrorCode = "MISSING_OTHER_CLAUSE"
	CodeMalformedArgument          ErrorCode = "MALFORMED_ARGUMENT"
	CodeExpectArgumentType         ErrorCode = "EXPECT_ARGUMENT_TYPE"
	CodeInvalidArgumentType        ErrorCode = "INVALID_ARGUMENT_TYPE"
	CodeExpectArgumentStyle        ErrorCode = "EXPECT_ARGUMENT_STYLE"
	CodeExpectArgumentOptions      ErrorCode = "EXPECT_ARGUMENT_OPTIONS"
	CodeInvalidSelector            ErrorCode = "INVALID_SELECTOR"
	CodeExpectOptionFragment       ErrorCode = "EXPECT_OPTION_FRAGMENT"
	CodeDuplicateSelector          ErrorCode = "DUPLICATE_SELECTOR"
	CodeInvalidOffset              ErrorCode = "INVALID_OFFSET"
	CodeUnmatchedClosingTag        ErrorCode = "UNMATCHED_CLOSING_TAG"
	CodeInvalidTag                 ErrorCode = "INVALID_TAG"
	CodeMaxDepthExceeded           ErrorCode = "MAX_DEPTH_EXCEEDED"
	CodeMisplacedPound             ErrorCode = "MISPLACED_POUND"
	CodeInvalidNode                ErrorCode = "INVALID_NODE"
)

// Format error codes.
const (
	CodeMissingArgument   ErrorCode = "MISSING_ARGUMENT"
	CodeTypeMismatch      ErrorCode = "TYPE_MISMATCH"
	CodeInvalidTagHandler ErrorCode = "INVALID_TAG_HANDLER"
	CodeInvalidMessage    ErrorCode = "INVALID_MESSAGE"
)

// Sentinel errors, one per code, for use with errors.Is.
var (
	ErrCompile = errors.New("icu: compile error")
	ErrFormat  = errors.New("icu: format error")

	ErrEmptyArgument              = fmt.Errorf("%w: %s", ErrCompile, CodeEmptyArgument)
	ErrExpectArgumentClosingBrace = fmt.Errorf("%w: %s", ErrCompile, CodeExpectArgumentClosingBrace)
	ErrUnclosedTag                = fmt.Errorf("%w: %s", ErrCompile, CodeUnclosedTag)
	ErrMissingOtherClause         = fmt.Errorf("%w: %s", ErrCompile, CodeMissingOtherClause)
	ErrMalformedArgument          = fmt.Errorf("%w: %s", ErrCompile, CodeMalformedArgument)
	ErrExpectArgumentType         = fmt.Errorf("%w: %s", ErrCompile, CodeExpectArgumentType)
	ErrInvalidArgumentType        = fmt.Errorf("%w: %s", ErrCompile, CodeInvalidArgumentType)
	ErrExpectArgumentStyle        = fmt.Errorf("%w: %s", ErrCompile, CodeExpectArgumentStyle)
	ErrExpectArgumentOptions      = fmt.Errorf("%w: %s", ErrCompile, CodeExpectArgumentOptions)
	ErrInvalidSelector            = fmt.Errorf("%w: %s", ErrCompile, CodeInvalidSelector)
	ErrExpectOptionFragment       = fmt.Errorf("%w: %s", ErrCompile, CodeExpectOptionFragment)
	ErrDuplicateSelector          = fmt.Errorf("%w: %s", ErrCompile, CodeDuplicateSelector)
	ErrInvalidOffset              = fmt.Errorf("%w: %s", ErrCompile, CodeInvalidOffset)
	ErrUnmatchedClosingTag        = fmt.Errorf("%w: %s", ErrCompile, CodeUnmatchedClosingTag)
	ErrInvalidTag                 = fmt.Errorf("%w: %s", ErrCompile, CodeInvalidTag)
	ErrMaxDepthExceeded           = fmt.Errorf("%w: %s", ErrCompile, CodeMaxDepthExceeded)
	ErrMisplacedPound             = fmt.Errorf("%w: %s", ErrCompile, CodeMisplacedPound)
	ErrInvalidNode                = fmt.Errorf("%w: %s", ErrCompile, CodeInvalidNode)

	ErrMissingArgument   = fmt.Errorf("%w: %s", ErrFormat, CodeMissingArgument)
	ErrTypeMismatch      = fmt.Errorf("%w: %s", ErrFormat, CodeTypeMismatch)
	ErrInvalidTagHandler = fmt.Errorf("%w: %s", ErrFormat, CodeInvalidTagHandler)
	ErrInvalidMessage    = fmt.Errorf("%w: %s", ErrFormat, CodeInvalidMessage)
)

var sentinels = map[ErrorCode]error{
	CodeEmptyArgument:              ErrEmptyArgument,
	CodeExpectArgumentClosingBrace: ErrExpectArgumentClosingBrace,
	CodeUnclosedTag:                ErrUnclosedTag,
	CodeMissingOtherClause:         ErrMissingOtherClause,
	CodeMalformedArgument:          ErrMalformedArgument,
	CodeExpectArgumentType:         ErrExpectArgumentType,
	CodeInvalidArgumentType:        ErrInvalidArgumentType,
	CodeExpectArgumentStyle:        ErrExpectArgumentStyle,
	CodeExpectArgumentOptions:      ErrExpectArgumentOptions,
	CodeInvalidSelector:            ErrInvalidSelector,
	CodeExpectOptionFragment:       ErrExpectOptionFragment,
	CodeDuplicateSelector:          ErrDuplicateSelector,
	CodeInvalidOffset:              ErrInvalidOffset,
	CodeUnmatchedClosingTag:        ErrUnmatchedClosingTag,
	CodeInvalidTag:                 ErrInvalidTag,
	CodeMaxDepthExceeded:           ErrMaxDepthExceeded,
	CodeMisplacedPound:             ErrMisplacedPound,
	CodeInvalidNode:                ErrInvalidNode,
	CodeMissingArgument:            ErrMissingArgument,
	CodeTypeMismatch:               ErrTypeMismatch,
	CodeInvalidTagHandler:          ErrInvalidTagHandler,
	CodeInvalidMessage:             ErrInvalidMessage,
}

// CompileError is returned by Compile for malformed input.
// Offset is a byte offset into the source; Line and Column are 1-based.
// Errors produced by Validate or Expand carry no position (Line == 0).
type CompileError struct {
	Code    ErrorCode
	Message string
	Offset  int
	Line    int
	Column  int
}

func (e *CompileError) Error() string {
	if e.Line == 0 {
		return fmt.Sprintf("icu: %s: %s", e.Code, e.Message)
	}
	return fmt.Sprintf("icu: %s at line %d, column %d: %s", e.Code, e.Line, e.Column, e.Message)
}

func (e *CompileError) Unwrap() error {
	if s, ok := sentinels[e.Code]; ok {
		return s
	}
	return ErrCompile
}

// FormatError is returned by Format when a message cannot be evaluated
// against the supplied values.
type FormatError struct {
	Code    ErrorCode
	Message string
}

func (e *FormatError) Error() string {
	return fmt.Sprintf("icu: %s: %s", e.Code, e.Message)
}

func (e *FormatError) Unwrap() error {
	if s, ok := sentinels[e.Code]; ok {
		return s
	}
	return ErrFormat
}

// Code extracts the error code from a CompileError or FormatError anywhere
// in err's chain. It returns "" for other errors.
func Code(err error) ErrorCode {
	var ce *CompileError
	if errors.As(err, &ce) {
		return ce.Code
	}
	var fe *FormatError
	if errors.As(err, &fe) {
		return fe.Code
	}
	return ""
}

func quote(s string) string {
	return strconv.Quote(s)
}

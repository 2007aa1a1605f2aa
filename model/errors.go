package model

import "fmt"

type FormatErrorKind uint8

const (
	MissingMarker FormatErrorKind = iota + 1
	InvalidHexDigit
	TruncatedEscape
	UnrecognizedInput
	MissingField
	InvalidURL
)

func (k FormatErrorKind) String() string {
	switch k {
	case MissingMarker:
		return "missing marker"
	case InvalidHexDigit:
		return "invalid hex digit"
	case TruncatedEscape:
		return "truncated escape"
	case UnrecognizedInput:
		return "unrecognized input"
	case MissingField:
		return "missing field"
	case InvalidURL:
		return "invalid url"
	}
	return "format error"
}

// FormatError reports input that does not have the shape of the protocol.
// Pos is a rune offset into the text that was being read.
type FormatError struct {
	Kind   FormatErrorKind
	Pos    int
	Char   rune
	Detail string
}

func (e *FormatError) Error() string {
	switch e.Kind {
	case InvalidHexDigit:
		return fmt.Sprintf("%v %q at %d", e.Kind, e.Char, e.Pos)
	case UnrecognizedInput, TruncatedEscape:
		return fmt.Sprintf("%v at %d", e.Kind, e.Pos)
	}
	if e.Detail != "" {
		return fmt.Sprintf("%v: %s", e.Kind, e.Detail)
	}
	return e.Kind.String()
}

// Is matches any FormatError of the same kind, so the sentinels below work
// with errors.Is.
func (e *FormatError) Is(target error) bool {
	t, ok := target.(*FormatError)
	return ok && t.Kind == e.Kind
}

type SemanticErrorKind uint8

const (
	NoPriorBar SemanticErrorKind = iota + 1
	InsufficientHistory
	BarOverflow
)

func (k SemanticErrorKind) String() string {
	switch k {
	case NoPriorBar:
		return "repeat measure with no prior bar"
	case InsufficientHistory:
		return "repeat two measures with fewer than two prior bars"
	case BarOverflow:
		return "chord placed past the end of the bar"
	}
	return "semantic error"
}

// SemanticError reports a well-formed token that makes no sense where it
// appears. Pos is the rune offset of the token.
type SemanticError struct {
	Kind  SemanticErrorKind
	Pos   int
	Token string
}

func (e *SemanticError) Error() string {
	if e.Token == "" {
		return fmt.Sprintf("%v at %d", e.Kind, e.Pos)
	}
	return fmt.Sprintf("%v: %q at %d", e.Kind, e.Token, e.Pos)
}

func (e *SemanticError) Is(target error) bool {
	t, ok := target.(*SemanticError)
	return ok && t.Kind == e.Kind
}

var (
	ErrMissingMarker       = &FormatError{Kind: MissingMarker}
	ErrInvalidHexDigit     = &FormatError{Kind: InvalidHexDigit}
	ErrTruncatedEscape     = &FormatError{Kind: TruncatedEscape}
	ErrUnrecognizedInput   = &FormatError{Kind: UnrecognizedInput}
	ErrMissingField        = &FormatError{Kind: MissingField}
	ErrInvalidURL          = &FormatError{Kind: InvalidURL}
	ErrNoPriorBar          = &SemanticError{Kind: NoPriorBar}
	ErrInsufficientHistory = &SemanticError{Kind: InsufficientHistory}
	ErrBarOverflow         = &SemanticError{Kind: BarOverflow}
)

package argfmt

import (
	"fmt"
)

// Kind classifies an [Error].
type Kind uint8

const (
	// KindType is an argument or input of the wrong kind.
	KindType Kind = iota + 1
	// KindMissing is a required argument that was not supplied.
	KindMissing
	// KindNegative is a negative value for an unsigned directive.
	KindNegative
	// KindOverflow is a value that does not fit a range-checked
	// native width.
	KindOverflow
	// KindUnsupported is a directive that is part of the grammar but
	// has no conversion.
	KindUnsupported
	// KindStructure is a malformed format string: unbalanced
	// brackets, misplaced separators or markers.
	KindStructure
	// KindConverter is a converter function that failed without
	// reporting why.
	KindConverter
	// KindArity is an argument count outside the accepted range.
	KindArity
	// KindSlot is an output slot or input value of the wrong Go type,
	// or a call that ran out of them. It indicates a bug in the
	// caller, not bad user input.
	KindSlot
	// KindNullValue is a nil object handed to the value builder.
	KindNullValue
)

var kindNames = map[Kind]string{
	KindType:        "type mismatch",
	KindMissing:     "missing argument",
	KindNegative:    "negative unsigned value",
	KindOverflow:    "overflow",
	KindUnsupported: "unsupported directive",
	KindStructure:   "malformed format",
	KindConverter:   "converter failure",
	KindArity:       "wrong argument count",
	KindSlot:        "bad output slot",
	KindNullValue:   "null value",
}

func (k Kind) String() string {
	if s, ok := kindNames[k]; ok {
		return s
	}
	return fmt.Sprintf("Kind(%d)", uint8(k))
}

// Exception returns the name of the host exception class that
// corresponds to k.
func (k Kind) Exception() string {
	switch k {
	case KindOverflow:
		return "OverflowError"
	case KindStructure, KindSlot, KindNullValue:
		return "SystemError"
	default:
		return "TypeError"
	}
}

// Error is the error returned by all argfmt entry points.
type Error struct {
	// Kind classifies the error.
	Kind Kind
	// Func is the function name given after ':' in a decode format,
	// if any.
	Func string
	// Pos is the offset in the format string of the directive that
	// failed, or -1 if the failure is not tied to one directive.
	Pos int
	// Msg is the human-readable explanation.
	Msg string
	// Err is the underlying cause, if any.
	Err error
}

func (e *Error) Error() string {
	msg := e.Msg
	if msg == "" && e.Err != nil {
		msg = e.Err.Error()
	}
	if e.Func != "" {
		return fmt.Sprintf("%s() %s", e.Func, msg)
	}
	return msg
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Is reports whether target is the sentinel error for e's kind.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	return ok && t.Msg == "" && t.Err == nil && t.Kind == e.Kind
}

// Sentinel errors for use with errors.Is. They match any [Error] of
// the same [Kind].
var (
	ErrType        = &Error{Kind: KindType, Pos: -1}
	ErrMissing     = &Error{Kind: KindMissing, Pos: -1}
	ErrNegative    = &Error{Kind: KindNegative, Pos: -1}
	ErrOverflow    = &Error{Kind: KindOverflow, Pos: -1}
	ErrUnsupported = &Error{Kind: KindUnsupported, Pos: -1}
	ErrStructure   = &Error{Kind: KindStructure, Pos: -1}
	ErrConverter   = &Error{Kind: KindConverter, Pos: -1}
	ErrArity       = &Error{Kind: KindArity, Pos: -1}
	ErrSlot        = &Error{Kind: KindSlot, Pos: -1}
	ErrNullValue   = &Error{Kind: KindNullValue, Pos: -1}
)

func errorf(kind Kind, pos int, msg string, args ...any) *Error {
	return &Error{
		Kind: kind,
		Pos:  pos,
		Msg:  fmt.Sprintf(msg, args...),
	}
}

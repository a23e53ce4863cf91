package argfmt

import (
	"errors"
	"fmt"
	"testing"
)

func TestErrorIs(t *testing.T) {
	err := fmt.Errorf("calling frob: %w", errorf(KindOverflow, 3, "too big"))
	if !errors.Is(err, ErrOverflow) {
		t.Errorf("errors.Is(%v, ErrOverflow) = false", err)
	}
	if errors.Is(err, ErrType) {
		t.Errorf("errors.Is(%v, ErrType) = true", err)
	}
	// Non-sentinel errors of the same kind do not match each other.
	if errors.Is(errorf(KindType, 0, "a"), errorf(KindType, 0, "b")) {
		t.Error("two distinct type errors matched")
	}
}

func TestErrorString(t *testing.T) {
	tests := []struct {
		err  *Error
		want string
	}{
		{&Error{Kind: KindType, Msg: "bad"}, "bad"},
		{&Error{Kind: KindType, Func: "frob", Msg: "bad"}, "frob() bad"},
		{&Error{Kind: KindConverter, Err: errors.New("inner")}, "inner"},
		{&Error{Kind: KindConverter, Func: "f", Err: errors.New("inner")}, "f() inner"},
	}
	for _, tc := range tests {
		if got := tc.err.Error(); got != tc.want {
			t.Errorf("%#v.Error() = %q, want %q", tc.err, got, tc.want)
		}
	}
}

func TestKindException(t *testing.T) {
	tests := []struct {
		kind Kind
		want string
	}{
		{KindType, "TypeError"},
		{KindMissing, "TypeError"},
		{KindNegative, "TypeError"},
		{KindOverflow, "OverflowError"},
		{KindUnsupported, "TypeError"},
		{KindStructure, "SystemError"},
		{KindArity, "TypeError"},
		{KindSlot, "SystemError"},
		{KindNullValue, "SystemError"},
	}
	for _, tc := range tests {
		if got := tc.kind.Exception(); got != tc.want {
			t.Errorf("%v.Exception() = %q, want %q", tc.kind, got, tc.want)
		}
	}
	if got := Kind(200).String(); got != "Kind(200)" {
		t.Errorf("Kind(200).String() = %q", got)
	}
}

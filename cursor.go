package argfmt

import "errors"

// A Cursor hands out values one at a time, in order. The decoder
// reads output slots from a Cursor and the builder reads input
// values from one.
type Cursor interface {
	// Next returns the next value and advances past it. It returns
	// ErrExhausted when no values remain.
	Next() (any, error)
}

// ErrExhausted is returned by a [Cursor] with no values left.
var ErrExhausted = errors.New("no more values")

// VarArgs is a Cursor over a variadic argument pack, consumed front
// to back.
type VarArgs []any

func (v *VarArgs) Next() (any, error) {
	if len(*v) == 0 {
		return nil, ErrExhausted
	}
	ret := (*v)[0]
	*v = (*v)[1:]
	return ret, nil
}

// SlotArray is a Cursor over a pre-materialized slice of values.
// After a call, Offset is the number of values consumed.
type SlotArray struct {
	Slots  []any
	Offset int
}

func (s *SlotArray) Next() (any, error) {
	if s.Offset >= len(s.Slots) {
		return nil, ErrExhausted
	}
	ret := s.Slots[s.Offset]
	s.Offset++
	return ret, nil
}

// nextSlot reads one value from c, reporting exhaustion against the
// directive at pos.
func nextSlot(c Cursor, pos int, code byte) (any, error) {
	v, err := c.Next()
	if errors.Is(err, ErrExhausted) {
		return nil, &Error{
			Kind: KindSlot,
			Pos:  pos,
			Msg:  "ran out of slots for '" + string(code) + "'",
			Err:  err,
		}
	} else if err != nil {
		return nil, err
	}
	return v, nil
}

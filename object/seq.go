package object

import "iter"

// Tuple is an immutable fixed-length sequence object.
type Tuple struct {
	items []Object
}

// NewTuple returns a tuple holding items. The tuple takes ownership
// of the items slice.
func NewTuple(items ...Object) *Tuple {
	return &Tuple{items}
}

func (*Tuple) Type() *Type { return TupleType }

// Len returns the number of items in t. A nil Tuple is empty.
func (t *Tuple) Len() int {
	if t == nil {
		return 0
	}
	return len(t.items)
}

// Item returns the i-th item of t.
func (t *Tuple) Item(i int) Object { return t.items[i] }

// Items returns the tuple's items. Callers must not modify the
// returned slice.
func (t *Tuple) Items() []Object {
	if t == nil {
		return nil
	}
	return t.items
}

// All iterates over the tuple's items.
func (t *Tuple) All() iter.Seq2[int, Object] {
	return func(yield func(int, Object) bool) {
		for i, v := range t.Items() {
			if !yield(i, v) {
				return
			}
		}
	}
}

// List is a mutable sequence object.
type List struct {
	items []Object
}

// NewList returns a list holding items. The list takes ownership of
// the items slice.
func NewList(items ...Object) *List {
	return &List{items}
}

func (*List) Type() *Type { return ListType }

// Len returns the number of items in l.
func (l *List) Len() int { return len(l.items) }

// Item returns the i-th item of l.
func (l *List) Item(i int) Object { return l.items[i] }

// Items returns the list's items. The returned slice aliases the
// list.
func (l *List) Items() []Object { return l.items }

// Append appends vs to the list.
func (l *List) Append(vs ...Object) { l.items = append(l.items, vs...) }

// AsTuple returns a tuple holding a copy of the list's items.
func (l *List) AsTuple() *Tuple {
	return NewTuple(append([]Object(nil), l.items...)...)
}

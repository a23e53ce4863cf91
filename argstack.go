package argfmt

import (
	"github.com/creachadair/mds/stack"
	"github.com/danderson/argfmt/object"
)

// argFrame is one level of positional arguments: the call's own
// arguments at the bottom, then the items of each tuple being
// decoded by a '(' group.
type argFrame struct {
	items []object.Object
	next  int
}

// argCursor resolves the argument for each directive, positionally
// or by keyword.
type argCursor struct {
	frames  *stack.Stack[*argFrame]
	kwargs  *object.Dict
	kwnames []string
	// kwOnly is set once '$' has been seen.
	kwOnly bool
}

func newArgCursor(args []object.Object, kwargs *object.Dict, kwnames []string) *argCursor {
	ret := &argCursor{
		frames:  stack.New[*argFrame](),
		kwargs:  kwargs,
		kwnames: kwnames,
	}
	ret.frames.Add(&argFrame{items: args})
	return ret
}

// fetch returns the argument for the next directive of the current
// frame and its index in the frame, or false if it was not
// supplied. Every call advances the frame by one, found or not.
func (c *argCursor) fetch() (object.Object, int, bool) {
	f := c.frames.Top()
	idx := f.next
	f.next++
	if (!c.kwOnly || c.frames.Len() > 1) && idx < len(f.items) {
		return f.items[idx], idx, true
	}
	// Only the call's own arguments have keyword names.
	if name := c.keyword(idx); name != "" {
		v, ok := c.kwargs.GetItemString(name)
		return v, idx, ok
	}
	return nil, idx, false
}

// keyword returns the keyword name of argument idx in the current
// frame, or "".
func (c *argCursor) keyword(idx int) string {
	if c.frames.Len() != 1 || idx >= len(c.kwnames) {
		return ""
	}
	return c.kwnames[idx]
}

// enter starts decoding the items of a tuple argument.
func (c *argCursor) enter(items []object.Object) {
	c.frames.Add(&argFrame{items: items})
}

// leave returns to the enclosing frame.
func (c *argCursor) leave() {
	c.frames.Pop()
}

package argfmt

import (
	"github.com/creachadair/mds/stack"
	"github.com/danderson/argfmt/object"
	"go.uber.org/zap"
)

// A BuildConverter implements the O& build directive, turning the
// input that follows it into an object.
type BuildConverter func(v any) (object.Object, error)

// BuildValue builds an object from native Go values according to
// format.
//
// A format with no items builds None, a format with one item builds
// that item, and a format with several items builds a tuple of them.
// Groups build tuples, lists and dicts:
//
//	BuildValue("(iis)", 3, 4, "x")     // (3, 4, 'x')
//	BuildValue("[i,i]", 1, 2)          // [1, 2]
//	BuildValue("{s:i,s:i}", "a", 1, "b", 2) // {'a': 1, 'b': 2}
func BuildValue(format string, in ...any) (object.Object, error) {
	return VBuildValue(format, (*VarArgs)(&in))
}

// VBuildValue is like [BuildValue], but reads its inputs from a
// Cursor.
func VBuildValue(format string, in Cursor) (object.Object, error) {
	f, err := CompileBuild(format)
	if err != nil {
		return nil, err
	}
	b := builder{
		f:      f,
		in:     in,
		frames: stack.New[*container](),
	}
	root := &container{}
	b.frames.Add(root)
	if err := b.run(f.dirs); err != nil {
		return nil, err
	}
	switch len(root.items) {
	case 0:
		return object.None, nil
	case 1:
		return root.items[0], nil
	default:
		return object.NewTuple(root.items...), nil
	}
}

// container is one level of the value being built. code is the
// opening bracket of the group, or 0 for the root.
type container struct {
	code  byte
	items []object.Object
}

// finish builds the object for a closed group.
func (c *container) finish(pos int) (object.Object, error) {
	switch c.code {
	case '[':
		return object.NewList(c.items...), nil
	case '{':
		d, err := object.DictFromPairs(c.items)
		if err != nil {
			return nil, &Error{Kind: KindType, Pos: pos, Msg: err.Error(), Err: err}
		}
		return d, nil
	default:
		return object.NewTuple(c.items...), nil
	}
}

type builder struct {
	f      *Format
	in     Cursor
	frames *stack.Stack[*container]
}

func (b *builder) add(o object.Object) {
	top := b.frames.Top()
	top.items = append(top.items, o)
}

func (b *builder) run(dirs []Directive) error {
	for _, dir := range dirs {
		if dir.IsGroup() {
			b.frames.Add(&container{code: dir.Code})
			if err := b.run(dir.Sub); err != nil {
				return err
			}
			c, _ := b.frames.Pop()
			v, err := c.finish(dir.Pos)
			if err != nil {
				return err
			}
			b.add(v)
			continue
		}

		if !buildAtoms.Has(dir.Code) {
			Logger().Warn("unsupported build directive",
				zap.String("format", b.f.src),
				zap.String("directive", dir.String()),
				zap.Int("pos", dir.Pos))
			continue
		}
		v, err := b.atom(dir)
		if err != nil {
			return err
		}
		b.add(v)
	}
	return nil
}

func (b *builder) next(dir Directive) (any, error) {
	return nextSlot(b.in, dir.Pos, dir.Code)
}

func badInput(dir Directive, v any) error {
	return errorf(KindSlot, dir.Pos, "cannot build '%c' from %T", dir.Code, v)
}

func (b *builder) atom(dir Directive) (object.Object, error) {
	if dir.Code == 'O' && dir.Mod == '&' {
		return b.converted(dir)
	}
	v, err := b.next(dir)
	if err != nil {
		return nil, err
	}

	switch dir.Code {
	case 's', 'z', 'U', 'y':
		return b.text(dir, v)
	case 'b', 'B', 'h', 'H', 'i', 'I', 'l', 'k', 'L', 'K', 'n':
		bits, ok := goIntBits(v)
		if !ok {
			return nil, badInput(dir, v)
		}
		return fromNativeInt(bits, buildInts[dir.Code]), nil
	case 'c':
		bits, ok := goIntBits(v)
		if !ok {
			return nil, badInput(dir, v)
		}
		return object.Bytes{byte(bits)}, nil
	case 'C':
		bits, ok := goIntBits(v)
		if !ok {
			return nil, badInput(dir, v)
		}
		return object.Str(string(rune(bits))), nil
	case 'f', 'd':
		f, ok := fromGoFloat(v)
		if !ok {
			return nil, badInput(dir, v)
		}
		return f, nil
	case 'O', 'S', 'N':
		return b.obj(dir, v)
	}
	return nil, badInput(dir, v)
}

// text builds a str or bytes object, or None for a nil input.
func (b *builder) text(dir Directive, v any) (object.Object, error) {
	text, null, ok := fromGoText(v)
	if !ok {
		return nil, badInput(dir, v)
	}
	if dir.Mod == '#' {
		nv, err := b.next(dir)
		if err != nil {
			return nil, err
		}
		bits, ok := goIntBits(nv)
		if !ok {
			return nil, errorf(KindSlot, dir.Pos, "'%c#' length must be an integer, got %T", dir.Code, nv)
		}
		if n := int(int64(bits)); !null && n >= 0 {
			if n > len(text) {
				return nil, errorf(KindSlot, dir.Pos, "'%c#' length %d exceeds input length %d", dir.Code, n, len(text))
			}
			text = text[:n]
		}
	}
	if null {
		return object.None, nil
	}
	if dir.Code == 'y' {
		return object.Bytes(append([]byte(nil), text...)), nil
	}
	return object.Str(text), nil
}

// obj passes an object input through. A Go error input is the
// failure of the call that should have produced the object, and is
// returned as is.
func (b *builder) obj(dir Directive, v any) (object.Object, error) {
	if err, ok := v.(error); ok {
		return nil, err
	}
	if isNilInput(v) {
		return nil, errorf(KindNullValue, dir.Pos, "NULL object passed to BuildValue")
	}
	o, ok := v.(object.Object)
	if !ok {
		return nil, badInput(dir, v)
	}
	return o, nil
}

func (b *builder) converted(dir Directive) (object.Object, error) {
	cv, err := b.next(dir)
	if err != nil {
		return nil, err
	}
	var conv BuildConverter
	switch c := cv.(type) {
	case BuildConverter:
		conv = c
	case func(any) (object.Object, error):
		conv = c
	}
	if conv == nil {
		return nil, errorf(KindSlot, dir.Pos, "O& needs a BuildConverter, got %T", cv)
	}
	v, err := b.next(dir)
	if err != nil {
		return nil, err
	}
	if isNilInput(v) {
		return nil, errorf(KindNullValue, dir.Pos, "NULL object passed to BuildValue")
	}
	o, err := conv(v)
	if err != nil {
		return nil, converterError(dir, err)
	}
	if o == nil {
		return nil, errorf(KindNullValue, dir.Pos, "converter for 'O&' returned NULL")
	}
	return o, nil
}

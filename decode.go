package argfmt

import (
	"errors"
	"fmt"

	"github.com/danderson/argfmt/object"
)

// A Converter implements the O& decode directive. It converts arg and
// stores the result through out, which is the slot following the
// converter. A converter that fails should return a non-nil error;
// returning false with a nil error is reported as a [KindConverter]
// error.
type Converter func(arg object.Object, out any) (bool, error)

// ParseTupleAndKeywords decodes the positional arguments args and
// keyword arguments kwargs according to format, storing converted
// values through the pointers in out.
//
// kwnames gives the keyword name of each top-level directive, in
// order. An empty name marks a positional-only directive. kwargs and
// kwnames may be nil.
func ParseTupleAndKeywords(args *object.Tuple, kwargs *object.Dict, format string, kwnames []string, out ...any) error {
	return parseArgs(args.Items(), kwargs, format, kwnames, (*VarArgs)(&out))
}

// VParseTupleAndKeywords is like [ParseTupleAndKeywords], but reads
// its output slots from a Cursor.
func VParseTupleAndKeywords(args *object.Tuple, kwargs *object.Dict, format string, kwnames []string, out Cursor) error {
	return parseArgs(args.Items(), kwargs, format, kwnames, out)
}

// ParseTuple decodes positional arguments only.
func ParseTuple(args *object.Tuple, format string, out ...any) error {
	return parseArgs(args.Items(), nil, format, nil, (*VarArgs)(&out))
}

// Parse decodes a single argument, as if it were the only element of
// a positional argument tuple.
func Parse(arg object.Object, format string, out ...any) error {
	return parseArgs([]object.Object{arg}, nil, format, nil, (*VarArgs)(&out))
}

// ParseStack decodes arguments passed as a plain slice, the calling
// convention of fast-call functions.
func ParseStack(args []object.Object, kwargs *object.Dict, format string, kwnames []string, out Cursor) error {
	return parseArgs(args, kwargs, format, kwnames, out)
}

func parseArgs(args []object.Object, kwargs *object.Dict, format string, kwnames []string, out Cursor) error {
	f, err := CompileArgs(format)
	if err != nil {
		return err
	}
	if len(args) > f.maxPositional {
		msg := "takes at most %d arguments (%d given)"
		if f.maxPositional == 1 {
			msg = "takes at most %d argument (%d given)"
		}
		if f.name == "" {
			msg = "function " + msg
		}
		return f.annotate(errorf(KindArity, -1, msg, f.maxPositional, len(args)))
	}

	dec := decoder{
		args: newArgCursor(args, kwargs, kwnames),
		out:  out,
	}
	if err := dec.run(f.dirs); err != nil {
		return f.annotate(err)
	}
	return nil
}

// annotate applies the format's ':' function name or ';' message to
// err. Errors may be shared through the format cache, so annotate
// never modifies err.
func (f *Format) annotate(err error) error {
	var e *Error
	if !errors.As(err, &e) {
		return err
	}
	useMsg := f.message != "" && e.Kind == KindType
	if f.name == "" && !useMsg {
		return err
	}
	ret := *e
	if f.name != "" {
		ret.Func = f.name
	}
	if useMsg {
		ret.Msg = f.message
	}
	return &ret
}

// decoder interprets a decode format against one call's arguments.
type decoder struct {
	args *argCursor
	out  Cursor
	// optional is set once '|' has been seen.
	optional bool
}

func (d *decoder) run(dirs []Directive) error {
	for _, dir := range dirs {
		if err := d.directive(dir); err != nil {
			return err
		}
	}
	return nil
}

func (d *decoder) directive(dir Directive) error {
	switch dir.Code {
	case '|':
		d.optional = true
		return nil
	case '$':
		d.args.kwOnly = true
		return nil
	}
	if err := checkDecodable(dir); err != nil {
		return err
	}

	arg, idx, ok := d.args.fetch()
	if !ok {
		if d.optional {
			return d.skip(dir)
		}
		return d.missing(dir, idx)
	}

	switch dir.Code {
	case '(':
		return d.group(dir, arg)
	case 's', 'z':
		return d.text(dir, arg)
	case 'y':
		return d.bytes(dir, arg)
	case 'S':
		return d.obj(dir, arg, object.BytesType)
	case 'Y':
		return d.obj(dir, arg, object.ByteArrayType)
	case 'U':
		return d.obj(dir, arg, object.StrType)
	case 'b', 'B', 'h', 'H', 'i', 'I', 'l', 'k', 'L', 'K', 'n':
		v, err := toNativeInt(arg, dir.Code, dir.Pos)
		if err != nil {
			return err
		}
		slot, err := d.slot(dir)
		if err != nil {
			return err
		}
		if !storeInt(slot, v) {
			return badSlot(dir, slot)
		}
		return nil
	case 'c':
		return d.char(dir, arg)
	case 'C':
		return d.rune(dir, arg)
	case 'f', 'd':
		return d.float(dir, arg)
	case 'p':
		return d.store(dir, object.IsTrue(arg))
	case 'O':
		switch dir.Mod {
		case '!':
			return d.typedObject(dir, arg)
		case '&':
			return d.converter(dir, arg)
		}
		return d.obj(dir, arg, nil)
	}
	panic(fmt.Sprintf("unhandled decode directive %q", dir.Code))
}

// checkDecodable rejects directives that fail regardless of the
// argument.
func checkDecodable(dir Directive) error {
	switch dir.Code {
	case 'u', 'Z':
		return errorf(KindUnsupported, dir.Pos, "Py_UNICODE argument parsing not supported")
	case 'w':
		return errorf(KindUnsupported, dir.Pos, "'w' format specifier in argument parsing not supported")
	case 'e':
		return errorf(KindUnsupported, dir.Pos, "'e*' format specifiers are not supported")
	case 'D':
		return errorf(KindUnsupported, dir.Pos, "converting complex arguments not implemented, yet")
	case '(':
		return nil
	}
	if !decodeAtoms.Has(dir.Code) {
		return errorf(KindType, dir.Pos, "unrecognized format char in arguments parsing: %c", dir.Code)
	}
	if dir.Mod == '*' {
		return errorf(KindUnsupported, dir.Pos, "%c* not supported", dir.Code)
	}
	return nil
}

// skip consumes the slots of an omitted optional directive.
func (d *decoder) skip(dir Directive) error {
	for range slotCount(dir) {
		if _, err := nextSlot(d.out, dir.Pos, dir.Code); err != nil {
			return err
		}
	}
	return nil
}

func (d *decoder) missing(dir Directive, idx int) error {
	ret := errorf(KindMissing, dir.Pos, "missing required argument (pos %d)", idx+1)
	if name := d.args.keyword(idx); name != "" {
		ret.Msg = fmt.Sprintf("missing required argument '%s' (pos %d)", name, idx+1)
	}
	return ret
}

func (d *decoder) slot(dir Directive) (any, error) {
	return nextSlot(d.out, dir.Pos, dir.Code)
}

func badSlot(dir Directive, slot any) error {
	return errorf(KindSlot, dir.Pos, "cannot store '%c' into %T", dir.Code, slot)
}

// store writes a bool, byte, rune or float64 through the next slot.
func (d *decoder) store(dir Directive, v any) error {
	slot, err := d.slot(dir)
	if err != nil {
		return err
	}
	ok := false
	switch p := slot.(type) {
	case *bool:
		if b, isBool := v.(bool); isBool {
			*p, ok = b, true
		}
	case *byte:
		if b, isByte := v.(byte); isByte {
			*p, ok = b, true
		}
	case *rune:
		if r, isRune := v.(rune); isRune {
			*p, ok = r, true
		}
	case *float64:
		if f, isFloat := v.(float64); isFloat {
			*p, ok = f, true
		}
	case *float32:
		if f, isFloat := v.(float64); isFloat {
			*p, ok = float32(f), true
		}
	}
	if !ok {
		return badSlot(dir, slot)
	}
	return nil
}

func (d *decoder) group(dir Directive, arg object.Object) error {
	t, ok := arg.(*object.Tuple)
	if !ok {
		return errorf(KindType, dir.Pos, "expected tuple, got %s", typeRepr(arg))
	}
	if t.Len() != len(dir.Sub) {
		return errorf(KindType, dir.Pos, "must be sequence of length %d, not %d", len(dir.Sub), t.Len())
	}
	d.args.enter(t.Items())
	defer d.args.leave()
	return d.run(dir.Sub)
}

func (d *decoder) text(dir Directive, arg object.Object) error {
	slot, err := d.slot(dir)
	if err != nil {
		return err
	}
	if arg == object.None {
		if dir.Code != 'z' {
			return errorf(KindType, dir.Pos, "expected str or bytes-like, got None")
		}
		switch p := slot.(type) {
		case *string:
			*p = ""
		case **string:
			*p = nil
		default:
			return badSlot(dir, slot)
		}
		return d.length(dir, 0)
	}

	s, ok := toString(arg)
	if !ok {
		return errorf(KindType, dir.Pos, "expected str or bytes-like, got %s", typeRepr(arg))
	}
	switch p := slot.(type) {
	case *string:
		*p = s
	case **string:
		*p = &s
	default:
		return badSlot(dir, slot)
	}
	return d.length(dir, len(s))
}

func (d *decoder) bytes(dir Directive, arg object.Object) error {
	slot, err := d.slot(dir)
	if err != nil {
		return err
	}
	bs, ok := object.AsBytes(arg)
	if !ok {
		return errorf(KindType, dir.Pos, "expected bytes-like, got %s", typeRepr(arg))
	}
	p, ok := slot.(*[]byte)
	if !ok {
		return badSlot(dir, slot)
	}
	*p = append([]byte{}, bs...)
	return d.length(dir, len(bs))
}

// length fills the length slot of a '#' directive.
func (d *decoder) length(dir Directive, n int) error {
	if dir.Mod != '#' {
		return nil
	}
	slot, err := d.slot(dir)
	if err != nil {
		return err
	}
	if !storeInt(slot, uint64(n)) {
		return badSlot(dir, slot)
	}
	return nil
}

func (d *decoder) char(dir Directive, arg object.Object) error {
	bs, ok := object.AsBytes(arg)
	if !ok {
		return errorf(KindType, dir.Pos, "expected bytes or bytearray, got %s", typeRepr(arg))
	}
	if len(bs) != 1 {
		return errorf(KindType, dir.Pos, "expected bytes or bytearray of length 1, was length %d", len(bs))
	}
	return d.store(dir, bs[0])
}

func (d *decoder) rune(dir Directive, arg object.Object) error {
	s, ok := arg.(object.Str)
	if !ok {
		return errorf(KindType, dir.Pos, "expected str, got %s", typeRepr(arg))
	}
	if n := s.Len(); n != 1 {
		return errorf(KindType, dir.Pos, "expected str of length 1, was length %d", n)
	}
	return d.store(dir, []rune(string(s))[0])
}

func (d *decoder) float(dir Directive, arg object.Object) error {
	f, err := toFloat(arg, dir.Pos)
	if err != nil {
		return err
	}
	return d.store(dir, f)
}

// obj stores arg as an object, after checking it is an instance
// of want, if want is not nil.
func (d *decoder) obj(dir Directive, arg object.Object, want *object.Type) error {
	if want != nil && !object.IsInstance(arg, want) {
		return errorf(KindType, dir.Pos, "expected %s, got %s", want.Name(), typeRepr(arg))
	}
	slot, err := d.slot(dir)
	if err != nil {
		return err
	}
	if !storeObject(slot, arg) {
		return badSlot(dir, slot)
	}
	return nil
}

func (d *decoder) typedObject(dir Directive, arg object.Object) error {
	slot, err := d.slot(dir)
	if err != nil {
		return err
	}
	want, ok := slot.(*object.Type)
	if !ok || want == nil {
		return errorf(KindSlot, dir.Pos, "O! needs a *object.Type, got %T", slot)
	}
	if !object.IsInstance(arg, want) {
		return errorf(KindType, dir.Pos, "expected object of type %s, got %s", object.Repr(want), typeRepr(arg))
	}
	return d.obj(dir, arg, nil)
}

func (d *decoder) converter(dir Directive, arg object.Object) error {
	slot, err := d.slot(dir)
	if err != nil {
		return err
	}
	var conv Converter
	switch c := slot.(type) {
	case Converter:
		conv = c
	case func(object.Object, any) (bool, error):
		conv = c
	}
	if conv == nil {
		return errorf(KindSlot, dir.Pos, "O& needs a Converter, got %T", slot)
	}
	out, err := d.slot(dir)
	if err != nil {
		return err
	}
	ok, err := conv(arg, out)
	if err != nil {
		return converterError(dir, err)
	}
	if !ok {
		return errorf(KindConverter, dir.Pos, "converter function failed to set an error on failure")
	}
	return nil
}

// converterError wraps the failure of a user converter, unless it is
// already an [Error].
func converterError(dir Directive, err error) error {
	var e *Error
	if errors.As(err, &e) {
		return err
	}
	return &Error{Kind: KindConverter, Pos: dir.Pos, Err: err}
}

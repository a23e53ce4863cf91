// Package argfmt converts between objects and native Go values
// according to compact format strings.
//
// The decode direction, [ParseTupleAndKeywords] and its variants,
// takes the positional and keyword arguments of a call, checks and
// converts each one, and stores the results through caller-supplied
// output pointers. The build direction, [BuildValue], does the
// reverse: it assembles tuples, lists and dicts out of native values.
// [UnpackTuple] checks an argument count and copies the arguments
// without converting them.
//
// Both directions read their format left to right, one directive at
// a time. Each directive consumes one argument (when decoding) and
// one or more slots from a [Cursor]: output pointers when decoding,
// input values when building.
//
// Decode formats use the following atoms:
//
//	s  str or bytes-like -> *string
//	z  like s, None is allowed -> *string ("") or **string (nil)
//	y  bytes or bytearray -> *[]byte (copied)
//	S  bytes -> *object.Object
//	Y  bytearray -> *object.Object
//	U  str -> *object.Object
//	b  int -> *uint8, range checked
//	B  int -> *uint8, truncated
//	h  int -> *int16, range checked
//	H  int -> *uint16, truncated
//	i  int -> *int32, range checked
//	I  int -> *uint32, truncated
//	l  int -> *int64, range checked
//	k  int -> *uint64, truncated
//	L  int -> *int64, range checked
//	K  int -> *uint64, truncated
//	n  int -> *int, range checked
//	c  bytes or bytearray of length 1 -> *byte
//	C  str of length 1 -> *rune
//	f  int or float -> *float32
//	d  int or float -> *float64
//	p  any object's truth value -> *bool
//	O  any object -> *object.Object
//
// Unsigned integer directives reject negative values. s, z and y
// accept a '#' modifier, which stores the length in bytes through an
// additional *int slot. O! reads an *object.Type slot and requires
// the argument to be an instance of that type. O& reads a [Converter]
// slot and hands the argument and the following slot to it.
//
// A parenthesized group matches a tuple argument of exactly that many
// elements, and decodes its elements with the group's directives.
// '|' marks the remaining arguments optional: a missing optional
// argument leaves its slots untouched. '$' marks the remaining
// arguments keyword-only. Keyword names come from the kwnames list,
// by position, and only apply to top-level directives.
//
// The format may end with ':' followed by a function name, which
// prefixes every error message, or ';' followed by a message that
// replaces the message of type mismatch errors.
//
// The atoms u, Z, w, e (es, et, es#, et#) and D are recognized but
// not supported, and always fail.
//
// Build formats use the same atoms for the reverse conversions, with
// Go integers of any kind for numeric directives, string, *string or
// []byte for s, z, U and y (nil builds None), and object.Object values
// for O, S and N. Groups build a tuple with '(', a list with '[' and a
// dict with '{'. ':' and ',' separators and whitespace inside groups
// are ignored. A build format with one top-level item returns that
// item; more than one returns a tuple of them, and none returns None.
// Unsupported build atoms are logged and skipped.
//
// All entry points return an [*Error] on failure. Its [Kind] tells
// user errors (a wrong argument) apart from programming errors (a
// malformed format or a bad slot).
package argfmt

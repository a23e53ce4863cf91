package object

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// A Booler reports its own truth value. Instances of user types may
// implement it to take part in [IsTrue].
type Booler interface {
	Bool() bool
}

// IsTrue reports the truth value of o: None, False, zero numbers and
// empty containers are false, everything else is true.
func IsTrue(o Object) bool {
	switch v := o.(type) {
	case nil, none:
		return false
	case Bool:
		return bool(v)
	case *Int:
		return v.Sign() != 0
	case Float:
		return v != 0
	case Str:
		return len(v) > 0
	case Bytes:
		return len(v) > 0
	case *ByteArray:
		return v.Len() > 0
	case *Tuple:
		return v.Len() > 0
	case *List:
		return v.Len() > 0
	case *Dict:
		return v.Len() > 0
	case Booler:
		return v.Bool()
	}
	return true
}

// Repr returns the canonical source-like representation of o.
func Repr(o Object) string {
	var b strings.Builder
	writeRepr(&b, o)
	return b.String()
}

func writeRepr(b *strings.Builder, o Object) {
	switch v := o.(type) {
	case nil:
		b.WriteString("<NULL>")
	case none:
		b.WriteString("None")
	case Bool:
		if v {
			b.WriteString("True")
		} else {
			b.WriteString("False")
		}
	case *Int:
		b.WriteString(v.String())
	case Float:
		b.WriteString(floatRepr(float64(v)))
	case Str:
		b.WriteString(quoteStr(string(v)))
	case Bytes:
		b.WriteString(quoteBytes(v))
	case *ByteArray:
		fmt.Fprintf(b, "bytearray(%s)", quoteBytes(v.b))
	case *Tuple:
		b.WriteByte('(')
		for i, it := range v.items {
			if i > 0 {
				b.WriteString(", ")
			}
			writeRepr(b, it)
		}
		if len(v.items) == 1 {
			b.WriteByte(',')
		}
		b.WriteByte(')')
	case *List:
		b.WriteByte('[')
		for i, it := range v.items {
			if i > 0 {
				b.WriteString(", ")
			}
			writeRepr(b, it)
		}
		b.WriteByte(']')
	case *Dict:
		b.WriteByte('{')
		for i, k := range v.keys {
			if i > 0 {
				b.WriteString(", ")
			}
			writeRepr(b, k)
			b.WriteString(": ")
			writeRepr(b, v.vals[i])
		}
		b.WriteByte('}')
	case *Type:
		fmt.Fprintf(b, "<class '%s'>", v.name)
	default:
		fmt.Fprintf(b, "<%s object>", TypeName(o))
	}
}

func floatRepr(f float64) string {
	switch {
	case math.IsInf(f, 1):
		return "inf"
	case math.IsInf(f, -1):
		return "-inf"
	case math.IsNaN(f):
		return "nan"
	}
	s := strconv.FormatFloat(f, 'g', -1, 64)
	if !strings.ContainsAny(s, ".en") {
		s += ".0"
	}
	return s
}

func quoteStr(s string) string {
	q := byte('\'')
	if strings.ContainsRune(s, '\'') && !strings.ContainsRune(s, '"') {
		q = '"'
	}
	var b strings.Builder
	b.WriteByte(q)
	for _, r := range s {
		switch {
		case r == rune(q) || r == '\\':
			b.WriteByte('\\')
			b.WriteRune(r)
		case r == '\n':
			b.WriteString(`\n`)
		case r == '\t':
			b.WriteString(`\t`)
		case r == '\r':
			b.WriteString(`\r`)
		case r < 0x20 || r == 0x7f:
			fmt.Fprintf(&b, `\x%02x`, r)
		default:
			b.WriteRune(r)
		}
	}
	b.WriteByte(q)
	return b.String()
}

func quoteBytes(bs []byte) string {
	var b strings.Builder
	b.WriteString("b'")
	for _, c := range bs {
		switch {
		case c == '\'' || c == '\\':
			b.WriteByte('\\')
			b.WriteByte(c)
		case c == '\n':
			b.WriteString(`\n`)
		case c == '\t':
			b.WriteString(`\t`)
		case c == '\r':
			b.WriteString(`\r`)
		case c < 0x20 || c >= 0x7f:
			fmt.Fprintf(&b, `\x%02x`, c)
		default:
			b.WriteByte(c)
		}
	}
	b.WriteByte('\'')
	return b.String()
}

package argfmt

import (
	"math"
	"math/big"
	"reflect"

	"github.com/danderson/argfmt/object"
)

// Primitive conversions between objects and native Go values. The
// decoder uses the to* functions, the builder the from* functions.

func typeRepr(o object.Object) string {
	if o == nil {
		return "NULL"
	}
	return object.Repr(o.Type())
}

// toNativeInt converts arg to the native integer of code, returned
// as the two's complement bits of the native value.
func toNativeInt(arg object.Object, code byte, pos int) (uint64, error) {
	spec := decodeInts[code]
	v, ok := object.AsInt(arg)
	if !ok {
		return 0, errorf(KindType, pos, "an integer is required (got type %s)", object.TypeName(arg))
	}
	if !spec.signed && v.Sign() < 0 {
		return 0, errorf(KindNegative, pos, "expected non-negative integer")
	}
	if spec.checked {
		lo, hi := intRange(spec)
		if v.Cmp(hi) > 0 {
			return 0, errorf(KindOverflow, pos, "%s is greater than maximum", spec.desc)
		}
		if v.Cmp(lo) < 0 {
			return 0, errorf(KindOverflow, pos, "%s is less than minimum", spec.desc)
		}
	}
	if v.IsInt64() {
		return uint64(v.Int64()), nil
	}
	// Truncate wide non-negative values to their low 64 bits.
	return new(big.Int).And(v, maxUint64).Uint64(), nil
}

var maxUint64 = new(big.Int).SetUint64(math.MaxUint64)

// intRange returns the inclusive bounds of a native integer.
func intRange(spec intSpec) (lo, hi *big.Int) {
	one := big.NewInt(1)
	if spec.signed {
		hi = new(big.Int).Lsh(one, uint(spec.bits-1))
		lo = new(big.Int).Neg(hi)
		hi.Sub(hi, one)
		return lo, hi
	}
	hi = new(big.Int).Lsh(one, uint(spec.bits))
	return big.NewInt(0), hi.Sub(hi, one)
}

// storeInt writes the low bits of v through an integer pointer.
func storeInt(slot any, v uint64) bool {
	switch p := slot.(type) {
	case *int:
		*p = int(v)
	case *int8:
		*p = int8(v)
	case *int16:
		*p = int16(v)
	case *int32:
		*p = int32(v)
	case *int64:
		*p = int64(v)
	case *uint:
		*p = uint(v)
	case *uint8:
		*p = uint8(v)
	case *uint16:
		*p = uint16(v)
	case *uint32:
		*p = uint32(v)
	case *uint64:
		*p = v
	default:
		return false
	}
	return true
}

// toFloat converts an int or float object to a float64.
func toFloat(arg object.Object, pos int) (float64, error) {
	if f, ok := arg.(object.Float); ok {
		return float64(f), nil
	}
	v, ok := object.AsInt(arg)
	if !ok {
		return 0, errorf(KindType, pos, "must be real number, not %s", object.TypeName(arg))
	}
	f, _ := new(big.Float).SetInt(v).Float64()
	if math.IsInf(f, 0) {
		return 0, errorf(KindOverflow, pos, "int too large to convert to float")
	}
	return f, nil
}

// toString returns the text of a str or bytes-like object.
func toString(arg object.Object) (string, bool) {
	if s, ok := arg.(object.Str); ok {
		return string(s), true
	}
	if bs, ok := object.AsBytes(arg); ok {
		return string(bs), true
	}
	return "", false
}

// storeObject writes o through slot, which must point to a type o is
// assignable to.
func storeObject(slot any, o object.Object) bool {
	if p, ok := slot.(*object.Object); ok {
		if p == nil {
			return false
		}
		*p = o
		return true
	}
	rv := reflect.ValueOf(slot)
	if rv.Kind() != reflect.Pointer || rv.IsNil() {
		return false
	}
	if !reflect.TypeOf(o).AssignableTo(rv.Elem().Type()) {
		return false
	}
	rv.Elem().Set(reflect.ValueOf(o))
	return true
}

// goIntBits returns the two's complement bits of a Go integer of any
// kind.
func goIntBits(v any) (uint64, bool) {
	rv := reflect.ValueOf(v)
	switch {
	case !rv.IsValid():
		return 0, false
	case rv.CanInt():
		return uint64(rv.Int()), true
	case rv.CanUint():
		return rv.Uint(), true
	}
	return 0, false
}

// fromNativeInt reinterprets the low bits of v as the native integer
// described by spec.
func fromNativeInt(v uint64, spec intSpec) object.Object {
	if spec.bits < 64 {
		shift := uint(64 - spec.bits)
		if spec.signed {
			v = uint64(int64(v<<shift) >> shift)
		} else {
			v = v << shift >> shift
		}
	}
	if spec.signed {
		return object.NewInt(int64(v))
	}
	return object.NewUint(v)
}

// fromGoFloat converts a Go float or integer to a float object.
func fromGoFloat(v any) (object.Object, bool) {
	switch f := v.(type) {
	case float64:
		return object.Float(f), true
	case float32:
		return object.Float(f), true
	}
	rv := reflect.ValueOf(v)
	switch {
	case !rv.IsValid():
		return nil, false
	case rv.CanInt():
		return object.Float(rv.Int()), true
	case rv.CanUint():
		return object.Float(rv.Uint()), true
	case rv.CanFloat():
		return object.Float(rv.Float()), true
	}
	return nil, false
}

// fromGoText returns the bytes of a string-ish builder input. A nil
// input, or a nil *string or []byte, reports null.
func fromGoText(v any) (text []byte, null, ok bool) {
	switch s := v.(type) {
	case nil:
		return nil, true, true
	case string:
		return []byte(s), false, true
	case *string:
		if s == nil {
			return nil, true, true
		}
		return []byte(*s), false, true
	case []byte:
		if s == nil {
			return nil, true, true
		}
		return s, false, true
	}
	return nil, false, false
}

// isNilInput reports whether v is nil or a nil pointer, map, slice
// or func. An object is only nil as a nil pointer: a nil Bytes is an
// empty bytes object.
func isNilInput(v any) bool {
	if v == nil {
		return true
	}
	rv := reflect.ValueOf(v)
	if _, ok := v.(object.Object); ok {
		return rv.Kind() == reflect.Pointer && rv.IsNil()
	}
	switch rv.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Slice, reflect.Func, reflect.Interface:
		return rv.IsNil()
	}
	return false
}

package object

import (
	"math"
	"math/big"
	"unicode/utf8"
)

type none struct{}

func (none) Type() *Type { return NoneType }

// None is the singleton "no value" object.
var None Object = none{}

// Bool is a boolean object. Bool is a subtype of int.
type Bool bool

// The two Bool values.
const (
	True  = Bool(true)
	False = Bool(false)
)

func (Bool) Type() *Type { return BoolType }

// Int is an arbitrary precision integer object.
type Int struct {
	v big.Int
}

// NewInt returns an Int holding v.
func NewInt(v int64) *Int {
	ret := &Int{}
	ret.v.SetInt64(v)
	return ret
}

// NewUint returns an Int holding v.
func NewUint(v uint64) *Int {
	ret := &Int{}
	ret.v.SetUint64(v)
	return ret
}

// NewBigInt returns an Int holding a copy of v.
func NewBigInt(v *big.Int) *Int {
	ret := &Int{}
	ret.v.Set(v)
	return ret
}

func (*Int) Type() *Type { return IntType }

// Big returns a copy of the integer's value.
func (i *Int) Big() *big.Int {
	return new(big.Int).Set(&i.v)
}

// Sign returns -1, 0 or +1 depending on the sign of i.
func (i *Int) Sign() int { return i.v.Sign() }

// Int64 returns i as an int64, and whether it fit.
func (i *Int) Int64() (int64, bool) {
	if !i.v.IsInt64() {
		return 0, false
	}
	return i.v.Int64(), true
}

// Uint64 returns i as a uint64, and whether it fit.
func (i *Int) Uint64() (uint64, bool) {
	if !i.v.IsUint64() {
		return 0, false
	}
	return i.v.Uint64(), true
}

func (i *Int) String() string { return i.v.String() }

// Float is a double precision float object.
type Float float64

func (Float) Type() *Type { return FloatType }

// isIntegral reports whether f has no fractional part.
func (f Float) isIntegral() bool {
	v := float64(f)
	return !math.IsInf(v, 0) && !math.IsNaN(v) && v == math.Trunc(v)
}

// Str is an immutable text string object.
type Str string

func (Str) Type() *Type { return StrType }

// Len returns the number of code points in s.
func (s Str) Len() int { return utf8.RuneCountInString(string(s)) }

// Bytes is an immutable byte string object.
type Bytes []byte

func (Bytes) Type() *Type { return BytesType }

// ByteArray is a mutable byte string object.
type ByteArray struct {
	b []byte
}

// NewByteArray returns a ByteArray holding a copy of b.
func NewByteArray(b []byte) *ByteArray {
	return &ByteArray{append([]byte(nil), b...)}
}

func (*ByteArray) Type() *Type { return ByteArrayType }

// Bytes returns the array's current contents. The returned slice
// aliases the array.
func (b *ByteArray) Bytes() []byte { return b.b }

// Len returns the length of the array.
func (b *ByteArray) Len() int { return len(b.b) }

// Append appends bs to the array.
func (b *ByteArray) Append(bs ...byte) { b.b = append(b.b, bs...) }

// AsInt returns o as an integer, if o is an int or bool.
func AsInt(o Object) (*big.Int, bool) {
	switch v := o.(type) {
	case *Int:
		return v.Big(), true
	case Bool:
		if v {
			return big.NewInt(1), true
		}
		return big.NewInt(0), true
	}
	return nil, false
}

// AsBytes returns the contents of a bytes or bytearray object.
func AsBytes(o Object) ([]byte, bool) {
	switch v := o.(type) {
	case Bytes:
		return []byte(v), true
	case *ByteArray:
		return v.b, true
	}
	return nil, false
}

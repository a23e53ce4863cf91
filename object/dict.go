package object

import (
	"fmt"
	"iter"
	"math/big"
	"strconv"
	"strings"
)

// Dict is an insertion-ordered mapping object.
type Dict struct {
	keys  []Object
	vals  []Object
	index map[hashKey]int
}

// hashKey is the Go-comparable identity of a hashable object. Equal
// objects of different types (1, 1.0 and True) share a key.
type hashKey struct {
	kind byte
	s    string
}

// NewDict returns an empty Dict.
func NewDict() *Dict {
	return &Dict{index: map[hashKey]int{}}
}

// DictFromPairs builds a Dict from a flat key, value, key, value...
// sequence. Later duplicates of a key overwrite earlier values.
func DictFromPairs(flat []Object) (*Dict, error) {
	if len(flat)%2 != 0 {
		return nil, fmt.Errorf("odd number of items (%d) for key/value pairs", len(flat))
	}
	ret := NewDict()
	for i := 0; i < len(flat); i += 2 {
		if err := ret.SetItem(flat[i], flat[i+1]); err != nil {
			return nil, err
		}
	}
	return ret, nil
}

func (*Dict) Type() *Type { return DictType }

// Len returns the number of entries in d. A nil Dict is empty.
func (d *Dict) Len() int {
	if d == nil {
		return 0
	}
	return len(d.keys)
}

// SetItem sets d[k] = v. It fails if k is not hashable.
func (d *Dict) SetItem(k, v Object) error {
	hk, err := keyOf(k)
	if err != nil {
		return err
	}
	if i, ok := d.index[hk]; ok {
		d.vals[i] = v
		return nil
	}
	if d.index == nil {
		d.index = map[hashKey]int{}
	}
	d.index[hk] = len(d.keys)
	d.keys = append(d.keys, k)
	d.vals = append(d.vals, v)
	return nil
}

// GetItem returns d[k], and whether it was present.
func (d *Dict) GetItem(k Object) (Object, bool, error) {
	hk, err := keyOf(k)
	if err != nil {
		return nil, false, err
	}
	if d == nil {
		return nil, false, nil
	}
	i, ok := d.index[hk]
	if !ok {
		return nil, false, nil
	}
	return d.vals[i], true, nil
}

// GetItemString returns d[Str(k)], and whether it was present.
func (d *Dict) GetItemString(k string) (Object, bool) {
	if d == nil {
		return nil, false
	}
	i, ok := d.index[hashKey{'s', k}]
	if !ok {
		return nil, false
	}
	return d.vals[i], true
}

// All iterates over d's entries in insertion order.
func (d *Dict) All() iter.Seq2[Object, Object] {
	return func(yield func(Object, Object) bool) {
		if d == nil {
			return
		}
		for i, k := range d.keys {
			if !yield(k, d.vals[i]) {
				return
			}
		}
	}
}

// Hashable reports whether o can be used as a Dict key.
func Hashable(o Object) bool {
	_, err := keyOf(o)
	return err == nil
}

func keyOf(o Object) (hashKey, error) {
	switch v := o.(type) {
	case nil:
		return hashKey{}, fmt.Errorf("NULL is not hashable")
	case none:
		return hashKey{'n', ""}, nil
	case Str:
		return hashKey{'s', string(v)}, nil
	case Bytes:
		return hashKey{'b', string(v)}, nil
	case Bool, *Int:
		i, _ := AsInt(v)
		return hashKey{'i', i.String()}, nil
	case Float:
		if v.isIntegral() {
			i, _ := big.NewFloat(float64(v)).Int(nil)
			return hashKey{'i', i.String()}, nil
		}
		return hashKey{'f', strconv.FormatFloat(float64(v), 'g', -1, 64)}, nil
	case *Tuple:
		var b strings.Builder
		for _, it := range v.items {
			k, err := keyOf(it)
			if err != nil {
				return hashKey{}, err
			}
			fmt.Fprintf(&b, "%c%d:%s", k.kind, len(k.s), k.s)
		}
		return hashKey{'t', b.String()}, nil
	case *Type, *Instance:
		return hashKey{'p', fmt.Sprintf("%p", v)}, nil
	}
	return hashKey{}, fmt.Errorf("unhashable type: '%s'", TypeName(o))
}

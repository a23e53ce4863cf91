package argfmt

import (
	"reflect"

	"github.com/danderson/argfmt/object"
)

// NewSlots allocates a fresh output slot for every slot the decode
// format consumes, suitable for passing to [ParseTupleAndKeywords] or
// wrapping in a [SlotArray].
//
// O! directives get object.ObjectType as their type slot, so they
// accept any object. O& directives have no natural slot and are
// rejected.
func NewSlots(format string) ([]any, error) {
	f, err := CompileArgs(format)
	if err != nil {
		return nil, err
	}
	return appendSlots(nil, f.dirs)
}

func appendSlots(ret []any, dirs []Directive) ([]any, error) {
	for _, d := range dirs {
		switch {
		case d.Code == '|' || d.Code == '$':
			continue
		case d.Code == '(':
			var err error
			ret, err = appendSlots(ret, d.Sub)
			if err != nil {
				return nil, err
			}
			continue
		}
		if err := checkDecodable(d); err != nil {
			return nil, err
		}
		switch d.Mod {
		case '!':
			ret = append(ret, object.ObjectType)
		case '&':
			return nil, errorf(KindSlot, d.Pos, "cannot allocate a slot for O&")
		}
		ret = append(ret, reflect.New(slotTypes[d.Code]).Interface())
		if d.Mod == '#' {
			ret = append(ret, new(int))
		}
	}
	return ret, nil
}

package argfmt

import (
	"errors"
	"reflect"
	"strings"

	"github.com/danderson/argfmt/object"
	"github.com/google/go-cmp/cmp"
)

func ptr[T any](v T) *T {
	return &v
}

// Short constructors for test arguments.
var (
	tup = object.NewTuple
	num = object.NewInt
)

func kw(kvs ...any) *object.Dict {
	ret := object.NewDict()
	for i := 0; i < len(kvs); i += 2 {
		if err := ret.SetItem(object.Str(kvs[i].(string)), kvs[i+1].(object.Object)); err != nil {
			panic(err)
		}
	}
	return ret
}

// objCmp compares objects by their representation, since objects
// carry unexported state.
var objCmp = cmp.Comparer(func(a, b object.Object) bool {
	return object.Repr(a) == object.Repr(b)
})

// derefs returns the values the slots point to.
func derefs(slots []any) []any {
	var ret []any
	for _, s := range slots {
		v := reflect.ValueOf(s)
		if v.Kind() != reflect.Pointer || v.IsNil() {
			ret = append(ret, s)
			continue
		}
		ret = append(ret, v.Elem().Interface())
	}
	return ret
}

func errKind(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return 0
}

// upper is an O& converter that stores the upper-cased text of a str
// argument through a *string.
func upper(arg object.Object, out any) (bool, error) {
	s, ok := arg.(object.Str)
	if !ok {
		return false, errors.New("upper: not a str")
	}
	*out.(*string) = strings.ToUpper(string(s))
	return true, nil
}

package argfmt

import "github.com/danderson/argfmt/object"

// UnpackTuple checks that args has between min and max elements and
// copies them, in order, through out. Pointers in out beyond the
// number of elements are left untouched.
//
// name, if not empty, is the function name used in error messages.
func UnpackTuple(args *object.Tuple, name string, min, max int, out ...*object.Object) error {
	return unpack(args.Items(), name, min, max, out)
}

// UnpackStack is like [UnpackTuple] for arguments passed as a plain
// slice.
func UnpackStack(args []object.Object, name string, min, max int, out ...*object.Object) error {
	return unpack(args, name, min, max, out)
}

func unpack(args []object.Object, name string, min, max int, out []*object.Object) error {
	if min < 0 || min > max {
		return errorf(KindSlot, -1, "invalid unpack bounds [%d, %d]", min, max)
	}
	n := len(args)
	if n < min {
		return arityError(name, "at least ", min, max, min, n)
	}
	if n == 0 {
		return nil
	}
	if n > max {
		return arityError(name, "at most ", min, max, max, n)
	}
	if len(out) < n {
		return errorf(KindSlot, -1, "%d output pointers for %d arguments", len(out), n)
	}
	for i, arg := range args {
		if out[i] == nil {
			return errorf(KindSlot, -1, "output pointer %d is nil", i)
		}
		*out[i] = arg
	}
	return nil
}

func arityError(name, bound string, min, max, want, got int) error {
	if min == max {
		bound = ""
	}
	if name != "" {
		return errorf(KindArity, -1, "%s expected %s%d arguments, got %d", name, bound, want, got)
	}
	return errorf(KindArity, -1, "unpacked tuple should have %s%d elements, but has %d", bound, want, got)
}

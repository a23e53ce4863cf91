package argfmt

import (
	"errors"
	"math"
	"testing"

	"github.com/danderson/argfmt/object"
	"github.com/google/go-cmp/cmp"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestBuildValue(t *testing.T) {
	type testCase struct {
		format  string
		in      []any
		want    string
		wantErr Kind
	}
	ok := func(format, want string, in ...any) testCase {
		return testCase{format, in, want, 0}
	}
	fail := func(format string, kind Kind, in ...any) testCase {
		return testCase{format, in, "", kind}
	}

	double := BuildConverter(func(v any) (object.Object, error) {
		n, isInt := v.(int)
		if !isInt {
			return nil, errors.New("double: not an int")
		}
		return num(int64(2 * n)), nil
	})
	null := func(any) (object.Object, error) { return nil, nil }
	var nilStr *string

	tests := []testCase{
		ok("", "None"),
		ok("i", "7", 7),
		ok("ii", "(1, 2)", 1, 2),
		ok("(iis)", "(3, 4, 'x')", 3, 4, "x"),
		ok("()", "()"),
		ok("(i)", "(1,)", 1),
		ok("[i,[s,s]]", "[1, ['a', 'b']]", 1, "a", "b"),
		ok("[]", "[]"),
		ok("{s:i,s:i}", "{'a': 1, 'b': 2}", "a", 1, "b", 2),
		ok("{(ii):[]}", "{(1, 2): []}", 1, 2),
		ok("O", "b''", object.Bytes(nil)),
		ok("S", "b''", object.Bytes{}),
		ok("N", "b''", object.Bytes(nil)),
		ok("O&", "b''", func(v any) (object.Object, error) { return v.(object.Object), nil }, object.Bytes(nil)),
		ok(" ( i , ( s ) ) ", "(1, ('x',))", 1, "x"),

		ok("b", "-1", -1),
		ok("h", "-300", int16(-300)),
		ok("i", "-2147483648", int32(math.MinInt32)),
		ok("B", "255", uint8(255)),
		ok("B", "4294967295", -1),
		ok("H", "65535", uint16(math.MaxUint16)),
		ok("I", "4294967295", uint32(math.MaxUint32)),
		ok("l", "-9223372036854775808", int64(math.MinInt64)),
		ok("L", "9223372036854775807", int64(math.MaxInt64)),
		ok("k", "18446744073709551615", uint64(math.MaxUint64)),
		ok("K", "18446744073709551615", uint64(math.MaxUint64)),
		ok("n", "42", 42),
		ok("c", "b'x'", byte('x')),
		ok("C", "'é'", 'é'),
		ok("f", "1.5", float32(1.5)),
		ok("d", "2.0", 2),
		ok("d", "0.25", object.Float(0.25)),

		ok("s", "'héllo'", "héllo"),
		ok("s", "None", nil),
		ok("s#", "'hel'", "hello", 3),
		ok("s#", "'abc'", "abc", -1),
		ok("s#", "None", nil, 3),
		ok("z", "None", nilStr),
		ok("z", "'zz'", ptr("zz")),
		ok("U", "'u'", []byte("u")),
		ok("y", "b'ab'", []byte("ab")),
		ok("y", "b'str'", "str"),
		ok("y#", "b'ab'", "abc", 2),

		ok("O", "None", object.None),
		ok("S", "b'x'", object.Bytes("x")),
		ok("N", "[1]", object.NewList(num(1))),
		ok("(OO)", "(True, 1.5)", object.True, object.Float(1.5)),
		ok("O&", "10", double, 5),
		ok("O&", "6", func(v any) (object.Object, error) { return num(int64(v.(int) * 3)), nil }, 2),

		fail("O", KindNullValue, nil),
		fail("O", KindNullValue, (*object.Tuple)(nil)),
		fail("N", KindNullValue, (*object.Dict)(nil)),
		fail("O", KindSlot, 1),
		fail("i", KindSlot, "x"),
		fail("i", KindSlot),
		fail("ii", KindSlot, 1),
		fail("f", KindSlot, "1.5"),
		fail("s", KindSlot, 1),
		fail("s#", KindSlot, "ab"),
		fail("s#", KindSlot, "ab", "2"),
		fail("s#", KindSlot, "ab", 5),
		fail("{s}", KindType, "a"),
		fail("{Oi}", KindType, object.NewList(), 1),
		fail("(i", KindStructure, 1),
		fail("i)", KindStructure, 1),
		fail("i:i", KindStructure, 1, 2),
		fail("O&", KindSlot, "nope", 1),
		fail("O&", KindConverter, double, "x"),
		fail("O&", KindNullValue, double, nil),
		fail("O&", KindNullValue, null, 1),
	}

	for _, tc := range tests {
		got, err := BuildValue(tc.format, tc.in...)
		if tc.wantErr != 0 {
			if k := errKind(err); k != tc.wantErr {
				t.Errorf("BuildValue(%q, %v) err = %v (%v), want %v", tc.format, tc.in, err, k, tc.wantErr)
			} else if testing.Verbose() {
				t.Logf("BuildValue(%q, %v) = err: %v", tc.format, tc.in, err)
			}
			continue
		}
		if err != nil {
			t.Errorf("BuildValue(%q, %v) got err: %v", tc.format, tc.in, err)
			continue
		}
		if r := object.Repr(got); r != tc.want {
			t.Errorf("BuildValue(%q, %v) = %s, want %s", tc.format, tc.in, r, tc.want)
		}
	}
}

func TestBuildUnwrap(t *testing.T) {
	got, err := BuildValue("i", 7)
	if err != nil {
		t.Fatal(err)
	}
	n, isInt := got.(*object.Int)
	if !isInt {
		t.Fatalf("BuildValue(i) = %T, want *object.Int", got)
	}
	if v, _ := n.Int64(); v != 7 {
		t.Errorf("BuildValue(i) = %d, want 7", v)
	}

	got, err = BuildValue("")
	if err != nil {
		t.Fatal(err)
	}
	if got != object.None {
		t.Errorf("BuildValue(\"\") = %s, want None", object.Repr(got))
	}

	// A single group is unwrapped too: the result is the group's
	// tuple, not a tuple containing it.
	got, err = BuildValue("(ii)", 1, 2)
	if err != nil {
		t.Fatal(err)
	}
	if tup, isTuple := got.(*object.Tuple); !isTuple || tup.Len() != 2 {
		t.Errorf("BuildValue((ii)) = %s, want a 2-tuple", object.Repr(got))
	}
}

func TestBuildPropagatesError(t *testing.T) {
	sentinel := errors.New("allocation failed")
	_, err := BuildValue("(iO)", 1, sentinel)
	if !errors.Is(err, sentinel) {
		t.Errorf("BuildValue with error input = %v, want %v", err, sentinel)
	}
}

func TestBuildUnsupportedLogs(t *testing.T) {
	core, logs := observer.New(zapcore.WarnLevel)
	old := Logger()
	SetLogger(zap.New(core))
	defer SetLogger(old)

	got, err := BuildValue("iui", 1, 2)
	if err != nil {
		t.Fatalf("BuildValue(iui) got err: %v", err)
	}
	if r := object.Repr(got); r != "(1, 2)" {
		t.Errorf("BuildValue(iui) = %s, want (1, 2)", r)
	}

	entries := logs.FilterMessage("unsupported build directive").All()
	if len(entries) != 1 {
		t.Fatalf("got %d warnings, want 1", len(entries))
	}
	fields := entries[0].ContextMap()
	want := map[string]any{
		"format":    "iui",
		"directive": "u",
		"pos":       int64(1),
	}
	if diff := cmp.Diff(fields, want); diff != "" {
		t.Errorf("warning fields (-got+want):\n%s", diff)
	}
}

func TestBuildCursor(t *testing.T) {
	in := &SlotArray{Slots: []any{1, "a", 2, "unused"}}
	got, err := VBuildValue("[is]i", in)
	if err != nil {
		t.Fatal(err)
	}
	if r := object.Repr(got); r != "([1, 'a'], 2)" {
		t.Errorf("VBuildValue = %s", r)
	}
	if in.Offset != 3 {
		t.Errorf("inputs consumed = %d, want 3", in.Offset)
	}
}

func TestRoundTrip(t *testing.T) {
	built, err := BuildValue("((ii)s)y#d", 1, 2, "x", "zzz", 2, 0.5)
	if err != nil {
		t.Fatalf("BuildValue got err: %v", err)
	}
	args, isTuple := built.(*object.Tuple)
	if !isTuple {
		t.Fatalf("BuildValue = %s, want a tuple", object.Repr(built))
	}

	slots, err := NewSlots("((ii)s)y#d")
	if err != nil {
		t.Fatal(err)
	}
	if err := ParseTuple(args, "((ii)s)y#d", slots...); err != nil {
		t.Fatalf("ParseTuple got err: %v", err)
	}
	want := []any{int32(1), int32(2), "x", []byte("zz"), 2, 0.5}
	if diff := cmp.Diff(derefs(slots), want); diff != "" {
		t.Errorf("round trip (-got+want):\n%s", diff)
	}
}

func TestRoundTripEmptyBytes(t *testing.T) {
	var (
		y []byte
		s object.Object
	)
	if err := ParseTuple(tup(object.Bytes(nil), object.Bytes(nil)), "yS", &y, &s); err != nil {
		t.Fatalf("ParseTuple got err: %v", err)
	}
	if y == nil {
		t.Error("y of b'' decoded to a nil slice")
	}
	got, err := BuildValue("yS", y, s)
	if err != nil {
		t.Fatalf("BuildValue got err: %v", err)
	}
	if r := object.Repr(got); r != "(b'', b'')" {
		t.Errorf("BuildValue = %s, want (b'', b'')", r)
	}
}

func TestSetLoggerNil(t *testing.T) {
	old := Logger()
	defer SetLogger(old)

	SetLogger(nil)
	if Logger() == nil {
		t.Fatal("Logger() = nil after SetLogger(nil)")
	}
	if _, err := BuildValue("u"); err != nil {
		t.Errorf("BuildValue(u) got err: %v", err)
	}
}

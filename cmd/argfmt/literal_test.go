package main

import (
	"strings"
	"testing"

	"github.com/danderson/argfmt/object"
	"github.com/google/go-cmp/cmp"
)

func reprs(os []object.Object) []string {
	var ret []string
	for _, o := range os {
		ret = append(ret, object.Repr(o))
	}
	return ret
}

func TestParseObjects(t *testing.T) {
	tests := []struct {
		in   string
		want []string
	}{
		{`[]`, nil},
		{`[1, -2, 2.5, "x", null, true]`, []string{"1", "-2", "2.5", "'x'", "None", "True"}},
		{`[18446744073709551615]`, []string{"18446744073709551615"}},
		{`[[1, [2]], []]`, []string{"(1, (2,))", "()"}},
		{`["b'abc'", "ba'xy'"]`, []string{"b'abc'", "bytearray(b'xy')"}},
		{`[{b: 2, a: 1}]`, []string{"{'a': 1, 'b': 2}"}},
	}

	for _, tc := range tests {
		got, err := parseObjects(tc.in)
		if err != nil {
			t.Errorf("parseObjects(%q) got err: %v", tc.in, err)
			continue
		}
		if diff := cmp.Diff(reprs(got), tc.want); diff != "" {
			t.Errorf("parseObjects(%q) wrong result (-got+want):\n%s", tc.in, diff)
		}
	}

	for _, bad := range []string{`{a: 1}`, `[1`} {
		if got, err := parseObjects(bad); err == nil {
			t.Errorf("parseObjects(%q) = %v, want error", bad, reprs(got))
		}
	}
}

func TestParseKwargs(t *testing.T) {
	d, err := parseKwargs(`{z: 1, a: [2, 3]}`)
	if err != nil {
		t.Fatalf("parseKwargs: %v", err)
	}
	var got []string
	for k, v := range d.All() {
		got = append(got, object.Repr(k)+"="+object.Repr(v))
	}
	want := []string{"'z'=1", "'a'=(2, 3)"}
	if diff := cmp.Diff(got, want); diff != "" {
		t.Errorf("parseKwargs wrong result (-got+want):\n%s", diff)
	}

	if d, err := parseKwargs(""); err != nil || d != nil {
		t.Errorf(`parseKwargs("") = %v, %v, want nil, nil`, d, err)
	}
	if _, err := parseKwargs(`{1: 2}`); err == nil {
		t.Error("parseKwargs with non-string key succeeded")
	}
}

func TestParseInputs(t *testing.T) {
	got, err := parseInputs(`[1, 2.5, "s", "b'raw'", null, [1, 2]]`)
	if err != nil {
		t.Fatalf("parseInputs: %v", err)
	}
	if len(got) != 6 {
		t.Fatalf("parseInputs returned %d values, want 6", len(got))
	}
	if v, ok := got[0].(int); !ok || v != 1 {
		t.Errorf("got[0] = %#v, want int 1", got[0])
	}
	if v, ok := got[1].(float64); !ok || v != 2.5 {
		t.Errorf("got[1] = %#v, want float64 2.5", got[1])
	}
	if v, ok := got[2].(string); !ok || v != "s" {
		t.Errorf("got[2] = %#v, want string s", got[2])
	}
	if v, ok := got[3].([]byte); !ok || string(v) != "raw" {
		t.Errorf("got[3] = %#v, want []byte raw", got[3])
	}
	if got[4] != nil {
		t.Errorf("got[4] = %#v, want nil", got[4])
	}
	if v, ok := got[5].(object.Object); !ok || object.Repr(v) != "(1, 2)" {
		t.Errorf("got[5] = %#v, want tuple (1, 2)", got[5])
	}
}

func TestIndenter(t *testing.T) {
	var sb strings.Builder
	out := indenter{w: &sb}
	out.f("top")
	out.indent(1)
	out.f("a\nb")
	out.indent(2)
	out.Write([]byte("par"))
	out.Write([]byte("tial\n"))
	want := "top\n  a\n  b\n    partial\n"
	if got := sb.String(); got != want {
		t.Errorf("indenter wrote %q, want %q", got, want)
	}
}

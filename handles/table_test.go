package handles

import (
	"testing"

	"github.com/danderson/argfmt/object"
)

func TestTableSingletons(t *testing.T) {
	tbl := NewTable(0, nil)
	tests := []struct {
		o    object.Object
		want Handle
	}{
		{object.None, NoneHandle},
		{object.True, TrueHandle},
		{object.False, FalseHandle},
	}
	for _, tc := range tests {
		h := tbl.New(tc.o)
		if h != tc.want {
			t.Errorf("New(%s) = %v, want %v", object.Repr(tc.o), h, tc.want)
		}
		tbl.Close(h)
		tbl.Drain()
		if got, ok := tbl.Get(h); !ok || got != tc.o {
			t.Errorf("Get(%v) after Close = %v, %v", h, got, ok)
		}
	}
	if tbl.Live() != 0 {
		t.Errorf("Live() = %d, want 0", tbl.Live())
	}
}

func TestTableDeferredRelease(t *testing.T) {
	tbl := NewTable(2, nil)
	a := tbl.New(object.Str("a"))
	b := tbl.New(object.Str("b"))
	c := tbl.New(object.Str("c"))
	if a == b || b == c || a < firstDynamic {
		t.Fatalf("New handed out %v, %v, %v", a, b, c)
	}

	tbl.Close(a)
	tbl.Close(a)
	if tbl.Pending() != 1 {
		t.Errorf("Pending() after double Close = %d, want 1", tbl.Pending())
	}
	// Closed handles resolve until the batch flushes.
	if got, ok := tbl.Get(a); !ok || got != object.Str("a") {
		t.Errorf("Get(closed a) = %v, %v", got, ok)
	}
	// Slots are not reused before release.
	d := tbl.New(object.Str("d"))
	if d == a {
		t.Errorf("New reused pending handle %v", a)
	}

	tbl.Close(b)
	tbl.Close(c) // batch full: a and b are released, c is queued
	if _, ok := tbl.Get(a); ok {
		t.Error("a still live after flush")
	}
	if _, ok := tbl.Get(c); !ok {
		t.Error("c released before flush")
	}
	if tbl.Live() != 2 {
		t.Errorf("Live() = %d, want 2", tbl.Live())
	}

	e := tbl.New(object.Str("e"))
	if e != a && e != b {
		t.Errorf("New = %v, want a reused handle (%v or %v)", e, a, b)
	}

	tbl.Close(d)
	tbl.Close(e)
	tbl.Drain()
	if tbl.Live() != 0 || tbl.Pending() != 0 {
		t.Errorf("after Drain: Live() = %d, Pending() = %d", tbl.Live(), tbl.Pending())
	}

	tbl.Close(Handle(9999))
	if tbl.Pending() != 0 {
		t.Error("Close of unknown handle was queued")
	}
}

package handles

import (
	"fmt"
	"sync"

	"github.com/creachadair/mds/mapset"
	"github.com/danderson/argfmt/object"
	"go.uber.org/zap"
)

// A Handle identifies an object registered in a Table.
type Handle uint64

// The singletons have fixed handles that are never released.
const (
	NoneHandle Handle = iota
	TrueHandle
	FalseHandle

	firstDynamic
)

func (h Handle) String() string {
	return fmt.Sprintf("h%d", uint64(h))
}

// A Table maps handles to objects. Closing a handle does not free it
// immediately: closed handles are collected in a [Batch] and their
// slots become reusable when the batch flushes.
//
// A Table is safe for concurrent use.
type Table struct {
	batch *Batch[Handle]

	mu      sync.Mutex
	objs    map[Handle]object.Object
	closing mapset.Set[Handle]
	free    []Handle
	next    Handle
}

// NewTable returns an empty table whose release batch holds
// batchSize handles. batchSize 0 selects [DefaultBatchSize].
func NewTable(batchSize int, log *zap.Logger) *Table {
	ret := &Table{
		objs: map[Handle]object.Object{
			NoneHandle:  object.None,
			TrueHandle:  object.True,
			FalseHandle: object.False,
		},
		closing: mapset.New[Handle](),
		next:    firstDynamic,
	}
	ret.batch = NewBatch(batchSize, ret.release, log)
	return ret
}

// New registers o and returns its handle.
func (t *Table) New(o object.Object) Handle {
	switch o {
	case object.None:
		return NoneHandle
	case object.True:
		return TrueHandle
	case object.False:
		return FalseHandle
	}

	t.mu.Lock()
	defer t.mu.Unlock()
	var h Handle
	if n := len(t.free); n > 0 {
		h, t.free = t.free[n-1], t.free[:n-1]
	} else {
		h = t.next
		t.next++
	}
	t.objs[h] = o
	return h
}

// Get returns the object for h. Handles that are closed but not yet
// released still resolve.
func (t *Table) Get(h Handle) (object.Object, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	o, ok := t.objs[h]
	return o, ok
}

// Close schedules h for release. Closing a singleton handle, an
// unknown handle or an already closed handle does nothing.
func (t *Table) Close(h Handle) {
	if h < firstDynamic {
		return
	}
	t.mu.Lock()
	_, live := t.objs[h]
	ok := live && !t.closing.Has(h)
	if ok {
		t.closing.Add(h)
	}
	t.mu.Unlock()

	// The batch may flush, which takes t.mu.
	if ok {
		t.batch.Add(h)
	}
}

// Drain releases every closed handle now.
func (t *Table) Drain() {
	t.batch.Drain()
}

// Pending returns the number of closed handles awaiting release.
func (t *Table) Pending() int {
	return t.batch.Len()
}

// Live returns the number of registered objects, excluding the
// singletons.
func (t *Table) Live() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.objs) - int(firstDynamic)
}

func (t *Table) release(hs []Handle) {
	t.mu.Lock()
	defer t.mu.Unlock()
	for _, h := range hs {
		delete(t.objs, h)
		t.closing.Remove(h)
		t.free = append(t.free, h)
	}
}

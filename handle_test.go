package gosmt

import (
	"runtime"
	"testing"
)

func TestNodeCacheEvictsOnFinalizer(t *testing.T) {
	b := NewBuilder()

	var oldptr uintptr
	func() {
		s1 := b.Sym("s1", 32)
		s2 := b.Sym("s2", 32)
		if _, err := b.Add(s1, s2); err != nil {
			t.Fatal(err)
		}

		again := b.Sym("s1", 32)
		if s1.rawPtr() != again.rawPtr() {
			t.Fatal("repeated lookups of the same symbol should share one node")
		}
		oldptr = s1.rawPtr()
	}()

	runtime.GC()
	runtime.GC()

	for i := 0; i < 64; i++ {
		b.BVVal(int64(i), 32)
	}

	runtime.GC()
	runtime.GC()

	s1 := b.Sym("s1", 32)
	if s1.rawPtr() == oldptr {
		t.Error("evicted node should have been rebuilt at a new address")
	}
}

func TestNodeCacheStats(t *testing.T) {
	b := NewBuilder()

	b.Sym("a", 32)
	b.Sym("a", 32)
	b.Sym("b", 32)

	if b.cache.Stats.CacheLookups != 3 {
		t.Errorf("CacheLookups = %d, want 3", b.cache.Stats.CacheLookups)
	}
	if b.cache.Stats.CacheHits != 1 {
		t.Errorf("CacheHits = %d, want 1", b.cache.Stats.CacheHits)
	}
}

func TestStructuralMatchDistinguishesConstSize(t *testing.T) {
	b := NewBuilder()

	a := b.BV(MakeBVConst(1, 8))
	bb := b.BV(MakeBVConst(1, 16))
	if a.rawPtr() == bb.rawPtr() {
		t.Error("constants with the same value but different widths must not collapse")
	}
}

func TestUpdateNodePtrHandlesNilTail(t *testing.T) {
	if updateNodePtr(nil) != 0 {
		t.Error("updateNodePtr(nil) should be zero")
	}

	u := mkUpdateNode(nil, mkSym("idx", 8), mkSym("val", 8))
	if updateNodePtr(u) != u.rawPtr() {
		t.Error("updateNodePtr should match the node's own rawPtr for a non-nil node")
	}
}

package gosmt

import (
	"testing"

	"github.com/aclements/go-z3/z3"
)

func TestUpdateNodeDepthTracksChainLength(t *testing.T) {
	b := NewBuilder()

	var head *UpdateNode
	for i := 0; i < 5; i++ {
		head = b.Update(head, b.BVVal(int64(i), 8), b.BVVal(int64(i*2), 8))
	}
	if head.depth() != 5 {
		t.Errorf("depth() = %d, want 5", head.depth())
	}
}

func TestArrayUpdateChainThreadsEveryWrite(t *testing.T) {
	tr := NewTranslator()
	b := NewBuilder()
	arr := MakeArray("mem", 8, 8)

	var head *UpdateNode
	writes := []struct{ idx, val int64 }{
		{0, 0x10}, {1, 0x20}, {2, 0x30}, {3, 0x40},
	}
	for _, w := range writes {
		head = b.Update(head, b.BVVal(w.idx, 8), b.BVVal(w.val, 8))
	}

	for _, w := range writes {
		read := b.Read(arr, head, b.BVVal(w.idx, 8))
		eq := mustEq(t, b, read, b.BVVal(w.val, 8))
		if !checkSat(t, tr, tr.Construct(eq).(z3.Bool)) {
			t.Errorf("write at index %d did not survive a longer update chain", w.idx)
		}
	}
}

func TestArrayReadOfUnwrittenIndexIsUnconstrained(t *testing.T) {
	tr := NewTranslator()
	b := NewBuilder()
	arr := MakeArray("mem", 8, 8)

	head := b.Update(nil, b.BVVal(0, 8), b.BVVal(0xAA, 8))
	read := b.Read(arr, head, b.BVVal(1, 8))

	isWrittenValue := mustEq(t, b, read, b.BVVal(0xAA, 8))
	isSomethingElse := mustEq(t, b, read, b.BVVal(0xBB, 8))

	if !checkSat(t, tr, tr.Construct(isWrittenValue).(z3.Bool)) {
		t.Error("an untouched index should be free to equal the written value")
	}
	if !checkSat(t, tr, tr.Construct(isSomethingElse).(z3.Bool)) {
		t.Error("an untouched index should be free to equal any other value")
	}
}

func TestConstantArrayWithUpdateLayeredOnTop(t *testing.T) {
	tr := NewTranslator()
	b := NewBuilder()

	values := []*BVConst{MakeBVConst(1, 8), MakeBVConst(2, 8), MakeBVConst(3, 8)}
	arr, err := MakeConstantArray("rodata", 32, values)
	if err != nil {
		t.Fatal(err)
	}

	head := b.Update(nil, b.BVVal(1, 32), b.BVVal(0x99, 8))

	// The overwritten index sees the write, not the original constant.
	overwritten := b.Read(arr, head, b.BVVal(1, 32))
	eqOverwritten := mustEq(t, b, overwritten, b.BVVal(0x99, 8))
	if !checkSat(t, tr, tr.Construct(eqOverwritten).(z3.Bool)) {
		t.Error("a write on top of a constant array should shadow its initial value")
	}

	// An index never touched by the update chain still sees the
	// original constant value underneath it.
	untouched := b.Read(arr, head, b.BVVal(2, 32))
	eqUntouched := mustEq(t, b, untouched, b.BVVal(3, 8))
	if !checkSat(t, tr, tr.Construct(eqUntouched).(z3.Bool)) {
		t.Error("an index untouched by the update chain should still see the constant array's initial value")
	}
}

func TestMakeArrayDomainAndRangeWidths(t *testing.T) {
	arr := MakeArray("sym", 16, 32)
	if arr.Domain != 16 || arr.Range != 32 {
		t.Errorf("got Domain=%d Range=%d, want Domain=16 Range=32", arr.Domain, arr.Range)
	}
	if arr.IsConstant() {
		t.Error("a freshly made symbolic array must not report itself as constant")
	}
}

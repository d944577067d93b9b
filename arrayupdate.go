package gosmt

import (
	"fmt"

	"github.com/aclements/go-z3/z3"
)

// arrayUpdateTranslator owns the two caches §4.4 names: one from an
// Array descriptor's identity to its freshly-minted solver array
// constant (after folding in any constant initial values), and one
// from an update-node's identity to the store-chain AST up to and
// including that write. Grounded on original_source/lib/Solver/
// Z3Builder.cpp's getInitialArray/getArrayForUpdate/getArrayForRead,
// translated into the teacher's map[uintptr]... cache idiom.
type arrayUpdateTranslator struct {
	ctx  *z3.Context
	sf   *sortFactory
	prim *primitives

	arrayHash      map[uintptr]z3.Array
	updateNodeHash map[uintptr]z3.Array

	constructScalar func(e expr) z3.Value
}

func newArrayUpdateTranslator(ctx *z3.Context, sf *sortFactory, prim *primitives, constructScalar func(e expr) z3.Value) *arrayUpdateTranslator {
	return &arrayUpdateTranslator{
		ctx:             ctx,
		sf:              sf,
		prim:            prim,
		arrayHash:       make(map[uintptr]z3.Array),
		updateNodeHash:  make(map[uintptr]z3.Array),
		constructScalar: constructScalar,
	}
}

// mintArrayName concatenates the first 32-len(counter) characters of
// root.Name with a decimal counter equal to the cache's current size,
// guaranteeing uniqueness across every array this translator has ever
// minted, per §4.4.
func (a *arrayUpdateTranslator) mintArrayName(root *Array) string {
	counter := fmt.Sprintf("%d", len(a.arrayHash))
	maxNameLen := 32 - len(counter)
	name := root.Name
	if len(name) > maxNameLen {
		name = name[:maxNameLen]
	}
	return name + counter
}

// initialArray returns the solver array constant for root, minting
// and (for a constant array) store-chain-initialising it on first
// use.
func (a *arrayUpdateTranslator) initialArray(root *Array) z3.Array {
	key := root.rawPtr()
	if arr, ok := a.arrayHash[key]; ok {
		return arr
	}
	if root.IsConstant() && root.Size == 0 {
		panic(newConstructError("constant array %q has size 0", root.Name))
	}

	sort := a.sf.Array(root.Domain, root.Range)
	arr := a.ctx.Const(a.mintArrayName(root), sort).(z3.Array)

	if root.IsConstant() {
		for i, v := range root.Values {
			idx := a.prim.bvConstU64(root.Domain, uint64(i))
			val := a.prim.BVConst(v)
			arr = a.prim.Write(arr, idx, val)
		}
	}

	a.arrayHash[key] = arr
	return arr
}

// arrayForUpdate walks the update chain from head back to the root,
// materialising store(store(...store(initial, i0, v0)..., in, vn))
// and memoising every intermediate chain position by that node's own
// identity so a later read against a shorter prefix of the same chain
// hits the cache too.
func (a *arrayUpdateTranslator) arrayForUpdate(root *Array, head *UpdateNode) z3.Array {
	if head == nil {
		return a.initialArray(root)
	}
	key := head.rawPtr()
	if arr, ok := a.updateNodeHash[key]; ok {
		return arr
	}

	tail := a.arrayForUpdate(root, head.Tail)
	index := a.prim.asBV1(a.constructScalar(head.Index))
	value := a.constructScalar(head.Value)
	arr := a.prim.Write(tail, index, value)

	a.updateNodeHash[key] = arr
	return arr
}

// Read translates a read against an update chain: per §4.5,
// read(array_for_update(root, head), construct(index)).
func (a *arrayUpdateTranslator) Read(root *Array, head *UpdateNode, index z3.Value) z3.Value {
	arr := a.arrayForUpdate(root, head)
	return a.prim.Read(arr, a.prim.asBV1(index))
}

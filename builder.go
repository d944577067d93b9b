package gosmt

import "fmt"

// Builder constructs IR trees through a single NodeCache, so equal
// subtrees always collapse to one Handle. Unlike the teacher's
// ExprBuilder, it performs no algebraic simplification or constant
// folding beyond that hash-consing — no flattening, no opposite-
// cancellation, no identity-element elision. Those roughly a
// thousand lines of expr_builder.go's peephole rewriting are a
// front-end's job (or, per UDiv/URem by a constant power of two, the
// translator's own peephole strength reduction — see translator.go);
// a Builder here only ever builds exactly the node its caller asked
// for.
type Builder struct {
	cache *NodeCache
}

func NewBuilder() *Builder {
	return &Builder{cache: NewNodeCache()}
}

func (b *Builder) make(e expr) *Handle { return b.cache.GetOrCreate(e) }

func unwrap(h *Handle) expr { return h.e }

func unwrapAll(hs []*Handle) []expr {
	out := make([]expr, len(hs))
	for i, h := range hs {
		out[i] = h.e
	}
	return out
}

/*
 * Leaves.
 */

func (b *Builder) Sym(name string, w uint) *Handle { return b.make(mkSym(name, w)) }

func (b *Builder) BV(v *BVConst) *Handle { return b.make(mkBVConstExpr(v)) }

func (b *Builder) BVVal(value int64, size uint) *Handle {
	return b.make(mkBVConstExpr(MakeBVConst(value, size)))
}

func (b *Builder) FConstH(v *FConst) *Handle { return b.make(mkFConstExpr(v)) }

func (b *Builder) BoolVal(v bool) *Handle {
	if v {
		return b.make(mkBoolConstExpr(BoolTrue()))
	}
	return b.make(mkBoolConstExpr(BoolFalse()))
}

func (b *Builder) NotOptimized(h *Handle) *Handle {
	return b.make(mkNotOptimized(unwrap(h)))
}

/*
 * Arrays.
 */

func (b *Builder) Read(root *Array, head *UpdateNode, index *Handle) *Handle {
	return b.make(mkRead(root, head, unwrap(index)))
}

func (b *Builder) Update(tail *UpdateNode, index, value *Handle) *UpdateNode {
	return mkUpdateNode(tail, unwrap(index), unwrap(value))
}

/*
 * Select / Concat / Extract / widening casts.
 */

func (b *Builder) Select(cond, t, f *Handle) (*Handle, error) {
	if t.Width() != f.Width() {
		return nil, fmt.Errorf("gosmt: select branches have different widths %d and %d", t.Width(), f.Width())
	}
	return b.make(mkSelect(unwrap(cond), unwrap(t), unwrap(f))), nil
}

func (b *Builder) Concat(children ...*Handle) (*Handle, error) {
	e, err := mkConcat(unwrapAll(children))
	if err != nil {
		return nil, err
	}
	return b.make(e), nil
}

func (b *Builder) Extract(h *Handle, hi, lo uint) (*Handle, error) {
	e, err := mkExtract(unwrap(h), hi, lo)
	if err != nil {
		return nil, err
	}
	return b.make(e), nil
}

func (b *Builder) ZExt(h *Handle, n uint) *Handle {
	return b.make(mkCast(KindZExt, unwrap(h), n, 0, RNE))
}

func (b *Builder) SExt(h *Handle, n uint) *Handle {
	return b.make(mkCast(KindSExt, unwrap(h), n, 0, RNE))
}

/*
 * FP/BV boundary casts.
 */

func (b *Builder) FExt(h *Handle, dstWidth uint, rm RoundingMode) *Handle {
	return b.make(mkCast(KindFExt, unwrap(h), 0, dstWidth, rm))
}

func (b *Builder) FToU(h *Handle, dstWidth uint, rm RoundingMode) *Handle {
	return b.make(mkCast(KindFToU, unwrap(h), 0, dstWidth, rm))
}

func (b *Builder) FToS(h *Handle, dstWidth uint, rm RoundingMode) *Handle {
	return b.make(mkCast(KindFToS, unwrap(h), 0, dstWidth, rm))
}

func (b *Builder) UToF(h *Handle, dstWidth uint, rm RoundingMode) *Handle {
	return b.make(mkCast(KindUToF, unwrap(h), 0, dstWidth, rm))
}

func (b *Builder) SToF(h *Handle, dstWidth uint, rm RoundingMode) *Handle {
	return b.make(mkCast(KindSToF, unwrap(h), 0, dstWidth, rm))
}

func (b *Builder) ExplicitFloat(h *Handle, dstWidth uint) *Handle {
	return b.make(mkCast(KindExplicitFloat, unwrap(h), 0, dstWidth, RNE))
}

func (b *Builder) ExplicitInt(h *Handle, dstWidth uint) *Handle {
	return b.make(mkCast(KindExplicitInt, unwrap(h), 0, dstWidth, RNE))
}

/*
 * Bitwise / arithmetic.
 */

func (b *Builder) Not(h *Handle) *Handle {
	e, _ := mkNary(KindNot, []expr{unwrap(h)}, "~")
	return b.make(e)
}

func (b *Builder) Neg(h *Handle) *Handle {
	e, _ := mkNary(KindNeg, []expr{unwrap(h)}, "-")
	return b.make(e)
}

func (b *Builder) And(children ...*Handle) (*Handle, error) {
	e, err := mkNary(KindAnd, unwrapAll(children), "&")
	if err != nil {
		return nil, err
	}
	return b.make(e), nil
}

func (b *Builder) Or(children ...*Handle) (*Handle, error) {
	e, err := mkNary(KindOr, unwrapAll(children), "|")
	if err != nil {
		return nil, err
	}
	return b.make(e), nil
}

func (b *Builder) Xor(children ...*Handle) (*Handle, error) {
	e, err := mkNary(KindXor, unwrapAll(children), "^")
	if err != nil {
		return nil, err
	}
	return b.make(e), nil
}

func (b *Builder) Add(children ...*Handle) (*Handle, error) {
	e, err := mkNary(KindAdd, unwrapAll(children), "+")
	if err != nil {
		return nil, err
	}
	return b.make(e), nil
}

func (b *Builder) Mul(children ...*Handle) (*Handle, error) {
	e, err := mkNary(KindMul, unwrapAll(children), "*")
	if err != nil {
		return nil, err
	}
	return b.make(e), nil
}

func (b *Builder) binOp(k int, lhs, rhs *Handle, symbol string) (*Handle, error) {
	e, err := mkBin(k, unwrap(lhs), unwrap(rhs), symbol)
	if err != nil {
		return nil, err
	}
	return b.make(e), nil
}

func (b *Builder) UDiv(lhs, rhs *Handle) (*Handle, error) { return b.binOp(KindUDiv, lhs, rhs, "u/") }
func (b *Builder) SDiv(lhs, rhs *Handle) (*Handle, error) { return b.binOp(KindSDiv, lhs, rhs, "s/") }
func (b *Builder) URem(lhs, rhs *Handle) (*Handle, error) { return b.binOp(KindURem, lhs, rhs, "u%") }
func (b *Builder) SRem(lhs, rhs *Handle) (*Handle, error) { return b.binOp(KindSRem, lhs, rhs, "s%") }
func (b *Builder) Shl(lhs, rhs *Handle) (*Handle, error)  { return b.binOp(KindShl, lhs, rhs, "<<") }
func (b *Builder) LShr(lhs, rhs *Handle) (*Handle, error) { return b.binOp(KindLShr, lhs, rhs, "l>>") }
func (b *Builder) AShr(lhs, rhs *Handle) (*Handle, error) { return b.binOp(KindAShr, lhs, rhs, "a>>") }

func (b *Builder) Eq(lhs, rhs *Handle) (*Handle, error)  { return b.binOp(KindEq, lhs, rhs, "==") }
func (b *Builder) Ult(lhs, rhs *Handle) (*Handle, error) { return b.binOp(KindUlt, lhs, rhs, "u<") }
func (b *Builder) Ule(lhs, rhs *Handle) (*Handle, error) { return b.binOp(KindUle, lhs, rhs, "u<=") }
func (b *Builder) Slt(lhs, rhs *Handle) (*Handle, error) { return b.binOp(KindSlt, lhs, rhs, "s<") }
func (b *Builder) Sle(lhs, rhs *Handle) (*Handle, error) { return b.binOp(KindSle, lhs, rhs, "s<=") }

/*
 * Floating point.
 */

func (b *Builder) fBinOp(k int, lhs, rhs *Handle, rm RoundingMode) *Handle {
	return b.make(mkFBin(k, unwrap(lhs), unwrap(rhs), rm))
}

func (b *Builder) FAdd(lhs, rhs *Handle, rm RoundingMode) *Handle { return b.fBinOp(KindFAdd, lhs, rhs, rm) }
func (b *Builder) FSub(lhs, rhs *Handle, rm RoundingMode) *Handle { return b.fBinOp(KindFSub, lhs, rhs, rm) }
func (b *Builder) FMul(lhs, rhs *Handle, rm RoundingMode) *Handle { return b.fBinOp(KindFMul, lhs, rhs, rm) }
func (b *Builder) FDiv(lhs, rhs *Handle, rm RoundingMode) *Handle { return b.fBinOp(KindFDiv, lhs, rhs, rm) }
func (b *Builder) FRem(lhs, rhs *Handle) *Handle                  { return b.fBinOp(KindFRem, lhs, rhs, RNE) }

func (b *Builder) FMin(lhs, rhs *Handle) *Handle { return b.fBinOp(KindFMin, lhs, rhs, RNE) }
func (b *Builder) FMax(lhs, rhs *Handle) *Handle { return b.fBinOp(KindFMax, lhs, rhs, RNE) }

func (b *Builder) FSqrt(h *Handle, rm RoundingMode) *Handle {
	return b.make(mkFUn(KindFSqrt, unwrap(h), rm))
}

func (b *Builder) FNearbyInt(h *Handle, rm RoundingMode) *Handle {
	return b.make(mkFUn(KindFNearbyInt, unwrap(h), rm))
}

func (b *Builder) FAbs(h *Handle) *Handle {
	return b.make(mkFUn(KindFAbs, unwrap(h), RNE))
}

func (b *Builder) FpClassify(h *Handle) *Handle { return b.make(mkFClassify(KindFpClassify, unwrap(h))) }
func (b *Builder) FIsFinite(h *Handle) *Handle  { return b.make(mkFClassify(KindFIsFinite, unwrap(h))) }
func (b *Builder) FIsNan(h *Handle) *Handle     { return b.make(mkFClassify(KindFIsNan, unwrap(h))) }
func (b *Builder) FIsInf(h *Handle) *Handle     { return b.make(mkFClassify(KindFIsInf, unwrap(h))) }

func (b *Builder) fCmp(k int, lhs, rhs *Handle) *Handle {
	return b.make(mkFCmp(k, unwrap(lhs), unwrap(rhs)))
}

func (b *Builder) FOeq(lhs, rhs *Handle) *Handle { return b.fCmp(KindFOeq, lhs, rhs) }
func (b *Builder) FOne(lhs, rhs *Handle) *Handle { return b.fCmp(KindFOne, lhs, rhs) }
func (b *Builder) FOlt(lhs, rhs *Handle) *Handle { return b.fCmp(KindFOlt, lhs, rhs) }
func (b *Builder) FOle(lhs, rhs *Handle) *Handle { return b.fCmp(KindFOle, lhs, rhs) }
func (b *Builder) FOgt(lhs, rhs *Handle) *Handle { return b.fCmp(KindFOgt, lhs, rhs) }
func (b *Builder) FOge(lhs, rhs *Handle) *Handle { return b.fCmp(KindFOge, lhs, rhs) }
func (b *Builder) FUeq(lhs, rhs *Handle) *Handle { return b.fCmp(KindFUeq, lhs, rhs) }
func (b *Builder) FUne(lhs, rhs *Handle) *Handle { return b.fCmp(KindFUne, lhs, rhs) }
func (b *Builder) FUlt(lhs, rhs *Handle) *Handle { return b.fCmp(KindFUlt, lhs, rhs) }
func (b *Builder) FUle(lhs, rhs *Handle) *Handle { return b.fCmp(KindFUle, lhs, rhs) }
func (b *Builder) FUgt(lhs, rhs *Handle) *Handle { return b.fCmp(KindFUgt, lhs, rhs) }
func (b *Builder) FUge(lhs, rhs *Handle) *Handle { return b.fCmp(KindFUge, lhs, rhs) }
func (b *Builder) FOrd(lhs, rhs *Handle) *Handle { return b.fCmp(KindFOrd, lhs, rhs) }
func (b *Builder) FUno(lhs, rhs *Handle) *Handle { return b.fCmp(KindFUno, lhs, rhs) }

/*
 * Boolean connectives.
 */

func (b *Builder) BoolNot(h *Handle) *Handle { return b.make(mkBoolNot(unwrap(h))) }

func (b *Builder) BoolAnd(children ...*Handle) (*Handle, error) {
	e, err := mkBoolNary(KindBoolAnd, unwrapAll(children))
	if err != nil {
		return nil, err
	}
	return b.make(e), nil
}

func (b *Builder) BoolOr(children ...*Handle) (*Handle, error) {
	e, err := mkBoolNary(KindBoolOr, unwrapAll(children))
	if err != nil {
		return nil, err
	}
	return b.make(e), nil
}

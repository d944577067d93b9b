package gosmt

import (
	"github.com/aclements/go-z3/z3"
)

// f80ShimSymbolName is the literal name given to every F80 shim
// array. Every 80-bit value in a query shares this one symbol name on
// purpose (structural sharing), so distinct F80 values are
// distinguished only by their stored contents, not by identity — see
// SPEC_FULL.md's recorded Open Question decision.
const f80ShimSymbolName = "[F80, unnormal]"

// f80Value holds the two slots KLEE's Z3Builder::Fl80 shim represents an
// x87 extended value with: slot0 is the 79-bit reinterpretation (sign,
// 15-bit exponent, 64-bit significand where the top bit stands in for
// the format's explicit integer bit), slot1 is a sentinel — fp_zero
// means the source bit pattern was legal, fp_nan means it was
// unnormal (hidden bit disagreeing with the exponent's zero/nonzero
// status).
type f80Value struct {
	slot0 z3.Float
	slot1 z3.Float
}

type f80Shim struct {
	ctx  *z3.Context
	sf   *sortFactory
	prim *primitives
}

func newF80Shim(ctx *z3.Context, sf *sortFactory, prim *primitives) *f80Shim {
	return &f80Shim{ctx: ctx, sf: sf, prim: prim}
}

func (f *f80Shim) legalSentinel() z3.Float { return f.prim.FPZero(f.sf.F80Slot0(), true) }
func (f *f80Shim) unnormalSentinel() z3.Float { return f.prim.FPNaN(f.sf.F80Slot0()) }

// wrap packs a slot0/slot1 pair into the array-of-two-elements AST
// the shim actually stores, index 0 holding slot0 and index 1 slot1.
func (f *f80Shim) wrap(v f80Value) z3.Array {
	arr := f.ctx.Const(f80ShimSymbolName, f.sf.F80Array()).(z3.Array)
	arr = f.prim.Write(arr, f.prim.BVZero(1), v.slot0)
	arr = f.prim.Write(arr, f.prim.BVOne(1), v.slot1)
	return arr
}

// unwrap reads slot0/slot1 back out of a translated F80 array value.
func (f *f80Shim) unwrap(v z3.Value) f80Value {
	arr := v.(z3.Array)
	slot0 := f.prim.Read(arr, f.prim.BVZero(1)).(z3.Float)
	slot1 := f.prim.Read(arr, f.prim.BVOne(1)).(z3.Float)
	return f80Value{slot0: slot0, slot1: slot1}
}

func (f *f80Shim) wrongHiddenBit(v f80Value) z3.Bool { return f.prim.IsNaN(v.slot1) }

// fromBits splits a raw 80-bit FConst pattern into the shim's two
// slots per §4.5's FConstantExpr contract: sign | exp(15) | hidden(1)
// | frac(63), correctHiddenBit = (exp == 0) iff (hidden == 0), slot0
// := fp_fp(sign, exp, frac), slot1 := legal if correct else NaN.
func (f *f80Shim) fromBits(c *FConst) z3.Array {
	sign := c.SignBit()
	exp := c.ExponentBits()
	hidden := c.HiddenBit()
	frac := c.FractionBits()

	signBV := f.prim.bvConstU64(1, uint64(sign))
	expBV := f.prim.ctx.FromBigInt(exp, f.sf.BV(15)).(z3.BV)
	fracBV := f.prim.ctx.FromBigInt(frac, f.sf.BV(63)).(z3.BV)

	slot0 := f.ctx.FloatFromBits(signBV, expBV, fracBV)

	correct := (exp.Sign() == 0) == (hidden == 0)
	var slot1 z3.Float
	if correct {
		slot1 = f.legalSentinel()
	} else {
		slot1 = f.unnormalSentinel()
	}
	return f.wrap(f80Value{slot0: slot0, slot1: slot1})
}

// explicitFloat80 implements ExplicitFloat's 80-bit path: bit-cast an
// 80-bit-wide bitvector into the shim, splitting sign | exp(15) |
// hidden(1) | frac(63) the same way fromBits does for a literal
// constant.
func (f *f80Shim) explicitFloat80(src z3.BV) z3.Array {
	sign := f.prim.Extract(src, 79, 79)
	exp := f.prim.Extract(src, 78, 64)
	hidden := f.prim.Extract(src, 63, 63)
	frac := f.prim.Extract(src, 62, 0)

	slot0 := f.ctx.FloatFromBits(sign, exp, frac)

	expZero := exp.Eq(f.prim.BVZero(15))
	hiddenZero := hidden.Eq(f.prim.BVZero(1))
	correct := expZero.Eq(hiddenZero)
	slot1 := correct.IfThenElse(f.legalSentinel(), f.unnormalSentinel()).(z3.Float)
	return f.wrap(f80Value{slot0: slot0, slot1: slot1})
}

// explicitInt80 implements ExplicitInt's 80-bit path: splice the
// format's explicit hidden bit back in, derived from redor(exponent)
// rather than consulted from slot1 (invariant S8 — ExplicitInt never
// looks at the sentinel).
func (f *f80Shim) explicitInt80(v f80Value) z3.BV {
	bits := v.slot0.ToIEEEBV()
	sign := f.prim.Extract(bits, 78, 78)
	exp := f.prim.Extract(bits, 77, 63)
	frac := f.prim.Extract(bits, 62, 0)
	hidden := f.prim.asBV1(f.prim.RedOr(exp))
	return f.prim.Concat(sign, exp, hidden, frac)
}

// fpArith applies a 32/64-width FP binary op's F80 variant: read
// slot0 of each operand, force NaN if either was unnormal, otherwise
// perform the op; the result is always rewrapped with a legal sentinel.
func (f *f80Shim) fpArith(lhs, rhs z3.Array, op func(a, b z3.Float) z3.Float) z3.Array {
	lv := f.unwrap(lhs)
	rv := f.unwrap(rhs)
	wrong := f.wrongHiddenBit(lv).Or(f.wrongHiddenBit(rv))
	result := wrong.IfThenElse(f.unnormalSentinel(), op(lv.slot0, rv.slot0)).(z3.Float)
	return f.wrap(f80Value{slot0: result, slot1: f.legalSentinel()})
}

// abs replaces slot0 with its absolute value and preserves slot1
// untouched — fabs does not observe the hidden bit (recorded Open
// Question decision: kept asymmetric with fMinMax on purpose).
func (f *f80Shim) abs(v z3.Array) z3.Array {
	val := f.unwrap(v)
	return f.wrap(f80Value{slot0: val.slot0.Abs(), slot1: val.slot1})
}

// minMax implements the F80 FMin/FMax rule: if exactly one operand is
// unnormal return the other; if both are, return the left one; else
// delegate to the solver's fp_min/fp_max and rewrap legal.
func (f *f80Shim) minMax(lhs, rhs z3.Array, isMax bool) z3.Array {
	lv := f.unwrap(lhs)
	rv := f.unwrap(rhs)
	lWrong := f.wrongHiddenBit(lv)
	rWrong := f.wrongHiddenBit(rv)

	var direct z3.Float
	if isMax {
		direct = lv.slot0.Max(rv.slot0)
	} else {
		direct = lv.slot0.Min(rv.slot0)
	}

	bothWrong := lWrong.And(rWrong)
	onlyLeftWrong := lWrong.And(rWrong.Not())
	onlyRightWrong := rWrong.And(lWrong.Not())

	result := bothWrong.IfThenElse(lv.slot0,
		onlyLeftWrong.IfThenElse(rv.slot0,
			onlyRightWrong.IfThenElse(lv.slot0, direct))).(z3.Float)
	return f.wrap(f80Value{slot0: result, slot1: f.legalSentinel()})
}

// classify evaluates FpClassify's ite chain against slot0 only; the
// sentinel is ignored on purpose (matches observed front-end
// behaviour, S6).
func (f *f80Shim) classify(v z3.Array) z3.BV {
	return fpClassifyChain(f.prim, f.unwrap(v).slot0)
}

func (f *f80Shim) isFinite(v z3.Array) z3.BV {
	slot0 := f.unwrap(v).slot0
	isFinite := slot0.IsNaN().Or(slot0.IsInfinite()).Not()
	return f.prim.ZeroExtend(f.prim.asBV1(isFinite), 31)
}

func (f *f80Shim) isNan(v z3.Array) z3.BV {
	return f.prim.ZeroExtend(f.prim.asBV1(f.unwrap(v).slot0.IsNaN()), 31)
}

// isInf returns +1/-1/0 per §4.5; slot1 being NaN forces 0 regardless
// of slot0.
func (f *f80Shim) isInf(v z3.Array) z3.BV {
	val := f.unwrap(v)
	wrong := f.wrongHiddenBit(val)
	isInf := val.slot0.IsInfinite()
	isNeg := val.slot0.IsNegative()
	one := f.prim.bvSExtConstU64(32, 1)
	minusOne := f.prim.bvSExtConstU64(32, ^uint64(0))
	zero := f.prim.BVZero(32)
	signed := isNeg.IfThenElse(minusOne, one).(z3.BV)
	result := isInf.IfThenElse(signed, zero).(z3.BV)
	return wrong.IfThenElse(zero, result).(z3.BV)
}

// cmp implements the F80 comparison rule: ordered predicates become
// and(not wrongHiddenBit, op); unordered become the same with the
// unordered form of op; FUne/FOne invert the sense, treating an
// unnormal operand as making the comparison true. FOrd/FUno are not
// folded into that rule: they read slot0 alone and act like a plain
// isNaN check, not caring whether the operand is an unnormal.
func (f *f80Shim) cmp(lhs, rhs z3.Array, kind int) z3.Bool {
	lv := f.unwrap(lhs)
	rv := f.unwrap(rhs)

	switch kind {
	case KindFOrd:
		return f.prim.BoolAnd(lv.slot0.IsNaN().Not(), rv.slot0.IsNaN().Not())
	case KindFUno:
		return f.prim.BoolOr(lv.slot0.IsNaN(), rv.slot0.IsNaN())
	}

	wrong := f.wrongHiddenBit(lv).Or(f.wrongHiddenBit(rv))

	switch kind {
	case KindFUne:
		notEq := lv.slot0.IEEEEq(rv.slot0).Not().Or(lv.slot0.IsNaN()).Or(rv.slot0.IsNaN())
		return wrong.Or(notEq)
	case KindFOne:
		notEq := f.prim.BoolAnd(lv.slot0.IsNaN().Not(), rv.slot0.IsNaN().Not(), lv.slot0.IEEEEq(rv.slot0).Not())
		return wrong.Or(notEq)
	}

	ordered := fpOrderedCompare(f.prim, kind, lv.slot0, rv.slot0)
	if isUnorderedFPKind(kind) {
		unordered := lv.slot0.IsNaN().Or(rv.slot0.IsNaN()).Or(ordered)
		return wrong.Not().And(unordered)
	}
	return wrong.Not().And(ordered)
}

package gosmt

import (
	"math/big"

	"github.com/aclements/go-z3/z3"
)

// primitives wraps a context and sort factory with the small,
// non-recursive term constructors §4.3 names: booleans, bitvector
// constants and operators, shifts, and the FP predicates/roundingmode
// constants. translator.go's construct() calls these instead of
// touching the z3 API directly, the same division z3backend.go's
// convert() would have had if the teacher had split it up.
type primitives struct {
	ctx *z3.Context
	sf  *sortFactory
}

func newPrimitives(ctx *z3.Context, sf *sortFactory) *primitives {
	return &primitives{ctx: ctx, sf: sf}
}

/*
 * Boolean.
 */

func (p *primitives) True() z3.Bool  { return p.ctx.FromBool(true) }
func (p *primitives) False() z3.Bool { return p.ctx.FromBool(false) }

func (p *primitives) BoolNot(a z3.Bool) z3.Bool { return a.Not() }

func (p *primitives) BoolAnd(children ...z3.Bool) z3.Bool {
	res := children[0]
	for _, c := range children[1:] {
		res = res.And(c)
	}
	return res
}

func (p *primitives) BoolOr(children ...z3.Bool) z3.Bool {
	res := children[0]
	for _, c := range children[1:] {
		res = res.Or(c)
	}
	return res
}

// Iff requires both arguments to already be Boolean-sorted; callers
// coerce with asBool first, mirroring the "must assert both args are
// Boolean sort" contract.
func (p *primitives) Iff(a, b z3.Bool) z3.Bool { return a.Eq(b) }

func (p *primitives) Ite(cond z3.Bool, t, f z3.Value) z3.Value { return cond.IfThenElse(t, f) }

/*
 * Boolean/BV(1) coercion. A width-1 value reaches the translator
 * either Boolean-sorted (comparisons, Bool* nodes, one-bit extracts,
 * width-1 constants) or as a one-bit vector (width-1 symbols and array
 * reads); these two helpers convert between the two sorts wherever an
 * operator needs one of them specifically.
 */

func (p *primitives) asBV1(v z3.Value) z3.BV {
	if bv, ok := v.(z3.BV); ok {
		return bv
	}
	b := v.(z3.Bool)
	return b.IfThenElse(p.BVOne(1), p.BVZero(1)).(z3.BV)
}

func (p *primitives) asBool(v z3.Value) z3.Bool {
	if b, ok := v.(z3.Bool); ok {
		return b
	}
	bv := v.(z3.BV)
	return bv.Eq(p.BVOne(1))
}

/*
 * Bit-vector constants.
 */

func (p *primitives) BVZero(w uint) z3.BV {
	return p.ctx.FromBigInt(big.NewInt(0), p.sf.BV(w)).(z3.BV)
}

func (p *primitives) BVOne(w uint) z3.BV {
	return p.ctx.FromBigInt(big.NewInt(1), p.sf.BV(w)).(z3.BV)
}

func (p *primitives) BVAllOnes(w uint) z3.BV {
	mask := new(big.Int).Lsh(bigOne, w)
	mask.Sub(mask, bigOne)
	return p.ctx.FromBigInt(mask, p.sf.BV(w)).(z3.BV)
}

func (p *primitives) BVMinusOne(w uint) z3.BV { return p.BVAllOnes(w) }

// BVConst builds an exact-width constant directly from a BVConst's
// full-precision value: no chunking needed since Value() already
// carries the whole magnitude regardless of width.
func (p *primitives) BVConst(c *BVConst) z3.BV {
	return p.ctx.FromBigInt(c.Value(), p.sf.BV(c.Size)).(z3.BV)
}

// bvConstU64 packs a native uint64 payload into a width-w constant by
// zero-extension, composing 64-bit chunks by concatenation for w > 64
// per §4.3 rather than relying on a BVConst's own arbitrary width.
func (p *primitives) bvConstU64(w uint, v uint64) z3.BV {
	if w <= 64 {
		return p.ctx.FromBigInt(new(big.Int).SetUint64(v), p.sf.BV(w)).(z3.BV)
	}
	low := p.ctx.FromBigInt(new(big.Int).SetUint64(v), p.sf.BV(64)).(z3.BV)
	high := p.BVZero(w - 64)
	return high.Concat(low)
}

// bvSExtConstU64 is bvConstU64's sign-extending sibling: the high
// chunk saturates to all-ones when the payload's top bit is set,
// all-zeros otherwise (invariant #9).
func (p *primitives) bvSExtConstU64(w uint, v uint64) z3.BV {
	if w <= 64 {
		return p.ctx.FromBigInt(new(big.Int).SetUint64(v), p.sf.BV(w)).(z3.BV)
	}
	low := p.ctx.FromBigInt(new(big.Int).SetUint64(v), p.sf.BV(64)).(z3.BV)
	var high z3.BV
	if v>>63 == 1 {
		high = p.BVAllOnes(w - 64)
	} else {
		high = p.BVZero(w - 64)
	}
	return high.Concat(low)
}

/*
 * Bit-vector arithmetic/bitwise/comparison. Add/Mul/UDiv/SDiv/
 * URem/SRem reject width 1 (§4.3's "uncanonicalized" contract);
 * And/Or/Xor/Not are routed to the Boolean primitives above by the
 * translator whenever the operand width is 1, so these BV variants
 * never see width 1 either.
 */

func requireNotWidth1(op string, w uint) {
	if w == 1 {
		panic(newConstructError("%s is uncanonicalized at width 1", op))
	}
}

func (p *primitives) Add(lhs z3.BV, rest ...z3.BV) z3.BV {
	requireNotWidth1("bv_add", uint(lhs.Sort().BVSize()))
	res := lhs
	for _, c := range rest {
		res = res.Add(c)
	}
	return res
}

func (p *primitives) Mul(lhs z3.BV, rest ...z3.BV) z3.BV {
	requireNotWidth1("bv_mul", uint(lhs.Sort().BVSize()))
	res := lhs
	for _, c := range rest {
		res = res.Mul(c)
	}
	return res
}

func (p *primitives) UDiv(lhs, rhs z3.BV) z3.BV {
	requireNotWidth1("bv_udiv", uint(lhs.Sort().BVSize()))
	return lhs.UDiv(rhs)
}

func (p *primitives) SDiv(lhs, rhs z3.BV) z3.BV {
	requireNotWidth1("bv_sdiv", uint(lhs.Sort().BVSize()))
	return lhs.SDiv(rhs)
}

func (p *primitives) URem(lhs, rhs z3.BV) z3.BV {
	requireNotWidth1("bv_urem", uint(lhs.Sort().BVSize()))
	return lhs.URem(rhs)
}

func (p *primitives) SRem(lhs, rhs z3.BV) z3.BV {
	requireNotWidth1("bv_srem", uint(lhs.Sort().BVSize()))
	return lhs.SRem(rhs)
}

func (p *primitives) Not(a z3.BV) z3.BV { return a.Not() }
func (p *primitives) Neg(a z3.BV) z3.BV { return a.Neg() }
func (p *primitives) And(lhs z3.BV, rest ...z3.BV) z3.BV {
	res := lhs
	for _, c := range rest {
		res = res.And(c)
	}
	return res
}
func (p *primitives) Or(lhs z3.BV, rest ...z3.BV) z3.BV {
	res := lhs
	for _, c := range rest {
		res = res.Or(c)
	}
	return res
}
func (p *primitives) Xor(lhs z3.BV, rest ...z3.BV) z3.BV {
	res := lhs
	for _, c := range rest {
		res = res.Xor(c)
	}
	return res
}

func (p *primitives) Extract(v z3.BV, hi, lo uint) z3.BV { return v.Extract(int(hi), int(lo)) }

func (p *primitives) Concat(children ...z3.BV) z3.BV {
	res := children[0]
	for _, c := range children[1:] {
		res = res.Concat(c)
	}
	return res
}

func (p *primitives) SignExtend(v z3.BV, delta uint) z3.BV { return v.SignExtend(int(delta)) }
func (p *primitives) ZeroExtend(v z3.BV, delta uint) z3.BV { return v.ZeroExtend(int(delta)) }

func (p *primitives) Ult(lhs, rhs z3.BV) z3.Bool { return lhs.ULT(rhs) }
func (p *primitives) Ule(lhs, rhs z3.BV) z3.Bool { return lhs.ULE(rhs) }
func (p *primitives) Slt(lhs, rhs z3.BV) z3.Bool { return lhs.SLT(rhs) }
func (p *primitives) Sle(lhs, rhs z3.BV) z3.Bool { return lhs.SLE(rhs) }

func (p *primitives) RedOr(v z3.BV) z3.Bool {
	return v.Eq(p.BVZero(uint(v.Sort().BVSize()))).Not()
}

/*
 * Constant-amount shifts (§4.3): identity at 0, zero past the width,
 * otherwise a concat of a zero/all-ones/extract chunk.
 */

func (p *primitives) ShlConst(v z3.BV, w, shift uint) z3.BV {
	if shift == 0 {
		return v
	}
	if shift >= w {
		return p.BVZero(w)
	}
	return p.Concat(p.Extract(v, w-shift-1, 0), p.BVZero(shift))
}

func (p *primitives) LShrConst(v z3.BV, w, shift uint) z3.BV {
	if shift == 0 {
		return v
	}
	if shift >= w {
		return p.BVZero(w)
	}
	return p.Concat(p.BVZero(shift), p.Extract(v, w-1, shift))
}

// AShrConst implements the sign-bit-driven ite the spec describes;
// per the recorded Open Question decision it deliberately returns
// zero (not a sign-saturated value) once shift >= w.
func (p *primitives) AShrConst(v z3.BV, w, shift uint, signBit z3.Bool) z3.BV {
	if shift == 0 {
		return v
	}
	if shift >= w {
		return p.BVZero(w)
	}
	logical := p.LShrConst(v, w, shift)
	saturated := p.Concat(p.BVAllOnes(shift), p.Extract(v, w-1, shift))
	return signBit.IfThenElse(saturated, logical).(z3.BV)
}

// ShiftLadder builds the variable-shift if-then-else ladder §4.3
// describes: one branch per shift amount 0..w-1 comparing amount
// against a width-w constant, guarded by an outer "amount >= w -> 0"
// check. perAmount produces the constant-amount result for a given
// shift and is ShlConst/LShrConst/AShrConst bound to their fixed
// arguments by the caller.
func (p *primitives) ShiftLadder(w uint, amount z3.BV, perAmount func(shift uint) z3.BV) z3.BV {
	ladder := perAmount(0)
	for i := uint(1); i < w; i++ {
		cond := amount.Eq(p.bvConstU64(w, uint64(i)))
		ladder = cond.IfThenElse(perAmount(i), ladder).(z3.BV)
	}
	overflow := amount.UGE(p.bvConstU64(w, uint64(w)))
	return overflow.IfThenElse(p.BVZero(w), ladder).(z3.BV)
}

/*
 * Floating-point predicates and rounding modes.
 */

func (p *primitives) RoundingMode(rm RoundingMode) z3.RoundingMode {
	switch rm {
	case RNE:
		return z3.RoundToNearestEven
	case RNA:
		return z3.RoundToNearestAway
	case RTZ:
		return z3.RoundToZero
	case RTP:
		return z3.RoundToPositive
	case RTN:
		return z3.RoundToNegative
	default:
		panic(newConstructError("unknown rounding mode %d", rm))
	}
}

func (p *primitives) IsNaN(v z3.Float) z3.Bool       { return v.IsNaN() }
func (p *primitives) IsInfinity(v z3.Float) z3.Bool  { return v.IsInfinite() }
func (p *primitives) IsFPZero(v z3.Float) z3.Bool    { return v.IsZero() }
func (p *primitives) IsSubnormal(v z3.Float) z3.Bool { return v.IsSubnormal() }
func (p *primitives) IsFPNegative(v z3.Float) z3.Bool { return v.IsNegative() }

func (p *primitives) FPNaN(sort z3.Sort) z3.Float { return p.ctx.FloatNaN(sort) }

func (p *primitives) FPZero(sort z3.Sort, positive bool) z3.Float {
	return p.ctx.FloatZero(sort, !positive)
}

/*
 * Arrays.
 */

func (p *primitives) Read(arr z3.Array, index z3.BV) z3.Value { return arr.Select(index) }

func (p *primitives) Write(arr z3.Array, index z3.BV, value z3.Value) z3.Array {
	return arr.Store(index, value)
}

// withRoundingMode runs f with ctx's rounding mode temporarily set to
// rm, restoring the previous mode afterward. The translator does not
// use it: its FP operations (FPAdd, FPSub, ...) take the rounding mode
// as an explicit argument.
func withRoundingMode[T any](ctx *z3.Context, rm z3.RoundingMode, f func() T) T {
	old := ctx.SetRoundingMode(rm)
	defer ctx.SetRoundingMode(old)
	return f()
}

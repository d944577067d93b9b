package gosmt

import "github.com/aclements/go-z3/z3"

// sortFactory memoizes the handful of sorts a translation session
// actually needs, mirroring z3backend.go's habit of asking the
// context for a BVSort by width inline — except widths recur
// constantly across a single query, so this factory caches them
// instead of re-asking the context every time.
type sortFactory struct {
	ctx *z3.Context

	bv    map[uint]z3.Sort
	fp    map[uint]z3.Sort
	arr   map[[2]uint]z3.Sort
	f80   z3.Sort // fp(15, 64), the F80 shim's slot-0 sort
	f80Ar z3.Sort // bv(1) -> fp(15, 64), the whole shim's array sort
}

func newSortFactory(ctx *z3.Context) *sortFactory {
	return &sortFactory{
		ctx: ctx,
		bv:  make(map[uint]z3.Sort),
		fp:  make(map[uint]z3.Sort),
		arr: make(map[[2]uint]z3.Sort),
	}
}

func (f *sortFactory) BV(width uint) z3.Sort {
	if s, ok := f.bv[width]; ok {
		return s
	}
	s := f.ctx.BVSort(int(width))
	f.bv[width] = s
	return s
}

// ebitsSbits returns the (exponent bits, significand bits including
// the hidden bit) pair go-z3's FPSort expects for a standard IEEE-754
// width. x87's 80-bit extended format is not a standard width and is
// never passed here directly — see F80Slot0.
func ebitsSbits(width uint) (ebits, sbits int) {
	l := mustLayout(width)
	return int(l.expBits), int(l.fracBits) + 1
}

func (f *sortFactory) FP(width uint) z3.Sort {
	if s, ok := f.fp[width]; ok {
		return s
	}
	ebits, sbits := ebitsSbits(width)
	s := f.ctx.FloatSort(ebits, sbits)
	f.fp[width] = s
	return s
}

// F80Slot0 returns the fp(15, 64) sort that occupies index 0 of the
// F80 shim array: a 15-bit exponent, 64-bit significand (63 explicit
// fraction bits plus the hidden bit the solver's FP theory always
// assumes) floating-point sort, chosen because it is exactly wide
// enough to hold the 79 informative bits of an x87 extended value
// (1 sign + 15 exponent + 63 fraction) once the format's unusual
// explicit integer bit is folded back into the assumed hidden bit.
func (f *sortFactory) F80Slot0() z3.Sort {
	if f.f80 == (z3.Sort{}) {
		f.f80 = f.ctx.FloatSort(15, 64)
	}
	return f.f80
}

// F80Array is the whole shim sort: an uninterpreted array from a
// single-bit index to F80Slot0, so every x87 extended value in a
// query is represented the same uninterpreted-function way.
func (f *sortFactory) F80Array() z3.Sort {
	if f.f80Ar == (z3.Sort{}) {
		f.f80Ar = f.ctx.ArraySort(f.BV(1), f.F80Slot0())
	}
	return f.f80Ar
}

func (f *sortFactory) Array(domain, rangeWidth uint) z3.Sort {
	key := [2]uint{domain, rangeWidth}
	if s, ok := f.arr[key]; ok {
		return s
	}
	s := f.ctx.ArraySort(f.BV(domain), f.BV(rangeWidth))
	f.arr[key] = s
	return s
}

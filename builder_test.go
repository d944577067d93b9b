package gosmt

import (
	"testing"
)

func TestBuilderHashConsing(t *testing.T) {
	b := NewBuilder()

	s1 := b.Sym("a", 32)
	s2 := b.Sym("a", 32)
	if s1.rawPtr() != s2.rawPtr() {
		t.Error("two identically named symbols should collapse to one node")
	}

	other := b.Sym("a", 64)
	if s1.rawPtr() == other.rawPtr() {
		t.Error("symbols with different widths must not collapse")
	}

	c1 := b.BVVal(42, 32)
	c2 := b.BVVal(42, 32)
	if c1.rawPtr() != c2.rawPtr() {
		t.Error("two equal constants should collapse to one node")
	}
}

func TestBuilderNoSimplification(t *testing.T) {
	b := NewBuilder()

	a := b.Sym("a", 64)
	negB := b.Neg(b.Sym("b", 64))
	e, err := b.Add(a, negB)
	if err != nil {
		t.Fatal(err)
	}

	// Unlike a simplifying builder this must NOT fold a + -b into a
	// subtraction or anything else: the tree is built exactly as asked.
	if e.String() != "a + (-b)" {
		t.Errorf("got %q, want %q (no simplification expected)", e.String(), "a + (-b)")
	}
}

func TestBuilderArithmeticRendering(t *testing.T) {
	b := NewBuilder()

	a := b.Sym("a", 32)
	bb := b.Sym("b", 32)
	c := b.BVVal(42, 32)

	e, err := b.Add(a, bb, c)
	if err != nil {
		t.Fatal(err)
	}
	if e.String() != "a + b + <BV32 0x2a>" {
		t.Errorf("got %q", e.String())
	}

	mul, err := b.Mul(a, bb, c)
	if err != nil {
		t.Fatal(err)
	}
	andE, err := b.And(b.BVVal(0xfff00fff, 32), mul)
	if err != nil {
		t.Fatal(err)
	}
	if andE.String() != "<BV32 0xfff00fff> & (a * b * <BV32 0x2a>)" {
		t.Errorf("got %q", andE.String())
	}
}

func TestBuilderShiftRendering(t *testing.T) {
	b := NewBuilder()

	sym := b.Sym("sym", 64)
	e, err := b.AShr(sym, b.BVVal(16, 64))
	if err != nil {
		t.Fatal(err)
	}
	e, err = b.Shl(e, b.BVVal(8, 64))
	if err != nil {
		t.Fatal(err)
	}
	want := "(sym a>> <BV64 0x10>) << <BV64 0x8>"
	if e.String() != want {
		t.Errorf("got %q, want %q", e.String(), want)
	}
}

func TestBuilderMismatchedWidthsError(t *testing.T) {
	b := NewBuilder()

	a := b.Sym("a", 32)
	bb := b.Sym("b", 64)
	if _, err := b.Add(a, bb); err == nil {
		t.Error("expected an error for mismatched widths")
	}
}

func TestBuilderShiftAllowsMismatchedWidths(t *testing.T) {
	b := NewBuilder()

	sym := b.Sym("sym", 64)
	amount := b.BVVal(3, 8)
	if _, err := b.Shl(sym, amount); err != nil {
		t.Errorf("shift amount may have a different width than its operand: %s", err)
	}
}

func TestBuilderCompareRendering(t *testing.T) {
	b := NewBuilder()

	a := b.Sym("a", 64)
	bb := b.Sym("b", 64)
	e, err := b.Ule(a, bb)
	if err != nil {
		t.Fatal(err)
	}
	if e.String() != "a u<= b" {
		t.Errorf("got %q", e.String())
	}
	if e.Width() != 1 {
		t.Errorf("a comparison's result width should be 1, got %d", e.Width())
	}
}

func TestBuilderBoolRendering(t *testing.T) {
	b := NewBuilder()

	a, err := b.Eq(b.Sym("a", 1), b.BVVal(1, 1))
	if err != nil {
		t.Fatal(err)
	}
	bb, err := b.Eq(b.Sym("b", 1), b.BVVal(1, 1))
	if err != nil {
		t.Fatal(err)
	}
	e, err := b.BoolAnd(a, bb)
	if err != nil {
		t.Fatal(err)
	}
	e = b.BoolNot(e)

	want := "!((a == <BV1 0x1>) && (b == <BV1 0x1>))"
	if e.String() != want {
		t.Errorf("got %q, want %q", e.String(), want)
	}
}

func TestBuilderConcatAndExtractPreserved(t *testing.T) {
	b := NewBuilder()

	a := b.Sym("a", 32)
	p1, err := b.Extract(a, 7, 0)
	if err != nil {
		t.Fatal(err)
	}
	p2, err := b.Extract(a, 15, 8)
	if err != nil {
		t.Fatal(err)
	}

	c, err := b.Concat(p2, p1)
	if err != nil {
		t.Fatal(err)
	}
	// A non-simplifying builder keeps the concat exactly as built,
	// unlike the teacher's builder which would fold adjacent extracts
	// of the same symbol back into the symbol itself.
	want := "concat(a[15:8], a[7:0])"
	if c.String() != want {
		t.Errorf("got %q, want %q", c.String(), want)
	}
	if c.Width() != 16 {
		t.Errorf("concat width = %d, want 16", c.Width())
	}
}

func TestBuilderExtractRejectsOutOfRange(t *testing.T) {
	b := NewBuilder()
	a := b.Sym("a", 8)
	if _, err := b.Extract(a, 10, 0); err == nil {
		t.Error("expected an error extracting past the operand width")
	}
}

func TestBuilderSelectRejectsMismatchedWidths(t *testing.T) {
	b := NewBuilder()
	cond := b.Sym("cond", 1)
	t32 := b.BVVal(1, 32)
	f64 := b.BVVal(1, 64)
	if _, err := b.Select(cond, t32, f64); err == nil {
		t.Error("expected an error for branches with different widths")
	}
}

func TestBuilderFConstRoundTrip(t *testing.T) {
	b := NewBuilder()
	c := MakeFConstFromFloat64(1.5)
	h := b.FConstH(c)
	if !h.IsFConst() {
		t.Fatal("expected an FConst handle")
	}
	got, ok := h.GetFConst()
	if !ok || !got.Eq(c) {
		t.Errorf("round-tripped FConst does not match original")
	}
}

func TestBuilderFCmpWidthIsOne(t *testing.T) {
	b := NewBuilder()
	lhs := b.FConstH(MakeFConstFromFloat64(1.0))
	rhs := b.FConstH(MakeFConstFromFloat64(2.0))
	e := b.FOlt(lhs, rhs)
	if e.Width() != 1 {
		t.Errorf("FP comparison width = %d, want 1", e.Width())
	}
}

package gosmt_test

import (
	"math/big"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/vexlab/gosmt"
)

var bigIntComparer = cmp.Comparer(func(x, y *big.Int) bool { return x.Cmp(y) == 0 })

func TestBV(t *testing.T) {
	bv := gosmt.MakeBVConst(-1294871, 32)
	if bv.String() != "<BV32 0xffec3de9>" {
		t.Errorf("incorrect BV")
	}
}

func TestBVAdd(t *testing.T) {
	bv1 := gosmt.MakeBVConst(-10, 32)
	bv2 := gosmt.MakeBVConst(128, 32)
	bv1.Add(bv2)

	if bv1.AsULong() != 118 {
		t.Errorf("incorrect BV")
	}
}

func TestBVSub(t *testing.T) {
	bv1 := gosmt.MakeBVConst(-10, 32)
	bv2 := gosmt.MakeBVConst(128, 32)
	bv1.Sub(bv2)

	if bv1.AsLong() != -138 {
		t.Errorf("incorrect BV")
	}
}

func TestSExt(t *testing.T) {
	bv := gosmt.MakeBVConst(-10, 32)
	bv.SExt(32)

	if bv.Size != 64 || bv.AsLong() != -10 {
		t.Errorf("incorrect BV")
	}
}

func TestNonstandardSizes(t *testing.T) {
	bv := gosmt.MakeBVConst(1, 3)
	bv.Add(gosmt.MakeBVConst(7, 3))
	if bv.AsULong() != 0 {
		t.Errorf("incorrect BV")
	}
}

func TestWrongSizes(t *testing.T) {
	err := gosmt.MakeBVConst(1, 3).Add(gosmt.MakeBVConst(1, 4))
	if err == nil {
		t.Errorf("should return an error")
	}
}

func TestTruncateConcat(t *testing.T) {
	bv := gosmt.MakeBVConst(42, 8)
	bv.Concat(gosmt.MakeBVConst(43, 8))
	bv.Concat(gosmt.MakeBVConst(44, 8))
	bv.Concat(gosmt.MakeBVConst(45, 8))

	b := bv.Copy()
	b.Truncate(7, 0)
	if b.AsULong() != 45 {
		t.Errorf("incorrect BV")
	}

	b = bv.Copy()
	b.Truncate(15, 8)
	if b.AsULong() != 44 {
		t.Errorf("incorrect BV")
	}
}

func TestSlice(t *testing.T) {
	bv := gosmt.MakeBVConst(0xdeadbeef, 32)

	if bv.Slice(7, 0).AsULong() != 0xef {
		t.Errorf("incorrect BV")
	}
	if bv.Slice(15, 8).AsULong() != 0xbe {
		t.Errorf("incorrect BV")
	}
	if bv.Slice(23, 16).AsULong() != 0xad {
		t.Errorf("incorrect BV")
	}
	if bv.Slice(32, 24).AsULong() != 0xde {
		t.Errorf("incorrect BV")
	}
}

func TestAShr(t *testing.T) {
	bv := gosmt.MakeBVConst(-1, 32)
	bv.AShr(13)

	if bv.AsLong() != -1 {
		t.Errorf("incorrect BV")
	}

	bv = gosmt.MakeBVConst(-2, 32)
	bv.AShr(1)

	if bv.AsLong() != -1 {
		t.Errorf("incorrect BV")
	}
}

func TestNeg(t *testing.T) {
	bv := gosmt.MakeBVConst(-42, 18)

	bv.Neg()
	if bv.AsLong() != 42 {
		t.Errorf("incorrect BV")
	}
	bv.Neg()
	if bv.AsLong() != -42 {
		t.Errorf("incorrect BV")
	}
}

func TestCmp(t *testing.T) {
	bv1 := gosmt.MakeBVConst(-10, 32)
	bv2 := gosmt.MakeBVConst(-11, 32)
	bv3 := gosmt.MakeBVConst(1, 32)

	v, err := bv1.SGt(bv2)
	if err != nil || !v.Value {
		t.Errorf("[%s s> %s = %s] incorrect SGt result", bv1, bv2, v)
	}

	v, err = bv1.SGe(bv2)
	if err != nil || !v.Value {
		t.Errorf("[%s s>= %s = %s] incorrect SGe result", bv1, bv2, v)
	}

	v, err = bv1.SLt(bv2)
	if err != nil || v.Value {
		t.Errorf("[%s s< %s = %s] incorrect SLt result", bv1, bv2, v)
	}

	v, err = bv1.SLe(bv2)
	if err != nil || v.Value {
		t.Errorf("[%s s<= %s = %s] incorrect SLe result", bv1, bv2, v)
	}

	v, err = bv1.Ult(bv3)
	if err != nil || v.Value {
		t.Errorf("[%s u< %s = %s] incorrect Ult result", bv1, bv3, v)
	}
}

func TestDiv(t *testing.T) {
	bv1 := gosmt.MakeBVConst(-10, 32)
	bv2 := gosmt.MakeBVConst(3, 32)
	resSdiv := bv1.Copy()
	resSdiv.SDiv(bv2)
	if resSdiv.AsLong() != -3 {
		t.Error("invalid division")
	}

	resUdiv := bv1.Copy()
	resUdiv.UDiv(bv2)
	if resUdiv.AsULong() != 0x55555552 {
		t.Error("invalid division")
	}
}

func TestValueDoesNotWrap(t *testing.T) {
	bv := gosmt.MakeBVConst(-1, 128)
	want := new(big.Int).Sub(new(big.Int).Lsh(big.NewInt(1), 128), big.NewInt(1))
	if bv.Value().Cmp(want) != 0 {
		t.Errorf("Value() = %s, want %s", bv.Value(), want)
	}
}

func TestValueIsACopy(t *testing.T) {
	bv := gosmt.MakeBVConst(7, 8)
	v := bv.Value()
	v.Add(v, big.NewInt(1))
	if bv.AsULong() != 7 {
		t.Errorf("mutating the returned big.Int affected the BVConst")
	}
}

func TestFConstBitSplitting(t *testing.T) {
	bits := big.NewInt(0)
	bits.SetBit(bits, 31, 1) // sign
	bits.SetBit(bits, 30, 1) // top exponent bit
	bits.SetBit(bits, 22, 1) // top fraction bit

	c, err := gosmt.MakeFConstFromBits(32, bits)
	if err != nil {
		t.Fatalf("unexpected error: %s", err)
	}
	if c.SignBit() != 1 {
		t.Errorf("SignBit() = %d, want 1", c.SignBit())
	}
	if c.ExponentBits().Cmp(big.NewInt(1<<7)) != 0 {
		t.Errorf("ExponentBits() = %s, want %d", c.ExponentBits(), 1<<7)
	}
	if c.FractionBits().Cmp(big.NewInt(1<<22)) != 0 {
		t.Errorf("FractionBits() = %s, want %d", c.FractionBits(), 1<<22)
	}
}

func TestFConstFromFloat64RoundTrip(t *testing.T) {
	c := gosmt.MakeFConstFromFloat64(3.5)
	if c.Width != 64 {
		t.Fatalf("Width = %d, want 64", c.Width)
	}
	if c.IsNaN() || c.IsInf() || c.IsZero() {
		t.Errorf("3.5 misclassified: %s", c)
	}
}

func TestFConstNaNAndInf(t *testing.T) {
	nan := gosmt.MakeFConstNaN(32)
	if !nan.IsNaN() {
		t.Errorf("MakeFConstNaN(32) is not recognised as NaN")
	}

	zero := gosmt.MakeFConstZero(32, false)
	negZero := gosmt.MakeFConstZero(32, true)
	if !zero.IsZero() || !negZero.IsZero() {
		t.Errorf("signed zeroes not recognised as zero")
	}
	if zero.Eq(negZero) {
		t.Errorf("+0 and -0 compared bit-for-bit should differ")
	}
}

func TestUnsupportedFPWidth(t *testing.T) {
	if _, err := gosmt.MakeFConstFromBits(24, big.NewInt(0)); err == nil {
		t.Errorf("expected an error for an unsupported floating-point width")
	}
}

func TestMakeConstantArrayRejectsEmpty(t *testing.T) {
	if _, err := gosmt.MakeConstantArray("a", 32, nil); err == nil {
		t.Errorf("expected an error for an empty constant array")
	}
}

func TestMakeConstantArrayRejectsMismatchedWidths(t *testing.T) {
	values := []*gosmt.BVConst{gosmt.MakeBVConst(1, 8), gosmt.MakeBVConst(2, 16)}
	if _, err := gosmt.MakeConstantArray("a", 32, values); err == nil {
		t.Errorf("expected an error for mismatched element widths")
	}
}

func TestMakeConstantArray(t *testing.T) {
	values := []*gosmt.BVConst{gosmt.MakeBVConst(1, 8), gosmt.MakeBVConst(2, 8), gosmt.MakeBVConst(3, 8)}
	arr, err := gosmt.MakeConstantArray("a", 32, values)
	if err != nil {
		t.Fatalf("unexpected error: %s", err)
	}
	if !arr.IsConstant() {
		t.Errorf("constant array not reported as constant")
	}
	if arr.Range != 8 || arr.Size != 3 {
		t.Errorf("got Range=%d Size=%d, want Range=8 Size=3", arr.Range, arr.Size)
	}
}

func TestFConstStructuralEquality(t *testing.T) {
	a := gosmt.MakeFConstFromFloat32(1.5)
	b := gosmt.MakeFConstFromFloat32(1.5)
	if diff := cmp.Diff(a, b, bigIntComparer); diff != "" {
		t.Errorf("identically valued FConsts differ:\n%s", diff)
	}

	nan := gosmt.MakeFConstNaN(32)
	if diff := cmp.Diff(a, nan, bigIntComparer); diff == "" {
		t.Error("1.5 and NaN should not compare structurally equal")
	}
}

func TestMakeArrayIsNotConstant(t *testing.T) {
	arr := gosmt.MakeArray("sym", 32, 8)
	if arr.IsConstant() {
		t.Errorf("a freshly made symbolic array should not be constant")
	}
}

package gosmt

import (
	"testing"

	"github.com/aclements/go-z3/z3"
)

func TestFArithmeticConcreteValues(t *testing.T) {
	tr := NewTranslator()
	b := NewBuilder()

	one := b.FConstH(MakeFConstFromFloat64(1.0))
	two := b.FConstH(MakeFConstFromFloat64(2.0))

	sum := b.FAdd(one, one, RNE)
	eqSum := b.FOeq(sum, two)
	if !checkSat(t, tr, tr.Construct(eqSum).(z3.Bool)) {
		t.Error("FAdd(1.0, 1.0, RNE) should equal 2.0")
	}

	diff := b.FSub(two, one, RNE)
	eqDiff := b.FOeq(diff, one)
	if !checkSat(t, tr, tr.Construct(eqDiff).(z3.Bool)) {
		t.Error("FSub(2.0, 1.0, RNE) should equal 1.0")
	}

	prod := b.FMul(two, two, RNE)
	four := b.FConstH(MakeFConstFromFloat64(4.0))
	eqProd := b.FOeq(prod, four)
	if !checkSat(t, tr, tr.Construct(eqProd).(z3.Bool)) {
		t.Error("FMul(2.0, 2.0, RNE) should equal 4.0")
	}

	quot := b.FDiv(two, two, RNE)
	eqQuot := b.FOeq(quot, one)
	if !checkSat(t, tr, tr.Construct(eqQuot).(z3.Bool)) {
		t.Error("FDiv(2.0, 2.0, RNE) should equal 1.0")
	}
}

func TestFMinFMaxPickTheExpectedOperand(t *testing.T) {
	tr := NewTranslator()
	b := NewBuilder()

	one := b.FConstH(MakeFConstFromFloat64(1.0))
	two := b.FConstH(MakeFConstFromFloat64(2.0))

	min := b.FMin(one, two)
	eqMin := b.FOeq(min, one)
	if !checkSat(t, tr, tr.Construct(eqMin).(z3.Bool)) {
		t.Error("FMin(1.0, 2.0) should equal 1.0")
	}

	max := b.FMax(one, two)
	eqMax := b.FOeq(max, two)
	if !checkSat(t, tr, tr.Construct(eqMax).(z3.Bool)) {
		t.Error("FMax(1.0, 2.0) should equal 2.0")
	}
}

func TestFOrderedComparisonIsFalseOnNaN(t *testing.T) {
	tr := NewTranslator()
	b := NewBuilder()

	nan := b.FConstH(MakeFConstNaN(64))
	one := b.FConstH(MakeFConstFromFloat64(1.0))

	olt := b.FOlt(nan, one)
	if checkSat(t, tr, tr.Construct(olt).(z3.Bool)) {
		t.Error("FOlt with a NaN operand should be unsatisfiable (never true)")
	}

	// FUlt, in contrast, is true whenever either operand is NaN.
	ult := b.FUlt(nan, one)
	if !checkSat(t, tr, tr.Construct(ult).(z3.Bool)) {
		t.Error("FUlt with a NaN operand should be satisfiable (always true)")
	}
}

func TestFOrdAndFUnoAgreeWithNaNPresence(t *testing.T) {
	tr := NewTranslator()
	b := NewBuilder()

	nan := b.FConstH(MakeFConstNaN(32))
	one := b.FConstH(MakeFConstFromFloat32(1.0))

	ord := b.FOrd(one, one)
	if !checkSat(t, tr, tr.Construct(ord).(z3.Bool)) {
		t.Error("FOrd(1.0, 1.0) should be satisfiable: neither operand is NaN")
	}

	uno := b.FUno(nan, one)
	if !checkSat(t, tr, tr.Construct(uno).(z3.Bool)) {
		t.Error("FUno(NaN, 1.0) should be satisfiable: one operand is NaN")
	}

	ordWithNaN := b.FOrd(nan, one)
	if checkSat(t, tr, tr.Construct(ordWithNaN).(z3.Bool)) {
		t.Error("FOrd(NaN, 1.0) should be unsatisfiable")
	}
}

func TestFClassificationOnConcreteValues(t *testing.T) {
	tr := NewTranslator()
	b := NewBuilder()

	nan := b.FConstH(MakeFConstNaN(32))
	isNan := mustEq(t, b, b.FIsNan(nan), b.BVVal(1, 32))
	if !checkSat(t, tr, tr.Construct(isNan).(z3.Bool)) {
		t.Error("FIsNan(NaN) should report 1")
	}

	one := b.FConstH(MakeFConstFromFloat32(1.0))
	isFinite := mustEq(t, b, b.FIsFinite(one), b.BVVal(1, 32))
	if !checkSat(t, tr, tr.Construct(isFinite).(z3.Bool)) {
		t.Error("FIsFinite(1.0) should report 1")
	}

	classified := mustEq(t, b, b.FpClassify(one), b.BVVal(fpClassifyNormal, 32))
	if !checkSat(t, tr, tr.Construct(classified).(z3.Bool)) {
		t.Error("FpClassify(1.0) should report FP_NORMAL")
	}
}

func TestFAbsAndFSqrtOnConcreteValues(t *testing.T) {
	tr := NewTranslator()
	b := NewBuilder()

	negTwo := b.FConstH(MakeFConstFromFloat64(-2.0))
	two := b.FConstH(MakeFConstFromFloat64(2.0))

	abs := b.FAbs(negTwo)
	eqAbs := b.FOeq(abs, two)
	if !checkSat(t, tr, tr.Construct(eqAbs).(z3.Bool)) {
		t.Error("FAbs(-2.0) should equal 2.0")
	}

	four := b.FConstH(MakeFConstFromFloat64(4.0))
	sqrt := b.FSqrt(four, RNE)
	eqSqrt := b.FOeq(sqrt, two)
	if !checkSat(t, tr, tr.Construct(eqSqrt).(z3.Bool)) {
		t.Error("FSqrt(4.0, RNE) should equal 2.0")
	}
}

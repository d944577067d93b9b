package gosmt

import (
	"encoding/binary"
	"fmt"
	"strings"
	"unsafe"

	"github.com/cespare/xxhash/v2"
)

// Kind tags for every node the translator dispatches on. The set
// mirrors the operator zoo of the expression IR this package
// translates: BV/Bool constants and symbols, array reads over an
// update chain, casts (including the two bit-reinterpreting ones),
// BV/FP arithmetic, bitwise and shift ops, BV/FP comparisons, and FP
// classification. Comparisons a front-end canonicalises away before
// they ever reach a translator (Ne, Ugt, Uge, Sgt, Sge) have no kind
// here.
const (
	KindSym = iota + 1
	KindConst
	KindFConst
	KindNotOptimized
	KindRead
	KindSelect
	KindConcat
	KindExtract
	KindZExt
	KindSExt
	KindFExt
	KindFToU
	KindFToS
	KindUToF
	KindSToF
	KindExplicitFloat
	KindExplicitInt

	KindNot
	KindNeg
	KindAnd
	KindOr
	KindXor
	KindAdd
	KindMul
	KindUDiv
	KindSDiv
	KindURem
	KindSRem
	KindShl
	KindLShr
	KindAShr

	KindEq
	KindUlt
	KindUle
	KindSlt
	KindSle

	KindFAdd
	KindFSub
	KindFMul
	KindFDiv
	KindFRem
	KindFSqrt
	KindFNearbyInt
	KindFAbs
	KindFMin
	KindFMax

	KindFpClassify
	KindFIsFinite
	KindFIsNan
	KindFIsInf

	KindFOeq
	KindFOne
	KindFOlt
	KindFOle
	KindFOgt
	KindFOge
	KindFUeq
	KindFUne
	KindFUlt
	KindFUle
	KindFUgt
	KindFUge
	KindFOrd
	KindFUno

	KindBoolConst
	KindBoolNot
	KindBoolAnd
	KindBoolOr
)

// RoundingMode names one of the five IEEE-754 rounding directions a
// floating-point operation may be given.
type RoundingMode int

const (
	RNE RoundingMode = iota // NearestTiesToEven, the default
	RNA                     // NearestTiesToAway
	RTZ                     // TowardZero
	RTP                     // TowardPositive
	RTN                     // TowardNegative
)

// expr is the tagged-variant interface every IR node implements. It
// is small on purpose: the translator dispatches on kind() and a type
// switch reaches the concrete fields it needs, the same polymorphic-
// by-tag style the rest of this lineage uses instead of an interface
// method per operator.
type expr interface {
	kind() int
	width() uint
	String() string
	isLeaf() bool
	subexprs() []expr

	rawPtr() uintptr
	hash() uint64
}

func writeHashChildren(tag string, children ...expr) uint64 {
	h := xxhash.New()
	h.WriteString(tag)
	raw := make([]byte, 8)
	for _, c := range children {
		binary.BigEndian.PutUint64(raw, uint64(c.rawPtr()))
		h.Write(raw)
	}
	return h.Sum64()
}

func renderChild(c expr) string {
	if c.isLeaf() {
		return c.String()
	}
	return "(" + c.String() + ")"
}

/*
 * Leaves: symbols and constants.
 */

type symExpr struct {
	name string
	w    uint
}

func mkSym(name string, w uint) *symExpr { return &symExpr{name: name, w: w} }

func (e *symExpr) kind() int        { return KindSym }
func (e *symExpr) width() uint      { return e.w }
func (e *symExpr) String() string   { return e.name }
func (e *symExpr) isLeaf() bool     { return true }
func (e *symExpr) subexprs() []expr { return nil }
func (e *symExpr) rawPtr() uintptr  { return uintptr(unsafe.Pointer(e)) }
func (e *symExpr) hash() uint64 {
	h := xxhash.New()
	h.WriteString(e.name)
	return h.Sum64()
}

type bvConstExpr struct {
	v BVConst
}

func mkBVConstExpr(v *BVConst) *bvConstExpr { return &bvConstExpr{v: *v} }

func (e *bvConstExpr) kind() int        { return KindConst }
func (e *bvConstExpr) width() uint      { return e.v.Size }
func (e *bvConstExpr) String() string   { return e.v.String() }
func (e *bvConstExpr) isLeaf() bool     { return true }
func (e *bvConstExpr) subexprs() []expr { return nil }
func (e *bvConstExpr) rawPtr() uintptr  { return uintptr(unsafe.Pointer(e)) }
func (e *bvConstExpr) hash() uint64 {
	if e.v.Size > 64 {
		cpy := e.v.Copy()
		cpy.Truncate(63, 0)
		return cpy.AsULong()
	}
	return e.v.AsULong()
}

type fConstExpr struct {
	v FConst
}

func mkFConstExpr(v *FConst) *fConstExpr { return &fConstExpr{v: *v} }

func (e *fConstExpr) kind() int        { return KindFConst }
func (e *fConstExpr) width() uint      { return e.v.Width }
func (e *fConstExpr) String() string   { return e.v.String() }
func (e *fConstExpr) isLeaf() bool     { return true }
func (e *fConstExpr) subexprs() []expr { return nil }
func (e *fConstExpr) rawPtr() uintptr  { return uintptr(unsafe.Pointer(e)) }
func (e *fConstExpr) hash() uint64 {
	h := xxhash.New()
	h.WriteString("fconst")
	raw := make([]byte, 8)
	binary.BigEndian.PutUint64(raw, uint64(e.v.Width))
	h.Write(raw)
	if e.v.Bits.IsUint64() {
		binary.BigEndian.PutUint64(raw, e.v.Bits.Uint64())
		h.Write(raw)
	}
	return h.Sum64()
}

/*
 * NotOptimized: a passthrough marker, translated as its child.
 */

type notOptimizedExpr struct {
	child expr
}

func mkNotOptimized(child expr) *notOptimizedExpr { return &notOptimizedExpr{child: child} }

func (e *notOptimizedExpr) kind() int        { return KindNotOptimized }
func (e *notOptimizedExpr) width() uint      { return e.child.width() }
func (e *notOptimizedExpr) String() string   { return e.child.String() }
func (e *notOptimizedExpr) isLeaf() bool     { return false }
func (e *notOptimizedExpr) subexprs() []expr { return []expr{e.child} }
func (e *notOptimizedExpr) rawPtr() uintptr  { return uintptr(unsafe.Pointer(e)) }
func (e *notOptimizedExpr) hash() uint64 {
	return writeHashChildren("notopt", e.child)
}

/*
 * Array reads over an update chain.
 */

type readExpr struct {
	root  *Array
	head  *UpdateNode
	index expr
}

func mkRead(root *Array, head *UpdateNode, index expr) *readExpr {
	return &readExpr{root: root, head: head, index: index}
}

func (e *readExpr) kind() int   { return KindRead }
func (e *readExpr) width() uint { return e.root.Range }
func (e *readExpr) String() string {
	return fmt.Sprintf("%s[%s]", e.root.Name, e.index.String())
}
func (e *readExpr) isLeaf() bool     { return false }
func (e *readExpr) subexprs() []expr { return []expr{e.index} }
func (e *readExpr) rawPtr() uintptr  { return uintptr(unsafe.Pointer(e)) }
func (e *readExpr) hash() uint64 {
	h := xxhash.New()
	h.WriteString("read")
	h.WriteString(e.root.Name)
	raw := make([]byte, 8)
	binary.BigEndian.PutUint64(raw, uint64(e.index.rawPtr()))
	h.Write(raw)
	if e.head != nil {
		binary.BigEndian.PutUint64(raw, uint64(e.head.rawPtr()))
		h.Write(raw)
	}
	return h.Sum64()
}

/*
 * Select (ITE), applies to both BV and FP children alike.
 */

type selectExpr struct {
	cond, t, f expr
	w          uint
}

func mkSelect(cond, t, f expr) *selectExpr {
	return &selectExpr{cond: cond, t: t, f: f, w: t.width()}
}

func (e *selectExpr) kind() int   { return KindSelect }
func (e *selectExpr) width() uint { return e.w }
func (e *selectExpr) String() string {
	return fmt.Sprintf("ite(%s, %s, %s)", e.cond, e.t, e.f)
}
func (e *selectExpr) isLeaf() bool     { return false }
func (e *selectExpr) subexprs() []expr { return []expr{e.cond, e.t, e.f} }
func (e *selectExpr) rawPtr() uintptr  { return uintptr(unsafe.Pointer(e)) }
func (e *selectExpr) hash() uint64 {
	return writeHashChildren("select", e.cond, e.t, e.f)
}

/*
 * Concat (n-ary).
 */

type concatExpr struct {
	children []expr
	w        uint
}

func mkConcat(children []expr) (*concatExpr, error) {
	if len(children) < 2 {
		return nil, fmt.Errorf("gosmt: concat needs at least two children")
	}
	var w uint
	for _, c := range children {
		w += c.width()
	}
	return &concatExpr{children: children, w: w}, nil
}

func (e *concatExpr) kind() int   { return KindConcat }
func (e *concatExpr) width() uint { return e.w }
func (e *concatExpr) String() string {
	parts := make([]string, len(e.children))
	for i, c := range e.children {
		parts[i] = c.String()
	}
	return "concat(" + strings.Join(parts, ", ") + ")"
}
func (e *concatExpr) isLeaf() bool     { return false }
func (e *concatExpr) subexprs() []expr { return e.children }
func (e *concatExpr) rawPtr() uintptr  { return uintptr(unsafe.Pointer(e)) }
func (e *concatExpr) hash() uint64 {
	return writeHashChildren("concat", e.children...)
}

/*
 * Extract(hi, lo).
 */

type extractExpr struct {
	child  expr
	hi, lo uint
}

func mkExtract(child expr, hi, lo uint) (*extractExpr, error) {
	if hi < lo {
		return nil, fmt.Errorf("gosmt: extract high %d lower than low %d", hi, lo)
	}
	if hi >= child.width() {
		return nil, fmt.Errorf("gosmt: extract high %d out of range for width %d", hi, child.width())
	}
	return &extractExpr{child: child, hi: hi, lo: lo}, nil
}

func (e *extractExpr) kind() int   { return KindExtract }
func (e *extractExpr) width() uint { return e.hi - e.lo + 1 }
func (e *extractExpr) String() string {
	return fmt.Sprintf("%s[%d:%d]", renderChild(e.child), e.hi, e.lo)
}
func (e *extractExpr) isLeaf() bool     { return false }
func (e *extractExpr) subexprs() []expr { return []expr{e.child} }
func (e *extractExpr) rawPtr() uintptr  { return uintptr(unsafe.Pointer(e)) }
func (e *extractExpr) hash() uint64 {
	h := xxhash.New()
	h.WriteString("extract")
	raw := make([]byte, 8)
	binary.BigEndian.PutUint64(raw, uint64(e.child.rawPtr()))
	h.Write(raw)
	binary.BigEndian.PutUint64(raw, uint64(e.hi))
	h.Write(raw)
	binary.BigEndian.PutUint64(raw, uint64(e.lo))
	h.Write(raw)
	return h.Sum64()
}

/*
 * Casts: ZExt/SExt widen a BV; FExt rounds between FP widths;
 * FToU/FToS/UToF/SToF cross the BV/FP boundary under a rounding mode;
 * ExplicitFloat/ExplicitInt bit-reinterpret without rounding.
 */

type castExpr struct {
	k        int
	child    expr
	delta    uint // ZExt/SExt: bits added
	dstWidth uint // everything else: destination width
	rm       RoundingMode
}

func mkCast(k int, child expr, delta, dstWidth uint, rm RoundingMode) *castExpr {
	return &castExpr{k: k, child: child, delta: delta, dstWidth: dstWidth, rm: rm}
}

func (e *castExpr) kind() int { return e.k }
func (e *castExpr) width() uint {
	switch e.k {
	case KindZExt, KindSExt:
		return e.child.width() + e.delta
	default:
		return e.dstWidth
	}
}
func (e *castExpr) String() string {
	name := map[int]string{
		KindZExt: "ZExt", KindSExt: "SExt", KindFExt: "FExt",
		KindFToU: "FToU", KindFToS: "FToS", KindUToF: "UToF", KindSToF: "SToF",
		KindExplicitFloat: "ExplicitFloat", KindExplicitInt: "ExplicitInt",
	}[e.k]
	return fmt.Sprintf("%s(%s)", name, e.child)
}
func (e *castExpr) isLeaf() bool     { return false }
func (e *castExpr) subexprs() []expr { return []expr{e.child} }
func (e *castExpr) rawPtr() uintptr  { return uintptr(unsafe.Pointer(e)) }
func (e *castExpr) hash() uint64 {
	h := xxhash.New()
	h.WriteString("cast")
	raw := make([]byte, 8)
	binary.BigEndian.PutUint64(raw, uint64(e.k))
	h.Write(raw)
	binary.BigEndian.PutUint64(raw, uint64(e.dstWidth))
	h.Write(raw)
	binary.BigEndian.PutUint64(raw, uint64(e.child.rawPtr()))
	h.Write(raw)
	return h.Sum64()
}

/*
 * Bitwise (Not is unary, And/Or/Xor n-ary) and n-ary BV arithmetic
 * (Add/Mul). Grouped behind one struct the way the lineage's
 * BinArithmetic groups And/Or/Xor/Add/Mul: they share shape and
 * differ only in opcode and rendering symbol.
 */

type naryExpr struct {
	k        int
	children []expr
	symbol   string
}

func mkNary(k int, children []expr, symbol string) (*naryExpr, error) {
	if k == KindNot || k == KindNeg {
		if len(children) != 1 {
			return nil, fmt.Errorf("gosmt: unary op %d needs exactly one child", k)
		}
		return &naryExpr{k: k, children: children, symbol: symbol}, nil
	}
	if len(children) < 2 {
		return nil, fmt.Errorf("gosmt: nary op %d needs at least two children", k)
	}
	for i := 1; i < len(children); i++ {
		if children[i].width() != children[0].width() {
			return nil, fmt.Errorf("gosmt: mismatched widths %d and %d", children[i].width(), children[0].width())
		}
	}
	return &naryExpr{k: k, children: children, symbol: symbol}, nil
}

func (e *naryExpr) kind() int   { return e.k }
func (e *naryExpr) width() uint { return e.children[0].width() }
func (e *naryExpr) String() string {
	if e.k == KindNot || e.k == KindNeg {
		return fmt.Sprintf("%s%s", e.symbol, renderChild(e.children[0]))
	}
	b := strings.Builder{}
	b.WriteString(renderChild(e.children[0]))
	for i := 1; i < len(e.children); i++ {
		b.WriteString(" " + e.symbol + " ")
		b.WriteString(renderChild(e.children[i]))
	}
	return b.String()
}
func (e *naryExpr) isLeaf() bool     { return false }
func (e *naryExpr) subexprs() []expr { return e.children }
func (e *naryExpr) rawPtr() uintptr  { return uintptr(unsafe.Pointer(e)) }
func (e *naryExpr) hash() uint64 {
	return writeHashChildren(e.symbol, e.children...)
}

/*
 * Binary BV ops: UDiv/SDiv/URem/SRem, shifts, and comparisons all
 * share the same (lhs, rhs) shape.
 */

type binExpr struct {
	k        int
	lhs, rhs expr
	symbol   string
}

func mkBin(k int, lhs, rhs expr, symbol string) (*binExpr, error) {
	needSameWidth := k != KindShl && k != KindLShr && k != KindAShr
	if needSameWidth && lhs.width() != rhs.width() {
		return nil, fmt.Errorf("gosmt: mismatched widths %d and %d", lhs.width(), rhs.width())
	}
	return &binExpr{k: k, lhs: lhs, rhs: rhs, symbol: symbol}, nil
}

func (e *binExpr) kind() int { return e.k }
func (e *binExpr) width() uint {
	switch e.k {
	case KindEq, KindUlt, KindUle, KindSlt, KindSle:
		return 1
	default:
		return e.lhs.width()
	}
}
func (e *binExpr) String() string {
	return renderChild(e.lhs) + " " + e.symbol + " " + renderChild(e.rhs)
}
func (e *binExpr) isLeaf() bool     { return false }
func (e *binExpr) subexprs() []expr { return []expr{e.lhs, e.rhs} }
func (e *binExpr) rawPtr() uintptr  { return uintptr(unsafe.Pointer(e)) }
func (e *binExpr) hash() uint64 {
	return writeHashChildren(e.symbol, e.lhs, e.rhs)
}

/*
 * Floating-point arithmetic (FAdd/FSub/FMul/FDiv/FRem), FMin/FMax,
 * unary FP ops (FSqrt/FNearbyInt/FAbs), classification, and the
 * twelve FP comparisons plus FOrd/FUno. All operate on FP-kind
 * children, whose own kind marks them as floating point rather than
 * their width.
 */

type fBinExpr struct {
	k        int
	lhs, rhs expr
	rm       RoundingMode
	w        uint
}

func mkFBin(k int, lhs, rhs expr, rm RoundingMode) *fBinExpr {
	return &fBinExpr{k: k, lhs: lhs, rhs: rhs, rm: rm, w: lhs.width()}
}

func (e *fBinExpr) kind() int      { return e.k }
func (e *fBinExpr) width() uint    { return e.w }
func (e *fBinExpr) String() string { return fmt.Sprintf("fop%d(%s, %s)", e.k, e.lhs, e.rhs) }
func (e *fBinExpr) isLeaf() bool     { return false }
func (e *fBinExpr) subexprs() []expr { return []expr{e.lhs, e.rhs} }
func (e *fBinExpr) rawPtr() uintptr  { return uintptr(unsafe.Pointer(e)) }
func (e *fBinExpr) hash() uint64 {
	return writeHashChildren(fmt.Sprintf("fbin%d", e.k), e.lhs, e.rhs)
}

type fUnExpr struct {
	k     int
	child expr
	rm    RoundingMode
}

func mkFUn(k int, child expr, rm RoundingMode) *fUnExpr {
	return &fUnExpr{k: k, child: child, rm: rm}
}

func (e *fUnExpr) kind() int      { return e.k }
func (e *fUnExpr) width() uint    { return e.child.width() }
func (e *fUnExpr) String() string { return fmt.Sprintf("fop%d(%s)", e.k, e.child) }
func (e *fUnExpr) isLeaf() bool     { return false }
func (e *fUnExpr) subexprs() []expr { return []expr{e.child} }
func (e *fUnExpr) rawPtr() uintptr  { return uintptr(unsafe.Pointer(e)) }
func (e *fUnExpr) hash() uint64 {
	return writeHashChildren(fmt.Sprintf("fun%d", e.k), e.child)
}

// fClassifyExpr covers FpClassify/FIsFinite/FIsNan/FIsInf: all
// produce a signed 32-bit integer result.
type fClassifyExpr struct {
	k     int
	child expr
}

func mkFClassify(k int, child expr) *fClassifyExpr { return &fClassifyExpr{k: k, child: child} }

func (e *fClassifyExpr) kind() int      { return e.k }
func (e *fClassifyExpr) width() uint    { return 32 }
func (e *fClassifyExpr) String() string { return fmt.Sprintf("fclassify%d(%s)", e.k, e.child) }
func (e *fClassifyExpr) isLeaf() bool     { return false }
func (e *fClassifyExpr) subexprs() []expr { return []expr{e.child} }
func (e *fClassifyExpr) rawPtr() uintptr  { return uintptr(unsafe.Pointer(e)) }
func (e *fClassifyExpr) hash() uint64 {
	return writeHashChildren(fmt.Sprintf("fclassify%d", e.k), e.child)
}

type fCmpExpr struct {
	k        int
	lhs, rhs expr
}

func mkFCmp(k int, lhs, rhs expr) *fCmpExpr { return &fCmpExpr{k: k, lhs: lhs, rhs: rhs} }

func (e *fCmpExpr) kind() int      { return e.k }
func (e *fCmpExpr) width() uint    { return 1 }
func (e *fCmpExpr) String() string { return fmt.Sprintf("fcmp%d(%s, %s)", e.k, e.lhs, e.rhs) }
func (e *fCmpExpr) isLeaf() bool     { return false }
func (e *fCmpExpr) subexprs() []expr { return []expr{e.lhs, e.rhs} }
func (e *fCmpExpr) rawPtr() uintptr  { return uintptr(unsafe.Pointer(e)) }
func (e *fCmpExpr) hash() uint64 {
	return writeHashChildren(fmt.Sprintf("fcmp%d", e.k), e.lhs, e.rhs)
}

/*
 * Boolean nodes.
 */

type boolConstExpr struct {
	v BoolConst
}

func mkBoolConstExpr(v BoolConst) *boolConstExpr { return &boolConstExpr{v: v} }

func (e *boolConstExpr) kind() int        { return KindBoolConst }
func (e *boolConstExpr) width() uint      { return 1 }
func (e *boolConstExpr) String() string   { return e.v.String() }
func (e *boolConstExpr) isLeaf() bool     { return true }
func (e *boolConstExpr) subexprs() []expr { return nil }
func (e *boolConstExpr) rawPtr() uintptr  { return uintptr(unsafe.Pointer(e)) }
func (e *boolConstExpr) hash() uint64 {
	if e.v.Value {
		return 1
	}
	return 0
}

type boolUnExpr struct {
	child expr
}

func mkBoolNot(child expr) *boolUnExpr { return &boolUnExpr{child: child} }

func (e *boolUnExpr) kind() int        { return KindBoolNot }
func (e *boolUnExpr) width() uint      { return 1 }
func (e *boolUnExpr) String() string   { return "!" + renderChild(e.child) }
func (e *boolUnExpr) isLeaf() bool     { return false }
func (e *boolUnExpr) subexprs() []expr { return []expr{e.child} }
func (e *boolUnExpr) rawPtr() uintptr  { return uintptr(unsafe.Pointer(e)) }
func (e *boolUnExpr) hash() uint64 {
	return writeHashChildren("boolnot", e.child)
}

type boolNaryExpr struct {
	k        int
	children []expr
}

func mkBoolNary(k int, children []expr) (*boolNaryExpr, error) {
	if len(children) < 2 {
		return nil, fmt.Errorf("gosmt: boolean nary op needs at least two children")
	}
	return &boolNaryExpr{k: k, children: children}, nil
}

func (e *boolNaryExpr) kind() int   { return e.k }
func (e *boolNaryExpr) width() uint { return 1 }
func (e *boolNaryExpr) String() string {
	sep := " && "
	if e.k == KindBoolOr {
		sep = " || "
	}
	parts := make([]string, len(e.children))
	for i, c := range e.children {
		parts[i] = renderChild(c)
	}
	return strings.Join(parts, sep)
}
func (e *boolNaryExpr) isLeaf() bool     { return false }
func (e *boolNaryExpr) subexprs() []expr { return e.children }
func (e *boolNaryExpr) rawPtr() uintptr  { return uintptr(unsafe.Pointer(e)) }
func (e *boolNaryExpr) hash() uint64 {
	tag := "booland"
	if e.k == KindBoolOr {
		tag = "boolor"
	}
	return writeHashChildren(tag, e.children...)
}

// isBooleanKind reports whether e's kind always translates to the
// solver's Boolean sort: every comparison and the explicit Bool*
// nodes. Other width-1 nodes vary (a one-bit extract or a width-1
// constant becomes a Bool, a width-1 symbol or array read stays a
// one-bit bitvector), so callers coerce with asBool/asBV1.
func isBooleanKind(k int) bool {
	switch k {
	case KindEq, KindUlt, KindUle, KindSlt, KindSle,
		KindFOeq, KindFOne, KindFOlt, KindFOle, KindFOgt, KindFOge,
		KindFUeq, KindFUne, KindFUlt, KindFUle, KindFUgt, KindFUge,
		KindFOrd, KindFUno,
		KindBoolConst, KindBoolNot, KindBoolAnd, KindBoolOr:
		return true
	}
	return false
}

// isFPKind reports whether e produces a floating-point sorted value.
func isFPKind(k int) bool {
	switch k {
	case KindFConst, KindFExt, KindUToF, KindSToF, KindExplicitFloat,
		KindFAdd, KindFSub, KindFMul, KindFDiv, KindFRem,
		KindFSqrt, KindFNearbyInt, KindFAbs, KindFMin, KindFMax:
		return true
	}
	return false
}

package gosmt

import (
	"errors"
	"unsafe"
)

var (
	errEmptyConstantArray             = errors.New("gosmt: constant array must have at least one element")
	errMismatchedConstantArrayWidths  = errors.New("gosmt: constant array elements must share one width")
)

// Array describes a symbolic memory object: a name, the bit width of
// its index and element sorts, and, for constant arrays, the concrete
// backing values. Reads against it are expressed as a readExpr
// carrying the update chain (if any) layered on top of this root by
// prior writes; see UpdateNode.
type Array struct {
	Name   string
	Domain uint // index width
	Range  uint // element width
	Size   uint64
	Values []*BVConst // non-nil only for a constant array
}

// MakeArray builds a fresh symbolic array descriptor.
func MakeArray(name string, domain, rangeWidth uint) *Array {
	return &Array{Name: name, Domain: domain, Range: rangeWidth}
}

// MakeConstantArray builds an array descriptor backed by concrete
// values. A zero-length values slice is rejected: a constant array
// with no elements has no sensible constant interpretation to give
// the solver, and every caller retrieved alongside this one that
// constructs constant arrays first checks the backing store is
// non-empty before doing so.
func MakeConstantArray(name string, domain uint, values []*BVConst) (*Array, error) {
	if len(values) == 0 {
		return nil, errEmptyConstantArray
	}
	rangeWidth := values[0].Size
	for _, v := range values {
		if v.Size != rangeWidth {
			return nil, errMismatchedConstantArrayWidths
		}
	}
	return &Array{Name: name, Domain: domain, Range: rangeWidth, Size: uint64(len(values)), Values: values}, nil
}

func (a *Array) IsConstant() bool { return a.Values != nil }

func (a *Array) rawPtr() uintptr { return uintptr(unsafe.Pointer(a)) }

// UpdateNode is one link of the write chain threaded behind an array
// read: "index := value, then whatever was layered before me". A nil
// *UpdateNode means "no writes yet, read the root array directly".
// The chain is built and walked tail-to-head (most recent write
// first), matching the order a front-end appends writes in.
type UpdateNode struct {
	Tail  *UpdateNode
	Index expr
	Value expr
}

func mkUpdateNode(tail *UpdateNode, index, value expr) *UpdateNode {
	return &UpdateNode{Tail: tail, Index: index, Value: value}
}

func (u *UpdateNode) rawPtr() uintptr { return uintptr(unsafe.Pointer(u)) }

// depth counts the writes layered on top of the root by walking the
// chain to its end. arrayForUpdate memoises every node regardless of
// chain length, so this carries no translation-time caching decision;
// it is a plain chain-length query.
func (u *UpdateNode) depth() int {
	n := 0
	for cur := u; cur != nil; cur = cur.Tail {
		n++
	}
	return n
}

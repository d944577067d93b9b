package gosmt

import (
	"fmt"
	"math"
	"math/big"
)

// fpLayout describes how an IEEE-754-family bit pattern of a given
// total width splits into sign/exponent/fraction fields. x87's 80-bit
// extended format is the odd one out: its integer bit (the "hidden"
// bit of every other format) is stored explicitly rather than
// implied, which is exactly the detail the F80 shim in f80.go exists
// to paper over.
type fpLayout struct {
	width     uint
	expBits   uint
	fracBits  uint
	explicitJ bool // x87 extended: bit 63 is an explicit integer bit
}

var fpLayouts = map[uint]fpLayout{
	16:  {width: 16, expBits: 5, fracBits: 10},
	32:  {width: 32, expBits: 8, fracBits: 23},
	64:  {width: 64, expBits: 11, fracBits: 52},
	128: {width: 128, expBits: 15, fracBits: 112},
	80:  {width: 80, expBits: 15, fracBits: 63, explicitJ: true},
}

func layoutFor(width uint) (fpLayout, error) {
	l, ok := fpLayouts[width]
	if !ok {
		return fpLayout{}, fmt.Errorf("gosmt: unsupported floating-point width %d", width)
	}
	return l, nil
}

// FConst is the bit-pattern payload of a constant floating-point
// node: the raw width-sized bit pattern plus the width itself, mirror
// image of how BVConst pairs a big.Int with a Size. Field accessors
// below split Bits into sign/exponent/fraction (and, for width 80,
// the explicit integer bit) the way the solver's fp_fp constructor
// expects them.
type FConst struct {
	Width uint
	Bits  *big.Int
}

func mustLayout(width uint) fpLayout {
	l, err := layoutFor(width)
	if err != nil {
		panic(err)
	}
	return l
}

// MakeFConstFromBits builds a constant from a raw bit pattern already
// packed the way the format expects (sign in the top bit, exponent
// next, fraction in the low bits; for width 80, the explicit integer
// bit sits directly above the 63-bit fraction).
func MakeFConstFromBits(width uint, bits *big.Int) (*FConst, error) {
	if _, err := layoutFor(width); err != nil {
		return nil, err
	}
	mask := new(big.Int).Lsh(bigOne, width)
	mask.Sub(mask, bigOne)
	b := new(big.Int).And(bits, mask)
	return &FConst{Width: width, Bits: b}, nil
}

// MakeFConstFromFloat64 packs a double-precision constant.
func MakeFConstFromFloat64(v float64) *FConst {
	bits := new(big.Int).SetUint64(math.Float64bits(v))
	return &FConst{Width: 64, Bits: bits}
}

// MakeFConstFromFloat32 packs a single-precision constant.
func MakeFConstFromFloat32(v float32) *FConst {
	bits := new(big.Int).SetUint64(uint64(math.Float32bits(v)))
	return &FConst{Width: 32, Bits: bits}
}

// MakeFConstZero builds +0 or -0 of the given width.
func MakeFConstZero(width uint, negative bool) *FConst {
	l := mustLayout(width)
	bits := big.NewInt(0)
	if negative {
		bits.SetBit(bits, int(l.width-1), 1)
	}
	return &FConst{Width: width, Bits: bits}
}

// MakeFConstNaN builds the canonical quiet NaN of the given width:
// all exponent bits set, top fraction bit set, sign clear.
func MakeFConstNaN(width uint) *FConst {
	l := mustLayout(width)
	bits := big.NewInt(0)
	expAllOnes := new(big.Int).Lsh(bigOne, l.expBits)
	expAllOnes.Sub(expAllOnes, bigOne)
	bits.Or(bits, new(big.Int).Lsh(expAllOnes, l.fracBits))
	bits.SetBit(bits, int(l.fracBits-1), 1)
	if l.explicitJ {
		bits.SetBit(bits, int(l.fracBits), 1)
	}
	return &FConst{Width: width, Bits: bits}
}

func (c *FConst) layout() fpLayout { return mustLayout(c.Width) }

// SignBit returns 0 or 1.
func (c *FConst) SignBit() uint {
	l := c.layout()
	if c.Bits.Bit(int(l.width-1)) == 1 {
		return 1
	}
	return 0
}

// ExponentBits returns the raw (biased) exponent field.
func (c *FConst) ExponentBits() *big.Int {
	l := c.layout()
	shift := l.fracBits
	if l.explicitJ {
		shift++
	}
	e := new(big.Int).Rsh(c.Bits, shift)
	mask := new(big.Int).Lsh(bigOne, l.expBits)
	mask.Sub(mask, bigOne)
	return e.And(e, mask)
}

// HiddenBit returns the integer ("J") bit. For every format but the
// 80-bit extended one this is implied (1 unless the exponent field is
// all zero, i.e. a subnormal or zero); for width 80 it is stored
// explicitly in the bit pattern and simply read back.
func (c *FConst) HiddenBit() uint {
	l := c.layout()
	if l.explicitJ {
		if c.Bits.Bit(int(l.fracBits)) == 1 {
			return 1
		}
		return 0
	}
	if c.ExponentBits().Sign() == 0 {
		return 0
	}
	return 1
}

// FractionBits returns the explicit fraction field (excluding any
// hidden/integer bit).
func (c *FConst) FractionBits() *big.Int {
	l := c.layout()
	mask := new(big.Int).Lsh(bigOne, l.fracBits)
	mask.Sub(mask, bigOne)
	return new(big.Int).And(c.Bits, mask)
}

func (c *FConst) isExponentAllOnes() bool {
	l := c.layout()
	allOnes := new(big.Int).Lsh(bigOne, l.expBits)
	allOnes.Sub(allOnes, bigOne)
	return c.ExponentBits().Cmp(allOnes) == 0
}

// IsNaN reports whether the pattern is a NaN of its format.
func (c *FConst) IsNaN() bool {
	return c.isExponentAllOnes() && c.FractionBits().Sign() != 0
}

// IsInf reports whether the pattern is +/-infinity.
func (c *FConst) IsInf() bool {
	return c.isExponentAllOnes() && c.FractionBits().Sign() == 0
}

// IsZero reports whether the pattern is +/-0.
func (c *FConst) IsZero() bool {
	return c.ExponentBits().Sign() == 0 && c.FractionBits().Sign() == 0
}

func (c *FConst) String() string {
	if c.IsNaN() {
		return "NaN"
	}
	if c.IsInf() {
		if c.SignBit() == 1 {
			return "-inf"
		}
		return "+inf"
	}
	switch c.Width {
	case 32:
		return fmt.Sprintf("%g", math.Float32frombits(uint32(c.Bits.Uint64())))
	case 64:
		return fmt.Sprintf("%g", math.Float64frombits(c.Bits.Uint64()))
	default:
		return fmt.Sprintf("fp%d:0x%x", c.Width, c.Bits)
	}
}

// Eq compares two constants bit-for-bit, not with IEEE-754 equality
// semantics: -0 and +0 differ, and two NaNs are equal exactly when
// their bit patterns are identical.
func (c *FConst) Eq(o *FConst) bool {
	return c.Width == o.Width && c.Bits.Cmp(o.Bits) == 0
}

package exchange

import (
	"fmt"

	"github.com/holiman/uint256"
)

// amountBits is the width of every stored amount.
const amountBits = 128

// Amount is an unsigned 128-bit quantity held in a uint256 word.
type Amount = uint256.Int

// NewAmount returns an Amount holding v.
func NewAmount(v uint64) Amount {
	var a Amount
	a.SetUint64(v)
	return a
}

// ParseAmount reads a base-10 string into an Amount and rejects values wider than 128 bits.
func ParseAmount(s string) (Amount, error) {
	var a Amount
	if err := a.SetFromDecimal(s); err != nil {
		return a, fmt.Errorf("%w: %v", ErrorInvalidAmount, err)
	}
	if a.BitLen() > amountBits {
		return a, fmt.Errorf("%w: %v exceeds 128 bits", ErrorInvalidAmount, s)
	}
	return a, nil
}

// MulDiv returns floor(a*b/c). The product is computed at 512 bits so it never wraps; a zero
// divisor or a result that does not fit in 128 bits is a programming error and panics.
func MulDiv(a, b, c *Amount) Amount {
	if c.IsZero() {
		panic("exchange: MulDiv by zero")
	}
	var z Amount
	if _, overflow := z.MulDivOverflow(a, b, c); overflow {
		panic("exchange: MulDiv overflow")
	}
	mustFit(&z)
	return z
}

func mulDiv64(a *Amount, b, c uint64) Amount {
	bb, cc := NewAmount(b), NewAmount(c)
	return MulDiv(a, &bb, &cc)
}

func add(a, b *Amount) Amount {
	var z Amount
	z.Add(a, b)
	mustFit(&z)
	return z
}

// sub panics on underflow; callers check their pre-conditions first.
func sub(a, b *Amount) Amount {
	var z Amount
	if _, underflow := z.SubOverflow(a, b); underflow {
		panic("exchange: amount underflow")
	}
	return z
}

// fits reports whether a is a valid 128-bit amount.
func fits(a *Amount) bool {
	return a.BitLen() <= amountBits
}

func mustFit(a *Amount) {
	if a.BitLen() > amountBits {
		panic("exchange: amount exceeds 128 bits")
	}
}

package model

import (
	"fmt"
	"math/big"

	"github.com/holiman/uint256"
)

// maxU128 is 2^128 - 1, the ceiling every Amount must respect.
var maxU128 = new(big.Int).Sub(new(big.Int).Lsh(big.NewInt(1), 128), big.NewInt(1))

// Amount is a u128 fungible-token quantity. It is backed by a 256-bit
// integer (the widest fixed-width type the dependency pool offers) with
// every constructor and mutator enforcing the u128 ceiling, so a value
// that would overflow u128 is rejected at the boundary instead of
// silently wrapping.
type Amount struct {
	v uint256.Int
}

// Zero is the additive identity.
var Zero = Amount{}

// NewAmount builds an Amount from a uint64, always within u128 range.
func NewAmount(n uint64) Amount {
	var a Amount
	a.v.SetUint64(n)
	return a
}

// AmountFromBig builds an Amount from a big.Int, rejecting negative values
// and anything that would not fit in 128 bits.
func AmountFromBig(n *big.Int) (Amount, error) {
	if n.Sign() < 0 {
		return Amount{}, fmt.Errorf("amount %s is negative", n)
	}
	if n.Cmp(maxU128) > 0 {
		return Amount{}, fmt.Errorf("amount %s exceeds u128", n)
	}
	var a Amount
	a.v.SetFromBig(n)
	return a, nil
}

// Uint64 returns the value truncated to 64 bits; callers must only use this
// where the domain guarantees the value fits (test assertions, display).
func (a Amount) Uint64() uint64 {
	return a.v.Uint64()
}

// Big returns the value as a big.Int.
func (a Amount) Big() *big.Int {
	return a.v.ToBig()
}

// IsZero reports whether the amount is exactly zero.
func (a Amount) IsZero() bool {
	return a.v.IsZero()
}

// Cmp compares two amounts the way big.Int.Cmp does.
func (a Amount) Cmp(b Amount) int {
	return a.v.Cmp(&b.v)
}

// Add returns a+b, erroring if the u128 ceiling would be exceeded.
func (a Amount) Add(b Amount) (Amount, error) {
	var out Amount
	overflow := out.v.AddOverflow(&a.v, &b.v)
	if overflow || out.v.Cmp(max128()) > 0 {
		return Amount{}, fmt.Errorf("amount addition overflows u128")
	}
	return out, nil
}

// Sub returns a-b, erroring if b > a.
func (a Amount) Sub(b Amount) (Amount, error) {
	if a.Cmp(b) < 0 {
		return Amount{}, fmt.Errorf("amount subtraction underflows: %s - %s", a, b)
	}
	var out Amount
	out.v.Sub(&a.v, &b.v)
	return out, nil
}

// MulDivFloor returns floor(a*num/den) using integer arithmetic throughout.
func (a Amount) MulDivFloor(num, den uint64) Amount {
	if den == 0 {
		return Amount{}
	}
	var n, d uint256.Int
	n.SetUint64(num)
	d.SetUint64(den)

	var product uint256.Int
	product.Mul(&a.v, &n)

	var out Amount
	out.v.Div(&product, &d)
	return out
}

// DivFloor returns floor(a/den).
func (a Amount) DivFloor(den uint64) Amount {
	return a.MulDivFloor(1, den)
}

func (a Amount) String() string {
	return a.v.Dec()
}

// MarshalJSON renders the amount as a decimal string, since a u128 does not
// fit in a JSON number without risking precision loss in most decoders.
func (a Amount) MarshalJSON() ([]byte, error) {
	return []byte(`"` + a.v.Dec() + `"`), nil
}

// UnmarshalJSON parses the decimal string produced by MarshalJSON.
func (a *Amount) UnmarshalJSON(data []byte) error {
	s := string(data)
	if len(s) >= 2 && s[0] == '"' && s[len(s)-1] == '"' {
		s = s[1 : len(s)-1]
	}
	n, ok := new(big.Int).SetString(s, 10)
	if !ok {
		return fmt.Errorf("amount: invalid decimal %q", s)
	}
	parsed, err := AmountFromBig(n)
	if err != nil {
		return err
	}
	*a = parsed
	return nil
}

// Words128 returns the amount as two little-endian 64-bit words, low word
// first.
func (a Amount) Words128() (lo, hi uint64) {
	return a.v[0], a.v[1]
}

// AmountFromWords128 rebuilds an Amount from the wire's two-word
// representation.
func AmountFromWords128(lo, hi uint64) Amount {
	var a Amount
	a.v[0] = lo
	a.v[1] = hi
	return a
}

func max128() *uint256.Int {
	var m uint256.Int
	m.SetFromBig(maxU128)
	return &m
}

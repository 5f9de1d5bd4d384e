package model

import "math"

// Amount is an escrowed token quantity in base units.
//
// All arithmetic on stakes, vault balances and payouts goes through the
// checked methods below; unchecked +/-/* on Amount values is not allowed
// anywhere funds are computed.
type Amount uint64

// Add returns a+b, or ErrArithmeticOverflow if the sum wraps
func (a Amount) Add(b Amount) (Amount, error) {
	if b > math.MaxUint64-a {
		return 0, ErrArithmeticOverflow
	}
	return a + b, nil
}

// Sub returns a-b, or ErrArithmeticUnderflow if b exceeds a
func (a Amount) Sub(b Amount) (Amount, error) {
	if b > a {
		return 0, ErrArithmeticUnderflow
	}
	return a - b, nil
}

// Mul returns a*n, or ErrArithmeticOverflow if the product wraps
func (a Amount) Mul(n uint64) (Amount, error) {
	if a == 0 || n == 0 {
		return 0, nil
	}
	if a > math.MaxUint64/Amount(n) {
		return 0, ErrArithmeticOverflow
	}
	return a * Amount(n), nil
}

// Split divides a pot evenly across n recipients using integer division.
// The remainder is returned separately so the caller can assign it to a
// deterministic recipient instead of dropping it; share*n + remainder
// always equals the pot exactly.
func (a Amount) Split(n int) (share, remainder Amount, err error) {
	if n <= 0 {
		return 0, 0, ErrInvalidWinners
	}
	share = a / Amount(n)
	remainder = a % Amount(n)
	return share, remainder, nil
}

package token

import "github.com/holiman/uint256"

// feeScale is the fixed-point denominator for fee rates. A rate of 1e15 is
// 0.1% of the transferred amount.
var feeScale = uint256.NewInt(1_000_000_000_000_000_000)

// FeeScale returns the fixed-point denominator for fee rates (1e18).
func FeeScale() *uint256.Int {
	return new(uint256.Int).Set(feeScale)
}

// feeOn computes the fee and net portions of a gross transfer amount:
// fee = floor(amount * rate / feeScale), net = amount - fee.
//
// The multiply runs over a 512-bit intermediate so the product cannot wrap
// before the division, and the division truncates toward zero; the rounding
// favors the payer, never the fee. With rate < feeScale the quotient fits in
// 256 bits, so the overflow branch is unreachable in a constructed ledger,
// but wrapping is rejected rather than assumed away.
func feeOn(amount, rate *uint256.Int) (fee, net *uint256.Int, err error) {
	fee, overflow := new(uint256.Int).MulDivOverflow(amount, rate, feeScale)
	if overflow {
		return nil, nil, ErrOverflow
	}
	net = new(uint256.Int).Sub(amount, fee)
	return fee, net, nil
}

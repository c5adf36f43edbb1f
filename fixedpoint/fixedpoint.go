// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package fixedpoint provides checked 256-bit unsigned arithmetic and the
// scaled precisions used by the reward ledger. No operation wraps: overflow,
// underflow and division by zero are reported as ErrArithmetic.
package fixedpoint

import (
	"github.com/holiman/uint256"
	"github.com/pkg/errors"

	"github.com/vechain/rewardpool/builtin/reverts"
)

// ErrArithmetic is the root of every arithmetic fault.
var ErrArithmetic = reverts.New("arithmetic fault")

var (
	errOverflow  = errors.WithMessage(ErrArithmetic, "overflow")
	errUnderflow = errors.WithMessage(ErrArithmetic, "underflow")
	errDivByZero = errors.WithMessage(ErrArithmetic, "division by zero")
)

// Zero returns a fresh zero value.
func Zero() *uint256.Int {
	return new(uint256.Int)
}

// OrZero returns v, or zero when v is nil. Unset storage decodes to nil in some paths.
func OrZero(v *uint256.Int) *uint256.Int {
	if v == nil {
		return Zero()
	}
	return v
}

// Add returns a + b.
func Add(a, b *uint256.Int) (*uint256.Int, error) {
	z, overflow := new(uint256.Int).AddOverflow(OrZero(a), OrZero(b))
	if overflow {
		return nil, errOverflow
	}
	return z, nil
}

// Sub returns a - b.
func Sub(a, b *uint256.Int) (*uint256.Int, error) {
	z, underflow := new(uint256.Int).SubOverflow(OrZero(a), OrZero(b))
	if underflow {
		return nil, errUnderflow
	}
	return z, nil
}

// MulDiv returns x * y / d, truncated. The intermediate product is computed on
// 512 bits, so only a quotient that does not fit 256 bits overflows.
func MulDiv(x, y, d *uint256.Int) (*uint256.Int, error) {
	if OrZero(d).IsZero() {
		return nil, errDivByZero
	}
	z, overflow := new(uint256.Int).MulDivOverflow(OrZero(x), OrZero(y), d)
	if overflow {
		return nil, errOverflow
	}
	return z, nil
}

// Min returns the smaller of a and b as a copy.
func Min(a, b *uint256.Int) *uint256.Int {
	if OrZero(a).Lt(OrZero(b)) {
		return OrZero(a).Clone()
	}
	return OrZero(b).Clone()
}

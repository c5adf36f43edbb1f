// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package fixedpoint

import (
	"github.com/holiman/uint256"
)

// Precision is a fixed decimal scale. A scaled value v represents v / Unit.
type Precision struct {
	name     string
	decimals uint8
	unit     *uint256.Int
}

var (
	// Index scales cumulative reward indices (reward per unit of principal).
	Index = newPrecision("index", 24)
	// Fee scales the deposit fee rate.
	Fee = newPrecision("fee", 18)
)

func newPrecision(name string, decimals uint8) Precision {
	unit := new(uint256.Int).Exp(uint256.NewInt(10), uint256.NewInt(uint64(decimals)))
	return Precision{name: name, decimals: decimals, unit: unit}
}

func (p Precision) Name() string {
	return p.name
}

func (p Precision) Decimals() uint8 {
	return p.decimals
}

// Unit returns a copy of the scale, i.e. the scaled representation of 1.
func (p Precision) Unit() *uint256.Int {
	return p.unit.Clone()
}

// Fraction returns the scaled representation of num / den.
func (p Precision) Fraction(num, den uint64) (*uint256.Int, error) {
	return MulDiv(uint256.NewInt(num), p.unit, uint256.NewInt(den))
}

// Ratio scales amount / total, i.e. amount * Unit / total.
func (p Precision) Ratio(amount, total *uint256.Int) (*uint256.Int, error) {
	return MulDiv(amount, p.unit, total)
}

// Apply multiplies amount by a scaled value and drops the scale, i.e. amount * scaled / Unit.
func (p Precision) Apply(amount, scaled *uint256.Int) (*uint256.Int, error) {
	return MulDiv(amount, scaled, p.unit)
}

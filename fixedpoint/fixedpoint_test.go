// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package fixedpoint

import (
	"errors"
	"testing"

	"github.com/holiman/uint256"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vechain/rewardpool/builtin/reverts"
)

var maxUint256 = new(uint256.Int).SetAllOne()

func TestAddSub(t *testing.T) {
	z, err := Add(uint256.NewInt(2), uint256.NewInt(3))
	require.NoError(t, err)
	assert.Equal(t, uint64(5), z.Uint64())

	_, err = Add(maxUint256, uint256.NewInt(1))
	assert.True(t, errors.Is(err, ErrArithmetic))
	assert.True(t, reverts.IsRevertErr(err))

	z, err = Sub(uint256.NewInt(3), uint256.NewInt(3))
	require.NoError(t, err)
	assert.True(t, z.IsZero())

	_, err = Sub(uint256.NewInt(2), uint256.NewInt(3))
	assert.ErrorIs(t, err, ErrArithmetic)
	assert.Contains(t, err.Error(), "underflow")

	// nil operands read as zero
	z, err = Add(nil, uint256.NewInt(7))
	require.NoError(t, err)
	assert.Equal(t, uint64(7), z.Uint64())
}

func TestMulDiv(t *testing.T) {
	z, err := MulDiv(uint256.NewInt(10), uint256.NewInt(3), uint256.NewInt(4))
	require.NoError(t, err)
	assert.Equal(t, uint64(7), z.Uint64(), "truncates")

	_, err = MulDiv(uint256.NewInt(1), uint256.NewInt(1), Zero())
	assert.ErrorIs(t, err, ErrArithmetic)
	assert.Contains(t, err.Error(), "division by zero")

	// product wider than 256 bits but quotient fits
	z, err = MulDiv(maxUint256, uint256.NewInt(2), uint256.NewInt(2))
	require.NoError(t, err)
	assert.Equal(t, maxUint256, z)

	_, err = MulDiv(maxUint256, uint256.NewInt(2), uint256.NewInt(1))
	assert.ErrorIs(t, err, ErrArithmetic)
}

func TestMin(t *testing.T) {
	a, b := uint256.NewInt(1), uint256.NewInt(2)
	assert.Equal(t, a, Min(a, b))
	assert.Equal(t, a, Min(b, a))
	m := Min(a, b)
	m.AddUint64(m, 1)
	assert.Equal(t, uint64(1), a.Uint64(), "result is a copy")
}

func TestPrecision(t *testing.T) {
	assert.Equal(t, "1000000000000000000000000", Index.Unit().Dec())
	assert.Equal(t, "1000000000000000000", Fee.Unit().Dec())
	assert.Equal(t, uint8(24), Index.Decimals())
	assert.Equal(t, "fee", Fee.Name())

	half, err := Fee.Fraction(1, 2)
	require.NoError(t, err)
	assert.Equal(t, "500000000000000000", half.Dec())

	// 50 reward over 100 principal
	idx, err := Index.Ratio(uint256.NewInt(50), uint256.NewInt(100))
	require.NoError(t, err)
	assert.Equal(t, "500000000000000000000000", idx.Dec())

	owed, err := Index.Apply(uint256.NewInt(100), idx)
	require.NoError(t, err)
	assert.Equal(t, uint64(50), owed.Uint64())

	tenth, err := Fee.Fraction(1, 10)
	require.NoError(t, err)
	fee, err := Fee.Apply(uint256.NewInt(100), tenth)
	require.NoError(t, err)
	assert.Equal(t, uint64(10), fee.Uint64())

	_, err = Index.Ratio(uint256.NewInt(1), Zero())
	assert.ErrorIs(t, err, ErrArithmetic)
}

// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package accumulator

import (
	"testing"

	"github.com/holiman/uint256"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vechain/rewardpool/builtin/solidity"
	"github.com/vechain/rewardpool/fixedpoint"
	"github.com/vechain/rewardpool/state"
	"github.com/vechain/rewardpool/thor"
)

var asset = thor.BytesToAddress([]byte("reward"))

func newService() *Service {
	return New(solidity.NewContext(thor.Address{1}, state.New(nil)))
}

func u(v uint64) *uint256.Int { return uint256.NewInt(v) }

func TestSettle(t *testing.T) {
	s := newService()

	e, err := s.Get(asset)
	require.NoError(t, err)
	assert.True(t, e.Index.IsZero())
	assert.True(t, e.LastObserved.IsZero())

	// 50 units over 100 principal: 0.5 per unit
	e, changed, err := s.Settle(asset, u(50), u(100))
	require.NoError(t, err)
	assert.True(t, changed)
	half, _ := fixedpoint.Index.Fraction(1, 2)
	assert.Equal(t, half, e.Index)
	assert.Equal(t, u(50), e.LastObserved)

	// idempotent without new balance
	again, changed, err := s.Settle(asset, u(50), u(100))
	require.NoError(t, err)
	assert.False(t, changed)
	assert.Equal(t, e, again)

	stored, err := s.Get(asset)
	require.NoError(t, err)
	assert.Equal(t, e, stored)
}

func TestSettleZeroPrincipal(t *testing.T) {
	s := newService()

	e, changed, err := s.Settle(asset, u(50), new(uint256.Int))
	require.NoError(t, err)
	assert.False(t, changed)
	assert.True(t, e.Index.IsZero())
	assert.True(t, e.LastObserved.IsZero(), "balance stays unobserved until principal exists")

	// credited to whoever holds principal at the next settle
	e, changed, err = s.Settle(asset, u(50), u(10))
	require.NoError(t, err)
	assert.True(t, changed)
	five, _ := fixedpoint.Index.Fraction(5, 1)
	assert.Equal(t, five, e.Index)
}

func TestSettleTruncates(t *testing.T) {
	s := newService()
	e, _, err := s.Settle(asset, u(1), u(3))
	require.NoError(t, err)
	expected, _ := fixedpoint.Index.Fraction(1, 3)
	assert.Equal(t, expected, e.Index)
	assert.Equal(t, u(1), e.LastObserved)
}

func TestSettleBalanceDrop(t *testing.T) {
	s := newService()
	_, _, err := s.Settle(asset, u(50), u(100))
	require.NoError(t, err)

	_, _, err = s.Settle(asset, u(40), u(100))
	assert.ErrorIs(t, err, fixedpoint.ErrArithmetic)
}

func TestPreview(t *testing.T) {
	s := newService()
	_, _, err := s.Settle(asset, u(50), u(100))
	require.NoError(t, err)

	p, err := s.Preview(asset, u(150), u(100))
	require.NoError(t, err)
	assert.Equal(t, u(150), p.LastObserved)
	one5, _ := fixedpoint.Index.Fraction(3, 2)
	assert.Equal(t, one5, p.Index)

	stored, err := s.Get(asset)
	require.NoError(t, err)
	assert.Equal(t, u(50), stored.LastObserved, "preview must not write")
}

func TestConsume(t *testing.T) {
	s := newService()
	_, _, err := s.Settle(asset, u(50), u(100))
	require.NoError(t, err)

	require.NoError(t, s.Consume(asset, u(20)))
	e, err := s.Get(asset)
	require.NoError(t, err)
	assert.Equal(t, u(30), e.LastObserved)

	require.NoError(t, s.Consume(asset, new(uint256.Int)))
	assert.ErrorIs(t, s.Consume(asset, u(31)), fixedpoint.ErrArithmetic)
}

func TestBaseline(t *testing.T) {
	s := newService()
	_, _, err := s.Settle(asset, u(50), u(100))
	require.NoError(t, err)

	e, err := s.Baseline(asset, u(80))
	require.NoError(t, err)
	half, _ := fixedpoint.Index.Fraction(1, 2)
	assert.Equal(t, half, e.Index)
	assert.Equal(t, u(80), e.LastObserved)

	stored, err := s.Get(asset)
	require.NoError(t, err)
	assert.Equal(t, e, stored)

	// a lower balance is accepted as the new baseline
	e, err = s.Baseline(asset, u(10))
	require.NoError(t, err)
	assert.Equal(t, u(10), e.LastObserved)
}

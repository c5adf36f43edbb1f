// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package token

import (
	"context"
	"testing"

	"github.com/holiman/uint256"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vechain/rewardpool/fixedpoint"
	"github.com/vechain/rewardpool/state"
	"github.com/vechain/rewardpool/thor"
)

var (
	bankAddr = thor.BytesToAddress([]byte("bank"))
	asset    = thor.BytesToAddress([]byte("vet"))
	alice    = thor.BytesToAddress([]byte("alice"))
	bob      = thor.BytesToAddress([]byte("bob"))
)

func balance(t *testing.T, b *Bank, holder thor.Address) uint64 {
	bal, err := b.BalanceOf(asset, holder)
	require.NoError(t, err)
	return bal.Uint64()
}

func TestMintTransfer(t *testing.T) {
	b := New(bankAddr, state.New(nil))

	require.NoError(t, b.Mint(asset, alice, uint256.NewInt(100)))
	supply, err := b.TotalSupply(asset)
	require.NoError(t, err)
	assert.Equal(t, uint64(100), supply.Uint64())

	require.NoError(t, b.Transfer(context.Background(), asset, alice, bob, uint256.NewInt(30)))
	assert.Equal(t, uint64(70), balance(t, b, alice))
	assert.Equal(t, uint64(30), balance(t, b, bob))

	err = b.Transfer(context.Background(), asset, bob, alice, uint256.NewInt(31))
	assert.ErrorIs(t, err, ErrInsufficientBalance)

	// zero transfer is a no-op even without funds
	require.NoError(t, b.Transfer(context.Background(), asset, thor.Address{9}, alice, new(uint256.Int)))

	assert.ErrorIs(t, b.Mint(thor.Address{}, alice, uint256.NewInt(1)), ErrZeroAsset)
}

func TestMintOverflow(t *testing.T) {
	b := New(bankAddr, state.New(nil))
	require.NoError(t, b.Mint(asset, alice, new(uint256.Int).SetAllOne()))
	assert.ErrorIs(t, b.Mint(asset, bob, uint256.NewInt(1)), fixedpoint.ErrArithmetic)
}

func TestReceiveHook(t *testing.T) {
	b := New(bankAddr, state.New(nil))
	require.NoError(t, b.Mint(asset, alice, uint256.NewInt(10)))

	var received []uint64
	b.OnReceive(bob, func(_ context.Context, a, from thor.Address, amount *uint256.Int) error {
		assert.Equal(t, asset, a)
		assert.Equal(t, alice, from)
		received = append(received, amount.Uint64())
		return nil
	})
	require.NoError(t, b.Transfer(context.Background(), asset, alice, bob, uint256.NewInt(4)))
	assert.Equal(t, []uint64{4}, received)

	b.OnReceive(bob, func(context.Context, thor.Address, thor.Address, *uint256.Int) error {
		return assert.AnError
	})
	assert.ErrorIs(t, b.Transfer(context.Background(), asset, alice, bob, uint256.NewInt(1)), assert.AnError)

	b.OnReceive(bob, nil)
	require.NoError(t, b.Transfer(context.Background(), asset, alice, bob, uint256.NewInt(1)))
	assert.Equal(t, []uint64{4}, received)
}

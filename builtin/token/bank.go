// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package token keeps balances of any number of fungible assets in state.
// It is the custody layer the reward pool moves value through.
package token

import (
	"context"

	"github.com/ethereum/go-ethereum/log"
	"github.com/holiman/uint256"
	"github.com/pkg/errors"

	"github.com/vechain/rewardpool/builtin/reverts"
	"github.com/vechain/rewardpool/builtin/solidity"
	"github.com/vechain/rewardpool/fixedpoint"
	"github.com/vechain/rewardpool/state"
	"github.com/vechain/rewardpool/thor"
)

var (
	logger = log.New("pkg", "token")

	ErrInsufficientBalance = reverts.New("insufficient balance")
	ErrZeroAsset           = reverts.New("zero asset")

	slotBalances = thor.BytesToBytes32([]byte("balances"))
	slotSupply   = thor.BytesToBytes32([]byte("total-supply"))
)

// ReceiveHook runs after a holder has been credited by Transfer.
// A returned error fails the transfer.
type ReceiveHook func(ctx context.Context, asset, from thor.Address, amount *uint256.Int) error

// Bank implements balances of every asset, stored under its own address.
type Bank struct {
	balances *solidity.Mapping[thor.Bytes32, *uint256.Int]
	supply   *solidity.Mapping[thor.Address, *uint256.Int]
	hooks    map[thor.Address]ReceiveHook
}

// New create a new instance.
func New(addr thor.Address, state *state.State) *Bank {
	sctx := solidity.NewContext(addr, state)
	return &Bank{
		balances: solidity.NewMapping[thor.Bytes32, *uint256.Int](sctx, slotBalances),
		supply:   solidity.NewMapping[thor.Address, *uint256.Int](sctx, slotSupply),
		hooks:    make(map[thor.Address]ReceiveHook),
	}
}

func balanceKey(asset, holder thor.Address) thor.Bytes32 {
	return thor.Blake2b(asset.Bytes(), holder.Bytes())
}

// OnReceive installs a hook for holder. A nil hook removes it.
func (b *Bank) OnReceive(holder thor.Address, hook ReceiveHook) {
	if hook == nil {
		delete(b.hooks, holder)
		return
	}
	b.hooks[holder] = hook
}

// BalanceOf returns the balance of holder in asset.
func (b *Bank) BalanceOf(asset, holder thor.Address) (*uint256.Int, error) {
	bal, err := b.balances.Get(balanceKey(asset, holder))
	if err != nil {
		return nil, errors.Wrap(err, "get balance")
	}
	return fixedpoint.OrZero(bal), nil
}

// TotalSupply returns the minted amount of asset.
func (b *Bank) TotalSupply(asset thor.Address) (*uint256.Int, error) {
	supply, err := b.supply.Get(asset)
	if err != nil {
		return nil, errors.Wrap(err, "get supply")
	}
	return fixedpoint.OrZero(supply), nil
}

// Mint creates amount of asset for holder.
func (b *Bank) Mint(asset, holder thor.Address, amount *uint256.Int) error {
	if asset.IsZero() {
		return ErrZeroAsset
	}
	supply, err := b.TotalSupply(asset)
	if err != nil {
		return err
	}
	if supply, err = fixedpoint.Add(supply, amount); err != nil {
		return err
	}
	if err := b.credit(asset, holder, amount); err != nil {
		return err
	}
	logger.Debug("minted", "asset", asset, "holder", holder, "amount", amount)
	return b.supply.Set(asset, supply)
}

// Transfer moves amount of asset from one holder to another, then runs the
// receive hook of the recipient. Zero amounts are no-ops.
func (b *Bank) Transfer(ctx context.Context, asset, from, to thor.Address, amount *uint256.Int) error {
	if amount == nil || amount.IsZero() {
		return nil
	}
	if asset.IsZero() {
		return ErrZeroAsset
	}
	bal, err := b.BalanceOf(asset, from)
	if err != nil {
		return err
	}
	if bal.Lt(amount) {
		return errors.WithMessagef(ErrInsufficientBalance, "%v has %v of %v, needs %v", from, bal, asset, amount)
	}
	if err := b.balances.Set(balanceKey(asset, from), new(uint256.Int).Sub(bal, amount)); err != nil {
		return err
	}
	if err := b.credit(asset, to, amount); err != nil {
		return err
	}
	if hook, ok := b.hooks[to]; ok {
		return hook(ctx, asset, from, amount)
	}
	return nil
}

func (b *Bank) credit(asset, holder thor.Address, amount *uint256.Int) error {
	bal, err := b.BalanceOf(asset, holder)
	if err != nil {
		return err
	}
	if bal, err = fixedpoint.Add(bal, amount); err != nil {
		return err
	}
	return b.balances.Set(balanceKey(asset, holder), bal)
}

// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package rewards

import (
	"context"

	"github.com/holiman/uint256"
	"github.com/pkg/errors"

	"github.com/vechain/rewardpool/builtin/rewards/accumulator"
	"github.com/vechain/rewardpool/fixedpoint"
	"github.com/vechain/rewardpool/thor"
)

// AccountInfo is the ledger record of one account for one reward asset.
type AccountInfo struct {
	Principal  *uint256.Int
	RewardDebt *uint256.Int
}

// PendingReward returns what the next settlement would pay account in asset,
// before clamping to the pool balance. Nothing is written.
func (p *Pool) PendingReward(ctx context.Context, account, asset thor.Address) (pending *uint256.Int, err error) {
	err = p.view(ctx, func() error {
		l, err := p.load()
		if err != nil {
			return err
		}
		ok, err := p.registry.Contains(asset)
		if err != nil {
			return err
		}
		if !ok {
			return errors.WithMessagef(ErrUnknownAsset, "%v", asset)
		}
		observed, err := p.heldBalance(l, asset)
		if err != nil {
			return err
		}
		entry, err := p.accumulator.Preview(asset, observed, l.total)
		if err != nil {
			return err
		}
		principal, err := p.stakers.Principal(account)
		if err != nil {
			return err
		}
		earned, err := fixedpoint.Index.Apply(principal, entry.Index)
		if err != nil {
			return err
		}
		debt, err := p.stakers.Debt(account, asset)
		if err != nil {
			return err
		}
		pending, err = fixedpoint.Sub(earned, debt)
		return err
	})
	return
}

// GetAccountInfo returns the principal of account and its reward debt for asset.
func (p *Pool) GetAccountInfo(ctx context.Context, account, asset thor.Address) (info AccountInfo, err error) {
	err = p.view(ctx, func() error {
		if info.Principal, err = p.stakers.Principal(account); err != nil {
			return err
		}
		info.RewardDebt, err = p.stakers.Debt(account, asset)
		return err
	})
	return
}

// RegisteredAssetCount returns the number of registered reward assets.
func (p *Pool) RegisteredAssetCount(ctx context.Context) (count uint64, err error) {
	err = p.view(ctx, func() error {
		count, err = p.registry.Count()
		return err
	})
	return
}

// RewardAssets returns the registered reward assets in settlement order.
func (p *Pool) RewardAssets(ctx context.Context) (assets []thor.Address, err error) {
	err = p.view(ctx, func() error {
		assets, err = p.registry.All()
		return err
	})
	return
}

// RewardAssetInfo returns the stored accrual state of asset and whether it is registered.
// Removed assets keep their last state.
func (p *Pool) RewardAssetInfo(ctx context.Context, asset thor.Address) (entry *accumulator.Entry, registered bool, err error) {
	err = p.view(ctx, func() error {
		if registered, err = p.registry.Contains(asset); err != nil {
			return err
		}
		entry, err = p.accumulator.Get(asset)
		return err
	})
	return
}

func (p *Pool) TotalPrincipal(ctx context.Context) (total *uint256.Int, err error) {
	err = p.view(ctx, func() error {
		total, err = p.stakers.TotalPrincipal()
		return err
	})
	return
}

func (p *Pool) DepositFeeRate(ctx context.Context) (rate *uint256.Int, err error) {
	err = p.view(ctx, func() error {
		rate, err = p.feeRate.Get()
		return err
	})
	return
}

func (p *Pool) FeeCollector(ctx context.Context) (collector thor.Address, err error) {
	err = p.view(ctx, func() error {
		collector, err = p.feeCollector.Get()
		return err
	})
	return
}

func (p *Pool) PrincipalAsset(ctx context.Context) (asset thor.Address, err error) {
	err = p.view(ctx, func() error {
		asset, err = p.principalAsset.Get()
		return err
	})
	return
}

func (p *Pool) Owner(ctx context.Context) (owner thor.Address, err error) {
	err = p.view(ctx, func() error {
		owner, err = p.owner.Get()
		return err
	})
	return
}

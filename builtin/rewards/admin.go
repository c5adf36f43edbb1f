// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package rewards

import (
	"context"

	"github.com/holiman/uint256"
	"github.com/pkg/errors"

	"github.com/vechain/rewardpool/fixedpoint"
	"github.com/vechain/rewardpool/thor"
)

func (p *Pool) authorize(caller thor.Address) error {
	owner, err := p.owner.Get()
	if err != nil {
		return err
	}
	return p.authority.Authorize(caller, owner)
}

// addAsset registers asset with the balance already held as its baseline,
// so that balance is not credited as a reward to the current stakers.
// This includes anything received while a removed asset was unregistered:
// on re-registration that inflow is folded into the baseline and stays in the
// pool undistributed.
func (p *Pool) addAsset(asset thor.Address) error {
	if asset.IsZero() {
		return errors.WithMessage(ErrInvalidIdentity, "zero reward asset")
	}
	if err := p.registry.Add(asset); err != nil {
		return errors.WithMessagef(err, "%v", asset)
	}
	l, err := p.load()
	if err != nil {
		return err
	}
	observed, err := p.heldBalance(l, asset)
	if err != nil {
		return err
	}
	if _, err := p.accumulator.Baseline(asset, observed); err != nil {
		return err
	}
	count, err := p.registry.Count()
	if err != nil {
		return err
	}
	metricRegisteredAssets().Set(int64(count))
	p.emit(RewardAssetAddedEvent{Asset: asset})
	return nil
}

// AddRewardAsset registers a new reward asset.
func (p *Pool) AddRewardAsset(ctx context.Context, caller, asset thor.Address) error {
	return p.run(ctx, "add-asset", func(context.Context) error {
		if err := p.authorize(caller); err != nil {
			return err
		}
		if err := p.addAsset(asset); err != nil {
			return err
		}
		logger.Info("reward asset added", "asset", asset, "by", caller)
		return nil
	})
}

// RemoveRewardAsset settles asset a last time and unregisters it.
// Reward debts of the asset are left in place.
func (p *Pool) RemoveRewardAsset(ctx context.Context, caller, asset thor.Address) error {
	return p.run(ctx, "remove-asset", func(context.Context) error {
		if err := p.authorize(caller); err != nil {
			return err
		}
		l, err := p.load()
		if err != nil {
			return err
		}
		ok, err := p.registry.Contains(asset)
		if err != nil {
			return err
		}
		if !ok {
			return errors.WithMessagef(ErrNotRegistered, "%v", asset)
		}
		if _, err := p.settle(l, asset); err != nil {
			return err
		}
		if err := p.registry.Remove(asset); err != nil {
			return err
		}
		count, err := p.registry.Count()
		if err != nil {
			return err
		}
		metricRegisteredAssets().Set(int64(count))
		p.emit(RewardAssetRemovedEvent{Asset: asset})
		logger.Info("reward asset removed", "asset", asset, "by", caller)
		return nil
	})
}

// SetDepositFeeRate changes the deposit fee, scaled by fixedpoint.Fee.
func (p *Pool) SetDepositFeeRate(ctx context.Context, caller thor.Address, rate *uint256.Int) error {
	return p.run(ctx, "set-fee-rate", func(context.Context) error {
		if err := p.authorize(caller); err != nil {
			return err
		}
		if _, err := p.load(); err != nil {
			return err
		}
		rate = fixedpoint.OrZero(rate)
		if rate.Gt(MaxFeeRate) {
			return errors.WithMessagef(ErrFeeRateTooHigh, "%v above %v", rate, MaxFeeRate)
		}
		old, err := p.feeRate.Get()
		if err != nil {
			return err
		}
		p.feeRate.Set(rate)
		p.emit(FeeRateChangedEvent{Old: old, New: rate.Clone()})
		logger.Info("deposit fee rate changed", "old", old, "new", rate)
		return nil
	})
}

// SetFeeCollector changes the recipient of deposit fees.
func (p *Pool) SetFeeCollector(ctx context.Context, caller, collector thor.Address) error {
	return p.run(ctx, "set-fee-collector", func(context.Context) error {
		if err := p.authorize(caller); err != nil {
			return err
		}
		if _, err := p.load(); err != nil {
			return err
		}
		if collector.IsZero() {
			return errors.WithMessage(ErrInvalidIdentity, "zero fee collector")
		}
		old, err := p.feeCollector.Get()
		if err != nil {
			return err
		}
		p.feeCollector.Set(&collector)
		p.emit(FeeCollectorChangedEvent{Old: old, New: collector})
		return nil
	})
}

// TransferOwnership hands the privileged operations to a new owner.
func (p *Pool) TransferOwnership(ctx context.Context, caller, owner thor.Address) error {
	return p.run(ctx, "transfer-ownership", func(context.Context) error {
		if err := p.authorize(caller); err != nil {
			return err
		}
		if _, err := p.load(); err != nil {
			return err
		}
		if owner.IsZero() {
			return errors.WithMessage(ErrInvalidIdentity, "zero owner")
		}
		old, err := p.owner.Get()
		if err != nil {
			return err
		}
		p.owner.Set(&owner)
		p.emit(OwnershipTransferredEvent{Old: old, New: owner})
		return nil
	})
}

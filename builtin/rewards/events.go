// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package rewards

import (
	"github.com/holiman/uint256"

	"github.com/vechain/rewardpool/thor"
)

// Event is emitted once the operation that raised it has succeeded.
type Event interface {
	// Signature is the solidity style event signature.
	Signature() string
	// Topic is the keccak256 hash of Signature, as used for EVM log topics.
	Topic() thor.Bytes32
}

// Emitter receives the events of successful operations, in order.
type Emitter interface {
	Emit(Event)
}

// EmitterFunc adapts a function to Emitter.
type EmitterFunc func(Event)

func (f EmitterFunc) Emit(ev Event) { f(ev) }

type logEmitter struct{}

func (logEmitter) Emit(ev Event) {
	logger.Debug("event", "sig", ev.Signature(), "event", ev)
}

const (
	sigDeposit              = "Deposit(address,uint256,uint256)"
	sigWithdraw             = "Withdraw(address,uint256)"
	sigEmergencyWithdraw    = "EmergencyWithdraw(address,uint256)"
	sigRewardClaimed        = "RewardClaimed(address,address,uint256)"
	sigFeeRateChanged       = "FeeRateChanged(uint256,uint256)"
	sigRewardAssetAdded     = "RewardAssetAdded(address)"
	sigRewardAssetRemoved   = "RewardAssetRemoved(address)"
	sigFeeCollectorChanged  = "FeeCollectorChanged(address,address)"
	sigOwnershipTransferred = "OwnershipTransferred(address,address)"
)

var topics = func() map[string]thor.Bytes32 {
	m := make(map[string]thor.Bytes32)
	for _, sig := range []string{
		sigDeposit, sigWithdraw, sigEmergencyWithdraw, sigRewardClaimed, sigFeeRateChanged,
		sigRewardAssetAdded, sigRewardAssetRemoved, sigFeeCollectorChanged, sigOwnershipTransferred,
	} {
		m[sig] = thor.Keccak256([]byte(sig))
	}
	return m
}()

type DepositEvent struct {
	Account thor.Address
	Amount  *uint256.Int
	Fee     *uint256.Int
}

func (DepositEvent) Signature() string { return sigDeposit }
func (DepositEvent) Topic() thor.Bytes32 { return topics[sigDeposit] }

type WithdrawEvent struct {
	Account thor.Address
	Amount  *uint256.Int
}

func (WithdrawEvent) Signature() string { return sigWithdraw }
func (WithdrawEvent) Topic() thor.Bytes32 { return topics[sigWithdraw] }

type EmergencyWithdrawEvent struct {
	Account thor.Address
	Amount  *uint256.Int
}

func (EmergencyWithdrawEvent) Signature() string { return sigEmergencyWithdraw }
func (EmergencyWithdrawEvent) Topic() thor.Bytes32 { return topics[sigEmergencyWithdraw] }

type RewardClaimedEvent struct {
	Account thor.Address
	Asset   thor.Address
	Amount  *uint256.Int
}

func (RewardClaimedEvent) Signature() string { return sigRewardClaimed }
func (RewardClaimedEvent) Topic() thor.Bytes32 { return topics[sigRewardClaimed] }

type FeeRateChangedEvent struct {
	Old *uint256.Int
	New *uint256.Int
}

func (FeeRateChangedEvent) Signature() string { return sigFeeRateChanged }
func (FeeRateChangedEvent) Topic() thor.Bytes32 { return topics[sigFeeRateChanged] }

type RewardAssetAddedEvent struct {
	Asset thor.Address
}

func (RewardAssetAddedEvent) Signature() string { return sigRewardAssetAdded }
func (RewardAssetAddedEvent) Topic() thor.Bytes32 { return topics[sigRewardAssetAdded] }

type RewardAssetRemovedEvent struct {
	Asset thor.Address
}

func (RewardAssetRemovedEvent) Signature() string { return sigRewardAssetRemoved }
func (RewardAssetRemovedEvent) Topic() thor.Bytes32 { return topics[sigRewardAssetRemoved] }

type FeeCollectorChangedEvent struct {
	Old thor.Address
	New thor.Address
}

func (FeeCollectorChangedEvent) Signature() string { return sigFeeCollectorChanged }
func (FeeCollectorChangedEvent) Topic() thor.Bytes32 { return topics[sigFeeCollectorChanged] }

type OwnershipTransferredEvent struct {
	Old thor.Address
	New thor.Address
}

func (OwnershipTransferredEvent) Signature() string { return sigOwnershipTransferred }
func (OwnershipTransferredEvent) Topic() thor.Bytes32 { return topics[sigOwnershipTransferred] }

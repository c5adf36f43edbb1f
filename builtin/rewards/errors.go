// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package rewards

import (
	"github.com/vechain/rewardpool/builtin/reverts"
	"github.com/vechain/rewardpool/builtin/rewards/registry"
)

// Every failure aborts the whole operation. Sentinels are matched with errors.Is.
var (
	ErrUnknownAsset          = reverts.New("unknown reward asset")
	ErrAlreadyRegistered     = registry.ErrAlreadyRegistered
	ErrNotRegistered         = registry.ErrNotRegistered
	ErrInsufficientPrincipal = reverts.New("insufficient principal")
	ErrFeeRateTooHigh        = reverts.New("fee rate too high")
	ErrInvalidIdentity       = reverts.New("invalid identity")
	ErrUnauthorized          = reverts.New("unauthorized")
	ErrReentrantCall         = reverts.New("reentrant call")
	ErrNotInitialized        = reverts.New("pool not initialized")
	ErrAlreadyInitialized    = reverts.New("pool already initialized")
)

// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package rewards

import (
	"github.com/vechain/rewardpool/thor"
)

// Storage slots of the pool-wide parameters. The sub services own their slots:
// registry (reward-assets, reward-asset-count, reward-asset-positions),
// accumulator (reward-accumulators) and stakers (principals, reward-debts, total-principal).
// Mapping values live at Blake2b(key, slot).
var (
	slotPrincipalAsset = thor.BytesToBytes32([]byte("principal-asset"))
	slotFeeCollector   = thor.BytesToBytes32([]byte("fee-collector"))
	slotFeeRate        = thor.BytesToBytes32([]byte("deposit-fee-rate"))
	slotOwner          = thor.BytesToBytes32([]byte("owner"))
)

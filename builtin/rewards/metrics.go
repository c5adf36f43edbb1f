// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package rewards

import "github.com/vechain/rewardpool/metrics"

var (
	metricOps              = metrics.LazyLoadCounterVec("pool_ops_count", []string{"op", "status"})
	metricOpDuration       = metrics.LazyLoadHistogramVec("pool_op_duration_us", []string{"op"}, metrics.BucketOpMicros)
	metricClaims           = metrics.LazyLoadCounterVec("pool_claims_count", []string{"asset"})
	metricRegisteredAssets = metrics.LazyLoadGauge("pool_registered_assets")
)

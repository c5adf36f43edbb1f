// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package metrics

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNoopMetrics(t *testing.T) {
	metrics = defaultNoopMetrics()

	Counter("count1").Add(1)
	CounterVec("countVec1", []string{"op"}).AddWithLabel(1, map[string]string{"thisIsNonsense": "butDoesntBreak"})
	Gauge("gauge1").Set(3)
	GaugeVec("gaugeVec1", []string{"op"}).SetWithLabel(2, map[string]string{"op": "x"})
	HistogramVec("hist1", []string{"op"}, BucketOpMicros).ObserveWithLabels(7, map[string]string{"op": "x"})

	var buf bytes.Buffer
	require.NoError(t, WriteText(&buf))
	require.Zero(t, buf.Len())
}

// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package main

import (
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/holiman/uint256"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vechain/rewardpool/builtin/rewards"
	"github.com/vechain/rewardpool/fixedpoint"
	"github.com/vechain/rewardpool/thor"
)

func TestParseFeeRate(t *testing.T) {
	tests := []struct {
		in      string
		want    uint64
		wantErr bool
	}{
		{in: "", want: 0},
		{in: "0", want: 0},
		{in: "0.05", want: 5e16},
		{in: "5%", want: 5e16},
		{in: " 12.5% ", want: 125e15},
		{in: "0.5", want: 5e17},
		{in: "1", want: 1e18},
		{in: "0.000000000000000001", want: 1},
		{in: "0.0000000000000000001", wantErr: true},
		{in: "-1%", wantErr: true},
		{in: "abc", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := parseFeeRate(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got.Uint64())
		})
	}
}

func TestFormatFeeRate(t *testing.T) {
	assert.Equal(t, "5%", formatFeeRate(uint256.NewInt(5e16)))
	assert.Equal(t, "0%", formatFeeRate(uint256.NewInt(0)))
	assert.Equal(t, "50%", formatFeeRate(rewards.MaxFeeRate))
	assert.Equal(t, "0.0000000000000001%", formatFeeRate(uint256.NewInt(1)))
}

func TestParseAmount(t *testing.T) {
	v, err := parseAmount("1000")
	require.NoError(t, err)
	assert.Equal(t, uint64(1000), v.Uint64())

	_, err = parseAmount("")
	assert.Error(t, err)
	_, err = parseAmount("1.5")
	assert.Error(t, err)
	_, err = parseAmount("-3")
	assert.Error(t, err)
}

func TestLoadConfig(t *testing.T) {
	cfg, err := loadConfig("")
	require.NoError(t, err)
	assert.Equal(t, defaultPoolAddress, cfg.PoolAddress)
	assert.Equal(t, defaultBankAddress, cfg.BankAddress)

	path := filepath.Join(t.TempDir(), "pool.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
principal-asset: "0x0000000000000000000000000000000000000001"
reward-asset: "0x0000000000000000000000000000000000000002"
fee-collector: "0x0000000000000000000000000000000000000003"
owner: "0x0000000000000000000000000000000000000004"
fee-rate: "2%"
`), 0o600))

	cfg, err = loadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, defaultPoolAddress, cfg.PoolAddress)
	assert.Equal(t, thor.BytesToAddress([]byte{1}), cfg.PrincipalAsset)

	params, err := cfg.params()
	require.NoError(t, err)
	assert.Equal(t, thor.BytesToAddress([]byte{2}), params.RewardAsset)
	assert.Equal(t, thor.BytesToAddress([]byte{3}), params.FeeCollector)
	assert.Equal(t, thor.BytesToAddress([]byte{4}), params.Owner)
	fee, err := fixedpoint.Fee.Fraction(2, 100)
	require.NoError(t, err)
	assert.Equal(t, fee, params.FeeRate)
}

func TestLoadConfigInvalid(t *testing.T) {
	dir := t.TempDir()
	write := func(name, body string) string {
		path := filepath.Join(dir, name)
		require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
		return path
	}

	_, err := loadConfig(filepath.Join(dir, "missing.yaml"))
	assert.Error(t, err)

	_, err = loadConfig(write("bad-addr.yaml", `owner: "0x12"`))
	assert.Error(t, err)

	_, err = loadConfig(write("same.yaml", `
pool-address: "0x0000000000000000000000000000000000000009"
bank-address: "0x0000000000000000000000000000000000000009"
`))
	assert.Error(t, err)

	cfg, err := loadConfig(write("bad-fee.yaml", `fee-rate: "ten"`))
	require.NoError(t, err)
	_, err = cfg.params()
	assert.Error(t, err)
}

func TestReadIntFromUInt64Flag(t *testing.T) {
	got, err := readIntFromUInt64Flag(42)
	require.NoError(t, err)
	assert.Equal(t, 42, got)

	_, err = readIntFromUInt64Flag(uint64(math.MaxInt) + 1)
	assert.Error(t, err)
}

// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package main

import (
	"os"
	"strings"

	"github.com/holiman/uint256"
	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"

	"github.com/vechain/rewardpool/builtin/rewards"
	"github.com/vechain/rewardpool/fixedpoint"
	"github.com/vechain/rewardpool/thor"
)

var (
	defaultPoolAddress = thor.MustParseAddress("0x0000000000000000000000000000726577617264")
	defaultBankAddress = thor.MustParseAddress("0x0000000000000000000000000000000062616e6b")
)

type poolConfig struct {
	PoolAddress    thor.Address `yaml:"pool-address"`
	BankAddress    thor.Address `yaml:"bank-address"`
	PrincipalAsset thor.Address `yaml:"principal-asset"`
	RewardAsset    thor.Address `yaml:"reward-asset"`
	FeeCollector   thor.Address `yaml:"fee-collector"`
	FeeRate        string       `yaml:"fee-rate"`
	Owner          thor.Address `yaml:"owner"`
}

func defaultConfig() *poolConfig {
	return &poolConfig{
		PoolAddress: defaultPoolAddress,
		BankAddress: defaultBankAddress,
		FeeRate:     "0",
	}
}

// loadConfig reads the config at path. An empty path yields the defaults.
func loadConfig(path string) (*poolConfig, error) {
	cfg := defaultConfig()
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "read config")
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, errors.Wrap(err, "decode config")
	}
	if cfg.PoolAddress.IsZero() {
		return nil, errors.New("config: pool-address must not be zero")
	}
	if cfg.BankAddress.IsZero() {
		return nil, errors.New("config: bank-address must not be zero")
	}
	if cfg.PoolAddress == cfg.BankAddress {
		return nil, errors.New("config: pool-address and bank-address must differ")
	}
	return cfg, nil
}

func (c *poolConfig) params() (rewards.Params, error) {
	rate, err := parseFeeRate(c.FeeRate)
	if err != nil {
		return rewards.Params{}, errors.Wrap(err, "config: fee-rate")
	}
	return rewards.Params{
		PrincipalAsset: c.PrincipalAsset,
		RewardAsset:    c.RewardAsset,
		FeeCollector:   c.FeeCollector,
		FeeRate:        rate,
		Owner:          c.Owner,
	}, nil
}

// parseFeeRate converts "0.05" or "5%" into a rate scaled by fixedpoint.Fee.
func parseFeeRate(s string) (*uint256.Int, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return fixedpoint.Zero(), nil
	}
	percent := strings.HasSuffix(s, "%")
	d, err := decimal.NewFromString(strings.TrimSuffix(s, "%"))
	if err != nil {
		return nil, errors.Wrapf(err, "invalid fee rate %q", s)
	}
	if percent {
		d = d.Shift(-2)
	}
	if d.IsNegative() {
		return nil, errors.Errorf("negative fee rate %q", s)
	}
	scaled := d.Shift(int32(fixedpoint.Fee.Decimals()))
	if !scaled.IsInteger() {
		return nil, errors.Errorf("fee rate %q exceeds %d decimals", s, fixedpoint.Fee.Decimals())
	}
	rate, err := uint256.FromDecimal(scaled.String())
	if err != nil {
		return nil, errors.Wrapf(err, "fee rate %q out of range", s)
	}
	return rate, nil
}

// formatFeeRate renders a scaled rate as a percentage.
func formatFeeRate(rate *uint256.Int) string {
	d, err := decimal.NewFromString(rate.Dec())
	if err != nil {
		return rate.Dec()
	}
	return d.Shift(2-int32(fixedpoint.Fee.Decimals())).String() + "%"
}

func parseAmount(s string) (*uint256.Int, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, errors.New("empty amount")
	}
	v, err := uint256.FromDecimal(s)
	if err != nil {
		return nil, errors.Wrapf(err, "invalid amount %q", s)
	}
	return v, nil
}

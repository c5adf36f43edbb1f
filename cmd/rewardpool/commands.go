// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package main

import (
	"context"
	"fmt"

	"github.com/davecgh/go-spew/spew"
	"github.com/holiman/uint256"
	"gopkg.in/urfave/cli.v1"

	"github.com/vechain/rewardpool/builtin/rewards/accumulator"
	"github.com/vechain/rewardpool/thor"
)

var commands = []cli.Command{
	{
		Name:   "init",
		Usage:  "initialize the pool from the config file",
		Action: withLedger(initAction),
	},
	{
		Name:   "mint",
		Usage:  "mint an asset to an address",
		Flags:  []cli.Flag{assetFlag, toFlag, amountFlag},
		Action: withLedger(mintAction),
	},
	{
		Name:   "fund",
		Usage:  "send reward assets to the pool",
		Flags:  []cli.Flag{assetFlag, fromFlag, amountFlag},
		Action: withLedger(fundAction),
	},
	{
		Name:   "deposit",
		Usage:  "deposit principal",
		Flags:  []cli.Flag{accountFlag, amountFlag},
		Action: withLedger(depositAction),
	},
	{
		Name:   "withdraw",
		Usage:  "withdraw principal and collect pending rewards",
		Flags:  []cli.Flag{accountFlag, amountFlag},
		Action: withLedger(withdrawAction),
	},
	{
		Name:   "harvest",
		Usage:  "collect pending rewards without touching principal",
		Flags:  []cli.Flag{accountFlag},
		Action: withLedger(harvestAction),
	},
	{
		Name:   "emergency-withdraw",
		Usage:  "withdraw all principal, forfeiting pending rewards",
		Flags:  []cli.Flag{accountFlag},
		Action: withLedger(emergencyWithdrawAction),
	},
	{
		Name:   "settle",
		Usage:  "fold newly received rewards of an asset into its index",
		Flags:  []cli.Flag{assetFlag},
		Action: withLedger(settleAction),
	},
	{
		Name:   "add-asset",
		Usage:  "register a reward asset",
		Flags:  []cli.Flag{callerFlag, assetFlag},
		Action: withLedger(addAssetAction),
	},
	{
		Name:   "remove-asset",
		Usage:  "unregister a reward asset",
		Flags:  []cli.Flag{callerFlag, assetFlag},
		Action: withLedger(removeAssetAction),
	},
	{
		Name:   "set-fee",
		Usage:  "change the deposit fee rate",
		Flags:  []cli.Flag{callerFlag, rateFlag},
		Action: withLedger(setFeeAction),
	},
	{
		Name:   "set-fee-collector",
		Usage:  "change the deposit fee collector",
		Flags:  []cli.Flag{callerFlag, collectorFlag},
		Action: withLedger(setFeeCollectorAction),
	},
	{
		Name:   "pending",
		Usage:  "show the pending reward of an account",
		Flags:  []cli.Flag{accountFlag, assetFlag},
		Action: withLedger(pendingAction),
	},
	{
		Name:   "info",
		Usage:  "show the principal and reward debt of an account",
		Flags:  []cli.Flag{accountFlag, assetFlag},
		Action: withLedger(infoAction),
	},
	{
		Name:   "balance",
		Usage:  "show the asset balance of an address",
		Flags:  []cli.Flag{assetFlag, accountFlag},
		Action: withLedger(balanceAction),
	},
	{
		Name:   "status",
		Usage:  "show pool parameters and reward assets",
		Flags:  []cli.Flag{dumpFlag},
		Action: withLedger(statusAction),
	},
}

func initAction(ctx *cli.Context, l *ledger) error {
	params, err := l.cfg.params()
	if err != nil {
		return err
	}
	return l.pool.Initialize(context.Background(), params)
}

func mintAction(ctx *cli.Context, l *ledger) error {
	asset, err := parseAddressFlag(ctx, assetFlag)
	if err != nil {
		return err
	}
	to, err := parseAddressFlag(ctx, toFlag)
	if err != nil {
		return err
	}
	amount, err := parseAmountFlag(ctx)
	if err != nil {
		return err
	}
	return l.bank.Mint(asset, to, amount)
}

func fundAction(ctx *cli.Context, l *ledger) error {
	asset, err := parseAddressFlag(ctx, assetFlag)
	if err != nil {
		return err
	}
	amount, err := parseAmountFlag(ctx)
	if err != nil {
		return err
	}
	if ctx.String(fromFlag.Name) == "" {
		return l.bank.Mint(asset, l.pool.Address(), amount)
	}
	from, err := parseAddressFlag(ctx, fromFlag)
	if err != nil {
		return err
	}
	return l.bank.Transfer(context.Background(), asset, from, l.pool.Address(), amount)
}

func depositAction(ctx *cli.Context, l *ledger) error {
	account, err := parseAddressFlag(ctx, accountFlag)
	if err != nil {
		return err
	}
	amount, err := parseAmountFlag(ctx)
	if err != nil {
		return err
	}
	return l.pool.Deposit(context.Background(), account, amount)
}

func withdrawAction(ctx *cli.Context, l *ledger) error {
	account, err := parseAddressFlag(ctx, accountFlag)
	if err != nil {
		return err
	}
	amount, err := parseAmountFlag(ctx)
	if err != nil {
		return err
	}
	return l.pool.Withdraw(context.Background(), account, amount)
}

func harvestAction(ctx *cli.Context, l *ledger) error {
	account, err := parseAddressFlag(ctx, accountFlag)
	if err != nil {
		return err
	}
	return l.pool.Withdraw(context.Background(), account, new(uint256.Int))
}

func emergencyWithdrawAction(ctx *cli.Context, l *ledger) error {
	account, err := parseAddressFlag(ctx, accountFlag)
	if err != nil {
		return err
	}
	return l.pool.EmergencyWithdraw(context.Background(), account)
}

func settleAction(ctx *cli.Context, l *ledger) error {
	asset, err := parseAddressFlag(ctx, assetFlag)
	if err != nil {
		return err
	}
	return l.pool.Settle(context.Background(), asset)
}

func addAssetAction(ctx *cli.Context, l *ledger) error {
	caller, err := parseAddressFlag(ctx, callerFlag)
	if err != nil {
		return err
	}
	asset, err := parseAddressFlag(ctx, assetFlag)
	if err != nil {
		return err
	}
	return l.pool.AddRewardAsset(context.Background(), caller, asset)
}

func removeAssetAction(ctx *cli.Context, l *ledger) error {
	caller, err := parseAddressFlag(ctx, callerFlag)
	if err != nil {
		return err
	}
	asset, err := parseAddressFlag(ctx, assetFlag)
	if err != nil {
		return err
	}
	return l.pool.RemoveRewardAsset(context.Background(), caller, asset)
}

func setFeeAction(ctx *cli.Context, l *ledger) error {
	caller, err := parseAddressFlag(ctx, callerFlag)
	if err != nil {
		return err
	}
	rate, err := parseFeeRate(ctx.String(rateFlag.Name))
	if err != nil {
		return err
	}
	return l.pool.SetDepositFeeRate(context.Background(), caller, rate)
}

func setFeeCollectorAction(ctx *cli.Context, l *ledger) error {
	caller, err := parseAddressFlag(ctx, callerFlag)
	if err != nil {
		return err
	}
	collector, err := parseAddressFlag(ctx, collectorFlag)
	if err != nil {
		return err
	}
	return l.pool.SetFeeCollector(context.Background(), caller, collector)
}

func pendingAction(ctx *cli.Context, l *ledger) error {
	account, err := parseAddressFlag(ctx, accountFlag)
	if err != nil {
		return err
	}
	asset, err := parseAddressFlag(ctx, assetFlag)
	if err != nil {
		return err
	}
	pending, err := l.pool.PendingReward(context.Background(), account, asset)
	if err != nil {
		return err
	}
	fmt.Fprintln(ctx.App.Writer, pending.Dec())
	return nil
}

func infoAction(ctx *cli.Context, l *ledger) error {
	account, err := parseAddressFlag(ctx, accountFlag)
	if err != nil {
		return err
	}
	asset, err := parseAddressFlag(ctx, assetFlag)
	if err != nil {
		return err
	}
	info, err := l.pool.GetAccountInfo(context.Background(), account, asset)
	if err != nil {
		return err
	}
	fmt.Fprintf(ctx.App.Writer, "principal:   %s\nreward debt: %s\n", info.Principal.Dec(), info.RewardDebt.Dec())
	return nil
}

func balanceAction(ctx *cli.Context, l *ledger) error {
	asset, err := parseAddressFlag(ctx, assetFlag)
	if err != nil {
		return err
	}
	account, err := parseAddressFlag(ctx, accountFlag)
	if err != nil {
		return err
	}
	balance, err := l.bank.BalanceOf(asset, account)
	if err != nil {
		return err
	}
	fmt.Fprintln(ctx.App.Writer, balance.Dec())
	return nil
}

type assetStatus struct {
	Asset   thor.Address
	Balance *uint256.Int
	Entry   *accumulator.Entry
}

type poolStatus struct {
	Pool           thor.Address
	PrincipalAsset thor.Address
	Owner          thor.Address
	FeeCollector   thor.Address
	FeeRate        *uint256.Int
	TotalPrincipal *uint256.Int
	Assets         []assetStatus
}

func readStatus(l *ledger) (*poolStatus, error) {
	ctx := context.Background()
	s := &poolStatus{Pool: l.pool.Address()}
	var err error
	if s.PrincipalAsset, err = l.pool.PrincipalAsset(ctx); err != nil {
		return nil, err
	}
	if s.Owner, err = l.pool.Owner(ctx); err != nil {
		return nil, err
	}
	if s.FeeCollector, err = l.pool.FeeCollector(ctx); err != nil {
		return nil, err
	}
	if s.FeeRate, err = l.pool.DepositFeeRate(ctx); err != nil {
		return nil, err
	}
	if s.TotalPrincipal, err = l.pool.TotalPrincipal(ctx); err != nil {
		return nil, err
	}
	assets, err := l.pool.RewardAssets(ctx)
	if err != nil {
		return nil, err
	}
	for _, asset := range assets {
		entry, _, err := l.pool.RewardAssetInfo(ctx, asset)
		if err != nil {
			return nil, err
		}
		balance, err := l.bank.BalanceOf(asset, l.pool.Address())
		if err != nil {
			return nil, err
		}
		s.Assets = append(s.Assets, assetStatus{Asset: asset, Balance: balance, Entry: entry})
	}
	return s, nil
}

func statusAction(ctx *cli.Context, l *ledger) error {
	s, err := readStatus(l)
	if err != nil {
		return err
	}
	w := ctx.App.Writer
	if ctx.Bool(dumpFlag.Name) {
		cfg := spew.ConfigState{Indent: "  ", DisablePointerAddresses: true, DisableCapacities: true}
		cfg.Fdump(w, s)
		return nil
	}
	fmt.Fprintf(w, "pool:            %v\n", s.Pool)
	fmt.Fprintf(w, "principal asset: %v\n", s.PrincipalAsset)
	fmt.Fprintf(w, "owner:           %v\n", s.Owner)
	fmt.Fprintf(w, "fee collector:   %v\n", s.FeeCollector)
	fmt.Fprintf(w, "fee rate:        %s\n", formatFeeRate(s.FeeRate))
	fmt.Fprintf(w, "total principal: %s\n", s.TotalPrincipal.Dec())
	fmt.Fprintf(w, "reward assets:   %d\n", len(s.Assets))
	for _, a := range s.Assets {
		fmt.Fprintf(w, "  %v index=%s observed=%s balance=%s\n", a.Asset, a.Entry.Index.Dec(), a.Entry.LastObserved.Dec(), a.Balance.Dec())
	}
	return nil
}

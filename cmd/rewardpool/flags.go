// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package main

import (
	"gopkg.in/urfave/cli.v1"
)

const legacyLevelInfo = 3

var (
	dataDirFlag = cli.StringFlag{
		Name:  "data-dir",
		Value: defaultDataDir(),
		Usage: "directory for the ledger database",
	}
	configFlag = cli.StringFlag{
		Name:  "config",
		Usage: "path to the pool config file (yaml)",
	}
	verbosityFlag = cli.Uint64Flag{
		Name:  "verbosity",
		Value: legacyLevelInfo,
		Usage: "log verbosity (0-5)",
	}
	jsonLogsFlag = cli.BoolFlag{
		Name:  "log-json",
		Usage: "output logs in JSON format",
	}
	metricsFlag = cli.BoolFlag{
		Name:  "metrics",
		Usage: "print collected metrics in text exposition format on exit",
	}

	accountFlag = cli.StringFlag{
		Name:  "account",
		Usage: "account address",
	}
	callerFlag = cli.StringFlag{
		Name:  "caller",
		Usage: "address of the caller of an admin operation",
	}
	assetFlag = cli.StringFlag{
		Name:  "asset",
		Usage: "asset address",
	}
	amountFlag = cli.StringFlag{
		Name:  "amount",
		Value: "0",
		Usage: "amount in base units",
	}
	fromFlag = cli.StringFlag{
		Name:  "from",
		Usage: "address the funds are taken from, minted when omitted",
	}
	toFlag = cli.StringFlag{
		Name:  "to",
		Usage: "recipient address",
	}
	rateFlag = cli.StringFlag{
		Name:  "rate",
		Usage: "deposit fee rate, as a fraction (0.05) or a percentage (5%)",
	}
	collectorFlag = cli.StringFlag{
		Name:  "collector",
		Usage: "fee collector address",
	}
	dumpFlag = cli.BoolFlag{
		Name:  "dump",
		Usage: "dump the raw pool status",
	}
)

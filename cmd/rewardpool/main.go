// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package main

import (
	"fmt"
	"os"

	"github.com/ethereum/go-ethereum/log"
	"gopkg.in/urfave/cli.v1"

	"github.com/vechain/rewardpool/metrics"
)

var (
	version   string
	gitCommit string
	gitTag    string
)

func fullVersion() string {
	versionMeta := "release"
	if gitTag == "" {
		versionMeta = "dev"
	}
	return fmt.Sprintf("%s-%s-%s", version, gitCommit, versionMeta)
}

func newApp() *cli.App {
	app := cli.NewApp()
	app.Version = fullVersion()
	app.Name = "rewardpool"
	app.Usage = "Proportional reward distribution ledger"
	app.Copyright = "2025 VeChain Foundation <https://vechain.org/>"
	app.Flags = []cli.Flag{
		dataDirFlag,
		configFlag,
		verbosityFlag,
		jsonLogsFlag,
		metricsFlag,
	}
	app.Commands = commands
	app.Before = func(ctx *cli.Context) error {
		if _, err := initLogger(ctx); err != nil {
			return err
		}
		if ctx.GlobalBool(metricsFlag.Name) {
			metrics.InitializePrometheusMetrics()
		}
		return nil
	}
	app.After = func(ctx *cli.Context) error {
		if !ctx.GlobalBool(metricsFlag.Name) {
			return nil
		}
		if err := metrics.WriteText(ctx.App.Writer); err != nil {
			log.Warn("failed to write metrics", "err", err)
		}
		return nil
	}
	return app
}

func main() {
	if err := newApp().Run(os.Args); err != nil {
		fatal(err)
	}
}

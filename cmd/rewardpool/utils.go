// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package main

import (
	"fmt"
	"io"
	"log/slog"
	"math"
	"os"
	"os/user"
	"path/filepath"

	"github.com/ethereum/go-ethereum/log"
	"github.com/holiman/uint256"
	"github.com/mattn/go-isatty"
	"github.com/pkg/errors"
	"gopkg.in/urfave/cli.v1"

	"github.com/vechain/rewardpool/builtin/reverts"
	"github.com/vechain/rewardpool/builtin/rewards"
	"github.com/vechain/rewardpool/thor"
)

func fatal(args ...any) {
	var w io.Writer
	if isatty.IsTerminal(os.Stderr.Fd()) {
		w = os.Stdout
	} else {
		w = io.MultiWriter(os.Stdout, os.Stderr)
	}
	fmt.Fprint(w, "Fatal: ")
	fmt.Fprintln(w, args...)
	os.Exit(1)
}

func defaultDataDir() string {
	if home := homeDir(); home != "" {
		return filepath.Join(home, ".rewardpool")
	}
	return ""
}

func homeDir() string {
	if home := os.Getenv("HOME"); home != "" {
		return home
	}
	if usr, err := user.Current(); err == nil {
		return usr.HomeDir
	}
	return ""
}

func readIntFromUInt64Flag(val uint64) (int, error) {
	if val > math.MaxInt {
		return 0, fmt.Errorf("invalid value %d: exceeds max int", val)
	}
	return int(val), nil
}

func initLogger(ctx *cli.Context) (*slog.LevelVar, error) {
	verbosity, err := readIntFromUInt64Flag(ctx.GlobalUint64(verbosityFlag.Name))
	if err != nil {
		return nil, errors.Wrap(err, "parse verbosity flag")
	}
	level := new(slog.LevelVar)
	level.Set(log.FromLegacyLevel(verbosity))

	var handler slog.Handler
	if ctx.GlobalBool(jsonLogsFlag.Name) {
		handler = log.JSONHandlerWithLevel(os.Stderr, level)
	} else {
		useColor := isatty.IsTerminal(os.Stderr.Fd()) && os.Getenv("TERM") != "dumb"
		handler = log.NewTerminalHandlerWithLevel(os.Stderr, level, useColor)
	}
	log.SetDefault(log.NewLogger(handler))
	rewards.SetLogger(log.New("pkg", "rewards"))
	return level, nil
}

func parseAddressFlag(ctx *cli.Context, flag cli.StringFlag) (thor.Address, error) {
	s := ctx.String(flag.Name)
	if s == "" {
		return thor.Address{}, fmt.Errorf("missing required flag --%s", flag.Name)
	}
	addr, err := thor.ParseAddress(s)
	if err != nil {
		return thor.Address{}, errors.Wrapf(err, "parse --%s", flag.Name)
	}
	return *addr, nil
}

func parseAmountFlag(ctx *cli.Context) (*uint256.Int, error) {
	amount, err := parseAmount(ctx.String(amountFlag.Name))
	if err != nil {
		return nil, errors.Wrapf(err, "parse --%s", amountFlag.Name)
	}
	return amount, nil
}

// describeError renders pool reverts together with their encoded reason.
func describeError(err error) string {
	if rev, ok := reverts.Unwrap(err); ok {
		return fmt.Sprintf("%v (revert data 0x%x)", err, rev.Bytes())
	}
	return err.Error()
}

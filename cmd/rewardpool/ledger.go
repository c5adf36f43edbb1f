// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/ethereum/go-ethereum/log"
	"github.com/pkg/errors"
	"gopkg.in/urfave/cli.v1"

	"github.com/vechain/rewardpool/builtin/rewards"
	"github.com/vechain/rewardpool/builtin/token"
	"github.com/vechain/rewardpool/lvldb"
	"github.com/vechain/rewardpool/state"
)

// ledger binds a pool and its asset bank to one database.
type ledger struct {
	db   *lvldb.LevelDB
	st   *state.State
	cfg  *poolConfig
	bank *token.Bank
	pool *rewards.Pool
}

func openLedger(ctx *cli.Context, out io.Writer) (*ledger, error) {
	cfg, err := loadConfig(ctx.GlobalString(configFlag.Name))
	if err != nil {
		return nil, err
	}
	dataDir := ctx.GlobalString(dataDirFlag.Name)
	if dataDir == "" {
		return nil, errors.New("unable to infer default data dir, use --data-dir")
	}
	if err := os.MkdirAll(dataDir, 0o700); err != nil {
		return nil, errors.Wrap(err, "create data dir")
	}
	db, err := lvldb.New(filepath.Join(dataDir, "ledger.db"), lvldb.Options{
		CacheSize:              16,
		OpenFilesCacheCapacity: 64,
	})
	if err != nil {
		return nil, errors.Wrap(err, "open ledger database")
	}

	st := state.New(db)
	bank := token.New(cfg.BankAddress, st)
	pool := rewards.New(cfg.PoolAddress, st, bank, rewards.WithEmitter(rewards.EmitterFunc(func(ev rewards.Event) {
		fmt.Fprintf(out, "event %s %+v\n", ev.Signature(), ev)
	})))
	return &ledger{db: db, st: st, cfg: cfg, bank: bank, pool: pool}, nil
}

func (l *ledger) commit() error {
	stage, err := l.st.Commit(l.db.Bulk())
	if err != nil {
		return errors.Wrap(err, "commit ledger changes")
	}
	log.Debug("committed ledger changes", "slots", stage.Len(), "hash", stage.Hash())
	return nil
}

func (l *ledger) close() {
	if err := l.db.Close(); err != nil {
		log.Warn("failed to close ledger database", "err", err)
	}
}

// withLedger opens the ledger, runs fn and commits its changes when fn succeeds.
func withLedger(fn func(ctx *cli.Context, l *ledger) error) func(*cli.Context) error {
	return func(ctx *cli.Context) error {
		l, err := openLedger(ctx, ctx.App.Writer)
		if err != nil {
			return err
		}
		defer l.close()

		if err := fn(ctx, l); err != nil {
			return errors.New(describeError(err))
		}
		return l.commit()
	}
}

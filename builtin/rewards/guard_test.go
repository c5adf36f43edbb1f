// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package rewards

import (
	"context"
	"errors"
	"runtime"
	"testing"
	"time"

	"github.com/holiman/uint256"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sync/errgroup"

	"github.com/vechain/rewardpool/builtin/token"
	"github.com/vechain/rewardpool/thor"
)

func TestReentrantCallRejected(t *testing.T) {
	f := newFixture(t, nil)
	f.deposit(alice, 100)
	f.mint(rew, poolAddr, 50)
	f.events.events = nil

	var (
		reentryErr error
		viewErr    error
		seen       *uint256.Int
	)
	f.bank.OnReceive(alice, func(ctx context.Context, asset, _ thor.Address, _ *uint256.Int) error {
		if asset != rew {
			return nil
		}
		reentryErr = f.pool.Withdraw(ctx, alice, u(100))
		seen, viewErr = f.pool.PendingReward(ctx, alice, rew)
		return reentryErr
	})

	err := f.pool.Withdraw(f.ctx, alice, u(0))
	assert.ErrorIs(t, err, ErrReentrantCall)
	assert.ErrorIs(t, reentryErr, ErrReentrantCall)
	require.NoError(t, viewErr, "views stay readable from inside an operation")
	assert.Zero(t, seen.Uint64(), "ledger is updated before value moves")

	// the failed harvest left nothing behind
	assert.Empty(t, f.events.events)
	assert.Zero(t, f.balance(rew, alice))
	assert.Equal(t, uint64(50), f.balance(rew, poolAddr))
	p, debt := f.info(alice, rew)
	assert.Equal(t, uint64(100), p)
	assert.Zero(t, debt)
	_, last := f.entry(rew)
	assert.Zero(t, last)

	// a hook that swallows the rejection lets the harvest complete once
	f.bank.OnReceive(alice, func(ctx context.Context, _, _ thor.Address, _ *uint256.Int) error {
		reentryErr = f.pool.Deposit(ctx, alice, u(0))
		return nil
	})
	require.NoError(t, f.pool.Withdraw(f.ctx, alice, u(0)))
	assert.ErrorIs(t, reentryErr, ErrReentrantCall)
	assert.Equal(t, uint64(50), f.balance(rew, alice))
}

func TestReentrantCallWithFreshContext(t *testing.T) {
	f := newFixture(t, nil)
	f.deposit(alice, 100)
	f.mint(rew, poolAddr, 50)
	f.events.events = nil

	var reentryErr, viewErr error
	f.bank.OnReceive(alice, func(_ context.Context, asset, _ thor.Address, _ *uint256.Int) error {
		if asset != rew {
			return nil
		}
		reentryErr = f.pool.Withdraw(context.Background(), alice, u(100))
		_, viewErr = f.pool.PendingReward(context.Background(), alice, rew)
		return reentryErr
	})

	done := make(chan error, 1)
	go func() { done <- f.pool.Withdraw(f.ctx, alice, u(0)) }()
	select {
	case err := <-done:
		assert.ErrorIs(t, err, ErrReentrantCall)
	case <-time.After(5 * time.Second):
		t.Fatal("reentrant call blocked")
	}
	assert.ErrorIs(t, reentryErr, ErrReentrantCall)
	assert.ErrorIs(t, viewErr, ErrReentrantCall)

	assert.Empty(t, f.events.events)
	assert.Zero(t, f.balance(rew, alice))
	p, _ := f.info(alice, rew)
	assert.Equal(t, uint64(100), p)

	// the pool is usable again once the operation is over
	f.bank.OnReceive(alice, nil)
	require.NoError(t, f.pool.Withdraw(context.Background(), alice, u(0)))
	assert.Equal(t, uint64(50), f.balance(rew, alice))
}

func TestFailedOperationIsAtomic(t *testing.T) {
	f := newFixture(t, nil)
	f.deposit(bob, 100)
	f.mint(rew, poolAddr, 50)
	f.mint(vet, alice, 50)
	f.events.events = nil

	err := f.pool.Deposit(f.ctx, alice, u(100))
	assert.ErrorIs(t, err, token.ErrInsufficientBalance)

	assert.Empty(t, f.events.events)
	assert.Equal(t, uint64(50), f.balance(vet, alice))
	assert.Equal(t, uint64(100), f.total())
	p, _ := f.info(alice, rew)
	assert.Zero(t, p)
	index, last := f.entry(rew)
	assert.True(t, index.IsZero(), "settlement inside the failed deposit is reverted")
	assert.Zero(t, last)

	// the pool keeps working afterwards
	require.NoError(t, f.pool.Deposit(f.ctx, alice, u(50)))
	assert.Equal(t, uint64(50), f.pending(bob, rew))
	assert.Zero(t, f.pending(alice, rew))
}

func TestCancelledContext(t *testing.T) {
	f := newFixture(t, nil)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	assert.ErrorIs(t, f.pool.Deposit(ctx, alice, u(0)), context.Canceled)
	_, err := f.pool.TotalPrincipal(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestConcurrentDeposits(t *testing.T) {
	f := newFixture(t, nil)
	accounts := []thor.Address{alice, bob, carol, owner}
	for _, a := range accounts {
		f.mint(vet, a, 20)
	}

	var eg errgroup.Group
	for _, a := range accounts {
		eg.Go(func() error {
			for n := 0; n < 20; {
				err := f.pool.Deposit(f.ctx, a, u(1))
				if errors.Is(err, ErrReentrantCall) {
					// rejected while another deposit was moving value
					runtime.Gosched()
					continue
				}
				if err != nil {
					return err
				}
				n++
			}
			return nil
		})
	}
	require.NoError(t, eg.Wait())

	assert.Equal(t, uint64(80), f.total())
	for _, a := range accounts {
		p, _ := f.info(a, rew)
		assert.Equal(t, uint64(20), p)
	}
}

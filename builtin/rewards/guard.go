// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package rewards

import (
	"context"
	"time"

	"github.com/vechain/rewardpool/builtin/reverts"
)

type guardKey struct{}

// entered reports whether ctx was derived inside an operation of p.
func (p *Pool) entered(ctx context.Context) bool {
	owner, _ := ctx.Value(guardKey{}).(*Pool)
	return owner == p
}

// lock acquires the pool lock for a caller outside any operation. While an
// operation moves value the lock holder may be waiting on that very caller,
// so the call is rejected instead of blocking.
func (p *Pool) lock() bool {
	if p.mu.TryLock() {
		return true
	}
	if p.transferring.Load() {
		return false
	}
	p.mu.Lock()
	return true
}

// run executes fn as one atomic operation. The context handed to fn is marked,
// so a mutator reached again through it fails with ErrReentrantCall.
// Callers arriving with another context while value moves fail the same way.
// Events are emitted after the lock is released.
func (p *Pool) run(ctx context.Context, op string, fn func(ctx context.Context) error) error {
	if p.entered(ctx) {
		metricOps().AddWithLabel(1, map[string]string{"op": op, "status": "reentrant"})
		return ErrReentrantCall
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	if !p.lock() {
		metricOps().AddWithLabel(1, map[string]string{"op": op, "status": "reentrant"})
		return ErrReentrantCall
	}

	events, err := p.apply(ctx, op, fn)
	if err != nil {
		return err
	}
	for _, ev := range events {
		p.emitter.Emit(ev)
	}
	return nil
}

// apply runs fn with the lock held and releases it on return.
func (p *Pool) apply(ctx context.Context, op string, fn func(ctx context.Context) error) ([]Event, error) {
	defer p.mu.Unlock()

	start := time.Now()
	p.sctx.ResetUsage()
	p.pending = nil
	revision := p.state.NewCheckpoint()

	if err := fn(context.WithValue(ctx, guardKey{}, p)); err != nil {
		p.state.RevertTo(revision)
		p.pending = nil
		if reverts.IsRevertErr(err) {
			metricOps().AddWithLabel(1, map[string]string{"op": op, "status": "reverted"})
			logger.Debug("operation reverted", "op", op, "err", err)
		} else {
			metricOps().AddWithLabel(1, map[string]string{"op": op, "status": "failed"})
			logger.Warn("operation failed", "op", op, "err", err)
		}
		return nil, err
	}
	p.state.MergeTo(revision)
	events := p.pending
	p.pending = nil

	usage := p.sctx.Usage()
	metricOps().AddWithLabel(1, map[string]string{"op": op, "status": "ok"})
	metricOpDuration().ObserveWithLabels(time.Since(start).Microseconds(), map[string]string{"op": op})
	logger.Debug("operation done", "op", op, "slot-reads", usage.Reads, "slot-writes", usage.Writes, "elapsed", time.Since(start))
	return events, nil
}

// view runs a read-only fn. Views reached from inside an operation reuse its lock.
func (p *Pool) view(ctx context.Context, fn func() error) error {
	if !p.entered(ctx) {
		if err := ctx.Err(); err != nil {
			return err
		}
		if !p.lock() {
			return ErrReentrantCall
		}
		defer p.mu.Unlock()
	}
	return fn()
}

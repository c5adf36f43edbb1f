// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package rewards implements a pool where accounts lock a principal asset and
// earn a pro-rata share of any reward asset the pool receives.
//
// Rewards are pushed to the pool by plain transfers. Each reward asset keeps a
// cumulative index of reward per unit of principal, advanced whenever the pool
// balance of that asset grows, so settling an account costs O(registered assets).
package rewards

import (
	"context"
	"sync"
	"sync/atomic"

	"github.com/ethereum/go-ethereum/log"
	"github.com/holiman/uint256"
	"github.com/pkg/errors"

	"github.com/vechain/rewardpool/builtin/rewards/accumulator"
	"github.com/vechain/rewardpool/builtin/rewards/registry"
	"github.com/vechain/rewardpool/builtin/rewards/stakers"
	"github.com/vechain/rewardpool/builtin/solidity"
	"github.com/vechain/rewardpool/fixedpoint"
	"github.com/vechain/rewardpool/state"
	"github.com/vechain/rewardpool/thor"
)

var logger = log.New("pkg", "rewards")

func SetLogger(l log.Logger) {
	logger = l
}

// MaxFeeRate is 50%, scaled by fixedpoint.Fee.
var MaxFeeRate = new(uint256.Int).Rsh(fixedpoint.Fee.Unit(), 1)

// Assets moves and reports balances of transferable assets.
// Transfer must pass ctx to any code it calls back into.
type Assets interface {
	BalanceOf(asset, holder thor.Address) (*uint256.Int, error)
	Transfer(ctx context.Context, asset, from, to thor.Address, amount *uint256.Int) error
}

// Params are the construction parameters of a pool.
type Params struct {
	PrincipalAsset thor.Address
	RewardAsset    thor.Address
	FeeCollector   thor.Address
	// FeeRate is scaled by fixedpoint.Fee and at most MaxFeeRate.
	FeeRate *uint256.Int
	Owner   thor.Address
}

// Option configures a Pool.
type Option func(*Pool)

func WithEmitter(e Emitter) Option {
	return func(p *Pool) { p.emitter = e }
}

func WithAuthority(a Authority) Option {
	return func(p *Pool) { p.authority = a }
}

// Pool is the only mutator of the ledger. Every exported method is atomic:
// storage changes are reverted and no event is emitted when it fails.
type Pool struct {
	addr      thor.Address
	state     *state.State
	sctx      *solidity.Context
	assets    Assets
	emitter   Emitter
	authority Authority

	principalAsset *solidity.Address
	feeCollector   *solidity.Address
	owner          *solidity.Address
	feeRate        *solidity.Uint256

	registry    *registry.Service
	accumulator *accumulator.Service
	stakers     *stakers.Service

	mu           sync.Mutex
	transferring atomic.Bool
	pending      []Event
}

// New create a new instance bound to the pool address addr.
// assets must keep its balances in the same state for operations to be atomic.
func New(addr thor.Address, state *state.State, assets Assets, opts ...Option) *Pool {
	sctx := solidity.NewContext(addr, state)
	p := &Pool{
		addr:      addr,
		state:     state,
		sctx:      sctx,
		assets:    assets,
		emitter:   logEmitter{},
		authority: OwnerOnly,

		principalAsset: solidity.NewAddress(sctx, slotPrincipalAsset),
		feeCollector:   solidity.NewAddress(sctx, slotFeeCollector),
		owner:          solidity.NewAddress(sctx, slotOwner),
		feeRate:        solidity.NewUint256(sctx, slotFeeRate),

		registry:    registry.New(sctx),
		accumulator: accumulator.New(sctx),
		stakers:     stakers.New(sctx),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Address returns the custody address of the pool.
func (p *Pool) Address() thor.Address {
	return p.addr
}

type transfer struct {
	asset    thor.Address
	from, to thor.Address
	amount   *uint256.Int
}

// ledger is what an operation reads once up front.
type ledger struct {
	principalAsset thor.Address
	total          *uint256.Int
}

func (p *Pool) load() (*ledger, error) {
	principalAsset, err := p.principalAsset.Get()
	if err != nil {
		return nil, err
	}
	if principalAsset.IsZero() {
		return nil, ErrNotInitialized
	}
	total, err := p.stakers.TotalPrincipal()
	if err != nil {
		return nil, err
	}
	return &ledger{principalAsset: principalAsset, total: total}, nil
}

// heldBalance is the pool balance of asset that rewards are accounted against.
// Principal in custody is excluded when the asset doubles as principal.
func (p *Pool) heldBalance(l *ledger, asset thor.Address) (*uint256.Int, error) {
	bal, err := p.assets.BalanceOf(asset, p.addr)
	if err != nil {
		return nil, err
	}
	if asset == l.principalAsset {
		held, err := fixedpoint.Sub(bal, l.total)
		if err != nil {
			return nil, errors.WithMessage(err, "principal custody below total principal")
		}
		return held, nil
	}
	return bal, nil
}

func (p *Pool) settle(l *ledger, asset thor.Address) (*accumulator.Entry, error) {
	observed, err := p.heldBalance(l, asset)
	if err != nil {
		return nil, err
	}
	entry, changed, err := p.accumulator.Settle(asset, observed, l.total)
	if err != nil {
		return nil, err
	}
	if changed {
		logger.Debug("settled", "asset", asset, "index", entry.Index, "observed", entry.LastObserved)
	}
	return entry, nil
}

// payOut pays at most what the pool holds and lowers LastObserved by the paid amount.
func (p *Pool) payOut(l *ledger, asset, recipient thor.Address, amount *uint256.Int, plan *[]transfer) (*uint256.Int, error) {
	available, err := p.heldBalance(l, asset)
	if err != nil {
		return nil, err
	}
	paid := fixedpoint.Min(amount, available)
	if paid.Lt(amount) {
		logger.Warn("payout clamped", "asset", asset, "recipient", recipient, "owed", amount, "paid", paid)
	}
	if err := p.accumulator.Consume(asset, paid); err != nil {
		return nil, err
	}
	*plan = append(*plan, transfer{asset: asset, from: p.addr, to: recipient, amount: paid})
	return paid, nil
}

// accrue settles every registered asset, pays account what it earned on p0
// and rebases its debts to p1.
func (p *Pool) accrue(l *ledger, account thor.Address, p0, p1 *uint256.Int, plan *[]transfer) error {
	assets, err := p.registry.All()
	if err != nil {
		return err
	}
	for _, asset := range assets {
		entry, err := p.settle(l, asset)
		if err != nil {
			return err
		}
		earned, err := fixedpoint.Index.Apply(p0, entry.Index)
		if err != nil {
			return err
		}
		debt, err := p.stakers.Debt(account, asset)
		if err != nil {
			return err
		}
		owed, err := fixedpoint.Sub(earned, debt)
		if err != nil {
			return errors.WithMessagef(err, "reward debt of %v above earned for %v", account, asset)
		}
		if !owed.IsZero() {
			paid, err := p.payOut(l, asset, account, owed, plan)
			if err != nil {
				return err
			}
			if !paid.IsZero() {
				p.emit(RewardClaimedEvent{Account: account, Asset: asset, Amount: paid})
				metricClaims().AddWithLabel(1, map[string]string{"asset": asset.String()})
			}
		}
		newDebt, err := fixedpoint.Index.Apply(p1, entry.Index)
		if err != nil {
			return err
		}
		if err := p.stakers.SetDebt(account, asset, newDebt); err != nil {
			return err
		}
	}
	return nil
}

func (p *Pool) execute(ctx context.Context, plan []transfer) error {
	p.transferring.Store(true)
	defer p.transferring.Store(false)

	for _, t := range plan {
		if t.amount.IsZero() {
			continue
		}
		if err := p.assets.Transfer(ctx, t.asset, t.from, t.to, t.amount); err != nil {
			return errors.WithMessagef(err, "transfer %v of %v to %v", t.amount, t.asset, t.to)
		}
	}
	return nil
}

func (p *Pool) emit(ev Event) {
	p.pending = append(p.pending, ev)
}

// Initialize stores the construction parameters and registers the first reward asset.
func (p *Pool) Initialize(ctx context.Context, params Params) error {
	return p.run(ctx, "initialize", func(context.Context) error {
		current, err := p.principalAsset.Get()
		if err != nil {
			return err
		}
		if !current.IsZero() {
			return ErrAlreadyInitialized
		}
		for name, id := range map[string]thor.Address{
			"principal asset": params.PrincipalAsset,
			"reward asset":    params.RewardAsset,
			"fee collector":   params.FeeCollector,
			"owner":           params.Owner,
		} {
			if id.IsZero() {
				return errors.WithMessagef(ErrInvalidIdentity, "zero %s", name)
			}
		}
		rate := fixedpoint.OrZero(params.FeeRate)
		if rate.Gt(MaxFeeRate) {
			return ErrFeeRateTooHigh
		}

		p.principalAsset.Set(&params.PrincipalAsset)
		p.feeCollector.Set(&params.FeeCollector)
		p.owner.Set(&params.Owner)
		p.feeRate.Set(rate)
		p.emit(OwnershipTransferredEvent{New: params.Owner})

		if err := p.addAsset(params.RewardAsset); err != nil {
			return err
		}
		logger.Info("pool initialized",
			"address", p.addr,
			"principal", params.PrincipalAsset,
			"reward", params.RewardAsset,
			"collector", params.FeeCollector,
			"rate", rate,
		)
		return nil
	})
}

// Deposit locks amount of principal from caller, net of the deposit fee, and pays
// out everything caller earned so far. A zero amount only harvests.
func (p *Pool) Deposit(ctx context.Context, caller thor.Address, amount *uint256.Int) error {
	return p.run(ctx, "deposit", func(ctx context.Context) error {
		if caller.IsZero() {
			return ErrInvalidIdentity
		}
		amount = fixedpoint.OrZero(amount)
		l, err := p.load()
		if err != nil {
			return err
		}
		rate, err := p.feeRate.Get()
		if err != nil {
			return err
		}
		collector, err := p.feeCollector.Get()
		if err != nil {
			return err
		}
		fee, err := fixedpoint.Fee.Apply(amount, rate)
		if err != nil {
			return err
		}
		net, err := fixedpoint.Sub(amount, fee)
		if err != nil {
			return err
		}
		p0, err := p.stakers.Principal(caller)
		if err != nil {
			return err
		}
		p1, err := fixedpoint.Add(p0, net)
		if err != nil {
			return err
		}

		plan := []transfer{
			{asset: l.principalAsset, from: caller, to: collector, amount: fee},
			{asset: l.principalAsset, from: caller, to: p.addr, amount: net},
		}
		// settles against the total before this deposit
		if err := p.accrue(l, caller, p0, p1, &plan); err != nil {
			return err
		}
		if err := p.stakers.SetPrincipal(caller, p1); err != nil {
			return err
		}
		if err := p.stakers.AddTotal(net); err != nil {
			return err
		}
		p.emit(DepositEvent{Account: caller, Amount: amount, Fee: fee})
		return p.execute(ctx, plan)
	})
}

// Withdraw returns amount of principal to caller and pays out everything caller
// earned so far. A zero amount only harvests.
func (p *Pool) Withdraw(ctx context.Context, caller thor.Address, amount *uint256.Int) error {
	return p.run(ctx, "withdraw", func(ctx context.Context) error {
		if caller.IsZero() {
			return ErrInvalidIdentity
		}
		amount = fixedpoint.OrZero(amount)
		l, err := p.load()
		if err != nil {
			return err
		}
		p0, err := p.stakers.Principal(caller)
		if err != nil {
			return err
		}
		if amount.Gt(p0) {
			return errors.WithMessagef(ErrInsufficientPrincipal, "%v has %v, requested %v", caller, p0, amount)
		}
		p1 := new(uint256.Int).Sub(p0, amount)

		var plan []transfer
		if err := p.accrue(l, caller, p0, p1, &plan); err != nil {
			return err
		}
		if err := p.stakers.SubTotal(amount); err != nil {
			return err
		}
		if err := p.stakers.SetPrincipal(caller, p1); err != nil {
			return err
		}
		plan = append(plan, transfer{asset: l.principalAsset, from: p.addr, to: caller, amount: amount})
		p.emit(WithdrawEvent{Account: caller, Amount: amount})
		return p.execute(ctx, plan)
	})
}

// EmergencyWithdraw returns all principal of caller without settling.
// Unclaimed rewards are forfeited and stay in the pool, unaccounted.
func (p *Pool) EmergencyWithdraw(ctx context.Context, caller thor.Address) error {
	return p.run(ctx, "emergency-withdraw", func(ctx context.Context) error {
		if caller.IsZero() {
			return ErrInvalidIdentity
		}
		l, err := p.load()
		if err != nil {
			return err
		}
		amount, err := p.stakers.Principal(caller)
		if err != nil {
			return err
		}
		assets, err := p.registry.All()
		if err != nil {
			return err
		}
		if err := p.stakers.SetPrincipal(caller, nil); err != nil {
			return err
		}
		for _, asset := range assets {
			p.stakers.ClearDebt(caller, asset)
		}
		if err := p.stakers.SubTotal(amount); err != nil {
			return err
		}
		p.emit(EmergencyWithdrawEvent{Account: caller, Amount: amount})
		return p.execute(ctx, []transfer{{asset: l.principalAsset, from: p.addr, to: caller, amount: amount}})
	})
}

// Settle folds newly received balance of asset into its index. Anyone may call it.
func (p *Pool) Settle(ctx context.Context, asset thor.Address) error {
	return p.run(ctx, "settle", func(context.Context) error {
		l, err := p.load()
		if err != nil {
			return err
		}
		ok, err := p.registry.Contains(asset)
		if err != nil {
			return err
		}
		if !ok {
			return errors.WithMessagef(ErrUnknownAsset, "%v", asset)
		}
		_, err = p.settle(l, asset)
		return err
	})
}

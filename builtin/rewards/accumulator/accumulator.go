// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package accumulator

import (
	"github.com/holiman/uint256"
	"github.com/pkg/errors"

	"github.com/vechain/rewardpool/builtin/solidity"
	"github.com/vechain/rewardpool/fixedpoint"
	"github.com/vechain/rewardpool/thor"
)

var slotEntries = thor.BytesToBytes32([]byte("reward-accumulators"))

// Entry is the accrual state of one reward asset.
// Index is the reward per unit of principal scaled by fixedpoint.Index.
// LastObserved is the asset balance already accounted into Index.
type Entry struct {
	Index        *uint256.Int
	LastObserved *uint256.Int
}

func (e *Entry) clone() *Entry {
	return &Entry{
		Index:        fixedpoint.OrZero(e.Index).Clone(),
		LastObserved: fixedpoint.OrZero(e.LastObserved).Clone(),
	}
}

// Advance folds the balance growth since LastObserved into Index, spread over total.
// It returns the receiver unchanged when nothing new was observed or nobody holds principal.
// The division truncates and the remainder is not carried.
func (e *Entry) Advance(observed, total *uint256.Int) (*Entry, bool, error) {
	if observed.Eq(e.LastObserved) || total.IsZero() {
		return e, false, nil
	}
	delta, err := fixedpoint.Sub(observed, e.LastObserved)
	if err != nil {
		return nil, false, errors.WithMessage(err, "observed balance below last observed")
	}
	inc, err := fixedpoint.Index.Ratio(delta, total)
	if err != nil {
		return nil, false, err
	}
	index, err := fixedpoint.Add(e.Index, inc)
	if err != nil {
		return nil, false, err
	}
	return &Entry{Index: index, LastObserved: observed.Clone()}, true, nil
}

// Service stores one Entry per reward asset.
type Service struct {
	entries *solidity.Mapping[thor.Address, *Entry]
}

func New(sctx *solidity.Context) *Service {
	return &Service{
		entries: solidity.NewMapping[thor.Address, *Entry](sctx, slotEntries),
	}
}

// Get returns the entry of asset. Never settled assets read as zero.
func (s *Service) Get(asset thor.Address) (*Entry, error) {
	e, err := s.entries.Get(asset)
	if err != nil {
		return nil, err
	}
	if e == nil {
		return &Entry{Index: fixedpoint.Zero(), LastObserved: fixedpoint.Zero()}, nil
	}
	return e.clone(), nil
}

// Preview returns what Settle would store, without writing it.
func (s *Service) Preview(asset thor.Address, observed, total *uint256.Int) (*Entry, error) {
	e, err := s.Get(asset)
	if err != nil {
		return nil, err
	}
	next, _, err := e.Advance(observed, total)
	return next, err
}

// Settle advances and stores the entry of asset. changed reports whether the entry moved.
func (s *Service) Settle(asset thor.Address, observed, total *uint256.Int) (entry *Entry, changed bool, err error) {
	e, err := s.Get(asset)
	if err != nil {
		return nil, false, err
	}
	next, changed, err := e.Advance(observed, total)
	if err != nil || !changed {
		return next, false, err
	}
	return next, true, s.entries.Set(asset, next)
}

// Baseline marks observed as already accounted for, leaving Index untouched.
// A frozen entry of a previously registered asset keeps its Index.
func (s *Service) Baseline(asset thor.Address, observed *uint256.Int) (*Entry, error) {
	e, err := s.Get(asset)
	if err != nil {
		return nil, err
	}
	e.LastObserved = observed.Clone()
	return e, s.entries.Set(asset, e)
}

// Consume lowers LastObserved by an amount that left the pool as a payout.
func (s *Service) Consume(asset thor.Address, paid *uint256.Int) error {
	if paid.IsZero() {
		return nil
	}
	e, err := s.Get(asset)
	if err != nil {
		return err
	}
	if e.LastObserved, err = fixedpoint.Sub(e.LastObserved, paid); err != nil {
		return errors.WithMessage(err, "payout above last observed")
	}
	return s.entries.Set(asset, e)
}

// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package stakers

import (
	"github.com/holiman/uint256"

	"github.com/vechain/rewardpool/builtin/solidity"
	"github.com/vechain/rewardpool/fixedpoint"
	"github.com/vechain/rewardpool/thor"
)

var (
	slotPrincipals     = thor.BytesToBytes32([]byte("principals"))
	slotDebts          = thor.BytesToBytes32([]byte("reward-debts"))
	slotTotalPrincipal = thor.BytesToBytes32([]byte("total-principal"))
)

// Service manages per-account principal and reward debts, and the principal total.
// Accounts exist implicitly: an unknown account reads as zero everywhere.
type Service struct {
	principals *solidity.Mapping[thor.Address, *uint256.Int]
	debts      *solidity.Mapping[thor.Bytes32, *uint256.Int]
	total      *solidity.Uint256
}

func New(sctx *solidity.Context) *Service {
	return &Service{
		principals: solidity.NewMapping[thor.Address, *uint256.Int](sctx, slotPrincipals),
		debts:      solidity.NewMapping[thor.Bytes32, *uint256.Int](sctx, slotDebts),
		total:      solidity.NewUint256(sctx, slotTotalPrincipal),
	}
}

func debtKey(account, asset thor.Address) thor.Bytes32 {
	return thor.Blake2b(account.Bytes(), asset.Bytes())
}

func (s *Service) Principal(account thor.Address) (*uint256.Int, error) {
	p, err := s.principals.Get(account)
	if err != nil {
		return nil, err
	}
	return fixedpoint.OrZero(p), nil
}

func (s *Service) SetPrincipal(account thor.Address, amount *uint256.Int) error {
	return s.principals.Set(account, amount)
}

// Debt returns the share of Index the account has already been credited for asset.
func (s *Service) Debt(account, asset thor.Address) (*uint256.Int, error) {
	d, err := s.debts.Get(debtKey(account, asset))
	if err != nil {
		return nil, err
	}
	return fixedpoint.OrZero(d), nil
}

func (s *Service) SetDebt(account, asset thor.Address, debt *uint256.Int) error {
	return s.debts.Set(debtKey(account, asset), debt)
}

func (s *Service) ClearDebt(account, asset thor.Address) {
	s.debts.Clear(debtKey(account, asset))
}

func (s *Service) TotalPrincipal() (*uint256.Int, error) {
	return s.total.Get()
}

func (s *Service) AddTotal(amount *uint256.Int) error {
	return s.total.Add(amount)
}

func (s *Service) SubTotal(amount *uint256.Int) error {
	return s.total.Sub(amount)
}

// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package registry

import (
	"encoding/binary"

	"github.com/pkg/errors"

	"github.com/vechain/rewardpool/builtin/reverts"
	"github.com/vechain/rewardpool/builtin/solidity"
	"github.com/vechain/rewardpool/thor"
)

var (
	slotAssets    = thor.BytesToBytes32([]byte("reward-assets"))
	slotCount     = thor.BytesToBytes32([]byte("reward-asset-count"))
	slotPositions = thor.BytesToBytes32([]byte("reward-asset-positions"))

	ErrAlreadyRegistered = reverts.New("reward asset already registered")
	ErrNotRegistered     = reverts.New("reward asset not registered")
)

// Service keeps the ordered list of reward assets.
// Positions are 1-based in storage so that an unset slot means absent.
type Service struct {
	assets    *solidity.Mapping[thor.Bytes32, thor.Address]
	count     *solidity.Raw[uint64]
	positions *solidity.Mapping[thor.Address, uint64]
}

func New(sctx *solidity.Context) *Service {
	return &Service{
		assets:    solidity.NewMapping[thor.Bytes32, thor.Address](sctx, slotAssets),
		count:     solidity.NewRaw[uint64](sctx, slotCount),
		positions: solidity.NewMapping[thor.Address, uint64](sctx, slotPositions),
	}
}

func indexKey(i uint64) thor.Bytes32 {
	var b [8]byte
	binary.BigEndian.PutUint64(b[:], i)
	return thor.BytesToBytes32(b[:])
}

// Count returns the number of registered assets.
func (s *Service) Count() (uint64, error) {
	return s.count.Get()
}

// At returns the asset at the 0-based index i.
func (s *Service) At(i uint64) (thor.Address, error) {
	count, err := s.count.Get()
	if err != nil {
		return thor.Address{}, err
	}
	if i >= count {
		return thor.Address{}, errors.Errorf("registry index %d out of range %d", i, count)
	}
	return s.assets.Get(indexKey(i))
}

// Position returns the 1-based position of asset. ok is false if it is not registered.
func (s *Service) Position(asset thor.Address) (pos uint64, ok bool, err error) {
	pos, err = s.positions.Get(asset)
	if err != nil {
		return 0, false, err
	}
	return pos, pos != 0, nil
}

// Contains returns whether asset is registered.
func (s *Service) Contains(asset thor.Address) (bool, error) {
	_, ok, err := s.Position(asset)
	return ok, err
}

// All returns the registered assets in registry order.
func (s *Service) All() ([]thor.Address, error) {
	count, err := s.count.Get()
	if err != nil {
		return nil, err
	}
	all := make([]thor.Address, 0, count)
	for i := range count {
		asset, err := s.assets.Get(indexKey(i))
		if err != nil {
			return nil, err
		}
		all = append(all, asset)
	}
	return all, nil
}

// Add appends asset to the registry.
func (s *Service) Add(asset thor.Address) error {
	ok, err := s.Contains(asset)
	if err != nil {
		return err
	}
	if ok {
		return ErrAlreadyRegistered
	}
	count, err := s.count.Get()
	if err != nil {
		return err
	}
	if err := s.assets.Set(indexKey(count), asset); err != nil {
		return err
	}
	if err := s.positions.Set(asset, count+1); err != nil {
		return err
	}
	return s.count.Set(count + 1)
}

// Remove deletes asset by moving the last asset into its slot.
func (s *Service) Remove(asset thor.Address) error {
	pos, ok, err := s.Position(asset)
	if err != nil {
		return err
	}
	if !ok {
		return ErrNotRegistered
	}
	count, err := s.count.Get()
	if err != nil {
		return err
	}

	last := count - 1
	if idx := pos - 1; idx != last {
		moved, err := s.assets.Get(indexKey(last))
		if err != nil {
			return err
		}
		if err := s.assets.Set(indexKey(idx), moved); err != nil {
			return err
		}
		if err := s.positions.Set(moved, pos); err != nil {
			return err
		}
	}
	s.assets.Clear(indexKey(last))
	s.positions.Clear(asset)
	return s.count.Set(last)
}

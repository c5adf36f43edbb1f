// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package registry

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vechain/rewardpool/builtin/solidity"
	"github.com/vechain/rewardpool/state"
	"github.com/vechain/rewardpool/thor"
)

var (
	assetA = thor.BytesToAddress([]byte("a"))
	assetB = thor.BytesToAddress([]byte("b"))
	assetC = thor.BytesToAddress([]byte("c"))
)

func newService() *Service {
	return New(solidity.NewContext(thor.Address{1}, state.New(nil)))
}

// requireConsistent checks that the list and the position map agree.
func requireConsistent(t *testing.T, s *Service, expected ...thor.Address) {
	all, err := s.All()
	require.NoError(t, err)
	if len(expected) == 0 {
		expected = []thor.Address{}
	}
	require.Equal(t, expected, all)

	for i, asset := range all {
		pos, ok, err := s.Position(asset)
		require.NoError(t, err)
		require.True(t, ok)
		require.Equal(t, uint64(i+1), pos)

		at, err := s.At(uint64(i))
		require.NoError(t, err)
		require.Equal(t, asset, at)
	}
}

func TestAdd(t *testing.T) {
	s := newService()

	_, ok, err := s.Position(assetA)
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, s.Add(assetA))
	require.NoError(t, s.Add(assetB))
	assert.ErrorIs(t, s.Add(assetA), ErrAlreadyRegistered)

	count, err := s.Count()
	require.NoError(t, err)
	assert.Equal(t, uint64(2), count)
	requireConsistent(t, s, assetA, assetB)

	_, err = s.At(2)
	assert.Error(t, err)
}

func TestRemove(t *testing.T) {
	tests := []struct {
		name     string
		remove   thor.Address
		expected []thor.Address
	}{
		{"first moves last into slot", assetA, []thor.Address{assetC, assetB}},
		{"middle", assetB, []thor.Address{assetA, assetC}},
		{"last", assetC, []thor.Address{assetA, assetB}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newService()
			for _, a := range []thor.Address{assetA, assetB, assetC} {
				require.NoError(t, s.Add(a))
			}
			require.NoError(t, s.Remove(tt.remove))
			requireConsistent(t, s, tt.expected...)

			ok, err := s.Contains(tt.remove)
			require.NoError(t, err)
			assert.False(t, ok)
		})
	}
}

func TestRemoveAll(t *testing.T) {
	s := newService()
	assert.ErrorIs(t, s.Remove(assetA), ErrNotRegistered)

	require.NoError(t, s.Add(assetA))
	require.NoError(t, s.Remove(assetA))
	requireConsistent(t, s)
	assert.ErrorIs(t, s.Remove(assetA), ErrNotRegistered)

	// re-registration appends again
	require.NoError(t, s.Add(assetB))
	require.NoError(t, s.Add(assetA))
	requireConsistent(t, s, assetB, assetA)
}

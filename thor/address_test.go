// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package thor

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestParseAddress(t *testing.T) {
	addr, err := ParseAddress("0x7567d83b7b8d80addcb281a71d54fc7b3364ffed")
	require.NoError(t, err)
	assert.Equal(t, "0x7567d83b7b8d80addcb281a71d54fc7b3364ffed", addr.String())

	addr, err = ParseAddress("7567d83b7b8d80addcb281a71d54fc7b3364ffed")
	require.NoError(t, err)
	assert.False(t, addr.IsZero())

	_, err = ParseAddress("1x7567d83b7b8d80addcb281a71d54fc7b3364ffed")
	assert.EqualError(t, err, "invalid prefix")

	_, err = ParseAddress("0x7567")
	assert.EqualError(t, err, "invalid length")

	_, err = ParseAddress("0xZZ67d83b7b8d80addcb281a71d54fc7b3364ffed")
	assert.Error(t, err)

	assert.Panics(t, func() { MustParseAddress("bad") })
}

func TestAddressYAML(t *testing.T) {
	type doc struct {
		Asset Address `yaml:"asset"`
	}
	var d doc
	require.NoError(t, yaml.Unmarshal([]byte("asset: \"0x0000000000000000000000000000000000000001\"\n"), &d))
	assert.Equal(t, BytesToAddress([]byte{1}), d.Asset)

	out, err := yaml.Marshal(&d)
	require.NoError(t, err)
	var back doc
	require.NoError(t, yaml.Unmarshal(out, &back))
	assert.Equal(t, d, back)
}

func TestHashes(t *testing.T) {
	assert.NotEqual(t, Blake2b([]byte("a"), []byte("b")), Blake2b([]byte("ab"), []byte{}))
	assert.Equal(t, Blake2b([]byte("ab")), Blake2b([]byte("a"), []byte("b")))

	// keccak256("") is well known
	assert.Equal(t,
		"0xc5d2460186f7233c927e7db2dcc703c0e500b653ca82273b7bfad8045d85a470",
		Keccak256().String())
}

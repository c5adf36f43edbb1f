// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package solidity

import (
	"github.com/vechain/rewardpool/metrics"
	"github.com/vechain/rewardpool/state"
	"github.com/vechain/rewardpool/thor"
)

var metricSlotAccess = metrics.LazyLoadCounterVec("solidity_slot_count", []string{"op"})

// Usage counts storage slots touched through a Context.
type Usage struct {
	Reads  uint64
	Writes uint64
}

// Context binds storage wrappers to a contract address and the state.
type Context struct {
	address thor.Address
	state   *state.State
	usage   Usage
}

func NewContext(address thor.Address, state *state.State) *Context {
	return &Context{
		address: address,
		state:   state,
	}
}

func (c *Context) Address() thor.Address {
	return c.address
}

func (c *Context) State() *state.State {
	return c.state
}

// Usage returns the slot usage since the last ResetUsage.
func (c *Context) Usage() Usage {
	return c.usage
}

func (c *Context) ResetUsage() {
	c.usage = Usage{}
}

// slots returns the number of 32-byte words an encoded value spans.
func slots(size int) uint64 {
	if size == 0 {
		return 1
	}
	return (uint64(size) + 31) / 32
}

func (c *Context) read(size int) {
	n := slots(size)
	c.usage.Reads += n
	metricSlotAccess().AddWithLabel(int64(n), map[string]string{"op": "read"})
}

func (c *Context) write(size int) {
	n := slots(size)
	c.usage.Writes += n
	metricSlotAccess().AddWithLabel(int64(n), map[string]string{"op": "write"})
}

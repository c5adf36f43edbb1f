// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package rewards

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vechain/rewardpool/builtin/token"
	"github.com/vechain/rewardpool/lvldb"
	"github.com/vechain/rewardpool/state"
	"github.com/vechain/rewardpool/thor"
)

func TestPersistRoundTrip(t *testing.T) {
	db, err := lvldb.New(t.TempDir(), lvldb.Options{})
	require.NoError(t, err)
	defer db.Close()
	ctx := context.Background()

	open := func() (*state.State, *token.Bank, *Pool) {
		st := state.New(db)
		bank := token.New(bankAddr, st)
		return st, bank, New(poolAddr, st, bank)
	}

	st, bank, pool := open()
	require.NoError(t, pool.Initialize(ctx, Params{vet, rew, collector, feeRate(1, 10), owner}))
	require.NoError(t, bank.Mint(vet, alice, u(100)))
	require.NoError(t, pool.Deposit(ctx, alice, u(100)))
	require.NoError(t, bank.Mint(rew, poolAddr, u(45)))
	require.NoError(t, pool.Settle(ctx, rew))
	stage, err := st.Commit(db.Bulk())
	require.NoError(t, err)
	assert.NotZero(t, stage.Len())

	// a failed operation leaves nothing to commit, earlier changes are not replayed
	assert.Error(t, pool.Withdraw(ctx, alice, u(1000)))
	stage, err = st.Commit(db.Bulk())
	require.NoError(t, err)
	assert.Zero(t, stage.Len())

	_, bank, pool = open()
	total, err := pool.TotalPrincipal(ctx)
	require.NoError(t, err)
	assert.Equal(t, uint64(90), total.Uint64())

	pending, err := pool.PendingReward(ctx, alice, rew)
	require.NoError(t, err)
	assert.Equal(t, uint64(45), pending.Uint64())

	assets, err := pool.RewardAssets(ctx)
	require.NoError(t, err)
	assert.Equal(t, []thor.Address{rew}, assets)

	fee, err := bank.BalanceOf(vet, collector)
	require.NoError(t, err)
	assert.Equal(t, uint64(10), fee.Uint64())

	require.NoError(t, pool.Withdraw(ctx, alice, u(90)))
	bal, err := bank.BalanceOf(rew, alice)
	require.NoError(t, err)
	assert.Equal(t, uint64(45), bal.Uint64())
}

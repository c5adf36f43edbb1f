// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package state

import (
	"bytes"
	"io"
	"sort"

	"github.com/ethereum/go-ethereum/rlp"
	"github.com/pkg/errors"

	"github.com/vechain/rewardpool/kv"
	"github.com/vechain/rewardpool/stackedmap"
	"github.com/vechain/rewardpool/thor"
)

// Stage is the net set of storage changes accumulated in the journal.
type Stage struct {
	slots  []storageKey
	keys   [][]byte
	values []rlp.RawValue
	hash   thor.Bytes32
}

// Stage collapses the journal into the latest value per slot.
func (s *State) Stage() *Stage {
	latest := make(map[storageKey]rlp.RawValue)
	s.sm.Journal(func(k storageKey, v rlp.RawValue) bool {
		latest[k] = v
		return true
	})

	keys := make([]storageKey, 0, len(latest))
	for k := range latest {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		return bytes.Compare(keys[i].dbKey(), keys[j].dbKey()) < 0
	})

	stage := &Stage{
		slots:  keys,
		keys:   make([][]byte, 0, len(keys)),
		values: make([]rlp.RawValue, 0, len(keys)),
	}
	for _, k := range keys {
		stage.keys = append(stage.keys, k.dbKey())
		stage.values = append(stage.values, latest[k])
	}
	stage.hash = thor.Blake2bFn(func(w io.Writer) {
		for i := range stage.keys {
			w.Write(stage.keys[i])
			w.Write(stage.values[i])
		}
	})
	return stage
}

// Len returns the number of changed slots.
func (st *Stage) Len() int {
	return len(st.keys)
}

// Hash returns a digest of the change set, stable for equal changes.
func (st *Stage) Hash() thor.Bytes32 {
	return st.hash
}

// Commit writes all changes into the given bulk and flushes it.
// Cleared slots are deleted.
func (st *Stage) Commit(bulk kv.Bulk) error {
	for i, key := range st.keys {
		if len(st.values[i]) == 0 {
			if err := bulk.Delete(key); err != nil {
				return &Error{err}
			}
			continue
		}
		if err := bulk.Put(key, st.values[i]); err != nil {
			return &Error{err}
		}
	}
	if err := bulk.Write(); err != nil {
		return &Error{err}
	}
	return nil
}

// Commit writes the staged changes into bulk and starts an empty journal on top
// of them. bulk must write into the store the state reads from, and no
// checkpoint taken before Commit may be reverted to afterwards.
func (s *State) Commit(bulk kv.Bulk) (*Stage, error) {
	if s.db == nil {
		return nil, &Error{errors.New("commit without backing store")}
	}
	stage := s.Stage()
	if err := stage.Commit(bulk); err != nil {
		return nil, err
	}
	deleted := 0
	for i, slot := range stage.slots {
		if len(stage.values[i]) == 0 {
			deleted++
		}
		s.cache.Add(slot, stage.values[i])
	}
	s.sm = stackedmap.New(s.load)

	metricCommitCounter().Add(1)
	metricStageSlots().SetWithLabel(int64(stage.Len()-deleted), map[string]string{"type": "put"})
	metricStageSlots().SetWithLabel(int64(deleted), map[string]string{"type": "delete"})
	return stage, nil
}

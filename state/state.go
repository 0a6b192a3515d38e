// Copyright (c) 2026 The MetaSpace developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package state

import (
	"math/big"

	"github.com/metaspacelab/marketplace/lvldb"
	"github.com/metaspacelab/marketplace/meta"
)

// State manages account balances and module keyed storage. Reads fall
// through to the backing store lazily; writes stay in memory until
// Commit. Checkpoints give handlers all-or-nothing semantics: a failed
// operation reverts to its checkpoint and leaves no partial mutation.
type State struct {
	store lvldb.Store // nil for a purely in-memory state

	balances map[balanceKey]*big.Int
	reserved map[balanceKey]*big.Int
	storage  map[storageKey][]byte

	journal []journalEntry
	dirty   map[interface{}]struct{}

	err error
}

type balanceKey struct {
	addr  meta.Address
	token meta.TokenId
}

type storageKey struct {
	addr meta.Address
	key  meta.Bytes32
}

type journalEntry struct {
	revert func(*State)
}

// New creates a state backed by the given store. A nil store gives a
// purely in-memory state, used by tests and solo mode.
func New(store lvldb.Store) *State {
	return &State{
		store:    store,
		balances: make(map[balanceKey]*big.Int),
		reserved: make(map[balanceKey]*big.Int),
		storage:  make(map[storageKey][]byte),
		dirty:    make(map[interface{}]struct{}),
	}
}

// Err returns the first error encountered by storage access.
func (s *State) Err() error {
	return s.err
}

func (s *State) setError(err error) {
	if s.err == nil {
		s.err = err
	}
}

// NewCheckpoint makes a checkpoint of the current state. Returns the
// revision to pass to RevertTo.
func (s *State) NewCheckpoint() int {
	return len(s.journal)
}

// RevertTo unwinds every mutation made since the given checkpoint.
func (s *State) RevertTo(revision int) {
	if revision < 0 || revision > len(s.journal) {
		panic("state: invalid checkpoint revision")
	}
	for i := len(s.journal) - 1; i >= revision; i-- {
		s.journal[i].revert(s)
	}
	s.journal = s.journal[:revision]
}

func (s *State) appendJournal(revert func(*State)) {
	s.journal = append(s.journal, journalEntry{revert: revert})
}

// Commit flushes all dirty entries to the backing store and drops the
// journal. With no backing store it only seals the journal.
func (s *State) Commit() error {
	if s.err != nil {
		return s.err
	}
	if s.store != nil {
		batch := s.store.NewBatch()
		for k := range s.dirty {
			switch key := k.(type) {
			case balanceKey:
				batch.Put(balanceStoreKey(key), s.balances[key].Bytes())
			case reservedMark:
				bk := balanceKey(key)
				batch.Put(reservedStoreKey(bk), s.reserved[bk].Bytes())
			case storageKey:
				raw := s.storage[key]
				if len(raw) == 0 {
					batch.Delete(storageStoreKey(key))
				} else {
					batch.Put(storageStoreKey(key), raw)
				}
			}
		}
		if err := batch.Write(); err != nil {
			return err
		}
	}
	s.dirty = make(map[interface{}]struct{})
	s.journal = s.journal[:0]
	return nil
}

// reservedMark distinguishes reserved-balance dirty entries from free
// ones in the dirty set.
type reservedMark balanceKey

func balanceStoreKey(k balanceKey) []byte {
	b := append([]byte("b/"), k.addr.Bytes()...)
	return append(b, byte(k.token>>24), byte(k.token>>16), byte(k.token>>8), byte(k.token))
}

func reservedStoreKey(k balanceKey) []byte {
	b := append([]byte("r/"), k.addr.Bytes()...)
	return append(b, byte(k.token>>24), byte(k.token>>16), byte(k.token>>8), byte(k.token))
}

func storageStoreKey(k storageKey) []byte {
	b := append([]byte("s/"), k.addr.Bytes()...)
	return append(b, k.key.Bytes()...)
}

func (s *State) loadBig(storeKey []byte) *big.Int {
	if s.store == nil {
		return new(big.Int)
	}
	raw, err := s.store.Get(storeKey)
	if err != nil {
		if !s.store.IsNotFound(err) {
			s.setError(err)
		}
		return new(big.Int)
	}
	return new(big.Int).SetBytes(raw)
}

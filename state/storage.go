// Copyright (c) 2026 The MetaSpace developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package state

import (
	"github.com/metaspacelab/marketplace/meta"
)

func (s *State) getRawStorage(k storageKey) []byte {
	if raw, ok := s.storage[k]; ok {
		return raw
	}
	var raw []byte
	if s.store != nil {
		loaded, err := s.store.Get(storageStoreKey(k))
		if err != nil {
			if !s.store.IsNotFound(err) {
				s.setError(err)
			}
		} else {
			raw = loaded
		}
	}
	s.storage[k] = raw
	return raw
}

// GetRawStorage returns the raw bytes stored under (addr, key), empty if unset.
func (s *State) GetRawStorage(addr meta.Address, key meta.Bytes32) []byte {
	return s.getRawStorage(storageKey{addr, key})
}

// SetRawStorage writes raw bytes under (addr, key). Empty raw deletes the slot.
func (s *State) SetRawStorage(addr meta.Address, key meta.Bytes32, raw []byte) {
	k := storageKey{addr, key}
	prev := s.getRawStorage(k)
	s.appendJournal(func(st *State) { st.storage[k] = prev })
	s.storage[k] = raw
	s.dirty[k] = struct{}{}
}

// EncodeStorage set storage value encoded by given enc method.
func (s *State) EncodeStorage(addr meta.Address, key meta.Bytes32, enc func() ([]byte, error)) {
	raw, err := enc()
	if err != nil {
		s.setError(err)
		return
	}
	s.SetRawStorage(addr, key, raw)
}

// DecodeStorage get and decode storage value via the given dec method.
// dec receives empty raw for an unset slot.
func (s *State) DecodeStorage(addr meta.Address, key meta.Bytes32, dec func([]byte) error) {
	if err := dec(s.getRawStorage(storageKey{addr, key})); err != nil {
		s.setError(err)
	}
}

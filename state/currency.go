// Copyright (c) 2026 The MetaSpace developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package state

import (
	"errors"
	"math/big"

	"github.com/metaspacelab/marketplace/meta"
)

var errInsufficientBalance = errors.New("insufficient balance")

// IsInsufficientBalance reports whether err is a balance shortfall.
func IsInsufficientBalance(err error) bool {
	return errors.Is(err, errInsufficientBalance)
}

func (s *State) getBalance(k balanceKey) *big.Int {
	if b, ok := s.balances[k]; ok {
		return b
	}
	b := s.loadBig(balanceStoreKey(k))
	s.balances[k] = b
	return b
}

func (s *State) getReserved(k balanceKey) *big.Int {
	if b, ok := s.reserved[k]; ok {
		return b
	}
	b := s.loadBig(reservedStoreKey(k))
	s.reserved[k] = b
	return b
}

func (s *State) setBalance(k balanceKey, v *big.Int) {
	prev := s.getBalance(k)
	s.appendJournal(func(st *State) { st.balances[k] = prev })
	s.balances[k] = v
	s.dirty[k] = struct{}{}
}

func (s *State) setReserved(k balanceKey, v *big.Int) {
	prev := s.getReserved(k)
	s.appendJournal(func(st *State) { st.reserved[k] = prev })
	s.reserved[k] = v
	s.dirty[reservedMark(k)] = struct{}{}
}

// GetBalance returns the transferable balance of addr in the given currency.
func (s *State) GetBalance(addr meta.Address, token meta.TokenId) *big.Int {
	return new(big.Int).Set(s.getBalance(balanceKey{addr, token}))
}

// GetReservedBalance returns the escrowed balance of addr in the given currency.
func (s *State) GetReservedBalance(addr meta.Address, token meta.TokenId) *big.Int {
	return new(big.Int).Set(s.getReserved(balanceKey{addr, token}))
}

// AddBalance credits the transferable balance.
func (s *State) AddBalance(addr meta.Address, token meta.TokenId, amount *big.Int) {
	if amount.Sign() == 0 {
		return
	}
	k := balanceKey{addr, token}
	s.setBalance(k, new(big.Int).Add(s.getBalance(k), amount))
}

// SubBalance debits the transferable balance. Returns false without
// mutation when the balance is short.
func (s *State) SubBalance(addr meta.Address, token meta.TokenId, amount *big.Int) bool {
	if amount.Sign() == 0 {
		return true
	}
	k := balanceKey{addr, token}
	cur := s.getBalance(k)
	if cur.Cmp(amount) < 0 {
		return false
	}
	s.setBalance(k, new(big.Int).Sub(cur, amount))
	return true
}

// Reserve moves amount from transferable to reserved. Funds are never
// partially reserved: a shortfall fails with no mutation.
func (s *State) Reserve(addr meta.Address, token meta.TokenId, amount *big.Int) error {
	if amount.Sign() == 0 {
		return nil
	}
	k := balanceKey{addr, token}
	free := s.getBalance(k)
	if free.Cmp(amount) < 0 {
		return errInsufficientBalance
	}
	s.setBalance(k, new(big.Int).Sub(free, amount))
	s.setReserved(k, new(big.Int).Add(s.getReserved(k), amount))
	return nil
}

// Unreserve moves up to amount back from reserved to transferable and
// returns what was actually released. Releasing more than is reserved
// releases the reserved remainder only; releasing from an empty
// reservation is a no-op.
func (s *State) Unreserve(addr meta.Address, token meta.TokenId, amount *big.Int) *big.Int {
	if amount.Sign() == 0 {
		return new(big.Int)
	}
	k := balanceKey{addr, token}
	reserved := s.getReserved(k)
	released := amount
	if reserved.Cmp(amount) < 0 {
		released = reserved
	}
	if released.Sign() == 0 {
		return new(big.Int)
	}
	released = new(big.Int).Set(released)
	s.setReserved(k, new(big.Int).Sub(reserved, released))
	s.setBalance(k, new(big.Int).Add(s.getBalance(k), released))
	return released
}

// RepatriateReserved moves amount from the reserved balance of from to
// the transferable balance of to. A reserved shortfall fails with no
// mutation; exact settlement is the caller's invariant.
func (s *State) RepatriateReserved(from, to meta.Address, token meta.TokenId, amount *big.Int) error {
	if amount.Sign() == 0 {
		return nil
	}
	k := balanceKey{from, token}
	reserved := s.getReserved(k)
	if reserved.Cmp(amount) < 0 {
		return errInsufficientBalance
	}
	s.setReserved(k, new(big.Int).Sub(reserved, amount))
	s.AddBalance(to, token, amount)
	return nil
}

// Transfer moves amount between transferable balances.
func (s *State) Transfer(from, to meta.Address, token meta.TokenId, amount *big.Int) error {
	if !s.SubBalance(from, token, amount) {
		return errInsufficientBalance
	}
	s.AddBalance(to, token, amount)
	return nil
}

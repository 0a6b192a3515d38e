// Copyright (c) 2026 The MetaSpace developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package registry

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/metaspacelab/marketplace/meta"
	"github.com/metaspacelab/marketplace/state"
)

func TestNFTOwnership(t *testing.T) {
	st := state.New(nil)
	reg := NewNFTRegistry(nil)
	alice := meta.BytesToAddress([]byte("alice"))
	bob := meta.BytesToAddress([]byte("bob"))

	item := meta.NewNFTItem(1, 1)
	_, err := reg.OwnerOf(st, &item)
	assert.Equal(t, ErrItemNotMinted, err)

	require.NoError(t, reg.Mint(st, &item, alice))
	assert.Equal(t, ErrAlreadyMinted, reg.Mint(st, &item, bob))

	owner, err := reg.OwnerOf(st, &item)
	require.NoError(t, err)
	assert.Equal(t, alice, owner)

	assert.Equal(t, ErrWrongOwner, reg.Transfer(st, &item, bob, bob))
	require.NoError(t, reg.Transfer(st, &item, alice, bob))
	owner, err = reg.OwnerOf(st, &item)
	require.NoError(t, err)
	assert.Equal(t, bob, owner)
}

func TestClassRoyalty(t *testing.T) {
	artist := meta.BytesToAddress([]byte("artist"))
	reg := NewNFTRegistry(map[uint64]Royalty{7: {Recipient: artist, Percent: 1000}})

	recipient, bps, ok := reg.ClassRoyalty(7)
	require.True(t, ok)
	assert.Equal(t, artist, recipient)
	assert.Equal(t, uint32(1000), bps)

	_, _, ok = reg.ClassRoyalty(8)
	assert.False(t, ok)
}

// Copyright (c) 2026 The MetaSpace developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package state

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/metaspacelab/marketplace/lvldb"
	"github.com/metaspacelab/marketplace/meta"
)

var (
	alice = meta.BytesToAddress([]byte("alice"))
	bob   = meta.BytesToAddress([]byte("bob"))
)

func TestReserveUnreserve(t *testing.T) {
	st := New(nil)
	st.AddBalance(alice, meta.NativeTokenId, big.NewInt(100))

	err := st.Reserve(alice, meta.NativeTokenId, big.NewInt(150))
	assert.True(t, IsInsufficientBalance(err))
	assert.Equal(t, big.NewInt(100), st.GetBalance(alice, meta.NativeTokenId))

	require.NoError(t, st.Reserve(alice, meta.NativeTokenId, big.NewInt(60)))
	assert.Equal(t, big.NewInt(40), st.GetBalance(alice, meta.NativeTokenId))
	assert.Equal(t, big.NewInt(60), st.GetReservedBalance(alice, meta.NativeTokenId))

	// releasing more than reserved releases only the remainder
	released := st.Unreserve(alice, meta.NativeTokenId, big.NewInt(100))
	assert.Equal(t, big.NewInt(60), released)
	assert.Equal(t, big.NewInt(100), st.GetBalance(alice, meta.NativeTokenId))

	// releasing from an empty reservation is a no-op
	released = st.Unreserve(alice, meta.NativeTokenId, big.NewInt(10))
	assert.Equal(t, 0, released.Sign())
}

func TestRepatriateReserved(t *testing.T) {
	st := New(nil)
	st.AddBalance(alice, meta.NativeTokenId, big.NewInt(100))
	require.NoError(t, st.Reserve(alice, meta.NativeTokenId, big.NewInt(100)))

	err := st.RepatriateReserved(alice, bob, meta.NativeTokenId, big.NewInt(120))
	assert.True(t, IsInsufficientBalance(err))
	assert.Equal(t, big.NewInt(100), st.GetReservedBalance(alice, meta.NativeTokenId))

	require.NoError(t, st.RepatriateReserved(alice, bob, meta.NativeTokenId, big.NewInt(100)))
	assert.Equal(t, 0, st.GetReservedBalance(alice, meta.NativeTokenId).Sign())
	assert.Equal(t, big.NewInt(100), st.GetBalance(bob, meta.NativeTokenId))
}

func TestCheckpointRevert(t *testing.T) {
	st := New(nil)
	st.AddBalance(alice, meta.NativeTokenId, big.NewInt(50))
	key := meta.Blake2b([]byte("slot"))
	st.SetRawStorage(meta.MarketplaceModuleAddr, key, []byte("before"))

	rev := st.NewCheckpoint()
	st.AddBalance(alice, meta.NativeTokenId, big.NewInt(25))
	require.NoError(t, st.Reserve(alice, meta.NativeTokenId, big.NewInt(10)))
	st.SetRawStorage(meta.MarketplaceModuleAddr, key, []byte("after"))
	st.RevertTo(rev)

	assert.Equal(t, big.NewInt(50), st.GetBalance(alice, meta.NativeTokenId))
	assert.Equal(t, 0, st.GetReservedBalance(alice, meta.NativeTokenId).Sign())
	assert.Equal(t, []byte("before"), st.GetRawStorage(meta.MarketplaceModuleAddr, key))
}

func TestCommitPersists(t *testing.T) {
	db, err := lvldb.NewMem()
	require.NoError(t, err)
	defer db.Close()

	st := New(db)
	st.AddBalance(alice, meta.NativeTokenId, big.NewInt(77))
	require.NoError(t, st.Reserve(alice, meta.NativeTokenId, big.NewInt(7)))
	key := meta.Blake2b([]byte("persisted"))
	st.SetRawStorage(meta.MarketplaceModuleAddr, key, []byte("v1"))
	require.NoError(t, st.Commit())

	st2 := New(db)
	assert.Equal(t, big.NewInt(70), st2.GetBalance(alice, meta.NativeTokenId))
	assert.Equal(t, big.NewInt(7), st2.GetReservedBalance(alice, meta.NativeTokenId))
	assert.Equal(t, []byte("v1"), st2.GetRawStorage(meta.MarketplaceModuleAddr, key))
}

func TestEncodeDecodeStorage(t *testing.T) {
	st := New(nil)
	key := meta.Blake2b([]byte("encoded"))
	st.EncodeStorage(meta.MarketplaceModuleAddr, key, func() ([]byte, error) {
		return []byte{0x1, 0x2}, nil
	})
	var got []byte
	st.DecodeStorage(meta.MarketplaceModuleAddr, key, func(raw []byte) error {
		got = raw
		return nil
	})
	require.NoError(t, st.Err())
	assert.Equal(t, []byte{0x1, 0x2}, got)
}

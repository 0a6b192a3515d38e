// Copyright (c) 2026 The MetaSpace developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package registry

import (
	"github.com/pkg/errors"

	"github.com/metaspacelab/marketplace/meta"
	"github.com/metaspacelab/marketplace/state"
)

var (
	ErrItemNotMinted = errors.New("item not minted")
	ErrAlreadyMinted = errors.New("item already minted")
	ErrWrongOwner    = errors.New("transfer from wrong owner")
)

var ownerPrefix = []byte("nft-owner")

// Royalty is the per-class royalty configuration.
type Royalty struct {
	Recipient meta.Address
	// Percent in basis points of the winning amount.
	Percent uint32
}

// NFTRegistry keeps item ownership in keyed state under the NFT module
// address. Royalty policy is static node configuration.
type NFTRegistry struct {
	royalties map[uint64]Royalty
}

func NewNFTRegistry(royalties map[uint64]Royalty) *NFTRegistry {
	if royalties == nil {
		royalties = make(map[uint64]Royalty)
	}
	return &NFTRegistry{royalties: royalties}
}

func ownerKey(item *meta.ItemId) meta.Bytes32 {
	id := item.ID()
	return meta.Blake2b(ownerPrefix, id.Bytes())
}

func getOwner(st *state.State, item *meta.ItemId) (owner meta.Address, ok bool) {
	raw := st.GetRawStorage(meta.NFTModuleAddr, ownerKey(item))
	if len(raw) == 0 {
		return meta.Address{}, false
	}
	return meta.BytesToAddress(raw), true
}

func setOwner(st *state.State, item *meta.ItemId, owner meta.Address) {
	st.SetRawStorage(meta.NFTModuleAddr, ownerKey(item), owner.Bytes())
}

// Mint records the initial owner of an item. Used at genesis and by
// tests, never by the market itself.
func (r *NFTRegistry) Mint(st *state.State, item *meta.ItemId, owner meta.Address) error {
	if _, ok := getOwner(st, item); ok {
		return ErrAlreadyMinted
	}
	setOwner(st, item, owner)
	return nil
}

func (r *NFTRegistry) OwnerOf(st *state.State, item *meta.ItemId) (meta.Address, error) {
	owner, ok := getOwner(st, item)
	if !ok {
		return meta.Address{}, ErrItemNotMinted
	}
	return owner, nil
}

func (r *NFTRegistry) Transfer(st *state.State, item *meta.ItemId, from, to meta.Address) error {
	owner, ok := getOwner(st, item)
	if !ok {
		return ErrItemNotMinted
	}
	if owner != from {
		return ErrWrongOwner
	}
	setOwner(st, item, to)
	return nil
}

func (r *NFTRegistry) ClassRoyalty(classId uint64) (meta.Address, uint32, bool) {
	royalty, ok := r.royalties[classId]
	if !ok {
		return meta.Address{}, 0, false
	}
	return royalty.Recipient, royalty.Percent, true
}

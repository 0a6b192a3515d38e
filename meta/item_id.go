// Copyright (c) 2026 The MetaSpace developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package meta

import (
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/rlp"
)

// AuctionId identifies one listing. Monotonically increasing, never reused.
type AuctionId = uint64

// MetaverseId identifies a metaverse for Local listings.
type MetaverseId = uint64

// TokenId identifies a fungible currency.
type TokenId = uint32

// Kinds of auctionable items.
const (
	ItemNFT uint8 = iota
	ItemBundle
	ItemSpot
	ItemEstate
)

// BundleEntry is one asset inside a bundle listing.
type BundleEntry struct {
	ClassId uint64
	TokenId uint64
	Value   *big.Int
}

// ItemId is the kind-tagged identity of an auctionable item. Only the
// fields relevant to Kind are meaningful; the rest stay at their zero
// value so the struct RLP-encodes deterministically.
type ItemId struct {
	Kind     uint8
	ClassId  uint64
	TokenId  uint64
	Bundle   []BundleEntry
	SpotX    uint32 // two's complement of the signed coordinate
	SpotY    uint32
	EstateId uint64
}

func NewNFTItem(classId, tokenId uint64) ItemId {
	return ItemId{Kind: ItemNFT, ClassId: classId, TokenId: tokenId}
}

func NewBundleItem(entries []BundleEntry) ItemId {
	return ItemId{Kind: ItemBundle, Bundle: entries}
}

func NewSpotItem(x, y int32) ItemId {
	return ItemId{Kind: ItemSpot, SpotX: uint32(x), SpotY: uint32(y)}
}

func NewEstateItem(estateId uint64) ItemId {
	return ItemId{Kind: ItemEstate, EstateId: estateId}
}

// Spot returns the signed grid coordinates of a spot item.
func (i *ItemId) Spot() (x, y int32) {
	return int32(i.SpotX), int32(i.SpotY)
}

// ID returns the content digest of the item, used as the key of the
// item-to-auction reverse index.
func (i *ItemId) ID() (hash Bytes32) {
	hw := NewBlake2b()
	rlp.Encode(hw, i)
	hw.Sum(hash[:0])
	return
}

func (i *ItemId) ToString() string {
	switch i.Kind {
	case ItemNFT:
		return fmt.Sprintf("NFT(%d,%d)", i.ClassId, i.TokenId)
	case ItemBundle:
		return fmt.Sprintf("Bundle(size=%d)", len(i.Bundle))
	case ItemSpot:
		x, y := i.Spot()
		return fmt.Sprintf("Spot(%d,%d)", x, y)
	case ItemEstate:
		return fmt.Sprintf("Estate(%d)", i.EstateId)
	default:
		return "Unknown"
	}
}

func (i *ItemId) String() string {
	return i.ToString()
}

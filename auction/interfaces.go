// Copyright (c) 2026 The MetaSpace developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package auction

import (
	"github.com/metaspacelab/marketplace/meta"
	"github.com/metaspacelab/marketplace/state"
)

// NFTRegistry is the external asset registry. Ownership and transfer of
// NFT, bundle and estate items live there; the engine only calls it.
type NFTRegistry interface {
	// OwnerOf returns the current owner of the item.
	OwnerOf(st *state.State, item *meta.ItemId) (meta.Address, error)
	// Transfer moves the item between accounts.
	Transfer(st *state.State, item *meta.ItemId, from, to meta.Address) error
	// ClassRoyalty returns the royalty recipient and percent (basis
	// points) configured for a class, if any.
	ClassRoyalty(classId uint64) (meta.Address, uint32, bool)
}

// MetaverseRegistry resolves local-listing policy: treasury, listing fee
// and collection authorisation per metaverse.
type MetaverseRegistry interface {
	TreasuryAccount(metaverseId meta.MetaverseId) meta.Address
	// ListingFeePercent in basis points of the winning amount.
	ListingFeePercent(metaverseId meta.MetaverseId) uint32
	IsAuthorisedCollection(metaverseId meta.MetaverseId, classId uint64) bool
}

// SpotRegistry settles continuum spot items: map rights to a coordinate
// are recorded instead of an NFT transfer. Implemented by the continuum
// engine.
type SpotRegistry interface {
	// SpotIssued reports whether the coordinate has been issued as a
	// map slot, and its current owner (zero address while unowned).
	SpotIssued(st *state.State, x, y int32) (meta.Address, bool)
	// TransferSpot records map rights to (x, y) for the new owner.
	TransferSpot(st *state.State, x, y int32, to meta.Address) error
}

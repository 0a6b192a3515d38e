// Copyright (c) 2026 The MetaSpace developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package auction

import (
	"log/slog"

	"github.com/metaspacelab/marketplace/meta"
)

// Params are the engine knobs, block-number based.
type Params struct {
	MinDuration     uint32
	AntiSnipeWindow uint32
}

func DefaultParams() Params {
	return Params{
		MinDuration:     meta.MinAuctionDuration,
		AntiSnipeWindow: meta.AntiSnipeWindow,
	}
}

// Engine is the auction state machine. It exclusively owns AuctionStore
// and BidLedger and talks to the external registries through the
// injected capabilities. All operations run to completion within one
// call; on error the state is reverted to the entry checkpoint.
type Engine struct {
	logger *slog.Logger
	params Params

	store  *AuctionStore
	ledger *BidLedger

	nft       NFTRegistry
	metaverse MetaverseRegistry
	spots     SpotRegistry

	admin meta.Address
}

func NewEngine(nft NFTRegistry, metaverse MetaverseRegistry, params Params) *Engine {
	store := NewAuctionStore()
	return &Engine{
		logger:    slog.Default().With("pkg", "auction"),
		params:    params,
		store:     store,
		ledger:    NewBidLedger(store),
		nft:       nft,
		metaverse: metaverse,
	}
}

// SetSpotRegistry wires the continuum engine in after construction, the
// two engines reference each other.
func (e *Engine) SetSpotRegistry(spots SpotRegistry) {
	e.spots = spots
}

// SetAdmin configures the admin account allowed to force-cancel.
func (e *Engine) SetAdmin(admin meta.Address) {
	e.admin = admin
}

// Store exposes the auction tables to read-only consumers (API, tests).
func (e *Engine) Store() *AuctionStore {
	return e.store
}

func (e *Engine) Params() Params {
	return e.params
}

// ownerOf resolves item ownership across the NFT registry and the spot
// registry.
func (e *Engine) ownerOf(env *Env, item *meta.ItemId) (meta.Address, error) {
	if item.Kind == meta.ItemSpot {
		if e.spots == nil {
			return meta.Address{}, ErrNotItemOwner
		}
		x, y := item.Spot()
		owner, issued := e.spots.SpotIssued(env.GetState(), x, y)
		if !issued {
			return meta.Address{}, ErrNotItemOwner
		}
		return owner, nil
	}
	return e.nft.OwnerOf(env.GetState(), item)
}

// transferItem settles ownership: spots become map rights, everything
// else goes through the NFT registry.
func (e *Engine) transferItem(env *Env, item *meta.ItemId, from, to meta.Address) error {
	if item.Kind == meta.ItemSpot {
		x, y := item.Spot()
		return e.spots.TransferSpot(env.GetState(), x, y, to)
	}
	return e.nft.Transfer(env.GetState(), item, from, to)
}

package auction

import (
	"math/big"

	"github.com/metaspacelab/marketplace/meta"
)

// CreateAuction lists an item for competitive bidding ending at the
// given block. The item must be owned by the seller (or be a fresh
// system-issued spot), not be listed elsewhere, and for Local listings
// belong to a collection the metaverse authorised.
func (e *Engine) CreateAuction(env *Env, seller meta.Address, itemId meta.ItemId, initialAmount *big.Int, end uint32, listing ListingLevel, currencyId meta.TokenId) (id meta.AuctionId, err error) {
	rev := env.NewCheckpoint()
	defer func() {
		if err != nil {
			env.RevertTo(rev)
		}
	}()

	now := env.BlockNum()
	if end < now+e.params.MinDuration {
		return 0, ErrInvalidDuration
	}
	if id, err = e.createListing(env, seller, itemId, initialAmount, TypeAuction, end, listing, currencyId); err != nil {
		return 0, err
	}
	return id, nil
}

// CreateBuyNow lists an item at a fixed price. Buy-now listings carry
// no end block; they settle synchronously in BuyNow and never expire.
func (e *Engine) CreateBuyNow(env *Env, seller meta.Address, itemId meta.ItemId, price *big.Int, listing ListingLevel, currencyId meta.TokenId) (id meta.AuctionId, err error) {
	rev := env.NewCheckpoint()
	defer func() {
		if err != nil {
			env.RevertTo(rev)
		}
	}()

	if id, err = e.createListing(env, seller, itemId, price, TypeBuyNow, 0, listing, currencyId); err != nil {
		return 0, err
	}
	return id, nil
}

func (e *Engine) createListing(env *Env, seller meta.Address, itemId meta.ItemId, initialAmount *big.Int, auctionType uint8, end uint32, listing ListingLevel, currencyId meta.TokenId) (meta.AuctionId, error) {
	st := env.GetState()

	if initialAmount == nil || initialAmount.Sign() <= 0 {
		return 0, ErrInvalidAmount
	}
	if _, listed := e.store.ItemInAuction(st, &itemId); listed {
		return 0, ErrItemAlreadyListed
	}

	owner, err := e.ownerOf(env, &itemId)
	if err != nil {
		e.logger.Warn("item ownership lookup failed", "item", itemId.ToString(), "err", err)
		return 0, ErrNotItemOwner
	}
	// a fresh map slot has no owner yet, only the system may list it
	if owner != seller {
		if itemId.Kind != meta.ItemSpot || !owner.IsZero() || seller != meta.ContinuumModuleAddr {
			return 0, ErrNotItemOwner
		}
	}

	if listing.Local {
		if itemId.Kind == meta.ItemNFT && !e.metaverse.IsAuthorisedCollection(listing.MetaverseId, itemId.ClassId) {
			return 0, ErrCollectionNotAuthorised
		}
		if itemId.Kind == meta.ItemBundle {
			for _, entry := range itemId.Bundle {
				if !e.metaverse.IsAuthorisedCollection(listing.MetaverseId, entry.ClassId) {
					return 0, ErrCollectionNotAuthorised
				}
			}
		}
	}

	id := e.store.NextAuctionId(st)
	item := &AuctionItem{
		ItemId:        itemId,
		Seller:        seller,
		InitialAmount: initialAmount,
		CurrentAmount: initialAmount,
		StartTime:     env.BlockNum(),
		EndTime:       end,
		AuctionType:   auctionType,
		Listing:       listing,
		CurrencyId:    currencyId,
	}
	info := &AuctionInfo{
		Start:  env.BlockNum(),
		HasEnd: auctionType == TypeAuction,
		End:    end,
	}
	e.store.Insert(st, id, item, info)

	emitAuctionCreated(env, id, item)
	auctionsCreatedCounter.Inc()
	liveAuctionsGauge.Inc()
	e.logger.Info("auction created", "id", id, "item", itemId.ToString(), "seller", seller.AbbrevString(), "initial", initialAmount, "end", end)
	return id, nil
}

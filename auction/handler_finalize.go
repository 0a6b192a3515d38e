package auction

import (
	"math/big"

	"github.com/pkg/errors"

	"github.com/metaspacelab/marketplace/meta"
)

// ErrAuctionNotEnded guards direct finalize calls against live auctions.
var ErrAuctionNotEnded = errors.New("auction has not reached its end block")

// settlement is the three-way split of a winning amount. The legs sum
// to the amount exactly: fee and royalty are floored, the seller takes
// the remainder.
type settlement struct {
	fee      *big.Int
	royalty  *big.Int
	proceeds *big.Int

	treasury  meta.Address
	royaltyTo meta.Address
}

func (e *Engine) splitProceeds(item *AuctionItem, amount *big.Int) (*settlement, error) {
	s := &settlement{fee: new(big.Int), royalty: new(big.Int)}

	if item.Listing.Local {
		feeBps := e.metaverse.ListingFeePercent(item.Listing.MetaverseId)
		s.fee.Div(new(big.Int).Mul(amount, big.NewInt(int64(feeBps))), big.NewInt(meta.FeeDenominator))
		s.treasury = e.metaverse.TreasuryAccount(item.Listing.MetaverseId)
	}
	if item.ItemId.Kind == meta.ItemNFT {
		if recipient, bps, ok := e.nft.ClassRoyalty(item.ItemId.ClassId); ok {
			s.royalty.Div(new(big.Int).Mul(amount, big.NewInt(int64(bps))), big.NewInt(meta.FeeDenominator))
			s.royaltyTo = recipient
		}
	}

	s.proceeds = new(big.Int).Sub(amount, s.fee)
	s.proceeds.Sub(s.proceeds, s.royalty)
	if s.proceeds.Sign() < 0 {
		return nil, errors.Errorf("negative settlement remainder: amount=%v fee=%v royalty=%v", amount, s.fee, s.royalty)
	}
	return s, nil
}

// Finalize settles one due auction: pays the seller the winning amount
// minus fee and royalty, hands the item to the winner, or returns
// control to the seller when no bid arrived. Finalizing an absent or
// already settled id is a no-op.
func (e *Engine) Finalize(env *Env, id meta.AuctionId) (err error) {
	st := env.GetState()
	rev := env.NewCheckpoint()
	defer func() {
		if err != nil {
			env.RevertTo(rev)
		}
	}()

	info := e.store.GetAuctionInfo(st, id)
	item := e.store.GetAuctionItem(st, id)
	if info == nil || item == nil {
		return nil
	}
	if info.HasEnd && env.BlockNum() < info.End {
		return ErrAuctionNotEnded
	}

	winner, amount, hasBid := info.Bid()
	if !hasBid {
		// expiry without a single bid, ownership and balances unchanged
		e.store.Remove(st, id)
		e.store.AddSummary(st, &AuctionSummary{
			AuctionId:  id,
			ItemId:     item.ItemId,
			Seller:     item.Seller,
			Status:     StatusFinalizedNoBid,
			CurrencyId: item.CurrencyId,
			ClosedAt:   env.BlockNum(),
		})
		emitAuctionFinalizedNoBid(env, id)
		auctionsFinalizedCounter.Inc()
		liveAuctionsGauge.Dec()
		e.logger.Info("auction finalized without bid", "id", id, "item", item.ItemId.ToString())
		return nil
	}

	split, err := e.splitProceeds(item, amount)
	if err != nil {
		return err
	}
	payouts := []Payout{
		{Recipient: item.Seller, Amount: split.proceeds},
		{Recipient: split.treasury, Amount: split.fee},
		{Recipient: split.royaltyTo, Amount: split.royalty},
	}
	if err = e.ledger.Settle(env, id, payouts); err != nil {
		return err
	}
	if err = e.transferItem(env, &item.ItemId, item.Seller, winner); err != nil {
		return errors.Wrap(err, "item transfer")
	}

	e.store.Remove(st, id)
	e.store.AddSummary(st, &AuctionSummary{
		AuctionId:      id,
		ItemId:         item.ItemId,
		Seller:         item.Seller,
		Status:         StatusFinalized,
		HasWinner:      true,
		Winner:         winner,
		WinningAmount:  amount,
		Fee:            split.fee,
		Royalty:        split.royalty,
		SellerProceeds: split.proceeds,
		CurrencyId:     item.CurrencyId,
		ClosedAt:       env.BlockNum(),
	})
	emitAuctionFinalized(env, id, winner, amount)
	auctionsFinalizedCounter.Inc()
	liveAuctionsGauge.Dec()
	e.logger.Info("auction finalized", "id", id, "winner", winner.AbbrevString(), "amount", amount, "fee", split.fee, "royalty", split.royalty)
	return nil
}

// discardFailed removes an auction whose finalize failed for good:
// the standing reservation is refunded, the listing is dropped and the
// failure is recorded. The scheduler never retries it.
func (e *Engine) discardFailed(env *Env, id meta.AuctionId, cause error) {
	st := env.GetState()

	item := e.store.GetAuctionItem(st, id)
	e.ledger.Release(st, id)
	e.store.Remove(st, id)
	if item != nil {
		e.store.AddSummary(st, &AuctionSummary{
			AuctionId:  id,
			ItemId:     item.ItemId,
			Seller:     item.Seller,
			Status:     StatusFailed,
			CurrencyId: item.CurrencyId,
			ClosedAt:   env.BlockNum(),
		})
	}
	emitAuctionFinalizeFailed(env, id, cause)
	auctionsFailedCounter.Inc()
	liveAuctionsGauge.Dec()
	e.logger.Error("auction finalize failed, discarded", "id", id, "err", cause)
}

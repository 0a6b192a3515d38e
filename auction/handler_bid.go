package auction

import (
	"math/big"
	"time"

	"github.com/metaspacelab/marketplace/meta"
)

// Bid places a bid on an auction-type listing. The bid must strictly
// exceed the standing highest bid (or the initial amount when none) and
// is escrowed in full; the outbid account is refunded exactly in the
// same step. A bid landing inside the anti-snipe window pushes the end
// out by one window, never in.
func (e *Engine) Bid(env *Env, bidder meta.Address, id meta.AuctionId, amount *big.Int) (err error) {
	st := env.GetState()
	rev := env.NewCheckpoint()
	start := time.Now()
	defer func() {
		if err != nil {
			env.RevertTo(rev)
		} else {
			e.logger.Debug("bid completed", "id", id, "elapsed", meta.PrettyDuration(time.Since(start)))
		}
	}()

	info := e.store.GetAuctionInfo(st, id)
	item := e.store.GetAuctionItem(st, id)
	if info == nil || item == nil {
		return ErrAuctionNotFound
	}
	if item.AuctionType != TypeAuction {
		return ErrNotBiddable
	}

	now := env.BlockNum()
	if now < info.Start {
		return ErrAuctionNotStarted
	}
	if info.HasEnd && now >= info.End {
		return ErrAuctionEnded
	}
	if bidder == item.Seller {
		return ErrSelfBid
	}
	if amount == nil || amount.Sign() <= 0 {
		return ErrInvalidAmount
	}

	// a first bid must beat the initial amount, later ones the standing bid
	if _, highest, ok := info.Bid(); ok {
		if amount.Cmp(highest) <= 0 {
			return ErrBidTooLow
		}
	} else if amount.Cmp(item.InitialAmount) <= 0 {
		return ErrBidTooLow
	}

	if st.GetBalance(bidder, item.CurrencyId).Cmp(amount) < 0 {
		return ErrInsufficientBalance
	}
	if err := e.ledger.Reserve(st, id, bidder, item.CurrencyId, amount); err != nil {
		e.logger.Warn("bid escrow failed", "id", id, "bidder", bidder.AbbrevString(), "err", err)
		return ErrInsufficientBalance
	}

	info.HasBid = true
	info.Bidder = bidder
	info.BidAmount = amount
	item.CurrentAmount = amount

	if info.HasEnd && info.End-now < e.params.AntiSnipeWindow {
		newEnd := info.End + e.params.AntiSnipeWindow
		e.store.MoveEndIndex(st, id, info.End, newEnd)
		info.End = newEnd
		item.EndTime = newEnd
		emitAuctionExtended(env, id, newEnd)
		auctionsExtendedCounter.Inc()
		e.logger.Info("auction extended", "id", id, "newEnd", newEnd)
	}

	e.store.SetAuctionInfo(st, id, info)
	e.store.SetAuctionItem(st, id, item)

	emitBidPlaced(env, id, bidder, amount)
	bidsAcceptedCounter.Inc()
	e.logger.Info("bid placed", "id", id, "bidder", bidder.AbbrevString(), "amount", amount)
	return nil
}

package auction

import (
	"github.com/metaspacelab/marketplace/meta"
)

// Cancel withdraws a listing. The seller may cancel only while no bid
// stands, protecting the escrowed bidder; the admin override refunds
// the standing bid in the same step.
func (e *Engine) Cancel(env *Env, caller meta.Address, id meta.AuctionId) (err error) {
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
		return ErrAuctionNotFound
	}

	isAdmin := !e.admin.IsZero() && caller == e.admin
	if !isAdmin {
		if caller != item.Seller {
			return ErrNotAuctionSeller
		}
		if info.HasBid {
			return ErrCancelWithBid
		}
	}

	// refunds the bidder exactly; a no-op when nothing is reserved
	e.ledger.Release(st, id)
	e.store.Remove(st, id)
	e.store.AddSummary(st, &AuctionSummary{
		AuctionId:  id,
		ItemId:     item.ItemId,
		Seller:     item.Seller,
		Status:     StatusCancelled,
		CurrencyId: item.CurrencyId,
		ClosedAt:   env.BlockNum(),
	})
	emitAuctionCancelled(env, id)
	auctionsCancelledCounter.Inc()
	liveAuctionsGauge.Dec()
	e.logger.Info("auction cancelled", "id", id, "caller", caller.AbbrevString(), "admin", isAdmin)
	return nil
}

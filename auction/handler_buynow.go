package auction

import (
	"math/big"

	"github.com/pkg/errors"

	"github.com/metaspacelab/marketplace/meta"
)

// BuyNow settles a fixed-price listing synchronously. The offered
// amount must equal the listed price exactly, partial or over payment
// is rejected. No intermediate bid state ever exists: the listing goes
// straight from created to finalized.
func (e *Engine) BuyNow(env *Env, buyer meta.Address, id meta.AuctionId, amount *big.Int) (err error) {
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
	if item.AuctionType != TypeBuyNow {
		return ErrNotBuyNow
	}
	if buyer == item.Seller {
		return ErrSelfBid
	}
	if amount == nil || amount.Cmp(item.CurrentAmount) != 0 {
		return ErrAmountMismatch
	}

	split, err := e.splitProceeds(item, amount)
	if err != nil {
		return err
	}
	for _, leg := range []struct {
		to     meta.Address
		amount *big.Int
	}{
		{item.Seller, split.proceeds},
		{split.treasury, split.fee},
		{split.royaltyTo, split.royalty},
	} {
		if leg.amount.Sign() == 0 {
			continue
		}
		if err = st.Transfer(buyer, leg.to, item.CurrencyId, leg.amount); err != nil {
			return ErrInsufficientBalance
		}
		env.AddTransfer(buyer, leg.to, leg.amount, item.CurrencyId)
	}
	if err = e.transferItem(env, &item.ItemId, item.Seller, buyer); err != nil {
		return errors.Wrap(err, "item transfer")
	}

	e.store.Remove(st, id)
	e.store.AddSummary(st, &AuctionSummary{
		AuctionId:      id,
		ItemId:         item.ItemId,
		Seller:         item.Seller,
		Status:         StatusFinalized,
		HasWinner:      true,
		Winner:         buyer,
		WinningAmount:  amount,
		Fee:            split.fee,
		Royalty:        split.royalty,
		SellerProceeds: split.proceeds,
		CurrencyId:     item.CurrencyId,
		ClosedAt:       env.BlockNum(),
	})
	emitAuctionFinalized(env, id, buyer, amount)
	auctionsFinalizedCounter.Inc()
	liveAuctionsGauge.Dec()
	e.logger.Info("buy-now settled", "id", id, "buyer", buyer.AbbrevString(), "amount", amount)
	return nil
}

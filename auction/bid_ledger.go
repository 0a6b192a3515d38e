// Copyright (c) 2026 The MetaSpace developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package auction

import (
	"math/big"

	"github.com/pkg/errors"

	"github.com/metaspacelab/marketplace/meta"
	"github.com/metaspacelab/marketplace/state"
)

// BidLedger is the escrow bookkeeping of the engine. It keeps at most
// one reservation per auction on top of the currency reserve
// primitives: a newly accepted bid replaces the standing reservation
// and refunds the outbid account exactly.
type BidLedger struct {
	store *AuctionStore
}

func NewBidLedger(store *AuctionStore) *BidLedger {
	return &BidLedger{store: store}
}

// Reserve escrows amount from bidder for the auction, releasing the
// prior reservation in the same step. The caller reverts the state on
// error, so a failure leaves neither applied.
func (bl *BidLedger) Reserve(st *state.State, id meta.AuctionId, bidder meta.Address, token meta.TokenId, amount *big.Int) error {
	if err := st.Reserve(bidder, token, amount); err != nil {
		return err
	}
	if prior := bl.store.GetReservation(st, id); prior != nil {
		released := st.Unreserve(prior.Bidder, prior.CurrencyId, prior.Amount)
		if released.Cmp(prior.Amount) != 0 {
			return errors.Errorf("outbid refund mismatch: released %v, reserved %v", released, prior.Amount)
		}
	}
	bl.store.SetReservation(st, id, &Reservation{Bidder: bidder, Amount: amount, CurrencyId: token})
	return nil
}

// Release refunds the standing reservation, if any. Releasing an
// auction without a reservation is a no-op.
func (bl *BidLedger) Release(st *state.State, id meta.AuctionId) {
	r := bl.store.GetReservation(st, id)
	if r == nil {
		return
	}
	st.Unreserve(r.Bidder, r.CurrencyId, r.Amount)
	bl.store.RemoveReservation(st, id)
}

// Payout is one leg of a settlement.
type Payout struct {
	Recipient meta.Address
	Amount    *big.Int
}

// Settle moves the reserved winning amount out of escrow along the
// given payout split. The payouts must sum to the reservation exactly;
// the caller reverts the state on error.
func (bl *BidLedger) Settle(env *Env, id meta.AuctionId, payouts []Payout) error {
	st := env.GetState()
	r := bl.store.GetReservation(st, id)
	if r == nil {
		return errors.New("no reservation to settle")
	}
	total := new(big.Int)
	for _, p := range payouts {
		total.Add(total, p.Amount)
	}
	if total.Cmp(r.Amount) != 0 {
		return errors.Errorf("settlement split %v does not equal reserved %v", total, r.Amount)
	}
	for _, p := range payouts {
		if p.Amount.Sign() == 0 {
			continue
		}
		if err := st.RepatriateReserved(r.Bidder, p.Recipient, r.CurrencyId, p.Amount); err != nil {
			return errors.Wrap(err, "repatriate reserved")
		}
		env.AddTransfer(r.Bidder, p.Recipient, p.Amount, r.CurrencyId)
	}
	bl.store.RemoveReservation(st, id)
	return nil
}

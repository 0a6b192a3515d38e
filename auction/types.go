// Copyright (c) 2026 The MetaSpace developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package auction

import (
	"fmt"
	"math/big"

	"github.com/metaspacelab/marketplace/meta"
)

// Listing types.
const (
	TypeAuction uint8 = iota
	TypeBuyNow
)

// Terminal states recorded in the auction summary.
const (
	StatusFinalized uint8 = iota
	StatusFinalizedNoBid
	StatusCancelled
	StatusFailed
)

// ListingLevel scopes a listing. Global listings are open and fee-free;
// Local listings belong to one metaverse, carry its listing fee and are
// restricted to its authorised collections.
type ListingLevel struct {
	Local       bool
	MetaverseId meta.MetaverseId
}

func GlobalListing() ListingLevel {
	return ListingLevel{}
}

func LocalListing(metaverseId meta.MetaverseId) ListingLevel {
	return ListingLevel{Local: true, MetaverseId: metaverseId}
}

func (l ListingLevel) ToString() string {
	if l.Local {
		return fmt.Sprintf("Local(%d)", l.MetaverseId)
	}
	return "Global"
}

// AuctionItem describes what is for sale and on which terms. Immutable
// after creation except CurrentAmount, which tracks the highest accepted
// bid. EndTime stays zero for buy-now listings: they never expire.
type AuctionItem struct {
	ItemId        meta.ItemId
	Seller        meta.Address
	InitialAmount *big.Int
	CurrentAmount *big.Int
	StartTime     uint32
	EndTime       uint32
	AuctionType   uint8
	Listing       ListingLevel
	CurrencyId    meta.TokenId
}

func (a *AuctionItem) ToString() string {
	return fmt.Sprintf("AuctionItem(item=%v, seller=%v, initial=%v, current=%v, start=%v, end=%v, type=%v, listing=%v, currency=%v)",
		a.ItemId.ToString(), a.Seller.AbbrevString(), a.InitialAmount, a.CurrentAmount, a.StartTime, a.EndTime, a.AuctionType, a.Listing.ToString(), a.CurrencyId)
}

func (a *AuctionItem) String() string {
	return a.ToString()
}

// AuctionInfo is the live bidding state of one auction. HasEnd is false
// only for buy-now listings; End is monotonic, the anti-snipe extension
// only moves it forward.
type AuctionInfo struct {
	HasBid    bool
	Bidder    meta.Address
	BidAmount *big.Int
	Start     uint32
	HasEnd    bool
	End       uint32
}

// Bid returns the current highest bid, if any.
func (info *AuctionInfo) Bid() (bidder meta.Address, amount *big.Int, ok bool) {
	if !info.HasBid {
		return meta.Address{}, nil, false
	}
	return info.Bidder, info.BidAmount, true
}

func (info *AuctionInfo) ToString() string {
	if info.HasBid {
		return fmt.Sprintf("AuctionInfo(bid=%v@%v, start=%v, end=%v)", info.Bidder.AbbrevString(), info.BidAmount, info.Start, info.End)
	}
	return fmt.Sprintf("AuctionInfo(bid=none, start=%v, end=%v)", info.Start, info.End)
}

// Reservation is the escrow record of the standing bid. At most one
// reservation exists per auction; a new accepted bid replaces it.
type Reservation struct {
	Bidder     meta.Address
	Amount     *big.Int
	CurrencyId meta.TokenId
}

// AuctionSummary is the settled record of a closed listing, kept for
// queries after the live entries are removed.
type AuctionSummary struct {
	AuctionId      meta.AuctionId
	ItemId         meta.ItemId
	Seller         meta.Address
	Status         uint8
	HasWinner      bool
	Winner         meta.Address
	WinningAmount  *big.Int
	Fee            *big.Int
	Royalty        *big.Int
	SellerProceeds *big.Int
	CurrencyId     meta.TokenId
	ClosedAt       uint32
}

func (s *AuctionSummary) ToString() string {
	if s.HasWinner {
		return fmt.Sprintf("AuctionSummary(id=%v, item=%v, status=%v, winner=%v, amount=%v, fee=%v, royalty=%v, closedAt=%v)",
			s.AuctionId, s.ItemId.ToString(), s.Status, s.Winner.AbbrevString(), s.WinningAmount, s.Fee, s.Royalty, s.ClosedAt)
	}
	return fmt.Sprintf("AuctionSummary(id=%v, item=%v, status=%v, closedAt=%v)", s.AuctionId, s.ItemId.ToString(), s.Status, s.ClosedAt)
}

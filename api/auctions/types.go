// Copyright (c) 2026 The MetaSpace developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package auctions

import (
	"github.com/ethereum/go-ethereum/common/math"

	"github.com/metaspacelab/marketplace/auction"
	"github.com/metaspacelab/marketplace/meta"
)

type Listing struct {
	Id            uint64                `json:"id"`
	Item          string                `json:"item"`
	Seller        meta.Address          `json:"seller"`
	InitialAmount *math.HexOrDecimal256 `json:"initialAmount"`
	CurrentAmount *math.HexOrDecimal256 `json:"currentAmount"`
	StartTime     uint32                `json:"startTime"`
	EndTime       uint32                `json:"endTime"`
	AuctionType   uint8                 `json:"auctionType"`
	Listing       string                `json:"listing"`
	CurrencyId    uint32                `json:"currencyId"`
	Bidder        *meta.Address         `json:"bidder"`
	BidAmount     *math.HexOrDecimal256 `json:"bidAmount"`
}

func convertListing(id meta.AuctionId, item *auction.AuctionItem, info *auction.AuctionInfo) *Listing {
	initial := math.HexOrDecimal256(*item.InitialAmount)
	current := math.HexOrDecimal256(*item.CurrentAmount)
	l := &Listing{
		Id:            uint64(id),
		Item:          item.ItemId.ToString(),
		Seller:        item.Seller,
		InitialAmount: &initial,
		CurrentAmount: &current,
		StartTime:     item.StartTime,
		EndTime:       item.EndTime,
		AuctionType:   item.AuctionType,
		Listing:       item.Listing.ToString(),
		CurrencyId:    uint32(item.CurrencyId),
	}
	if info != nil && info.HasBid {
		bidder := info.Bidder
		amount := math.HexOrDecimal256(*info.BidAmount)
		l.Bidder = &bidder
		l.BidAmount = &amount
	}
	return l
}

type Summary struct {
	Id             uint64                `json:"id"`
	Item           string                `json:"item"`
	Seller         meta.Address          `json:"seller"`
	Status         uint8                 `json:"status"`
	Winner         *meta.Address         `json:"winner"`
	WinningAmount  *math.HexOrDecimal256 `json:"winningAmount"`
	Fee            *math.HexOrDecimal256 `json:"fee"`
	Royalty        *math.HexOrDecimal256 `json:"royalty"`
	SellerProceeds *math.HexOrDecimal256 `json:"sellerProceeds"`
	CurrencyId     uint32                `json:"currencyId"`
	ClosedAt       uint32                `json:"closedAt"`
}

func convertSummary(s *auction.AuctionSummary) *Summary {
	out := &Summary{
		Id:         uint64(s.AuctionId),
		Item:       s.ItemId.ToString(),
		Seller:     s.Seller,
		Status:     s.Status,
		CurrencyId: uint32(s.CurrencyId),
		ClosedAt:   s.ClosedAt,
	}
	if s.HasWinner {
		winner := s.Winner
		out.Winner = &winner
	}
	if s.WinningAmount != nil {
		amount := math.HexOrDecimal256(*s.WinningAmount)
		out.WinningAmount = &amount
	}
	if s.Fee != nil {
		fee := math.HexOrDecimal256(*s.Fee)
		out.Fee = &fee
	}
	if s.Royalty != nil {
		royalty := math.HexOrDecimal256(*s.Royalty)
		out.Royalty = &royalty
	}
	if s.SellerProceeds != nil {
		proceeds := math.HexOrDecimal256(*s.SellerProceeds)
		out.SellerProceeds = &proceeds
	}
	return out
}

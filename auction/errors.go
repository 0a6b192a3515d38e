// Copyright (c) 2026 The MetaSpace developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package auction

import "errors"

var (
	ErrAuctionNotFound         = errors.New("auction does not exist")
	ErrItemAlreadyListed       = errors.New("item is already listed in an auction")
	ErrNotItemOwner            = errors.New("seller does not own the item")
	ErrInvalidDuration         = errors.New("auction end does not exceed minimum duration")
	ErrCollectionNotAuthorised = errors.New("collection is not authorised by the metaverse")
	ErrBidTooLow               = errors.New("bid does not exceed the current highest bid")
	ErrSelfBid                 = errors.New("seller can not bid on own listing")
	ErrInsufficientBalance     = errors.New("not enough transferable balance")
	ErrAuctionEnded            = errors.New("auction has already ended")
	ErrAuctionNotStarted       = errors.New("auction has not started")
	ErrNotBiddable             = errors.New("listing is not of auction type")
	ErrNotBuyNow               = errors.New("listing is not of buy-now type")
	ErrAmountMismatch          = errors.New("amount does not match the buy-now price")
	ErrNotAuctionSeller        = errors.New("caller is not the listing seller")
	ErrCancelWithBid           = errors.New("listing with a standing bid can only be cancelled by admin")
	ErrInvalidAmount           = errors.New("amount must be positive")
)

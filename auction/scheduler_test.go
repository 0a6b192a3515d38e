// Copyright (c) 2026 The MetaSpace developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package auction_test

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/metaspacelab/marketplace/auction"
	"github.com/metaspacelab/marketplace/meta"
)

func TestSchedulerBoundedSweep(t *testing.T) {
	f := newFixture(t)
	sched := auction.NewScheduler(f.engine, 2)

	var ids []meta.AuctionId
	for tokenId := uint64(1); tokenId <= 5; tokenId++ {
		item := f.mintNFT(t, tokenId, seller)
		id, err := f.engine.CreateAuction(f.env(5), seller, item, big.NewInt(100), 205, auction.GlobalListing(), meta.NativeTokenId)
		require.NoError(t, err)
		ids = append(ids, id)
	}

	// first sweep takes two in ascending id order and defers the rest
	sched.OnBlock(f.env(205))
	assert.Equal(t, ids[2:], f.engine.Store().PendingFinalize(f.st))
	assert.NotNil(t, f.engine.Store().GetSummary(f.st, ids[0]))
	assert.NotNil(t, f.engine.Store().GetSummary(f.st, ids[1]))
	assert.Nil(t, f.engine.Store().GetSummary(f.st, ids[2]))

	// the backlog drains FIFO ahead of newly due auctions
	lateItem := f.mintNFT(t, 6, seller)
	lateId, err := f.engine.CreateAuction(f.env(100), seller, lateItem, big.NewInt(100), 206, auction.GlobalListing(), meta.NativeTokenId)
	require.NoError(t, err)

	sched.OnBlock(f.env(206))
	assert.Equal(t, []meta.AuctionId{ids[4], lateId}, f.engine.Store().PendingFinalize(f.st))

	sched.OnBlock(f.env(207))
	assert.Empty(t, f.engine.Store().PendingFinalize(f.st))
	for _, id := range append(ids, lateId) {
		summary := f.engine.Store().GetSummary(f.st, id)
		require.NotNil(t, summary)
		assert.Equal(t, auction.StatusFinalizedNoBid, summary.Status)
	}
	assert.Empty(t, f.engine.Store().LiveAuctionIds(f.st))
}

func TestSchedulerFailureIsolation(t *testing.T) {
	f := newFixture(t)
	sched := auction.NewScheduler(f.engine, 0)

	itemA := f.mintNFT(t, 1, seller)
	itemB := f.mintNFT(t, 2, seller)
	idA, err := f.engine.CreateAuction(f.env(5), seller, itemA, big.NewInt(100), 205, auction.GlobalListing(), meta.NativeTokenId)
	require.NoError(t, err)
	idB, err := f.engine.CreateAuction(f.env(5), seller, itemB, big.NewInt(100), 205, auction.GlobalListing(), meta.NativeTokenId)
	require.NoError(t, err)

	require.NoError(t, f.engine.Bid(f.env(10), bidder1, idA, big.NewInt(101)))
	require.NoError(t, f.engine.Bid(f.env(10), bidder2, idB, big.NewInt(101)))

	// the first item slips out from under its listing, its finalize must
	// fail without poisoning the rest of the sweep
	require.NoError(t, f.nft.Transfer(f.st, &itemA, seller, artist))

	env := f.env(205)
	sched.OnBlock(env)

	summaryA := f.engine.Store().GetSummary(f.st, idA)
	require.NotNil(t, summaryA)
	assert.Equal(t, auction.StatusFailed, summaryA.Status)

	// the escrowed bid on the failed auction is refunded in full
	assert.Equal(t, int64(1000), f.balance(bidder1))
	assert.Equal(t, int64(0), f.reserved(bidder1))

	// the second auction settles untouched, 101 less the 10 royalty
	summaryB := f.engine.Store().GetSummary(f.st, idB)
	require.NotNil(t, summaryB)
	assert.Equal(t, auction.StatusFinalized, summaryB.Status)
	assert.Equal(t, bidder2, summaryB.Winner)
	assert.Equal(t, int64(91), f.balance(seller))
	assert.Equal(t, int64(10), f.balance(artist))

	owner, err := f.nft.OwnerOf(f.st, &itemB)
	require.NoError(t, err)
	assert.Equal(t, bidder2, owner)

	// the discarded settlement leaves nothing behind in the collected
	// outputs, only the surviving auction's legs remain
	transfers := env.GetTransfers()
	require.Len(t, transfers, 2)
	for _, tr := range transfers {
		assert.Equal(t, bidder2, tr.Sender)
	}

	assert.Empty(t, f.engine.Store().PendingFinalize(f.st))
	assert.Empty(t, f.engine.Store().LiveAuctionIds(f.st))
}

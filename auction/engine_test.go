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
	"github.com/metaspacelab/marketplace/registry"
	"github.com/metaspacelab/marketplace/state"
)

var (
	seller   = meta.BytesToAddress([]byte("seller"))
	bidder1  = meta.BytesToAddress([]byte("bidder-1"))
	bidder2  = meta.BytesToAddress([]byte("bidder-2"))
	artist   = meta.BytesToAddress([]byte("artist"))
	treasury = meta.BytesToAddress([]byte("metaverse-treasury"))
	admin    = meta.BytesToAddress([]byte("admin"))
)

const (
	testMetaverse meta.MetaverseId = 1
	testClass     uint64           = 2
)

type fixture struct {
	engine *auction.Engine
	nft    *registry.NFTRegistry
	st     *state.State
}

// newFixture wires an engine over fresh in-memory state: one metaverse
// with a 5% listing fee authorising testClass, and a 10% royalty on
// testClass paid to artist.
func newFixture(t *testing.T) *fixture {
	nft := registry.NewNFTRegistry(map[uint64]registry.Royalty{
		testClass: {Recipient: artist, Percent: 1000},
	})
	metaverses := registry.NewMetaverseRegistry(map[meta.MetaverseId]registry.MetaverseConfig{
		testMetaverse: {Treasury: treasury, ListingFee: 500, Collections: []uint64{testClass}},
	})
	engine := auction.NewEngine(nft, metaverses, auction.DefaultParams())

	st := state.New(nil)
	st.AddBalance(bidder1, meta.NativeTokenId, big.NewInt(1000))
	st.AddBalance(bidder2, meta.NativeTokenId, big.NewInt(1000))
	return &fixture{engine: engine, nft: nft, st: st}
}

func (f *fixture) env(blockNum uint32) *auction.Env {
	return auction.NewEnv(f.st, blockNum)
}

func (f *fixture) mintNFT(t *testing.T, tokenId uint64, owner meta.Address) meta.ItemId {
	item := meta.NewNFTItem(testClass, tokenId)
	require.NoError(t, f.nft.Mint(f.st, &item, owner))
	return item
}

func (f *fixture) balance(addr meta.Address) int64 {
	return f.st.GetBalance(addr, meta.NativeTokenId).Int64()
}

func (f *fixture) reserved(addr meta.Address) int64 {
	return f.st.GetReservedBalance(addr, meta.NativeTokenId).Int64()
}

func TestAuctionLifecycle(t *testing.T) {
	f := newFixture(t)
	item := f.mintNFT(t, 7, seller)

	id, err := f.engine.CreateAuction(f.env(5), seller, item, big.NewInt(100), 205, auction.LocalListing(testMetaverse), meta.NativeTokenId)
	require.NoError(t, err)

	// a bid equal to the initial amount is too low
	assert.Equal(t, auction.ErrBidTooLow, f.engine.Bid(f.env(10), bidder1, id, big.NewInt(100)))
	require.NoError(t, f.engine.Bid(f.env(10), bidder1, id, big.NewInt(101)))
	assert.Equal(t, int64(899), f.balance(bidder1))
	assert.Equal(t, int64(101), f.reserved(bidder1))

	// a bid equal to the standing bid is too low; outbidding refunds exactly
	assert.Equal(t, auction.ErrBidTooLow, f.engine.Bid(f.env(20), bidder2, id, big.NewInt(101)))
	require.NoError(t, f.engine.Bid(f.env(20), bidder2, id, big.NewInt(105)))
	assert.Equal(t, int64(1000), f.balance(bidder1))
	assert.Equal(t, int64(0), f.reserved(bidder1))
	assert.Equal(t, int64(895), f.balance(bidder2))
	assert.Equal(t, int64(105), f.reserved(bidder2))

	assert.Equal(t, auction.ErrAuctionNotEnded, f.engine.Finalize(f.env(100), id))

	require.NoError(t, f.engine.Finalize(f.env(205), id))

	// 105 splits into fee 5 (5% floored), royalty 10 (10%), seller 90
	assert.Equal(t, int64(5), f.balance(treasury))
	assert.Equal(t, int64(10), f.balance(artist))
	assert.Equal(t, int64(90), f.balance(seller))
	assert.Equal(t, int64(0), f.reserved(bidder2))

	owner, err := f.nft.OwnerOf(f.st, &item)
	require.NoError(t, err)
	assert.Equal(t, bidder2, owner)

	summary := f.engine.Store().GetSummary(f.st, id)
	require.NotNil(t, summary)
	assert.Equal(t, auction.StatusFinalized, summary.Status)
	assert.True(t, summary.HasWinner)
	assert.Equal(t, bidder2, summary.Winner)
	assert.Equal(t, int64(105), summary.WinningAmount.Int64())
	assert.Equal(t, int64(90), summary.SellerProceeds.Int64())

	// finalize is idempotent, a settled id is a no-op
	require.NoError(t, f.engine.Finalize(f.env(206), id))
	assert.Equal(t, int64(90), f.balance(seller))
}

func TestBidValidation(t *testing.T) {
	f := newFixture(t)
	item := f.mintNFT(t, 1, seller)

	id, err := f.engine.CreateAuction(f.env(5), seller, item, big.NewInt(100), 205, auction.GlobalListing(), meta.NativeTokenId)
	require.NoError(t, err)

	assert.Equal(t, auction.ErrAuctionNotFound, f.engine.Bid(f.env(10), bidder1, id+99, big.NewInt(101)))
	assert.Equal(t, auction.ErrSelfBid, f.engine.Bid(f.env(10), seller, id, big.NewInt(101)))
	assert.Equal(t, auction.ErrInvalidAmount, f.engine.Bid(f.env(10), bidder1, id, big.NewInt(0)))
	assert.Equal(t, auction.ErrAuctionEnded, f.engine.Bid(f.env(205), bidder1, id, big.NewInt(101)))
	assert.Equal(t, auction.ErrInsufficientBalance, f.engine.Bid(f.env(10), bidder1, id, big.NewInt(5000)))

	// a rejected bid leaves no escrow behind
	assert.Equal(t, int64(1000), f.balance(bidder1))
	assert.Equal(t, int64(0), f.reserved(bidder1))
}

func TestBuyNow(t *testing.T) {
	f := newFixture(t)
	item := f.mintNFT(t, 3, seller)

	id, err := f.engine.CreateBuyNow(f.env(5), seller, item, big.NewInt(200), auction.LocalListing(testMetaverse), meta.NativeTokenId)
	require.NoError(t, err)

	// a buy-now listing takes no bids
	assert.Equal(t, auction.ErrNotBiddable, f.engine.Bid(f.env(10), bidder1, id, big.NewInt(201)))

	// payment must match the listed price exactly
	assert.Equal(t, auction.ErrAmountMismatch, f.engine.BuyNow(f.env(10), bidder1, id, big.NewInt(199)))
	assert.Equal(t, auction.ErrAmountMismatch, f.engine.BuyNow(f.env(10), bidder1, id, big.NewInt(201)))

	require.NoError(t, f.engine.BuyNow(f.env(10), bidder1, id, big.NewInt(200)))

	// 200 splits into fee 10, royalty 20, seller 170
	assert.Equal(t, int64(800), f.balance(bidder1))
	assert.Equal(t, int64(10), f.balance(treasury))
	assert.Equal(t, int64(20), f.balance(artist))
	assert.Equal(t, int64(170), f.balance(seller))

	owner, err := f.nft.OwnerOf(f.st, &item)
	require.NoError(t, err)
	assert.Equal(t, bidder1, owner)

	// the listing is gone, the second buyer finds nothing
	assert.Equal(t, auction.ErrAuctionNotFound, f.engine.BuyNow(f.env(11), bidder2, id, big.NewInt(200)))
}

func TestFailedBuyNowLeavesNoTrace(t *testing.T) {
	f := newFixture(t)
	item := f.mintNFT(t, 11, seller)

	id, err := f.engine.CreateBuyNow(f.env(5), seller, item, big.NewInt(200), auction.GlobalListing(), meta.NativeTokenId)
	require.NoError(t, err)

	// the item slips out from under the listing, the purchase must fail
	// with the payment legs unwound
	require.NoError(t, f.nft.Transfer(f.st, &item, seller, artist))

	env := f.env(10)
	require.Error(t, f.engine.BuyNow(env, bidder1, id, big.NewInt(200)))

	assert.Empty(t, env.GetTransfers())
	assert.Empty(t, env.GetEvents())
	assert.Equal(t, int64(1000), f.balance(bidder1))
	assert.Equal(t, int64(0), f.balance(seller))
	assert.NotNil(t, f.engine.Store().GetAuctionItem(f.st, id))
}

func TestNoBidExpiry(t *testing.T) {
	f := newFixture(t)
	item := f.mintNFT(t, 4, seller)

	id, err := f.engine.CreateAuction(f.env(5), seller, item, big.NewInt(100), 205, auction.GlobalListing(), meta.NativeTokenId)
	require.NoError(t, err)

	require.NoError(t, f.engine.Finalize(f.env(205), id))

	owner, err := f.nft.OwnerOf(f.st, &item)
	require.NoError(t, err)
	assert.Equal(t, seller, owner)

	summary := f.engine.Store().GetSummary(f.st, id)
	require.NotNil(t, summary)
	assert.Equal(t, auction.StatusFinalizedNoBid, summary.Status)
	assert.False(t, summary.HasWinner)

	// the item can be listed again
	_, err = f.engine.CreateAuction(f.env(206), seller, item, big.NewInt(100), 306, auction.GlobalListing(), meta.NativeTokenId)
	require.NoError(t, err)
}

func TestCancel(t *testing.T) {
	f := newFixture(t)
	f.engine.SetAdmin(admin)
	item := f.mintNFT(t, 5, seller)

	id, err := f.engine.CreateAuction(f.env(5), seller, item, big.NewInt(100), 205, auction.GlobalListing(), meta.NativeTokenId)
	require.NoError(t, err)

	assert.Equal(t, auction.ErrNotAuctionSeller, f.engine.Cancel(f.env(10), bidder1, id))

	require.NoError(t, f.engine.Bid(f.env(10), bidder1, id, big.NewInt(101)))

	// the seller cannot pull a listing out from under an escrowed bid
	assert.Equal(t, auction.ErrCancelWithBid, f.engine.Cancel(f.env(11), seller, id))

	// the admin override refunds the standing bid in the same step
	require.NoError(t, f.engine.Cancel(f.env(12), admin, id))
	assert.Equal(t, int64(1000), f.balance(bidder1))
	assert.Equal(t, int64(0), f.reserved(bidder1))

	summary := f.engine.Store().GetSummary(f.st, id)
	require.NotNil(t, summary)
	assert.Equal(t, auction.StatusCancelled, summary.Status)

	owner, err := f.nft.OwnerOf(f.st, &item)
	require.NoError(t, err)
	assert.Equal(t, seller, owner)
}

func TestSellerCancelWithoutBid(t *testing.T) {
	f := newFixture(t)
	item := f.mintNFT(t, 6, seller)

	id, err := f.engine.CreateAuction(f.env(5), seller, item, big.NewInt(100), 205, auction.GlobalListing(), meta.NativeTokenId)
	require.NoError(t, err)
	require.NoError(t, f.engine.Cancel(f.env(10), seller, id))

	// cancelled means relistable
	_, err = f.engine.CreateAuction(f.env(11), seller, item, big.NewInt(100), 205, auction.GlobalListing(), meta.NativeTokenId)
	require.NoError(t, err)
}

func TestAntiSnipeExtension(t *testing.T) {
	f := newFixture(t)
	item := f.mintNFT(t, 8, seller)

	id, err := f.engine.CreateAuction(f.env(5), seller, item, big.NewInt(100), 205, auction.GlobalListing(), meta.NativeTokenId)
	require.NoError(t, err)

	// block 200 is inside the 10-block window before 205
	require.NoError(t, f.engine.Bid(f.env(200), bidder1, id, big.NewInt(101)))
	info := f.engine.Store().GetAuctionInfo(f.st, id)
	require.NotNil(t, info)
	assert.Equal(t, uint32(215), info.End)

	// the end index follows the extension
	assert.Empty(t, f.engine.Store().AuctionsEndingAt(f.st, 205))
	assert.Equal(t, []meta.AuctionId{id}, f.engine.Store().AuctionsEndingAt(f.st, 215))

	// an early bid does not move the end
	require.NoError(t, f.engine.Bid(f.env(201), bidder2, id, big.NewInt(110)))
	info = f.engine.Store().GetAuctionInfo(f.st, id)
	assert.Equal(t, uint32(215), info.End)

	// each extension only ever moves the end forward
	require.NoError(t, f.engine.Bid(f.env(214), bidder1, id, big.NewInt(120)))
	info = f.engine.Store().GetAuctionInfo(f.st, id)
	assert.Equal(t, uint32(225), info.End)
}

func TestCreateValidation(t *testing.T) {
	f := newFixture(t)
	item := f.mintNFT(t, 9, seller)

	// the end must leave at least the minimum duration
	_, err := f.engine.CreateAuction(f.env(5), seller, item, big.NewInt(100), 50, auction.GlobalListing(), meta.NativeTokenId)
	assert.Equal(t, auction.ErrInvalidDuration, err)

	_, err = f.engine.CreateAuction(f.env(5), seller, item, big.NewInt(0), 205, auction.GlobalListing(), meta.NativeTokenId)
	assert.Equal(t, auction.ErrInvalidAmount, err)

	_, err = f.engine.CreateAuction(f.env(5), bidder1, item, big.NewInt(100), 205, auction.GlobalListing(), meta.NativeTokenId)
	assert.Equal(t, auction.ErrNotItemOwner, err)

	// a class outside the metaverse's collections cannot list locally
	foreign := meta.NewNFTItem(99, 1)
	require.NoError(t, f.nft.Mint(f.st, &foreign, seller))
	_, err = f.engine.CreateAuction(f.env(5), seller, foreign, big.NewInt(100), 205, auction.LocalListing(testMetaverse), meta.NativeTokenId)
	assert.Equal(t, auction.ErrCollectionNotAuthorised, err)

	// one live listing per item
	_, err = f.engine.CreateAuction(f.env(5), seller, item, big.NewInt(100), 205, auction.GlobalListing(), meta.NativeTokenId)
	require.NoError(t, err)
	_, err = f.engine.CreateBuyNow(f.env(6), seller, item, big.NewInt(100), auction.GlobalListing(), meta.NativeTokenId)
	assert.Equal(t, auction.ErrItemAlreadyListed, err)
}

func TestBundleListing(t *testing.T) {
	f := newFixture(t)

	bundle := meta.NewBundleItem([]meta.BundleEntry{
		{ClassId: testClass, TokenId: 1, Value: big.NewInt(50)},
		{ClassId: testClass, TokenId: 2, Value: big.NewInt(50)},
	})
	require.NoError(t, f.nft.Mint(f.st, &bundle, seller))

	// every entry's class must be authorised for a local listing
	_, err := f.engine.CreateAuction(f.env(5), seller, bundle, big.NewInt(100), 205, auction.LocalListing(testMetaverse), meta.NativeTokenId)
	require.NoError(t, err)

	mixed := meta.NewBundleItem([]meta.BundleEntry{
		{ClassId: testClass, TokenId: 3, Value: big.NewInt(50)},
		{ClassId: 99, TokenId: 1, Value: big.NewInt(50)},
	})
	require.NoError(t, f.nft.Mint(f.st, &mixed, seller))
	_, err = f.engine.CreateAuction(f.env(5), seller, mixed, big.NewInt(100), 205, auction.LocalListing(testMetaverse), meta.NativeTokenId)
	assert.Equal(t, auction.ErrCollectionNotAuthorised, err)
}

func TestFailedBidLeavesStateUntouched(t *testing.T) {
	f := newFixture(t)
	item := f.mintNFT(t, 10, seller)

	id, err := f.engine.CreateAuction(f.env(5), seller, item, big.NewInt(100), 205, auction.GlobalListing(), meta.NativeTokenId)
	require.NoError(t, err)
	require.NoError(t, f.engine.Bid(f.env(10), bidder1, id, big.NewInt(101)))

	// bidder2 cannot cover the bid, the standing escrow must survive
	assert.Equal(t, auction.ErrInsufficientBalance, f.engine.Bid(f.env(11), bidder2, id, big.NewInt(2000)))
	assert.Equal(t, int64(101), f.reserved(bidder1))
	info := f.engine.Store().GetAuctionInfo(f.st, id)
	bidder, amount, ok := info.Bid()
	require.True(t, ok)
	assert.Equal(t, bidder1, bidder)
	assert.Equal(t, int64(101), amount.Int64())
}

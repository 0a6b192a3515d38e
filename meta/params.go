// Copyright (c) 2026 The MetaSpace developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package meta

// Chain-level marketplace parameters. Durations are in blocks.
const (
	// MinAuctionDuration is the minimum number of blocks between listing
	// and expiry of an Auction-type listing.
	MinAuctionDuration uint32 = 100

	// AntiSnipeWindow extends the auction end when a bid lands within
	// this many blocks of the deadline. The end only ever moves forward.
	AntiSnipeWindow uint32 = 10

	// MaxFinalizationsPerBlock bounds the scheduler work per block;
	// the remainder is deferred FIFO to the next block.
	MaxFinalizationsPerBlock = 50

	// SessionDuration is the length of one continuum issuance session.
	SessionDuration uint32 = 100

	// FeeDenominator makes listing-fee and royalty percents basis points.
	FeeDenominator = 10000
)

// NativeTokenId is the default settlement currency.
const NativeTokenId TokenId = 0

var (
	// MarketplaceModuleAddr holds the keyed storage of the auction engine.
	MarketplaceModuleAddr = BytesToAddress([]byte("marketplace-module-address"))

	// ContinuumModuleAddr holds the keyed storage of the continuum engine.
	ContinuumModuleAddr = BytesToAddress([]byte("continuum-module-address"))

	// NFTModuleAddr holds the keyed ownership table of the NFT registry.
	NFTModuleAddr = BytesToAddress([]byte("nft-module-address"))
)

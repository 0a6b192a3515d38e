// Copyright (c) 2026 The MetaSpace developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package auction

import (
	"math/big"

	"github.com/ethereum/go-ethereum/rlp"
	"github.com/metaspacelab/marketplace/meta"
)

// Event topics, blake2b of the event signature.
var (
	AuctionCreatedTopic        = meta.Blake2b([]byte("AuctionCreated(id,item,seller,listingLevel)"))
	BidPlacedTopic             = meta.Blake2b([]byte("BidPlaced(id,bidder,amount)"))
	AuctionExtendedTopic       = meta.Blake2b([]byte("AuctionExtended(id,newEnd)"))
	AuctionFinalizedTopic      = meta.Blake2b([]byte("AuctionFinalized(id,winner,amount)"))
	AuctionFinalizedNoBidTopic = meta.Blake2b([]byte("AuctionFinalizedNoBid(id)"))
	AuctionCancelledTopic      = meta.Blake2b([]byte("AuctionCancelled(id)"))
	AuctionFinalizeFailedTopic = meta.Blake2b([]byte("AuctionFinalizeFailed(id,reason)"))
)

func idTopic(id meta.AuctionId) meta.Bytes32 {
	return meta.BytesToBytes32(idBytes(id))
}

func emitAuctionCreated(env *Env, id meta.AuctionId, item *AuctionItem) {
	data, _ := rlp.EncodeToBytes([]interface{}{&item.ItemId, item.Seller, item.Listing.Local, item.Listing.MetaverseId})
	env.AddEvent(meta.MarketplaceModuleAddr, []meta.Bytes32{AuctionCreatedTopic, idTopic(id)}, data)
}

func emitBidPlaced(env *Env, id meta.AuctionId, bidder meta.Address, amount *big.Int) {
	data, _ := rlp.EncodeToBytes([]interface{}{bidder, amount})
	env.AddEvent(meta.MarketplaceModuleAddr, []meta.Bytes32{BidPlacedTopic, idTopic(id)}, data)
}

func emitAuctionExtended(env *Env, id meta.AuctionId, newEnd uint32) {
	data, _ := rlp.EncodeToBytes(newEnd)
	env.AddEvent(meta.MarketplaceModuleAddr, []meta.Bytes32{AuctionExtendedTopic, idTopic(id)}, data)
}

func emitAuctionFinalized(env *Env, id meta.AuctionId, winner meta.Address, amount *big.Int) {
	data, _ := rlp.EncodeToBytes([]interface{}{winner, amount})
	env.AddEvent(meta.MarketplaceModuleAddr, []meta.Bytes32{AuctionFinalizedTopic, idTopic(id)}, data)
}

func emitAuctionFinalizedNoBid(env *Env, id meta.AuctionId) {
	env.AddEvent(meta.MarketplaceModuleAddr, []meta.Bytes32{AuctionFinalizedNoBidTopic, idTopic(id)}, nil)
}

func emitAuctionCancelled(env *Env, id meta.AuctionId) {
	env.AddEvent(meta.MarketplaceModuleAddr, []meta.Bytes32{AuctionCancelledTopic, idTopic(id)}, nil)
}

func emitAuctionFinalizeFailed(env *Env, id meta.AuctionId, reason error) {
	env.AddEvent(meta.MarketplaceModuleAddr, []meta.Bytes32{AuctionFinalizeFailedTopic, idTopic(id)}, []byte(reason.Error()))
}

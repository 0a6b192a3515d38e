// Copyright (c) 2026 The MetaSpace developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package auction

import (
	"bytes"
	"encoding/binary"
	"sort"

	"github.com/ethereum/go-ethereum/rlp"
	lru "github.com/hashicorp/golang-lru"

	"github.com/metaspacelab/marketplace/meta"
	"github.com/metaspacelab/marketplace/state"
)

// the global storage keys of the marketplace module
var (
	auctionInfoPrefix  = []byte("auction-info")
	auctionItemPrefix  = []byte("auction-item")
	itemIndexPrefix    = []byte("item-in-auction")
	endIndexPrefix     = []byte("auctions-end-at")
	reservationPrefix  = []byte("auction-reservation")
	summaryPrefix      = []byte("auction-summary")
	AuctionsIndexKey   = meta.Blake2b([]byte("auctions-index-key"))
	AuctionIdListKey   = meta.Blake2b([]byte("auction-id-list-key"))
	PendingFinalizeKey = meta.Blake2b([]byte("pending-finalize-key"))
	SummaryIdListKey   = meta.Blake2b([]byte("summary-id-list-key"))
)

// MaxSummaries limits the kept settled-auction records.
const MaxSummaries = 512

func idBytes(id meta.AuctionId) []byte {
	var b [8]byte
	binary.BigEndian.PutUint64(b[:], id)
	return b[:]
}

func blockBytes(num uint32) []byte {
	var b [4]byte
	binary.BigEndian.PutUint32(b[:], num)
	return b[:]
}

func auctionInfoKey(id meta.AuctionId) meta.Bytes32 {
	return meta.Blake2b(auctionInfoPrefix, idBytes(id))
}

func auctionItemKey(id meta.AuctionId) meta.Bytes32 {
	return meta.Blake2b(auctionItemPrefix, idBytes(id))
}

func itemIndexKey(item *meta.ItemId) meta.Bytes32 {
	digest := item.ID()
	return meta.Blake2b(itemIndexPrefix, digest.Bytes())
}

func endIndexKey(num uint32) meta.Bytes32 {
	return meta.Blake2b(endIndexPrefix, blockBytes(num))
}

func reservationKey(id meta.AuctionId) meta.Bytes32 {
	return meta.Blake2b(reservationPrefix, idBytes(id))
}

func summaryKey(id meta.AuctionId) meta.Bytes32 {
	return meta.Blake2b(summaryPrefix, idBytes(id))
}

// AuctionStore owns the keyed tables of the engine: AuctionId to
// AuctionInfo/AuctionItem, the item reverse index guarding against
// double listing, the end-block index driving the scheduler and the
// settled summary archive. Summaries are immutable once written, so
// they are the only records going through the LRU cache.
type AuctionStore struct {
	summaryCache *lru.Cache
}

func NewAuctionStore() *AuctionStore {
	cache, err := lru.New(256)
	if err != nil {
		panic("create auction summary cache failed")
	}
	return &AuctionStore{summaryCache: cache}
}

// NextAuctionId allocates a fresh id. Ids are monotonic and never reused.
func (as *AuctionStore) NextAuctionId(st *state.State) meta.AuctionId {
	var next meta.AuctionId
	st.DecodeStorage(meta.MarketplaceModuleAddr, AuctionsIndexKey, func(raw []byte) error {
		if len(raw) == 0 {
			return nil
		}
		return rlp.Decode(bytes.NewReader(raw), &next)
	})
	st.EncodeStorage(meta.MarketplaceModuleAddr, AuctionsIndexKey, func() ([]byte, error) {
		return rlp.EncodeToBytes(next + 1)
	})
	return next
}

func (as *AuctionStore) GetAuctionInfo(st *state.State, id meta.AuctionId) (result *AuctionInfo) {
	st.DecodeStorage(meta.MarketplaceModuleAddr, auctionInfoKey(id), func(raw []byte) error {
		if len(raw) == 0 {
			return nil
		}
		info := AuctionInfo{}
		if err := rlp.Decode(bytes.NewReader(raw), &info); err != nil {
			return err
		}
		result = &info
		return nil
	})
	return
}

func (as *AuctionStore) SetAuctionInfo(st *state.State, id meta.AuctionId, info *AuctionInfo) {
	st.EncodeStorage(meta.MarketplaceModuleAddr, auctionInfoKey(id), func() ([]byte, error) {
		return rlp.EncodeToBytes(info)
	})
}

func (as *AuctionStore) GetAuctionItem(st *state.State, id meta.AuctionId) (result *AuctionItem) {
	st.DecodeStorage(meta.MarketplaceModuleAddr, auctionItemKey(id), func(raw []byte) error {
		if len(raw) == 0 {
			return nil
		}
		item := AuctionItem{}
		if err := rlp.Decode(bytes.NewReader(raw), &item); err != nil {
			return err
		}
		result = &item
		return nil
	})
	return
}

func (as *AuctionStore) SetAuctionItem(st *state.State, id meta.AuctionId, item *AuctionItem) {
	st.EncodeStorage(meta.MarketplaceModuleAddr, auctionItemKey(id), func() ([]byte, error) {
		return rlp.EncodeToBytes(item)
	})
}

// ItemInAuction returns the auction currently listing the item, if any.
func (as *AuctionStore) ItemInAuction(st *state.State, item *meta.ItemId) (id meta.AuctionId, listed bool) {
	st.DecodeStorage(meta.MarketplaceModuleAddr, itemIndexKey(item), func(raw []byte) error {
		if len(raw) == 0 {
			return nil
		}
		listed = true
		return rlp.Decode(bytes.NewReader(raw), &id)
	})
	return
}

func (as *AuctionStore) setItemIndex(st *state.State, item *meta.ItemId, id meta.AuctionId) {
	st.EncodeStorage(meta.MarketplaceModuleAddr, itemIndexKey(item), func() ([]byte, error) {
		return rlp.EncodeToBytes(id)
	})
}

func (as *AuctionStore) removeItemIndex(st *state.State, item *meta.ItemId) {
	st.SetRawStorage(meta.MarketplaceModuleAddr, itemIndexKey(item), nil)
}

func (as *AuctionStore) getIdList(st *state.State, key meta.Bytes32) (ids []meta.AuctionId) {
	st.DecodeStorage(meta.MarketplaceModuleAddr, key, func(raw []byte) error {
		if len(raw) == 0 {
			return nil
		}
		return rlp.Decode(bytes.NewReader(raw), &ids)
	})
	return
}

func (as *AuctionStore) setIdList(st *state.State, key meta.Bytes32, ids []meta.AuctionId) {
	if len(ids) == 0 {
		st.SetRawStorage(meta.MarketplaceModuleAddr, key, nil)
		return
	}
	st.EncodeStorage(meta.MarketplaceModuleAddr, key, func() ([]byte, error) {
		return rlp.EncodeToBytes(ids)
	})
}

func insertSorted(ids []meta.AuctionId, id meta.AuctionId) []meta.AuctionId {
	at := sort.Search(len(ids), func(i int) bool { return ids[i] >= id })
	if at < len(ids) && ids[at] == id {
		return ids
	}
	ids = append(ids, 0)
	copy(ids[at+1:], ids[at:])
	ids[at] = id
	return ids
}

func removeId(ids []meta.AuctionId, id meta.AuctionId) []meta.AuctionId {
	at := sort.Search(len(ids), func(i int) bool { return ids[i] >= id })
	if at < len(ids) && ids[at] == id {
		return append(ids[:at], ids[at+1:]...)
	}
	return ids
}

// LiveAuctionIds returns all live auction ids in ascending order.
func (as *AuctionStore) LiveAuctionIds(st *state.State) []meta.AuctionId {
	return as.getIdList(st, AuctionIdListKey)
}

// AuctionsEndingAt returns the ids whose end block equals num, ascending.
func (as *AuctionStore) AuctionsEndingAt(st *state.State, num uint32) []meta.AuctionId {
	return as.getIdList(st, endIndexKey(num))
}

// MoveEndIndex re-files an id when the anti-snipe extension moves its end.
func (as *AuctionStore) MoveEndIndex(st *state.State, id meta.AuctionId, oldEnd, newEnd uint32) {
	as.setIdList(st, endIndexKey(oldEnd), removeId(as.getIdList(st, endIndexKey(oldEnd)), id))
	as.setIdList(st, endIndexKey(newEnd), insertSorted(as.getIdList(st, endIndexKey(newEnd)), id))
}

// Insert writes a fresh auction into every table.
func (as *AuctionStore) Insert(st *state.State, id meta.AuctionId, item *AuctionItem, info *AuctionInfo) {
	as.SetAuctionItem(st, id, item)
	as.SetAuctionInfo(st, id, info)
	as.setItemIndex(st, &item.ItemId, id)
	as.setIdList(st, AuctionIdListKey, insertSorted(as.getIdList(st, AuctionIdListKey), id))
	if info.HasEnd {
		as.setIdList(st, endIndexKey(info.End), insertSorted(as.getIdList(st, endIndexKey(info.End)), id))
	}
}

// Remove drops an auction from every table. Safe to call for ids that
// are already gone.
func (as *AuctionStore) Remove(st *state.State, id meta.AuctionId) {
	item := as.GetAuctionItem(st, id)
	info := as.GetAuctionInfo(st, id)
	if item != nil {
		as.removeItemIndex(st, &item.ItemId)
	}
	if info != nil && info.HasEnd {
		as.setIdList(st, endIndexKey(info.End), removeId(as.getIdList(st, endIndexKey(info.End)), id))
	}
	st.SetRawStorage(meta.MarketplaceModuleAddr, auctionItemKey(id), nil)
	st.SetRawStorage(meta.MarketplaceModuleAddr, auctionInfoKey(id), nil)
	as.setIdList(st, AuctionIdListKey, removeId(as.getIdList(st, AuctionIdListKey), id))
}

// PendingFinalize returns the finalization backlog deferred from
// earlier blocks, in FIFO order.
func (as *AuctionStore) PendingFinalize(st *state.State) []meta.AuctionId {
	return as.getIdList(st, PendingFinalizeKey)
}

func (as *AuctionStore) SetPendingFinalize(st *state.State, ids []meta.AuctionId) {
	as.setIdList(st, PendingFinalizeKey, ids)
}

func (as *AuctionStore) GetReservation(st *state.State, id meta.AuctionId) (result *Reservation) {
	st.DecodeStorage(meta.MarketplaceModuleAddr, reservationKey(id), func(raw []byte) error {
		if len(raw) == 0 {
			return nil
		}
		r := Reservation{}
		if err := rlp.Decode(bytes.NewReader(raw), &r); err != nil {
			return err
		}
		result = &r
		return nil
	})
	return
}

func (as *AuctionStore) SetReservation(st *state.State, id meta.AuctionId, r *Reservation) {
	st.EncodeStorage(meta.MarketplaceModuleAddr, reservationKey(id), func() ([]byte, error) {
		return rlp.EncodeToBytes(r)
	})
}

func (as *AuctionStore) RemoveReservation(st *state.State, id meta.AuctionId) {
	st.SetRawStorage(meta.MarketplaceModuleAddr, reservationKey(id), nil)
}

// AddSummary archives a settled auction, evicting the oldest entries
// beyond MaxSummaries.
func (as *AuctionStore) AddSummary(st *state.State, summary *AuctionSummary) {
	st.EncodeStorage(meta.MarketplaceModuleAddr, summaryKey(summary.AuctionId), func() ([]byte, error) {
		return rlp.EncodeToBytes(summary)
	})
	ids := as.getIdList(st, SummaryIdListKey)
	ids = append(ids, summary.AuctionId)
	if len(ids) > MaxSummaries {
		for _, old := range ids[:len(ids)-MaxSummaries] {
			st.SetRawStorage(meta.MarketplaceModuleAddr, summaryKey(old), nil)
			as.summaryCache.Remove(old)
		}
		ids = ids[len(ids)-MaxSummaries:]
	}
	as.setIdList(st, SummaryIdListKey, ids)
}

// GetSummary returns the settled record of a closed auction, if kept.
func (as *AuctionStore) GetSummary(st *state.State, id meta.AuctionId) (result *AuctionSummary) {
	if cached, ok := as.summaryCache.Get(id); ok {
		return cached.(*AuctionSummary)
	}
	st.DecodeStorage(meta.MarketplaceModuleAddr, summaryKey(id), func(raw []byte) error {
		if len(raw) == 0 {
			return nil
		}
		s := AuctionSummary{}
		if err := rlp.Decode(bytes.NewReader(raw), &s); err != nil {
			return err
		}
		result = &s
		return nil
	})
	if result != nil {
		as.summaryCache.Add(id, result)
	}
	return
}

// SummaryIds returns the ids of kept settled auctions, oldest first.
func (as *AuctionStore) SummaryIds(st *state.State) []meta.AuctionId {
	return as.getIdList(st, SummaryIdListKey)
}

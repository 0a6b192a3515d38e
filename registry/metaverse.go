// Copyright (c) 2026 The MetaSpace developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package registry

import (
	"github.com/metaspacelab/marketplace/meta"
)

// MetaverseConfig is the listing policy of one metaverse.
type MetaverseConfig struct {
	Treasury meta.Address
	// ListingFee in basis points of the winning amount.
	ListingFee  uint32
	Collections []uint64
}

// MetaverseRegistry resolves local-listing policy from static node
// configuration.
type MetaverseRegistry struct {
	metaverses map[meta.MetaverseId]*metaverseEntry
}

type metaverseEntry struct {
	treasury    meta.Address
	listingFee  uint32
	collections map[uint64]bool
}

func NewMetaverseRegistry(configs map[meta.MetaverseId]MetaverseConfig) *MetaverseRegistry {
	metaverses := make(map[meta.MetaverseId]*metaverseEntry, len(configs))
	for id, cfg := range configs {
		entry := &metaverseEntry{
			treasury:    cfg.Treasury,
			listingFee:  cfg.ListingFee,
			collections: make(map[uint64]bool, len(cfg.Collections)),
		}
		for _, classId := range cfg.Collections {
			entry.collections[classId] = true
		}
		metaverses[id] = entry
	}
	return &MetaverseRegistry{metaverses: metaverses}
}

func (r *MetaverseRegistry) TreasuryAccount(metaverseId meta.MetaverseId) meta.Address {
	if entry, ok := r.metaverses[metaverseId]; ok {
		return entry.treasury
	}
	return meta.Address{}
}

func (r *MetaverseRegistry) ListingFeePercent(metaverseId meta.MetaverseId) uint32 {
	if entry, ok := r.metaverses[metaverseId]; ok {
		return entry.listingFee
	}
	return 0
}

func (r *MetaverseRegistry) IsAuthorisedCollection(metaverseId meta.MetaverseId, classId uint64) bool {
	entry, ok := r.metaverses[metaverseId]
	return ok && entry.collections[classId]
}

// Copyright (c) 2026 The MetaSpace developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package transfers

import (
	"github.com/ethereum/go-ethereum/common/math"

	"github.com/metaspacelab/marketplace/api/events"
	"github.com/metaspacelab/marketplace/logdb"
	"github.com/metaspacelab/marketplace/meta"
)

type FilteredTransfer struct {
	Sender    meta.Address          `json:"sender"`
	Recipient meta.Address          `json:"recipient"`
	Amount    *math.HexOrDecimal256 `json:"amount"`
	Meta      events.LogMeta        `json:"meta"`
	Token     uint32                `json:"token"`
}

func convertTransfer(transfer *logdb.Transfer) *FilteredTransfer {
	v := math.HexOrDecimal256(*transfer.Amount)
	return &FilteredTransfer{
		Sender:    transfer.Sender,
		Recipient: transfer.Recipient,
		Amount:    &v,
		Token:     transfer.Token,
		Meta: events.LogMeta{
			BlockNumber:    transfer.BlockNumber,
			BlockTimestamp: transfer.BlockTime,
		},
	}
}

type TransferCriteria struct {
	Sender    *meta.Address `json:"sender"`
	Recipient *meta.Address `json:"recipient"`
}

type TransferFilter struct {
	CriteriaSet []*TransferCriteria `json:"criteriaSet"`
	Range       *logdb.Range        `json:"range"`
	Options     *logdb.Options      `json:"options"`
	Order       logdb.Order         `json:"order"`
}

func convertTransferFilter(filter *TransferFilter) *logdb.TransferFilter {
	f := &logdb.TransferFilter{
		Range:   filter.Range,
		Options: filter.Options,
		Order:   filter.Order,
	}
	if len(filter.CriteriaSet) > 0 {
		criterias := make([]*logdb.TransferCriteria, len(filter.CriteriaSet))
		for i, criteria := range filter.CriteriaSet {
			criterias[i] = &logdb.TransferCriteria{
				Sender:    criteria.Sender,
				Recipient: criteria.Recipient,
			}
		}
		f.CriteriaSet = criterias
	}
	return f
}

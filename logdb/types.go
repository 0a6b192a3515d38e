// Copyright (c) 2026 The MetaSpace developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package logdb

import (
	"math/big"

	"github.com/metaspacelab/marketplace/meta"
)

//Event represents meta.Event that can be stored in db.
type Event struct {
	BlockNumber uint32
	Index       uint32
	BlockTime   uint64
	Address     meta.Address // always a module address
	Topics      [5]*meta.Bytes32
	Data        []byte
}

//newEvent converts meta.Event to Event.
func newEvent(blockNum uint32, blockTime uint64, index uint32, ev *meta.Event) *Event {
	event := &Event{
		BlockNumber: blockNum,
		Index:       index,
		BlockTime:   blockTime,
		Address:     ev.Address,
		Data:        ev.Data,
	}
	for i := 0; i < len(ev.Topics) && i < len(event.Topics); i++ {
		topic := ev.Topics[i]
		event.Topics[i] = &topic
	}
	return event
}

//Transfer represents meta.Transfer that can be stored in db.
type Transfer struct {
	BlockNumber uint32
	Index       uint32
	BlockTime   uint64
	Sender      meta.Address
	Recipient   meta.Address
	Amount      *big.Int
	Token       uint32
}

//newTransfer converts meta.Transfer to Transfer.
func newTransfer(blockNum uint32, blockTime uint64, index uint32, transfer *meta.Transfer) *Transfer {
	return &Transfer{
		BlockNumber: blockNum,
		Index:       index,
		BlockTime:   blockTime,
		Sender:      transfer.Sender,
		Recipient:   transfer.Recipient,
		Amount:      transfer.Amount,
		Token:       uint32(transfer.Token),
	}
}

type RangeType string

const (
	Block RangeType = "block"
	Time  RangeType = "time"
)

type Order string

const (
	ASC  Order = "asc"
	DESC Order = "desc"
)

type Range struct {
	Unit RangeType
	From uint64
	To   uint64
}

type Options struct {
	Offset uint64
	Limit  uint64
}

type EventCriteria struct {
	Address *meta.Address // always a module address
	Topics  [5]*meta.Bytes32
}

//EventFilter filter
type EventFilter struct {
	CriteriaSet []*EventCriteria
	Range       *Range
	Options     *Options
	Order       Order //default asc
}

type TransferCriteria struct {
	Sender    *meta.Address //who transferred tokens
	Recipient *meta.Address //who recieved tokens
}

type TransferFilter struct {
	CriteriaSet []*TransferCriteria
	Range       *Range
	Options     *Options
	Order       Order //default asc
}

// Copyright (c) 2026 The MetaSpace developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package subscriptions

import (
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/common/math"

	"github.com/metaspacelab/marketplace/meta"
)

type EventMessage struct {
	Address meta.Address   `json:"address"`
	Topics  []meta.Bytes32 `json:"topics"`
	Data    string         `json:"data"`
}

type TransferMessage struct {
	Sender    meta.Address          `json:"sender"`
	Recipient meta.Address          `json:"recipient"`
	Amount    *math.HexOrDecimal256 `json:"amount"`
	Token     uint32                `json:"token"`
}

// BlockMessage carries everything one block produced.
type BlockMessage struct {
	Number    uint32             `json:"number"`
	Timestamp uint64             `json:"timestamp"`
	Events    []*EventMessage    `json:"events"`
	Transfers []*TransferMessage `json:"transfers"`
}

func convertBlockMessage(num uint32, timestamp uint64, events []*meta.Event, transfers []*meta.Transfer) *BlockMessage {
	msg := &BlockMessage{
		Number:    num,
		Timestamp: timestamp,
		Events:    make([]*EventMessage, 0, len(events)),
		Transfers: make([]*TransferMessage, 0, len(transfers)),
	}
	for _, ev := range events {
		msg.Events = append(msg.Events, &EventMessage{
			Address: ev.Address,
			Topics:  ev.Topics,
			Data:    hexutil.Encode(ev.Data),
		})
	}
	for _, tr := range transfers {
		amount := math.HexOrDecimal256(*tr.Amount)
		msg.Transfers = append(msg.Transfers, &TransferMessage{
			Sender:    tr.Sender,
			Recipient: tr.Recipient,
			Amount:    &amount,
			Token:     uint32(tr.Token),
		})
	}
	return msg
}

// Copyright (c) 2026 The MetaSpace developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package meta

import "math/big"

// Event is one log entry emitted by a marketplace operation.
type Event struct {
	Address Address // emitting module account
	Topics  []Bytes32
	Data    []byte
}

// Transfer records one balance movement performed during an operation.
type Transfer struct {
	Sender    Address
	Recipient Address
	Amount    *big.Int
	Token     TokenId
}

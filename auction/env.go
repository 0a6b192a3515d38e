// Copyright (c) 2026 The MetaSpace developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package auction

import (
	"math/big"

	"github.com/metaspacelab/marketplace/meta"
	"github.com/metaspacelab/marketplace/state"
)

// Env carries the state view and block context of one operation and
// collects the events and transfers it produces.
type Env struct {
	state    *state.State
	blockNum uint32

	events    []*meta.Event
	transfers []*meta.Transfer
}

func NewEnv(st *state.State, blockNum uint32) *Env {
	return &Env{
		state:     st,
		blockNum:  blockNum,
		events:    make([]*meta.Event, 0),
		transfers: make([]*meta.Transfer, 0),
	}
}

func (env *Env) GetState() *state.State { return env.state }
func (env *Env) BlockNum() uint32       { return env.blockNum }

func (env *Env) AddEvent(address meta.Address, topics []meta.Bytes32, data []byte) {
	env.events = append(env.events, &meta.Event{
		Address: address,
		Topics:  topics,
		Data:    data,
	})
}

func (env *Env) AddTransfer(sender, recipient meta.Address, amount *big.Int, token meta.TokenId) {
	env.transfers = append(env.transfers, &meta.Transfer{
		Sender:    sender,
		Recipient: recipient,
		Amount:    amount,
		Token:     token,
	})
}

func (env *Env) GetEvents() []*meta.Event       { return env.events }
func (env *Env) GetTransfers() []*meta.Transfer { return env.transfers }

// Checkpoint marks a point the state and the collected outputs can be
// reverted to. Reverting drops the events and transfers recorded since
// the checkpoint along with the state writes.
type Checkpoint struct {
	state     int
	events    int
	transfers int
}

func (env *Env) NewCheckpoint() Checkpoint {
	return Checkpoint{
		state:     env.state.NewCheckpoint(),
		events:    len(env.events),
		transfers: len(env.transfers),
	}
}

func (env *Env) RevertTo(c Checkpoint) {
	env.state.RevertTo(c.state)
	env.events = env.events[:c.events]
	env.transfers = env.transfers[:c.transfers]
}

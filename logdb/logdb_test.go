// Copyright (c) 2026 The MetaSpace developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package logdb_test

import (
	"context"
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/metaspacelab/marketplace/logdb"
	"github.com/metaspacelab/marketplace/meta"
)

func TestEvents(t *testing.T) {
	db, err := logdb.NewMem()
	if err != nil {
		t.Fatal(err)
	}
	defer db.Close()

	event := &meta.Event{
		Address: meta.BytesToAddress([]byte("addr")),
		Topics:  []meta.Bytes32{meta.BytesToBytes32([]byte("topic0")), meta.BytesToBytes32([]byte("topic1"))},
		Data:    []byte{0, 0, 0, 0, 0, 0, 0, 97, 48},
	}

	for i := 0; i < 100; i++ {
		if err := db.Prepare(uint32(i), uint64(i)*10).
			Insert([]*meta.Event{event}, nil).Commit(); err != nil {
			t.Fatal(err)
		}
	}

	limit := 5
	t0 := meta.BytesToBytes32([]byte("topic0"))
	t1 := meta.BytesToBytes32([]byte("topic1"))
	addr := meta.BytesToAddress([]byte("addr"))
	es, err := db.FilterEvents(context.Background(), &logdb.EventFilter{
		Range: &logdb.Range{
			Unit: logdb.Block,
			From: 0,
			To:   10,
		},
		Options: &logdb.Options{
			Offset: 0,
			Limit:  uint64(limit),
		},
		Order: logdb.DESC,
		CriteriaSet: []*logdb.EventCriteria{
			{
				Address: &addr,
			},
			{
				Address: &addr,
				Topics: [5]*meta.Bytes32{&t0,
					&t1,
					nil,
					nil,
					nil},
			},
		},
	})
	if err != nil {
		t.Fatal(err)
	}
	assert.Equal(t, len(es), limit, "limit should be equal")
	assert.Equal(t, uint32(10), es[0].BlockNumber)
}

func TestTransfers(t *testing.T) {
	db, err := logdb.NewMem()
	if err != nil {
		t.Fatal(err)
	}
	defer db.Close()

	from := meta.BytesToAddress([]byte("from"))
	to := meta.BytesToAddress([]byte("to"))
	value := big.NewInt(10)
	count := 100
	for i := 0; i < count; i++ {
		transfer := &meta.Transfer{
			Sender:    from,
			Recipient: to,
			Amount:    value,
			Token:     meta.NativeTokenId,
		}
		if err := db.Prepare(uint32(i), uint64(i)*10).Insert(nil, []*meta.Transfer{transfer}).
			Commit(); err != nil {
			t.Fatal(err)
		}
	}

	tf := &logdb.TransferFilter{
		CriteriaSet: []*logdb.TransferCriteria{
			{
				Sender:    &from,
				Recipient: &to,
			},
		},
		Range: &logdb.Range{
			Unit: logdb.Block,
			From: 0,
			To:   1000,
		},
		Options: &logdb.Options{
			Offset: 0,
			Limit:  uint64(count),
		},
		Order: logdb.DESC,
	}
	ts, err := db.FilterTransfers(context.Background(), tf)
	if err != nil {
		t.Fatal(err)
	}
	assert.Equal(t, len(ts), count, "transfers searched")
	assert.Equal(t, value, ts[0].Amount)
}

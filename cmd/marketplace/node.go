// Copyright (c) 2026 The MetaSpace developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package main

import (
	"encoding/binary"
	"log/slog"
	"sync"
	"time"

	"github.com/metaspacelab/marketplace/api/subscriptions"
	"github.com/metaspacelab/marketplace/auction"
	"github.com/metaspacelab/marketplace/continuum"
	"github.com/metaspacelab/marketplace/logdb"
	"github.com/metaspacelab/marketplace/meta"
	"github.com/metaspacelab/marketplace/registry"
	"github.com/metaspacelab/marketplace/state"
)

var (
	bestBlockKey      = meta.Blake2b([]byte("node-best-block-key"))
	genesisAppliedKey = meta.Blake2b([]byte("node-genesis-applied-key"))
)

// Node drives the block clock: each tick runs the continuum session
// hook and the finalization sweep, commits state, archives the produced
// logs and fans them out to subscribers.
type Node struct {
	logger    *slog.Logger
	creator   *state.Creator
	logDB     *logdb.LogDB
	scheduler *auction.Scheduler
	cont      *continuum.Engine
	subs      *subscriptions.Subscriptions
	interval  time.Duration

	done chan struct{}
	wg   sync.WaitGroup
}

func NewNode(creator *state.Creator, logDB *logdb.LogDB, scheduler *auction.Scheduler, cont *continuum.Engine, subs *subscriptions.Subscriptions, interval time.Duration) *Node {
	return &Node{
		logger:    slog.Default().With("pkg", "node"),
		creator:   creator,
		logDB:     logDB,
		scheduler: scheduler,
		cont:      cont,
		subs:      subs,
		interval:  interval,
		done:      make(chan struct{}),
	}
}

func bestBlock(st *state.State) uint32 {
	raw := st.GetRawStorage(meta.MarketplaceModuleAddr, bestBlockKey)
	if len(raw) != 4 {
		return 0
	}
	return binary.BigEndian.Uint32(raw)
}

func setBestBlock(st *state.State, num uint32) {
	var b [4]byte
	binary.BigEndian.PutUint32(b[:], num)
	st.SetRawStorage(meta.MarketplaceModuleAddr, bestBlockKey, b[:])
}

// applyGenesis seeds balances and NFT ownership from config, once.
func applyGenesis(cfg *Config, creator *state.Creator, nft *registry.NFTRegistry) error {
	st := creator.NewState()
	if len(st.GetRawStorage(meta.MarketplaceModuleAddr, genesisAppliedKey)) != 0 {
		return nil
	}
	for _, b := range cfg.Genesis.Balances {
		addr, err := meta.ParseAddress(b.Address)
		if err != nil {
			return err
		}
		amount, err := parseAmount(b.Amount)
		if err != nil {
			return err
		}
		st.AddBalance(addr, meta.TokenId(b.Token), amount)
	}
	for _, n := range cfg.Genesis.NFTs {
		owner, err := meta.ParseAddress(n.Owner)
		if err != nil {
			return err
		}
		item := meta.NewNFTItem(n.ClassId, n.TokenId)
		if err := nft.Mint(st, &item, owner); err != nil {
			return err
		}
	}
	st.SetRawStorage(meta.MarketplaceModuleAddr, genesisAppliedKey, []byte{1})
	return st.Commit()
}

func (n *Node) Start() {
	n.wg.Add(1)
	go n.loop()
}

func (n *Node) Stop() {
	close(n.done)
	n.wg.Wait()
}

func (n *Node) loop() {
	defer n.wg.Done()
	ticker := time.NewTicker(n.interval)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			n.processBlock()
		case <-n.done:
			return
		}
	}
}

func (n *Node) processBlock() {
	st := n.creator.NewState()
	num := bestBlock(st) + 1
	now := uint64(time.Now().Unix())
	env := auction.NewEnv(st, num)

	n.cont.OnBlock(env)
	n.scheduler.OnBlock(env)
	setBestBlock(st, num)

	if err := st.Commit(); err != nil {
		n.logger.Error("block commit failed", "block", num, "err", err)
		return
	}
	if err := n.logDB.Prepare(num, now).Insert(env.GetEvents(), env.GetTransfers()).Commit(); err != nil {
		n.logger.Warn("log archive failed", "block", num, "err", err)
	}
	n.subs.PublishBlock(num, now, env.GetEvents(), env.GetTransfers())
	n.logger.Debug("block processed", "block", num, "events", len(env.GetEvents()), "transfers", len(env.GetTransfers()))
}

// Copyright (c) 2026 The MetaSpace developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package auction

import (
	"log/slog"
	"time"

	"github.com/metaspacelab/marketplace/meta"
)

// Scheduler drives finalization deterministically. Each block it takes
// the backlog deferred from earlier blocks plus the auctions whose end
// index hits the current block, processes at most maxPerBlock in order
// and defers the remainder FIFO. A finalize failure is isolated: the
// auction is discarded with a failure event and the sweep continues.
type Scheduler struct {
	engine      *Engine
	maxPerBlock int
	logger      *slog.Logger
}

func NewScheduler(engine *Engine, maxPerBlock int) *Scheduler {
	if maxPerBlock <= 0 {
		maxPerBlock = meta.MaxFinalizationsPerBlock
	}
	return &Scheduler{
		engine:      engine,
		maxPerBlock: maxPerBlock,
		logger:      slog.Default().With("pkg", "sched"),
	}
}

// OnBlock sweeps the due auctions of one block. Called exactly once per
// block number, in block order.
func (s *Scheduler) OnBlock(env *Env) {
	st := env.GetState()
	start := time.Now()

	// backlog first (FIFO), then this block's due ids in ascending order
	due := s.engine.store.PendingFinalize(st)
	due = append(due, s.engine.store.AuctionsEndingAt(st, env.BlockNum())...)
	if len(due) == 0 {
		return
	}

	processed := 0
	for _, id := range due {
		if processed >= s.maxPerBlock {
			break
		}
		processed++
		if err := s.engine.Finalize(env, id); err != nil {
			s.engine.discardFailed(env, id, err)
		}
	}

	s.engine.store.SetPendingFinalize(st, due[processed:])
	pendingFinalizeGauge.Set(float64(len(due) - processed))
	s.logger.Info("finalization sweep completed", "block", env.BlockNum(), "processed", processed,
		"deferred", len(due)-processed, "elapsed", meta.PrettyDuration(time.Since(start)))
}

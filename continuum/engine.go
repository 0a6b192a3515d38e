// Copyright (c) 2026 The MetaSpace developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package continuum

import (
	"log/slog"
	"math/big"

	"github.com/pkg/errors"

	"github.com/metaspacelab/marketplace/auction"
	"github.com/metaspacelab/marketplace/meta"
	"github.com/metaspacelab/marketplace/state"
)

var (
	ErrSpotOutOfBounds   = errors.New("spot coordinate out of map bounds")
	ErrSpotAlreadyIssued = errors.New("spot already issued")
	ErrSpotNotIssued     = errors.New("spot not issued")
	ErrNotAdmin          = errors.New("caller is not the continuum admin")
)

var (
	SpotIssuedTopic       = meta.Blake2b([]byte("SpotIssued(x,y)"))
	SessionStartedTopic   = meta.Blake2b([]byte("SessionStarted(start)"))
	MaxBoundsChangedTopic = meta.Blake2b([]byte("MaxBoundsChanged(maxX,maxY)"))
)

// Params tunes the issuance cycle of the continuum map.
type Params struct {
	// SessionDuration is the length in blocks of one issuance session.
	// Spot auctions opened at a session boundary end at the next one.
	SessionDuration uint32
	// InitialBid is the opening amount of every spot auction.
	InitialBid *big.Int
	// DefaultBounds applies until an admin stores explicit bounds.
	DefaultBounds MaxBounds
}

func DefaultParams() Params {
	return Params{
		SessionDuration: meta.SessionDuration,
		InitialBid:      big.NewInt(1),
		DefaultBounds:   MaxBounds{MaxX: 100, MaxY: 100},
	}
}

// Engine runs map slot issuance. Slots are queued per session and put
// up for global auction at the session boundary; the auction engine
// settles them back through the SpotRegistry hooks below.
type Engine struct {
	logger *slog.Logger
	params Params
	auct   *auction.Engine
	admin  meta.Address
}

func NewEngine(auct *auction.Engine, params Params) *Engine {
	e := &Engine{
		logger: slog.Default().With("pkg", "continuum"),
		params: params,
		auct:   auct,
	}
	auct.SetSpotRegistry(e)
	return e
}

// SetAdmin installs the account allowed to change the map bounds.
func (e *Engine) SetAdmin(admin meta.Address) {
	e.admin = admin
}

func (e *Engine) Params() Params { return e.params }

// IssueMapSlot queues the coordinate for auction in the next session.
// Each coordinate can be issued exactly once, ever.
func (e *Engine) IssueMapSlot(env *auction.Env, x, y int32) (err error) {
	st := env.GetState()
	rev := env.NewCheckpoint()
	defer func() {
		if err != nil {
			env.RevertTo(rev)
		}
	}()

	bounds := getMaxBounds(st, e.params.DefaultBounds)
	if !inBounds(x, y, bounds) {
		return ErrSpotOutOfBounds
	}
	c := coordOf(x, y)
	if getSpot(st, c) != nil {
		return ErrSpotAlreadyIssued
	}

	setSpot(st, &SpotRecord{Coord: c, IssuedAt: env.BlockNum()})
	setCoordList(st, IssueQueueKey, append(getCoordList(st, IssueQueueKey), c))
	setCoordList(st, SpotCoordsKey, append(getCoordList(st, SpotCoordsKey), c))

	env.AddEvent(meta.ContinuumModuleAddr, []meta.Bytes32{SpotIssuedTopic}, encodeCoord(c))
	spotsIssuedCounter.Inc()
	e.logger.Info("map slot issued", "x", x, "y", y, "block", env.BlockNum())
	return nil
}

// SetMaxBounds stores new map bounds. Admin only. Shrinking the bounds
// never revokes already-issued spots.
func (e *Engine) SetMaxBounds(env *auction.Env, caller meta.Address, bounds MaxBounds) error {
	if e.admin.IsZero() || caller != e.admin {
		return ErrNotAdmin
	}
	st := env.GetState()
	setMaxBounds(st, bounds)
	env.AddEvent(meta.ContinuumModuleAddr, []meta.Bytes32{MaxBoundsChangedTopic}, nil)
	e.logger.Info("map bounds changed", "maxX", bounds.MaxX, "maxY", bounds.MaxY)
	return nil
}

// OnBlock opens a new session at each boundary: the queued coordinates
// become the session's spot set and one global auction per spot is
// created, ending at the next boundary.
func (e *Engine) OnBlock(env *auction.Env) {
	now := env.BlockNum()
	if e.params.SessionDuration == 0 || now%e.params.SessionDuration != 0 {
		return
	}
	st := env.GetState()

	queue := getCoordList(st, IssueQueueKey)
	setCoordList(st, IssueQueueKey, nil)
	setSession(st, &Session{Start: now, Spots: queue})
	env.AddEvent(meta.ContinuumModuleAddr, []meta.Bytes32{SessionStartedTopic}, nil)
	if len(queue) == 0 {
		return
	}

	end := now + e.params.SessionDuration
	for _, c := range queue {
		x, y := c.signed()
		item := meta.NewSpotItem(x, y)
		id, err := e.auct.CreateAuction(env, meta.ContinuumModuleAddr, item, e.params.InitialBid, end, auction.GlobalListing(), meta.NativeTokenId)
		if err != nil {
			// the spot stays issued but unlisted, next session retries it
			e.logger.Warn("spot auction failed to open", "x", x, "y", y, "err", err)
			setCoordList(st, IssueQueueKey, append(getCoordList(st, IssueQueueKey), c))
			continue
		}
		e.logger.Info("spot auction opened", "id", id, "x", x, "y", y, "end", end)
	}
	e.logger.Info("continuum session started", "start", now, "spots", len(queue))
}

// CurrentSession returns the latest session, or nil before the first
// boundary.
func (e *Engine) CurrentSession(st *state.State) *Session {
	return getSession(st)
}

// Spots returns every issued coordinate with its record.
func (e *Engine) Spots(st *state.State) []*SpotRecord {
	coords := getCoordList(st, SpotCoordsKey)
	recs := make([]*SpotRecord, 0, len(coords))
	for _, c := range coords {
		if rec := getSpot(st, c); rec != nil {
			recs = append(recs, rec)
		}
	}
	return recs
}

// SpotIssued implements auction.SpotRegistry.
func (e *Engine) SpotIssued(st *state.State, x, y int32) (meta.Address, bool) {
	rec := getSpot(st, coordOf(x, y))
	if rec == nil {
		return meta.Address{}, false
	}
	return rec.Owner, true
}

// TransferSpot implements auction.SpotRegistry.
func (e *Engine) TransferSpot(st *state.State, x, y int32, to meta.Address) error {
	rec := getSpot(st, coordOf(x, y))
	if rec == nil {
		return ErrSpotNotIssued
	}
	if rec.Owner.IsZero() {
		spotsOwnedGauge.Inc()
	}
	rec.Owner = to
	setSpot(st, rec)
	return nil
}

func inBounds(x, y int32, bounds MaxBounds) bool {
	return abs32(x) <= int64(bounds.MaxX) && abs32(y) <= int64(bounds.MaxY)
}

func abs32(v int32) int64 {
	if v < 0 {
		return -int64(v)
	}
	return int64(v)
}

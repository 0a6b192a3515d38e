// Copyright (c) 2026 The MetaSpace developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package continuum

import (
	"bytes"
	"encoding/binary"

	"github.com/ethereum/go-ethereum/rlp"

	"github.com/metaspacelab/marketplace/meta"
	"github.com/metaspacelab/marketplace/state"
)

// the global storage keys of the continuum module
var (
	spotPrefix    = []byte("continuum-spot")
	MaxBoundsKey  = meta.Blake2b([]byte("continuum-max-bounds-key"))
	IssueQueueKey = meta.Blake2b([]byte("continuum-issue-queue-key"))
	SessionKey    = meta.Blake2b([]byte("continuum-session-key"))
	SpotCoordsKey = meta.Blake2b([]byte("continuum-spot-coords-key"))
)

// SpotCoord is a grid coordinate in storage form (two's complement).
type SpotCoord struct {
	X uint32
	Y uint32
}

func coordOf(x, y int32) SpotCoord {
	return SpotCoord{X: uint32(x), Y: uint32(y)}
}

func (c SpotCoord) signed() (int32, int32) {
	return int32(c.X), int32(c.Y)
}

// SpotRecord is the issued-slot entry of one coordinate. Owner stays
// zero until an auction settles map rights.
type SpotRecord struct {
	Coord    SpotCoord
	Owner    meta.Address
	IssuedAt uint32
}

// MaxBounds is the rectangular issuance bound: coordinates are valid
// while |x| <= MaxX and |y| <= MaxY.
type MaxBounds struct {
	MaxX uint32
	MaxY uint32
}

// Session is one issuance batch. Its spot set is computed when the
// session opens and stays immutable until the next boundary.
type Session struct {
	Start uint32
	Spots []SpotCoord
}

func encodeCoord(c SpotCoord) []byte {
	var b [8]byte
	binary.BigEndian.PutUint32(b[:4], c.X)
	binary.BigEndian.PutUint32(b[4:], c.Y)
	return b[:]
}

func spotKey(c SpotCoord) meta.Bytes32 {
	var b [8]byte
	binary.BigEndian.PutUint32(b[:4], c.X)
	binary.BigEndian.PutUint32(b[4:], c.Y)
	return meta.Blake2b(spotPrefix, b[:])
}

func getSpot(st *state.State, c SpotCoord) (result *SpotRecord) {
	st.DecodeStorage(meta.ContinuumModuleAddr, spotKey(c), func(raw []byte) error {
		if len(raw) == 0 {
			return nil
		}
		rec := SpotRecord{}
		if err := rlp.Decode(bytes.NewReader(raw), &rec); err != nil {
			return err
		}
		result = &rec
		return nil
	})
	return
}

func setSpot(st *state.State, rec *SpotRecord) {
	st.EncodeStorage(meta.ContinuumModuleAddr, spotKey(rec.Coord), func() ([]byte, error) {
		return rlp.EncodeToBytes(rec)
	})
}

func getCoordList(st *state.State, key meta.Bytes32) (coords []SpotCoord) {
	st.DecodeStorage(meta.ContinuumModuleAddr, key, func(raw []byte) error {
		if len(raw) == 0 {
			return nil
		}
		return rlp.Decode(bytes.NewReader(raw), &coords)
	})
	return
}

func setCoordList(st *state.State, key meta.Bytes32, coords []SpotCoord) {
	if len(coords) == 0 {
		st.SetRawStorage(meta.ContinuumModuleAddr, key, nil)
		return
	}
	st.EncodeStorage(meta.ContinuumModuleAddr, key, func() ([]byte, error) {
		return rlp.EncodeToBytes(coords)
	})
}

func getMaxBounds(st *state.State, fallback MaxBounds) (bounds MaxBounds) {
	bounds = fallback
	st.DecodeStorage(meta.ContinuumModuleAddr, MaxBoundsKey, func(raw []byte) error {
		if len(raw) == 0 {
			return nil
		}
		return rlp.Decode(bytes.NewReader(raw), &bounds)
	})
	return
}

func setMaxBounds(st *state.State, bounds MaxBounds) {
	st.EncodeStorage(meta.ContinuumModuleAddr, MaxBoundsKey, func() ([]byte, error) {
		return rlp.EncodeToBytes(bounds)
	})
}

func getSession(st *state.State) (result *Session) {
	st.DecodeStorage(meta.ContinuumModuleAddr, SessionKey, func(raw []byte) error {
		if len(raw) == 0 {
			return nil
		}
		s := Session{}
		if err := rlp.Decode(bytes.NewReader(raw), &s); err != nil {
			return err
		}
		result = &s
		return nil
	})
	return
}

func setSession(st *state.State, s *Session) {
	st.EncodeStorage(meta.ContinuumModuleAddr, SessionKey, func() ([]byte, error) {
		return rlp.EncodeToBytes(s)
	})
}

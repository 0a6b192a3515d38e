// Copyright (c) 2026 The MetaSpace developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package spots

import (
	"github.com/metaspacelab/marketplace/continuum"
	"github.com/metaspacelab/marketplace/meta"
)

type Spot struct {
	X        int32        `json:"x"`
	Y        int32        `json:"y"`
	Owner    meta.Address `json:"owner"`
	IssuedAt uint32       `json:"issuedAt"`
}

func convertSpot(rec *continuum.SpotRecord) *Spot {
	x, y := int32(rec.Coord.X), int32(rec.Coord.Y)
	return &Spot{
		X:        x,
		Y:        y,
		Owner:    rec.Owner,
		IssuedAt: rec.IssuedAt,
	}
}

type Session struct {
	Start uint32     `json:"start"`
	Spots [][2]int32 `json:"spots"`
}

func convertSession(s *continuum.Session) *Session {
	out := &Session{
		Start: s.Start,
		Spots: make([][2]int32, 0, len(s.Spots)),
	}
	for _, c := range s.Spots {
		out.Spots = append(out.Spots, [2]int32{int32(c.X), int32(c.Y)})
	}
	return out
}

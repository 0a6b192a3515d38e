// Copyright (c) 2026 The MetaSpace developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package continuum

import (
	"fmt"
	"math"
)

// ContinuumSpot is one addressable (x, y) cell of the continuum grid.
type ContinuumSpot struct {
	X int32
	Y int32
}

func (s ContinuumSpot) String() string {
	return fmt.Sprintf("(%d,%d)", s.X, s.Y)
}

// moveCoordinate offsets a coordinate with overflow checking. An
// offset that would wrap is rejected, never wrapped.
func moveCoordinate(x, y, dx, dy int32) (ContinuumSpot, bool) {
	nx := int64(x) + int64(dx)
	ny := int64(y) + int64(dy)
	if nx < math.MinInt32 || nx > math.MaxInt32 || ny < math.MinInt32 || ny > math.MaxInt32 {
		return ContinuumSpot{}, false
	}
	return ContinuumSpot{X: int32(nx), Y: int32(ny)}, true
}

// FindNeighbours returns the Moore neighbourhood of (x, y): the up to 8
// surrounding cells. Neighbours whose coordinates would overflow are
// omitted.
func FindNeighbours(x, y int32) []ContinuumSpot {
	adjacent := [8][2]int32{
		{-1, -1}, {-1, 0}, {-1, 1},
		{0, -1}, {0, 1},
		{1, -1}, {1, 0}, {1, 1},
	}
	neighbours := make([]ContinuumSpot, 0, 8)
	for _, d := range adjacent {
		if spot, ok := moveCoordinate(x, y, d[0], d[1]); ok {
			neighbours = append(neighbours, spot)
		}
	}
	return neighbours
}

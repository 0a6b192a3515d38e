// Copyright (c) 2026 The MetaSpace developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package meta

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSpotItemSignedCoords(t *testing.T) {
	item := NewSpotItem(-5, 7)
	x, y := item.Spot()
	assert.Equal(t, int32(-5), x)
	assert.Equal(t, int32(7), y)
	assert.Equal(t, "Spot(-5,7)", item.ToString())
}

func TestItemIdDigest(t *testing.T) {
	nft := NewNFTItem(2, 1)
	same := NewNFTItem(2, 1)
	assert.Equal(t, nft.ID(), same.ID())

	// different kinds with overlapping numeric fields must not collide
	spot := NewSpotItem(2, 1)
	assert.NotEqual(t, nft.ID(), spot.ID())

	other := NewNFTItem(2, 2)
	assert.NotEqual(t, nft.ID(), other.ID())
}

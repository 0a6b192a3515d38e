// Copyright (c) 2026 The MetaSpace developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package state

import "github.com/metaspacelab/marketplace/lvldb"

// Creator creates state instances on top of one backing store.
type Creator struct {
	store lvldb.Store
}

// NewCreator creates a state creator. store may be nil for in-memory states.
func NewCreator(store lvldb.Store) *Creator {
	return &Creator{store: store}
}

// NewState creates a fresh state view over the backing store.
func (c *Creator) NewState() *State {
	return New(c.store)
}

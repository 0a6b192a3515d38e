// Copyright (c) 2026 The MetaSpace developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package auctions_test

import (
	"encoding/json"
	"io"
	"math/big"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/metaspacelab/marketplace/api/auctions"
	"github.com/metaspacelab/marketplace/auction"
	"github.com/metaspacelab/marketplace/lvldb"
	"github.com/metaspacelab/marketplace/meta"
	"github.com/metaspacelab/marketplace/registry"
	"github.com/metaspacelab/marketplace/state"
)

var (
	seller = meta.BytesToAddress([]byte("seller"))
	bidder = meta.BytesToAddress([]byte("bidder"))
)

func initServer(t *testing.T) (*httptest.Server, meta.AuctionId) {
	db, err := lvldb.NewMem()
	require.NoError(t, err)
	creator := state.NewCreator(db)

	nft := registry.NewNFTRegistry(nil)
	engine := auction.NewEngine(nft, registry.NewMetaverseRegistry(nil), auction.DefaultParams())

	st := creator.NewState()
	st.AddBalance(bidder, meta.NativeTokenId, big.NewInt(1000))
	item := meta.NewNFTItem(2, 1)
	require.NoError(t, nft.Mint(st, &item, seller))

	env := auction.NewEnv(st, 5)
	id, err := engine.CreateAuction(env, seller, item, big.NewInt(100), 205, auction.GlobalListing(), meta.NativeTokenId)
	require.NoError(t, err)
	require.NoError(t, engine.Bid(auction.NewEnv(st, 10), bidder, id, big.NewInt(101)))
	require.NoError(t, st.Commit())

	router := mux.NewRouter()
	auctions.New(creator, engine.Store()).Mount(router, "/auctions")
	return httptest.NewServer(router), id
}

func httpGet(t *testing.T, url string) ([]byte, int) {
	res, err := http.Get(url)
	require.NoError(t, err)
	body, err := io.ReadAll(res.Body)
	require.NoError(t, err)
	res.Body.Close()
	return body, res.StatusCode
}

func TestListings(t *testing.T) {
	ts, id := initServer(t)
	defer ts.Close()

	body, code := httpGet(t, ts.URL+"/auctions")
	require.Equal(t, http.StatusOK, code)
	var listings []*auctions.Listing
	require.NoError(t, json.Unmarshal(body, &listings))
	require.Len(t, listings, 1)
	assert.Equal(t, uint64(id), listings[0].Id)
	assert.Equal(t, "NFT(2,1)", listings[0].Item)
	assert.Equal(t, seller, listings[0].Seller)
	require.NotNil(t, listings[0].Bidder)
	assert.Equal(t, bidder, *listings[0].Bidder)

	body, code = httpGet(t, ts.URL+"/auctions/"+strconv.FormatUint(uint64(id), 10))
	require.Equal(t, http.StatusOK, code)
	var single auctions.Listing
	require.NoError(t, json.Unmarshal(body, &single))
	assert.Equal(t, uint64(id), single.Id)

	_, code = httpGet(t, ts.URL+"/auctions/9999")
	assert.Equal(t, http.StatusNotFound, code)

	_, code = httpGet(t, ts.URL+"/auctions/not-a-number")
	assert.Equal(t, http.StatusBadRequest, code)
}

func TestListingEnd(t *testing.T) {
	ts, id := initServer(t)
	defer ts.Close()

	body, code := httpGet(t, ts.URL+"/auctions/"+strconv.FormatUint(uint64(id), 10)+"/end")
	require.Equal(t, http.StatusOK, code)
	var end uint32
	require.NoError(t, json.Unmarshal(body, &end))
	assert.Equal(t, uint32(205), end)
}

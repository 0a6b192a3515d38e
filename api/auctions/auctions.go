// Copyright (c) 2026 The MetaSpace developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package auctions

import (
	"net/http"
	"strconv"

	"github.com/ethereum/go-ethereum/common/math"
	"github.com/gorilla/mux"
	"github.com/pkg/errors"

	"github.com/metaspacelab/marketplace/api/utils"
	"github.com/metaspacelab/marketplace/auction"
	"github.com/metaspacelab/marketplace/meta"
	"github.com/metaspacelab/marketplace/state"
)

type Auctions struct {
	creator *state.Creator
	store   *auction.AuctionStore
}

func New(creator *state.Creator, store *auction.AuctionStore) *Auctions {
	return &Auctions{
		creator: creator,
		store:   store,
	}
}

func (a *Auctions) parseId(req *http.Request) (meta.AuctionId, error) {
	raw := mux.Vars(req)["id"]
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		return 0, utils.BadRequest(errors.WithMessage(err, "id"))
	}
	return meta.AuctionId(id), nil
}

func (a *Auctions) handleGetListings(w http.ResponseWriter, req *http.Request) error {
	st := a.creator.NewState()
	listings := make([]*Listing, 0)

	var metaverse *meta.MetaverseId
	if raw := req.URL.Query().Get("metaverse"); raw != "" {
		mid, err := strconv.ParseUint(raw, 10, 64)
		if err != nil {
			return utils.BadRequest(errors.WithMessage(err, "metaverse"))
		}
		m := meta.MetaverseId(mid)
		metaverse = &m
	}

	for _, id := range a.store.LiveAuctionIds(st) {
		item := a.store.GetAuctionItem(st, id)
		if item == nil {
			continue
		}
		if metaverse != nil && (!item.Listing.Local || item.Listing.MetaverseId != *metaverse) {
			continue
		}
		listings = append(listings, convertListing(id, item, a.store.GetAuctionInfo(st, id)))
	}
	return utils.WriteJSON(w, listings)
}

func (a *Auctions) handleGetListing(w http.ResponseWriter, req *http.Request) error {
	id, err := a.parseId(req)
	if err != nil {
		return err
	}
	st := a.creator.NewState()
	item := a.store.GetAuctionItem(st, id)
	if item == nil {
		return utils.NotFound(auction.ErrAuctionNotFound)
	}
	return utils.WriteJSON(w, convertListing(id, item, a.store.GetAuctionInfo(st, id)))
}

func (a *Auctions) handleGetPrice(w http.ResponseWriter, req *http.Request) error {
	id, err := a.parseId(req)
	if err != nil {
		return err
	}
	st := a.creator.NewState()
	item := a.store.GetAuctionItem(st, id)
	if item == nil {
		return utils.NotFound(auction.ErrAuctionNotFound)
	}
	price := math.HexOrDecimal256(*item.CurrentAmount)
	return utils.WriteJSON(w, &price)
}

func (a *Auctions) handleGetEnd(w http.ResponseWriter, req *http.Request) error {
	id, err := a.parseId(req)
	if err != nil {
		return err
	}
	st := a.creator.NewState()
	info := a.store.GetAuctionInfo(st, id)
	if info == nil {
		return utils.NotFound(auction.ErrAuctionNotFound)
	}
	// buy-now listings never expire, reported as null
	if !info.HasEnd {
		return utils.WriteJSON(w, nil)
	}
	return utils.WriteJSON(w, info.End)
}

func (a *Auctions) handleGetSummaries(w http.ResponseWriter, req *http.Request) error {
	st := a.creator.NewState()
	summaries := make([]*Summary, 0)
	for _, id := range a.store.SummaryIds(st) {
		if s := a.store.GetSummary(st, id); s != nil {
			summaries = append(summaries, convertSummary(s))
		}
	}
	return utils.WriteJSON(w, summaries)
}

func (a *Auctions) handleGetSummaryByID(w http.ResponseWriter, req *http.Request) error {
	id, err := a.parseId(req)
	if err != nil {
		return err
	}
	st := a.creator.NewState()
	s := a.store.GetSummary(st, id)
	if s == nil {
		return utils.NotFound(auction.ErrAuctionNotFound)
	}
	return utils.WriteJSON(w, convertSummary(s))
}

func (a *Auctions) Mount(root *mux.Router, pathPrefix string) {
	sub := root.PathPrefix(pathPrefix).Subrouter()
	sub.Path("").Methods("GET").HandlerFunc(utils.WrapHandlerFunc(a.handleGetListings))
	sub.Path("/summaries").Methods("GET").HandlerFunc(utils.WrapHandlerFunc(a.handleGetSummaries))
	sub.Path("/summaries/{id}").Methods("GET").HandlerFunc(utils.WrapHandlerFunc(a.handleGetSummaryByID))
	sub.Path("/{id}").Methods("GET").HandlerFunc(utils.WrapHandlerFunc(a.handleGetListing))
	sub.Path("/{id}/price").Methods("GET").HandlerFunc(utils.WrapHandlerFunc(a.handleGetPrice))
	sub.Path("/{id}/end").Methods("GET").HandlerFunc(utils.WrapHandlerFunc(a.handleGetEnd))
}

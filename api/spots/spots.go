// Copyright (c) 2026 The MetaSpace developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package spots

import (
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	"github.com/pkg/errors"

	"github.com/metaspacelab/marketplace/api/utils"
	"github.com/metaspacelab/marketplace/continuum"
	"github.com/metaspacelab/marketplace/state"
)

type Spots struct {
	creator *state.Creator
	engine  *continuum.Engine
}

func New(creator *state.Creator, engine *continuum.Engine) *Spots {
	return &Spots{
		creator: creator,
		engine:  engine,
	}
}

func parseCoord(req *http.Request) (int32, int32, error) {
	x, err := strconv.ParseInt(mux.Vars(req)["x"], 10, 32)
	if err != nil {
		return 0, 0, utils.BadRequest(errors.WithMessage(err, "x"))
	}
	y, err := strconv.ParseInt(mux.Vars(req)["y"], 10, 32)
	if err != nil {
		return 0, 0, utils.BadRequest(errors.WithMessage(err, "y"))
	}
	return int32(x), int32(y), nil
}

func (s *Spots) handleGetSpots(w http.ResponseWriter, req *http.Request) error {
	st := s.creator.NewState()
	spots := make([]*Spot, 0)
	for _, rec := range s.engine.Spots(st) {
		spots = append(spots, convertSpot(rec))
	}
	return utils.WriteJSON(w, spots)
}

func (s *Spots) handleGetSpot(w http.ResponseWriter, req *http.Request) error {
	x, y, err := parseCoord(req)
	if err != nil {
		return err
	}
	st := s.creator.NewState()
	owner, issued := s.engine.SpotIssued(st, x, y)
	if !issued {
		return utils.NotFound(continuum.ErrSpotNotIssued)
	}
	return utils.WriteJSON(w, &Spot{X: x, Y: y, Owner: owner})
}

func (s *Spots) handleGetNeighbours(w http.ResponseWriter, req *http.Request) error {
	x, y, err := parseCoord(req)
	if err != nil {
		return err
	}
	neighbours := make([]*Spot, 0)
	st := s.creator.NewState()
	for _, n := range continuum.FindNeighbours(x, y) {
		owner, _ := s.engine.SpotIssued(st, n.X, n.Y)
		neighbours = append(neighbours, &Spot{X: n.X, Y: n.Y, Owner: owner})
	}
	return utils.WriteJSON(w, neighbours)
}

func (s *Spots) handleGetSession(w http.ResponseWriter, req *http.Request) error {
	st := s.creator.NewState()
	session := s.engine.CurrentSession(st)
	if session == nil {
		return utils.WriteJSON(w, nil)
	}
	return utils.WriteJSON(w, convertSession(session))
}

func (s *Spots) Mount(root *mux.Router, pathPrefix string) {
	sub := root.PathPrefix(pathPrefix).Subrouter()
	sub.Path("").Methods("GET").HandlerFunc(utils.WrapHandlerFunc(s.handleGetSpots))
	sub.Path("/session").Methods("GET").HandlerFunc(utils.WrapHandlerFunc(s.handleGetSession))
	sub.Path("/{x}/{y}").Methods("GET").HandlerFunc(utils.WrapHandlerFunc(s.handleGetSpot))
	sub.Path("/{x}/{y}/neighbours").Methods("GET").HandlerFunc(utils.WrapHandlerFunc(s.handleGetNeighbours))
}

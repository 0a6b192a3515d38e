// Copyright (c) 2026 The MetaSpace developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package api

import (
	"net/http"
	"strings"

	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/metaspacelab/marketplace/api/auctions"
	"github.com/metaspacelab/marketplace/api/events"
	"github.com/metaspacelab/marketplace/api/spots"
	"github.com/metaspacelab/marketplace/api/subscriptions"
	"github.com/metaspacelab/marketplace/api/transfers"
	"github.com/metaspacelab/marketplace/auction"
	"github.com/metaspacelab/marketplace/continuum"
	"github.com/metaspacelab/marketplace/logdb"
	"github.com/metaspacelab/marketplace/state"
)

// New return api router
func New(stateCreator *state.Creator, store *auction.AuctionStore, contEngine *continuum.Engine, logDB *logdb.LogDB, allowedOrigins string) (http.HandlerFunc, *subscriptions.Subscriptions, func()) {
	origins := strings.Split(strings.TrimSpace(allowedOrigins), ",")
	for i, o := range origins {
		origins[i] = strings.ToLower(strings.TrimSpace(o))
	}

	router := mux.NewRouter()

	auctions.New(stateCreator, store).
		Mount(router, "/auctions")
	spots.New(stateCreator, contEngine).
		Mount(router, "/spots")
	events.New(logDB).
		Mount(router, "/logs/event")
	transfers.New(logDB).
		Mount(router, "/logs/transfer")
	subs := subscriptions.New(origins)
	subs.Mount(router, "/subscriptions")
	router.Path("/metrics").Handler(promhttp.Handler())

	return handlers.CORS(
			handlers.AllowedOrigins(origins),
			handlers.AllowedHeaders([]string{"content-type"}))(router).ServeHTTP,
		subs,
		subs.Close // subscriptions handles hijacked conns, which need to be closed
}

package auction

import "github.com/prometheus/client_golang/prometheus"

var (
	auctionsCreatedCounter = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "marketplace_auctions_created_total",
		Help: "Counter of created listings",
	})
	bidsAcceptedCounter = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "marketplace_bids_accepted_total",
		Help: "Counter of accepted bids",
	})
	auctionsExtendedCounter = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "marketplace_auctions_extended_total",
		Help: "Counter of anti-snipe end extensions",
	})
	auctionsFinalizedCounter = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "marketplace_auctions_finalized_total",
		Help: "Counter of finalized listings (with and without bid)",
	})
	auctionsCancelledCounter = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "marketplace_auctions_cancelled_total",
		Help: "Counter of cancelled listings",
	})
	auctionsFailedCounter = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "marketplace_auctions_finalize_failed_total",
		Help: "Counter of listings discarded after a finalize failure",
	})
	liveAuctionsGauge = prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "marketplace_live_auctions",
		Help: "Number of live listings",
	})
	pendingFinalizeGauge = prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "marketplace_pending_finalize",
		Help: "Finalization backlog deferred to the next block",
	})
)

func init() {
	prometheus.MustRegister(
		auctionsCreatedCounter,
		bidsAcceptedCounter,
		auctionsExtendedCounter,
		auctionsFinalizedCounter,
		auctionsCancelledCounter,
		auctionsFailedCounter,
		liveAuctionsGauge,
		pendingFinalizeGauge,
	)
}

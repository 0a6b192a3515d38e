package continuum

import "github.com/prometheus/client_golang/prometheus"

var (
	spotsIssuedCounter = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "continuum_spots_issued_total",
		Help: "Counter of issued map slots",
	})
	spotsOwnedGauge = prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "continuum_spots_owned",
		Help: "Number of map slots settled to an owner",
	})
)

func init() {
	prometheus.MustRegister(
		spotsIssuedCounter,
		spotsOwnedGauge,
	)
}

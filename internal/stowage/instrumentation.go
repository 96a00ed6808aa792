package stowage

import "github.com/prometheus/client_golang/prometheus"

// MetricsRegistry wraps the Prometheus collectors a caller may optionally
// attach to a Container so its utilization/fragmentation/waste counters are
// scrapeable. The engine only registers collectors — it never serves
// /metrics itself, matching spec.md §1's "out of scope: HTTP surface".
// Construction mirrors the teacher's gateway/middleware/monitoring.go.
type MetricsRegistry struct {
	utilization      *prometheus.GaugeVec
	fragmentation    *prometheus.GaugeVec
	wasteCount       *prometheus.GaugeVec
	placementsOK     *prometheus.CounterVec
	placementsFailed *prometheus.CounterVec
}

// NewMetricsRegistry constructs and registers the stowage collectors
// against reg. Pass prometheus.NewRegistry() or prometheus.DefaultRegisterer.
func NewMetricsRegistry(reg prometheus.Registerer) (*MetricsRegistry, error) {
	m := &MetricsRegistry{
		utilization: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: "stowage",
			Name:      "container_utilization_ratio",
			Help:      "Fraction of container volume occupied by placed items.",
		}, []string{"container_id", "zone"}),
		fragmentation: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: "stowage",
			Name:      "container_fragmentation_index",
			Help:      "Ratio of the largest empty box to total empty volume.",
		}, []string{"container_id", "zone"}),
		wasteCount: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: "stowage",
			Name:      "container_waste_items",
			Help:      "Count of items currently marked waste.",
		}, []string{"container_id", "zone"}),
		placementsOK: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "stowage",
			Name:      "placements_accepted_total",
			Help:      "Count of placeItem calls that succeeded.",
		}, []string{"container_id", "zone"}),
		placementsFailed: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "stowage",
			Name:      "placements_rejected_total",
			Help:      "Count of placeItem calls that failed.",
		}, []string{"container_id", "zone"}),
	}

	for _, c := range []prometheus.Collector{m.utilization, m.fragmentation, m.wasteCount, m.placementsOK, m.placementsFailed} {
		if err := reg.Register(c); err != nil {
			return nil, wrapErr(CodeInvalidArgument, "registering stowage metrics", err)
		}
	}
	return m, nil
}

func (m *MetricsRegistry) observeUtilization(containerID, zone string, ratio float64) {
	if m == nil {
		return
	}
	m.utilization.WithLabelValues(containerID, zone).Set(ratio)
}

func (m *MetricsRegistry) observeFragmentation(containerID, zone string, index float64) {
	if m == nil {
		return
	}
	m.fragmentation.WithLabelValues(containerID, zone).Set(index)
}

func (m *MetricsRegistry) observeWasteCount(containerID, zone string, count int) {
	if m == nil {
		return
	}
	m.wasteCount.WithLabelValues(containerID, zone).Set(float64(count))
}

func (m *MetricsRegistry) observePlacement(containerID, zone string, ok bool) {
	if m == nil {
		return
	}
	if ok {
		m.placementsOK.WithLabelValues(containerID, zone).Inc()
	} else {
		m.placementsFailed.WithLabelValues(containerID, zone).Inc()
	}
}

package shop

import (
	"github.com/prometheus/client_golang/prometheus"

	"Storefront/internal/catalog"
)

type shopMetrics struct {
	cartMutations  *prometheus.CounterVec
	catalogState   *prometheus.GaugeVec
	gateRejections prometheus.Counter
	customProducts prometheus.Gauge
}

// newShopMetrics registers on reg when it is non-nil; otherwise the
// collectors still count but are not exported.
func newShopMetrics(reg prometheus.Registerer) *shopMetrics {
	m := &shopMetrics{
		cartMutations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "storefront_cart_mutations_total",
			Help: "Cart mutations by operation",
		}, []string{"op"}),
		catalogState: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "storefront_catalog_state",
			Help: "1 for the current catalog load state",
		}, []string{"state"}),
		gateRejections: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "storefront_gate_rejections_total",
			Help: "Admin actions discarded at the confirmation step",
		}),
		customProducts: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "storefront_custom_products",
			Help: "Number of admin-added products",
		}),
	}
	if reg != nil {
		reg.MustRegister(m.cartMutations, m.catalogState, m.gateRejections, m.customProducts)
	}
	return m
}

func (m *shopMetrics) setCatalogState(state catalog.State) {
	for _, s := range []catalog.State{catalog.StateLoading, catalog.StateReady, catalog.StateFailed} {
		v := 0.0
		if s == state {
			v = 1
		}
		m.catalogState.WithLabelValues(string(s)).Set(v)
	}
}

package definition

import "github.com/prometheus/client_golang/prometheus"

// Metrics - Prometheus-метрики кеша определений
type Metrics struct {
	hits         prometheus.Counter
	misses       *prometheus.CounterVec
	loadFailures prometheus.Counter
	scans        prometheus.Counter
	cached       prometheus.Gauge
	records      prometheus.Gauge
}

// NewMetrics создаёт метрики и регистрирует их в reg (nil - без регистрации)
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		hits: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "worldobjects",
			Subsystem: "definitions",
			Name:      "hits_total",
			Help:      "Запросы, обслуженные из кеша определений.",
		}),
		misses: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "worldobjects",
			Subsystem: "definitions",
			Name:      "misses_total",
			Help:      "Промахи кеша: reason=loaded|no_record|load_failed|id_mismatch.",
		}, []string{"reason"}),
		loadFailures: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "worldobjects",
			Subsystem: "definitions",
			Name:      "load_failures_total",
			Help:      "Ошибки чтения или разбора записей.",
		}),
		scans: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "worldobjects",
			Subsystem: "definitions",
			Name:      "scans_total",
			Help:      "Полные просмотры источника записей.",
		}),
		cached: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "worldobjects",
			Subsystem: "definitions",
			Name:      "cached",
			Help:      "Количество загруженных определений.",
		}),
		records: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "worldobjects",
			Subsystem: "definitions",
			Name:      "records",
			Help:      "Количество записей, найденных при просмотре источника.",
		}),
	}
	if reg != nil {
		reg.MustRegister(m.hits, m.misses, m.loadFailures, m.scans, m.cached, m.records)
	}
	return m
}

func (m *Metrics) hit() {
	if m != nil {
		m.hits.Inc()
	}
}

func (m *Metrics) miss(reason string) {
	if m != nil {
		m.misses.WithLabelValues(reason).Inc()
	}
}

func (m *Metrics) loadFailed() {
	if m != nil {
		m.loadFailures.Inc()
	}
}

func (m *Metrics) scanned(records int) {
	if m != nil {
		m.scans.Inc()
		m.records.Set(float64(records))
	}
}

func (m *Metrics) setCached(n int) {
	if m != nil {
		m.cached.Set(float64(n))
	}
}

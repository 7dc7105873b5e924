package interact

import "github.com/prometheus/client_golang/prometheus"

// Пути выполнения взаимодействия
const (
	PathModel     = "model"
	PathTile      = "tile"
	PathReacquire = "reacquire"
	PathNone      = "none"
)

// Metrics - Prometheus-метрики диспетчера взаимодействий
type Metrics struct {
	interactions *prometheus.CounterVec
	reprojected  prometheus.Counter
}

// NewMetrics создаёт метрики и регистрирует их в reg (nil - без регистрации)
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		interactions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "worldobjects",
			Name:      "interactions_total",
			Help:      "Взаимодействия с объектами по операции, пути и результату.",
		}, []string{"op", "path", "result"}),
		reprojected: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "worldobjects",
			Name:      "tile_reprojections_total",
			Help:      "Повторные проекции тайла после ухода точки с экрана.",
		}),
	}
	if reg != nil {
		reg.MustRegister(m.interactions, m.reprojected)
	}
	return m
}

func (m *Metrics) observe(op, path string, ok bool) {
	if m == nil {
		return
	}
	result := "fail"
	if ok {
		result = "ok"
	}
	m.interactions.WithLabelValues(op, path, result).Inc()
}

func (m *Metrics) reprojection() {
	if m == nil {
		return
	}
	m.reprojected.Inc()
}

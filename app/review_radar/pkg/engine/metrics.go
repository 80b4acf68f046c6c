package engine

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/iWorld-y/review_radar/app/review_radar/pkg/model"
)

// Metrics 来源查询的 Prometheus 指标
//
//   - review_radar_source_requests_total{source,outcome}
//   - review_radar_source_duration_seconds{source}
//   - review_radar_reviews_collected_total{source}
//   - review_radar_reviews_dropped_total{source}
type Metrics struct {
	Requests  *prometheus.CounterVec
	Duration  *prometheus.HistogramVec
	Collected *prometheus.CounterVec
	Dropped   *prometheus.CounterVec
}

// NewMetrics 在 reg 上注册指标，reg 为 nil 时只创建不注册
func NewMetrics(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		Requests: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "review_radar_source_requests_total",
			Help: "Total number of source queries by outcome",
		}, []string{"source", "outcome"}),
		Duration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "review_radar_source_duration_seconds",
			Help:    "Duration of source queries in seconds",
			Buckets: []float64{0.5, 1, 2, 5, 10, 30, 60},
		}, []string{"source"}),
		Collected: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "review_radar_reviews_collected_total",
			Help: "Total number of normalized reviews collected",
		}, []string{"source"}),
		Dropped: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "review_radar_reviews_dropped_total",
			Help: "Total number of malformed records dropped during normalization",
		}, []string{"source"}),
	}
}

func (m *Metrics) observe(src model.Source, meta model.SourceMeta, seconds float64) {
	if m == nil {
		return
	}
	s := string(src)
	m.Requests.WithLabelValues(s, string(meta.Status)).Inc()
	m.Duration.WithLabelValues(s).Observe(seconds)
	m.Collected.WithLabelValues(s).Add(float64(meta.Count))
	m.Dropped.WithLabelValues(s).Add(float64(meta.Dropped))
}

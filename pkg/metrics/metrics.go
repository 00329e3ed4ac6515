// Package metrics expõe as métricas de cálculo de relatórios e da base em memória
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "crowley"

// Resultados de uma geração de relatório
const (
	OutcomeOK            = "ok"
	OutcomeNoData        = "no_data"
	OutcomeConfigError   = "config_error"
	OutcomeCapacityError = "capacity_error"
	OutcomeError         = "error"
)

// Metrics reúne os coletores da aplicação em um registry próprio
type Metrics struct {
	registry *prometheus.Registry

	ReportBuilds   *prometheus.CounterVec
	ReportDuration *prometheus.HistogramVec
	BaseTableRows  prometheus.Gauge
	BaseReloads    *prometheus.CounterVec
}

func New() *Metrics {
	m := &Metrics{registry: prometheus.NewRegistry()}

	m.ReportBuilds = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "report_builds_total",
		Help:      "Total de relatórios gerados por tipo e resultado",
	}, []string{"report", "outcome"})

	m.ReportDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "report_duration_seconds",
		Help:      "Tempo de cálculo de cada relatório",
		Buckets:   prometheus.DefBuckets,
	}, []string{"report"})

	m.BaseTableRows = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "base_table_rows",
		Help:      "Linhas na base de inserções em memória",
	})

	m.BaseReloads = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "base_reloads_total",
		Help:      "Recargas da base de inserções por resultado",
	}, []string{"outcome"})

	m.registry.MustRegister(m.ReportBuilds, m.ReportDuration, m.BaseTableRows, m.BaseReloads)

	return m
}

// ObserveReport registra uma geração de relatório
func (m *Metrics) ObserveReport(report, outcome string, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.ReportBuilds.WithLabelValues(report, outcome).Inc()
	m.ReportDuration.WithLabelValues(report).Observe(elapsed.Seconds())
}

// ObserveReload registra uma recarga da base
func (m *Metrics) ObserveReload(outcome string, rows int) {
	if m == nil {
		return
	}
	m.BaseReloads.WithLabelValues(outcome).Inc()
	if outcome == OutcomeOK {
		m.BaseTableRows.Set(float64(rows))
	}
}

// Gatherer retorna o registry para exportação
func (m *Metrics) Gatherer() prometheus.Gatherer {
	return m.registry
}

// Handler serve o endpoint /metrics
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// Package reporting compõe os relatórios Crowley a partir do classificador, agregador,
// comparativo, pivot e paginação
package reporting

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/pkg/errors"
	"github.com/vfg2006/crowley-insights-api/internal/dataset"
	"github.com/vfg2006/crowley-insights-api/internal/domain"
	"github.com/vfg2006/crowley-insights-api/internal/usecases/paginating"
	"github.com/vfg2006/crowley-insights-api/internal/usecases/ranking"
	"github.com/vfg2006/crowley-insights-api/pkg/log"
	"github.com/vfg2006/crowley-insights-api/pkg/metrics"
	"github.com/vfg2006/crowley-insights-api/pkg/utils"
)

// Nomes dos relatórios, usados em rotas, métricas e logs
const (
	ReportCampaignFlow     = "campaign_flow"
	ReportOpportunityRadar = "opportunity_radar"
	ReportPerformanceIndex = "performance_index"
	ReportPresenceMap      = "presence_map"
	ReportCustom           = "custom"
)

// BaseProvider entrega a base de inserções em memória
type BaseProvider interface {
	Table() (*dataset.Table, error)
}

// ReportingService é o contrato consumido pelos handlers
type ReportingService interface {
	FilterOptions(ctx context.Context, selection domain.FilterSelection) (*domain.FilterOptions, error)
	CampaignFlow(ctx context.Context, filter domain.FilterContext, showShare bool) (*domain.CampaignFlowReport, error)
	OpportunityRadar(ctx context.Context, filter domain.FilterContext) (*domain.OpportunityRadarReport, error)
	PerformanceIndex(ctx context.Context, filter domain.FilterContext) (*domain.PerformanceIndexReport, error)
	PresenceMap(ctx context.Context, filter domain.PresenceFilter, page int) (*domain.PresenceMapReport, error)
	Custom(ctx context.Context, spec domain.PivotSpec, filter domain.CustomFilter) (*domain.CustomReport, error)
	Limits() paginating.Limits
}

// Config são os parâmetros de período e limites
type Config struct {
	MinDate           time.Time
	DefaultWindowDays int
	Limits            paginating.Limits
}

type Service struct {
	base    BaseProvider
	ranking ranking.RankingService
	metrics *metrics.Metrics
	cfg     Config
	now     func() time.Time
}

func NewReportingService(base BaseProvider, cfg Config, m *metrics.Metrics) *Service {
	if cfg.DefaultWindowDays <= 0 {
		cfg.DefaultWindowDays = 30
	}
	if cfg.Limits == (paginating.Limits{}) {
		cfg.Limits = paginating.DefaultLimits()
	}

	return &Service{
		base:    base,
		ranking: ranking.NewComparisonService(),
		metrics: m,
		cfg:     cfg,
		now:     time.Now,
	}
}

func (s *Service) Limits() paginating.Limits {
	return s.cfg.Limits
}

func (s *Service) table() (*dataset.Table, error) {
	table, err := s.base.Table()
	if err != nil {
		return nil, errors.Wrap(err, "erro ao obter base de inserções")
	}
	if table == nil {
		return nil, domain.ErrBaseNotLoaded
	}
	return table, nil
}

// bounds são as datas permitidas: da data mínima configurada até a última data da base
func (s *Service) bounds(table *dataset.Table) domain.DateBounds {
	latest := utils.StartOfDay(s.now().UTC())
	if last := table.LastDate(); last != nil {
		latest = *last
	}

	return domain.DateBounds{Min: s.cfg.MinDate, Max: latest}
}

// defaultWindows são o período atual (últimos dias até a data máxima) e o de referência
// imediatamente anterior, ambos limitados à data mínima
func (s *Service) defaultWindows(bounds domain.DateBounds) (domain.DateWindow, domain.DateWindow) {
	days := s.cfg.DefaultWindowDays
	clamp := func(t time.Time) time.Time {
		if !bounds.Min.IsZero() && t.Before(bounds.Min) {
			return bounds.Min
		}
		return t
	}

	current := domain.DateWindow{Start: clamp(bounds.Max.AddDate(0, 0, -days)), End: bounds.Max}
	refEnd := clamp(current.Start.AddDate(0, 0, -1))
	reference := domain.DateWindow{Start: clamp(refEnd.AddDate(0, 0, -days)), End: refEnd}

	return current, reference
}

// observe registra métrica e log de uma geração de relatório
func (s *Service) observe(ctx context.Context, report string, started time.Time, noData bool, err error) {
	outcome := metrics.OutcomeOK
	logger := log.ForContext(ctx).WithField("report", report)

	switch {
	case err == nil && noData:
		outcome = metrics.OutcomeNoData
	case err == nil:
	case domain.IsConfigError(err):
		outcome = metrics.OutcomeConfigError
	case domain.IsCapacityError(err):
		outcome = metrics.OutcomeCapacityError
		logger.WithError(err).Warn("Relatório recusado por tamanho")
	default:
		outcome = metrics.OutcomeError
		logger.WithError(err).Error("Erro ao gerar relatório")
	}

	elapsed := time.Since(started)
	s.metrics.ObserveReport(report, outcome, elapsed)

	logger.WithFields(log.Fields{
		"outcome":     outcome,
		"duration_ms": elapsed.Milliseconds(),
	}).Info("Relatório processado")
}

func noData(message string) domain.ReportStatus {
	return domain.ReportStatus{NoData: true, Message: message}
}

// buildDetail monta o detalhamento ordenado por anunciante e data.
// Com dedupe, linhas idênticas vindas de períodos sobrepostos são colapsadas.
func buildDetail(table *dataset.Table, dedupe bool) *domain.DetailTable {
	events := append([]domain.InsertionEvent(nil), table.Events()...)
	if dedupe {
		events = distinctEvents(events)
	}

	sort.SliceStable(events, func(i, j int) bool {
		if events[i].Advertiser != events[j].Advertiser {
			return events[i].Advertiser < events[j].Advertiser
		}
		return dateOf(events[i]).Before(dateOf(events[j]))
	})

	detail := &domain.DetailTable{Rows: make([]domain.DetailRow, 0, len(events))}
	for _, e := range events {
		row := domain.DetailRow{
			Advertiser: e.Advertiser,
			Creative:   e.Creative,
			Duration:   e.Duration,
			Market:     e.Market,
			Vehicle:    e.Vehicle,
			Type:       e.Type,
			DayPart:    e.DayPart,
			Volume:     table.Value(e, dataset.MetricVolume),
		}
		if e.Date != nil {
			row.Date = utils.FormatDayFirst(*e.Date)
		}

		detail.TotalVolume += row.Volume
		detail.Rows = append(detail.Rows, row)
	}

	return detail
}

func dateOf(e domain.InsertionEvent) time.Time {
	if e.Date == nil {
		return time.Time{}
	}
	return *e.Date
}

func distinctEvents(events []domain.InsertionEvent) []domain.InsertionEvent {
	seen := make(map[domain.InsertionEvent]struct{}, len(events))
	out := make([]domain.InsertionEvent, 0, len(events))
	for _, e := range events {
		key := e
		if e.Date != nil {
			// Ponteiros diferentes para o mesmo instante são a mesma linha
			d := dateOf(e)
			key.Date = nil
			key.Creative = e.Creative + "\x1f" + d.Format(time.RFC3339Nano)
		}
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, e)
	}
	return out
}

// listOrAll exibe uma seleção ou "Todos" quando vazia
func listOrAll(values []string) string {
	if len(values) == 0 {
		return "Todos"
	}
	return strings.Join(values, ", ")
}

func formatWindow(w domain.DateWindow) string {
	return utils.FormatDayFirst(w.Start) + " a " + utils.FormatDayFirst(w.End)
}

func vehicleLabel(vehicle string) string {
	if vehicle == "" {
		return domain.ConsolidatedVehicle
	}
	return vehicle
}

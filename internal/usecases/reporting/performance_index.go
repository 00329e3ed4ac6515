package reporting

import (
	"context"
	"time"

	"github.com/vfg2006/crowley-insights-api/internal/dataset"
	"github.com/vfg2006/crowley-insights-api/internal/domain"
	"github.com/vfg2006/crowley-insights-api/pkg/log"
)

// PerformanceIndex compara o volume de cada anunciante entre o período atual e o de referência
func (s *Service) PerformanceIndex(ctx context.Context, filter domain.FilterContext) (report *domain.PerformanceIndexReport, err error) {
	started := time.Now()
	defer func() {
		s.observe(ctx, ReportPerformanceIndex, started, report != nil && report.NoData, err)
	}()

	table, err := s.table()
	if err != nil {
		return nil, err
	}
	if err := s.validateComparison(table, filter); err != nil {
		return nil, err
	}

	current, reference := s.windows(table, filter)

	report = &domain.PerformanceIndexReport{
		Ranking: []domain.RankedComparison{},
		Filters: performanceIndexFilters(filter),
	}

	if current.IsEmpty() && reference.IsEmpty() {
		report.ReportStatus = noData("Nenhum dado encontrado para os períodos selecionados.")
		return report, nil
	}

	report.Ranking = s.ranking.Rank(current, reference, dataset.MetricVolume)
	report.Detail = buildDetail(dataset.Concat(current, reference), true)

	log.ForContext(ctx).WithFields(log.Fields{
		"report":      ReportPerformanceIndex,
		"market":      filter.Market,
		"advertisers": len(report.Ranking) - 1,
	}).Info("Performance index calculado")

	return report, nil
}

func performanceIndexFilters(filter domain.FilterContext) []domain.FilterEntry {
	return []domain.FilterEntry{
		{Label: "Período Atual", Value: formatWindow(filter.Current)},
		{Label: "Período Comparativo", Value: formatWindow(*filter.Reference)},
		{Label: "Praça", Value: filter.Market},
		{Label: "Veículo", Value: vehicleLabel(filter.Vehicle)},
		{Label: "Anunciantes Filtro", Value: listOrAll(filter.Advertisers)},
		{Label: "Tipo de Veiculação", Value: listOrAll(filter.Types)},
	}
}

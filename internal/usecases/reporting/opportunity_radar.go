package reporting

import (
	"context"
	"fmt"
	"time"

	"github.com/vfg2006/crowley-insights-api/internal/dataset"
	"github.com/vfg2006/crowley-insights-api/internal/domain"
	"github.com/vfg2006/crowley-insights-api/internal/usecases/aggregating"
	"github.com/vfg2006/crowley-insights-api/internal/usecases/classifying"
	"github.com/vfg2006/crowley-insights-api/pkg/log"
	"github.com/vfg2006/crowley-insights-api/pkg/utils"
)

// windows aplica os filtros comuns uma única vez e divide a população nos dois períodos,
// garantindo que tipo, veículo e anunciantes valham igualmente para ambos
func (s *Service) windows(table *dataset.Table, filter domain.FilterContext) (*dataset.Table, *dataset.Table) {
	scope := table.Where(
		dataset.InMarket(filter.Market),
		dataset.InAdvertisers(filter.Advertisers),
		dataset.InTypes(filter.Types),
		dataset.OnVehicle(filter.Vehicle),
	)

	return scope.FilterByWindow(filter.Current), scope.FilterByWindow(*filter.Reference)
}

func (s *Service) validateComparison(table *dataset.Table, filter domain.FilterContext) error {
	if filter.Reference == nil {
		return domain.NewConfigError("ref_start_date", "período de referência é obrigatório")
	}
	return filter.Validate(s.bounds(table))
}

// OpportunityRadar lista os anunciantes que entraram no período atual sem presença no de referência
func (s *Service) OpportunityRadar(ctx context.Context, filter domain.FilterContext) (report *domain.OpportunityRadarReport, err error) {
	started := time.Now()
	defer func() {
		s.observe(ctx, ReportOpportunityRadar, started, report != nil && report.NoData, err)
	}()

	table, err := s.table()
	if err != nil {
		return nil, err
	}
	if err := s.validateComparison(table, filter); err != nil {
		return nil, err
	}

	current, reference := s.windows(table, filter)

	report = &domain.OpportunityRadarReport{
		NewEntrants: classifying.NewEntrants(current, reference),
		Filters:     opportunityRadarFilters(filter),
	}

	if len(report.NewEntrants) == 0 {
		report.ReportStatus = noData(fmt.Sprintf("Nenhum anunciante novo encontrado na %s neste período comparativo.", filter.Market))
		return report, nil
	}

	report.Overview = aggregating.Summarize(current, report.NewEntrants, aggregating.Options{
		Dimension:   dataset.FieldVehicle,
		TotalColumn: true,
	})
	report.Detail = buildDetail(current.Where(dataset.InAdvertisers(report.NewEntrants)), false)

	log.ForContext(ctx).WithFields(log.Fields{
		"report":       ReportOpportunityRadar,
		"market":       filter.Market,
		"new_entrants": len(report.NewEntrants),
	}).Info("Opportunity radar calculado")

	return report, nil
}

func opportunityRadarFilters(filter domain.FilterContext) []domain.FilterEntry {
	return []domain.FilterEntry{
		{Label: "Início Análise", Value: utils.FormatDayFirst(filter.Current.Start)},
		{Label: "Fim Análise", Value: utils.FormatDayFirst(filter.Current.End)},
		{Label: "Início Ref.", Value: utils.FormatDayFirst(filter.Reference.Start)},
		{Label: "Fim Ref.", Value: utils.FormatDayFirst(filter.Reference.End)},
		{Label: "Praça", Value: filter.Market},
		{Label: "Veículo", Value: vehicleLabel(filter.Vehicle)},
		{Label: "Filtro Anunciantes", Value: listOrAll(filter.Advertisers)},
		{Label: "Tipo", Value: listOrAll(filter.Types)},
	}
}

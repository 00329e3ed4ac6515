package reporting

import (
	"context"
	"time"

	"github.com/vfg2006/crowley-insights-api/internal/dataset"
	"github.com/vfg2006/crowley-insights-api/internal/domain"
	"github.com/vfg2006/crowley-insights-api/internal/usecases/aggregating"
	"github.com/vfg2006/crowley-insights-api/internal/usecases/classifying"
	"github.com/vfg2006/crowley-insights-api/pkg/log"
	"github.com/vfg2006/crowley-insights-api/pkg/utils"
)

// CampaignFlow classifica os anunciantes do veículo alvo contra a concorrência na mesma praça e período
func (s *Service) CampaignFlow(ctx context.Context, filter domain.FilterContext, showShare bool) (report *domain.CampaignFlowReport, err error) {
	started := time.Now()
	defer func() {
		s.observe(ctx, ReportCampaignFlow, started, report != nil && report.NoData, err)
	}()

	table, err := s.table()
	if err != nil {
		return nil, err
	}

	if filter.IsConsolidated() {
		return nil, domain.NewConfigError("vehicle", "escolha um veículo alvo")
	}
	if err := filter.Validate(s.bounds(table)); err != nil {
		return nil, err
	}

	scope := table.
		Where(
			dataset.InMarket(filter.Market),
			dataset.InTypes(filter.Types),
			dataset.InAdvertisers(filter.Advertisers),
		).
		FilterByWindow(filter.Current)

	target := scope.Where(dataset.OnVehicle(filter.Vehicle))

	var comparison *dataset.Table
	if len(filter.Competitors) > 0 {
		comparison = scope.Where(dataset.InVehicles(filter.Competitors))
	} else {
		comparison = scope.Where(dataset.ExceptVehicle(filter.Vehicle))
	}

	report = &domain.CampaignFlowReport{
		ShowShare: showShare,
		Filters:   campaignFlowFilters(filter),
	}

	segments := classifying.Classify(target, comparison)
	if segments.NoData {
		report.ReportStatus = noData("Nenhum dado encontrado com os filtros selecionados.")
		return report, nil
	}

	report.Exclusive = segments.Exclusive
	report.Shared = segments.Shared
	report.Absent = segments.Absent

	byVehicle := aggregating.Options{Dimension: dataset.FieldVehicle}
	withTotal := aggregating.Options{Dimension: dataset.FieldVehicle, TotalColumn: true}
	withShare := aggregating.Options{Dimension: dataset.FieldVehicle, TotalColumn: true, Share: true}

	sharedPopulation := dataset.Concat(target, comparison)

	report.ExclusiveTable = aggregating.Summarize(target, segments.Exclusive, byVehicle)
	report.SharedVolume = aggregating.Summarize(sharedPopulation, segments.Shared, withTotal)
	report.SharedShare = aggregating.Summarize(sharedPopulation, segments.Shared, withShare)
	report.AbsentVolume = aggregating.Summarize(comparison, segments.Absent, withTotal)
	report.AbsentShare = aggregating.Summarize(comparison, segments.Absent, withShare)
	report.Detail = buildDetail(sharedPopulation, false)

	log.ForContext(ctx).WithFields(log.Fields{
		"report":    ReportCampaignFlow,
		"market":    filter.Market,
		"vehicle":   filter.Vehicle,
		"exclusive": len(segments.Exclusive),
		"shared":    len(segments.Shared),
		"absent":    len(segments.Absent),
	}).Info("Campaign flow calculado")

	return report, nil
}

func campaignFlowFilters(filter domain.FilterContext) []domain.FilterEntry {
	return []domain.FilterEntry{
		{Label: "Início", Value: utils.FormatDayFirst(filter.Current.Start)},
		{Label: "Fim", Value: utils.FormatDayFirst(filter.Current.End)},
		{Label: "Praça", Value: filter.Market},
		{Label: "Veículo", Value: filter.Vehicle},
		{Label: "Concorrentes", Value: listOrAll(filter.Competitors)},
		{Label: "Tipo de Veiculação", Value: listOrAll(filter.Types)},
	}
}

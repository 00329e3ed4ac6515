package reporting

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/vfg2006/crowley-insights-api/internal/dataset"
	"github.com/vfg2006/crowley-insights-api/internal/domain"
	"github.com/vfg2006/crowley-insights-api/internal/usecases/paginating"
	"github.com/vfg2006/crowley-insights-api/pkg/log"
	"github.com/vfg2006/crowley-insights-api/pkg/utils"
)

func validatePresence(filter domain.PresenceFilter) error {
	if filter.Year <= 0 {
		return domain.NewConfigError("year", "ano é obrigatório")
	}
	if filter.Month < 1 || filter.Month > 12 {
		return domain.NewConfigError("month", "mês inválido: %d", filter.Month)
	}
	if filter.Market == "" {
		return domain.NewConfigError("market", "praça é obrigatória")
	}
	if filter.Vehicle == "" || filter.Vehicle == domain.ConsolidatedVehicle {
		return domain.NewConfigError("vehicle", "escolha um veículo")
	}

	last := utils.DaysIn(filter.Year, time.Month(filter.Month))
	for _, d := range filter.Days {
		if d < 1 || d > last {
			return domain.NewConfigError("days", "dia %d fora do mês", d)
		}
	}
	return nil
}

// PresenceMap monta o mapa anunciante x dia de um veículo em um mês, paginado,
// com a linha TOTAL DIÁRIO do mapa inteiro ao fim de cada página
func (s *Service) PresenceMap(ctx context.Context, filter domain.PresenceFilter, page int) (report *domain.PresenceMapReport, err error) {
	started := time.Now()
	defer func() {
		s.observe(ctx, ReportPresenceMap, started, report != nil && report.NoData, err)
	}()

	table, err := s.table()
	if err != nil {
		return nil, err
	}
	if err := validatePresence(filter); err != nil {
		return nil, err
	}

	rows := table.Where(
		dataset.InYearMonth(filter.Year, filter.Month),
		dataset.InMarket(filter.Market),
		dataset.OnVehicle(filter.Vehicle),
		dataset.InAdvertisers(filter.Advertisers),
		dataset.OnDays(filter.Days),
		dataset.InTypes(filter.Types),
	)

	days := presenceDays(filter)
	report = &domain.PresenceMapReport{
		Days:     make([]string, 0, len(days)),
		HideType: len(filter.Types) == 1,
		Rows:     []domain.PresenceMapRow{},
		Filters:  presenceFilters(filter),
	}
	for _, d := range days {
		report.Days = append(report.Days, fmt.Sprintf("%02d", d))
	}

	if rows.IsEmpty() {
		report.ReportStatus = noData("Nenhuma inserção encontrada com os filtros selecionados.")
		return report, nil
	}

	all := presenceRows(rows, days)
	if len(all) == 0 {
		report.ReportStatus = noData("Nenhum dado para exibir.")
		return report, nil
	}

	daily := domain.PresenceMapRow{
		Advertiser: domain.DailyTotalLabel,
		Days:       make([]int, len(days)),
		IsTotal:    true,
	}
	for _, row := range all {
		for i, v := range row.Days {
			daily.Days[i] += v
		}
		daily.Total += row.Total
	}

	paged, err := paginating.Paginate(all, s.cfg.Limits.PresencePageSize, page, &daily)
	if err != nil {
		return nil, err
	}

	report.All = all
	report.DailyTotal = daily
	report.Rows = paged.Rows
	report.Page = paged.Index
	report.TotalPages = paged.TotalPages
	report.TotalRows = paged.TotalRows
	report.Detail = buildDetail(rows, false)

	log.ForContext(ctx).WithFields(log.Fields{
		"report":  ReportPresenceMap,
		"market":  filter.Market,
		"vehicle": filter.Vehicle,
		"rows":    paged.TotalRows,
		"page":    paged.Index,
	}).Info("Mapa de presença calculado")

	return report, nil
}

// presenceDays são os dias escolhidos em ordem, ou todos os dias do mês
func presenceDays(filter domain.PresenceFilter) []int {
	if len(filter.Days) > 0 {
		days := append([]int(nil), filter.Days...)
		sort.Ints(days)
		return compactInts(days)
	}

	last := utils.DaysIn(filter.Year, time.Month(filter.Month))
	days := make([]int, last)
	for i := range days {
		days[i] = i + 1
	}
	return days
}

func compactInts(sorted []int) []int {
	out := sorted[:0]
	for i, v := range sorted {
		if i == 0 || v != sorted[i-1] {
			out = append(out, v)
		}
	}
	return out
}

// presenceRows agrupa por (anunciante, tipo) com preenchimento denso de dias,
// remove linhas zeradas e ordena pelo total decrescente
func presenceRows(table *dataset.Table, days []int) []domain.PresenceMapRow {
	dayIndex := make(map[int]int, len(days))
	for i, d := range days {
		dayIndex[d] = i
	}

	type groupKey struct{ advertiser, kind string }
	groups := make(map[groupKey]*domain.PresenceMapRow)

	for _, e := range table.Events() {
		idx, ok := dayIndex[e.Day]
		if !ok {
			continue
		}

		key := groupKey{e.Advertiser, e.Type}
		row, ok := groups[key]
		if !ok {
			row = &domain.PresenceMapRow{Advertiser: e.Advertiser, Type: e.Type, Days: make([]int, len(days))}
			groups[key] = row
		}

		value := table.Value(e, dataset.MetricVolume)
		row.Days[idx] += value
		row.Total += value
	}

	rows := make([]domain.PresenceMapRow, 0, len(groups))
	for _, row := range groups {
		if row.Total > 0 {
			rows = append(rows, *row)
		}
	}

	sort.Slice(rows, func(i, j int) bool {
		if rows[i].Total != rows[j].Total {
			return rows[i].Total > rows[j].Total
		}
		if rows[i].Advertiser != rows[j].Advertiser {
			return rows[i].Advertiser < rows[j].Advertiser
		}
		return rows[i].Type < rows[j].Type
	})

	return rows
}

func presenceFilters(filter domain.PresenceFilter) []domain.FilterEntry {
	days := "Todos"
	if len(filter.Days) > 0 {
		parts := make([]string, 0, len(filter.Days))
		for _, d := range presenceDays(filter) {
			parts = append(parts, strconv.Itoa(d))
		}
		days = strings.Join(parts, ", ")
	}

	return []domain.FilterEntry{
		{Label: "Ano", Value: strconv.Itoa(filter.Year)},
		{Label: "Mês", Value: monthName(filter.Month)},
		{Label: "Dias", Value: days},
		{Label: "Praça", Value: filter.Market},
		{Label: "Veículo", Value: filter.Vehicle},
		{Label: "Anunciantes", Value: listOrAll(filter.Advertisers)},
		{Label: "Tipos", Value: listOrAll(filter.Types)},
	}
}

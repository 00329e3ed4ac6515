package reporting

import (
	"context"
	"sort"
	"time"

	"github.com/vfg2006/crowley-insights-api/internal/dataset"
	"github.com/vfg2006/crowley-insights-api/internal/domain"
	"github.com/vfg2006/crowley-insights-api/internal/usecases/paginating"
	"github.com/vfg2006/crowley-insights-api/internal/usecases/pivoting"
	"github.com/vfg2006/crowley-insights-api/pkg/log"
)

// Custom monta o pivot dinâmico. A tabela completa fica em Pivot para exportação;
// Display recebe o recorte de prévia quando o resultado é grande demais para a tela.
func (s *Service) Custom(ctx context.Context, spec domain.PivotSpec, filter domain.CustomFilter) (report *domain.CustomReport, err error) {
	started := time.Now()
	defer func() {
		s.observe(ctx, ReportCustom, started, report != nil && report.NoData, err)
	}()

	if err := pivoting.Validate(spec); err != nil {
		return nil, err
	}

	table, err := s.table()
	if err != nil {
		return nil, err
	}
	if err := filter.Current.Validate("start_date", s.bounds(table)); err != nil {
		return nil, err
	}

	predicates, err := fieldPredicates(filter.Fields)
	if err != nil {
		return nil, err
	}

	scope := table.FilterByWindow(filter.Current).Where(predicates...)

	report = &domain.CustomReport{Filters: customFilters(spec, filter)}
	if scope.IsEmpty() {
		report.ReportStatus = noData("Nenhum dado encontrado para o período/filtros.")
		return report, nil
	}

	pivot, err := pivoting.Build(scope, spec, s.cfg.Limits.MaxPivotCells)
	if err != nil {
		return nil, err
	}

	preview := paginating.DecidePreview(len(pivot.Rows), len(pivot.Columns), s.cfg.Limits)

	report.Pivot = pivot
	report.Display = pivot
	report.TotalRows = len(pivot.Rows)
	report.TotalColumns = len(pivot.Columns)
	if preview.Enabled {
		report.IsPreview = true
		report.PreviewReasons = preview.Reasons
		report.Display = pivot.Slice(preview.Rows, preview.Columns)
	}

	log.ForContext(ctx).WithFields(log.Fields{
		"report":     ReportCustom,
		"rows":       report.TotalRows,
		"columns":    report.TotalColumns,
		"cells":      pivot.Size(),
		"is_preview": report.IsPreview,
	}).Info("Relatório personalizado calculado")

	return report, nil
}

// fieldPredicates converte os filtros categóricos, em ordem de campo para resultado estável
func fieldPredicates(fields map[string][]string) ([]dataset.Predicate, error) {
	keys := make([]string, 0, len(fields))
	for k := range fields {
		if !dataset.IsDimension(k) {
			return nil, domain.NewConfigError("filters", "campo desconhecido %q", k)
		}
		keys = append(keys, k)
	}
	sort.Strings(keys)

	predicates := make([]dataset.Predicate, 0, len(keys))
	for _, k := range keys {
		predicates = append(predicates, dataset.InField(k, fields[k]))
	}
	return predicates, nil
}

func customFilters(spec domain.PivotSpec, filter domain.CustomFilter) []domain.FilterEntry {
	return []domain.FilterEntry{
		{Label: "Período", Value: formatWindow(filter.Current)},
		{Label: "Linhas", Value: joinLabels(spec.Rows)},
		{Label: "Colunas", Value: joinLabels(spec.Cols)},
		{Label: "Métricas", Value: joinLabels(spec.Metrics)},
		{Label: "Filtros Aplicados", Value: describeFields(filter.Fields)},
	}
}

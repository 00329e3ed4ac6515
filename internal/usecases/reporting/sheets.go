package reporting

import (
	"fmt"

	"github.com/vfg2006/crowley-insights-api/internal/domain"
	"github.com/vfg2006/crowley-insights-api/internal/usecases/paginating"
	"github.com/vfg2006/crowley-insights-api/internal/usecases/pivoting"
	"github.com/vfg2006/crowley-insights-api/pkg/utils"
)

var detailHeader = []string{
	"Data", "Anunciante", "Anúncio", "Duração", "Praça", "Veículo", "Tipo de Veiculação", "DayPart", "Inserções",
}

var detailKinds = []domain.CellKind{
	domain.KindText, domain.KindText, domain.KindText, domain.KindCount, domain.KindText,
	domain.KindText, domain.KindText, domain.KindText, domain.KindCount,
}

// AggregatedSheet converte uma tabela anunciante x veículo. No modo share cada veículo
// ocupa duas colunas (Share % e Inserções)
func AggregatedSheet(name string, t *domain.AggregatedTable) domain.Sheet {
	sheet := domain.Sheet{Name: name, IndexColumns: 1}
	if t == nil {
		return sheet
	}

	sheet.Header = []string{"Anunciante"}
	sheet.Kinds = []domain.CellKind{domain.KindText}
	for _, col := range t.Columns {
		if t.ShareMode {
			sheet.Header = append(sheet.Header, col+" | Share %", col+" | Inserções")
			sheet.Kinds = append(sheet.Kinds, domain.KindPercent, domain.KindCount)
			continue
		}
		sheet.Header = append(sheet.Header, col)
		sheet.Kinds = append(sheet.Kinds, domain.KindCount)
	}

	withTotal := t.HasTotalColumn || len(t.Columns) == 0
	if withTotal {
		sheet.Header = append(sheet.Header, domain.TotalColumnLabel)
		sheet.Kinds = append(sheet.Kinds, domain.KindCount)
	}

	for i, row := range t.Rows {
		cells := []any{row.Advertiser}
		for _, cell := range row.Cells {
			if t.ShareMode {
				var share any
				if cell.Share != nil {
					share = *cell.Share
				}
				cells = append(cells, share, cell.Volume)
				continue
			}
			cells = append(cells, cell.Volume)
		}
		if withTotal {
			cells = append(cells, row.Total)
		}

		if row.IsGrandTotal {
			sheet.TotalRows = append(sheet.TotalRows, i)
		}
		sheet.Cells = append(sheet.Cells, cells)
	}

	return sheet
}

// RankingSheet converte o comparativo entre períodos. A posição anterior aparece como "-"
// quando o anunciante não teve volume na referência
func RankingSheet(name string, rows []domain.RankedComparison) domain.Sheet {
	sheet := domain.Sheet{
		Name:         name,
		Header:       []string{"Ranking", "Posição Anterior", "Anunciante", "Inserções (Atual)", "Share %", "Var %", "Inserções (Anterior)"},
		Kinds:        []domain.CellKind{domain.KindRank, domain.KindRank, domain.KindText, domain.KindCount, domain.KindPercent, domain.KindVariation, domain.KindCount},
		IndexColumns: 3,
	}

	for i, r := range rows {
		var position, previous, share any
		if r.Position != nil {
			position = *r.Position
		}
		if r.RankReference != nil {
			previous = *r.RankReference
			if !r.HasReference() {
				previous = "-"
			}
		}
		if r.Share != nil {
			share = *r.Share
		}

		if r.IsTotal {
			sheet.TotalRows = append(sheet.TotalRows, i)
		}
		sheet.Cells = append(sheet.Cells, []any{position, previous, r.Advertiser, r.Current, share, r.Variation, r.Reference})
	}

	return sheet
}

// DetailSheet converte o detalhamento. Para exibição, withTotal acrescenta a linha TOTAL GERAL
func DetailSheet(name string, detail *domain.DetailTable, withTotal bool) domain.Sheet {
	sheet := domain.Sheet{Name: name, Header: detailHeader, Kinds: detailKinds, IndexColumns: 2}
	if detail == nil {
		return sheet
	}

	for _, r := range detail.Rows {
		sheet.Cells = append(sheet.Cells, []any{
			r.Date, r.Advertiser, r.Creative, r.Duration, r.Market, r.Vehicle, r.Type, r.DayPart, r.Volume,
		})
	}

	if withTotal && len(detail.Rows) > 0 {
		sheet.TotalRows = append(sheet.TotalRows, len(sheet.Cells))
		sheet.Cells = append(sheet.Cells, []any{
			"", domain.GrandTotalLabel, "", nil, "", "", "", "", detail.TotalVolume,
		})
	}

	return sheet
}

// PresenceSheet converte linhas do mapa de presença
func PresenceSheet(name string, days []string, rows []domain.PresenceMapRow, hideType bool) domain.Sheet {
	sheet := domain.Sheet{Name: name, Header: []string{"Anunciante"}, Kinds: []domain.CellKind{domain.KindText}, IndexColumns: 1}
	if !hideType {
		sheet.Header = append(sheet.Header, "Tipo de Veiculação")
		sheet.Kinds = append(sheet.Kinds, domain.KindText)
		sheet.IndexColumns = 2
	}
	for _, d := range days {
		sheet.Header = append(sheet.Header, d)
		sheet.Kinds = append(sheet.Kinds, domain.KindCount)
	}
	sheet.Header = append(sheet.Header, domain.TotalColumnLabel)
	sheet.Kinds = append(sheet.Kinds, domain.KindCount)

	for i, row := range rows {
		cells := []any{row.Advertiser}
		if !hideType {
			cells = append(cells, row.Type)
		}
		for _, v := range row.Days {
			cells = append(cells, v)
		}
		cells = append(cells, row.Total)

		if row.IsTotal {
			sheet.TotalRows = append(sheet.TotalRows, i)
		}
		sheet.Cells = append(sheet.Cells, cells)
	}

	return sheet
}

// PivotSheet converte o pivot em texto uniforme nos rótulos, mantendo os valores numéricos
func PivotSheet(name string, p *domain.PivotTable) domain.Sheet {
	sheet := domain.Sheet{Name: name}
	if p == nil {
		return sheet
	}

	sheet.IndexColumns = len(p.RowFields)
	for _, f := range p.RowFields {
		sheet.Header = append(sheet.Header, FieldLabel(f))
		sheet.Kinds = append(sheet.Kinds, domain.KindText)
	}
	for _, col := range p.Columns {
		labeled := col
		labeled.Metric = FieldLabel(col.Metric)
		sheet.Header = append(sheet.Header, pivoting.Header(labeled))
		sheet.Kinds = append(sheet.Kinds, domain.KindCount)
	}

	for i, row := range p.Rows {
		cells := make([]any, 0, len(row.Key)+len(row.Values))
		for _, k := range row.Key {
			cells = append(cells, k)
		}
		for _, v := range row.Values {
			cells = append(cells, v)
		}
		if row.IsMargin {
			sheet.TotalRows = append(sheet.TotalRows, i)
		}
		sheet.Cells = append(sheet.Cells, cells)
	}

	return sheet
}

// Render formata as células para exibição conforme o tipo de cada coluna
func Render(sheet domain.Sheet) domain.Grid {
	grid := domain.Grid{Name: sheet.Name, Header: sheet.Header, Rows: make([][]string, 0, len(sheet.Cells))}

	for _, cells := range sheet.Cells {
		row := make([]string, len(cells))
		for i, v := range cells {
			kind := domain.KindText
			if i < len(sheet.Kinds) {
				kind = sheet.Kinds[i]
			}
			row[i] = formatCell(kind, v)
		}
		grid.Rows = append(grid.Rows, row)
	}

	return grid
}

func formatCell(kind domain.CellKind, v any) string {
	switch kind {
	case domain.KindCount, domain.KindRank:
		return utils.FormatCount(v)
	case domain.KindPercent:
		return utils.FormatPercent(v)
	case domain.KindVariation:
		return utils.FormatVariation(v)
	default:
		if v == nil {
			return ""
		}
		return fmt.Sprint(v)
	}
}

// CampaignFlowSheets são as tabelas de exibição, respeitando o modo share escolhido
func CampaignFlowSheets(r *domain.CampaignFlowReport) []domain.Sheet {
	if r == nil || r.NoData {
		return nil
	}

	shared, absent := r.SharedVolume, r.AbsentVolume
	if r.ShowShare {
		shared, absent = r.SharedShare, r.AbsentShare
	}

	return []domain.Sheet{
		AggregatedSheet(fmt.Sprintf("Exclusivos (%d)", len(r.Exclusive)), r.ExclusiveTable),
		AggregatedSheet(fmt.Sprintf("Compartilhados (%d)", len(r.Shared)), shared),
		AggregatedSheet(fmt.Sprintf("Ausentes (%d)", len(r.Absent)), absent),
		DetailSheet("Detalhamento", r.Detail, true),
	}
}

// CampaignFlowBundle exporta as duas versões (volume e share) das tabelas
func CampaignFlowBundle(r *domain.CampaignFlowReport) domain.ExportBundle {
	return domain.ExportBundle{
		FileName: "Crowley_Campaign_Flow",
		Filters:  r.Filters,
		Sheets: []domain.Sheet{
			AggregatedSheet("Exclusivos", r.ExclusiveTable),
			AggregatedSheet("Comp. (Volume)", r.SharedVolume),
			AggregatedSheet("Comp. (Share)", r.SharedShare),
			AggregatedSheet("Ausentes (Volume)", r.AbsentVolume),
			AggregatedSheet("Ausentes (Share)", r.AbsentShare),
			DetailSheet("Detalhamento", r.Detail, false),
		},
	}
}

func OpportunityRadarSheets(r *domain.OpportunityRadarReport) []domain.Sheet {
	if r == nil || r.NoData {
		return nil
	}
	return []domain.Sheet{
		AggregatedSheet("Visão Geral por Emissora", r.Overview),
		DetailSheet("Detalhamento", r.Detail, true),
	}
}

func OpportunityRadarBundle(r *domain.OpportunityRadarReport) domain.ExportBundle {
	return domain.ExportBundle{
		FileName: "Crowley_Opportunity_Radar",
		Filters:  r.Filters,
		Sheets: []domain.Sheet{
			AggregatedSheet("Visão Geral", r.Overview),
			DetailSheet("Detalhamento", r.Detail, false),
		},
	}
}

func PerformanceIndexSheets(r *domain.PerformanceIndexReport) []domain.Sheet {
	if r == nil || r.NoData {
		return nil
	}
	return []domain.Sheet{
		RankingSheet("Ranking", r.Ranking),
		DetailSheet("Detalhamento", r.Detail, true),
	}
}

func PerformanceIndexBundle(r *domain.PerformanceIndexReport) domain.ExportBundle {
	return domain.ExportBundle{
		FileName: "Crowley_Performance_Index",
		Filters:  r.Filters,
		Sheets: []domain.Sheet{
			RankingSheet("Ranking", r.Ranking),
			DetailSheet("Detalhamento", r.Detail, false),
		},
	}
}

// PresenceMapSheets exibe apenas a página atual
func PresenceMapSheets(r *domain.PresenceMapReport) []domain.Sheet {
	if r == nil || r.NoData {
		return nil
	}
	return []domain.Sheet{
		PresenceSheet("Mapa", r.Days, r.Rows, r.HideType),
		DetailSheet("Detalhamento", r.Detail, true),
	}
}

// PresenceMapBundle exporta o mapa inteiro com uma única linha TOTAL DIÁRIO
func PresenceMapBundle(r *domain.PresenceMapReport) domain.ExportBundle {
	rows := append([]domain.PresenceMapRow(nil), r.All...)
	if len(rows) > 0 {
		rows = append(rows, r.DailyTotal)
	}

	return domain.ExportBundle{
		FileName: "Crowley_Presence_Map",
		Filters:  r.Filters,
		Sheets: []domain.Sheet{
			PresenceSheet("Presence Map", r.Days, rows, r.HideType),
			DetailSheet("Detalhamento", r.Detail, false),
		},
	}
}

func CustomSheets(r *domain.CustomReport) []domain.Sheet {
	if r == nil || r.NoData {
		return nil
	}
	return []domain.Sheet{PivotSheet("Relatório", r.Display)}
}

// CustomBundle exporta o pivot completo, nunca a prévia. Recusa tabelas acima do limite
// de colunas da planilha
func CustomBundle(r *domain.CustomReport, limits paginating.Limits) (domain.ExportBundle, error) {
	sheet := PivotSheet("Relatório Personalizado", r.Pivot)
	if err := paginating.GuardExportColumns(sheet.Width(), limits.ExportMaxColumns); err != nil {
		return domain.ExportBundle{}, err
	}

	return domain.ExportBundle{
		FileName: "Crowley_Relatorio_Personalizado",
		Filters:  r.Filters,
		Sheets:   []domain.Sheet{sheet},
	}, nil
}

// Grids renderiza uma lista de tabelas
func Grids(sheets []domain.Sheet) []domain.Grid {
	grids := make([]domain.Grid, 0, len(sheets))
	for _, s := range sheets {
		grids = append(grids, Render(s))
	}
	return grids
}

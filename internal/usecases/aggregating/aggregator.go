// Package aggregating monta as tabelas anunciante x dimensão com linha TOTAL GERAL
package aggregating

import (
	"sort"

	"github.com/vfg2006/crowley-insights-api/internal/dataset"
	"github.com/vfg2006/crowley-insights-api/internal/domain"
)

// Options controla a montagem da tabela
type Options struct {
	Metric      string // dataset.MetricVolume quando vazio
	Dimension   string // Dimensão secundária (colunas). Vazio gera apenas o total por anunciante
	Share       bool   // Calcula o share de cada célula sobre o total da linha
	TotalColumn bool   // Exibe a coluna TOTAL
}

type accumulator struct {
	advertiser string
	cells      map[string]int
	total      int
}

// Summarize soma a métrica por anunciante e dimensão secundária, restrita aos anunciantes
// informados. Linhas ordenadas pelo total decrescente, empate pelo nome do anunciante.
// Subconjunto vazio resulta em tabela vazia.
func Summarize(table *dataset.Table, advertisers []string, opts Options) *domain.AggregatedTable {
	result := &domain.AggregatedTable{
		Dimension:      opts.Dimension,
		Columns:        []string{},
		ShareMode:      opts.Share,
		HasTotalColumn: opts.TotalColumn,
	}

	if len(advertisers) == 0 || table.IsEmpty() {
		return result
	}

	metric := opts.Metric
	if metric == "" {
		metric = dataset.MetricVolume
	}

	subset := table.Where(dataset.InAdvertisers(advertisers))

	byAdvertiser := make(map[string]*accumulator)
	columnSet := make(map[string]struct{})
	for _, e := range subset.Events() {
		acc, ok := byAdvertiser[e.Advertiser]
		if !ok {
			acc = &accumulator{advertiser: e.Advertiser, cells: make(map[string]int)}
			byAdvertiser[e.Advertiser] = acc
		}

		value := subset.Value(e, metric)
		acc.total += value

		if opts.Dimension != "" {
			col := dataset.Field(e, opts.Dimension)
			acc.cells[col] += value
			columnSet[col] = struct{}{}
		}
	}

	if len(byAdvertiser) == 0 {
		return result
	}

	for col := range columnSet {
		result.Columns = append(result.Columns, col)
	}
	sort.Strings(result.Columns)

	ordered := make([]*accumulator, 0, len(byAdvertiser))
	for _, acc := range byAdvertiser {
		ordered = append(ordered, acc)
	}
	sort.Slice(ordered, func(i, j int) bool {
		if ordered[i].total != ordered[j].total {
			return ordered[i].total > ordered[j].total
		}
		return ordered[i].advertiser < ordered[j].advertiser
	})

	grand := domain.AggregatedRow{
		Advertiser:   domain.GrandTotalLabel,
		Cells:        make([]domain.AggregatedCell, len(result.Columns)),
		IsGrandTotal: true,
	}

	for _, acc := range ordered {
		row := domain.AggregatedRow{
			Advertiser: acc.advertiser,
			Cells:      make([]domain.AggregatedCell, len(result.Columns)),
			Total:      acc.total,
		}

		for i, col := range result.Columns {
			value := acc.cells[col]
			row.Cells[i].Volume = value
			if opts.Share {
				share := shareOf(value, acc.total)
				row.Cells[i].Share = &share
			}

			grand.Cells[i].Volume += value
		}

		grand.Total += acc.total
		result.Rows = append(result.Rows, row)
	}

	result.Rows = append(result.Rows, grand)
	return result
}

// shareOf devolve a fração do total, 0 quando o total é zero
func shareOf(value, total int) float64 {
	if total == 0 {
		return 0
	}
	return float64(value) / float64(total)
}

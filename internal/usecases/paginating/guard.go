package paginating

import (
	"github.com/vfg2006/crowley-insights-api/internal/domain"
)

// Motivos do modo prévia
const (
	ReasonCells   = domain.DimensionCells
	ReasonColumns = domain.DimensionColumns
)

// EstimateCells estima o tamanho de um pivot denso antes de materializá-lo
func EstimateCells(rowCardinality, columnCardinality, metricCount int) int {
	return max(rowCardinality, 1) * max(columnCardinality, 1) * max(metricCount, 1)
}

// GuardCells recusa o cálculo quando a estimativa passa do teto. Teto <= 0 desativa a checagem
func GuardCells(estimate, limit int) error {
	if limit > 0 && estimate > limit {
		return &domain.CapacityError{Dimension: domain.DimensionCells, Estimate: estimate, Limit: limit}
	}
	return nil
}

// GuardExportColumns recusa exportações com mais colunas do que a planilha suporta
func GuardExportColumns(columns, limit int) error {
	if limit > 0 && columns > limit {
		return &domain.CapacityError{Dimension: domain.DimensionColumns, Estimate: columns, Limit: limit}
	}
	return nil
}

// Preview é a decisão de exibir apenas um recorte do resultado
type Preview struct {
	Enabled bool     `json:"enabled"`
	Rows    int      `json:"rows"`    // Linhas a exibir
	Columns int      `json:"columns"` // Colunas a exibir
	Reasons []string `json:"reasons,omitempty"`
}

// DecidePreview decide entre exibir o resultado inteiro ou o recorte inicial.
// Afeta somente a exibição: a exportação sempre recebe a tabela completa.
func DecidePreview(rows, columns int, limits Limits) Preview {
	p := Preview{Rows: rows, Columns: columns}

	if limits.PreviewMaxCells > 0 && rows*columns > limits.PreviewMaxCells {
		p.Reasons = append(p.Reasons, ReasonCells)
	}
	if limits.PreviewMaxColumns > 0 && columns > limits.PreviewMaxColumns {
		p.Reasons = append(p.Reasons, ReasonColumns)
	}

	if len(p.Reasons) == 0 {
		return p
	}

	p.Enabled = true
	if limits.PreviewRows > 0 {
		p.Rows = min(rows, limits.PreviewRows)
	}
	if limits.PreviewColumns > 0 {
		p.Columns = min(columns, limits.PreviewColumns)
	}
	return p
}

// Package paginating limita o tamanho dos resultados: paginação, teto de células e modo prévia
package paginating

import (
	"github.com/vfg2006/crowley-insights-api/internal/domain"
)

// Limits são os tetos de cálculo, exibição e exportação
type Limits struct {
	MaxPivotCells     int `mapstructure:"limit_max_pivot_cells"`
	PreviewMaxCells   int `mapstructure:"limit_preview_max_cells"`
	PreviewMaxColumns int `mapstructure:"limit_preview_max_columns"`
	PreviewRows       int `mapstructure:"limit_preview_rows"`
	PreviewColumns    int `mapstructure:"limit_preview_columns"`
	ExportMaxColumns  int `mapstructure:"limit_export_max_columns"`
	PresencePageSize  int `mapstructure:"limit_presence_page_size"`
}

// DefaultLimits são os valores de referência
func DefaultLimits() Limits {
	return Limits{
		MaxPivotCells:     6_000_000,
		PreviewMaxCells:   100_000,
		PreviewMaxColumns: 50,
		PreviewRows:       500,
		PreviewColumns:    50,
		ExportMaxColumns:  16_384,
		PresencePageSize:  20,
	}
}

// Page é uma fatia estável de um resultado
type Page[T any] struct {
	Rows       []T `json:"rows"`
	Index      int `json:"page"`
	TotalPages int `json:"total_pages"`
	TotalRows  int `json:"total_rows"`
}

// Paginate devolve a página pedida. Índice fora do intervalo volta para a página 0.
// Quando total é informado, a linha de total é anexada ao fim de toda página.
func Paginate[T any](rows []T, pageSize, pageIndex int, total *T) (Page[T], error) {
	if pageSize <= 0 {
		return Page[T]{}, domain.NewConfigError("page_size", "tamanho de página deve ser positivo, recebido %d", pageSize)
	}

	totalRows := len(rows)
	totalPages := (totalRows + pageSize - 1) / pageSize

	page := Page[T]{TotalPages: totalPages, TotalRows: totalRows, Rows: []T{}}
	if totalRows == 0 {
		return page, nil
	}

	if pageIndex < 0 || pageIndex >= totalPages {
		pageIndex = 0
	}
	page.Index = pageIndex

	start := pageIndex * pageSize
	end := min(start+pageSize, totalRows)

	page.Rows = make([]T, 0, end-start+1)
	page.Rows = append(page.Rows, rows[start:end]...)
	if total != nil {
		page.Rows = append(page.Rows, *total)
	}

	return page, nil
}

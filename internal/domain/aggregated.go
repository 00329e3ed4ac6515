package domain

// Rótulos das linhas e colunas sintéticas
const (
	GrandTotalLabel  = "TOTAL GERAL"
	TotalColumnLabel = "TOTAL"
	DailyTotalLabel  = "TOTAL DIÁRIO"
)

// AggregatedCell é uma célula anunciante x dimensão secundária
type AggregatedCell struct {
	Volume int      `json:"volume"`
	Share  *float64 `json:"share,omitempty"` // Fração do total da linha (0..1); nil na linha TOTAL GERAL
}

type AggregatedRow struct {
	Advertiser   string           `json:"advertiser"`
	Cells        []AggregatedCell `json:"cells"`
	Total        int              `json:"total"`
	IsGrandTotal bool             `json:"is_grand_total"`
}

// AggregatedTable é a matriz anunciante (linhas) x dimensão secundária (colunas)
// sempre encerrada por uma linha TOTAL GERAL
type AggregatedTable struct {
	Dimension      string          `json:"dimension,omitempty"`
	Columns        []string        `json:"columns"`
	Rows           []AggregatedRow `json:"rows"`
	ShareMode      bool            `json:"share_mode"`
	HasTotalColumn bool            `json:"has_total_column"`
}

// IsEmpty indica uma tabela sem linhas, inclusive sem a linha de total
func (t *AggregatedTable) IsEmpty() bool {
	return t == nil || len(t.Rows) == 0
}

// AdvertiserRows retorna as linhas sem a linha TOTAL GERAL
func (t *AggregatedTable) AdvertiserRows() []AggregatedRow {
	if t.IsEmpty() {
		return nil
	}

	rows := make([]AggregatedRow, 0, len(t.Rows))
	for _, row := range t.Rows {
		if !row.IsGrandTotal {
			rows = append(rows, row)
		}
	}
	return rows
}

// GrandTotal retorna a linha TOTAL GERAL, se existir
func (t *AggregatedTable) GrandTotal() *AggregatedRow {
	if t.IsEmpty() {
		return nil
	}

	last := t.Rows[len(t.Rows)-1]
	if !last.IsGrandTotal {
		return nil
	}
	return &last
}

package domain

// PivotSpec é a combinação de campos escolhida pelo usuário para o relatório personalizado
type PivotSpec struct {
	Rows      []string `json:"rows"`
	Cols      []string `json:"cols"`
	Metrics   []string `json:"metrics"`
	RowMargin bool     `json:"row_margin"`
	ColMargin bool     `json:"col_margin"`
}

// PivotColumn identifica uma coluna: a métrica e a tupla de valores das colunas escolhidas
type PivotColumn struct {
	Metric   string   `json:"metric"`
	Key      []string `json:"key"`
	IsMargin bool     `json:"is_margin"`
}

// PivotRow é uma tupla de valores das linhas escolhidas com um valor por coluna
type PivotRow struct {
	Key      []string `json:"key"`
	Values   []int64  `json:"values"`
	IsMargin bool     `json:"is_margin"`
}

// PivotTable é o resultado denso de um pivot dinâmico
type PivotTable struct {
	RowFields    []string      `json:"row_fields"`
	ColumnFields []string      `json:"column_fields"`
	Metrics      []string      `json:"metrics"`
	Columns      []PivotColumn `json:"columns"`
	Rows         []PivotRow    `json:"rows"`
}

// Size retorna a quantidade de células de valor
func (p *PivotTable) Size() int {
	if p == nil {
		return 0
	}
	return len(p.Rows) * len(p.Columns)
}

// HasRowMargin indica se a linha TOTAL está presente
func (p *PivotTable) HasRowMargin() bool {
	return p != nil && len(p.Rows) > 0 && p.Rows[len(p.Rows)-1].IsMargin
}

// HasColumnMargin indica se há colunas TOTAL
func (p *PivotTable) HasColumnMargin() bool {
	if p == nil {
		return false
	}
	for _, col := range p.Columns {
		if col.IsMargin {
			return true
		}
	}
	return false
}

// WithoutRowMargin devolve uma cópia sem a linha TOTAL
func (p *PivotTable) WithoutRowMargin() *PivotTable {
	out := p.clone()
	rows := make([]PivotRow, 0, len(out.Rows))
	for _, row := range out.Rows {
		if !row.IsMargin {
			rows = append(rows, row)
		}
	}
	out.Rows = rows
	return out
}

// WithoutColumnMargin devolve uma cópia sem as colunas TOTAL
func (p *PivotTable) WithoutColumnMargin() *PivotTable {
	out := p.clone()

	keep := make([]int, 0, len(out.Columns))
	columns := make([]PivotColumn, 0, len(out.Columns))
	for i, col := range out.Columns {
		if !col.IsMargin {
			keep = append(keep, i)
			columns = append(columns, col)
		}
	}

	for r, row := range out.Rows {
		values := make([]int64, 0, len(keep))
		for _, i := range keep {
			values = append(values, row.Values[i])
		}
		out.Rows[r].Values = values
	}
	out.Columns = columns
	return out
}

// Slice devolve uma cópia com no máximo maxRows linhas e maxCols colunas
func (p *PivotTable) Slice(maxRows, maxCols int) *PivotTable {
	out := p.clone()
	if maxRows >= 0 && len(out.Rows) > maxRows {
		out.Rows = out.Rows[:maxRows]
	}
	if maxCols >= 0 && len(out.Columns) > maxCols {
		out.Columns = out.Columns[:maxCols]
		for r := range out.Rows {
			out.Rows[r].Values = out.Rows[r].Values[:maxCols]
		}
	}
	return out
}

func (p *PivotTable) clone() *PivotTable {
	out := &PivotTable{
		RowFields:    append([]string(nil), p.RowFields...),
		ColumnFields: append([]string(nil), p.ColumnFields...),
		Metrics:      append([]string(nil), p.Metrics...),
		Columns:      make([]PivotColumn, len(p.Columns)),
		Rows:         make([]PivotRow, len(p.Rows)),
	}
	for i, col := range p.Columns {
		out.Columns[i] = PivotColumn{Metric: col.Metric, Key: append([]string(nil), col.Key...), IsMargin: col.IsMargin}
	}
	for i, row := range p.Rows {
		out.Rows[i] = PivotRow{
			Key:      append([]string(nil), row.Key...),
			Values:   append([]int64(nil), row.Values...),
			IsMargin: row.IsMargin,
		}
	}
	return out
}

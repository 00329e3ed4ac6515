package domain

// CellKind define como uma coluna deve ser formatada para exibição
type CellKind int

const (
	KindText CellKind = iota
	KindCount
	KindPercent
	KindVariation
	KindRank
)

// Sheet é uma tabela nomeada pronta para exibição ou exportação.
// Cells guarda os valores crus (int, float64, string); a formatação depende de Kinds.
type Sheet struct {
	Name         string     `json:"name"`
	Header       []string   `json:"header"`
	Kinds        []CellKind `json:"-"`
	Cells        [][]any    `json:"cells"`
	IndexColumns int        `json:"-"` // Colunas iniciais de rótulo (anunciante, tipo...)
	TotalRows    []int      `json:"-"` // Índices das linhas sintéticas de total
}

// Width retorna o número de colunas
func (s Sheet) Width() int {
	return len(s.Header)
}

// IsEmpty indica uma planilha sem linhas de dados
func (s Sheet) IsEmpty() bool {
	return len(s.Cells) == 0
}

// Grid é a representação textual de uma Sheet para exibição
type Grid struct {
	Name   string     `json:"name"`
	Header []string   `json:"header"`
	Rows   [][]string `json:"rows"`
}

// ExportBundle é o que o exportador recebe: tabelas nomeadas e os filtros aplicados
type ExportBundle struct {
	FileName string        `json:"file_name"`
	Filters  []FilterEntry `json:"filters"`
	Sheets   []Sheet       `json:"sheets"`
}

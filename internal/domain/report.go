package domain

import "time"

// DetailRow é uma linha do detalhamento (fonte de dados completa)
type DetailRow struct {
	Date       string `json:"data"`
	Advertiser string `json:"anunciante"`
	Creative   string `json:"anuncio"`
	Duration   int    `json:"duracao"`
	Market     string `json:"praca"`
	Vehicle    string `json:"veiculo"`
	Type       string `json:"tipo"`
	DayPart    string `json:"daypart"`
	Volume     int    `json:"insercoes"`
}

// DetailTable é o detalhamento ordenado por anunciante e data
type DetailTable struct {
	Rows        []DetailRow `json:"rows"`
	TotalVolume int         `json:"total_volume"`
}

// ReportStatus diferencia "sem dados" de falhas reais
type ReportStatus struct {
	NoData  bool   `json:"no_data"`
	Message string `json:"message,omitempty"`
}

type CampaignFlowReport struct {
	ReportStatus
	Exclusive      []string         `json:"exclusive"`
	Shared         []string         `json:"shared"`
	Absent         []string         `json:"absent"`
	ExclusiveTable *AggregatedTable `json:"exclusive_table"`
	SharedVolume   *AggregatedTable `json:"shared_volume"`
	SharedShare    *AggregatedTable `json:"shared_share"`
	AbsentVolume   *AggregatedTable `json:"absent_volume"`
	AbsentShare    *AggregatedTable `json:"absent_share"`
	Detail         *DetailTable     `json:"detail"`
	ShowShare      bool             `json:"show_share"` // Exibição com share; a exportação leva as duas versões
	Filters        []FilterEntry    `json:"filters"`
}

type OpportunityRadarReport struct {
	ReportStatus
	NewEntrants []string         `json:"new_entrants"`
	Overview    *AggregatedTable `json:"overview"`
	Detail      *DetailTable     `json:"detail"`
	Filters     []FilterEntry    `json:"filters"`
}

type PerformanceIndexReport struct {
	ReportStatus
	Ranking []RankedComparison `json:"ranking"`
	Detail  *DetailTable       `json:"detail"`
	Filters []FilterEntry      `json:"filters"`
}

// PresenceFilter seleciona o mapa de presença de um veículo em um mês
type PresenceFilter struct {
	Year        int      `json:"year"`
	Month       int      `json:"month"`
	Market      string   `json:"market"`
	Vehicle     string   `json:"vehicle"`
	Advertisers []string `json:"advertisers,omitempty"`
	Days        []int    `json:"days,omitempty"`
	Types       []string `json:"types,omitempty"`
}

type PresenceMapRow struct {
	Advertiser string `json:"advertiser"`
	Type       string `json:"type"`
	Days       []int  `json:"days"`
	Total      int    `json:"total"`
	IsTotal    bool   `json:"is_total"`
}

type PresenceMapReport struct {
	ReportStatus
	Days       []string         `json:"days"` // Rótulos "01".."31"
	HideType   bool             `json:"hide_type"`
	Rows       []PresenceMapRow `json:"rows"` // Página atual, já com a linha TOTAL DIÁRIO
	All        []PresenceMapRow `json:"-"`    // Mapa completo, usado na exportação
	DailyTotal PresenceMapRow   `json:"daily_total"`
	Page       int              `json:"page"`
	TotalPages int              `json:"total_pages"`
	TotalRows  int              `json:"total_rows"`
	Detail     *DetailTable     `json:"detail"`
	Filters    []FilterEntry    `json:"filters"`
}

// CustomFilter são o período e os filtros categóricos do relatório personalizado
type CustomFilter struct {
	Current DateWindow          `json:"current"`
	Fields  map[string][]string `json:"fields,omitempty"`
}

type CustomReport struct {
	ReportStatus
	Pivot          *PivotTable   `json:"-"` // Tabela completa, sempre entregue ao exportador
	Display        *PivotTable   `json:"pivot"`
	IsPreview      bool          `json:"is_preview"`
	PreviewReasons []string      `json:"preview_reasons,omitempty"`
	TotalRows      int           `json:"total_rows"`
	TotalColumns   int           `json:"total_columns"`
	Filters        []FilterEntry `json:"filters"`
}

// FilterSelection são as escolhas já feitas para calcular as opções seguintes
type FilterSelection struct {
	Market  string      `json:"market"`
	Current *DateWindow `json:"current,omitempty"`
	Vehicle string      `json:"vehicle,omitempty"`
	Types   []string    `json:"types,omitempty"`
}

type FilterOptions struct {
	Bounds           DateBounds `json:"bounds"`
	DefaultCurrent   DateWindow `json:"default_current"`
	DefaultReference DateWindow `json:"default_reference"`
	Markets          []string   `json:"markets"`
	Vehicles         []string   `json:"vehicles"`
	Types            []string   `json:"types"`
	Advertisers      []string   `json:"advertisers"`
	LastUpdate       *time.Time `json:"last_update"`
	// Campos e métricas aceitos pelo relatório personalizado
	PivotDimensions []string `json:"pivot_dimensions"`
	PivotMetrics    []string `json:"pivot_metrics"`
}

package domain

// RankedComparison é uma linha do comparativo entre período atual e de referência.
// Position é a ordem de exibição; RankCurrent e RankReference seguem ranking de competição.
type RankedComparison struct {
	Position      *int     `json:"position"`
	RankCurrent   *int     `json:"rank_current"`
	RankReference *int     `json:"rank_reference"`
	Advertiser    string   `json:"advertiser"`
	Current       int      `json:"current"`
	Reference     int      `json:"reference"`
	Share         *float64 `json:"share"`
	Variation     float64  `json:"variation"` // Fração: 1.0 = +100%
	IsTotal       bool     `json:"is_total"`
}

// HasReference indica se o anunciante teve volume no período de referência
func (r RankedComparison) HasReference() bool {
	return r.Reference > 0
}

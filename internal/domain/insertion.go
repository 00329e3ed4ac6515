// Package domain contém as estruturas de dados do domínio da aplicação
package domain

import "time"

// RawInsertion é uma linha da base Crowley como chega da fonte, antes da normalização
type RawInsertion struct {
	Market     string     `json:"praca"`
	Vehicle    string     `json:"emissora"`
	Advertiser string     `json:"anunciante"`
	Creative   string     `json:"anuncio"`
	Duration   int        `json:"duracao"`
	DateText   string     `json:"data"`    // Formato dia-primeiro (ex: 31/01/2024)
	DateTime   *time.Time `json:"data_dt"` // Data nativa, quando a fonte já entrega tipada
	Type       string     `json:"tipo"`
	DayPart    string     `json:"daypart"`
	Volume     *int       `json:"volume_insercoes"` // nil quando a coluna não existe na origem
}

// InsertionEvent é uma inserção publicitária normalizada
type InsertionEvent struct {
	Market     string     `json:"praca"`
	Vehicle    string     `json:"emissora"`
	Advertiser string     `json:"anunciante"`
	Creative   string     `json:"anuncio"`
	Duration   int        `json:"duracao"`
	Date       *time.Time `json:"data"` // nil quando a data original não pôde ser interpretada
	Year       int        `json:"ano"`
	Month      int        `json:"mes"`
	Day        int        `json:"dia"`
	Type       string     `json:"tipo"`
	DayPart    string     `json:"daypart"`
	Volume     int        `json:"volume_insercoes"`
}

// HasDate indica se o evento pode participar de consultas por período
func (e InsertionEvent) HasDate() bool {
	return e.Date != nil
}

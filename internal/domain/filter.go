package domain

import (
	"slices"
	"time"
)

// ConsolidatedVehicle é a opção que representa todas as emissoras da praça
const ConsolidatedVehicle = "Consolidado (Todas as emissoras)"

// DateWindow é um período inclusivo em datas de calendário
type DateWindow struct {
	Start time.Time `json:"start_date"`
	End   time.Time `json:"end_date"`
}

// DateBounds são as datas mínima e máxima permitidas para pesquisa
type DateBounds struct {
	Min time.Time `json:"min_date"`
	Max time.Time `json:"max_date"`
}

// FilterContext reúne as restrições ativas de uma requisição
type FilterContext struct {
	Market      string      `json:"market"`
	Current     DateWindow  `json:"current"`
	Reference   *DateWindow `json:"reference,omitempty"`
	Vehicle     string      `json:"vehicle,omitempty"` // vazio ou ConsolidatedVehicle = todas
	Competitors []string    `json:"competitors,omitempty"`
	Advertisers []string    `json:"advertisers,omitempty"`
	Types       []string    `json:"types,omitempty"`
}

// IsConsolidated indica se nenhuma emissora específica foi escolhida
func (f FilterContext) IsConsolidated() bool {
	return f.Vehicle == "" || f.Vehicle == ConsolidatedVehicle
}

// Validate rejeita filtros incoerentes antes do processamento
func (f FilterContext) Validate(bounds DateBounds) error {
	if f.Market == "" {
		return NewConfigError("market", "praça é obrigatória")
	}

	if err := f.Current.Validate("start_date", bounds); err != nil {
		return err
	}

	if f.Reference != nil {
		if err := f.Reference.Validate("ref_start_date", bounds); err != nil {
			return err
		}
	}

	if !f.IsConsolidated() && slices.Contains(f.Competitors, f.Vehicle) {
		return NewConfigError("competitors", "veículo alvo %q não pode estar na concorrência", f.Vehicle)
	}

	return nil
}

// Validate confere ordem e limites do período
func (w DateWindow) Validate(field string, bounds DateBounds) error {
	if w.Start.IsZero() || w.End.IsZero() {
		return NewConfigError(field, "período incompleto")
	}

	if w.End.Before(w.Start) {
		return NewConfigError(field, "data final %s anterior à inicial %s",
			w.End.Format(time.DateOnly), w.Start.Format(time.DateOnly))
	}

	if !bounds.Min.IsZero() && w.Start.Before(bounds.Min) {
		return NewConfigError(field, "data inicial %s anterior a %s",
			w.Start.Format(time.DateOnly), bounds.Min.Format(time.DateOnly))
	}

	if !bounds.Max.IsZero() && w.End.After(bounds.Max) {
		return NewConfigError(field, "data final %s posterior a %s",
			w.End.Format(time.DateOnly), bounds.Max.Format(time.DateOnly))
	}

	return nil
}

// FilterEntry é um par rótulo/valor descrevendo um filtro aplicado, na ordem de exibição
type FilterEntry struct {
	Label string `json:"label"`
	Value string `json:"value"`
}

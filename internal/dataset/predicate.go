package dataset

import (
	"github.com/vfg2006/crowley-insights-api/internal/domain"
)

// Predicate decide se uma linha permanece na visão filtrada
type Predicate func(e domain.InsertionEvent) bool

func matchAll(e domain.InsertionEvent, predicates []Predicate) bool {
	for _, p := range predicates {
		if p != nil && !p(e) {
			return false
		}
	}
	return true
}

func setOf(values []string) map[string]struct{} {
	set := make(map[string]struct{}, len(values))
	for _, v := range values {
		set[v] = struct{}{}
	}
	return set
}

// InMarket restringe a uma praça. Praça vazia não restringe
func InMarket(market string) Predicate {
	if market == "" {
		return nil
	}
	return func(e domain.InsertionEvent) bool {
		return e.Market == market
	}
}

// OnVehicle restringe a uma emissora. Vazio ou consolidado não restringe
func OnVehicle(vehicle string) Predicate {
	if vehicle == "" || vehicle == domain.ConsolidatedVehicle {
		return nil
	}
	return func(e domain.InsertionEvent) bool {
		return e.Vehicle == vehicle
	}
}

// ExceptVehicle remove uma emissora
func ExceptVehicle(vehicle string) Predicate {
	return func(e domain.InsertionEvent) bool {
		return e.Vehicle != vehicle
	}
}

// InVehicles restringe a um conjunto de emissoras. Lista vazia não restringe
func InVehicles(vehicles []string) Predicate {
	return inField(FieldVehicle, vehicles)
}

// InTypes restringe aos tipos de veiculação. Lista vazia não restringe
func InTypes(types []string) Predicate {
	return inField(FieldType, types)
}

// InAdvertisers restringe aos anunciantes. Lista vazia não restringe
func InAdvertisers(advertisers []string) Predicate {
	return inField(FieldAdvertiser, advertisers)
}

// InAdvertiserSet restringe a um conjunto já calculado. Conjunto vazio exclui tudo
func InAdvertiserSet(set map[string]struct{}) Predicate {
	return func(e domain.InsertionEvent) bool {
		_, ok := set[e.Advertiser]
		return ok
	}
}

// InYearMonth restringe a um mês de calendário
func InYearMonth(year, month int) Predicate {
	return func(e domain.InsertionEvent) bool {
		return e.HasDate() && e.Year == year && e.Month == month
	}
}

// OnDays restringe a dias do mês. Lista vazia não restringe
func OnDays(days []int) Predicate {
	if len(days) == 0 {
		return nil
	}
	set := make(map[int]struct{}, len(days))
	for _, d := range days {
		set[d] = struct{}{}
	}
	return func(e domain.InsertionEvent) bool {
		_, ok := set[e.Day]
		return e.HasDate() && ok
	}
}

// InField restringe uma dimensão qualquer aos valores informados. Lista vazia não restringe
func InField(field string, values []string) Predicate {
	return inField(field, values)
}

func inField(field string, values []string) Predicate {
	if len(values) == 0 {
		return nil
	}
	set := setOf(values)
	return func(e domain.InsertionEvent) bool {
		_, ok := set[Field(e, field)]
		return ok
	}
}

package reporting

import (
	"context"

	"github.com/vfg2006/crowley-insights-api/internal/dataset"
	"github.com/vfg2006/crowley-insights-api/internal/domain"
)

// FilterOptions calcula as opções em cascata: praça -> veículo -> tipo -> anunciante,
// cada lista restrita pelas escolhas anteriores
func (s *Service) FilterOptions(ctx context.Context, selection domain.FilterSelection) (*domain.FilterOptions, error) {
	table, err := s.table()
	if err != nil {
		return nil, err
	}

	bounds := s.bounds(table)
	current, reference := s.defaultWindows(bounds)

	options := &domain.FilterOptions{
		Bounds:           bounds,
		DefaultCurrent:   current,
		DefaultReference: reference,
		Vehicles:         []string{},
		Types:            []string{},
		Advertisers:      []string{},
		LastUpdate:       table.LastDate(),
		PivotDimensions:  dataset.Dimensions(),
		PivotMetrics:     dataset.Metrics(),
	}

	if options.Markets, err = table.DistinctValues(dataset.FieldMarket); err != nil {
		return nil, err
	}

	if selection.Market == "" {
		return options, nil
	}

	window := current
	if selection.Current != nil {
		if err := selection.Current.Validate("start_date", bounds); err != nil {
			return nil, err
		}
		window = *selection.Current
	}

	scope := table.Where(dataset.InMarket(selection.Market)).FilterByWindow(window)

	vehicles, err := scope.DistinctValues(dataset.FieldVehicle)
	if err != nil {
		return nil, err
	}
	options.Vehicles = append([]string{domain.ConsolidatedVehicle}, vehicles...)

	byVehicle := scope.Where(dataset.OnVehicle(selection.Vehicle))
	if options.Types, err = byVehicle.DistinctValues(dataset.FieldType); err != nil {
		return nil, err
	}

	byType := byVehicle.Where(dataset.InTypes(selection.Types))
	if options.Advertisers, err = byType.DistinctValues(dataset.FieldAdvertiser); err != nil {
		return nil, err
	}

	return options, nil
}

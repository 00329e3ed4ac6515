package pivoting

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/crowley-insights-api/internal/dataset"
	"github.com/vfg2006/crowley-insights-api/internal/domain"
)

func event(advertiser, vehicle string, d int, volume, duration int) domain.InsertionEvent {
	date := time.Date(2024, 1, d, 10, 0, 0, 0, time.UTC)
	return domain.InsertionEvent{
		Market:     "SP",
		Advertiser: advertiser,
		Vehicle:    vehicle,
		Date:       &date,
		Year:       2024,
		Month:      1,
		Day:        d,
		Volume:     volume,
		Duration:   duration,
	}
}

func sampleTable() *dataset.Table {
	return dataset.New([]domain.InsertionEvent{
		event("A", "R1", 2, 3, 30),
		event("A", "R1", 10, 2, 30),
		event("A", "R2", 2, 1, 15),
		event("B", "R2", 10, 4, 60),
	}, true)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name  string
		spec  domain.PivotSpec
		field string
	}{
		{name: "sem linhas e colunas", spec: domain.PivotSpec{Metrics: []string{"volume"}}, field: "rows"},
		{name: "sem métricas", spec: domain.PivotSpec{Rows: []string{"advertiser"}}, field: "metrics"},
		{name: "campo em linhas e colunas", spec: domain.PivotSpec{Rows: []string{"advertiser"}, Cols: []string{"advertiser"}, Metrics: []string{"volume"}}, field: "cols"},
		{name: "campo desconhecido", spec: domain.PivotSpec{Rows: []string{"cor"}, Metrics: []string{"volume"}}, field: "rows"},
		{name: "métrica desconhecida", spec: domain.PivotSpec{Rows: []string{"advertiser"}, Metrics: []string{"preço"}}, field: "metrics"},
		{name: "campo repetido", spec: domain.PivotSpec{Rows: []string{"vehicle", "vehicle"}, Metrics: []string{"volume"}}, field: "rows"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Validate(tt.spec)
			require.Error(t, err)

			var cfg *domain.ConfigError
			require.True(t, errors.As(err, &cfg))
			assert.Equal(t, tt.field, cfg.Field)
		})
	}
}

func TestBuildRejectsOverlapBeforeGrouping(t *testing.T) {
	spec := domain.PivotSpec{Rows: []string{"vehicle"}, Cols: []string{"vehicle"}, Metrics: []string{"volume"}}

	// Tabela nula: qualquer agrupamento falharia antes da validação se ela não viesse primeiro
	pivot, err := Build(nil, spec, 0)
	assert.Nil(t, pivot)
	assert.True(t, domain.IsConfigError(err))
}

func TestBuildDenseFill(t *testing.T) {
	spec := domain.PivotSpec{Rows: []string{"advertiser"}, Cols: []string{"vehicle"}, Metrics: []string{"volume"}}

	pivot, err := Build(sampleTable(), spec, 0)
	require.NoError(t, err)

	require.Len(t, pivot.Rows, 2)
	require.Len(t, pivot.Columns, 2)
	assert.Equal(t, []string{"A"}, pivot.Rows[0].Key)
	assert.Equal(t, []string{"R1"}, pivot.Columns[0].Key)
	assert.Equal(t, []int64{5, 1}, pivot.Rows[0].Values)
	// B nunca apareceu na R1
	assert.Equal(t, []int64{0, 4}, pivot.Rows[1].Values)
	assert.False(t, pivot.HasRowMargin())
	assert.False(t, pivot.HasColumnMargin())
}

func TestBuildMargins(t *testing.T) {
	spec := domain.PivotSpec{
		Rows:      []string{"advertiser"},
		Cols:      []string{"vehicle"},
		Metrics:   []string{"volume", "duration"},
		RowMargin: true,
		ColMargin: true,
	}

	pivot, err := Build(sampleTable(), spec, 0)
	require.NoError(t, err)

	// volume: R1, R2, TOTAL | duration: R1, R2, TOTAL
	require.Len(t, pivot.Columns, 6)
	assert.True(t, pivot.Columns[2].IsMargin)
	assert.Equal(t, "volume", pivot.Columns[2].Metric)
	assert.Equal(t, []string{MarginLabel}, pivot.Columns[2].Key)

	require.Len(t, pivot.Rows, 3)
	assert.Equal(t, []int64{5, 1, 6, 60, 15, 75}, pivot.Rows[0].Values)
	assert.Equal(t, []int64{0, 4, 4, 0, 60, 60}, pivot.Rows[1].Values)

	total := pivot.Rows[2]
	assert.True(t, total.IsMargin)
	assert.Equal(t, []string{MarginLabel}, total.Key)
	assert.Equal(t, []int64{5, 5, 10, 60, 75, 135}, total.Values)
}

func TestBuildMarginRetraction(t *testing.T) {
	base := domain.PivotSpec{
		Rows:    []string{"advertiser", "day"},
		Cols:    []string{"vehicle"},
		Metrics: []string{"volume"},
	}

	both := base
	both.RowMargin, both.ColMargin = true, true
	full, err := Build(sampleTable(), both, 0)
	require.NoError(t, err)

	rowOnly := base
	rowOnly.RowMargin = true
	expectedRow, err := Build(sampleTable(), rowOnly, 0)
	require.NoError(t, err)
	assert.Equal(t, expectedRow, full.WithoutColumnMargin())

	colOnly := base
	colOnly.ColMargin = true
	expectedCol, err := Build(sampleTable(), colOnly, 0)
	require.NoError(t, err)
	assert.Equal(t, expectedCol, full.WithoutRowMargin())

	assert.True(t, expectedRow.HasRowMargin())
	assert.False(t, expectedRow.HasColumnMargin())
	assert.Equal(t, []string{MarginLabel, ""}, expectedRow.Rows[len(expectedRow.Rows)-1].Key)
}

func TestBuildWithoutRowFields(t *testing.T) {
	spec := domain.PivotSpec{Cols: []string{"day"}, Metrics: []string{"volume"}, RowMargin: true, ColMargin: true}

	pivot, err := Build(sampleTable(), spec, 0)
	require.NoError(t, err)

	// Uma única linha sem chave; margem de linha só existe com campos de linha
	require.Len(t, pivot.Rows, 1)
	assert.Empty(t, pivot.Rows[0].Key)
	assert.Equal(t, []int64{4, 6, 10}, pivot.Rows[0].Values)
}

func TestBuildCalendarOrderIsNumeric(t *testing.T) {
	spec := domain.PivotSpec{Rows: []string{"day"}, Metrics: []string{"volume"}}

	pivot, err := Build(sampleTable(), spec, 0)
	require.NoError(t, err)

	require.Len(t, pivot.Rows, 2)
	assert.Equal(t, []string{"2"}, pivot.Rows[0].Key)
	assert.Equal(t, []string{"10"}, pivot.Rows[1].Key)
	assert.Len(t, pivot.Columns, 1)
}

func TestBuildCapacityGuard(t *testing.T) {
	spec := domain.PivotSpec{Rows: []string{"advertiser"}, Cols: []string{"day"}, Metrics: []string{"volume", "duration"}}

	// 2 linhas x 2 colunas x 2 métricas = 8
	_, err := Build(sampleTable(), spec, 7)
	require.Error(t, err)

	var capacity *domain.CapacityError
	require.True(t, errors.As(err, &capacity))
	assert.Equal(t, 8, capacity.Estimate)

	_, err = Build(sampleTable(), spec, 8)
	assert.NoError(t, err)
}

func TestHeader(t *testing.T) {
	assert.Equal(t, "volume | R1 | 2", Header(domain.PivotColumn{Metric: "volume", Key: []string{"R1", "2"}}))
	assert.Equal(t, "volume | TOTAL", Header(domain.PivotColumn{Metric: "volume", Key: []string{"TOTAL", ""}}))
	assert.Equal(t, "duration", Header(domain.PivotColumn{Metric: "duration"}))
}

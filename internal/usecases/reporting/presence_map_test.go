package reporting

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/crowley-insights-api/internal/domain"
)

// 25 anunciantes em R1 em março, AdvNN com NN inserções no dia NN (limitado a 28)
func presenceTable() []rowSpec {
	specs := make([]rowSpec, 0, 26)
	for i := 1; i <= 25; i++ {
		specs = append(specs, rowSpec{
			advertiser: fmt.Sprintf("Adv%02d", i),
			vehicle:    "R1",
			date:       day(2024, 3, i),
			volume:     1,
			n:          i,
		})
	}
	specs = append(specs, rowSpec{advertiser: "Outra Emissora", vehicle: "R2", date: day(2024, 3, 1), volume: 1, n: 50})
	return specs
}

func presenceFilter() domain.PresenceFilter {
	return domain.PresenceFilter{Year: 2024, Month: 3, Market: "SP", Vehicle: "R1"}
}

func TestPresenceMap(t *testing.T) {
	service, _ := newService(buildTable(presenceTable()...))

	report, err := service.PresenceMap(context.Background(), presenceFilter(), 0)
	require.NoError(t, err)
	require.False(t, report.NoData)

	assert.Len(t, report.Days, 31)
	assert.Equal(t, "01", report.Days[0])
	assert.Equal(t, 25, report.TotalRows)
	assert.Equal(t, 2, report.TotalPages)
	assert.Len(t, report.All, 25)

	require.Len(t, report.Rows, 21)
	assert.Equal(t, "Adv25", report.Rows[0].Advertiser)
	assert.Equal(t, 25, report.Rows[0].Total)
	assert.Equal(t, 25, report.Rows[0].Days[24])
	assert.Equal(t, 0, report.Rows[0].Days[0])

	daily := report.Rows[len(report.Rows)-1]
	assert.True(t, daily.IsTotal)
	assert.Equal(t, domain.DailyTotalLabel, daily.Advertiser)
	assert.Equal(t, 325, daily.Total) // 1 + 2 + ... + 25
	assert.Equal(t, 1, daily.Days[0])
	assert.Equal(t, 0, daily.Days[30])
	assert.False(t, report.HideType)

	t.Run("Segunda página também termina com o total diário do mapa inteiro", func(t *testing.T) {
		report, err := service.PresenceMap(context.Background(), presenceFilter(), 1)
		require.NoError(t, err)

		require.Len(t, report.Rows, 6)
		assert.Equal(t, 1, report.Page)
		assert.Equal(t, "Adv05", report.Rows[0].Advertiser)
		assert.Equal(t, 325, report.Rows[5].Total)
		assert.True(t, report.Rows[5].IsTotal)
	})

	t.Run("Página fora do intervalo volta para a primeira", func(t *testing.T) {
		report, err := service.PresenceMap(context.Background(), presenceFilter(), 9)
		require.NoError(t, err)
		assert.Equal(t, 0, report.Page)
		assert.Equal(t, "Adv25", report.Rows[0].Advertiser)
	})
}

func TestPresenceMapDaysAndTypes(t *testing.T) {
	service, _ := newService(buildTable(presenceTable()...))

	filter := presenceFilter()
	filter.Days = []int{3, 1, 3}
	filter.Types = []string{"Comercial"}

	report, err := service.PresenceMap(context.Background(), filter, 0)
	require.NoError(t, err)

	assert.Equal(t, []string{"01", "03"}, report.Days)
	assert.True(t, report.HideType)
	require.Len(t, report.Rows, 3)
	assert.Equal(t, "Adv03", report.Rows[0].Advertiser)
	assert.Equal(t, []int{0, 3}, report.Rows[0].Days)
	assert.Equal(t, []int{1, 3}, report.Rows[2].Days)

	assert.Contains(t, report.Filters, domain.FilterEntry{Label: "Dias", Value: "1, 3"})
	assert.Contains(t, report.Filters, domain.FilterEntry{Label: "Mês", Value: "Março"})
}

func TestPresenceMapTiesBreakByAdvertiserThenType(t *testing.T) {
	service, _ := newService(buildTable(
		rowSpec{advertiser: "B", vehicle: "R1", date: day(2024, 3, 2), volume: 1, n: 2},
		rowSpec{advertiser: "A", vehicle: "R1", kind: "Merchandising", date: day(2024, 3, 2), volume: 1, n: 2},
		rowSpec{advertiser: "A", vehicle: "R1", date: day(2024, 3, 3), volume: 1, n: 2},
	))

	report, err := service.PresenceMap(context.Background(), presenceFilter(), 0)
	require.NoError(t, err)
	require.Len(t, report.All, 3)

	assert.Equal(t, "A", report.All[0].Advertiser)
	assert.Equal(t, "Comercial", report.All[0].Type)
	assert.Equal(t, "Merchandising", report.All[1].Type)
	assert.Equal(t, "B", report.All[2].Advertiser)
}

func TestPresenceMapNoData(t *testing.T) {
	service, _ := newService(buildTable(presenceTable()...))

	filter := presenceFilter()
	filter.Month = 4

	report, err := service.PresenceMap(context.Background(), filter, 0)
	require.NoError(t, err)
	assert.True(t, report.NoData)
	assert.Len(t, report.Days, 30)
	assert.Empty(t, report.Rows)
	assert.Equal(t, 0, report.TotalPages)
	assert.Nil(t, PresenceMapSheets(report))
}

func TestPresenceMapValidation(t *testing.T) {
	service, _ := newService(buildTable(presenceTable()...))

	tests := []struct {
		name   string
		mutate func(f *domain.PresenceFilter)
		field  string
	}{
		{name: "sem ano", mutate: func(f *domain.PresenceFilter) { f.Year = 0 }, field: "year"},
		{name: "mês inválido", mutate: func(f *domain.PresenceFilter) { f.Month = 13 }, field: "month"},
		{name: "sem praça", mutate: func(f *domain.PresenceFilter) { f.Market = "" }, field: "market"},
		{name: "veículo consolidado", mutate: func(f *domain.PresenceFilter) { f.Vehicle = domain.ConsolidatedVehicle }, field: "vehicle"},
		{name: "dia fora do mês", mutate: func(f *domain.PresenceFilter) { f.Month = 2; f.Days = []int{30} }, field: "days"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			filter := presenceFilter()
			tt.mutate(&filter)

			_, err := service.PresenceMap(context.Background(), filter, 0)

			var cfg *domain.ConfigError
			require.ErrorAs(t, err, &cfg)
			assert.Equal(t, tt.field, cfg.Field)
		})
	}
}

func TestPresenceMapBundleHasSingleDailyRow(t *testing.T) {
	service, _ := newService(buildTable(presenceTable()...))

	report, err := service.PresenceMap(context.Background(), presenceFilter(), 0)
	require.NoError(t, err)

	bundle := PresenceMapBundle(report)
	require.Len(t, bundle.Sheets, 2)

	sheet := bundle.Sheets[0]
	assert.Equal(t, "Presence Map", sheet.Name)
	require.Len(t, sheet.Cells, 26)
	assert.Equal(t, []int{25}, sheet.TotalRows)
	assert.Equal(t, domain.DailyTotalLabel, sheet.Cells[25][0])

	// Anunciante, Tipo, 31 dias, TOTAL
	assert.Equal(t, 34, sheet.Width())
	assert.Len(t, bundle.Sheets[1].Cells, 325)
}

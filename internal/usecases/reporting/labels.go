package reporting

import (
	"sort"
	"strings"

	"github.com/vfg2006/crowley-insights-api/internal/dataset"
)

var fieldLabels = map[string]string{
	dataset.FieldYear:       "Ano",
	dataset.FieldMonth:      "Mês",
	dataset.FieldDay:        "Dia",
	dataset.FieldMarket:     "Praça",
	dataset.FieldVehicle:    "Veículo",
	dataset.FieldAdvertiser: "Anunciante",
	dataset.FieldCreative:   "Anúncio",
	dataset.FieldType:       "Tipo de Veiculação",
	dataset.FieldDayPart:    "DayPart",
	dataset.MetricVolume:    "Inserções",
	dataset.MetricDuration:  "Duração",
}

var monthNames = []string{
	"Janeiro", "Fevereiro", "Março", "Abril", "Maio", "Junho",
	"Julho", "Agosto", "Setembro", "Outubro", "Novembro", "Dezembro",
}

// FieldLabel é o nome de exibição de um campo
func FieldLabel(field string) string {
	if label, ok := fieldLabels[field]; ok {
		return label
	}
	return field
}

func joinLabels(fields []string) string {
	labels := make([]string, 0, len(fields))
	for _, f := range fields {
		labels = append(labels, FieldLabel(f))
	}
	return strings.Join(labels, ", ")
}

func monthName(month int) string {
	if month < 1 || month > 12 {
		return ""
	}
	return monthNames[month-1]
}

// describeFields resume os filtros categóricos aplicados, em ordem de campo
func describeFields(fields map[string][]string) string {
	keys := make([]string, 0, len(fields))
	for k, v := range fields {
		if len(v) > 0 {
			keys = append(keys, k)
		}
	}
	if len(keys) == 0 {
		return "Nenhum"
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, FieldLabel(k)+": "+strings.Join(fields[k], ", "))
	}
	return strings.Join(parts, "; ")
}

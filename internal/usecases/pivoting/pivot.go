// Package pivoting monta o pivot dinâmico do relatório personalizado
package pivoting

import (
	"sort"
	"strconv"
	"strings"

	"github.com/vfg2006/crowley-insights-api/internal/dataset"
	"github.com/vfg2006/crowley-insights-api/internal/domain"
	"github.com/vfg2006/crowley-insights-api/internal/usecases/paginating"
)

// MarginLabel é o rótulo das linhas e colunas de total
const MarginLabel = "TOTAL"

const keySeparator = "\x1f"

// Validate rejeita combinações inválidas antes de qualquer agrupamento
func Validate(spec domain.PivotSpec) error {
	if len(spec.Rows)+len(spec.Cols) == 0 {
		return domain.NewConfigError("rows", "escolha ao menos um campo para linhas ou colunas")
	}
	if len(spec.Metrics) == 0 {
		return domain.NewConfigError("metrics", "escolha ao menos uma métrica")
	}

	seen := make(map[string]string)
	for _, group := range []struct {
		name   string
		fields []string
	}{{"rows", spec.Rows}, {"cols", spec.Cols}} {
		for _, f := range group.fields {
			if !dataset.IsDimension(f) {
				return domain.NewConfigError(group.name, "campo desconhecido %q", f)
			}
			if previous, ok := seen[f]; ok {
				if previous != group.name {
					return domain.NewConfigError(group.name, "o campo %q não pode estar em linhas e colunas ao mesmo tempo", f)
				}
				return domain.NewConfigError(group.name, "campo %q repetido", f)
			}
			seen[f] = group.name
		}
	}

	metrics := make(map[string]struct{})
	for _, m := range spec.Metrics {
		if !dataset.IsMetric(m) {
			return domain.NewConfigError("metrics", "métrica desconhecida %q", m)
		}
		if _, ok := metrics[m]; ok {
			return domain.NewConfigError("metrics", "métrica %q repetida", m)
		}
		metrics[m] = struct{}{}
	}

	return nil
}

// Build agrupa a tabela por (linhas, colunas, métrica), preenchendo combinações não observadas
// com zero. Os totais são calculados juntos e depois retirados conforme os flags.
// maxCells limita a estimativa de células antes da materialização; <= 0 desativa o limite.
func Build(table *dataset.Table, spec domain.PivotSpec, maxCells int) (*domain.PivotTable, error) {
	if err := Validate(spec); err != nil {
		return nil, err
	}

	needsDate := usesCalendar(spec.Rows) || usesCalendar(spec.Cols)
	events := make([]domain.InsertionEvent, 0, table.Len())
	for _, e := range table.Events() {
		if needsDate && !e.HasDate() {
			continue
		}
		events = append(events, e)
	}

	rowKeys := distinctKeys(events, spec.Rows)
	colKeys := distinctKeys(events, spec.Cols)

	estimate := paginating.EstimateCells(len(rowKeys), len(colKeys), len(spec.Metrics))
	if err := paginating.GuardCells(estimate, maxCells); err != nil {
		return nil, err
	}

	rowIndex := indexOf(rowKeys)
	colIndex := indexOf(colKeys)

	// sums[metrica][linha][coluna]
	sums := make([][][]int64, len(spec.Metrics))
	for m := range sums {
		sums[m] = make([][]int64, len(rowKeys))
		for r := range sums[m] {
			sums[m][r] = make([]int64, len(colKeys))
		}
	}

	for _, e := range events {
		r := rowIndex[joinKey(e, spec.Rows)]
		c := colIndex[joinKey(e, spec.Cols)]
		for m, metric := range spec.Metrics {
			sums[m][r][c] += int64(table.Value(e, metric))
		}
	}

	pivot := &domain.PivotTable{
		RowFields:    append([]string(nil), spec.Rows...),
		ColumnFields: append([]string(nil), spec.Cols...),
		Metrics:      append([]string(nil), spec.Metrics...),
	}

	withMargins := spec.RowMargin || spec.ColMargin
	colMargin := withMargins && len(spec.Cols) > 0
	rowMargin := withMargins && len(spec.Rows) > 0

	// Colunas: para cada métrica, as tuplas observadas e, opcionalmente, o TOTAL da métrica
	for _, metric := range spec.Metrics {
		for _, key := range colKeys {
			pivot.Columns = append(pivot.Columns, domain.PivotColumn{Metric: metric, Key: key})
		}
		if colMargin {
			pivot.Columns = append(pivot.Columns, domain.PivotColumn{
				Metric:   metric,
				Key:      marginKey(len(spec.Cols)),
				IsMargin: true,
			})
		}
	}

	width := len(pivot.Columns)
	for r, key := range rowKeys {
		values := make([]int64, 0, width)
		for m := range spec.Metrics {
			var rowTotal int64
			for c := range colKeys {
				values = append(values, sums[m][r][c])
				rowTotal += sums[m][r][c]
			}
			if colMargin {
				values = append(values, rowTotal)
			}
		}
		pivot.Rows = append(pivot.Rows, domain.PivotRow{Key: key, Values: values})
	}

	if rowMargin {
		totals := make([]int64, width)
		for _, row := range pivot.Rows {
			for i, v := range row.Values {
				totals[i] += v
			}
		}
		pivot.Rows = append(pivot.Rows, domain.PivotRow{
			Key:      marginKey(len(spec.Rows)),
			Values:   totals,
			IsMargin: true,
		})
	}

	if withMargins && !spec.RowMargin {
		pivot = pivot.WithoutRowMargin()
	}
	if withMargins && !spec.ColMargin {
		pivot = pivot.WithoutColumnMargin()
	}

	return pivot, nil
}

// Header devolve o cabeçalho textual de uma coluna (métrica + tupla)
func Header(col domain.PivotColumn) string {
	parts := make([]string, 0, len(col.Key)+1)
	parts = append(parts, col.Metric)
	for _, k := range col.Key {
		if k != "" {
			parts = append(parts, k)
		}
	}
	return strings.Join(parts, " | ")
}

func marginKey(size int) []string {
	key := make([]string, size)
	key[0] = MarginLabel
	return key
}

func usesCalendar(fields []string) bool {
	for _, f := range fields {
		if f == dataset.FieldYear || f == dataset.FieldMonth || f == dataset.FieldDay {
			return true
		}
	}
	return false
}

func joinKey(e domain.InsertionEvent, fields []string) string {
	parts := make([]string, len(fields))
	for i, f := range fields {
		parts[i] = dataset.Field(e, f)
	}
	return strings.Join(parts, keySeparator)
}

// distinctKeys lista as tuplas observadas, ordenadas campo a campo.
// Sem campos, existe uma única tupla vazia.
func distinctKeys(events []domain.InsertionEvent, fields []string) [][]string {
	if len(fields) == 0 {
		return [][]string{{}}
	}

	seen := make(map[string]struct{})
	keys := make([][]string, 0)
	for _, e := range events {
		joined := joinKey(e, fields)
		if _, ok := seen[joined]; ok {
			continue
		}
		seen[joined] = struct{}{}
		keys = append(keys, strings.Split(joined, keySeparator))
	}

	sort.Slice(keys, func(i, j int) bool {
		for k, f := range fields {
			if keys[i][k] == keys[j][k] {
				continue
			}
			return less(f, keys[i][k], keys[j][k])
		}
		return false
	})

	return keys
}

func less(field, a, b string) bool {
	if field == dataset.FieldYear || field == dataset.FieldMonth || field == dataset.FieldDay {
		x, errX := strconv.Atoi(a)
		y, errY := strconv.Atoi(b)
		if errX == nil && errY == nil {
			return x < y
		}
	}
	return a < b
}

func indexOf(keys [][]string) map[string]int {
	index := make(map[string]int, len(keys))
	for i, k := range keys {
		index[strings.Join(k, keySeparator)] = i
	}
	return index
}

// Package dataset normaliza a base de inserções e oferece filtros puros sobre ela
package dataset

import (
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/vfg2006/crowley-insights-api/internal/domain"
	"github.com/vfg2006/crowley-insights-api/pkg/utils"
)

// Dimensões reconhecidas
const (
	FieldYear       = "year"
	FieldMonth      = "month"
	FieldDay        = "day"
	FieldMarket     = "market"
	FieldVehicle    = "vehicle"
	FieldAdvertiser = "advertiser"
	FieldCreative   = "creative"
	FieldType       = "type"
	FieldDayPart    = "daypart"
)

// Métricas reconhecidas
const (
	MetricVolume   = "volume"
	MetricDuration = "duration"
)

var dimensions = []string{
	FieldYear, FieldMonth, FieldDay, FieldMarket, FieldVehicle,
	FieldAdvertiser, FieldCreative, FieldType, FieldDayPart,
}

var metrics = []string{MetricVolume, MetricDuration}

// Table é uma visão imutável da base. Toda operação devolve uma nova Table
type Table struct {
	events    []domain.InsertionEvent
	hasVolume bool
}

// Load normaliza as linhas cruas. Linhas com data inválida são mantidas sem data
// e ficam de fora de qualquer consulta por período.
func Load(raw []domain.RawInsertion) *Table {
	events := make([]domain.InsertionEvent, 0, len(raw))
	hasVolume := false

	for _, r := range raw {
		if r.Volume != nil {
			hasVolume = true
		}
		events = append(events, normalize(r))
	}

	return &Table{events: events, hasVolume: hasVolume}
}

// New monta uma Table a partir de eventos já normalizados
func New(events []domain.InsertionEvent, hasVolume bool) *Table {
	return &Table{events: events, hasVolume: hasVolume}
}

func normalize(r domain.RawInsertion) domain.InsertionEvent {
	e := domain.InsertionEvent{
		Market:     strings.TrimSpace(r.Market),
		Vehicle:    strings.TrimSpace(r.Vehicle),
		Advertiser: strings.TrimSpace(r.Advertiser),
		Creative:   strings.TrimSpace(r.Creative),
		Duration:   r.Duration,
		Type:       strings.TrimSpace(r.Type),
		DayPart:    strings.TrimSpace(r.DayPart),
	}

	if r.Volume != nil {
		e.Volume = *r.Volume
	}

	var date *time.Time
	if r.DateTime != nil {
		d := *r.DateTime
		date = &d
	} else if parsed, err := utils.ParseDayFirst(r.DateText); err == nil {
		date = parsed
	}

	if date != nil {
		e.Date = date
		e.Year = date.Year()
		e.Month = int(date.Month())
		e.Day = date.Day()
	}

	return e
}

// Len retorna a quantidade de linhas
func (t *Table) Len() int {
	if t == nil {
		return 0
	}
	return len(t.events)
}

// IsEmpty indica uma tabela sem linhas
func (t *Table) IsEmpty() bool {
	return t.Len() == 0
}

// HasVolume indica se a origem trouxe a coluna de volume de inserções
func (t *Table) HasVolume() bool {
	return t != nil && t.hasVolume
}

// Events devolve as linhas. O slice não deve ser alterado
func (t *Table) Events() []domain.InsertionEvent {
	if t == nil {
		return nil
	}
	return t.events
}

// Value é o valor da métrica na linha. Sem coluna de volume, cada linha conta 1
func (t *Table) Value(e domain.InsertionEvent, metric string) int {
	switch metric {
	case MetricDuration:
		return e.Duration
	default:
		if !t.HasVolume() {
			return 1
		}
		return e.Volume
	}
}

// LastDate é a data mais recente da base
func (t *Table) LastDate() *time.Time {
	var last *time.Time
	for _, e := range t.Events() {
		if e.Date != nil && (last == nil || e.Date.After(*last)) {
			last = e.Date
		}
	}
	if last == nil {
		return nil
	}
	day := utils.StartOfDay(*last)
	return &day
}

// FilterByWindow mantém as linhas entre o início às 00:00:00 e o fim às 23:59:59
func (t *Table) FilterByWindow(w domain.DateWindow) *Table {
	start := utils.StartOfDay(w.Start)
	end := utils.EndOfDay(w.End)

	return t.Where(func(e domain.InsertionEvent) bool {
		if e.Date == nil {
			return false
		}
		return !e.Date.Before(start) && !e.Date.After(end)
	})
}

// Where mantém as linhas que satisfazem todos os predicados
func (t *Table) Where(predicates ...Predicate) *Table {
	out := &Table{hasVolume: t.HasVolume()}
	for _, e := range t.Events() {
		if matchAll(e, predicates) {
			out.events = append(out.events, e)
		}
	}
	return out
}

// Concat junta as linhas das tabelas, sem remover duplicadas
func Concat(tables ...*Table) *Table {
	out := &Table{}
	for _, t := range tables {
		if t == nil {
			continue
		}
		out.hasVolume = out.hasVolume || t.hasVolume
		out.events = append(out.events, t.events...)
	}
	return out
}

// Advertisers retorna o conjunto de anunciantes distintos
func (t *Table) Advertisers() map[string]struct{} {
	set := make(map[string]struct{})
	for _, e := range t.Events() {
		set[e.Advertiser] = struct{}{}
	}
	return set
}

// DistinctValues lista os valores distintos da dimensão, ordenados.
// Campos de calendário são ordenados numericamente.
func (t *Table) DistinctValues(field string) ([]string, error) {
	if !IsDimension(field) {
		return nil, domain.NewConfigError(field, "dimensão desconhecida")
	}

	seen := make(map[string]struct{})
	values := make([]string, 0)
	for _, e := range t.Events() {
		if isCalendar(field) && e.Date == nil {
			continue
		}

		v := Field(e, field)
		if v == "" {
			continue
		}
		if _, ok := seen[v]; !ok {
			seen[v] = struct{}{}
			values = append(values, v)
		}
	}

	if isCalendar(field) {
		sort.Slice(values, func(i, j int) bool {
			a, _ := strconv.Atoi(values[i])
			b, _ := strconv.Atoi(values[j])
			return a < b
		})
	} else {
		sort.Strings(values)
	}

	return values, nil
}

// Field retorna o valor textual de uma dimensão da linha
func Field(e domain.InsertionEvent, field string) string {
	switch field {
	case FieldYear:
		return calendarText(e, e.Year)
	case FieldMonth:
		return calendarText(e, e.Month)
	case FieldDay:
		return calendarText(e, e.Day)
	case FieldMarket:
		return e.Market
	case FieldVehicle:
		return e.Vehicle
	case FieldAdvertiser:
		return e.Advertiser
	case FieldCreative:
		return e.Creative
	case FieldType:
		return e.Type
	case FieldDayPart:
		return e.DayPart
	}
	return ""
}

func calendarText(e domain.InsertionEvent, v int) string {
	if !e.HasDate() {
		return ""
	}
	return strconv.Itoa(v)
}

func isCalendar(field string) bool {
	return field == FieldYear || field == FieldMonth || field == FieldDay
}

// IsDimension indica se o campo pode ser usado como linha, coluna ou filtro
func IsDimension(field string) bool {
	for _, d := range dimensions {
		if d == field {
			return true
		}
	}
	return false
}

// IsMetric indica se o campo pode ser somado
func IsMetric(field string) bool {
	for _, m := range metrics {
		if m == field {
			return true
		}
	}
	return false
}

// Dimensions lista as dimensões reconhecidas
func Dimensions() []string {
	return append([]string(nil), dimensions...)
}

// Metrics lista as métricas reconhecidas
func Metrics() []string {
	return append([]string(nil), metrics...)
}

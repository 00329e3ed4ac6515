package utils

import (
	"fmt"
	"strings"
	"time"
)

// Formatos aceitos para datas da base, dia primeiro
var dayFirstLayouts = []string{
	"02/01/2006 15:04:05",
	"02/01/2006 15:04",
	"02/01/2006",
	"2/1/2006 15:04:05",
	"2/1/2006 15:04",
	"2/1/2006",
	"02-01-2006",
	"02.01.2006",
	"02/01/06",
	"2/1/06",
}

// Formatos ISO aceitos como alternativa
var isoLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	time.DateTime,
	time.DateOnly,
}

func ParseDate(dateStr string) (*time.Time, error) {
	var date time.Time

	if dateStr != "" {
		incomingDate, err := time.Parse(time.DateOnly, dateStr)
		if err != nil {
			return nil, err
		}

		date = incomingDate
	}

	return &date, nil
}

// ParseDayFirst interpreta uma data localizada (31/01/2024), aceitando ISO como alternativa
func ParseDayFirst(dateStr string) (*time.Time, error) {
	dateStr = strings.TrimSpace(dateStr)
	if dateStr == "" {
		return nil, fmt.Errorf("data vazia")
	}

	for _, layout := range dayFirstLayouts {
		if parsed, err := time.Parse(layout, dateStr); err == nil {
			return &parsed, nil
		}
	}

	for _, layout := range isoLayouts {
		if parsed, err := time.Parse(layout, dateStr); err == nil {
			return &parsed, nil
		}
	}

	return nil, fmt.Errorf("data inválida: %q", dateStr)
}

// StartOfDay retorna a data às 00:00:00
func StartOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// EndOfDay retorna a data às 23:59:59, último instante incluído em um período
func EndOfDay(t time.Time) time.Time {
	return StartOfDay(t).AddDate(0, 0, 1).Add(-time.Second)
}

// DaysIn retorna a quantidade de dias do mês
func DaysIn(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// FormatDayFirst formata a data como 31/01/2024
func FormatDayFirst(t time.Time) string {
	return t.Format("02/01/2006")
}

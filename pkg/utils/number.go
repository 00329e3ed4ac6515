package utils

import (
	"fmt"
	"math"
	"strings"

	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// FormatCount exibe contagens como inteiro truncado; vazio para nulo
// e o texto original quando o valor não é numérico
func FormatCount(v any) string {
	d, raw, ok := toDecimal(v)
	if !ok {
		return raw
	}
	return d.Truncate(0).String()
}

// FormatPercent exibe uma fração (0.25) como percentual com uma casa decimal (25.0%)
func FormatPercent(v any) string {
	d, raw, ok := toDecimal(v)
	if !ok {
		return raw
	}
	return d.Mul(hundred).Round(1).StringFixed(1) + "%"
}

// FormatVariation exibe uma fração de variação com sinal (+12.5%)
func FormatVariation(v any) string {
	d, raw, ok := toDecimal(v)
	if !ok {
		return raw
	}

	pct := d.Mul(hundred).Round(1)
	if pct.IsPositive() {
		return "+" + pct.StringFixed(1) + "%"
	}
	return pct.StringFixed(1) + "%"
}

// PercentValue arredonda uma fração para o percentual exportado (0.2567 -> 25.7).
// NaN e infinito voltam sem alteração; quem grava decide como exibi-los
func PercentValue(fraction float64) float64 {
	if !IsFinite(fraction) {
		return fraction
	}
	return decimal.NewFromFloat(fraction).Mul(hundred).Round(1).InexactFloat64()
}

// IsFinite indica se o float pode virar decimal
func IsFinite(x float64) bool {
	return !math.IsNaN(x) && !math.IsInf(x, 0)
}

func fromFloat(x float64) (decimal.Decimal, string, bool) {
	if !IsFinite(x) {
		return decimal.Zero, fmt.Sprint(x), false
	}
	return decimal.NewFromFloat(x), "", true
}

// toDecimal converte o valor; quando não for possível devolve o texto cru para exibição
func toDecimal(v any) (decimal.Decimal, string, bool) {
	switch x := v.(type) {
	case nil:
		return decimal.Zero, "", false
	case int:
		return decimal.NewFromInt(int64(x)), "", true
	case int32:
		return decimal.NewFromInt(int64(x)), "", true
	case int64:
		return decimal.NewFromInt(x), "", true
	case uint:
		return decimal.NewFromUint64(uint64(x)), "", true
	case uint32:
		return decimal.NewFromUint64(uint64(x)), "", true
	case uint64:
		return decimal.NewFromUint64(x), "", true
	case float32:
		return fromFloat(float64(x))
	case float64:
		return fromFloat(x)
	case *int:
		if x == nil {
			return decimal.Zero, "", false
		}
		return decimal.NewFromInt(int64(*x)), "", true
	case *float64:
		if x == nil {
			return decimal.Zero, "", false
		}
		return fromFloat(*x)
	case decimal.Decimal:
		return x, "", true
	case string:
		trimmed := strings.TrimSpace(x)
		if trimmed == "" {
			return decimal.Zero, "", false
		}
		d, err := decimal.NewFromString(trimmed)
		if err != nil {
			return decimal.Zero, x, false
		}
		return d, "", true
	default:
		return decimal.Zero, fmt.Sprint(v), false
	}
}

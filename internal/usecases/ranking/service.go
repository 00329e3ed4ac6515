// Package ranking compara o volume de cada anunciante entre o período atual e o de referência
package ranking

import (
	"sort"

	"github.com/vfg2006/crowley-insights-api/internal/dataset"
	"github.com/vfg2006/crowley-insights-api/internal/domain"
)

type RankingService interface {
	Rank(current, reference *dataset.Table, metric string) []domain.RankedComparison
}

type ComparisonService struct{}

func NewComparisonService() RankingService {
	return &ComparisonService{}
}

// Rank monta o comparativo com ranking de competição em cada período,
// posição sequencial de exibição e uma linha final de total
func (s *ComparisonService) Rank(current, reference *dataset.Table, metric string) []domain.RankedComparison {
	if metric == "" {
		metric = dataset.MetricVolume
	}

	currentByAdvertiser := sumByAdvertiser(current, metric)
	referenceByAdvertiser := sumByAdvertiser(reference, metric)

	rows := make([]domain.RankedComparison, 0, len(currentByAdvertiser)+len(referenceByAdvertiser))
	for advertiser, volume := range currentByAdvertiser {
		rows = append(rows, domain.RankedComparison{
			Advertiser: advertiser,
			Current:    volume,
			Reference:  referenceByAdvertiser[advertiser],
		})
	}
	for advertiser, volume := range referenceByAdvertiser {
		if _, ok := currentByAdvertiser[advertiser]; !ok {
			rows = append(rows, domain.RankedComparison{Advertiser: advertiser, Reference: volume})
		}
	}

	if len(rows) == 0 {
		return rows
	}

	currentRanks := CompetitionRanks(rows, func(r domain.RankedComparison) int { return r.Current })
	referenceRanks := CompetitionRanks(rows, func(r domain.RankedComparison) int { return r.Reference })

	totalCurrent, totalReference := 0, 0
	for _, r := range rows {
		totalCurrent += r.Current
		totalReference += r.Reference
	}

	for i := range rows {
		rankCurrent := currentRanks[i]
		rankReference := referenceRanks[i]
		share := 0.0
		if totalCurrent > 0 {
			share = float64(rows[i].Current) / float64(totalCurrent)
		}

		rows[i].RankCurrent = &rankCurrent
		rows[i].RankReference = &rankReference
		rows[i].Share = &share
		rows[i].Variation = Variation(rows[i].Current, rows[i].Reference)
	}

	s.updatePositions(rows)

	rows = append(rows, domain.RankedComparison{
		Advertiser: domain.GrandTotalLabel,
		Current:    totalCurrent,
		Reference:  totalReference,
		Variation:  Variation(totalCurrent, totalReference),
		IsTotal:    true,
	})

	return rows
}

// updatePositions ordena por volume atual e depois pelo de referência, ambos decrescentes,
// e numera a posição de exibição
func (*ComparisonService) updatePositions(rows []domain.RankedComparison) {
	sort.Slice(rows, func(i, j int) bool {
		if rows[i].Current != rows[j].Current {
			return rows[i].Current > rows[j].Current
		}
		if rows[i].Reference != rows[j].Reference {
			return rows[i].Reference > rows[j].Reference
		}
		return rows[i].Advertiser < rows[j].Advertiser
	})

	for i := range rows {
		position := i + 1
		rows[i].Position = &position
	}
}

// Variation é (atual - referência) / referência; sem referência vale 100% se houve volume
// no período atual e 0% caso contrário
func Variation(current, reference int) float64 {
	if reference > 0 {
		return float64(current-reference) / float64(reference)
	}
	if current > 0 {
		return 1.0
	}
	return 0.0
}

// CompetitionRanks atribui a cada linha o menor ordinal entre os empatados (50, 50, 30 -> 1, 1, 3)
func CompetitionRanks[T any](rows []T, value func(T) int) []int {
	order := make([]int, len(rows))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool {
		return value(rows[order[a]]) > value(rows[order[b]])
	})

	ranks := make([]int, len(rows))
	for pos, idx := range order {
		if pos > 0 && value(rows[idx]) == value(rows[order[pos-1]]) {
			ranks[idx] = ranks[order[pos-1]]
			continue
		}
		ranks[idx] = pos + 1
	}
	return ranks
}

func sumByAdvertiser(table *dataset.Table, metric string) map[string]int {
	sums := make(map[string]int)
	for _, e := range table.Events() {
		sums[e.Advertiser] += table.Value(e, metric)
	}
	return sums
}

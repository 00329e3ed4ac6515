// Package classifying separa anunciantes em exclusivos, compartilhados, ausentes e novos
package classifying

import (
	"sort"

	"github.com/vfg2006/crowley-insights-api/internal/dataset"
)

// Segments é a classificação dos anunciantes entre alvo (A) e comparação (B)
type Segments struct {
	Exclusive []string `json:"exclusive"` // A - B
	Shared    []string `json:"shared"`    // A ∩ B
	Absent    []string `json:"absent"`    // B - A
	NoData    bool     `json:"no_data"`   // A e B vazios
}

// Classify compara os anunciantes distintos das duas populações.
// As duas tabelas já devem estar filtradas pelas restrições comuns.
func Classify(target, comparison *dataset.Table) Segments {
	a := target.Advertisers()
	b := comparison.Advertisers()

	return Segments{
		Exclusive: difference(a, b),
		Shared:    intersection(a, b),
		Absent:    difference(b, a),
		NoData:    target.IsEmpty() && comparison.IsEmpty(),
	}
}

// NewEntrants são os anunciantes presentes no período atual e ausentes no de referência
func NewEntrants(current, reference *dataset.Table) []string {
	return difference(current.Advertisers(), reference.Advertisers())
}

func difference(a, b map[string]struct{}) []string {
	out := make([]string, 0)
	for name := range a {
		if _, ok := b[name]; !ok {
			out = append(out, name)
		}
	}
	sort.Strings(out)
	return out
}

func intersection(a, b map[string]struct{}) []string {
	out := make([]string, 0)
	for name := range a {
		if _, ok := b[name]; ok {
			out = append(out, name)
		}
	}
	sort.Strings(out)
	return out
}

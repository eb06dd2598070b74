package chain

import (
	"sort"

	"github.com/jackinabox86/prun-site-alpha-sub001/internal/domain"
)

// Rank ordena las opciones anotadas por profit/área descendente y devuelve
// el slice ordenado. El sort es estable: en empate exacto gana el orden de
// enumeración original (política de desempate documentada).
func Rank(opts []*domain.MakeOption) []*domain.MakeOption {
	ranked := make([]*domain.MakeOption, len(opts))
	copy(ranked, opts)
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].TotalProfitPA() > ranked[j].TotalProfitPA()
	})
	return ranked
}

// Best devuelve la mejor opción del ranking, o nil si no hay ninguna.
func Best(ranked []*domain.MakeOption) *domain.MakeOption {
	if len(ranked) == 0 {
		return nil
	}
	return ranked[0]
}

// TopN devuelve las n primeras opciones del ranking, sin deduplicar.
func TopN(ranked []*domain.MakeOption, n int) []*domain.MakeOption {
	if n <= 0 || n > len(ranked) {
		n = len(ranked)
	}
	return ranked[:n]
}

// Condense colapsa el ranking a la mejor opción por firma de escenario de
// primer nivel: opciones que solo difieren en cómo se resolvió la
// recursión más profunda cuentan como el mismo escenario. El resultado
// conserva el orden del ranking y siempre es un subconjunto de él.
func Condense(ranked []*domain.MakeOption) []*domain.MakeOption {
	seen := make(map[string]bool, len(ranked))
	out := make([]*domain.MakeOption, 0, len(ranked))
	for _, o := range ranked {
		key := o.Decision.TopKey()
		if seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, o)
	}
	return out
}

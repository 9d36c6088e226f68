package count

import (
	"slices"

	"gonum.org/v1/gonum/stat"

	"github.com/inodb/vibe-intersect/internal/record"
)

// Summary describes the distribution of per-gene counts.
type Summary struct {
	Genes         int
	GenesWithHits int
	Total         uint64
	Max           uint64
	Mean          float64
	Median        float64
}

// Summarize computes a Summary over results.
func Summarize(results []record.GeneResult) Summary {
	s := Summary{Genes: len(results)}
	if len(results) == 0 {
		return s
	}

	counts := make([]float64, len(results))
	for i, r := range results {
		counts[i] = float64(r.Intersections)
		s.Total += r.Intersections
		if r.Intersections > 0 {
			s.GenesWithHits++
		}
		if r.Intersections > s.Max {
			s.Max = r.Intersections
		}
	}

	s.Mean = stat.Mean(counts, nil)
	slices.Sort(counts)
	s.Median = stat.Quantile(0.5, stat.Empirical, counts, nil)
	return s
}

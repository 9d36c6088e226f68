// Package count computes per-gene read overlap counts against a shared index.
package count

import (
	"runtime"

	"github.com/exascience/pargo/parallel"

	"github.com/inodb/vibe-intersect/internal/index"
	"github.com/inodb/vibe-intersect/internal/record"
)

// CountGene counts the reads overlapping g on the same strand and chromosome.
// Tokens are compared exactly. idx must have been built from reads.
func CountGene(g record.GeneRecord, idx index.Index, reads []record.ReadRecord) record.GeneResult {
	var n uint64
	idx.Do(g.Interval, func(e index.Entry) {
		r := &reads[e.Value]
		if r.Strand == g.Strand && r.Chrom == g.Chrom {
			n++
		}
	})
	return record.GeneResult{
		Name:          g.Name,
		Strand:        g.Strand,
		Chrom:         g.Chrom,
		Intersections: n,
	}
}

// Options configures CountAll.
type Options struct {
	// Workers is the number of concurrent batches. If 0 or negative,
	// runtime.GOMAXPROCS(0) is used.
	Workers int
}

// CountAll counts every gene concurrently. results[i] always corresponds to
// genes[i]. idx and reads are only read.
func CountAll(genes []record.GeneRecord, idx index.Index, reads []record.ReadRecord, opts Options) []record.GeneResult {
	results := make([]record.GeneResult, len(genes))
	if len(genes) == 0 {
		return results
	}

	workers := opts.Workers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	if workers > len(genes) {
		workers = len(genes)
	}

	// Each batch writes only its own slots of results.
	parallel.Range(0, len(genes), workers, func(low, high int) {
		for i := low; i < high; i++ {
			results[i] = CountGene(genes[i], idx, reads)
		}
	})
	return results
}

// Total sums the intersections over all results.
func Total(results []record.GeneResult) uint64 {
	var total uint64
	for _, r := range results {
		total += r.Intersections
	}
	return total
}

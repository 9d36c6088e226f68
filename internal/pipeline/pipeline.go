// Package pipeline runs one batch: load genes and reads, index the reads,
// count overlaps per gene and write the results.
package pipeline

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/inodb/vibe-intersect/internal/count"
	"github.com/inodb/vibe-intersect/internal/csvio"
	"github.com/inodb/vibe-intersect/internal/duckdb"
	"github.com/inodb/vibe-intersect/internal/index"
	"github.com/inodb/vibe-intersect/internal/record"
)

// Config controls a run.
type Config struct {
	GenesPath  string
	ReadsPath  string
	OutputPath string // .duckdb/.db writes a database, anything else CSV

	Workers      int        // 0 uses all CPUs
	Index        index.Kind // defaults to index.KindImplicit
	StrictTokens bool       // reject over-length name/strand/chromosome tokens

	Logger *zap.Logger
}

func (c Config) logger() *zap.Logger {
	if c.Logger == nil {
		return zap.NewNop()
	}
	return c.Logger
}

// Sink receives the ordered results of a run.
type Sink interface {
	WriteResults(results []record.GeneResult) error
	Close() error
}

// OpenSink opens the output for path, choosing the format by extension.
func OpenSink(path string) (Sink, error) {
	if duckdb.IsDuckDB(path) {
		s, err := duckdb.Open(path)
		if err != nil {
			return nil, err
		}
		return s, nil
	}
	w, err := csvio.Create(path)
	if err != nil {
		return nil, err
	}
	return w, nil
}

// Run executes the full batch and returns a summary of the counts.
func Run(ctx context.Context, cfg Config) (count.Summary, error) {
	logger := cfg.logger()

	genes, reads, err := load(ctx, cfg)
	if err != nil {
		return count.Summary{}, err
	}

	results, err := Count(ctx, genes, reads, cfg)
	if err != nil {
		return count.Summary{}, err
	}

	sink, err := OpenSink(cfg.OutputPath)
	if err != nil {
		return count.Summary{}, err
	}
	if err := sink.WriteResults(results); err != nil {
		sink.Close()
		return count.Summary{}, fmt.Errorf("write results: %w", err)
	}
	if err := sink.Close(); err != nil {
		return count.Summary{}, fmt.Errorf("close output: %w", err)
	}

	s := count.Summarize(results)
	logger.Info("total intersections identified",
		zap.Uint64("total", s.Total),
		zap.Int("genes", s.Genes),
		zap.Int("genes_with_hits", s.GenesWithHits),
		zap.Float64("mean", s.Mean),
		zap.Float64("median", s.Median),
		zap.Uint64("max", s.Max),
		zap.String("output", cfg.OutputPath))
	return s, nil
}

// load reads the genes and reads files concurrently.
func load(ctx context.Context, cfg Config) ([]record.GeneRecord, []record.ReadRecord, error) {
	loader := csvio.NewLoader(record.Limits{Strict: cfg.StrictTokens})
	loader.SetLogger(cfg.logger())

	var (
		genes []record.GeneRecord
		reads []record.ReadRecord
	)
	var g errgroup.Group
	g.Go(func() error {
		var err error
		genes, err = loader.LoadGenes(cfg.GenesPath)
		return err
	})
	g.Go(func() error {
		var err error
		reads, err = loader.LoadReads(cfg.ReadsPath)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, nil, err
	}
	return genes, reads, nil
}

// Count indexes reads and counts overlaps for every gene, preserving gene
// order.
func Count(ctx context.Context, genes []record.GeneRecord, reads []record.ReadRecord, cfg Config) ([]record.GeneResult, error) {
	logger := cfg.logger()
	kind := cfg.Index
	if kind == "" {
		kind = index.KindImplicit
	}

	logger.Info("building interval tree", zap.String("index", string(kind)), zap.Int("reads", len(reads)))
	start := time.Now()
	idx, err := index.Build(index.FromReads(reads), kind)
	if err != nil {
		return nil, fmt.Errorf("build index: %w", err)
	}
	logger.Debug("index built", zap.Duration("elapsed", time.Since(start)))

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	logger.Info("analyzing gene-read intersections",
		zap.Int("genes", len(genes)),
		zap.Int("reads", len(reads)))
	start = time.Now()
	results := count.CountAll(genes, idx, reads, count.Options{Workers: cfg.Workers})
	logger.Debug("counting complete", zap.Duration("elapsed", time.Since(start)))

	return results, nil
}

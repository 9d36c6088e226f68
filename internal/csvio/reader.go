// Package csvio reads gene and read tables from CSV and writes per-gene
// results back out. Plain and gzip-compressed files are supported; "-" means
// stdin or stdout.
package csvio

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"

	"github.com/brentp/xopen"
	"go.uber.org/zap"

	"github.com/inodb/vibe-intersect/internal/record"
)

// Column names expected in the input headers.
const (
	ColGene   = "gene"
	ColStrand = "strand"
	ColChrom  = "chr"
	ColStart  = "start"
	ColEnd    = "end"
	ColLeft   = "left"
	ColRight  = "right"
)

// ErrMissingColumn is returned when a required header column is absent.
var ErrMissingColumn = errors.New("missing column")

// ParseError locates a failure in an input file.
type ParseError struct {
	Path string
	Line int
	Err  error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%s:%d: %v", e.Path, e.Line, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// Loader parses gene and read tables.
type Loader struct {
	limits record.Limits
	logger *zap.Logger
}

// NewLoader creates a loader that validates tokens against limits.
func NewLoader(limits record.Limits) *Loader {
	return &Loader{limits: limits, logger: zap.NewNop()}
}

// SetLogger sets the logger for progress messages.
func (l *Loader) SetLogger(logger *zap.Logger) {
	l.logger = logger
}

// LoadGenes reads a genes file with columns gene, strand, chr, start, end.
func (l *Loader) LoadGenes(path string) ([]record.GeneRecord, error) {
	l.logger.Info("loading genes file", zap.String("path", path))
	r, err := xopen.Ropen(path)
	if err != nil {
		return nil, fmt.Errorf("open genes file: %w", err)
	}
	defer r.Close()

	genes, err := l.ReadGenes(r, path)
	if err != nil {
		return nil, err
	}
	l.logger.Info("gene loading complete", zap.Int("genes", len(genes)))
	return genes, nil
}

// LoadReads reads a reads file with columns strand, chr, left, right.
func (l *Loader) LoadReads(path string) ([]record.ReadRecord, error) {
	l.logger.Info("loading reads file", zap.String("path", path))
	r, err := xopen.Ropen(path)
	if err != nil {
		return nil, fmt.Errorf("open reads file: %w", err)
	}
	defer r.Close()

	reads, err := l.ReadReads(r, path)
	if err != nil {
		return nil, err
	}
	l.logger.Info("read loading complete", zap.Int("reads", len(reads)))
	return reads, nil
}

// ReadGenes parses genes from r. name is used in error messages.
func (l *Loader) ReadGenes(r io.Reader, name string) ([]record.GeneRecord, error) {
	var genes []record.GeneRecord
	err := scan(r, name, []string{ColGene, ColStrand, ColChrom, ColStart, ColEnd}, func(f []string) error {
		start, err := parseCoord(ColStart, f[3])
		if err != nil {
			return err
		}
		end, err := parseCoord(ColEnd, f[4])
		if err != nil {
			return err
		}
		g := record.NewGene(f[0], f[1], f[2], start, end)
		if err := l.limits.ValidateGene(g); err != nil {
			return err
		}
		genes = append(genes, g)
		return nil
	})
	return genes, err
}

// ReadReads parses reads from r. name is used in error messages.
func (l *Loader) ReadReads(r io.Reader, name string) ([]record.ReadRecord, error) {
	var reads []record.ReadRecord
	err := scan(r, name, []string{ColStrand, ColChrom, ColLeft, ColRight}, func(f []string) error {
		start, err := parseCoord(ColLeft, f[2])
		if err != nil {
			return err
		}
		end, err := parseCoord(ColRight, f[3])
		if err != nil {
			return err
		}
		rd := record.NewRead(f[0], f[1], start, end)
		if err := l.limits.ValidateRead(rd); err != nil {
			return err
		}
		reads = append(reads, rd)
		return nil
	})
	return reads, err
}

// scan reads a headered CSV and calls fn with the named columns of each row,
// in the order given by cols.
func scan(r io.Reader, name string, cols []string, fn func(fields []string) error) error {
	cr := csv.NewReader(r)
	cr.ReuseRecord = true

	header, err := cr.Read()
	if err == io.EOF {
		return &ParseError{Path: name, Line: 1, Err: fmt.Errorf("%w: empty file, no header", ErrMissingColumn)}
	}
	if err != nil {
		return &ParseError{Path: name, Line: 1, Err: err}
	}

	pos := make(map[string]int, len(header))
	for i, h := range header {
		if _, dup := pos[h]; !dup {
			pos[h] = i
		}
	}
	idx := make([]int, len(cols))
	for i, c := range cols {
		p, ok := pos[c]
		if !ok {
			return &ParseError{Path: name, Line: 1, Err: fmt.Errorf("%w %q", ErrMissingColumn, c)}
		}
		idx[i] = p
	}

	fields := make([]string, len(cols))
	for {
		row, err := cr.Read()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			var line int
			var perr *csv.ParseError
			if errors.As(err, &perr) {
				line = perr.Line
			}
			return &ParseError{Path: name, Line: line, Err: err}
		}
		line, _ := cr.FieldPos(0)
		for i, p := range idx {
			fields[i] = row[p]
		}
		if err := fn(fields); err != nil {
			return &ParseError{Path: name, Line: line, Err: err}
		}
	}
}

func parseCoord(col, s string) (uint64, error) {
	v, err := strconv.ParseUint(s, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("parse %s %q: %w", col, s, err)
	}
	return v, nil
}

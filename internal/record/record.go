// Package record defines the gene, read and result rows the counter works on.
package record

import (
	"errors"
	"fmt"

	"github.com/inodb/vibe-intersect/internal/interval"
)

// Token capacity limits for the short string fields.
const (
	MaxNameLen   = 16
	MaxStrandLen = 4
	MaxChromLen  = 8
)

var (
	// ErrEmptyToken is returned when a strand or chromosome token is empty.
	ErrEmptyToken = errors.New("empty token")
	// ErrTokenTooLong is returned when a token exceeds its capacity limit.
	ErrTokenTooLong = errors.New("token too long")
)

// GeneRecord is one annotated gene region.
type GeneRecord struct {
	Name     string
	Strand   string
	Chrom    string
	Interval interval.Interval
}

// ReadRecord is one sequencing read.
type ReadRecord struct {
	Strand   string
	Chrom    string
	Interval interval.Interval
}

// GeneResult holds the overlap count for a single gene.
type GeneResult struct {
	Name          string
	Strand        string
	Chrom         string
	Intersections uint64
}

// NewGene builds a gene record, normalizing the coordinate pair.
func NewGene(name, strand, chrom string, start, end uint64) GeneRecord {
	return GeneRecord{
		Name:     name,
		Strand:   strand,
		Chrom:    chrom,
		Interval: interval.Normalize(start, end),
	}
}

// NewRead builds a read record, normalizing the coordinate pair.
func NewRead(strand, chrom string, start, end uint64) ReadRecord {
	return ReadRecord{
		Strand:   strand,
		Chrom:    chrom,
		Interval: interval.Normalize(start, end),
	}
}

// Limits controls token validation.
type Limits struct {
	// Strict rejects tokens longer than their capacity. When false only
	// empty strand/chromosome tokens are rejected.
	Strict bool
}

// ValidateGene checks the gene's tokens against the limits.
func (l Limits) ValidateGene(g GeneRecord) error {
	if err := l.check("gene", g.Name, MaxNameLen, false); err != nil {
		return err
	}
	if err := l.check("strand", g.Strand, MaxStrandLen, true); err != nil {
		return err
	}
	return l.check("chr", g.Chrom, MaxChromLen, true)
}

// ValidateRead checks the read's tokens against the limits.
func (l Limits) ValidateRead(r ReadRecord) error {
	if err := l.check("strand", r.Strand, MaxStrandLen, true); err != nil {
		return err
	}
	return l.check("chr", r.Chrom, MaxChromLen, true)
}

func (l Limits) check(field, v string, limit int, required bool) error {
	if required && v == "" {
		return fmt.Errorf("%s: %w", field, ErrEmptyToken)
	}
	if l.Strict && len(v) > limit {
		return fmt.Errorf("%s %q exceeds %d bytes: %w", field, v, limit, ErrTokenTooLong)
	}
	return nil
}

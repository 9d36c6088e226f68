package csvio

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/brentp/xopen"

	"github.com/inodb/vibe-intersect/internal/record"
)

// ResultColumns is the output header, in field order.
var ResultColumns = []string{"name", "strand", ColChrom, "intersections"}

// Writer writes gene results as CSV.
type Writer struct {
	w      *csv.Writer
	closer io.Closer
}

// NewWriter creates a CSV result writer on w.
func NewWriter(w io.Writer) *Writer {
	return &Writer{w: csv.NewWriter(w)}
}

// Create opens path for writing. A .gz suffix compresses the output and "-"
// writes to stdout.
func Create(path string) (*Writer, error) {
	f, err := xopen.Wopen(path)
	if err != nil {
		return nil, fmt.Errorf("create output file: %w", err)
	}
	return &Writer{w: csv.NewWriter(f), closer: f}, nil
}

// WriteHeader writes the header line.
func (cw *Writer) WriteHeader() error {
	return cw.w.Write(ResultColumns)
}

// Write writes a single result row.
func (cw *Writer) Write(r record.GeneResult) error {
	return cw.w.Write([]string{
		r.Name,
		r.Strand,
		r.Chrom,
		strconv.FormatUint(r.Intersections, 10),
	})
}

// WriteResults writes the header and all results, then flushes.
func (cw *Writer) WriteResults(results []record.GeneResult) error {
	if err := cw.WriteHeader(); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	for _, r := range results {
		if err := cw.Write(r); err != nil {
			return fmt.Errorf("write result %s: %w", r.Name, err)
		}
	}
	return cw.Flush()
}

// Flush flushes any buffered data to the underlying writer.
func (cw *Writer) Flush() error {
	cw.w.Flush()
	return cw.w.Error()
}

// Close flushes and closes the underlying file, if Create opened one.
func (cw *Writer) Close() error {
	if err := cw.Flush(); err != nil {
		if cw.closer != nil {
			cw.closer.Close()
		}
		return err
	}
	if cw.closer == nil {
		return nil
	}
	return cw.closer.Close()
}

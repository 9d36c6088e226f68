package duckdb

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"fmt"

	goduckdb "github.com/marcboeker/go-duckdb"

	"github.com/inodb/vibe-intersect/internal/record"
)

// WriteResults replaces the stored gene results with results, keyed by their
// position in the slice.
func (s *Store) WriteResults(results []record.GeneResult) error {
	if err := s.ClearResults(); err != nil {
		return fmt.Errorf("clear gene results: %w", err)
	}
	if len(results) == 0 {
		return nil
	}

	conn, err := s.db.Conn(context.Background())
	if err != nil {
		return fmt.Errorf("get connection: %w", err)
	}
	defer conn.Close()

	var appender *goduckdb.Appender
	if err := conn.Raw(func(driverConn any) error {
		var err error
		appender, err = goduckdb.NewAppenderFromConn(driverConn.(driver.Conn), "", "gene_results")
		return err
	}); err != nil {
		return fmt.Errorf("create appender: %w", err)
	}
	defer appender.Close()

	for i, r := range results {
		if err := appender.AppendRow(uint64(i), r.Name, r.Strand, r.Chrom, r.Intersections); err != nil {
			return fmt.Errorf("append gene result: %w", err)
		}
	}

	return appender.Flush()
}

// ClearResults removes all stored gene results.
func (s *Store) ClearResults() error {
	_, err := s.db.Exec("DELETE FROM gene_results")
	return err
}

// Results returns all stored gene results in input order.
func (s *Store) Results() ([]record.GeneResult, error) {
	rows, err := s.db.Query(`SELECT name, strand, chr, intersections
		FROM gene_results ORDER BY seq`)
	if err != nil {
		return nil, fmt.Errorf("query gene results: %w", err)
	}
	defer rows.Close()

	return scanResults(rows)
}

// LookupGene returns the stored results for every gene with the given name.
func (s *Store) LookupGene(name string) ([]record.GeneResult, error) {
	rows, err := s.db.Query(`SELECT name, strand, chr, intersections
		FROM gene_results WHERE name=? ORDER BY seq`, name)
	if err != nil {
		return nil, fmt.Errorf("query gene: %w", err)
	}
	defer rows.Close()

	return scanResults(rows)
}

// TotalIntersections sums intersections over all stored results.
func (s *Store) TotalIntersections() (uint64, error) {
	var total uint64
	err := s.db.QueryRow(`SELECT CAST(COALESCE(SUM(intersections), 0) AS UBIGINT)
		FROM gene_results`).Scan(&total)
	if err != nil {
		return 0, fmt.Errorf("sum intersections: %w", err)
	}
	return total, nil
}

func scanResults(rows *sql.Rows) ([]record.GeneResult, error) {
	var results []record.GeneResult
	for rows.Next() {
		var r record.GeneResult
		if err := rows.Scan(&r.Name, &r.Strand, &r.Chrom, &r.Intersections); err != nil {
			return nil, fmt.Errorf("scan gene result: %w", err)
		}
		results = append(results, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate gene results: %w", err)
	}
	return results, nil
}

package pipeline

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/inodb/vibe-intersect/internal/duckdb"
	"github.com/inodb/vibe-intersect/internal/index"
	"github.com/inodb/vibe-intersect/internal/record"
)

const (
	scenarioGenes = "gene,strand,chr,start,end\nG1,+,chr1,100,200\n"
	scenarioReads = "strand,chr,left,right\n" +
		"+,chr1,150,160\n" +
		"-,chr1,150,160\n" +
		"+,chr2,150,160\n"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func testConfig(t *testing.T, genes, reads, output string) Config {
	t.Helper()
	dir := t.TempDir()
	return Config{
		GenesPath:    writeFile(t, dir, "genes.csv", genes),
		ReadsPath:    writeFile(t, dir, "reads.csv", reads),
		OutputPath:   filepath.Join(dir, output),
		StrictTokens: true,
		Logger:       zaptest.NewLogger(t),
	}
}

func TestRun_Scenario(t *testing.T) {
	cfg := testConfig(t, scenarioGenes, scenarioReads, "out.csv")

	s, err := Run(context.Background(), cfg)
	require.NoError(t, err)
	assert.Equal(t, uint64(1), s.Total)
	assert.Equal(t, 1, s.Genes)

	data, err := os.ReadFile(cfg.OutputPath)
	require.NoError(t, err)
	assert.Equal(t, "name,strand,chr,intersections\nG1,+,chr1,1\n", string(data))
}

func TestRun_BiogoIndex(t *testing.T) {
	cfg := testConfig(t, scenarioGenes, scenarioReads, "out.csv")
	cfg.Index = index.KindBiogo

	s, err := Run(context.Background(), cfg)
	require.NoError(t, err)
	assert.Equal(t, uint64(1), s.Total)
}

func TestRun_EmptyReads(t *testing.T) {
	cfg := testConfig(t, scenarioGenes, "strand,chr,left,right\n", "out.csv")

	s, err := Run(context.Background(), cfg)
	require.NoError(t, err)
	assert.Equal(t, uint64(0), s.Total)

	data, err := os.ReadFile(cfg.OutputPath)
	require.NoError(t, err)
	assert.Equal(t, "name,strand,chr,intersections\nG1,+,chr1,0\n", string(data))
}

func TestRun_EmptyGenes(t *testing.T) {
	cfg := testConfig(t, "gene,strand,chr,start,end\n", scenarioReads, "out.csv")

	s, err := Run(context.Background(), cfg)
	require.NoError(t, err)
	assert.Equal(t, 0, s.Genes)
}

func TestRun_Idempotent(t *testing.T) {
	genes := "gene,strand,chr,start,end\n" +
		"A,+,chr1,1,1000\n" +
		"B,-,chr1,500,1500\n" +
		"C,+,chr2,10,20\n"
	reads := "strand,chr,left,right\n" +
		"+,chr1,900,950\n" +
		"-,chr1,1000,1000\n" +
		"+,chr2,25,5\n" +
		"-,chr1,1600,1500\n"
	cfg := testConfig(t, genes, reads, "out.csv")

	_, err := Run(context.Background(), cfg)
	require.NoError(t, err)
	first, err := os.ReadFile(cfg.OutputPath)
	require.NoError(t, err)

	_, err = Run(context.Background(), cfg)
	require.NoError(t, err)
	second, err := os.ReadFile(cfg.OutputPath)
	require.NoError(t, err)

	assert.Equal(t, string(first), string(second))
	assert.Equal(t, "name,strand,chr,intersections\nA,+,chr1,1\nB,-,chr1,2\nC,+,chr2,1\n", string(first))
}

func TestRun_DuckDBOutput(t *testing.T) {
	cfg := testConfig(t, scenarioGenes, scenarioReads, "out.duckdb")

	_, err := Run(context.Background(), cfg)
	require.NoError(t, err)

	s, err := duckdb.Open(cfg.OutputPath)
	require.NoError(t, err)
	defer s.Close()

	results, err := s.Results()
	require.NoError(t, err)
	assert.Equal(t, []record.GeneResult{{Name: "G1", Strand: "+", Chrom: "chr1", Intersections: 1}}, results)
}

func TestRun_MissingInput(t *testing.T) {
	cfg := testConfig(t, scenarioGenes, scenarioReads, "out.csv")
	cfg.ReadsPath = filepath.Join(t.TempDir(), "missing.csv")

	_, err := Run(context.Background(), cfg)
	require.Error(t, err)

	_, statErr := os.Stat(cfg.OutputPath)
	assert.True(t, os.IsNotExist(statErr), "no partial output on failure")
}

func TestRun_MalformedRow(t *testing.T) {
	cfg := testConfig(t, scenarioGenes, "strand,chr,left,right\n+,chr1,x,2\n", "out.csv")

	_, err := Run(context.Background(), cfg)
	assert.Error(t, err)
}

func TestRun_Cancelled(t *testing.T) {
	cfg := testConfig(t, scenarioGenes, scenarioReads, "out.csv")
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := Run(ctx, cfg)
	assert.ErrorIs(t, err, context.Canceled)
}

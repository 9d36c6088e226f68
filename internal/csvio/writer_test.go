package csvio

import (
	"bytes"
	"io"
	"path/filepath"
	"testing"

	"github.com/brentp/xopen"
	"github.com/inodb/vibe-intersect/internal/record"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriter_WriteResults(t *testing.T) {
	var buf bytes.Buffer
	w := NewWriter(&buf)

	err := w.WriteResults([]record.GeneResult{
		{Name: "G1", Strand: "+", Chrom: "chr1", Intersections: 1},
		{Name: "G,2", Strand: "-", Chrom: "chr2", Intersections: 0},
	})
	require.NoError(t, err)

	assert.Equal(t, "name,strand,chr,intersections\n"+
		"G1,+,chr1,1\n"+
		"\"G,2\",-,chr2,0\n", buf.String())
}

func TestWriter_EmptyResults(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewWriter(&buf).WriteResults(nil))
	assert.Equal(t, "name,strand,chr,intersections\n", buf.String())
}

func TestCreate_GzipRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.csv.gz")
	w, err := Create(path)
	require.NoError(t, err)
	require.NoError(t, w.WriteResults([]record.GeneResult{
		{Name: "G1", Strand: "+", Chrom: "chr1", Intersections: 42},
	}))
	require.NoError(t, w.Close())

	r, err := xopen.Ropen(path)
	require.NoError(t, err)
	defer r.Close()
	data, err := io.ReadAll(r)
	require.NoError(t, err)
	assert.Equal(t, "name,strand,chr,intersections\nG1,+,chr1,42\n", string(data))
}

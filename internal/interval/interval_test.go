package interval

import (
	"math"
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalize_Ordered(t *testing.T) {
	assert.Equal(t, Interval{Start: 100, End: 200}, Normalize(100, 200))
}

func TestNormalize_Reversed(t *testing.T) {
	assert.Equal(t, Normalize(100, 200), Normalize(200, 100))
}

func TestNormalize_Point(t *testing.T) {
	iv := Normalize(42, 42)
	assert.Equal(t, uint64(42), iv.Start)
	assert.Equal(t, uint64(42), iv.End)
	assert.Equal(t, uint64(1), iv.Len())
}

func TestNormalize_Extremes(t *testing.T) {
	iv := Normalize(math.MaxUint64, 0)
	assert.Equal(t, uint64(0), iv.Start)
	assert.Equal(t, uint64(math.MaxUint64), iv.End)
}

func TestNormalize_Random(t *testing.T) {
	r := rand.New(rand.NewPCG(1, 2))
	for range 1000 {
		a, b := r.Uint64(), r.Uint64()
		iv := Normalize(a, b)
		assert.LessOrEqual(t, iv.Start, iv.End)
		got := map[uint64]bool{iv.Start: true, iv.End: true}
		want := map[uint64]bool{a: true, b: true}
		assert.Equal(t, want, got, "a=%d b=%d", a, b)
	}
}

func TestOverlaps(t *testing.T) {
	base := Interval{Start: 100, End: 200}

	assert.True(t, base.Overlaps(Interval{Start: 150, End: 160}), "contained")
	assert.True(t, base.Overlaps(Interval{Start: 50, End: 300}), "containing")
	assert.True(t, base.Overlaps(Interval{Start: 200, End: 250}), "touching end")
	assert.True(t, base.Overlaps(Interval{Start: 50, End: 100}), "touching start")
	assert.False(t, base.Overlaps(Interval{Start: 201, End: 250}), "after")
	assert.False(t, base.Overlaps(Interval{Start: 0, End: 99}), "before")
}

func TestOverlaps_Points(t *testing.T) {
	p := Interval{Start: 7, End: 7}
	assert.True(t, p.Overlaps(Interval{Start: 7, End: 7}))
	assert.False(t, p.Overlaps(Interval{Start: 8, End: 8}))
}

func TestContains(t *testing.T) {
	iv := Interval{Start: 10, End: 20}
	assert.True(t, iv.Contains(10))
	assert.True(t, iv.Contains(20))
	assert.False(t, iv.Contains(21))
	assert.Equal(t, "[10,20]", iv.String())
}

// Package interval provides the closed genomic coordinate range used by the
// index and the overlap counter.
package interval

import "fmt"

// Interval is a closed range [Start, End] on one chromosome's coordinate axis.
// Values built with Normalize always satisfy Start <= End.
type Interval struct {
	Start uint64
	End   uint64
}

// Normalize returns the interval spanned by a and b regardless of their order.
// Equal endpoints give a valid point interval.
func Normalize(a, b uint64) Interval {
	if a <= b {
		return Interval{Start: a, End: b}
	}
	return Interval{Start: b, End: a}
}

// Overlaps reports whether iv and o share at least one position.
// Touching endpoints count as overlap.
func (iv Interval) Overlaps(o Interval) bool {
	return iv.Start <= o.End && o.Start <= iv.End
}

// Contains returns true if pos lies within the interval (inclusive).
func (iv Interval) Contains(pos uint64) bool {
	return iv.Start <= pos && pos <= iv.End
}

// Len returns the number of positions covered.
func (iv Interval) Len() uint64 {
	return iv.End - iv.Start + 1
}

func (iv Interval) String() string {
	return fmt.Sprintf("[%d,%d]", iv.Start, iv.End)
}

// Package index provides static overlap indexes over read intervals.
// An index is built once and never modified, so queries may run
// concurrently from any number of goroutines.
package index

import (
	"fmt"

	"github.com/exascience/pargo/parallel"

	"github.com/inodb/vibe-intersect/internal/interval"
	"github.com/inodb/vibe-intersect/internal/record"
)

// Entry is one stored interval and the position of its read in the read
// collection.
type Entry struct {
	Range interval.Interval
	Value int
}

// Index answers boundary-inclusive overlap queries. Result order is
// unspecified.
type Index interface {
	// Query returns all entries overlapping q.
	Query(q interval.Interval) []Entry
	// Do calls fn for every entry overlapping q.
	Do(q interval.Interval, fn func(Entry))
	// Len returns the number of stored entries.
	Len() int
}

// Kind selects an index implementation.
type Kind string

const (
	// KindImplicit is an implicit augmented interval tree laid out over a
	// start-sorted slice.
	KindImplicit Kind = "implicit"
	// KindBiogo is a left-leaning red-black interval tree from biogo/store.
	KindBiogo Kind = "biogo"
)

// ParseKind converts a configuration string to a Kind.
func ParseKind(s string) (Kind, error) {
	switch k := Kind(s); k {
	case KindImplicit, KindBiogo:
		return k, nil
	case "":
		return KindImplicit, nil
	default:
		return "", fmt.Errorf("unknown index kind %q (want %s or %s)", s, KindImplicit, KindBiogo)
	}
}

// Build constructs an index of the given kind. The entries slice is not
// retained.
func Build(entries []Entry, kind Kind) (Index, error) {
	switch kind {
	case KindImplicit, "":
		return BuildTree(entries), nil
	case KindBiogo:
		t, err := BuildBiogoTree(entries)
		if err != nil {
			return nil, err
		}
		return t, nil
	default:
		return nil, fmt.Errorf("unknown index kind %q", kind)
	}
}

// FromReads returns one entry per read, valued by the read's position.
func FromReads(reads []record.ReadRecord) []Entry {
	entries := make([]Entry, len(reads))
	if len(reads) == 0 {
		return entries
	}
	parallel.Range(0, len(reads), 0, func(low, high int) {
		for i := low; i < high; i++ {
			entries[i] = Entry{Range: reads[i].Interval, Value: i}
		}
	})
	return entries
}

func collect(idx Index, q interval.Interval) []Entry {
	var out []Entry
	idx.Do(q, func(e Entry) {
		out = append(out, e)
	})
	return out
}

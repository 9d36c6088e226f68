package index

import (
	"fmt"
	"math"

	biogo "github.com/biogo/store/interval"

	"github.com/inodb/vibe-intersect/internal/interval"
)

// maxBiogoCoord is the largest coordinate a BiogoTree can hold; ranges are
// stored half-open as [Start, End+1) in int.
const maxBiogoCoord = math.MaxInt - 1

// Integer-specific intervals
type biogoInterval struct {
	entry Entry
	uid   uintptr
}

func (i biogoInterval) Overlap(b biogo.IntRange) bool {
	// Half-open interval indexing.
	r := i.Range()
	return r.End > b.Start && r.Start < b.End
}
func (i biogoInterval) ID() uintptr { return i.uid }
func (i biogoInterval) Range() biogo.IntRange {
	return biogo.IntRange{Start: int(i.entry.Range.Start), End: int(i.entry.Range.End) + 1}
}

type biogoQuery struct {
	start, end int
}

func (q biogoQuery) Overlap(b biogo.IntRange) bool {
	return q.end > b.Start && q.start < b.End
}

// BiogoTree wraps a biogo/store IntTree.
type BiogoTree struct {
	tree *biogo.IntTree
}

// BuildBiogoTree inserts all entries into a biogo IntTree. Coordinates above
// math.MaxInt-1 are rejected.
func BuildBiogoTree(entries []Entry) (*BiogoTree, error) {
	tree := &biogo.IntTree{}
	for i, e := range entries {
		if e.Range.End > maxBiogoCoord {
			return nil, fmt.Errorf("entry %d: end %d exceeds %d", i, e.Range.End, uint64(maxBiogoCoord))
		}
		if err := tree.Insert(biogoInterval{entry: e, uid: uintptr(i)}, true); err != nil {
			return nil, fmt.Errorf("insert entry %d: %w", i, err)
		}
	}
	tree.AdjustRanges()
	return &BiogoTree{tree: tree}, nil
}

// Len returns the number of stored entries.
func (t *BiogoTree) Len() int {
	return t.tree.Len()
}

// Query returns all entries overlapping q.
func (t *BiogoTree) Query(q interval.Interval) []Entry {
	return collect(t, q)
}

// Do calls fn for every entry overlapping q.
func (t *BiogoTree) Do(q interval.Interval, fn func(Entry)) {
	if t.tree.Len() == 0 || q.Start > maxBiogoCoord {
		return
	}
	end := q.End
	if end > maxBiogoCoord {
		end = maxBiogoCoord
	}
	t.tree.DoMatching(func(iv biogo.IntInterface) bool {
		fn(iv.(biogoInterval).entry)
		return false
	}, biogoQuery{start: int(q.Start), end: int(end) + 1})
}

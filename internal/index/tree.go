package index

import "github.com/inodb/vibe-intersect/internal/interval"

// Tree provides O(log n + k) overlap queries over a start-sorted slice.
// The slice doubles as an implicit balanced binary tree: the node at index i
// sits at level equal to the number of trailing one bits of i, and maxEnd[i]
// holds the largest End in that node's subtree.
type Tree struct {
	entries   []Entry
	maxEnd    []uint64
	rootLevel int
}

// scanLevel is the subtree height below which nodes are scanned linearly.
const scanLevel = 3

// BuildTree creates a tree from a slice of entries.
func BuildTree(entries []Entry) *Tree {
	if len(entries) == 0 {
		return &Tree{}
	}

	sorted := make([]Entry, len(entries))
	copy(sorted, entries)
	sortByStart(sorted)

	n := len(sorted)
	maxEnd := make([]uint64, n)

	// Leaves sit at even indices.
	var lastIdx int
	var last uint64
	for i := 0; i < n; i += 2 {
		lastIdx, last = i, sorted[i].Range.End
		maxEnd[i] = last
	}

	// Fill internal nodes bottom-up. Right children past the end of the
	// slice take the running max of the rightmost real subtree.
	k := 1
	for ; 1<<k <= n; k++ {
		x := 1 << (k - 1)
		step := x << 2
		for i := x<<1 - 1; i < n; i += step {
			e := sorted[i].Range.End
			if el := maxEnd[i-x]; el > e {
				e = el
			}
			er := last
			if i+x < n {
				er = maxEnd[i+x]
			}
			if er > e {
				e = er
			}
			maxEnd[i] = e
		}
		if (lastIdx>>k)&1 == 1 {
			lastIdx -= x
		} else {
			lastIdx += x
		}
		if lastIdx < n && maxEnd[lastIdx] > last {
			last = maxEnd[lastIdx]
		}
	}

	return &Tree{entries: sorted, maxEnd: maxEnd, rootLevel: k - 1}
}

// Len returns the number of stored entries.
func (t *Tree) Len() int {
	return len(t.entries)
}

// Query returns all entries overlapping q.
func (t *Tree) Query(q interval.Interval) []Entry {
	return collect(t, q)
}

type frame struct {
	x, k     int
	leftDone bool
}

// Do calls fn for every entry overlapping q, in start order.
func (t *Tree) Do(q interval.Interval, fn func(Entry)) {
	n := len(t.entries)
	if n == 0 {
		return
	}

	var stack [128]frame
	sp := 0
	stack[sp] = frame{x: 1<<t.rootLevel - 1, k: t.rootLevel}
	sp++

	for sp > 0 {
		sp--
		z := stack[sp]

		switch {
		case z.k <= scanLevel:
			// Small subtree: scan its index range directly.
			lo := z.x >> z.k << z.k
			hi := lo + 1<<(z.k+1) - 1
			if hi > n {
				hi = n
			}
			for i := lo; i < hi && t.entries[i].Range.Start <= q.End; i++ {
				if q.Start <= t.entries[i].Range.End {
					fn(t.entries[i])
				}
			}
		case !z.leftDone:
			stack[sp] = frame{x: z.x, k: z.k, leftDone: true}
			sp++
			// The left child may lie past the end; it still has real
			// descendants in that case.
			y := z.x - 1<<(z.k-1)
			if y >= n || t.maxEnd[y] >= q.Start {
				stack[sp] = frame{x: y, k: z.k - 1}
				sp++
			}
		case z.x < n && t.entries[z.x].Range.Start <= q.End:
			if q.Start <= t.entries[z.x].Range.End {
				fn(t.entries[z.x])
			}
			stack[sp] = frame{x: z.x + 1<<(z.k-1), k: z.k - 1}
			sp++
		}
	}
}

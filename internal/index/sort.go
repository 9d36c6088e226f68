package index

import (
	"sort"

	psort "github.com/exascience/pargo/sort"
)

type entrySorter []Entry

func (s entrySorter) SequentialSort(i, j int) {
	part := s[i:j]
	sort.SliceStable(part, func(a, b int) bool {
		return part[a].Range.Start < part[b].Range.Start
	})
}

func (s entrySorter) NewTemp() psort.StableSorter {
	return entrySorter(make([]Entry, len(s)))
}

func (s entrySorter) Len() int {
	return len(s)
}

func (s entrySorter) Less(i, j int) bool {
	return s[i].Range.Start < s[j].Range.Start
}

func (s entrySorter) Assign(source psort.StableSorter) func(i, j, len int) {
	dst, src := s, source.(entrySorter)
	return func(i, j, len int) {
		copy(dst[i:i+len], src[j:j+len])
	}
}

// sortByStart sorts entries by Start using a parallel stable sort.
func sortByStart(entries []Entry) {
	psort.StableSort(entrySorter(entries))
}

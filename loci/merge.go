package loci

import (
	"sort"

	"github.com/carbocation/indeploci/chrpos"
)

// Merge collapses loci that overlap on the same chromosome. Loci whose
// boundaries touch (one ends where the next starts) are merged as well. Each
// merged locus spans its members and carries the lead of its most
// significant member; among equally significant members the one that sorts
// first in genomic order wins.
//
// The output is in genomic order and no two rows overlap, so merging it a
// second time returns it unchanged.
func Merge(in []Locus) []Locus {
	sorted := make([]Locus, len(in))
	copy(sorted, in)
	sort.SliceStable(sorted, func(i, j int) bool {
		a, b := sorted[i], sorted[j]
		if a.Chromosome != b.Chromosome {
			return chrpos.Less(a.Chromosome, b.Chromosome)
		}
		if a.Start != b.Start {
			return a.Start < b.Start
		}
		return a.End < b.End
	})

	out := make([]Locus, 0)

	var (
		current Locus // Accumulated span of the open group
		best    Locus // Most significant member of the open group
		maxEnd  int   // Largest end seen on the current chromosome
	)
	for i, l := range sorted {
		newGroup := i == 0 ||
			l.Chromosome != sorted[i-1].Chromosome ||
			l.Start > maxEnd

		if newGroup {
			if i > 0 {
				out = append(out, closeGroup(current, best))
			}
			current = l
			best = l
			maxEnd = l.End
			continue
		}

		if l.End > maxEnd {
			maxEnd = l.End
		}
		if l.Start < current.Start {
			current.Start = l.Start
		}
		if l.End > current.End {
			current.End = l.End
		}
		if l.LeadP < best.LeadP {
			best = l
		}
	}
	if len(sorted) > 0 {
		out = append(out, closeGroup(current, best))
	}

	return out
}

func closeGroup(span, best Locus) Locus {
	best.Start = span.Start
	best.End = span.End
	return best
}

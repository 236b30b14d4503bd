package loci

import (
	"fmt"

	"github.com/biogo/store/interval"
	"github.com/montanaflynn/stats"
)

// Summary describes a finished set of loci.
type Summary struct {
	Loci          int
	MedianSpan    float64
	MaxSpan       float64
	Markers       int
	MarkersInLoci int
}

func (s Summary) String() string {
	return fmt.Sprintf("%d loci (median span %.0f bp, max span %.0f bp); %d of %d markers fall within a locus",
		s.Loci, s.MedianSpan, s.MaxSpan, s.MarkersInLoci, s.Markers)
}

// Summarize reports locus spans and how many of the input markers are covered
// by at least one locus.
func Summarize(ls []Locus, markers []Marker) (Summary, error) {
	out := Summary{
		Loci:    len(ls),
		Markers: len(markers),
	}

	if len(ls) == 0 {
		return out, nil
	}

	spans := make(stats.Float64Data, 0, len(ls))
	for _, l := range ls {
		spans = append(spans, float64(l.Span()))
	}

	var err error
	if out.MedianSpan, err = spans.Median(); err != nil {
		return out, err
	}
	if out.MaxSpan, err = spans.Max(); err != nil {
		return out, err
	}

	trees, err := buildTrees(ls)
	if err != nil {
		return out, err
	}

	for _, m := range markers {
		tree, exists := trees[m.Chromosome]
		if !exists {
			continue
		}
		if len(tree.Get(position(m.Position))) > 0 {
			out.MarkersInLoci++
		}
	}

	return out, nil
}

func buildTrees(ls []Locus) (map[string]*interval.IntTree, error) {
	trees := make(map[string]*interval.IntTree)
	for i, l := range ls {
		tree, exists := trees[l.Chromosome]
		if !exists {
			tree = &interval.IntTree{}
			trees[l.Chromosome] = tree
		}
		if err := tree.Insert(locusInterval{id: uintptr(i), start: l.Start, end: l.End}, true); err != nil {
			return nil, fmt.Errorf("indexing locus %s: %w", l, err)
		}
	}

	for _, tree := range trees {
		tree.AdjustRanges()
	}

	return trees, nil
}

// locusInterval stores the closed locus [start, end] as the half-open range
// [start, end+1) used by the interval tree.
type locusInterval struct {
	id         uintptr
	start, end int
}

func (l locusInterval) Overlap(b interval.IntRange) bool {
	return l.start < b.End && l.end+1 > b.Start
}

func (l locusInterval) ID() uintptr { return l.id }

func (l locusInterval) Range() interval.IntRange {
	return interval.IntRange{Start: l.start, End: l.end + 1}
}

// position is a single-base query against the tree.
type position int

func (p position) Overlap(b interval.IntRange) bool {
	return b.Start <= int(p) && int(p) < b.End
}

func (p position) ID() uintptr { return 0 }

func (p position) Range() interval.IntRange {
	return interval.IntRange{Start: int(p), End: int(p) + 1}
}

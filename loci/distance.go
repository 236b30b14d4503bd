package loci

import (
	"context"
	"fmt"
	"sort"
)

// DistanceSelector keeps the most significant marker in every window of
// Distance bases on either side, greedily.
type DistanceSelector struct {
	Distance int
}

func (DistanceSelector) Method() Method { return MethodDistance }

// Select repeatedly promotes the most significant remaining marker to a lead
// and discards every remaining marker on the same chromosome within
// [pos-Distance, pos+Distance]. A marker survives exactly when no earlier lead
// on its chromosome is that close, so this is done in a single pass over the
// markers in p-value order. Equal p-values keep their input order.
//
// Leads are returned in the order they were promoted.
func (s DistanceSelector) Select(ctx context.Context, markers []Marker) ([]Marker, error) {
	if s.Distance <= 0 {
		return nil, &ValidationError{Field: "distance", Reason: fmt.Sprintf("must be positive, got %d", s.Distance)}
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	sorted := make([]Marker, len(markers))
	copy(sorted, markers)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].P < sorted[j].P })

	// Lead positions per chromosome, kept in ascending order
	leadPositions := make(map[string][]int)

	leads := make([]Marker, 0)
	for _, m := range sorted {
		positions := leadPositions[m.Chromosome]

		i := sort.SearchInts(positions, m.Position-s.Distance)
		if i < len(positions) && positions[i] <= m.Position+s.Distance {
			continue
		}

		positions = append(positions, 0)
		copy(positions[i+1:], positions[i:])
		positions[i] = m.Position
		leadPositions[m.Chromosome] = positions

		leads = append(leads, m)
	}

	return leads, nil
}

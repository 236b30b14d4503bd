package loci

import (
	"fmt"
	"strconv"
)

// Expand converts every lead marker into a locus reaching rangeBP bases on
// either side of it. Starts are clamped at zero. Leads without an identifier
// are given the chr-pos form.
func Expand(leads []Marker, rangeBP int) ([]Locus, error) {
	if rangeBP < 0 {
		return nil, &ValidationError{Field: "range", Reason: fmt.Sprintf("must not be negative, got %d", rangeBP)}
	}

	out := make([]Locus, 0, len(leads))
	for _, m := range leads {
		id := m.SNPID
		if id == "" {
			id = m.Chromosome + "-" + strconv.Itoa(m.Position)
		}

		start := m.Position - rangeBP
		if start < 0 {
			start = 0
		}

		out = append(out, Locus{
			Chromosome:   m.Chromosome,
			Start:        start,
			End:          m.Position + rangeBP,
			LeadSNP:      id,
			LeadP:        m.P,
			LeadPosition: m.Position,
		})
	}

	return out, nil
}

package sumstats

import (
	"log"
	"sort"
	"strconv"
	"strings"

	"github.com/carbocation/indeploci/loci"
)

// UniqueID builds the chr-pos-a1-a2 identifier of a marker, with the two
// alleles upper-cased and in lexical order so that swapping effect and
// other allele gives the same identifier. Without alleles it is chr-pos.
func UniqueID(m loci.Marker) string {
	base := m.Chromosome + "-" + strconv.Itoa(m.Position)
	if m.EffectAllele == "" || m.OtherAllele == "" {
		return base
	}

	a1, a2 := strings.ToUpper(m.EffectAllele), strings.ToUpper(m.OtherAllele)
	if a2 < a1 {
		a1, a2 = a2, a1
	}

	return base + "-" + a1 + "-" + a2
}

// NormalizeSNPIDs assigns every marker its UniqueID. With keepExisting, a
// marker that already carries an identifier keeps it. When two markers end
// up with the same identifier only the more significant one is kept (the
// earlier one on ties). Input order is otherwise preserved.
func NormalizeSNPIDs(markers []loci.Marker, keepExisting bool) []loci.Marker {
	withIDs := make([]loci.Marker, len(markers))
	for i, m := range markers {
		if !keepExisting || m.SNPID == "" {
			m.SNPID = UniqueID(m)
		}
		withIDs[i] = m
	}

	return dropDuplicateIDs(withIDs)
}

// NormalizeRows converts parsed rows to markers the way NormalizeSNPIDs
// does. With keepExisting, only rows whose identifier column held a value
// keep it; rows where the column was absent, empty or "." get a UniqueID.
func NormalizeRows(rows []Row, keepExisting bool) []loci.Marker {
	withIDs := make([]loci.Marker, len(rows))
	for i, row := range rows {
		m := row.Marker()
		if keepExisting && row.SNPID.Valid {
			m.SNPID = row.SNPID.String
		} else {
			m.SNPID = UniqueID(m)
		}
		withIDs[i] = m
	}

	return dropDuplicateIDs(withIDs)
}

// dropDuplicateIDs keeps the most significant marker per identifier,
// preserving input order. withIDs is reused.
func dropDuplicateIDs(withIDs []loci.Marker) []loci.Marker {
	order := make([]int, len(withIDs))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(i, j int) bool { return withIDs[order[i]].P < withIDs[order[j]].P })

	keep := make([]bool, len(withIDs))
	seen := make(map[string]struct{}, len(withIDs))
	for _, i := range order {
		if _, exists := seen[withIDs[i].SNPID]; exists {
			continue
		}
		seen[withIDs[i].SNPID] = struct{}{}
		keep[i] = true
	}

	out := make([]loci.Marker, 0, len(seen))
	for i, m := range withIDs {
		if keep[i] {
			out = append(out, m)
		}
	}

	if dropped := len(withIDs) - len(out); dropped > 0 {
		log.Printf("Dropped %d markers with duplicated identifiers\n", dropped)
	}

	return out
}

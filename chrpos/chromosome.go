// Package chrpos normalizes chromosome tokens and defines the genomic order
// used whenever markers or loci are sorted.
package chrpos

import (
	"sort"
	"strconv"
	"strings"
)

// Rank of the named sex and mitochondrial chromosomes, placed after the
// autosomes.
var named = map[string]int{
	"X":  1,
	"Y":  2,
	"XY": 3,
	"MT": 4,
}

// Numeric codes used by plink for the non-autosomal chromosomes.
var plinkCodes = map[string]string{
	"23": "X",
	"24": "Y",
	"25": "XY",
	"26": "MT",
	"M":  "MT",
}

// Normalize strips a "chr" prefix (any case), upper-cases letters and maps
// the plink numeric codes 23-26 onto X, Y, XY and MT. Leading zeros on
// autosome numbers are removed so that "01" and "1" are the same chromosome.
func Normalize(chrom string) string {
	c := strings.TrimSpace(chrom)
	if len(c) > 3 && strings.EqualFold(c[:3], "chr") {
		c = c[3:]
	}
	c = strings.ToUpper(c)

	if n, err := strconv.Atoi(c); err == nil && n >= 0 {
		c = strconv.Itoa(n)
	}

	if mapped, exists := plinkCodes[c]; exists {
		return mapped
	}

	return c
}

// Less reports whether chromosome a sorts before chromosome b. Autosomes are
// ordered numerically, followed by X, Y, XY and MT, followed by any other
// token in lexical order. Inputs are expected to be normalized.
func Less(a, b string) bool {
	ka, kb := key(a), key(b)
	if ka.class != kb.class {
		return ka.class < kb.class
	}
	if ka.rank != kb.rank {
		return ka.rank < kb.rank
	}

	return a < b
}

type sortKey struct {
	class int
	rank  int
}

func key(chrom string) sortKey {
	if n, err := strconv.Atoi(chrom); err == nil {
		return sortKey{class: 0, rank: n}
	}
	if rank, exists := named[chrom]; exists {
		return sortKey{class: 1, rank: rank}
	}

	return sortKey{class: 2}
}

// Sorted returns the distinct chromosomes in genomic order.
func Sorted(chroms []string) []string {
	seen := make(map[string]struct{}, len(chroms))
	out := make([]string, 0, len(chroms))
	for _, c := range chroms {
		if _, exists := seen[c]; exists {
			continue
		}
		seen[c] = struct{}{}
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return Less(out[i], out[j]) })

	return out
}

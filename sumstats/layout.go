package sumstats

import (
	"fmt"
	"sort"
	"strings"
)

// Layout maps the columns of a summary statistics file onto marker fields.
// Optional columns that are absent are set to -1.
type Layout struct {
	Delimiter       rune // 0 means detect from the data
	Comment         rune
	HasHeader       bool
	ColChromosome   int
	ColPosition     int
	ColP            int
	PIsNegLog10     bool // The P column holds -log10(P), as REGENIE writes it
	ColSNPID        int
	ColEffectAllele int
	ColOtherAllele  int
}

// Layouts holds the fixed-order formats of common association tools.
var Layouts = map[string]Layout{
	// SNP CHR BP GENPOS ALLELE1 ALLELE0 A1FREQ INFO CHISQ_LINREG P_LINREG BETA
	// SE CHISQ_BOLT_LMM_INF P_BOLT_LMM_INF CHISQ_BOLT_LMM P_BOLT_LMM
	"BOLT": {
		Delimiter:       '\t',
		Comment:         '#',
		HasHeader:       true,
		ColChromosome:   1,
		ColPosition:     2,
		ColP:            15,
		ColSNPID:        0,
		ColEffectAllele: 4,
		ColOtherAllele:  5,
	},
	// CHROM GENPOS ID ALLELE0 ALLELE1 A1FREQ INFO N TEST BETA SE CHISQ LOG10P
	"REGENIE": {
		Delimiter:       ' ',
		Comment:         '#',
		HasHeader:       true,
		ColChromosome:   0,
		ColPosition:     1,
		ColP:            12,
		PIsNegLog10:     true,
		ColSNPID:        2,
		ColEffectAllele: 4,
		ColOtherAllele:  3,
	},
	// CHR POS SNPID . Allele1 Allele2 . AF_Allele2 ... p.value
	"SAIGE": {
		Delimiter:       ' ',
		Comment:         '#',
		HasHeader:       true,
		ColChromosome:   0,
		ColPosition:     1,
		ColP:            13,
		ColSNPID:        2,
		ColEffectAllele: 5,
		ColOtherAllele:  4,
	},
	// CHR BP P SNPID EA NEA
	"GENERIC": {
		Delimiter:       '\t',
		Comment:         '#',
		HasHeader:       true,
		ColChromosome:   0,
		ColPosition:     1,
		ColP:            2,
		ColSNPID:        3,
		ColEffectAllele: 4,
		ColOtherAllele:  5,
	},
}

// AutoLayout is the name under which the layout is derived from the header.
const AutoLayout = "AUTO"

// LayoutNames lists the accepted layout names in a stable order.
func LayoutNames() string {
	names := make([]string, 0, len(Layouts)+1)
	for name := range Layouts {
		names = append(names, name)
	}
	sort.Strings(names)

	return strings.Join(append([]string{AutoLayout}, names...), ", ")
}

// Header aliases, in order of preference.
var (
	chromosomeAliases = []string{"CHR", "CHROM", "#CHROM", "CHROMOSOME"}
	positionAliases   = []string{"BP", "POS", "POSITION", "BASE_PAIR_LOCATION", "GENPOS"}
	pAliases          = []string{"P", "PVAL", "PVALUE", "P_VALUE", "P.VALUE", "P_BOLT_LMM"}
	negLog10PAliases  = []string{"LOG10P", "MLOG10P", "NEG_LOG10_P"}
	snpIDAliases      = []string{"SNPID", "SNP", "ID", "RSID", "MARKERID", "VARIANT_ID"}
	effectAliases     = []string{"EA", "ALLELE1", "A1", "EFFECT_ALLELE"}
	otherAliases      = []string{"NEA", "ALLELE0", "A2", "OTHER_ALLELE", "ALLELE2"}
)

// LayoutFromHeader derives a layout from the column names of a header row.
// Chromosome, position and p-value (or -log10 p-value) columns are required.
func LayoutFromHeader(header []string, delimiter rune) (Layout, error) {
	index := make(map[string]int, len(header))
	for i, name := range header {
		key := strings.ToUpper(strings.TrimSpace(name))
		if _, exists := index[key]; !exists {
			index[key] = i
		}
	}

	find := func(aliases []string) int {
		for _, alias := range aliases {
			if i, exists := index[alias]; exists {
				return i
			}
		}
		return -1
	}

	l := Layout{
		Delimiter:       delimiter,
		Comment:         '#',
		HasHeader:       true,
		ColChromosome:   find(chromosomeAliases),
		ColPosition:     find(positionAliases),
		ColP:            find(pAliases),
		ColSNPID:        find(snpIDAliases),
		ColEffectAllele: find(effectAliases),
		ColOtherAllele:  find(otherAliases),
	}

	if l.ColP < 0 {
		if l.ColP = find(negLog10PAliases); l.ColP >= 0 {
			l.PIsNegLog10 = true
		}
	}

	missing := make([]string, 0)
	if l.ColChromosome < 0 {
		missing = append(missing, "chromosome")
	}
	if l.ColPosition < 0 {
		missing = append(missing, "position")
	}
	if l.ColP < 0 {
		missing = append(missing, "p-value")
	}
	if len(missing) > 0 {
		return l, fmt.Errorf("header %v has no %s column", header, strings.Join(missing, ", "))
	}

	return l, nil
}

func (l Layout) minColumns() int {
	max := 0
	for _, c := range []int{l.ColChromosome, l.ColPosition, l.ColP, l.ColSNPID, l.ColEffectAllele, l.ColOtherAllele} {
		if c > max {
			max = c
		}
	}

	return max + 1
}

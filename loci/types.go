package loci

import "fmt"

// Marker is one significant variant from a summary statistics table.
type Marker struct {
	Chromosome   string // Normalized with chrpos.Normalize
	Position     int
	P            float64
	SNPID        string // May be empty until the identifier is normalized
	EffectAllele string
	OtherAllele  string
}

func (m Marker) String() string {
	return fmt.Sprintf("%s:%d", m.Chromosome, m.Position)
}

// Locus is a closed genomic interval anchored on a lead marker.
type Locus struct {
	Chromosome   string
	Start        int
	End          int
	LeadSNP      string
	LeadP        float64
	LeadPosition int
}

func (l Locus) String() string {
	return fmt.Sprintf("%s:%d-%d (%s)", l.Chromosome, l.Start, l.End, l.LeadSNP)
}

// Span is the number of bases covered by the locus.
func (l Locus) Span() int {
	return l.End - l.Start + 1
}

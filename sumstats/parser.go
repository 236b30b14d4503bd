package sumstats

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/carbocation/indeploci/chrpos"
	"github.com/carbocation/indeploci/loci"
	"gopkg.in/guregu/null.v3"
)

// Row is one parsed line of a summary statistics file.
type Row struct {
	Chromosome   string
	Position     int
	P            float64
	SNPID        null.String // Invalid when the layout has no identifier column
	EffectAllele string
	OtherAllele  string
}

// Marker converts the row into the record consumed by the loci package.
func (r Row) Marker() loci.Marker {
	return loci.Marker{
		Chromosome:   r.Chromosome,
		Position:     r.Position,
		P:            r.P,
		SNPID:        r.SNPID.ValueOrZero(),
		EffectAllele: r.EffectAllele,
		OtherAllele:  r.OtherAllele,
	}
}

type Parser struct {
	Layout Layout
}

// New returns a parser for one of the named Layouts.
func New(layout string) (*Parser, error) {
	l, exists := Layouts[strings.ToUpper(layout)]
	if !exists {
		return nil, fmt.Errorf("Layout %s is not found. Valid layout names include: %s", layout, LayoutNames())
	}

	return NewWithLayout(l), nil
}

func NewWithLayout(layout Layout) *Parser {
	return &Parser{Layout: layout}
}

// ParseRow extracts a row. The chromosome is normalized and the p-value is
// checked to lie in (0, 1].
func (p *Parser) ParseRow(row []string) (Row, error) {
	out := Row{}
	l := p.Layout

	if len(row) < l.minColumns() {
		return out, &loci.ValidationError{Field: "row", Reason: fmt.Sprintf("expected at least %d columns, found %d", l.minColumns(), len(row))}
	}

	out.Chromosome = chrpos.Normalize(row[l.ColChromosome])
	if out.Chromosome == "" {
		return out, &loci.ValidationError{Field: "chromosome", Reason: "empty"}
	}

	pos, err := strconv.Atoi(strings.TrimSpace(row[l.ColPosition]))
	if err != nil {
		return out, &loci.ValidationError{Field: "position", Reason: err.Error()}
	}
	if pos < 0 {
		return out, &loci.ValidationError{Field: "position", Reason: fmt.Sprintf("%d is negative", pos)}
	}
	out.Position = pos

	pval, err := strconv.ParseFloat(strings.TrimSpace(row[l.ColP]), 64)
	if err != nil {
		return out, &loci.ValidationError{Field: "p-value", Reason: err.Error()}
	}
	if l.PIsNegLog10 {
		pval = math.Pow(10, -pval)
	}
	if math.IsNaN(pval) || pval <= 0 || pval > 1 {
		return out, &loci.ValidationError{Field: "p-value", Reason: fmt.Sprintf("%v is outside (0,1]", pval)}
	}
	out.P = pval

	if l.ColSNPID >= 0 {
		if id := strings.TrimSpace(row[l.ColSNPID]); id != "" && id != "." {
			out.SNPID = null.StringFrom(id)
		}
	}
	if l.ColEffectAllele >= 0 {
		out.EffectAllele = strings.TrimSpace(row[l.ColEffectAllele])
	}
	if l.ColOtherAllele >= 0 {
		out.OtherAllele = strings.TrimSpace(row[l.ColOtherAllele])
	}

	return out, nil
}

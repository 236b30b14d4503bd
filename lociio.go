package indeploci

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/carbocation/indeploci/chrpos"
	"github.com/carbocation/indeploci/loci"
	"github.com/carbocation/pfx"
	"github.com/gocarina/gocsv"
)

// PValue is written in the shortest form that round trips, so that very
// small p-values stay in exponent notation.
type PValue float64

func (p PValue) MarshalCSV() (string, error) {
	return strconv.FormatFloat(float64(p), 'g', -1, 64), nil
}

func (p *PValue) UnmarshalCSV(s string) error {
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return err
	}
	*p = PValue(v)
	return nil
}

// LociRow is the on-disk form of a locus.
type LociRow struct {
	Chromosome   string `csv:"CHR"`
	Start        int    `csv:"START"`
	End          int    `csv:"END"`
	LeadSNP      string `csv:"LEAD_SNP"`
	LeadP        PValue `csv:"LEAD_SNP_P"`
	LeadPosition int    `csv:"LEAD_SNP_BP"`
}

// WriteLoci writes a tab-delimited loci table with a header row.
func WriteLoci(w io.Writer, ls []loci.Locus) error {
	rows := make([]*LociRow, 0, len(ls))
	for _, l := range ls {
		rows = append(rows, &LociRow{
			Chromosome:   l.Chromosome,
			Start:        l.Start,
			End:          l.End,
			LeadSNP:      l.LeadSNP,
			LeadP:        PValue(l.LeadP),
			LeadPosition: l.LeadPosition,
		})
	}

	cw := csv.NewWriter(w)
	cw.Comma = '\t'
	if err := gocsv.MarshalCSV(&rows, gocsv.NewSafeCSVWriter(cw)); err != nil {
		return pfx.Err(err)
	}
	cw.Flush()

	return pfx.Err(cw.Error())
}

// ReadLoci reads a table written by WriteLoci. Chromosomes are normalized.
func ReadLoci(r io.Reader) ([]loci.Locus, error) {
	cr := csv.NewReader(r)
	cr.Comma = '\t'
	cr.Comment = '#'

	rows := make([]*LociRow, 0)
	if err := gocsv.UnmarshalCSV(cr, &rows); err != nil {
		return nil, pfx.Err(err)
	}

	out := make([]loci.Locus, 0, len(rows))
	for i, row := range rows {
		if row.Start < 0 || row.End < row.Start {
			return nil, &loci.ValidationError{Field: "locus", Reason: fmt.Sprintf("row %d has start %d and end %d", i+1, row.Start, row.End)}
		}

		out = append(out, loci.Locus{
			Chromosome:   chrpos.Normalize(row.Chromosome),
			Start:        row.Start,
			End:          row.End,
			LeadSNP:      row.LeadSNP,
			LeadP:        float64(row.LeadP),
			LeadPosition: row.LeadPosition,
		})
	}

	return out, nil
}

package indeploci

import (
	"bytes"
	"errors"
	"reflect"
	"strings"
	"testing"

	"github.com/carbocation/indeploci/loci"
)

func TestWriteReadLoci(t *testing.T) {
	in := []loci.Locus{
		{Chromosome: "1", Start: 0, End: 600, LeadSNP: "rs1", LeadP: 1e-5, LeadPosition: 100},
		{Chromosome: "X", Start: 100, End: 600, LeadSNP: "X-100", LeadP: 2.5e-300, LeadPosition: 100},
	}

	var buf bytes.Buffer
	if err := WriteLoci(&buf, in); err != nil {
		t.Fatal(err)
	}

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if lines[0] != "CHR\tSTART\tEND\tLEAD_SNP\tLEAD_SNP_P\tLEAD_SNP_BP" {
		t.Errorf("Unexpected header %q", lines[0])
	}
	if lines[1] != "1\t0\t600\trs1\t1e-05\t100" {
		t.Errorf("Unexpected row %q", lines[1])
	}

	out, err := ReadLoci(&buf)
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(in, out) {
		t.Errorf("Round trip changed the loci:\n%v\n%v", in, out)
	}
}

func TestMergeFromFileIsIdempotent(t *testing.T) {
	table := "CHR\tSTART\tEND\tLEAD_SNP\tLEAD_SNP_P\tLEAD_SNP_BP\n" +
		"chr2\t100\t200\trs6\t1e-5\t100\n" +
		"chr2\t150\t300\trs7\t1e-4\t200\n" +
		"1\t100\t200\trs1\t1e-3\t150\n"

	ls, err := ReadLoci(strings.NewReader(table))
	if err != nil {
		t.Fatal(err)
	}
	merged := loci.Merge(ls)

	var buf bytes.Buffer
	if err := WriteLoci(&buf, merged); err != nil {
		t.Fatal(err)
	}
	reread, err := ReadLoci(&buf)
	if err != nil {
		t.Fatal(err)
	}

	if again := loci.Merge(reread); !reflect.DeepEqual(again, merged) {
		t.Errorf("Re-merging changed the table:\n%v\n%v", merged, again)
	}
	if len(merged) != 2 || merged[0].Chromosome != "1" || merged[1].End != 300 {
		t.Errorf("Unexpected merge result %v", merged)
	}
}

func TestReadLociRejectsInvertedRows(t *testing.T) {
	table := "CHR\tSTART\tEND\tLEAD_SNP\tLEAD_SNP_P\tLEAD_SNP_BP\n1\t300\t200\trs1\t0.1\t250\n"

	_, err := ReadLoci(strings.NewReader(table))
	var verr *loci.ValidationError
	if !errors.As(err, &verr) {
		t.Errorf("Expected a ValidationError, got %v", err)
	}
}

package sumstats

import (
	"errors"
	"strings"
	"testing"

	"github.com/carbocation/indeploci/loci"
)

const autoFile = `CHR	BP	SNPID	EA	NEA	P
21	36119111	rs1	a	g	1.5e-20
chr22	18600583	rs2	C	T	2.7e-15
22	18700000		C	T	0.2
`

func TestReadMarkersAuto(t *testing.T) {
	r, err := NewReader(strings.NewReader(autoFile), "")
	if err != nil {
		t.Fatal(err)
	}

	markers, err := r.ReadMarkers(0.05)
	if err != nil {
		t.Fatal(err)
	}

	if len(markers) != 2 {
		t.Fatalf("Expected 2 markers, got %v", markers)
	}
	if markers[1].Chromosome != "22" || markers[1].Position != 18600583 || markers[1].SNPID != "rs2" {
		t.Errorf("Unexpected marker %+v", markers[1])
	}
	if r.Layout().ColP != 5 {
		t.Errorf("Expected the layout to be derived from the header, got %+v", r.Layout())
	}
}

func TestReadMarkersWhitespaceAligned(t *testing.T) {
	in := "CHROM GENPOS ID ALLELE0 ALLELE1 A1FREQ INFO N TEST BETA SE CHISQ LOG10P\n" +
		"1   1000   rsA   A   G   0.1  1  10  ADD  0.1  0.1  30  12\n" +
		"# a comment\n" +
		"2   2000   rsB   C   T   0.1  1  10  ADD  0.1  0.1  30  2\n"

	r, err := NewReader(strings.NewReader(in), "REGENIE")
	if err != nil {
		t.Fatal(err)
	}
	markers, err := r.ReadMarkers(1)
	if err != nil {
		t.Fatal(err)
	}
	if len(markers) != 2 || markers[0].SNPID != "rsA" || markers[1].Position != 2000 {
		t.Errorf("Unexpected markers %+v", markers)
	}
}

func TestReadMarkersReportsLine(t *testing.T) {
	in := "CHR\tBP\tP\n1\t100\t0.1\n1\tx\t0.1\n"
	r, err := NewReader(strings.NewReader(in), AutoLayout)
	if err != nil {
		t.Fatal(err)
	}

	_, err = r.ReadMarkers(1)
	var verr *loci.ValidationError
	if !errors.As(err, &verr) || !strings.Contains(verr.Reason, "line 3") {
		t.Errorf("Expected a validation error on line 3, got %v", err)
	}
}

func TestReadMarkersMissingColumn(t *testing.T) {
	r, err := NewReader(strings.NewReader("CHR\tSNP\tP\n1\trs1\t0.1\n"), AutoLayout)
	if err != nil {
		t.Fatal(err)
	}

	_, err = r.ReadMarkers(1)
	var verr *loci.ValidationError
	if !errors.As(err, &verr) || verr.Field != "header" {
		t.Errorf("Expected a header validation error, got %v", err)
	}
}

func TestReadMarkersEmpty(t *testing.T) {
	r, err := NewReader(strings.NewReader(""), AutoLayout)
	if err != nil {
		t.Fatal(err)
	}
	markers, err := r.ReadMarkers(1)
	if err != nil || len(markers) != 0 {
		t.Errorf("Expected no markers and no error, got %v, %v", markers, err)
	}
}

func TestDetermineDelimiter(t *testing.T) {
	cases := map[string]rune{
		"CHR\tBP\tP\n1\t2\t0.1\n": '\t',
		"CHR,BP,P\n1,2,0.1\n":     ',',
		"CHR BP P\n1 2 0.1\n":     ' ',
		"CHR BP  P\n1  2 0.1\n":   ' ',
		"CHR\n":                   '\t',
	}

	for in, want := range cases {
		if got := DetermineDelimiter([]byte(in)); got != want {
			t.Errorf("DetermineDelimiter(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestReadMarkersGeneric(t *testing.T) {
	in := "CHR\tBP\tP\tSNPID\tEA\tNEA\n" +
		"# filtered upstream\n" +
		"X\t1000\t1e-9\trs9\tA\tG\n" +
		"23\t2000\t1e-3\t\tA\tG\n"

	r, err := NewReader(strings.NewReader(in), "generic")
	if err != nil {
		t.Fatal(err)
	}

	markers, err := r.ReadMarkers(1)
	if err != nil {
		t.Fatal(err)
	}

	if len(markers) != 2 {
		t.Fatalf("Expected 2 markers, got %v", markers)
	}
	if markers[1].Chromosome != "X" || markers[1].SNPID != "" {
		t.Errorf("Unexpected marker %+v", markers[1])
	}
}

func TestReadMarkersMetadataAndComments(t *testing.T) {
	in := "##fileformat=GWAS-VCF\n" +
		"##source=regenie v3.2\n" +
		"#CHROM\tPOS\tID\tP\n" +
		"1\t100\trs1\t1e-9\n" +
		"# chromosome 2 follows\n" +
		"2\t200\trs2\t1e-6\n"

	r, err := NewReader(strings.NewReader(in), AutoLayout)
	if err != nil {
		t.Fatal(err)
	}

	markers, err := r.ReadMarkers(1)
	if err != nil {
		t.Fatal(err)
	}

	if len(markers) != 2 {
		t.Fatalf("Expected 2 markers, got %v", markers)
	}
	if markers[0].SNPID != "rs1" || markers[1].Chromosome != "2" || markers[1].Position != 200 {
		t.Errorf("Unexpected markers %+v", markers)
	}
	if r.Layout().Delimiter != '\t' {
		t.Errorf("Delimiter %q detected through the metadata lines", r.Layout().Delimiter)
	}
}

package sumstats

import (
	"testing"

	"github.com/carbocation/indeploci/loci"
)

func TestUniqueID(t *testing.T) {
	cases := []struct {
		m    loci.Marker
		want string
	}{
		{loci.Marker{Chromosome: "1", Position: 100, EffectAllele: "g", OtherAllele: "A"}, "1-100-A-G"},
		{loci.Marker{Chromosome: "1", Position: 100, EffectAllele: "A", OtherAllele: "G"}, "1-100-A-G"},
		{loci.Marker{Chromosome: "X", Position: 5, EffectAllele: "AT", OtherAllele: "A"}, "X-5-A-AT"},
		{loci.Marker{Chromosome: "2", Position: 7}, "2-7"},
	}

	for _, c := range cases {
		if got := UniqueID(c.m); got != c.want {
			t.Errorf("UniqueID(%+v) = %q, want %q", c.m, got, c.want)
		}
	}
}

func TestNormalizeSNPIDs(t *testing.T) {
	markers := []loci.Marker{
		{Chromosome: "1", Position: 100, P: 1e-5, SNPID: "rsA", EffectAllele: "A", OtherAllele: "G"},
		{Chromosome: "1", Position: 100, P: 1e-9, SNPID: "rsB", EffectAllele: "G", OtherAllele: "A"},
		{Chromosome: "1", Position: 200, P: 1e-3, SNPID: "rsC"},
	}

	got := NormalizeSNPIDs(markers, false)
	if len(got) != 2 {
		t.Fatalf("Expected the duplicate to be dropped, got %v", got)
	}
	if got[0].SNPID != "1-100-A-G" || got[0].P != 1e-9 {
		t.Errorf("Expected the more significant duplicate to survive, got %+v", got[0])
	}
	if got[1].SNPID != "1-200" {
		t.Errorf("Unexpected identifier %q", got[1].SNPID)
	}

	kept := NormalizeSNPIDs(markers, true)
	if len(kept) != 3 || kept[0].SNPID != "rsA" {
		t.Errorf("Expected existing identifiers to be kept, got %v", kept)
	}

	if markers[0].SNPID != "rsA" {
		t.Error("NormalizeSNPIDs modified its input")
	}
}

func TestNormalizeRows(t *testing.T) {
	parser, err := New("GENERIC")
	if err != nil {
		t.Fatal(err)
	}

	var rows []Row
	for _, fields := range [][]string{
		{"1", "100", "1e-8", "rs100", "A", "G"},
		{"1", "200", "1e-7", ".", "C", "T"},
		{"1", "300", "1e-6", "", "C", "T"},
	} {
		row, err := parser.ParseRow(fields)
		if err != nil {
			t.Fatal(err)
		}
		rows = append(rows, row)
	}

	got := NormalizeRows(rows, true)
	want := []string{"rs100", "1-200-C-T", "1-300-C-T"}
	if len(got) != len(want) {
		t.Fatalf("Expected %d markers, got %v", len(want), got)
	}
	for i, m := range got {
		if m.SNPID != want[i] {
			t.Errorf("Marker %d: identifier %q, want %q", i, m.SNPID, want[i])
		}
	}

	if got := NormalizeRows(rows, false); got[0].SNPID != "1-100-A-G" {
		t.Errorf("Expected a generated identifier without keepExisting, got %q", got[0].SNPID)
	}
}

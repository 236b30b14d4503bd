package loci

import (
	"context"
	"errors"
	"math"
	"testing"
)

func TestIdentifyDistance(t *testing.T) {
	sel := DistanceSelector{Distance: 500000}

	got, err := Identify(context.Background(), clusteredMarkers(), sel, Options{Range: 500000, Merge: true})
	if err != nil {
		t.Fatal(err)
	}

	want := []Locus{
		{Chromosome: "21", Start: 35619111, End: 36619111, LeadSNP: "rs21a", LeadP: 1.5e-20, LeadPosition: 36119111},
		{Chromosome: "22", Start: 18100583, End: 19100583, LeadSNP: "rs22a", LeadP: 2.7e-15, LeadPosition: 18600583},
	}
	if len(got) != len(want) {
		t.Fatalf("Identify = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Locus %d = %v, want %v", i, got[i], want[i])
		}
	}
}

func TestIdentifyMergesOnlyWhenAsked(t *testing.T) {
	markers := []Marker{
		{Chromosome: "1", Position: 1000000, P: 1e-10, SNPID: "a"},
		{Chromosome: "1", Position: 1600000, P: 1e-9, SNPID: "b"},
	}
	sel := DistanceSelector{Distance: 500000}

	unmerged, err := Identify(context.Background(), markers, sel, Options{Range: 500000})
	if err != nil {
		t.Fatal(err)
	}
	if len(unmerged) != 2 {
		t.Errorf("Expected 2 unmerged loci, got %v", unmerged)
	}

	merged, err := Identify(context.Background(), markers, sel, Options{Range: 500000, Merge: true})
	if err != nil {
		t.Fatal(err)
	}
	if len(merged) != 1 || merged[0].Start != 500000 || merged[0].End != 2100000 || merged[0].LeadSNP != "a" {
		t.Errorf("Expected one merged locus led by a, got %v", merged)
	}
}

func TestIdentifyEmpty(t *testing.T) {
	got, err := Identify(context.Background(), nil, DistanceSelector{Distance: 1}, Options{Range: 10, Merge: true})
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 0 {
		t.Errorf("Expected no loci, got %v", got)
	}
}

func TestIdentifyConditionalNotImplemented(t *testing.T) {
	markers := clusteredMarkers()

	got, err := Identify(context.Background(), markers, ConditionalSelector{R2: 0.8}, Options{Range: 10})
	if !errors.Is(err, ErrNotImplemented) {
		t.Fatalf("Expected ErrNotImplemented, got %v", err)
	}
	if got != nil {
		t.Errorf("Expected no loci on failure, got %v", got)
	}

	var nerr *NotImplementedError
	if !errors.As(err, &nerr) || nerr.Method != MethodConditional {
		t.Errorf("Expected a NotImplementedError for the conditional method, got %v", err)
	}

	var verr *ValidationError
	if errors.As(err, &verr) {
		t.Error("Not-implemented must be distinguishable from invalid input")
	}
}

func TestIdentifyValidation(t *testing.T) {
	ctx := context.Background()
	sel := DistanceSelector{Distance: 10}

	cases := []struct {
		name    string
		markers []Marker
		sel     Selector
		opts    Options
	}{
		{"negative range", nil, sel, Options{Range: -1}},
		{"no selector", nil, nil, Options{}},
		{"zero distance", []Marker{{Chromosome: "1", P: 0.1}}, DistanceSelector{}, Options{}},
		{"p of zero", []Marker{{Chromosome: "1", P: 0}}, sel, Options{}},
		{"p above one", []Marker{{Chromosome: "1", P: 1.5}}, sel, Options{}},
		{"NaN p", []Marker{{Chromosome: "1", P: math.NaN()}}, sel, Options{}},
		{"negative position", []Marker{{Chromosome: "1", Position: -1, P: 0.1}}, sel, Options{}},
		{"no chromosome", []Marker{{Position: 1, P: 0.1}}, sel, Options{}},
	}

	for _, c := range cases {
		_, err := Identify(ctx, c.markers, c.sel, c.opts)
		var verr *ValidationError
		if !errors.As(err, &verr) {
			t.Errorf("%s: expected a ValidationError, got %v", c.name, err)
		}
	}
}

func TestParseMethod(t *testing.T) {
	cases := map[string]Method{
		"distance":    MethodDistance,
		"Distance":    MethodDistance,
		"clumping":    MethodLDClump,
		"ldclump":     MethodLDClump,
		"conditional": MethodConditional,
	}
	for in, want := range cases {
		got, err := ParseMethod(in)
		if err != nil || got != want {
			t.Errorf("ParseMethod(%q) = %v, %v; want %v", in, got, err, want)
		}
	}

	if _, err := ParseMethod("cojo"); err == nil {
		t.Error("Expected an error for an unknown method")
	}

	for m := range methodNames {
		if back, err := ParseMethod(m.String()); err != nil || back != m {
			t.Errorf("%v did not round trip: %v, %v", m, back, err)
		}
	}
}

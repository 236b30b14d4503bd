package loci

import (
	"context"
	"fmt"
	"log"
	"math"
)

// Options controls the stages that run after lead selection.
type Options struct {
	// Range is the half-width, in bases, of the locus built around each lead.
	Range int

	// Merge collapses overlapping loci when set.
	Merge bool
}

// Identify selects lead markers with sel, expands them into loci and, if
// requested, merges overlapping loci. An empty marker set yields an empty
// result without error. Any selector error is returned as is; no partial
// result is produced.
func Identify(ctx context.Context, markers []Marker, sel Selector, opts Options) ([]Locus, error) {
	if sel == nil {
		return nil, &ValidationError{Field: "method", Reason: "no selector given"}
	}
	if opts.Range < 0 {
		return nil, &ValidationError{Field: "range", Reason: fmt.Sprintf("must not be negative, got %d", opts.Range)}
	}
	if err := ValidateMarkers(markers); err != nil {
		return nil, err
	}

	leads, err := sel.Select(ctx, markers)
	if err != nil {
		return nil, err
	}
	log.Printf("Selected %d lead markers out of %d using the %s method\n", len(leads), len(markers), sel.Method())

	out, err := Expand(leads, opts.Range)
	if err != nil {
		return nil, err
	}

	if opts.Merge {
		merged := Merge(out)
		log.Printf("Merged %d loci into %d\n", len(out), len(merged))
		out = merged
	}

	return out, nil
}

// ValidateMarkers checks the invariants every selector relies on.
func ValidateMarkers(markers []Marker) error {
	for i, m := range markers {
		if m.Chromosome == "" {
			return &ValidationError{Field: "chromosome", Reason: fmt.Sprintf("marker %d has no chromosome", i)}
		}
		if m.Position < 0 {
			return &ValidationError{Field: "position", Reason: fmt.Sprintf("marker %d (%s) has negative position %d", i, m, m.Position)}
		}
		if math.IsNaN(m.P) || m.P <= 0 || m.P > 1 {
			return &ValidationError{Field: "p-value", Reason: fmt.Sprintf("marker %d (%s) has p-value %v outside (0,1]", i, m, m.P)}
		}
	}

	return nil
}

package ldclump

import (
	"errors"
	"fmt"
	"strings"
)

// ToolError is a failed or timed out plink run for one chromosome.
type ToolError struct {
	Chromosome string
	Err        error
	Stderr     string
}

func (e *ToolError) Error() string {
	msg := fmt.Sprintf("plink failed on chromosome %s: %v", e.Chromosome, e.Err)
	if stderr := strings.TrimSpace(e.Stderr); stderr != "" {
		msg += ": " + stderr
	}

	return msg
}

func (e *ToolError) Unwrap() error {
	return e.Err
}

// ChromosomeError ties any failure to the chromosome it happened on.
type ChromosomeError struct {
	Chromosome string
	Err        error
}

func (e ChromosomeError) Error() string {
	return fmt.Sprintf("chromosome %s: %v", e.Chromosome, e.Err)
}

func (e ChromosomeError) Unwrap() error {
	return e.Err
}

// ChromosomeErrors collects the chromosomes that could not be clumped, in
// genomic order.
type ChromosomeErrors []ChromosomeError

func (e ChromosomeErrors) Error() string {
	parts := make([]string, 0, len(e))
	for _, ce := range e {
		parts = append(parts, ce.Error())
	}

	return fmt.Sprintf("clumping failed on %d chromosome(s): %s", len(e), strings.Join(parts, "; "))
}

// Chromosomes lists the chromosomes that failed.
func (e ChromosomeErrors) Chromosomes() []string {
	out := make([]string, 0, len(e))
	for _, ce := range e {
		out = append(out, ce.Chromosome)
	}

	return out
}

// Is reports whether any chromosome failed with target.
func (e ChromosomeErrors) Is(target error) bool {
	for _, ce := range e {
		if errors.Is(ce.Err, target) {
			return true
		}
	}

	return false
}

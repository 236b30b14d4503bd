package ldclump

import (
	"fmt"
	"runtime"
	"strconv"
	"strings"
	"time"

	"github.com/carbocation/indeploci/loci"
)

// ChromPlaceholder is substituted with the chromosome in Config.LDRef.
const ChromPlaceholder = "{chrom}"

// Column names of the marker file handed to plink.
const (
	SNPField = "SNPID"
	PField   = "P"
)

// Config holds the clumping parameters and how to run plink.
type Config struct {
	Plink   string  // plink 1.9 binary
	LDRef   string  // bed/bim/fam prefix, usually containing {chrom}
	P1      float64 // --clump-p1
	KB      int     // --clump-kb
	R2      float64 // --clump-r2
	Timeout time.Duration
	Workers int
}

func DefaultConfig() Config {
	return Config{
		Plink:   "plink",
		P1:      5e-8,
		KB:      500,
		R2:      0.1,
		Timeout: time.Hour,
		Workers: runtime.NumCPU(),
	}
}

func (c Config) Validate() error {
	switch {
	case c.Plink == "":
		return &loci.ValidationError{Field: "plink", Reason: "no plink binary given"}
	case c.LDRef == "":
		return &loci.ValidationError{Field: "ldref", Reason: "no LD reference panel given"}
	case !(c.P1 > 0 && c.P1 <= 1):
		return &loci.ValidationError{Field: "clump-p1", Reason: fmt.Sprintf("%v is outside (0,1]", c.P1)}
	case c.KB <= 0:
		return &loci.ValidationError{Field: "clump-kb", Reason: fmt.Sprintf("must be positive, got %d", c.KB)}
	case !(c.R2 > 0 && c.R2 <= 1):
		return &loci.ValidationError{Field: "clump-r2", Reason: fmt.Sprintf("%v is outside (0,1]", c.R2)}
	case c.Timeout <= 0:
		return &loci.ValidationError{Field: "timeout", Reason: fmt.Sprintf("must be positive, got %v", c.Timeout)}
	case c.Workers <= 0:
		return &loci.ValidationError{Field: "workers", Reason: fmt.Sprintf("must be positive, got %d", c.Workers)}
	}

	return nil
}

// PanelPrefix resolves the reference panel for one chromosome.
func (c Config) PanelPrefix(chrom string) string {
	return strings.ReplaceAll(c.LDRef, ChromPlaceholder, chrom)
}

// Args builds the plink command line clumping markerFile against the panel
// for chrom, writing results under outPrefix.
func (c Config) Args(chrom, markerFile, outPrefix string) []string {
	return []string{
		"--bfile", c.PanelPrefix(chrom),
		"--clump", markerFile,
		"--clump-p1", strconv.FormatFloat(c.P1, 'g', -1, 64),
		"--clump-kb", strconv.Itoa(c.KB),
		"--clump-r2", strconv.FormatFloat(c.R2, 'g', -1, 64),
		"--clump-snp-field", SNPField,
		"--clump-field", PField,
		"--out", outPrefix,
	}
}

package ldclump

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/carbocation/pfx"
)

// Columns of a plink .bim file.
const (
	bimChromosome int = iota
	bimVariantID
	bimMorgans
	bimCoordinate
	bimAllele1
	bimAllele2
)

// panel holds the variant identifiers of one chromosome's reference panel.
type panel map[string]struct{}

// readPanel loads the variant identifiers listed in prefix.bim.
func readPanel(prefix string) (panel, error) {
	path := prefix + ".bim"
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	out := make(panel)
	scanner := bufio.NewScanner(f)
	line := 0
	for scanner.Scan() {
		line++
		cols := strings.Fields(scanner.Text())
		if len(cols) == 0 {
			continue
		}
		if len(cols) < bimAllele2+1 {
			return nil, fmt.Errorf("%s line %d: expected %d columns, found %d", path, line, bimAllele2+1, len(cols))
		}
		out[cols[bimVariantID]] = struct{}{}
	}

	return out, pfx.Err(scanner.Err())
}

// missing counts the identifiers that the panel does not contain.
func (p panel) missing(ids []string) int {
	n := 0
	for _, id := range ids {
		if _, ok := p[id]; !ok {
			n++
		}
	}

	return n
}

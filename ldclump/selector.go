package ldclump

import (
	"context"
	"fmt"
	"log"
	"sort"
	"sync"

	"github.com/carbocation/indeploci/chrpos"
	"github.com/carbocation/indeploci/loci"
	"golang.org/x/sync/errgroup"
)

var _ loci.Selector = (*Selector)(nil)

// Selector clumps markers with plink against an LD reference panel. Every
// marker needs an SNPID that matches the panel's variant identifiers.
type Selector struct {
	Config    Config
	Workspace *Workspace
}

func (s *Selector) Method() loci.Method {
	return loci.MethodLDClump
}

// Select clumps each chromosome independently, at most Config.Workers at a
// time. Leads come back sorted by ascending p. If some chromosomes fail, the
// leads of the others are returned together with a ChromosomeErrors.
func (s *Selector) Select(ctx context.Context, markers []loci.Marker) ([]loci.Marker, error) {
	if err := s.Config.Validate(); err != nil {
		return nil, err
	}
	if s.Workspace == nil {
		return nil, &loci.ValidationError{Field: "workspace", Reason: "clumping needs a scratch directory"}
	}

	byChrom := make(map[string][]loci.Marker)
	for i, m := range markers {
		if m.SNPID == "" {
			return nil, &loci.ValidationError{Field: "snpid", Reason: fmt.Sprintf("marker %d (%s) has no identifier", i, m)}
		}
		byChrom[m.Chromosome] = append(byChrom[m.Chromosome], m)
	}

	chroms := make([]string, 0, len(byChrom))
	for chrom := range byChrom {
		chroms = append(chroms, chrom)
	}
	chroms = chrpos.Sorted(chroms)

	var (
		mu       sync.Mutex
		results  = make(map[string][]loci.Marker, len(chroms))
		failures ChromosomeErrors
	)

	var g errgroup.Group
	g.SetLimit(s.Config.Workers)
	for _, chrom := range chroms {
		chrom := chrom
		g.Go(func() error {
			leads, err := s.clumpChromosome(ctx, chrom, byChrom[chrom])

			if ctxErr := ctx.Err(); ctxErr != nil {
				return ctxErr
			}

			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				log.Println(err)
				failures = append(failures, ChromosomeError{Chromosome: chrom, Err: err})
				return nil
			}
			log.Printf("Chromosome %s: %d markers clumped into %d leads\n", chrom, len(byChrom[chrom]), len(leads))
			results[chrom] = leads
			return nil
		})
	}
	// Per-chromosome failures are collected, not returned; only a cancelled
	// run aborts the group.
	if err := g.Wait(); err != nil {
		return nil, err
	}

	var leads []loci.Marker
	for _, chrom := range chroms {
		leads = append(leads, results[chrom]...)
	}
	sort.SliceStable(leads, func(i, j int) bool { return leads[i].P < leads[j].P })

	if len(failures) > 0 {
		sort.Slice(failures, func(i, j int) bool {
			return chrpos.Less(failures[i].Chromosome, failures[j].Chromosome)
		})
		return leads, failures
	}

	return leads, nil
}

// indeploci finds independent loci in GWAS summary statistics. Lead markers
// are chosen by distance or by LD clumping with plink, expanded into loci of
// fixed half-width and, optionally, merged where they overlap.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"

	"cloud.google.com/go/storage"
	"github.com/carbocation/indeploci"
	"github.com/carbocation/indeploci/compileinfo"
	"github.com/carbocation/indeploci/ldclump"
	"github.com/carbocation/indeploci/loci"
	"github.com/carbocation/indeploci/sumstats"
	"github.com/carbocation/pfx"
)

func main() {
	cfg, fs, err := loadConfig(os.Args[1:])
	if errors.Is(err, flag.ErrHelp) {
		os.Exit(0)
	} else if err != nil {
		log.Println(err)
		os.Exit(2)
	}

	if cfg.Input == "" && cfg.LociFile == "" {
		fmt.Fprintln(os.Stderr, "One of -input or -loci is required.")
		fs.PrintDefaults()
		os.Exit(1)
	}

	compileinfo.Log()

	if err := run(context.Background(), cfg); err != nil {
		log.Fatalln(err)
	}
}

func run(ctx context.Context, cfg Config) error {
	var client *storage.Client
	if indeploci.IsGoogleStoragePath(cfg.Input) || indeploci.IsGoogleStoragePath(cfg.LociFile) {
		var err error
		client, err = storage.NewClient(ctx)
		if err != nil {
			return pfx.Err(err)
		}
		defer client.Close()
	}

	var (
		result  []loci.Locus
		markers []loci.Marker
		err     error
	)
	if cfg.LociFile != "" {
		result, err = mergeLociFile(ctx, cfg, client)
	} else {
		markers, result, err = identify(ctx, cfg, client)
	}
	if err != nil {
		return err
	}

	summary, err := loci.Summarize(result, markers)
	if err != nil {
		return err
	}
	log.Println(summary)

	return writeOutput(cfg.Out, result)
}

// mergeLociFile merges an existing loci table without selecting leads again.
func mergeLociFile(ctx context.Context, cfg Config, client *storage.Client) ([]loci.Locus, error) {
	f, err := indeploci.OpenInput(ctx, cfg.LociFile, client)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	in, err := indeploci.ReadLoci(f)
	if err != nil {
		return nil, err
	}
	log.Printf("Read %d loci from %s\n", len(in), cfg.LociFile)

	out := loci.Merge(in)
	log.Printf("Merged %d loci into %d\n", len(in), len(out))

	return out, nil
}

func identify(ctx context.Context, cfg Config, client *storage.Client) ([]loci.Marker, []loci.Locus, error) {
	markers, err := readMarkers(ctx, cfg, client)
	if err != nil {
		return nil, nil, err
	}

	sel, cleanup, err := newSelector(cfg)
	if err != nil {
		return nil, nil, err
	}
	defer cleanup()

	result, err := loci.Identify(ctx, markers, sel, loci.Options{Range: cfg.Range, Merge: cfg.Merge})
	if err != nil {
		return nil, nil, err
	}

	return markers, result, nil
}

func readMarkers(ctx context.Context, cfg Config, client *storage.Client) ([]loci.Marker, error) {
	f, err := indeploci.OpenInput(ctx, cfg.Input, client)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	r, err := sumstats.NewReader(f, cfg.Layout)
	if err != nil {
		return nil, err
	}

	rows, err := r.ReadRows(cfg.PThreshold)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", cfg.Input, err)
	}

	return sumstats.NormalizeRows(rows, cfg.KeepIDs), nil
}

// newSelector builds the selector for cfg.Method. The returned cleanup
// releases anything the selector holds and is never nil.
func newSelector(cfg Config) (loci.Selector, func(), error) {
	noop := func() {}

	method, err := loci.ParseMethod(cfg.Method)
	if err != nil {
		return nil, noop, err
	}

	switch method {
	case loci.MethodDistance:
		return loci.DistanceSelector{Distance: cfg.Distance}, noop, nil
	case loci.MethodConditional:
		return loci.ConditionalSelector{}, noop, nil
	case loci.MethodLDClump:
		clump := cfg.clumpConfig()
		if err := clump.Validate(); err != nil {
			return nil, noop, err
		}

		ws, err := ldclump.NewWorkspace(cfg.TmpDir)
		if err != nil {
			return nil, noop, err
		}
		ws.Keep = cfg.KeepTmp

		cleanup := func() {
			if err := ws.Close(); err != nil {
				log.Println(err)
			}
		}
		return &ldclump.Selector{Config: clump, Workspace: ws}, cleanup, nil
	}

	return nil, noop, fmt.Errorf("method %s is not supported", method)
}

// writeOutput writes to path, or to stdout when path is empty. Errors from
// closing the file are reported.
func writeOutput(path string, ls []loci.Locus) error {
	if path != "" {
		expanded, err := indeploci.ExpandHome(path)
		if err != nil {
			return err
		}

		f, err := os.Create(expanded)
		if err != nil {
			return pfx.Err(err)
		}
		if err := indeploci.WriteLoci(f, ls); err != nil {
			f.Close()
			return err
		}
		return pfx.Err(f.Close())
	}

	return indeploci.WriteLoci(os.Stdout, ls)
}

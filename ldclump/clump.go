package ldclump

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"os/exec"
	"strconv"
	"strings"

	"github.com/carbocation/indeploci/loci"
	"github.com/carbocation/pfx"
)

// clumpChromosome runs plink on the markers of one chromosome and returns
// the index markers it reports.
func (s *Selector) clumpChromosome(ctx context.Context, chrom string, markers []loci.Marker) ([]loci.Marker, error) {
	prefix := s.Config.PanelPrefix(chrom)
	ref, err := readPanel(prefix)
	if err != nil {
		return nil, err
	}

	byID := make(map[string]loci.Marker, len(markers))
	ids := make([]string, 0, len(markers))
	for _, m := range markers {
		if prev, seen := byID[m.SNPID]; seen {
			if m.P < prev.P {
				byID[m.SNPID] = m
			}
			continue
		}
		byID[m.SNPID] = m
		ids = append(ids, m.SNPID)
	}

	if n := ref.missing(ids); n > 0 {
		log.Printf("Chromosome %s: %d of %d markers are absent from reference panel %s and cannot be clumped\n", chrom, n, len(ids), prefix)
	}

	markerFile := s.Workspace.Path(fmt.Sprintf("clump_p_%s.txt", chrom))
	if err := writeMarkerFile(markerFile, ids, byID); err != nil {
		return nil, err
	}

	outPrefix := s.Workspace.Path(fmt.Sprintf("clump_%s", chrom))

	if err := s.runPlink(ctx, chrom, s.Config.Args(chrom, markerFile, outPrefix)); err != nil {
		return nil, err
	}

	f, err := os.Open(outPrefix + ".clumped")
	if errors.Is(err, os.ErrNotExist) {
		log.Printf("Chromosome %s: plink reported no clumps at p1=%g\n", chrom, s.Config.P1)
		return []loci.Marker{}, nil
	} else if err != nil {
		return nil, pfx.Err(err)
	}
	defer f.Close()

	leadIDs, err := parseClumped(f)
	if err != nil {
		return nil, fmt.Errorf("%s.clumped: %w", outPrefix, err)
	}

	leads := make([]loci.Marker, 0, len(leadIDs))
	for _, id := range leadIDs {
		m, ok := byID[id]
		if !ok {
			log.Printf("Chromosome %s: plink reported unknown index variant %s, skipping\n", chrom, id)
			continue
		}
		leads = append(leads, m)
	}

	return leads, nil
}

// maxStderr bounds how much of plink's stderr is kept in a ToolError.
const maxStderr = 4096

// runPlink runs plink under the per-chromosome timeout. Its stdout and stderr
// go straight to files in the workspace, so Run returns once plink exits or
// is killed even if a child of a wrapper script still holds them open.
func (s *Selector) runPlink(ctx context.Context, chrom string, args []string) error {
	stdoutPath := s.Workspace.Path(fmt.Sprintf("clump_%s.stdout", chrom))
	stderrPath := s.Workspace.Path(fmt.Sprintf("clump_%s.stderr", chrom))

	stdout, err := os.Create(stdoutPath)
	if err != nil {
		return pfx.Err(err)
	}
	defer stdout.Close()

	stderr, err := os.Create(stderrPath)
	if err != nil {
		return pfx.Err(err)
	}
	defer stderr.Close()

	runCtx, cancel := context.WithTimeout(ctx, s.Config.Timeout)
	defer cancel()

	cmd := exec.CommandContext(runCtx, s.Config.Plink, args...)
	cmd.Stdout = stdout
	cmd.Stderr = stderr
	if err := cmd.Run(); err != nil {
		if ctxErr := runCtx.Err(); ctxErr != nil {
			err = ctxErr
		}
		return &ToolError{Chromosome: chrom, Err: err, Stderr: readTail(stderrPath, maxStderr)}
	}

	return nil
}

// readTail returns at most the last n bytes of the file at path.
func readTail(path string, n int) string {
	data, err := os.ReadFile(path)
	if err != nil {
		return ""
	}
	if len(data) > n {
		data = data[len(data)-n:]
	}

	return string(data)
}

func writeMarkerFile(path string, ids []string, byID map[string]loci.Marker) error {
	f, err := os.Create(path)
	if err != nil {
		return pfx.Err(err)
	}

	w := bufio.NewWriter(f)
	fmt.Fprintf(w, "%s\t%s\n", SNPField, PField)
	for _, id := range ids {
		fmt.Fprintf(w, "%s\t%s\n", id, strconv.FormatFloat(byID[id].P, 'g', -1, 64))
	}

	if err := w.Flush(); err != nil {
		f.Close()
		return pfx.Err(err)
	}

	return pfx.Err(f.Close())
}

// parseClumped reads the SNP column of a plink .clumped report. The report
// is whitespace aligned and padded with blank lines.
func parseClumped(r io.Reader) ([]string, error) {
	scanner := bufio.NewScanner(r)
	snpCol := -1
	var out []string
	for scanner.Scan() {
		cols := strings.Fields(scanner.Text())
		if len(cols) == 0 {
			continue
		}

		if snpCol < 0 {
			for i, name := range cols {
				if name == "SNP" {
					snpCol = i
				}
			}
			if snpCol < 0 {
				return nil, fmt.Errorf("no SNP column in header %q", strings.Join(cols, " "))
			}
			continue
		}

		if len(cols) <= snpCol {
			continue
		}
		out = append(out, cols[snpCol])
	}

	return out, scanner.Err()
}

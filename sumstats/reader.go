package sumstats

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"
	"log"
	"strings"

	"github.com/carbocation/indeploci/loci"
	"github.com/carbocation/pfx"
)

const (
	peekSize      = 64 * 1024
	maxLineLength = 16 * 1024 * 1024
)

// Reader streams rows out of a delimited summary statistics file. Runs of
// spaces count as a single delimiter when the delimiter is a space, which
// covers the column-aligned output some tools produce.
type Reader struct {
	parser  *Parser
	scanner *bufio.Scanner
	line    int

	autoColumns bool // Derive the column layout from the header
	headerRead  bool
}

// NewReader prepares a reader for the named layout. With AutoLayout the
// delimiter is detected from the first lines and the columns are found by
// name in the header.
func NewReader(r io.Reader, layout string) (*Reader, error) {
	buffered := bufio.NewReaderSize(r, peekSize)

	if strings.EqualFold(layout, AutoLayout) || layout == "" {
		peek, err := buffered.Peek(peekSize)
		if err != nil && err != io.EOF && !errors.Is(err, bufio.ErrBufferFull) {
			return nil, pfx.Err(err)
		}
		delimiter := DetermineDelimiter(skipMetadata(peek))

		r := newReader(buffered, NewWithLayout(Layout{Delimiter: delimiter, HasHeader: true}))
		r.autoColumns = true
		return r, nil
	}

	parser, err := New(layout)
	if err != nil {
		return nil, err
	}

	return newReader(buffered, parser), nil
}

func newReader(r io.Reader, parser *Parser) *Reader {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, peekSize), maxLineLength)

	return &Reader{
		parser:  parser,
		scanner: scanner,
	}
}

// Layout returns the layout in use. With AutoLayout it is only complete once
// the header has been read.
func (r *Reader) Layout() Layout {
	return r.parser.Layout
}

func (r *Reader) Err() error {
	return r.scanner.Err()
}

// metadataPrefix marks preamble lines above the header, as in VCF-style
// summary statistics.
const metadataPrefix = "##"

// skipMetadata drops leading metadata lines from a sample of the input.
func skipMetadata(sample []byte) []byte {
	for bytes.HasPrefix(sample, []byte(metadataPrefix)) {
		i := bytes.IndexByte(sample, '\n')
		if i < 0 {
			return nil
		}
		sample = sample[i+1:]
	}

	return sample
}

// readFields returns the next non-empty, non-comment line split into fields,
// or nil at the end of input. Before the header, metadata lines are skipped
// too; the header itself may start with a single '#'.
func (r *Reader) readFields() []string {
	for r.scanner.Scan() {
		r.line++
		text := strings.TrimRight(r.scanner.Text(), "\r")
		if strings.TrimSpace(text) == "" {
			continue
		}
		if !r.headerRead && strings.HasPrefix(text, metadataPrefix) {
			continue
		}
		if c := r.parser.Layout.Comment; c != 0 && strings.HasPrefix(text, string(c)) {
			continue
		}

		return r.split(text)
	}

	return nil
}

func (r *Reader) split(text string) []string {
	switch d := r.parser.Layout.Delimiter; d {
	case ' ':
		return strings.Fields(text)
	case 0:
		r.parser.Layout.Delimiter = DetermineDelimiter([]byte(text))
		return r.split(text)
	default:
		return strings.Split(text, string(d))
	}
}

// ReadHeader consumes the header line, if the layout has one. For a layout
// without known columns, the columns are derived from the header.
func (r *Reader) ReadHeader() error {
	if !r.parser.Layout.HasHeader || r.headerRead {
		return nil
	}
	header := r.readFields()
	r.headerRead = true
	if header == nil {
		return r.Err()
	}

	if r.autoColumns {
		layout, err := LayoutFromHeader(header, r.parser.Layout.Delimiter)
		if err != nil {
			return &loci.ValidationError{Field: "header", Reason: err.Error()}
		}
		r.parser.Layout = layout
	}

	return nil
}

// Read returns the next row. It returns io.EOF after the last row.
func (r *Reader) Read() (Row, error) {
	if err := r.ReadHeader(); err != nil {
		return Row{}, err
	}

	fields := r.readFields()
	if fields == nil {
		if err := r.Err(); err != nil {
			return Row{}, pfx.Err(err)
		}
		return Row{}, io.EOF
	}

	row, err := r.parser.ParseRow(fields)
	if err != nil {
		var verr *loci.ValidationError
		if errors.As(err, &verr) {
			return row, &loci.ValidationError{Field: verr.Field, Reason: fmt.Sprintf("line %d: %s", r.line, verr.Reason)}
		}
		return row, err
	}

	return row, nil
}

// ReadRows reads every remaining row and keeps those with P at or below
// pThreshold.
func (r *Reader) ReadRows(pThreshold float64) ([]Row, error) {
	out := make([]Row, 0)
	seen := 0
	for {
		row, err := r.Read()
		if err == io.EOF {
			break
		} else if err != nil {
			return nil, err
		}

		seen++
		if seen%1000000 == 0 {
			log.Println("Observed entry", seen)
		}

		if row.P > pThreshold {
			continue
		}
		out = append(out, row)
	}

	log.Printf("Kept %d of %d markers with P <= %g\n", len(out), seen, pThreshold)

	return out, nil
}

// ReadMarkers is ReadRows converted to markers. Absent identifiers become
// empty strings.
func (r *Reader) ReadMarkers(pThreshold float64) ([]loci.Marker, error) {
	rows, err := r.ReadRows(pThreshold)
	if err != nil {
		return nil, err
	}

	out := make([]loci.Marker, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.Marker())
	}

	return out, nil
}

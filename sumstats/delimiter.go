package sumstats

import (
	"bytes"

	"github.com/csimplestring/go-csv/detector"
)

// DetermineDelimiter returns the single most likely rune that would delimit the
// values in the sample, assuming a CSV-like file. When the detector finds
// nothing usable, the first line decides: tab, then comma, then space.
func DetermineDelimiter(sample []byte) rune {
	firstLine := sample
	if i := bytes.IndexByte(sample, '\n'); i >= 0 {
		firstLine = sample[:i]
	}

	d := detector.New()
	for _, delimiter := range d.DetectDelimiter(bytes.NewReader(sample), '"') {
		if len(delimiter) > 0 && bytes.IndexByte(firstLine, delimiter[0]) >= 0 {
			return rune(delimiter[0])
		}
	}

	for _, candidate := range []byte{'\t', ',', ' '} {
		if bytes.IndexByte(firstLine, candidate) >= 0 {
			return rune(candidate)
		}
	}

	return '\t'
}

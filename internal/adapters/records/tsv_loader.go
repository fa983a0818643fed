package records

import (
	"bytes"
	"io"
	"unicode/utf8"

	"github.com/baditaflorin/go_sms_normalizer/internal/adapters/stream/lineprocessor"
	"github.com/baditaflorin/go_sms_normalizer/internal/core/domain"
	"golang.org/x/text/encoding/charmap"
)

const (
	fieldSeparator = '\t'
	fieldCount     = 2
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// TSVLoader reads headerless "label<TAB>text" rows.
//
// Blank lines are skipped. Any other row without exactly two fields is
// reported as a *domain.RowError; the loader never skips it silently.
// Rows that are not valid UTF-8 are decoded as Windows-1252.
type TSVLoader struct {
	lines   *lineprocessor.Reader
	skipped int
}

// NewTSVLoader creates a loader reading from r.
func NewTSVLoader(r io.Reader) *TSVLoader {
	return &TSVLoader{lines: lineprocessor.NewReader(r)}
}

// Next returns the next record, or io.EOF after the last one.
func (t *TSVLoader) Next() (domain.Record, error) {
	for {
		line, err := t.lines.Next()
		if err != nil {
			return domain.Record{}, err
		}
		lineNo := t.lines.Lines()
		if lineNo == 1 {
			line = bytes.TrimPrefix(line, utf8BOM)
		}
		if len(line) == 0 {
			t.skipped++
			continue
		}

		fields := bytes.Count(line, []byte{fieldSeparator}) + 1
		if fields != fieldCount {
			return domain.Record{}, &domain.RowError{Line: lineNo, Fields: fields}
		}

		sep := bytes.IndexByte(line, fieldSeparator)
		return domain.Record{
			Label: decode(line[:sep]),
			Text:  decode(line[sep+1:]),
			Line:  lineNo,
		}, nil
	}
}

// Skipped returns the number of blank lines skipped so far.
func (t *TSVLoader) Skipped() int {
	return t.skipped
}

// BytesRead returns the number of bytes consumed from the source.
func (t *TSVLoader) BytesRead() int64 {
	return t.lines.BytesRead()
}

// Close releases the loader's buffers. It does not close the source.
func (t *TSVLoader) Close() error {
	return t.lines.Close()
}

// decode copies b into a string, falling back to Windows-1252 for bytes
// that are not valid UTF-8 (legacy SMS dumps store £ as 0xA3).
func decode(b []byte) string {
	if utf8.Valid(b) {
		return string(b)
	}
	out, err := charmap.Windows1252.NewDecoder().Bytes(b)
	if err != nil {
		return string(b)
	}
	return string(out)
}

package catalog

import (
	"bufio"
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strings"
)

// Delimiters considered during auto-detection. Semicolon before comma: the
// catalogs this tool grew up on are European exports where ';' is the usual
// separator and ',' the decimal mark.
var delimiterCandidates = []rune{';', ',', '\t', '|'}

const sniffWindow = 4096

// Load reads a delimited catalog file. A zero delimiter turns on detection
// from the file's first line.
func Load(path string, delimiter rune) (*Catalog, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open catalog file: %w", err)
	}
	defer file.Close()

	return Parse(file, path, delimiter)
}

// Parse reads a delimited table from r. The first row is the header; every
// later row becomes a Record keyed by the header names. Short rows leave
// their missing trailing columns absent from the record (absent, not empty);
// cells beyond the header width are dropped. A UTF-8 BOM at the start of the
// stream is skipped.
func Parse(r io.Reader, source string, delimiter rune) (*Catalog, error) {
	br := bufio.NewReader(NewBOMReader(r))

	if delimiter == 0 {
		delimiter = sniffDelimiter(br)
	}

	reader := csv.NewReader(br)
	reader.Comma = delimiter
	reader.FieldsPerRecord = -1

	headers, err := reader.Read()
	if err == io.EOF {
		return nil, fmt.Errorf("catalog %q has no header row", source)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog header: %w", err)
	}

	cat := &Catalog{
		Source:  source,
		Columns: headers,
	}

	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read catalog row: %w", err)
		}

		record := make(Record, len(headers))
		for i, value := range row {
			if i < len(headers) {
				record[headers[i]] = value
			}
		}

		cat.Records = append(cat.Records, record)
	}

	return cat, nil
}

// sniffDelimiter counts candidate separators in the first line and picks the
// most frequent one. Ties keep the earlier candidate; a line with none of
// them falls back to comma.
func sniffDelimiter(br *bufio.Reader) rune {
	peek, _ := br.Peek(sniffWindow)
	if i := bytes.IndexByte(peek, '\n'); i >= 0 {
		peek = peek[:i]
	}
	line := string(peek)

	best := ','
	bestCount := 0
	for _, cand := range delimiterCandidates {
		if n := strings.Count(line, string(cand)); n > bestCount {
			best = cand
			bestCount = n
		}
	}
	return best
}

// BOMReader strips a UTF-8 byte-order mark from the start of the stream.
// Spreadsheet exports on Windows routinely carry one; encoding/csv would
// otherwise glue it onto the first header name.
type BOMReader struct {
	r       io.Reader
	checked bool
	pending []byte
}

func NewBOMReader(r io.Reader) *BOMReader {
	return &BOMReader{r: r}
}

func (b *BOMReader) Read(p []byte) (int, error) {
	if !b.checked {
		b.checked = true

		var buf [3]byte
		n, err := io.ReadFull(b.r, buf[:])
		switch {
		case err == io.EOF || err == io.ErrUnexpectedEOF:
			// File shorter than a BOM; whatever was read is data.
			b.pending = buf[:n:n]
		case err != nil:
			return 0, err
		case buf[0] == 0xEF && buf[1] == 0xBB && buf[2] == 0xBF:
			// BOM found, drop it.
		default:
			b.pending = buf[:3:3]
		}
	}

	if len(b.pending) > 0 {
		n := copy(p, b.pending)
		b.pending = b.pending[n:]
		return n, nil
	}

	return b.r.Read(p)
}

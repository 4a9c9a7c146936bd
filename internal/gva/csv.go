package gva

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"sort"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// Decode returns b as text: UTF-8 when valid, otherwise Latin-1.
func Decode(b []byte) string {
	b = bytes.TrimPrefix(b, utf8BOM)
	if utf8.Valid(b) {
		return string(b)
	}
	out, err := charmap.ISO8859_1.NewDecoder().Bytes(b)
	if err != nil {
		return strings.ToValidUTF8(string(b), "�")
	}
	return string(out)
}

// MissingColumnsError is returned when a CSV lacks required columns.
type MissingColumnsError struct {
	Missing  []string
	Detected []string
}

func (e *MissingColumnsError) Error() string {
	detected := e.Detected
	if len(detected) > 30 {
		detected = detected[:30]
	}
	return fmt.Sprintf("CSV descargado pero faltan columnas: %v. Columnas detectadas: %v", e.Missing, detected)
}

// Table is a parsed CSV with named columns.
type Table struct {
	Header []string
	Rows   []map[string]string
}

// ReadTable parses text as a header + rows CSV. The GVA exports use ';' but
// some resources are ','-separated, detected from the header line.
func ReadTable(text string, required ...string) (*Table, error) {
	comma := ';'
	if first, _, _ := strings.Cut(text, "\n"); !strings.Contains(first, ";") && strings.Contains(first, ",") {
		comma = ','
	}

	r := csv.NewReader(strings.NewReader(text))
	r.Comma = comma
	r.LazyQuotes = true
	r.FieldsPerRecord = -1

	header, err := r.Read()
	if err == io.EOF {
		header = nil
	} else if err != nil {
		return nil, fmt.Errorf("read CSV header: %w", err)
	}
	for i := range header {
		header[i] = strings.TrimSpace(header[i])
	}

	if missing := missingColumns(header, required); len(missing) > 0 {
		detected := append([]string(nil), header...)
		sort.Strings(detected)
		return nil, &MissingColumnsError{Missing: missing, Detected: detected}
	}

	t := &Table{Header: header}
	for {
		rec, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read CSV row: %w", err)
		}
		row := make(map[string]string, len(header))
		for i, name := range header {
			if i < len(rec) {
				row[name] = rec[i]
			}
		}
		t.Rows = append(t.Rows, row)
	}
	return t, nil
}

func missingColumns(header, required []string) []string {
	have := make(map[string]struct{}, len(header))
	for _, h := range header {
		have[h] = struct{}{}
	}
	var missing []string
	for _, r := range required {
		if _, ok := have[r]; !ok {
			missing = append(missing, r)
		}
	}
	sort.Strings(missing)
	return missing
}

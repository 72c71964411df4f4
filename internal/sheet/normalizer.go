// Package sheet turns uploaded CSV and XLSX student tables into rows keyed by
// canonical field names.
package sheet

import (
	"bytes"
	"fmt"
	"io"
	"iter"
	"path/filepath"
	"strings"
	"unicode"

	"github.com/sunthewhat/academic-cert-api/internal/apperror"
)

type Format string

const (
	CSV  Format = "csv"
	XLSX Format = "xlsx"
)

// FormatOf picks the parser from the upload's file extension.
func FormatOf(filename string) (Format, error) {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".csv":
		return CSV, nil
	case ".xlsx":
		return XLSX, nil
	}
	return "", fmt.Errorf("%w: %q (use .xlsx or .csv)", apperror.ErrFormat, filepath.Base(filename))
}

// Row is one data row. Index is 1-based and counts data rows only.
type Row struct {
	Index  int
	Fields map[string]string
}

func (r Row) Get(key string) (string, bool) {
	v, ok := r.Fields[key]
	return v, ok && v != ""
}

// Sheet holds the parsed table. Rows can be ranged over any number of times.
type Sheet struct {
	Columns []string
	records [][]string
}

// Parse reads a whole upload and canonicalizes its header row.
func Parse(filename string, r io.Reader) (*Sheet, error) {
	format, err := FormatOf(filename)
	if err != nil {
		return nil, err
	}

	var table [][]string
	switch format {
	case CSV:
		table, err = readCSV(r)
	case XLSX:
		table, err = readXLSX(r)
	}
	if err != nil {
		return nil, err
	}
	if len(table) == 0 {
		return &Sheet{}, nil
	}

	columns := make([]string, len(table[0]))
	for i, header := range table[0] {
		columns[i] = Canonical(header)
	}

	records := make([][]string, 0, len(table)-1)
	for _, rec := range table[1:] {
		if blank(rec) {
			continue
		}
		records = append(records, rec)
	}

	return &Sheet{Columns: columns, records: records}, nil
}

// ParseBytes is Parse for an upload already held in memory.
func ParseBytes(filename string, data []byte) (*Sheet, error) {
	return Parse(filename, bytes.NewReader(data))
}

func (s *Sheet) Len() int { return len(s.records) }

// Rows yields the data rows in file order. Each row map is built on demand.
func (s *Sheet) Rows() iter.Seq[Row] {
	return func(yield func(Row) bool) {
		for i, rec := range s.records {
			if !yield(s.row(i, rec)) {
				return
			}
		}
	}
}

func (s *Sheet) row(i int, rec []string) Row {
	fields := make(map[string]string, len(s.Columns))
	for c, key := range s.Columns {
		if key == "" || c >= len(rec) {
			continue
		}
		value := strings.TrimSpace(rec[c])
		if value == "" {
			continue
		}
		fields[key] = value
	}
	return Row{Index: i + 1, Fields: fields}
}

// Clean lower-cases a header and collapses every run of whitespace or
// punctuation into a single underscore.
func Clean(header string) string {
	var b strings.Builder
	pending := false
	for _, r := range strings.ToLower(strings.TrimSpace(header)) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			if pending && b.Len() > 0 {
				b.WriteByte('_')
			}
			pending = false
			b.WriteRune(r)
			continue
		}
		pending = true
	}
	return b.String()
}

// Canonical cleans a header and resolves it through Aliases.
func Canonical(header string) string {
	cleaned := Clean(header)
	if canonical, ok := Aliases[cleaned]; ok {
		return canonical
	}
	return cleaned
}

func blank(rec []string) bool {
	for _, v := range rec {
		if strings.TrimSpace(v) != "" {
			return false
		}
	}
	return true
}

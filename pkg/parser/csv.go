package parser

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/rotisserie/eris"

	"perfscore/pkg/schema"
)

// Sentinel errors returned by the loaders.
var (
	ErrNoDataRows        = errors.New("file contains no data rows")
	ErrUnsupportedFormat = errors.New("unsupported file format")
	ErrMissingNameColumn = errors.New("no person name column found")
)

// ParseWarning represents a non-fatal issue encountered during parsing.
type ParseWarning struct {
	Row     int    `json:"row"`
	Message string `json:"message"`
}

func (w ParseWarning) String() string {
	return fmt.Sprintf("row %d: %s", w.Row, w.Message)
}

// WarningDiagnostics reports the warnings of one input file as diagnostics.
func WarningDiagnostics(file string, warnings []ParseWarning) []schema.Diagnostic {
	out := make([]schema.Diagnostic, 0, len(warnings))
	for _, w := range warnings {
		out = append(out, schema.Diagnostic{
			Kind:    schema.DiagParseWarning,
			Subject: file,
			Message: w.String(),
		})
	}
	return out
}

// ParseResult contains the parsed records alongside any warnings. Records
// keep file order; Headers keep column order.
type ParseResult struct {
	Headers    []string            `json:"headers"`
	Records    []map[string]string `json:"records"`
	RowNumbers []int               `json:"rowNumbers"` // file row of each record
	Warnings   []ParseWarning      `json:"warnings"`
}

// StreamParse parses CSV bytes into a slice of maps (header -> value per row).
func StreamParse(data []byte) ([]map[string]string, error) {
	result, err := StreamParseWithWarnings(data)
	if err != nil {
		return nil, err
	}
	return result.Records, nil
}

// StreamParseWithWarnings parses CSV bytes and returns both records and any warnings.
// The first row is the header.
func StreamParseWithWarnings(data []byte) (*ParseResult, error) {
	rows, warnings, err := readCSVRows(data)
	if err != nil {
		return nil, err
	}
	result, err := recordsFromRows(rows[0], rows[1:], 2)
	if err != nil {
		return nil, err
	}
	result.Warnings = append(warnings, result.Warnings...)
	return result, nil
}

// readCSVRows decodes CSV bytes into raw rows. It handles semicolon-delimited
// exports, variable column counts and truncated rows; rows that fail to
// parse are skipped with a warning.
func readCSVRows(data []byte) ([][]string, []ParseWarning, error) {
	decoded, _, err := DetectAndDecode(data)
	if err != nil {
		return nil, nil, eris.Wrap(err, "encoding detection failed")
	}

	reader := csv.NewReader(bytes.NewReader(decoded))
	reader.Comma = sniffDelimiter(decoded)
	// Variable field counts are padded or truncated by recordsFromRows.
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	var rows [][]string
	var warnings []ParseWarning
	rowNum := 0

	for {
		row, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		rowNum++

		if err != nil {
			warnings = append(warnings, ParseWarning{
				Row:     rowNum,
				Message: fmt.Sprintf("parse error: %v", err),
			})
			continue
		}
		rows = append(rows, row)
	}

	if len(rows) == 0 {
		return nil, nil, eris.New("empty file: no header row found")
	}
	return rows, warnings, nil
}

// recordsFromRows turns a header row plus data rows into keyed records,
// padding short rows and truncating long ones. Fully empty rows are skipped.
// firstRow is the 1-indexed file row of rows[0]. Blank headers are named
// column_N.
func recordsFromRows(headers []string, rows [][]string, firstRow int) (*ParseResult, error) {
	for i, h := range headers {
		headers[i] = trimSpace(h)
		if headers[i] == "" {
			headers[i] = fmt.Sprintf("column_%d", i+1)
		}
	}
	headerCount := len(headers)

	result := &ParseResult{Headers: headers}
	for i, row := range rows {
		rowNum := firstRow + i
		if isBlankRow(row) {
			continue
		}

		if len(row) != headerCount {
			if len(row) < headerCount {
				padded := make([]string, headerCount)
				copy(padded, row)
				row = padded
			} else {
				result.Warnings = append(result.Warnings, ParseWarning{
					Row:     rowNum,
					Message: fmt.Sprintf("row has %d columns, expected %d; truncating extra columns", len(row), headerCount),
				})
				row = row[:headerCount]
			}
		}

		record := make(map[string]string, headerCount)
		for j, h := range headers {
			record[h] = trimSpace(row[j])
		}
		result.Records = append(result.Records, record)
		result.RowNumbers = append(result.RowNumbers, rowNum)
	}

	if len(result.Records) == 0 {
		return nil, ErrNoDataRows
	}
	return result, nil
}

// sniffDelimiter picks ';' when the header line has more semicolons than commas.
func sniffDelimiter(data []byte) rune {
	line := data
	if i := bytes.IndexByte(data, '\n'); i >= 0 {
		line = data[:i]
	}
	if bytes.Count(line, []byte{';'}) > bytes.Count(line, []byte{','}) {
		return ';'
	}
	return ','
}

func isBlankRow(row []string) bool {
	for _, v := range row {
		if trimSpace(v) != "" {
			return false
		}
	}
	return true
}

// trimSpace trims leading/trailing whitespace and BOM characters.
func trimSpace(s string) string {
	return strings.TrimSpace(strings.TrimPrefix(s, "\ufeff"))
}

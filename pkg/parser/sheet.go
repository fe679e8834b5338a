package parser

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"

	"github.com/extrame/xls"
	"github.com/rotisserie/eris"
	"github.com/xuri/excelize/v2"

	"perfscore/pkg/schema"
)

// maxXLSRows bounds legacy workbook reads.
const maxXLSRows = 100000

// headerScanDepth is how many leading rows may hold titles before the header.
const headerScanDepth = 20

// ReadTable loads a .csv, .xlsx/.xlsm or .xls file into keyed records.
// Leading title rows above the header are skipped; see locateHeader.
func ReadTable(path string, ds schema.Dataset) (*ParseResult, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, eris.Wrapf(err, "read %s", path)
	}
	return ReadTableBytes(data, filepath.Base(path), ds)
}

// ReadTableBytes is ReadTable for in-memory uploads; filename selects the format.
func ReadTableBytes(data []byte, filename string, ds schema.Dataset) (*ParseResult, error) {
	var (
		rows     [][]string
		warnings []ParseWarning
		err      error
	)

	ext := strings.ToLower(filepath.Ext(filename))
	switch ext {
	case ".csv", ".txt":
		rows, warnings, err = readCSVRows(data)
	case ".xlsx", ".xlsm":
		rows, err = readXLSXRows(data)
	case ".xls":
		rows, err = readXLSRows(data)
	default:
		return nil, eris.Wrapf(ErrUnsupportedFormat, "%q", ext)
	}
	if err != nil {
		return nil, eris.Wrapf(err, "%s", filename)
	}

	h := locateHeader(rows, ds)
	result, err := recordsFromRows(rows[h], rows[h+1:], h+2)
	if err != nil {
		return nil, eris.Wrapf(err, "%s", filename)
	}
	result.Warnings = append(warnings, result.Warnings...)
	return result, nil
}

func readXLSXRows(data []byte) ([][]string, error) {
	file, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return nil, eris.Wrap(err, "open workbook")
	}
	defer func() { _ = file.Close() }()

	sheetName := file.GetSheetName(0)
	if sheetName == "" {
		return nil, eris.New("no worksheet found")
	}

	rows, err := file.GetRows(sheetName)
	if err != nil {
		return nil, eris.Wrapf(err, "read sheet %q", sheetName)
	}
	if len(rows) == 0 {
		return nil, eris.New("worksheet is empty")
	}
	return rows, nil
}

func readXLSRows(data []byte) ([][]string, error) {
	workbook, err := xls.OpenReader(bytes.NewReader(data), "utf-8")
	if err != nil {
		return nil, eris.Wrap(err, "open legacy workbook")
	}
	if workbook.NumSheets() == 0 {
		return nil, eris.New("no worksheet found")
	}
	rows := workbook.ReadAllCells(maxXLSRows)
	if len(rows) == 0 {
		return nil, eris.New("worksheet is empty")
	}
	return rows, nil
}

// locateHeader returns the index of the first row that looks like a header:
// one that maps a person column, or at least three month or activity columns.
// Falls back to row 0.
func locateHeader(rows [][]string, ds schema.Dataset) int {
	limit := len(rows)
	if limit > headerScanDepth {
		limit = headerScanDepth
	}
	for i := 0; i < limit; i++ {
		mapped := schema.InferMappings(rows[i], ds)
		columns := 0
		for _, target := range mapped {
			if target == schema.FieldName {
				return i
			}
			if target != schema.FieldTotal && target != schema.FieldDate {
				columns++
			}
		}
		if columns >= 3 {
			return i
		}
	}
	return 0
}

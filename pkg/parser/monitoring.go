package parser

import (
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/rotisserie/eris"
	"github.com/xuri/excelize/v2"

	"perfscore/pkg/schema"
)

var dateFormats = []string{
	"2006-01-02",
	"2.1.2006",
	"02.01.2006",
	"2. 1. 2006",
	"2.1.06",
	"1/2/2006",
	"01/02/2006",
	"2006-01",
	"01/2006",
	"1.2006",
}

// LoadMonitoring reads an internet or applications usage report.
func LoadMonitoring(path string, ds schema.Dataset) ([]schema.MonitoringRow, []ParseWarning, error) {
	table, err := ReadTable(path, ds)
	if err != nil {
		return nil, nil, err
	}
	rows, err := MonitoringRows(table, ds, filepath.Base(path))
	if err != nil {
		return nil, nil, eris.Wrapf(err, "%s", path)
	}
	return rows, table.Warnings, nil
}

// MonitoringRows maps report records to MonitoringRows. Only columns in the
// dataset's activity vocabulary are kept; their cells go through
// ParseDuration, so garbled values count as 0 minutes.
func MonitoringRows(table *ParseResult, ds schema.Dataset, sourceFile string) ([]schema.MonitoringRow, error) {
	mapped := schema.InferMappings(table.Headers, ds)

	nameCol, dateCol := "", ""
	activities := make(map[string]string)
	for _, h := range table.Headers {
		switch target := mapped[h]; target {
		case "", schema.FieldTotal:
		case schema.FieldName:
			nameCol = h
		case schema.FieldDate:
			dateCol = h
		default:
			activities[h] = target
		}
	}
	if nameCol == "" {
		return nil, ErrMissingNameColumn
	}

	rows := make([]schema.MonitoringRow, 0, len(table.Records))
	for i, rec := range table.Records {
		name := strings.TrimSpace(rec[nameCol])
		if name == "" {
			continue
		}

		row := schema.MonitoringRow{
			PersonName:        name,
			ActivityDurations: make(map[string]float64, len(activities)),
			Source:            ds,
			SourceFile:        sourceFile,
			SourceRow:         i + 1,
		}
		if i < len(table.RowNumbers) {
			row.SourceRow = table.RowNumbers[i]
		}
		for col, label := range activities {
			row.ActivityDurations[label] = ParseDuration(rec[col])
		}
		if dateCol != "" {
			if t, ok := ParseDate(rec[dateCol]); ok {
				row.Date = &t
			}
		}
		rows = append(rows, row)
	}
	return rows, nil
}

// ParseDate accepts ISO and Czech day-first dates as well as Excel serials.
func ParseDate(text string) (time.Time, bool) {
	s := strings.TrimSpace(text)
	if s == "" {
		return time.Time{}, false
	}

	for _, format := range dateFormats {
		if t, err := time.Parse(format, s); err == nil {
			return t, true
		}
	}

	// "01.2024" is a valid float, so serials are tried only after the layouts.
	if serial, err := strconv.ParseFloat(s, 64); err == nil && serial >= 20000 && serial <= 80000 {
		if t, err := excelize.ExcelDateToTime(serial, false); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

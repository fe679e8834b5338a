package parser

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"

	"perfscore/pkg/schema"
)

var currencyRe = regexp.MustCompile(`(?i)(kč|czk|eur|€|\s|\x{00a0})`)

// LoadSales reads a sales ledger file into rows in file order.
func LoadSales(path string) ([]schema.SalesRow, []ParseWarning, error) {
	table, err := ReadTable(path, "")
	if err != nil {
		return nil, nil, err
	}
	rows, warnings := SalesRows(table)
	return rows, append(table.Warnings, warnings...), nil
}

// SalesRows maps ledger records to SalesRows, keeping file order. The name
// column falls back to the first column when no header names it; city
// marker rows come through as rows with a name and no amounts.
func SalesRows(table *ParseResult) ([]schema.SalesRow, []ParseWarning) {
	mapped := schema.InferMappings(table.Headers, "")

	nameCol := ""
	totalCol := ""
	months := make(map[string]string)
	for _, h := range table.Headers {
		switch target := mapped[h]; target {
		case "":
		case schema.FieldName:
			nameCol = h
		case schema.FieldTotal:
			totalCol = h
		case schema.FieldDate:
		default:
			months[h] = target
		}
	}
	if nameCol == "" && len(table.Headers) > 0 {
		nameCol = table.Headers[0]
	}

	var warnings []ParseWarning
	rows := make([]schema.SalesRow, 0, len(table.Records))
	for i, rec := range table.Records {
		rowNum := i + 1
		if i < len(table.RowNumbers) {
			rowNum = table.RowNumbers[i]
		}

		name := strings.TrimSpace(rec[nameCol])
		if name == "" {
			continue
		}

		row := schema.SalesRow{
			Name:         name,
			MonthlySales: make(map[string]float64, len(schema.MonthKeys)),
			SourceRow:    rowNum,
		}
		for _, key := range schema.MonthKeys {
			row.MonthlySales[key] = 0
		}
		for _, col := range table.Headers {
			key, ok := months[col]
			if !ok {
				continue
			}
			amount, ok := ParseAmount(rec[col])
			if !ok {
				warnings = append(warnings, ParseWarning{
					Row:     rowNum,
					Message: fmt.Sprintf("%s: unparseable amount %q counted as 0", col, rec[col]),
				})
			}
			row.MonthlySales[key] = amount
		}
		if totalCol != "" && strings.TrimSpace(rec[totalCol]) != "" {
			if total, ok := ParseAmount(rec[totalCol]); ok {
				row.StoredTotal = total
				row.HasTotal = true
			}
		}
		rows = append(rows, row)
	}
	return rows, warnings
}

// ParseAmount parses a sales amount as exported by Czech and English
// spreadsheets: "1 250 000 Kč", "1,250,000", "1250000,50", "1.250.000".
// Empty cells are 0 and ok.
func ParseAmount(text string) (float64, bool) {
	s := currencyRe.ReplaceAllString(strings.TrimSpace(text), "")
	if s == "" || s == "-" {
		return 0, true
	}

	commas := strings.Count(s, ",")
	dots := strings.Count(s, ".")
	switch {
	case commas > 0 && dots > 0:
		// The later separator is the decimal one.
		if strings.LastIndex(s, ",") > strings.LastIndex(s, ".") {
			s = strings.ReplaceAll(s, ".", "")
			s = strings.Replace(s, ",", ".", 1)
		} else {
			s = strings.ReplaceAll(s, ",", "")
		}
	case commas > 1:
		s = strings.ReplaceAll(s, ",", "")
	case commas == 1:
		if len(s)-strings.Index(s, ",")-1 == 3 {
			s = strings.Replace(s, ",", "", 1)
		} else {
			s = strings.Replace(s, ",", ".", 1)
		}
	case dots > 1:
		s = strings.ReplaceAll(s, ".", "")
	}

	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, false
	}
	return v, true
}

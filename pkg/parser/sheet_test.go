package parser

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/xuri/excelize/v2"

	"perfscore/pkg/schema"
)

func writeWorkbook(t *testing.T, rows [][]interface{}) string {
	t.Helper()
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	sheet := f.GetSheetName(0)
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			t.Fatalf("cell name: %v", err)
		}
		r := row
		if err := f.SetSheetRow(sheet, cell, &r); err != nil {
			t.Fatalf("set row: %v", err)
		}
	}

	path := filepath.Join(t.TempDir(), "prodeje.xlsx")
	if err := f.SaveAs(path); err != nil {
		t.Fatalf("save workbook: %v", err)
	}
	return path
}

func TestReadTableXLSXSkipsTitleRows(t *testing.T) {
	path := writeWorkbook(t, [][]interface{}{
		{"Prodeje 2024"},
		{"Jméno", "Leden", "Únor"},
		{"Praha"},
		{"Novák A.", 1000, 2000},
	})

	table, err := ReadTable(path, "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(table.Headers) != 3 || table.Headers[0] != "Jméno" {
		t.Fatalf("unexpected headers: %v", table.Headers)
	}
	if len(table.Records) != 2 {
		t.Fatalf("expected 2 records, got %d", len(table.Records))
	}
	if table.RowNumbers[0] != 3 || table.RowNumbers[1] != 4 {
		t.Fatalf("unexpected row numbers: %v", table.RowNumbers)
	}

	rows, warnings, err := LoadSales(path)
	if err != nil {
		t.Fatalf("LoadSales: %v", err)
	}
	if len(warnings) != 0 {
		t.Fatalf("unexpected warnings: %v", warnings)
	}
	if len(rows) != 2 || rows[1].Name != "Novák A." {
		t.Fatalf("unexpected rows: %+v", rows)
	}
	if rows[1].MonthlySales["january"] != 1000 || rows[1].MonthlySales["february"] != 2000 {
		t.Fatalf("unexpected monthly sales: %v", rows[1].MonthlySales)
	}
}

func TestReadTableCSVFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "internet.csv")
	data := "Osoba;Mail;Čas celkem\nSvoboda Petr;0:45:00;8:00:00\n"
	if err := os.WriteFile(path, []byte(data), 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}
	table, err := ReadTable(path, schema.DatasetInternet)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(table.Records) != 1 || table.Records[0]["Osoba"] != "Svoboda Petr" {
		t.Fatalf("unexpected records: %v", table.Records)
	}
}

func TestReadTableBytesUnsupported(t *testing.T) {
	if _, err := ReadTableBytes([]byte("x"), "report.pdf", ""); err == nil {
		t.Fatalf("expected an error for an unsupported extension")
	}
}

func TestLocateHeader(t *testing.T) {
	rows := [][]string{
		{"Report"},
		{""},
		{"Uzivatel", "Mail", "Chat"},
		{"Novák", "0:10", "0:05"},
	}
	if got := locateHeader(rows, schema.DatasetInternet); got != 2 {
		t.Fatalf("locateHeader = %d, want 2", got)
	}

	months := [][]string{{"Leden", "Únor", "Březen"}, {"x", "1", "2"}}
	if got := locateHeader(months, ""); got != 0 {
		t.Fatalf("locateHeader = %d, want 0", got)
	}

	if got := locateHeader([][]string{{"a"}, {"b"}}, ""); got != 0 {
		t.Fatalf("locateHeader fallback = %d, want 0", got)
	}
}

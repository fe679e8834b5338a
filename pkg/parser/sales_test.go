package parser

import "testing"

func TestParseAmount(t *testing.T) {
	cases := []struct {
		in   string
		want float64
		ok   bool
	}{
		{"", 0, true},
		{"-", 0, true},
		{"1250000", 1250000, true},
		{"1 250 000 Kč", 1250000, true},
		{"1 250 000", 1250000, true},
		{"1,250,000", 1250000, true},
		{"1,250", 1250, true},
		{"12,5", 12.5, true},
		{"1250000,50", 1250000.5, true},
		{"1.250.000", 1250000, true},
		{"1.250.000,50", 1250000.5, true},
		{"1,250,000.50", 1250000.5, true},
		{"2500000 CZK", 2500000, true},
		{"abc", 0, false},
	}
	for _, c := range cases {
		got, ok := ParseAmount(c.in)
		if ok != c.ok || !almostEqual(got, c.want) {
			t.Fatalf("ParseAmount(%q) = (%v, %v), want (%v, %v)", c.in, got, ok, c.want, c.ok)
		}
	}
}

func TestSalesRows(t *testing.T) {
	table := &ParseResult{
		Headers: []string{"Jméno", "Leden", "Únor", "Celkem"},
		Records: []map[string]string{
			{"Jméno": "Praha", "Leden": "", "Únor": "", "Celkem": ""},
			{"Jméno": "Novák A.", "Leden": "100 000", "Únor": "200 000", "Celkem": "300 000"},
			{"Jméno": "", "Leden": "5", "Únor": "", "Celkem": ""},
			{"Jméno": "Svoboda P.", "Leden": "x", "Únor": "5", "Celkem": ""},
		},
		RowNumbers: []int{2, 3, 4, 5},
	}

	rows, warnings := SalesRows(table)
	if len(rows) != 3 {
		t.Fatalf("expected 3 rows (nameless row skipped), got %d", len(rows))
	}
	if rows[0].Name != "Praha" || rows[0].HasTotal {
		t.Fatalf("unexpected marker row: %+v", rows[0])
	}

	novak := rows[1]
	if novak.MonthlySales["january"] != 100000 || novak.MonthlySales["february"] != 200000 {
		t.Fatalf("unexpected monthly sales: %v", novak.MonthlySales)
	}
	if len(novak.MonthlySales) != 12 {
		t.Fatalf("expected all 12 months to be present, got %d", len(novak.MonthlySales))
	}
	if !novak.HasTotal || novak.StoredTotal != 300000 || novak.SourceRow != 3 {
		t.Fatalf("unexpected total/row: %+v", novak)
	}

	if len(warnings) != 1 || warnings[0].Row != 5 {
		t.Fatalf("expected one warning on row 5, got %v", warnings)
	}
	if rows[2].MonthlySales["january"] != 0 || rows[2].MonthlySales["february"] != 5 {
		t.Fatalf("unexpected sales for Svoboda: %v", rows[2].MonthlySales)
	}
}

func TestSalesRowsNameFallsBackToFirstColumn(t *testing.T) {
	table := &ParseResult{
		Headers: []string{"Obchod", "Leden"},
		Records: []map[string]string{{"Obchod": "Dvořák J.", "Leden": "10"}},
	}
	rows, _ := SalesRows(table)
	if len(rows) != 1 || rows[0].Name != "Dvořák J." || rows[0].SourceRow != 1 {
		t.Fatalf("unexpected rows: %+v", rows)
	}
}

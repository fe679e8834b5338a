package parser

import (
	"errors"
	"strings"
	"testing"

	"perfscore/pkg/schema"
)

func TestStreamParseSemicolon(t *testing.T) {
	data := []byte("Osoba;Mail;Čas celkem\nNovák Jan;0:45:00;8:00:00\n;;\nSvoboda Petr;0:10:00\n")
	res, err := StreamParseWithWarnings(data)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(res.Headers) != 3 || res.Headers[2] != "Čas celkem" {
		t.Fatalf("unexpected headers: %v", res.Headers)
	}
	if len(res.Records) != 2 {
		t.Fatalf("expected 2 records (blank row skipped), got %d", len(res.Records))
	}
	if res.Records[0]["Mail"] != "0:45:00" {
		t.Fatalf("unexpected first record: %v", res.Records[0])
	}
	if v, ok := res.Records[1]["Čas celkem"]; !ok || v != "" {
		t.Fatalf("expected short row to be padded, got %v", res.Records[1])
	}
	if res.RowNumbers[0] != 2 || res.RowNumbers[1] != 4 {
		t.Fatalf("unexpected row numbers: %v", res.RowNumbers)
	}
}

func TestStreamParseTruncatesLongRows(t *testing.T) {
	data := []byte("name,total\nNovák,10,extra\n")
	res, err := StreamParseWithWarnings(data)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(res.Warnings) != 1 || res.Warnings[0].Row != 2 {
		t.Fatalf("expected one warning on row 2, got %v", res.Warnings)
	}
	if res.Records[0]["total"] != "10" {
		t.Fatalf("unexpected record: %v", res.Records[0])
	}
}

func TestStreamParseBlankHeaders(t *testing.T) {
	res, err := StreamParseWithWarnings([]byte("name,,total\nNovák,x,10\n"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Headers[1] != "column_2" {
		t.Fatalf("expected blank header to be named column_2, got %q", res.Headers[1])
	}
}

func TestStreamParseNoDataRows(t *testing.T) {
	_, err := StreamParse([]byte("name,total\n"))
	if !errors.Is(err, ErrNoDataRows) {
		t.Fatalf("expected ErrNoDataRows, got %v", err)
	}
}

func TestStreamParseEmpty(t *testing.T) {
	if _, err := StreamParse(nil); err == nil {
		t.Fatalf("expected an error for empty input")
	}
}

func TestWarningDiagnostics(t *testing.T) {
	res, err := StreamParseWithWarnings([]byte("name,total\nNovák,10,extra\n"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	diags := WarningDiagnostics("internet.csv", res.Warnings)
	if len(diags) != 1 {
		t.Fatalf("expected one diagnostic, got %v", diags)
	}
	d := diags[0]
	if d.Kind != schema.DiagParseWarning || d.Subject != "internet.csv" {
		t.Fatalf("unexpected diagnostic: %+v", d)
	}
	if !strings.HasPrefix(d.Message, "row 2:") {
		t.Fatalf("expected message to name row 2, got %q", d.Message)
	}
	if got := WarningDiagnostics("x.csv", nil); len(got) != 0 {
		t.Fatalf("expected no diagnostics without warnings, got %v", got)
	}
}
